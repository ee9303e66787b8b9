package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/adboard/internal/model"
	appErr "github.com/xxxsen/adboard/internal/pkg/errors"
	"github.com/xxxsen/adboard/internal/pkg/timeutil"
	"github.com/xxxsen/adboard/internal/repo"
)

const (
	MinTitleChars = 3
	MaxTitleChars = 100
)

type AdService struct {
	ads *repo.AdRepo
}

func NewAdService(ads *repo.AdRepo) *AdService {
	return &AdService{ads: ads}
}

type AdCreateInput struct {
	Title       string
	Description string
}

// AdUpdateInput carries the fields to change; nil fields are left as is.
type AdUpdateInput struct {
	Title       *string
	Description *string
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < MinTitleChars || n > MaxTitleChars {
		return fmt.Errorf("%w: title must be between %d and %d characters", appErr.ErrInvalid, MinTitleChars, MaxTitleChars)
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return fmt.Errorf("%w: description is required", appErr.ErrInvalid)
	}
	return nil
}

func (s *AdService) Create(ctx context.Context, userID int64, input AdCreateInput) (*model.Ad, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	ad := &model.Ad{
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   timeutil.FromUnixMilli(timeutil.NowUnixMilli()),
		OwnerID:     userID,
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		if appErr.IsNotFound(err) {
			// token outlived its user
			return nil, appErr.ErrUnauthorized
		}
		return nil, err
	}
	logutil.GetLogger(ctx).Info("ad created", zap.Int64("ad_id", ad.ID), zap.Int64("owner_id", userID))
	return ad, nil
}

func (s *AdService) List(ctx context.Context) ([]model.Ad, error) {
	return s.ads.List(ctx)
}

func (s *AdService) Get(ctx context.Context, adID int64) (*model.Ad, error) {
	return s.ads.GetByID(ctx, adID)
}

// GetMutable returns the ad when it exists and userID owns it.
func (s *AdService) GetMutable(ctx context.Context, userID, adID int64) (*model.Ad, error) {
	ad, err := s.ads.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeAdMutation(ad, userID); err != nil {
		logutil.GetLogger(ctx).Warn("ad mutation denied", zap.Int64("ad_id", adID), zap.Int64("user_id", userID))
		return nil, err
	}
	return ad, nil
}

// Update checks existence, then ownership, then the provided fields.
func (s *AdService) Update(ctx context.Context, userID, adID int64, input AdUpdateInput) (*model.Ad, error) {
	ad, err := s.GetMutable(ctx, userID, adID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Title == nil && input.Description == nil {
		return ad, nil
	}
	if input.Title != nil {
		ad.Title = *input.Title
	}
	if input.Description != nil {
		ad.Description = *input.Description
	}
	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *AdService) Delete(ctx context.Context, userID, adID int64) error {
	if _, err := s.GetMutable(ctx, userID, adID); err != nil {
		return err
	}
	if err := s.ads.Delete(ctx, adID, userID); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("ad deleted", zap.Int64("ad_id", adID), zap.Int64("owner_id", userID))
	return nil
}
