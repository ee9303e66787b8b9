package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/adboard/internal/model"
	appErr "github.com/xxxsen/adboard/internal/pkg/errors"
	"github.com/xxxsen/adboard/internal/pkg/jwt"
	"github.com/xxxsen/adboard/internal/pkg/password"
	"github.com/xxxsen/adboard/internal/pkg/timeutil"
	"github.com/xxxsen/adboard/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Register stores a new user. Email uniqueness is left to the store so that
// concurrent registrations of one address yield exactly one row.
func (s *AuthService) Register(ctx context.Context, email, plainPassword string) (*model.User, error) {
	if email == "" || plainPassword == "" {
		return nil, fmt.Errorf("%w: email and password are required", appErr.ErrInvalid)
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, fmt.Errorf("%w: password must be at most %d bytes", appErr.ErrInvalid, password.MaxLength)
		}
		return nil, err
	}
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Ctime:        timeutil.NowUnixMilli(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsConflict(err) {
			return nil, fmt.Errorf("%w: user with this email already exists", appErr.ErrConflict)
		}
		return nil, err
	}
	logutil.GetLogger(ctx).Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login returns a bearer token. Unknown email and wrong password both map to
// ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return "", appErr.ErrUnauthorized
		}
		return "", err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return "", appErr.ErrUnauthorized
	}
	return jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
}
