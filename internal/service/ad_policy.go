package service

import (
	"github.com/xxxsen/adboard/internal/model"
	appErr "github.com/xxxsen/adboard/internal/pkg/errors"
)

// AuthorizeAdMutation allows update and delete only for the ad's owner.
// Callers must have established that ad exists.
func AuthorizeAdMutation(ad *model.Ad, userID int64) error {
	if ad.OwnerID != userID {
		return appErr.ErrForbidden
	}
	return nil
}
