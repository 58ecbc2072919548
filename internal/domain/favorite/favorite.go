// Package favorite holds the rules of the user -> service profile interest
// relation: at most one edge per pair, add fails when present, remove fails
// when absent.
package favorite

import (
	"context"

	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/models"
)

var (
	ErrAlreadyFavorited = httperr.Invalid("already_favorited", "The service profile is already in favorites.")
	ErrNotFavorited     = httperr.Missing("not_favorited", "The service profile is not in favorites.")
)

type Repository interface {
	GetServiceProfile(ctx context.Context, id uint) (*models.ServiceProfile, error)

	Exists(ctx context.Context, userID, profileID uint) (bool, error)
	Create(ctx context.Context, f *models.Favorite) error
	// Delete returns the number of removed rows.
	Delete(ctx context.Context, userID, profileID uint) (int64, error)

	Rating(ctx context.Context, profileID uint) (*float64, error)
}
