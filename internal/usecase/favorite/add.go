package favorite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/audit"
	domain "github.com/pro-master/backend/internal/domain/favorite"
	"github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/dto"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/models"
)

type Input struct {
	UserID           uint
	ServiceProfileID uint
}

type AddFavorite struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddFavorite(repo domain.Repository, audit *audit.Dispatcher) *AddFavorite {
	return &AddFavorite{repo: repo, audit: audit}
}

// Execute creates the edge. Exists is only a fast path: when two adds race
// past it, the unique index rejects the loser and it gets the same
// ErrAlreadyFavorited.
func (uc *AddFavorite) Execute(ctx context.Context, in Input) (*dto.FavoriteDTO, error) {
	profile, err := loadProfile(ctx, uc.repo, in.ServiceProfileID)
	if err != nil {
		return nil, err
	}

	exists, err := uc.repo.Exists(ctx, in.UserID, profile.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyFavorited
	}

	fav := &models.Favorite{UserID: in.UserID, ServiceProfileID: profile.ID}
	if err := uc.repo.Create(ctx, fav); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyFavorited
		}
		return nil, err
	}

	rating, err := uc.repo.Rating(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.UserID),
		Action:   "favorite_added",
		Entity:   "service_profile",
		EntityID: audit.Ptr(profile.ID),
	})

	return &dto.FavoriteDTO{
		ID:          profile.ID,
		Name:        profile.Name,
		ProfileFoto: profile.ProfileFotoURL,
		Rating:      rating,
		IsFavorited: true,
	}, nil
}

func loadProfile(ctx context.Context, repo domain.Repository, id uint) (*models.ServiceProfile, error) {
	profile, err := repo.GetServiceProfile(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, serviceprofile.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
