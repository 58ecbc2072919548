package favorite

import (
	"context"

	"github.com/pro-master/backend/internal/audit"
	domain "github.com/pro-master/backend/internal/domain/favorite"
)

type RemoveFavorite struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveFavorite(repo domain.Repository, audit *audit.Dispatcher) *RemoveFavorite {
	return &RemoveFavorite{repo: repo, audit: audit}
}

// Execute deletes the edge; a delete that removes nothing means the edge
// was never there (or a concurrent remove won).
func (uc *RemoveFavorite) Execute(ctx context.Context, in Input) error {
	profile, err := loadProfile(ctx, uc.repo, in.ServiceProfileID)
	if err != nil {
		return err
	}

	removed, err := uc.repo.Delete(ctx, in.UserID, profile.ID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrNotFavorited
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.UserID),
		Action:   "favorite_removed",
		Entity:   "service_profile",
		EntityID: audit.Ptr(profile.ID),
	})
	return nil
}
