package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/models"
)

// Guard runs the checks that must pass before a review or comment is
// written. The duplicate check is a fast path only; the unique index on
// (service_profile_id, author_id) decides races.
type Guard struct {
	repo Repository
}

func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// ValidateReview checks authorID against target. The duplicate lookup only
// runs when creating.
func (g *Guard) ValidateReview(ctx context.Context, authorID uint, target *models.ServiceProfile, creating bool) error {
	if target.OwnerID == authorID {
		return ErrSelfReview
	}

	if !creating {
		return nil
	}

	exists, err := g.repo.HasReviewed(ctx, target.ID, authorID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateReview
	}
	return nil
}

// ValidateComment resolves the review a comment is attached to. A review
// that exists under another profile is reported as missing.
func (g *Guard) ValidateComment(ctx context.Context, profileID, reviewID uint) (*models.Review, error) {
	return g.Review(ctx, profileID, reviewID)
}

// Review loads a review through its parent profile.
func (g *Guard) Review(ctx context.Context, profileID, reviewID uint) (*models.Review, error) {
	r, err := g.repo.GetReview(ctx, profileID, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
