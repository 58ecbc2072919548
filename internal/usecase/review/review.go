package review

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/audit"
	"github.com/pro-master/backend/internal/domain/access"
	domain "github.com/pro-master/backend/internal/domain/review"
	"github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReviewInput struct {
	Actor            access.Principal
	ServiceProfileID uint
	Text             string
	Score            int
}

type UpdateReviewInput struct {
	Actor            access.Principal
	Method           string
	ServiceProfileID uint
	ReviewID         uint
	Text             *string
	Score            *int
}

type DeleteReviewInput struct {
	Actor            access.Principal
	ServiceProfileID uint
	ReviewID         uint
}

// ======================================================
// USE CASE
// ======================================================

type Reviews struct {
	repo  domain.Repository
	guard *domain.Guard
	audit *audit.Dispatcher
}

func NewReviews(repo domain.Repository, audit *audit.Dispatcher) *Reviews {
	return &Reviews{repo: repo, guard: domain.NewGuard(repo), audit: audit}
}

func (uc *Reviews) Create(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if !domain.ValidScore(in.Score) {
		return nil, domain.ErrInvalidScore
	}

	profile, err := uc.profile(ctx, in.ServiceProfileID)
	if err != nil {
		return nil, err
	}

	if err := uc.guard.ValidateReview(ctx, in.Actor.UserID, profile, true); err != nil {
		return nil, err
	}

	// target and author are exactly the validated pair
	r := &models.Review{
		ServiceProfileID: profile.ID,
		AuthorID:         in.Actor.UserID,
		Text:             in.Text,
		Score:            in.Score,
	}
	if err := uc.repo.CreateReview(ctx, r); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Actor.UserID),
		Action:   "review_created",
		Entity:   "review",
		EntityID: audit.Ptr(r.ID),
		Metadata: map[string]any{"service_profile_id": profile.ID, "score": r.Score},
	})
	return r, nil
}

func (uc *Reviews) Update(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	profile, err := uc.profile(ctx, in.ServiceProfileID)
	if err != nil {
		return nil, err
	}

	r, err := uc.guard.Review(ctx, profile.ID, in.ReviewID)
	if err != nil {
		return nil, err
	}

	if err := access.CheckObject(access.AdminOrAuthor{}, in.Actor, in.Method, r); err != nil {
		return nil, err
	}
	if err := uc.guard.ValidateReview(ctx, r.AuthorID, profile, false); err != nil {
		return nil, err
	}

	if in.Score != nil {
		if !domain.ValidScore(*in.Score) {
			return nil, domain.ErrInvalidScore
		}
		r.Score = *in.Score
	}
	if in.Text != nil {
		r.Text = *in.Text
	}

	if err := uc.repo.UpdateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *Reviews) Delete(ctx context.Context, in DeleteReviewInput) error {
	r, err := uc.guard.Review(ctx, in.ServiceProfileID, in.ReviewID)
	if err != nil {
		return err
	}

	if err := access.CheckObject(access.AdminOrAuthor{}, in.Actor, http.MethodDelete, r); err != nil {
		return err
	}

	if err := uc.repo.DeleteReview(ctx, r.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Actor.UserID),
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: audit.Ptr(r.ID),
	})
	return nil
}

func (uc *Reviews) List(ctx context.Context, profileID uint) ([]models.Review, error) {
	if _, err := uc.profile(ctx, profileID); err != nil {
		return nil, err
	}
	return uc.repo.ListReviews(ctx, profileID)
}

func (uc *Reviews) Get(ctx context.Context, profileID, reviewID uint) (*models.Review, error) {
	return uc.guard.Review(ctx, profileID, reviewID)
}

func (uc *Reviews) profile(ctx context.Context, id uint) (*models.ServiceProfile, error) {
	p, err := uc.repo.GetServiceProfile(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, serviceprofile.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
