package review

import (
	"context"

	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/models"
)

var (
	ErrSelfReview      = httperr.Invalid("self_review_forbidden", "You cannot review your own service profile.")
	ErrDuplicateReview = httperr.Invalid("duplicate_review", "You have already reviewed this service profile.")
	ErrInvalidScore    = httperr.Invalid("invalid_score", "Score must be between 1 and 5.")
	ErrReviewNotFound  = httperr.Missing("review_not_found", "Review not found.")
	ErrCommentNotFound = httperr.Missing("comment_not_found", "Comment not found.")
)

const (
	MinScore = 1
	MaxScore = 5
)

type Repository interface {
	GetServiceProfile(ctx context.Context, id uint) (*models.ServiceProfile, error)

	HasReviewed(ctx context.Context, profileID, authorID uint) (bool, error)
	// GetReview only finds reviews of the given profile.
	GetReview(ctx context.Context, profileID, reviewID uint) (*models.Review, error)
	ListReviews(ctx context.Context, profileID uint) ([]models.Review, error)
	CreateReview(ctx context.Context, r *models.Review) error
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id uint) error

	GetComment(ctx context.Context, reviewID, commentID uint) (*models.Comment, error)
	ListComments(ctx context.Context, reviewID uint) ([]models.Comment, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	UpdateComment(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}

func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
