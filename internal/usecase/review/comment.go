package review

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/audit"
	"github.com/pro-master/backend/internal/domain/access"
	domain "github.com/pro-master/backend/internal/domain/review"
	"github.com/pro-master/backend/internal/models"
)

// CommentRef addresses a comment through its full path.
type CommentRef struct {
	ServiceProfileID uint
	ReviewID         uint
	CommentID        uint
}

type CreateCommentInput struct {
	Actor            access.Principal
	ServiceProfileID uint
	ReviewID         uint
	Text             string
}

// CreateComment binds the comment to the review named in the path; the
// review must belong to the named profile.
func (uc *Reviews) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := uc.profile(ctx, in.ServiceProfileID); err != nil {
		return nil, err
	}

	r, err := uc.guard.ValidateComment(ctx, in.ServiceProfileID, in.ReviewID)
	if err != nil {
		return nil, err
	}

	c := &models.Comment{ReviewID: r.ID, AuthorID: in.Actor.UserID, Text: in.Text}
	if err := uc.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Actor.UserID),
		Action:   "comment_created",
		Entity:   "comment",
		EntityID: audit.Ptr(c.ID),
	})
	return c, nil
}

func (uc *Reviews) ListComments(ctx context.Context, profileID, reviewID uint) ([]models.Comment, error) {
	if _, err := uc.profile(ctx, profileID); err != nil {
		return nil, err
	}
	r, err := uc.guard.ValidateComment(ctx, profileID, reviewID)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListComments(ctx, r.ID)
}

func (uc *Reviews) GetComment(ctx context.Context, ref CommentRef) (*models.Comment, error) {
	r, err := uc.guard.ValidateComment(ctx, ref.ServiceProfileID, ref.ReviewID)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.GetComment(ctx, r.ID, ref.CommentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *Reviews) UpdateComment(ctx context.Context, actor access.Principal, method string, ref CommentRef, text string) (*models.Comment, error) {
	c, err := uc.GetComment(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := access.CheckObject(access.AdminOrAuthor{}, actor, method, c); err != nil {
		return nil, err
	}

	c.Text = text
	if err := uc.repo.UpdateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *Reviews) DeleteComment(ctx context.Context, actor access.Principal, ref CommentRef) error {
	c, err := uc.GetComment(ctx, ref)
	if err != nil {
		return err
	}
	if err := access.CheckObject(access.AdminOrAuthor{}, actor, http.MethodDelete, c); err != nil {
		return err
	}
	return uc.repo.DeleteComment(ctx, c.ID)
}
