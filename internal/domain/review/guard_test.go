package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/models"
)

type mockRepo struct {
	Repository

	hasReviewedFunc func(ctx context.Context, profileID, authorID uint) (bool, error)
	getReviewFunc   func(ctx context.Context, profileID, reviewID uint) (*models.Review, error)
}

func (m *mockRepo) HasReviewed(ctx context.Context, profileID, authorID uint) (bool, error) {
	return m.hasReviewedFunc(ctx, profileID, authorID)
}

func (m *mockRepo) GetReview(ctx context.Context, profileID, reviewID uint) (*models.Review, error) {
	return m.getReviewFunc(ctx, profileID, reviewID)
}

func TestValidateReview(t *testing.T) {
	ctx := context.Background()
	target := &models.ServiceProfile{ID: 10, OwnerID: 1}

	t.Run("owner is always rejected", func(t *testing.T) {
		calls := 0
		g := NewGuard(&mockRepo{hasReviewedFunc: func(context.Context, uint, uint) (bool, error) {
			calls++
			return false, nil
		}})

		assert.ErrorIs(t, g.ValidateReview(ctx, 1, target, true), ErrSelfReview)
		assert.ErrorIs(t, g.ValidateReview(ctx, 1, target, false), ErrSelfReview)
		assert.Zero(t, calls)
	})

	t.Run("first review passes", func(t *testing.T) {
		g := NewGuard(&mockRepo{hasReviewedFunc: func(_ context.Context, profileID, authorID uint) (bool, error) {
			assert.Equal(t, uint(10), profileID)
			assert.Equal(t, uint(2), authorID)
			return false, nil
		}})
		assert.NoError(t, g.ValidateReview(ctx, 2, target, true))
	})

	t.Run("second review is a duplicate", func(t *testing.T) {
		g := NewGuard(&mockRepo{hasReviewedFunc: func(context.Context, uint, uint) (bool, error) {
			return true, nil
		}})
		assert.ErrorIs(t, g.ValidateReview(ctx, 2, target, true), ErrDuplicateReview)
	})

	t.Run("update skips the duplicate lookup", func(t *testing.T) {
		g := NewGuard(&mockRepo{hasReviewedFunc: func(context.Context, uint, uint) (bool, error) {
			t.Fatal("unexpected lookup")
			return true, nil
		}})
		assert.NoError(t, g.ValidateReview(ctx, 2, target, false))
	})

	t.Run("storage error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		g := NewGuard(&mockRepo{hasReviewedFunc: func(context.Context, uint, uint) (bool, error) {
			return false, boom
		}})
		assert.ErrorIs(t, g.ValidateReview(ctx, 2, target, true), boom)
	})
}

func TestValidateComment(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(&mockRepo{getReviewFunc: func(_ context.Context, profileID, reviewID uint) (*models.Review, error) {
		if profileID == 10 && reviewID == 5 {
			return &models.Review{ID: 5, ServiceProfileID: 10}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}})

	r, err := g.ValidateComment(ctx, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), r.ID)

	_, err = g.ValidateComment(ctx, 11, 5)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	assert.True(t, ValidScore(1))
	assert.True(t, ValidScore(5))
	assert.False(t, ValidScore(6))
}
