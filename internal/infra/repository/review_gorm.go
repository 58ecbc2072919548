package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/pro-master/backend/internal/domain/review"
	"github.com/pro-master/backend/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

// --------------------------------------------------
// Service profile
// --------------------------------------------------

func (r *ReviewGormRepository) GetServiceProfile(ctx context.Context, id uint) (*models.ServiceProfile, error) {
	var p models.ServiceProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *ReviewGormRepository) HasReviewed(ctx context.Context, profileID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("service_profile_id = ? AND author_id = ?", profileID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) GetReview(ctx context.Context, profileID, reviewID uint) (*models.Review, error) {
	var rv models.Review
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_profile_id = ?", reviewID, profileID).
		First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) ListReviews(ctx context.Context, profileID uint) ([]models.Review, error) {
	var out []models.Review
	if err := r.db.WithContext(ctx).
		Where("service_profile_id = ?", profileID).
		Order("pub_date DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewGormRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

// UpdateReview only writes the mutable fields; target and author stay as
// they were validated.
func (r *ReviewGormRepository) UpdateReview(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).
		Model(rv).
		Select("text", "score").
		Updates(map[string]any{"text": rv.Text, "score": rv.Score}).Error
}

func (r *ReviewGormRepository) DeleteReview(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

// --------------------------------------------------
// Comment
// --------------------------------------------------

func (r *ReviewGormRepository) GetComment(ctx context.Context, reviewID, commentID uint) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND review_id = ?", commentID, reviewID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ReviewGormRepository) ListComments(ctx context.Context, reviewID uint) ([]models.Comment, error) {
	var out []models.Comment
	if err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("pub_date ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewGormRepository) CreateComment(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ReviewGormRepository) UpdateComment(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).
		Model(c).
		Update("text", c.Text).Error
}

func (r *ReviewGormRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

var _ domain.Repository = (*ReviewGormRepository)(nil)
