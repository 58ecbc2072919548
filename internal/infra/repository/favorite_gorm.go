package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/pro-master/backend/internal/domain/favorite"
	"github.com/pro-master/backend/internal/models"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) GetServiceProfile(ctx context.Context, id uint) (*models.ServiceProfile, error) {
	var p models.ServiceProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *FavoriteGormRepository) Exists(ctx context.Context, userID, profileID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND service_profile_id = ?", userID, profileID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FavoriteGormRepository) Create(ctx context.Context, f *models.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FavoriteGormRepository) Delete(ctx context.Context, userID, profileID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND service_profile_id = ?", userID, profileID).
		Delete(&models.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *FavoriteGormRepository) Rating(ctx context.Context, profileID uint) (*float64, error) {
	return ratingOf(r.db.WithContext(ctx), profileID)
}

var _ domain.Repository = (*FavoriteGormRepository)(nil)
