package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/models"
)

type ServiceProfileGormRepository struct {
	db *gorm.DB
}

func NewServiceProfileGormRepository(db *gorm.DB) *ServiceProfileGormRepository {
	return &ServiceProfileGormRepository{db: db}
}

func (r *ServiceProfileGormRepository) InTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ServiceProfileGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Profile
// --------------------------------------------------

func (r *ServiceProfileGormRepository) GetByID(ctx context.Context, id uint) (*models.ServiceProfile, error) {
	var p models.ServiceProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ServiceProfileGormRepository) Create(ctx context.Context, p *models.ServiceProfile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *ServiceProfileGormRepository) Update(ctx context.Context, p *models.ServiceProfile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *ServiceProfileGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ServiceProfile{}, id).Error
}

// --------------------------------------------------
// Links
// --------------------------------------------------

func (r *ServiceProfileGormRepository) ExistingCategoryIDs(ctx context.Context, ids []uint) ([]uint, error) {
	return existingIDs(r.db.WithContext(ctx), &models.Category{}, ids)
}

func (r *ServiceProfileGormRepository) ExistingServiceIDs(ctx context.Context, ids []uint) ([]uint, error) {
	return existingIDs(r.db.WithContext(ctx), &models.Service{}, ids)
}

func (r *ServiceProfileGormRepository) ReplaceCategories(ctx context.Context, profileID uint, ids []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("service_profile_id = ?", profileID).
		Delete(&models.ServiceProfileCategory{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	rows := make([]models.ServiceProfileCategory, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.ServiceProfileCategory{ServiceProfileID: profileID, CategoryID: id})
	}
	return db.Omit(clause.Associations).Create(&rows).Error
}

func (r *ServiceProfileGormRepository) ReplaceServices(ctx context.Context, profileID uint, ids []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("service_profile_id = ?", profileID).
		Delete(&models.ServiceProfileService{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	rows := make([]models.ServiceProfileService, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.ServiceProfileService{ServiceProfileID: profileID, ServiceID: id})
	}
	return db.Omit(clause.Associations).Create(&rows).Error
}

// --------------------------------------------------
// Images
// --------------------------------------------------

func (r *ServiceProfileGormRepository) AddImages(ctx context.Context, images []models.Image) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&images).Error
}

func (r *ServiceProfileGormRepository) ListImages(ctx context.Context, profileID uint) ([]models.Image, error) {
	var out []models.Image
	if err := r.db.WithContext(ctx).
		Where("service_profile_id = ?", profileID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func existingIDs(db *gorm.DB, model any, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []uint
	if err := db.Model(model).Where("id IN ?", ids).Pluck("id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.Repository = (*ServiceProfileGormRepository)(nil)
