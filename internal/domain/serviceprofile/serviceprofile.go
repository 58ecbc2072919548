package serviceprofile

import (
	"context"

	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/models"
)

var (
	ErrNotFound         = httperr.Missing("service_profile_not_found", "Service profile not found.")
	ErrCategoryNotFound = httperr.Missing("category_not_found", "Category not found.")
	ErrServiceNotFound  = httperr.Missing("service_not_found", "Service not found.")
	ErrEmployeeNotFound = httperr.Missing("employee_not_found", "Employee not found.")
	ErrImageNotFound    = httperr.Missing("image_not_found", "Image not found.")
	ErrPhoneTaken       = httperr.Invalid("phone_number_taken", "An employee with this phone number already exists.")
)

// Repository is transaction-aware: InTx runs fn against a repository bound
// to a single transaction.
type Repository interface {
	InTx(ctx context.Context, fn func(tx Repository) error) error

	GetByID(ctx context.Context, id uint) (*models.ServiceProfile, error)
	Create(ctx context.Context, p *models.ServiceProfile) error
	Update(ctx context.Context, p *models.ServiceProfile) error
	Delete(ctx context.Context, id uint) error

	ExistingCategoryIDs(ctx context.Context, ids []uint) ([]uint, error)
	ExistingServiceIDs(ctx context.Context, ids []uint) ([]uint, error)
	ReplaceCategories(ctx context.Context, profileID uint, ids []uint) error
	ReplaceServices(ctx context.Context, profileID uint, ids []uint) error

	AddImages(ctx context.Context, images []models.Image) error
	ListImages(ctx context.Context, profileID uint) ([]models.Image, error)
}
