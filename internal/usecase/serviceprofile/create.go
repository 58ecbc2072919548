package serviceprofile

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/audit"
	"github.com/pro-master/backend/internal/domain/access"
	domain "github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/infra/storage"
	"github.com/pro-master/backend/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type Fields struct {
	Name                  string
	Description           string
	PhoneNumber           string
	FirstName             *string
	LastName              *string
	SiteAddress           *string
	SocialNetworkContacts *string
	IsOrganization        bool
}

type CreateInput struct {
	Actor access.Principal
	Fields

	Categories  []uint
	Services    []uint
	ProfileFoto string
	Images      []string
}

// ======================================================
// USE CASE
// ======================================================

type Profiles struct {
	repo    domain.Repository
	storage storage.ImageStorage
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewProfiles(repo domain.Repository, st storage.ImageStorage, audit *audit.Dispatcher, log *zap.Logger) *Profiles {
	if log == nil {
		log = zap.NewNop()
	}
	return &Profiles{repo: repo, storage: st, audit: audit, log: log}
}

// Create writes the profile, its category and service links and its image
// rows in one transaction. Objects uploaded for a transaction that rolls
// back are removed again.
func (uc *Profiles) Create(ctx context.Context, in CreateInput) (*models.ServiceProfile, error) {
	if err := access.Check(access.AdminOrMaster{}, in.Actor, http.MethodPost); err != nil {
		return nil, err
	}

	var (
		profile  *models.ServiceProfile
		uploaded []storage.StoredImage
	)

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		if err := validateLinks(ctx, tx, in.Categories, in.Services, true); err != nil {
			return err
		}

		profile = &models.ServiceProfile{OwnerID: in.Actor.UserID}
		in.Fields.apply(profile)

		if in.ProfileFoto != "" {
			img, err := uc.storage.Put(ctx, storage.FolderProfiles, in.ProfileFoto)
			if err != nil {
				return err
			}
			uploaded = append(uploaded, img)
			profile.ProfileFotoURL, profile.ProfileFotoKey = img.URL, img.Key
		}

		if err := tx.Create(ctx, profile); err != nil {
			return err
		}
		if err := tx.ReplaceCategories(ctx, profile.ID, in.Categories); err != nil {
			return err
		}
		if err := tx.ReplaceServices(ctx, profile.ID, in.Services); err != nil {
			return err
		}

		rows, stored, err := uc.upload(ctx, profile.ID, in.Images)
		uploaded = append(uploaded, stored...)
		if err != nil {
			return err
		}
		return tx.AddImages(ctx, rows)
	})
	if err != nil {
		if len(uploaded) > 0 {
			uc.log.Debug("service profile create rolled back, removing uploads",
				zap.Int("objects", len(uploaded)), zap.Error(err))
		}
		storage.Cleanup(context.WithoutCancel(ctx), uc.storage, uploaded)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Actor.UserID),
		Action:   "service_profile_created",
		Entity:   "service_profile",
		EntityID: audit.Ptr(profile.ID),
	})
	return profile, nil
}

func (uc *Profiles) upload(ctx context.Context, profileID uint, payloads []string) ([]models.Image, []storage.StoredImage, error) {
	var (
		rows   []models.Image
		stored []storage.StoredImage
	)
	for _, payload := range payloads {
		img, err := uc.storage.Put(ctx, storage.FolderImages, payload)
		if err != nil {
			return nil, stored, err
		}
		stored = append(stored, img)
		rows = append(rows, models.Image{ServiceProfileID: profileID, URL: img.URL, StorageKey: img.Key})
	}
	return rows, stored, nil
}

func (f Fields) apply(p *models.ServiceProfile) {
	p.Name = f.Name
	p.Description = f.Description
	p.PhoneNumber = f.PhoneNumber
	p.FirstName = f.FirstName
	p.LastName = f.LastName
	p.SiteAddress = f.SiteAddress
	p.SocialNetworkContacts = f.SocialNetworkContacts
	p.IsOrganization = f.IsOrganization
}

func validateLinks(ctx context.Context, repo domain.Repository, categories, services []uint, required bool) error {
	if categories != nil || required {
		found, err := repo.ExistingCategoryIDs(ctx, categories)
		if err != nil {
			return err
		}
		if err := domain.ValidateLinks("categories", categories, found, true); err != nil {
			return err
		}
	}
	if services != nil {
		found, err := repo.ExistingServiceIDs(ctx, services)
		if err != nil {
			return err
		}
		if err := domain.ValidateLinks("services", services, found, false); err != nil {
			return err
		}
	}
	return nil
}

func (uc *Profiles) load(ctx context.Context, repo domain.Repository, id uint) (*models.ServiceProfile, error) {
	p, err := repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
