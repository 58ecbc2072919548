package serviceprofile

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/pro-master/backend/internal/audit"
	"github.com/pro-master/backend/internal/domain/access"
	domain "github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/infra/storage"
	"github.com/pro-master/backend/internal/models"
)

// UpdateInput carries a partial update: nil fields are left alone. A
// non-nil Categories or Services list replaces the current links; Images
// are appended.
type UpdateInput struct {
	Actor  access.Principal
	Method string
	ID     uint

	Name                  *string
	Description           *string
	PhoneNumber           *string
	FirstName             *string
	LastName              *string
	SiteAddress           *string
	SocialNetworkContacts *string
	IsOrganization        *bool

	Categories  []uint
	Services    []uint
	ProfileFoto *string
	Images      []string
}

func (uc *Profiles) Update(ctx context.Context, in UpdateInput) (*models.ServiceProfile, error) {
	if err := access.Check(access.AdminOrMaster{}, in.Actor, in.Method); err != nil {
		return nil, err
	}

	var (
		profile  *models.ServiceProfile
		uploaded []storage.StoredImage
		oldFoto  string
	)

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		profile, err = uc.load(ctx, tx, in.ID)
		if err != nil {
			return err
		}
		if err := access.CheckObject(access.AdminOrMaster{}, in.Actor, in.Method, profile); err != nil {
			return err
		}

		if err := validateLinks(ctx, tx, in.Categories, in.Services, false); err != nil {
			return err
		}

		patch(profile, in)

		if in.ProfileFoto != nil {
			oldFoto = profile.ProfileFotoKey
			profile.ProfileFotoURL, profile.ProfileFotoKey = "", ""
			if *in.ProfileFoto != "" {
				img, err := uc.storage.Put(ctx, storage.FolderProfiles, *in.ProfileFoto)
				if err != nil {
					return err
				}
				uploaded = append(uploaded, img)
				profile.ProfileFotoURL, profile.ProfileFotoKey = img.URL, img.Key
			}
		}

		if err := tx.Update(ctx, profile); err != nil {
			return err
		}
		if in.Categories != nil {
			if err := tx.ReplaceCategories(ctx, profile.ID, in.Categories); err != nil {
				return err
			}
		}
		if in.Services != nil {
			if err := tx.ReplaceServices(ctx, profile.ID, in.Services); err != nil {
				return err
			}
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
			uc.log.Debug("service profile update rolled back, removing uploads",
				zap.Int("objects", len(uploaded)), zap.Error(err))
		}
		storage.Cleanup(context.WithoutCancel(ctx), uc.storage, uploaded)
		return nil, err
	}

	if oldFoto != "" {
		if err := uc.storage.Delete(ctx, oldFoto); err != nil {
			uc.log.Warn("old profile photo not deleted", zap.String("key", oldFoto), zap.Error(err))
		}
	}
	return profile, nil
}

func (uc *Profiles) Delete(ctx context.Context, actor access.Principal, id uint) error {
	if err := access.Check(access.AdminOrMaster{}, actor, http.MethodDelete); err != nil {
		return err
	}

	profile, err := uc.load(ctx, uc.repo, id)
	if err != nil {
		return err
	}
	if err := access.CheckObject(access.AdminOrMaster{}, actor, http.MethodDelete, profile); err != nil {
		return err
	}

	images, err := uc.repo.ListImages(ctx, profile.ID)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, profile.ID); err != nil {
		return err
	}

	keys := make([]storage.StoredImage, 0, len(images)+1)
	if profile.ProfileFotoKey != "" {
		keys = append(keys, storage.StoredImage{Key: profile.ProfileFotoKey})
	}
	for _, img := range images {
		keys = append(keys, storage.StoredImage{Key: img.StorageKey})
	}
	storage.Cleanup(ctx, uc.storage, keys)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(actor.UserID),
		Action:   "service_profile_deleted",
		Entity:   "service_profile",
		EntityID: audit.Ptr(profile.ID),
	})
	return nil
}

func patch(p *models.ServiceProfile, in UpdateInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.PhoneNumber != nil {
		p.PhoneNumber = *in.PhoneNumber
	}
	if in.FirstName != nil {
		p.FirstName = in.FirstName
	}
	if in.LastName != nil {
		p.LastName = in.LastName
	}
	if in.SiteAddress != nil {
		p.SiteAddress = in.SiteAddress
	}
	if in.SocialNetworkContacts != nil {
		p.SocialNetworkContacts = in.SocialNetworkContacts
	}
	if in.IsOrganization != nil {
		p.IsOrganization = *in.IsOrganization
	}
}
