package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/infra/storage"
	"github.com/pro-master/backend/internal/middleware"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/validators"
)

var errUserNotFound = httperr.Missing("user_not_found", "User not found.")

type UserHandler struct {
	db      *gorm.DB
	config  *config.Config
	storage storage.ImageStorage
	log     *zap.Logger
}

func NewUserHandler(db *gorm.DB, cfg *config.Config, store storage.ImageStorage, log *zap.Logger) *UserHandler {
	return &UserHandler{db: db, config: cfg, storage: store, log: log}
}

type UpdateMeRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=150"`
	LastName    *string `json:"last_name" binding:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number"`
}

// List shows every user to staff and only the caller to everyone else.
func (h *UserHandler) List(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	page := httpresp.ParsePaging(c, h.config.PageSize)

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})
	if !p.Staff {
		q = q.Where("id = ?", p.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var users []models.User
	if err := q.Order("id ASC").Offset(page.Offset()).Limit(page.PageSize).Find(&users).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, page, total, users)
}

func (h *UserHandler) Me(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, p.UserID).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var favorites int64
	if err := h.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", p.UserID).Count(&favorites).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var profile *models.ClientProfile
	if p.HasClientProfile() {
		var cp models.ClientProfile
		if err := h.db.WithContext(ctx).First(&cp, p.ClientProfileID).Error; err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		profile = &cp
	}

	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"client_profile":  profile,
		"favorites_count": favorites,
	})
}

// Get returns a user to staff or to the user itself; anyone else gets a 404.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if !p.Staff && p.UserID != id {
		httperr.Respond(c, h.log, errUserNotFound)
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, h.log, errUserNotFound)
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	p := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		phone, err := validators.NormalizePhone(*req.PhoneNumber, h.config.PhoneDefaultRegion)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		updates["phone_number"] = phone
	}

	if len(updates) > 0 {
		err := h.db.WithContext(ctx).Model(&models.User{ID: p.UserID}).Updates(updates).Error
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, h.log, errPhoneTaken)
			return
		}
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, p.UserID).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteMe removes the account; profiles, reviews, comments, favorites
// and appointments go with it through foreign-key cascades. Stored images
// of everything the cascade removes are deleted once the rows are gone.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	keys, err := h.storedKeys(ctx, p.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.db.WithContext(ctx).Delete(&models.User{}, p.UserID).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	storage.Cleanup(context.WithoutCancel(ctx), h.storage, keys)
	c.Status(http.StatusNoContent)
}

// storedKeys lists the object keys held by the user's client profile and
// by the service profiles it owns, with their images and employees.
func (h *UserHandler) storedKeys(ctx context.Context, userID uint) ([]storage.StoredImage, error) {
	db := h.db.WithContext(ctx)
	owned := db.Model(&models.ServiceProfile{}).Select("id").Where("owner_id = ?", userID)

	sources := []struct {
		model  any
		column string
		where  string
		arg    any
	}{
		{&models.ClientProfile{}, "photo_key", "user_id = ?", userID},
		{&models.ServiceProfile{}, "profile_foto_key", "owner_id = ?", userID},
		{&models.Image{}, "storage_key", "service_profile_id IN (?)", owned},
		{&models.Employee{}, "photo_key", "service_profile_id IN (?)", owned},
	}

	var out []storage.StoredImage
	for _, src := range sources {
		var keys []string
		if err := db.Model(src.model).
			Where(src.where, src.arg).
			Where(src.column+" <> ''").
			Pluck(src.column, &keys).Error; err != nil {
			return nil, err
		}
		for _, k := range keys {
			out = append(out, storage.StoredImage{Key: k})
		}
	}
	return out, nil
}
