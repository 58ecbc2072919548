package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/domain/access"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/infra/storage"
	"github.com/pro-master/backend/internal/middleware"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/validators"
)

var (
	errClientProfileNotFound = httperr.Missing("client_profile_not_found", "Client profile not found.")
	errClientProfileExists   = httperr.Invalid("client_profile_exists", "This user already has a client profile.")
)

type ClientProfileHandler struct {
	db      *gorm.DB
	config  *config.Config
	storage storage.ImageStorage
	log     *zap.Logger
}

func NewClientProfileHandler(db *gorm.DB, cfg *config.Config, store storage.ImageStorage, log *zap.Logger) *ClientProfileHandler {
	return &ClientProfileHandler{db: db, config: cfg, storage: store, log: log}
}

type ClientProfileRequest struct {
	ProfileName *string `json:"profile_name" binding:"omitempty,max=150"`
	FirstName   *string `json:"first_name" binding:"omitempty,max=64"`
	LastName    *string `json:"last_name" binding:"omitempty,max=64"`
	Photo       *string `json:"photo"`
}

// ======================================================
// LIST
// ======================================================
func (h *ClientProfileHandler) List(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	page := httpresp.ParsePaging(c, h.config.PageSize)

	q := h.db.WithContext(c.Request.Context()).Model(&models.ClientProfile{})
	if !p.Staff {
		q = q.Where("user_id = ?", p.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var profiles []models.ClientProfile
	if err := q.Order("id ASC").Offset(page.Offset()).Limit(page.PageSize).Find(&profiles).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, page, total, profiles)
}

// ======================================================
// GET
// ======================================================
func (h *ClientProfileHandler) Get(c *gin.Context) {
	profile, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ======================================================
// CREATE
// ======================================================
func (h *ClientProfileHandler) Create(c *gin.Context) {
	var req ClientProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	if err := validateProfileName(req.ProfileName); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var existing int64
	if err := h.db.WithContext(ctx).Model(&models.ClientProfile{}).Where("user_id = ?", p.UserID).Count(&existing).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if existing > 0 {
		httperr.Respond(c, h.log, errClientProfileExists)
		return
	}

	profile := models.ClientProfile{
		UserID:      p.UserID,
		ProfileName: req.ProfileName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	}

	var stored []storage.StoredImage
	if req.Photo != nil && *req.Photo != "" {
		img, err := h.storage.Put(ctx, storage.FolderClients, *req.Photo)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		stored = append(stored, img)
		profile.PhotoURL, profile.PhotoKey = img.URL, img.Key
	}

	err := h.db.WithContext(ctx).Create(&profile).Error
	if err != nil {
		storage.Cleanup(ctx, h.storage, stored)
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, h.log, errClientProfileExists)
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// ======================================================
// UPDATE (PUT and PATCH)
// ======================================================
func (h *ClientProfileHandler) Update(c *gin.Context) {
	profile, ok := h.load(c)
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := access.CheckObject(access.AdminOrClient{}, p, c.Request.Method, *profile); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req ClientProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validateProfileName(req.ProfileName); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	updates := map[string]any{}
	if req.ProfileName != nil {
		updates["profile_name"] = *req.ProfileName
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}

	oldKey := profile.PhotoKey
	var stored []storage.StoredImage
	if req.Photo != nil {
		if *req.Photo == "" {
			updates["photo_url"], updates["photo_key"] = "", ""
		} else {
			img, err := h.storage.Put(ctx, storage.FolderClients, *req.Photo)
			if err != nil {
				httperr.Respond(c, h.log, err)
				return
			}
			stored = append(stored, img)
			updates["photo_url"], updates["photo_key"] = img.URL, img.Key
		}
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
			storage.Cleanup(ctx, h.storage, stored)
			httperr.Respond(c, h.log, err)
			return
		}
		if req.Photo != nil && oldKey != "" {
			if err := h.storage.Delete(ctx, oldKey); err != nil {
				h.log.Warn("old client photo not deleted", zap.String("key", oldKey), zap.Error(err))
			}
		}
	}

	if err := h.db.WithContext(ctx).First(profile, profile.ID).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ======================================================
// DELETE
// ======================================================
func (h *ClientProfileHandler) Delete(c *gin.Context) {
	profile, ok := h.load(c)
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := access.CheckObject(access.AdminOrClient{}, p, c.Request.Method, *profile); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(profile).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if profile.PhotoKey != "" {
		_ = h.storage.Delete(ctx, profile.PhotoKey)
	}

	c.Status(http.StatusNoContent)
}

// load fetches the profile named in the path. Non-staff callers only see
// their own profile; any other id is a 404.
func (h *ClientProfileHandler) load(c *gin.Context) (*models.ClientProfile, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	p := middleware.CurrentPrincipal(c)
	q := h.db.WithContext(c.Request.Context())
	if !p.Staff {
		q = q.Where("user_id = ?", p.UserID)
	}

	var profile models.ClientProfile
	if err := q.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, h.log, errClientProfileNotFound)
			return nil, false
		}
		httperr.Respond(c, h.log, err)
		return nil, false
	}
	return &profile, true
}

func validateProfileName(name *string) error {
	if name == nil {
		return nil
	}
	return validators.ValidateUsername(*name)
}
