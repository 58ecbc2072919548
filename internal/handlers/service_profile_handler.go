package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/dto"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/infra/repository"
	"github.com/pro-master/backend/internal/middleware"
	"github.com/pro-master/backend/internal/models"
	favoriteuc "github.com/pro-master/backend/internal/usecase/favorite"
	profileuc "github.com/pro-master/backend/internal/usecase/serviceprofile"
	"github.com/pro-master/backend/internal/validators"
)

type ServiceProfileHandler struct {
	db       *gorm.DB
	config   *config.Config
	query    *repository.ServiceProfileQuery
	profiles *profileuc.Profiles
	addFav   *favoriteuc.AddFavorite
	rmFav    *favoriteuc.RemoveFavorite
	log      *zap.Logger
}

func NewServiceProfileHandler(
	db *gorm.DB,
	cfg *config.Config,
	query *repository.ServiceProfileQuery,
	profiles *profileuc.Profiles,
	addFav *favoriteuc.AddFavorite,
	rmFav *favoriteuc.RemoveFavorite,
	log *zap.Logger,
) *ServiceProfileHandler {
	return &ServiceProfileHandler{
		db:       db,
		config:   cfg,
		query:    query,
		profiles: profiles,
		addFav:   addFav,
		rmFav:    rmFav,
		log:      log,
	}
}

// --------- Requests ---------

type CreateServiceProfileRequest struct {
	Name                  string  `json:"name" binding:"required,max=256"`
	Description           string  `json:"description" binding:"required"`
	PhoneNumber           string  `json:"phone_number" binding:"required"`
	FirstName             *string `json:"first_name" binding:"omitempty,max=64"`
	LastName              *string `json:"last_name" binding:"omitempty,max=64"`
	SiteAddress           *string `json:"site_address" binding:"omitempty,max=200"`
	SocialNetworkContacts *string `json:"social_network_contacts" binding:"omitempty,max=100"`
	IsOrganization        bool    `json:"is_organization"`

	Categories  []uint   `json:"categories"`
	Services    []uint   `json:"services"`
	ProfileFoto string   `json:"profile_foto"`
	Images      []string `json:"images"`
}

type UpdateServiceProfileRequest struct {
	Name                  *string `json:"name" binding:"omitempty,min=1,max=256"`
	Description           *string `json:"description"`
	PhoneNumber           *string `json:"phone_number"`
	FirstName             *string `json:"first_name" binding:"omitempty,max=64"`
	LastName              *string `json:"last_name" binding:"omitempty,max=64"`
	SiteAddress           *string `json:"site_address" binding:"omitempty,max=200"`
	SocialNetworkContacts *string `json:"social_network_contacts" binding:"omitempty,max=100"`
	IsOrganization        *bool   `json:"is_organization"`

	Categories  []uint   `json:"categories"`
	Services    []uint   `json:"services"`
	ProfileFoto *string  `json:"profile_foto"`
	Images      []string `json:"images"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ServiceProfileHandler) List(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	page := httpresp.ParsePaging(c, h.config.PageSize)

	filter := repository.ServiceProfileFilter{
		Categories: queryList(c, "categories"),
		Services:   queryList(c, "services"),
		Offset:     page.Offset(),
		Limit:      page.PageSize,
	}
	if p.Authenticated() {
		filter.ViewerID = p.UserID
		filter.IsFavorited = queryBool(c, "is_favorited")
	}

	items, total, err := h.query.List(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, page, total, items)
}

func (h *ServiceProfileHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.respondProfile(c, http.StatusOK, id)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *ServiceProfileHandler) Create(c *gin.Context) {
	var req CreateServiceProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	phone, err := validators.NormalizePhone(req.PhoneNumber, h.config.PhoneDefaultRegion)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), profileuc.CreateInput{
		Actor: middleware.CurrentPrincipal(c),
		Fields: profileuc.Fields{
			Name:                  strings.TrimSpace(req.Name),
			Description:           req.Description,
			PhoneNumber:           phone,
			FirstName:             req.FirstName,
			LastName:              req.LastName,
			SiteAddress:           req.SiteAddress,
			SocialNetworkContacts: req.SocialNetworkContacts,
			IsOrganization:        req.IsOrganization,
		},
		Categories:  req.Categories,
		Services:    req.Services,
		ProfileFoto: req.ProfileFoto,
		Images:      req.Images,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.respondProfile(c, http.StatusCreated, profile.ID)
}

// Update serves PUT and PATCH. Both apply the fields present in the body.
func (h *ServiceProfileHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.PhoneNumber != nil {
		phone, err := validators.NormalizePhone(*req.PhoneNumber, h.config.PhoneDefaultRegion)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		req.PhoneNumber = &phone
	}

	_, err := h.profiles.Update(c.Request.Context(), profileuc.UpdateInput{
		Actor:                 middleware.CurrentPrincipal(c),
		Method:                c.Request.Method,
		ID:                    id,
		Name:                  req.Name,
		Description:           req.Description,
		PhoneNumber:           req.PhoneNumber,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		SiteAddress:           req.SiteAddress,
		SocialNetworkContacts: req.SocialNetworkContacts,
		IsOrganization:        req.IsOrganization,
		Categories:            req.Categories,
		Services:              req.Services,
		ProfileFoto:           req.ProfileFoto,
		Images:                req.Images,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.respondProfile(c, http.StatusOK, id)
}

func (h *ServiceProfileHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.profiles.Delete(c.Request.Context(), middleware.CurrentPrincipal(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// FAVORITES
// ======================================================

func (h *ServiceProfileHandler) AddFavorite(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	out, err := h.addFav.Execute(c.Request.Context(), favoriteuc.Input{UserID: p.UserID, ServiceProfileID: id})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

func (h *ServiceProfileHandler) RemoveFavorite(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.rmFav.Execute(c.Request.Context(), favoriteuc.Input{UserID: p.UserID, ServiceProfileID: id}); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// IMAGES (read-only)
// ======================================================

func (h *ServiceProfileHandler) ListImages(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.profileExists(c, id) {
		return
	}

	var images []models.Image
	if err := h.db.WithContext(c.Request.Context()).
		Where("service_profile_id = ?", id).
		Order("id ASC").
		Find(&images).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.NewImages(images))
}

func (h *ServiceProfileHandler) GetImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	imageID, ok := paramID(c, "image_id")
	if !ok {
		return
	}

	var img models.Image
	err := h.db.WithContext(c.Request.Context()).
		Where("service_profile_id = ?", id).
		First(&img, imageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, h.log, serviceprofile.ErrImageNotFound)
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImageDTO{ID: img.ID, Image: img.URL})
}

// --------- helpers ---------

func (h *ServiceProfileHandler) respondProfile(c *gin.Context, status int, id uint) {
	p := middleware.CurrentPrincipal(c)

	out, err := h.query.Get(c.Request.Context(), id, p.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, h.log, serviceprofile.ErrNotFound)
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(status, out)
}

func (h *ServiceProfileHandler) profileExists(c *gin.Context, id uint) bool {
	var n int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.ServiceProfile{}).Where("id = ?", id).Count(&n).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return false
	}
	if n == 0 {
		httperr.Respond(c, h.log, serviceprofile.ErrNotFound)
		return false
	}
	return true
}
