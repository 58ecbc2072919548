package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/models"
)

var (
	errCategoryNotFound    = httperr.Missing("category_not_found", "Category not found.")
	errServiceNotFound     = httperr.Missing("service_not_found", "Service not found.")
	errCategoryNameTaken   = httperr.Invalid("category_exists", "A category with this name already exists.")
	errServiceNameTaken    = httperr.Invalid("service_exists", "A service with this name already exists.")
	errCategoryHasChildren = httperr.Invalid("category_protected", "Category has subcategories and cannot be deleted.")
	errParentNotFound      = httperr.Invalid("unknown_parent_category", "Parent category does not exist.")
	errParentIsSelf        = httperr.Invalid("invalid_parent_category", "A category cannot be its own parent.")
)

// CatalogHandler serves categories and services. Writes are staff-only,
// enforced at the route.
type CatalogHandler struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger
}

func NewCatalogHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{db: db, config: cfg, log: log}
}

// --------- Requests ---------

type CategoryRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=256"`
	ParentCategory *uint   `json:"parent_category"`
}

type ServiceRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=256"`
	Description *string `json:"description"`
}

// --------- Categories ---------

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePrefix(name))
	}

	var categories []models.Category
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, categories)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, ok := h.category(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil {
		httperr.BadRequest(c, "name_required", "Name is required.")
		return
	}

	ctx := c.Request.Context()
	if err := h.checkParent(c, 0, req.ParentCategory); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	category := models.Category{Name: strings.TrimSpace(*req.Name), ParentCategoryID: req.ParentCategory}
	if err := h.db.WithContext(ctx).Create(&category).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, h.log, errCategoryNameTaken)
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	category, ok := h.category(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.ParentCategory != nil {
		if err := h.checkParent(c, category.ID, req.ParentCategory); err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		updates["parent_category_id"] = *req.ParentCategory
	}

	ctx := c.Request.Context()
	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				httperr.Respond(c, h.log, errCategoryNameTaken)
				return
			}
			httperr.Respond(c, h.log, err)
			return
		}
	}

	if err := h.db.WithContext(ctx).First(category, category.ID).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory refuses to remove a parent; the foreign key is RESTRICT.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	category, ok := h.category(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var children int64
	if err := h.db.WithContext(ctx).Model(&models.Category{}).Where("parent_category_id = ?", category.ID).Count(&children).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if children > 0 {
		httperr.Respond(c, h.log, errCategoryHasChildren)
		return
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.ServiceProfileCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		httperr.Respond(c, h.log, errCategoryHasChildren)
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) category(c *gin.Context) (*models.Category, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var category models.Category
	if err := h.db.WithContext(c.Request.Context()).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errCategoryNotFound
		}
		httperr.Respond(c, h.log, err)
		return nil, false
	}
	return &category, true
}

func (h *CatalogHandler) checkParent(c *gin.Context, selfID uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if selfID != 0 && *parentID == selfID {
		return errParentIsSelf
	}

	var n int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.Category{}).Where("id = ?", *parentID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errParentNotFound
	}
	return nil
}

// --------- Services ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	page := httpresp.ParsePaging(c, h.config.PageSize)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Service{})
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePrefix(name))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var services []models.Service
	if err := q.Order("name ASC").Offset(page.Offset()).Limit(page.PageSize).Find(&services).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, page, total, services)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	service, ok := h.service(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil {
		httperr.BadRequest(c, "name_required", "Name is required.")
		return
	}

	service := models.Service{Name: strings.TrimSpace(*req.Name)}
	if req.Description != nil {
		service.Description = *req.Description
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, h.log, errServiceNameTaken)
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	service, ok := h.service(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	ctx := c.Request.Context()
	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(service).Updates(updates).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				httperr.Respond(c, h.log, errServiceNameTaken)
				return
			}
			httperr.Respond(c, h.log, err)
			return
		}
	}

	if err := h.db.WithContext(ctx).First(service, service.ID).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	service, ok := h.service(c)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", service.ID).Delete(&models.ServiceProfileService{}).Error; err != nil {
			return err
		}
		return tx.Delete(service).Error
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) service(c *gin.Context) (*models.Service, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errServiceNotFound
		}
		httperr.Respond(c, h.log, err)
		return nil, false
	}
	return &service, true
}
