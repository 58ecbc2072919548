package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/audit"
	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/domain/access"
	"github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/infra/storage"
	"github.com/pro-master/backend/internal/middleware"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/validators"
)

// EmployeeHandler manages the staff roster of an organization profile.
// Every route, reads included, is limited to the profile owner and staff.
type EmployeeHandler struct {
	db      *gorm.DB
	config  *config.Config
	storage storage.ImageStorage
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewEmployeeHandler(db *gorm.DB, cfg *config.Config, store storage.ImageStorage, dispatcher *audit.Dispatcher, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{db: db, config: cfg, storage: store, audit: dispatcher, log: log}
}

type CreateEmployeeRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=64"`
	LastName    string `json:"last_name" binding:"required,max=64"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Photo       string `json:"photo"`
}

func (h *EmployeeHandler) List(c *gin.Context) {
	profile, ok := h.ownedProfile(c)
	if !ok {
		return
	}

	var employees []models.Employee
	if err := h.db.WithContext(c.Request.Context()).
		Where("service_profile_id = ?", profile.ID).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	profile, ok := h.ownedProfile(c)
	if !ok {
		return
	}

	var req CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	phone, err := validators.NormalizePhone(req.PhoneNumber, h.config.PhoneDefaultRegion)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	var taken int64
	if err := h.db.WithContext(ctx).Model(&models.Employee{}).Where("phone_number = ?", phone).Count(&taken).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if taken > 0 {
		httperr.Respond(c, h.log, serviceprofile.ErrPhoneTaken)
		return
	}

	employee := models.Employee{
		ServiceProfileID: profile.ID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PhoneNumber:      phone,
	}

	var stored []storage.StoredImage
	if req.Photo != "" {
		img, err := h.storage.Put(ctx, storage.FolderEmployees, req.Photo)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		stored = append(stored, img)
		employee.PhotoURL, employee.PhotoKey = img.URL, img.Key
	}

	if err := h.db.WithContext(ctx).Create(&employee).Error; err != nil {
		storage.Cleanup(ctx, h.storage, stored)
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, h.log, serviceprofile.ErrPhoneTaken)
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(middleware.CurrentPrincipal(c).UserID),
		Action:   "employee_added",
		Entity:   "employee",
		EntityID: audit.Ptr(employee.ID),
		Metadata: map[string]any{"service_profile_id": profile.ID},
	})

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	profile, ok := h.ownedProfile(c)
	if !ok {
		return
	}
	employeeID, ok := paramID(c, "employee_id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var employee models.Employee
	err := h.db.WithContext(ctx).Where("service_profile_id = ?", profile.ID).First(&employee, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, h.log, serviceprofile.ErrEmployeeNotFound)
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.db.WithContext(ctx).Delete(&employee).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if employee.PhotoKey != "" {
		_ = h.storage.Delete(ctx, employee.PhotoKey)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(middleware.CurrentPrincipal(c).UserID),
		Action:   "employee_removed",
		Entity:   "employee",
		EntityID: audit.Ptr(employee.ID),
	})

	c.Status(http.StatusNoContent)
}

// ownedProfile loads the profile in the path and requires the caller to
// own it or be staff. The object check runs as a write so reads are
// covered too.
func (h *EmployeeHandler) ownedProfile(c *gin.Context) (*models.ServiceProfile, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var profile models.ServiceProfile
	err := h.db.WithContext(c.Request.Context()).First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, h.log, serviceprofile.ErrNotFound)
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return nil, false
	}

	p := middleware.CurrentPrincipal(c)
	if err := access.CheckObject(access.AdminOrMaster{}, p, http.MethodPost, profile); err != nil {
		httperr.Respond(c, h.log, err)
		return nil, false
	}
	return &profile, true
}
