package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogsHandler is mounted behind a staff-only route.
type AuditLogsHandler struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger
}

func NewAuditLogsHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, config: cfg, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page := httpresp.ParsePaging(c, h.config.PageSize)
	loc := timezone.Location(h.config.Timezone)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters; unparsable values are ignored
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if uid, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil {
		q = q.Where("user_id = ?", uid)
	}
	if from, err := time.ParseInLocation("2006-01-02", c.Query("from"), loc); err == nil {
		q = q.Where("created_at >= ?", from.UTC())
	}
	if to, err := time.ParseInLocation("2006-01-02", c.Query("to"), loc); err == nil {
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, page, total, logs)
}
