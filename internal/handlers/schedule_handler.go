package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pro-master/backend/internal/dto"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/middleware"
	scheduleuc "github.com/pro-master/backend/internal/usecase/schedule"
)

type ScheduleHandler struct {
	schedules *scheduleuc.Schedules
	log       *zap.Logger
}

func NewScheduleHandler(schedules *scheduleuc.Schedules, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

// Dates are YYYY-MM-DD, times HH:MM.
type CreateScheduleRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type UpdateScheduleRequest struct {
	Date  *string `json:"date"`
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ScheduleHandler) List(c *gin.Context) {
	profileID, ok := paramID(c, "id")
	if !ok {
		return
	}

	schedules, err := h.schedules.List(c.Request.Context(), profileID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewSchedules(schedules))
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	profileID, scheduleID, ok := schedulePath(c)
	if !ok {
		return
	}

	s, err := h.schedules.Get(c.Request.Context(), profileID, scheduleID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSchedule(s))
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	profileID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CreateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.schedules.Create(c.Request.Context(), scheduleuc.Input{
		Actor:            middleware.CurrentPrincipal(c),
		ServiceProfileID: profileID,
		Date:             req.Date,
		Start:            req.Start,
		End:              req.End,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSchedule(s))
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	profileID, scheduleID, ok := schedulePath(c)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.schedules.Update(c.Request.Context(), scheduleuc.UpdateInput{
		Actor:            middleware.CurrentPrincipal(c),
		Method:           c.Request.Method,
		ServiceProfileID: profileID,
		ScheduleID:       scheduleID,
		Date:             req.Date,
		Start:            req.Start,
		End:              req.End,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSchedule(s))
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	profileID, scheduleID, ok := schedulePath(c)
	if !ok {
		return
	}

	if err := h.schedules.Delete(c.Request.Context(), middleware.CurrentPrincipal(c), profileID, scheduleID); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func schedulePath(c *gin.Context) (profileID, scheduleID uint, ok bool) {
	if profileID, ok = paramID(c, "id"); !ok {
		return
	}
	scheduleID, ok = paramID(c, "schedule_id")
	return
}
