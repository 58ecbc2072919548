package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pro-master/backend/internal/dto"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/middleware"
	appointmentuc "github.com/pro-master/backend/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	appointments *appointmentuc.Appointments
	log          *zap.Logger
}

func NewAppointmentHandler(appointments *appointmentuc.Appointments, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	AppointmentTime string `json:"appointment_time" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	profileID, scheduleID, ok := schedulePath(c)
	if !ok {
		return
	}

	items, err := h.appointments.List(c.Request.Context(), profileID, scheduleID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewAppointments(items))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	profileID, scheduleID, ok := schedulePath(c)
	if !ok {
		return
	}
	appointmentID, ok := paramID(c, "appointment_id")
	if !ok {
		return
	}

	ap, err := h.appointments.Get(c.Request.Context(), profileID, scheduleID, appointmentID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	profileID, scheduleID, ok := schedulePath(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.appointments.Create(c.Request.Context(), appointmentuc.CreateAppointmentInput{
		Actor:            middleware.CurrentPrincipal(c),
		ServiceProfileID: profileID,
		ScheduleID:       scheduleID,
		Time:             req.AppointmentTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	profileID, scheduleID, ok := schedulePath(c)
	if !ok {
		return
	}
	appointmentID, ok := paramID(c, "appointment_id")
	if !ok {
		return
	}

	err := h.appointments.Delete(c.Request.Context(), middleware.CurrentPrincipal(c), profileID, scheduleID, appointmentID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
