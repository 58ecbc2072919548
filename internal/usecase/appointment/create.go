package appointment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/audit"
	"github.com/pro-master/backend/internal/domain/access"
	domain "github.com/pro-master/backend/internal/domain/appointment"
	"github.com/pro-master/backend/internal/domain/serviceprofile"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor            access.Principal
	ServiceProfileID uint
	ScheduleID       uint
	Time             string
}

// ======================================================
// USE CASE
// ======================================================

type Appointments struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
	now   func() time.Time
}

func NewAppointments(repo domain.Repository, audit *audit.Dispatcher, tz string) *Appointments {
	return &Appointments{
		repo:  repo,
		audit: audit,
		tz:    tz,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Appointments) Create(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {
	// --------------------------------------------------
	// Who may book
	// --------------------------------------------------
	if err := access.Check(access.AdminOrClient{}, in.Actor, http.MethodPost); err != nil {
		return nil, err
	}
	if !in.Actor.HasClientProfile() {
		return nil, domain.ErrClientProfileNeeded
	}

	// --------------------------------------------------
	// Schedule under the named profile
	// --------------------------------------------------
	s, err := uc.schedule(ctx, in.ServiceProfileID, in.ScheduleID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Time inside [start, end) and not in the past
	// --------------------------------------------------
	at, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, err
	}
	if !domain.WithinSchedule(s, at) {
		return nil, domain.ErrOutsideSchedule
	}

	when := domain.At(s.Date, at, timezone.Location(uc.tz))
	if when.Before(uc.now()) {
		return nil, domain.ErrInPast
	}

	// --------------------------------------------------
	// Conflicts (fast path; unique indexes decide races)
	// --------------------------------------------------
	taken, err := uc.repo.SlotTaken(ctx, s.ID, at)
	if err != nil {
		return nil, err
	}
	busy, err := uc.repo.ClientBusy(ctx, in.Actor.ClientProfileID, when.UTC())
	if err != nil {
		return nil, err
	}
	if taken || busy {
		return nil, domain.ErrAppointmentConflict
	}

	ap := &models.Appointment{
		ScheduleID:      s.ID,
		ClientProfileID: in.Actor.ClientProfileID,
		AppointmentTime: at,
		AppointmentAt:   when.UTC(),
	}
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, domain.ErrAppointmentConflict
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Actor.UserID),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{"schedule_id": s.ID, "at": ap.AppointmentAt},
	})
	return ap, nil
}

func (uc *Appointments) Delete(ctx context.Context, actor access.Principal, profileID, scheduleID, appointmentID uint) error {
	if err := access.Check(access.AdminOrClient{}, actor, http.MethodDelete); err != nil {
		return err
	}

	ap, err := uc.Get(ctx, profileID, scheduleID, appointmentID)
	if err != nil {
		return err
	}
	if err := access.CheckObject(access.AdminOrClient{}, actor, http.MethodDelete, ap); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(actor.UserID),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
	})
	return nil
}

func (uc *Appointments) List(ctx context.Context, profileID, scheduleID uint) ([]models.Appointment, error) {
	s, err := uc.schedule(ctx, profileID, scheduleID)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListAppointments(ctx, s.ID)
}

func (uc *Appointments) Get(ctx context.Context, profileID, scheduleID, appointmentID uint) (*models.Appointment, error) {
	s, err := uc.schedule(ctx, profileID, scheduleID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, s.ID, appointmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return ap, nil
}

func (uc *Appointments) schedule(ctx context.Context, profileID, scheduleID uint) (*models.Schedule, error) {
	if _, err := uc.repo.GetServiceProfile(ctx, profileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceprofile.ErrNotFound
		}
		return nil, err
	}

	s, err := uc.repo.GetSchedule(ctx, profileID, scheduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
