package schedule

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
)

type Input struct {
	Actor            access.Principal
	ServiceProfileID uint
	Date             string
	Start            string
	End              string
}

type UpdateInput struct {
	Actor            access.Principal
	Method           string
	ServiceProfileID uint
	ScheduleID       uint
	Date             *string
	Start            *string
	End              *string
}

type Schedules struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSchedules(repo domain.Repository, audit *audit.Dispatcher) *Schedules {
	return &Schedules{repo: repo, audit: audit}
}

// Create adds a working interval to a profile the actor owns (or any
// profile for staff).
func (uc *Schedules) Create(ctx context.Context, in Input) (*models.Schedule, error) {
	if err := access.Check(access.AdminOrMaster{}, in.Actor, http.MethodPost); err != nil {
		return nil, err
	}

	profile, err := uc.profile(ctx, in.ServiceProfileID)
	if err != nil {
		return nil, err
	}
	if err := access.CheckObject(access.AdminOrMaster{}, in.Actor, http.MethodPost, profile); err != nil {
		return nil, err
	}

	s := &models.Schedule{ServiceProfileID: profile.ID}
	if err := parseInto(s, &in.Date, &in.Start, &in.End); err != nil {
		return nil, err
	}

	if err := uc.save(ctx, s, uc.repo.CreateSchedule); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.Actor.UserID),
		Action:   "schedule_created",
		Entity:   "schedule",
		EntityID: audit.Ptr(s.ID),
	})
	return s, nil
}

func (uc *Schedules) Update(ctx context.Context, in UpdateInput) (*models.Schedule, error) {
	if err := access.Check(access.AdminOrMaster{}, in.Actor, in.Method); err != nil {
		return nil, err
	}

	s, err := uc.Get(ctx, in.ServiceProfileID, in.ScheduleID)
	if err != nil {
		return nil, err
	}
	if err := access.CheckObject(access.AdminOrMaster{}, in.Actor, in.Method, s); err != nil {
		return nil, err
	}

	before := *s
	if err := parseInto(s, in.Date, in.Start, in.End); err != nil {
		return nil, err
	}
	if err := uc.keepsBookings(ctx, &before, s); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, s, uc.repo.UpdateSchedule); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *Schedules) Delete(ctx context.Context, actor access.Principal, profileID, scheduleID uint) error {
	if err := access.Check(access.AdminOrMaster{}, actor, http.MethodDelete); err != nil {
		return err
	}

	s, err := uc.Get(ctx, profileID, scheduleID)
	if err != nil {
		return err
	}
	if err := access.CheckObject(access.AdminOrMaster{}, actor, http.MethodDelete, s); err != nil {
		return err
	}
	return uc.repo.DeleteSchedule(ctx, s.ID)
}

func (uc *Schedules) List(ctx context.Context, profileID uint) ([]models.Schedule, error) {
	if _, err := uc.profile(ctx, profileID); err != nil {
		return nil, err
	}
	return uc.repo.ListSchedules(ctx, profileID)
}

// Get finds a schedule under its profile; one that belongs to another
// profile is reported as missing.
func (uc *Schedules) Get(ctx context.Context, profileID, scheduleID uint) (*models.Schedule, error) {
	if _, err := uc.profile(ctx, profileID); err != nil {
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

// save pre-checks the slot, then lets the unique index settle races.
func (uc *Schedules) save(ctx context.Context, s *models.Schedule, write func(context.Context, *models.Schedule) error) error {
	exists, err := uc.repo.ScheduleExists(ctx, s)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrScheduleExists
	}

	if err := write(ctx, s); err != nil {
		if httperr.IsUniqueViolation(err) {
			return domain.ErrScheduleExists
		}
		return err
	}
	return nil
}

// keepsBookings rejects an update that would strand existing appointments:
// a booked schedule cannot move to another date, and its interval must
// still cover every booked time.
func (uc *Schedules) keepsBookings(ctx context.Context, before, after *models.Schedule) error {
	dateMoved := !time.Time(before.Date).Equal(time.Time(after.Date))
	if !dateMoved && before.StartTime == after.StartTime && before.EndTime == after.EndTime {
		return nil
	}

	booked, err := uc.repo.ListAppointments(ctx, after.ID)
	if err != nil {
		return err
	}
	for _, ap := range booked {
		if dateMoved || !domain.WithinSchedule(after, ap.AppointmentTime) {
			return domain.ErrBookingsOutside
		}
	}
	return nil
}

func (uc *Schedules) profile(ctx context.Context, id uint) (*models.ServiceProfile, error) {
	p, err := uc.repo.GetServiceProfile(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, serviceprofile.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func parseInto(s *models.Schedule, date, start, end *string) error {
	if date != nil {
		d, err := domain.ParseDate(*date)
		if err != nil {
			return err
		}
		s.Date = d
	}
	if start != nil {
		t, err := domain.ParseClock(*start)
		if err != nil {
			return err
		}
		s.StartTime = t
	}
	if end != nil {
		t, err := domain.ParseClock(*end)
		if err != nil {
			return err
		}
		s.EndTime = t
	}
	return domain.ValidateInterval(s.StartTime, s.EndTime)
}
