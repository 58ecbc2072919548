package appointment

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/pro-master/backend/internal/models"
)

type Repository interface {
	// -------- Service profile --------
	GetServiceProfile(ctx context.Context, id uint) (*models.ServiceProfile, error)

	// -------- Schedule --------
	// GetSchedule only finds schedules of the given profile and preloads it.
	GetSchedule(ctx context.Context, profileID, scheduleID uint) (*models.Schedule, error)
	ListSchedules(ctx context.Context, profileID uint) ([]models.Schedule, error)
	ScheduleExists(ctx context.Context, s *models.Schedule) (bool, error)
	CreateSchedule(ctx context.Context, s *models.Schedule) error
	UpdateSchedule(ctx context.Context, s *models.Schedule) error
	DeleteSchedule(ctx context.Context, id uint) error

	// -------- Appointment --------
	SlotTaken(ctx context.Context, scheduleID uint, at datatypes.Time) (bool, error)
	ClientBusy(ctx context.Context, clientProfileID uint, at time.Time) (bool, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	// GetAppointment only finds appointments of the given schedule and
	// preloads the client profile.
	GetAppointment(ctx context.Context, scheduleID, appointmentID uint) (*models.Appointment, error)
	ListAppointments(ctx context.Context, scheduleID uint) ([]models.Appointment, error)
	DeleteAppointment(ctx context.Context, id uint) error
}
