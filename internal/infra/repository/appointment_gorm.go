package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/pro-master/backend/internal/domain/appointment"
	"github.com/pro-master/backend/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Service profile
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServiceProfile(ctx context.Context, id uint) (*models.ServiceProfile, error) {
	var p models.ServiceProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSchedule(ctx context.Context, profileID, scheduleID uint) (*models.Schedule, error) {
	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Preload("ServiceProfile").
		Where("id = ? AND service_profile_id = ?", scheduleID, profileID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AppointmentGormRepository) ListSchedules(ctx context.Context, profileID uint) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := r.db.WithContext(ctx).
		Where("service_profile_id = ?", profileID).
		Order("date ASC, start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) ScheduleExists(ctx context.Context, s *models.Schedule) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where(
			"service_profile_id = ? AND date = ? AND start_time = ? AND end_time = ? AND id <> ?",
			s.ServiceProfileID, s.Date, s.StartTime, s.EndTime, s.ID,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateSchedule(ctx context.Context, s *models.Schedule) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *AppointmentGormRepository) UpdateSchedule(ctx context.Context, s *models.Schedule) error {
	return r.db.WithContext(ctx).
		Model(s).
		Omit(clause.Associations).
		Updates(map[string]any{
			"date":       s.Date,
			"start_time": s.StartTime,
			"end_time":   s.EndTime,
		}).Error
}

func (r *AppointmentGormRepository) DeleteSchedule(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Schedule{}, id).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) SlotTaken(ctx context.Context, scheduleID uint, at datatypes.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("schedule_id = ? AND appointment_time = ?", scheduleID, at).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) ClientBusy(ctx context.Context, clientProfileID uint, at time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_profile_id = ? AND appointment_at = ?", clientProfileID, at).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, scheduleID, appointmentID uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("ClientProfile").
		Where("id = ? AND schedule_id = ?", appointmentID, scheduleID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(ctx context.Context, scheduleID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("appointment_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)
