package dto

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/pro-master/backend/internal/models"
)

type ScheduleDTO struct {
	ID               uint   `json:"id"`
	ServiceProfileID uint   `json:"service_profile"`
	Date             string `json:"date"`
	Start            string `json:"start"`
	End              string `json:"end"`
}

type AppointmentDTO struct {
	ID              uint      `json:"id"`
	ScheduleID      uint      `json:"schedule"`
	ClientProfileID uint      `json:"client_profile"`
	AppointmentTime string    `json:"appointment_time"`
	AppointmentAt   time.Time `json:"appointment_at"`
}

func Clock(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func NewSchedule(s *models.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:               s.ID,
		ServiceProfileID: s.ServiceProfileID,
		Date:             time.Time(s.Date).Format("2006-01-02"),
		Start:            Clock(s.StartTime),
		End:              Clock(s.EndTime),
	}
}

func NewSchedules(in []models.Schedule) []ScheduleDTO {
	out := make([]ScheduleDTO, 0, len(in))
	for i := range in {
		out = append(out, NewSchedule(&in[i]))
	}
	return out
}

func NewAppointment(a *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              a.ID,
		ScheduleID:      a.ScheduleID,
		ClientProfileID: a.ClientProfileID,
		AppointmentTime: Clock(a.AppointmentTime),
		AppointmentAt:   a.AppointmentAt,
	}
}

func NewAppointments(in []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(in))
	for i := range in {
		out = append(out, NewAppointment(&in[i]))
	}
	return out
}
