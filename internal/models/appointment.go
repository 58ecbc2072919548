package models

import (
	"time"

	"gorm.io/datatypes"
)

// Appointment books one time of day inside a schedule. A slot can be taken
// once (idx_appointment_slot) and a client cannot hold two appointments at
// the same moment (idx_appointment_client_time).
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ScheduleID uint      `gorm:"not null;uniqueIndex:idx_appointment_slot" json:"schedule_id"`
	Schedule   *Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientProfileID uint           `gorm:"not null;index;uniqueIndex:idx_appointment_client_time" json:"client_profile_id"`
	ClientProfile   *ClientProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AppointmentTime datatypes.Time `gorm:"not null;uniqueIndex:idx_appointment_slot" json:"appointment_time"`
	AppointmentAt   time.Time      `gorm:"not null;uniqueIndex:idx_appointment_client_time" json:"appointment_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (a Appointment) ClientUserID() uint {
	if a.ClientProfile == nil {
		return 0
	}
	return a.ClientProfile.UserID
}
