package models

import (
	"time"

	"gorm.io/datatypes"
)

// Schedule is one working interval of a service profile on a given date.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceProfileID uint            `gorm:"not null;uniqueIndex:idx_schedule_slot" json:"service_profile_id"`
	ServiceProfile   *ServiceProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_schedule_slot" json:"date"`
	StartTime datatypes.Time `gorm:"not null;uniqueIndex:idx_schedule_slot" json:"start"`
	EndTime   datatypes.Time `gorm:"not null;uniqueIndex:idx_schedule_slot" json:"end"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (s Schedule) OwnerUserID() uint {
	if s.ServiceProfile == nil {
		return 0
	}
	return s.ServiceProfile.OwnerID
}
