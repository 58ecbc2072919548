package models

import "time"

// User is the single identity record. IsMaster discriminates masters
// (service-profile owners) from clients, who get a ClientProfile.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PhoneNumber  string `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:150" json:"first_name"`
	LastName     string `gorm:"size:150" json:"last_name"`

	IsMaster bool `gorm:"not null;default:false" json:"is_master"`
	IsStaff  bool `gorm:"not null;default:false" json:"is_staff"`
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
