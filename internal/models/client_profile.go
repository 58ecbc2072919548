package models

import "time"

// ClientProfile is one-to-one with a non-master User.
type ClientProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProfileName *string `gorm:"size:150" json:"profile_name"`
	FirstName   *string `gorm:"size:64" json:"first_name"`
	LastName    *string `gorm:"size:64" json:"last_name"`
	PhotoURL    string  `gorm:"size:512" json:"photo"`
	PhotoKey    string  `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p ClientProfile) ClientUserID() uint {
	return p.UserID
}
