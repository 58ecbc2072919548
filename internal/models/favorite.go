package models

import "time"

// Favorite is the user ↔ service profile interest edge.
type Favorite struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"not null;uniqueIndex:idx_favorite_user_profile" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceProfileID uint            `gorm:"not null;index;uniqueIndex:idx_favorite_user_profile" json:"service_profile_id"`
	ServiceProfile   *ServiceProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
