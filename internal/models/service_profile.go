package models

import "time"

type ServiceProfile struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:256;not null" json:"name"`

	OwnerID uint  `gorm:"not null;index" json:"owner_id"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Description           string  `gorm:"type:text;not null" json:"description"`
	ProfileFotoURL        string  `gorm:"size:512" json:"profile_foto"`
	ProfileFotoKey        string  `gorm:"size:255" json:"-"`
	PhoneNumber           string  `gorm:"size:20;not null" json:"phone_number"`
	FirstName             *string `gorm:"size:64" json:"first_name"`
	LastName              *string `gorm:"size:64" json:"last_name"`
	SiteAddress           *string `gorm:"size:200" json:"site_address"`
	SocialNetworkContacts *string `gorm:"size:100" json:"social_network_contacts"`
	IsOrganization        bool    `gorm:"not null;default:false" json:"is_organization"`

	CreatedAt time.Time `gorm:"index" json:"created"`
	UpdatedAt time.Time `json:"-"`
}

func (p ServiceProfile) OwnerUserID() uint {
	return p.OwnerID
}

// Join rows. The composite primary key is the uniqueness guarantee.
type ServiceProfileCategory struct {
	ServiceProfileID uint            `gorm:"primaryKey;autoIncrement:false"`
	ServiceProfile   *ServiceProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CategoryID       uint            `gorm:"primaryKey;autoIncrement:false;index"`
	Category         *Category       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type ServiceProfileService struct {
	ServiceProfileID uint            `gorm:"primaryKey;autoIncrement:false"`
	ServiceProfile   *ServiceProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ServiceID        uint            `gorm:"primaryKey;autoIncrement:false;index"`
	Service          *Service        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type Image struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceProfileID uint            `gorm:"not null;index" json:"service_profile_id"`
	ServiceProfile   *ServiceProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	URL        string `gorm:"size:512;not null" json:"image"`
	StorageKey string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (i Image) OwnerUserID() uint {
	if i.ServiceProfile == nil {
		return 0
	}
	return i.ServiceProfile.OwnerID
}

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceProfileID uint            `gorm:"not null;index" json:"organization"`
	ServiceProfile   *ServiceProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	FirstName   string `gorm:"size:64;not null" json:"first_name"`
	LastName    string `gorm:"size:64;not null" json:"last_name"`
	PhoneNumber string `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	PhotoURL    string `gorm:"size:512" json:"photo"`
	PhotoKey    string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (e Employee) OwnerUserID() uint {
	if e.ServiceProfile == nil {
		return 0
	}
	return e.ServiceProfile.OwnerID
}
