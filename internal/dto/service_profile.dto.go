package dto

import (
	"time"

	"github.com/pro-master/backend/internal/models"
)

type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ServiceRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ImageDTO struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

// ServiceProfileDTO is the read shape of a profile. Rating is null when the
// profile has no reviews.
type ServiceProfileDTO struct {
	ID                    uint      `json:"id"`
	Name                  string    `json:"name"`
	Owner                 uint      `json:"owner"`
	Description           string    `json:"description"`
	ProfileFoto           string    `json:"profile_foto"`
	PhoneNumber           string    `json:"phone_number"`
	FirstName             *string   `json:"first_name"`
	LastName              *string   `json:"last_name"`
	SiteAddress           *string   `json:"site_address"`
	SocialNetworkContacts *string   `json:"social_network_contacts"`
	IsOrganization        bool      `json:"is_organization"`
	Created               time.Time `json:"created"`

	Rating      *float64 `json:"rating"`
	IsFavorited bool     `json:"is_favorited"`

	Categories []CategoryRef `json:"categories"`
	Services   []ServiceRef  `json:"services"`
	Images     []ImageDTO    `json:"images"`
}

// FavoriteDTO is returned when a profile is added to favorites.
type FavoriteDTO struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	ProfileFoto string   `json:"profile_foto"`
	Rating      *float64 `json:"rating"`
	IsFavorited bool     `json:"is_favorited"`
}

func NewServiceProfile(p *models.ServiceProfile) ServiceProfileDTO {
	return ServiceProfileDTO{
		ID:                    p.ID,
		Name:                  p.Name,
		Owner:                 p.OwnerID,
		Description:           p.Description,
		ProfileFoto:           p.ProfileFotoURL,
		PhoneNumber:           p.PhoneNumber,
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		SiteAddress:           p.SiteAddress,
		SocialNetworkContacts: p.SocialNetworkContacts,
		IsOrganization:        p.IsOrganization,
		Created:               p.CreatedAt,
		Categories:            []CategoryRef{},
		Services:              []ServiceRef{},
		Images:                []ImageDTO{},
	}
}

func NewImages(in []models.Image) []ImageDTO {
	out := make([]ImageDTO, 0, len(in))
	for _, img := range in {
		out = append(out, ImageDTO{ID: img.ID, Image: img.URL})
	}
	return out
}
