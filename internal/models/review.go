package models

import "time"

// Review: at most one per (service profile, author), enforced by
// idx_review_profile_author.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceProfileID uint            `gorm:"not null;uniqueIndex:idx_review_profile_author" json:"service_profile_id"`
	ServiceProfile   *ServiceProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AuthorID uint  `gorm:"not null;index;uniqueIndex:idx_review_profile_author" json:"author_id"`
	Author   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Text  string `gorm:"type:text;not null" json:"text"`
	Score int    `gorm:"not null;check:chk_reviews_score,score >= 1 AND score <= 5" json:"score"`

	PubDate   time.Time `gorm:"index;autoCreateTime" json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

func (r Review) AuthorUserID() uint {
	return r.AuthorID
}

type Comment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReviewID uint    `gorm:"not null;index" json:"review"`
	Review   *Review `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AuthorID uint  `gorm:"not null;index" json:"author_id"`
	Author   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Text string `gorm:"type:text;not null" json:"text"`

	PubDate   time.Time `gorm:"index;autoCreateTime" json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

func (c Comment) AuthorUserID() uint {
	return c.AuthorID
}
