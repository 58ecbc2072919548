package models

import "time"

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:256;uniqueIndex;not null" json:"name"`

	ParentCategoryID *uint     `gorm:"index" json:"parent_category"`
	ParentCategory   *Category `gorm:"foreignKey:ParentCategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:256;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
