package models

import (
	"time"

	"github.com/google/uuid"
)

type Instructor struct {
	UserID         uuid.UUID `gorm:"primary_key" json:"user_id"`
	Bio            *string   `gorm:"type:text" json:"bio"`
	Certifications *string   `gorm:"size:255" json:"certifications"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	User           User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
