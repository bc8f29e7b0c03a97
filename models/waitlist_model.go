package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WaitlistActive   = "active"
	WaitlistInactive = "inactive"
)

// WaitlistEntry holds a swimmer waiting for an open slot. Positions among
// active entries form a dense 1-based ranking; gaps left by removals are
// closed by the explicit reorder operation, not continuously.
type WaitlistEntry struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SwimmerID        uuid.UUID `gorm:"type:uuid;not null" json:"swimmer_id"`
	RegistrationDate time.Time `gorm:"not null" json:"registration_date"`
	Status           string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Position         int       `gorm:"not null" json:"position"`
	Notes            string    `gorm:"type:text" json:"notes"`

	Swimmer Swimmer `gorm:"foreignKey:SwimmerID" json:"swimmer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
