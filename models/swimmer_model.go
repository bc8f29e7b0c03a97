package models

import (
	"time"

	"github.com/google/uuid"
)

type Swimmer struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"not null" json:"user_id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"size:100;not null" json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Level       *string    `gorm:"size:50" json:"level"`

	MedicalNotes *string `gorm:"type:text" json:"medical_notes"`
	PhotoURL     *string `gorm:"size:255" json:"photo_url"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
