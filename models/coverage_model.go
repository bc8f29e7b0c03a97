package models

import (
	"time"

	"github.com/google/uuid"
)

type CoverageStatus string

const (
	CoveragePending   CoverageStatus = "pending"
	CoverageAccepted  CoverageStatus = "accepted"
	CoverageDeclined  CoverageStatus = "declined"
	CoverageCancelled CoverageStatus = "cancelled"
)

// Active reports whether the request still blocks a new request for the
// same (lesson, swimmer, date) tuple.
func (s CoverageStatus) Active() bool {
	return s == CoveragePending || s == CoverageAccepted
}

func (s CoverageStatus) Valid() bool {
	switch s {
	case CoveragePending, CoverageAccepted, CoverageDeclined, CoverageCancelled:
		return true
	}
	return false
}

// CoverageRequest asks another instructor to take over one swimmer's lesson
// occurrence on a single date. At most one active request may exist per
// (lesson, swimmer, date); the partial unique index created in
// database.Migrate enforces that.
type CoverageRequest struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestingInstructorID uuid.UUID      `gorm:"type:uuid;not null" json:"requesting_instructor_id"`
	LessonID               uuid.UUID      `gorm:"type:uuid;not null" json:"lesson_id"`
	SwimmerID              uuid.UUID      `gorm:"type:uuid;not null" json:"swimmer_id"`
	RequestDate            string         `gorm:"size:10;not null" json:"request_date"`
	Reason                 string         `gorm:"size:500" json:"reason"`
	Notes                  string         `gorm:"type:text" json:"notes"`
	Status                 CoverageStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CoveringInstructorID   *uuid.UUID     `gorm:"type:uuid" json:"covering_instructor_id"`

	RequestingInstructor *Instructor `gorm:"foreignKey:RequestingInstructorID;references:UserID" json:"requesting_instructor,omitempty"`
	CoveringInstructor   *Instructor `gorm:"foreignKey:CoveringInstructorID;references:UserID" json:"covering_instructor,omitempty"`
	Lesson               Lesson      `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	Swimmer              Swimmer     `gorm:"foreignKey:SwimmerID" json:"swimmer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
