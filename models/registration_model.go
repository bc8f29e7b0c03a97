package models

import (
	"time"

	"github.com/google/uuid"
)

// SwimmerLessonRegistration links one swimmer to one lesson series.
// MissingDates is append-only: dates are added when a guardian reports a
// planned absence and are never removed afterwards.
type SwimmerLessonRegistration struct {
	SwimmerID uuid.UUID `gorm:"type:uuid;primaryKey" json:"swimmer_id"`
	LessonID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"lesson_id"`

	RegistrationDate      time.Time  `gorm:"not null" json:"registration_date"`
	PaymentStatus         bool       `gorm:"not null;default:false" json:"payment_status"`
	InstructorID          *uuid.UUID `gorm:"type:uuid" json:"instructor_id"`
	PreferredInstructorID *uuid.UUID `gorm:"type:uuid" json:"preferred_instructor_id"`
	InstructorNotes       string     `gorm:"type:text" json:"instructor_notes"`
	MissingDates          string     `gorm:"type:text" json:"missing_dates"`

	Swimmer             Swimmer     `gorm:"foreignKey:SwimmerID" json:"swimmer,omitempty"`
	Lesson              Lesson      `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	Instructor          *Instructor `gorm:"foreignKey:InstructorID;references:UserID" json:"instructor,omitempty"`
	PreferredInstructor *Instructor `gorm:"foreignKey:PreferredInstructorID;references:UserID" json:"preferred_instructor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SwimmerLessonRegistration) TableName() string {
	return "swimmer_lesson_registrations"
}

func (r SwimmerLessonRegistration) MissingDateList() []string {
	return splitList(r.MissingDates)
}

// AppendMissingDate adds date to the missing-dates list. It reports false
// when the date was already present, leaving the list untouched.
func (r *SwimmerLessonRegistration) AppendMissingDate(date string) bool {
	for _, d := range r.MissingDateList() {
		if d == date {
			return false
		}
	}
	if r.MissingDates == "" {
		r.MissingDates = date
	} else {
		r.MissingDates += "," + date
	}
	return true
}
