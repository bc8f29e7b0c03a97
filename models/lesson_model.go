package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lesson is a recurring lesson series. Meeting days, wall-clock times and
// calendar bounds are stored as plain strings ("Monday,Wednesday", "09:00",
// "2024-01-01"); services/schedule.go parses them into a checked form.
type Lesson struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Level          string    `gorm:"size:50" json:"level"`
	MeetingDays    string    `gorm:"size:255;not null" json:"meeting_days"`
	StartTime      string    `gorm:"size:5;not null" json:"start_time"`
	EndTime        string    `gorm:"size:5;not null" json:"end_time"`
	StartDate      string    `gorm:"size:10;not null" json:"start_date"`
	EndDate        string    `gorm:"size:10;not null" json:"end_date"`
	ExceptionDates string    `gorm:"type:text" json:"exception_dates"`
	MaxSlots       int       `gorm:"not null;default:8" json:"max_slots"`
	Price          float64   `gorm:"type:numeric(10,2)" json:"price"`
	Description    *string   `gorm:"type:text" json:"description"`

	Registrations []SwimmerLessonRegistration `gorm:"foreignKey:LessonID" json:"registrations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l Lesson) MeetingDayList() []string {
	return splitList(l.MeetingDays)
}

func (l Lesson) ExceptionDateList() []string {
	return splitList(l.ExceptionDates)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
