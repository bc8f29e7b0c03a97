package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Schedule is the parsed, checked form of a lesson's recurrence fields:
// meeting weekdays, a wall-clock window in minutes since midnight, calendar
// bounds and the dates on which no occurrence happens.
type Schedule struct {
	LessonID    uuid.UUID
	Days        map[time.Weekday]bool
	StartMinute int
	EndMinute   int
	StartDate   time.Time
	EndDate     time.Time
	Exceptions  map[string]bool
}

// ScheduleOf parses a lesson's stored schedule strings. Any missing or
// unparseable field fails closed with a MalformedScheduleError.
func ScheduleOf(l models.Lesson) (Schedule, error) {
	s := Schedule{
		LessonID:   l.ID,
		Days:       make(map[time.Weekday]bool),
		Exceptions: make(map[string]bool),
	}

	var err error
	if s.StartDate, err = time.Parse(DateLayout, l.StartDate); err != nil {
		return Schedule{}, &MalformedScheduleError{LessonID: l.ID, Field: "start_date", Value: l.StartDate}
	}
	if s.EndDate, err = time.Parse(DateLayout, l.EndDate); err != nil {
		return Schedule{}, &MalformedScheduleError{LessonID: l.ID, Field: "end_date", Value: l.EndDate}
	}
	if s.StartDate.After(s.EndDate) {
		return Schedule{}, &MalformedScheduleError{LessonID: l.ID, Field: "start_date", Value: l.StartDate + " > " + l.EndDate}
	}

	if s.StartMinute, err = parseMinute(l.StartTime); err != nil {
		return Schedule{}, &MalformedScheduleError{LessonID: l.ID, Field: "start_time", Value: l.StartTime}
	}
	if s.EndMinute, err = parseMinute(l.EndTime); err != nil {
		return Schedule{}, &MalformedScheduleError{LessonID: l.ID, Field: "end_time", Value: l.EndTime}
	}

	for _, name := range l.MeetingDayList() {
		day, ok := weekdayByName[strings.ToLower(name)]
		if !ok {
			return Schedule{}, &MalformedScheduleError{LessonID: l.ID, Field: "meeting_days", Value: name}
		}
		s.Days[day] = true
	}

	for _, d := range l.ExceptionDateList() {
		parsed, err := time.Parse(DateLayout, d)
		if err != nil {
			return Schedule{}, &MalformedScheduleError{LessonID: l.ID, Field: "exception_dates", Value: d}
		}
		s.Exceptions[parsed.Format(DateLayout)] = true
	}

	return s, nil
}

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseMinute(v string) (int, error) {
	t, err := time.Parse(TimeLayout, v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Occurrences lists the concrete dates on which the lesson actually meets:
// every date in [StartDate, EndDate] whose weekday is a meeting day and
// which is not an exception date.
func (s Schedule) Occurrences() []string {
	var out []string
	for d := s.StartDate; !d.After(s.EndDate); d = d.AddDate(0, 0, 1) {
		if !s.Days[d.Weekday()] {
			continue
		}
		date := d.Format(DateLayout)
		if s.Exceptions[date] {
			continue
		}
		out = append(out, date)
	}
	return out
}

// timesOverlap treats both windows as half-open [start, end), so adjacent
// lessons (09:00-09:30 and 09:30-10:00) and zero-length windows never
// overlap.
func (s Schedule) timesOverlap(o Schedule) bool {
	if s.StartMinute >= s.EndMinute || o.StartMinute >= o.EndMinute {
		return false
	}
	return s.StartMinute < o.EndMinute && o.StartMinute < s.EndMinute
}

// HasConflict reports whether two lesson schedules have at least one
// overlapping occurrence. Cheap prefilters (date window, shared weekday,
// time overlap) short-circuit first; the remaining cases are decided
// precisely by walking the shared date range and subtracting both exception
// sets, so two lessons that share days and times but have every shared date
// excepted do not conflict.
func HasConflict(a, b Schedule) bool {
	if a.StartDate.After(b.EndDate) || b.StartDate.After(a.EndDate) {
		return false
	}

	shared := false
	for day := range a.Days {
		if b.Days[day] {
			shared = true
			break
		}
	}
	if !shared {
		return false
	}

	if !a.timesOverlap(b) {
		return false
	}

	from, to := a.StartDate, a.EndDate
	if b.StartDate.After(from) {
		from = b.StartDate
	}
	if b.EndDate.Before(to) {
		to = b.EndDate
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !a.Days[d.Weekday()] || !b.Days[d.Weekday()] {
			continue
		}
		date := d.Format(DateLayout)
		if a.Exceptions[date] || b.Exceptions[date] {
			continue
		}
		return true
	}
	return false
}

// HasLessonConflict is the model-level convenience wrapper around
// ScheduleOf and HasConflict.
func HasLessonConflict(a, b models.Lesson) (bool, error) {
	sa, err := ScheduleOf(a)
	if err != nil {
		return false, err
	}
	sb, err := ScheduleOf(b)
	if err != nil {
		return false, err
	}
	return HasConflict(sa, sb), nil
}
