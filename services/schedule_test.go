package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/models"
)

func makeLesson(days, startTime, endTime, startDate, endDate, exceptions string) models.Lesson {
	return models.Lesson{
		ID:             uuid.New(),
		Name:           "Test Lesson",
		MeetingDays:    days,
		StartTime:      startTime,
		EndTime:        endTime,
		StartDate:      startDate,
		EndDate:        endDate,
		ExceptionDates: exceptions,
	}
}

func TestHasLessonConflict_Table(t *testing.T) {
	tests := []struct {
		name string
		a    models.Lesson
		b    models.Lesson
		want bool
	}{
		{
			name: "no shared weekday",
			a:    makeLesson("Monday,Wednesday", "09:00", "09:30", "2024-01-01", "2024-03-01", ""),
			b:    makeLesson("Tuesday,Thursday", "09:00", "09:30", "2024-01-01", "2024-03-01", ""),
			want: false,
		},
		{
			name: "disjoint time windows on identical days and dates",
			a:    makeLesson("Monday", "09:00", "09:30", "2024-01-01", "2024-03-01", ""),
			b:    makeLesson("Monday", "10:00", "10:30", "2024-01-01", "2024-03-01", ""),
			want: false,
		},
		{
			name: "disjoint date ranges",
			a:    makeLesson("Monday", "09:00", "09:30", "2024-01-01", "2024-01-31", ""),
			b:    makeLesson("Monday", "09:00", "09:30", "2024-02-01", "2024-02-28", ""),
			want: false,
		},
		{
			name: "same day, overlapping dates and times",
			a:    makeLesson("Monday", "09:00", "10:00", "2024-01-01", "2024-03-01", ""),
			b:    makeLesson("Monday", "09:30", "10:30", "2024-02-01", "2024-02-28", ""),
			want: true,
		},
		{
			name: "shared monday with partial time overlap",
			a:    makeLesson("Monday,Wednesday", "09:00", "09:30", "2024-01-01", "2024-03-01", ""),
			b:    makeLesson("Monday", "09:15", "09:45", "2024-02-01", "2024-02-15", ""),
			want: true,
		},
		{
			name: "adjacent time windows do not overlap",
			a:    makeLesson("Monday,Wednesday", "09:00", "09:30", "2024-01-01", "2024-03-01", ""),
			b:    makeLesson("Monday", "09:30", "10:00", "2024-02-01", "2024-02-15", ""),
			want: false,
		},
		{
			name: "zero-length time window never conflicts",
			a:    makeLesson("Monday", "09:00", "09:00", "2024-01-01", "2024-03-01", ""),
			b:    makeLesson("Monday", "08:00", "10:00", "2024-01-01", "2024-03-01", ""),
			want: false,
		},
		{
			// Feb 2024 Mondays in [02-01, 02-15]: the 5th and the 12th.
			name: "every shared occurrence excepted",
			a:    makeLesson("Monday", "09:00", "09:30", "2024-01-01", "2024-03-01", "2024-02-05"),
			b:    makeLesson("Monday", "09:15", "09:45", "2024-02-01", "2024-02-15", "2024-02-12"),
			want: false,
		},
		{
			name: "one shared occurrence survives the exceptions",
			a:    makeLesson("Monday", "09:00", "09:30", "2024-01-01", "2024-03-01", "2024-02-05"),
			b:    makeLesson("Monday", "09:15", "09:45", "2024-02-01", "2024-02-15", ""),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasLessonConflict(tt.a, tt.b)
			if err != nil {
				t.Fatalf("HasLessonConflict failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasLessonConflict = %v, want %v", got, tt.want)
			}
			// Conflict is symmetric.
			rev, err := HasLessonConflict(tt.b, tt.a)
			if err != nil {
				t.Fatalf("HasLessonConflict (reversed) failed: %v", err)
			}
			if rev != got {
				t.Errorf("HasLessonConflict is not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestScheduleOf_FailsClosedOnMalformedFields(t *testing.T) {
	tests := []struct {
		name   string
		lesson models.Lesson
		field  string
	}{
		{"missing start date", makeLesson("Monday", "09:00", "09:30", "", "2024-03-01", ""), "start_date"},
		{"garbage end date", makeLesson("Monday", "09:00", "09:30", "2024-01-01", "springtime", ""), "end_date"},
		{"start date after end date", makeLesson("Monday", "09:00", "09:30", "2024-03-01", "2024-01-01", ""), "start_date"},
		{"bad time", makeLesson("Monday", "9 o'clock", "09:30", "2024-01-01", "2024-03-01", ""), "start_time"},
		{"unknown weekday", makeLesson("Monday,Funday", "09:00", "09:30", "2024-01-01", "2024-03-01", ""), "meeting_days"},
		{"bad exception date", makeLesson("Monday", "09:00", "09:30", "2024-01-01", "2024-03-01", "someday"), "exception_dates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScheduleOf(tt.lesson)
			var malformed *MalformedScheduleError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedScheduleError, got %v", err)
			}
			if malformed.Field != tt.field {
				t.Errorf("error field = %q, want %q", malformed.Field, tt.field)
			}
		})
	}
}

func TestOccurrences_SubtractsExceptions(t *testing.T) {
	// Mondays and Wednesdays in the first two weeks of Jan 2024, with the
	// first Wednesday cancelled.
	lesson := makeLesson("Monday,Wednesday", "09:00", "09:30", "2024-01-01", "2024-01-14", "2024-01-03")

	schedule, err := ScheduleOf(lesson)
	if err != nil {
		t.Fatalf("ScheduleOf failed: %v", err)
	}

	got := schedule.Occurrences()
	want := []string{"2024-01-01", "2024-01-08", "2024-01-10"}
	if len(got) != len(want) {
		t.Fatalf("Occurrences = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Occurrences[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOccurrences_CaseInsensitiveDayNames(t *testing.T) {
	lesson := makeLesson("monday, WEDNESDAY", "09:00", "09:30", "2024-01-01", "2024-01-07", "")

	schedule, err := ScheduleOf(lesson)
	if err != nil {
		t.Fatalf("ScheduleOf failed: %v", err)
	}
	if got := len(schedule.Occurrences()); got != 2 {
		t.Errorf("expected 2 occurrences, got %d", got)
	}
}
