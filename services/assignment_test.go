package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/models"
)

func lessonWithAssignment(days, startTime, endTime, startDate, endDate string, instructorID uuid.UUID) models.Lesson {
	lesson := makeLesson(days, startTime, endTime, startDate, endDate, "")
	lesson.Registrations = []models.SwimmerLessonRegistration{
		{SwimmerID: uuid.New(), LessonID: lesson.ID, InstructorID: &instructorID},
	}
	return lesson
}

func TestFindInstructorConflict_DetectsDoubleBooking(t *testing.T) {
	instructor := uuid.New()

	lessonA := lessonWithAssignment("Monday,Wednesday", "09:00", "09:30", "2024-01-01", "2024-03-01", instructor)
	target := makeLesson("Monday", "09:15", "09:45", "2024-02-01", "2024-02-15", "")

	err := FindInstructorConflict(target, []models.Lesson{lessonA, target}, instructor)

	var conflict *SchedulingConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SchedulingConflictError, got %v", err)
	}
	if conflict.OtherLessonID != lessonA.ID {
		t.Errorf("conflicting lesson = %s, want %s", conflict.OtherLessonID, lessonA.ID)
	}
	if conflict.InstructorID != instructor {
		t.Errorf("conflict names instructor %s, want %s", conflict.InstructorID, instructor)
	}
}

func TestFindInstructorConflict_AllowsNonOverlappingTimes(t *testing.T) {
	instructor := uuid.New()

	lessonA := lessonWithAssignment("Monday,Wednesday", "09:00", "09:30", "2024-01-01", "2024-03-01", instructor)
	target := makeLesson("Monday", "09:30", "10:00", "2024-02-01", "2024-02-15", "")

	if err := FindInstructorConflict(target, []models.Lesson{lessonA, target}, instructor); err != nil {
		t.Fatalf("adjacent windows should not conflict: %v", err)
	}
}

func TestFindInstructorConflict_IgnoresOtherInstructors(t *testing.T) {
	instructor := uuid.New()
	someoneElse := uuid.New()

	// Same window, but held by a different instructor.
	lessonA := lessonWithAssignment("Monday", "09:00", "10:00", "2024-01-01", "2024-03-01", someoneElse)
	target := makeLesson("Monday", "09:00", "10:00", "2024-01-01", "2024-03-01", "")

	if err := FindInstructorConflict(target, []models.Lesson{lessonA, target}, instructor); err != nil {
		t.Fatalf("other instructors' assignments must not block: %v", err)
	}
}

func TestFindInstructorConflict_SkipsTargetLesson(t *testing.T) {
	instructor := uuid.New()

	// The instructor already teaches another swimmer in the target lesson
	// itself; that is not a double-booking.
	target := lessonWithAssignment("Monday", "09:00", "10:00", "2024-01-01", "2024-03-01", instructor)

	if err := FindInstructorConflict(target, []models.Lesson{target}, instructor); err != nil {
		t.Fatalf("target lesson must be excluded from the check: %v", err)
	}
}

func TestFindInstructorConflict_FailsClosedOnMalformedTarget(t *testing.T) {
	instructor := uuid.New()
	target := makeLesson("Monday", "09:00", "10:00", "not-a-date", "2024-03-01", "")

	var malformed *MalformedScheduleError
	if err := FindInstructorConflict(target, nil, instructor); !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedScheduleError, got %v", err)
	}
}
