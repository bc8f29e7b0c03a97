package services

import (
	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/models"
)

// FindInstructorConflict checks whether instructorID can take an assignment
// in target without being double-booked. lessons is the full set of lessons
// with their registrations loaded; every other lesson in which the
// instructor already holds an assignment is checked against target with the
// schedule evaluator. Returns nil when the assignment is safe.
//
// The caller performs the read and the subsequent write without a
// transaction spanning both; two concurrent assignments for the same
// instructor can both pass this check (known gap).
func FindInstructorConflict(target models.Lesson, lessons []models.Lesson, instructorID uuid.UUID) error {
	targetSchedule, err := ScheduleOf(target)
	if err != nil {
		return err
	}

	for _, lesson := range lessons {
		if lesson.ID == target.ID {
			continue
		}
		if !holdsAssignment(lesson, instructorID) {
			continue
		}
		other, err := ScheduleOf(lesson)
		if err != nil {
			return err
		}
		if HasConflict(targetSchedule, other) {
			return &SchedulingConflictError{
				InstructorID:  instructorID,
				LessonID:      target.ID,
				OtherLessonID: lesson.ID,
				OtherLesson:   lesson.Name,
			}
		}
	}
	return nil
}

func holdsAssignment(lesson models.Lesson, instructorID uuid.UUID) bool {
	for _, reg := range lesson.Registrations {
		if reg.InstructorID != nil && *reg.InstructorID == instructorID {
			return true
		}
	}
	return false
}
