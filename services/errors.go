package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/models"
)

// MalformedScheduleError means a lesson's stored schedule fields could not
// be parsed. Conflict checks fail closed on it rather than guessing.
type MalformedScheduleError struct {
	LessonID uuid.UUID
	Field    string
	Value    string
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("lesson %s has a malformed schedule: bad %s %q", e.LessonID, e.Field, e.Value)
}

// SchedulingConflictError is returned when assigning an instructor would
// double-book them against another lesson they already teach in.
type SchedulingConflictError struct {
	InstructorID  uuid.UUID
	LessonID      uuid.UUID
	OtherLessonID uuid.UUID
	OtherLesson   string
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf("instructor %s already has a conflicting assignment in %q", e.InstructorID, e.OtherLesson)
}

// DuplicateCoverageError is returned when an active coverage request already
// exists for the same (lesson, swimmer, date) tuple.
type DuplicateCoverageError struct {
	LessonID    uuid.UUID
	SwimmerID   uuid.UUID
	RequestDate string
}

func (e *DuplicateCoverageError) Error() string {
	return fmt.Sprintf("an active coverage request already exists for this swimmer on %s", e.RequestDate)
}

// StateTransitionError is returned when a coverage action is not legal for
// the request's current status.
type StateTransitionError struct {
	Action   string
	Expected models.CoverageStatus
	Actual   models.CoverageStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a coverage request with status %q (must be %q)", e.Action, e.Actual, e.Expected)
}

// NotRequestActorError is returned when a coverage action is reserved for a
// specific instructor (the requester or the current coverer) and the caller
// is someone else.
type NotRequestActorError struct {
	Action string
	Role   string
}

func (e *NotRequestActorError) Error() string {
	return fmt.Sprintf("only the %s may %s this coverage request", e.Role, e.Action)
}
