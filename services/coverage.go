package services

import (
	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/models"
)

// Coverage lifecycle transitions. Each function validates the transition
// against the request's current status and actor, mutates the record in
// memory on success, and returns a typed error otherwise; persisting the
// mutated record is the caller's job.

// AcceptCoverage moves a pending request to accepted and records the
// covering instructor, who must not be the requester.
func AcceptCoverage(req *models.CoverageRequest, coveringInstructorID uuid.UUID) error {
	if req.Status != models.CoveragePending {
		return &StateTransitionError{Action: "accept", Expected: models.CoveragePending, Actual: req.Status}
	}
	if coveringInstructorID == req.RequestingInstructorID {
		return &NotRequestActorError{Action: "accept", Role: "an instructor other than the requester"}
	}
	req.Status = models.CoverageAccepted
	req.CoveringInstructorID = &coveringInstructorID
	return nil
}

// DeclineCoverage moves a pending request to declined.
func DeclineCoverage(req *models.CoverageRequest) error {
	if req.Status != models.CoveragePending {
		return &StateTransitionError{Action: "decline", Expected: models.CoveragePending, Actual: req.Status}
	}
	req.Status = models.CoverageDeclined
	return nil
}

// CancelCoverage moves a pending request to cancelled.
func CancelCoverage(req *models.CoverageRequest) error {
	if req.Status != models.CoveragePending {
		return &StateTransitionError{Action: "cancel", Expected: models.CoveragePending, Actual: req.Status}
	}
	req.Status = models.CoverageCancelled
	return nil
}

// CanDeleteCoverage checks that callerID may delete the request outright:
// only the original requester, and only while it is still pending.
func CanDeleteCoverage(req *models.CoverageRequest, callerID uuid.UUID) error {
	if req.Status != models.CoveragePending {
		return &StateTransitionError{Action: "delete", Expected: models.CoveragePending, Actual: req.Status}
	}
	if callerID != req.RequestingInstructorID {
		return &NotRequestActorError{Action: "delete", Role: "requesting instructor"}
	}
	return nil
}

// ReRequestCoverage is the give-up path. The current coverer hands the
// request back to the pool: they become the new requester, the covering
// slot is cleared and the record returns to pending. Responsibility always
// flows forward; it never reverts to the original requester.
func ReRequestCoverage(req *models.CoverageRequest, callerID uuid.UUID) error {
	if req.Status != models.CoverageAccepted {
		return &StateTransitionError{Action: "re-request", Expected: models.CoverageAccepted, Actual: req.Status}
	}
	if req.CoveringInstructorID == nil || *req.CoveringInstructorID != callerID {
		return &NotRequestActorError{Action: "re-request", Role: "covering instructor"}
	}
	req.RequestingInstructorID = *req.CoveringInstructorID
	req.CoveringInstructorID = nil
	req.Status = models.CoveragePending
	return nil
}
