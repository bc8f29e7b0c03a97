package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/models"
)

func pendingRequest(requester uuid.UUID) *models.CoverageRequest {
	return &models.CoverageRequest{
		ID:                     uuid.New(),
		RequestingInstructorID: requester,
		LessonID:               uuid.New(),
		SwimmerID:              uuid.New(),
		RequestDate:            "2024-02-05",
		Status:                 models.CoveragePending,
	}
}

func TestAcceptCoverage(t *testing.T) {
	requester := uuid.New()
	coverer := uuid.New()

	req := pendingRequest(requester)
	if err := AcceptCoverage(req, coverer); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if req.Status != models.CoverageAccepted {
		t.Errorf("status = %q, want accepted", req.Status)
	}
	if req.CoveringInstructorID == nil || *req.CoveringInstructorID != coverer {
		t.Errorf("covering instructor not recorded")
	}

	// Second accept must fail: the request is no longer pending.
	var transition *StateTransitionError
	err := AcceptCoverage(req, uuid.New())
	if !errors.As(err, &transition) {
		t.Fatalf("expected StateTransitionError on double accept, got %v", err)
	}
	if transition.Actual != models.CoverageAccepted || transition.Expected != models.CoveragePending {
		t.Errorf("transition error = %+v", transition)
	}
}

func TestAcceptCoverage_RejectsSelfCover(t *testing.T) {
	requester := uuid.New()
	req := pendingRequest(requester)

	var actor *NotRequestActorError
	if err := AcceptCoverage(req, requester); !errors.As(err, &actor) {
		t.Fatalf("expected NotRequestActorError, got %v", err)
	}
	if req.Status != models.CoveragePending {
		t.Errorf("failed accept must not mutate the request")
	}
}

func TestDeclineCoverage(t *testing.T) {
	req := pendingRequest(uuid.New())
	if err := DeclineCoverage(req); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if req.Status != models.CoverageDeclined {
		t.Errorf("status = %q, want declined", req.Status)
	}

	var transition *StateTransitionError
	if err := DeclineCoverage(req); !errors.As(err, &transition) {
		t.Fatalf("expected StateTransitionError on second decline, got %v", err)
	}
}

func TestCancelCoverage_OnlyFromPending(t *testing.T) {
	req := pendingRequest(uuid.New())
	if err := CancelCoverage(req); err != nil {
		t.Fatalf("cancel of a pending request failed: %v", err)
	}
	if req.Status != models.CoverageCancelled {
		t.Fatalf("Status = %q, want %q", req.Status, models.CoverageCancelled)
	}

	req = pendingRequest(uuid.New())
	if err := AcceptCoverage(req, uuid.New()); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	var transition *StateTransitionError
	if err := CancelCoverage(req); !errors.As(err, &transition) {
		t.Fatalf("expected StateTransitionError cancelling an accepted request, got %v", err)
	}
}

func TestCanDeleteCoverage(t *testing.T) {
	requester := uuid.New()
	req := pendingRequest(requester)

	if err := CanDeleteCoverage(req, requester); err != nil {
		t.Errorf("requester should be able to delete a pending request: %v", err)
	}

	var actor *NotRequestActorError
	if err := CanDeleteCoverage(req, uuid.New()); !errors.As(err, &actor) {
		t.Errorf("expected NotRequestActorError for a stranger, got %v", err)
	}

	if err := AcceptCoverage(req, uuid.New()); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	var transition *StateTransitionError
	if err := CanDeleteCoverage(req, requester); !errors.As(err, &transition) {
		t.Errorf("expected StateTransitionError deleting an accepted request, got %v", err)
	}
}

func TestReRequestCoverage_SwapsRoles(t *testing.T) {
	requester := uuid.New()
	coverer := uuid.New()

	req := pendingRequest(requester)
	if err := AcceptCoverage(req, coverer); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if err := ReRequestCoverage(req, coverer); err != nil {
		t.Fatalf("re-request failed: %v", err)
	}
	if req.Status != models.CoveragePending {
		t.Errorf("status = %q, want pending", req.Status)
	}
	if req.CoveringInstructorID != nil {
		t.Errorf("covering instructor should be cleared")
	}
	if req.RequestingInstructorID != coverer {
		t.Errorf("requesting instructor = %s, want previous coverer %s", req.RequestingInstructorID, coverer)
	}
}

func TestReRequestCoverage_OnlyCurrentCoverer(t *testing.T) {
	requester := uuid.New()
	coverer := uuid.New()

	req := pendingRequest(requester)

	var transition *StateTransitionError
	if err := ReRequestCoverage(req, coverer); !errors.As(err, &transition) {
		t.Fatalf("expected StateTransitionError on a pending request, got %v", err)
	}

	if err := AcceptCoverage(req, coverer); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	var actor *NotRequestActorError
	if err := ReRequestCoverage(req, requester); !errors.As(err, &actor) {
		t.Fatalf("expected NotRequestActorError for the original requester, got %v", err)
	}
}

func TestCoverageChainOfHandoffs(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	req := pendingRequest(first)

	if err := AcceptCoverage(req, second); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	if err := ReRequestCoverage(req, second); err != nil {
		t.Fatalf("give-up failed: %v", err)
	}
	if err := AcceptCoverage(req, third); err != nil {
		t.Fatalf("second accept failed: %v", err)
	}

	if req.RequestingInstructorID != second {
		t.Errorf("requester = %s, want %s (responsibility flows forward)", req.RequestingInstructorID, second)
	}
	if req.CoveringInstructorID == nil || *req.CoveringInstructorID != third {
		t.Errorf("coverer should be the third instructor")
	}
}
