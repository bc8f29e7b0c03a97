package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/models"
)

func waitlistEntry(position int, status string, registered time.Time) models.WaitlistEntry {
	return models.WaitlistEntry{
		ID:               uuid.New(),
		SwimmerID:        uuid.New(),
		RegistrationDate: registered,
		Status:           status,
		Position:         position,
	}
}

func TestRenumberWaitlist_ClosesGaps(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.WaitlistEntry{
		waitlistEntry(1, models.WaitlistActive, base),
		waitlistEntry(2, models.WaitlistActive, base.AddDate(0, 0, 1)),
		waitlistEntry(5, models.WaitlistActive, base.AddDate(0, 0, 2)),
		waitlistEntry(7, models.WaitlistActive, base.AddDate(0, 0, 3)),
	}
	ids := []uuid.UUID{entries[0].ID, entries[1].ID, entries[2].ID, entries[3].ID}

	renumbered := RenumberWaitlist(entries)

	for i, want := range []int{1, 2, 3, 4} {
		if renumbered[i].Position != want {
			t.Errorf("entry %d position = %d, want %d", i, renumbered[i].Position, want)
		}
		if renumbered[i].ID != ids[i] {
			t.Errorf("entry %d changed relative order", i)
		}
	}
}

func TestRenumberWaitlist_SkipsInactiveEntries(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.WaitlistEntry{
		waitlistEntry(2, models.WaitlistActive, base),
		waitlistEntry(3, models.WaitlistInactive, base),
		waitlistEntry(6, models.WaitlistActive, base),
	}

	renumbered := RenumberWaitlist(entries)

	if renumbered[0].Position != 1 || renumbered[2].Position != 2 {
		t.Errorf("active positions = %d, %d, want 1, 2", renumbered[0].Position, renumbered[2].Position)
	}
	if renumbered[1].Position != 3 {
		t.Errorf("inactive entry position changed: %d", renumbered[1].Position)
	}
}

func TestNextWaitlistPosition(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := NextWaitlistPosition(nil); got != 1 {
		t.Errorf("empty waitlist next position = %d, want 1", got)
	}

	entries := []models.WaitlistEntry{
		waitlistEntry(1, models.WaitlistActive, base),
		waitlistEntry(4, models.WaitlistActive, base),
		waitlistEntry(9, models.WaitlistInactive, base),
	}
	if got := NextWaitlistPosition(entries); got != 5 {
		t.Errorf("next position = %d, want 5 (inactive entries ignored)", got)
	}
}
