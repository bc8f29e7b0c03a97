package services

import (
	"sort"

	"github.com/mwangikev/swim_school/models"
)

// RenumberWaitlist assigns a dense 1..N position ranking to the active
// entries, keeping their current relative order (ties broken by
// registration date). Inactive entries are passed through untouched. Used
// after removals to close gaps; it does not run automatically.
func RenumberWaitlist(entries []models.WaitlistEntry) []models.WaitlistEntry {
	active := make([]*models.WaitlistEntry, 0, len(entries))
	for i := range entries {
		if entries[i].Status == models.WaitlistActive {
			active = append(active, &entries[i])
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Position != active[j].Position {
			return active[i].Position < active[j].Position
		}
		return active[i].RegistrationDate.Before(active[j].RegistrationDate)
	})

	for i, entry := range active {
		entry.Position = i + 1
	}
	return entries
}

// NextWaitlistPosition is the append slot for a new active entry:
// max(position)+1, or 1 for an empty list.
func NextWaitlistPosition(entries []models.WaitlistEntry) int {
	max := 0
	for _, e := range entries {
		if e.Status == models.WaitlistActive && e.Position > max {
			max = e.Position
		}
	}
	return max + 1
}
