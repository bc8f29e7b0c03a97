package jobs

import (
	"log"
	"time"

	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
	"github.com/mwangikev/swim_school/services"
)

// ExpireStalePendingCoverage cancels pending coverage requests whose date
// has already passed; nobody can cover a lesson retroactively.
func ExpireStalePendingCoverage() {
	log.Println("Running job: ExpireStalePendingCoverage...")

	today := time.Now().Format(services.DateLayout)

	var stale []models.CoverageRequest
	err := database.DB.
		Where("status = ? AND request_date < ?", models.CoveragePending, today).
		Find(&stale).Error
	if err != nil {
		log.Printf("Error checking for stale coverage requests: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	cancelled := 0
	for i := range stale {
		if err := services.CancelCoverage(&stale[i]); err != nil {
			log.Printf("Skipping coverage request %s: %v", stale[i].ID, err)
			continue
		}
		if err := database.DB.Save(&stale[i]).Error; err != nil {
			log.Printf("Error cancelling coverage request %s: %v", stale[i].ID, err)
			continue
		}
		cancelled++
	}

	log.Printf("Cancelled %d stale coverage request(s).", cancelled)
}
