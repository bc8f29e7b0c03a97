package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
	"github.com/mwangikev/swim_school/notifications"
	"github.com/mwangikev/swim_school/services"
)

// SendLessonReminders emails guardians whose swimmers have a lesson
// occurrence tomorrow. Swimmers with tomorrow recorded as a missing date
// are skipped.
func SendLessonReminders() {
	log.Println("Running job: SendLessonReminders...")

	tomorrow := time.Now().AddDate(0, 0, 1).Format(services.DateLayout)

	var lessons []models.Lesson
	if err := database.DB.Preload("Registrations.Swimmer.User").Find(&lessons).Error; err != nil {
		log.Printf("Error loading lessons for reminders: %v", err)
		return
	}

	for _, lesson := range lessons {
		schedule, err := services.ScheduleOf(lesson)
		if err != nil {
			log.Printf("Skipping lesson %s: %v", lesson.ID, err)
			continue
		}

		meetsTomorrow := false
		for _, date := range schedule.Occurrences() {
			if date == tomorrow {
				meetsTomorrow = true
				break
			}
		}
		if !meetsTomorrow {
			continue
		}

		for _, reg := range lesson.Registrations {
			skip := false
			for _, missing := range reg.MissingDateList() {
				if missing == tomorrow {
					skip = true
					break
				}
			}
			if skip {
				continue
			}

			guardian := reg.Swimmer.User
			emailBody := fmt.Sprintf(
				"<h1>Lesson Reminder</h1><p>%s has a <b>%s</b> lesson tomorrow (%s) at %s.</p>",
				reg.Swimmer.FirstName, lesson.Name, tomorrow, lesson.StartTime,
			)
			go notifications.SendEmail(guardian.FullName, guardian.Email, "Reminder: Swim Lesson Tomorrow", emailBody)
		}
	}
}
