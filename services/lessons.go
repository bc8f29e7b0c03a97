package services

import (
	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
)

// LessonsWithParticipants assembles every lesson with its registrations
// joined with swimmer, guardian, assigned instructor and preferred
// instructor. Read-only; a lesson with no registrations carries an empty
// participant list, never nil.
func LessonsWithParticipants() ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := database.DB.
		Preload("Registrations.Swimmer.User").
		Preload("Registrations.Instructor.User").
		Preload("Registrations.PreferredInstructor.User").
		Order("start_date asc").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}

	for i := range lessons {
		if lessons[i].Registrations == nil {
			lessons[i].Registrations = []models.SwimmerLessonRegistration{}
		}
	}
	return lessons, nil
}
