package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
	"github.com/mwangikev/swim_school/notifications"
	"github.com/mwangikev/swim_school/services"
	"gorm.io/gorm"
)

type LessonRequest struct {
	Name           string  `json:"name" validate:"required,min=2"`
	Level          string  `json:"level,omitempty"`
	MeetingDays    string  `json:"meeting_days" validate:"required"`
	StartTime      string  `json:"start_time" validate:"required"`
	EndTime        string  `json:"end_time" validate:"required"`
	StartDate      string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	ExceptionDates string  `json:"exception_dates,omitempty"`
	MaxSlots       int     `json:"max_slots" validate:"required,min=1"`
	Price          float64 `json:"price" validate:"min=0"`
	Description    *string `json:"description,omitempty"`
}

func CreateLesson(c *fiber.Ctx) error {
	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson := models.Lesson{
		Name:           req.Name,
		Level:          req.Level,
		MeetingDays:    req.MeetingDays,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		ExceptionDates: req.ExceptionDates,
		MaxSlots:       req.MaxSlots,
		Price:          req.Price,
		Description:    req.Description,
	}

	// Reject schedules the evaluator could not reason about later.
	if _, err := services.ScheduleOf(lesson); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson"})
	}

	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func ListLessons(c *fiber.Ctx) error {
	var lessons []models.Lesson
	database.DB.Order("start_date asc").Find(&lessons)

	return c.JSON(lessons)
}

func GetLessonsWithParticipants(c *fiber.Ctx) error {
	lessons, err := services.LessonsWithParticipants()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load lessons"})
	}

	return c.JSON(lessons)
}

func UpdateLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", c.Params("lessonId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson.Name = req.Name
	lesson.Level = req.Level
	lesson.MeetingDays = req.MeetingDays
	lesson.StartTime = req.StartTime
	lesson.EndTime = req.EndTime
	lesson.StartDate = req.StartDate
	lesson.EndDate = req.EndDate
	lesson.ExceptionDates = req.ExceptionDates
	lesson.MaxSlots = req.MaxSlots
	lesson.Price = req.Price
	lesson.Description = req.Description

	if _, err := services.ScheduleOf(lesson); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Save(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update lesson"})
	}

	return c.JSON(lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", c.Params("lessonId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var enrolled int64
	database.DB.Model(&models.SwimmerLessonRegistration{}).Where("lesson_id = ?", lesson.ID).Count(&enrolled)
	if enrolled > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Lesson still has enrolled swimmers"})
	}

	if err := database.DB.Delete(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete lesson"})
	}

	return c.JSON(fiber.Map{"message": "Lesson deleted."})
}

type RegisterSwimmerRequest struct {
	SwimmerID             string  `json:"swimmer_id" validate:"required,uuid"`
	PreferredInstructorID *string `json:"preferred_instructor_id,omitempty" validate:"omitempty,uuid"`
}

func RegisterSwimmerForLesson(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var req RegisterSwimmerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	swimmerID, _ := uuid.Parse(req.SwimmerID)

	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", c.Params("lessonId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var swimmer models.Swimmer
	if err := database.DB.First(&swimmer, "id = ?", swimmerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Swimmer not found"})
	}
	if swimmer.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your swimmer"})
	}

	var registration models.SwimmerLessonRegistration
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var enrolled int64
		if err := tx.Model(&models.SwimmerLessonRegistration{}).
			Where("lesson_id = ?", lesson.ID).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled >= int64(lesson.MaxSlots) {
			return errors.New("this lesson is full")
		}

		registration = models.SwimmerLessonRegistration{
			SwimmerID:        swimmerID,
			LessonID:         lesson.ID,
			RegistrationDate: time.Now(),
		}
		if req.PreferredInstructorID != nil {
			preferredID, _ := uuid.Parse(*req.PreferredInstructorID)
			registration.PreferredInstructorID = &preferredID
		}

		if err := tx.Create(&registration).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("swimmer is already registered for this lesson")
			}
			return err
		}
		return nil
	})
	if err != nil {
		switch err.Error() {
		case "this lesson is full":
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This lesson is full. You can join the waitlist instead."})
		case "swimmer is already registered for this lesson":
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register swimmer"})
	}

	var guardian models.User
	if database.DB.First(&guardian, "id = ?", userID).Error == nil {
		go notifications.SendEmail(
			guardian.FullName,
			guardian.Email,
			"Lesson Registration Confirmed",
			fmt.Sprintf("<h1>Registration Confirmed</h1><p>%s %s is registered for <b>%s</b> (%s, %s-%s).</p>",
				swimmer.FirstName, swimmer.LastName, lesson.Name, lesson.MeetingDays, lesson.StartTime, lesson.EndTime),
		)
	}

	return c.Status(fiber.StatusCreated).JSON(registration)
}

func RemoveSwimmerFromLesson(c *fiber.Ctx) error {
	userID := claimsUserID(c)
	role := claimsRole(c)

	registration, status, message := loadRegistration(c)
	if registration == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	if role != "admin" && registration.Swimmer.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your swimmer"})
	}

	if err := database.DB.Delete(&models.SwimmerLessonRegistration{}, "swimmer_id = ? AND lesson_id = ?",
		registration.SwimmerID, registration.LessonID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove swimmer from lesson"})
	}

	return c.JSON(fiber.Map{"message": "Swimmer removed from lesson."})
}

func UpdatePaymentStatus(c *fiber.Ctx) error {
	type Request struct {
		PaymentStatus bool `json:"payment_status"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	registration, status, message := loadRegistration(c)
	if registration == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	registration.PaymentStatus = req.PaymentStatus
	if err := database.DB.Save(registration).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment status"})
	}

	return c.JSON(registration)
}

// AddMissingDate records a planned absence. The missing-dates list only
// ever grows; reporting the same date twice is a no-op.
func AddMissingDate(c *fiber.Ctx) error {
	userID := claimsUserID(c)
	role := claimsRole(c)

	type Request struct {
		Date string `json:"date" validate:"required,datetime=2006-01-02"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	registration, status, message := loadRegistration(c)
	if registration == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	if role != "admin" && registration.Swimmer.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your swimmer"})
	}

	if registration.AppendMissingDate(req.Date) {
		if err := database.DB.Save(registration).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record missing date"})
		}

		if registration.Instructor != nil {
			go notifications.SendMissingDateNotification(
				registration.Instructor.User.FullName,
				registration.Instructor.User.Email,
				registration.Swimmer.FirstName+" "+registration.Swimmer.LastName,
				registration.Lesson.Name,
				req.Date,
			)
		}
	}

	return c.JSON(registration)
}

type AssignInstructorRequest struct {
	SwimmerID    string  `json:"swimmer_id" validate:"required,uuid"`
	InstructorID *string `json:"instructor_id" validate:"omitempty,uuid"`
}

// AssignInstructor sets or clears the instructor on one swimmer's lesson
// registration. Assigning runs the schedule conflict check across every
// lesson the candidate already teaches in; any overlap rejects the request
// without touching the registration.
func AssignInstructor(c *fiber.Ctx) error {
	var req AssignInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var registration models.SwimmerLessonRegistration
	err := database.DB.
		Preload("Lesson").
		Preload("Swimmer").
		Preload("Instructor.User").
		Where("swimmer_id = ? AND lesson_id = ?", req.SwimmerID, c.Params("lessonId")).
		First(&registration).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Registration not found"})
	}

	if req.InstructorID == nil {
		previous := registration.Instructor
		registration.InstructorID = nil
		registration.Instructor = nil
		if err := database.DB.Save(&registration).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unassign instructor"})
		}

		if previous != nil {
			go notifications.SendEmail(
				previous.User.FullName,
				previous.User.Email,
				"Lesson Assignment Removed",
				fmt.Sprintf("<h1>Assignment Removed</h1><p>You are no longer assigned to %s %s in <b>%s</b>.</p>",
					registration.Swimmer.FirstName, registration.Swimmer.LastName, registration.Lesson.Name),
			)
		}

		return c.JSON(registration)
	}

	instructorID, _ := uuid.Parse(*req.InstructorID)

	var instructor models.Instructor
	if err := database.DB.Preload("User").First(&instructor, "user_id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	lessons, err := services.LessonsWithParticipants()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load lessons for conflict check"})
	}

	if err := services.FindInstructorConflict(registration.Lesson, lessons, instructorID); err != nil {
		var conflict *services.SchedulingConflictError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflict.Error()})
		}
		var malformed *services.MalformedScheduleError
		if errors.As(err, &malformed) {
			log.Printf("Conflict check aborted: %v", malformed)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A lesson schedule could not be read; assignment refused"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Conflict check failed"})
	}

	registration.InstructorID = &instructorID
	registration.Instructor = &instructor
	if err := database.DB.Save(&registration).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign instructor"})
	}

	go notifications.SendEmail(
		instructor.User.FullName,
		instructor.User.Email,
		"New Lesson Assignment",
		fmt.Sprintf("<h1>New Assignment</h1><p>You are now assigned to %s %s in <b>%s</b> (%s, %s-%s).</p>",
			registration.Swimmer.FirstName, registration.Swimmer.LastName, registration.Lesson.Name,
			registration.Lesson.MeetingDays, registration.Lesson.StartTime, registration.Lesson.EndTime),
	)

	return c.JSON(registration)
}

func GetSchedulePDF(c *fiber.Ctx) error {
	registration, status, message := loadRegistration(c)
	if registration == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	url, err := services.GenerateSchedulePDF(*registration)
	if err != nil {
		log.Printf("🔥 Failed to generate schedule PDF: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate schedule PDF"})
	}

	return c.JSON(fiber.Map{"schedule_url": url})
}

func claimsRole(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	role, _ := claims["role"].(string)
	return role
}

func loadRegistration(c *fiber.Ctx) (*models.SwimmerLessonRegistration, int, string) {
	var registration models.SwimmerLessonRegistration
	err := database.DB.
		Preload("Lesson").
		Preload("Swimmer").
		Preload("Instructor.User").
		Where("swimmer_id = ? AND lesson_id = ?", c.Params("swimmerId"), c.Params("lessonId")).
		First(&registration).Error
	if err != nil {
		return nil, fiber.StatusNotFound, "Registration not found"
	}
	return &registration, fiber.StatusOK, ""
}
