package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/mwangikev/swim_school/configs"
	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
	"github.com/mwangikev/swim_school/notifications"
	"github.com/mwangikev/swim_school/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateInstructorRequest struct {
	FullName       string  `json:"full_name" validate:"required,min=2"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          *string `json:"phone,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Certifications *string `json:"certifications,omitempty"`
}

// CreateInstructor provisions an instructor account. The account starts
// with a random placeholder password and a one-time login token that is
// emailed to the instructor; the first token login forces a password change.
func CreateInstructor(c *fiber.Ctx) error {
	var req CreateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var newUser models.User
	var instructor models.Instructor
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		token, err := utils.GenerateOneTimeToken(tx)
		if err != nil {
			return err
		}

		placeholder, err := bcrypt.GenerateFromPassword([]byte(token[:16]), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		expiration := time.Now().Add(7 * 24 * time.Hour)
		newUser = models.User{
			FullName:              req.FullName,
			Email:                 req.Email,
			Password:              string(placeholder),
			Role:                  "instructor",
			Phone:                 req.Phone,
			MustChangePassword:    true,
			OneTimeToken:          &token,
			OneTimeTokenExpiresAt: &expiration,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}

		instructor = models.Instructor{
			UserID:         newUser.ID,
			Bio:            req.Bio,
			Certifications: req.Certifications,
		}
		return tx.Create(&instructor).Error
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create instructor"})
	}

	loginLink := fmt.Sprintf("%s/staff-login?token=%s", config.Config("FRONTEND_URL"), *newUser.OneTimeToken)
	go notifications.SendEmail(
		newUser.FullName,
		newUser.Email,
		"Your Swim School Instructor Account",
		fmt.Sprintf("<h1>Welcome Aboard!</h1><p>An instructor account has been created for you. Use the link below to sign in and set your password. The link is valid for 7 days.</p><p><a href='%s'>Sign In</a></p>", loginLink),
	)

	instructor.User = newUser
	return c.Status(fiber.StatusCreated).JSON(instructor)
}

func ListInstructors(c *fiber.Ctx) error {
	var instructors []models.Instructor
	err := database.DB.
		Preload("User").
		Where("is_active = ?", true).
		Find(&instructors).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load instructors"})
	}

	return c.JSON(instructors)
}

// GetMyAssignments lists every registration the calling instructor is
// assigned to, with the swimmer and lesson details.
func GetMyAssignments(c *fiber.Ctx) error {
	instructorID := claimsUserID(c)

	var registrations []models.SwimmerLessonRegistration
	err := database.DB.
		Preload("Swimmer.User").
		Preload("Lesson").
		Where("instructor_id = ?", instructorID).
		Find(&registrations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load assignments"})
	}

	return c.JSON(registrations)
}

type UpdateInstructorNotesRequest struct {
	InstructorNotes string `json:"instructor_notes"`
}

// UpdateInstructorNotes lets the assigned instructor keep free-text notes
// on a swimmer's registration.
func UpdateInstructorNotes(c *fiber.Ctx) error {
	instructorID := claimsUserID(c)

	var req UpdateInstructorNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	registration, status, message := loadRegistration(c)
	if registration == nil {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	if registration.InstructorID == nil || *registration.InstructorID != instructorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not assigned to this swimmer"})
	}

	registration.InstructorNotes = req.InstructorNotes
	if err := database.DB.Save(registration).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save notes"})
	}

	return c.JSON(registration)
}
