package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
	"gorm.io/gorm"
)

type SwimmerRequest struct {
	FirstName    string  `json:"first_name" validate:"required,min=1"`
	LastName     string  `json:"last_name" validate:"required,min=1"`
	DateOfBirth  *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Level        *string `json:"level,omitempty"`
	MedicalNotes *string `json:"medical_notes,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
}

func CreateSwimmer(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var req SwimmerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	swimmer := models.Swimmer{
		UserID:       userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Level:        req.Level,
		MedicalNotes: req.MedicalNotes,
		PhotoURL:     req.PhotoURL,
	}
	if req.DateOfBirth != nil {
		dob, _ := time.Parse("2006-01-02", *req.DateOfBirth)
		swimmer.DateOfBirth = &dob
	}

	if err := database.DB.Create(&swimmer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create swimmer"})
	}

	return c.Status(fiber.StatusCreated).JSON(swimmer)
}

func GetMySwimmers(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var swimmers []models.Swimmer
	database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&swimmers)

	return c.JSON(swimmers)
}

func UpdateSwimmer(c *fiber.Ctx) error {
	userID := claimsUserID(c)
	swimmerID := c.Params("swimmerId")

	var swimmer models.Swimmer
	if err := database.DB.First(&swimmer, "id = ?", swimmerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Swimmer not found"})
	}
	if swimmer.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your swimmer"})
	}

	var req SwimmerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FirstName != "" {
		swimmer.FirstName = req.FirstName
	}
	if req.LastName != "" {
		swimmer.LastName = req.LastName
	}
	if req.DateOfBirth != nil {
		if dob, err := time.Parse("2006-01-02", *req.DateOfBirth); err == nil {
			swimmer.DateOfBirth = &dob
		}
	}
	if req.Level != nil {
		swimmer.Level = req.Level
	}
	if req.MedicalNotes != nil {
		swimmer.MedicalNotes = req.MedicalNotes
	}
	if req.PhotoURL != nil {
		swimmer.PhotoURL = req.PhotoURL
	}

	database.DB.Save(&swimmer)

	return c.JSON(swimmer)
}

// DeleteSwimmer removes the swimmer along with their lesson registrations
// and waitlist entries.
func DeleteSwimmer(c *fiber.Ctx) error {
	userID := claimsUserID(c)
	swimmerID, err := uuid.Parse(c.Params("swimmerId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid swimmer id"})
	}

	var swimmer models.Swimmer
	if err := database.DB.First(&swimmer, "id = ?", swimmerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Swimmer not found"})
	}
	if swimmer.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your swimmer"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("swimmer_id = ?", swimmerID).Delete(&models.SwimmerLessonRegistration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("swimmer_id = ?", swimmerID).Delete(&models.WaitlistEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&swimmer).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete swimmer"})
	}

	return c.JSON(fiber.Map{"message": "Swimmer removed."})
}
