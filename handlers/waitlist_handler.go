package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
	"github.com/mwangikev/swim_school/services"
	"gorm.io/gorm"
)

type JoinWaitlistRequest struct {
	SwimmerID string `json:"swimmer_id" validate:"required,uuid"`
	Notes     string `json:"notes,omitempty"`
}

// JoinWaitlist appends the swimmer at the end of the active queue.
func JoinWaitlist(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var req JoinWaitlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	swimmerID, _ := uuid.Parse(req.SwimmerID)

	var swimmer models.Swimmer
	if err := database.DB.First(&swimmer, "id = ?", swimmerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Swimmer not found"})
	}
	if swimmer.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your swimmer"})
	}

	var entry models.WaitlistEntry
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.WaitlistEntry{}).
			Where("swimmer_id = ? AND status = ?", swimmerID, models.WaitlistActive).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}

		var entries []models.WaitlistEntry
		if err := tx.Where("status = ?", models.WaitlistActive).Find(&entries).Error; err != nil {
			return err
		}

		entry = models.WaitlistEntry{
			SwimmerID:        swimmerID,
			RegistrationDate: time.Now(),
			Status:           models.WaitlistActive,
			Position:         services.NextWaitlistPosition(entries),
			Notes:            req.Notes,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Swimmer is already on the waitlist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to join waitlist"})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func GetWaitlist(c *fiber.Ctx) error {
	var entries []models.WaitlistEntry
	err := database.DB.
		Preload("Swimmer.User").
		Where("status = ?", models.WaitlistActive).
		Order("position asc").
		Find(&entries).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load waitlist"})
	}

	return c.JSON(entries)
}

// RemoveFromWaitlist marks the entry inactive, leaving a position gap until
// the next reorder.
func RemoveFromWaitlist(c *fiber.Ctx) error {
	var entry models.WaitlistEntry
	if err := database.DB.First(&entry, "id = ?", c.Params("entryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Waitlist entry not found"})
	}

	entry.Status = models.WaitlistInactive
	if err := database.DB.Save(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove waitlist entry"})
	}

	return c.JSON(fiber.Map{"message": "Waitlist entry removed. Run a reorder to close the position gap."})
}

// ReorderWaitlist recomputes the dense 1..N ranking over active entries.
func ReorderWaitlist(c *fiber.Ctx) error {
	var reordered []models.WaitlistEntry
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var entries []models.WaitlistEntry
		if err := tx.Order("position asc").Find(&entries).Error; err != nil {
			return err
		}

		reordered = services.RenumberWaitlist(entries)
		for i := range reordered {
			if reordered[i].Status != models.WaitlistActive {
				continue
			}
			if err := tx.Model(&models.WaitlistEntry{}).
				Where("id = ?", reordered[i].ID).
				Update("position", reordered[i].Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reorder waitlist"})
	}

	return c.JSON(fiber.Map{"message": "Waitlist positions renumbered."})
}
