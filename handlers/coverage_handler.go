package handlers

import (
	"errors"
	"fmt"
	"log"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/mwangikev/swim_school/configs"
	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
	"github.com/mwangikev/swim_school/notifications"
	"github.com/mwangikev/swim_school/services"
	"github.com/mwangikev/swim_school/websocket"
	"gorm.io/gorm"
)

type CreateCoverageRequest struct {
	LessonID    string `json:"lesson_id" validate:"required,uuid"`
	SwimmerID   string `json:"swimmer_id" validate:"required,uuid"`
	RequestDate string `json:"request_date" validate:"required,datetime=2006-01-02"`
	Reason      string `json:"reason,omitempty" validate:"max=500"`
	Notes       string `json:"notes,omitempty"`
}

func CreateCoverage(c *fiber.Ctx) error {
	instructorID := claimsUserID(c)

	var req CreateCoverageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	lessonID, _ := uuid.Parse(req.LessonID)
	swimmerID, _ := uuid.Parse(req.SwimmerID)

	var registration models.SwimmerLessonRegistration
	err := database.DB.Preload("Lesson").
		Where("swimmer_id = ? AND lesson_id = ?", swimmerID, lessonID).
		First(&registration).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Swimmer is not registered for this lesson"})
	}

	// The date must be a real occurrence of the lesson.
	schedule, err := services.ScheduleOf(registration.Lesson)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Lesson schedule could not be read"})
	}
	found := false
	for _, date := range schedule.Occurrences() {
		if date == req.RequestDate {
			found = true
			break
		}
	}
	if !found {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "The lesson has no occurrence on that date"})
	}

	coverage := models.CoverageRequest{
		RequestingInstructorID: instructorID,
		LessonID:               lessonID,
		SwimmerID:              swimmerID,
		RequestDate:            req.RequestDate,
		Reason:                 req.Reason,
		Notes:                  req.Notes,
		Status:                 models.CoveragePending,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.CoverageRequest{}).
			Where("lesson_id = ? AND swimmer_id = ? AND request_date = ? AND status IN ?",
				lessonID, swimmerID, req.RequestDate,
				[]models.CoverageStatus{models.CoveragePending, models.CoverageAccepted}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return &services.DuplicateCoverageError{LessonID: lessonID, SwimmerID: swimmerID, RequestDate: req.RequestDate}
		}
		return tx.Create(&coverage).Error
	})
	if err != nil {
		var duplicate *services.DuplicateCoverageError
		if errors.As(err, &duplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An active coverage request already exists for this swimmer on that date"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create coverage request"})
	}

	websocket.Broadcast <- &websocket.CoverageEvent{Type: "created", ActorID: instructorID, Request: &coverage}

	return c.Status(fiber.StatusCreated).JSON(coverage)
}

// GetCoverageRequests serves the four derived views over the coverage
// table: mine (my pending requests), available (others' pending requests),
// covering (accepted by me), accepted (my requests someone accepted).
func GetCoverageRequests(c *fiber.Ctx) error {
	instructorID := claimsUserID(c)

	query := database.DB.
		Preload("RequestingInstructor.User").
		Preload("CoveringInstructor.User").
		Preload("Lesson").
		Preload("Swimmer").
		Order("request_date asc")

	view := c.Query("view", "available")
	switch view {
	case "mine":
		query = query.Where("requesting_instructor_id = ? AND status = ?", instructorID, models.CoveragePending)
	case "available":
		query = query.Where("requesting_instructor_id != ? AND status = ?", instructorID, models.CoveragePending)
	case "covering":
		query = query.Where("covering_instructor_id = ? AND status = ?", instructorID, models.CoverageAccepted)
	case "accepted":
		query = query.Where("requesting_instructor_id = ? AND status = ?", instructorID, models.CoverageAccepted)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown view; expected mine, available, covering or accepted"})
	}

	var requests []models.CoverageRequest
	if err := query.Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load coverage requests"})
	}

	return c.JSON(requests)
}

type CoverageActionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline delete reRequest"`
}

func UpdateCoverage(c *fiber.Ctx) error {
	instructorID := claimsUserID(c)

	var req CoverageActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var coverage models.CoverageRequest
	err := database.DB.
		Preload("RequestingInstructor.User").
		Preload("Lesson").
		Preload("Swimmer").
		First(&coverage, "id = ?", c.Params("id")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coverage request not found"})
	}

	switch req.Action {
	case "accept":
		if err := services.AcceptCoverage(&coverage, instructorID); err != nil {
			return coverageTransitionError(c, err)
		}
	case "decline":
		if err := services.DeclineCoverage(&coverage); err != nil {
			return coverageTransitionError(c, err)
		}
	case "delete":
		if err := services.CanDeleteCoverage(&coverage, instructorID); err != nil {
			return coverageTransitionError(c, err)
		}
		if err := database.DB.Delete(&coverage).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete coverage request"})
		}
		websocket.Broadcast <- &websocket.CoverageEvent{Type: "deleted", ActorID: instructorID, Request: &coverage}
		return c.JSON(fiber.Map{"message": "Coverage request deleted."})
	case "reRequest":
		if err := services.ReRequestCoverage(&coverage, instructorID); err != nil {
			return coverageTransitionError(c, err)
		}
	}

	if err := database.DB.Save(&coverage).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update coverage request"})
	}

	eventType := map[string]string{"accept": "accepted", "decline": "declined", "reRequest": "re_requested"}[req.Action]
	websocket.Broadcast <- &websocket.CoverageEvent{Type: eventType, ActorID: instructorID, Request: &coverage}

	if req.Action == "accept" && coverage.RequestingInstructor != nil {
		go notifications.SendEmail(
			coverage.RequestingInstructor.User.FullName,
			coverage.RequestingInstructor.User.Email,
			"Your Coverage Request Was Accepted",
			fmt.Sprintf("<h1>Coverage Accepted</h1><p>Another instructor will cover %s %s's <b>%s</b> lesson on %s.</p>",
				coverage.Swimmer.FirstName, coverage.Swimmer.LastName, coverage.Lesson.Name, coverage.RequestDate),
		)
	}

	return c.JSON(coverage)
}

func coverageTransitionError(c *fiber.Ctx, err error) error {
	var transition *services.StateTransitionError
	if errors.As(err, &transition) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": transition.Error()})
	}
	var actor *services.NotRequestActorError
	if errors.As(err, &actor) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": actor.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process coverage action"})
}

type wsAuthMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// ServeWs keeps an instructor connected for live coverage-board pushes. The
// first frame must be an auth message carrying the instructor's JWT.
func ServeWs(c *websocketcontrib.Conn) {
	var authMsg wsAuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	// The board is push-only; drain until the client goes away.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
