package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/mwangikev/swim_school/handlers"
	"github.com/mwangikev/swim_school/middleware"
)

func InstructorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/instructors", handlers.ListInstructors)

	admin := api.Group("/admin/instructors", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateInstructor)

	instructor := api.Group("/instructor", middleware.Protected(), middleware.InstructorRequired())
	instructor.Get("/assignments", handlers.GetMyAssignments)

	coverage := instructor.Group("/coverage")
	coverage.Post("", handlers.CreateCoverage)
	coverage.Get("", handlers.GetCoverageRequests)
	coverage.Put("/:id", handlers.UpdateCoverage)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
