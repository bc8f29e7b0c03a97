package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangikev/swim_school/handlers"
	"github.com/mwangikev/swim_school/middleware"
)

func WaitlistRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	waitlist := api.Group("/waitlist", middleware.Protected())
	waitlist.Post("/join", handlers.JoinWaitlist)

	admin := waitlist.Group("", middleware.AdminRequired())
	admin.Get("", handlers.GetWaitlist)
	admin.Delete("/:entryId", handlers.RemoveFromWaitlist)
	admin.Post("/reorder", handlers.ReorderWaitlist)
}
