package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangikev/swim_school/handlers"
	"github.com/mwangikev/swim_school/middleware"
)

func SwimmerRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	swimmers := api.Group("/swimmers", middleware.Protected())
	swimmers.Post("", handlers.CreateSwimmer)
	swimmers.Get("/me", handlers.GetMySwimmers)
	swimmers.Put("/:swimmerId", handlers.UpdateSwimmer)
	swimmers.Delete("/:swimmerId", handlers.DeleteSwimmer)
}
