package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangikev/swim_school/handlers"
	"github.com/mwangikev/swim_school/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/token-login", handlers.TokenLogin)
	auth.Post("/forgot-password", handlers.ForgotPassword)
	auth.Post("/reset-password", handlers.ResetPassword)
	auth.Post("/change-password", middleware.Protected(), handlers.ChangePassword)
}
