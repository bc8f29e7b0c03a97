package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangikev/swim_school/handlers"
	"github.com/mwangikev/swim_school/middleware"
)

func LessonRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/lessons", handlers.ListLessons)

	lessons := api.Group("/lessons", middleware.Protected())
	lessons.Get("/participants", middleware.InstructorRequired(), handlers.GetLessonsWithParticipants)
	lessons.Put("/assign/:lessonId", middleware.AdminRequired(), handlers.AssignInstructor)
	lessons.Post("/:lessonId/register", handlers.RegisterSwimmerForLesson)
	lessons.Delete("/:lessonId/swimmers/:swimmerId", handlers.RemoveSwimmerFromLesson)
	lessons.Post("/:lessonId/swimmers/:swimmerId/missing-dates", handlers.AddMissingDate)
	lessons.Get("/:lessonId/swimmers/:swimmerId/schedule-pdf", handlers.GetSchedulePDF)
	lessons.Put("/:lessonId/swimmers/:swimmerId/payment", middleware.AdminRequired(), handlers.UpdatePaymentStatus)
	lessons.Put("/:lessonId/swimmers/:swimmerId/notes", middleware.InstructorRequired(), handlers.UpdateInstructorNotes)

	admin := api.Group("/admin/lessons", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateLesson)
	admin.Put("/:lessonId", handlers.UpdateLesson)
	admin.Delete("/:lessonId", handlers.DeleteLesson)
}
