package routes

import (
	"github.com/examchat/backend/handlers"
	"github.com/examchat/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ExamRoutes(app *fiber.App, exam *handlers.ExamHandler) {
	api := app.Group("/api/v1")

	exams := api.Group("/exams", middleware.Protected())
	exams.Get("", exam.ListExams)
	exams.Get("/:examId", exam.GetExam)
	exams.Post("/:examId/submit", exam.SubmitExam)
}
