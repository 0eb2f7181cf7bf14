package routes

import (
	"github.com/examchat/backend/handlers"
	"github.com/examchat/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Patch("/avatar", handlers.SetAvatar)

	api.Post("/logout", middleware.Protected(), handlers.Logout)
	api.Get("/users", middleware.Protected(), handlers.ListUsers)

	uploads := api.Group("/uploads", middleware.Protected())
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
