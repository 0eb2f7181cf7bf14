package routes

import (
	"github.com/examchat/backend/handlers"
	"github.com/examchat/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func GroupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	groups := api.Group("/groups", middleware.Protected())
	groups.Post("/create", handlers.CreateGroup)
	groups.Get("", handlers.MyGroups)
	groups.Post("/:groupId/messages/send", handlers.SendGroupMessage)
	groups.Get("/:groupId/messages", handlers.GetGroupMessages)
}
