package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/examchat/backend/database"
	"github.com/examchat/backend/models"
	"github.com/examchat/backend/utils"
)

// ListUsers returns every user except the caller, most recently active first.
// It backs the contact list of the chat UI.
func ListUsers(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var users []models.User
	err := database.DB.
		Where("id != ?", userID).
		Order("updated_at desc").
		Find(&users).Error
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, users, "All user list!", fiber.StatusOK)
}
