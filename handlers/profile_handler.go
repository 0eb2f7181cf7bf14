package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/examchat/backend/database"
	"github.com/examchat/backend/models"
	"github.com/examchat/backend/utils"
)

func GetProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return utils.Error(c, "User not found", fiber.StatusNotFound)
	}

	return utils.Success(c, user, "User profile data !", fiber.StatusOK)
}

type SetAvatarRequest struct {
	AvatarURL string `json:"avatar_url" validate:"required,url"`
}

// SetAvatar stores the URL the client received back from its direct upload.
func SetAvatar(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req SetAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "Cannot parse JSON", fiber.StatusBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnprocessableEntity)
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return utils.Error(c, "User not found", fiber.StatusNotFound)
	}

	user.AvatarURL = &req.AvatarURL
	if err := database.DB.Save(&user).Error; err != nil {
		return utils.Error(c, "Failed to update profile", fiber.StatusInternalServerError)
	}

	return utils.Success(c, user, "Profile updated!", fiber.StatusOK)
}

// Logout is stateless with JWT auth; clients discard the token.
func Logout(c *fiber.Ctx) error {
	return utils.Success(c, nil, "Logout successfully!!", fiber.StatusOK)
}
