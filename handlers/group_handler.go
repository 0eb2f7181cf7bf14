package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/examchat/backend/database"
	"github.com/examchat/backend/models"
	"github.com/examchat/backend/utils"
)

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

// CreateGroup creates a group and attaches the caller as its admin member.
func CreateGroup(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "Cannot parse JSON", fiber.StatusBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnprocessableEntity)
	}

	var group models.Group
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateUniqueInviteCode(tx)
		if err != nil {
			return err
		}

		group = models.Group{
			Name:        req.Name,
			Description: req.Description,
			CreatedBy:   userID,
			InviteCode:  code,
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		membership := models.GroupUser{
			GroupID:  group.ID,
			UserID:   userID,
			Role:     "admin",
			JoinedAt: time.Now(),
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, group, "Group create successfully!", fiber.StatusOK)
}

// MyGroups lists the groups the caller belongs to.
func MyGroups(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var groups []models.Group
	err := database.DB.
		Joins("JOIN group_users ON group_users.group_id = groups.id").
		Where("group_users.user_id = ?", userID).
		Find(&groups).Error
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, groups, "User groups!", fiber.StatusOK)
}

type SendGroupMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

func SendGroupMessage(c *fiber.Ctx) error {
	userID := currentUserID(c)

	groupID, err := strconv.ParseUint(c.Params("groupId"), 10, 64)
	if err != nil {
		return utils.Error(c, "Invalid group id", fiber.StatusBadRequest)
	}

	if !isGroupMember(uint(groupID), userID) {
		return utils.Error(c, "You are not authorized to access this group.", fiber.StatusForbidden)
	}

	var req SendGroupMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "Cannot parse JSON", fiber.StatusBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnprocessableEntity)
	}

	groupMessage := models.GroupMessage{
		GroupID:  uint(groupID),
		SenderID: userID,
		Message:  req.Message,
	}
	if err := database.DB.Create(&groupMessage).Error; err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, groupMessage, "Group messages!", fiber.StatusOK)
}

func GetGroupMessages(c *fiber.Ctx) error {
	userID := currentUserID(c)

	groupID, err := strconv.ParseUint(c.Params("groupId"), 10, 64)
	if err != nil {
		return utils.Error(c, "Invalid group id", fiber.StatusBadRequest)
	}

	if !isGroupMember(uint(groupID), userID) {
		return utils.Error(c, "You are not authorized to access this group.", fiber.StatusForbidden)
	}

	var messages []models.GroupMessage
	err = database.DB.
		Where("group_id = ?", groupID).
		Order("created_at").
		Find(&messages).Error
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, messages, "Group messages!", fiber.StatusOK)
}

func isGroupMember(groupID, userID uint) bool {
	var count int64
	database.DB.Model(&models.GroupUser{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)
	return count > 0
}
