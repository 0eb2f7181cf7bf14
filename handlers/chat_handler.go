package handlers

import (
	"context"
	"log"
	"strconv"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/examchat/backend/broadcast"
	"github.com/examchat/backend/database"
	"github.com/examchat/backend/events"
	"github.com/examchat/backend/models"
	"github.com/examchat/backend/utils"
	"github.com/examchat/backend/websocket"
)

type ChatHandler struct {
	publisher broadcast.Publisher
}

func NewChatHandler(publisher broadcast.Publisher) *ChatHandler {
	return &ChatHandler{publisher: publisher}
}

// GetMessages returns the full two-way history between the caller and the
// given user, oldest first.
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userID := currentUserID(c)

	otherID, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil {
		return utils.Error(c, "Invalid user id", fiber.StatusBadRequest)
	}

	var messages []models.Message
	err = database.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at").
		Find(&messages).Error
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, messages, "message create successfully!", fiber.StatusOK)
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

// SendMessage persists the message, replies, and broadcasts the new-message
// event. The broadcast is fire-and-forget: its failure never reaches the
// sender.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "Cannot parse JSON", fiber.StatusBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnprocessableEntity)
	}

	message := models.Message{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	go events.DispatchNewMessage(context.Background(), h.publisher, message)

	return utils.Success(c, message, "message create successfully!", fiber.StatusOK)
}

// ServeWs upgrades a client onto the notification stream. The first frame
// must be an auth message carrying a valid JWT; after that the connection
// only receives events addressed to the authenticated user.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		log.Printf("WebSocket auth failed: invalid or missing auth message: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		log.Printf("WebSocket auth failed: invalid token: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userIDClaim, ok := claims["user_id"].(float64)
	if !ok {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{
		ID:     uuid.New().String(),
		UserID: uint(userIDClaim),
		Conn:   c,
	}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	// The stream is one-way. Keep reading so close frames are handled.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", client.ID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", client.ID, err)
			}
			break
		}
	}
}
