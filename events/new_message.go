// Package events shapes the broadcast payloads emitted after persistence.
package events

import (
	"context"
	"fmt"
	"log"

	"github.com/examchat/backend/broadcast"
	"github.com/examchat/backend/models"
)

const (
	// ChannelChat is the shared public channel all chat events land on.
	ChannelChat = "chat"
	// EventNewMessage names the event carried by every chat broadcast.
	EventNewMessage = "new-message"

	createdAtFormat = "2006-01-02 15:04:05"
)

// PrivateChatChannel is the per-receiver channel. Only the user whose id
// equals receiverID may subscribe to it.
func PrivateChatChannel(receiverID uint) string {
	return fmt.Sprintf("chat.%d", receiverID)
}

// CanSubscribePrivate is the authorization predicate for private chat
// channels.
func CanSubscribePrivate(userID, receiverID uint) bool {
	return userID == receiverID
}

type NewMessagePayload struct {
	ID         uint   `json:"id"`
	Message    string `json:"message"`
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	CreatedAt  string `json:"created_at"`
}

// Envelope is what actually crosses the transport: the event name plus its
// payload.
type Envelope struct {
	Event string            `json:"event"`
	Data  NewMessagePayload `json:"data"`
}

// NewMessageSent builds the broadcast envelope for a persisted message.
func NewMessageSent(m models.Message) Envelope {
	return Envelope{
		Event: EventNewMessage,
		Data: NewMessagePayload{
			ID:         m.ID,
			Message:    m.Message,
			SenderID:   m.SenderID,
			ReceiverID: m.ReceiverID,
			CreatedAt:  m.CreatedAt.Format(createdAtFormat),
		},
	}
}

// DispatchNewMessage publishes the event on the shared channel and the
// receiver's private channel. Publish failures are logged and swallowed: the
// message is already durable and the sender's response already reflects that.
func DispatchNewMessage(ctx context.Context, pub broadcast.Publisher, m models.Message) {
	env := NewMessageSent(m)
	for _, channel := range []string{ChannelChat, PrivateChatChannel(m.ReceiverID)} {
		if err := pub.Publish(ctx, channel, env); err != nil {
			log.Printf("Failed to broadcast message %d on %s: %v", m.ID, channel, err)
		}
	}
}
