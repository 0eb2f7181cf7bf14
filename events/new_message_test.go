package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/examchat/backend/models"
)

type capturingPublisher struct {
	channels []string
	payloads []interface{}
	err      error
}

func (p *capturingPublisher) Publish(_ context.Context, channel string, payload interface{}) error {
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func sampleMessage() models.Message {
	return models.Message{
		ID:         9,
		SenderID:   1,
		ReceiverID: 2,
		Message:    "Hey! How are you?",
		CreatedAt:  time.Date(2025, 4, 17, 10, 20, 30, 0, time.UTC),
	}
}

func TestNewMessageSent(t *testing.T) {
	env := NewMessageSent(sampleMessage())

	if env.Event != "new-message" {
		t.Errorf("Event = %q, want %q", env.Event, "new-message")
	}
	if env.Data.ID != 9 || env.Data.SenderID != 1 || env.Data.ReceiverID != 2 {
		t.Errorf("payload ids = %+v, want id 9 from 1 to 2", env.Data)
	}
	if env.Data.Message != "Hey! How are you?" {
		t.Errorf("payload message = %q", env.Data.Message)
	}
	if env.Data.CreatedAt != "2025-04-17 10:20:30" {
		t.Errorf("CreatedAt = %q, want fixed datetime format", env.Data.CreatedAt)
	}
}

func TestDispatchNewMessagePublishesBothChannels(t *testing.T) {
	pub := &capturingPublisher{}

	DispatchNewMessage(context.Background(), pub, sampleMessage())

	want := []string{"chat", "chat.2"}
	if len(pub.channels) != len(want) {
		t.Fatalf("published to %d channels %v, want %v", len(pub.channels), pub.channels, want)
	}
	for i, ch := range want {
		if pub.channels[i] != ch {
			t.Errorf("channel %d = %q, want %q", i, pub.channels[i], ch)
		}
	}
}

func TestDispatchNewMessageSwallowsPublishErrors(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("transport down")}

	// Must not panic or surface the failure; both publishes are still tried.
	DispatchNewMessage(context.Background(), pub, sampleMessage())

	if len(pub.channels) != 2 {
		t.Errorf("attempted %d publishes despite errors, want 2", len(pub.channels))
	}
}

func TestCanSubscribePrivate(t *testing.T) {
	if !CanSubscribePrivate(2, 2) {
		t.Error("receiver should be allowed on their own private channel")
	}
	if CanSubscribePrivate(1, 2) {
		t.Error("another user must not subscribe to the receiver's channel")
	}
	if got := PrivateChatChannel(15); got != "chat.15" {
		t.Errorf("PrivateChatChannel(15) = %q, want %q", got, "chat.15")
	}
}
