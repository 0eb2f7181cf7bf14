package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/examchat/backend/events"
	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	ID     string
	UserID uint
	Conn   *websocket.Conn
}

var clients = make(map[uint]*websocket.Conn)
var clientsMu sync.RWMutex

var Register = make(chan *Client)
var Unregister = make(chan *Client)

// RunHub subscribes to the shared chat channel on Redis and forwards each
// event to the connected client whose user id matches the payload's
// receiver_id. That mirrors the private-channel rule: a user only ever
// receives messages addressed to them.
//
// Registration is last-connection-wins: a user opening a second connection
// replaces the first, which stops receiving events.
func RunHub(rdb *redis.Client) {
	sub := rdb.Subscribe(context.Background(), events.ChannelChat)
	broadcasts := sub.Channel()

	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s (user %d)", client.ID, client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()

		case client := <-Unregister:
			log.Printf("Client unregistered: %s (user %d)", client.ID, client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()

		case msg := <-broadcasts:
			var env events.Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("Dropping malformed broadcast payload: %v", err)
				continue
			}
			deliver(env)
		}
	}
}

func deliver(env events.Envelope) {
	receiverID := env.Data.ReceiverID

	clientsMu.RLock()
	conn, ok := clients[receiverID]
	clientsMu.RUnlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(env); err != nil {
		log.Printf("Error sending event to user %d: %v", receiverID, err)
		conn.Close()
		clientsMu.Lock()
		if current, ok := clients[receiverID]; ok && current == conn {
			delete(clients, receiverID)
		}
		clientsMu.Unlock()
	}
}
