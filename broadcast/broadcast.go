// Package broadcast is the outbound port to the real-time transport. Delivery
// is best-effort, at most once: callers fire events after persistence and do
// not observe or retry failures.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	config "github.com/examchat/backend/configs"
	"github.com/redis/go-redis/v9"
)

// Publisher emits one payload onto one named channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s",
			config.ConfigOr("REDIS_HOST", "localhost"),
			config.ConfigOr("REDIS_PORT", "6379")),
		Password: config.Config("REDIS_PASSWORD"),
		DB:       0,
	})
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal broadcast payload: %w", err)
	}
	return p.client.Publish(ctx, channel, data).Err()
}
