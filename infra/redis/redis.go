package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventPublisher mirrors room broadcasts onto Redis pub/sub so external
// observers (dashboards, spectator feeds) can follow live rooms. The game
// never reads anything back; the in-memory registry stays the only authority.
type EventPublisher struct {
	client *redis.Client
}

// RoomEvent is the wire format published to room channels.
type RoomEvent struct {
	RoomCode  string      `json:"roomCode"`
	Type      string      `json:"type"`
	Content   interface{} `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEventPublisher(addr, password string, db int) (*EventPublisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &EventPublisher{client: rdb}, nil
}

func (p *EventPublisher) Close() error {
	return p.client.Close()
}

// Publish sends one event to the room's channel, fire-and-forget. Failures
// are logged and dropped; delivery to the mirror is never load-bearing.
func (p *EventPublisher) Publish(ctx context.Context, roomCode, event string, payload interface{}) {
	msg := RoomEvent{
		RoomCode:  roomCode,
		Type:      event,
		Content:   payload,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		zap.L().Error("Failed to marshal room event", zap.Error(err))
		return
	}

	channel := fmt.Sprintf("room:%s", roomCode)
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		zap.L().Warn("Failed to publish room event",
			zap.String("channel", channel), zap.Error(err))
	}
}
