package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bancofortis/backend/internal/models"
	"github.com/go-redis/redis/v8"
)

// TransferEventsKey is the default Redis list committed transfers are pushed onto.
const TransferEventsKey = "transfer_events"

type EventPublisher interface {
	PublishTransfer(ctx context.Context, event models.TransferEvent) error
}

// RedisEventPublisher appends events to a Redis list. A nil client turns
// publishing into a no-op so the server can run without Redis.
type RedisEventPublisher struct {
	redis *redis.Client
	key   string
}

func NewRedisEventPublisher(client *redis.Client, key string) *RedisEventPublisher {
	if key == "" {
		key = TransferEventsKey
	}
	return &RedisEventPublisher{redis: client, key: key}
}

func (p *RedisEventPublisher) PublishTransfer(ctx context.Context, event models.TransferEvent) error {
	if p.redis == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}
	return p.redis.RPush(ctx, p.key, string(data)).Err()
}
