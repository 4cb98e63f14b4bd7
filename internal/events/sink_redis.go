package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisSink publishes events as JSON on a Redis pub/sub channel for
// live subscribers. Messages are not read back.
type redisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(client *redis.Client, channel string) Sink {
	return &redisSink{client: client, channel: channel}
}

func (s *redisSink) Name() string {
	return "redis"
}

func (s *redisSink) Deliver(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return s.client.Publish(ctx, s.channel, payload).Err()
}
