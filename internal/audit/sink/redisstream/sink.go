// Package redisstream publishes committed audit events to a Redis stream so
// external subscribers can tail the log without any access to the ledgers.
package redisstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"coldchain/internal/audit"
)

const defaultStream = "coldchain:audit"

// Sink appends one stream entry per event via XADD.
type Sink struct {
	client *redis.Client
	stream string
}

func New(client *redis.Client, stream string) *Sink {
	if stream == "" {
		stream = defaultStream
	}
	return &Sink{client: client, stream: stream}
}

func (s *Sink) Publish(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"action":  string(event.Action),
			"payload": payload,
		},
	}).Err()
}
