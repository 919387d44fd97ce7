package repository

import (
	"context"

	"github.com/pinmap-service/internal/domain"
)

// StreamRepository defines Redis Streams access for vote/pin events.
type StreamRepository interface {
	// CreateConsumerGroup creates the consumer group, tolerating BUSYGROUP.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch reads up to count pending messages without blocking
	// longer than the configured read timeout.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessages acknowledges processed messages.
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// PublishToStream publishes data as a JSON payload in the "data" field.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
