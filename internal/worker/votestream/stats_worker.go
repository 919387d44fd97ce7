package votestream

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/pinmap-service/internal/usecase"
	"github.com/pinmap-service/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
)

// StatsWorker consumes vote and pin-creation events and recomputes the
// aggregated map statistics. Events only say "something changed"; the
// recompute always reads the authoritative tables, so one recompute per
// batch is enough.
type StatsWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	statsUC      *usecase.StatsUseCase
	consumerName string
	maxRetries   int
}

func NewStatsWorker(
	streamRepo repository.StreamRepository,
	statsUC *usecase.StatsUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *StatsWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &StatsWorker{
		BaseWorker:   worker.NewBaseWorker("vote-stats", consumerGroup, logger),
		streamRepo:   streamRepo,
		statsUC:      statsUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

func (w *StatsWorker) streams() []string {
	return []string{domain.StreamVotesCast, domain.StreamPinsCreated}
}

// Start runs the consume loop.
func (w *StatsWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting StatsWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	for _, stream := range w.streams() {
		if err := w.streamRepo.CreateConsumerGroup(ctx, stream, w.ConsumerGroup()); err != nil {
			logger.Error("Failed to create consumer group",
				zap.String("stream", stream),
				zap.Error(err))
			return fmt.Errorf("failed to create consumer group: %w", err)
		}
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch drains both streams and triggers one recompute if anything
// arrived. Returns the number of consumed messages.
func (w *StatsWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()
	total := 0

	for _, stream := range w.streams() {
		messages, err := w.streamRepo.ConsumeBatch(
			ctx,
			stream,
			w.ConsumerGroup(),
			w.consumerName,
			maxBatchSize,
		)
		if err != nil {
			return total, fmt.Errorf("failed to consume from %s: %w", stream, err)
		}

		if len(messages) == 0 {
			continue
		}

		messageIDs := make([]string, 0, len(messages))
		for _, msg := range messages {
			if err := w.validateMessage(stream, msg); err != nil {
				logger.Warn("Skipping malformed message",
					zap.String("stream", stream),
					zap.String("message_id", msg.ID),
					zap.Error(err))
			}
			// Ack everything, malformed included, so nothing wedges the
			// group. The recompute below reads the database, not the event.
			messageIDs = append(messageIDs, msg.ID)
		}

		if err := w.streamRepo.AckMessages(ctx, stream, w.ConsumerGroup(), messageIDs); err != nil {
			logger.Error("Failed to ack messages",
				zap.String("stream", stream),
				zap.Error(err))
			// Not fatal: unacked messages are redelivered and recomputes
			// are idempotent.
		}

		total += len(messages)
	}

	if total == 0 {
		return 0, nil
	}

	if _, err := w.statsUC.Recompute(ctx); err != nil {
		return total, fmt.Errorf("stats recompute failed: %w", err)
	}

	logger.Info("Statistics recomputed", zap.Int("trigger_events", total))
	return total, nil
}

func (w *StatsWorker) validateMessage(stream string, msg domain.StreamMessage) error {
	switch stream {
	case domain.StreamVotesCast:
		var event domain.VoteCastEvent
		return json.Unmarshal([]byte(msg.Data), &event)
	case domain.StreamPinsCreated:
		var event domain.PinCreatedEvent
		return json.Unmarshal([]byte(msg.Data), &event)
	default:
		return fmt.Errorf("unknown stream %q", stream)
	}
}
