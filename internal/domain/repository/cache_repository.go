package repository

import (
	"context"
	"time"

	"github.com/pinmap-service/internal/domain"
)

// CacheRepository defines the Redis-backed cache.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetPins returns the cached pin list, or nil on a miss.
	GetPins(ctx context.Context) ([]domain.Pin, error)

	// SetPins caches the full pin list.
	SetPins(ctx context.Context, pins []domain.Pin, ttl time.Duration) error

	// InvalidatePins drops the cached pin list (after votes and creates).
	InvalidatePins(ctx context.Context) error

	// GetStats returns cached map statistics, or nil on a miss.
	GetStats(ctx context.Context) (*domain.MapStatistics, error)

	// SetStats caches map statistics.
	SetStats(ctx context.Context, stats *domain.MapStatistics, ttl time.Duration) error
}
