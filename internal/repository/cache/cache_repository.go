package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPins  = "pins:all"
	keyStats = "stats:current"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func (r *cacheRepository) GetPins(ctx context.Context) ([]domain.Pin, error) {
	data, err := r.Get(ctx, keyPins)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var pins []domain.Pin
	if err := json.Unmarshal(data, &pins); err != nil {
		r.logger.Error("Failed to unmarshal pins from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal pins: %w", err)
	}

	return pins, nil
}

func (r *cacheRepository) SetPins(ctx context.Context, pins []domain.Pin, ttl time.Duration) error {
	data, err := json.Marshal(pins)
	if err != nil {
		r.logger.Error("Failed to marshal pins", zap.Error(err))
		return fmt.Errorf("marshal pins: %w", err)
	}

	return r.Set(ctx, keyPins, data, ttl)
}

func (r *cacheRepository) InvalidatePins(ctx context.Context) error {
	return r.Delete(ctx, keyPins)
}

func (r *cacheRepository) GetStats(ctx context.Context) (*domain.MapStatistics, error) {
	data, err := r.Get(ctx, keyStats)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var stats domain.MapStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}

func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.MapStatistics, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.Error("Failed to marshal stats", zap.Error(err))
		return fmt.Errorf("marshal stats: %w", err)
	}

	return r.Set(ctx, keyStats, data, ttl)
}
