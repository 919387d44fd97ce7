package usecase

import (
	"context"
	"time"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"go.uber.org/zap"
)

// StatsUseCase maintains the aggregated map statistics. Reads are served from
// cache; the stats worker recomputes on vote and pin events.
type StatsUseCase struct {
	pinRepo   repository.PinRepository
	cacheRepo repository.CacheRepository
	regionUC  *RegionUseCase
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewStatsUseCase(
	pinRepo repository.PinRepository,
	cacheRepo repository.CacheRepository,
	regionUC *RegionUseCase,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		pinRepo:   pinRepo,
		cacheRepo: cacheRepo,
		regionUC:  regionUC,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Get returns current statistics, recomputing on cache miss.
func (uc *StatsUseCase) Get(ctx context.Context) (*domain.MapStatistics, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetStats(ctx)
		if err != nil {
			uc.logger.Warn("Stats cache read failed, recomputing", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	return uc.Recompute(ctx)
}

// Recompute rebuilds statistics from the pin table and the region list and
// stores the result in cache.
func (uc *StatsUseCase) Recompute(ctx context.Context) (*domain.MapStatistics, error) {
	pins, err := uc.pinRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list pins for stats", zap.Error(err))
		return nil, err
	}

	stats := &domain.MapStatistics{
		TotalPins:    len(pins),
		TotalRegions: len(uc.regionUC.Regions()),
		ByCategory:   make(map[string]int),
		ByRegion:     make(map[string]int),
		LastUpdated:  time.Now().UTC(),
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	for _, pin := range pins {
		stats.ByCategory[pin.Category]++
		stats.TotalUpvotes += pin.Upvotes
		stats.TotalDownvotes += pin.Downvotes
		if pin.CreatedAt.After(weekAgo) {
			stats.PinsThisWeek++
		}
	}

	for _, summary := range uc.regionUC.PinCounts(pins) {
		stats.ByRegion[summary.Name] = summary.PinCount
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache stats", zap.Error(err))
		}
	}

	return stats, nil
}
