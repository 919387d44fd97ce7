package usecase

import (
	"context"
	"time"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/pinmap-service/internal/pkg/errors"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// PinUseCase serves the pin list and creation. The pin list is cached with a
// short TTL since every map client polls it; cache failures fall through to
// the database.
type PinUseCase struct {
	pinRepo    repository.PinRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
	cacheTTL   time.Duration
}

func NewPinUseCase(
	pinRepo repository.PinRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *PinUseCase {
	return &PinUseCase{
		pinRepo:    pinRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

// List returns all pins, cache-aside.
func (uc *PinUseCase) List(ctx context.Context) ([]domain.Pin, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetPins(ctx)
		if err != nil {
			uc.logger.Warn("Pin cache read failed, falling back to database", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	pins, err := uc.pinRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list pins", zap.Error(err))
		return nil, err
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetPins(ctx, pins, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache pin list", zap.Error(err))
		}
	}

	return pins, nil
}

// ListByCategories returns only pins in the given categories. Filtered reads
// bypass the cache; the full list stays the hot path.
func (uc *PinUseCase) ListByCategories(ctx context.Context, categories []string) ([]domain.Pin, error) {
	pins, err := uc.pinRepo.ListByCategories(ctx, categories)
	if err != nil {
		uc.logger.Error("Failed to list pins by categories",
			zap.Strings("categories", categories),
			zap.Error(err))
		return nil, err
	}

	return pins, nil
}

// Create validates the category against the runtime category set and stores
// the pin with zeroed counts regardless of what the client sent.
func (uc *PinUseCase) Create(ctx context.Context, req dto.CreatePinRequest) (*domain.Pin, error) {
	categories, err := uc.pinRepo.ListCategories(ctx)
	if err != nil {
		uc.logger.Error("Failed to load categories for validation", zap.Error(err))
		return nil, err
	}

	if !domain.NewCategorySet(categories).Contains(req.Category) {
		return nil, errors.ErrUnknownCategory.WithDetails(map[string]interface{}{
			"category": req.Category,
		})
	}

	pin, err := uc.pinRepo.Create(ctx, domain.Pin{
		X:           req.X,
		Y:           req.Y,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		uc.logger.Error("Failed to create pin", zap.Error(err))
		return nil, err
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.InvalidatePins(ctx); err != nil {
			uc.logger.Warn("Failed to invalidate pin cache", zap.Error(err))
		}
	}

	// Best-effort event: a lost event only delays the stats refresh.
	if uc.streamRepo != nil {
		event := domain.PinCreatedEvent{
			PinID:     pin.ID,
			Category:  pin.Category,
			CreatedAt: pin.CreatedAt,
		}
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamPinsCreated, event); err != nil {
			uc.logger.Warn("Failed to publish pin created event",
				zap.Int64("pin_id", pin.ID),
				zap.Error(err))
		}
	}

	uc.logger.Info("Pin created",
		zap.Int64("pin_id", pin.ID),
		zap.String("category", pin.Category))

	return pin, nil
}

// Categories returns the backend-supplied category enumeration.
func (uc *PinUseCase) Categories(ctx context.Context) ([]string, error) {
	categories, err := uc.pinRepo.ListCategories(ctx)
	if err != nil {
		uc.logger.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}

	return categories, nil
}
