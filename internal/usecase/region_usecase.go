package usecase

import (
	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// RegionUseCase answers region-membership questions over the static polygon
// list. Everything here is pure computation over in-memory data.
type RegionUseCase struct {
	regionRepo repository.RegionRepository
	logger     *zap.Logger
}

func NewRegionUseCase(regionRepo repository.RegionRepository, logger *zap.Logger) *RegionUseCase {
	return &RegionUseCase{
		regionRepo: regionRepo,
		logger:     logger,
	}
}

// Regions returns the ordered region list.
func (uc *RegionUseCase) Regions() []domain.Region {
	return uc.regionRepo.Regions()
}

// Resolve returns the first region containing the pin, or "".
func (uc *RegionUseCase) Resolve(pin domain.Pin) string {
	return domain.ResolveRegion(pin, uc.regionRepo.Regions())
}

// PinCounts tallies pins per region. A pin inside several overlapping
// regions counts once per region here (overview panels show coverage, not
// exclusive membership).
func (uc *RegionUseCase) PinCounts(pins []domain.Pin) []dto.RegionSummary {
	regions := uc.regionRepo.Regions()
	summaries := make([]dto.RegionSummary, 0, len(regions))

	for _, region := range regions {
		count := 0
		for _, pin := range pins {
			if region.Contains(pin) {
				count++
			}
		}
		summaries = append(summaries, dto.RegionSummary{
			Name:     region.Name,
			PinCount: count,
		})
	}

	return summaries
}
