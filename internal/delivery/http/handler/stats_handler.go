package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pinmap-service/internal/pkg/utils"
	"github.com/pinmap-service/internal/usecase"
	"go.uber.org/zap"
)

// StatsHandler serves the aggregated map statistics.
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics returns the cached statistics, recomputing on a cold cache.
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.statsUC.Get(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(stats)
}
