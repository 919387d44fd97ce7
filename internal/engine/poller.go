package engine

import (
	"context"
	"time"

	"github.com/pinmap-service/internal/worker"
	"go.uber.org/zap"
)

// Poller refreshes the engine on a fixed interval. The first refresh runs
// immediately so the map is populated before the first tick. Refresh errors
// are logged and swallowed: the stale snapshot stays usable and the next
// tick tries again.
type Poller struct {
	*worker.BaseWorker
	engine   *Engine
	interval time.Duration
}

func NewPoller(engine *Engine, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{
		BaseWorker: worker.NewBaseWorker("map-poller", "", logger),
		engine:     engine,
		interval:   interval,
	}
}

// Start runs the refresh loop until Stop or context cancellation.
func (p *Poller) Start(ctx context.Context) error {
	logger := p.Logger()
	logger.Info("Starting map poller", zap.Duration("interval", p.interval))

	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.StopChan():
			logger.Info("Poller stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.engine.Refresh(ctx); err != nil {
		p.Logger().Warn("Map refresh failed, keeping previous snapshot", zap.Error(err))
	}
}
