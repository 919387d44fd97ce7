package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pinmap-service/internal/pkg/errors"
	"github.com/pinmap-service/internal/pkg/utils"
	"golang.org/x/time/rate"
)

const (
	cleanupInterval = 10 * time.Minute
	idleEviction    = time.Hour
)

// RateLimit throttles per client IP. It guards creation endpoints only;
// voting must never be rate limited because a toggle is two quick requests.
func RateLimit(perMinute int, burst int) fiber.Handler {
	var (
		mu        sync.Mutex
		limiters  = make(map[string]*limiterEntry)
		lastSweep = time.Now()
	)

	return func(c *fiber.Ctx) error {
		now := time.Now()

		mu.Lock()
		// Sweep idle limiters inline so the map does not grow unbounded.
		// Fiber has no middleware teardown hook, so a background ticker
		// would outlive the handler.
		if now.Sub(lastSweep) > cleanupInterval {
			for ip, entry := range limiters {
				if now.Sub(entry.lastSeen) > idleEviction {
					delete(limiters, ip)
				}
			}
			lastSweep = now
		}

		entry, ok := limiters[c.IP()]
		if !ok {
			entry = &limiterEntry{
				limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
			}
			limiters[c.IP()] = entry
		}
		entry.lastSeen = now
		mu.Unlock()

		if !entry.limiter.Allow() {
			return utils.SendError(c, errors.ErrRateLimited)
		}

		return c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}
