package middleware

import (
	"context"
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/service"
	"github.com/ivaschool/portal-api/pkg/response"
)

// RateCounter increments a shared fixed-window counter.
type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type enabler interface {
	Enabled() bool
}

// RateLimit caps requests per client IP within a fixed window. Counters live
// in the shared store so every instance enforces the same limit. When the
// store fails the request is let through. A counter without a backing store
// disables the limiter.
func RateLimit(counter RateCounter, scope string, limit int, window time.Duration, metrics *service.MetricsService, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	if e, ok := counter.(enabler); ok && !e.Enabled() {
		counter = nil
	}
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}
		key := scope + ":" + c.ClientIP()
		count, ttl, err := counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			metrics.RecordRateLimit(scope, "failed_open")
			log.Warn("rate limiter unavailable, allowing request", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if count > int64(limit) {
			metrics.RecordRateLimit(scope, "limited")
			response.TooManyRequests(c, int(math.Ceil(ttl.Seconds())))
			return
		}
		metrics.RecordRateLimit(scope, "allowed")
		c.Next()
	}
}
