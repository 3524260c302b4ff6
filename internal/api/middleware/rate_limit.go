package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hahn-ecommerce/catalog-api/internal/api/metrics"
)

// LimiterStore abstracts the fixed-window counter backend (Redis).
type LimiterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitPolicy defines the throttling parameters for a route.
type RateLimitPolicy struct {
	Route  string
	Window time.Duration
	Limit  int
}

func (p RateLimitPolicy) enabled() bool {
	return p.Window > 0 && p.Limit > 0
}

// RateLimit throttles a route per client IP. The limiter fails open: a
// counter backend error is logged and the request proceeds.
func RateLimit(policy RateLimitPolicy, store LimiterStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !policy.enabled() || store == nil {
			return next
		}

		return func(c echo.Context) error {
			key := fmt.Sprintf("rl:%s:%s", policy.Route, c.RealIP())

			count, err := store.Incr(c.Request().Context(), key, policy.Window)
			if err != nil {
				log.Warn().Err(err).Str("route", policy.Route).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if count > int64(policy.Limit) {
				metrics.RateLimitedTotal.WithLabelValues(policy.Route).Inc()
				log.Warn().
					Str("route", policy.Route).
					Str("ip", c.RealIP()).
					Int64("count", count).
					Msg("request rate limited")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}

			return next(c)
		}
	}
}
