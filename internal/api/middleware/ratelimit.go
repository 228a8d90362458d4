package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/api/metrics"
)

// Limiter is the token-bucket store backing the rate limit middleware.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RateLimit throttles API requests per client IP. The limiter is a shared
// Redis bucket; when it is unreachable the middleware fails open so a cache
// outage does not take the API down with it.
func RateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				secs := int(retryAfter / time.Second)
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
