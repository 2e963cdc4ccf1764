package middleware

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/infrastructure/cache"
	"github.com/osaa-analytics/unga-readout/pkg/config"
)

// RateLimit throttles analysis generation per caller with a fixed window.
// The key is the authenticated user when present, the client IP otherwise.
func RateLimit(store *cache.CounterStore, cfg *config.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := clientKey(c)

			count, windowStart := store.Incr(key, cfg.Window)
			if count > cfg.Attempts {
				retryAt := windowStart.Add(cfg.Window)
				retryAfter := time.Until(retryAt).Round(time.Second)
				if retryAfter < time.Second {
					retryAfter = time.Second
				}

				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
				return apperrors.ErrRateLimited(retryAfter.String())
			}

			return next(c)
		}
	}
}

func clientKey(c echo.Context) string {
	if id, ok := c.Get(UserIDKey).(uuid.UUID); ok {
		return "user:" + id.String()
	}
	return "ip:" + c.RealIP()
}
