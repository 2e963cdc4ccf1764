package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osaa-analytics/unga-readout/pkg/config"
)

// AppPasswordHeader carries the shared admin password.
const AppPasswordHeader = "X-App-Password"

// AdminGuard protects the approval queue endpoints with the shared admin
// password. Comparison is constant time.
func AdminGuard(cfg *config.AdminConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			given := c.Request().Header.Get(AppPasswordHeader)
			if given == "" ||
				subtle.ConstantTimeCompare([]byte(given), []byte(cfg.AppPassword)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid admin password")
			}
			return next(c)
		}
	}
}
