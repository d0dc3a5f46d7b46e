package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/model"
	"github.com/iliyamo/docutrack/internal/utils"
)

// RequireRole enforces that the authenticated user has one of roles. It must
// be composed after JWTAuth; without claims the request is treated as
// unauthenticated.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := ClaimsFrom(c)
			if err := utils.Authorize(claims, roles...); err != nil {
				if errors.Is(err, utils.ErrForbidden) {
					return echo.NewHTTPError(http.StatusForbidden, "access denied: insufficient role")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			return next(c)
		}
	}
}
