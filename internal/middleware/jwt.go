package middleware // package middleware contains reusable echo middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores its claims in the request context. Handlers read them with
// ClaimsFrom. A missing header or empty token yields "no token provided";
// any other failure yields "invalid token". Both are 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := utils.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}
