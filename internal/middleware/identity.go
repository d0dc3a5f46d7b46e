package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/utils"
)

const claimsKey = "claims"

// ClaimsFrom returns the token claims stored by JWTAuth.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*utils.Claims)
	return claims, ok && claims != nil
}

// currentUserID identifies the caller for rate-limit keys. It returns "anon"
// when no token has been validated.
func currentUserID(c echo.Context) string {
	if claims, ok := ClaimsFrom(c); ok {
		return strconv.FormatUint(claims.UserID, 10)
	}
	return "anon"
}
