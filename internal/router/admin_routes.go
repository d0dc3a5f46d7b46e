package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/handler"
	"github.com/iliyamo/docutrack/internal/middleware"
	"github.com/iliyamo/docutrack/internal/model"
)

// RegisterAdmin registers administrator endpoints under /api/admin. All
// routes require a valid JWT and the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/requests", h.ListRequests)
	g.PATCH("/requests/:id/status", h.UpdateStatus)
	g.GET("/stats", h.Stats)
}
