package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/handler"
	"github.com/iliyamo/docutrack/internal/middleware"
)

// RegisterCertificates registers the caller-scoped request endpoints under
// /api/certificates. Any authenticated role may use them; handlers only
// ever touch rows owned by the caller.
func RegisterCertificates(e *echo.Echo, h *handler.CertificateHandler, jwtSecret string) {
	g := e.Group("/api/certificates", middleware.JWTAuth(jwtSecret))
	g.POST("/request", h.Create)
	g.GET("/my-requests", h.ListMine)
	g.GET("/request/:id", h.Get)
}
