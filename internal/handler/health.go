package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	DB  Pinger
	Env string
}

func NewHealthHandler(db Pinger, env string) *HealthHandler {
	return &HealthHandler{DB: db, Env: env}
}

// Root is the API banner.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Docutrack API is running"})
}

// Health is used by load balancers and monitoring. It always answers 200;
// the database field reports whether MySQL responded to a ping.
func (h *HealthHandler) Health(c echo.Context) error {
	db := "connected"
	if h.DB == nil {
		db = "unavailable"
	} else {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			db = "unavailable"
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Health check OK",
		"environment": h.Env,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"database":    db,
	})
}
