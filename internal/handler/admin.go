package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the administrator endpoints. Routes sit behind JWTAuth
// and RequireRole(admin).
type AdminHandler struct {
	Certs   CertificateService
	Timeout time.Duration
}

func NewAdminHandler(certs CertificateService, timeout time.Duration) *AdminHandler {
	return &AdminHandler{Certs: certs, Timeout: timeout}
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

// ListRequests returns every request with its requester, newest first.
func (h *AdminHandler) ListRequests(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	rows, err := h.Certs.ListAll(ctx)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "requests retrieved successfully",
		"data":    toRequestList(rows),
	})
}

// UpdateStatus sets the status of a request.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return mapError(err)
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	status, err := h.Certs.SetStatus(ctx, id, req.Status)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "status updated successfully",
		"data":    echo.Map{"id": id, "status": status},
	})
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	st, err := h.Certs.Stats(ctx)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "stats retrieved successfully",
		"data":    st,
	})
}
