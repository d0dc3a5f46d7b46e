package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/model"
)

// CertificateService is implemented by service.CertificateService.
type CertificateService interface {
	Create(ctx context.Context, userID uint64, certType string, form json.RawMessage) (model.CertificateRequest, error)
	ListMine(ctx context.Context, userID uint64) ([]model.CertificateRequest, error)
	GetOne(ctx context.Context, id, userID uint64) (model.CertificateRequest, error)
	ListAll(ctx context.Context) ([]model.CertificateRequest, error)
	SetStatus(ctx context.Context, id uint64, status string) (model.Status, error)
	Stats(ctx context.Context) (model.Stats, error)
}

// CertificateHandler serves the caller's own certificate requests. Every
// route sits behind JWTAuth.
type CertificateHandler struct {
	Certs   CertificateService
	Timeout time.Duration
}

func NewCertificateHandler(certs CertificateService, timeout time.Duration) *CertificateHandler {
	return &CertificateHandler{Certs: certs, Timeout: timeout}
}

type createRequestReq struct {
	CertificateType string          `json:"certificateType"`
	FormData        json.RawMessage `json:"formData"`
}

// Create stores a new pending request owned by the caller.
func (h *CertificateHandler) Create(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	created, err := h.Certs.Create(ctx, uid, req.CertificateType, req.FormData)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "request created successfully",
		"data":    toRequestResp(created),
	})
}

// ListMine returns the caller's requests, newest first.
func (h *CertificateHandler) ListMine(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	rows, err := h.Certs.ListMine(ctx, uid)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "requests retrieved successfully",
		"data":    toRequestList(rows),
	})
}

// Get returns one of the caller's requests. Requests owned by other users
// are reported as not found.
func (h *CertificateHandler) Get(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	row, err := h.Certs.GetOne(ctx, id, uid)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "request retrieved successfully",
		"data":    toRequestResp(row),
	})
}
