package handler // package handler contains the echo HTTP handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/middleware"
	"github.com/iliyamo/docutrack/internal/model"
)

// defaultTimeout bounds a handler's database work when none is configured.
const defaultTimeout = 5 * time.Second

func withTimeout(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(c.Request().Context(), d)
}

// parseID reads the :id path parameter as a positive integer.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}
	return id, nil
}

// callerID returns the authenticated user's id. Routes using it sit behind
// JWTAuth, so missing claims mean a wiring error.
func callerID(c echo.Context) (uint64, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}
	return claims.UserID, nil
}

// ----- DTOs -----

type userResp struct {
	ID        uint64     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      model.Role `json:"role"`
}

func toUserResp(u model.User) userResp {
	return userResp{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role}
}

type ownerResp struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type requestResp struct {
	ID              uint64                `json:"id"`
	CertificateType model.CertificateType `json:"certificateType"`
	Status          model.Status          `json:"status"`
	RequestData     model.FormData        `json:"requestData"`
	CreatedAt       time.Time             `json:"createdAt"`
	User            *ownerResp            `json:"user,omitempty"`
}

func toRequestResp(r model.CertificateRequest) requestResp {
	out := requestResp{
		ID:              r.ID,
		CertificateType: r.Type,
		Status:          r.Status,
		RequestData:     r.Form,
		CreatedAt:       r.CreatedAt,
	}
	if r.Owner != nil {
		out.User = &ownerResp{FirstName: r.Owner.FirstName, LastName: r.Owner.LastName, Email: r.Owner.Email}
	}
	return out
}

func toRequestList(rows []model.CertificateRequest) []requestResp {
	out := make([]requestResp, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRequestResp(r))
	}
	return out
}
