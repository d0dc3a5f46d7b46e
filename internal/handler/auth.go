package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/service"
)

// Authenticator is implemented by service.AuthService.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) (service.AuthResult, error)
	Login(ctx context.Context, email, password string) (service.AuthResult, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth    Authenticator
	Timeout time.Duration
}

func NewAuthHandler(auth Authenticator, timeout time.Duration) *AuthHandler {
	return &AuthHandler{Auth: auth, Timeout: timeout}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userResp `json:"user"`
}

// Register creates a user account and returns a session token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	res, err := h.Auth.Register(ctx, req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, authResp{
		Message: "user created successfully",
		Token:   res.Token,
		User:    toUserResp(res.User),
	})
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	res, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, authResp{
		Message: "login successful",
		Token:   res.Token,
		User:    toUserResp(res.User),
	})
}
