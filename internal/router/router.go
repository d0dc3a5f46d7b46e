package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/docutrack/internal/config"
	"github.com/iliyamo/docutrack/internal/handler"
	"github.com/iliyamo/docutrack/internal/logger"
	"github.com/iliyamo/docutrack/internal/metrics"
	"github.com/iliyamo/docutrack/internal/middleware"
	"github.com/iliyamo/docutrack/internal/validate"
)

// Deps carries everything the HTTP layer needs. Redis may be nil, in which
// case the auth rate limiter is disabled.
type Deps struct {
	Cfg   config.Config
	Log   *logger.Logger
	DB    handler.Pinger
	Auth  handler.Authenticator
	Certs handler.CertificateService
	Redis *redis.Client
}

// New builds the echo instance with global middleware and every route.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.EchoValidator{}
	e.HTTPErrorHandler = handler.HTTPErrorHandler(d.Log)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(metrics.Middleware())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     d.Cfg.CORS.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	RegisterRoutes(e, handler.NewHealthHandler(d.DB, d.Cfg.Env))
	RegisterAuth(e, handler.NewAuthHandler(d.Auth, d.Cfg.DBTimeout),
		middleware.NewTokenBucket(d.Cfg.RateLimit, d.Redis, d.Log))
	RegisterCertificates(e, handler.NewCertificateHandler(d.Certs, d.Cfg.DBTimeout), d.Cfg.JWT.Secret)
	RegisterAdmin(e, handler.NewAdminHandler(d.Certs, d.Cfg.DBTimeout), d.Cfg.JWT.Secret)
	return e
}

// RegisterRoutes registers routes that do not require authentication: the
// API banner, the health check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/", h.Root)
	e.GET("/api/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// RegisterAuth registers account creation and login under /api/auth. Both
// are unauthenticated and share the rate limiter.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}
