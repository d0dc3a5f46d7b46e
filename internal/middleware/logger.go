package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/logger"
)

// RequestLogger logs each request with method, route, status, latency and
// the request id set by echo's RequestID middleware. Register RequestID
// before this middleware.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			attrs := []any{
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", res.Status,
				"latency", time.Since(start).String(),
				"ip", c.RealIP(),
			}
			switch {
			case res.Status >= 500:
				log.Error("request", attrs...)
			case res.Status >= 400:
				log.Warn("request", attrs...)
			default:
				log.Info("request", attrs...)
			}
			return nil
		}
	}
}
