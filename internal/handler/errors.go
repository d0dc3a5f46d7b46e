package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docutrack/internal/logger"
	"github.com/iliyamo/docutrack/internal/repository"
	"github.com/iliyamo/docutrack/internal/service"
	"github.com/iliyamo/docutrack/internal/validate"
)

const internalMessage = "internal server error"

// mapError translates service and repository errors into HTTP errors.
// Anything unrecognised becomes a 500 carrying the cause as Internal.
func mapError(err error) error {
	var (
		he *echo.HTTPError
		ve *service.ValidationError
		fe *validate.Error
	)
	switch {
	case errors.As(err, &he):
		return he
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Msg)
	case errors.As(err, &fe):
		return echo.NewHTTPError(http.StatusBadRequest, fe.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "request not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, internalMessage).SetInternal(err)
}

// HTTPErrorHandler renders every error as {"message": ...}. Server errors
// are logged with the request id and their detail is never sent to the
// client.
func HTTPErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		he, ok := mapError(err).(*echo.HTTPError)
		if !ok {
			he = echo.NewHTTPError(http.StatusInternalServerError, internalMessage)
		}

		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		} else if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		if he.Code >= http.StatusInternalServerError {
			cause := he.Internal
			if cause == nil {
				cause = err
			}
			log.Error("request failed",
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", cause,
			)
			msg = internalMessage
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(he.Code)
		} else {
			werr = c.JSON(he.Code, echo.Map{"message": msg})
		}
		if werr != nil {
			log.Error("write error response", "error", werr)
		}
	}
}
