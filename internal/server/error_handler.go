package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/apperr"
)

// statusFor maps the service error taxonomy onto the HTTP surface.
// Forbidden deliberately maps to 401, matching the client contract.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest, true
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusUnauthorized, true
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, true
	default:
		return 0, false
	}
}

func newHTTPErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var httpErr *echo.HTTPError
		if code, ok := statusFor(err); ok {
			status = code
			message = apperr.Message(err)
		} else if errors.As(err, &httpErr) {
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		} else {
			log.WithError(err).WithField("path", c.Path()).Error("unhandled request error")
		}

		if jsonErr := c.JSON(status, map[string]string{"error": message}); jsonErr != nil {
			log.WithError(jsonErr).Error("write error response")
		}
	}
}
