package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/logger"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func ok(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func fail(c echo.Context, status int, message string, errs map[string]string) error {
	return c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// failErr maps err to a status and writes the failure envelope.
// Server errors are logged; the cause is still reported in errors.error.
func failErr(c echo.Context, message string, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s: %s: %v", c.Request().Method, c.Path(), message, err)
	}
	return fail(c, status, message, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrIngestionInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders echo's own errors (unknown route, bad method,
// panics caught by Recover) in the envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, isString := he.Message.(string); isString {
			message = m
		} else {
			message = http.StatusText(status)
		}
	} else {
		logger.Error("%s %s: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = fail(c, status, message, map[string]string{"error": message})
}
