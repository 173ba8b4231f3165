// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Map converts repo/infra errors into HTTP errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")

	case errors.Is(err, gorm.ErrDuplicatedKey):
		// only reaches the caller when a toggle did not absorb the race
		return echo.NewHTTPError(http.StatusConflict, "already exists")

	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "request timed out")

	case errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusRequestTimeout, "request was canceled")

	default:
		// fallback → bubble up error message for debugging
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// InvalidArgument creates a 400 error.
// Use this in the service layer for bad input validation.
func InvalidArgument(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// NotAuthenticated creates a 401 error for mutations invoked without identity.
func NotAuthenticated(msg string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

// NotFound creates a 404 error for entity lookup misses.
func NotFound(msg string) error {
	return echo.NewHTTPError(http.StatusNotFound, msg)
}
