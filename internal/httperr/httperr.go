// Package httperr maps the application's error taxonomy onto echo HTTP
// errors. Every user-visible failure carries a human-readable message plus a
// stable machine-readable code so clients don't have to parse message text.
package httperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Stable machine-readable codes, one per taxonomy bucket.
const (
	CodeValidation   = "VALIDATION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL"
)

func newError(status int, code, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, echo.Map{"message": message, "code": code})
}

func BadRequest(message string) *echo.HTTPError {
	return newError(http.StatusBadRequest, CodeValidation, message)
}

func Unauthorized(message string) *echo.HTTPError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *echo.HTTPError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

func NotFound(message string) *echo.HTTPError {
	return newError(http.StatusNotFound, CodeNotFound, message)
}

func Conflict(message string) *echo.HTTPError {
	return newError(http.StatusConflict, CodeConflict, message)
}

// Internal hides the cause from the client; callers log the detailed error
// server-side before returning this.
func Internal() *echo.HTTPError {
	return newError(http.StatusInternalServerError, CodeInternal, "Internal server error")
}
