// Package response provides the unified {success, data|error} JSON envelope
// used by every HTTP handler, plus the mapping from application error kinds
// to HTTP statuses.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/pkg/apperr"
)

// Envelope is the wire format for all API responses.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Fail writes a failure envelope with an explicit status.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Error: message})
}

// Error writes a failure envelope, deriving the status from the error's kind:
// NotFound 404, Conflict 409, Validation 400, anything else 500.
func Error(c echo.Context, err error) error {
	return Fail(c, StatusOf(err), err.Error())
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
