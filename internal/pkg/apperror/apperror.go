// Package apperror defines the error type shared by all services: an error
// value carrying the HTTP status it should surface with and a user-facing
// message. Anything that is not an AppError is treated as a 500 at the edge.
package apperror

import (
	"fmt"
	"net/http"
)

// AppError is an error with an associated HTTP status code.
type AppError struct {
	Code    int    // HTTP status code (e.g. 400, 404)
	Message string // user-facing message
	Err     error  // underlying cause, not exposed to the caller
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with an explicit status code.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NotFound builds a 404 error.
func NotFound(format string, args ...any) *AppError {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...))
}

// InvalidArgument builds a 400 error.
func InvalidArgument(format string, args ...any) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// Conflict builds a 409 error.
func Conflict(format string, args ...any) *AppError {
	return New(http.StatusConflict, fmt.Sprintf(format, args...))
}
