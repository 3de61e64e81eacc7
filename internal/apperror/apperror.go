package apperror

import (
	"errors"
	"net/http"
)

// Error carries a client-facing message together with the HTTP status code the
// boundary should answer with. Everything below the handler layer returns
// plain errors; usecases wrap domain failures into these before they cross up.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, statusCode int) *Error {
	return &Error{Message: message, StatusCode: statusCode}
}

func Validation(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusBadRequest}
}

func Unauthenticated(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusUnauthorized}
}

func Forbidden(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusForbidden}
}

func NotFound(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusNotFound}
}

func Conflict(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusConflict}
}

func Internal(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusInternalServerError}
}

// StatusCode resolves the HTTP status for any error. Unrecognized errors are
// reported as 500.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message resolves the client-facing message for any error. Unrecognized
// errors get a generic message so internals never leak to the client.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
