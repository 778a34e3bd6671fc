package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class and drives the HTTP status mapping.
type ErrorCode string

const (
	// Validation
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Authentication
	ErrCodeMissingAuthHeader ErrorCode = "AUTH_MISSING_HEADER"
	ErrCodeMissingToken      ErrorCode = "AUTH_MISSING_TOKEN"
	ErrCodeInvalidToken      ErrorCode = "AUTH_INVALID_TOKEN"

	// Provider business rejections. Default status is 400; login failures
	// override to 401 via WithStatus.
	ErrCodeProviderRejected ErrorCode = "PROVIDER_REJECTED"

	// Authorization
	ErrCodeForbidden ErrorCode = "FORBIDDEN"

	// Routing
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Throttling
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Everything unexpected, including provider transport failures
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// AppError is an error with an attached code and HTTP status. The message is
// what ends up in the response envelope.
type AppError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithStatus overrides the default status for the code.
func (e *AppError) WithStatus(status int) *AppError {
	e.StatusCode = status
	return e
}

// New creates an AppError with the default status for its code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusFor(code),
	}
}

// Newf creates an AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrapf creates an AppError with a formatted message, keeping the cause.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *AppError {
	e := Newf(code, format, args...)
	e.Cause = cause
	return e
}

// Wrap creates an AppError keeping the underlying cause for logs and
// errors.Is checks.
func Wrap(code ErrorCode, message string, cause error) *AppError {
	e := New(code, message)
	e.Cause = cause
	return e
}

// AsAppError extracts an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for any error, defaulting to 500.
func StatusOf(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func statusFor(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeProviderRejected:
		return http.StatusBadRequest
	case ErrCodeMissingAuthHeader, ErrCodeMissingToken, ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
