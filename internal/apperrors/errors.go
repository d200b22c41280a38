package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeUnauthenticated   Code = "UNAUTHENTICATED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeInvalidTarget     Code = "INVALID_TARGET"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeOutOfRange        Code = "OUT_OF_RANGE"
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidation        Code = "VALIDATION_FAILED"
	CodeStoreUnavailable  Code = "STORE_UNAVAILABLE"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Sentinels for errors.Is. Matching is by code, so any AppError carrying the
// same code compares equal regardless of message or wrapped cause.
var (
	ErrUnauthenticated   = New(CodeUnauthenticated, "authentication required")
	ErrForbidden         = New(CodeForbidden, "access denied")
	ErrInvalidTarget     = New(CodeInvalidTarget, "invalid swap target")
	ErrInvalidTransition = New(CodeInvalidTransition, "transition not allowed")
	ErrOutOfRange        = New(CodeOutOfRange, "value out of range")
	ErrNotFound          = New(CodeNotFound, "not found")
	ErrValidation        = New(CodeValidation, "validation failed")
	ErrStoreUnavailable  = New(CodeStoreUnavailable, "store unavailable")
)

type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// StoreUnavailable wraps a backing store failure.
func StoreUnavailable(err error, op string) *AppError {
	return Wrap(err, CodeStoreUnavailable, op)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus maps the error code onto a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeInvalidTransition:
		return http.StatusConflict
	case CodeInvalidTarget, CodeOutOfRange:
		return http.StatusUnprocessableEntity
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// From extracts the AppError from an error chain. Anything else becomes an
// internal error wrapping the original.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return From(err).Code
}
