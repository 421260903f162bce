package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches by code so that wrapped or cloned instances still compare
// equal to the predefined sentinels via errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && t != nil && e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid password")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Diary-domain errors. These mirror the failure taxonomy of the sheet
// backend and the analysis endpoint.
var (
	ErrRosterUnavailable     = New("ROSTER_UNAVAILABLE", http.StatusServiceUnavailable, "roster source unavailable")
	ErrSourceUnreachable     = New("SOURCE_UNREACHABLE", http.StatusBadGateway, "student data source unreachable")
	ErrRateLimited           = New("RATE_LIMITED", http.StatusTooManyRequests, "data backend rate limited")
	ErrInvalidLocator        = New("INVALID_LOCATOR", http.StatusBadRequest, "locator is not a valid sheet URL")
	ErrEntryNotFound         = New("ENTRY_NOT_FOUND", http.StatusNotFound, "no diary entry for the requested date")
	ErrValidationEmpty       = New("VALIDATION_EMPTY", http.StatusBadRequest, "note text is empty and no note exists")
	ErrAnalysisUnavailable   = New("ANALYSIS_UNAVAILABLE", http.StatusServiceUnavailable, "analysis credential not configured")
	ErrAnalysisRequestFailed = New("ANALYSIS_REQUEST_FAILED", http.StatusBadGateway, "analysis request failed")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
