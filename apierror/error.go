package apierror

import (
	"errors"
	"fmt"
)

// Category identifies which stage of a call an Error originated from.
type Category string

const (
	// CategoryConfiguration marks construction-time failures such as a
	// missing API key. Never retried.
	CategoryConfiguration Category = "configuration"

	// CategoryAuthentication marks failures of the token fetch itself.
	CategoryAuthentication Category = "authentication"

	// CategoryRequest marks resource endpoint calls that exhausted retries
	// or hit a non-retryable client error.
	CategoryRequest Category = "request"
)

// Error is the single error type returned by pykada packages.
type Error struct {
	Category   Category
	StatusCode int    // HTTP status of the final response, 0 if none was received
	Endpoint   string // endpoint attempted, empty for configuration errors
	Message    string // remote error body or local description
	Err        error  // wrapped cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Endpoint != "" && e.StatusCode != 0:
		return fmt.Sprintf("pykada: %s error: %s returned %d: %s", e.Category, e.Endpoint, e.StatusCode, e.Message)
	case e.Endpoint != "":
		return fmt.Sprintf("pykada: %s error: %s: %s", e.Category, e.Endpoint, e.Message)
	default:
		return fmt.Sprintf("pykada: %s error: %s", e.Category, e.Message)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfiguration builds a configuration-category error.
func NewConfiguration(message string) *Error {
	return &Error{Category: CategoryConfiguration, Message: message}
}

// NewAuthentication builds an authentication-category error for the given
// token endpoint.
func NewAuthentication(endpoint string, status int, message string, cause error) *Error {
	return &Error{
		Category:   CategoryAuthentication,
		StatusCode: status,
		Endpoint:   endpoint,
		Message:    message,
		Err:        cause,
	}
}

// NewRequest builds a request-category error for the given resource endpoint.
func NewRequest(endpoint string, status int, message string, cause error) *Error {
	return &Error{
		Category:   CategoryRequest,
		StatusCode: status,
		Endpoint:   endpoint,
		Message:    message,
		Err:        cause,
	}
}

// categoryOf extracts the category of err, or "" when err is not an *Error.
func categoryOf(err error) Category {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Category
	}
	return ""
}

// IsConfiguration reports whether err is a configuration-category Error.
func IsConfiguration(err error) bool {
	return categoryOf(err) == CategoryConfiguration
}

// IsAuthentication reports whether err is an authentication-category Error.
func IsAuthentication(err error) bool {
	return categoryOf(err) == CategoryAuthentication
}

// IsRequest reports whether err is a request-category Error.
func IsRequest(err error) bool {
	return categoryOf(err) == CategoryRequest
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// *Error or no response was received.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
