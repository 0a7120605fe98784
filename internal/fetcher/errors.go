package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error that occurred while talking to a provider
type ErrorType string

const (
	// ErrorTypeNetwork indicates a network-level error (connection refused, DNS, etc.)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit indicates the provider rejected the request with HTTP 429
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeServer indicates a server error (HTTP 5xx)
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeClient indicates a client error (HTTP 4xx except 429)
	ErrorTypeClient ErrorType = "client"
	// ErrorTypeValidation indicates bad input or a response whose shape could not be used
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeTimeout indicates the request timed out
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeUnknown indicates an error of unknown type
	ErrorTypeUnknown ErrorType = "unknown"
)

// FetchError represents a structured error from a provider call or from input checks
// performed before one.
type FetchError struct {
	Type       ErrorType
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	prefix := string(e.Type)
	if e.Provider != "" {
		prefix = e.Provider + " " + prefix
	}
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", prefix, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s error: %s", prefix, msg)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a network error
func NewNetworkError(provider string, cause error) *FetchError {
	return &FetchError{
		Type:     ErrorTypeNetwork,
		Provider: provider,
		Message:  "network request failed",
		Cause:    cause,
	}
}

// NewRateLimitError creates a rate limit error
func NewRateLimitError(provider string, statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeRateLimit,
		Provider:   provider,
		StatusCode: statusCode,
		Message:    "rate limit exceeded",
	}
}

// NewServerError creates a server error
func NewServerError(provider string, statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrorTypeServer,
		Provider:   provider,
		StatusCode: statusCode,
		Message:    "server returned an error",
	}
}

// NewClientError creates a client error
func NewClientError(provider string, statusCode int, message string) *FetchError {
	return &FetchError{
		Type:       ErrorTypeClient,
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewValidationError creates a validation error. Provider may be empty when the
// failure is detected before any call is made.
func NewValidationError(provider, message string) *FetchError {
	return &FetchError{
		Type:     ErrorTypeValidation,
		Provider: provider,
		Message:  message,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(provider string, cause error) *FetchError {
	return &FetchError{
		Type:     ErrorTypeTimeout,
		Provider: provider,
		Message:  "request timed out",
		Cause:    cause,
	}
}

// ClassifyHTTPError classifies an HTTP status code into an appropriate FetchError
func ClassifyHTTPError(provider string, statusCode int) *FetchError {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return NewRateLimitError(provider, statusCode)
	case statusCode >= 500:
		return NewServerError(provider, statusCode)
	case statusCode >= 400:
		return NewClientError(provider, statusCode, fmt.Sprintf("client error: HTTP %d", statusCode))
	default:
		return &FetchError{
			Type:       ErrorTypeUnknown,
			Provider:   provider,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		}
	}
}

// ClassifyTransportError wraps an error returned by the HTTP client itself.
func ClassifyTransportError(provider string, err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(provider, err)
	}
	return NewNetworkError(provider, err)
}

// IsType reports whether err is a FetchError of the given type.
func IsType(err error, t ErrorType) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Type == t
	}
	return false
}
