// Package filevine provides an HTTP client for the Filevine v2 API with
// bearer-token authentication, org/user session headers, and error
// classification. Requests are single-shot: retry policy belongs to the
// caller so attempt accounting stays in one place.
package filevine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, filevine.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("filevine: bad request")
	ErrUnauthorized = errors.New("filevine: unauthorized")
	ErrForbidden    = errors.New("filevine: forbidden")
	ErrNotFound     = errors.New("filevine: not found")
	ErrRateLimited  = errors.New("filevine: rate limited")
	ErrServerError  = errors.New("filevine: server error")
)

// APIError wraps a sentinel error with the HTTP status code, the endpoint
// that failed, and the response body for debugging.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("filevine: %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("filevine: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}

// IsRetryable reports whether a failure is worth another attempt. Network
// failures and timeouts are transient and retryable; API responses are
// retryable for 408, 429, and 5xx statuses. Cancellation is never retried,
// and other 4xx responses are permanent, so repeating them would only delay
// the failure report.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.StatusCode)
	}

	return true
}

// retryableStatus reports whether the given HTTP status code should be retried.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return code >= http.StatusInternalServerError
	}
}
