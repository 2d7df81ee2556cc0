package filevine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrServerError},
		{"bad gateway", http.StatusBadGateway, ErrServerError},
		{"service unavailable", http.StatusServiceUnavailable, ErrServerError},
		{"ok is unclassified", http.StatusOK, nil},
		{"conflict is unclassified", http.StatusConflict, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyStatus(tt.status)
			if tt.sentinel == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{
		StatusCode: http.StatusNotFound,
		Endpoint:   "/Folders/list",
		Message:    "no such project",
		Err:        ErrNotFound,
	}

	assert.Equal(t, "filevine: /Folders/list: HTTP 404: no such project", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAPIError_MessageWithoutEndpoint(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadGateway, Message: "upstream", Err: ErrServerError}

	assert.Equal(t, "filevine: HTTP 502: upstream", err.Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"wrapped canceled", fmt.Errorf("fetching content: %w", context.Canceled), false},
		{"server error", &APIError{StatusCode: 500, Err: ErrServerError}, true},
		{"bad gateway", &APIError{StatusCode: 502, Err: ErrServerError}, true},
		{"rate limited", &APIError{StatusCode: 429, Err: ErrRateLimited}, true},
		{"request timeout", &APIError{StatusCode: 408}, true},
		{"not found", &APIError{StatusCode: 404, Err: ErrNotFound}, false},
		{"unauthorized", &APIError{StatusCode: 401, Err: ErrUnauthorized}, false},
		{"forbidden", &APIError{StatusCode: 403, Err: ErrForbidden}, false},
		{"bad request", &APIError{StatusCode: 400, Err: ErrBadRequest}, false},
		{"wrapped api error", fmt.Errorf("fetching locator: %w", &APIError{StatusCode: 503, Err: ErrServerError}), true},
		{"network error", errors.New("connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	inner := &APIError{StatusCode: 503, Err: ErrServerError}
	wrapped := fmt.Errorf("listing documents: %w", inner)

	var apiErr *APIError
	require.ErrorAs(t, wrapped, &apiErr)
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.ErrorIs(t, wrapped, ErrServerError)
}
