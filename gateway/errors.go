package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidConfig is returned by New for missing or malformed configuration.
	ErrInvalidConfig = errors.New("invalid gateway config")
	// ErrMissingStorage is returned by New when no kv store is provided.
	ErrMissingStorage = errors.New("kv store is required")
	// ErrRequestFailed is returned when the request never produced an HTTP
	// response (connection refused, DNS failure, canceled context).
	ErrRequestFailed = errors.New("gateway request failed")
	// ErrDecodeResponse is returned when a success response body cannot be decoded.
	ErrDecodeResponse = errors.New("failed to decode gateway response")
	// ErrStreamClosed is returned when reading from a closed notification stream.
	ErrStreamClosed = errors.New("notification stream closed")
)

// APIError is a non-2xx response from the API. Message carries the server's
// human-readable explanation verbatim and is what Error returns, so screens
// can surface err.Error() directly to the user.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Unauthorized reports whether the server rejected the bearer token.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}
