package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidCredentials is returned by Login when the API rejects the
// email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotFound is returned when the API responds 404 for the requested
// resource.
var ErrNotFound = errors.New("resource not found")

// ErrUnauthorized is returned when the API rejects the bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the task API, carrying the status
// code and the server's error message when one was decodable.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("task API returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known status codes to sentinel errors so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return nil
	}
}

// AsAPIError reports whether err is or wraps an *APIError, storing it in
// target when it does.
func AsAPIError(err error, target **APIError) bool {
	return errors.As(err, target)
}

// newAPIError builds an *APIError from a response body. The API responds
// with {"error": "..."} bodies; anything else falls back to the raw text.
func newAPIError(statusCode int, body []byte) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &APIError{StatusCode: statusCode, Message: payload.Error}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}
