package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any 401 response via errors.Is
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoRefreshToken means a 401 could not be recovered because no refresh token is held
	ErrNoRefreshToken = errors.New("no refresh token available")
)

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	// Detail is the backend's "detail" message when it sent one
	Detail string
	Body   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API returned error status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API returned error status %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Message is the text to show a user: the backend detail, else the status text
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}

	// validation errors arrive as a list of objects
	apiErr.Detail = strings.TrimSpace(string(payload.Detail))
	return apiErr
}

// IsUnauthorized reports whether err is, or wraps, a 401 response
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// StatusCode extracts the backend status from err, or 0 when err is not an APIError
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
