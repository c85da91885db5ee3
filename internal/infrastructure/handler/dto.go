package handler

// ErrorResponse is the body of every non-2xx gateway response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

// Error codes carried in ErrorResponse.Error
const (
	codeInvalidRequest     = "invalid_request"
	codeSessionExpired     = "session_expired"
	codeInvalidCredentials = "invalid_credentials"
	codeNotAuthenticated   = "not_authenticated"
	codeBackendError       = "backend_error"
	codeBackendUnreachable = "backend_unreachable"
	codeInternal           = "internal_error"
)

// AuthStatusResponse reports whether the gateway holds a session
type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status        string `json:"status"`
	Authenticated bool   `json:"authenticated"`
}
