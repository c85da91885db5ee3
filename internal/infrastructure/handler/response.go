package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/atlasiq/atlasiq-gateway/internal/application/service"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/api"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
)

// sendJSON writes v with the given status
func sendJSON(w http.ResponseWriter, log logger.Logger, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, code, description string, statusCode int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"error":       code,
	})

	sendJSON(w, log, statusCode, ErrorResponse{
		Error:       code,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	})
}

// sendServiceError maps a use-case error onto the gateway's error contract.
// A 401 that survived refresh is a session expiry; other backend errors are
// passed through with their detail as a 502.
func sendServiceError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	var apiErr *api.APIError
	var urlErr *url.Error

	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, entity.ErrUnknownIndicator),
		errors.Is(err, entity.ErrInvalidYearRange):
		sendErrorResponse(w, log, codeInvalidRequest, err.Error(), http.StatusBadRequest, requestID)

	case errors.Is(err, service.ErrNotAuthenticated):
		sendErrorResponse(w, log, codeNotAuthenticated, "Log in to continue", http.StatusUnauthorized, requestID)

	case api.IsUnauthorized(err):
		log.Warn("Session expired", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, codeSessionExpired, "Session expired, log in again", http.StatusUnauthorized, requestID)

	case errors.As(err, &apiErr):
		log.Error("Backend request failed", map[string]interface{}{
			"request_id":     requestID,
			"backend_status": apiErr.StatusCode,
			"error":          err.Error(),
		})
		sendErrorResponse(w, log, codeBackendError, apiErr.Message(), http.StatusBadGateway, requestID)

	case errors.As(err, &urlErr):
		log.Error("Backend unreachable", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, codeBackendUnreachable, err.Error(), http.StatusBadGateway, requestID)

	default:
		log.Error("Unexpected error", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, codeInternal, "An unexpected error occurred", http.StatusInternalServerError, requestID)
	}
}

// decodeJSON reads a request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
