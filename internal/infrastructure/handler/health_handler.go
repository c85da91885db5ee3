package handler

import (
	"net/http"

	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/gorilla/mux"
)

// HealthHandler reports liveness and whether a session is held
type HealthHandler struct {
	authenticated func() bool
	logger        logger.Logger
}

// NewHealthHandler creates a health handler. authenticated may be nil.
func NewHealthHandler(authenticated func() bool, log logger.Logger) *HealthHandler {
	if authenticated == nil {
		authenticated = func() bool { return false }
	}
	return &HealthHandler{
		authenticated: authenticated,
		logger:        logger.OrDefault(log),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:        "ok",
		Authenticated: h.authenticated(),
	})
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")
}
