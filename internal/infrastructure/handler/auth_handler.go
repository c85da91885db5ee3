package handler

import (
	"errors"
	"net/http"

	"github.com/atlasiq/atlasiq-gateway/internal/application/service"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/api"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// AuthHandler exposes login and session state
type AuthHandler struct {
	service *service.AuthService
	logger  logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		logger:  logger.OrDefault(log),
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req entity.LoginCredentials
	if err := decodeJSON(r, &req); err != nil {
		sendErrorResponse(w, h.logger, codeInvalidRequest,
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.sendAuthError(w, err, requestID)
		return
	}
	sendJSON(w, h.logger, http.StatusOK, user)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req entity.RegisterData
	if err := decodeJSON(r, &req); err != nil {
		sendErrorResponse(w, h.logger, codeInvalidRequest,
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.sendAuthError(w, err, requestID)
		return
	}
	sendJSON(w, h.logger, http.StatusCreated, user)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		sendServiceError(w, h.logger, err, middleware.GetRequestID(r.Context()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CurrentUser(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, middleware.GetRequestID(r.Context()))
		return
	}
	sendJSON(w, h.logger, http.StatusOK, user)
}

// Status handles GET /auth/status
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, h.logger, http.StatusOK, AuthStatusResponse{Authenticated: h.service.IsAuthenticated()})
}

// sendAuthError reports a rejected login as bad credentials, not an expired session
func (h *AuthHandler) sendAuthError(w http.ResponseWriter, err error, requestID string) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		sendErrorResponse(w, h.logger, codeInvalidCredentials, apiErr.Message(), http.StatusUnauthorized, requestID)
		return
	}
	sendServiceError(w, h.logger, err, requestID)
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	router.HandleFunc("/auth/me", h.Me).Methods("GET")
	router.HandleFunc("/auth/status", h.Status).Methods("GET")

	h.logger.Info("Auth routes registered", map[string]interface{}{
		"routes": []string{
			"POST /auth/login",
			"POST /auth/register",
			"POST /auth/logout",
			"GET /auth/me",
			"GET /auth/status",
		},
	})
}
