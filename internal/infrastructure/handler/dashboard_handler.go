package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/atlasiq/atlasiq-gateway/internal/application/service"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// DashboardHandler serves the composite dashboard and company views
type DashboardHandler struct {
	service *service.DashboardService
	logger  logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc *service.DashboardService, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		logger:  logger.OrDefault(log),
	}
}

// Summary handles GET /dashboard
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, middleware.GetRequestID(r.Context()))
		return
	}
	sendJSON(w, h.logger, http.StatusOK, summary)
}

// Overview handles GET /dashboard/overview
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	q, err := ParseMacroQuery(r.URL.Query())
	if err != nil {
		sendErrorResponse(w, h.logger, codeInvalidRequest, err.Error(), http.StatusBadRequest, requestID)
		return
	}

	overview, err := h.service.Overview(r.Context(), q)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}
	sendJSON(w, h.logger, http.StatusOK, overview)
}

// SearchCompanies handles GET /companies/search
func (h *DashboardHandler) SearchCompanies(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	params, err := ParseSearchParams(r.URL.Query())
	if err != nil {
		sendErrorResponse(w, h.logger, codeInvalidRequest, err.Error(), http.StatusBadRequest, requestID)
		return
	}

	resp, err := h.service.SearchCompanies(r.Context(), params)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}
	sendJSON(w, h.logger, http.StatusOK, resp)
}

// Company handles GET /companies/{id}
func (h *DashboardHandler) Company(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendErrorResponse(w, h.logger, codeInvalidRequest,
			"Company id must be an integer", http.StatusBadRequest, requestID)
		return
	}

	view, err := h.service.CompanyView(r.Context(), id)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}
	sendJSON(w, h.logger, http.StatusOK, view)
}

// IngestCompany handles POST /companies/ingest
func (h *DashboardHandler) IngestCompany(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req entity.CompanyIngestRequest
	if err := decodeJSON(r, &req); err != nil {
		sendErrorResponse(w, h.logger, codeInvalidRequest,
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	resp, err := h.service.IngestCompany(r.Context(), req)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}
	sendJSON(w, h.logger, http.StatusOK, resp)
}

// ParseSearchParams reads the company search filters from a query string
func ParseSearchParams(values map[string][]string) (entity.CompanySearchParams, error) {
	get := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	p := entity.CompanySearchParams{
		Query:       get("q"),
		CountryCode: strings.ToUpper(get("country_code")),
		Sector:      get("sector"),
		SortBy:      get("sort_by"),
		SortOrder:   get("sort_order"),
	}

	if raw := get("is_listed"); raw != "" {
		listed, err := strconv.ParseBool(raw)
		if err != nil {
			return p, fmt.Errorf("is_listed must be true or false, got %q", raw)
		}
		p.IsListed = &listed
	}

	for key, dst := range map[string]**float64{
		"min_risk_score": &p.MinRiskScore,
		"max_risk_score": &p.MaxRiskScore,
	} {
		if raw := get(key); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return p, fmt.Errorf("%s must be a number, got %q", key, raw)
			}
			*dst = &v
		}
	}

	for key, dst := range map[string]**int{
		"skip":  &p.Skip,
		"limit": &p.Limit,
	} {
		if raw := get(key); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 0 {
				return p, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
			}
			*dst = &v
		}
	}

	return p, nil
}

// RegisterRoutes registers the dashboard and company routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard", h.Summary).Methods("GET")
	router.HandleFunc("/dashboard/overview", h.Overview).Methods("GET")
	router.HandleFunc("/companies/search", h.SearchCompanies).Methods("GET")
	router.HandleFunc("/companies/ingest", h.IngestCompany).Methods("POST")
	router.HandleFunc("/companies/{id:[0-9]+}", h.Company).Methods("GET")

	h.logger.Info("Dashboard routes registered", map[string]interface{}{
		"routes": []string{
			"GET /dashboard",
			"GET /dashboard/overview",
			"GET /companies/search",
			"POST /companies/ingest",
			"GET /companies/{id}",
		},
	})
}
