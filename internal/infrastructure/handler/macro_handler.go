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

// MacroHandler serves indicator series and their CSV downloads
type MacroHandler struct {
	service *service.MacroService
	logger  logger.Logger
}

// NewMacroHandler creates a new macro handler
func NewMacroHandler(svc *service.MacroService, log logger.Logger) *MacroHandler {
	return &MacroHandler{
		service: svc,
		logger:  logger.OrDefault(log),
	}
}

// Series handles GET /macro/{indicator}
func (h *MacroHandler) Series(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	indicator, q, ok := h.parse(w, r, requestID)
	if !ok {
		return
	}

	result, err := h.service.Series(r.Context(), indicator, q)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}
	sendJSON(w, h.logger, http.StatusOK, result)
}

// Export handles GET /macro/{indicator}/export. An empty series is 204.
func (h *MacroHandler) Export(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	indicator, q, ok := h.parse(w, r, requestID)
	if !ok {
		return
	}

	data, name, err := h.service.Export(r.Context(), indicator, q)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}
	if len(data) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write export", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

func (h *MacroHandler) parse(w http.ResponseWriter, r *http.Request, requestID string) (entity.MacroIndicator, entity.MacroQuery, bool) {
	indicator, err := entity.ParseMacroIndicator(mux.Vars(r)["indicator"])
	if err != nil {
		sendErrorResponse(w, h.logger, codeInvalidRequest, err.Error(), http.StatusBadRequest, requestID)
		return "", entity.MacroQuery{}, false
	}

	q, err := ParseMacroQuery(r.URL.Query())
	if err != nil {
		sendErrorResponse(w, h.logger, codeInvalidRequest, err.Error(), http.StatusBadRequest, requestID)
		return "", entity.MacroQuery{}, false
	}
	return indicator, q, true
}

// ParseMacroQuery reads countries (repeated or comma separated), start_year
// and end_year. Missing values are left for the service defaults.
func ParseMacroQuery(values map[string][]string) (entity.MacroQuery, error) {
	var q entity.MacroQuery

	for _, raw := range values["countries"] {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
				q.Countries = append(q.Countries, code)
			}
		}
	}

	var err error
	if q.StartYear, err = yearParam(values, "start_year"); err != nil {
		return q, err
	}
	if q.EndYear, err = yearParam(values, "end_year"); err != nil {
		return q, err
	}
	return q, nil
}

func yearParam(values map[string][]string, key string) (int, error) {
	raw := ""
	if v := values[key]; len(v) > 0 {
		raw = strings.TrimSpace(v[0])
	}
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%s must be a positive year, got %q", key, raw)
	}
	return year, nil
}

// RegisterRoutes registers the macro routes
func (h *MacroHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/macro/{indicator}", h.Series).Methods("GET")
	router.HandleFunc("/macro/{indicator}/export", h.Export).Methods("GET")

	h.logger.Info("Macro routes registered", map[string]interface{}{
		"routes": []string{
			"GET /macro/{indicator}",
			"GET /macro/{indicator}/export",
		},
	})
}
