package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/series"
	domainservice "github.com/atlasiq/atlasiq-gateway/internal/domain/service"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/cache"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/export"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/middleware"
)

// MacroService serves indicator series as chart rows
type MacroService struct {
	api      domainservice.MacroAPI
	cache    *cache.SeriesCache
	defaults entity.MacroQuery
	logger   logger.Logger
}

// NewMacroService creates a macro service. A nil cache disables caching.
func NewMacroService(api domainservice.MacroAPI, seriesCache *cache.SeriesCache, log logger.Logger) *MacroService {
	return &MacroService{
		api:      api,
		cache:    seriesCache,
		defaults: entity.DefaultMacroQuery(),
		logger:   logger.OrDefault(log),
	}
}

// WithDefaults replaces the selection used for unset query fields
func (s *MacroService) WithDefaults(q entity.MacroQuery) *MacroService {
	s.defaults = q.WithDefaults()
	return s
}

// Resolve fills unset fields of q from the service defaults and validates
// the year window
func (s *MacroService) Resolve(q entity.MacroQuery) (entity.MacroQuery, error) {
	if len(q.Countries) == 0 {
		q.Countries = append([]string(nil), s.defaults.Countries...)
	}
	if q.StartYear == 0 {
		q.StartYear = s.defaults.StartYear
	}
	if q.EndYear == 0 {
		q.EndYear = s.defaults.EndYear
	}
	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

// ClearCache drops every cached series
func (s *MacroService) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Series fetches one indicator and reshapes it into wide rows. An empty
// result is a valid series with no rows.
func (s *MacroService) Series(ctx context.Context, indicator entity.MacroIndicator, q entity.MacroQuery) (*entity.Series, error) {
	if _, err := entity.ParseMacroIndicator(string(indicator)); err != nil {
		return nil, err
	}
	q, err := s.Resolve(q)
	if err != nil {
		return nil, err
	}

	requestID := middleware.GetRequestID(ctx)

	if s.cache != nil {
		if cached := s.cache.Get(indicator, q); cached != nil {
			s.logger.Debug("Series cache hit", map[string]interface{}{
				"request_id": requestID,
				"indicator":  indicator,
			})
			return cached, nil
		}
	}

	observations, err := s.fetch(ctx, indicator, q)
	if err != nil {
		s.logger.Error("Failed to fetch indicator", map[string]interface{}{
			"request_id": requestID,
			"indicator":  indicator,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to fetch %s: %w", indicator, err)
	}

	rows := series.Reshape(observations)
	result := &entity.Series{
		Indicator:    indicator,
		Query:        q,
		Observations: observations,
		Rows:         rows,
		Entities:     series.Entities(rows),
	}
	if result.Entities == nil {
		result.Entities = []string{}
	}

	s.logger.Debug("Reshaped indicator", map[string]interface{}{
		"request_id":   requestID,
		"indicator":    indicator,
		"observations": len(observations),
		"rows":         len(rows),
	})

	if s.cache != nil {
		s.cache.Put(result)
	}
	return result, nil
}

// Export renders a series' observations as CSV. An empty series yields nil data.
func (s *MacroService) Export(ctx context.Context, indicator entity.MacroIndicator, q entity.MacroQuery) ([]byte, string, error) {
	result, err := s.Series(ctx, indicator, q)
	if err != nil {
		return nil, "", err
	}

	name := export.FileName(string(indicator), result.Query.StartYear, result.Query.EndYear)
	if result.IsEmpty() {
		return nil, name, nil
	}

	records, err := export.SeriesRecords(result)
	if err != nil {
		return nil, "", fmt.Errorf("failed to export %s: %w", indicator, err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, records); err != nil {
		return nil, "", fmt.Errorf("failed to export %s: %w", indicator, err)
	}
	return buf.Bytes(), name, nil
}

func (s *MacroService) fetch(ctx context.Context, indicator entity.MacroIndicator, q entity.MacroQuery) ([]entity.Observation, error) {
	if indicator == entity.IndicatorInterestRates {
		resp, err := s.api.InterestRates(ctx, q)
		if err != nil {
			return nil, err
		}
		return series.FromInterestRates(resp.Data), nil
	}

	var (
		resp *entity.MacroResponse
		err  error
	)
	switch indicator {
	case entity.IndicatorGDP:
		resp, err = s.api.GDP(ctx, q)
	case entity.IndicatorInflation:
		resp, err = s.api.Inflation(ctx, q)
	case entity.IndicatorUnemployment:
		resp, err = s.api.Unemployment(ctx, q)
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownIndicator, indicator)
	}
	if err != nil {
		return nil, err
	}
	return series.FromMacro(resp.Data), nil
}
