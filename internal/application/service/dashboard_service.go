package service

import (
	"context"
	"fmt"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	domainservice "github.com/atlasiq/atlasiq-gateway/internal/domain/service"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/middleware"
	"golang.org/x/sync/errgroup"
)

// FinancialYears is how many fiscal years the company view loads
const FinancialYears = 5

// DashboardService composes multi-endpoint views. Each view loads its
// parts concurrently and fails as a whole if any part fails.
type DashboardService struct {
	api    domainservice.DashboardAPI
	macro  *MacroService
	logger logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(api domainservice.DashboardAPI, macro *MacroService, log logger.Logger) *DashboardService {
	return &DashboardService{
		api:    api,
		macro:  macro,
		logger: logger.OrDefault(log),
	}
}

// Summary returns the per-country dashboard summary
func (s *DashboardService) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	summary, err := s.api.DashboardSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	if summary.Countries == nil {
		summary.Countries = []entity.CountrySummary{}
	}
	return summary, nil
}

// Overview loads the summary and every indicator series for q
func (s *DashboardService) Overview(ctx context.Context, q entity.MacroQuery) (*entity.DashboardOverview, error) {
	q, err := s.macro.Resolve(q)
	if err != nil {
		return nil, err
	}

	overview := &entity.DashboardOverview{
		Series: make([]*entity.Series, len(entity.MacroIndicators)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.Summary(gctx)
		if err != nil {
			return err
		}
		overview.Summary = summary
		return nil
	})
	for i, indicator := range entity.MacroIndicators {
		i, indicator := i, indicator
		g.Go(func() error {
			result, err := s.macro.Series(gctx, indicator, q)
			if err != nil {
				return err
			}
			overview.Series[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("Dashboard overview failed", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"error":      err.Error(),
		})
		return nil, err
	}
	return overview, nil
}

// SearchCompanies runs a company search. No matches is an empty result.
func (s *DashboardService) SearchCompanies(ctx context.Context, p entity.CompanySearchParams) (*entity.CompanySearchResponse, error) {
	resp, err := s.api.SearchCompanies(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("company search failed: %w", err)
	}
	if resp.Results == nil {
		resp.Results = []entity.CompanySearchResult{}
	}
	return resp, nil
}

// CompanyView loads company detail, financial history and latest risk
func (s *DashboardService) CompanyView(ctx context.Context, id int) (*entity.CompanyView, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: company id must be positive, got %d", ErrInvalidInput, id)
	}

	view := &entity.CompanyView{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		detail, err := s.api.Company(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load company: %w", err)
		}
		view.Company = detail
		return nil
	})
	g.Go(func() error {
		financials, err := s.api.CompanyFinancials(gctx, id, FinancialYears)
		if err != nil {
			return fmt.Errorf("failed to load financials: %w", err)
		}
		view.Financials = financials
		return nil
	})
	g.Go(func() error {
		risk, err := s.api.CompanyRisk(gctx, id, 0)
		if err != nil {
			return fmt.Errorf("failed to load risk analysis: %w", err)
		}
		view.Risk = risk
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Company view failed", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"company_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}
	return view, nil
}

// IngestCompany asks the backend to import a ticker
func (s *DashboardService) IngestCompany(ctx context.Context, req entity.CompanyIngestRequest) (*entity.CompanyIngestResponse, error) {
	if req.Ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidInput)
	}
	resp, err := s.api.IngestCompany(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("company ingest failed: %w", err)
	}
	return resp, nil
}
