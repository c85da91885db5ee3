// Package service declares the backend ports the application layer depends on.
package service

import (
	"context"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

// AuthAPI covers the account endpoints
type AuthAPI interface {
	Login(ctx context.Context, creds entity.LoginCredentials) (*entity.AuthResponse, error)
	Register(ctx context.Context, data entity.RegisterData) (*entity.AuthResponse, error)
	Me(ctx context.Context) (*entity.User, error)
}

// MacroAPI covers the macro indicator endpoints
type MacroAPI interface {
	GDP(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error)
	Inflation(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error)
	Unemployment(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error)
	InterestRates(ctx context.Context, q entity.MacroQuery) (*entity.InterestRateResponse, error)
}

// DashboardAPI covers the dashboard summary and company endpoints
type DashboardAPI interface {
	DashboardSummary(ctx context.Context) (*entity.DashboardSummary, error)
	SearchCompanies(ctx context.Context, p entity.CompanySearchParams) (*entity.CompanySearchResponse, error)
	Company(ctx context.Context, id int) (*entity.CompanyDetail, error)
	CompanyFinancials(ctx context.Context, id, years int) (*entity.CompanyFinancials, error)
	CompanyRisk(ctx context.Context, id, fiscalYear int) (*entity.CompanyRiskAnalysis, error)
	IngestCompany(ctx context.Context, req entity.CompanyIngestRequest) (*entity.CompanyIngestResponse, error)
}
