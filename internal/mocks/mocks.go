// Package mocks holds testify mocks of the domain ports.
package mocks

import (
	"context"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockTokenRepository mocks repository.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Load(ctx context.Context) (entity.Credentials, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.Credentials), args.Error(1)
}

func (m *MockTokenRepository) Save(ctx context.Context, creds entity.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *MockTokenRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAuthAPI mocks service.AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, creds entity.LoginCredentials) (*entity.AuthResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthResponse), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, data entity.RegisterData) (*entity.AuthResponse, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthResponse), args.Error(1)
}

func (m *MockAuthAPI) Me(ctx context.Context) (*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockMacroAPI mocks service.MacroAPI
type MockMacroAPI struct {
	mock.Mock
}

func (m *MockMacroAPI) GDP(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error) {
	return m.series("GDP", ctx, q)
}

func (m *MockMacroAPI) Inflation(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error) {
	return m.series("Inflation", ctx, q)
}

func (m *MockMacroAPI) Unemployment(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error) {
	return m.series("Unemployment", ctx, q)
}

func (m *MockMacroAPI) series(method string, ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error) {
	args := m.MethodCalled(method, ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MacroResponse), args.Error(1)
}

func (m *MockMacroAPI) InterestRates(ctx context.Context, q entity.MacroQuery) (*entity.InterestRateResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InterestRateResponse), args.Error(1)
}

// MockDashboardAPI mocks service.DashboardAPI
type MockDashboardAPI struct {
	mock.Mock
}

func (m *MockDashboardAPI) DashboardSummary(ctx context.Context) (*entity.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DashboardSummary), args.Error(1)
}

func (m *MockDashboardAPI) SearchCompanies(ctx context.Context, p entity.CompanySearchParams) (*entity.CompanySearchResponse, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanySearchResponse), args.Error(1)
}

func (m *MockDashboardAPI) Company(ctx context.Context, id int) (*entity.CompanyDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyDetail), args.Error(1)
}

func (m *MockDashboardAPI) CompanyFinancials(ctx context.Context, id, years int) (*entity.CompanyFinancials, error) {
	args := m.Called(ctx, id, years)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyFinancials), args.Error(1)
}

func (m *MockDashboardAPI) CompanyRisk(ctx context.Context, id, fiscalYear int) (*entity.CompanyRiskAnalysis, error) {
	args := m.Called(ctx, id, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyRiskAnalysis), args.Error(1)
}

func (m *MockDashboardAPI) IngestCompany(ctx context.Context, req entity.CompanyIngestRequest) (*entity.CompanyIngestResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompanyIngestResponse), args.Error(1)
}

// MockLogger mocks logger.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	m.Called(key, value)
	return m
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	m.Called(fields)
	return m
}
