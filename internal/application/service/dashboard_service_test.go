package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDashboardFixture() (*DashboardService, *mocks.MockDashboardAPI, *mocks.MockMacroAPI) {
	dash := new(mocks.MockDashboardAPI)
	macro := new(mocks.MockMacroAPI)
	log := logger.NewNopLogger()
	return NewDashboardService(dash, NewMacroService(macro, nil, log), log), dash, macro
}

func TestOverview(t *testing.T) {
	svc, dash, macro := newDashboardFixture()

	dash.On("DashboardSummary", mock.Anything).Return(&entity.DashboardSummary{
		Countries: []entity.CountrySummary{{}},
	}, nil)
	macro.On("GDP", mock.Anything, mock.Anything).Return(gdpResponse(), nil)
	macro.On("Inflation", mock.Anything, mock.Anything).Return(&entity.MacroResponse{}, nil)
	macro.On("Unemployment", mock.Anything, mock.Anything).Return(&entity.MacroResponse{}, nil)
	macro.On("InterestRates", mock.Anything, mock.Anything).Return(&entity.InterestRateResponse{}, nil)

	overview, err := svc.Overview(context.Background(), entity.MacroQuery{})
	require.NoError(t, err)
	require.NotNil(t, overview.Summary)
	require.Len(t, overview.Series, len(entity.MacroIndicators))

	for i, indicator := range entity.MacroIndicators {
		assert.Equal(t, indicator, overview.Series[i].Indicator, "series keep tab order")
	}
	assert.Len(t, overview.Series[0].Rows, 2)
	assert.True(t, overview.Series[1].IsEmpty())
}

func TestOverviewFailsAsAWhole(t *testing.T) {
	svc, dash, macro := newDashboardFixture()

	dash.On("DashboardSummary", mock.Anything).Return(&entity.DashboardSummary{}, nil).Maybe()
	macro.On("GDP", mock.Anything, mock.Anything).Return(gdpResponse(), nil).Maybe()
	macro.On("Inflation", mock.Anything, mock.Anything).Return(nil, errors.New("inflation source unavailable"))
	macro.On("Unemployment", mock.Anything, mock.Anything).Return(&entity.MacroResponse{}, nil).Maybe()
	macro.On("InterestRates", mock.Anything, mock.Anything).Return(&entity.InterestRateResponse{}, nil).Maybe()

	overview, err := svc.Overview(context.Background(), entity.MacroQuery{})
	require.Error(t, err)
	assert.Nil(t, overview, "no partial result")
	assert.Contains(t, err.Error(), "inflation source unavailable")
}

func TestCompanyView(t *testing.T) {
	svc, dash, _ := newDashboardFixture()

	dash.On("Company", mock.Anything, 42).Return(&entity.CompanyDetail{Company: entity.Company{ID: 42, Name: "ASML"}}, nil)
	dash.On("CompanyFinancials", mock.Anything, 42, FinancialYears).Return(&entity.CompanyFinancials{}, nil)
	dash.On("CompanyRisk", mock.Anything, 42, 0).Return(&entity.CompanyRiskAnalysis{}, nil)

	view, err := svc.CompanyView(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "ASML", view.Company.Name)
	assert.NotNil(t, view.Financials)
	assert.NotNil(t, view.Risk)
	dash.AssertExpectations(t)

	_, err = svc.CompanyView(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompanyViewFailsAsAWhole(t *testing.T) {
	svc, dash, _ := newDashboardFixture()

	dash.On("Company", mock.Anything, 42).Return(&entity.CompanyDetail{}, nil).Maybe()
	dash.On("CompanyFinancials", mock.Anything, 42, FinancialYears).Return(&entity.CompanyFinancials{}, nil).Maybe()
	dash.On("CompanyRisk", mock.Anything, 42, 0).Return(nil, errors.New("no risk score for company"))

	view, err := svc.CompanyView(context.Background(), 42)
	require.Error(t, err)
	assert.Nil(t, view)
	assert.Contains(t, err.Error(), "failed to load risk analysis")
}

func TestSearchCompaniesEmpty(t *testing.T) {
	svc, dash, _ := newDashboardFixture()
	dash.On("SearchCompanies", mock.Anything, mock.Anything).Return(&entity.CompanySearchResponse{}, nil)

	resp, err := svc.SearchCompanies(context.Background(), entity.CompanySearchParams{Query: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestIngestCompany(t *testing.T) {
	svc, dash, _ := newDashboardFixture()

	_, err := svc.IngestCompany(context.Background(), entity.CompanyIngestRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	req := entity.CompanyIngestRequest{Ticker: "ADYEN.AS", Years: 3}
	dash.On("IngestCompany", mock.Anything, req).Return(&entity.CompanyIngestResponse{Success: true}, nil)
	resp, err := svc.IngestCompany(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
