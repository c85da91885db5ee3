package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/cache"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func gdpResponse() *entity.MacroResponse {
	return &entity.MacroResponse{Data: []entity.MacroDataPoint{
		{Country: "NLD", Year: 2020, Value: 1.5},
		{Country: "BEL", Year: 2020, Value: 0.9},
		{Country: "NLD", Year: 2021, Value: 2.0},
		{Country: "NLD", Year: 2020, Value: 1.7},
	}}
}

func TestMacroSeries(t *testing.T) {
	ctx := context.Background()
	api := new(mocks.MockMacroAPI)
	svc := NewMacroService(api, cache.NewSeriesCache(time.Minute), logger.NewNopLogger())

	q := entity.DefaultMacroQuery()
	api.On("GDP", ctx, q).Return(gdpResponse(), nil).Once()

	result, err := svc.Series(ctx, entity.IndicatorGDP, entity.MacroQuery{})
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, 2020, result.Rows[0].Year)
	v, _ := result.Rows[0].Get("NLD")
	assert.Equal(t, 1.7, v, "last write wins")
	assert.Equal(t, []string{"NLD", "BEL"}, result.Entities)
	assert.Len(t, result.Observations, 4)

	again, err := svc.Series(ctx, entity.IndicatorGDP, q)
	require.NoError(t, err)
	assert.Same(t, result, again, "second call is served from cache")
	api.AssertExpectations(t)

	svc.ClearCache()
	api.On("GDP", ctx, q).Return(gdpResponse(), nil).Once()
	_, err = svc.Series(ctx, entity.IndicatorGDP, q)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "GDP", 2)
}

func TestMacroSeriesInterestRates(t *testing.T) {
	ctx := context.Background()
	api := new(mocks.MockMacroAPI)
	svc := NewMacroService(api, nil, logger.NewNopLogger())

	api.On("InterestRates", ctx, mock.Anything).Return(&entity.InterestRateResponse{Data: []entity.InterestRate{
		{RateName: "ECB Main Refinancing", Year: 2022, Value: 2.5},
		{RateName: "Euribor 3M", Year: 2022, Value: 2.1},
	}}, nil)

	result, err := svc.Series(ctx, entity.IndicatorInterestRates, entity.MacroQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ECB Main Refinancing", "Euribor 3M"}, result.Entities)
}

func TestMacroSeriesValidation(t *testing.T) {
	ctx := context.Background()
	api := new(mocks.MockMacroAPI)
	svc := NewMacroService(api, nil, logger.NewNopLogger())

	_, err := svc.Series(ctx, "population", entity.MacroQuery{})
	assert.ErrorIs(t, err, entity.ErrUnknownIndicator)

	_, err = svc.Series(ctx, entity.IndicatorGDP, entity.MacroQuery{StartYear: 2023, EndYear: 2015})
	assert.ErrorIs(t, err, entity.ErrInvalidYearRange)

	api.AssertNotCalled(t, "GDP", mock.Anything, mock.Anything)
}

func TestMacroSeriesEmptyAndFailure(t *testing.T) {
	ctx := context.Background()
	api := new(mocks.MockMacroAPI)
	svc := NewMacroService(api, nil, logger.NewNopLogger())

	api.On("Inflation", ctx, mock.Anything).Return(&entity.MacroResponse{}, nil)
	api.On("Unemployment", ctx, mock.Anything).Return(nil, errors.New("backend down"))

	result, err := svc.Series(ctx, entity.IndicatorInflation, entity.MacroQuery{})
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.NotNil(t, result.Rows)
	assert.NotNil(t, result.Entities)

	_, err = svc.Series(ctx, entity.IndicatorUnemployment, entity.MacroQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}

func TestMacroExport(t *testing.T) {
	ctx := context.Background()
	api := new(mocks.MockMacroAPI)
	svc := NewMacroService(api, nil, logger.NewNopLogger())

	q := entity.MacroQuery{Countries: []string{"NLD", "BEL"}, StartYear: 2020, EndYear: 2021}
	api.On("GDP", ctx, q).Return(gdpResponse(), nil)

	data, name, err := svc.Export(ctx, entity.IndicatorGDP, q)
	require.NoError(t, err)
	assert.Equal(t, "gdp_2020_2021.csv", name)
	assert.Equal(t, "entity,year,value\nNLD,2020,1.5\nBEL,2020,0.9\nNLD,2021,2\nNLD,2020,1.7\n", string(data))

	api.On("Inflation", ctx, q).Return(&entity.MacroResponse{}, nil)
	data, name, err = svc.Export(ctx, entity.IndicatorInflation, q)
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, "inflation_2020_2021.csv", name)
}

func TestMacroServiceConfiguredDefaults(t *testing.T) {
	api := new(mocks.MockMacroAPI)
	svc := NewMacroService(api, nil, logger.NewNopLogger()).
		WithDefaults(entity.MacroQuery{Countries: []string{"LUX"}, StartYear: 2019, EndYear: 2022})

	q, err := svc.Resolve(entity.MacroQuery{EndYear: 2020})
	require.NoError(t, err)
	assert.Equal(t, entity.MacroQuery{Countries: []string{"LUX"}, StartYear: 2019, EndYear: 2020}, q)

	_, err = svc.Resolve(entity.MacroQuery{StartYear: 2023})
	assert.ErrorIs(t, err, entity.ErrInvalidYearRange)
}

func TestMacroExportKeepsEntitiesMissingFromFirstYear(t *testing.T) {
	ctx := context.Background()
	api := new(mocks.MockMacroAPI)
	svc := NewMacroService(api, nil, logger.NewNopLogger())

	q := entity.MacroQuery{Countries: []string{"NLD", "BEL"}, StartYear: 2020, EndYear: 2021}
	api.On("GDP", ctx, q).Return(&entity.MacroResponse{Data: []entity.MacroDataPoint{
		{Country: "NLD", Year: 2020, Value: 1.5},
		{Country: "NLD", Year: 2021, Value: 2},
		{Country: "BEL", Year: 2021, Value: 0.9},
	}}, nil)

	data, _, err := svc.Export(ctx, entity.IndicatorGDP, q)
	require.NoError(t, err)
	assert.Equal(t, "entity,year,value\nNLD,2020,1.5\nNLD,2021,2\nBEL,2021,0.9\n", string(data))
}
