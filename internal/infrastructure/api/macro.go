package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

const macroBasePath = "/api/v1/macro/"

// GDP returns GDP growth rates
func (c *Client) GDP(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error) {
	return c.macroSeries(ctx, entity.IndicatorGDP, q)
}

// Inflation returns HICP inflation rates
func (c *Client) Inflation(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error) {
	return c.macroSeries(ctx, entity.IndicatorInflation, q)
}

// Unemployment returns unemployment rates
func (c *Client) Unemployment(ctx context.Context, q entity.MacroQuery) (*entity.MacroResponse, error) {
	return c.macroSeries(ctx, entity.IndicatorUnemployment, q)
}

// InterestRates returns ECB rates; countries in q are ignored
func (c *Client) InterestRates(ctx context.Context, q entity.MacroQuery) (*entity.InterestRateResponse, error) {
	q = q.WithDefaults()

	var resp entity.InterestRateResponse
	err := c.Do(ctx, http.MethodGet, macroBasePath+string(entity.IndicatorInterestRates), yearParams(nil, q), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) macroSeries(ctx context.Context, ind entity.MacroIndicator, q entity.MacroQuery) (*entity.MacroResponse, error) {
	q = q.WithDefaults()

	params := url.Values{}
	for _, country := range q.Countries {
		params.Add("countries", country)
	}

	var resp entity.MacroResponse
	if err := c.Do(ctx, http.MethodGet, macroBasePath+string(ind), yearParams(params, q), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func yearParams(params url.Values, q entity.MacroQuery) url.Values {
	if params == nil {
		params = url.Values{}
	}
	params.Set("start_year", strconv.Itoa(q.StartYear))
	params.Set("end_year", strconv.Itoa(q.EndYear))
	return params
}
