package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

const (
	dataPath        = "/api/v1/data"
	dataSourcesPath = "/api/v1/data-sources"
	fetchPath       = "/api/v1/fetch"
)

func (c *Client) Countries(ctx context.Context) ([]entity.Country, error) {
	var out []entity.Country
	if err := c.Do(ctx, http.MethodGet, dataPath+"/countries", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Indicators(ctx context.Context) ([]entity.Indicator, error) {
	var out []entity.Indicator
	if err := c.Do(ctx, http.MethodGet, dataPath+"/indicators", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DataSources(ctx context.Context) ([]entity.DataSource, error) {
	var out []entity.DataSource
	if err := c.Do(ctx, http.MethodGet, dataSourcesPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryData returns stored data points matching q
func (c *Client) QueryData(ctx context.Context, q entity.DataQuery) ([]entity.DataPoint, error) {
	var out []entity.DataPoint
	if err := c.Do(ctx, http.MethodGet, dataPath, dataQueryParams(q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TimeSeries returns one indicator for one country
func (c *Client) TimeSeries(ctx context.Context, indicatorCode, countryCode string) (*entity.TimeSeriesData, error) {
	path := fmt.Sprintf("%s/timeseries/%s/%s", dataPath, url.PathEscape(indicatorCode), url.PathEscape(countryCode))

	var out entity.TimeSeriesData
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardSummary returns the aggregated per-country summary
func (c *Client) DashboardSummary(ctx context.Context) (*entity.DashboardSummary, error) {
	var out entity.DashboardSummary
	if err := c.Do(ctx, http.MethodGet, dataPath+"/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CountryDetail(ctx context.Context, countryCode string) (*entity.CountryDetail, error) {
	var out entity.CountryDetail
	if err := c.Do(ctx, http.MethodGet, dataPath+"/countries/"+url.PathEscape(countryCode), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RiskScores returns risk scores, for one country when countryCode is set
func (c *Client) RiskScores(ctx context.Context, countryCode string) ([]entity.RiskScore, error) {
	var params url.Values
	if countryCode != "" {
		params = url.Values{"country_code": {countryCode}}
	}

	var out []entity.RiskScore
	if err := c.Do(ctx, http.MethodGet, dataPath+"/risk-scores", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TriggerFetch asks the backend to ingest from a data source (admin only)
func (c *Client) TriggerFetch(ctx context.Context, sourceCode string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	body := map[string]string{"source_code": sourceCode}
	if err := c.Do(ctx, http.MethodPost, fetchPath, nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ExportData downloads a server-side export in the given format
func (c *Client) ExportData(ctx context.Context, format entity.ExportFormat, q entity.DataQuery) ([]byte, error) {
	switch format {
	case entity.ExportCSV, entity.ExportExcel:
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	var out []byte
	if err := c.Do(ctx, http.MethodPost, dataPath+"/export/"+string(format), nil, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func dataQueryParams(q entity.DataQuery) url.Values {
	params := url.Values{}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	set("country_code", q.CountryCode)
	set("indicator_code", q.IndicatorCode)
	set("sector_code", q.SectorCode)
	set("start_date", q.StartDate)
	set("end_date", q.EndDate)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	return params
}
