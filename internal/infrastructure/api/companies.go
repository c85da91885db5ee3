package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

const companiesPath = "/api/v1/companies"

// DefaultFinancialYears is how many fiscal years the company page loads
const DefaultFinancialYears = 5

func companyPath(id int, suffix string) string {
	return fmt.Sprintf("%s/%d%s", companiesPath, id, suffix)
}

// SearchCompanies runs a filtered company search
func (c *Client) SearchCompanies(ctx context.Context, p entity.CompanySearchParams) (*entity.CompanySearchResponse, error) {
	var out entity.CompanySearchResponse
	if err := c.Do(ctx, http.MethodGet, companiesPath+"/search", searchParams(p), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Company(ctx context.Context, id int) (*entity.CompanyDetail, error) {
	var out entity.CompanyDetail
	if err := c.Do(ctx, http.MethodGet, companyPath(id, ""), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompanyFinancials returns up to years fiscal years of statements
func (c *Client) CompanyFinancials(ctx context.Context, id, years int) (*entity.CompanyFinancials, error) {
	if years <= 0 {
		years = DefaultFinancialYears
	}

	var out entity.CompanyFinancials
	params := url.Values{"years": {strconv.Itoa(years)}}
	if err := c.Do(ctx, http.MethodGet, companyPath(id, "/financials"), params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompanyRisk returns the risk analysis, for the latest year when fiscalYear is 0
func (c *Client) CompanyRisk(ctx context.Context, id, fiscalYear int) (*entity.CompanyRiskAnalysis, error) {
	var params url.Values
	if fiscalYear > 0 {
		params = url.Values{"fiscal_year": {strconv.Itoa(fiscalYear)}}
	}

	var out entity.CompanyRiskAnalysis
	if err := c.Do(ctx, http.MethodGet, companyPath(id, "/risk"), params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompareCompanies returns the backend's comparison document as raw JSON
func (c *Client) CompareCompanies(ctx context.Context, ids []int, fiscalYear int) (json.RawMessage, error) {
	req := entity.CompanyCompareRequest{CompanyIDs: ids}
	if fiscalYear > 0 {
		req.FiscalYear = &fiscalYear
	}

	var out []byte
	if err := c.Do(ctx, http.MethodPost, companiesPath+"/compare", nil, req, &out); err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}

// IngestCompany asks the backend to pull a listed company by ticker
func (c *Client) IngestCompany(ctx context.Context, req entity.CompanyIngestRequest) (*entity.CompanyIngestResponse, error) {
	var out entity.CompanyIngestResponse
	if err := c.Do(ctx, http.MethodPost, companiesPath+"/ingest", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCompany sends a partial update; only the keys present in fields change
func (c *Client) UpdateCompany(ctx context.Context, id int, fields map[string]interface{}) (*entity.CompanyDetail, error) {
	var out entity.CompanyDetail
	if err := c.Do(ctx, http.MethodPut, companyPath(id, ""), nil, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCompany(ctx context.Context, id int) error {
	return c.Do(ctx, http.MethodDelete, companyPath(id, ""), nil, nil, nil)
}

func searchParams(p entity.CompanySearchParams) url.Values {
	params := url.Values{}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	set("query", p.Query)
	set("country_code", p.CountryCode)
	set("sector", p.Sector)
	set("sort_by", p.SortBy)
	set("sort_order", p.SortOrder)

	if p.IsListed != nil {
		params.Set("is_listed", strconv.FormatBool(*p.IsListed))
	}
	if p.MinRiskScore != nil {
		params.Set("min_risk_score", strconv.FormatFloat(*p.MinRiskScore, 'f', -1, 64))
	}
	if p.MaxRiskScore != nil {
		params.Set("max_risk_score", strconv.FormatFloat(*p.MaxRiskScore, 'f', -1, 64))
	}
	if p.Skip != nil {
		params.Set("skip", strconv.Itoa(*p.Skip))
	}
	if p.Limit != nil {
		params.Set("limit", strconv.Itoa(*p.Limit))
	}
	return params
}
