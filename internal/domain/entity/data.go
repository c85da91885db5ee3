package entity

// Country is a supported country
type Country struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Indicator is a dataset indicator known to the backend
type Indicator struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	Frequency   string `json:"frequency"`
	SourceID    int    `json:"source_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// DataSource is an upstream provider the backend ingests from
type DataSource struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Description  string `json:"description"`
	BaseURL      string `json:"base_url"`
	APIType      string `json:"api_type"`
	RequiresAuth bool   `json:"requires_auth"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

// DataPoint is one stored time-series value
type DataPoint struct {
	ID            int                    `json:"id"`
	IndicatorID   int                    `json:"indicator_id"`
	CountryCode   string                 `json:"country_code"`
	SectorCode    string                 `json:"sector_code,omitempty"`
	Date          string                 `json:"date"`
	Value         float64                `json:"value"`
	PeriodType    string                 `json:"period_type"`
	ExtraMetadata map[string]interface{} `json:"extra_metadata,omitempty"`
	CreatedAt     string                 `json:"created_at"`
}

// TimeSeriesData is an indicator series for one country
type TimeSeriesData struct {
	Indicator Indicator   `json:"indicator"`
	Country   Country     `json:"country"`
	Data      []DataPoint `json:"data"`
}

// KPICard is a headline figure on the country view
type KPICard struct {
	Title      string      `json:"title"`
	Value      interface{} `json:"value"`
	Change     float64     `json:"change"`
	ChangeType string      `json:"changeType"`
	Unit       string      `json:"unit,omitempty"`
	Trend      []float64   `json:"trend,omitempty"`
}

// CountrySummary is one row of the dashboard summary
type CountrySummary struct {
	Country            Country `json:"country"`
	GDPGrowth          float64 `json:"gdp_growth"`
	Unemployment       float64 `json:"unemployment"`
	Inflation          float64 `json:"inflation"`
	BusinessConfidence float64 `json:"business_confidence"`
	RiskScore          float64 `json:"risk_score"`
}

// SectorData is a sector breakdown entry
type SectorData struct {
	SectorCode string             `json:"sector_code"`
	SectorName string             `json:"sector_name"`
	Value      float64            `json:"value"`
	Growth     float64            `json:"growth"`
	Indicators map[string]float64 `json:"indicators"`
}

// RiskFactor contributes to a RiskScore
type RiskFactor struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// RiskScore is a country or sector risk score
type RiskScore struct {
	CountryCode  string       `json:"country_code"`
	SectorCode   string       `json:"sector_code,omitempty"`
	OverallScore float64      `json:"overall_score"`
	Factors      []RiskFactor `json:"factors"`
	UpdatedAt    string       `json:"updated_at"`
}

// DashboardSummary is the aggregated per-country summary
type DashboardSummary struct {
	Countries       []CountrySummary `json:"countries"`
	LastUpdated     string           `json:"last_updated"`
	TotalIndicators int              `json:"total_indicators"`
	DataFreshness   float64          `json:"data_freshness"`
}

// CountryDetail is the detailed view of one country
type CountryDetail struct {
	Country    Country          `json:"country"`
	KPIs       []KPICard        `json:"kpis"`
	Sectors    []SectorData     `json:"sectors"`
	RiskScores []RiskScore      `json:"risk_scores"`
	TimeSeries []TimeSeriesData `json:"time_series"`
}

// DataQuery filters the generic data endpoint and server-side exports
type DataQuery struct {
	CountryCode   string `json:"country_code,omitempty"`
	IndicatorCode string `json:"indicator_code,omitempty"`
	SectorCode    string `json:"sector_code,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Offset        int    `json:"offset,omitempty"`
}

// ExportFormat selects a server-side export format
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
)
