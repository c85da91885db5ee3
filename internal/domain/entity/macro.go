package entity

import (
	"errors"
	"fmt"
	"strings"
)

// MacroIndicator names one of the macro indicator endpoints
type MacroIndicator string

const (
	IndicatorGDP           MacroIndicator = "gdp"
	IndicatorInflation     MacroIndicator = "inflation"
	IndicatorUnemployment  MacroIndicator = "unemployment"
	IndicatorInterestRates MacroIndicator = "interest-rates"
)

// MacroIndicators lists the supported indicators in dashboard tab order
var MacroIndicators = []MacroIndicator{
	IndicatorGDP,
	IndicatorInflation,
	IndicatorUnemployment,
	IndicatorInterestRates,
}

var (
	// ErrUnknownIndicator is returned for an indicator outside MacroIndicators
	ErrUnknownIndicator = errors.New("unknown macro indicator")
	// ErrInvalidYearRange is returned when the start year is after the end year
	ErrInvalidYearRange = errors.New("start year must not be after end year")
)

// ParseMacroIndicator validates an indicator name
func ParseMacroIndicator(s string) (MacroIndicator, error) {
	ind := MacroIndicator(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MacroIndicators {
		if ind == known {
			return ind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIndicator, s)
}

// ByCountry reports whether the indicator is keyed by country. Interest
// rates are keyed by rate series instead.
func (m MacroIndicator) ByCountry() bool {
	return m != IndicatorInterestRates
}

// Default query values used by the dashboard
var (
	DefaultCountries = []string{"NLD", "BEL", "LUX", "DEU"}
)

const (
	DefaultStartYear = 2015
	DefaultEndYear   = 2023
)

// CountryNames maps dashboard country codes to display names
var CountryNames = map[string]string{
	"NLD": "Netherlands",
	"BEL": "Belgium",
	"LUX": "Luxembourg",
	"DEU": "Germany",
}

// MacroQuery selects countries and a year window for an indicator
type MacroQuery struct {
	Countries []string `json:"countries"`
	StartYear int      `json:"start_year"`
	EndYear   int      `json:"end_year"`
}

// DefaultMacroQuery returns the dashboard's initial selection
func DefaultMacroQuery() MacroQuery {
	countries := make([]string, len(DefaultCountries))
	copy(countries, DefaultCountries)
	return MacroQuery{
		Countries: countries,
		StartYear: DefaultStartYear,
		EndYear:   DefaultEndYear,
	}
}

// WithDefaults fills unset fields from DefaultMacroQuery
func (q MacroQuery) WithDefaults() MacroQuery {
	def := DefaultMacroQuery()
	if len(q.Countries) == 0 {
		q.Countries = def.Countries
	}
	if q.StartYear == 0 {
		q.StartYear = def.StartYear
	}
	if q.EndYear == 0 {
		q.EndYear = def.EndYear
	}
	return q
}

// Validate checks the year window
func (q MacroQuery) Validate() error {
	if q.StartYear > q.EndYear {
		return fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, q.StartYear, q.EndYear)
	}
	return nil
}

// MacroDataPoint is one indicator value for a country and year
type MacroDataPoint struct {
	Country   string  `json:"country"`
	Date      string  `json:"date"`
	Year      int     `json:"year"`
	Value     float64 `json:"value"`
	Indicator string  `json:"indicator"`
	Unit      string  `json:"unit"`
}

// InterestRate is one ECB rate observation
type InterestRate struct {
	RateType string  `json:"rate_type"`
	RateName string  `json:"rate_name"`
	Date     string  `json:"date"`
	Year     int     `json:"year"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	Unit     string  `json:"unit"`
}

// MacroMeta describes a macro response
type MacroMeta struct {
	Countries    []string `json:"countries"`
	StartYear    int      `json:"start_year"`
	EndYear      int      `json:"end_year"`
	TotalRecords int      `json:"total_records"`
	DataSource   string   `json:"data_source"`
	DataType     string   `json:"data_type"`
}

// MacroResponse is returned by the gdp, inflation and unemployment endpoints
type MacroResponse struct {
	Data []MacroDataPoint `json:"data"`
	Meta *MacroMeta       `json:"meta,omitempty"`
}

// InterestRateResponse is returned by the interest-rates endpoint
type InterestRateResponse struct {
	Data []InterestRate `json:"data"`
}
