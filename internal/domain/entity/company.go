package entity

// Company is the base company record
type Company struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	CountryCode      string `json:"country_code"`
	NaceCode         string `json:"nace_code,omitempty"`
	Sector           string `json:"sector,omitempty"`
	IsListed         bool   `json:"is_listed"`
	Ticker           string `json:"ticker,omitempty"`
	Website          string `json:"website,omitempty"`
	Description      string `json:"description,omitempty"`
	OpenCorporatesID string `json:"opencorporates_id,omitempty"`
	LEICode          string `json:"lei_code,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
	DataSource       string `json:"data_source,omitempty"`
}

// CompanySummary is the short form used in search results
type CompanySummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	Sector      string `json:"sector,omitempty"`
	Ticker      string `json:"ticker,omitempty"`
	IsListed    bool   `json:"is_listed"`
}

// FinancialStatement is one fiscal year of income statement and balance sheet
type FinancialStatement struct {
	ID            int    `json:"id"`
	CompanyID     int    `json:"company_id"`
	FiscalYear    int    `json:"fiscal_year"`
	PeriodEndDate string `json:"period_end_date,omitempty"`

	Revenue           *float64 `json:"revenue,omitempty"`
	CostOfRevenue     *float64 `json:"cost_of_revenue,omitempty"`
	GrossProfit       *float64 `json:"gross_profit,omitempty"`
	OperatingExpenses *float64 `json:"operating_expenses,omitempty"`
	EBITDA            *float64 `json:"ebitda,omitempty"`
	EBIT              *float64 `json:"ebit,omitempty"`
	InterestExpense   *float64 `json:"interest_expense,omitempty"`
	TaxExpense        *float64 `json:"tax_expense,omitempty"`
	NetIncome         *float64 `json:"net_income,omitempty"`

	TotalAssets        *float64 `json:"total_assets,omitempty"`
	CurrentAssets      *float64 `json:"current_assets,omitempty"`
	CashAndEquivalents *float64 `json:"cash_and_equivalents,omitempty"`
	AccountsReceivable *float64 `json:"accounts_receivable,omitempty"`
	Inventory          *float64 `json:"inventory,omitempty"`
	TotalLiabilities   *float64 `json:"total_liabilities,omitempty"`
	CurrentLiabilities *float64 `json:"current_liabilities,omitempty"`
	LongTermDebt       *float64 `json:"long_term_debt,omitempty"`
	ShortTermDebt      *float64 `json:"short_term_debt,omitempty"`
	TotalEquity        *float64 `json:"total_equity,omitempty"`
	RetainedEarnings   *float64 `json:"retained_earnings,omitempty"`

	Currency   string `json:"currency"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	DataSource string `json:"data_source,omitempty"`
}

// CashFlow is one fiscal year of cash flow data
type CashFlow struct {
	ID            int    `json:"id"`
	CompanyID     int    `json:"company_id"`
	FiscalYear    int    `json:"fiscal_year"`
	PeriodEndDate string `json:"period_end_date,omitempty"`

	OperatingCashflow *float64 `json:"operating_cashflow,omitempty"`
	Capex             *float64 `json:"capex,omitempty"`
	InvestingCashflow *float64 `json:"investing_cashflow,omitempty"`
	FinancingCashflow *float64 `json:"financing_cashflow,omitempty"`
	FreeCashflow      *float64 `json:"free_cashflow,omitempty"`
	DividendsPaid     *float64 `json:"dividends_paid,omitempty"`
	DebtIssued        *float64 `json:"debt_issued,omitempty"`
	DebtRepaid        *float64 `json:"debt_repaid,omitempty"`
	EquityIssued      *float64 `json:"equity_issued,omitempty"`
	NetChangeInCash   *float64 `json:"net_change_in_cash,omitempty"`

	Currency   string `json:"currency"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	DataSource string `json:"data_source,omitempty"`
}

// CompanyRiskScore is a computed risk assessment for one fiscal year
type CompanyRiskScore struct {
	ID              int    `json:"id"`
	CompanyID       int    `json:"company_id"`
	CalculationDate string `json:"calculation_date"`
	FiscalYear      int    `json:"fiscal_year"`

	MacroRiskScore       *float64 `json:"macro_risk_score,omitempty"`
	SectorRiskScore      *float64 `json:"sector_risk_score,omitempty"`
	FinancialHealthScore *float64 `json:"financial_health_score,omitempty"`
	OverallRiskScore     *float64 `json:"overall_risk_score,omitempty"`
	RiskCategory         string   `json:"risk_category,omitempty"`

	DebtToEBITDA      *float64 `json:"debt_to_ebitda,omitempty"`
	EBITDAMargin      *float64 `json:"ebitda_margin,omitempty"`
	ROA               *float64 `json:"roa,omitempty"`
	ROE               *float64 `json:"roe,omitempty"`
	CurrentRatio      *float64 `json:"current_ratio,omitempty"`
	QuickRatio        *float64 `json:"quick_ratio,omitempty"`
	FreeCashflowYield *float64 `json:"free_cashflow_yield,omitempty"`

	CreatedAt string `json:"created_at"`
}

// CompanyDetail is a company with its latest statements and score
type CompanyDetail struct {
	Company
	LatestFinancial *FinancialStatement `json:"latest_financial,omitempty"`
	LatestCashflow  *CashFlow           `json:"latest_cashflow,omitempty"`
	LatestRiskScore *CompanyRiskScore   `json:"latest_risk_score,omitempty"`
}

// CompanySearchParams filters company search. Zero values are omitted.
type CompanySearchParams struct {
	Query        string
	CountryCode  string
	Sector       string
	IsListed     *bool
	MinRiskScore *float64
	MaxRiskScore *float64
	SortBy       string
	SortOrder    string
	Skip         *int
	Limit        *int
}

// CompanySearchResult is one search hit
type CompanySearchResult struct {
	Company         CompanySummary `json:"company"`
	LatestRevenue   *float64       `json:"latest_revenue,omitempty"`
	LatestNetIncome *float64       `json:"latest_net_income,omitempty"`
	LatestEBITDA    *float64       `json:"latest_ebitda,omitempty"`
	RiskScore       *float64       `json:"risk_score,omitempty"`
	RiskCategory    string         `json:"risk_category,omitempty"`
}

// CompanySearchResponse is a page of search results
type CompanySearchResponse struct {
	Results []CompanySearchResult `json:"results"`
	Total   int                   `json:"total"`
	Skip    int                   `json:"skip"`
	Limit   int                   `json:"limit"`
}

// CompanyFinancials is the multi-year financial history of a company
type CompanyFinancials struct {
	Company             Company              `json:"company"`
	FinancialStatements []FinancialStatement `json:"financial_statements"`
	Cashflows           []CashFlow           `json:"cashflows"`
}

// CompanyRiskAnalysis is the risk view for one fiscal year
type CompanyRiskAnalysis struct {
	Company            CompanySummary     `json:"company"`
	RiskScore          CompanyRiskScore   `json:"risk_score"`
	FinancialStatement FinancialStatement `json:"financial_statement"`
	Cashflow           *CashFlow          `json:"cashflow,omitempty"`
	PeerComparison     interface{}        `json:"peer_comparison,omitempty"`
}

// CompanyCompareRequest is the body of a comparison call
type CompanyCompareRequest struct {
	CompanyIDs []int `json:"company_ids"`
	FiscalYear *int  `json:"fiscal_year,omitempty"`
}

// CompanyIngestRequest asks the backend to ingest a listed company
type CompanyIngestRequest struct {
	Ticker string `json:"ticker"`
	Years  int    `json:"years,omitempty"`
}

// CompanyIngestResponse reports the outcome of an ingest
type CompanyIngestResponse struct {
	Success          bool     `json:"success"`
	CompanyID        *int     `json:"company_id,omitempty"`
	Message          string   `json:"message"`
	FinancialYears   []int    `json:"financial_years"`
	ValidationErrors []string `json:"validation_errors"`
}

// CompanyView is the composite company page: detail, financials and risk
type CompanyView struct {
	Company    *CompanyDetail       `json:"company"`
	Financials *CompanyFinancials   `json:"financials"`
	Risk       *CompanyRiskAnalysis `json:"risk"`
}
