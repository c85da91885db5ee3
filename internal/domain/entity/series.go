package entity

// Series is one indicator's observations together with their chart rows
type Series struct {
	Indicator    MacroIndicator `json:"indicator"`
	Query        MacroQuery     `json:"query"`
	Observations []Observation  `json:"data"`
	Rows         []WideRow      `json:"rows"`
	Entities     []string       `json:"entities"`
}

// IsEmpty reports the no-data state
func (s *Series) IsEmpty() bool {
	return s == nil || len(s.Rows) == 0
}

// DashboardOverview is the landing page: the country summary and every
// indicator series for the same query
type DashboardOverview struct {
	Summary *DashboardSummary `json:"summary"`
	Series  []*Series         `json:"series"`
}
