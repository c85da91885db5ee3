// Package series turns flat observation lists into year-major chart rows.
package series

import (
	"sort"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

// Reshape pivots observations into one row per distinct year, sorted
// ascending. Observations are applied in input order, so a later value
// for the same (year, entity) replaces an earlier one. Missing pairs are
// left out of the row; nothing is interpolated.
func Reshape(observations []entity.Observation) []entity.WideRow {
	byYear := make(map[int]*entity.WideRow, len(observations))

	for _, obs := range observations {
		row, ok := byYear[obs.Year]
		if !ok {
			r := entity.NewWideRow(obs.Year)
			row = &r
			byYear[obs.Year] = row
		}
		row.Set(obs.Entity, obs.Value)
	}

	rows := make([]entity.WideRow, 0, len(byYear))
	for _, row := range byYear {
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Year < rows[j].Year
	})

	return rows
}

// FromMacro maps country data points to observations keyed by country
func FromMacro(points []entity.MacroDataPoint) []entity.Observation {
	out := make([]entity.Observation, 0, len(points))
	for _, p := range points {
		out = append(out, entity.Observation{Entity: p.Country, Year: p.Year, Value: p.Value})
	}
	return out
}

// FromInterestRates maps rate records to observations keyed by rate name
func FromInterestRates(rates []entity.InterestRate) []entity.Observation {
	out := make([]entity.Observation, 0, len(rates))
	for _, r := range rates {
		out = append(out, entity.Observation{Entity: r.RateName, Year: r.Year, Value: r.Value})
	}
	return out
}

// Entities lists every entity column across rows in first-seen order.
// Charts use it as the legend.
func Entities(rows []entity.WideRow) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		for _, e := range row.Entities() {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
