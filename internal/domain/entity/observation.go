package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Observation is a single (entity, year, value) data point. Entity is a
// country code or the name of a rate series.
type Observation struct {
	Entity string  `json:"entity"`
	Year   int     `json:"year"`
	Value  float64 `json:"value"`
}

// YearKey is the column name that carries the year in a wide row.
const YearKey = "year"

// WideRow is one chart row: a year plus one column per entity observed in
// that year. Columns keep the order in which they were first set.
type WideRow struct {
	Year    int
	values  map[string]float64
	columns []string
}

// NewWideRow creates an empty row for year
func NewWideRow(year int) WideRow {
	return WideRow{
		Year:   year,
		values: make(map[string]float64),
	}
}

// Set stores value for entity, overwriting an earlier value for the same entity
func (r *WideRow) Set(entity string, value float64) {
	if r.values == nil {
		r.values = make(map[string]float64)
	}
	if _, exists := r.values[entity]; !exists {
		r.columns = append(r.columns, entity)
	}
	r.values[entity] = value
}

// Get returns the value for entity and whether it is present
func (r WideRow) Get(entity string) (float64, bool) {
	v, ok := r.values[entity]
	return v, ok
}

// Entities returns the entity columns in first-set order
func (r WideRow) Entities() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of entity columns
func (r WideRow) Len() int {
	return len(r.columns)
}

// MarshalJSON renders the row as a flat object: {"year":2020,"NLD":1.7}
func (r WideRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"year":`)
	buf.WriteString(strconv.Itoa(r.Year))

	for _, entity := range r.columns {
		key, err := json.Marshal(entity)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[entity])
		if err != nil {
			return nil, fmt.Errorf("marshal value for %s: %w", entity, err)
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat row object, keeping column order
func (r *WideRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("wide row must be a JSON object")
	}

	row := NewWideRow(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}

		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}

		if key == YearKey {
			row.Year = int(value)
			continue
		}
		row.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = row
	return nil
}
