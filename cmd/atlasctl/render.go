package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/export"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func checkOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (table, json or yaml)", format)
}

// writeStructured prints v as indented JSON or block YAML. YAML is produced
// from the JSON form so field names and row key order match the gateway.
func writeStructured(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if format == outputJSON {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to convert output to yaml: %w", err)
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles a JSON source leaves on the tree
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderSeries prints a series as one row per year and one column per entity
func renderSeries(w io.Writer, s *entity.Series) {
	title := fmt.Sprintf("%s  %d-%d", s.Indicator, s.Query.StartYear, s.Query.EndYear)
	fmt.Fprintln(w, titleStyle.Render(title))

	if s.IsEmpty() {
		fmt.Fprintln(w, mutedStyle.Render("No data for this selection."))
		return
	}

	t := newTable(append([]string{entity.YearKey}, s.Entities...)...)
	for _, row := range s.Rows {
		cells := make([]string, 0, len(s.Entities)+1)
		cells = append(cells, fmt.Sprint(row.Year))
		for _, e := range s.Entities {
			if v, ok := row.Get(e); ok {
				cells = append(cells, export.FormatValue(v))
			} else {
				cells = append(cells, "-")
			}
		}
		t.Row(cells...)
	}
	fmt.Fprintln(w, t.Render())
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
