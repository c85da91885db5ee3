package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/export"
	"github.com/spf13/cobra"
)

var (
	macroCountries []string
	macroStart     int
	macroEnd       int
	macroCSVDir    string
)

// macroCmd prints one indicator as a year by entity table
var macroCmd = &cobra.Command{
	Use:   "macro <indicator>",
	Short: "Show a macro indicator by year",
	Long: `Show a macro indicator as one row per year and one column per country
(or per rate series for interest-rates).

Indicators: gdp, inflation, unemployment, interest-rates`,
	Args: cobra.ExactArgs(1),
	RunE: runMacro,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the per-country dashboard summary",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

var companyCmd = &cobra.Command{
	Use:   "company <id>",
	Short: "Show company detail, financials and risk",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompany,
}

func init() {
	macroCmd.Flags().StringSliceVar(&macroCountries, "countries", nil, "ISO3 country codes (default from DASHBOARD_COUNTRIES)")
	macroCmd.Flags().IntVar(&macroStart, "start", 0, "First year")
	macroCmd.Flags().IntVar(&macroEnd, "end", 0, "Last year")
	macroCmd.Flags().StringVar(&macroCSVDir, "csv", "", "Also write the series as CSV into this directory")
}

func runMacro(cmd *cobra.Command, args []string) error {
	indicator, err := entity.ParseMacroIndicator(args[0])
	if err != nil {
		return err
	}

	q := entity.MacroQuery{StartYear: macroStart, EndYear: macroEnd}
	for _, c := range macroCountries {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			q.Countries = append(q.Countries, c)
		}
	}

	result, err := rt.macro.Series(cmd.Context(), indicator, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output != outputTable {
		if err := writeStructured(out, output, result); err != nil {
			return err
		}
	} else {
		renderSeries(out, result)
	}

	if macroCSVDir == "" {
		return nil
	}
	name := export.FileName(string(indicator), result.Query.StartYear, result.Query.EndYear)
	records, err := export.SeriesRecords(result)
	if err != nil {
		return err
	}
	path, err := export.SaveFile(macroCSVDir, name, records)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(out, mutedStyle.Render("Nothing to export."))
		return nil
	}
	fmt.Fprintf(out, "Saved %s\n", path)
	return nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	summary, err := rt.dashboard.Summary(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output != outputTable {
		return writeStructured(out, output, summary)
	}

	fmt.Fprintln(out, titleStyle.Render("Dashboard"))
	if summary.LastUpdated != "" {
		fmt.Fprintln(out, mutedStyle.Render("Last updated "+summary.LastUpdated))
	}
	if len(summary.Countries) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No data available."))
		return nil
	}

	t := newTable("country", "gdp growth", "inflation", "unemployment", "risk")
	for _, c := range summary.Countries {
		t.Row(
			c.Country.Code,
			export.FormatValue(c.GDPGrowth),
			export.FormatValue(c.Inflation),
			export.FormatValue(c.Unemployment),
			export.FormatValue(c.RiskScore),
		)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

func runCompany(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("company id must be an integer, got %q", args[0])
	}

	view, err := rt.dashboard.CompanyView(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output != outputTable {
		return writeStructured(out, output, view)
	}

	c := view.Company
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s (%s)", c.Name, c.CountryCode)))
	if c.Sector != "" {
		fmt.Fprintf(out, "Sector:  %s\n", c.Sector)
	}

	if view.Risk != nil {
		score := view.Risk.RiskScore
		fmt.Fprintf(out, "Risk:    %s %s (FY %d)\n", optional(score.OverallRiskScore), score.RiskCategory, score.FiscalYear)
	}

	if view.Financials == nil || len(view.Financials.FinancialStatements) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No financial statements."))
		return nil
	}

	t := newTable("fiscal year", "revenue", "ebitda")
	for _, fs := range view.Financials.FinancialStatements {
		t.Row(strconv.Itoa(fs.FiscalYear), optional(fs.Revenue), optional(fs.EBITDA))
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
