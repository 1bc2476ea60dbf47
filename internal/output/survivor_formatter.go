package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/domain"
)

// SurvivorConsoleFormatter renders survivor impact analysis for the terminal.
type SurvivorConsoleFormatter struct{}

// Name returns the formatter's registered name
func (sf SurvivorConsoleFormatter) Name() string { return "console" }

// FormatSurvivorImpactAnalysis renders the before/after spending picture of
// a survivor event.
func (sf SurvivorConsoleFormatter) FormatSurvivorImpactAnalysis(analysis *domain.SurvivorImpactAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no analysis to format")
	}

	var buf bytes.Buffer

	fmt.Fprintln(&buf, "SURVIVOR IMPACT ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 70))
	fmt.Fprintf(&buf, "Scenario: %s\n", analysis.ScenarioName)
	fmt.Fprintf(&buf, "Event: offset %d (%d), spending drops to %s%% of the household level\n",
		analysis.DeathYearOffset,
		analysis.DeathCalendarYear,
		analysis.SurvivorPercent.String())
	fmt.Fprintln(&buf)

	pre := analysis.PreEventAnalysis
	fmt.Fprintf(&buf, "PRE-EVENT (%d, %s phase):\n", pre.Year, pre.Phase.String())
	fmt.Fprintf(&buf, "  Annual Spending:  %s\n", FormatCurrency(pre.AnnualSpending))
	fmt.Fprintf(&buf, "  Monthly Spending: %s\n", FormatCurrency(pre.MonthlySpending))
	fmt.Fprintln(&buf)

	post := analysis.PostEventAnalysis
	fmt.Fprintf(&buf, "POST-EVENT (%d, %s phase):\n", post.Year, post.Phase.String())
	fmt.Fprintf(&buf, "  Annual Spending:  %s", FormatCurrency(post.AnnualSpending))
	if !pre.AnnualSpending.IsZero() {
		share := post.AnnualSpending.Div(pre.AnnualSpending).Mul(decimal.NewFromInt(100))
		fmt.Fprintf(&buf, " (%s%% of pre-event)", share.StringFixed(1))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "  Monthly Spending: %s\n", FormatCurrency(post.MonthlySpending))
	fmt.Fprintln(&buf)

	if len(analysis.AdjustedYears) > 0 {
		fmt.Fprintf(&buf, "ADJUSTED YEARS (first %d):\n", len(analysis.AdjustedYears))
		fmt.Fprintf(&buf, "  %-6s %-8s %14s %14s\n", "Year", "Phase", "Annual", "Monthly")
		for _, yr := range analysis.AdjustedYears {
			fmt.Fprintf(&buf, "  %-6d %-8s %14s %14s\n",
				yr.Year, yr.Phase.String(), FormatCurrency(yr.AnnualSpending), FormatCurrency(yr.MonthlySpending))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "LIFETIME IMPACT:")
	fmt.Fprintf(&buf, "  Baseline Total: %s\n", FormatCurrency(analysis.BaselineTotal))
	fmt.Fprintf(&buf, "  Adjusted Total: %s\n", FormatCurrency(analysis.AdjustedTotal))
	fmt.Fprintf(&buf, "  Reduction:      %s (%s%%)\n",
		FormatCurrency(analysis.LifetimeReduction),
		analysis.Assessment.ReductionPercent.StringFixed(1))
	fmt.Fprintln(&buf)

	assessment := analysis.Assessment
	fmt.Fprintln(&buf, "ASSESSMENT:")
	fmt.Fprintf(&buf, "  Annual Reduction:   %s\n", FormatCurrency(assessment.AnnualReduction))
	fmt.Fprintf(&buf, "  First Reduced Year: %d\n", assessment.FirstReducedYear)
	fmt.Fprintf(&buf, "  Years Affected:     %d\n", assessment.YearsAffected)
	fmt.Fprintf(&buf, "  Severity:           %s\n", assessment.SeverityScore)

	writeRecommendationLines(&buf, analysis.Recommendations)

	return buf.String(), nil
}

// FormatSurvivorImpactAnalysisJSON marshals the analysis as indented JSON.
func (sf SurvivorConsoleFormatter) FormatSurvivorImpactAnalysisJSON(analysis *domain.SurvivorImpactAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no analysis to format")
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
