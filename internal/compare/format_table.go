package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("SPENDING PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.PlanPath != "" {
		sb.WriteString(fmt.Sprintf("Plan File: %s\n", compSet.PlanPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 25
	numWidth := 15

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "1st Year Spend",
		numWidth, "Final Year",
		numWidth, "Lifetime Spend",
		numWidth, "Peak (Year)"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	// Base scenario row
	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))

	// Alternative scenarios
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))

			// Lifetime spending difference
			totalSymbol := tf.deltaSymbol(alt.TotalDiffFromBase)
			sb.WriteString(fmt.Sprintf("  Lifetime Spend:   %s$%s (%s%%)\n",
				totalSymbol,
				tf.formatDecimal(alt.TotalDiffFromBase.Abs()),
				alt.TotalPctFromBase.StringFixed(1)))

			// First year difference
			if !alt.FirstYearDiffFromBase.IsZero() {
				firstSymbol := tf.deltaSymbol(alt.FirstYearDiffFromBase)
				sb.WriteString(fmt.Sprintf("  First Year:       %s$%s\n",
					firstSymbol,
					tf.formatDecimal(alt.FirstYearDiffFromBase.Abs())))
			}

			// Final year difference
			if !alt.FinalYearDiffFromBase.IsZero() {
				finalSymbol := tf.deltaSymbol(alt.FinalYearDiffFromBase)
				sb.WriteString(fmt.Sprintf("  Final Year:       %s$%s\n",
					finalSymbol,
					tf.formatDecimal(alt.FinalYearDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	peakStr := fmt.Sprintf("$%s (%d)", tf.formatDecimal(result.PeakAmount), result.PeakYear)
	if result.PeakYear == 0 {
		peakStr = "n/a"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.FirstYearSpending),
		numWidth, "$"+tf.formatDecimal(result.FinalYearSpending),
		numWidth, "$"+tf.formatDecimal(result.TotalSpending),
		numWidth, peakStr)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		// Format in millions
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		// Format in thousands
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		spendChange := "="
		if alt.TotalDiffFromBase.IsPositive() {
			spendChange = fmt.Sprintf("+$%s", tf.formatDecimal(alt.TotalDiffFromBase))
		} else if alt.TotalDiffFromBase.IsNegative() {
			spendChange = fmt.Sprintf("-$%s", tf.formatDecimal(alt.TotalDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, spendChange))
	}

	return sb.String()
}
