package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"First Year Spending",
		"Final Year Spending",
		"Lifetime Spending",
		"GoGo Total",
		"SlowGo Total",
		"NoGo Total",
		"Peak Year",
		"Peak Amount",
		"Survivor Years",
		"Spend Diff from Base",
		"Spend % Change",
		"First Year Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	// Write alternative scenarios
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.FirstYearSpending.StringFixed(2),
		result.FinalYearSpending.StringFixed(2),
		result.TotalSpending.StringFixed(2),
		result.GoGoTotal.StringFixed(2),
		result.SlowGoTotal.StringFixed(2),
		result.NoGoTotal.StringFixed(2),
		formatInt(result.PeakYear),
		result.PeakAmount.StringFixed(2),
		formatInt(result.SurvivorYears),
		result.TotalDiffFromBase.StringFixed(2),
		result.TotalPctFromBase.StringFixed(2),
		result.FirstYearDiffFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
