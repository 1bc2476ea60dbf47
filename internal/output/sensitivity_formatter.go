package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/domain"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis interface{}) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

// Name returns the formatter's registered name
func (scf SensitivityConsoleFormatter) Name() string { return "console" }

// FormatSensitivityAnalysis dispatches on the analysis shape: a single-axis
// sweep or a two-parameter matrix.
func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		return scf.formatSingleAnalysis(&buf, a)
	case *domain.SensitivityMatrix:
		return scf.formatMatrixAnalysis(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

func (scf SensitivityConsoleFormatter) formatSingleAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Parameters) == 0 || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	param := analysis.Parameters[0]

	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintln(buf, "=================================================================")
	fmt.Fprintf(buf, "Base Case: %s = %s\n", param.Name, formatParamValue(param.Unit, param.BaseValue))
	fmt.Fprintf(buf, "Range: %s to %s (%d steps)\n",
		formatParamValue(param.Unit, param.MinValue),
		formatParamValue(param.Unit, param.MaxValue),
		param.Steps)
	if param.Description != "" {
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(buf)

	// The swept grid may not land exactly on the base value; mark the
	// closest row as the base case.
	baseIndex := -1
	minDiff := decimal.Zero
	for i := range analysis.Results {
		diff := analysis.Results[i].ParameterValues[param.Name].Sub(param.BaseValue).Abs()
		if baseIndex < 0 || diff.LessThan(minDiff) {
			minDiff = diff
			baseIndex = i
		}
	}

	fmt.Fprintf(buf, "%-18s %15s %15s %15s %12s %10s\n",
		param.Name, "First Year", "Final Year", "Lifetime", "Δ vs Base", "Δ%")
	fmt.Fprintln(buf, strings.Repeat("-", 90))

	for i := range analysis.Results {
		result := &analysis.Results[i]
		valueStr := formatParamValue(param.Unit, result.ParameterValues[param.Name])
		if i == baseIndex {
			valueStr += " ← BASE"
		}
		fmt.Fprintf(buf, "%-18s %15s %15s %15s %12s %9s%%\n",
			valueStr,
			FormatCurrency(result.KeyMetrics.FirstYearSpending),
			FormatCurrency(result.KeyMetrics.FinalYearSpending),
			FormatCurrency(result.KeyMetrics.TotalSpending),
			FormatCurrency(result.KeyMetrics.TotalSpendingDelta),
			result.KeyMetrics.TotalSpendingPct.StringFixed(2))
	}
	fmt.Fprintln(buf)

	// Outlay spread across the sweep.
	low, high := analysis.Results[0], analysis.Results[0]
	for _, result := range analysis.Results[1:] {
		if result.KeyMetrics.TotalSpending.LessThan(low.KeyMetrics.TotalSpending) {
			low = result
		}
		if result.KeyMetrics.TotalSpending.GreaterThan(high.KeyMetrics.TotalSpending) {
			high = result
		}
	}
	spread := high.KeyMetrics.TotalSpending.Sub(low.KeyMetrics.TotalSpending)

	fmt.Fprintln(buf, "SENSITIVITY:")
	fmt.Fprintf(buf, "  Lowest lifetime outlay:  %s at %s = %s\n",
		FormatCurrency(low.KeyMetrics.TotalSpending),
		param.Name, formatParamValue(param.Unit, low.ParameterValues[param.Name]))
	fmt.Fprintf(buf, "  Highest lifetime outlay: %s at %s = %s\n",
		FormatCurrency(high.KeyMetrics.TotalSpending),
		param.Name, formatParamValue(param.Unit, high.ParameterValues[param.Name]))
	fmt.Fprintf(buf, "  Spread: %s\n", FormatCurrency(spread))
	if score, ok := analysis.Summary.SensitivityScores[param.Name]; ok {
		fmt.Fprintf(buf, "  Sensitivity score: %s%% outlay swing\n", score.StringFixed(2))
	}
	fmt.Fprintln(buf)

	if analysis.Summary.RiskLevel != "" {
		fmt.Fprintf(buf, "RISK LEVEL: %s\n", analysis.Summary.RiskLevel)
	}
	writeRecommendationLines(buf, analysis.Summary.Recommendations)

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatMatrixAnalysis(buf *bytes.Buffer, matrix *domain.SensitivityMatrix) (string, error) {
	if len(matrix.MatrixResults) == 0 {
		return "", fmt.Errorf("no results in matrix")
	}

	p1, p2 := matrix.Parameter1, matrix.Parameter2

	fmt.Fprintf(buf, "SENSITIVITY MATRIX: %s x %s\n",
		strings.ToUpper(strings.ReplaceAll(p1.Name, "_", " ")),
		strings.ToUpper(strings.ReplaceAll(p2.Name, "_", " ")))
	fmt.Fprintln(buf, "=================================================================")
	fmt.Fprintf(buf, "Rows: %s (%s to %s) | Columns: %s (%s to %s)\n",
		p1.Name, formatParamValue(p1.Unit, p1.MinValue), formatParamValue(p1.Unit, p1.MaxValue),
		p2.Name, formatParamValue(p2.Unit, p2.MinValue), formatParamValue(p2.Unit, p2.MaxValue))
	fmt.Fprintln(buf, "Cell values: lifetime spending")
	fmt.Fprintln(buf)

	// Column headers come from the first row's parameter values.
	fmt.Fprintf(buf, "%-14s", "")
	for _, cell := range matrix.MatrixResults[0] {
		fmt.Fprintf(buf, "%16s", formatParamValue(p2.Unit, cell.ParameterValues[p2.Name]))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("-", 14+16*len(matrix.MatrixResults[0])))

	for _, row := range matrix.MatrixResults {
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(buf, "%-14s", formatParamValue(p1.Unit, row[0].ParameterValues[p1.Name]))
		for _, cell := range row {
			fmt.Fprintf(buf, "%16s", FormatCurrency(cell.KeyMetrics.TotalSpending))
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintln(buf)

	if matrix.Summary.MostSensitiveCombination != "" {
		fmt.Fprintf(buf, "Widest swing: %s (%s%% spread)\n",
			matrix.Summary.MostSensitiveCombination,
			matrix.Summary.SpreadPct.StringFixed(2))
	}
	if matrix.Summary.RiskLevel != "" {
		fmt.Fprintf(buf, "RISK LEVEL: %s\n", matrix.Summary.RiskLevel)
	}
	writeRecommendationLines(buf, matrix.Summary.Recommendations)

	return buf.String(), nil
}

// SensitivityCSVFormatter renders sensitivity results as flat CSV rows.
type SensitivityCSVFormatter struct{}

// Name returns the formatter's registered name
func (scf SensitivityCSVFormatter) Name() string { return "csv" }

// FormatSensitivityAnalysis writes one row per swept projection
func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		if len(a.Parameters) == 0 {
			return "", fmt.Errorf("no parameters in analysis")
		}
		param := a.Parameters[0]
		fmt.Fprintf(&buf, "%s,first_year_spending,final_year_spending,total_spending,total_spending_delta,total_spending_pct\n", param.Name)
		for _, result := range a.Results {
			fmt.Fprintf(&buf, "%s,%s,%s,%s,%s,%s\n",
				result.ParameterValues[param.Name].String(),
				result.KeyMetrics.FirstYearSpending.StringFixed(2),
				result.KeyMetrics.FinalYearSpending.StringFixed(2),
				result.KeyMetrics.TotalSpending.StringFixed(2),
				result.KeyMetrics.TotalSpendingDelta.StringFixed(2),
				result.KeyMetrics.TotalSpendingPct.StringFixed(4))
		}
	case *domain.SensitivityMatrix:
		fmt.Fprintf(&buf, "%s,%s,total_spending,total_spending_delta,total_spending_pct\n",
			matrixSafeName(a.Parameter1.Name), matrixSafeName(a.Parameter2.Name))
		for _, row := range a.MatrixResults {
			for _, cell := range row {
				fmt.Fprintf(&buf, "%s,%s,%s,%s,%s\n",
					cell.ParameterValues[a.Parameter1.Name].String(),
					cell.ParameterValues[a.Parameter2.Name].String(),
					cell.KeyMetrics.TotalSpending.StringFixed(2),
					cell.KeyMetrics.TotalSpendingDelta.StringFixed(2),
					cell.KeyMetrics.TotalSpendingPct.StringFixed(4))
			}
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	return buf.String(), nil
}

// SensitivityJSONFormatter marshals the analysis verbatim.
type SensitivityJSONFormatter struct{}

// Name returns the formatter's registered name
func (sjf SensitivityJSONFormatter) Name() string { return "json" }

// FormatSensitivityAnalysis marshals either analysis shape as indented JSON
func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.SensitivityMatrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter returns the sensitivity formatter for the given
// format name.
func NewSensitivityFormatter(format string) (SensitivityFormatter, error) {
	switch NormalizeFormatName(format) {
	case "console", "console-lite":
		return SensitivityConsoleFormatter{}, nil
	case "csv", "detailed-csv":
		return SensitivityCSVFormatter{}, nil
	case "json":
		return SensitivityJSONFormatter{}, nil
	}
	return nil, fmt.Errorf("%w: %q (sensitivity formats: console, csv, json)", ErrUnsupportedFormat, format)
}

// formatParamValue renders a swept value according to the parameter's unit.
func formatParamValue(unit string, value decimal.Decimal) string {
	switch unit {
	case "rate":
		return value.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	case "dollars":
		return FormatCurrency(value)
	case "years":
		return fmt.Sprintf("%dy", value.IntPart())
	case "percent":
		return value.StringFixed(0) + "%"
	}
	return value.String()
}

// matrixSafeName strips commas so parameter names stay CSV-safe.
func matrixSafeName(name string) string {
	return strings.ReplaceAll(name, ",", "_")
}

// writeRecommendationLines prints a RECOMMENDATIONS section when there is
// anything to say.
func writeRecommendationLines(buf *bytes.Buffer, recommendations []string) {
	if len(recommendations) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "RECOMMENDATIONS:")
	for _, rec := range recommendations {
		fmt.Fprintf(buf, "  - %s\n", rec)
	}
}
