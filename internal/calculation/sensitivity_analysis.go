package calculation

import (
	"context"
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{
		calculationEngine: NewCalculationEngine(),
	}
}

// AnalyzeSingleParameter sweeps one plan input across its range and
// re-projects the scenario at every step
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	scenario *domain.Scenario,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {

	// Base projection for deltas
	baseSchedule, err := sa.calculationEngine.RunScenario(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to project base scenario: %w", err)
	}
	baseTotal := baseSchedule.TotalSpending()

	// Run analysis for each parameter value
	parameterValues := sa.generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(parameterValues))

	for _, value := range parameterValues {
		modified, err := sa.modifyScenarioParameter(scenario, parameter.Name, value)
		if err != nil {
			return nil, err
		}

		schedule, err := sa.calculationEngine.RunScenario(ctx, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to run scenario for %s=%s: %w", parameter.Name, value, err)
		}

		result := domain.SensitivityResult{
			ParameterValues: map[string]decimal.Decimal{parameter.Name: value},
			ScenarioName:    fmt.Sprintf("%s_%s_%.3f", scenario.Name, parameter.Name, value.InexactFloat64()),
			Summary:         schedule.Summarize(),
			KeyMetrics:      sa.calculateSensitivityMetrics(schedule, baseTotal),
		}

		results = append(results, result)
	}

	sensitivitySummary := sa.calculateSensitivitySummary(results, parameter)

	analysis := &domain.ParameterSensitivityAnalysis{
		BaseScenarioName: scenario.Name,
		Parameters:       []domain.SensitivityParameter{parameter},
		Results:          results,
		Summary:          sensitivitySummary,
		AnalysisType:     "single",
	}

	return analysis, nil
}

// AnalyzeMultipleParameters sweeps several plan inputs one at a time and
// combines the results
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	scenario *domain.Scenario,
	parameters []domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {

	allResults := make([]domain.SensitivityResult, 0)
	allParameters := make([]domain.SensitivityParameter, 0)

	for _, param := range parameters {
		analysis, err := sa.AnalyzeSingleParameter(ctx, scenario, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}

		allResults = append(allResults, analysis.Results...)
		allParameters = append(allParameters, param)
	}

	sensitivitySummary := sa.calculateMultiParameterSensitivitySummary(allResults, allParameters)

	analysis := &domain.ParameterSensitivityAnalysis{
		BaseScenarioName: scenario.Name,
		Parameters:       allParameters,
		Results:          allResults,
		Summary:          sensitivitySummary,
		AnalysisType:     "multi",
	}

	return analysis, nil
}

// AnalyzeParameterMatrix sweeps two plan inputs jointly across a 2D grid
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(
	ctx context.Context,
	scenario *domain.Scenario,
	param1, param2 domain.SensitivityParameter,
) (*domain.SensitivityMatrix, error) {

	baseSchedule, err := sa.calculationEngine.RunScenario(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to project base scenario: %w", err)
	}
	baseTotal := baseSchedule.TotalSpending()

	values1 := sa.generateParameterValues(param1)
	values2 := sa.generateParameterValues(param2)

	matrixResults := make([][]domain.SensitivityResult, len(values1))

	for i, value1 := range values1 {
		matrixResults[i] = make([]domain.SensitivityResult, len(values2))

		for j, value2 := range values2 {
			modified, err := sa.modifyScenarioParameter(scenario, param1.Name, value1)
			if err != nil {
				return nil, err
			}
			modified, err = sa.modifyScenarioParameter(modified, param2.Name, value2)
			if err != nil {
				return nil, err
			}

			schedule, err := sa.calculationEngine.RunScenario(ctx, modified)
			if err != nil {
				return nil, fmt.Errorf("failed to run scenario for %s=%s, %s=%s: %w",
					param1.Name, value1, param2.Name, value2, err)
			}

			matrixResults[i][j] = domain.SensitivityResult{
				ParameterValues: map[string]decimal.Decimal{
					param1.Name: value1,
					param2.Name: value2,
				},
				ScenarioName: fmt.Sprintf("%s_%s_%.3f_%s_%.3f",
					scenario.Name, param1.Name, value1.InexactFloat64(),
					param2.Name, value2.InexactFloat64()),
				Summary:    schedule.Summarize(),
				KeyMetrics: sa.calculateSensitivityMetrics(schedule, baseTotal),
			}
		}
	}

	matrix := &domain.SensitivityMatrix{
		Parameter1:    param1,
		Parameter2:    param2,
		MatrixResults: matrixResults,
		Summary:       sa.calculateMatrixSummary(matrixResults, param1, param2),
	}

	return matrix, nil
}

// generateParameterValues generates evenly spaced values for a parameter sweep
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	for i := 0; i < param.Steps; i++ {
		value := param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i))))
		values = append(values, value)
	}

	return values
}

// modifyScenarioParameter returns a copy of the scenario with one plan
// input replaced. Year counts truncate to whole years.
func (sa *SensitivityAnalyzer) modifyScenarioParameter(scenario *domain.Scenario, paramName string, value decimal.Decimal) (*domain.Scenario, error) {
	modified := scenario.DeepCopy()

	switch paramName {
	case "inflation_rate":
		modified.Config.InflationRate = value
	case "target_spend":
		modified.Config.TargetSpend = value
	case "gogo_percent":
		modified.Config.GoGoPercent = value
	case "slow_percent":
		modified.Config.SlowGoPercent = value
	case "nogo_percent":
		modified.Config.NoGoPercent = value
	case "survivor_percent":
		modified.Config.SurvivorPercent = value
	case "gogo_years":
		modified.Config.GoGoYears = int(value.IntPart())
	case "slow_years":
		modified.Config.SlowGoYears = int(value.IntPart())
	case "horizon_years":
		modified.HorizonYears = int(value.IntPart())
	default:
		return nil, fmt.Errorf("unknown sensitivity parameter %q", paramName)
	}

	return modified, nil
}

// calculateSensitivityMetrics captures how a swept run moved the headline numbers
func (sa *SensitivityAnalyzer) calculateSensitivityMetrics(schedule *domain.SpendingSchedule, baseTotal decimal.Decimal) domain.SensitivityMetrics {
	total := schedule.TotalSpending()
	delta := total.Sub(baseTotal)
	pct := decimal.Zero
	if !baseTotal.IsZero() {
		pct = delta.Div(baseTotal).Mul(hundred)
	}

	return domain.SensitivityMetrics{
		FirstYearSpending:  schedule.FirstYearSpending(),
		FinalYearSpending:  schedule.FinalYearSpending(),
		TotalSpending:      total,
		TotalSpendingDelta: delta,
		TotalSpendingPct:   pct,
	}
}

// calculateSensitivitySummary calculates overall sensitivity summary
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(results []domain.SensitivityResult, parameter domain.SensitivityParameter) domain.SensitivitySummary {
	if len(results) == 0 {
		return domain.SensitivitySummary{}
	}

	// Find the run closest to the base value
	baseResult := results[0]
	minDiff := results[0].ParameterValues[parameter.Name].Sub(parameter.BaseValue).Abs()

	for _, result := range results[1:] {
		diff := result.ParameterValues[parameter.Name].Sub(parameter.BaseValue).Abs()
		if diff.LessThan(minDiff) {
			minDiff = diff
			baseResult = result
		}
	}

	// Score every non-base run by how far it moved the total outlay
	sensitivityScores := make(map[string]decimal.Decimal)
	for _, result := range results {
		if result.ParameterValues[parameter.Name].Equal(baseResult.ParameterValues[parameter.Name]) {
			continue
		}
		sensitivityScores[result.ScenarioName] = result.KeyMetrics.SensitivityScore()
	}

	summary := domain.SensitivitySummary{
		MostSensitiveParameter: parameter.Name,
		SensitivityScores:      sensitivityScores,
	}

	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()

	return summary
}

// calculateMultiParameterSensitivitySummary calculates summary for multi-parameter analysis
func (sa *SensitivityAnalyzer) calculateMultiParameterSensitivitySummary(results []domain.SensitivityResult, parameters []domain.SensitivityParameter) domain.SensitivitySummary {
	// Track the worst outlay swing per parameter
	paramScores := make(map[string]decimal.Decimal)
	for _, result := range results {
		for paramName := range result.ParameterValues {
			score := result.KeyMetrics.SensitivityScore()
			if score.GreaterThan(paramScores[paramName]) {
				paramScores[paramName] = score
			}
		}
	}

	maxScore := decimal.Zero
	mostSensitiveParam := ""
	for paramName, score := range paramScores {
		if score.GreaterThan(maxScore) {
			maxScore = score
			mostSensitiveParam = paramName
		}
	}

	summary := domain.SensitivitySummary{
		MostSensitiveParameter: mostSensitiveParam,
		SensitivityScores:      paramScores,
	}

	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()

	return summary
}

// calculateMatrixSummary calculates summary for matrix analysis
func (sa *SensitivityAnalyzer) calculateMatrixSummary(matrixResults [][]domain.SensitivityResult, param1, param2 domain.SensitivityParameter) domain.SensitivityMatrixSummary {
	if len(matrixResults) == 0 || len(matrixResults[0]) == 0 {
		return domain.SensitivityMatrixSummary{}
	}

	maxSwing := decimal.Zero
	mostSensitiveCombination := ""
	minPct := matrixResults[0][0].KeyMetrics.TotalSpendingPct
	maxPct := minPct

	for i := range matrixResults {
		for j := range matrixResults[i] {
			result := matrixResults[i][j]
			pct := result.KeyMetrics.TotalSpendingPct

			if pct.LessThan(minPct) {
				minPct = pct
			}
			if pct.GreaterThan(maxPct) {
				maxPct = pct
			}

			swing := result.KeyMetrics.SensitivityScore()
			if swing.GreaterThan(maxSwing) {
				maxSwing = swing
				mostSensitiveCombination = fmt.Sprintf("%s=%.3f, %s=%.3f",
					param1.Name, result.ParameterValues[param1.Name].InexactFloat64(),
					param2.Name, result.ParameterValues[param2.Name].InexactFloat64())
			}
		}
	}

	spread := maxPct.Sub(minPct)

	recommendations := []string{}
	if maxSwing.GreaterThan(decimal.NewFromFloat(30.0)) {
		recommendations = append(recommendations, "Plan outlay swings widely across the grid")
		recommendations = append(recommendations, "Consider conservative values for both parameters")
	} else if maxSwing.GreaterThan(decimal.NewFromFloat(10.0)) {
		recommendations = append(recommendations, "Moderate sensitivity to parameter combinations")
		recommendations = append(recommendations, "Monitor both parameters regularly")
	} else {
		recommendations = append(recommendations, "Low sensitivity to parameter combinations")
		recommendations = append(recommendations, "Plan appears robust across the grid")
	}

	riskLevel := "MEDIUM"
	if maxSwing.GreaterThan(decimal.NewFromFloat(30.0)) {
		riskLevel = "HIGH"
	} else if maxSwing.LessThan(decimal.NewFromFloat(10.0)) {
		riskLevel = "LOW"
	}

	return domain.SensitivityMatrixSummary{
		MostSensitiveCombination: mostSensitiveCombination,
		SpreadPct:                spread,
		Recommendations:          recommendations,
		RiskLevel:                riskLevel,
	}
}
