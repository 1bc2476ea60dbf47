package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retireplan/spendgo/internal/calculation"
	"github.com/retireplan/spendgo/internal/compare"
	"github.com/retireplan/spendgo/internal/domain"
	"github.com/retireplan/spendgo/internal/output"
)

// TestCompareIntegration drives the template comparison flow from a plan
// file through the comparison formatters
func TestCompareIntegration(t *testing.T) {
	plan := loadSamplePlan(t)
	engine := compare.NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), plan.ScenarioValues(), compare.CompareOptions{
		BaseScenarioName: "base",
		Templates:        []string{"lean_nogo", "survivor_at_10"},
	})
	require.NoError(t, err, "Comparison should succeed")
	require.NotNil(t, compSet)
	compSet.PlanPath = samplePlanPath

	t.Run("comparison_results", func(t *testing.T) {
		assert.Equal(t, "base", compSet.BaseScenarioName)
		require.NotNil(t, compSet.BaseResult)
		assert.True(t, compSet.BaseResult.TotalSpending.Equal(decimal.NewFromInt(2112000)))

		require.Len(t, compSet.AlternativeResults, 2)

		leanNoGo := compSet.AlternativeResults[0]
		assert.Equal(t, "base_lean_nogo", leanNoGo.ScenarioName)
		assert.True(t, leanNoGo.TotalSpending.Equal(decimal.NewFromInt(2064000)),
			"NoGo years at 60%% should trim lifetime spending to 2064000")
		assert.True(t, leanNoGo.TotalDiffFromBase.Equal(decimal.NewFromInt(-48000)))
		assert.NotEmpty(t, leanNoGo.Description, "Template description should carry through")

		widowed := compSet.AlternativeResults[1]
		assert.Equal(t, "base_survivor_at_10", widowed.ScenarioName)
		assert.True(t, widowed.TotalSpending.Equal(decimal.NewFromInt(1838400)))
		assert.True(t, widowed.TotalDiffFromBase.Equal(decimal.NewFromInt(-273600)))
		assert.Equal(t, 10, widowed.SurvivorYears)

		assert.NotEmpty(t, compSet.Recommendations)
	})

	t.Run("table_output", func(t *testing.T) {
		formatter := &compare.TableFormatter{}
		table := formatter.Format(compSet)

		assert.Contains(t, table, "SPENDING PLAN COMPARISON")
		assert.Contains(t, table, "Base Scenario: base")
		assert.Contains(t, table, "Plan File: "+samplePlanPath)
		assert.Contains(t, table, "COMPARISON TO BASE")
		assert.Contains(t, table, "base_lean_nogo")
		assert.Contains(t, table, "base_survivor_at_10")

		compact := formatter.FormatCompact(compSet)
		assert.NotEmpty(t, compact)
		assert.Contains(t, compact, "base_lean_nogo")
		assert.Less(t, len(compact), len(table), "Compact output should be shorter than the full table")
	})

	t.Run("csv_output", func(t *testing.T) {
		formatter := &compare.CSVFormatter{}
		out, err := formatter.Format(compSet)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4, "Header, base, and two alternatives")
		assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,"))
		assert.True(t, strings.HasPrefix(lines[1], "base,base,"))
	})

	t.Run("json_output", func(t *testing.T) {
		formatter := &compare.JSONFormatter{Pretty: true}
		out, err := formatter.Format(compSet)
		require.NoError(t, err)

		var decoded compare.ComparisonSet
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "base", decoded.BaseScenarioName)
		require.Len(t, decoded.AlternativeResults, 2)
		assert.True(t, decoded.AlternativeResults[0].TotalSpending.Equal(decimal.NewFromInt(2064000)))
	})

	t.Run("schedule_set_bridge", func(t *testing.T) {
		set := compSet.ToScheduleSet()
		require.NotNil(t, set)
		assert.Equal(t, []string{"base", "base_lean_nogo", "base_survivor_at_10"}, set.Names())

		base := set.Base()
		require.NotNil(t, base)
		assert.True(t, base.TotalSpending().Equal(decimal.NewFromInt(2112000)))

		// The bridge output feeds the report formatters directly
		data, err := output.Render(set, "console-lite")
		require.NoError(t, err)
		assert.Contains(t, string(data), "base_survivor_at_10")
	})

	t.Run("unknown_template", func(t *testing.T) {
		_, err := engine.Compare(context.Background(), plan.ScenarioValues(), compare.CompareOptions{
			Templates: []string{"no_such_template"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

// TestSensitivityIntegration sweeps plan inputs loaded from the sample plan
func TestSensitivityIntegration(t *testing.T) {
	plan := loadSamplePlan(t)
	scenario := plan.BaseScenario()
	analyzer := calculation.NewSensitivityAnalyzer()

	inflationParam := domain.SensitivityParameter{
		Name:     "inflation_rate",
		MinValue: decimal.Zero,
		MaxValue: decimal.NewFromFloat(0.04),
		Steps:    5,
		Unit:     "rate",
	}

	t.Run("single_parameter", func(t *testing.T) {
		analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), scenario, inflationParam)
		require.NoError(t, err)
		require.NotNil(t, analysis)

		assert.Equal(t, "base", analysis.BaseScenarioName)
		assert.Equal(t, "single", analysis.AnalysisType)
		require.Len(t, analysis.Results, 5)

		// The first step matches the plan's own zero inflation, so the
		// projection is identical to the base run
		first := analysis.Results[0]
		assert.True(t, first.KeyMetrics.TotalSpending.Equal(decimal.NewFromInt(2112000)))
		assert.True(t, first.KeyMetrics.TotalSpendingDelta.IsZero())
		assert.True(t, first.KeyMetrics.TotalSpendingPct.IsZero())

		// Higher inflation always raises nominal lifetime spending
		for i := 1; i < len(analysis.Results); i++ {
			prev := analysis.Results[i-1].KeyMetrics.TotalSpending
			curr := analysis.Results[i].KeyMetrics.TotalSpending
			assert.True(t, curr.GreaterThan(prev),
				"Totals should increase with inflation (step %d)", i)
		}

		assert.Equal(t, "inflation_rate", analysis.Summary.MostSensitiveParameter)
		assert.Contains(t, analysis.Summary.SensitivityScores, "inflation_rate")
		assert.Contains(t, []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}, analysis.Summary.RiskLevel)
	})

	t.Run("parameter_matrix", func(t *testing.T) {
		targetParam := domain.SensitivityParameter{
			Name:     "target_spend",
			MinValue: decimal.NewFromInt(100000),
			MaxValue: decimal.NewFromInt(140000),
			Steps:    3,
			Unit:     "dollars",
		}

		matrix, err := analyzer.AnalyzeParameterMatrix(context.Background(), scenario, inflationParam, targetParam)
		require.NoError(t, err)
		require.NotNil(t, matrix)

		assert.Equal(t, "inflation_rate", matrix.Parameter1.Name)
		assert.Equal(t, "target_spend", matrix.Parameter2.Name)
		require.Len(t, matrix.MatrixResults, 5)
		for _, row := range matrix.MatrixResults {
			require.Len(t, row, 3)
		}

		// Zero inflation with the plan's own 120000 target reproduces the base
		cell := matrix.MatrixResults[0][1]
		assert.True(t, cell.KeyMetrics.TotalSpending.Equal(decimal.NewFromInt(2112000)))

		// Corner cells scale linearly with the target at zero inflation
		assert.True(t, matrix.MatrixResults[0][0].KeyMetrics.TotalSpending.Equal(decimal.NewFromInt(1760000)))
		assert.True(t, matrix.MatrixResults[0][2].KeyMetrics.TotalSpending.Equal(decimal.NewFromInt(2464000)))

		assert.NotEmpty(t, matrix.Summary.MostSensitiveCombination)
		assert.True(t, matrix.Summary.SpreadPct.GreaterThan(decimal.Zero))
	})

	t.Run("console_output", func(t *testing.T) {
		analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), scenario, inflationParam)
		require.NoError(t, err)

		formatter, err := output.NewSensitivityFormatter("console")
		require.NoError(t, err)

		out, err := formatter.FormatSensitivityAnalysis(analysis)
		require.NoError(t, err)
		assert.Contains(t, out, "SENSITIVITY ANALYSIS: INFLATION RATE")
	})

	t.Run("unknown_parameter", func(t *testing.T) {
		bad := domain.SensitivityParameter{
			Name:     "tax_bracket",
			MinValue: decimal.Zero,
			MaxValue: decimal.NewFromInt(1),
			Steps:    2,
		}
		_, err := analyzer.AnalyzeSingleParameter(context.Background(), scenario, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown sensitivity parameter")
	})
}

// TestSurvivorIntegration runs the survivor impact flow against the sample
// plan and checks the numbers against the hand-computed schedule
func TestSurvivorIntegration(t *testing.T) {
	plan := loadSamplePlan(t)
	scenario := plan.BaseScenario()
	analyzer := calculation.NewSurvivorAnalyzer(calculation.NewCalculationEngine())

	analysisConfig := domain.SurvivorAnalysisConfig{
		DeathYearOffset: 10,
		AnalysisYears:   5,
	}

	analysis, err := analyzer.AnalyzeSurvivorImpact(context.Background(), scenario, analysisConfig)
	require.NoError(t, err, "Survivor analysis should succeed")
	require.NotNil(t, analysis)

	t.Run("impact_numbers", func(t *testing.T) {
		assert.Equal(t, 2035, analysis.DeathCalendarYear)
		assert.True(t, analysis.SurvivorPercent.Equal(decimal.NewFromInt(70)))

		assert.True(t, analysis.BaselineTotal.Equal(decimal.NewFromInt(2112000)))
		assert.True(t, analysis.AdjustedTotal.Equal(decimal.NewFromInt(1838400)))
		assert.True(t, analysis.LifetimeReduction.Equal(decimal.NewFromInt(273600)))

		// Offset 9 is the last GoGo year at full spending
		assert.Equal(t, 2034, analysis.PreEventAnalysis.Year)
		assert.Equal(t, domain.PhaseGoGo, analysis.PreEventAnalysis.Phase)
		assert.Equal(t, "120000.00", analysis.PreEventAnalysis.AnnualSpending.StringFixed(2))

		// Offset 10 opens SlowGo already reduced: 96000 * 0.70
		assert.Equal(t, 2035, analysis.PostEventAnalysis.Year)
		assert.Equal(t, domain.PhaseSlowGo, analysis.PostEventAnalysis.Phase)
		assert.Equal(t, "67200.00", analysis.PostEventAnalysis.AnnualSpending.StringFixed(2))

		assert.Equal(t, "28800.00", analysis.Assessment.AnnualReduction.StringFixed(2))
		assert.Equal(t, "12.95", analysis.Assessment.ReductionPercent.Round(2).StringFixed(2))
		assert.Equal(t, 2035, analysis.Assessment.FirstReducedYear)
		assert.Equal(t, 10, analysis.Assessment.YearsAffected)
		assert.Equal(t, "MODERATE", analysis.Assessment.SeverityScore)

		require.Len(t, analysis.AdjustedYears, 5, "Analysis window should bound the listed years")
		assert.Equal(t, 2035, analysis.AdjustedYears[0].Year)
		assert.Equal(t, 2039, analysis.AdjustedYears[4].Year)
	})

	t.Run("console_output", func(t *testing.T) {
		formatter := output.SurvivorConsoleFormatter{}
		out, err := formatter.FormatSurvivorImpactAnalysis(analysis)
		require.NoError(t, err)

		assert.Contains(t, out, "SURVIVOR IMPACT ANALYSIS")
		assert.Contains(t, out, "Scenario: base")
		assert.Contains(t, out, "ADJUSTED YEARS (first 5):")
		assert.Contains(t, out, "LIFETIME IMPACT:")
	})

	t.Run("json_output", func(t *testing.T) {
		formatter := output.SurvivorConsoleFormatter{}
		out, err := formatter.FormatSurvivorImpactAnalysisJSON(analysis)
		require.NoError(t, err)

		var decoded domain.SurvivorImpactAnalysis
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.True(t, decoded.BaselineTotal.Equal(analysis.BaselineTotal))
		assert.Len(t, decoded.AdjustedYears, 5)
	})

	t.Run("invalid_offsets", func(t *testing.T) {
		_, err := analyzer.AnalyzeSurvivorImpact(context.Background(), scenario,
			domain.SurvivorAnalysisConfig{DeathYearOffset: -1})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = analyzer.AnalyzeSurvivorImpact(context.Background(), scenario,
			domain.SurvivorAnalysisConfig{DeathYearOffset: scenario.HorizonYears})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "horizon")
	})
}
