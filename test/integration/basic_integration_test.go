package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retireplan/spendgo/internal/calculation"
	"github.com/retireplan/spendgo/internal/config"
	"github.com/retireplan/spendgo/internal/domain"
	"github.com/retireplan/spendgo/internal/output"
)

// TestBasicIntegration exercises the parse-project-report flow end to end
func TestBasicIntegration(t *testing.T) {
	t.Run("plan_loading", func(t *testing.T) {
		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(samplePlanPath)
		require.NoError(t, err, "Should load plan successfully")
		require.NotNil(t, plan)

		assert.Equal(t, 2025, plan.Plan.StartYear)
		assert.Equal(t, 20, plan.Plan.HorizonYears)
		assert.Len(t, plan.Scenarios, 3, "Should have three overlays")
	})

	t.Run("calculation_engine", func(t *testing.T) {
		plan := loadSamplePlan(t)

		engine := calculation.NewCalculationEngine()
		set, err := engine.RunScenarios(context.Background(), plan.ScenarioValues())
		require.NoError(t, err, "Should project every scenario")

		require.Len(t, set.Schedules, 4)
		for i := range set.Schedules {
			sched := &set.Schedules[i]
			assert.NotEmpty(t, sched.ScenarioName)
			assert.Len(t, sched.Years, sched.HorizonYears, "One row per projected year")
			assert.True(t, sched.Years[0].FinalAmount.GreaterThan(decimal.Zero))

			// Offsets run 0..n-1 and calendar years track the start year
			for j, yr := range sched.Years {
				assert.Equal(t, j, yr.YearOffset)
				assert.Equal(t, sched.Config.StartYear+j, yr.CalendarYear)
			}
		}
	})

	t.Run("output_generation", func(t *testing.T) {
		set := projectSamplePlan(t)

		for _, format := range output.AvailableFormatterNames() {
			data, err := output.Render(set, format)
			require.NoError(t, err, "Should render %s", format)
			assert.NotEmpty(t, data, "Rendered %s output should not be empty", format)
		}

		lite, err := output.Render(set, "console-lite")
		require.NoError(t, err)
		assert.Contains(t, string(lite), "RETIREMENT SPENDING SUMMARY")
		assert.Contains(t, string(lite), "Base Plan: base")

		verbose, err := output.Render(set, "console")
		require.NoError(t, err)
		assert.Contains(t, string(verbose), "RETIREMENT SPENDING PLAN ANALYSIS")
		assert.Contains(t, string(verbose), "SCENARIO COMPARISON")

		htmlData, err := output.Render(set, "html")
		require.NoError(t, err)
		assert.Contains(t, string(htmlData), "<!DOCTYPE html>")

		// Aliases resolve to the same formatters
		aliased, err := output.Render(set, "summary")
		require.NoError(t, err)
		assert.Equal(t, string(lite), string(aliased))
	})

	t.Run("json_round_trip", func(t *testing.T) {
		set := projectSamplePlan(t)

		data, err := output.Render(set, "json")
		require.NoError(t, err)

		var decoded domain.ScheduleSet
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.Equal(t, set.BaseScenarioName, decoded.BaseScenarioName)
		require.Len(t, decoded.Schedules, len(set.Schedules))
		for i := range set.Schedules {
			assert.True(t, decoded.Schedules[i].TotalSpending().Equal(set.Schedules[i].TotalSpending()),
				"Lifetime totals should survive the round trip")
		}
	})

	t.Run("report_files", func(t *testing.T) {
		set := projectSamplePlan(t)

		path := filepath.Join(t.TempDir(), "reports", "plan.csv")
		require.NoError(t, output.WriteReportFile(set, "csv", path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Len(t, lines, 5, "Header plus one row per scenario")
		assert.True(t, strings.HasPrefix(lines[0], "Scenario,"))
	})
}

// TestErrorHandling tests failure paths across package boundaries
func TestErrorHandling(t *testing.T) {
	t.Run("missing_plan_file", func(t *testing.T) {
		parser := config.NewInputParser()
		_, err := parser.LoadFromFile("nonexistent.yaml")
		assert.Error(t, err, "Should fail for missing plan file")
	})

	t.Run("invalid_plan_values", func(t *testing.T) {
		parser := config.NewInputParser()

		path := filepath.Join(t.TempDir(), "bad_plan.yaml")
		bad := "plan:\n  start_year: 2025\n  horizon_years: -5\nspending:\n  target_spend: 120000\n"
		require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

		_, err := parser.LoadFromFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("unsupported_format", func(t *testing.T) {
		set := projectSamplePlan(t)
		_, err := output.Render(set, "parquet")
		require.Error(t, err)
		assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
	})
}

// TestPerformance checks that projections stay fast at realistic scale
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance tests in short mode")
	}

	scenarios := make([]domain.Scenario, 200)
	for i := range scenarios {
		scenarios[i] = domain.Scenario{
			Name:         "plan_" + string(rune('a'+i%26)) + string(rune('a'+i/26%26)),
			HorizonYears: 60,
			Config: domain.SpendingConfig{
				TargetSpend:     decimal.NewFromInt(int64(90000 + i*250)),
				GoGoPercent:     decimal.NewFromInt(100),
				SlowGoPercent:   decimal.NewFromInt(80),
				NoGoPercent:     decimal.NewFromInt(70),
				GoGoYears:       10,
				SlowGoYears:     6,
				SurvivorPercent: decimal.NewFromInt(70),
				InflationRate:   decimal.NewFromFloat(0.025),
				StartYear:       2025,
			},
		}
	}

	engine := calculation.NewCalculationEngine()

	start := time.Now()
	set, err := engine.RunScenarios(context.Background(), scenarios)
	duration := time.Since(start)

	require.NoError(t, err)
	require.Len(t, set.Schedules, len(scenarios))
	assert.Less(t, duration, 10*time.Second, "200 scenarios over 60 years should project quickly")
	t.Logf("Projected %d scenarios in %v", len(scenarios), duration)
}

// TestDataConsistency verifies projections are deterministic
func TestDataConsistency(t *testing.T) {
	plan := loadSamplePlan(t)
	engine := calculation.NewCalculationEngine()

	first, err := engine.RunScenarios(context.Background(), plan.ScenarioValues())
	require.NoError(t, err)

	second, err := engine.RunScenarios(context.Background(), plan.ScenarioValues())
	require.NoError(t, err)

	require.Equal(t, first.Names(), second.Names())
	for i := range first.Schedules {
		a := &first.Schedules[i]
		b := &second.Schedules[i]
		assert.True(t, a.TotalSpending().Equal(b.TotalSpending()),
			"%s lifetime totals should match exactly", a.ScenarioName)

		require.Len(t, b.Years, len(a.Years))
		for j := range a.Years {
			assert.True(t, a.Years[j].FinalAmount.Equal(b.Years[j].FinalAmount),
				"%s year %d should match exactly", a.ScenarioName, j)
		}
	}
}

func loadSamplePlan(t *testing.T) *config.PlanFile {
	t.Helper()
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile(samplePlanPath)
	require.NoError(t, err)
	return plan
}

func projectSamplePlan(t *testing.T) *domain.ScheduleSet {
	t.Helper()
	plan := loadSamplePlan(t)
	set, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), plan.ScenarioValues())
	require.NoError(t, err)
	return set
}
