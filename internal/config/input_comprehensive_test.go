package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "plan.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	return path
}

func TestInputParser_LoadFromFile_ValidPlan(t *testing.T) {
	validYAML := `
plan:
  start_year: 2025
  horizon_years: 30

spending:
  target_spend: 120000
  gogo_percent: 100
  slow_percent: 80
  nogo_percent: 70
  gogo_years: 10
  slow_years: 6
  survivor_percent: 70

rates:
  inflation: 0.03

survivor:
  death_year_offset: 12

scenarios:
  - name: "lean"
    target_spend: 100000
    nogo_percent: 60
  - name: "short_gogo"
    gogo_years: 7
    horizon_years: 25
`

	parser := NewInputParser()
	plan, err := parser.LoadFromFile(writePlanFile(t, validYAML))

	require.NoError(t, err, "Should not error for valid plan")
	require.NotNil(t, plan, "Should return plan")

	assert.Equal(t, 2025, plan.Plan.StartYear, "Should parse start year")
	assert.Equal(t, 30, plan.Plan.HorizonYears, "Should parse horizon")
	assert.True(t, plan.Spending.TargetSpend.Equal(decimal.NewFromInt(120000)), "Should parse target spend")
	assert.True(t, plan.Rates.Inflation.Equal(decimal.NewFromFloat(0.03)), "Should parse inflation")
	require.NotNil(t, plan.Survivor, "Should parse survivor block")
	assert.Equal(t, 12, plan.Survivor.DeathYearOffset)
	assert.Len(t, plan.Scenarios, 2, "Should parse scenario overlays")
	assert.Equal(t, "lean", plan.Scenarios[0].Name)
}

func TestInputParser_LoadFromFile_DefaultsApplied(t *testing.T) {
	minimalYAML := `
plan:
  start_year: 2025
  horizon_years: 20

spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
`

	parser := NewInputParser()
	plan, err := parser.LoadFromFile(writePlanFile(t, minimalYAML))

	require.NoError(t, err)

	config := plan.SpendingConfig()
	assert.True(t, config.GoGoPercent.Equal(decimal.NewFromInt(100)), "GoGo percent should default to 100")
	assert.True(t, config.SlowGoPercent.Equal(decimal.NewFromInt(80)), "SlowGo percent should default to 80")
	assert.True(t, config.NoGoPercent.Equal(decimal.NewFromInt(70)), "NoGo percent should default to 70")
	assert.True(t, config.SurvivorPercent.Equal(decimal.NewFromInt(100)), "Survivor percent should default to 100")
	assert.True(t, config.InflationRate.IsZero(), "Inflation should default to zero")
}

func TestInputParser_LoadFromFile_ExplicitZeroSurvivorPercent(t *testing.T) {
	yaml := `
plan:
  start_year: 2025
  horizon_years: 20

spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
  survivor_percent: 0
`

	parser := NewInputParser()
	plan, err := parser.LoadFromFile(writePlanFile(t, yaml))

	require.NoError(t, err, "Explicit zero survivor percent is a valid election")
	assert.True(t, plan.SpendingConfig().SurvivorPercent.IsZero(),
		"Explicit zero should not be replaced by the default")
}

func TestInputParser_ValidationFailures(t *testing.T) {
	tests := []struct {
		desc     string
		yaml     string
		errorMsg string
	}{
		{
			desc: "start year too early",
			yaml: `
plan:
  start_year: 1850
  horizon_years: 20
spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
`,
			errorMsg: "plan.start_year out of range [1900,2100]: 1850",
		},
		{
			desc: "horizon too long",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 200
spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
`,
			errorMsg: "plan.horizon_years out of range [0,120]: 200",
		},
		{
			desc: "negative target spend",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 20
spending:
  target_spend: -5
  gogo_years: 8
  slow_years: 5
`,
			errorMsg: "spending.target_spend cannot be negative",
		},
		{
			desc: "survivor percent above 100",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 20
spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
  survivor_percent: 150
`,
			errorMsg: "spending.survivor_percent out of range [0,100]: 150",
		},
		{
			desc: "inflation out of range",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 20
spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
rates:
  inflation: 0.5
`,
			errorMsg: "rates.inflation out of range [-0.2,0.2]: 0.5",
		},
		{
			desc: "negative gogo years",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 20
spending:
  target_spend: 90000
  gogo_years: -3
  slow_years: 5
`,
			errorMsg: "spending.gogo_years cannot be negative",
		},
		{
			desc: "negative death year offset",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 20
spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
survivor:
  death_year_offset: -1
`,
			errorMsg: "survivor.death_year_offset cannot be negative",
		},
		{
			desc: "scenario without name",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 20
spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
scenarios:
  - target_spend: 50000
`,
			errorMsg: "scenario 0: name is required",
		},
		{
			desc: "duplicate scenario names",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 20
spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
scenarios:
  - name: "lean"
  - name: "lean"
`,
			errorMsg: `duplicate scenario name "lean"`,
		},
		{
			desc: "overlay survivor percent out of range",
			yaml: `
plan:
  start_year: 2025
  horizon_years: 20
spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
scenarios:
  - name: "widow"
    survivor_percent: -5
`,
			errorMsg: "survivor_percent out of range [0,100]: -5",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			plan, err := parser.LoadFromFile(writePlanFile(t, tt.yaml))

			require.Error(t, err, "Should reject invalid plan")
			assert.Nil(t, plan, "Should return nil plan")
			assert.ErrorIs(t, err, domain.ErrInvalidConfig, "Should wrap the invalid config sentinel")
			assert.Contains(t, err.Error(), tt.errorMsg, "Should have specific error message")
		})
	}
}

func TestPlanFile_ToScenarios(t *testing.T) {
	yaml := `
plan:
  start_year: 2025
  horizon_years: 30

spending:
  target_spend: 120000
  gogo_years: 10
  slow_years: 6
  survivor_percent: 70

rates:
  inflation: 0.03

survivor:
  death_year_offset: 12

scenarios:
  - name: "lean"
    target_spend: 100000
    nogo_percent: 60
  - name: "short_gogo"
    gogo_years: 7
    horizon_years: 25
  - name: "early_event"
    death_year_offset: 5
`

	parser := NewInputParser()
	plan, err := parser.LoadFromFile(writePlanFile(t, yaml))
	require.NoError(t, err)

	scenarios := plan.ToScenarios()
	require.Len(t, scenarios, 4, "Should build base plus one scenario per overlay")

	base := scenarios[0]
	assert.Equal(t, "base", base.Name)
	assert.True(t, base.Config.TargetSpend.Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, 30, base.HorizonYears)
	require.NotNil(t, base.Survivor, "Base should carry the plan's survivor event")
	assert.Equal(t, 12, base.Survivor.DeathYearOffset)

	lean := scenarios[1]
	assert.Equal(t, "lean", lean.Name)
	assert.True(t, lean.Config.TargetSpend.Equal(decimal.NewFromInt(100000)), "Overlay should replace target spend")
	assert.True(t, lean.Config.NoGoPercent.Equal(decimal.NewFromInt(60)), "Overlay should replace nogo percent")
	assert.True(t, lean.Config.GoGoPercent.Equal(decimal.NewFromInt(100)), "Unset fields should keep base values")
	assert.Equal(t, 30, lean.HorizonYears, "Unset horizon should keep base value")

	shortGogo := scenarios[2]
	assert.Equal(t, 7, shortGogo.Config.GoGoYears)
	assert.Equal(t, 25, shortGogo.HorizonYears)
	require.NotNil(t, shortGogo.Survivor, "Overlay without event override should inherit the base event")
	assert.Equal(t, 12, shortGogo.Survivor.DeathYearOffset)

	earlyEvent := scenarios[3]
	require.NotNil(t, earlyEvent.Survivor)
	assert.Equal(t, 5, earlyEvent.Survivor.DeathYearOffset, "Overlay event should replace the base event")

	// Overlays must not leak into the base
	assert.True(t, scenarios[0].Config.TargetSpend.Equal(decimal.NewFromInt(120000)),
		"Base scenario should be untouched by overlays")
}

func TestPlanFile_ToScenarios_NoOverlays(t *testing.T) {
	yaml := `
plan:
  start_year: 2025
  horizon_years: 20

spending:
  target_spend: 90000
  gogo_years: 8
  slow_years: 5
`

	parser := NewInputParser()
	plan, err := parser.LoadFromFile(writePlanFile(t, yaml))
	require.NoError(t, err)

	scenarios := plan.ToScenarios()
	require.Len(t, scenarios, 1, "Plan without overlays should produce only the base scenario")
	assert.Equal(t, "base", scenarios[0].Name)
	assert.Nil(t, scenarios[0].Survivor, "No survivor block means no event")
}

func TestPlanFile_YAMLRoundTrip(t *testing.T) {
	original := `
plan:
  start_year: 2025
  horizon_years: 30

spending:
  target_spend: 120000.50
  slow_percent: 85
  gogo_years: 10
  slow_years: 6
  survivor_percent: 70

rates:
  inflation: 0.03

survivor:
  death_year_offset: 12

scenarios:
  - name: "lean"
    target_spend: 100000
`

	parser := NewInputParser()
	plan, err := parser.LoadFromFile(writePlanFile(t, original))
	require.NoError(t, err)

	marshaled, err := yamlv3.Marshal(plan)
	require.NoError(t, err, "Plan should marshal back to YAML")

	reloaded, err := parser.LoadFromFile(writePlanFile(t, string(marshaled)))
	require.NoError(t, err, "Marshaled plan should load and validate again")

	want := plan.ScenarioValues()
	got := reloaded.ScenarioValues()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].HorizonYears, got[i].HorizonYears)
		assert.True(t, got[i].Config.TargetSpend.Equal(want[i].Config.TargetSpend),
			"Scenario %s target should survive the round trip", want[i].Name)
		assert.True(t, got[i].Config.SlowGoPercent.Equal(want[i].Config.SlowGoPercent))
		assert.True(t, got[i].Config.InflationRate.Equal(want[i].Config.InflationRate))
	}
	require.NotNil(t, reloaded.Survivor)
	assert.Equal(t, 12, reloaded.Survivor.DeathYearOffset)
}
