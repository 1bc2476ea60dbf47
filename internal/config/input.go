package config

import (
	"fmt"
	"os"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Phase percentages fall back to the classic go-go / slow-go / no-go split
// when the plan file leaves them out.
var (
	defaultGoGoPercent     = decimal.NewFromInt(100)
	defaultSlowGoPercent   = decimal.NewFromInt(80)
	defaultNoGoPercent     = decimal.NewFromInt(70)
	defaultSurvivorPercent = decimal.NewFromInt(100)

	minInflationRate = decimal.NewFromFloat(-0.20)
	maxInflationRate = decimal.NewFromFloat(0.20)
)

const (
	minStartYear    = 1900
	maxStartYear    = 2100
	maxHorizonYears = 120
)

// PlanFile is the on-disk shape of a spending plan
type PlanFile struct {
	Plan      PlanBlock         `yaml:"plan" json:"plan"`
	Spending  SpendingBlock     `yaml:"spending" json:"spending"`
	Rates     RatesBlock        `yaml:"rates" json:"rates"`
	Survivor  *SurvivorBlock    `yaml:"survivor,omitempty" json:"survivor,omitempty"`
	Scenarios []ScenarioOverlay `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// PlanBlock anchors the projection in calendar time
type PlanBlock struct {
	StartYear    int `yaml:"start_year" json:"start_year"`
	HorizonYears int `yaml:"horizon_years" json:"horizon_years"`
}

// SpendingBlock holds the target spend and the phase shape. Percentages are
// pointers so an omitted field is distinguishable from an explicit zero.
type SpendingBlock struct {
	TargetSpend     decimal.Decimal  `yaml:"target_spend" json:"target_spend"`
	GoGoPercent     *decimal.Decimal `yaml:"gogo_percent,omitempty" json:"gogo_percent,omitempty"`
	SlowGoPercent   *decimal.Decimal `yaml:"slow_percent,omitempty" json:"slow_percent,omitempty"`
	NoGoPercent     *decimal.Decimal `yaml:"nogo_percent,omitempty" json:"nogo_percent,omitempty"`
	GoGoYears       int              `yaml:"gogo_years" json:"gogo_years"`
	SlowGoYears     int              `yaml:"slow_years" json:"slow_years"`
	SurvivorPercent *decimal.Decimal `yaml:"survivor_percent,omitempty" json:"survivor_percent,omitempty"`
}

// RatesBlock holds economic assumptions
type RatesBlock struct {
	Inflation decimal.Decimal `yaml:"inflation" json:"inflation"`
}

// SurvivorBlock attaches a survivor event to the base plan
type SurvivorBlock struct {
	DeathYearOffset int `yaml:"death_year_offset" json:"death_year_offset"`
}

// ScenarioOverlay is a named variation on the base plan. Every field is
// optional; set fields replace the base value.
type ScenarioOverlay struct {
	Name            string           `yaml:"name" json:"name"`
	TargetSpend     *decimal.Decimal `yaml:"target_spend,omitempty" json:"target_spend,omitempty"`
	GoGoPercent     *decimal.Decimal `yaml:"gogo_percent,omitempty" json:"gogo_percent,omitempty"`
	SlowGoPercent   *decimal.Decimal `yaml:"slow_percent,omitempty" json:"slow_percent,omitempty"`
	NoGoPercent     *decimal.Decimal `yaml:"nogo_percent,omitempty" json:"nogo_percent,omitempty"`
	GoGoYears       *int             `yaml:"gogo_years,omitempty" json:"gogo_years,omitempty"`
	SlowGoYears     *int             `yaml:"slow_years,omitempty" json:"slow_years,omitempty"`
	SurvivorPercent *decimal.Decimal `yaml:"survivor_percent,omitempty" json:"survivor_percent,omitempty"`
	Inflation       *decimal.Decimal `yaml:"inflation,omitempty" json:"inflation,omitempty"`
	HorizonYears    *int             `yaml:"horizon_years,omitempty" json:"horizon_years,omitempty"`
	DeathYearOffset *int             `yaml:"death_year_offset,omitempty" json:"death_year_offset,omitempty"`
}

// InputParser handles parsing of plan configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a spending plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan PlanFile
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan validates the loaded plan
func (ip *InputParser) ValidatePlan(plan *PlanFile) error {
	if err := ip.validatePlanBlock(&plan.Plan); err != nil {
		return err
	}
	if err := ip.validateSpendingBlock(&plan.Spending); err != nil {
		return err
	}
	if err := ip.validateRates(&plan.Rates); err != nil {
		return err
	}
	if plan.Survivor != nil && plan.Survivor.DeathYearOffset < 0 {
		return fmt.Errorf("%w: survivor.death_year_offset cannot be negative: %d",
			domain.ErrInvalidConfig, plan.Survivor.DeathYearOffset)
	}

	seen := make(map[string]bool)
	for i := range plan.Scenarios {
		overlay := &plan.Scenarios[i]
		if overlay.Name == "" {
			return fmt.Errorf("%w: scenario %d: name is required", domain.ErrInvalidConfig, i)
		}
		if seen[overlay.Name] {
			return fmt.Errorf("%w: duplicate scenario name %q", domain.ErrInvalidConfig, overlay.Name)
		}
		seen[overlay.Name] = true

		if err := ip.validateOverlay(overlay); err != nil {
			return fmt.Errorf("scenario %d (%s): %w", i, overlay.Name, err)
		}
	}

	return nil
}

func (ip *InputParser) validatePlanBlock(plan *PlanBlock) error {
	if plan.StartYear < minStartYear || plan.StartYear > maxStartYear {
		return rangeErr("plan.start_year", fmt.Sprintf("%d", minStartYear), fmt.Sprintf("%d", maxStartYear),
			fmt.Sprintf("%d", plan.StartYear))
	}
	if plan.HorizonYears < 0 || plan.HorizonYears > maxHorizonYears {
		return rangeErr("plan.horizon_years", "0", fmt.Sprintf("%d", maxHorizonYears),
			fmt.Sprintf("%d", plan.HorizonYears))
	}
	return nil
}

func (ip *InputParser) validateSpendingBlock(spending *SpendingBlock) error {
	if spending.TargetSpend.IsNegative() {
		return fmt.Errorf("%w: spending.target_spend cannot be negative: %s",
			domain.ErrInvalidConfig, spending.TargetSpend)
	}

	percents := []struct {
		field string
		value decimal.Decimal
	}{
		{"spending.gogo_percent", percentOr(spending.GoGoPercent, defaultGoGoPercent)},
		{"spending.slow_percent", percentOr(spending.SlowGoPercent, defaultSlowGoPercent)},
		{"spending.nogo_percent", percentOr(spending.NoGoPercent, defaultNoGoPercent)},
	}
	for _, p := range percents {
		if p.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative: %s", domain.ErrInvalidConfig, p.field, p.value)
		}
	}

	survivorPercent := percentOr(spending.SurvivorPercent, defaultSurvivorPercent)
	if survivorPercent.IsNegative() || survivorPercent.GreaterThan(hundred) {
		return rangeErr("spending.survivor_percent", "0", "100", survivorPercent.String())
	}

	if spending.GoGoYears < 0 {
		return fmt.Errorf("%w: spending.gogo_years cannot be negative: %d",
			domain.ErrInvalidConfig, spending.GoGoYears)
	}
	if spending.SlowGoYears < 0 {
		return fmt.Errorf("%w: spending.slow_years cannot be negative: %d",
			domain.ErrInvalidConfig, spending.SlowGoYears)
	}

	return nil
}

func (ip *InputParser) validateRates(rates *RatesBlock) error {
	if rates.Inflation.LessThan(minInflationRate) || rates.Inflation.GreaterThan(maxInflationRate) {
		return rangeErr("rates.inflation", minInflationRate.String(), maxInflationRate.String(),
			rates.Inflation.String())
	}
	return nil
}

func (ip *InputParser) validateOverlay(overlay *ScenarioOverlay) error {
	if overlay.TargetSpend != nil && overlay.TargetSpend.IsNegative() {
		return fmt.Errorf("%w: target_spend cannot be negative: %s",
			domain.ErrInvalidConfig, overlay.TargetSpend)
	}

	percents := []struct {
		field string
		value *decimal.Decimal
	}{
		{"gogo_percent", overlay.GoGoPercent},
		{"slow_percent", overlay.SlowGoPercent},
		{"nogo_percent", overlay.NoGoPercent},
	}
	for _, p := range percents {
		if p.value != nil && p.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative: %s", domain.ErrInvalidConfig, p.field, p.value)
		}
	}

	if overlay.SurvivorPercent != nil {
		if overlay.SurvivorPercent.IsNegative() || overlay.SurvivorPercent.GreaterThan(hundred) {
			return rangeErr("survivor_percent", "0", "100", overlay.SurvivorPercent.String())
		}
	}
	if overlay.Inflation != nil {
		if overlay.Inflation.LessThan(minInflationRate) || overlay.Inflation.GreaterThan(maxInflationRate) {
			return rangeErr("inflation", minInflationRate.String(), maxInflationRate.String(),
				overlay.Inflation.String())
		}
	}
	if overlay.GoGoYears != nil && *overlay.GoGoYears < 0 {
		return fmt.Errorf("%w: gogo_years cannot be negative: %d", domain.ErrInvalidConfig, *overlay.GoGoYears)
	}
	if overlay.SlowGoYears != nil && *overlay.SlowGoYears < 0 {
		return fmt.Errorf("%w: slow_years cannot be negative: %d", domain.ErrInvalidConfig, *overlay.SlowGoYears)
	}
	if overlay.HorizonYears != nil && (*overlay.HorizonYears < 0 || *overlay.HorizonYears > maxHorizonYears) {
		return rangeErr("horizon_years", "0", fmt.Sprintf("%d", maxHorizonYears),
			fmt.Sprintf("%d", *overlay.HorizonYears))
	}
	if overlay.DeathYearOffset != nil && *overlay.DeathYearOffset < 0 {
		return fmt.Errorf("%w: death_year_offset cannot be negative: %d",
			domain.ErrInvalidConfig, *overlay.DeathYearOffset)
	}

	return nil
}

// SpendingConfig builds the engine-facing config from the plan blocks,
// filling in defaulted percentages
func (pf *PlanFile) SpendingConfig() domain.SpendingConfig {
	return domain.SpendingConfig{
		TargetSpend:     pf.Spending.TargetSpend,
		GoGoPercent:     percentOr(pf.Spending.GoGoPercent, defaultGoGoPercent),
		SlowGoPercent:   percentOr(pf.Spending.SlowGoPercent, defaultSlowGoPercent),
		NoGoPercent:     percentOr(pf.Spending.NoGoPercent, defaultNoGoPercent),
		GoGoYears:       pf.Spending.GoGoYears,
		SlowGoYears:     pf.Spending.SlowGoYears,
		SurvivorPercent: percentOr(pf.Spending.SurvivorPercent, defaultSurvivorPercent),
		InflationRate:   pf.Rates.Inflation,
		StartYear:       pf.Plan.StartYear,
	}
}

// BaseScenario builds the unmodified base scenario from the plan
func (pf *PlanFile) BaseScenario() *domain.Scenario {
	scenario := &domain.Scenario{
		Name:         "base",
		Config:       pf.SpendingConfig(),
		HorizonYears: pf.Plan.HorizonYears,
	}
	if pf.Survivor != nil {
		scenario.Survivor = &domain.SurvivorEvent{DeathYearOffset: pf.Survivor.DeathYearOffset}
	}
	return scenario
}

// ToScenarios builds the base scenario plus one scenario per overlay, in
// file order
func (pf *PlanFile) ToScenarios() []*domain.Scenario {
	scenarios := make([]*domain.Scenario, 0, len(pf.Scenarios)+1)
	scenarios = append(scenarios, pf.BaseScenario())
	for i := range pf.Scenarios {
		scenarios = append(scenarios, pf.overlayScenario(&pf.Scenarios[i]))
	}
	return scenarios
}

// ScenarioValues flattens ToScenarios for callers that hand the whole plan
// to the engine at once
func (pf *PlanFile) ScenarioValues() []domain.Scenario {
	ptrs := pf.ToScenarios()
	scenarios := make([]domain.Scenario, len(ptrs))
	for i, s := range ptrs {
		scenarios[i] = *s
	}
	return scenarios
}

func (pf *PlanFile) overlayScenario(overlay *ScenarioOverlay) *domain.Scenario {
	scenario := pf.BaseScenario()
	scenario.Name = overlay.Name

	if overlay.TargetSpend != nil {
		scenario.Config.TargetSpend = *overlay.TargetSpend
	}
	if overlay.GoGoPercent != nil {
		scenario.Config.GoGoPercent = *overlay.GoGoPercent
	}
	if overlay.SlowGoPercent != nil {
		scenario.Config.SlowGoPercent = *overlay.SlowGoPercent
	}
	if overlay.NoGoPercent != nil {
		scenario.Config.NoGoPercent = *overlay.NoGoPercent
	}
	if overlay.GoGoYears != nil {
		scenario.Config.GoGoYears = *overlay.GoGoYears
	}
	if overlay.SlowGoYears != nil {
		scenario.Config.SlowGoYears = *overlay.SlowGoYears
	}
	if overlay.SurvivorPercent != nil {
		scenario.Config.SurvivorPercent = *overlay.SurvivorPercent
	}
	if overlay.Inflation != nil {
		scenario.Config.InflationRate = *overlay.Inflation
	}
	if overlay.HorizonYears != nil {
		scenario.HorizonYears = *overlay.HorizonYears
	}
	if overlay.DeathYearOffset != nil {
		scenario.Survivor = &domain.SurvivorEvent{DeathYearOffset: *overlay.DeathYearOffset}
	}

	return scenario
}

func percentOr(value *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if value == nil {
		return fallback
	}
	return *value
}

func rangeErr(field, lo, hi, value string) error {
	return fmt.Errorf("%w: %s out of range [%s,%s]: %s", domain.ErrInvalidConfig, field, lo, hi, value)
}

var hundred = decimal.NewFromInt(100)
