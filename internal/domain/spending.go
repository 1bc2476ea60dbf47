package domain

import (
	"github.com/shopspring/decimal"
)

// SpendingConfig holds the plan inputs for a spending projection. Amounts
// are annual figures in today's dollars. The engine treats configs as
// immutable; a projection never writes back into its config.
type SpendingConfig struct {
	TargetSpend     decimal.Decimal `yaml:"target_spend" json:"target_spend"`
	GoGoPercent     decimal.Decimal `yaml:"gogo_percent" json:"gogo_percent"`
	SlowGoPercent   decimal.Decimal `yaml:"slow_percent" json:"slow_percent"`
	NoGoPercent     decimal.Decimal `yaml:"nogo_percent" json:"nogo_percent"`
	GoGoYears       int             `yaml:"gogo_years" json:"gogo_years"`
	SlowGoYears     int             `yaml:"slow_years" json:"slow_years"`
	SurvivorPercent decimal.Decimal `yaml:"survivor_percent" json:"survivor_percent"`
	InflationRate   decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	StartYear       int             `yaml:"start_year" json:"start_year"`
}

// PhasePercent returns the percentage of the spending target configured
// for the given phase. Percentages above 100 are allowed.
func (c SpendingConfig) PhasePercent(p Phase) decimal.Decimal {
	switch p {
	case PhaseGoGo:
		return c.GoGoPercent
	case PhaseSlowGo:
		return c.SlowGoPercent
	default:
		return c.NoGoPercent
	}
}

// SurvivorEvent marks the projection-relative year a household drops to a
// single survivor. Every year at or after DeathYearOffset carries the
// survivor adjustment; there is no reversion.
type SurvivorEvent struct {
	DeathYearOffset int `yaml:"death_year_offset" json:"death_year_offset"`
}

// Scenario pairs a spending config with a projection window and an
// optional survivor event, ready to run through the calculation engine.
type Scenario struct {
	Name         string         `yaml:"name" json:"name"`
	Config       SpendingConfig `yaml:"config" json:"config"`
	HorizonYears int            `yaml:"horizon_years" json:"horizon_years"`
	Survivor     *SurvivorEvent `yaml:"survivor,omitempty" json:"survivor,omitempty"`
}

// DeepCopy returns an independent copy of the scenario
func (s *Scenario) DeepCopy() *Scenario {
	copied := *s
	if s.Survivor != nil {
		ev := *s.Survivor
		copied.Survivor = &ev
	}
	return &copied
}
