package calculation

import (
	"context"
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
)

// CalculationEngine orchestrates spending projections: phase resolution,
// inflation adjustment, and survivor adjustment, in that order, for each
// projected year.
type CalculationEngine struct {
	Inflation *InflationAdjuster
	Phases    *PhaseSchedule
	Survivor  *SurvivorPolicy
	Debug     bool // Enable per-year debug output
	Logger    Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Inflation: NewInflationAdjuster(),
		Phases:    NewPhaseSchedule(),
		Survivor:  NewSurvivorPolicy(),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ValidateConfig checks the plan parameters before any computation runs.
// Percentages above 100 are allowed; negative values are not.
func (ce *CalculationEngine) ValidateConfig(config domain.SpendingConfig, horizonYears int) error {
	if config.TargetSpend.IsNegative() {
		return fmt.Errorf("%w: target spend cannot be negative, got %s", domain.ErrInvalidConfig, config.TargetSpend)
	}
	for _, phase := range domain.AllPhases() {
		if config.PhasePercent(phase).IsNegative() {
			return fmt.Errorf("%w: %s percent cannot be negative, got %s", domain.ErrInvalidConfig, phase, config.PhasePercent(phase))
		}
	}
	if config.SurvivorPercent.IsNegative() {
		return fmt.Errorf("%w: survivor percent cannot be negative, got %s", domain.ErrInvalidConfig, config.SurvivorPercent)
	}
	if config.GoGoYears < 0 {
		return fmt.Errorf("%w: gogo years cannot be negative, got %d", domain.ErrInvalidConfig, config.GoGoYears)
	}
	if config.SlowGoYears < 0 {
		return fmt.Errorf("%w: slow years cannot be negative, got %d", domain.ErrInvalidConfig, config.SlowGoYears)
	}
	if horizonYears < 0 {
		return fmt.Errorf("%w: horizon years cannot be negative, got %d", domain.ErrInvalidConfig, horizonYears)
	}
	return nil
}

// Project produces the year-by-year spending schedule for one plan.
// Years come out in ascending offset order; a zero horizon yields an empty
// schedule with no error. Validation failures surface before any year is
// computed; either the full sequence is produced or no result at all.
func (ce *CalculationEngine) Project(ctx context.Context, config domain.SpendingConfig, horizonYears int, survivor *domain.SurvivorEvent) (*domain.SpendingSchedule, error) {
	if err := ce.ValidateConfig(config, horizonYears); err != nil {
		return nil, err
	}

	schedule := &domain.SpendingSchedule{
		Config:       config,
		HorizonYears: horizonYears,
		Years:        make([]domain.YearlySpendingResult, 0, horizonYears),
	}
	if survivor != nil {
		event := *survivor
		schedule.Survivor = &event
	}

	for offset := 0; offset < horizonYears; offset++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		phase := ce.Phases.PhaseFor(offset, config.GoGoYears, config.SlowGoYears)
		percent := config.PhasePercent(phase)
		realAmount := config.TargetSpend.Mul(percent).Div(hundred)

		nominal, err := ce.Inflation.Adjust(realAmount, offset, config.InflationRate)
		if err != nil {
			return nil, fmt.Errorf("year offset %d: %w", offset, err)
		}

		multiplier := ce.Survivor.MultiplierFor(offset, survivor, config.SurvivorPercent)
		final := nominal.Mul(multiplier).Round(2)

		if ce.Debug {
			ce.Logger.Debugf("offset %d: phase=%s percent=%s real=%s nominal=%s multiplier=%s final=%s",
				offset, phase, percent, realAmount.StringFixed(2), nominal.StringFixed(6), multiplier, final)
		}

		schedule.Years = append(schedule.Years, domain.YearlySpendingResult{
			CalendarYear:     config.StartYear + offset,
			YearOffset:       offset,
			Phase:            phase,
			RealPhaseAmount:  realAmount,
			NominalAmount:    nominal,
			SurvivorAdjusted: ce.Survivor.Applies(offset, survivor),
			FinalAmount:      final,
		})
	}

	return schedule, nil
}

// RunScenario projects a single named scenario
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.SpendingSchedule, error) {
	schedule, err := ce.Project(ctx, scenario.Config, scenario.HorizonYears, scenario.Survivor)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	schedule.ScenarioName = scenario.Name
	return schedule, nil
}

// RunScenarios projects every scenario in order and bundles the schedules,
// first scenario as the base.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, scenarios []domain.Scenario) (*domain.ScheduleSet, error) {
	set := &domain.ScheduleSet{
		Schedules: make([]domain.SpendingSchedule, len(scenarios)),
	}
	if len(scenarios) > 0 {
		set.BaseScenarioName = scenarios[0].Name
	}
	for i := range scenarios {
		schedule, err := ce.RunScenario(ctx, &scenarios[i])
		if err != nil {
			return nil, err
		}
		set.Schedules[i] = *schedule
	}
	return set, nil
}
