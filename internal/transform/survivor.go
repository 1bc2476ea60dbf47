package transform

import (
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetSurvivorEvent attaches a survivor event to the scenario, replacing any
// existing event. Optionally overrides the survivor spending percentage.
type SetSurvivorEvent struct {
	DeathYearOffset int              // Years after retirement start when the event occurs
	SurvivorPercent *decimal.Decimal // Optional new survivor percentage, or nil to keep the plan's value
}

func (ss *SetSurvivorEvent) Name() string {
	return "set_survivor"
}

func (ss *SetSurvivorEvent) Description() string {
	if ss.SurvivorPercent != nil {
		return fmt.Sprintf("Apply survivor event at year offset %d with %s%% spending", ss.DeathYearOffset, ss.SurvivorPercent.StringFixed(0))
	}
	return fmt.Sprintf("Apply survivor event at year offset %d", ss.DeathYearOffset)
}

func (ss *SetSurvivorEvent) Validate(base *domain.Scenario) error {
	if ss.DeathYearOffset < 0 {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("offset must be non-negative, got %d", ss.DeathYearOffset), nil)
	}

	if ss.SurvivorPercent != nil {
		if ss.SurvivorPercent.IsNegative() || ss.SurvivorPercent.GreaterThan(decimal.NewFromInt(100)) {
			return NewTransformError(ss.Name(), "validate",
				fmt.Sprintf("survivor percent must be between 0 and 100, got %s", ss.SurvivorPercent), nil)
		}
	}

	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base scenario cannot be nil", nil)
	}

	return nil
}

func (ss *SetSurvivorEvent) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()

	modified.Survivor = &domain.SurvivorEvent{DeathYearOffset: ss.DeathYearOffset}
	if ss.SurvivorPercent != nil {
		modified.Config.SurvivorPercent = *ss.SurvivorPercent
	}

	return modified, nil
}

// RemoveSurvivorEvent strips the survivor event from the scenario so the
// projection runs at full spending throughout.
type RemoveSurvivorEvent struct{}

func (rs *RemoveSurvivorEvent) Name() string {
	return "remove_survivor"
}

func (rs *RemoveSurvivorEvent) Description() string {
	return "Remove the survivor event from the plan"
}

func (rs *RemoveSurvivorEvent) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(rs.Name(), "validate", "base scenario cannot be nil", nil)
	}
	return nil
}

func (rs *RemoveSurvivorEvent) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Survivor = nil
	return modified, nil
}
