package transform

import (
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Inflation rates a transform may set, matching the plan loader's bounds.
var (
	minInflationRate = decimal.NewFromFloat(-0.20)
	maxInflationRate = decimal.NewFromFloat(0.20)
)

// SetInflationRate replaces the inflation rate assumption.
// This affects the nominal value of every projected year.
type SetInflationRate struct {
	Rate decimal.Decimal // New inflation rate (e.g., 0.03 for 3%)
}

func (si *SetInflationRate) Name() string {
	return "set_inflation"
}

func (si *SetInflationRate) Description() string {
	percentage := si.Rate.Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("Change inflation rate to %s%%", percentage.StringFixed(1))
}

func (si *SetInflationRate) Validate(base *domain.Scenario) error {
	if si.Rate.LessThan(minInflationRate) || si.Rate.GreaterThan(maxInflationRate) {
		return NewTransformError(si.Name(), "validate",
			fmt.Sprintf("inflation rate must be between %s and %s, got %s", minInflationRate, maxInflationRate, si.Rate), nil)
	}

	if base == nil {
		return NewTransformError(si.Name(), "validate", "base scenario cannot be nil", nil)
	}

	return nil
}

func (si *SetInflationRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Config.InflationRate = si.Rate
	return modified, nil
}

// ShiftInflationRate adds a delta to the base plan's inflation rate.
// Unlike SetInflationRate which is absolute, this is relative.
type ShiftInflationRate struct {
	Delta decimal.Decimal // Amount to add to the rate (e.g., 0.01 for +1 point)
}

func (si *ShiftInflationRate) Name() string {
	return "shift_inflation"
}

func (si *ShiftInflationRate) Description() string {
	points := si.Delta.Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("Shift inflation rate by %s points", points.StringFixed(1))
}

func (si *ShiftInflationRate) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(si.Name(), "validate", "base scenario cannot be nil", nil)
	}

	shifted := base.Config.InflationRate.Add(si.Delta)
	if shifted.LessThan(minInflationRate) || shifted.GreaterThan(maxInflationRate) {
		return NewTransformError(si.Name(), "validate",
			fmt.Sprintf("shifted rate %s falls outside [%s,%s]", shifted, minInflationRate, maxInflationRate), nil)
	}

	return nil
}

func (si *ShiftInflationRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Config.InflationRate = modified.Config.InflationRate.Add(si.Delta)
	return modified, nil
}
