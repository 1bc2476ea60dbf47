package transform

import (
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetTargetSpend replaces the annual target spend with an absolute amount.
// This is useful for exploring "what if we lived on less" scenarios.
type SetTargetSpend struct {
	Amount decimal.Decimal // New annual target spend in today's dollars
}

func (st *SetTargetSpend) Name() string {
	return "set_target_spend"
}

func (st *SetTargetSpend) Description() string {
	return fmt.Sprintf("Set annual target spend to $%s", st.Amount.StringFixed(0))
}

func (st *SetTargetSpend) Validate(base *domain.Scenario) error {
	if st.Amount.IsNegative() {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", st.Amount), nil)
	}

	if base == nil {
		return NewTransformError(st.Name(), "validate", "base scenario cannot be nil", nil)
	}

	return nil
}

func (st *SetTargetSpend) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Config.TargetSpend = st.Amount
	return modified, nil
}

// ScaleTargetSpend multiplies the annual target spend by a factor.
// Unlike SetTargetSpend which is absolute, this is relative to the base plan.
type ScaleTargetSpend struct {
	Factor decimal.Decimal // Multiplier applied to the target spend (e.g., 0.9 for a 10% cut)
}

func (st *ScaleTargetSpend) Name() string {
	return "scale_spending"
}

func (st *ScaleTargetSpend) Description() string {
	percentage := st.Factor.Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("Scale target spend to %s%% of the base plan", percentage.StringFixed(0))
}

func (st *ScaleTargetSpend) Validate(base *domain.Scenario) error {
	if st.Factor.IsNegative() {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", st.Factor), nil)
	}

	if base == nil {
		return NewTransformError(st.Name(), "validate", "base scenario cannot be nil", nil)
	}

	return nil
}

func (st *ScaleTargetSpend) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Config.TargetSpend = modified.Config.TargetSpend.Mul(st.Factor)
	return modified, nil
}

// SetPhasePercent replaces the spending percentage for one phase.
type SetPhasePercent struct {
	Phase   domain.Phase    // Which phase to modify
	Percent decimal.Decimal // New percentage of target spend (e.g., 60 for 60%)
}

func (sp *SetPhasePercent) Name() string {
	return "set_phase_percent"
}

func (sp *SetPhasePercent) Description() string {
	return fmt.Sprintf("Set %s spending to %s%% of target", sp.Phase, sp.Percent.StringFixed(0))
}

func (sp *SetPhasePercent) Validate(base *domain.Scenario) error {
	if sp.Percent.IsNegative() {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("percent must be non-negative, got %s", sp.Percent), nil)
	}

	switch sp.Phase {
	case domain.PhaseGoGo, domain.PhaseSlowGo, domain.PhaseNoGo:
	default:
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("unknown phase %d", sp.Phase), nil)
	}

	if base == nil {
		return NewTransformError(sp.Name(), "validate", "base scenario cannot be nil", nil)
	}

	return nil
}

func (sp *SetPhasePercent) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()

	switch sp.Phase {
	case domain.PhaseGoGo:
		modified.Config.GoGoPercent = sp.Percent
	case domain.PhaseSlowGo:
		modified.Config.SlowGoPercent = sp.Percent
	case domain.PhaseNoGo:
		modified.Config.NoGoPercent = sp.Percent
	}

	return modified, nil
}

// SetPhaseYears changes the length of the GoGo and SlowGo phases. A nil
// field leaves that phase unchanged.
type SetPhaseYears struct {
	GoGoYears   *int // New GoGo phase length, or nil to keep the base value
	SlowGoYears *int // New SlowGo phase length, or nil to keep the base value
}

func (sp *SetPhaseYears) Name() string {
	return "set_phase_years"
}

func (sp *SetPhaseYears) Description() string {
	switch {
	case sp.GoGoYears != nil && sp.SlowGoYears != nil:
		return fmt.Sprintf("Set phase lengths to %d GoGo and %d SlowGo years", *sp.GoGoYears, *sp.SlowGoYears)
	case sp.GoGoYears != nil:
		return fmt.Sprintf("Set GoGo phase to %d years", *sp.GoGoYears)
	case sp.SlowGoYears != nil:
		return fmt.Sprintf("Set SlowGo phase to %d years", *sp.SlowGoYears)
	default:
		return "Set phase lengths (no change)"
	}
}

func (sp *SetPhaseYears) Validate(base *domain.Scenario) error {
	if sp.GoGoYears == nil && sp.SlowGoYears == nil {
		return NewTransformError(sp.Name(), "validate", "at least one of gogo or slow years is required", nil)
	}

	if sp.GoGoYears != nil && *sp.GoGoYears < 0 {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("gogo years must be non-negative, got %d", *sp.GoGoYears), nil)
	}
	if sp.SlowGoYears != nil && *sp.SlowGoYears < 0 {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("slow years must be non-negative, got %d", *sp.SlowGoYears), nil)
	}

	if base == nil {
		return NewTransformError(sp.Name(), "validate", "base scenario cannot be nil", nil)
	}

	return nil
}

func (sp *SetPhaseYears) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()

	if sp.GoGoYears != nil {
		modified.Config.GoGoYears = *sp.GoGoYears
	}
	if sp.SlowGoYears != nil {
		modified.Config.SlowGoYears = *sp.SlowGoYears
	}

	return modified, nil
}

// SetHorizon changes how many years the projection covers.
type SetHorizon struct {
	Years int // New horizon length
}

func (sh *SetHorizon) Name() string {
	return "set_horizon"
}

func (sh *SetHorizon) Description() string {
	return fmt.Sprintf("Set projection horizon to %d years", sh.Years)
}

func (sh *SetHorizon) Validate(base *domain.Scenario) error {
	if sh.Years < 0 {
		return NewTransformError(sh.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", sh.Years), nil)
	}

	if base == nil {
		return NewTransformError(sh.Name(), "validate", "base scenario cannot be nil", nil)
	}

	return nil
}

func (sh *SetHorizon) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.HorizonYears = sh.Years
	return modified, nil
}
