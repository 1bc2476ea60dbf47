package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Register all built-in transforms
	registry.Register("set_inflation", createSetInflationRate)
	registry.Register("shift_inflation", createShiftInflationRate)
	registry.Register("set_target_spend", createSetTargetSpend)
	registry.Register("scale_spending", createScaleTargetSpend)
	registry.Register("set_phase_percent", createSetPhasePercent)
	registry.Register("set_phase_years", createSetPhaseYears)
	registry.Register("set_horizon", createSetHorizon)

	// Survivor event transforms
	registry.Register("set_survivor", createSetSurvivorEvent)
	registry.Register("remove_survivor", createRemoveSurvivorEvent)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_phase_percent:phase=nogo,percent=60"
// A bare transform name with no colon is valid for parameterless transforms.
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name := strings.TrimSpace(spec)
	paramsStr := ""

	if idx := strings.Index(spec, ":"); idx >= 0 {
		name = strings.TrimSpace(spec[:idx])
		paramsStr = strings.TrimSpace(spec[idx+1:])
	}

	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	// Parse parameters
	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createSetInflationRate(params map[string]string) (ScenarioTransform, error) {
	rateStr, ok := params["rate"]
	if !ok {
		return nil, fmt.Errorf("set_inflation requires 'rate' parameter")
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %w", err)
	}

	return &SetInflationRate{
		Rate: rate,
	}, nil
}

func createShiftInflationRate(params map[string]string) (ScenarioTransform, error) {
	deltaStr, ok := params["delta"]
	if !ok {
		return nil, fmt.Errorf("shift_inflation requires 'delta' parameter")
	}

	delta, err := decimal.NewFromString(deltaStr)
	if err != nil {
		return nil, fmt.Errorf("invalid delta value: %w", err)
	}

	return &ShiftInflationRate{
		Delta: delta,
	}, nil
}

func createSetTargetSpend(params map[string]string) (ScenarioTransform, error) {
	amountStr, ok := params["amount"]
	if !ok {
		return nil, fmt.Errorf("set_target_spend requires 'amount' parameter")
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}

	return &SetTargetSpend{
		Amount: amount,
	}, nil
}

func createScaleTargetSpend(params map[string]string) (ScenarioTransform, error) {
	factorStr, ok := params["factor"]
	if !ok {
		return nil, fmt.Errorf("scale_spending requires 'factor' parameter")
	}

	factor, err := decimal.NewFromString(factorStr)
	if err != nil {
		return nil, fmt.Errorf("invalid factor value: %w", err)
	}

	return &ScaleTargetSpend{
		Factor: factor,
	}, nil
}

func createSetPhasePercent(params map[string]string) (ScenarioTransform, error) {
	phaseStr, ok := params["phase"]
	if !ok {
		return nil, fmt.Errorf("set_phase_percent requires 'phase' parameter")
	}

	phase, err := domain.ParsePhase(phaseStr)
	if err != nil {
		return nil, fmt.Errorf("invalid phase value: %w", err)
	}

	percentStr, ok := params["percent"]
	if !ok {
		return nil, fmt.Errorf("set_phase_percent requires 'percent' parameter")
	}

	percent, err := decimal.NewFromString(percentStr)
	if err != nil {
		return nil, fmt.Errorf("invalid percent value: %w", err)
	}

	return &SetPhasePercent{
		Phase:   phase,
		Percent: percent,
	}, nil
}

func createSetPhaseYears(params map[string]string) (ScenarioTransform, error) {
	transform := &SetPhaseYears{}

	if gogoStr, ok := params["gogo"]; ok {
		gogo, err := strconv.Atoi(gogoStr)
		if err != nil {
			return nil, fmt.Errorf("invalid gogo value: %w", err)
		}
		transform.GoGoYears = &gogo
	}

	if slowStr, ok := params["slow"]; ok {
		slow, err := strconv.Atoi(slowStr)
		if err != nil {
			return nil, fmt.Errorf("invalid slow value: %w", err)
		}
		transform.SlowGoYears = &slow
	}

	if transform.GoGoYears == nil && transform.SlowGoYears == nil {
		return nil, fmt.Errorf("set_phase_years requires 'gogo' or 'slow' parameter")
	}

	return transform, nil
}

func createSetHorizon(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("set_horizon requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &SetHorizon{
		Years: years,
	}, nil
}

// Survivor event transform factories

func createSetSurvivorEvent(params map[string]string) (ScenarioTransform, error) {
	offsetStr, ok := params["offset"]
	if !ok {
		return nil, fmt.Errorf("set_survivor requires 'offset' parameter")
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		return nil, fmt.Errorf("invalid offset value: %w", err)
	}

	transform := &SetSurvivorEvent{
		DeathYearOffset: offset,
	}

	if percentStr, ok := params["percent"]; ok {
		percent, err := decimal.NewFromString(percentStr)
		if err != nil {
			return nil, fmt.Errorf("invalid percent value: %w", err)
		}
		transform.SurvivorPercent = &percent
	}

	return transform, nil
}

func createRemoveSurvivorEvent(params map[string]string) (ScenarioTransform, error) {
	return &RemoveSurvivorEvent{}, nil
}
