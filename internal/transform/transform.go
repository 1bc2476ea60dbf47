package transform

import (
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
)

// ScenarioTransform is a reusable edit on a scenario: change an
// assumption, reshape the phases, attach a survivor event. Transforms
// never mutate their input; Apply returns a fresh scenario.
type ScenarioTransform interface {
	// Apply returns a modified copy of the base scenario.
	Apply(base *domain.Scenario) (*domain.Scenario, error)

	// Name returns the registry identifier (e.g. "set_inflation").
	Name() string

	// Description explains the edit in one line for help output.
	Description() string

	// Validate rejects bad parameters without applying anything.
	Validate(base *domain.Scenario) error
}

// ApplyTransforms chains transforms left to right, each one receiving
// the previous result. The base scenario is never modified; an empty
// chain returns a deep copy.
func ApplyTransforms(base *domain.Scenario, transforms []ScenarioTransform) (*domain.Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}
	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError names the transform and operation that failed, so
// validation messages read well in CLI output.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError builds a TransformError as an error value
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
