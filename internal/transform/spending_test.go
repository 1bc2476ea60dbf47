package transform

import (
	"testing"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

func TestSetTargetSpend(t *testing.T) {
	base := createTestScenario()

	transform := &SetTargetSpend{Amount: decimal.NewFromInt(90000)}

	if err := transform.Validate(base); err != nil {
		t.Fatalf("Expected valid transform, got: %v", err)
	}

	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.Config.TargetSpend.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("Expected target spend 90000, got %s", result.Config.TargetSpend)
	}

	// Original should be unchanged
	if !base.Config.TargetSpend.Equal(decimal.NewFromInt(120000)) {
		t.Error("Original scenario was modified")
	}
}

func TestSetTargetSpend_NegativeAmount(t *testing.T) {
	base := createTestScenario()

	transform := &SetTargetSpend{Amount: decimal.NewFromInt(-1)}

	if err := transform.Validate(base); err == nil {
		t.Error("Expected validation error for negative amount, got nil")
	}
}

func TestScaleTargetSpend(t *testing.T) {
	base := createTestScenario()

	transform := &ScaleTargetSpend{Factor: decimal.NewFromFloat(0.9)}

	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.Config.TargetSpend.Equal(decimal.NewFromInt(108000)) {
		t.Errorf("Expected target spend 108000, got %s", result.Config.TargetSpend)
	}
}

func TestScaleTargetSpend_NegativeFactor(t *testing.T) {
	base := createTestScenario()

	transform := &ScaleTargetSpend{Factor: decimal.NewFromFloat(-0.5)}

	if err := transform.Validate(base); err == nil {
		t.Error("Expected validation error for negative factor, got nil")
	}
}

func TestSetPhasePercent(t *testing.T) {
	tests := []struct {
		phase domain.Phase
		check func(s *domain.Scenario) decimal.Decimal
	}{
		{domain.PhaseGoGo, func(s *domain.Scenario) decimal.Decimal { return s.Config.GoGoPercent }},
		{domain.PhaseSlowGo, func(s *domain.Scenario) decimal.Decimal { return s.Config.SlowGoPercent }},
		{domain.PhaseNoGo, func(s *domain.Scenario) decimal.Decimal { return s.Config.NoGoPercent }},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			base := createTestScenario()
			transform := &SetPhasePercent{Phase: tt.phase, Percent: decimal.NewFromInt(55)}

			result, err := transform.Apply(base)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}

			if !tt.check(result).Equal(decimal.NewFromInt(55)) {
				t.Errorf("Expected %s percent 55, got %s", tt.phase, tt.check(result))
			}
		})
	}
}

func TestSetPhasePercent_InvalidPhase(t *testing.T) {
	base := createTestScenario()

	transform := &SetPhasePercent{Phase: domain.Phase(99), Percent: decimal.NewFromInt(55)}

	if err := transform.Validate(base); err == nil {
		t.Error("Expected validation error for unknown phase, got nil")
	}
}

func TestSetPhasePercent_NegativePercent(t *testing.T) {
	base := createTestScenario()

	transform := &SetPhasePercent{Phase: domain.PhaseGoGo, Percent: decimal.NewFromInt(-10)}

	if err := transform.Validate(base); err == nil {
		t.Error("Expected validation error for negative percent, got nil")
	}
}

func TestSetPhaseYears(t *testing.T) {
	gogo := 15
	slow := 8

	t.Run("gogo only", func(t *testing.T) {
		base := createTestScenario()
		transform := &SetPhaseYears{GoGoYears: &gogo}

		result, err := transform.Apply(base)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if result.Config.GoGoYears != 15 {
			t.Errorf("Expected GoGo years 15, got %d", result.Config.GoGoYears)
		}
		if result.Config.SlowGoYears != 6 {
			t.Errorf("Expected SlowGo years unchanged at 6, got %d", result.Config.SlowGoYears)
		}
	})

	t.Run("both phases", func(t *testing.T) {
		base := createTestScenario()
		transform := &SetPhaseYears{GoGoYears: &gogo, SlowGoYears: &slow}

		result, err := transform.Apply(base)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if result.Config.GoGoYears != 15 || result.Config.SlowGoYears != 8 {
			t.Errorf("Expected 15/8 phase years, got %d/%d", result.Config.GoGoYears, result.Config.SlowGoYears)
		}
	})
}

func TestSetPhaseYears_NoFields(t *testing.T) {
	base := createTestScenario()

	transform := &SetPhaseYears{}

	if err := transform.Validate(base); err == nil {
		t.Error("Expected validation error when no phase length is given, got nil")
	}
}

func TestSetPhaseYears_Negative(t *testing.T) {
	base := createTestScenario()
	negative := -2

	transform := &SetPhaseYears{GoGoYears: &negative}

	if err := transform.Validate(base); err == nil {
		t.Error("Expected validation error for negative years, got nil")
	}
}

func TestSetHorizon(t *testing.T) {
	base := createTestScenario()

	transform := &SetHorizon{Years: 25}

	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.HorizonYears != 25 {
		t.Errorf("Expected horizon 25, got %d", result.HorizonYears)
	}
	if base.HorizonYears != 30 {
		t.Error("Original scenario was modified")
	}
}

func TestSetHorizon_Negative(t *testing.T) {
	base := createTestScenario()

	transform := &SetHorizon{Years: -1}

	if err := transform.Validate(base); err == nil {
		t.Error("Expected validation error for negative horizon, got nil")
	}
}
