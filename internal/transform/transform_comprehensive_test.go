package transform

import (
	"testing"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry()

	assert.NotNil(t, registry, "Should create registry")
	assert.NotNil(t, registry.factories, "Should initialize factories map")
	assert.Greater(t, len(registry.factories), 0, "Should have built-in transforms registered")
}

func TestTransformRegistry_Register(t *testing.T) {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Register a test factory
	factory := func(params map[string]string) (ScenarioTransform, error) {
		return &SetHorizon{Years: 25}, nil
	}

	registry.Register("test_transform", factory)

	assert.Contains(t, registry.factories, "test_transform", "Should register transform")
	assert.NotNil(t, registry.factories["test_transform"], "Should store factory function")
}

func TestTransformRegistry_Create_UnknownTransform(t *testing.T) {
	registry := NewTransformRegistry()

	transform, err := registry.Create("unknown_transform", map[string]string{})

	assert.Error(t, err, "Should error for unknown transform")
	assert.Nil(t, transform, "Should return nil transform")
	assert.Contains(t, err.Error(), "unknown transform", "Should have specific error message")
}

func TestTransformRegistry_Create_ValidTransform(t *testing.T) {
	registry := NewTransformRegistry()

	params := map[string]string{
		"rate": "0.05",
	}

	transform, err := registry.Create("set_inflation", params)

	assert.NoError(t, err, "Should not error for valid transform")
	assert.NotNil(t, transform, "Should return transform")
	assert.Equal(t, "set_inflation", transform.Name(), "Should have correct name")
}

func TestTransformRegistry_List(t *testing.T) {
	registry := NewTransformRegistry()

	transforms := registry.List()

	assert.NotEmpty(t, transforms, "Should list transforms")
	assert.Contains(t, transforms, "set_inflation", "Should include set_inflation")
	assert.Contains(t, transforms, "scale_spending", "Should include scale_spending")
	assert.Contains(t, transforms, "set_survivor", "Should include set_survivor")
	assert.Contains(t, transforms, "remove_survivor", "Should include remove_survivor")
}

func TestApplyTransforms_NilTransforms(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, nil)

	assert.NoError(t, err, "Should not error for nil transforms")
	assert.NotNil(t, result, "Should return result")
	assert.Equal(t, base.Name, result.Name, "Should return deep copy of base")
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		desc     string
		spec     string
		wantName string
		wantErr  bool
	}{
		{
			desc:     "transform with single parameter",
			spec:     "set_inflation:rate=0.05",
			wantName: "set_inflation",
		},
		{
			desc:     "transform with multiple parameters",
			spec:     "set_phase_percent:phase=nogo,percent=60",
			wantName: "set_phase_percent",
		},
		{
			desc:     "spaces around parameters are trimmed",
			spec:     "set_survivor: offset=10 , percent=65",
			wantName: "set_survivor",
		},
		{
			desc:     "bare name for parameterless transform",
			spec:     "remove_survivor",
			wantName: "remove_survivor",
		},
		{
			desc:     "trailing colon with no parameters",
			spec:     "remove_survivor:",
			wantName: "remove_survivor",
		},
		{
			desc:    "missing value in parameter",
			spec:    "set_inflation:rate",
			wantErr: true,
		},
		{
			desc:    "unknown transform name",
			spec:    "set_tax_rate:rate=0.2",
			wantErr: true,
		},
		{
			desc:    "empty spec",
			spec:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			transform, err := registry.ParseTransformSpec(tt.spec)

			if tt.wantErr {
				assert.Error(t, err, "Should reject spec %q", tt.spec)
				return
			}

			require.NoError(t, err, "Should parse spec %q", tt.spec)
			assert.Equal(t, tt.wantName, transform.Name())
		})
	}
}

func TestTransformRegistry_FactoryParameterErrors(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		desc   string
		name   string
		params map[string]string
		errMsg string
	}{
		{
			desc:   "set_inflation missing rate",
			name:   "set_inflation",
			params: map[string]string{},
			errMsg: "requires 'rate' parameter",
		},
		{
			desc:   "set_inflation bad rate",
			name:   "set_inflation",
			params: map[string]string{"rate": "abc"},
			errMsg: "invalid rate value",
		},
		{
			desc:   "set_phase_percent bad phase",
			name:   "set_phase_percent",
			params: map[string]string{"phase": "mediumgo", "percent": "50"},
			errMsg: "invalid phase value",
		},
		{
			desc:   "set_phase_years needs one field",
			name:   "set_phase_years",
			params: map[string]string{},
			errMsg: "requires 'gogo' or 'slow' parameter",
		},
		{
			desc:   "set_survivor missing offset",
			name:   "set_survivor",
			params: map[string]string{"percent": "65"},
			errMsg: "requires 'offset' parameter",
		},
		{
			desc:   "set_survivor bad offset",
			name:   "set_survivor",
			params: map[string]string{"offset": "ten"},
			errMsg: "invalid offset value",
		},
		{
			desc:   "set_horizon bad years",
			name:   "set_horizon",
			params: map[string]string{"years": "3.5"},
			errMsg: "invalid years value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			transform, err := registry.Create(tt.name, tt.params)

			require.Error(t, err)
			assert.Nil(t, transform)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSetInflationRate_Validate(t *testing.T) {
	base := createTestScenario()

	valid := &SetInflationRate{Rate: decimal.NewFromFloat(0.05)}
	assert.NoError(t, valid.Validate(base), "Rate inside range should validate")

	tooHigh := &SetInflationRate{Rate: decimal.NewFromFloat(0.5)}
	assert.Error(t, tooHigh.Validate(base), "Rate above range should fail")

	tooLow := &SetInflationRate{Rate: decimal.NewFromFloat(-0.5)}
	assert.Error(t, tooLow.Validate(base), "Rate below range should fail")
}

func TestShiftInflationRate(t *testing.T) {
	base := createTestScenario() // base rate 0.03

	shift := &ShiftInflationRate{Delta: decimal.NewFromFloat(0.01)}

	require.NoError(t, shift.Validate(base))

	result, err := shift.Apply(base)
	require.NoError(t, err)
	assert.True(t, result.Config.InflationRate.Equal(decimal.NewFromFloat(0.04)),
		"Shift should add the delta to the base rate")

	// A shift that pushes the rate outside the allowed band fails validation
	bigShift := &ShiftInflationRate{Delta: decimal.NewFromFloat(0.19)}
	assert.Error(t, bigShift.Validate(base), "Shifted rate outside range should fail")
}

func TestSetSurvivorEvent(t *testing.T) {
	base := createTestScenario()
	percent := decimal.NewFromInt(65)

	transform := &SetSurvivorEvent{DeathYearOffset: 10, SurvivorPercent: &percent}

	require.NoError(t, transform.Validate(base))

	result, err := transform.Apply(base)
	require.NoError(t, err)

	require.NotNil(t, result.Survivor, "Should attach survivor event")
	assert.Equal(t, 10, result.Survivor.DeathYearOffset)
	assert.True(t, result.Config.SurvivorPercent.Equal(decimal.NewFromInt(65)),
		"Should override survivor percent")

	assert.Nil(t, base.Survivor, "Original scenario should be unchanged")
}

func TestSetSurvivorEvent_Validation(t *testing.T) {
	base := createTestScenario()

	negative := &SetSurvivorEvent{DeathYearOffset: -1}
	assert.Error(t, negative.Validate(base), "Negative offset should fail")

	over := decimal.NewFromInt(150)
	badPercent := &SetSurvivorEvent{DeathYearOffset: 5, SurvivorPercent: &over}
	assert.Error(t, badPercent.Validate(base), "Percent above 100 should fail")
}

func TestRemoveSurvivorEvent(t *testing.T) {
	base := createTestScenario()
	base.Survivor = &domain.SurvivorEvent{DeathYearOffset: 10}

	transform := &RemoveSurvivorEvent{}

	result, err := transform.Apply(base)
	require.NoError(t, err)

	assert.Nil(t, result.Survivor, "Should strip the survivor event")
	assert.NotNil(t, base.Survivor, "Original scenario should keep its event")
}
