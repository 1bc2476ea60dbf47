package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retireplan/spendgo/internal/domain"
)

// Both implementations satisfy the interface.
var (
	_ ScheduleStore = (*MemoryStore)(nil)
	_ ScheduleStore = (*RedisStore)(nil)
)

func storedSchedule() *domain.SpendingSchedule {
	return &domain.SpendingSchedule{
		ScenarioName: "base",
		Config: domain.SpendingConfig{
			TargetSpend:     decimal.NewFromInt(120000),
			GoGoPercent:     decimal.NewFromInt(100),
			SlowGoPercent:   decimal.NewFromInt(80),
			NoGoPercent:     decimal.NewFromInt(70),
			GoGoYears:       1,
			SlowGoYears:     1,
			SurvivorPercent: decimal.NewFromInt(70),
			InflationRate:   decimal.NewFromFloat(0.03),
			StartYear:       2025,
		},
		HorizonYears: 2,
		Years: []domain.YearlySpendingResult{
			{
				CalendarYear:    2025,
				YearOffset:      0,
				Phase:           domain.PhaseGoGo,
				RealPhaseAmount: decimal.NewFromInt(120000),
				NominalAmount:   decimal.NewFromInt(120000),
				FinalAmount:     decimal.NewFromInt(120000),
			},
			{
				CalendarYear:     2026,
				YearOffset:       1,
				Phase:            domain.PhaseSlowGo,
				RealPhaseAmount:  decimal.NewFromInt(96000),
				NominalAmount:    decimal.RequireFromString("98880"),
				SurvivorAdjusted: true,
				FinalAmount:      decimal.RequireFromString("69216"),
			},
		},
	}
}

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	original := storedSchedule()
	require.NoError(t, s.Save(ctx, "base", original), "Should save")

	loaded, err := s.Load(ctx, "base")
	require.NoError(t, err, "Should load what was saved")

	assert.Equal(t, "base", loaded.ScenarioName, "Should keep the scenario name")
	assert.Equal(t, 2, loaded.HorizonYears, "Should keep the horizon")
	require.Len(t, loaded.Years, 2, "Should keep every year")
	assert.True(t, loaded.Years[1].FinalAmount.Equal(decimal.RequireFromString("69216")),
		"Should keep final amounts exactly")
	assert.Equal(t, domain.PhaseSlowGo, loaded.Years[1].Phase, "Should keep the phase")
	assert.True(t, loaded.Years[1].SurvivorAdjusted, "Should keep the survivor flag")
	assert.True(t, loaded.Config.InflationRate.Equal(decimal.NewFromFloat(0.03)),
		"Should keep the config rates")
}

func TestMemoryStore_LoadReturnsDetachedCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, "base", storedSchedule()))

	first, err := s.Load(ctx, "base")
	require.NoError(t, err)
	first.Years[0].FinalAmount = decimal.NewFromInt(1)
	first.ScenarioName = "mutated"

	second, err := s.Load(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, "base", second.ScenarioName, "Mutating a loaded copy should not touch the store")
	assert.True(t, second.Years[0].FinalAmount.Equal(decimal.NewFromInt(120000)),
		"Stored amounts should be unaffected")
}

func TestMemoryStore_LoadMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Load(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound, "Should return the sentinel")
	assert.Contains(t, err.Error(), "missing", "Should name the schedule")
}

func TestMemoryStore_SaveEmptyName(t *testing.T) {
	s := NewMemoryStore()

	err := s.Save(context.Background(), "", storedSchedule())

	assert.Error(t, err, "Should reject an empty name")
}

func TestMemoryStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := storedSchedule()
	require.NoError(t, s.Save(ctx, "base", first))

	second := storedSchedule()
	second.HorizonYears = 30
	require.NoError(t, s.Save(ctx, "base", second))

	loaded, err := s.Load(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.HorizonYears, "Should keep the latest value")

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, names, "Should hold a single entry")
}

func TestMemoryStore_ListSorted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, s.Save(ctx, name, storedSchedule()))
	}

	names, err := s.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names, "Should sort names")
}

func TestMemoryStore_ListEmpty(t *testing.T) {
	names, err := NewMemoryStore().List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, names, "Should return no names for an empty store")
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, "base", storedSchedule()))

	require.NoError(t, s.Delete(ctx, "base"), "Should delete an existing schedule")

	_, err := s.Load(ctx, "base")
	assert.ErrorIs(t, err, ErrNotFound, "Should be gone after delete")

	err = s.Delete(ctx, "base")
	assert.ErrorIs(t, err, ErrNotFound, "Deleting again should report not found")
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Save(ctx, "base", storedSchedule()), "Save should honor cancellation")
	_, err := s.Load(ctx, "base")
	assert.Error(t, err, "Load should honor cancellation")
	_, err = s.List(ctx)
	assert.Error(t, err, "List should honor cancellation")
	assert.Error(t, s.Delete(ctx, "base"), "Delete should honor cancellation")
}

func TestRedisStore_KeyNamespacing(t *testing.T) {
	s := NewRedisStore("localhost:6379", time.Hour)

	assert.Equal(t, "spendgo:schedule:base", s.key("base"), "Should prefix keys")
	assert.Equal(t, "spendgo:schedule:", s.keyPrefix, "Should use the shared prefix")
}
