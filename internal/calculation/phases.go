package calculation

import (
	"github.com/retireplan/spendgo/internal/domain"
)

// PhaseSchedule maps projection offsets onto the three retirement phases
// using half-open intervals: GoGo covers [0, gogoYears), SlowGo covers
// [gogoYears, gogoYears+slowYears), NoGo runs open-ended after that.
// Zero-length phases collapse and their successor owns the boundary offset.
type PhaseSchedule struct{}

// NewPhaseSchedule creates a new phase schedule
func NewPhaseSchedule() *PhaseSchedule {
	return &PhaseSchedule{}
}

// PhaseFor returns the phase owning the given offset. Callers validate
// that the offset and year counts are non-negative.
func (ps *PhaseSchedule) PhaseFor(yearOffset, gogoYears, slowYears int) domain.Phase {
	if yearOffset < gogoYears {
		return domain.PhaseGoGo
	}
	if yearOffset < gogoYears+slowYears {
		return domain.PhaseSlowGo
	}
	return domain.PhaseNoGo
}

// Boundaries returns the first offsets of the SlowGo and NoGo phases
func (ps *PhaseSchedule) Boundaries(gogoYears, slowYears int) (slowStart, nogoStart int) {
	return gogoYears, gogoYears + slowYears
}
