package calculation

import (
	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SurvivorPolicy applies the household spending reduction after a survivor
// event. The multiplier is a step function: 1.0 strictly before the event
// offset, survivorPercent/100 at and after it, with no reversion.
type SurvivorPolicy struct{}

// NewSurvivorPolicy creates a new survivor policy
func NewSurvivorPolicy() *SurvivorPolicy {
	return &SurvivorPolicy{}
}

// MultiplierFor returns the spending multiplier for the given offset. A
// nil event means no adjustment ever. A survivor percent of zero is valid
// and zeroes out every adjusted year.
func (sp *SurvivorPolicy) MultiplierFor(yearOffset int, event *domain.SurvivorEvent, survivorPercent decimal.Decimal) decimal.Decimal {
	if !sp.Applies(yearOffset, event) {
		return one
	}
	return survivorPercent.Div(hundred)
}

// Applies reports whether the event adjusts the given offset
func (sp *SurvivorPolicy) Applies(yearOffset int, event *domain.SurvivorEvent) bool {
	return event != nil && yearOffset >= event.DeathYearOffset
}
