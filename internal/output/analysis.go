package output

import (
	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/domain"
)

// Recommendation names the schedule a comparison favors and why. The delta
// is the lifetime outlay change relative to the base schedule; negative
// means the recommended plan spends less.
type Recommendation struct {
	ScenarioName  string          `json:"scenarioName"`
	LifetimeDelta decimal.Decimal `json:"lifetimeDelta"`
	Reason        string          `json:"reason"`
}

// AnalyzeSchedules picks the schedule with the lowest lifetime outlay. Ties
// keep the earlier schedule, so a lone schedule or an all-equal set
// recommends the base plan with a zero delta.
func AnalyzeSchedules(set *domain.ScheduleSet) Recommendation {
	base := set.Base()
	if base == nil {
		return Recommendation{}
	}

	baseTotal := base.TotalSpending()
	best := base
	bestTotal := baseTotal
	for i := range set.Schedules {
		total := set.Schedules[i].TotalSpending()
		if total.LessThan(bestTotal) {
			best = &set.Schedules[i]
			bestTotal = total
		}
	}

	rec := Recommendation{
		ScenarioName:  best.ScenarioName,
		LifetimeDelta: bestTotal.Sub(baseTotal),
	}
	if best == base {
		rec.Reason = "matches the base plan outlay"
	} else {
		rec.Reason = "lowest lifetime outlay"
	}
	return rec
}
