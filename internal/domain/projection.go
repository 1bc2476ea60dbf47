package domain

import (
	"github.com/shopspring/decimal"
)

// YearlySpendingResult is one row of a projection: the spending computed
// for a single calendar year.
type YearlySpendingResult struct {
	CalendarYear     int             `json:"calendarYear"`
	YearOffset       int             `json:"yearOffset"`
	Phase            Phase           `json:"phase"`
	RealPhaseAmount  decimal.Decimal `json:"realPhaseAmount"`
	NominalAmount    decimal.Decimal `json:"nominalAmount"`
	SurvivorAdjusted bool            `json:"survivorAdjusted"`
	FinalAmount      decimal.Decimal `json:"finalAmount"`
}

// MonthlyFinalAmount returns the final amount spread across twelve months
func (y YearlySpendingResult) MonthlyFinalAmount() decimal.Decimal {
	return y.FinalAmount.Div(decimal.NewFromInt(12)).Round(2)
}

// SpendingSchedule is the ordered year-by-year spending projection for one
// scenario. Years are sorted by ascending offset; offset 0 is the first
// retirement year.
type SpendingSchedule struct {
	ScenarioName string                 `json:"scenarioName"`
	Config       SpendingConfig         `json:"config"`
	HorizonYears int                    `json:"horizonYears"`
	Survivor     *SurvivorEvent         `json:"survivor,omitempty"`
	Years        []YearlySpendingResult `json:"years"`
}

// TotalSpending sums the final amounts across every projected year
func (s *SpendingSchedule) TotalSpending() decimal.Decimal {
	total := decimal.Zero
	for _, yr := range s.Years {
		total = total.Add(yr.FinalAmount)
	}
	return total
}

// FirstYearSpending returns the final amount of the first projected year,
// or zero for an empty schedule
func (s *SpendingSchedule) FirstYearSpending() decimal.Decimal {
	if len(s.Years) == 0 {
		return decimal.Zero
	}
	return s.Years[0].FinalAmount
}

// FinalYearSpending returns the final amount of the last projected year,
// or zero for an empty schedule
func (s *SpendingSchedule) FinalYearSpending() decimal.Decimal {
	if len(s.Years) == 0 {
		return decimal.Zero
	}
	return s.Years[len(s.Years)-1].FinalAmount
}

// PhaseTotal sums the final amounts of the years spent in the given phase
func (s *SpendingSchedule) PhaseTotal(p Phase) decimal.Decimal {
	total := decimal.Zero
	for _, yr := range s.Years {
		if yr.Phase == p {
			total = total.Add(yr.FinalAmount)
		}
	}
	return total
}

// PhaseYearCount returns how many projected years fall in the given phase
func (s *SpendingSchedule) PhaseYearCount(p Phase) int {
	count := 0
	for _, yr := range s.Years {
		if yr.Phase == p {
			count++
		}
	}
	return count
}

// SurvivorYearCount returns how many projected years carry the survivor
// adjustment
func (s *SpendingSchedule) SurvivorYearCount() int {
	count := 0
	for _, yr := range s.Years {
		if yr.SurvivorAdjusted {
			count++
		}
	}
	return count
}

// YearAt returns the row for the given projection offset
func (s *SpendingSchedule) YearAt(offset int) (YearlySpendingResult, bool) {
	for _, yr := range s.Years {
		if yr.YearOffset == offset {
			return yr, true
		}
	}
	return YearlySpendingResult{}, false
}

// PeakYear returns the row with the highest final amount. The second
// return is false for an empty schedule.
func (s *SpendingSchedule) PeakYear() (YearlySpendingResult, bool) {
	if len(s.Years) == 0 {
		return YearlySpendingResult{}, false
	}
	peak := s.Years[0]
	for _, yr := range s.Years[1:] {
		if yr.FinalAmount.GreaterThan(peak.FinalAmount) {
			peak = yr
		}
	}
	return peak, true
}

// Summarize computes the headline numbers of the schedule
func (s *SpendingSchedule) Summarize() ScheduleSummary {
	summary := ScheduleSummary{
		ScenarioName:      s.ScenarioName,
		FirstYearSpending: s.FirstYearSpending(),
		FinalYearSpending: s.FinalYearSpending(),
		TotalSpending:     s.TotalSpending(),
		GoGoTotal:         s.PhaseTotal(PhaseGoGo),
		SlowGoTotal:       s.PhaseTotal(PhaseSlowGo),
		NoGoTotal:         s.PhaseTotal(PhaseNoGo),
		SurvivorYears:     s.SurvivorYearCount(),
	}
	if peak, ok := s.PeakYear(); ok {
		summary.PeakYear = peak.CalendarYear
		summary.PeakAmount = peak.FinalAmount
	}
	return summary
}

// ScheduleSummary captures the headline numbers of a schedule for
// comparison tables and reports.
type ScheduleSummary struct {
	ScenarioName      string          `json:"scenarioName"`
	FirstYearSpending decimal.Decimal `json:"firstYearSpending"`
	FinalYearSpending decimal.Decimal `json:"finalYearSpending"`
	TotalSpending     decimal.Decimal `json:"totalSpending"`
	GoGoTotal         decimal.Decimal `json:"gogoTotal"`
	SlowGoTotal       decimal.Decimal `json:"slowgoTotal"`
	NoGoTotal         decimal.Decimal `json:"nogoTotal"`
	PeakYear          int             `json:"peakYear"`
	PeakAmount        decimal.Decimal `json:"peakAmount"`
	SurvivorYears     int             `json:"survivorYears"`
}

// ScheduleSet bundles the schedules produced by one engine invocation,
// base scenario first.
type ScheduleSet struct {
	BaseScenarioName string             `json:"baseScenarioName"`
	Schedules        []SpendingSchedule `json:"schedules"`
}

// Base returns the schedule matching BaseScenarioName, falling back to the
// first schedule. Returns nil for an empty set.
func (set *ScheduleSet) Base() *SpendingSchedule {
	if sched := set.Find(set.BaseScenarioName); sched != nil {
		return sched
	}
	if len(set.Schedules) == 0 {
		return nil
	}
	return &set.Schedules[0]
}

// Find returns the schedule with the given scenario name, or nil
func (set *ScheduleSet) Find(name string) *SpendingSchedule {
	for i := range set.Schedules {
		if set.Schedules[i].ScenarioName == name {
			return &set.Schedules[i]
		}
	}
	return nil
}

// Names lists the scenario names in set order
func (set *ScheduleSet) Names() []string {
	names := make([]string, 0, len(set.Schedules))
	for i := range set.Schedules {
		names = append(names, set.Schedules[i].ScenarioName)
	}
	return names
}
