package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/domain"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description,omitempty"`
	Schedule     *domain.SpendingSchedule `json:"-"`
	Summary      *domain.ScheduleSummary

	// Key Metrics
	FirstYearSpending decimal.Decimal `json:"firstYearSpending"`
	FinalYearSpending decimal.Decimal `json:"finalYearSpending"`
	TotalSpending     decimal.Decimal `json:"totalSpending"`
	GoGoTotal         decimal.Decimal `json:"gogoTotal"`
	SlowGoTotal       decimal.Decimal `json:"slowgoTotal"`
	NoGoTotal         decimal.Decimal `json:"nogoTotal"`
	PeakYear          int             `json:"peakYear"`
	PeakAmount        decimal.Decimal `json:"peakAmount"`
	SurvivorYears     int             `json:"survivorYears"`

	// Comparison to Base
	TotalDiffFromBase     decimal.Decimal `json:"totalDiffFromBase"`
	TotalPctFromBase      decimal.Decimal `json:"totalPctFromBase"`
	FirstYearDiffFromBase decimal.Decimal `json:"firstYearDiffFromBase"`
	FinalYearDiffFromBase decimal.Decimal `json:"finalYearDiffFromBase"`

	// Plan specifics (extracted from the schedule for display)
	StartYear     int    `json:"startYear,omitempty"`
	HorizonYears  int    `json:"horizonYears,omitempty"`
	InflationRate string `json:"inflationRate,omitempty"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	PlanPath           string             `json:"planPath"`
}

// ToScheduleSet converts a ComparisonSet to a domain.ScheduleSet so the
// report formatters can render the full year-by-year projections
func (cs *ComparisonSet) ToScheduleSet() *domain.ScheduleSet {
	set := &domain.ScheduleSet{
		BaseScenarioName: cs.BaseScenarioName,
	}

	// Add base scenario
	if cs.BaseResult != nil && cs.BaseResult.Schedule != nil {
		set.Schedules = append(set.Schedules, *cs.BaseResult.Schedule)
	}

	// Add alternative scenarios
	for _, result := range cs.AlternativeResults {
		if result.Schedule != nil {
			set.Schedules = append(set.Schedules, *result.Schedule)
		}
	}

	return set
}

// MetricsCalculator extracts key metrics from spending schedules
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a spending schedule
func (mc *MetricsCalculator) CalculateMetrics(schedule *domain.SpendingSchedule) ComparisonResult {
	summary := schedule.Summarize()

	return ComparisonResult{
		ScenarioName:      schedule.ScenarioName,
		Schedule:          schedule,
		Summary:           &summary,
		FirstYearSpending: summary.FirstYearSpending,
		FinalYearSpending: summary.FinalYearSpending,
		TotalSpending:     summary.TotalSpending,
		GoGoTotal:         summary.GoGoTotal,
		SlowGoTotal:       summary.SlowGoTotal,
		NoGoTotal:         summary.NoGoTotal,
		PeakYear:          summary.PeakYear,
		PeakAmount:        summary.PeakAmount,
		SurvivorYears:     summary.SurvivorYears,
		StartYear:         schedule.Config.StartYear,
		HorizonYears:      schedule.HorizonYears,
		InflationRate:     schedule.Config.InflationRate.String(),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TotalDiffFromBase = scenario.TotalSpending.Sub(base.TotalSpending)

	if !base.TotalSpending.IsZero() {
		scenario.TotalPctFromBase = scenario.TotalDiffFromBase.
			Div(base.TotalSpending).
			Mul(decimal.NewFromInt(100))
	}

	scenario.FirstYearDiffFromBase = scenario.FirstYearSpending.Sub(base.FirstYearSpending)
	scenario.FinalYearDiffFromBase = scenario.FinalYearSpending.Sub(base.FinalYearSpending)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find cheapest plan by lifetime outlay
	lowestOutlay := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalSpending.LessThan(lowestOutlay.TotalSpending) {
			lowestOutlay = alt
		}
	}

	if lowestOutlay != compSet.BaseResult {
		savings := compSet.BaseResult.TotalSpending.Sub(lowestOutlay.TotalSpending)
		recommendations = append(recommendations,
			"Lowest Outlay: "+lowestOutlay.ScenarioName+" requires $"+savings.StringFixed(0)+
				" less lifetime spending than the base plan")
	}

	// Find leanest first year
	leanestStart := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FirstYearSpending.LessThan(leanestStart.FirstYearSpending) {
			leanestStart = alt
		}
	}

	if leanestStart != compSet.BaseResult {
		startSavings := compSet.BaseResult.FirstYearSpending.Sub(leanestStart.FirstYearSpending)
		recommendations = append(recommendations,
			"Leanest Start: "+leanestStart.ScenarioName+" begins $"+startSavings.StringFixed(0)+
				" per year below the base plan")
	}

	// Flag the highest single-year demand
	highestPeak := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PeakAmount.GreaterThan(highestPeak.PeakAmount) {
			highestPeak = alt
		}
	}

	if highestPeak != compSet.BaseResult {
		recommendations = append(recommendations,
			"Highest Peak: "+highestPeak.ScenarioName+" tops out at $"+highestPeak.PeakAmount.StringFixed(0)+
				fmt.Sprintf(" in %d", highestPeak.PeakYear))
	}

	return recommendations
}
