package calculation

import (
	"context"
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SurvivorAnalyzer quantifies how a survivor event reshapes a spending plan
type SurvivorAnalyzer struct {
	calcEngine *CalculationEngine
}

// NewSurvivorAnalyzer creates a new survivor impact analyzer
func NewSurvivorAnalyzer(calcEngine *CalculationEngine) *SurvivorAnalyzer {
	return &SurvivorAnalyzer{
		calcEngine: calcEngine,
	}
}

// AnalyzeSurvivorImpact projects a scenario twice, with and without the
// survivor event, and grades the resulting spending reduction
func (sa *SurvivorAnalyzer) AnalyzeSurvivorImpact(
	ctx context.Context,
	scenario *domain.Scenario,
	analysisConfig domain.SurvivorAnalysisConfig,
) (*domain.SurvivorImpactAnalysis, error) {

	if analysisConfig.DeathYearOffset < 0 {
		return nil, fmt.Errorf("%w: death year offset cannot be negative, got %d",
			domain.ErrInvalidInput, analysisConfig.DeathYearOffset)
	}
	if analysisConfig.DeathYearOffset >= scenario.HorizonYears {
		return nil, fmt.Errorf("death year offset %d falls outside the %d-year horizon",
			analysisConfig.DeathYearOffset, scenario.HorizonYears)
	}

	survivorPercent := scenario.Config.SurvivorPercent
	if analysisConfig.SurvivorPercent != nil {
		survivorPercent = *analysisConfig.SurvivorPercent
	}

	// Baseline run without the event
	baselineScenario := scenario.DeepCopy()
	baselineScenario.Survivor = nil
	baselineSchedule, err := sa.calcEngine.RunScenario(ctx, baselineScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to run baseline scenario: %w", err)
	}

	// Adjusted run with the event applied
	adjustedScenario := scenario.DeepCopy()
	adjustedScenario.Config.SurvivorPercent = survivorPercent
	adjustedScenario.Survivor = &domain.SurvivorEvent{DeathYearOffset: analysisConfig.DeathYearOffset}
	adjustedSchedule, err := sa.calcEngine.RunScenario(ctx, adjustedScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to run survivor scenario: %w", err)
	}

	// Last unadjusted year before the event. For an event in year one the
	// baseline year stands in.
	preOffset := analysisConfig.DeathYearOffset - 1
	preSchedule := adjustedSchedule
	if preOffset < 0 {
		preOffset = 0
		preSchedule = baselineSchedule
	}
	preEvent, err := sa.analyzeYear(preSchedule, preOffset)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze pre-event year: %w", err)
	}

	// First adjusted year
	postEvent, err := sa.analyzeYear(adjustedSchedule, analysisConfig.DeathYearOffset)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze post-event year: %w", err)
	}

	adjustedYears := sa.analyzeAdjustedWindow(adjustedSchedule, analysisConfig.DeathYearOffset, analysisConfig.AnalysisYears)

	assessment := sa.calculateImpactAssessment(baselineSchedule, adjustedSchedule, analysisConfig.DeathYearOffset)
	recommendations := domain.GenerateSurvivorRecommendations(assessment)

	baselineTotal := baselineSchedule.TotalSpending()
	adjustedTotal := adjustedSchedule.TotalSpending()

	return &domain.SurvivorImpactAnalysis{
		ScenarioName:      scenario.Name,
		DeathYearOffset:   analysisConfig.DeathYearOffset,
		DeathCalendarYear: scenario.Config.StartYear + analysisConfig.DeathYearOffset,
		SurvivorPercent:   survivorPercent,
		PreEventAnalysis:  preEvent,
		PostEventAnalysis: postEvent,
		AdjustedYears:     adjustedYears,
		BaselineTotal:     baselineTotal,
		AdjustedTotal:     adjustedTotal,
		LifetimeReduction: baselineTotal.Sub(adjustedTotal),
		Assessment:        assessment,
		Recommendations:   recommendations,
	}, nil
}

// analyzeAdjustedWindow collects the adjusted years starting at the event,
// up to analysisYears rows. A non-positive window means every remaining year.
func (sa *SurvivorAnalyzer) analyzeAdjustedWindow(schedule *domain.SpendingSchedule, deathYearOffset, analysisYears int) []domain.SurvivorYearAnalysis {
	end := len(schedule.Years)
	if analysisYears > 0 && deathYearOffset+analysisYears < end {
		end = deathYearOffset + analysisYears
	}

	window := make([]domain.SurvivorYearAnalysis, 0, end-deathYearOffset)
	for offset := deathYearOffset; offset < end; offset++ {
		yr, err := sa.analyzeYear(schedule, offset)
		if err != nil {
			break
		}
		window = append(window, yr)
	}
	return window
}

// analyzeYear captures the spending picture for one projected year
func (sa *SurvivorAnalyzer) analyzeYear(schedule *domain.SpendingSchedule, yearOffset int) (domain.SurvivorYearAnalysis, error) {
	year, ok := schedule.YearAt(yearOffset)
	if !ok {
		return domain.SurvivorYearAnalysis{}, fmt.Errorf("year offset %d not found in projection", yearOffset)
	}

	return domain.SurvivorYearAnalysis{
		Year:            year.CalendarYear,
		YearOffset:      year.YearOffset,
		Phase:           year.Phase,
		AnnualSpending:  year.FinalAmount,
		MonthlySpending: year.MonthlyFinalAmount(),
	}, nil
}

// calculateImpactAssessment compares the two runs year by year
func (sa *SurvivorAnalyzer) calculateImpactAssessment(
	baseline, adjusted *domain.SpendingSchedule,
	deathYearOffset int,
) domain.SurvivorImpactAssessment {

	annualReduction := decimal.Zero
	if baseYear, ok := baseline.YearAt(deathYearOffset); ok {
		if adjYear, ok := adjusted.YearAt(deathYearOffset); ok {
			annualReduction = baseYear.FinalAmount.Sub(adjYear.FinalAmount)
		}
	}

	firstReducedYear := 0
	yearsAffected := 0
	for i := range baseline.Years {
		if i >= len(adjusted.Years) {
			break
		}
		if adjusted.Years[i].FinalAmount.LessThan(baseline.Years[i].FinalAmount) {
			if firstReducedYear == 0 {
				firstReducedYear = baseline.Years[i].CalendarYear
			}
			yearsAffected++
		}
	}

	baselineTotal := baseline.TotalSpending()
	reductionPercent := decimal.Zero
	if !baselineTotal.IsZero() {
		reductionPercent = baselineTotal.Sub(adjusted.TotalSpending()).Div(baselineTotal).Mul(hundred)
	}

	return domain.SurvivorImpactAssessment{
		AnnualReduction:  annualReduction,
		ReductionPercent: reductionPercent,
		FirstReducedYear: firstReducedYear,
		YearsAffected:    yearsAffected,
		SeverityScore:    domain.CalculateSurvivorSeverity(reductionPercent),
	}
}
