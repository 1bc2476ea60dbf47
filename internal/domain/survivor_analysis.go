package domain

import (
	"github.com/shopspring/decimal"
)

// SurvivorImpactAnalysis quantifies how a survivor event changes a spending
// plan: baseline projection versus the same plan with the event applied.
type SurvivorImpactAnalysis struct {
	ScenarioName      string          `json:"scenarioName"`
	DeathYearOffset   int             `json:"deathYearOffset"`
	DeathCalendarYear int             `json:"deathCalendarYear"`
	SurvivorPercent   decimal.Decimal `json:"survivorPercent"`

	// Last full-spending year before the event
	PreEventAnalysis SurvivorYearAnalysis `json:"preEventAnalysis"`

	// First adjusted year
	PostEventAnalysis SurvivorYearAnalysis `json:"postEventAnalysis"`

	// Adjusted years starting at the event, bounded by the configured
	// analysis window
	AdjustedYears []SurvivorYearAnalysis `json:"adjustedYears,omitempty"`

	// Lifetime comparison
	BaselineTotal     decimal.Decimal `json:"baselineTotal"`
	AdjustedTotal     decimal.Decimal `json:"adjustedTotal"`
	LifetimeReduction decimal.Decimal `json:"lifetimeReduction"`

	// Assessment
	Assessment SurvivorImpactAssessment `json:"assessment"`

	// Recommendations
	Recommendations []string `json:"recommendations"`
}

// SurvivorYearAnalysis represents the spending picture for a single year
// around the event
type SurvivorYearAnalysis struct {
	Year            int             `json:"year"`
	YearOffset      int             `json:"yearOffset"`
	Phase           Phase           `json:"phase"`
	AnnualSpending  decimal.Decimal `json:"annualSpending"`
	MonthlySpending decimal.Decimal `json:"monthlySpending"`
}

// SurvivorImpactAssessment grades the severity of the spending reduction
type SurvivorImpactAssessment struct {
	AnnualReduction  decimal.Decimal `json:"annualReduction"`
	ReductionPercent decimal.Decimal `json:"reductionPercent"` // 0..100
	FirstReducedYear int             `json:"firstReducedYear"`
	YearsAffected    int             `json:"yearsAffected"`

	SeverityScore string `json:"severityScore"` // "MINIMAL", "MODERATE", "SIGNIFICANT", "SEVERE"
}

// SurvivorAnalysisConfig represents configuration for survivor impact runs
type SurvivorAnalysisConfig struct {
	DeathYearOffset int              `yaml:"death_year_offset" json:"deathYearOffset"`
	SurvivorPercent *decimal.Decimal `yaml:"survivor_percent,omitempty" json:"survivorPercent,omitempty"`
	AnalysisYears   int              `yaml:"analysis_years" json:"analysisYears"`
}

// DefaultSurvivorAnalysisConfig returns default configuration for survivor analysis
func DefaultSurvivorAnalysisConfig() SurvivorAnalysisConfig {
	return SurvivorAnalysisConfig{
		DeathYearOffset: 10, // event a decade into retirement
		AnalysisYears:   20, // project 20 years unless the plan says otherwise
	}
}

// CalculateSurvivorSeverity grades the lifetime reduction percentage
func CalculateSurvivorSeverity(reductionPercent decimal.Decimal) string {
	if reductionPercent.LessThanOrEqual(decimal.NewFromFloat(5)) {
		return "MINIMAL"
	} else if reductionPercent.LessThanOrEqual(decimal.NewFromFloat(15)) {
		return "MODERATE"
	} else if reductionPercent.LessThanOrEqual(decimal.NewFromFloat(30)) {
		return "SIGNIFICANT"
	} else {
		return "SEVERE"
	}
}

// GenerateSurvivorRecommendations generates recommendations based on the
// impact assessment
func GenerateSurvivorRecommendations(assessment SurvivorImpactAssessment) []string {
	var recommendations []string

	if assessment.ReductionPercent.GreaterThan(decimal.NewFromFloat(10)) {
		recommendations = append(recommendations, "Lifetime spending drops "+assessment.ReductionPercent.StringFixed(1)+"% after the event")
	}

	if assessment.AnnualReduction.GreaterThan(decimal.NewFromFloat(20000)) {
		recommendations = append(recommendations, "Annual spending falls by $"+assessment.AnnualReduction.StringFixed(0)+" in the first adjusted year")
	}

	switch assessment.SeverityScore {
	case "SIGNIFICANT", "SEVERE":
		recommendations = append(recommendations, "Consider raising the survivor percentage if fixed costs dominate the budget")
		recommendations = append(recommendations, "Review survivor benefit elections and life insurance coverage")
	case "MODERATE":
		recommendations = append(recommendations, "Verify the survivor percentage against expected single-person expenses")
	}

	return recommendations
}
