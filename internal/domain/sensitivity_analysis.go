package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a plan input to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "rate", "dollars", "years", "percent"
	Description string          `yaml:"description" json:"description"`
}

// ParameterSensitivityAnalysis represents a complete parameter sensitivity analysis
type ParameterSensitivityAnalysis struct {
	BaseScenarioName string                 `json:"baseScenarioName"`
	Parameters       []SensitivityParameter `json:"parameters"`
	Results          []SensitivityResult    `json:"results"`
	Summary          SensitivitySummary     `json:"summary"`
	AnalysisType     string                 `json:"analysisType"` // "single", "multi", "matrix"
}

// SensitivityResult represents the outcome of projecting with one swept value
type SensitivityResult struct {
	ParameterValues map[string]decimal.Decimal `json:"parameterValues"`
	ScenarioName    string                     `json:"scenarioName"`
	Summary         ScheduleSummary            `json:"summary"`
	KeyMetrics      SensitivityMetrics         `json:"keyMetrics"`
}

// SensitivityMetrics represents key metrics for sensitivity analysis
type SensitivityMetrics struct {
	FirstYearSpending  decimal.Decimal `json:"firstYearSpending"`
	FinalYearSpending  decimal.Decimal `json:"finalYearSpending"`
	TotalSpending      decimal.Decimal `json:"totalSpending"`
	TotalSpendingDelta decimal.Decimal `json:"totalSpendingDelta"`
	TotalSpendingPct   decimal.Decimal `json:"totalSpendingPct"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
}

// SensitivityMatrix represents a 2D parameter sweep
type SensitivityMatrix struct {
	Parameter1    SensitivityParameter     `json:"parameter1"`
	Parameter2    SensitivityParameter     `json:"parameter2"`
	MatrixResults [][]SensitivityResult    `json:"matrixResults"`
	Summary       SensitivityMatrixSummary `json:"summary"`
}

// SensitivityMatrixSummary provides matrix analysis summary
type SensitivityMatrixSummary struct {
	MostSensitiveCombination string          `json:"mostSensitiveCombination"`
	SpreadPct                decimal.Decimal `json:"spreadPct"`
	Recommendations          []string        `json:"recommendations"`
	RiskLevel                string          `json:"riskLevel"`
}

// SensitivityConfig represents configuration for sensitivity analysis
type SensitivityConfig struct {
	BaseScenarioName string                 `yaml:"base_scenario" json:"baseScenario"`
	Parameters       []SensitivityParameter `yaml:"parameters" json:"parameters"`
	OutputFormat     string                 `yaml:"output_format" json:"outputFormat"`
	AnalysisType     string                 `yaml:"analysis_type" json:"analysisType"`
}

// Common sensitivity parameters
var (
	InflationRateParam = SensitivityParameter{
		Name:        "inflation_rate",
		MinValue:    decimal.NewFromFloat(0.01),
		MaxValue:    decimal.NewFromFloat(0.05),
		Steps:       5,
		BaseValue:   decimal.NewFromFloat(0.03),
		Unit:        "rate",
		Description: "Annual inflation applied when converting today's dollars to nominal",
	}

	TargetSpendParam = SensitivityParameter{
		Name:        "target_spend",
		MinValue:    decimal.NewFromInt(80000),
		MaxValue:    decimal.NewFromInt(160000),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(120000),
		Unit:        "dollars",
		Description: "Annual spending target in today's dollars",
	}

	GoGoYearsParam = SensitivityParameter{
		Name:        "gogo_years",
		MinValue:    decimal.NewFromInt(5),
		MaxValue:    decimal.NewFromInt(15),
		Steps:       6,
		BaseValue:   decimal.NewFromInt(10),
		Unit:        "years",
		Description: "Length of the GoGo phase",
	}

	SlowGoYearsParam = SensitivityParameter{
		Name:        "slow_years",
		MinValue:    decimal.NewFromInt(3),
		MaxValue:    decimal.NewFromInt(10),
		Steps:       8,
		BaseValue:   decimal.NewFromInt(6),
		Unit:        "years",
		Description: "Length of the SlowGo phase",
	}

	SurvivorPercentParam = SensitivityParameter{
		Name:        "survivor_percent",
		MinValue:    decimal.NewFromInt(50),
		MaxValue:    decimal.NewFromInt(100),
		Steps:       6,
		BaseValue:   decimal.NewFromInt(70),
		Unit:        "percent",
		Description: "Household spending retained after a survivor event",
	}
)

// GetCommonParameters returns a list of common sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		InflationRateParam,
		TargetSpendParam,
		GoGoYearsParam,
		SlowGoYearsParam,
		SurvivorPercentParam,
	}
}

// SensitivityScore measures how strongly the total outlay reacted to the sweep
func (sm *SensitivityMetrics) SensitivityScore() decimal.Decimal {
	return sm.TotalSpendingPct.Abs()
}

// DetermineRiskLevel determines the risk level based on sensitivity scores
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	maxScore := decimal.Zero
	for _, score := range ss.SensitivityScores {
		if score.GreaterThan(maxScore) {
			maxScore = score
		}
	}

	if maxScore.LessThan(decimal.NewFromFloat(5.0)) {
		return "LOW"
	} else if maxScore.LessThan(decimal.NewFromFloat(15.0)) {
		return "MEDIUM"
	} else if maxScore.LessThan(decimal.NewFromFloat(30.0)) {
		return "HIGH"
	} else {
		return "CRITICAL"
	}
}

// GenerateRecommendations generates recommendations based on sensitivity analysis
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	recommendations := []string{}

	riskLevel := ss.DetermineRiskLevel()

	switch riskLevel {
	case "LOW":
		recommendations = append(recommendations, "Plan outlay is stable across the swept ranges")
		recommendations = append(recommendations, "Current assumptions appear reasonable")
	case "MEDIUM":
		recommendations = append(recommendations, "Monitor the most sensitive inputs annually")
		recommendations = append(recommendations, "Consider conservative values for critical parameters")
	case "HIGH":
		recommendations = append(recommendations, "Plan outlay moves sharply with input changes")
		recommendations = append(recommendations, "Stress test with wider ranges before committing to the plan")
		recommendations = append(recommendations, "Review assumptions annually")
	case "CRITICAL":
		recommendations = append(recommendations, "Plan outlay is highly sensitive to input changes")
		recommendations = append(recommendations, "Consider a lower spending target or shorter high-spend phases")
		recommendations = append(recommendations, "Re-run the sweep after any assumption change")
	}

	// Add specific recommendations based on most sensitive parameter
	if ss.MostSensitiveParameter != "" {
		switch ss.MostSensitiveParameter {
		case "inflation_rate":
			recommendations = append(recommendations, "Small inflation changes compound into large late-year differences")
		case "target_spend":
			recommendations = append(recommendations, "Total outlay scales directly with the spending target")
		case "gogo_years":
			recommendations = append(recommendations, "Extending the GoGo phase keeps more years at the highest percentage")
		case "slow_years":
			recommendations = append(recommendations, "SlowGo length shifts years between the middle and lowest percentages")
		case "survivor_percent":
			recommendations = append(recommendations, "The survivor percentage drives every year after the event")
		}
	}

	return recommendations
}
