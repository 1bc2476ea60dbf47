package compare

import (
	"context"
	"fmt"
	"sync"

	"github.com/retireplan/spendgo/internal/calculation"
	"github.com/retireplan/spendgo/internal/domain"
	"github.com/retireplan/spendgo/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against; empty means the first scenario
	Templates        []string // List of template names to apply
	Transforms       []string // Ad-hoc transform specs ("name:key=value,..."), each yielding one alternative
}

// Compare runs the base scenario against template-derived and ad-hoc
// transform-derived alternatives
func (ce *CompareEngine) Compare(
	ctx context.Context,
	scenarios []domain.Scenario,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseScenario, err := findScenario(scenarios, options.BaseScenarioName)
	if err != nil {
		return nil, err
	}

	// Build the modified scenarios from templates and transform specs
	alternatives := make([]*domain.Scenario, 0, len(options.Templates)+len(options.Transforms))
	descriptions := make([]string, 0, len(options.Templates)+len(options.Transforms))

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modifiedScenario, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		// Update scenario name to reflect the template
		modifiedScenario.Name = baseScenario.Name + "_" + templateName

		alternatives = append(alternatives, modifiedScenario)
		descriptions = append(descriptions, template.Description)
	}

	// Ad-hoc transform specs each become one alternative
	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("bad transform spec %q: %w", spec, err)
		}
		if err := t.Validate(baseScenario); err != nil {
			return nil, err
		}
		modifiedScenario, err := t.Apply(baseScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %s: %w", t.Name(), err)
		}
		modifiedScenario.Name = baseScenario.Name + "_" + t.Name()

		alternatives = append(alternatives, modifiedScenario)
		descriptions = append(descriptions, t.Description())
	}

	compSet, err := ce.runComparison(ctx, baseScenario, alternatives)
	if err != nil {
		return nil, err
	}

	for i := range compSet.AlternativeResults {
		compSet.AlternativeResults[i].Description = descriptions[i]
	}

	return compSet, nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	scenarios []domain.Scenario,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	baseScenario, err := findScenario(scenarios, baseScenarioName)
	if err != nil {
		return nil, err
	}

	alternatives := make([]*domain.Scenario, len(alternativeScenarioNames))
	for i, altName := range alternativeScenarioNames {
		alt, err := findScenario(scenarios, altName)
		if err != nil {
			return nil, err
		}
		alternatives[i] = alt
	}

	return ce.runComparison(ctx, baseScenario, alternatives)
}

// runComparison projects the base and every alternative concurrently, then
// assembles metrics, deltas, and recommendations. Projections share no
// state, so each scenario gets its own goroutine.
func (ce *CompareEngine) runComparison(
	ctx context.Context,
	baseScenario *domain.Scenario,
	alternatives []*domain.Scenario,
) (*ComparisonSet, error) {

	schedules := make([]*domain.SpendingSchedule, len(alternatives)+1)
	errs := make([]error, len(alternatives)+1)

	var wg sync.WaitGroup
	run := func(idx int, scenario *domain.Scenario) {
		defer wg.Done()
		schedules[idx], errs[idx] = ce.CalcEngine.RunScenario(ctx, scenario)
	}

	wg.Add(1)
	go run(0, baseScenario)
	for i := range alternatives {
		wg.Add(1)
		go run(i+1, alternatives[i])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(schedules[0])

	alternativeResults := make([]ComparisonResult, len(alternatives))
	for i := range alternatives {
		altResult := ce.MetricsCalculator.CalculateMetrics(schedules[i+1])
		alternativeResults[i] = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternativeResults,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// findScenario locates a scenario by name. An empty name selects the first
// scenario in the list.
func findScenario(scenarios []domain.Scenario, name string) (*domain.Scenario, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}
	if name == "" {
		return &scenarios[0], nil
	}
	for i := range scenarios {
		if scenarios[i].Name == name {
			return &scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %s not found in plan", name)
}
