package transform

import (
	"fmt"
	"strings"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates a new template registry with built-in templates
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// CreateBuiltInTemplates creates a template registry with common plan variations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	intPtr := func(v int) *int { return &v }

	// Spending shape templates
	registry.Register(Template{
		Name:        "lean_nogo",
		Description: "Trim NoGo spending to 60% of target",
		Transforms: []ScenarioTransform{
			&SetPhasePercent{Phase: domain.PhaseNoGo, Percent: decimal.NewFromInt(60)},
		},
	})

	registry.Register(Template{
		Name:        "flat_phases",
		Description: "Hold spending at 100% of target through every phase",
		Transforms: []ScenarioTransform{
			&SetPhasePercent{Phase: domain.PhaseGoGo, Percent: decimal.NewFromInt(100)},
			&SetPhasePercent{Phase: domain.PhaseSlowGo, Percent: decimal.NewFromInt(100)},
			&SetPhasePercent{Phase: domain.PhaseNoGo, Percent: decimal.NewFromInt(100)},
		},
	})

	registry.Register(Template{
		Name:        "extended_gogo",
		Description: "Extend the GoGo phase to 15 years",
		Transforms: []ScenarioTransform{
			&SetPhaseYears{GoGoYears: intPtr(15)},
		},
	})

	// Inflation assumption templates
	registry.Register(Template{
		Name:        "high_inflation",
		Description: "Run the plan at 5% inflation",
		Transforms: []ScenarioTransform{
			&SetInflationRate{Rate: decimal.NewFromFloat(0.05)},
		},
	})

	registry.Register(Template{
		Name:        "low_inflation",
		Description: "Run the plan at 2% inflation",
		Transforms: []ScenarioTransform{
			&SetInflationRate{Rate: decimal.NewFromFloat(0.02)},
		},
	})

	// Survivor event templates
	registry.Register(Template{
		Name:        "survivor_at_10",
		Description: "Apply a survivor event ten years into retirement",
		Transforms: []ScenarioTransform{
			&SetSurvivorEvent{DeathYearOffset: 10},
		},
	})

	registry.Register(Template{
		Name:        "survivor_at_20",
		Description: "Apply a survivor event twenty years into retirement",
		Transforms: []ScenarioTransform{
			&SetSurvivorEvent{DeathYearOffset: 20},
		},
	})

	// Combination templates - popular what-ifs
	registry.Register(Template{
		Name:        "frugal",
		Description: "Frugal plan: cut target spend 10% and trim NoGo to 60%",
		Transforms: []ScenarioTransform{
			&ScaleTargetSpend{Factor: decimal.NewFromFloat(0.9)},
			&SetPhasePercent{Phase: domain.PhaseNoGo, Percent: decimal.NewFromInt(60)},
		},
	})

	registry.Register(Template{
		Name:        "stress_test",
		Description: "Stress test: 5% inflation plus a survivor event at year ten",
		Transforms: []ScenarioTransform{
			&SetInflationRate{Rate: decimal.NewFromFloat(0.05)},
			&SetSurvivorEvent{DeathYearOffset: 10},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	// Sort templates by category
	categories := map[string][]Template{
		"Spending Shape":         {},
		"Inflation Assumptions":  {},
		"Survivor Events":        {},
		"Combination Strategies": {},
	}

	for _, template := range registry.templates {
		name := template.Name
		switch {
		case strings.HasPrefix(name, "lean_") || strings.HasPrefix(name, "flat_") || strings.HasPrefix(name, "extended_"):
			categories["Spending Shape"] = append(categories["Spending Shape"], template)
		case strings.Contains(name, "inflation"):
			categories["Inflation Assumptions"] = append(categories["Inflation Assumptions"], template)
		case strings.HasPrefix(name, "survivor_"):
			categories["Survivor Events"] = append(categories["Survivor Events"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	// Print each category
	for _, category := range []string{"Spending Shape", "Inflation Assumptions", "Survivor Events", "Combination Strategies"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  ./spendgo compare plan.yaml --with lean_nogo,high_inflation\n")
	sb.WriteString("  ./spendgo compare plan.yaml --with frugal,stress_test\n")

	return sb.String()
}
