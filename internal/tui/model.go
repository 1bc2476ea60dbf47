// Package tui is the interactive dashboard: it loads a spending plan,
// projects every scenario, and presents the schedules across overview,
// schedule, and chart scenes.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retireplan/spendgo/internal/calculation"
	"github.com/retireplan/spendgo/internal/config"
	"github.com/retireplan/spendgo/internal/domain"
)

// Model is the top-level bubbletea model for the spending dashboard
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	planPath string
	plan     *config.PlanFile
	set      *domain.ScheduleSet

	// selected indexes set.Schedules; the schedule and chart scenes
	// follow it
	selected    int
	tableOffset int

	engine *calculation.CalculationEngine

	spin           spinner.Model
	loading        bool
	loadingMessage string
	err            error
}

// NewModel creates the dashboard model for the given plan file
func NewModel(planPath string) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorAccent)),
	)

	return Model{
		currentScene:   SceneOverview,
		width:          80,
		height:         24,
		planPath:       planPath,
		engine:         calculation.NewCalculationEngine(),
		spin:           sp,
		loading:        true,
		loadingMessage: "Loading plan...",
	}
}

// Init starts the spinner and kicks off the plan load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadPlanCmd(m.planPath))
}

// loadPlanCmd parses the plan file off the update loop
func loadPlanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanLoadedMsg{Plan: plan}
	}
}

// projectCmd runs every scenario in the plan through the engine
func projectCmd(engine *calculation.CalculationEngine, plan *config.PlanFile) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.RunScenarios(context.Background(), plan.ScenarioValues())
		return ProjectionCompleteMsg{Set: set, Err: err}
	}
}

// selectedSchedule returns the schedule under the cursor, or nil before
// the projection finishes
func (m Model) selectedSchedule() *domain.SpendingSchedule {
	if m.set == nil || len(m.set.Schedules) == 0 {
		return nil
	}
	if m.selected < 0 || m.selected >= len(m.set.Schedules) {
		return &m.set.Schedules[0]
	}
	return &m.set.Schedules[m.selected]
}
