package tui

import (
	"github.com/retireplan/spendgo/internal/config"
	"github.com/retireplan/spendgo/internal/domain"
)

// Scene identifies a dashboard screen
type Scene int

const (
	SceneOverview Scene = iota
	SceneSchedule
	SceneChart
	SceneHelp
)

// String returns the scene name for the title bar
func (s Scene) String() string {
	switch s {
	case SceneOverview:
		return "Overview"
	case SceneSchedule:
		return "Schedule"
	case SceneChart:
		return "Chart"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches the visible scene
type NavigateMsg struct {
	Scene Scene
}

// PlanLoadedMsg carries a parsed and validated plan file
type PlanLoadedMsg struct {
	Plan *config.PlanFile
}

// ProjectionCompleteMsg carries the projected schedules, or the failure
// that stopped the engine
type ProjectionCompleteMsg struct {
	Set *domain.ScheduleSet
	Err error
}

// ErrorMsg reports a failure to the model
type ErrorMsg struct {
	Err error
}
