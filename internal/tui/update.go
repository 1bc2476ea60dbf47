package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update routes messages to the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case NavigateMsg:
		return m.navigate(msg.Scene)

	case PlanLoadedMsg:
		m.plan = msg.Plan
		m.loadingMessage = "Projecting scenarios..."
		return m, projectCmd(m.engine, msg.Plan)

	case ProjectionCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.set = msg.Set
		m.selected = 0
		m.tableOffset = 0
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The error view swallows keys: quit still works, anything else
	// dismisses the error
	if m.err != nil {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		return m.navigate(SceneHelp)

	case "esc":
		if m.currentScene == SceneOverview {
			return m, nil
		}
		target := m.previousScene
		if target == m.currentScene {
			target = SceneOverview
		}
		return m.navigate(target)

	case "o", "1":
		return m.navigate(SceneOverview)

	case "s", "2":
		return m.navigate(SceneSchedule)

	case "c", "3":
		return m.navigate(SceneChart)

	case "r":
		m.loading = true
		m.loadingMessage = "Reloading plan..."
		m.err = nil
		return m, tea.Batch(m.spin.Tick, loadPlanCmd(m.planPath))

	case "tab", "right", "l":
		return m.cycleScenario(1), nil

	case "shift+tab", "left", "h":
		return m.cycleScenario(-1), nil

	case "down", "j":
		return m.scrollSchedule(1), nil

	case "up", "k":
		return m.scrollSchedule(-1), nil

	case "pgdown":
		return m.scrollSchedule(m.visibleScheduleRows()), nil

	case "pgup":
		return m.scrollSchedule(-m.visibleScheduleRows()), nil

	case "home", "g":
		m.tableOffset = 0
		return m, nil

	case "end", "G":
		m.tableOffset = m.maxTableOffset()
		return m, nil
	}

	return m, nil
}

// navigate records the previous scene and switches to the target
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene == m.currentScene {
		return m, nil
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
	return m, nil
}

// cycleScenario moves the scenario cursor by delta, wrapping around
func (m Model) cycleScenario(delta int) Model {
	if m.set == nil || len(m.set.Schedules) == 0 {
		return m
	}
	n := len(m.set.Schedules)
	m.selected = ((m.selected+delta)%n + n) % n
	m.tableOffset = 0
	return m
}

// scrollSchedule moves the year window by delta rows, clamped to the
// schedule length
func (m Model) scrollSchedule(delta int) Model {
	m.tableOffset += delta
	if limit := m.maxTableOffset(); m.tableOffset > limit {
		m.tableOffset = limit
	}
	if m.tableOffset < 0 {
		m.tableOffset = 0
	}
	return m
}

// visibleScheduleRows returns how many year rows fit in the schedule
// scene at the current terminal height
func (m Model) visibleScheduleRows() int {
	rows := m.height - 12
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m Model) maxTableOffset() int {
	sched := m.selectedSchedule()
	if sched == nil {
		return 0
	}
	limit := len(sched.Years) - m.visibleScheduleRows()
	if limit < 0 {
		limit = 0
	}
	return limit
}
