package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/output"
	"github.com/retireplan/spendgo/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(m.renderLoading())
	}
	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneOverview:
		content = m.renderOverview()
	case SceneSchedule:
		content = m.renderSchedule()
	case SceneChart:
		content = m.renderChart()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps scene content with the title bar and status bar
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)
	container := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		container,
		statusBar,
	)
}

// renderTitleBar renders the application title and scene breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("SpendGo - Retirement Spending Planner")

	breadcrumb := m.currentScene.String()
	if sched := m.selectedSchedule(); sched != nil {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, sched.ScenarioName)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("o", "overview"),
		formatShortcut("s", "schedule"),
		formatShortcut("c", "chart"),
		formatShortcut("tab", "scenario"),
		formatShortcut("r", "reload"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.plan != nil {
		pathText := SubtitleStyle.Render(m.planPath)
		gap := m.width - lipgloss.Width(statusText) - lipgloss.Width(pathText) - 2
		if gap > 0 {
			statusText += strings.Repeat(" ", gap) + pathText
		}
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the spinner with the current stage message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return BorderStyle.Render(fmt.Sprintf("%s %s", m.spin.View(), message))
}

// renderError renders the failure and how to move on
func (m Model) renderError() string {
	return ErrorStyle.Render(
		fmt.Sprintf("Error: %v\n\nPress any key to continue, q to quit.", m.err),
	)
}

// renderOverview renders headline metric cards for the base scenario, a
// card per scenario, and the recommendation
func (m Model) renderOverview() string {
	if m.set == nil || len(m.set.Schedules) == 0 {
		return BorderStyle.Render("No schedules projected yet")
	}

	base := m.set.Base()
	summary := base.Summarize()

	hundred := decimal.NewFromInt(100)
	metricRow := lipgloss.JoinHorizontal(lipgloss.Top,
		components.NewMetricCard("Lifetime Spending", FormatCurrency(summary.TotalSpending)).
			WithCaption(fmt.Sprintf("%d years projected", base.HorizonYears)).
			Render(),
		components.NewMetricCard("First Year", FormatCurrency(summary.FirstYearSpending)).
			WithCaption(fmt.Sprintf("GoGo for %d years", base.Config.GoGoYears)).
			Render(),
		components.NewMetricCard("Final Year", FormatCurrency(summary.FinalYearSpending)).
			WithCaption(fmt.Sprintf("Inflation %s%%", base.Config.InflationRate.Mul(hundred).StringFixed(1))).
			Render(),
		components.NewMetricCard("Peak Year", FormatCurrency(summary.PeakAmount)).
			WithCaption(fmt.Sprintf("in %d", summary.PeakYear)).
			Render(),
	)

	var cards []string
	for i := range m.set.Schedules {
		sched := &m.set.Schedules[i]
		card := components.NewScenarioCard(sched.ScenarioName).
			AddLine(fmt.Sprintf("Lifetime: %s", FormatCurrency(sched.TotalSpending()))).
			AddLine(fmt.Sprintf("First year: %s", FormatCurrency(sched.FirstYearSpending()))).
			SetSelected(i == m.selected)

		if sched.ScenarioName == m.set.BaseScenarioName {
			card.MarkBase()
		} else {
			delta := sched.TotalSpending().Sub(base.TotalSpending())
			change := FormatCurrency(delta)
			if delta.IsPositive() {
				change = "+" + change
			}
			card.AddLine(fmt.Sprintf("vs base: %s", change))
		}
		cards = append(cards, card.Render())
	}
	scenarioRow := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	sections := []string{
		metricRow,
		"",
		SubtitleStyle.Render("Scenarios (tab to cycle)"),
		scenarioRow,
	}

	if rec := output.AnalyzeSchedules(m.set); rec.ScenarioName != "" {
		sections = append(sections, "",
			InfoStyle.Render(fmt.Sprintf("Recommended: %s (%s)", rec.ScenarioName, rec.Reason)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSchedule renders the year-by-year table for the selected scenario
func (m Model) renderSchedule() string {
	sched := m.selectedSchedule()
	if sched == nil {
		return BorderStyle.Render("No schedules projected yet")
	}
	if len(sched.Years) == 0 {
		return BorderStyle.Render("No years projected (zero horizon)")
	}

	hundred := decimal.NewFromInt(100)
	params := SubtitleStyle.Render(fmt.Sprintf(
		"Target %s  Inflation %s%%  Horizon %d years",
		FormatCurrency(sched.Config.TargetSpend),
		sched.Config.InflationRate.Mul(hundred).StringFixed(1),
		sched.HorizonYears,
	))

	var table strings.Builder
	table.WriteString(TableHeaderStyle.Render(fmt.Sprintf(
		"%-6s %-7s %14s %14s %12s", "Year", "Phase", "Nominal", "Final", "Monthly")))
	table.WriteString("\n")

	start := m.tableOffset
	if start > len(sched.Years) {
		start = len(sched.Years)
	}
	end := start + m.visibleScheduleRows()
	if end > len(sched.Years) {
		end = len(sched.Years)
	}

	for _, yr := range sched.Years[start:end] {
		line := fmt.Sprintf("%-6d %-7s %14s %14s %12s",
			yr.CalendarYear,
			yr.Phase.String(),
			FormatCurrency(yr.NominalAmount),
			FormatCurrency(yr.FinalAmount),
			FormatCurrency(yr.MonthlyFinalAmount()),
		)
		if yr.SurvivorAdjusted {
			table.WriteString(TableHighlightStyle.Render(line + " *"))
		} else {
			table.WriteString(TableCellStyle.Render(line))
		}
		table.WriteString("\n")
	}

	footer := fmt.Sprintf("Years %d-%d of %d", start+1, end, len(sched.Years))
	if sched.SurvivorYearCount() > 0 {
		footer += "   * survivor-adjusted"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		params,
		"",
		table.String(),
		SubtitleStyle.Render(footer),
	)
}

// renderChart renders final spending per calendar year as an ASCII line
// chart, one series per scenario
func (m Model) renderChart() string {
	if m.set == nil || len(m.set.Schedules) == 0 {
		return BorderStyle.Render("No schedules projected yet")
	}

	width := m.width - 18
	if width < 30 {
		width = 30
	}
	if width > 90 {
		width = 90
	}
	height := m.height - 12
	if height < 8 {
		height = 8
	}
	if height > 20 {
		height = 20
	}

	chart := components.NewASCIIChart("Final Spending by Calendar Year").
		WithSize(width, height)

	colors := []lipgloss.Color{ChartLine1, ChartLine2, ChartLine3, ChartLine4}
	shown := len(m.set.Schedules)
	if shown > len(colors) {
		shown = len(colors)
	}

	// X labels come from the longest schedule so every series fits
	var labels []string
	for i := 0; i < shown; i++ {
		sched := &m.set.Schedules[i]
		points := make([]float64, len(sched.Years))
		for j, yr := range sched.Years {
			points[j] = yr.FinalAmount.InexactFloat64()
		}
		chart.AddSeries(sched.ScenarioName, points, colors[i])

		if len(sched.Years) > len(labels) {
			labels = labels[:0]
			for _, yr := range sched.Years {
				labels = append(labels, strconv.Itoa(yr.CalendarYear))
			}
		}
	}
	chart.WithXLabels(labels)

	rendered := chart.Render()
	if len(m.set.Schedules) > shown {
		rendered += "\n" + SubtitleStyle.Render(
			fmt.Sprintf("Showing first %d of %d scenarios", shown, len(m.set.Schedules)))
	}
	return rendered
}

// renderHelp renders the key bindings
func (m Model) renderHelp() string {
	bindings := []struct {
		key  string
		desc string
	}{
		{"o / 1", "Overview scene"},
		{"s / 2", "Year-by-year schedule"},
		{"c / 3", "Spending chart"},
		{"tab / left / right", "Cycle scenarios"},
		{"up / down", "Scroll the schedule"},
		{"pgup / pgdn", "Scroll a page"},
		{"g / G", "Jump to first or last year"},
		{"r", "Reload the plan file"},
		{"?", "This help"},
		{"esc", "Back to the previous scene"},
		{"q / ctrl+c", "Quit"},
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render("Keyboard"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-20s", bind.key)))
		b.WriteString(HelpDescStyle.Render(bind.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpDescStyle.Render("The schedule and chart scenes follow the selected scenario."))

	return BorderStyle.Render(b.String())
}
