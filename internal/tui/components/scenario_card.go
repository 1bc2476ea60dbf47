package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/retireplan/spendgo/internal/tui/tuistyles"
)

// ScenarioCard summarizes one projected scenario on the overview scene.
// The selected card draws a highlighted border so the cursor position is
// visible while cycling scenarios.
type ScenarioCard struct {
	Name     string
	Lines    []string
	IsBase   bool
	Selected bool
	Width    int
}

// NewScenarioCard creates a card for the named scenario
func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{
		Name:  name,
		Width: 36,
	}
}

// AddLine appends a detail line to the card body
func (s *ScenarioCard) AddLine(line string) *ScenarioCard {
	s.Lines = append(s.Lines, line)
	return s
}

// MarkBase flags the card as the base scenario
func (s *ScenarioCard) MarkBase() *ScenarioCard {
	s.IsBase = true
	return s
}

// SetSelected marks the card as holding the cursor
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.Selected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the styled card
func (s *ScenarioCard) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		Render(s.Name)
	if s.IsBase {
		title += tuistyles.SubtitleStyle.Render("(base)")
	}

	body := title
	if len(s.Lines) > 0 {
		body += "\n" + tuistyles.TableCellStyle.Render(strings.Join(s.Lines, "\n"))
	}

	border := tuistyles.ColorBorder
	if s.Selected {
		border = tuistyles.ColorPrimary
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(body)
}
