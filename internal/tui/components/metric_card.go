package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/retireplan/spendgo/internal/tui/tuistyles"
)

// MetricCard is a bordered label-and-value tile for the overview scene
type MetricCard struct {
	Label   string
	Value   string
	Delta   string
	DeltaUp bool
	Caption string
	Width   int
}

// NewMetricCard creates a card with the default width
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithDelta attaches a change line with a direction arrow
func (m *MetricCard) WithDelta(change string, up bool) *MetricCard {
	m.Delta = change
	m.DeltaUp = up
	return m
}

// WithCaption attaches a muted line under the value
func (m *MetricCard) WithCaption(caption string) *MetricCard {
	m.Caption = caption
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)

	if m.Delta != "" {
		arrow := tuistyles.TrendIndicator(m.DeltaUp)
		content += "\n" + tuistyles.MetricTrendStyle(m.DeltaUp).
			Render(fmt.Sprintf("%s %s", arrow, m.Delta))
	}

	if m.Caption != "" {
		content += "\n" + tuistyles.MetricLabelStyle.Render(m.Caption)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}
