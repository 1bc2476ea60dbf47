// Package tuistyles holds the lipgloss palette shared by the dashboard
// model and its components.
package tuistyles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Color palette
var (
	ColorPrimary    = lipgloss.Color("#5FAFD7")
	ColorSecondary  = lipgloss.Color("#87D7AF")
	ColorAccent     = lipgloss.Color("#D7AF5F")
	ColorSuccess    = lipgloss.Color("#5FD75F")
	ColorDanger     = lipgloss.Color("#D75F5F")
	ColorForeground = lipgloss.Color("#D0D0D0")
	ColorMuted      = lipgloss.Color("#808080")
	ColorBorder     = lipgloss.Color("#444444")

	// Chart series colors, assigned in order
	ChartLine1 = lipgloss.Color("#5FAFD7")
	ChartLine2 = lipgloss.Color("#D7AF5F")
	ChartLine3 = lipgloss.Color("#87D7AF")
	ChartLine4 = lipgloss.Color("#D75F87")
)

// Shared styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("#303030")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// MetricTrendStyle returns the style for a metric delta
func MetricTrendStyle(positive bool) lipgloss.Style {
	if positive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns the arrow glyph for a delta direction
func TrendIndicator(positive bool) string {
	if positive {
		return "↑"
	}
	return "↓"
}

// FormatCurrency renders a whole-dollar amount with thousands separators,
// the compact form used on cards and tables.
func FormatCurrency(amount decimal.Decimal) string {
	digits := amount.Abs().Round(0).String()

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String()
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}
