package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/retireplan/spendgo/internal/tui/tuistyles"
)

// DataSeries is one plotted line
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws line series on a rune grid for terminal display. The
// zero chart is 60 columns by 15 rows with dollar-formatted Y labels.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	XLabels    []string
	Width      int
	Height     int
	ShowLegend bool
	FormatY    func(float64) string
}

// NewASCIIChart creates a chart with default dimensions
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     15,
		ShowLegend: true,
		FormatY:    DollarValue,
	}
}

// AddSeries appends a line to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithXLabels sets the X-axis labels
func (c *ASCIIChart) WithXLabels(labels []string) *ASCIIChart {
	c.XLabels = labels
	return c
}

// WithSize sets the plot area dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithYFormatter overrides how Y-axis values are printed
func (c *ASCIIChart) WithYFormatter(f func(float64) string) *ASCIIChart {
	c.FormatY = f
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var out strings.Builder

	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorPrimary)
		out.WriteString(titleStyle.Render(c.Title))
		out.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	out.WriteString(c.renderGrid(lo, hi))

	if len(c.XLabels) > 0 {
		out.WriteString(c.renderXLabels())
	}

	if c.ShowLegend && len(c.Series) > 1 {
		out.WriteString("\n")
		out.WriteString(c.renderLegend())
	}

	return out.String()
}

// bounds returns the plotted value range across all series, padded so
// lines stay off the chart edges. A flat range is widened around itself.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}

	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Abs(hi) * 0.1
		if pad == 0 {
			pad = 1
		}
	}
	return lo - pad, hi + pad
}

const yAxisWidth = 10

// renderGrid plots every series onto a shared rune grid and frames it
// with axes
func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width := c.Width
	if width < 20 {
		width = 20
	}
	height := c.Height
	if height < 5 {
		height = 5
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for i, s := range c.Series {
		c.plotSeries(grid, s, lo, hi, seriesGlyph(i))
	}

	yAxisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	var out strings.Builder
	for y, row := range grid {
		frac := float64(y) / float64(height-1)
		value := hi - (hi-lo)*frac
		out.WriteString(yAxisStyle.Render(fmt.Sprintf("%*s", yAxisWidth, c.FormatY(value))))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", width+1))
	out.WriteString("\n")

	return out.String()
}

// plotSeries maps the points into grid coordinates and connects
// consecutive pairs
func (c *ASCIIChart) plotSeries(grid [][]rune, s *DataSeries, lo, hi float64, glyph rune) {
	if len(s.Points) == 0 {
		return
	}

	width := len(grid[0])
	height := len(grid)

	xFor := func(i int) int {
		if len(s.Points) == 1 {
			return width / 2
		}
		return i * (width - 1) / (len(s.Points) - 1)
	}
	yFor := func(v float64) int {
		frac := (v - lo) / (hi - lo)
		y := (height - 1) - int(math.Round(frac*float64(height-1)))
		if y < 0 {
			y = 0
		}
		if y >= height {
			y = height - 1
		}
		return y
	}

	prevX, prevY := xFor(0), yFor(s.Points[0])
	setPoint(grid, prevX, prevY, glyph)
	for i := 1; i < len(s.Points); i++ {
		x, y := xFor(i), yFor(s.Points[i])
		drawLine(grid, prevX, prevY, x, y, glyph)
		prevX, prevY = x, y
	}
}

func setPoint(grid [][]rune, x, y int, glyph rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[0]) {
		return
	}
	// First series to claim a cell keeps it
	if grid[y][x] == ' ' {
		grid[y][x] = glyph
	}
}

// drawLine connects two grid points with Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int, glyph rune) {
	dx := intAbs(x1 - x0)
	dy := intAbs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	x, y := x0, y0

	for {
		setPoint(grid, x, y, glyph)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// seriesGlyph returns the marker for the series at the given index
func seriesGlyph(index int) rune {
	glyphs := []rune{'●', '■', '▲', '♦'}
	return glyphs[index%len(glyphs)]
}

// renderXLabels spreads at most five labels under the X axis
func (c *ASCIIChart) renderXLabels() string {
	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	maxLabels := 5
	step := len(c.XLabels) / maxLabels
	if step == 0 {
		step = 1
	}

	width := c.Width
	if width < 20 {
		width = 20
	}
	spacing := width / maxLabels

	var out strings.Builder
	out.WriteString(strings.Repeat(" ", yAxisWidth+3))
	for i := 0; i < len(c.XLabels); i += step {
		label := c.XLabels[i]
		if i > 0 {
			gap := spacing - len(c.XLabels[i-step])
			if gap < 1 {
				gap = 1
			}
			out.WriteString(strings.Repeat(" ", gap))
		}
		out.WriteString(labelStyle.Render(label))
	}
	out.WriteString("\n")
	return out.String()
}

// renderLegend lists each series with its marker glyph
func (c *ASCIIChart) renderLegend() string {
	var items []string
	for i, s := range c.Series {
		glyph := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesGlyph(i)))
		name := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(s.Name)
		items = append(items, fmt.Sprintf("%s %s", glyph, name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render("Legend: " + strings.Join(items, "  "))
}

// DollarValue abbreviates a dollar amount for Y-axis labels
func DollarValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("$%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
