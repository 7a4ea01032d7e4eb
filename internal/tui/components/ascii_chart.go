package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/claimtrend/internal/tui/tuistyles"
)

// DataSeries is one scenario line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more series of yearly values on a shared axis
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // policy years along the X axis
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
}

const yAxisWidth = 12

// NewASCIIChart creates a chart with a 60x15 plot area
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     15,
		ShowLegend: true,
	}
}

// AddSeries appends a series. Colors cycle through the chart palette when color is empty.
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	if color == "" {
		color = tuistyles.ChartColors[len(c.Series)%len(tuistyles.ChartColors)]
	}
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions, keeping a minimal drawable area
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = max(width, yAxisWidth+10)
	c.Height = max(height, 3)
	return c
}

// WithXAxisLabel sets the caption under the X axis
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasPoints() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder

	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.valueRange()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

func (c *ASCIIChart) hasPoints() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// valueRange returns the padded min and max across all series.
// A flat range is widened so every point maps to the middle row.
func (c *ASCIIChart) valueRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}

	if hi == lo {
		pad := math.Max(math.Abs(hi)*0.1, 1)
		return lo - pad, hi + pad
	}

	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

// column maps point i of n onto the plot width
func column(i, n, width int) int {
	if n <= 1 {
		return width / 2
	}
	return int(float64(i) / float64(n-1) * float64(width-1))
}

func (c *ASCIIChart) row(v, minVal, maxVal float64) int {
	return c.Height - 1 - int(math.Round((v-minVal)/(maxVal-minVal)*float64(c.Height-1)))
}

func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	chartWidth := c.Width - yAxisWidth

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	for seriesIdx, series := range c.Series {
		pointChar := seriesChar(seriesIdx)
		n := len(series.Points)
		for i, point := range series.Points {
			x := column(i, n, chartWidth)
			y := c.row(point, minVal, maxVal)
			if i > 0 {
				prevX := column(i-1, n, chartWidth)
				prevY := c.row(series.Points[i-1], minVal, maxVal)
				drawLine(grid, prevX, prevY, x, y, '·')
			}
			if x >= 0 && x < chartWidth && y >= 0 && y < c.Height {
				grid[y][x] = pointChar
			}
		}
	}

	var out strings.Builder
	yAxisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	for i, row := range grid {
		yValue := maxVal - (float64(i)/float64(c.Height-1))*(maxVal-minVal)
		out.WriteString(yAxisStyle.Render(formatChartValue(yValue)))
		out.WriteString(" │ ")
		out.WriteString(c.colorRow(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(chartWidth))
	}

	return out.String()
}

// colorRow renders point markers in their series color
func (c *ASCIIChart) colorRow(row []rune) string {
	var b strings.Builder
	for _, r := range row {
		idx := seriesIndex(r)
		if idx >= 0 && idx < len(c.Series) {
			b.WriteString(lipgloss.NewStyle().Foreground(c.Series[idx].Color).Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var seriesChars = []rune{'●', '■', '▲', '♦'}

func seriesChar(index int) rune {
	return seriesChars[index%len(seriesChars)]
}

func seriesIndex(r rune) int {
	for i, sc := range seriesChars {
		if sc == r {
			return i
		}
	}
	return -1
}

// drawLine connects two cells with Bresenham's algorithm, leaving occupied cells alone
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = char
		}
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

// renderXAxisLabels places each label under its column
func (c *ASCIIChart) renderXAxisLabels(chartWidth int) string {
	line := []rune(strings.Repeat(" ", chartWidth+8))
	for i, label := range c.Labels {
		x := column(i, len(c.Labels), chartWidth) - len(label)/2
		x = max(0, min(x, len(line)-len(label)))
		copy(line[x:], []rune(label))
	}
	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+3) + labelStyle.Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render(string(seriesChar(i)))
		name := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(series.Name)
		items = append(items, fmt.Sprintf("%s %s", symbol, name))
	}
	return tuistyles.MetricLabelStyle.Render("Legend: ") + strings.Join(items, "  ")
}

// formatChartValue formats a Y-axis dollar value
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("$%.2fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	default:
		return fmt.Sprintf("$%.2f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
