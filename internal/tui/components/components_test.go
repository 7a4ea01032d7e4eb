package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestASCIIChart_Render(t *testing.T) {
	chart := NewASCIIChart("Projected Total Claims").
		AddSeries("Base", []float64{1026711, 1111698, 1203174}, "").
		AddSeries("Fast Aging", []float64{1063966, 1187000, 1325000}, "").
		WithLabels([]string{"2024", "2025", "2026"}).
		WithSize(60, 10)

	out := chart.Render()
	assert.Contains(t, out, "Projected Total Claims")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "■")
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "2026")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "$1.")
}

func TestASCIIChart_DegenerateSeries(t *testing.T) {
	assert.Contains(t, NewASCIIChart("empty").Render(), "No data to display")

	single := NewASCIIChart("").AddSeries("one", []float64{81.49}, "").WithSize(40, 5).Render()
	assert.Contains(t, single, "●", "A single point is plotted")
	assert.NotContains(t, single, "NaN")

	flat := NewASCIIChart("").AddSeries("flat", []float64{100, 100, 100}, "").WithSize(40, 5).Render()
	assert.Equal(t, 3, strings.Count(flat, "●"), "A flat series plots every point on one row")
	assert.NotContains(t, flat, "Legend:", "No legend for a single series")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$1.20M", formatChartValue(1203174))
	assert.Equal(t, "$978K", formatChartValue(977820))
	assert.Equal(t, "$95.49", formatChartValue(95.49))
}

func TestMetricCard(t *testing.T) {
	rising := NewMetricCard("2026 PMPM", "$105.16").WithChange(decimal.RequireFromString("9.67"), "+$9.67")
	assert.True(t, rising.Change.Rising)
	assert.Contains(t, rising.Render(), "▲ +$9.67")
	compact := rising.RenderCompact()
	assert.Contains(t, compact, "2026 PMPM:")
	assert.Contains(t, compact, "$105.16")
	assert.NotContains(t, compact, "╭")

	falling := NewMetricCard("2026 PMPM", "$86.73").WithChange(decimal.RequireFromString("-8.76"), "-$8.76")
	assert.False(t, falling.Change.Rising)
	assert.Contains(t, falling.Render(), "▼ -$8.76")

	flat := NewMetricCard("Growth", "0%").WithChange(decimal.Zero, "0")
	assert.Nil(t, flat.Change)

	grid := MetricGrid([]*MetricCard{rising, falling, flat}, 2)
	assert.Equal(t, 2, strings.Count(grid, "2026 PMPM"))
	assert.Empty(t, MetricGrid(nil, 2))
}
