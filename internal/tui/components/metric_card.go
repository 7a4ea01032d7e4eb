package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/claimtrend/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single scenario metric with an optional change versus base
type MetricCard struct {
	Label       string
	Value       string
	Change      *Change
	Description string
	Width       int
}

// Change is the movement of a cost metric. Rising cost renders as unfavourable.
type Change struct {
	Rising bool
	Text   string // e.g. "+$9.67" or "-9.17%"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithChange attaches a signed change. Zero deltas attach nothing.
func (m *MetricCard) WithChange(delta decimal.Decimal, text string) *MetricCard {
	if delta.IsZero() {
		return m
	}
	m.Change = &Change{Rising: delta.IsPositive(), Text: text}
	return m
}

// WithDescription adds a subtitle line
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) changeText() string {
	if m.Change == nil {
		return ""
	}
	return tuistyles.MetricTrendStyle(m.Change.Rising).
		Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Change.Rising), m.Change.Text))
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Change != nil {
		content += "\n" + m.changeText()
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a one-line version without border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Change != nil {
		line += " " + m.changeText()
	}
	return line
}

// MetricGrid lays cards out in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	columns = max(columns, 1)

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
