package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/claimtrend/internal/tui/components"
	"github.com/rgehrsitz/claimtrend/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneSummary:
		content = m.renderSummary()
	case SceneRecords, SceneForward:
		content = m.renderTable()
	case SceneChart:
		content = m.renderChart()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", content))
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(1, m.height-4) // title (2) + status (1) + padding (1)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("CLAIMTREND - Claims Trend Projection")

	breadcrumb := m.currentScene.String()
	if run, ok := m.selectedRun(); ok {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, run.Config.Name)
	}
	if m.sources.RecordsPath != "" {
		breadcrumb += "  (" + m.sources.RecordsPath + ")"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// renderTabs lists every scenario with the selected one highlighted
func (m Model) renderTabs() string {
	if m.compSet == nil {
		return ""
	}

	tabs := make([]string, 0, len(m.compSet.Runs))
	for i, run := range m.compSet.Runs {
		label := run.Config.Name
		if run.Config.Name == m.compSet.BaseScenarioName {
			label += " (base)"
		}
		switch {
		case i == m.selected:
			tabs = append(tabs, ActiveTabStyle.Render(label))
		case run.Err != nil:
			tabs = append(tabs, FailedTabStyle.Render(label))
		default:
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderLoading() string {
	return m.renderApp(BorderStyle.Render("⠋ Loading claims data..."))
}

func (m Model) renderError() string {
	hint := "Press any key to continue..."
	if m.compSet == nil {
		hint = "Press any key to exit..."
	}
	return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\n%s", m.err, hint)))
}

// renderSummary shows headline metrics for the selected scenario
func (m Model) renderSummary() string {
	run, ok := m.selectedRun()
	if !ok {
		return InfoStyle.Render("No scenarios loaded")
	}
	if run.Err != nil {
		return ErrorStyle.Render("Scenario could not be projected: " + run.Err.Error())
	}

	metrics, ok := m.selectedMetrics()
	if !ok {
		return InfoStyle.Render("No results for " + run.Config.Name)
	}

	var b strings.Builder
	if metrics.Description != "" {
		b.WriteString(SubtitleStyle.Render(metrics.Description))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Age increment: %s   Inflation adjustment: %s%%   Projected age: %s\n\n",
		metrics.AgeIncrement,
		metrics.InflationAdjustment.Mul(hundred).StringFixed(1),
		metrics.ProjectedAge))

	isBase := metrics.ScenarioName == m.compSet.BaseScenarioName
	finalPMPM := components.NewMetricCard(fmt.Sprintf("%d PMPM", metrics.FinalYear), FormatCurrency(metrics.FinalPMPM))
	finalTotal := components.NewMetricCard(fmt.Sprintf("%d Total Claims", metrics.FinalYear), "$"+metrics.FinalTotalClaims.StringFixed(0))
	if !isBase {
		finalPMPM.WithChange(metrics.PMPMDiffFromBase,
			fmt.Sprintf("%s (%s%%)", signedCurrency(metrics.PMPMDiffFromBase.StringFixed(2)), metrics.PMPMPctFromBase.StringFixed(2)))
		finalTotal.WithChange(metrics.TotalClaimsDiffFromBase,
			signedCurrency(metrics.TotalClaimsDiffFromBase.StringFixed(0)))
	}

	cards := []*components.MetricCard{
		components.NewMetricCard(fmt.Sprintf("%d Baseline PMPM", metrics.BaseYear), FormatCurrency(metrics.BaselinePMPM)).
			WithDescription("PMPY " + FormatCurrency(metrics.BaselinePMPY)),
		finalPMPM.WithDescription("PMPY " + FormatCurrency(metrics.FinalPMPY)),
		finalTotal,
		components.NewMetricCard("PMPM Growth", metrics.PMPMGrowthPct.StringFixed(2)+"%").
			WithDescription(fmt.Sprintf("%d to %d", metrics.BaseYear, metrics.FinalYear)),
	}
	columns := 4
	if m.width < 4*26 {
		columns = 2
	}
	b.WriteString(components.MetricGrid(cards, columns))

	if len(m.compSet.Recommendations) > 0 {
		b.WriteString("\n\n")
		b.WriteString(tuistyles.MetricLabelStyle.Render("Recommendations"))
		for _, rec := range m.compSet.Recommendations {
			b.WriteString("\n • " + rec)
		}
	}
	return b.String()
}

func (m Model) renderTable() string {
	run, ok := m.selectedRun()
	if ok && run.Err != nil {
		return ErrorStyle.Render("Scenario could not be projected: " + run.Err.Error())
	}
	return BorderStyle.Render(m.table.View())
}

// renderChart plots the forward projection of every successful scenario
func (m Model) renderChart() string {
	if m.compSet == nil {
		return InfoStyle.Render("No scenarios loaded")
	}

	chart := components.NewASCIIChart(m.chartMetric.String()).
		WithSize(min(m.width-4, 90), max(m.height-16, 6)).
		WithXAxisLabel("Policy year  (m switches metric)")

	var labels []string
	for _, r := range m.compSet.Results() {
		if r.Result == nil {
			continue
		}
		points := make([]float64, 0, len(r.Result.Forward))
		years := make([]string, 0, len(r.Result.Forward))
		for _, fy := range r.Result.Forward {
			v := fy.ProjectedTotalClaims
			if m.chartMetric == ChartPMPM {
				v = fy.PMPM
			}
			points = append(points, v.InexactFloat64())
			years = append(years, strconv.Itoa(fy.Year))
		}
		if len(years) > len(labels) {
			labels = years
		}
		chart.AddSeries(r.ScenarioName, points, "")
	}

	return chart.WithLabels(labels).Render()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(tuistyles.MetricValueStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render(
		"PMPM is per member per month, PMPY per member per year. Failed scenarios are struck through."))
	return b.String()
}

var hundred = decimal.NewFromInt(100)

func signedCurrency(s string) string {
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "+$" + s
}
