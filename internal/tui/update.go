package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refreshTable()
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		m.refreshTable()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case DataLoadedMsg:
		m.loading = false
		m.err = nil
		m.records = msg.Records
		m.compSet = msg.CompSet
		if m.compSet == nil || m.selected >= len(m.compSet.Runs) {
			m.selected = 0
		}
		m.refreshTable()
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key dismisses an error; with nothing loaded there is nothing to return to.
	if m.err != nil {
		if m.compSet == nil {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		return m.navigate(SceneHelp)
	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHelp || m.previousScene != m.currentScene {
			return m.navigate(m.previousScene)
		}
		return m.navigate(SceneSummary)
	case key.Matches(msg, m.keys.Summary):
		return m.navigate(SceneSummary)
	case key.Matches(msg, m.keys.Records):
		return m.navigate(SceneRecords)
	case key.Matches(msg, m.keys.Forward):
		return m.navigate(SceneForward)
	case key.Matches(msg, m.keys.Chart):
		return m.navigate(SceneChart)
	case key.Matches(msg, m.keys.ChartMetric):
		if m.chartMetric == ChartTotalClaims {
			m.chartMetric = ChartPMPM
		} else {
			m.chartMetric = ChartTotalClaims
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, loadDataCmd(m.sources)
	case key.Matches(msg, m.keys.NextScenario):
		m.cycleScenario(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevScenario):
		m.cycleScenario(-1)
		return m, nil
	}

	if m.currentScene == SceneRecords || m.currentScene == SceneForward {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
}

func (m *Model) cycleScenario(step int) {
	if m.compSet == nil || len(m.compSet.Runs) == 0 {
		return
	}
	n := len(m.compSet.Runs)
	m.selected = ((m.selected+step)%n + n) % n
	m.refreshTable()
}

// refreshTable rebuilds the table for the current scene and scenario.
// Rows are cleared before columns change so no row outlives its column set.
func (m *Model) refreshTable() {
	var cols []table.Column
	var rows []table.Row

	switch m.currentScene {
	case SceneRecords:
		cols, rows = m.recordRows()
	case SceneForward:
		cols, rows = m.forwardRows()
	}

	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetHeight(max(3, min(len(rows)+1, m.height-10)))
	m.table.GotoTop()
}

func (m Model) recordRows() ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Year", Width: 6},
		{Title: "Adjusted", Width: 14},
		{Title: "Medical", Width: 10},
		{Title: "Risk", Width: 11},
		{Title: "Combined", Width: 11},
		{Title: "Trended", Width: 14},
		{Title: "PMPM", Width: 9},
		{Title: "PMPY", Width: 10},
	}

	run, ok := m.selectedRun()
	if !ok || run.Err != nil || run.Result == nil {
		return cols, nil
	}

	rows := make([]table.Row, 0, len(run.Result.Records))
	for _, r := range run.Result.Records {
		rows = append(rows, table.Row{
			strconv.Itoa(r.Year),
			r.AdjustedClaims.StringFixed(2),
			r.MedicalTrendToPY.String(),
			r.MemberRiskTrendToPY.String(),
			r.CombinedTrendFactor.String(),
			r.ProjectedTrendedClaims.StringFixed(2),
			r.ProjectedPMPM.StringFixed(2),
			r.ProjectedPMPY.StringFixed(2),
		})
	}
	return cols, rows
}

func (m Model) forwardRows() ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Year", Width: 6},
		{Title: "Age", Width: 6},
		{Title: "Risk Trend", Width: 11},
		{Title: "Inflation", Width: 10},
		{Title: "PMPM", Width: 9},
		{Title: "PMPY", Width: 10},
		{Title: "Total Claims", Width: 14},
	}

	run, ok := m.selectedRun()
	if !ok || run.Err != nil || run.Result == nil {
		return cols, nil
	}

	rows := make([]table.Row, 0, len(run.Result.Forward))
	for _, fy := range run.Result.Forward {
		rows = append(rows, table.Row{
			strconv.Itoa(fy.Year),
			fy.ProjectedAge.String(),
			optional(fy.RiskTrend),
			optional(fy.InflationFactor),
			fy.PMPM.StringFixed(2),
			fy.PMPY.StringFixed(2),
			fy.ProjectedTotalClaims.StringFixed(2),
		})
	}
	return cols, rows
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}
