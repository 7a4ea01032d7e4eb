package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/compare"
	"github.com/rgehrsitz/claimtrend/internal/config"
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/rgehrsitz/claimtrend/internal/tui/tuistyles"
)

// ChartMetric selects the forward value plotted on the chart scene
type ChartMetric int

const (
	ChartTotalClaims ChartMetric = iota
	ChartPMPM
)

func (c ChartMetric) String() string {
	if c == ChartPMPM {
		return "PMPM"
	}
	return "Projected Total Claims"
}

// Sources names the files the viewer loads
type Sources struct {
	RecordsPath    string
	ScenariosPath  string // built-in scenarios when empty
	AgingTablePath string // built-in aging table when empty
	BaseScenario   string // first scenario when empty
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	sources Sources

	// Loaded data
	records []domain.ClaimsRecord
	compSet *compare.ComparisonSet

	// Index into compSet.Runs
	selected    int
	chartMetric ChartMetric

	table table.Model
	keys  keyMap
	help  help.Model

	err     error
	loading bool
}

// NewModel creates a new application model
func NewModel(sources Sources) Model {
	t := table.New(table.WithFocused(true))
	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableSelectedStyle
	t.SetStyles(styles)

	return Model{
		currentScene: SceneSummary,
		sources:      sources,
		table:        t,
		keys:         defaultKeyMap(),
		help:         help.New(),
		width:        100,
		height:       30,
		loading:      true,
	}
}

// Init loads the claims data and runs the scenario comparison
func (m Model) Init() tea.Cmd {
	return loadDataCmd(m.sources)
}

// loadDataCmd returns a command that parses the input files and compares scenarios
func loadDataCmd(src Sources) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()

		records, err := parser.LoadRecordsFromFile(src.RecordsPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		scenarios := domain.DefaultScenarios()
		if src.ScenariosPath != "" {
			if scenarios, err = parser.LoadScenariosFromFile(src.ScenariosPath); err != nil {
				return ErrorMsg{Err: err}
			}
		}

		engine := calculation.NewCalculationEngine()
		if src.AgingTablePath != "" {
			table, err := parser.LoadAgingFactorsFromFile(src.AgingTablePath)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			engine = calculation.NewCalculationEngineWithTable(table)
		}

		compSet, err := compare.NewCompareEngine(engine).Compare(records, scenarios, compare.CompareOptions{
			BaseScenarioName: src.BaseScenario,
			RecordsPath:      src.RecordsPath,
		})
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return DataLoadedMsg{Records: records, CompSet: compSet}
	}
}

// selectedRun returns the scenario run under the cursor
func (m Model) selectedRun() (calculation.ScenarioRun, bool) {
	if m.compSet == nil || m.selected < 0 || m.selected >= len(m.compSet.Runs) {
		return calculation.ScenarioRun{}, false
	}
	return m.compSet.Runs[m.selected], true
}

// selectedMetrics returns the comparison metrics of the selected scenario, if it succeeded
func (m Model) selectedMetrics() (compare.ComparisonResult, bool) {
	run, ok := m.selectedRun()
	if !ok || run.Err != nil {
		return compare.ComparisonResult{}, false
	}
	for _, r := range m.compSet.Results() {
		if r.ScenarioName == run.Config.Name {
			return r, true
		}
	}
	return compare.ComparisonResult{}, false
}
