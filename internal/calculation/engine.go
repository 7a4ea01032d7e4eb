package calculation

import (
	"fmt"

	"github.com/rgehrsitz/claimtrend/internal/domain"
)

// CalculationEngine orchestrates the claims trend projection for one or more scenarios
type CalculationEngine struct {
	AgingTable *AgingFactorTable
	Logger     Logger
	Debug      bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates an engine using the built-in aging curve
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithTable(DefaultAgingFactorTable())
}

// NewCalculationEngineWithTable creates an engine using a custom aging curve
func NewCalculationEngineWithTable(table *AgingFactorTable) *CalculationEngine {
	if table == nil {
		table = DefaultAgingFactorTable()
	}
	return &CalculationEngine{
		AgingTable: table,
		Logger:     NopLogger{},
	}
}

// SetLogger sets the engine logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ScenarioRun is the outcome of one scenario: exactly one of Result and Err is set
type ScenarioRun struct {
	Config domain.ScenarioConfig
	Result *domain.ScenarioResult
	Err    error
}

// RunScenarios runs every scenario independently over the same records. A failing
// scenario is reported in its own ScenarioRun and does not affect the others.
func (ce *CalculationEngine) RunScenarios(records []domain.ClaimsRecord, scenarios []domain.ScenarioConfig) []ScenarioRun {
	runs := make([]ScenarioRun, 0, len(scenarios))
	for _, cfg := range scenarios {
		result, err := ce.RunScenario(records, cfg)
		if err != nil {
			ce.logger().Warnf("scenario %q failed: %v", cfg.Name, err)
		}
		runs = append(runs, ScenarioRun{Config: cfg, Result: result, Err: err})
	}
	return runs
}

// RunScenario projects the historical records, derives the weighted baseline and
// extends it over the forward horizon for a single scenario.
func (ce *CalculationEngine) RunScenario(records []domain.ClaimsRecord, cfg domain.ScenarioConfig) (*domain.ScenarioResult, error) {
	result, err := ce.runScenario(records, cfg)
	if err != nil {
		return nil, &ScenarioError{Scenario: cfg.Name, Err: err}
	}
	return result, nil
}

func (ce *CalculationEngine) runScenario(records []domain.ClaimsRecord, cfg domain.ScenarioConfig) (*domain.ScenarioResult, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no claims records", ErrMalformedRecordSequence)
	}
	logger := ce.logger()
	table := ce.agingTable()

	latest := records[len(records)-1]
	projectedAge := latest.AverageAge.Add(cfg.AgeIncrement.Increment())
	logger.Debugf("scenario %q: adjustment=%s strategy=%s projected age=%s",
		cfg.Name, cfg.InflationAdjustment, cfg.AgeIncrement, projectedAge)

	projected, err := ProjectRecords(table, records, projectedAge, cfg.InflationAdjustment)
	if err != nil {
		return nil, fmt.Errorf("failed to project records: %w", err)
	}

	if ce.Debug {
		for _, p := range projected {
			logger.Debugf("  %d: adjusted=%s medical=%s risk=%s combined=%s pmpm=%s",
				p.Year, p.AdjustedClaims.StringFixed(2), p.MedicalTrendToPY, p.MemberRiskTrendToPY,
				p.CombinedTrendFactor, p.ProjectedPMPM.StringFixed(2))
		}
	}

	baseline, err := WeightedPMPM(projected, records)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate baseline PMPM: %w", err)
	}

	baseYear := latest.Year + 1
	forward, err := ProjectForward(table, ForwardInput{
		BaselinePMPM:    baseline,
		ProjectedAge:    projectedAge,
		BaseYear:        baseYear,
		LatestInflation: latest.Inflation,
		LatestMembers:   latest.Members,
	}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to project forward years: %w", err)
	}

	logger.Infof("scenario %q: baseline PMPM %s for %d", cfg.Name, baseline.StringFixed(2), baseYear)

	return &domain.ScenarioResult{
		Name:                 cfg.Name,
		Config:               cfg,
		ProjectedAge:         projectedAge,
		BaseYear:             baseYear,
		LatestMembers:        latest.Members,
		Records:              projected,
		WeightedBaselinePMPM: baseline,
		WeightedBaselinePMPY: baseline.Mul(monthsPerYear),
		Forward:              forward,
	}, nil
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

func (ce *CalculationEngine) agingTable() *AgingFactorTable {
	if ce.AgingTable == nil {
		return DefaultAgingFactorTable()
	}
	return ce.AgingTable
}
