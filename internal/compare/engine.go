package compare

import (
	"fmt"

	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/domain"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string // Name of the base scenario; the first scenario when empty
	RecordsPath      string // Shown in report headers
}

// Compare runs every scenario over the records and compares each to the base.
// A failing alternative is listed in Failed; a failing base is an error.
func (ce *CompareEngine) Compare(
	records []domain.ClaimsRecord,
	scenarios []domain.ScenarioConfig,
	options CompareOptions,
) (*ComparisonSet, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = scenarios[0].Name
	}
	baseIndex := -1
	for i := range scenarios {
		if scenarios[i].Name == baseName {
			baseIndex = i
			break
		}
	}
	if baseIndex < 0 {
		return nil, fmt.Errorf("base scenario %s not found", baseName)
	}

	runs := ce.CalcEngine.RunScenarios(records, scenarios)

	baseRun := runs[baseIndex]
	if baseRun.Err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", baseRun.Err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseRun.Result)

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: []ComparisonResult{},
		RecordsPath:        options.RecordsPath,
		Runs:               runs,
	}

	for i, run := range runs {
		if i == baseIndex {
			continue
		}
		if run.Err != nil {
			compSet.Failed = append(compSet.Failed, FailedScenario{
				ScenarioName: run.Config.Name,
				Error:        run.Err.Error(),
			})
			continue
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(run.Result)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		compSet.AlternativeResults = append(compSet.AlternativeResults, altResult)
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
