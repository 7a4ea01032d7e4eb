package compare

import (
	"fmt"

	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult represents a single scenario with its headline metrics
type ComparisonResult struct {
	ScenarioName        string                      `json:"scenarioName"`
	Description         string                      `json:"description,omitempty"`
	AgeIncrement        domain.AgeIncrementStrategy `json:"ageIncrement"`
	InflationAdjustment decimal.Decimal             `json:"inflationAdjustment"`
	Result              *domain.ScenarioResult      `json:"result"`

	// Key Metrics
	ProjectedAge     decimal.Decimal `json:"projectedAge"`
	BaseYear         int             `json:"baseYear"`
	BaselinePMPM     decimal.Decimal `json:"baselinePMPM"`
	BaselinePMPY     decimal.Decimal `json:"baselinePMPY"`
	FinalYear        int             `json:"finalYear"`
	FinalPMPM        decimal.Decimal `json:"finalPMPM"`
	FinalPMPY        decimal.Decimal `json:"finalPMPY"`
	FinalTotalClaims decimal.Decimal `json:"finalTotalClaims"`
	PMPMGrowthPct    decimal.Decimal `json:"pmpmGrowthPct"` // final vs baseline over the horizon

	// Comparison to Base
	PMPMDiffFromBase        decimal.Decimal `json:"pmpmDiffFromBase"`
	PMPMPctFromBase         decimal.Decimal `json:"pmpmPctFromBase"`
	TotalClaimsDiffFromBase decimal.Decimal `json:"totalClaimsDiffFromBase"`
}

// FailedScenario records a scenario that could not be projected
type FailedScenario struct {
	ScenarioName string `json:"scenarioName"`
	Error        string `json:"error"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Failed             []FailedScenario   `json:"failed,omitempty"`
	Recommendations    []string           `json:"recommendations"`
	RecordsPath        string             `json:"recordsPath,omitempty"`

	Runs []calculation.ScenarioRun `json:"-"` // raw runs in scenario order, for exports
}

// Results returns the base result followed by the alternatives
func (cs *ComparisonSet) Results() []ComparisonResult {
	results := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		results = append(results, *cs.BaseResult)
	}
	return append(results, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from scenario results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the headline metrics for one scenario result
func (mc *MetricsCalculator) CalculateMetrics(result *domain.ScenarioResult) ComparisonResult {
	metrics := ComparisonResult{
		ScenarioName:        result.Name,
		Description:         result.Config.Description,
		AgeIncrement:        result.Config.AgeIncrement,
		InflationAdjustment: result.Config.InflationAdjustment,
		Result:              result,
		ProjectedAge:        result.ProjectedAge,
		BaseYear:            result.BaseYear,
		BaselinePMPM:        result.WeightedBaselinePMPM,
		BaselinePMPY:        result.WeightedBaselinePMPY,
	}

	if final, ok := result.FinalYear(); ok {
		metrics.FinalYear = final.Year
		metrics.FinalPMPM = final.PMPM
		metrics.FinalPMPY = final.PMPY
		metrics.FinalTotalClaims = final.ProjectedTotalClaims
	}

	if !metrics.BaselinePMPM.IsZero() {
		metrics.PMPMGrowthPct = metrics.FinalPMPM.Div(metrics.BaselinePMPM).
			Sub(decimal.NewFromInt(1)).
			Mul(hundred).
			Round(2)
	}

	return metrics
}

// CalculateComparison computes deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PMPMDiffFromBase = scenario.FinalPMPM.Sub(base.FinalPMPM)
	scenario.TotalClaimsDiffFromBase = scenario.FinalTotalClaims.Sub(base.FinalTotalClaims)

	if !base.FinalPMPM.IsZero() {
		scenario.PMPMPctFromBase = scenario.PMPMDiffFromBase.
			Div(base.FinalPMPM).
			Mul(hundred).
			Round(2)
	}

	return scenario
}

// GenerateRecommendations summarises the cost spread across scenarios
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult != nil && len(compSet.AlternativeResults) > 0 {
		base := compSet.BaseResult

		lowest, highest := -1, -1
		for i, alt := range compSet.AlternativeResults {
			if alt.FinalPMPM.LessThan(base.FinalPMPM) &&
				(lowest < 0 || alt.FinalPMPM.LessThan(compSet.AlternativeResults[lowest].FinalPMPM)) {
				lowest = i
			}
			if alt.FinalPMPM.GreaterThan(base.FinalPMPM) &&
				(highest < 0 || alt.FinalPMPM.GreaterThan(compSet.AlternativeResults[highest].FinalPMPM)) {
				highest = i
			}
		}

		if lowest >= 0 {
			alt := compSet.AlternativeResults[lowest]
			recommendations = append(recommendations, fmt.Sprintf(
				"Lowest Cost: %s projects %d PMPM of $%s, $%s below base",
				alt.ScenarioName, alt.FinalYear, alt.FinalPMPM.StringFixed(2), alt.PMPMDiffFromBase.Abs().StringFixed(2)))
		}
		if highest >= 0 {
			alt := compSet.AlternativeResults[highest]
			recommendations = append(recommendations, fmt.Sprintf(
				"Highest Cost: %s projects %d PMPM of $%s, $%s above base (%s%%)",
				alt.ScenarioName, alt.FinalYear, alt.FinalPMPM.StringFixed(2), alt.PMPMDiffFromBase.StringFixed(2),
				alt.PMPMPctFromBase.StringFixed(1)))
		}
	}

	for _, f := range compSet.Failed {
		recommendations = append(recommendations,
			fmt.Sprintf("Review Inputs: %s could not be projected (%s)", f.ScenarioName, f.Error))
	}

	return recommendations
}
