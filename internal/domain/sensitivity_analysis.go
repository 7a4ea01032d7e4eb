package domain

import (
	"github.com/shopspring/decimal"
)

// ParamInflationAdjustment is the swept scenario parameter
const ParamInflationAdjustment = "inflation_adjustment"

// SensitivityParameter describes a linear sweep of one scenario parameter
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Description string          `yaml:"description" json:"description"`
}

// DefaultInflationSweep sweeps two points either side of the scenario's own adjustment
func DefaultInflationSweep() SensitivityParameter {
	return SensitivityParameter{
		Name:        ParamInflationAdjustment,
		MinValue:    decimal.NewFromFloat(-0.02),
		MaxValue:    decimal.NewFromFloat(0.02),
		Steps:       5,
		Description: "Inflation adjustment added to every year's inflation",
	}
}

// SensitivityResult is the final projected year for one point of the sweep
type SensitivityResult struct {
	ScenarioName       string               `json:"scenarioName"`
	Adjustment         decimal.Decimal      `json:"adjustment"`
	AgeIncrement       AgeIncrementStrategy `json:"ageIncrement"`
	FinalYear          int                  `json:"finalYear"`
	FinalPMPM          decimal.Decimal      `json:"finalPMPM"`
	FinalTotalClaims   decimal.Decimal      `json:"finalTotalClaims"`
	PMPMChangeFromBase decimal.Decimal      `json:"pmpmChangeFromBase"`
	PMPMChangePct      decimal.Decimal      `json:"pmpmChangePct"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MinFinalPMPM    decimal.Decimal `json:"minFinalPMPM"`
	MaxFinalPMPM    decimal.Decimal `json:"maxFinalPMPM"`
	PctPerPoint     decimal.Decimal `json:"pctPerPoint"` // largest % change in final PMPM per point of adjustment
	RiskLevel       string          `json:"riskLevel"`   // "LOW", "MEDIUM", "HIGH"
	Recommendations []string        `json:"recommendations"`
}

// SensitivityAnalysis is a one-dimensional sweep around a base scenario
type SensitivityAnalysis struct {
	BaseScenarioName string               `json:"baseScenarioName"`
	Parameter        SensitivityParameter `json:"parameter"`
	BaseFinalPMPM    decimal.Decimal      `json:"baseFinalPMPM"`
	Results          []SensitivityResult  `json:"results"`
	Summary          SensitivitySummary   `json:"summary"`
}

// SensitivityMatrix sweeps the adjustment for each age increment strategy.
// Rows follow Strategies, columns follow the parameter steps.
type SensitivityMatrix struct {
	BaseScenarioName string                 `json:"baseScenarioName"`
	Parameter        SensitivityParameter   `json:"parameter"`
	Strategies       []AgeIncrementStrategy `json:"strategies"`
	BaseFinalPMPM    decimal.Decimal        `json:"baseFinalPMPM"`
	Results          [][]SensitivityResult  `json:"results"`
}
