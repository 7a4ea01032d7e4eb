package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AgeIncrementStrategy controls how the average member age advances per projected year
type AgeIncrementStrategy string

const (
	HalfYearStep AgeIncrementStrategy = "half_year_step"
	FullYearStep AgeIncrementStrategy = "full_year_step"
	StaticAge    AgeIncrementStrategy = "static"
)

// ParseAgeIncrementStrategy accepts the canonical names plus the legacy spreadsheet
// labels (increment_0.5, increment_1.0, constant).
func ParseAgeIncrementStrategy(s string) (AgeIncrementStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "half_year_step", "half", "increment_0.5":
		return HalfYearStep, nil
	case "full_year_step", "full", "increment_1.0":
		return FullYearStep, nil
	case "static", "constant":
		return StaticAge, nil
	default:
		return "", fmt.Errorf("unknown age increment strategy %q (valid: half_year_step, full_year_step, static)", s)
	}
}

// Increment returns the number of years added to the average age per projected year
func (s AgeIncrementStrategy) Increment() decimal.Decimal {
	switch s {
	case HalfYearStep:
		return decimal.NewFromFloat(0.5)
	case FullYearStep:
		return decimal.NewFromInt(1)
	default:
		return decimal.Zero
	}
}

// UnmarshalText lets YAML and JSON decoders accept any alias of a strategy
func (s *AgeIncrementStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParseAgeIncrementStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ScenarioConfig describes one macro/demographic assumption set
type ScenarioConfig struct {
	Name                string               `yaml:"name" json:"name" validate:"required"`
	Description         string               `yaml:"description,omitempty" json:"description,omitempty"`
	InflationAdjustment decimal.Decimal      `yaml:"inflation_adjustment" json:"inflationAdjustment"` // added to every year's inflation
	AgeIncrement        AgeIncrementStrategy `yaml:"age_increment" json:"ageIncrement" validate:"required,oneof=half_year_step full_year_step static"`
}

// ScenarioFile is the on-disk shape of a scenario set
type ScenarioFile struct {
	Scenarios []ScenarioConfig `yaml:"scenarios" json:"scenarios" validate:"required,min=1,dive"`
}

// DefaultScenarios returns the standard three-way comparison set
func DefaultScenarios() []ScenarioConfig {
	return []ScenarioConfig{
		{
			Name:                "Scenario 1 - Base Case",
			Description:         "Historical inflation, members age half a year per year",
			InflationAdjustment: decimal.Zero,
			AgeIncrement:        HalfYearStep,
		},
		{
			Name:                "Scenario 2 - Lower Inflation, Static Age",
			Description:         "Inflation one point lower, member age held constant",
			InflationAdjustment: decimal.NewFromFloat(-0.01),
			AgeIncrement:        StaticAge,
		},
		{
			Name:                "Scenario 3 - Higher Inflation, Fast Aging",
			Description:         "Inflation one point higher, members age a full year per year",
			InflationAdjustment: decimal.NewFromFloat(0.01),
			AgeIncrement:        FullYearStep,
		},
	}
}

// ForwardYearProjection is one policy year of the forward scenario projection.
// RiskTrend and InflationFactor are nil for the base year.
type ForwardYearProjection struct {
	Year                 int              `json:"year"`
	ProjectedAge         decimal.Decimal  `json:"projectedAge"`
	RiskTrend            *decimal.Decimal `json:"riskTrend"`
	InflationFactor      *decimal.Decimal `json:"inflationFactor"`
	PMPM                 decimal.Decimal  `json:"pmpm"`
	PMPY                 decimal.Decimal  `json:"pmpy"`
	ProjectedTotalClaims decimal.Decimal  `json:"projectedTotalClaims"` // PMPY x latest member count
}

// IsBaseYear reports whether no trend was applied to this year
func (fy ForwardYearProjection) IsBaseYear() bool {
	return fy.RiskTrend == nil
}

// ScenarioResult holds everything one scenario run produces
type ScenarioResult struct {
	Name                 string                  `json:"name"`
	Config               ScenarioConfig          `json:"config"`
	ProjectedAge         decimal.Decimal         `json:"projectedAge"`
	BaseYear             int                     `json:"baseYear"`
	LatestMembers        int                     `json:"latestMembers"`
	Records              []ProjectedClaimsRecord `json:"records"`
	WeightedBaselinePMPM decimal.Decimal         `json:"weightedBaselinePMPM"`
	WeightedBaselinePMPY decimal.Decimal         `json:"weightedBaselinePMPY"`
	Forward              []ForwardYearProjection `json:"forward"`
}

// FinalYear returns the last forward projection year
func (sr *ScenarioResult) FinalYear() (ForwardYearProjection, bool) {
	if sr == nil || len(sr.Forward) == 0 {
		return ForwardYearProjection{}, false
	}
	return sr.Forward[len(sr.Forward)-1], true
}
