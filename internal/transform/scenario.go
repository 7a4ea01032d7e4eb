package transform

import (
	"fmt"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

var minusOne = decimal.NewFromInt(-1)

func validateAdjustment(name string, adj decimal.Decimal) error {
	if adj.LessThanOrEqual(minusOne) {
		return NewTransformError(name, "validate",
			fmt.Sprintf("inflation adjustment %s must be greater than -100%%", adj), nil)
	}
	return nil
}

// ShiftInflation adds By to the scenario's inflation adjustment
type ShiftInflation struct {
	By decimal.Decimal
}

func (t *ShiftInflation) Name() string { return "shift_inflation" }

func (t *ShiftInflation) Description() string {
	sign := "+"
	if t.By.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("inflation %s%s pts", sign, t.By.Shift(2).String())
}

func (t *ShiftInflation) Validate(base domain.ScenarioConfig) error {
	return validateAdjustment(t.Name(), base.InflationAdjustment.Add(t.By))
}

func (t *ShiftInflation) Apply(base domain.ScenarioConfig) (domain.ScenarioConfig, error) {
	base.InflationAdjustment = base.InflationAdjustment.Add(t.By)
	return base, nil
}

// SetInflationAdjustment replaces the scenario's inflation adjustment
type SetInflationAdjustment struct {
	Value decimal.Decimal
}

func (t *SetInflationAdjustment) Name() string { return "set_inflation" }

func (t *SetInflationAdjustment) Description() string {
	return fmt.Sprintf("inflation adj %s%%", t.Value.Shift(2).String())
}

func (t *SetInflationAdjustment) Validate(domain.ScenarioConfig) error {
	return validateAdjustment(t.Name(), t.Value)
}

func (t *SetInflationAdjustment) Apply(base domain.ScenarioConfig) (domain.ScenarioConfig, error) {
	base.InflationAdjustment = t.Value
	return base, nil
}

// SetAgeIncrement replaces the scenario's age increment strategy
type SetAgeIncrement struct {
	Strategy domain.AgeIncrementStrategy
}

func (t *SetAgeIncrement) Name() string { return "set_age_increment" }

func (t *SetAgeIncrement) Description() string {
	return string(t.Strategy) + " aging"
}

func (t *SetAgeIncrement) Validate(domain.ScenarioConfig) error {
	if _, err := domain.ParseAgeIncrementStrategy(string(t.Strategy)); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid strategy", err)
	}
	return nil
}

func (t *SetAgeIncrement) Apply(base domain.ScenarioConfig) (domain.ScenarioConfig, error) {
	base.AgeIncrement = t.Strategy
	return base, nil
}

// Rename sets the derived scenario's name
type Rename struct {
	NewName string
}

func (t *Rename) Name() string { return "rename" }

func (t *Rename) Description() string { return "renamed to " + t.NewName }

func (t *Rename) Validate(domain.ScenarioConfig) error {
	if t.NewName == "" {
		return NewTransformError(t.Name(), "validate", "name cannot be empty", nil)
	}
	return nil
}

func (t *Rename) Apply(base domain.ScenarioConfig) (domain.ScenarioConfig, error) {
	base.Name = t.NewName
	return base, nil
}
