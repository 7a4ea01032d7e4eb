package breakeven

import (
	"errors"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetTarget defines which final-year value the solver matches
type BudgetTarget string

const (
	TargetFinalPMPM        BudgetTarget = "final_pmpm"
	TargetFinalTotalClaims BudgetTarget = "final_total_claims"
)

// ParseBudgetTarget accepts the target names plus the short forms pmpm and total
func ParseBudgetTarget(s string) (BudgetTarget, error) {
	switch s {
	case "final_pmpm", "pmpm":
		return TargetFinalPMPM, nil
	case "final_total_claims", "total", "total_claims":
		return TargetFinalTotalClaims, nil
	default:
		return "", &BreakEvenError{
			Operation: "parse_target",
			Message:   "unknown budget target " + s + " (use pmpm or total)",
		}
	}
}

// ErrTargetUnreachable is returned when no adjustment inside the constraints reaches the target
var ErrTargetUnreachable = errors.New("budget target unreachable")

// Constraints bound the inflation adjustment the solver may try
type Constraints struct {
	MinAdjustment decimal.Decimal `json:"min_adjustment"`
	MaxAdjustment decimal.Decimal `json:"max_adjustment"`
}

// DefaultConstraints searches from 5 points below to 10 points above historical inflation
func DefaultConstraints() Constraints {
	return Constraints{
		MinAdjustment: decimal.RequireFromString("-0.05"),
		MaxAdjustment: decimal.RequireFromString("0.10"),
	}
}

// Validate checks if constraints are internally consistent
func (c Constraints) Validate() error {
	if !c.MinAdjustment.LessThan(c.MaxAdjustment) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_adjustment must be less than max_adjustment",
		}
	}
	if c.MinAdjustment.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_adjustment must be greater than -100%",
		}
	}
	return nil
}

// SolveRequest asks for the inflation adjustment that brings a scenario's final year to TargetValue
type SolveRequest struct {
	Records       []domain.ClaimsRecord
	BaseScenario  domain.ScenarioConfig
	Target        BudgetTarget
	TargetValue   decimal.Decimal
	Constraints   Constraints
	MaxIterations int             // solver default when zero
	Tolerance     decimal.Decimal // PMPM dollars; solver default when zero
}

// SolveResult is the outcome of a budget solve
type SolveResult struct {
	Target              BudgetTarget           `json:"target"`
	TargetValue         decimal.Decimal        `json:"targetValue"`
	InflationAdjustment decimal.Decimal        `json:"inflationAdjustment"`
	AchievedValue       decimal.Decimal        `json:"achievedValue"`
	BaseValue           decimal.Decimal        `json:"baseValue"` // value at the scenario's own adjustment
	Scenario            domain.ScenarioConfig  `json:"scenario"`
	Result              *domain.ScenarioResult `json:"result"`
	Iterations          int                    `json:"iterations"`
	Converged           bool                   `json:"converged"`
}

// SolverOptions holds solver defaults
type SolverOptions struct {
	Tolerance     decimal.Decimal // PMPM dollars
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.RequireFromString("0.01"),
		MaxIterations: 60,
	}
}

// BreakEvenError represents errors from the budget solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
