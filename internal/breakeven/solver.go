package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/rgehrsitz/claimtrend/internal/transform"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the inflation adjustment that meets a cost budget
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new budget solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

type evaluation struct {
	adjustment decimal.Decimal
	scenario   domain.ScenarioConfig
	result     *domain.ScenarioResult
	value      decimal.Decimal
}

// Solve bisects the inflation adjustment between the constraints. Final-year cost is
// non-decreasing in the adjustment, so the target must lie between the values at the bounds.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if !req.TargetValue.IsPositive() {
		return nil, &BreakEvenError{Operation: "solve", Message: "target value must be positive"}
	}
	if req.Target == "" {
		req.Target = TargetFinalPMPM
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	base, err := s.evaluate(req, req.BaseScenario.InflationAdjustment)
	if err != nil {
		return nil, err
	}
	tolerance := req.Tolerance
	if req.Target == TargetFinalTotalClaims {
		tolerance = tolerance.Mul(decimal.NewFromInt(int64(12 * base.result.LatestMembers)))
	}

	lo, err := s.evaluate(req, req.Constraints.MinAdjustment)
	if err != nil {
		return nil, err
	}
	hi, err := s.evaluate(req, req.Constraints.MaxAdjustment)
	if err != nil {
		return nil, err
	}
	if req.TargetValue.LessThan(lo.value.Sub(tolerance)) || req.TargetValue.GreaterThan(hi.value.Add(tolerance)) {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message: fmt.Sprintf("%s %s is outside %s to %s reachable with adjustments %s to %s",
				req.Target, req.TargetValue, lo.value, hi.value, lo.adjustment, hi.adjustment),
			Cause: ErrTargetUnreachable,
		}
	}

	best := closest(req.TargetValue, lo, hi)
	iterations := 0
	for iterations < req.MaxIterations && !within(best.value, req.TargetValue, tolerance) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations++

		mid, err := s.evaluate(req, lo.adjustment.Add(hi.adjustment).Div(two))
		if err != nil {
			return nil, err
		}
		best = closest(req.TargetValue, best, mid)

		if mid.value.LessThan(req.TargetValue) {
			lo = mid
		} else {
			hi = mid
		}
	}

	return &SolveResult{
		Target:              req.Target,
		TargetValue:         req.TargetValue,
		InflationAdjustment: best.adjustment,
		AchievedValue:       best.value,
		BaseValue:           base.value,
		Scenario:            best.scenario,
		Result:              best.result,
		Iterations:          iterations,
		Converged:           within(best.value, req.TargetValue, tolerance),
	}, nil
}

func (s *Solver) evaluate(req SolveRequest, adjustment decimal.Decimal) (evaluation, error) {
	scenario, err := transform.ApplyTransforms(req.BaseScenario, []transform.ScenarioTransform{
		&transform.SetInflationAdjustment{Value: adjustment},
	})
	if err != nil {
		return evaluation{}, &BreakEvenError{Operation: "solve", Message: "failed to apply adjustment", Cause: err}
	}

	result, err := s.CalcEngine.RunScenario(req.Records, scenario)
	if err != nil {
		return evaluation{}, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("scenario failed at adjustment %s", adjustment),
			Cause:     err,
		}
	}

	final, ok := result.FinalYear()
	if !ok {
		return evaluation{}, &BreakEvenError{Operation: "solve", Message: "scenario produced no forward years"}
	}

	value := final.PMPM
	if req.Target == TargetFinalTotalClaims {
		value = final.ProjectedTotalClaims
	}
	return evaluation{adjustment: adjustment, scenario: scenario, result: result, value: value}, nil
}

func within(value, target, tolerance decimal.Decimal) bool {
	return value.Sub(target).Abs().LessThanOrEqual(tolerance)
}

func closest(target decimal.Decimal, a, b evaluation) evaluation {
	if b.value.Sub(target).Abs().LessThan(a.value.Sub(target).Abs()) {
		return b
	}
	return a
}
