package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SensitivityAnalyzer sweeps scenario parameters and reports the final projected year
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeInflation sweeps the inflation adjustment of base across param.
// Sweep values are offsets added to the scenario's own adjustment.
func (sa *SensitivityAnalyzer) AnalyzeInflation(
	ctx context.Context,
	records []domain.ClaimsRecord,
	base domain.ScenarioConfig,
	param domain.SensitivityParameter,
) (*domain.SensitivityAnalysis, error) {
	if err := validateParameter(param); err != nil {
		return nil, err
	}

	baseResult, err := sa.calculationEngine.RunScenario(records, base)
	if err != nil {
		return nil, fmt.Errorf("failed to run base scenario: %w", err)
	}
	baseFinal, _ := baseResult.FinalYear()

	results, err := sa.sweep(ctx, records, base, param, baseFinal.PMPM)
	if err != nil {
		return nil, err
	}

	return &domain.SensitivityAnalysis{
		BaseScenarioName: base.Name,
		Parameter:        param,
		BaseFinalPMPM:    baseFinal.PMPM,
		Results:          results,
		Summary:          sa.calculateSensitivitySummary(results, base.InflationAdjustment, param),
	}, nil
}

// AnalyzeMatrix repeats the inflation sweep under each age increment strategy
func (sa *SensitivityAnalyzer) AnalyzeMatrix(
	ctx context.Context,
	records []domain.ClaimsRecord,
	base domain.ScenarioConfig,
	param domain.SensitivityParameter,
	strategies []domain.AgeIncrementStrategy,
) (*domain.SensitivityMatrix, error) {
	if err := validateParameter(param); err != nil {
		return nil, err
	}
	if len(strategies) == 0 {
		strategies = []domain.AgeIncrementStrategy{domain.StaticAge, domain.HalfYearStep, domain.FullYearStep}
	}

	baseResult, err := sa.calculationEngine.RunScenario(records, base)
	if err != nil {
		return nil, fmt.Errorf("failed to run base scenario: %w", err)
	}
	baseFinal, _ := baseResult.FinalYear()

	matrix := &domain.SensitivityMatrix{
		BaseScenarioName: base.Name,
		Parameter:        param,
		Strategies:       strategies,
		BaseFinalPMPM:    baseFinal.PMPM,
		Results:          make([][]domain.SensitivityResult, len(strategies)),
	}

	for i, strategy := range strategies {
		variant := base
		variant.AgeIncrement = strategy
		row, err := sa.sweep(ctx, records, variant, param, baseFinal.PMPM)
		if err != nil {
			return nil, err
		}
		matrix.Results[i] = row
	}

	return matrix, nil
}

func validateParameter(param domain.SensitivityParameter) error {
	if param.Name != domain.ParamInflationAdjustment {
		return fmt.Errorf("unsupported sensitivity parameter %q", param.Name)
	}
	if param.Steps < 1 {
		return fmt.Errorf("sensitivity steps must be at least 1, got %d", param.Steps)
	}
	if param.MinValue.GreaterThan(param.MaxValue) {
		return fmt.Errorf("sensitivity min %s is greater than max %s", param.MinValue, param.MaxValue)
	}
	return nil
}

func (sa *SensitivityAnalyzer) sweep(
	ctx context.Context,
	records []domain.ClaimsRecord,
	base domain.ScenarioConfig,
	param domain.SensitivityParameter,
	basePMPM decimal.Decimal,
) ([]domain.SensitivityResult, error) {
	values := generateParameterValues(param)
	results := make([]domain.SensitivityResult, 0, len(values))

	for _, offset := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg := base
		cfg.InflationAdjustment = base.InflationAdjustment.Add(offset)
		cfg.Name = fmt.Sprintf("%s_%s_%s", base.Name, param.Name, cfg.InflationAdjustment.String())

		result, err := sa.calculationEngine.RunScenario(records, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to run scenario for %s=%s: %w", param.Name, cfg.InflationAdjustment, err)
		}
		final, _ := result.FinalYear()

		sr := domain.SensitivityResult{
			ScenarioName:       cfg.Name,
			Adjustment:         cfg.InflationAdjustment,
			AgeIncrement:       cfg.AgeIncrement,
			FinalYear:          final.Year,
			FinalPMPM:          final.PMPM,
			FinalTotalClaims:   final.ProjectedTotalClaims,
			PMPMChangeFromBase: final.PMPM.Sub(basePMPM),
		}
		if !basePMPM.IsZero() {
			sr.PMPMChangePct = sr.PMPMChangeFromBase.Div(basePMPM).Mul(hundred).Round(2)
		}
		results = append(results, sr)
	}

	return results, nil
}

// generateParameterValues generates evenly spaced values from min to max inclusive
func generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.MinValue}
	}

	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	values := make([]decimal.Decimal, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// calculateSensitivitySummary rates how strongly the final PMPM reacts to the adjustment
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(
	results []domain.SensitivityResult,
	baseAdjustment decimal.Decimal,
	param domain.SensitivityParameter,
) domain.SensitivitySummary {
	if len(results) == 0 {
		return domain.SensitivitySummary{}
	}

	summary := domain.SensitivitySummary{
		MinFinalPMPM: results[0].FinalPMPM,
		MaxFinalPMPM: results[0].FinalPMPM,
	}

	for _, r := range results {
		summary.MinFinalPMPM = decimal.Min(summary.MinFinalPMPM, r.FinalPMPM)
		summary.MaxFinalPMPM = decimal.Max(summary.MaxFinalPMPM, r.FinalPMPM)

		points := r.Adjustment.Sub(baseAdjustment).Mul(hundred).Abs()
		if points.IsZero() {
			continue
		}
		score := r.PMPMChangePct.Abs().Div(points).Round(2)
		if score.GreaterThan(summary.PctPerPoint) {
			summary.PctPerPoint = score
		}
	}

	switch {
	case summary.PctPerPoint.GreaterThan(decimal.NewFromInt(5)):
		summary.RiskLevel = "HIGH"
		summary.Recommendations = []string{
			fmt.Sprintf("⚠️ High sensitivity to %s changes", param.Name),
			"Consider conservative inflation assumptions",
		}
	case summary.PctPerPoint.GreaterThan(decimal.NewFromInt(2)):
		summary.RiskLevel = "MEDIUM"
		summary.Recommendations = []string{
			fmt.Sprintf("Moderate sensitivity to %s changes", param.Name),
			"Revisit the inflation assumption at each renewal",
		}
	default:
		summary.RiskLevel = "LOW"
		summary.Recommendations = []string{
			fmt.Sprintf("Low sensitivity to %s changes", param.Name),
			"Projection appears robust",
		}
	}

	return summary
}
