package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityTable renders a one-dimensional inflation sweep
func SensitivityTable(analysis *domain.SensitivityAnalysis) string {
	var sb strings.Builder

	sb.WriteString("INFLATION SENSITIVITY ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario:   %s\n", analysis.BaseScenarioName))
	sb.WriteString(fmt.Sprintf("Base Final PMPM: %s\n\n", FormatCurrency(analysis.BaseFinalPMPM)))

	sb.WriteString(fmt.Sprintf("%-12s %-16s %6s %12s %12s %10s\n",
		"Adjustment", "Age Increment", "Year", "Final PMPM", "Change", "Change %"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, r := range analysis.Results {
		sb.WriteString(fmt.Sprintf("%-12s %-16s %6d %12s %12s %9s%%\n",
			FormatPercentage(r.Adjustment),
			r.AgeIncrement,
			r.FinalYear,
			FormatCurrency(r.FinalPMPM),
			signed(r.PMPMChangeFromBase),
			r.PMPMChangePct.StringFixed(2)))
	}

	s := analysis.Summary
	sb.WriteString("\nSUMMARY\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Final PMPM Range:  %s to %s\n", FormatCurrency(s.MinFinalPMPM), FormatCurrency(s.MaxFinalPMPM)))
	sb.WriteString(fmt.Sprintf("Change per Point:  %s%%\n", s.PctPerPoint.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Risk Level:        %s\n", s.RiskLevel))
	for _, rec := range s.Recommendations {
		sb.WriteString("• " + rec + "\n")
	}

	return sb.String()
}

// SensitivityMatrixTable renders final PMPM by age increment strategy and adjustment
func SensitivityMatrixTable(matrix *domain.SensitivityMatrix) string {
	var sb strings.Builder

	sb.WriteString("FINAL PMPM BY AGING STRATEGY AND INFLATION ADJUSTMENT\n")
	sb.WriteString(fmt.Sprintf("Base: %s (%s)\n\n", matrix.BaseScenarioName, FormatCurrency(matrix.BaseFinalPMPM)))

	if len(matrix.Results) == 0 {
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-16s", "Strategy"))
	for _, r := range matrix.Results[0] {
		sb.WriteString(fmt.Sprintf(" %10s", FormatPercentage(r.Adjustment)))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 16+11*len(matrix.Results[0])) + "\n")

	for i, row := range matrix.Results {
		sb.WriteString(fmt.Sprintf("%-16s", matrix.Strategies[i]))
		for _, r := range row {
			sb.WriteString(fmt.Sprintf(" %10s", FormatCurrency(r.FinalPMPM)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatCurrency(d.Abs())
	}
	return "+" + FormatCurrency(d)
}
