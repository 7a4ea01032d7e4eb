package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("CLAIMS TREND SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.RecordsPath != "" {
		sb.WriteString(fmt.Sprintf("Claims Data: %s\n", compSet.RecordsPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 30
	numWidth := 12

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth-4, "Age",
		numWidth, "Base PMPM",
		numWidth, "Final PMPM",
		numWidth+2, "Final Claims"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	// Alternative scenarios
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Year-by-year projections
	for _, result := range compSet.Results() {
		if result.Result == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s\n", result.ScenarioName))
		if result.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", result.Description))
		}
		sb.WriteString(fmt.Sprintf("  %-6s %6s %12s %10s %10s %10s %14s\n",
			"Year", "Age", "Risk Trend", "Inflation", "PMPM", "PMPY", "Total Claims"))
		for _, y := range result.Result.Forward {
			risk, infl := "-", "-"
			if y.RiskTrend != nil {
				risk = y.RiskTrend.StringFixed(4)
			}
			if y.InflationFactor != nil {
				infl = y.InflationFactor.StringFixed(4)
			}
			sb.WriteString(fmt.Sprintf("  %-6d %6s %12s %10s %10s %10s %14s\n",
				y.Year, y.ProjectedAge.StringFixed(1), risk, infl,
				"$"+y.PMPM.StringFixed(2), "$"+y.PMPY.StringFixed(2), "$"+tf.formatDecimal(y.ProjectedTotalClaims)))
		}
	}

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			sb.WriteString(fmt.Sprintf("  Final PMPM:       %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.PMPMDiffFromBase),
				alt.PMPMDiffFromBase.Abs().StringFixed(2),
				alt.PMPMPctFromBase.StringFixed(1)))
			if !alt.TotalClaimsDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Total Claims:     %s$%s\n",
					tf.deltaSymbol(alt.TotalClaimsDiffFromBase),
					tf.formatDecimal(alt.TotalClaimsDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Failed) > 0 {
		sb.WriteString("\nFAILED SCENARIOS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, f := range compSet.Failed {
			sb.WriteString(fmt.Sprintf("%s: %s\n", f.ScenarioName, f.Error))
		}
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth-4, result.ProjectedAge.StringFixed(1),
		numWidth, "$"+result.BaselinePMPM.StringFixed(2),
		numWidth, "$"+result.FinalPMPM.StringFixed(2),
		numWidth+2, "$"+tf.formatDecimal(result.FinalTotalClaims))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	base := "n/a"
	if compSet.BaseResult != nil {
		base = "$" + compSet.BaseResult.FinalPMPM.StringFixed(2)
	}
	sb.WriteString(fmt.Sprintf("Base: %s %s | ", compSet.BaseScenarioName, base))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.PMPMDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s", alt.PMPMDiffFromBase.StringFixed(2))
		} else if alt.PMPMDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s", alt.PMPMDiffFromBase.Abs().StringFixed(2))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
