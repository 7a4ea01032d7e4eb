package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TableFormatter formats budget solve results as a console report
type TableFormatter struct{}

// Format generates the console report for a solve result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BUDGET BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Scenario:            %s\n", result.Scenario.Name))
	sb.WriteString(fmt.Sprintf("Target:              %s = %s\n", result.Target, tf.formatValue(result.Target, result.TargetValue)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Converged)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	sb.WriteString("\n")

	sb.WriteString("REQUIRED ASSUMPTION\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Inflation Adjustment: %s%%\n", result.InflationAdjustment.Mul(hundred).StringFixed(3)))
	sb.WriteString(fmt.Sprintf("Achieved Value:       %s\n", tf.formatValue(result.Target, result.AchievedValue)))
	sb.WriteString(fmt.Sprintf("At Current Trend:     %s\n", tf.formatValue(result.Target, result.BaseValue)))

	gap := result.TargetValue.Sub(result.BaseValue)
	if !gap.IsZero() {
		sb.WriteString(fmt.Sprintf("Budget Gap:           %s%s\n", tf.deltaSymbol(gap), tf.formatValue(result.Target, gap.Abs())))
	}
	sb.WriteString("\n")

	if result.Result != nil {
		sb.WriteString("FORWARD PROJECTION AT REQUIRED ASSUMPTION\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("  %-6s %8s %10s %12s %16s\n", "Year", "Age", "PMPM", "PMPY", "Total Claims"))
		for _, fy := range result.Result.Forward {
			sb.WriteString(fmt.Sprintf("  %-6d %8s %10s %12s %16s\n",
				fy.Year, fy.ProjectedAge, fy.PMPM.StringFixed(2), fy.PMPY.StringFixed(2), fy.ProjectedTotalClaims.StringFixed(2)))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(converged bool) string {
	if converged {
		return "✓ Converged"
	}
	return "✗ Closest value within iteration limit"
}

func (tf *TableFormatter) formatValue(target BudgetTarget, d decimal.Decimal) string {
	if target == TargetFinalTotalClaims {
		return "$" + d.StringFixed(0)
	}
	return "$" + d.StringFixed(2)
}

func (tf *TableFormatter) deltaSymbol(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+"
	}
	if d.IsNegative() {
		return "-"
	}
	return ""
}

// JSONFormatter formats solve results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a solve result
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal solve result: %w", err)
	}
	return string(data), nil
}
