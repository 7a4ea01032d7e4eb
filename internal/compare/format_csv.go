package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV, one row per scenario and forward year
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Inflation Adjustment",
		"Age Increment",
		"Year",
		"Projected Age",
		"Risk Trend",
		"Inflation Factor",
		"PMPM",
		"PMPY",
		"Projected Total Claims",
		"PMPM Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	var basePMPM map[int]decimal.Decimal
	if compSet.BaseResult != nil && compSet.BaseResult.Result != nil {
		basePMPM = make(map[int]decimal.Decimal, len(compSet.BaseResult.Result.Forward))
		for _, y := range compSet.BaseResult.Result.Forward {
			basePMPM[y.Year] = y.PMPM
		}
		if err := cf.writeScenario(writer, compSet.BaseResult, "base", basePMPM); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := cf.writeScenario(writer, &compSet.AlternativeResults[i], "alternative", basePMPM); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) writeScenario(writer *csv.Writer, result *ComparisonResult, scenarioType string, basePMPM map[int]decimal.Decimal) error {
	if result.Result == nil {
		return nil
	}
	for _, y := range result.Result.Forward {
		diff := ""
		if base, ok := basePMPM[y.Year]; ok {
			diff = y.PMPM.Sub(base).StringFixed(2)
		}
		row := []string{
			result.ScenarioName,
			scenarioType,
			result.InflationAdjustment.String(),
			string(result.AgeIncrement),
			strconv.Itoa(y.Year),
			y.ProjectedAge.String(),
			optionalDecimal(y.RiskTrend),
			optionalDecimal(y.InflationFactor),
			y.PMPM.StringFixed(2),
			y.PMPY.StringFixed(2),
			y.ProjectedTotalClaims.StringFixed(2),
			diff,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func optionalDecimal(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
