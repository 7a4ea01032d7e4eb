package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(defaultComparison(t))

	require.NotEmpty(t, result, "Expected formatted output")
	assert.Contains(t, result, "CLAIMS TREND SCENARIO COMPARISON")
	assert.Contains(t, result, "Base Scenario: Scenario 1 - Base Case")
	assert.Contains(t, result, "Claims Data: claims.csv")
	assert.Contains(t, result, "Scenario 1 - Base Case (base)")
	assert.Contains(t, result, "$81.49", "Baseline PMPM shown to the cent")
	assert.Contains(t, result, "$95.49")
	assert.Contains(t, result, "$1.20M", "Final total claims shown in millions")
	assert.Contains(t, result, "COMPARISON TO BASE")
	assert.Contains(t, result, "Final PMPM:       -$8.76 (-9.2%)")
	assert.Contains(t, result, "Final PMPM:       +$9.67 (10.1%)")
	assert.Contains(t, result, "RECOMMENDATIONS")
	assert.NotContains(t, result, "FAILED SCENARIOS")
}

func TestTableFormatter_Format_YearRows(t *testing.T) {
	result := (&TableFormatter{}).Format(defaultComparison(t))

	// base year carries no trend factors
	assert.Contains(t, result, "2024     41.0            -          -     $81.49    $977.82")
	assert.Contains(t, result, "2025     41.5       1.0215     1.0600     $88.23   $1058.76")
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := &ComparisonSet{
		BaseScenarioName: "Base",
		BaseResult: &ComparisonResult{
			ScenarioName: "Base",
			BaselinePMPM: decimal.NewFromInt(80),
			FinalPMPM:    decimal.NewFromInt(90),
		},
		AlternativeResults: []ComparisonResult{},
		Failed:             []FailedScenario{{ScenarioName: "broken", Error: "age outside aging factor domain"}},
	}

	result := formatter.Format(compSet)
	assert.Contains(t, result, "Base (base)")
	assert.NotContains(t, result, "COMPARISON TO BASE")
	assert.Contains(t, result, "FAILED SCENARIOS")
	assert.Contains(t, result, "broken: age outside aging factor domain")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	result := (&TableFormatter{}).FormatCompact(defaultComparison(t))

	assert.Equal(t,
		"Base: Scenario 1 - Base Case $95.49 | Scenario 2 - Lower Inflation, Static Age: -$8.76 | Scenario 3 - Higher Inflation, Fast Aging: +$9.67",
		result)
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	assert.Equal(t, "1.50M", tf.formatDecimal(decimal.NewFromInt(1500000)))
	assert.Equal(t, "2.5K", tf.formatDecimal(decimal.NewFromInt(2500)))
	assert.Equal(t, "999", tf.formatDecimal(decimal.NewFromInt(999)))

	assert.Equal(t, "+", tf.deltaSymbol(decimal.NewFromInt(1)))
	assert.Equal(t, "-", tf.deltaSymbol(decimal.NewFromInt(-1)))
	assert.Equal(t, " ", tf.deltaSymbol(decimal.Zero))

	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "a very...", tf.truncate("a very long name", 9))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(defaultComparison(t))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+3*3, "Header plus one row per scenario and forward year")

	assert.Equal(t, "Scenario", rows[0][0])
	assert.Equal(t, "PMPM Diff from Base", rows[0][11])

	baseYear := rows[1]
	assert.Equal(t, []string{
		"Scenario 1 - Base Case", "base", "0", "half_year_step", "2024", "41", "", "", "81.49", "977.82", "1026711.00", "0.00",
	}, baseYear)

	final := rows[6]
	assert.Equal(t, "Scenario 2 - Lower Inflation, Static Age", final[0])
	assert.Equal(t, "alternative", final[1])
	assert.Equal(t, "-0.01", final[2])
	assert.Equal(t, "2026", final[4])
	assert.Equal(t, "1", final[6])
	assert.Equal(t, "1.05", final[7])
	assert.Equal(t, "86.73", final[8])
	assert.Equal(t, "-8.76", final[11])
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := defaultComparison(t)

	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(compSet)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "Scenario 1 - Base Case", decoded["baseScenarioName"])
		assert.Len(t, decoded["alternativeResults"], 2)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))
	}

	out, err := (&JSONFormatter{}).Format(compSet)
	require.NoError(t, err)
	assert.Contains(t, out, `"finalPMPM":"95.49"`)
	assert.Contains(t, out, `"riskTrend":null`)

	var doc struct {
		ScenarioCount int `json:"scenarioCount"`
		Ranking       []struct {
			Rank         int    `json:"rank"`
			ScenarioName string `json:"scenarioName"`
			FinalPMPM    string `json:"finalPMPM"`
		} `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 3, doc.ScenarioCount)
	require.Len(t, doc.Ranking, 3)
	assert.Equal(t, "Scenario 2 - Lower Inflation, Static Age", doc.Ranking[0].ScenarioName)
	assert.Equal(t, "86.73", doc.Ranking[0].FinalPMPM)
	assert.Equal(t, "Scenario 1 - Base Case", doc.Ranking[1].ScenarioName)
	assert.Equal(t, 3, doc.Ranking[2].Rank)
	assert.Equal(t, "105.16", doc.Ranking[2].FinalPMPM)
}
