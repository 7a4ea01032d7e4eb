package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/claimtrend/internal/breakeven"
	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/compare"
	"github.com/rgehrsitz/claimtrend/internal/config"
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/rgehrsitz/claimtrend/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	claimsCSV     = filepath.Join("..", "..", "testdata", "claims.csv")
	scenariosYAML = filepath.Join("..", "..", "testdata", "scenarios.yaml")
	agingYAML     = filepath.Join("..", "..", "testdata", "aging_factors.yaml")
)

// pipeline loads inputs the way the CLI does, driven by CLAIMTREND_* settings
func pipeline(t *testing.T) ([]domain.ClaimsRecord, *compare.ComparisonSet) {
	t.Helper()

	settings, err := config.LoadSettings()
	require.NoError(t, err)

	parser := config.NewInputParser()
	records, err := parser.LoadRecordsFromFile(claimsCSV)
	require.NoError(t, err)

	scenarios := domain.DefaultScenarios()
	if settings.ScenariosFile != "" {
		scenarios, err = parser.LoadScenariosFromFile(settings.ScenariosFile)
		require.NoError(t, err)
	}

	engine := calculation.NewCalculationEngine()
	if settings.AgingTableFile != "" {
		table, err := parser.LoadAgingFactorsFromFile(settings.AgingTableFile)
		require.NoError(t, err)
		engine = calculation.NewCalculationEngineWithTable(table)
	}

	compSet, err := compare.NewCompareEngine(engine).Compare(records, scenarios, compare.CompareOptions{RecordsPath: claimsCSV})
	require.NoError(t, err)
	return records, compSet
}

func TestIntegrationSmokeTest(t *testing.T) {
	t.Run("default_scenarios", func(t *testing.T) {
		_, compSet := pipeline(t)

		require.NotNil(t, compSet.BaseResult)
		assert.Equal(t, "Scenario 1 - Base Case", compSet.BaseScenarioName)
		assert.Equal(t, "81.49", compSet.BaseResult.BaselinePMPM.StringFixed(2))
		assert.Equal(t, "95.49", compSet.BaseResult.FinalPMPM.StringFixed(2))
		require.Len(t, compSet.AlternativeResults, 2)
		assert.Equal(t, "86.73", compSet.AlternativeResults[0].FinalPMPM.StringFixed(2))
		assert.Equal(t, "105.16", compSet.AlternativeResults[1].FinalPMPM.StringFixed(2))
		assert.Empty(t, compSet.Failed)
	})

	t.Run("scenario_file_from_environment", func(t *testing.T) {
		t.Setenv("CLAIMTREND_SCENARIOS", scenariosYAML)
		_, fromFile := pipeline(t)

		t.Setenv("CLAIMTREND_SCENARIOS", "")
		_, builtIn := pipeline(t)

		require.Len(t, fromFile.Results(), len(builtIn.Results()))
		for i, r := range fromFile.Results() {
			assert.True(t, r.FinalPMPM.Equal(builtIn.Results()[i].FinalPMPM),
				"%s: scenario file mirrors the built-in set", r.ScenarioName)
		}
	})

	t.Run("custom_aging_table", func(t *testing.T) {
		t.Setenv("CLAIMTREND_AGING_TABLE", agingYAML)
		_, compSet := pipeline(t)

		require.Len(t, compSet.Failed, 1)
		assert.Equal(t, "Scenario 3 - Higher Inflation, Fast Aging", compSet.Failed[0].ScenarioName)
		assert.ErrorIs(t, compSet.Runs[2].Err, calculation.ErrAgeOutOfDomain)
		assert.Contains(t, compSet.Recommendations[len(compSet.Recommendations)-1], "Review Inputs")
	})
}

func TestIntegrationRegression(t *testing.T) {
	t.Run("calculation_consistency", func(t *testing.T) {
		_, first := pipeline(t)
		_, second := pipeline(t)

		a, err := (&compare.JSONFormatter{}).Format(first)
		require.NoError(t, err)
		b, err := (&compare.JSONFormatter{}).Format(second)
		require.NoError(t, err)
		assert.JSONEq(t, a, b, "Repeated runs produce identical results")
	})

	t.Run("json_round_trip_values", func(t *testing.T) {
		_, compSet := pipeline(t)
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		require.NoError(t, err)

		var decoded struct {
			BaseResult struct {
				FinalTotalClaims decimal.Decimal `json:"finalTotalClaims"`
				PMPMGrowthPct    decimal.Decimal `json:"pmpmGrowthPct"`
			} `json:"baseResult"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "1203174", decoded.BaseResult.FinalTotalClaims.StringFixed(0))
		assert.Equal(t, "17.19", decoded.BaseResult.PMPMGrowthPct.StringFixed(2))
	})
}

func TestIntegrationExports(t *testing.T) {
	records, compSet := pipeline(t)
	report := output.NewReport(records, compSet.Runs)
	dir := t.TempDir()

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".out")
			require.NoError(t, output.WriteFile(output.GetFormatterByName(name), report, path))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotEmpty(t, data)

			if name == "processed-csv" || name == "forward-csv" {
				rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
				require.NoError(t, err)
				assert.Greater(t, len(rows), len(compSet.Runs))
			}
		})
	}
}

func TestIntegrationBudgetMatchesComparison(t *testing.T) {
	records, compSet := pipeline(t)
	alt := compSet.AlternativeResults[1]

	// Solving scenario 1 for scenario 3's final PMPM must not exceed scenario 3's own aging
	result, err := breakeven.NewDefaultSolver(nil).Solve(context.Background(), breakeven.SolveRequest{
		Records:      records,
		BaseScenario: domain.DefaultScenarios()[0],
		Target:       breakeven.TargetFinalPMPM,
		TargetValue:  alt.FinalPMPM,
		Constraints:  breakeven.DefaultConstraints(),
	})
	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.True(t, result.InflationAdjustment.GreaterThan(alt.InflationAdjustment),
		"Half-year aging needs more than one point of extra inflation to match fast aging")
}
