package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	claimsCSV     = filepath.Join("..", "..", "testdata", "claims.csv")
	scenariosYAML = filepath.Join("..", "..", "testdata", "scenarios.yaml")
	agingYAML     = filepath.Join("..", "..", "testdata", "aging_factors.yaml")
)

func defaultSettings() config.Settings {
	return config.Settings{Format: "table"}
}

func executeCommand(t *testing.T, settings config.Settings, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(settings)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd(defaultSettings())

	assert.Equal(t, "claimtrend", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Expected root command to have a short description")
	assert.NotEmpty(t, cmd.Long, "Expected root command to have a long description")

	stdout, _, err := executeCommand(t, defaultSettings())
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:", "Expected root command to show help/usage")
}

func TestCommandSubcommands(t *testing.T) {
	cmd := newRootCmd(defaultSettings())

	commands := make(map[string]bool)
	for _, c := range cmd.Commands() {
		commands[c.Name()] = true
	}
	for _, name := range []string{"project", "validate", "budget", "sensitivity", "aging", "scenarios", "version"} {
		assert.True(t, commands[name], "Expected command %s to be registered", name)
	}
}

func TestProjectCommand_Table(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "project", claimsCSV)
	require.NoError(t, err)

	assert.Contains(t, stdout, "CLAIMS TREND SCENARIO COMPARISON")
	assert.Contains(t, stdout, "Base Scenario: Scenario 1 - Base Case")
	assert.Contains(t, stdout, "$95.49")
	assert.Contains(t, stdout, "$86.73")
	assert.Contains(t, stdout, "$105.16")
}

func TestProjectCommand_FormatFromSettings(t *testing.T) {
	settings := defaultSettings()
	settings.Format = "json"

	stdout, _, err := executeCommand(t, settings, "project", claimsCSV)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "Scenario 1 - Base Case", decoded["baseScenarioName"])

	stdout, _, err = executeCommand(t, settings, "project", claimsCSV, "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Scenario,Type,"), "Flag overrides the environment default")
}

func TestProjectCommand_ScenariosAndBase(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "project", claimsCSV,
		"--scenarios", scenariosYAML,
		"--base", "Scenario 3 - Higher Inflation, Fast Aging",
		"--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, "Scenario 3 - Higher Inflation, Fast Aging", rows[1][0])
	assert.Equal(t, "base", rows[1][1])
	assert.Equal(t, "full_year_step", rows[1][3])
}

func TestProjectCommand_Export(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "processed_claims.csv")

	_, stderr, err := executeCommand(t, defaultSettings(), "project", claimsCSV, "--export", exportPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Exported processed-csv data to")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "82.23", rows[1][14])

	_, _, err = executeCommand(t, defaultSettings(), "project", claimsCSV,
		"--export", exportPath, "--export-format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestProjectCommand_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := executeCommand(t, defaultSettings(), "project", "nonexistent.csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("bad format", func(t *testing.T) {
		_, _, err := executeCommand(t, defaultSettings(), "project", claimsCSV, "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})

	t.Run("unknown base", func(t *testing.T) {
		_, _, err := executeCommand(t, defaultSettings(), "project", claimsCSV, "--base", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base scenario nope not found")
	})

	t.Run("ages leave custom table", func(t *testing.T) {
		stdout, _, err := executeCommand(t, defaultSettings(), "project", claimsCSV, "--aging-table", agingYAML)
		require.NoError(t, err)
		assert.Contains(t, stdout, "FAILED SCENARIOS", "Fast aging reaches 43.5, past the end of the table")

		_, _, err = executeCommand(t, defaultSettings(), "project", claimsCSV, "--aging-table", agingYAML,
			"--base", "Scenario 3 - Higher Inflation, Fast Aging")
		require.Error(t, err)
		assert.ErrorIs(t, err, calculation.ErrAgeOutOfDomain)
	})

	t.Run("no args", func(t *testing.T) {
		_, _, err := executeCommand(t, defaultSettings(), "project")
		assert.Error(t, err)
	})
}

func TestProjectCommand_WhatIf(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "project", claimsCSV,
		"--what-if", "shift_inflation:by=0.01",
		"--what-if", "set_age_increment:strategy=full_year_step;shift_inflation:by=0.01;rename:name=Same As Three",
		"--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+5*3)
	assert.Equal(t, "Scenario 1 - Base Case + inflation +1 pts", rows[10][0])
	assert.Equal(t, "Same As Three", rows[13][0])
	assert.Equal(t, rows[9][8], rows[15][8], "Fast aging plus one point matches scenario 3's final PMPM")

	_, _, err = executeCommand(t, defaultSettings(), "project", claimsCSV, "--what-if", "shift_inflation:by=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than -100%")

	_, _, err = executeCommand(t, defaultSettings(), "project", claimsCSV, "--what-if", "retire_early:months=12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transform")
}

func TestBudgetCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "budget", claimsCSV, "90")
	require.NoError(t, err)
	assert.Contains(t, stdout, "BUDGET BREAK-EVEN RESULTS")
	assert.Contains(t, stdout, "Scenario:            Scenario 1 - Base Case")
	assert.Contains(t, stdout, "✓ Converged")

	stdout, _, err = executeCommand(t, defaultSettings(), "budget", claimsCSV, "$1300000",
		"--target", "total", "--scenario", "Scenario 2 - Lower Inflation, Static Age", "--format", "json")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "final_total_claims", decoded["target"])

	_, _, err = executeCommand(t, defaultSettings(), "budget", claimsCSV, "5000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget target unreachable")

	_, _, err = executeCommand(t, defaultSettings(), "budget", claimsCSV, "90", "--scenario", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario nope not found")

	_, _, err = executeCommand(t, defaultSettings(), "budget", claimsCSV, "ninety")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target")
}

func TestSensitivityCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "sensitivity", claimsCSV)
	require.NoError(t, err)
	assert.Contains(t, stdout, "INFLATION SENSITIVITY ANALYSIS")
	assert.Contains(t, stdout, "Base Scenario:   Scenario 1 - Base Case")
	assert.Contains(t, stdout, "$95.49")

	stdout, _, err = executeCommand(t, defaultSettings(), "sensitivity", claimsCSV, "--matrix", "--steps", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "FINAL PMPM BY AGING STRATEGY")
	assert.Contains(t, stdout, "full_year_step")

	_, _, err = executeCommand(t, defaultSettings(), "sensitivity", claimsCSV, "--steps", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps must be at least 1")
}

func TestValidateCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "validate", claimsCSV, "--scenarios", scenariosYAML)
	require.NoError(t, err)
	assert.Equal(t, "Claims data is valid: 2 records (2022-2023), 3 scenarios\n", stdout)

	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Year,Total Claims\n2022,1\n"), 0644))
	_, _, err = executeCommand(t, defaultSettings(), "validate", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, calculation.ErrMalformedRecordSequence)
}

func TestAgingCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "aging", "40", "40.5")
	require.NoError(t, err)
	assert.Equal(t, "Age    Factor\n40     3.6206\n40.5   3.6985\n", stdout)

	stdout, _, err = executeCommand(t, defaultSettings(), "aging")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 1+88, "Header plus every tabulated age")
	assert.Equal(t, "88     14.172", lines[len(lines)-1])

	stdout, _, err = executeCommand(t, defaultSettings(), "aging", "--aging-table", agingYAML)
	require.NoError(t, err)
	assert.Contains(t, stdout, "38     1.1\n")

	_, _, err = executeCommand(t, defaultSettings(), "aging", "40.25")
	assert.ErrorIs(t, err, calculation.ErrAgeOutOfDomain)

	_, _, err = executeCommand(t, defaultSettings(), "aging", "forty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid age")
}

func TestScenariosCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "scenarios")
	require.NoError(t, err)

	scenarios, err := config.NewInputParser().ParseScenarios([]byte(stdout))
	require.NoError(t, err, "Printed scenarios must load back")
	assert.Len(t, scenarios, 3)
	assert.Contains(t, stdout, "Scenario 2 - Lower Inflation, Static Age")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, defaultSettings(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "claimtrend dev (commit none, built unknown)"))
}
