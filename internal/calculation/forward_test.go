package calculation

import (
	"testing"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectForward_HalfYearStep(t *testing.T) {
	cfg := domain.ScenarioConfig{Name: "base", AgeIncrement: domain.HalfYearStep}
	years, err := ProjectForward(DefaultAgingFactorTable(), ForwardInput{
		BaselinePMPM:    dec("81.485"),
		ProjectedAge:    dec("41"),
		BaseYear:        2024,
		LatestInflation: dec("0.06"),
		LatestMembers:   1050,
	}, cfg)
	require.NoError(t, err)
	require.Len(t, years, ForwardHorizonYears)

	base := years[0]
	assert.Equal(t, 2024, base.Year)
	assert.True(t, base.IsBaseYear())
	assert.Nil(t, base.RiskTrend)
	assert.Nil(t, base.InflationFactor)
	assert.Equal(t, "81.485", base.PMPM.String())
	assert.Equal(t, "977.82", base.PMPY.String())
	assert.Equal(t, "41", base.ProjectedAge.String())
	assert.Equal(t, "1026711", base.ProjectedTotalClaims.String())

	second := years[1]
	assert.Equal(t, 2025, second.Year)
	assert.Equal(t, "41.5", second.ProjectedAge.String())
	require.NotNil(t, second.RiskTrend)
	require.NotNil(t, second.InflationFactor)
	assert.Equal(t, "1.02150196", second.RiskTrend.String())
	assert.Equal(t, "1.06", second.InflationFactor.String())
	assert.Equal(t, "88.23", second.PMPM.String())
	assert.Equal(t, "1058.76", second.PMPY.String())

	third := years[2]
	assert.Equal(t, 2026, third.Year)
	assert.Equal(t, "42", third.ProjectedAge.String())
	assert.Equal(t, "1.02104936", third.RiskTrend.String())
	assert.Equal(t, "95.49", third.PMPM.String())
	assert.Equal(t, "1145.88", third.PMPY.String())
}

func TestProjectForward_StaticAgeOnlyInflationGrows(t *testing.T) {
	cfg := domain.ScenarioConfig{Name: "static", AgeIncrement: domain.StaticAge, InflationAdjustment: dec("-0.01")}
	years, err := ProjectForward(DefaultAgingFactorTable(), ForwardInput{
		BaselinePMPM:    dec("78.67"),
		ProjectedAge:    dec("40.5"),
		BaseYear:        2024,
		LatestInflation: dec("0.06"),
		LatestMembers:   1050,
	}, cfg)
	require.NoError(t, err)

	for _, y := range years[1:] {
		assert.True(t, y.RiskTrend.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, "1.05", y.InflationFactor.String())
		assert.Equal(t, "40.5", y.ProjectedAge.String())
	}
	assert.Equal(t, "82.6", years[1].PMPM.String())
	assert.Equal(t, "86.73", years[2].PMPM.String())
}

func TestProjectForward_FullYearStep(t *testing.T) {
	cfg := domain.ScenarioConfig{Name: "fast", AgeIncrement: domain.FullYearStep, InflationAdjustment: dec("0.01")}
	years, err := ProjectForward(DefaultAgingFactorTable(), ForwardInput{
		BaselinePMPM:    dec("84.43"),
		ProjectedAge:    dec("41.5"),
		BaseYear:        2024,
		LatestInflation: dec("0.06"),
		LatestMembers:   1050,
	}, cfg)
	require.NoError(t, err)

	assert.Equal(t, "42.5", years[1].ProjectedAge.String())
	assert.Equal(t, "43.5", years[2].ProjectedAge.String())
	assert.Equal(t, "1.04301898", years[1].RiskTrend.String())
	assert.Equal(t, "94.23", years[1].PMPM.String())
	assert.Equal(t, "105.16", years[2].PMPM.String())
}

func TestProjectForward_AgeLeavesTable(t *testing.T) {
	cfg := domain.ScenarioConfig{Name: "old", AgeIncrement: domain.FullYearStep}
	_, err := ProjectForward(DefaultAgingFactorTable(), ForwardInput{
		BaselinePMPM:    dec("500"),
		ProjectedAge:    dec("88"),
		BaseYear:        2024,
		LatestInflation: dec("0.05"),
		LatestMembers:   10,
	}, cfg)
	assert.ErrorIs(t, err, ErrAgeOutOfDomain)
}
