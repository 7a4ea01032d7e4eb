package calculation

import (
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

// ForwardHorizonYears is the number of policy years in a forward projection,
// the base year included.
const ForwardHorizonYears = 3

// ForwardInput is the starting point of a forward projection
type ForwardInput struct {
	BaselinePMPM    decimal.Decimal // weighted PMPM for the base year
	ProjectedAge    decimal.Decimal // average age in the base year
	BaseYear        int
	LatestInflation decimal.Decimal // inflation of the last historical record
	LatestMembers   int
}

// ProjectForward extends the baseline PMPM over the forward horizon. The base year
// is reported as-is; each later year applies the constant inflation factor and the
// risk trend of ageing one strategy step.
func ProjectForward(table *AgingFactorTable, in ForwardInput, cfg domain.ScenarioConfig) ([]domain.ForwardYearProjection, error) {
	members := decimal.NewFromInt(int64(in.LatestMembers))
	inflation := inflationFactor(in.LatestInflation, cfg.InflationAdjustment)
	step := cfg.AgeIncrement.Increment()

	years := make([]domain.ForwardYearProjection, 0, ForwardHorizonYears)

	pmpm := in.BaselinePMPM
	pmpy := pmpm.Mul(monthsPerYear)
	years = append(years, domain.ForwardYearProjection{
		Year:                 in.BaseYear,
		ProjectedAge:         in.ProjectedAge,
		PMPM:                 pmpm,
		PMPY:                 pmpy,
		ProjectedTotalClaims: pmpy.Mul(members),
	})

	age := in.ProjectedAge
	for offset := 1; offset < ForwardHorizonYears; offset++ {
		nextAge := age.Add(step)
		riskTrend, err := table.RiskTrend(age, nextAge)
		if err != nil {
			return nil, err
		}

		pmpm = pmpm.Mul(inflation).Mul(riskTrend).Round(moneyPlaces)
		pmpy = pmpm.Mul(monthsPerYear)
		rt, inf := riskTrend, inflation
		years = append(years, domain.ForwardYearProjection{
			Year:                 in.BaseYear + offset,
			ProjectedAge:         nextAge,
			RiskTrend:            &rt,
			InflationFactor:      &inf,
			PMPM:                 pmpm,
			PMPY:                 pmpy,
			ProjectedTotalClaims: pmpy.Mul(members),
		})
		age = nextAge
	}

	return years, nil
}
