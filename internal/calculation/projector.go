package calculation

import (
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// ProjectRecords trends every historical record to the projected policy year.
//
// Each record's medical trend compounds (1 + inflation + adjustment) over itself and
// every later record, so older years carry a longer tail. The risk trend moves the
// record's average age to projectedAge. The input slice is not modified.
func ProjectRecords(
	table *AgingFactorTable,
	records []domain.ClaimsRecord,
	projectedAge decimal.Decimal,
	inflationAdjustment decimal.Decimal,
) ([]domain.ProjectedClaimsRecord, error) {
	if len(records) == 0 {
		return nil, ErrMalformedRecordSequence
	}

	// tail[i] is the unrounded product of the adjusted inflation factors from i to the end
	tail := make([]decimal.Decimal, len(records)+1)
	tail[len(records)] = decimal.NewFromInt(1)
	for i := len(records) - 1; i >= 0; i-- {
		tail[i] = tail[i+1].Mul(inflationFactor(records[i].Inflation, inflationAdjustment))
	}

	projected := make([]domain.ProjectedClaimsRecord, len(records))
	for i, rec := range records {
		if rec.Members <= 0 {
			return nil, &RecordError{Index: i, Year: rec.Year, Err: ErrZeroMembers}
		}

		riskTrend, err := table.RiskTrend(rec.AverageAge, projectedAge)
		if err != nil {
			return nil, &RecordError{Index: i, Year: rec.Year, Err: err}
		}

		adjusted := rec.AdjustedClaims()
		medicalTrend := tail[i].Round(trendPlaces)
		combined := medicalTrend.Mul(riskTrend).Round(trendPlaces)
		trendedClaims := adjusted.Mul(combined).Round(moneyPlaces)
		pmpm := trendedClaims.Div(monthsPerYear.Mul(decimal.NewFromInt(int64(rec.Members)))).Round(moneyPlaces)

		projected[i] = domain.ProjectedClaimsRecord{
			Year:                   rec.Year,
			AdjustedClaims:         adjusted,
			MedicalTrendToPY:       medicalTrend,
			MemberRiskTrendToPY:    riskTrend,
			CombinedTrendFactor:    combined,
			ProjectedTrendedClaims: trendedClaims,
			ProjectedPMPM:          pmpm,
			ProjectedPMPY:          pmpm.Mul(monthsPerYear).Round(moneyPlaces),
		}
	}

	return projected, nil
}

// inflationFactor is 1 + rate + adjustment
func inflationFactor(rate, adjustment decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rate).Add(adjustment)
}
