package calculation

import (
	"fmt"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

// WeightedPMPM is the weight-averaged projected PMPM across all records.
// projected[i] must be the projection of records[i].
func WeightedPMPM(projected []domain.ProjectedClaimsRecord, records []domain.ClaimsRecord) (decimal.Decimal, error) {
	if len(projected) == 0 || len(projected) != len(records) {
		return decimal.Zero, fmt.Errorf("%w: %d projections for %d records",
			ErrMalformedRecordSequence, len(projected), len(records))
	}

	weightedSum := decimal.Zero
	weightSum := decimal.Zero
	for i, rec := range records {
		if rec.Weight.IsNegative() {
			return decimal.Zero, &RecordError{Index: i, Year: rec.Year,
				Err: fmt.Errorf("%w: negative weight %s", ErrMalformedRecordSequence, rec.Weight)}
		}
		weightedSum = weightedSum.Add(projected[i].ProjectedPMPM.Mul(rec.Weight))
		weightSum = weightSum.Add(rec.Weight)
	}

	if weightSum.IsZero() {
		return decimal.Zero, ErrZeroWeightSum
	}

	return weightedSum.Div(weightSum), nil
}
