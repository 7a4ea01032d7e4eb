package domain

import (
	"github.com/shopspring/decimal"
)

// ClaimsRecord is one historical policy year of claims experience.
// A slice of records is chronological: index order matters for trending.
type ClaimsRecord struct {
	Year         int             `yaml:"year" json:"year" validate:"gt=0"`
	TotalClaims  decimal.Decimal `yaml:"total_claims" json:"totalClaims" validate:"gte=0"`
	HighCost     decimal.Decimal `yaml:"high_cost" json:"highCost" validate:"gte=0"`
	NonRecurring decimal.Decimal `yaml:"non_recurring" json:"nonRecurring" validate:"gte=0"`
	Members      int             `yaml:"members" json:"members" validate:"gt=0"`
	AverageAge   decimal.Decimal `yaml:"average_age" json:"averageAge" validate:"gt=0,lte=88,halfyear"` // whole or x.5
	Inflation    decimal.Decimal `yaml:"inflation" json:"inflation" validate:"gt=-1"`            // annual rate, 0.05 = 5%
	Weight       decimal.Decimal `yaml:"weight" json:"weight" validate:"gte=0"`
}

// AdjustedClaims removes high-cost and non-recurring claims, leaving the trendable base.
func (cr ClaimsRecord) AdjustedClaims() decimal.Decimal {
	return cr.TotalClaims.Sub(cr.HighCost).Sub(cr.NonRecurring)
}

// ProjectedClaimsRecord is the trended view of a single ClaimsRecord, projected to
// the first future policy year. Values are never modified after construction.
type ProjectedClaimsRecord struct {
	Year                   int             `json:"year"`
	AdjustedClaims         decimal.Decimal `json:"adjustedClaims"`
	MedicalTrendToPY       decimal.Decimal `json:"medicalTrendToPY"`
	MemberRiskTrendToPY    decimal.Decimal `json:"memberRiskTrendToPY"`
	CombinedTrendFactor    decimal.Decimal `json:"combinedTrendFactor"`
	ProjectedTrendedClaims decimal.Decimal `json:"projectedTrendedClaims"`
	ProjectedPMPM          decimal.Decimal `json:"projectedPMPM"`
	ProjectedPMPY          decimal.Decimal `json:"projectedPMPY"`
}
