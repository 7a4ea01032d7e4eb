package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	trendPlaces = 8 // factors and ratios
	moneyPlaces = 2 // currency amounts
)

var half = decimal.NewFromFloat(0.5)

// AgingFactorTable maps whole member ages to relative cost factors.
// It is validated on construction and read-only afterwards.
type AgingFactorTable struct {
	factors map[int]decimal.Decimal
	minAge  int
	maxAge  int
}

var defaultAgingTable = MustAgingFactorTable(domain.DefaultAgingFactors())

// DefaultAgingFactorTable returns the built-in aging curve
func DefaultAgingFactorTable() *AgingFactorTable {
	return defaultAgingTable
}

// MustAgingFactorTable is NewAgingFactorTable for data known to be valid
func MustAgingFactorTable(factors map[int]decimal.Decimal) *AgingFactorTable {
	t, err := NewAgingFactorTable(factors)
	if err != nil {
		panic(err)
	}
	return t
}

// NewAgingFactorTable validates and copies an age -> factor mapping. Ages must be
// contiguous, factors positive and non-decreasing with age.
func NewAgingFactorTable(factors map[int]decimal.Decimal) (*AgingFactorTable, error) {
	if len(factors) == 0 {
		return nil, fmt.Errorf("aging factor table is empty")
	}

	ages := make([]int, 0, len(factors))
	for age := range factors {
		ages = append(ages, age)
	}
	sort.Ints(ages)

	if ages[0] < 0 {
		return nil, fmt.Errorf("aging factor table has negative age %d", ages[0])
	}

	copied := make(map[int]decimal.Decimal, len(factors))
	for i, age := range ages {
		factor := factors[age]
		if !factor.IsPositive() {
			return nil, fmt.Errorf("aging factor for age %d must be positive, got %s", age, factor)
		}
		if i > 0 {
			prev := ages[i-1]
			if age != prev+1 {
				return nil, fmt.Errorf("aging factor table has a gap between ages %d and %d", prev, age)
			}
			if factor.LessThan(factors[prev]) {
				return nil, fmt.Errorf("aging factor for age %d (%s) is lower than age %d (%s)",
					age, factor, prev, factors[prev])
			}
		}
		copied[age] = factor
	}

	return &AgingFactorTable{
		factors: copied,
		minAge:  ages[0],
		maxAge:  ages[len(ages)-1],
	}, nil
}

// Domain returns the lowest and highest tabulated ages
func (t *AgingFactorTable) Domain() (int, int) {
	return t.minAge, t.maxAge
}

// Ages returns the tabulated ages in ascending order
func (t *AgingFactorTable) Ages() []int {
	ages := make([]int, 0, len(t.factors))
	for age := t.minAge; age <= t.maxAge; age++ {
		ages = append(ages, age)
	}
	return ages
}

// Lookup returns the aging factor for a whole or half-year age. Half-year ages
// are the mean of the two neighbouring whole ages, rounded to 8 places.
func (t *AgingFactorTable) Lookup(age decimal.Decimal) (decimal.Decimal, error) {
	if age.LessThan(decimal.NewFromInt(int64(t.minAge))) || age.GreaterThan(decimal.NewFromInt(int64(t.maxAge))) {
		return decimal.Zero, &AgeError{Age: age, Err: ErrAgeOutOfDomain}
	}

	floor := age.Floor()
	whole := int(floor.IntPart())
	frac := age.Sub(floor)

	switch {
	case frac.IsZero():
		factor, ok := t.factors[whole]
		if !ok {
			return decimal.Zero, &AgeError{Age: age, Err: ErrAgeOutOfDomain}
		}
		return factor, nil

	case frac.Equal(half):
		lower, okLower := t.factors[whole]
		upper, okUpper := t.factors[whole+1]
		if !okLower || !okUpper {
			return decimal.Zero, &AgeError{Age: age, Err: ErrAgeOutOfDomain}
		}
		return lower.Add(upper).Div(decimal.NewFromInt(2)).Round(trendPlaces), nil

	default:
		return decimal.Zero, &AgeError{Age: age, Err: fmt.Errorf("%w: only whole and half-year ages are tabulated", ErrAgeOutOfDomain)}
	}
}

// RiskTrend is the cost ratio of moving a population from currentAge to projectedAge,
// rounded to 8 places.
func (t *AgingFactorTable) RiskTrend(currentAge, projectedAge decimal.Decimal) (decimal.Decimal, error) {
	base, err := t.Lookup(currentAge)
	if err != nil {
		return decimal.Zero, err
	}
	target, err := t.Lookup(projectedAge)
	if err != nil {
		return decimal.Zero, err
	}
	if base.IsZero() {
		return decimal.Zero, &AgeError{Age: currentAge, Err: ErrZeroBaseFactor}
	}
	return target.Div(base).Round(trendPlaces), nil
}
