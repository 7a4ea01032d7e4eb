package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAgingFactorTable_WholeAges(t *testing.T) {
	table := DefaultAgingFactorTable()
	factors := domain.DefaultAgingFactors()

	for age := 1; age <= 88; age++ {
		got, err := table.Lookup(decimal.NewFromInt(int64(age)))
		require.NoError(t, err, "age %d", age)
		assert.True(t, got.Equal(factors[age]), "age %d: got %s, want %s", age, got, factors[age])
	}
}

func TestAgingFactorTable_HalfAges(t *testing.T) {
	table := DefaultAgingFactorTable()
	factors := domain.DefaultAgingFactors()

	for age := 1; age < 88; age++ {
		want := factors[age].Add(factors[age+1]).Div(decimal.NewFromInt(2)).Round(8)
		got, err := table.Lookup(decimal.NewFromInt(int64(age)).Add(dec("0.5")))
		require.NoError(t, err, "age %d.5", age)
		assert.True(t, got.Equal(want), "age %d.5: got %s, want %s", age, got, want)
	}

	got, err := table.Lookup(dec("40.5"))
	require.NoError(t, err)
	assert.Equal(t, "3.6985", got.String())
}

func TestAgingFactorTable_OutOfDomain(t *testing.T) {
	table := DefaultAgingFactorTable()

	tests := []struct {
		name string
		age  string
	}{
		{"zero", "0"},
		{"above table", "89"},
		{"quarter year", "40.25"},
		{"top half year has no upper neighbour", "88.5"},
		{"below table half year", "0.5"},
		{"negative", "-3"},
		{"huge whole age", "1000000000000000000000000000000"},
		{"age beyond int64 wrapping onto 40", "18446744073709551656"},
		{"half age beyond int64", "18446744073709551656.5"},
		{"huge negative age", "-18446744073709551576"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.Lookup(dec(tt.age))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrAgeOutOfDomain))

			var ageErr *AgeError
			require.True(t, errors.As(err, &ageErr))
			assert.True(t, ageErr.Age.Equal(dec(tt.age)))
		})
	}
}

func TestRiskTrend(t *testing.T) {
	table := DefaultAgingFactorTable()

	t.Run("same age is exactly one", func(t *testing.T) {
		for _, age := range []string{"1", "25.5", "40", "87.5", "88"} {
			ratio, err := table.RiskTrend(dec(age), dec(age))
			require.NoError(t, err)
			assert.True(t, ratio.Equal(decimal.NewFromInt(1)), "age %s: %s", age, ratio)
		}
	})

	t.Run("ratio of factors rounded to 8 places", func(t *testing.T) {
		ratio, err := table.RiskTrend(dec("40"), dec("41"))
		require.NoError(t, err)
		assert.Equal(t, "1.04303154", ratio.String())

		ratio, err = table.RiskTrend(dec("40.5"), dec("41"))
		require.NoError(t, err)
		assert.Equal(t, "1.02106259", ratio.String())
	})

	t.Run("invalid current age", func(t *testing.T) {
		_, err := table.RiskTrend(dec("40.3"), dec("41"))
		assert.ErrorIs(t, err, ErrAgeOutOfDomain)
	})

	t.Run("invalid projected age", func(t *testing.T) {
		_, err := table.RiskTrend(dec("88"), dec("89"))
		assert.ErrorIs(t, err, ErrAgeOutOfDomain)
	})

	t.Run("zero base factor", func(t *testing.T) {
		zeroed := &AgingFactorTable{
			factors: map[int]decimal.Decimal{1: decimal.Zero, 2: dec("1.5")},
			minAge:  1,
			maxAge:  2,
		}
		_, err := zeroed.RiskTrend(dec("1"), dec("2"))
		assert.ErrorIs(t, err, ErrZeroBaseFactor)
	})
}

func TestNewAgingFactorTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		factors map[int]decimal.Decimal
		wantErr string
	}{
		{"empty", map[int]decimal.Decimal{}, "empty"},
		{"gap", map[int]decimal.Decimal{1: dec("1"), 3: dec("1.2")}, "gap"},
		{"decreasing", map[int]decimal.Decimal{1: dec("1.2"), 2: dec("1.1")}, "lower than"},
		{"zero factor", map[int]decimal.Decimal{1: dec("0"), 2: dec("1.1")}, "positive"},
		{"negative age", map[int]decimal.Decimal{-1: dec("1"), 0: dec("1.1")}, "negative age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewAgingFactorTable(tt.factors)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("custom table domain", func(t *testing.T) {
		table, err := NewAgingFactorTable(map[int]decimal.Decimal{
			20: dec("1.0"), 21: dec("1.1"), 22: dec("1.1"),
		})
		require.NoError(t, err)

		minAge, maxAge := table.Domain()
		assert.Equal(t, 20, minAge)
		assert.Equal(t, 22, maxAge)
		assert.Equal(t, []int{20, 21, 22}, table.Ages())

		_, err = table.Lookup(dec("19"))
		assert.ErrorIs(t, err, ErrAgeOutOfDomain)
	})

	t.Run("table keeps its own copy", func(t *testing.T) {
		factors := map[int]decimal.Decimal{1: dec("1.0"), 2: dec("2.0")}
		table, err := NewAgingFactorTable(factors)
		require.NoError(t, err)

		factors[1] = dec("9.9")
		got, err := table.Lookup(dec("1"))
		require.NoError(t, err)
		assert.Equal(t, "1", got.String())
	})
}

func TestDefaultAgingFactorTable_Domain(t *testing.T) {
	minAge, maxAge := DefaultAgingFactorTable().Domain()
	assert.Equal(t, 1, minAge)
	assert.Equal(t, 88, maxAge)
}
