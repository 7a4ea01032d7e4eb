package calculation

import (
	"testing"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectedWithPMPM(values ...string) []domain.ProjectedClaimsRecord {
	out := make([]domain.ProjectedClaimsRecord, len(values))
	for i, v := range values {
		out[i] = domain.ProjectedClaimsRecord{ProjectedPMPM: dec(v)}
	}
	return out
}

func recordsWithWeights(weights ...string) []domain.ClaimsRecord {
	out := make([]domain.ClaimsRecord, len(weights))
	for i, w := range weights {
		out[i] = domain.ClaimsRecord{Year: 2020 + i, Weight: dec(w)}
	}
	return out
}

func TestWeightedPMPM(t *testing.T) {
	tests := []struct {
		name     string
		pmpm     []string
		weights  []string
		expected string
	}{
		{"equal weights", []string{"82.23", "80.74"}, []string{"0.5", "0.5"}, "81.485"},
		{"latest year only", []string{"82.23", "80.74"}, []string{"0", "1"}, "80.74"},
		{"unnormalised weights", []string{"100", "200", "300"}, []string{"1", "2", "3"}, "233.3333333333333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeightedPMPM(projectedWithPMPM(tt.pmpm...), recordsWithWeights(tt.weights...))
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.expected)), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestWeightedPMPM_OrderIndependent(t *testing.T) {
	pmpm := []string{"75.10", "81.20", "90.35", "66.00"}
	weights := []string{"0.1", "0.2", "0.3", "0.4"}

	forward, err := WeightedPMPM(projectedWithPMPM(pmpm...), recordsWithWeights(weights...))
	require.NoError(t, err)

	perm := []int{2, 0, 3, 1}
	permPMPM := make([]string, len(perm))
	permWeights := make([]string, len(perm))
	for i, p := range perm {
		permPMPM[i] = pmpm[p]
		permWeights[i] = weights[p]
	}

	shuffled, err := WeightedPMPM(projectedWithPMPM(permPMPM...), recordsWithWeights(permWeights...))
	require.NoError(t, err)
	assert.True(t, forward.Equal(shuffled), "%s != %s", forward, shuffled)
}

func TestWeightedPMPM_Errors(t *testing.T) {
	t.Run("all weights zero", func(t *testing.T) {
		_, err := WeightedPMPM(projectedWithPMPM("10", "20"), recordsWithWeights("0", "0"))
		assert.ErrorIs(t, err, ErrZeroWeightSum)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := WeightedPMPM(projectedWithPMPM("10"), recordsWithWeights("1", "1"))
		assert.ErrorIs(t, err, ErrMalformedRecordSequence)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := WeightedPMPM(nil, nil)
		assert.ErrorIs(t, err, ErrMalformedRecordSequence)
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := WeightedPMPM(projectedWithPMPM("10", "20"), recordsWithWeights("1", "-0.5"))
		assert.ErrorIs(t, err, ErrMalformedRecordSequence)
	})

	t.Run("zero value decimal weights", func(t *testing.T) {
		records := []domain.ClaimsRecord{{Year: 2020}, {Year: 2021}}
		_, err := WeightedPMPM(projectedWithPMPM("10", "20"), records)
		assert.ErrorIs(t, err, ErrZeroWeightSum)
	})
}

func TestWeightedPMPM_ReturnsZeroOnError(t *testing.T) {
	got, err := WeightedPMPM(projectedWithPMPM("10"), recordsWithWeights("0"))
	require.Error(t, err)
	assert.True(t, got.Equal(decimal.Zero))
}
