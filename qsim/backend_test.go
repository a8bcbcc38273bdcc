package qsim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bellCircuit() *Circuit {
	return NewCircuit(2, 2).H(0).CX(0, 1).Measure(0, 0).Measure(1, 1)
}

func TestBackendRun_BellStateCounts(t *testing.T) {
	b := NewBackend(42, nil)
	result, err := b.Run(bellCircuit(), 4096)
	require.NoError(t, err)

	assert.Equal(t, 4096, result.Counts.Total())
	assert.Equal(t, 4096, result.Shots)

	// Bell pair measurement only ever yields correlated outcomes.
	for outcome := range result.Counts {
		if outcome != "00" && outcome != "11" {
			t.Errorf("unexpected outcome %q in Bell measurement", outcome)
		}
	}

	frac := result.Counts.Probability("00")
	if math.Abs(frac-0.5) > 0.05 {
		t.Errorf("P(00) = %.3f, want ≈ 0.5 (within 0.05)", frac)
	}
}

func TestBackendRun_CountsSumToShots(t *testing.T) {
	for _, shots := range []int{1, 100, 2048} {
		b := NewBackend(7, ImperfectGateModel(0.1))
		result, err := b.Run(bellCircuit(), shots)
		require.NoError(t, err)
		assert.Equal(t, shots, result.Counts.Total(), "shots=%d", shots)
	}
}

func TestBackendRun_DeterministicAcrossRuns(t *testing.T) {
	run := func() Counts {
		b := NewBackend(99, ImperfectGateModel(0.1))
		result, err := b.Run(bellCircuit(), 1024)
		require.NoError(t, err)
		return result.Counts
	}
	assert.Equal(t, run(), run(), "same seed and config must reproduce counts exactly")
}

func TestBackendRun_SeedChangesNoisyCounts(t *testing.T) {
	runSeed := func(seed int64) Counts {
		b := NewBackend(seed, ImperfectGateModel(0.15))
		result, err := b.Run(bellCircuit(), 2048)
		require.NoError(t, err)
		return result.Counts
	}
	assert.NotEqual(t, runSeed(1), runSeed(2))
}

func TestBackendRun_InvalidInputs(t *testing.T) {
	b := NewBackend(1, nil)

	_, err := b.Run(bellCircuit(), 0)
	assert.ErrorContains(t, err, "shots must be >= 1")

	_, err = b.Run(NewCircuit(2, 2).H(5), 10)
	assert.ErrorContains(t, err, "invalid circuit")

	_, err = b.Run(NewCircuit(2, 2).H(0), 10)
	assert.ErrorContains(t, err, "no measurements")
}

func TestBackendRun_NoisyTrajectoriesDegradeCorrelation(t *testing.T) {
	b := NewBackend(3, ImperfectGateModel(0.26)) // ~15 degrees, all caps active
	result, err := b.Run(bellCircuit(), 2048)
	require.NoError(t, err)

	// Uncorrelated outcomes must appear under heavy depolarizing noise.
	leaked := result.Counts["01"] + result.Counts["10"]
	assert.Greater(t, leaked, 0, "expected anti-correlated outcomes under noise")

	// But the Bell correlation should still dominate.
	correlated := result.Counts["00"] + result.Counts["11"]
	assert.Greater(t, correlated, leaked)
}

func TestBackend_NoisyFlag(t *testing.T) {
	assert.False(t, NewBackend(1, nil).Noisy())
	assert.False(t, NewBackend(1, NewNoiseModel()).Noisy())
	assert.True(t, NewBackend(1, ImperfectGateModel(0.05)).Noisy())
}

func TestBackend_Seed(t *testing.T) {
	assert.Equal(t, int64(-5), NewBackend(-5, nil).Seed())
}
