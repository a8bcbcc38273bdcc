package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdealScenario(t *testing.T) {
	s := Ideal()
	assert.Equal(t, "ideal", s.Name)
	assert.Nil(t, s.Noise)
	assert.False(t, s.NewBackend(1).Noisy())
}

func TestDepolarizingScenario(t *testing.T) {
	s := Depolarizing(0.01, 0.03)
	assert.Equal(t, "depolarizing-p1=0.01-p2=0.03", s.Name)
	assert.True(t, s.NewBackend(1).Noisy())
}

func TestImperfectGatesScenario(t *testing.T) {
	s := ImperfectGates(5)
	assert.Equal(t, "imperfect-5.0deg", s.Name)
	assert.Equal(t, 5.0, s.ErrorAngleDeg)
	assert.True(t, s.NewBackend(1).Noisy())

	// Zero angle degenerates to an ideal backend.
	assert.False(t, ImperfectGates(0).NewBackend(1).Noisy())
}

func TestSweepGateError_ZeroAnglePointIsExact(t *testing.T) {
	points, err := SweepGateError(42, "11", []float64{0, 10}, 1024)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, 0.0, points[0].AngleDeg)
	assert.Equal(t, 1.0, points[0].SuccessRate)
	assert.Equal(t, 0.0, points[0].ErrorRate)

	assert.Equal(t, 10.0, points[1].AngleDeg)
	assert.Less(t, points[1].SuccessRate, points[0].SuccessRate)
	assert.Equal(t, 1024, points[1].Counts.Total())
}

func TestSweepGateError_DefaultAngles(t *testing.T) {
	points, err := SweepGateError(1, "00", nil, 64)
	require.NoError(t, err)
	assert.Len(t, points, len(DefaultSweepAngles()))
	for i, angle := range DefaultSweepAngles() {
		assert.Equal(t, angle, points[i].AngleDeg)
	}
}

func TestSweepGateError_Deterministic(t *testing.T) {
	run := func() []SweepPoint {
		points, err := SweepGateError(7, "10", []float64{2, 5}, 512)
		require.NoError(t, err)
		return points
	}
	assert.Equal(t, run(), run())
}

func TestSweepGateError_RejectsInvalidMessage(t *testing.T) {
	_, err := SweepGateError(1, Message("5"), nil, 16)
	assert.Error(t, err)
}
