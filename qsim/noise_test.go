package qsim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepolarizing_ZeroProbabilityIsNoOp(t *testing.T) {
	s := NewStateVector(2)
	s.Apply(Gate{Kind: GateH, Target: 0, Control: -1})
	before := s.Clone()

	rng := rand.New(rand.NewSource(1))
	ch := NewDepolarizing(0, 1)
	for i := 0; i < 100; i++ {
		ch.Perturb(s, rng, 0)
	}
	assert.Equal(t, before.Amplitudes, s.Amplitudes)
}

func TestDepolarizing_PreservesNorm(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, width := range []int{1, 2} {
		s := NewStateVector(2)
		s.Apply(Gate{Kind: GateH, Target: 0, Control: -1})
		s.Apply(Gate{Kind: GateCX, Target: 1, Control: 0})

		ch := NewDepolarizing(1.0, width)
		for i := 0; i < 50; i++ {
			ch.Perturb(s, rng, 0, 1)
			if norm := s.Norm(); math.Abs(norm-1) > 1e-10 {
				t.Fatalf("width %d: norm drifted to %v after perturb %d", width, norm, i)
			}
		}
	}
}

func TestDepolarizing_FullProbabilityFlipsGroundState(t *testing.T) {
	// On |0>, X and Y both excite the qubit while Z leaves it alone, so the
	// excited fraction over many independent trials approaches 2/3.
	rng := rand.New(rand.NewSource(3))
	ch := NewDepolarizing(1.0, 1)
	n := 3000
	excited := 0
	for i := 0; i < n; i++ {
		s := NewStateVector(1)
		ch.Perturb(s, rng, 0)
		if s.ExcitedPopulation(0) > 0.5 {
			excited++
		}
	}
	frac := float64(excited) / float64(n)
	if math.Abs(frac-2.0/3.0) > 0.04 {
		t.Errorf("excited fraction = %.3f, want ≈ 0.667 (within 0.04)", frac)
	}
}

func TestAmplitudeDamping_FullDampingRelaxesExcitedQubit(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	ch := NewAmplitudeDamping(1.0)

	s := NewStateVector(1)
	s.Apply(Gate{Kind: GateX, Target: 0, Control: -1})
	ch.Perturb(s, rng, 0)

	assert.InDelta(t, 0, s.ExcitedPopulation(0), 1e-12)
	assert.InDelta(t, 1, s.Norm(), 1e-10)
}

func TestAmplitudeDamping_ZeroGammaIsNoOp(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ch := NewAmplitudeDamping(0)

	s := NewStateVector(1)
	s.Apply(Gate{Kind: GateH, Target: 0, Control: -1})
	before := s.Clone()
	for i := 0; i < 20; i++ {
		ch.Perturb(s, rng, 0)
	}
	for i := range before.Amplitudes {
		assert.InDelta(t, real(before.Amplitudes[i]), real(s.Amplitudes[i]), 1e-12)
		assert.InDelta(t, imag(before.Amplitudes[i]), imag(s.Amplitudes[i]), 1e-12)
	}
}

func TestAmplitudeDamping_BiasesTowardGround(t *testing.T) {
	// Starting from |+>, damping with gamma=0.5 should leave the ensemble
	// mostly in |0>: P(1) = 0.5 * (1 - gamma) = 0.25.
	rng := rand.New(rand.NewSource(6))
	ch := NewAmplitudeDamping(0.5)
	n := 4000
	sum := 0.0
	for i := 0; i < n; i++ {
		s := NewStateVector(1)
		s.Apply(Gate{Kind: GateH, Target: 0, Control: -1})
		ch.Perturb(s, rng, 0)
		sum += s.ExcitedPopulation(0)
	}
	mean := sum / float64(n)
	if math.Abs(mean-0.25) > 0.03 {
		t.Errorf("mean excited population = %.3f, want ≈ 0.25 (within 0.03)", mean)
	}
}

func TestNoiseModel_ChannelsKeyedByGateKind(t *testing.T) {
	m := NewNoiseModel()
	m.AddChannel(NewDepolarizing(0.05, 1), GateH, GateX)
	m.AddChannel(NewAmplitudeDamping(0.01), GateH)

	assert.Len(t, m.ChannelsFor(GateH), 2)
	assert.Len(t, m.ChannelsFor(GateX), 1)
	assert.Nil(t, m.ChannelsFor(GateCX))
	assert.False(t, m.Empty())
	assert.True(t, NewNoiseModel().Empty())

	var nilModel *NoiseModel
	assert.True(t, nilModel.Empty())
	assert.Nil(t, nilModel.ChannelsFor(GateH))
}

func TestImperfectGateModel_ScalingAndCaps(t *testing.T) {
	tests := []struct {
		name       string
		theta      float64
		wantP1     float64
		wantP2     float64
		wantGamma  float64
	}{
		{"small angle scales linearly", 0.02, 0.04, 0.06, 0.02},
		{"large angle saturates", 1.0, 0.10, 0.15, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ImperfectGateModel(tt.theta)

			hChannels := m.ChannelsFor(GateH)
			require.Len(t, hChannels, 2)
			dep, ok := hChannels[0].(Depolarizing)
			require.True(t, ok)
			assert.InDelta(t, tt.wantP1, dep.P, 1e-12)
			assert.Equal(t, 1, dep.Width)

			damp, ok := hChannels[1].(AmplitudeDamping)
			require.True(t, ok)
			assert.InDelta(t, tt.wantGamma, damp.Gamma, 1e-12)

			cxChannels := m.ChannelsFor(GateCX)
			require.Len(t, cxChannels, 1)
			dep2, ok := cxChannels[0].(Depolarizing)
			require.True(t, ok)
			assert.InDelta(t, tt.wantP2, dep2.P, 1e-12)
			assert.Equal(t, 2, dep2.Width)
		})
	}
}

func TestImperfectGateModel_ZeroAngleIsEmpty(t *testing.T) {
	assert.True(t, ImperfectGateModel(0).Empty())
}

func TestDepolarizingModel_GateCoverage(t *testing.T) {
	m := DepolarizingModel(0.01, 0.03)
	assert.Len(t, m.ChannelsFor(GateH), 1)
	assert.Len(t, m.ChannelsFor(GateCX), 1)
	assert.Len(t, m.ChannelsFor(GateCZ), 1)

	assert.True(t, DepolarizingModel(0, 0).Empty())
}
