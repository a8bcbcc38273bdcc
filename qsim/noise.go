package qsim

import (
	"math"
	"math/rand"
)

// Channel is one noise process. Perturb applies a single sampled realization
// of the channel to the state on the given operand qubits, keeping the state
// normalized. Implementations draw all randomness from rng.
type Channel interface {
	Perturb(s *StateVector, rng *rand.Rand, qubits ...int)
}

// === Depolarizing ===

// Depolarizing applies a random Pauli error with probability P. The
// one-qubit form draws uniformly from {X, Y, Z} on each operand; the
// two-qubit form draws uniformly from the 15 non-identity Pauli pairs.
type Depolarizing struct {
	P     float64
	Width int // 1 or 2
}

// NewDepolarizing creates a depolarizing channel of the given width.
func NewDepolarizing(p float64, width int) Depolarizing {
	return Depolarizing{P: p, Width: width}
}

var pauliKinds = [3]GateKind{GateX, GateY, GateZ}

func applyPauli(s *StateVector, kind GateKind, q int) {
	// Pauli application never fails; kinds come from pauliKinds.
	_ = s.Apply(Gate{Kind: kind, Target: q, Control: -1, CBit: -1})
}

// Perturb implements Channel.
func (d Depolarizing) Perturb(s *StateVector, rng *rand.Rand, qubits ...int) {
	if rng.Float64() >= d.P {
		return
	}
	switch d.Width {
	case 1:
		for _, q := range qubits {
			applyPauli(s, pauliKinds[rng.Intn(3)], q)
		}
	case 2:
		if len(qubits) < 2 {
			return
		}
		// Draw one of the 15 non-identity pairs (I,X,Y,Z)^2 \ {II}.
		// Index 0..15 encodes (p0, p1) base 4 with 0 = identity.
		pair := 1 + rng.Intn(15)
		if p0 := pair % 4; p0 != 0 {
			applyPauli(s, pauliKinds[p0-1], qubits[0])
		}
		if p1 := pair / 4; p1 != 0 {
			applyPauli(s, pauliKinds[p1-1], qubits[1])
		}
	}
}

// === Amplitude damping ===

// AmplitudeDamping models T1 energy loss with damping parameter Gamma.
// The K1 (decay) branch fires with probability Gamma * P(qubit excited);
// both branches renormalize the state.
type AmplitudeDamping struct {
	Gamma float64
}

// NewAmplitudeDamping creates an amplitude damping channel.
func NewAmplitudeDamping(gamma float64) AmplitudeDamping {
	return AmplitudeDamping{Gamma: gamma}
}

// Perturb implements Channel.
func (a AmplitudeDamping) Perturb(s *StateVector, rng *rand.Rand, qubits ...int) {
	for _, q := range qubits {
		a.perturbOne(s, rng, q)
	}
}

func (a AmplitudeDamping) perturbOne(s *StateVector, rng *rand.Rand, q int) {
	pExcited := s.ExcitedPopulation(q)
	pDecay := a.Gamma * pExcited
	bit := 1 << q

	if pDecay > 0 && rng.Float64() < pDecay {
		// K1 = [[0, sqrt(gamma)], [0, 0]]: the qubit relaxes to |0>, carrying
		// the excited amplitudes down. Renormalize by sqrt(pDecay).
		norm := complex(math.Sqrt(pExcited), 0)
		for i := range s.Amplitudes {
			if i&bit != 0 {
				s.Amplitudes[i&^bit] = s.Amplitudes[i] / norm
				s.Amplitudes[i] = 0
			}
		}
		return
	}

	// K0 = [[1, 0], [0, sqrt(1-gamma)]]: excited amplitudes shrink.
	pKeep := 1 - pDecay
	if pKeep <= 0 {
		return
	}
	damp := complex(math.Sqrt(1-a.Gamma), 0)
	norm := complex(math.Sqrt(pKeep), 0)
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= damp
		}
		s.Amplitudes[i] /= norm
	}
}

// === NoiseModel ===

// NoiseModel binds channels to gate kinds. After the backend applies a gate
// whose kind has channels attached, each channel perturbs the state on that
// gate's operand qubits, in attachment order.
type NoiseModel struct {
	channels map[GateKind][]Channel
}

// NewNoiseModel creates an empty noise model.
func NewNoiseModel() *NoiseModel {
	return &NoiseModel{channels: make(map[GateKind][]Channel)}
}

// AddChannel attaches a channel to every listed gate kind.
func (m *NoiseModel) AddChannel(ch Channel, kinds ...GateKind) *NoiseModel {
	for _, k := range kinds {
		m.channels[k] = append(m.channels[k], ch)
	}
	return m
}

// ChannelsFor returns the channels attached to a gate kind (nil if none).
func (m *NoiseModel) ChannelsFor(kind GateKind) []Channel {
	if m == nil {
		return nil
	}
	return m.channels[kind]
}

// perturb runs every channel bound to the gate's kind.
func (m *NoiseModel) perturb(s *StateVector, g Gate, rng *rand.Rand) {
	if m == nil {
		return
	}
	qubits := g.Qubits()
	for _, ch := range m.channels[g.Kind] {
		ch.Perturb(s, rng, qubits...)
	}
}

// Empty reports whether the model has no channels attached.
func (m *NoiseModel) Empty() bool {
	return m == nil || len(m.channels) == 0
}

// === Presets ===

// Caps on the imperfect-gate error probabilities. Gate errors saturate on
// real devices; the scaling below reproduces the calibration-error model
// this simulator was built to study.
const (
	maxSingleQubitErrorProb = 0.10
	maxTwoQubitErrorProb    = 0.15
	maxDampingParam         = 0.05
)

// ImperfectGateModel derives a noise model from a rotation error angle in
// radians, standing in for over/under-rotation and calibration drift:
//
//	1-qubit depolarizing p = min(0.10, 2*theta) on h, x, z
//	2-qubit depolarizing p = min(0.15, 3*theta) on cx
//	amplitude damping  gamma = min(0.05, theta) on h, x, z
func ImperfectGateModel(errorAngle float64) *NoiseModel {
	m := NewNoiseModel()
	if errorAngle <= 0 {
		return m
	}
	singleP := math.Min(maxSingleQubitErrorProb, errorAngle*2)
	twoP := math.Min(maxTwoQubitErrorProb, errorAngle*3)
	gamma := math.Min(maxDampingParam, errorAngle)

	m.AddChannel(NewDepolarizing(singleP, 1), GateH, GateX, GateZ)
	m.AddChannel(NewDepolarizing(twoP, 2), GateCX)
	m.AddChannel(NewAmplitudeDamping(gamma), GateH, GateX, GateZ)
	return m
}

// DepolarizingModel builds a flat depolarizing model with independent
// single- and two-qubit error probabilities on the protocol's gate set.
func DepolarizingModel(singleQubitP, twoQubitP float64) *NoiseModel {
	m := NewNoiseModel()
	if singleQubitP > 0 {
		m.AddChannel(NewDepolarizing(singleQubitP, 1), GateH, GateX, GateY, GateZ)
	}
	if twoQubitP > 0 {
		m.AddChannel(NewDepolarizing(twoQubitP, 2), GateCX, GateCZ)
	}
	return m
}
