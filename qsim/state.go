package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
)

// StateVector holds the dense amplitude vector of an n-qubit register.
// Basis indices are little-endian: bit q of an index is the value of qubit q.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector creates the |0...0> state over numQubits qubits.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Clone returns a deep copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply evolves the state through one gate. Barriers and measurements are
// no-ops here; the backend handles measurement sampling.
func (s *StateVector) Apply(g Gate) error {
	switch g.Kind {
	case GateH:
		s.applyH(g.Target)
	case GateX:
		s.applyX(g.Target)
	case GateY:
		s.applyY(g.Target)
	case GateZ:
		s.applyZ(g.Target)
	case GateS:
		s.applyPhase(g.Target, 1i)
	case GateSdg:
		s.applyPhase(g.Target, -1i)
	case GateT:
		s.applyPhase(g.Target, cmplx.Exp(complex(0, math.Pi/4)))
	case GateTdg:
		s.applyPhase(g.Target, cmplx.Exp(complex(0, -math.Pi/4)))
	case GateRX:
		s.applyRX(g.Target, g.Theta)
	case GateRY:
		s.applyRY(g.Target, g.Theta)
	case GateRZ:
		s.applyRZ(g.Target, g.Theta)
	case GateCX:
		s.applyCX(g.Control, g.Target)
	case GateCZ:
		s.applyCZ(g.Control, g.Target)
	case GateSwap:
		s.applySwap(g.Control, g.Target)
	case OpReset:
		s.applyReset(g.Target)
	case OpMeasure, OpBarrier:
		// handled by the backend
	default:
		return fmt.Errorf("unknown gate kind %q", g.Kind)
	}
	return nil
}

func (s *StateVector) applyH(q int) {
	f := complex(1.0/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = f * (a + b)
			s.Amplitudes[j] = f * (a - b)
		}
	}
}

func (s *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] = -s.Amplitudes[i]
		}
	}
}

// applyPhase multiplies the |1> amplitudes of qubit q by factor.
func (s *StateVector) applyPhase(q int, factor complex128) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a + js*b
			s.Amplitudes[j] = js*a + c*b
		}
	}
}

func (s *StateVector) applyRY(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a - sn*b
			s.Amplitudes[j] = sn*a + c*b
		}
	}
}

func (s *StateVector) applyRZ(q int, theta float64) {
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	cBit, tBit := 1<<control, 1<<target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	cBit, tBit := 1<<control, 1<<target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] = -s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applySwap(q1, q2 int) {
	bit1, bit2 := 1<<q1, 1<<q2
	for i := range s.Amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i &^ bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyReset projects qubit q onto |0> and renormalizes. If the qubit is
// certainly |1>, the excited amplitudes are moved down instead so the
// state stays normalized.
func (s *StateVector) applyReset(q int) {
	bit := 1 << q
	prob0 := 1 - s.ExcitedPopulation(q)

	if prob0 <= 1e-15 {
		for i := range s.Amplitudes {
			if i&bit != 0 {
				s.Amplitudes[i&^bit] = s.Amplitudes[i]
				s.Amplitudes[i] = 0
			}
		}
		return
	}

	norm := complex(math.Sqrt(prob0), 0)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			s.Amplitudes[i] /= norm
		} else {
			s.Amplitudes[i] = 0
		}
	}
}

// Probabilities returns |amp|^2 for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// Norm returns the 2-norm of the state. Unitary evolution keeps this at 1;
// trajectory noise renormalizes after every Kraus branch.
func (s *StateVector) Norm() float64 {
	sum := 0.0
	for _, a := range s.Amplitudes {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// ExcitedPopulation returns the probability of finding qubit q in |1>.
func (s *StateVector) ExcitedPopulation(q int) float64 {
	bit := 1 << q
	p := 0.0
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p
}

// SampleBasisState draws one basis index from the state's outcome
// distribution using inverse-CDF sampling.
func (s *StateVector) SampleBasisState(rng *rand.Rand) int {
	r := rng.Float64()
	cumulative := 0.0
	for i, a := range s.Amplitudes {
		cumulative += real(a)*real(a) + imag(a)*imag(a)
		if r < cumulative {
			return i
		}
	}
	// Float round-off can leave the CDF a hair under 1.0.
	return len(s.Amplitudes) - 1
}
