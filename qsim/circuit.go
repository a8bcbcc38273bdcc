package qsim

import (
	"fmt"
	"strings"
)

// GateKind names a gate in the simulator's vocabulary. Values follow
// OpenQASM spelling so noise models can be keyed by the same names a
// circuit dump shows.
type GateKind string

const (
	GateH    GateKind = "h"
	GateX    GateKind = "x"
	GateY    GateKind = "y"
	GateZ    GateKind = "z"
	GateS    GateKind = "s"
	GateSdg  GateKind = "sdg"
	GateT    GateKind = "t"
	GateTdg  GateKind = "tdg"
	GateRX   GateKind = "rx"
	GateRY   GateKind = "ry"
	GateRZ   GateKind = "rz"
	GateCX   GateKind = "cx"
	GateCZ   GateKind = "cz"
	GateSwap GateKind = "swap"

	// Non-unitary / structural ops.
	OpReset   GateKind = "reset"
	OpMeasure GateKind = "measure"
	OpBarrier GateKind = "barrier"
)

// twoQubitKinds marks gates that carry a control (or second operand) qubit.
var twoQubitKinds = map[GateKind]bool{
	GateCX:   true,
	GateCZ:   true,
	GateSwap: true,
}

// rotationKinds marks gates parameterized by an angle.
var rotationKinds = map[GateKind]bool{
	GateRX: true,
	GateRY: true,
	GateRZ: true,
}

// Gate is one placed operation. Control is -1 for single-qubit gates,
// CBit is -1 for everything except measurements.
type Gate struct {
	Kind    GateKind
	Target  int
	Control int
	Theta   float64
	CBit    int
	Label   string // barrier annotation only
}

// Qubits returns the qubit operands of the gate, control first.
func (g Gate) Qubits() []int {
	if g.Control >= 0 {
		return []int{g.Control, g.Target}
	}
	return []int{g.Target}
}

// Circuit is an ordered gate list over a fixed qubit and classical register.
type Circuit struct {
	NumQubits int
	NumCBits  int
	Gates     []Gate
}

// NewCircuit creates an empty circuit with the given register sizes.
func NewCircuit(numQubits, numCBits int) *Circuit {
	return &Circuit{NumQubits: numQubits, NumCBits: numCBits}
}

func (c *Circuit) add(g Gate) *Circuit {
	c.Gates = append(c.Gates, g)
	return c
}

func (c *Circuit) single(kind GateKind, q int) *Circuit {
	return c.add(Gate{Kind: kind, Target: q, Control: -1, CBit: -1})
}

func (c *Circuit) double(kind GateKind, control, target int) *Circuit {
	return c.add(Gate{Kind: kind, Target: target, Control: control, CBit: -1})
}

func (c *Circuit) rotation(kind GateKind, q int, theta float64) *Circuit {
	return c.add(Gate{Kind: kind, Target: q, Control: -1, Theta: theta, CBit: -1})
}

// H applies a Hadamard to qubit q.
func (c *Circuit) H(q int) *Circuit { return c.single(GateH, q) }

// X applies a Pauli-X to qubit q.
func (c *Circuit) X(q int) *Circuit { return c.single(GateX, q) }

// Y applies a Pauli-Y to qubit q.
func (c *Circuit) Y(q int) *Circuit { return c.single(GateY, q) }

// Z applies a Pauli-Z to qubit q.
func (c *Circuit) Z(q int) *Circuit { return c.single(GateZ, q) }

// S applies the phase gate to qubit q.
func (c *Circuit) S(q int) *Circuit { return c.single(GateS, q) }

// Sdg applies the inverse phase gate to qubit q.
func (c *Circuit) Sdg(q int) *Circuit { return c.single(GateSdg, q) }

// T applies the T gate to qubit q.
func (c *Circuit) T(q int) *Circuit { return c.single(GateT, q) }

// Tdg applies the inverse T gate to qubit q.
func (c *Circuit) Tdg(q int) *Circuit { return c.single(GateTdg, q) }

// RX rotates qubit q around the X axis by theta radians.
func (c *Circuit) RX(q int, theta float64) *Circuit { return c.rotation(GateRX, q, theta) }

// RY rotates qubit q around the Y axis by theta radians.
func (c *Circuit) RY(q int, theta float64) *Circuit { return c.rotation(GateRY, q, theta) }

// RZ rotates qubit q around the Z axis by theta radians.
func (c *Circuit) RZ(q int, theta float64) *Circuit { return c.rotation(GateRZ, q, theta) }

// CX applies a controlled-X with the given control and target.
func (c *Circuit) CX(control, target int) *Circuit { return c.double(GateCX, control, target) }

// CZ applies a controlled-Z with the given control and target.
func (c *Circuit) CZ(control, target int) *Circuit { return c.double(GateCZ, control, target) }

// Swap exchanges two qubits.
func (c *Circuit) Swap(q1, q2 int) *Circuit { return c.double(GateSwap, q1, q2) }

// Reset projects qubit q to |0>.
func (c *Circuit) Reset(q int) *Circuit { return c.single(OpReset, q) }

// Measure records qubit q into classical bit cb. Measurements are collected
// at the end of the run; mid-circuit measurement is not supported.
func (c *Circuit) Measure(q, cb int) *Circuit {
	return c.add(Gate{Kind: OpMeasure, Target: q, Control: -1, CBit: cb})
}

// Barrier inserts a labeled no-op. Kept only for QASM dumps.
func (c *Circuit) Barrier(label string) *Circuit {
	return c.add(Gate{Kind: OpBarrier, Target: -1, Control: -1, CBit: -1, Label: label})
}

// Validate checks every gate's operands against the register sizes.
func (c *Circuit) Validate() error {
	if c.NumQubits < 1 {
		return fmt.Errorf("circuit has %d qubits, want >= 1", c.NumQubits)
	}
	for i, g := range c.Gates {
		if g.Kind == OpBarrier {
			continue
		}
		if g.Target < 0 || g.Target >= c.NumQubits {
			return fmt.Errorf("gate %d (%s): target qubit %d out of range [0,%d)", i, g.Kind, g.Target, c.NumQubits)
		}
		if twoQubitKinds[g.Kind] {
			if g.Control < 0 || g.Control >= c.NumQubits {
				return fmt.Errorf("gate %d (%s): control qubit %d out of range [0,%d)", i, g.Kind, g.Control, c.NumQubits)
			}
			if g.Control == g.Target {
				return fmt.Errorf("gate %d (%s): control and target are both qubit %d", i, g.Kind, g.Target)
			}
		}
		if g.Kind == OpMeasure {
			if g.CBit < 0 || g.CBit >= c.NumCBits {
				return fmt.Errorf("gate %d (measure): classical bit %d out of range [0,%d)", i, g.CBit, c.NumCBits)
			}
		}
	}
	return nil
}

// Measurements returns the qubit → classical bit assignments in circuit order.
func (c *Circuit) Measurements() []Gate {
	var ms []Gate
	for _, g := range c.Gates {
		if g.Kind == OpMeasure {
			ms = append(ms, g)
		}
	}
	return ms
}

// ToQASM renders the circuit as OpenQASM 2.0, the closest thing the
// simulator has to a circuit diagram.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits)
	if c.NumCBits > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.NumCBits)
	}
	sb.WriteString("\n")

	for _, g := range c.Gates {
		switch {
		case g.Kind == OpBarrier:
			if g.Label != "" {
				fmt.Fprintf(&sb, "barrier q; // %s\n", g.Label)
			} else {
				sb.WriteString("barrier q;\n")
			}
		case g.Kind == OpMeasure:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", g.Target, g.CBit)
		case g.Kind == OpReset:
			fmt.Fprintf(&sb, "reset q[%d];\n", g.Target)
		case twoQubitKinds[g.Kind]:
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", g.Kind, g.Control, g.Target)
		case rotationKinds[g.Kind]:
			fmt.Fprintf(&sb, "%s(%g) q[%d];\n", g.Kind, g.Theta, g.Target)
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", g.Kind, g.Target)
		}
	}
	return sb.String()
}
