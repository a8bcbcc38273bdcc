// Package qsim provides a small shot-based statevector simulator for
// few-qubit circuits.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - circuit.go: the Circuit builder and gate vocabulary
//   - state.go: dense statevector evolution (one amplitude per basis state)
//   - backend.go: the execution loop that turns a circuit into outcome counts
//
// # Architecture
//
// A Circuit is an ordered gate list. A Backend evolves a StateVector through
// the circuit and samples measurement outcomes. With a NoiseModel attached,
// the backend switches from sample-the-final-distribution to per-shot
// trajectory simulation: each shot re-evolves the state and noise channels
// inject sampled Kraus events after the gates they are bound to (noise.go).
//
// All randomness flows through a PartitionedRNG (rng.go) so that a single
// master seed pins every run bit-for-bit.
//
// Protocol-level code lives in sub-packages:
//   - qsim/protocol: superdense coding circuits, scenarios, and sweeps
//   - qsim/report: summary tables, JSON records, and PNG charts
package qsim
