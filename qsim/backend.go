package qsim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Backend executes circuits and returns measurement counts. A nil or empty
// noise model selects the fast ideal path: one statevector evolution with
// all shots sampled from the final distribution. With noise attached, every
// shot is an independent trajectory so sampled Kraus events can differ.
type Backend struct {
	noise *NoiseModel
	rng   *PartitionedRNG
}

// NewBackend creates a backend with the given master seed. noise may be nil
// for ideal simulation.
func NewBackend(seed int64, noise *NoiseModel) *Backend {
	return &Backend{
		noise: noise,
		rng:   NewPartitionedRNG(NewSimulationKey(seed)),
	}
}

// Seed returns the master seed this backend was built with.
func (b *Backend) Seed() int64 {
	return int64(b.rng.Key())
}

// Noisy reports whether the backend will run per-shot trajectories.
func (b *Backend) Noisy() bool {
	return !b.noise.Empty()
}

// Result holds the outcome table of one execution.
type Result struct {
	Counts  Counts        `json:"counts"`
	Shots   int           `json:"shots"`
	Seed    int64         `json:"seed"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Run executes the circuit for the requested number of shots.
func (b *Backend) Run(c *Circuit, shots int) (*Result, error) {
	if shots < 1 {
		return nil, fmt.Errorf("shots must be >= 1, got %d", shots)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid circuit: %w", err)
	}
	measurements := c.Measurements()
	if len(measurements) == 0 {
		return nil, fmt.Errorf("circuit has no measurements; nothing to count")
	}

	start := time.Now()
	counts := make(Counts)

	if b.Noisy() {
		if err := b.runTrajectories(c, shots, measurements, counts); err != nil {
			return nil, err
		}
	} else {
		if err := b.runIdeal(c, shots, measurements, counts); err != nil {
			return nil, err
		}
	}

	logrus.Debugf("backend: %d shots over %d gates in %v (noisy=%v)",
		shots, len(c.Gates), time.Since(start), b.Noisy())

	return &Result{
		Counts:  counts,
		Shots:   shots,
		Seed:    b.Seed(),
		Elapsed: time.Since(start),
	}, nil
}

// runIdeal evolves the state once and samples all shots from the final
// probability distribution.
func (b *Backend) runIdeal(c *Circuit, shots int, measurements []Gate, counts Counts) error {
	state := NewStateVector(c.NumQubits)
	for _, g := range c.Gates {
		if err := state.Apply(g); err != nil {
			return err
		}
	}
	sampler := b.rng.ForSubsystem(SubsystemSampler)
	for i := 0; i < shots; i++ {
		basis := state.SampleBasisState(sampler)
		counts[FormatBitstring(basis, measurements, c.NumCBits)]++
	}
	return nil
}

// runTrajectories re-evolves the state per shot, perturbing it with sampled
// noise events after each gate.
func (b *Backend) runTrajectories(c *Circuit, shots int, measurements []Gate, counts Counts) error {
	sampler := b.rng.ForSubsystem(SubsystemSampler)
	noiseRNG := b.rng.ForSubsystem(SubsystemNoise)
	for i := 0; i < shots; i++ {
		state := NewStateVector(c.NumQubits)
		for _, g := range c.Gates {
			if err := state.Apply(g); err != nil {
				return err
			}
			b.noise.perturb(state, g, noiseRNG)
		}
		basis := state.SampleBasisState(sampler)
		counts[FormatBitstring(basis, measurements, c.NumCBits)]++
	}
	return nil
}
