package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/superdense-sim/superdense-sim/qsim/protocol"
)

// ExperimentSpec is the top-level YAML experiment configuration.
type ExperimentSpec struct {
	Seed          int64      `yaml:"seed"`
	Shots         int        `yaml:"shots"`
	ScenarioName  string     `yaml:"scenario"` // ideal | depolarizing | imperfect
	ErrorAngleDeg float64    `yaml:"error_angle_deg,omitempty"`
	SingleQubitP  float64    `yaml:"single_qubit_error,omitempty"`
	TwoQubitP     float64    `yaml:"two_qubit_error,omitempty"`
	Messages      []string   `yaml:"messages,omitempty"` // default: all four
	Sweep         *SweepSpec `yaml:"sweep,omitempty"`
	OutputDir     string     `yaml:"output_dir,omitempty"`
	Plots         bool       `yaml:"plots,omitempty"`
}

// SweepSpec configures the optional gate-error sweep section.
type SweepSpec struct {
	Bits      string    `yaml:"bits"`
	AnglesDeg []float64 `yaml:"angles_deg,omitempty"`
}

// LoadExperimentSpec reads, defaults, and validates a YAML experiment spec.
func LoadExperimentSpec(path string) (*ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read experiment spec: %w", err)
	}
	var spec ExperimentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse experiment spec: %w", err)
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *ExperimentSpec) applyDefaults() {
	if s.Shots == 0 {
		s.Shots = 2048
	}
	if s.ScenarioName == "" {
		s.ScenarioName = "ideal"
	}
	if len(s.Messages) == 0 {
		for _, m := range protocol.Messages() {
			s.Messages = append(s.Messages, string(m))
		}
	}
	if s.Sweep != nil {
		if s.Sweep.Bits == "" {
			s.Sweep.Bits = "11"
		}
		if len(s.Sweep.AnglesDeg) == 0 {
			s.Sweep.AnglesDeg = protocol.DefaultSweepAngles()
		}
	}
}

// Validate rejects specs the runner could not execute.
func (s *ExperimentSpec) Validate() error {
	if s.Shots < 1 {
		return fmt.Errorf("shots must be >= 1, got %d", s.Shots)
	}
	switch s.ScenarioName {
	case "ideal", "depolarizing", "imperfect":
	default:
		return fmt.Errorf("unknown scenario %q (want ideal, depolarizing, or imperfect)", s.ScenarioName)
	}
	for _, bits := range s.Messages {
		if _, err := protocol.ParseMessage(bits); err != nil {
			return fmt.Errorf("messages: %w", err)
		}
	}
	if s.Sweep != nil {
		if _, err := protocol.ParseMessage(s.Sweep.Bits); err != nil {
			return fmt.Errorf("sweep: %w", err)
		}
		for _, a := range s.Sweep.AnglesDeg {
			if a < 0 {
				return fmt.Errorf("sweep: angle %g must be >= 0", a)
			}
		}
	}
	return nil
}

// Scenario resolves the spec's scenario section into a preset.
func (s *ExperimentSpec) Scenario() (protocol.Scenario, error) {
	switch s.ScenarioName {
	case "ideal":
		return protocol.Ideal(), nil
	case "depolarizing":
		return protocol.Depolarizing(s.SingleQubitP, s.TwoQubitP), nil
	case "imperfect":
		return protocol.ImperfectGates(s.ErrorAngleDeg), nil
	}
	return protocol.Scenario{}, fmt.Errorf("unknown scenario %q", s.ScenarioName)
}
