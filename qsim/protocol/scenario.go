package protocol

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/superdense-sim/superdense-sim/qsim"
)

// Built-in scenario presets for the protocol's standard experiments.
// Each returns a Scenario ready to hand to NewBackend.

// Scenario names a backend configuration: a label plus the noise model the
// backend runs under. The zero ErrorAngleDeg means the scenario is not
// parameterized by a gate error angle.
type Scenario struct {
	Name          string
	Noise         *qsim.NoiseModel
	ErrorAngleDeg float64
}

// Ideal is the noiseless scenario; every message must decode exactly.
func Ideal() Scenario {
	return Scenario{Name: "ideal"}
}

// Depolarizing is a flat depolarizing-noise scenario with independent
// single- and two-qubit error probabilities.
func Depolarizing(singleQubitP, twoQubitP float64) Scenario {
	return Scenario{
		Name:  fmt.Sprintf("depolarizing-p1=%g-p2=%g", singleQubitP, twoQubitP),
		Noise: qsim.DepolarizingModel(singleQubitP, twoQubitP),
	}
}

// ImperfectGates models systematic gate calibration error parameterized by
// a rotation error angle in degrees.
func ImperfectGates(errorAngleDeg float64) Scenario {
	return Scenario{
		Name:          fmt.Sprintf("imperfect-%.1fdeg", errorAngleDeg),
		Noise:         qsim.ImperfectGateModel(degToRad(errorAngleDeg)),
		ErrorAngleDeg: errorAngleDeg,
	}
}

// NewBackend builds a seeded backend for the scenario.
func (s Scenario) NewBackend(seed int64) *qsim.Backend {
	return qsim.NewBackend(seed, s.Noise)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// DefaultSweepAngles are the gate error angles (degrees) swept when none
// are configured.
func DefaultSweepAngles() []float64 {
	return []float64{0, 1, 2, 5, 10, 15}
}

// SweepPoint is one gate-error sweep sample.
type SweepPoint struct {
	AngleDeg    float64     `json:"angle_deg"`
	SuccessRate float64     `json:"success_rate"`
	ErrorRate   float64     `json:"error_rate"`
	Counts      qsim.Counts `json:"counts"`
}

// SweepGateError runs one message across a list of gate error angles
// (degrees), building a fresh imperfect-gate backend per angle so each
// point is independent and reproducible from the same seed.
func SweepGateError(seed int64, m Message, anglesDeg []float64, shots int) ([]SweepPoint, error) {
	if len(anglesDeg) == 0 {
		anglesDeg = DefaultSweepAngles()
	}
	points := make([]SweepPoint, 0, len(anglesDeg))
	for _, angle := range anglesDeg {
		backend := ImperfectGates(angle).NewBackend(seed)
		out, err := Run(backend, m, shots)
		if err != nil {
			return nil, fmt.Errorf("sweep at %g deg: %w", angle, err)
		}
		logrus.Debugf("sweep %s at %g deg: success %.2f%%", m, angle, out.SuccessRate*100)
		points = append(points, SweepPoint{
			AngleDeg:    angle,
			SuccessRate: out.SuccessRate,
			ErrorRate:   out.ErrorRate,
			Counts:      out.Counts,
		})
	}
	return points, nil
}
