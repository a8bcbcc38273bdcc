// Package report turns protocol outcomes into human summaries, JSON
// records, and PNG charts.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/superdense-sim/superdense-sim/qsim/protocol"
)

// ScenarioRecord bundles everything one scenario run produced, in the shape
// the JSON export and the plots consume.
type ScenarioRecord struct {
	Scenario      string              `json:"scenario"`
	Seed          int64               `json:"seed"`
	Shots         int                 `json:"shots"`
	ErrorAngleDeg float64             `json:"error_angle_deg,omitempty"`
	Outcomes      []*protocol.Outcome `json:"outcomes"`
}

// NewScenarioRecord builds a record from a scenario run.
func NewScenarioRecord(scenario protocol.Scenario, seed int64, shots int, outcomes []*protocol.Outcome) *ScenarioRecord {
	return &ScenarioRecord{
		Scenario:      scenario.Name,
		Seed:          seed,
		Shots:         shots,
		ErrorAngleDeg: scenario.ErrorAngleDeg,
		Outcomes:      outcomes,
	}
}

// SweepRecord bundles a gate-error sweep for one message.
type SweepRecord struct {
	Message string                `json:"message"`
	Seed    int64                 `json:"seed"`
	Shots   int                   `json:"shots"`
	Points  []protocol.SweepPoint `json:"points"`
}

// WriteJSON marshals v indented and writes it to path, creating parent
// directories as needed.
func WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
