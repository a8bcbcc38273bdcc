package cmd

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/superdense-sim/superdense-sim/qsim/protocol"
	"github.com/superdense-sim/superdense-sim/qsim/report"
)

var experimentSpecPath string

// experimentCmd drives a full experiment from a YAML spec: the scenario run
// over its configured messages, then the optional gate-error sweep.
var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Run an experiment described by a YAML spec",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		spec, err := LoadExperimentSpec(experimentSpecPath)
		if err != nil {
			logrus.Fatalf("unable to read experiment spec: %v", err)
		}

		scenario, err := spec.Scenario()
		if err != nil {
			logrus.Fatalf("experiment spec: %v", err)
		}

		logrus.Infof("Experiment %s: scenario %s, seed=%d, shots=%d",
			experimentSpecPath, scenario.Name, spec.Seed, spec.Shots)

		backend := scenario.NewBackend(spec.Seed)
		outcomes := make([]*protocol.Outcome, 0, len(spec.Messages))
		for _, bits := range spec.Messages {
			msg, err := protocol.ParseMessage(bits)
			if err != nil {
				logrus.Fatalf("experiment spec: %v", err)
			}
			o, err := protocol.Run(backend, msg, spec.Shots)
			if err != nil {
				logrus.Fatalf("message %s failed: %v", msg, err)
			}
			outcomes = append(outcomes, o)
		}

		rec := report.NewScenarioRecord(scenario, spec.Seed, spec.Shots, outcomes)
		report.WriteSummary(os.Stdout, rec)
		report.WriteErrorDistribution(os.Stdout, rec)

		if spec.OutputDir != "" {
			if err := report.WriteJSON(filepath.Join(spec.OutputDir, scenario.Name+".json"), rec); err != nil {
				logrus.Fatalf("write record: %v", err)
			}
			if spec.Plots {
				if err := report.PlotOutcomeGrid(rec, filepath.Join(spec.OutputDir, scenario.Name+".png")); err != nil {
					logrus.Fatalf("render plot: %v", err)
				}
			}
		}

		if spec.Sweep != nil {
			runSpecSweep(spec)
		}

		logrus.Info("Experiment complete.")
	},
}

// runSpecSweep runs the sweep section of an experiment spec.
func runSpecSweep(spec *ExperimentSpec) {
	msg, err := protocol.ParseMessage(spec.Sweep.Bits)
	if err != nil {
		logrus.Fatalf("experiment spec sweep: %v", err)
	}
	points, err := protocol.SweepGateError(spec.Seed, msg, spec.Sweep.AnglesDeg, spec.Shots)
	if err != nil {
		logrus.Fatalf("sweep failed: %v", err)
	}
	rec := &report.SweepRecord{Message: string(msg), Seed: spec.Seed, Shots: spec.Shots, Points: points}
	report.WriteSweepSummary(os.Stdout, rec)

	if spec.OutputDir != "" {
		if err := report.WriteJSON(filepath.Join(spec.OutputDir, "sweep_"+string(msg)+".json"), rec); err != nil {
			logrus.Fatalf("write record: %v", err)
		}
		if spec.Plots {
			if err := report.PlotSweep(rec, filepath.Join(spec.OutputDir, "sweep_"+string(msg)+".png")); err != nil {
				logrus.Fatalf("render plot: %v", err)
			}
		}
	}
}

func init() {
	experimentCmd.Flags().StringVar(&experimentSpecPath, "spec", "experiment.yaml", "Path to the experiment YAML spec")
	experimentCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
