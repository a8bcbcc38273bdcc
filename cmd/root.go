package cmd

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/superdense-sim/superdense-sim/qsim/protocol"
	"github.com/superdense-sim/superdense-sim/qsim/report"
)

var (
	// CLI flags shared by the run/sweep subcommands
	seed          int64   // Master seed; same seed + config reproduces counts exactly
	shots         int     // Measurement repetitions per message
	logLevel      string  // Log verbosity level
	scenarioName  string  // Scenario preset: ideal, depolarizing, imperfect
	errorAngleDeg float64 // Gate error angle in degrees (imperfect scenario)
	singleQubitP  float64 // 1-qubit depolarizing probability (depolarizing scenario)
	twoQubitP     float64 // 2-qubit depolarizing probability (depolarizing scenario)
	outDir        string  // Directory for JSON records and plots
	renderPlots   bool    // Whether to render PNG charts

	// sweep-only flags
	sweepBits   string    // Which 2-bit message to sweep
	sweepAngles []float64 // Gate error angles in degrees
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "superdense-sim",
	Short: "Shot-based simulator for the superdense coding protocol",
}

// setupLogging applies the --log flag before any subcommand work.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// buildScenario resolves the scenario flags into a preset.
func buildScenario() protocol.Scenario {
	switch scenarioName {
	case "ideal":
		return protocol.Ideal()
	case "depolarizing":
		return protocol.Depolarizing(singleQubitP, twoQubitP)
	case "imperfect":
		return protocol.ImperfectGates(errorAngleDeg)
	default:
		logrus.Fatalf("Unknown scenario %q (want ideal, depolarizing, or imperfect)", scenarioName)
		return protocol.Scenario{}
	}
}

// runCmd runs all four messages through the selected scenario.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all four 2-bit messages through one scenario",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		scenario := buildScenario()

		logrus.Infof("Starting scenario %s with seed=%d, shots=%d", scenario.Name, seed, shots)
		backend := scenario.NewBackend(seed)
		outcomes, err := protocol.RunAll(backend, shots)
		if err != nil {
			logrus.Fatalf("scenario %s failed: %v", scenario.Name, err)
		}

		rec := report.NewScenarioRecord(scenario, seed, shots, outcomes)
		report.WriteSummary(os.Stdout, rec)
		report.WriteErrorDistribution(os.Stdout, rec)

		if outDir != "" {
			writeScenarioArtifacts(rec, scenario.Name)
		}
	},
}

// sweepCmd sweeps the imperfect-gate error angle for one message.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the gate error angle for one message",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		msg, err := protocol.ParseMessage(sweepBits)
		if err != nil {
			logrus.Fatalf("Invalid --bits: %v", err)
		}

		logrus.Infof("Sweeping input %s over %v degrees with seed=%d, shots=%d", msg, sweepAngles, seed, shots)
		points, err := protocol.SweepGateError(seed, msg, sweepAngles, shots)
		if err != nil {
			logrus.Fatalf("sweep failed: %v", err)
		}

		rec := &report.SweepRecord{Message: string(msg), Seed: seed, Shots: shots, Points: points}
		report.WriteSweepSummary(os.Stdout, rec)

		if outDir != "" {
			writeSweepArtifacts(rec)
		}
	},
}

// writeScenarioArtifacts writes the JSON record and optional plot for a
// scenario run into outDir.
func writeScenarioArtifacts(rec *report.ScenarioRecord, name string) {
	jsonPath := filepath.Join(outDir, name+".json")
	if err := report.WriteJSON(jsonPath, rec); err != nil {
		logrus.Fatalf("write record: %v", err)
	}
	logrus.Infof("Record written to %s", jsonPath)

	if renderPlots {
		plotPath := filepath.Join(outDir, name+".png")
		if err := report.PlotOutcomeGrid(rec, plotPath); err != nil {
			logrus.Fatalf("render plot: %v", err)
		}
		logrus.Infof("Plot written to %s", plotPath)
	}
}

// writeSweepArtifacts writes the JSON record and optional plot for a sweep.
func writeSweepArtifacts(rec *report.SweepRecord) {
	jsonPath := filepath.Join(outDir, "sweep_"+rec.Message+".json")
	if err := report.WriteJSON(jsonPath, rec); err != nil {
		logrus.Fatalf("write record: %v", err)
	}
	logrus.Infof("Record written to %s", jsonPath)

	if renderPlots {
		plotPath := filepath.Join(outDir, "sweep_"+rec.Message+".png")
		if err := report.PlotSweep(rec, plotPath); err != nil {
			logrus.Fatalf("render plot: %v", err)
		}
		logrus.Infof("Plot written to %s", plotPath)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, sweepCmd} {
		c.Flags().Int64Var(&seed, "seed", 42, "Master seed for measurement and noise sampling")
		c.Flags().IntVar(&shots, "shots", 2048, "Measurement repetitions per message")
		c.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
		c.Flags().StringVar(&outDir, "out", "", "Directory for JSON records and plots (empty = stdout only)")
		c.Flags().BoolVar(&renderPlots, "plot", false, "Render PNG charts into --out")
	}

	// scenario selection
	runCmd.Flags().StringVar(&scenarioName, "scenario", "ideal", "Scenario preset (ideal, depolarizing, imperfect)")
	runCmd.Flags().Float64Var(&errorAngleDeg, "error-angle", 5, "Gate error angle in degrees (imperfect scenario)")
	runCmd.Flags().Float64Var(&singleQubitP, "p1", 0.01, "Single-qubit depolarizing probability (depolarizing scenario)")
	runCmd.Flags().Float64Var(&twoQubitP, "p2", 0.03, "Two-qubit depolarizing probability (depolarizing scenario)")

	// sweep configuration
	sweepCmd.Flags().StringVar(&sweepBits, "bits", "11", "2-bit message to sweep")
	sweepCmd.Flags().Float64SliceVar(&sweepAngles, "angles", protocol.DefaultSweepAngles(), "Comma-separated gate error angles in degrees")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(experimentCmd)
}
