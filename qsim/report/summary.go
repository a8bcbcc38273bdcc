package report

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/superdense-sim/superdense-sim/qsim/protocol"
)

const ruleWidth = 72

func rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, ruleWidth))
}

// WriteSummary prints the per-message result table for a scenario run.
func WriteSummary(w io.Writer, rec *ScenarioRecord) {
	rule(w, "=")
	fmt.Fprintf(w, "SUPERDENSE CODING SUMMARY - scenario %s (seed %d, %d shots)\n",
		rec.Scenario, rec.Seed, rec.Shots)
	rule(w, "=")
	fmt.Fprintf(w, "%-8s %-10s %-10s %-14s %-12s %s\n",
		"Input", "Expected", "Decoded", "Success Rate", "Error Rate", "Status")
	rule(w, "-")

	rates := make([]float64, 0, len(rec.Outcomes))
	for _, o := range rec.Outcomes {
		rates = append(rates, o.SuccessRate)
		fmt.Fprintf(w, "%-8s %-10s %-10s %12.2f%% %10.2f%% %s\n",
			o.Message, o.Expected, o.Decoded(),
			o.SuccessRate*100, o.ErrorRate*100, protocol.StatusFor(o.SuccessRate))
	}

	rule(w, "-")
	if len(rates) > 1 {
		mean := stat.Mean(rates, nil)
		std := stat.StdDev(rates, nil)
		fmt.Fprintf(w, "Mean success rate   : %.2f%% (stddev %.2f%%)\n", mean*100, std*100)
	} else if len(rates) == 1 {
		fmt.Fprintf(w, "Mean success rate   : %.2f%%\n", rates[0]*100)
	}
	rule(w, "=")
}

// WriteErrorDistribution prints the non-expected outcomes of each message,
// one block per message that saw any errors.
func WriteErrorDistribution(w io.Writer, rec *ScenarioRecord) {
	for _, o := range rec.Outcomes {
		if len(o.ErrorDist) == 0 {
			continue
		}
		fmt.Fprintf(w, "Errors for input %s:\n", o.Message)
		for _, outcome := range o.ErrorDist.Outcomes() {
			n := o.ErrorDist[outcome]
			fmt.Fprintf(w, "  %s: %d (%.2f%%)\n", outcome, n, float64(n)/float64(o.Shots)*100)
		}
	}
}

// WriteSweepSummary prints the gate-error sweep table.
func WriteSweepSummary(w io.Writer, rec *SweepRecord) {
	rule(w, "=")
	fmt.Fprintf(w, "GATE ERROR SWEEP - input %s (seed %d, %d shots)\n", rec.Message, rec.Seed, rec.Shots)
	rule(w, "=")
	fmt.Fprintf(w, "%-12s %-14s %s\n", "Angle (deg)", "Success Rate", "Error Rate")
	rule(w, "-")
	for _, p := range rec.Points {
		fmt.Fprintf(w, "%-12g %12.2f%% %9.2f%%\n", p.AngleDeg, p.SuccessRate*100, p.ErrorRate*100)
	}
	rule(w, "=")
}
