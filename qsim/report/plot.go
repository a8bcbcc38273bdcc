package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/superdense-sim/superdense-sim/qsim/protocol"
)

var (
	successColor = color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff} // sea green
	errorColor   = color.RGBA{R: 0xd9, G: 0x53, B: 0x19, A: 0xff} // burnt orange
)

// outcomePlot builds one bar chart of a message's outcome counts. Bars for
// the expected outcome and for errors are separate series so they render in
// different colors.
func outcomePlot(o *protocol.Outcome) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Input %s (success %.1f%%)", o.Message, o.SuccessRate*100)
	p.X.Label.Text = "Measurement outcome"
	p.Y.Label.Text = "Counts"

	outcomes := o.Counts.Outcomes()
	expected := make(plotter.Values, len(outcomes))
	errors := make(plotter.Values, len(outcomes))
	for i, outcome := range outcomes {
		if outcome == o.Expected {
			expected[i] = float64(o.Counts[outcome])
		} else {
			errors[i] = float64(o.Counts[outcome])
		}
	}

	width := vg.Points(24)
	expectedBars, err := plotter.NewBarChart(expected, width)
	if err != nil {
		return nil, fmt.Errorf("bar chart for %s: %w", o.Message, err)
	}
	expectedBars.Color = successColor
	errorBars, err := plotter.NewBarChart(errors, width)
	if err != nil {
		return nil, fmt.Errorf("bar chart for %s: %w", o.Message, err)
	}
	errorBars.Color = errorColor

	p.Add(expectedBars, errorBars)
	p.NominalX(outcomes...)
	return p, nil
}

// PlotOutcomeGrid renders a 2x2 grid of outcome bar charts, one per
// message, to a PNG file.
func PlotOutcomeGrid(rec *ScenarioRecord, path string) error {
	const rows, cols = 2, 2
	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}
	for i, o := range rec.Outcomes {
		if i >= rows*cols {
			break
		}
		p, err := outcomePlot(o)
		if err != nil {
			return err
		}
		plots[i/cols][i%cols] = p
	}

	img := vgimg.New(10*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 2, PadY: vg.Millimeter * 2,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	return writePNG(img, path)
}

// PlotSweep renders success and error rate versus gate error angle.
func PlotSweep(rec *SweepRecord, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Gate error impact (input %s)", rec.Message)
	p.X.Label.Text = "Gate error angle (degrees)"
	p.Y.Label.Text = "Rate (%)"
	p.Y.Min, p.Y.Max = 0, 105
	p.Legend.Top = true

	successXYs := make(plotter.XYs, len(rec.Points))
	errorXYs := make(plotter.XYs, len(rec.Points))
	for i, pt := range rec.Points {
		successXYs[i] = plotter.XY{X: pt.AngleDeg, Y: pt.SuccessRate * 100}
		errorXYs[i] = plotter.XY{X: pt.AngleDeg, Y: pt.ErrorRate * 100}
	}

	successLine, successPoints, err := plotter.NewLinePoints(successXYs)
	if err != nil {
		return fmt.Errorf("sweep success series: %w", err)
	}
	successLine.Color = successColor
	successPoints.Color = successColor
	errorLine, errorPoints, err := plotter.NewLinePoints(errorXYs)
	if err != nil {
		return fmt.Errorf("sweep error series: %w", err)
	}
	errorLine.Color = errorColor
	errorPoints.Color = errorColor

	p.Add(successLine, successPoints, errorLine, errorPoints)
	p.Legend.Add("success rate", successLine, successPoints)
	p.Legend.Add("error rate", errorLine, errorPoints)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save sweep plot: %w", err)
	}
	return nil
}

func writePNG(img *vgimg.Canvas, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}
