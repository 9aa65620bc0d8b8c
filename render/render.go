// Package render draws the analysis artifacts: raw signal, one-sided
// Fourier spectrum, and wavelet power scaleogram.
//
// All plots are written through gonum/plot; the output format follows the
// file extension (.png by default). Each renderer accepts an explicit output
// path or derives a default filename from the analysis type.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Errors returned by the renderers.
var (
	ErrEmptyInput     = errors.New("render: input must not be empty")
	ErrLengthMismatch = errors.New("render: input length mismatch")
	ErrNumericDomain  = errors.New("render: value outside logarithmic domain")
)

// Default output filenames, used when no explicit path is given.
const (
	DefaultSignalPath     = "signal.png"
	DefaultSpectrumPath   = "fourier_spectrum.png"
	DefaultScaleogramPath = "morlet_scaleogram.png"
)

// Labels configures titles and axis captions of a plot.
type Labels struct {
	Title  string
	XLabel string
	YLabel string
}

var (
	signalColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	ampColor    = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	powerColor  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Signal renders a line plot of the series x over time axis t.
func Signal(t, x []float64, path string, labels Labels) error {
	if len(t) == 0 || len(x) == 0 {
		return ErrEmptyInput
	}
	if len(t) != len(x) {
		return fmt.Errorf("%w: time=%d samples=%d", ErrLengthMismatch, len(t), len(x))
	}
	if path == "" {
		path = DefaultSignalPath
	}

	p := newPlot(labels)

	line, err := plotter.NewLine(xyPoints(t, x))
	if err != nil {
		return fmt.Errorf("render: signal line: %w", err)
	}
	line.Color = signalColor

	p.Add(plotter.NewGrid(), line)
	return save(p, path)
}

// Spectrum renders amplitude and power traces over the frequency axis.
func Spectrum(freq, amplitude, power []float64, path string, labels Labels) error {
	if len(freq) == 0 {
		return ErrEmptyInput
	}
	if len(freq) != len(amplitude) || len(freq) != len(power) {
		return fmt.Errorf("%w: freq=%d amplitude=%d power=%d",
			ErrLengthMismatch, len(freq), len(amplitude), len(power))
	}
	if path == "" {
		path = DefaultSpectrumPath
	}

	p := newPlot(labels)

	ampLine, err := plotter.NewLine(xyPoints(freq, amplitude))
	if err != nil {
		return fmt.Errorf("render: amplitude line: %w", err)
	}
	ampLine.Color = ampColor

	powLine, err := plotter.NewLine(xyPoints(freq, power))
	if err != nil {
		return fmt.Errorf("render: power line: %w", err)
	}
	powLine.Color = powerColor
	powLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), ampLine, powLine)
	p.Legend.Add("amplitude", ampLine)
	p.Legend.Add("power", powLine)
	p.Legend.Top = true

	return save(p, path)
}

func newPlot(labels Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = labels.Title
	p.X.Label.Text = labels.XLabel
	p.Y.Label.Text = labels.YLabel
	return p
}

func xyPoints(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
