package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
)

// Scaleogram color binning: power levels form a geometric sequence starting
// at 8 and doubling, giving equal-width bins on the log2 color axis.
const (
	levelStart = 8.0
	levelCount = 10
)

// powerFloor is the fraction of the power maximum used to clamp zero power
// before taking log2.
const powerFloor = 1e-12

// Scaleogram renders wavelet power over (time, period) as a heat map.
//
// Color encodes log2(power) binned at log2 of a geometric level sequence
// (start 8, doubling, 10 levels); the vertical axis is log2(period) with
// ticks at powers of two and short periods at the top.
//
// power must have one row per period and one column per time sample. All
// periods must be positive and at least one power value must be positive;
// zero power cells are clamped to a tiny fraction of the maximum before the
// logarithm.
func Scaleogram(t, periods []float64, power [][]float64, path string, labels Labels) error {
	if len(t) == 0 || len(periods) == 0 || len(power) == 0 {
		return ErrEmptyInput
	}
	if len(power) != len(periods) {
		return fmt.Errorf("%w: %d power rows for %d periods", ErrLengthMismatch, len(power), len(periods))
	}
	for i, row := range power {
		if len(row) != len(t) {
			return fmt.Errorf("%w: power row %d has %d columns for %d time samples",
				ErrLengthMismatch, i, len(row), len(t))
		}
	}
	if path == "" {
		path = DefaultScaleogramPath
	}

	logPeriod := make([]float64, len(periods))
	for i, v := range periods {
		if v <= 0 {
			return fmt.Errorf("%w: period[%d]=%f", ErrNumericDomain, i, v)
		}
		logPeriod[i] = math.Log2(v)
	}

	logPower, err := log2Power(power)
	if err != nil {
		return err
	}

	p := newPlot(labels)
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Y.Tick.Marker = powerOfTwoTicks(logPeriod[0], logPeriod[len(logPeriod)-1])

	grid := &scaleogramGrid{t: t, y: logPeriod, z: logPower}
	heat := plotter.NewHeatMap(grid, palette.Heat(levelCount, 1))
	heat.Min = math.Log2(levelStart)
	heat.Max = math.Log2(levelStart * math.Pow(2, levelCount-1))

	p.Add(heat)
	return save(p, path)
}

// log2Power maps power to log2 with a relative floor for zero cells.
// Fails when no cell is positive.
func log2Power(power [][]float64) ([][]float64, error) {
	maxPower := 0.0
	for _, row := range power {
		for _, v := range row {
			if v > maxPower {
				maxPower = v
			}
		}
	}
	if maxPower <= 0 {
		return nil, fmt.Errorf("%w: power matrix has no positive values", ErrNumericDomain)
	}

	floor := maxPower * powerFloor
	out := make([][]float64, len(power))
	for i, row := range power {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if v < floor {
				v = floor
			}
			out[i][j] = math.Log2(v)
		}
	}
	return out, nil
}

// powerOfTwoTicks places major ticks at integer log2 values labeled with
// the corresponding period.
func powerOfTwoTicks(lo, hi float64) plot.ConstantTicks {
	if lo > hi {
		lo, hi = hi, lo
	}

	var ticks []plot.Tick
	for v := math.Ceil(lo); v <= hi; v++ {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf("%g", math.Pow(2, v)),
		})
	}
	if len(ticks) == 0 {
		// Degenerate range between two powers of two, fall back to the ends.
		ticks = []plot.Tick{
			{Value: lo, Label: fmt.Sprintf("%.2f", math.Pow(2, lo))},
			{Value: hi, Label: fmt.Sprintf("%.2f", math.Pow(2, hi))},
		}
	}
	return plot.ConstantTicks(ticks)
}

// scaleogramGrid adapts the power matrix to the plotter grid interface.
type scaleogramGrid struct {
	t []float64 // column coordinates (time)
	y []float64 // row coordinates (log2 period)
	z [][]float64
}

func (g *scaleogramGrid) Dims() (c, r int)   { return len(g.t), len(g.y) }
func (g *scaleogramGrid) X(c int) float64    { return g.t[c] }
func (g *scaleogramGrid) Y(r int) float64    { return g.y[r] }
func (g *scaleogramGrid) Z(c, r int) float64 { return g.z[r][c] }

var _ plotter.GridXYZ = (*scaleogramGrid)(nil)
