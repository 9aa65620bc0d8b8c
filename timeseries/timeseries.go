// Package timeseries loads and prepares evenly sampled univariate series.
//
// The package handles plain-text tabular resources of the kind distributed
// with geophysical index datasets: a fixed header/comment block followed by
// one numeric sample per line at a fixed sampling interval. It also provides
// the mean-removal and time-axis helpers the analysis packages expect.
package timeseries

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by series loading and preparation.
var (
	ErrFormat     = errors.New("timeseries: malformed numeric row")
	ErrDegenerate = errors.New("timeseries: series must contain at least 2 samples")
	ErrTimeStep   = errors.New("timeseries: time step must be > 0")
)

// DefaultHeaderLines is the header block length of the bundled NINO3 dataset.
const DefaultHeaderLines = 19

// Load reads a single-column numeric series from a plain-text resource,
// skipping the first skipLines lines as a header/comment block.
//
// Each remaining non-blank line must begin with a numeric token; only the
// first whitespace-separated column is used. A missing or unreadable file
// surfaces the wrapped filesystem error; a non-numeric token after the skip
// offset fails with [ErrFormat] identifying the offending line.
func Load(path string, skipLines int) ([]float64, error) {
	if skipLines < 0 {
		return nil, fmt.Errorf("timeseries: skip lines must be >= 0: %d", skipLines)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("timeseries: open input: %w", err)
	}
	defer f.Close()

	var out []float64

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= skipLines {
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrFormat, lineNo, fields[0])
		}

		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timeseries: read input: %w", err)
	}

	if len(out) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerate, len(out))
	}

	return out, nil
}

// Detrend returns a new slice with the arithmetic mean subtracted.
//
// The result has mean zero up to floating-point rounding. An empty input
// returns nil.
func Detrend(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}

	mean := stat.Mean(x, nil)

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - mean
	}
	return out
}

// TimeAxis returns n evenly spaced time values start + i*step.
//
// The result is strictly increasing; step must be positive and n >= 2.
func TimeAxis(start, step float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerate, n)
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrTimeStep, step)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}
