// Package fourier computes one-sided discrete Fourier spectra of evenly
// sampled real signals.
//
// The FFT itself is delegated to go-dsp, which handles arbitrary (including
// non-power-of-two) lengths; this package derives the Nyquist-limited
// frequency axis, normalized amplitude, and variance-scaled power spectrum
// from the complex bins.
package fourier

import (
	"errors"
	"fmt"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-spectral/dsp/spectrum"
)

// Errors returned by spectrum analysis.
var (
	ErrShortSignal = errors.New("fourier: signal must contain at least 2 samples")
	ErrSampleStep  = errors.New("fourier: sampling interval must be > 0")
)

// Result holds the positive-frequency half of a Fourier analysis.
//
// All three slices have length N/2 (integer division) for an N-sample input.
// Amplitude and Power contain only non-negative values.
type Result struct {
	Freq      []float64 // frequency bins, cycles per time unit
	Amplitude []float64 // (2/N)*|X[k]|
	Power     []float64 // variance(signal) * Amplitude^2
}

// Analyze computes the one-sided amplitude and power spectrum of signal
// sampled at interval dt.
//
// Frequency bin k is k / (2*dt*(N/2)); for even N this equals k/(N*dt).
// Negative-frequency bins are discarded using the conjugate symmetry of
// real-input transforms.
func Analyze(signal []float64, dt float64) (Result, error) {
	n := len(signal)
	if n < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrShortSignal, n)
	}
	if dt <= 0 {
		return Result{}, fmt.Errorf("%w: %f", ErrSampleStep, dt)
	}

	bins := spectrum.PositiveHalf(fft.FFTReal(signal))
	amplitude := spectrum.Magnitude(bins)

	half := len(amplitude)
	scale := 2 / float64(n)
	variance := stat.Variance(signal, nil)

	freq := make([]float64, half)
	power := make([]float64, half)
	binWidth := 1 / (2 * dt * float64(half))
	for k := range freq {
		freq[k] = float64(k) * binWidth
		amplitude[k] *= scale
		power[k] = variance * amplitude[k] * amplitude[k]
	}

	return Result{Freq: freq, Amplitude: amplitude, Power: power}, nil
}

// PeakFrequency returns the frequency of the largest non-DC amplitude bin.
//
// Returns 0 when the result holds fewer than 2 bins.
func PeakFrequency(r Result) float64 {
	if len(r.Amplitude) < 2 {
		return 0
	}

	bestBin := 1
	bestVal := r.Amplitude[1]
	for k := 2; k < len(r.Amplitude); k++ {
		if r.Amplitude[k] > bestVal {
			bestVal = r.Amplitude[k]
			bestBin = k
		}
	}
	return r.Freq[bestBin]
}
