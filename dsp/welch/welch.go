// Package welch estimates power spectral density by Welch's method of
// averaged modified periodograms.
//
// It complements the raw one-sided spectrum from dsp/fourier: averaging
// windowed segments trades frequency resolution for variance reduction,
// which suits noisy geophysical records. The estimation itself is delegated
// to go-dsp.
package welch

import (
	"errors"
	"fmt"

	"github.com/mjibson/go-dsp/spectral"
	"github.com/mjibson/go-dsp/window"
)

// Errors returned by PSD estimation.
var (
	ErrShortSignal = errors.New("welch: signal must contain at least 2 samples")
	ErrSampleStep  = errors.New("welch: sampling interval must be > 0")
)

// Options tunes the segmentation of the Welch estimate.
type Options struct {
	// SegmentLen is the FFT segment length. Zero selects go-dsp's default
	// segmentation for the input length.
	SegmentLen int

	// Overlap is the number of samples shared by adjacent segments.
	// Zero means half-segment overlap when SegmentLen is set.
	Overlap int
}

// Result holds a one-sided Welch power spectral density estimate.
type Result struct {
	Freq []float64 // frequency bins, cycles per time unit
	PSD  []float64 // power spectral density per bin
}

// Estimate computes the Welch PSD of signal sampled at interval dt using a
// Hann window over each segment.
func Estimate(signal []float64, dt float64, opts Options) (Result, error) {
	if len(signal) < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrShortSignal, len(signal))
	}
	if dt <= 0 {
		return Result{}, fmt.Errorf("%w: %f", ErrSampleStep, dt)
	}
	if opts.SegmentLen < 0 {
		return Result{}, fmt.Errorf("welch: segment length must be >= 0: %d", opts.SegmentLen)
	}
	if opts.SegmentLen > 0 && opts.Overlap >= opts.SegmentLen {
		return Result{}, fmt.Errorf("welch: overlap %d must be < segment length %d",
			opts.Overlap, opts.SegmentLen)
	}

	po := &spectral.PwelchOptions{
		NFFT:     opts.SegmentLen,
		Window:   window.Hann,
		Noverlap: opts.Overlap,
	}
	if opts.SegmentLen > 0 && opts.Overlap == 0 {
		po.Noverlap = opts.SegmentLen / 2
	}

	psd, freq := spectral.Pwelch(signal, 1/dt, po)
	return Result{Freq: freq, PSD: psd}, nil
}

// PeakFrequency returns the frequency of the largest non-DC PSD bin.
func PeakFrequency(r Result) float64 {
	if len(r.PSD) < 2 {
		return 0
	}

	bestBin := 1
	for k := 2; k < len(r.PSD); k++ {
		if r.PSD[k] > r.PSD[bestBin] {
			bestBin = k
		}
	}
	return r.Freq[bestBin]
}
