package welch

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestEstimatePeakFrequency(t *testing.T) {
	const (
		f0 = 0.5
		dt = 0.25
		n  = 1024
	)

	rng := rand.New(rand.NewSource(3))
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2*math.Pi*f0*float64(i)*dt) + 0.1*(rng.Float64()*2-1)
	}

	res, err := Estimate(signal, dt, Options{SegmentLen: 256})
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}

	if len(res.Freq) != len(res.PSD) {
		t.Fatalf("axis/psd length mismatch: %d != %d", len(res.Freq), len(res.PSD))
	}
	for k, v := range res.PSD {
		if v < 0 {
			t.Fatalf("negative PSD at bin %d: %f", k, v)
		}
	}

	binWidth := res.Freq[1] - res.Freq[0]
	peak := PeakFrequency(res)
	if math.Abs(peak-f0) > binWidth {
		t.Fatalf("peak=%f want=%f within %f", peak, f0, binWidth)
	}
}

func TestEstimateDefaults(t *testing.T) {
	signal := make([]float64, 512)
	for i := range signal {
		signal[i] = math.Sin(0.3 * float64(i))
	}

	res, err := Estimate(signal, 1, Options{})
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}
	if len(res.PSD) == 0 {
		t.Fatalf("empty PSD with default options")
	}
}

func TestEstimateErrors(t *testing.T) {
	if _, err := Estimate([]float64{1}, 1, Options{}); !errors.Is(err, ErrShortSignal) {
		t.Fatalf("expected ErrShortSignal, got: %v", err)
	}
	if _, err := Estimate([]float64{1, 2}, 0, Options{}); !errors.Is(err, ErrSampleStep) {
		t.Fatalf("expected ErrSampleStep, got: %v", err)
	}
	if _, err := Estimate([]float64{1, 2, 3}, 1, Options{SegmentLen: 8, Overlap: 8}); err == nil {
		t.Fatalf("expected error for overlap >= segment length")
	}
}
