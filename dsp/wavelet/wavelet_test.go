package wavelet

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

func sine(freq, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}
	return out
}

func rangeScales(lo, hi int) []float64 {
	out := make([]float64, 0, hi-lo+1)
	for a := lo; a <= hi; a++ {
		out = append(out, float64(a))
	}
	return out
}

func TestTransformShape(t *testing.T) {
	const n = 200
	scales := rangeScales(2, 17)

	res, err := Transform(sine(0.5, 0.25, n), scales, 0.25, DefaultMorlet())
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	if len(res.Coeffs) != len(scales) {
		t.Fatalf("row count mismatch: got=%d want=%d", len(res.Coeffs), len(scales))
	}
	for i, row := range res.Coeffs {
		if len(row) != n {
			t.Fatalf("row %d length mismatch: got=%d want=%d", i, len(row), n)
		}
	}
	if len(res.Periods) != len(scales) || len(res.PseudoFreq) != len(scales) {
		t.Fatalf("axis length mismatch: periods=%d freq=%d", len(res.Periods), len(res.PseudoFreq))
	}
}

func TestPowerIsSquaredMagnitude(t *testing.T) {
	res, err := Transform(sine(0.5, 0.25, 64), rangeScales(2, 5), 0.25, DefaultMorlet())
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	power := res.Power()
	for i, row := range res.Coeffs {
		for j, c := range row {
			want := real(c)*real(c) + imag(c)*imag(c)
			if math.Abs(power[i][j]-want) > 1e-12*math.Max(1, want) {
				t.Fatalf("power[%d][%d]=%e want=%e", i, j, power[i][j], want)
			}
		}
	}
}

func TestPeriodsIncreaseWithScale(t *testing.T) {
	const dt = 0.25
	res, err := Transform(sine(0.5, dt, 64), rangeScales(2, 30), dt, DefaultMorlet())
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	w := DefaultMorlet()
	for i := range res.Scales {
		want := res.Scales[i] * dt / w.CenterFreq
		if math.Abs(res.Periods[i]-want) > 1e-12 {
			t.Fatalf("period[%d]=%f want=%f", i, res.Periods[i], want)
		}
		if math.Abs(res.PseudoFreq[i]*res.Periods[i]-1) > 1e-12 {
			t.Fatalf("period/frequency not reciprocal at %d", i)
		}
		if i > 0 && res.Periods[i] <= res.Periods[i-1] {
			t.Fatalf("periods not strictly increasing at %d", i)
		}
	}
}

func TestScaleogramPeakTracksSignalPeriod(t *testing.T) {
	const (
		f0 = 0.5
		dt = 0.25
		n  = 400
	)

	rng := rand.New(rand.NewSource(11))
	signal := sine(f0, dt, n)
	for i := range signal {
		signal[i] += 0.1 * (rng.Float64()*2 - 1)
	}

	res, err := Transform(signal, rangeScales(2, 64), dt, DefaultMorlet())
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	power := res.Power()
	wantPeriod := 1 / f0

	// Check away from the cone-of-influence edges.
	for b := n / 4; b < 3*n/4; b += 20 {
		bestRow := 0
		for i := range power {
			if power[i][b] > power[bestRow][b] {
				bestRow = i
			}
		}
		if math.Abs(res.Periods[bestRow]-wantPeriod) > 0.5 {
			t.Fatalf("column %d: peak period=%f want=%f", b, res.Periods[bestRow], wantPeriod)
		}
	}
}

func TestDirectAndFFTPathsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	signal := make([]float64, 128)
	for i := range signal {
		signal[i] = rng.Float64()*2 - 1
	}

	kernel := dilatedKernel(DefaultMorlet(), 8) // 99 taps, above threshold
	if len(kernel) < directThreshold {
		t.Fatalf("test kernel too short to exercise FFT path: %d", len(kernel))
	}

	conv := newConvolver(signal)
	direct := conv.correlateDirect(kernel)
	viaFFT, err := conv.correlateFFT(kernel)
	if err != nil {
		t.Fatalf("correlateFFT error: %v", err)
	}

	for i := range direct {
		if cmplx.Abs(direct[i]-viaFFT[i]) > 1e-9 {
			t.Fatalf("paths disagree at %d: direct=%v fft=%v", i, direct[i], viaFFT[i])
		}
	}
}

func TestTransformValidation(t *testing.T) {
	signal := sine(0.5, 0.25, 64)
	w := DefaultMorlet()

	if _, err := Transform([]float64{1}, rangeScales(2, 4), 0.25, w); !errors.Is(err, ErrShortSignal) {
		t.Fatalf("expected ErrShortSignal, got: %v", err)
	}
	if _, err := Transform(signal, rangeScales(2, 4), 0, w); !errors.Is(err, ErrSampleStep) {
		t.Fatalf("expected ErrSampleStep, got: %v", err)
	}
	if _, err := Transform(signal, nil, 0.25, w); !errors.Is(err, ErrScale) {
		t.Fatalf("expected ErrScale for empty scales, got: %v", err)
	}
	if _, err := Transform(signal, []float64{-1, 2}, 0.25, w); !errors.Is(err, ErrScale) {
		t.Fatalf("expected ErrScale for negative scale, got: %v", err)
	}
	if _, err := Transform(signal, []float64{4, 4}, 0.25, w); !errors.Is(err, ErrScale) {
		t.Fatalf("expected ErrScale for non-increasing scales, got: %v", err)
	}
	if _, err := Transform(signal, []float64{1, 4}, 0.25, w); !errors.Is(err, ErrSubNyquist) {
		t.Fatalf("expected ErrSubNyquist for scale 1, got: %v", err)
	}
	if _, err := Transform(signal, rangeScales(2, 4), 0.25, Morlet{Bandwidth: 0, CenterFreq: 1}); !errors.Is(err, ErrWavelet) {
		t.Fatalf("expected ErrWavelet for zero bandwidth, got: %v", err)
	}
}

func TestAllowSubNyquist(t *testing.T) {
	signal := sine(0.5, 0.25, 64)

	res, err := Transform(signal, []float64{1, 2, 3}, 0.25, DefaultMorlet(), WithAllowSubNyquist())
	if err != nil {
		t.Fatalf("Transform error with sub-Nyquist scales allowed: %v", err)
	}
	if len(res.Coeffs) != 3 {
		t.Fatalf("row count mismatch: got=%d want=3", len(res.Coeffs))
	}
}

func TestMorletUnitEnergyShape(t *testing.T) {
	w := DefaultMorlet()

	center := w.At(0)
	if imag(center) != 0 || real(center) <= 0 {
		t.Fatalf("psi(0) should be real positive: %v", center)
	}

	// Envelope symmetry: |psi(t)| == |psi(-t)|.
	for _, tv := range []float64{0.3, 1.1, 2.4} {
		if math.Abs(cmplx.Abs(w.At(tv))-cmplx.Abs(w.At(-tv))) > 1e-12 {
			t.Fatalf("envelope asymmetric at t=%f", tv)
		}
	}

	// Envelope decays monotonically.
	if cmplx.Abs(w.At(2)) >= cmplx.Abs(w.At(1)) {
		t.Fatalf("envelope not decaying")
	}
}
