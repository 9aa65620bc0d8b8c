package wavelet

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-spectral/dsp/spectrum"
)

// Errors returned by the continuous wavelet transform.
var (
	ErrShortSignal = errors.New("wavelet: signal must contain at least 2 samples")
	ErrSampleStep  = errors.New("wavelet: sampling interval must be > 0")
	ErrScale       = errors.New("wavelet: scales must be strictly increasing and > 0")
	ErrSubNyquist  = errors.New("wavelet: scale analyzes a frequency above the Nyquist limit")
	ErrWavelet     = errors.New("wavelet: invalid wavelet parameters")
)

// directThreshold is the kernel length below which direct correlation beats
// the FFT path. Matches the empirical convolution crossover of similar
// libraries on typical hardware.
const directThreshold = 64

// Option adjusts transform behavior.
type Option func(*config)

type config struct {
	allowSubNyquist bool
}

// WithAllowSubNyquist permits scales whose pseudo-frequency exceeds the
// Nyquist limit. Coefficients at such scales are aliased and unreliable;
// by default the transform rejects them.
func WithAllowSubNyquist() Option {
	return func(c *config) { c.allowSubNyquist = true }
}

// Result holds a continuous wavelet decomposition.
//
// Coeffs has one row per scale and one column per input sample; Periods and
// PseudoFreq pair with Scales index-by-index and increase (respectively
// decrease) strictly with scale.
type Result struct {
	Scales     []float64
	Periods    []float64
	PseudoFreq []float64
	Coeffs     [][]complex128
}

// Power returns the squared coefficient magnitude, row per scale.
func (r *Result) Power() [][]float64 {
	out := make([][]float64, len(r.Coeffs))
	for i, row := range r.Coeffs {
		out[i] = make([]float64, len(row))
		spectrum.PowerTo(out[i], row)
	}
	return out
}

// Transform computes the continuous wavelet transform of signal at the given
// scales (in samples) and sampling interval dt.
//
// For scale a, row coefficients are
//
//	W[a][b] = (1/sqrt(a)) * sum_k signal[b+k] * conj(psi(k/a))
//
// with the signal treated as zero outside its support. Scales must be
// strictly increasing and positive; scales below 2*C (pseudo-frequency above
// Nyquist) are rejected unless [WithAllowSubNyquist] is given.
func Transform(signal []float64, scales []float64, dt float64, w Morlet, opts ...Option) (*Result, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(signal) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrShortSignal, len(signal))
	}
	if dt <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrSampleStep, dt)
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	if err := validateScales(scales, w, cfg.allowSubNyquist); err != nil {
		return nil, err
	}

	res := &Result{
		Scales:     append([]float64(nil), scales...),
		Periods:    make([]float64, len(scales)),
		PseudoFreq: make([]float64, len(scales)),
		Coeffs:     make([][]complex128, len(scales)),
	}

	conv := newConvolver(signal)
	for i, a := range scales {
		res.Periods[i] = w.Period(a, dt)
		res.PseudoFreq[i] = w.PseudoFrequency(a, dt)

		kernel := dilatedKernel(w, a)
		row, err := conv.correlate(kernel)
		if err != nil {
			return nil, fmt.Errorf("wavelet: scale %f: %w", a, err)
		}
		res.Coeffs[i] = row
	}

	return res, nil
}

func validateScales(scales []float64, w Morlet, allowSubNyquist bool) error {
	if len(scales) == 0 {
		return fmt.Errorf("%w: empty scale set", ErrScale)
	}
	for i, a := range scales {
		if a <= 0 {
			return fmt.Errorf("%w: scales[%d]=%f", ErrScale, i, a)
		}
		if i > 0 && a <= scales[i-1] {
			return fmt.Errorf("%w: scales[%d]=%f <= scales[%d]=%f", ErrScale, i, a, i-1, scales[i-1])
		}
		// Pseudo-frequency C/(a*dt) stays below Nyquist 1/(2*dt) iff a >= 2*C.
		if !allowSubNyquist && a < 2*w.CenterFreq {
			return fmt.Errorf("%w: scales[%d]=%f < %f", ErrSubNyquist, i, a, 2*w.CenterFreq)
		}
	}
	return nil
}

// dilatedKernel samples the conjugated wavelet dilated to scale a over its
// effective support. The kernel has odd length 2*half+1 centered on lag 0.
func dilatedKernel(w Morlet, a float64) []complex128 {
	half := int(math.Ceil(w.halfSupport() * a))
	norm := complex(1/math.Sqrt(a), 0)

	kernel := make([]complex128, 2*half+1)
	for k := -half; k <= half; k++ {
		psi := w.At(float64(k) / a)
		kernel[k+half] = norm * complex(real(psi), -imag(psi))
	}
	return kernel
}

// convolver correlates one signal against kernels of varying length,
// reusing FFT plans and the padded signal spectrum across equal FFT sizes.
type convolver struct {
	signal  []float64
	plans   map[int]*algofft.Plan[complex128]
	sigFreq map[int][]complex128
}

func newConvolver(signal []float64) *convolver {
	return &convolver{
		signal:  signal,
		plans:   make(map[int]*algofft.Plan[complex128]),
		sigFreq: make(map[int][]complex128),
	}
}

// correlate returns the same-length correlation of the signal with an
// odd-length kernel centered on lag 0.
func (c *convolver) correlate(kernel []complex128) ([]complex128, error) {
	if len(kernel) < directThreshold {
		return c.correlateDirect(kernel), nil
	}
	return c.correlateFFT(kernel)
}

func (c *convolver) correlateDirect(kernel []complex128) []complex128 {
	n := len(c.signal)
	half := len(kernel) / 2

	out := make([]complex128, n)
	for b := 0; b < n; b++ {
		lo := -half
		if b+lo < 0 {
			lo = -b
		}
		hi := half
		if b+hi > n-1 {
			hi = n - 1 - b
		}

		var acc complex128
		for k := lo; k <= hi; k++ {
			acc += complex(c.signal[b+k], 0) * kernel[k+half]
		}
		out[b] = acc
	}
	return out
}

func (c *convolver) correlateFFT(kernel []complex128) ([]complex128, error) {
	n := len(c.signal)
	m := len(kernel)
	half := m / 2
	fftSize := nextPowerOf2(n + m - 1)

	plan, sigFreq, err := c.planFor(fftSize)
	if err != nil {
		return nil, err
	}

	// Correlation is convolution with the index-reversed kernel.
	kerPadded := make([]complex128, fftSize)
	for j := 0; j < m; j++ {
		kerPadded[j] = kernel[m-1-j]
	}
	kerFreq := make([]complex128, fftSize)
	if err := plan.Forward(kerFreq, kerPadded); err != nil {
		return nil, fmt.Errorf("forward FFT failed: %w", err)
	}

	for i := range kerFreq {
		kerFreq[i] *= sigFreq[i]
	}

	convTime := make([]complex128, fftSize)
	if err := plan.Inverse(convTime, kerFreq); err != nil {
		return nil, fmt.Errorf("inverse FFT failed: %w", err)
	}

	// Full linear convolution index b+m-1-half maps to lag-0 alignment at b.
	out := make([]complex128, n)
	copy(out, convTime[m-1-half:m-1-half+n])
	return out, nil
}

func (c *convolver) planFor(fftSize int) (*algofft.Plan[complex128], []complex128, error) {
	if plan, ok := c.plans[fftSize]; ok {
		return plan, c.sigFreq[fftSize], nil
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create FFT plan: %w", err)
	}

	sigPadded := make([]complex128, fftSize)
	for i, v := range c.signal {
		sigPadded[i] = complex(v, 0)
	}
	sigFreq := make([]complex128, fftSize)
	if err := plan.Forward(sigFreq, sigPadded); err != nil {
		return nil, nil, fmt.Errorf("forward FFT failed: %w", err)
	}

	c.plans[fftSize] = plan
	c.sigFreq[fftSize] = sigFreq
	return plan, sigFreq, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
