// Package wavelet computes continuous wavelet transforms of evenly sampled
// real signals using a complex Morlet mother wavelet.
//
// Each scale row is the correlation of the signal against a dilated copy of
// the conjugated wavelet. Short kernels use direct correlation; long kernels
// switch to FFT-based convolution, with plans shared across scales of equal
// padded size.
package wavelet

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Morlet is a complex sinusoid modulated by a Gaussian envelope:
//
//	psi(t) = (pi*B)^(-1/2) * exp(i*2*pi*C*t) * exp(-t^2 / B)
//
// where B is the bandwidth parameter and C the center frequency.
type Morlet struct {
	Bandwidth  float64
	CenterFreq float64
}

// DefaultMorlet returns the cmor1.5-1.0 wavelet commonly used for
// geophysical scaleograms.
func DefaultMorlet() Morlet {
	return Morlet{Bandwidth: 1.5, CenterFreq: 1.0}
}

// At evaluates the mother wavelet at time t (in dilated units).
func (w Morlet) At(t float64) complex128 {
	norm := 1 / math.Sqrt(math.Pi*w.Bandwidth)
	envelope := math.Exp(-t * t / w.Bandwidth)
	return complex(norm*envelope, 0) * cmplx.Exp(complex(0, 2*math.Pi*w.CenterFreq*t))
}

// PseudoFrequency returns the approximate frequency analyzed by the given
// scale (in samples) at sampling interval dt.
func (w Morlet) PseudoFrequency(scale, dt float64) float64 {
	return w.CenterFreq / (scale * dt)
}

// Period returns the reciprocal of [Morlet.PseudoFrequency].
func (w Morlet) Period(scale, dt float64) float64 {
	return scale * dt / w.CenterFreq
}

// halfSupport returns the one-sided kernel extent, in dilated units, beyond
// which the Gaussian envelope is negligible (< ~1e-11 of its peak).
func (w Morlet) halfSupport() float64 {
	return 5 * math.Sqrt(w.Bandwidth)
}

func (w Morlet) validate() error {
	if w.Bandwidth <= 0 {
		return fmt.Errorf("%w: bandwidth %f", ErrWavelet, w.Bandwidth)
	}
	if w.CenterFreq <= 0 {
		return fmt.Errorf("%w: center frequency %f", ErrWavelet, w.CenterFreq)
	}
	return nil
}
