// Package spectrum converts complex spectrum bins into real-valued
// magnitude and power arrays.
//
// The package does not implement any transform itself. It operates on
// complex bins produced by FFT or wavelet backends and keeps the conversion
// in one place so both analyzers share the same SIMD-accelerated path.
package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// unpack splits complex bins into pooled real/imaginary scratch slices.
func unpack(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Uses SIMD-optimized implementations when available (AVX2, SSE2, NEON).
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	MagnitudeTo(out, in)
	return out
}

// MagnitudeTo computes |X[k]| into a pre-allocated destination.
// dst must have length len(in).
func MagnitudeTo(dst []float64, in []complex128) {
	re, im, buf := unpack(in)
	vecmath.Magnitude(dst, re, im)
	putScratch(buf)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// Uses SIMD-optimized implementations when available. Scratch buffers are
// pooled internally, so in steady state this allocates only the output slice.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	PowerTo(out, in)
	return out
}

// PowerTo computes |X[k]|^2 into a pre-allocated destination.
// dst must have length len(in).
func PowerTo(dst []float64, in []complex128) {
	re, im, buf := unpack(in)
	vecmath.Power(dst, re, im)
	putScratch(buf)
}

// PositiveHalf returns the positive-frequency half of a full complex
// spectrum, for real-valued input signals whose negative-frequency bins
// mirror the positive ones.
//
// The result has length len(in)/2 (integer division) and shares no storage
// with the input. An input shorter than 2 bins returns nil.
func PositiveHalf(in []complex128) []complex128 {
	half := len(in) / 2
	if half == 0 {
		return nil
	}

	out := make([]complex128, half)
	copy(out, in[:half])
	return out
}
