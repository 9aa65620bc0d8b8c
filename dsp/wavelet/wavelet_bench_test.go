package wavelet

import (
	"math"
	"testing"
)

func benchSignal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(0.3*float64(i)) + 0.5*math.Sin(0.07*float64(i))
	}
	return out
}

func BenchmarkTransform(b *testing.B) {
	signal := benchSignal(504)
	scales := rangeScales(2, 128)
	w := DefaultMorlet()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Transform(signal, scales, 0.25, w); err != nil {
			b.Fatalf("Transform error: %v", err)
		}
	}
}

func BenchmarkCorrelateDirect(b *testing.B) {
	conv := newConvolver(benchSignal(504))
	kernel := dilatedKernel(DefaultMorlet(), 4)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		conv.correlateDirect(kernel)
	}
}

func BenchmarkCorrelateFFT(b *testing.B) {
	conv := newConvolver(benchSignal(504))
	kernel := dilatedKernel(DefaultMorlet(), 64)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := conv.correlateFFT(kernel); err != nil {
			b.Fatalf("correlateFFT error: %v", err)
		}
	}
}
