package biquad

import (
	"fmt"
	"testing"
)

// benchSections approximates an eighth-order lowpass.
var benchSections = []Coefficients{
	{B0: 1e-4, B1: 2e-4, B2: 1e-4, A1: -1.62, A2: 0.67},
	{B0: 1, B1: 2, B2: 1, A1: -1.68, A2: 0.74},
	{B0: 1, B1: 2, B2: 1, A1: -1.78, A2: 0.85},
	{B0: 1, B1: 2, B2: 1, A1: -1.88, A2: 0.96},
}

func BenchmarkSection_ProcessBlock(b *testing.B) {
	for _, size := range []int{256, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			s := NewSection(benchSections[0])
			buf := make([]float64, size)

			b.SetBytes(int64(size * 8))

			for b.Loop() {
				s.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkApply(b *testing.B) {
	c, err := NewCascade(benchSections, 48000)
	if err != nil {
		b.Fatal(err)
	}

	buf := make([]float64, 1024)
	for i := range buf {
		buf[i] = float64(i%17) * 0.01
	}

	b.Run("stateless", func(b *testing.B) {
		b.SetBytes(int64(len(buf) * 8))

		for b.Loop() {
			if _, err := Apply(c, buf, nil); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("streaming", func(b *testing.B) {
		st := NewState(c)

		b.SetBytes(int64(len(buf) * 8))

		for b.Loop() {
			if _, err := Apply(c, buf, st); err != nil {
				b.Fatal(err)
			}
		}
	})
}
