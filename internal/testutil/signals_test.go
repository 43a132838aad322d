package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(12000, 48000, 0.5, 8)

	// Quarter of the sample rate: 0, a, 0, -a, ...
	want := []float64{0, 0.5, 0, -0.5, 0, 0.5, 0, -0.5}
	RequireSliceNearlyEqual(t, s, want, 1e-12)
}

func TestMultiToneIsSumOfSines(t *testing.T) {
	x := MultiTone([]float64{1000, 3000}, 48000, 64)
	a := DeterministicSine(1000, 48000, 1, 64)
	b := DeterministicSine(3000, 48000, 1, 64)

	for i := range a {
		a[i] += b[i]
	}

	RequireSliceNearlyEqual(t, x, a, 1e-12)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.25, 256)
	if !slices.Equal(a, DeterministicNoise(42, 0.25, 256)) {
		t.Fatal("same seed produced different noise")
	}

	if slices.Equal(a, DeterministicNoise(43, 0.25, 256)) {
		t.Fatal("different seeds produced identical noise")
	}

	for i, v := range a {
		if v < -0.25 || v >= 0.25 {
			t.Fatalf("a[%d] = %v outside [-0.25, 0.25)", i, v)
		}
	}
}

func TestImpulse(t *testing.T) {
	if got := Impulse(5, 2); !slices.Equal(got, []float64{0, 0, 1, 0, 0}) {
		t.Fatalf("Impulse(5, 2) = %v", got)
	}

	for _, pos := range []int{-1, 5} {
		if got := Impulse(5, pos); !slices.Equal(got, make([]float64, 5)) {
			t.Fatalf("Impulse(5, %d) = %v, want zeros", pos, got)
		}
	}
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v", got)
	}

	// Whole periods of a sine have RMS amplitude/sqrt(2).
	s := DeterministicSine(1000, 48000, 2, 4800)
	if got := RMS(s); math.Abs(got-math.Sqrt2) > 1e-9 {
		t.Fatalf("RMS(sine) = %v, want %v", got, math.Sqrt2)
	}
}
