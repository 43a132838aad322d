package testutil

import (
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails tb at the first element where got and want
// differ by more than eps, or if their lengths differ.
func RequireSliceNearlyEqual(tb testing.TB, got, want []float64, eps float64) {
	tb.Helper()
	requireNear(tb, got, want, eps, func(a, b float64) float64 {
		if a > b {
			return a - b
		}

		return b - a
	})
}

// RequireComplexNearlyEqual is RequireSliceNearlyEqual for complex
// responses, comparing by modulus of the difference.
func RequireComplexNearlyEqual(tb testing.TB, got, want []complex128, eps float64) {
	tb.Helper()
	requireNear(tb, got, want, eps, func(a, b complex128) float64 {
		return cmplx.Abs(a - b)
	})
}

func requireNear[T float64 | complex128](tb testing.TB, got, want []T, eps float64, dist func(a, b T) float64) {
	tb.Helper()

	if len(got) != len(want) {
		tb.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
		return
	}

	for i := range got {
		if got[i] == want[i] {
			continue
		}

		// Negated so that a NaN distance fails.
		if d := dist(got[i], want[i]); !(d <= eps) {
			tb.Fatalf("index %d: got %v, want %v (diff %g > %g)", i, got[i], want[i], d, eps)
			return
		}
	}
}
