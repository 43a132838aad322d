package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func almostEqual(valA, valB, tol float64) bool {
	return math.Abs(valA-valB) <= tol
}

func TestDurandKerner_Quadratic(t *testing.T) {
	// z^2 - 3z + 2 = (z-1)(z-2)
	roots, err := DurandKerner([]complex128{1, -3, 2})
	if err != nil {
		t.Fatal(err)
	}

	pairs, reals, err := Split(roots)
	if err != nil {
		t.Fatal(err)
	}

	if len(pairs) != 0 || len(reals) != 2 {
		t.Fatalf("expected two real roots, got pairs=%v reals=%v", pairs, reals)
	}

	if !almostEqual(reals[0], 1, 1e-10) || !almostEqual(reals[1], 2, 1e-10) {
		t.Errorf("expected roots {1,2}, got %v", reals)
	}
}

func TestDurandKerner_Residuals(t *testing.T) {
	tests := []struct {
		name  string
		coeff []complex128
	}{
		{"quartic reals", []complex128{1, 0, -5, 0, 4}},
		{"z^4+1", []complex128{1, 0, 0, 0, 1}},
		{"z^4-1", []complex128{1, 0, 0, 0, -1}},
		{"butterworth 3", []complex128{1, 2, 2, 1}},
		{"clustered", []complex128{1, -3.4, 4.33, -2.448, 0.5184}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := DurandKerner(tt.coeff)
			if err != nil {
				t.Fatal(err)
			}

			if len(roots) != len(tt.coeff)-1 {
				t.Fatalf("got %d roots, want %d", len(roots), len(tt.coeff)-1)
			}

			for i, r := range roots {
				if v := cmplx.Abs(PolyEval(tt.coeff, r)); v > 1e-6 {
					t.Errorf("root %d: p(%v) = %v", i, r, v)
				}
			}
		})
	}
}

func TestDurandKerner_Degenerate(t *testing.T) {
	if _, err := DurandKerner([]complex128{1}); !errors.Is(err, ErrDegeneratePolynomial) {
		t.Fatalf("expected ErrDegeneratePolynomial, got %v", err)
	}

	if _, err := DurandKerner([]complex128{0, 1, 1}); !errors.Is(err, ErrDegeneratePolynomial) {
		t.Fatalf("expected ErrDegeneratePolynomial, got %v", err)
	}

	roots, err := DurandKerner([]complex128{2, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range roots {
		if r != 0 {
			t.Fatalf("z^2 roots should be zero, got %v", roots)
		}
	}
}

func TestPolyEval(t *testing.T) {
	// p(z) = 2z^3 - 3z + 5, p(2) = 16 - 6 + 5 = 15
	val := PolyEval([]complex128{2, 0, -3, 5}, 2)
	if !almostEqual(real(val), 15, 1e-12) || !almostEqual(imag(val), 0, 1e-12) {
		t.Errorf("PolyEval: expected 15, got %v", val)
	}
}

func TestSplit_PairsAndReals(t *testing.T) {
	roots := []complex128{
		complex(-0.2, -0.7),
		complex(0.8, 1e-15),
		complex(0.5, 0.3),
		complex(-0.2, 0.7),
		complex(0.5, -0.3),
		complex(-0.4, 0),
	}

	pairs, reals, err := Split(roots)
	if err != nil {
		t.Fatal(err)
	}

	if len(pairs) != 2 || len(reals) != 2 {
		t.Fatalf("got pairs=%v reals=%v", pairs, reals)
	}

	if pairs[0] != complex(-0.2, 0.7) || pairs[1] != complex(0.5, 0.3) {
		t.Errorf("pairs not ordered by imaginary part: %v", pairs)
	}

	if reals[0] != -0.4 || reals[1] != 0.8 {
		t.Errorf("reals not sorted: %v", reals)
	}

	joined := Join(pairs, reals)
	if len(joined) != len(roots) {
		t.Fatalf("Join returned %d roots, want %d", len(joined), len(roots))
	}

	if joined[1] != cmplx.Conj(joined[0]) {
		t.Errorf("Join did not emit conjugates: %v", joined[:2])
	}
}

func TestSplit_SymmetrizesPair(t *testing.T) {
	pairs, _, err := Split([]complex128{complex(1, 2+1e-9), complex(1+2e-9, -2)})
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(real(pairs[0]), 1+1e-9, 1e-15) || !almostEqual(imag(pairs[0]), 2+0.5e-9, 1e-15) {
		t.Errorf("unexpected symmetrized pair %v", pairs[0])
	}
}

func TestSplit_UnpairedReturnsError(t *testing.T) {
	roots := []complex128{
		complex(0.5, 0.3),
		complex(0.5, -0.3),
		complex(0.1, 0.9),
		complex(0.9, 0.1),
	}

	if _, _, err := Split(roots); !errors.Is(err, ErrDegeneratePolynomial) {
		t.Errorf("expected ErrDegeneratePolynomial, got %v", err)
	}
}

func TestIsConjugate(t *testing.T) {
	tests := []struct {
		name string
		a, b complex128
		want bool
	}{
		{"exact conjugates", complex(1, 2), complex(1, -2), true},
		{"near conjugates", complex(1, 2), complex(1.0+1e-9, -2.0+1e-9), true},
		{"not conjugates", complex(1, 2), complex(2, -2), false},
		{"real values", complex(5, 0), complex(5, 0), true},
		{"zero", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsConjugate(tt.a, tt.b, ConjugateTol)
			if got != tt.want {
				t.Errorf("IsConjugate(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
