package biquad

import (
	"math"
	"math/cmplx"
)

// PoleZeroPair holds the two poles and two zeros of one section, larger
// magnitude first. A first-order section has its second pole and zero at
// the origin.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the roots of z^2 + A1 z + A2.
func (c Coefficients) Poles() [2]complex128 {
	return sectionRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0 z^2 + B1 z + B2.
func (c Coefficients) Zeros() [2]complex128 {
	return sectionRoots(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns the section's poles and zeros.
func (c Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{Poles: c.Poles(), Zeros: c.Zeros()}
}

// MaxPoleRadius returns the largest pole magnitude of the section.
func (c Coefficients) MaxPoleRadius() float64 {
	return cmplx.Abs(c.Poles()[0])
}

// PoleZeroPairs returns the pole/zero pair of every section.
func PoleZeroPairs(coeffs []Coefficients) []PoleZeroPair {
	out := make([]PoleZeroPair, len(coeffs))
	for i, s := range coeffs {
		out[i] = s.PoleZeroPair()
	}

	return out
}

// PoleZeroPairs returns the pole/zero pair of every cascade section.
func (c *Cascade) PoleZeroPairs() []PoleZeroPair {
	return PoleZeroPairs(c.sections)
}

// sectionRoots solves a z^2 + b z + c = 0 for real coefficients. Complex
// roots come out as a conjugate pair with the positive imaginary part
// first; real roots are ordered by decreasing magnitude. A vanishing
// leading coefficient leaves a root at the origin.
func sectionRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}

		return [2]complex128{complex(-c/b, 0), 0}
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		re, im := -b/(2*a), math.Sqrt(-disc)/(2*math.Abs(a))
		return [2]complex128{complex(re, im), complex(re, -im)}
	}

	// q = -(b + sign(b) sqrt(disc))/2 avoids cancellation in the small
	// root, which is then c/q.
	q := -(b + math.Copysign(math.Sqrt(disc), b)) / 2
	if q == 0 {
		return [2]complex128{}
	}

	r1, r2 := q/a, c/q
	if math.Abs(r2) > math.Abs(r1) {
		r1, r2 = r2, r1
	}

	return [2]complex128{complex(r1, 0), complex(r2, 0)}
}
