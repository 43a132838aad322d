// Package polyroot provides polynomial root finding and conjugate-pair
// bookkeeping shared by the analog prototype and section grouping code.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// RealTol is the absolute imaginary part below which a root is treated
// as real.
const RealTol = 1e-9

const (
	maxIter     = 500
	convergeTol = 1e-12
	residualTol = 1e-6
)

// DurandKerner returns all roots of the polynomial
// coeff[0] z^n + coeff[1] z^(n-1) + ... + coeff[n] by Weierstrass
// simultaneous iteration. It fails with ErrDegeneratePolynomial for a
// zero leading coefficient or when the iteration neither converges nor
// reaches a small residual.
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 || coeff[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	monic := make([]complex128, len(coeff))
	for i, c := range coeff {
		monic[i] = c / coeff[0]
	}

	roots, ok := initialGuess(monic)
	if !ok {
		// Only the leading term is nonzero: every root is at the origin.
		return roots, nil
	}

	for range maxIter {
		if weierstrassStep(monic, roots) < convergeTol {
			return roots, nil
		}
	}

	for _, r := range roots {
		if cmplx.Abs(PolyEval(monic, r)) >= residualTol {
			return nil, ErrDegeneratePolynomial
		}
	}

	return roots, nil
}

// initialGuess spreads the starting points over a slightly perturbed
// circle of the Fujiwara radius 2 max |c_i|^(1/i), which bounds every
// root. It reports false when that radius is zero.
func initialGuess(monic []complex128) ([]complex128, bool) {
	n := len(monic) - 1

	var radius float64
	for i := 1; i <= n; i++ {
		radius = math.Max(radius, math.Pow(cmplx.Abs(monic[i]), 1/float64(i)))
	}

	roots := make([]complex128, n)
	if radius == 0 {
		return roots, false
	}

	for i := range roots {
		frac := float64(i) / float64(n)
		roots[i] = cmplx.Rect(radius*(1+0.1*frac), 2*math.Pi*frac+0.3)
	}

	return roots, true
}

// weierstrassStep updates roots in place and returns the largest relative
// correction.
func weierstrassStep(monic, roots []complex128) float64 {
	var worst float64

	for i := range roots {
		den := complex(1, 0)
		for j := range roots {
			if j != i {
				den *= roots[i] - roots[j]
			}
		}

		if den == 0 {
			// Coincident estimates; nudge apart and retry next sweep.
			roots[i] += complex(1e-10, 1e-10)
			worst = math.Inf(1)

			continue
		}

		delta := PolyEval(monic, roots[i]) / den
		roots[i] -= delta
		worst = math.Max(worst, cmplx.Abs(delta)/math.Max(1, cmplx.Abs(roots[i])))
	}

	return worst
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// Split separates roots of a real polynomial into conjugate pairs and real
// roots. Each pair is returned as its upper half-plane member with the
// imaginary part made exactly symmetric; real roots have their residual
// imaginary part dropped. Pairs are ordered by descending imaginary part
// and reals ascending, so the result does not depend on the input order.
func Split(roots []complex128) (pairs []complex128, reals []float64, err error) {
	used := make([]bool, len(roots))

	for i, r := range roots {
		if used[i] {
			continue
		}

		if math.Abs(imag(r)) <= RealTol*math.Max(1, cmplx.Abs(r)) {
			used[i] = true
			reals = append(reals, real(r))

			continue
		}

		target := cmplx.Conj(r)
		best := -1
		bestDist := math.MaxFloat64

		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}

			if d := cmplx.Abs(roots[j] - target); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(r, roots[best], ConjugateTol) {
			return nil, nil, ErrDegeneratePolynomial
		}

		used[i] = true
		used[best] = true

		mate := roots[best]
		pairs = append(pairs, complex((real(r)+real(mate))/2, math.Abs(imag(r)-imag(mate))/2))
	}

	sort.Slice(pairs, func(i, j int) bool { return imag(pairs[i]) > imag(pairs[j]) })
	sort.Float64s(reals)

	return pairs, reals, nil
}

// Join is the inverse of Split: it returns every pair as p, conj(p)
// followed by the real roots.
func Join(pairs []complex128, reals []float64) []complex128 {
	out := make([]complex128, 0, 2*len(pairs)+len(reals))
	for _, p := range pairs {
		out = append(out, p, cmplx.Conj(p))
	}

	for _, r := range reals {
		out = append(out, complex(r, 0))
	}

	return out
}
