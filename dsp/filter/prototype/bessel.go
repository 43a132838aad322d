package prototype

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/internal/polyroot"
)

const (
	magSearchLow  = 1e-3
	magSearchHigh = 1e3
	magSearchIter = 200
)

// Bessel returns the order-n Bessel (Thomson) prototype, the maximally
// flat group delay all-pole filter. Its poles are the roots of the
// reverse Bessel polynomial
//
//	theta_n(s) = sum_k (2n-k)! / (2^(n-k) k! (n-k)!) s^k
//
// scaled according to norm. The gain gives unity response at DC.
func Bessel(n int, norm BesselNorm) (ZPK, error) {
	if err := checkOrder(n); err != nil {
		return ZPK{}, err
	}

	if n > MaxBesselOrder {
		return ZPK{}, fmt.Errorf("%w: bessel order %d exceeds %d",
			filter.ErrInvalidParameter, n, MaxBesselOrder)
	}

	if norm < BesselPhase || norm > BesselMagnitude {
		return ZPK{}, fmt.Errorf("%w: bessel normalization %v", filter.ErrInvalidParameter, norm)
	}

	// Roots are found in the variable u = s / a0^(1/n), which makes the
	// polynomial monic with unit constant term. Those roots are already
	// the phase normalized poles.
	logA0 := besselLogCoeff(n, 0)
	scale := math.Exp(logA0 / float64(n))

	coeff := make([]complex128, n+1)
	for k := 0; k <= n; k++ {
		c := math.Exp(besselLogCoeff(n, k) - logA0 + float64(k)*math.Log(scale))
		coeff[n-k] = complex(c, 0)
	}

	roots, err := polyroot.DurandKerner(coeff)
	if err != nil {
		return ZPK{}, fmt.Errorf("%w: bessel order %d: %w", filter.ErrInvalidParameter, n, err)
	}

	pairs, reals, err := polyroot.Split(roots)
	if err != nil {
		return ZPK{}, fmt.Errorf("%w: bessel order %d: %w", filter.ErrInvalidParameter, n, err)
	}

	poles := polyroot.Join(pairs, reals)

	switch norm {
	case BesselDelay:
		scalePoles(poles, scale)
	case BesselMagnitude:
		scalePoles(poles, 1/magnitudeCutoff(poles))
	}

	return ZPK{Poles: poles, Gain: real(ProdNeg(poles))}, nil
}

// besselLogCoeff returns ln of the s^k coefficient of theta_n.
func besselLogCoeff(n, k int) float64 {
	lg := func(x int) float64 {
		v, _ := math.Lgamma(float64(x + 1))
		return v
	}

	return lg(2*n-k) - float64(n-k)*math.Ln2 - lg(k) - lg(n-k)
}

// magnitudeCutoff finds the angular frequency where the all-pole, unity DC
// gain response through poles falls to -3 dB. The response is monotonic so
// a bisection on log frequency suffices.
func magnitudeCutoff(poles []complex128) float64 {
	k := ProdNeg(poles)
	mag2 := func(w float64) float64 {
		h := k
		for _, p := range poles {
			h /= complex(0, w) - p
		}

		a := cmplx.Abs(h)

		return a * a
	}

	lo, hi := math.Log(magSearchLow), math.Log(magSearchHigh)
	for range magSearchIter {
		mid := 0.5 * (lo + hi)
		if mag2(math.Exp(mid)) > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return math.Exp(0.5 * (lo + hi))
}

func scalePoles(poles []complex128, s float64) {
	for i := range poles {
		poles[i] *= complex(s, 0)
	}
}
