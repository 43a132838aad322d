package prototype

import (
	"math"
	"math/cmplx"
)

// Chebyshev1 returns the order-n Chebyshev type I prototype with rippleDB
// of equiripple in the passband [0, 1] rad/s.
func Chebyshev1(n int, rippleDB float64) (ZPK, error) {
	if err := checkOrder(n); err != nil {
		return ZPK{}, err
	}

	if err := checkDB("passband ripple", rippleDB); err != nil {
		return ZPK{}, err
	}

	eps := math.Sqrt(dbToMinusOne(rippleDB))
	mu := math.Asinh(1/eps) / float64(n)

	poles := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		theta := math.Pi * float64(m) / float64(2*n)
		poles = append(poles, -cmplx.Sinh(complex(mu, theta)))
	}

	gain := real(ProdNeg(poles))
	if n%2 == 0 {
		gain /= math.Sqrt(1 + eps*eps)
	}

	return ZPK{Poles: poles, Gain: gain}, nil
}

// Chebyshev2 returns the order-n Chebyshev type II (inverse Chebyshev)
// prototype whose stopband starts at 1 rad/s with at least stopbandDB of
// attenuation.
func Chebyshev2(n int, stopbandDB float64) (ZPK, error) {
	if err := checkOrder(n); err != nil {
		return ZPK{}, err
	}

	if err := checkDB("stopband attenuation", stopbandDB); err != nil {
		return ZPK{}, err
	}

	de := 1.0 / math.Sqrt(dbToMinusOne(stopbandDB))
	mu := math.Asinh(1.0/de) / float64(n)

	// Zeros on the j-axis; the m = 0 term of odd orders sits at infinity.
	zeros := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		if m == 0 {
			continue
		}

		zeros = append(zeros, -cmplx.Conj(complex(0, 1)/complex(math.Sin(float64(m)*math.Pi/float64(2*n)), 0)))
	}

	poles := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		p := -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n)))
		p = complex(math.Sinh(mu)*real(p), math.Cosh(mu)*imag(p))
		poles = append(poles, 1/p)
	}

	gain := real(ProdNeg(poles) / ProdNeg(zeros))

	return ZPK{Zeros: zeros, Poles: poles, Gain: gain}, nil
}
