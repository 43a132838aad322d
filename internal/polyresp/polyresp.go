// Package polyresp evaluates real polynomials in z^-1 on the unit circle.
// The FIR and biquad response code share it.
package polyresp

import (
	"math"
	"math/cmplx"
)

// SingularTol is the magnitude below which a polynomial is treated as
// vanishing when computing its group delay.
const SingularTol = 10 * 2.220446049250313e-16

// Eval returns sum_n c[n] e^{-j w n} for the normalized angular
// frequency w in rad/sample.
func Eval(c []float64, w float64) complex128 {
	z := cmplx.Exp(complex(0, -w))

	// Horner in z^-1, highest power first.
	acc := complex(0, 0)
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc*z + complex(c[i], 0)
	}

	return acc
}

// GroupDelay returns the group delay in samples of the polynomial c at
// w, computed in closed form as
//
//	Re( sum_n n c[n] e^{-j w n} / sum_n c[n] e^{-j w n} )
//
// Where the polynomial vanishes the delay is undefined and 0 is returned.
func GroupDelay(c []float64, w float64) float64 {
	z := cmplx.Exp(complex(0, -w))

	num := complex(0, 0)
	den := complex(0, 0)

	for i := len(c) - 1; i >= 0; i-- {
		num = num*z + complex(float64(i)*c[i], 0)
		den = den*z + complex(c[i], 0)
	}

	if cmplx.Abs(den) < SingularTol*math.Max(1, maxAbs(c)) {
		return 0
	}

	return real(num / den)
}

func maxAbs(c []float64) float64 {
	m := 0.0
	for _, v := range c {
		m = math.Max(m, math.Abs(v))
	}

	return m
}
