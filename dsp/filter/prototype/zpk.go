package prototype

import "math/cmplx"

// ZPK is a transfer function in factored form:
//
//	H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[j])
//
// Complex roots always appear with their conjugates.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Order returns the number of poles.
func (z ZPK) Order() int { return len(z.Poles) }

// Eval evaluates H at the complex frequency s.
func (z ZPK) Eval(s complex128) complex128 {
	h := complex(z.Gain, 0)
	for _, q := range z.Zeros {
		h *= s - q
	}

	for _, p := range z.Poles {
		h /= s - p
	}

	return h
}

// MagnitudeAt returns |H(j w)| for the angular frequency w in rad/s.
func (z ZPK) MagnitudeAt(w float64) float64 {
	return cmplx.Abs(z.Eval(complex(0, w)))
}

// Clone returns a deep copy.
func (z ZPK) Clone() ZPK {
	return ZPK{
		Zeros: append([]complex128(nil), z.Zeros...),
		Poles: append([]complex128(nil), z.Poles...),
		Gain:  z.Gain,
	}
}

// ProdNeg returns the product of -v[i], the constant term of the monic
// polynomial with roots v. It is 1 for no roots.
func ProdNeg(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= -x
	}

	return out
}
