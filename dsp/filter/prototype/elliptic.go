package prototype

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/internal/ellipticmath"
)

// Elliptic returns the order-n elliptic (Cauer) prototype with rippleDB of
// passband ripple up to 1 rad/s and at least stopbandDB of attenuation in
// the stopband. Poles and zeros are placed with Jacobi elliptic functions
// of the modulus solved from the degree equation.
//
//nolint:funlen,cyclop
func Elliptic(n int, rippleDB, stopbandDB float64) (ZPK, error) {
	if err := checkOrder(n); err != nil {
		return ZPK{}, err
	}

	if err := checkDB("passband ripple", rippleDB); err != nil {
		return ZPK{}, err
	}

	if err := checkDB("stopband attenuation", stopbandDB); err != nil {
		return ZPK{}, err
	}

	if stopbandDB <= rippleDB {
		return ZPK{}, fmt.Errorf("%w: stopband %v dB must exceed ripple %v dB",
			filter.ErrInvalidParameter, stopbandDB, rippleDB)
	}

	epsSq := dbToMinusOne(rippleDB)
	ck1Sq := epsSq / dbToMinusOne(stopbandDB)

	if n == 1 {
		p := -math.Sqrt(1.0 / epsSq)
		return ZPK{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	fail := func(stage string) (ZPK, error) {
		return ZPK{}, fmt.Errorf("%w: elliptic order %d: %s did not converge",
			filter.ErrInvalidParameter, n, stage)
	}

	m := ellipticmath.DegreeParam(n, ck1Sq)
	if !(m > 0 && m < 1) {
		return fail("degree equation")
	}

	kmod := math.Sqrt(m)
	capK, _ := ellipticmath.EllipK(kmod)
	val0, _ := ellipticmath.EllipK(math.Sqrt(ck1Sq))

	if !finitePositive(capK) || !finitePositive(val0) {
		return fail("complete integral")
	}

	half := (n + 1) / 2
	sv := make([]float64, 0, half)
	cv := make([]float64, 0, half)
	dv := make([]float64, 0, half)
	zerosUpper := make([]complex128, 0, half)

	for j := 1 - n%2; j < n; j += 2 {
		sn, cn, dn, ok := ellipticmath.JacobiSCD(float64(j)*capK/float64(n), kmod)
		if !ok {
			return fail("jacobi functions")
		}

		sv = append(sv, sn)
		cv = append(cv, cn)
		dv = append(dv, dn)

		if math.Abs(sn) > ellipticmath.Epsilon {
			zerosUpper = append(zerosUpper, complex(0, 1)/complex(kmod*sn, 0))
		}
	}

	r := ellipticmath.ArcSC1(1.0/math.Sqrt(epsSq), ck1Sq)
	if !finitePositive(r) {
		return fail("inverse sc")
	}

	v0 := capK * r / (float64(n) * val0)

	s0, c0, d0, ok := ellipticmath.JacobiSCD(v0, math.Sqrt(1.0-m))
	if !ok {
		return fail("jacobi functions")
	}

	base := make([]complex128, len(sv))

	for i := range sv {
		den := 1.0 - (dv[i]*s0)*(dv[i]*s0)
		if math.Abs(den) <= ellipticmath.Epsilon {
			return fail("pole placement")
		}

		base[i] = -complex(cv[i]*dv[i]*s0*c0, sv[i]*d0) / complex(den, 0)
	}

	poles := append(make([]complex128, 0, n), base...)

	if n%2 == 1 {
		norm2 := 0.0
		for _, p := range base {
			norm2 += real(p * cmplx.Conj(p))
		}

		thr := ellipticmath.Epsilon * math.Sqrt(norm2)

		for _, p := range base {
			if math.Abs(imag(p)) > thr {
				poles = append(poles, cmplx.Conj(p))
			}
		}
	} else {
		for _, p := range base {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	zeros := make([]complex128, 0, 2*len(zerosUpper))
	for _, z := range zerosUpper {
		zeros = append(zeros, z, cmplx.Conj(z))
	}

	gain := real(ProdNeg(poles) / ProdNeg(zeros))
	if n%2 == 0 {
		gain /= math.Sqrt(1.0 + epsSq)
	}

	if gain == 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fail("gain")
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: gain}, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
