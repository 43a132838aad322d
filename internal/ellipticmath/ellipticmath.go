// Package ellipticmath implements the Jacobi elliptic functions and
// complete elliptic integrals needed to place elliptic (Cauer) filter
// poles and zeros. Everything is computed through descending Landen
// transformations, which converge quadratically.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

// Tol is the convergence threshold of the Landen sequences.
const Tol = 2.2e-16

// Epsilon is the float64 machine epsilon used to discard vanishing terms.
const Epsilon = 2.220446049250313e-16

const (
	kMin         = 1e-6 // below this K' uses its logarithmic asymptote
	arcSNMaxIter = 10
	nomeTerms    = 7
	arcImagCheck = 1e-7
)

// Landen returns the descending Landen sequence of moduli for k, stopping
// once the modulus drops below Tol.
func Landen(k float64) []float64 {
	if k == 0 || k == 1.0 {
		return []float64{k}
	}

	var v []float64

	for k > Tol {
		t := k / (1.0 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		v = append(v, k)
	}

	return v
}

// landenK computes K(k) from a Landen sequence using
// K(k) = (pi/2) * product(1 + v[i]).
func landenK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1.0 + x
	}

	return prod * math.Pi * 0.5
}

// EllipK returns the complete elliptic integral of the first kind K(k)
// and its complement K'(k) = K(sqrt(1-k^2)).
func EllipK(k float64) (float64, float64) {
	kmax := math.Sqrt(1 - kMin*kMin)

	var K, Kp float64

	switch {
	case k == 1.0:
		K = math.Inf(1)
	case k > kmax:
		kp := math.Sqrt((1 - k) * (1 + k))
		L := -math.Log(kp / 4.0)
		K = L + (L-1)*kp*kp/4.0
	default:
		K = landenK(Landen(k))
	}

	switch {
	case k == 0.0:
		Kp = math.Inf(1)
	case k < kMin:
		L := -math.Log(k / 4.0)
		Kp = L + (L-1.0)*k*k/4.0
	default:
		kp := math.Sqrt((1 - k) * (1 + k))
		Kp = landenK(Landen(kp))
	}

	return K, Kp
}

// CD returns the Jacobi cd function at u measured in quarter periods, so
// u = 1 corresponds to the argument K(k).
func CD(u complex128, k float64) complex128 {
	v := Landen(k)

	w := cmplx.Cos(u * math.Pi * 0.5)
	for i := len(v) - 1; i >= 0; i-- {
		w = (1 + complex(v[i], 0)) * w / (1.0 + complex(v[i], 0)*w*w)
	}

	return w
}

// SN returns the Jacobi sn function at u measured in quarter periods.
func SN(u, k float64) float64 {
	v := Landen(k)

	w := math.Sin(u * math.Pi * 0.5)
	for i := len(v) - 1; i >= 0; i-- {
		w = ((1 + v[i]) * w) / (1 + v[i]*w*w)
	}

	return w
}

// JacobiSCD returns sn, cn and dn at the absolute argument u for modulus
// k in [0, 1). ok is false when the evaluation breaks down numerically.
func JacobiSCD(u, k float64) (sn, cn, dn float64, ok bool) {
	if !(k >= 0 && k < 1) {
		return 0, 0, 0, false
	}

	K, _ := EllipK(k)
	if K == 0 || math.IsNaN(K) || math.IsInf(K, 0) {
		return 0, 0, 0, false
	}

	uNorm := u / K

	sn = SN(uNorm, k)
	if math.IsNaN(sn) || math.IsInf(sn, 0) {
		return 0, 0, 0, false
	}

	dn2 := 1.0 - k*k*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}

	dn = math.Sqrt(math.Max(dn2, 0))
	cn = real(CD(complex(uNorm, 0), k)) * dn

	return sn, cn, dn, true
}

// ArcSC1 returns the real u with sc(u, sqrt(1-m)) = w, computed through
// the imaginary-argument identity sn(iu, k) = i sc(u, k'). It returns NaN
// if the inversion does not land on the imaginary axis.
func ArcSC1(w, m float64) float64 {
	z := arcSN(complex(0, w), m)
	if math.Abs(real(z)) > arcImagCheck*math.Max(1.0, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1.0 - k) * (1.0 + k))
}

// arcSN inverts sn for complex w and parameter m = k^2.
func arcSN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return complex(math.NaN(), math.NaN())
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcSNMaxIter - 1 {
		kn := ks[len(ks)-1]
		if kn == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1.0-kp)/(1.0+kp))
	}

	K := 1.0
	for i := 1; i < len(ks); i++ {
		K *= real(1.0 + ks[i])
	}

	K *= math.Pi * 0.5

	wn := w

	for i := range len(ks) - 1 {
		den := (1.0 + ks[i+1]) * (1.0 + complement(ks[i]*wn))
		if den == 0 {
			return complex(math.NaN(), math.NaN())
		}

		wn = 2.0 * wn / den
	}

	return complex(K, 0) * (2.0 / math.Pi) * cmplx.Asin(wn)
}

// DegreeParam solves the degree equation of an order-n elliptic filter:
// given the selectivity parameter m1 = k1^2 it returns m = k^2 from the
// nome series q = q1^(1/n).
func DegreeParam(n int, m1 float64) float64 {
	if n <= 0 || !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	K1, _ := EllipK(math.Sqrt(m1))
	K1p, _ := EllipK(math.Sqrt(1.0 - m1))

	if K1 <= 0 || K1p <= 0 || math.IsNaN(K1) || math.IsNaN(K1p) || math.IsInf(K1, 0) || math.IsInf(K1p, 0) {
		return math.NaN()
	}

	q1 := math.Exp(-math.Pi * K1p / K1)
	q := math.Pow(q1, 1.0/float64(n))

	num := 0.0
	for i := range nomeTerms {
		num += math.Pow(q, float64(i*(i+1)))
	}

	den := 1.0
	for i := 1; i < nomeTerms; i++ {
		den += 2.0 * math.Pow(q, float64(i*i))
	}

	return 16.0 * q * math.Pow(num/den, 4.0)
}
