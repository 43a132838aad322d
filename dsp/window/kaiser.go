package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

// Kaiser's empirical design constants.
const (
	kaiserHighAttenuation = 50.0   // dB, upper breakpoint of the beta formula
	kaiserLowAttenuation  = 21.0   // dB, below this beta is zero
	kaiserHighSlope       = 0.1102 // beta slope above 50 dB
	kaiserHighOffset      = 8.7
	kaiserMidCoeff        = 0.5842
	kaiserMidExponent     = 0.4
	kaiserMidLinear       = 0.07886
	kaiserOrderOffset     = 8.0
	kaiserOrderSlope      = 2.285
)

// besselSeriesEpsilon stops the I0 power series once a term no longer
// changes the sum.
const besselSeriesEpsilon = 1e-17

// KaiserBeta returns the Kaiser shape parameter that reaches the given
// stopband attenuation in dB.
func KaiserBeta(attenuationDB float64) (float64, error) {
	if math.IsNaN(attenuationDB) || math.IsInf(attenuationDB, 0) || attenuationDB < 0 {
		return 0, fmt.Errorf("%w: attenuation %v dB", filter.ErrInvalidParameter, attenuationDB)
	}

	switch {
	case attenuationDB > kaiserHighAttenuation:
		return kaiserHighSlope * (attenuationDB - kaiserHighOffset), nil
	case attenuationDB >= kaiserLowAttenuation:
		d := attenuationDB - kaiserLowAttenuation
		return kaiserMidCoeff*math.Pow(d, kaiserMidExponent) + kaiserMidLinear*d, nil
	default:
		return 0, nil
	}
}

// KaiserOrder estimates the FIR length M for the given attenuation (dB)
// and transition width (radians per sample). When odd is set the result
// is rounded up to the next odd length.
func KaiserOrder(attenuationDB, transitionRad float64, odd bool) (int, error) {
	if math.IsNaN(attenuationDB) || math.IsInf(attenuationDB, 0) || attenuationDB < 0 {
		return 0, fmt.Errorf("%w: attenuation %v dB", filter.ErrInvalidParameter, attenuationDB)
	}

	if !(transitionRad > 0) || math.IsInf(transitionRad, 0) {
		return 0, fmt.Errorf("%w: transition width %v rad", filter.ErrInvalidParameter, transitionRad)
	}

	m := int(math.Ceil((attenuationDB-kaiserOrderOffset)/(kaiserOrderSlope*transitionRad))) + 1
	if m < 1 {
		m = 1
	}

	if odd && m%2 == 0 {
		m++
	}

	return m, nil
}

// BesselI0 returns the zeroth-order modified Bessel function of the
// first kind, summed from its power series
//
//	I0(x) = sum_k ((x/2)^k / k!)^2
//
// which keeps full double precision over the range used by Kaiser windows.
func BesselI0(x float64) float64 {
	half := x / 2
	sum := 1.0
	term := 1.0

	for k := 1; k < 500; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term

		if term < besselSeriesEpsilon*sum {
			break
		}
	}

	return sum
}
