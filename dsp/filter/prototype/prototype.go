package prototype

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

// MaxBesselOrder bounds Bessel designs. Root finding on the reverse Bessel
// polynomial loses accuracy quickly above this order.
const MaxBesselOrder = 16

// BesselNorm selects the frequency normalization of the Bessel prototype.
type BesselNorm int

const (
	// BesselPhase places the phase midpoint at 1 rad/s; the high
	// frequency asymptote matches a Butterworth of the same order.
	BesselPhase BesselNorm = iota

	// BesselDelay normalizes the group delay at DC to one second.
	BesselDelay

	// BesselMagnitude places the -3 dB point at 1 rad/s.
	BesselMagnitude
)

func (n BesselNorm) String() string {
	switch n {
	case BesselPhase:
		return "phase"
	case BesselDelay:
		return "delay"
	case BesselMagnitude:
		return "mag"
	default:
		return fmt.Sprintf("BesselNorm(%d)", int(n))
	}
}

// Params carries the family specific shape parameters.
type Params struct {
	RippleDB   float64 // passband ripple, Chebyshev I and elliptic
	StopbandDB float64 // stopband attenuation, Chebyshev II and elliptic
	BesselNorm BesselNorm
}

// Analog returns the normalized analog lowpass prototype of the given
// family and order.
func Analog(family filter.Family, order int, p Params) (ZPK, error) {
	switch family {
	case filter.Butterworth:
		return Butterworth(order)
	case filter.Chebyshev1:
		return Chebyshev1(order, p.RippleDB)
	case filter.Chebyshev2:
		return Chebyshev2(order, p.StopbandDB)
	case filter.Elliptic:
		return Elliptic(order, p.RippleDB, p.StopbandDB)
	case filter.Bessel:
		return Bessel(order, p.BesselNorm)
	default:
		return ZPK{}, fmt.Errorf("%w: %v", filter.ErrUnsupportedFamily, family)
	}
}

func checkOrder(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: prototype order %d", filter.ErrInvalidParameter, n)
	}

	return nil
}

func checkDB(name string, db float64) error {
	if !(db > 0) || math.IsInf(db, 0) {
		return fmt.Errorf("%w: %s %v dB", filter.ErrInvalidParameter, name, db)
	}

	return nil
}

// dbToMinusOne returns 10^(db/10) - 1 without cancellation for small db.
func dbToMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10.0)
}
