package prototype

import (
	"math"
	"math/cmplx"
)

// Butterworth returns the order-n Butterworth prototype: n poles evenly
// spaced on the left half of the unit circle and no finite zeros.
func Butterworth(n int) (ZPK, error) {
	if err := checkOrder(n); err != nil {
		return ZPK{}, err
	}

	poles := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		poles = append(poles, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n))))
	}

	return ZPK{Poles: poles, Gain: 1}, nil
}
