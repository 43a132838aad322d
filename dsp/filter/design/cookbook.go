package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
)

// Peaking designs an RBJ cookbook peaking-EQ biquad with gainDB of boost
// or cut at f0:
//
//	b = (1 + alpha*A, -2cos w0, 1 - alpha*A)
//	a = (1 + alpha/A, -2cos w0, 1 - alpha/A)
func Peaking(f0, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := cookbookW0(f0, q, gainDB, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// LowShelf designs an RBJ low-shelf biquad with gainDB below f0 and the
// shelf steepness set by q.
func LowShelf(f0, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := cookbookW0(f0, q, gainDB, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return lowShelf(w0, math.Sin(w0)/(2*q), gainDB)
}

// HighShelf designs an RBJ high-shelf biquad with gainDB above f0.
func HighShelf(f0, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := cookbookW0(f0, q, gainDB, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return highShelf(w0, math.Sin(w0)/(2*q), gainDB)
}

// LowShelfSlope is LowShelf parameterized by the shelf slope S instead of
// Q, with S = 1 the steepest slope that stays monotonic:
//
//	alpha = sin(w0)/2 * sqrt((A + 1/A)*(1/S - 1) + 2)
func LowShelfSlope(f0, gainDB, slope, sampleRate float64) (biquad.Coefficients, error) {
	w0, alpha, err := slopeAlpha(f0, gainDB, slope, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return lowShelf(w0, alpha, gainDB)
}

// HighShelfSlope is the slope form of HighShelf.
func HighShelfSlope(f0, gainDB, slope, sampleRate float64) (biquad.Coefficients, error) {
	w0, alpha, err := slopeAlpha(f0, gainDB, slope, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return highShelf(w0, alpha, gainDB)
}

// Notch designs an RBJ notch biquad with unit gain away from f0 and a
// transmission zero at f0:
//
//	b = (1, -2cos w0, 1)
//	a = (1 + alpha, -2cos w0, 1 - alpha)
func Notch(f0, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := cookbookW0(f0, q, 0, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha)
}

func lowShelf(w0, alpha, gainDB float64) (biquad.Coefficients, error) {
	cw := math.Cos(w0)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func highShelf(w0, alpha, gainDB float64) (biquad.Coefficients, error) {
	cw := math.Cos(w0)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func slopeAlpha(f0, gainDB, slope, sampleRate float64) (float64, float64, error) {
	if !(slope > 0) || math.IsInf(slope, 0) {
		return 0, 0, fmt.Errorf("%w: shelf slope %v", filter.ErrInvalidParameter, slope)
	}

	w0, err := cookbookW0(f0, 1, gainDB, sampleRate)
	if err != nil {
		return 0, 0, err
	}

	a := math.Pow(10, gainDB/40)

	arg := (a+1/a)*(1/slope-1) + 2
	if arg < 0 {
		return 0, 0, fmt.Errorf("%w: shelf slope %v too steep for %v dB", filter.ErrInvalidParameter, slope, gainDB)
	}

	return w0, math.Sin(w0) / 2 * math.Sqrt(arg), nil
}

func cookbookW0(f0, q, gainDB, sampleRate float64) (float64, error) {
	if err := filter.CheckFrequency(f0, sampleRate); err != nil {
		return 0, err
	}

	if !(q > 0) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("%w: Q %v", filter.ErrInvalidParameter, q)
	}

	if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		return 0, fmt.Errorf("%w: gain %v dB", filter.ErrInvalidParameter, gainDB)
	}

	return 2 * math.Pi * f0 / sampleRate, nil
}

// normalizeBiquad divides through by a0 and rejects the result unless it
// is finite and stable.
func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) (biquad.Coefficients, error) {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}, fmt.Errorf("%w: a0 = %v", filter.ErrInvalidParameter, a0)
	}

	c := biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}

	if err := c.Validate(); err != nil {
		return biquad.Coefficients{}, err
	}

	return c, nil
}
