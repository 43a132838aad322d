package biquad

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// IsStable reports whether both poles lie strictly inside the unit
// circle, using the stability triangle |a2| < 1, |a1| < 1 + a2.
func (c Coefficients) IsStable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// IsFinite reports whether every coefficient is a finite number.
func (c Coefficients) IsFinite() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// Validate returns ErrInvalidParameter for non-finite coefficients and
// ErrUnstableDesign when a pole is on or outside the unit circle.
func (c Coefficients) Validate() error {
	if !c.IsFinite() {
		return fmt.Errorf("%w: non-finite biquad coefficients %+v", filter.ErrInvalidParameter, c)
	}

	if !c.IsStable() {
		return fmt.Errorf("%w: a1=%g a2=%g", filter.ErrUnstableDesign, c.A1, c.A2)
	}

	return nil
}

// IsFirstOrder reports whether the section degenerates to a first-order
// filter (no z^-2 terms).
func (c Coefficients) IsFirstOrder() bool {
	return c.B2 == 0 && c.A2 == 0
}

// Section is one biquad with its two Direct Form II Transposed
// registers.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place without allocating.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.Coefficients
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset returns the section to rest.
func (s *Section) Reset() { s.d0, s.d1 = 0, 0 }

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores registers saved with State.
func (s *Section) SetState(state [2]float64) { s.d0, s.d1 = state[0], state[1] }
