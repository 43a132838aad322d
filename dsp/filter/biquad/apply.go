package biquad

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"gonum.org/v1/gonum/floats"
)

// State holds the two Direct Form II Transposed registers of every
// section of one cascade. The zero value of a State created by NewState
// is the rest state.
//
// A State belongs to one streaming session. It has no locking and must
// not be shared between concurrent calls to Apply.
type State struct {
	regs [][2]float64
}

// NewState returns zeroed registers sized for c.
func NewState(c *Cascade) *State {
	return &State{regs: make([][2]float64, c.NumSections())}
}

// Len returns the number of sections the state was sized for.
func (s *State) Len() int { return len(s.regs) }

// Reset zeroes all registers.
func (s *State) Reset() {
	clear(s.regs)
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	return &State{regs: append([][2]float64(nil), s.regs...)}
}

// Registers returns a copy of the registers as a flat slice of length
// 2*Len(), ordered d0, d1 per section.
func (s *State) Registers() []float64 {
	out := make([]float64, 0, 2*len(s.regs))
	for _, r := range s.regs {
		out = append(out, r[0], r[1])
	}

	return out
}

// Apply runs samples through every section of c in cascade order and
// returns a new slice.
//
// With a nil state processing starts from rest and nothing is retained.
// Otherwise the registers are read from state and written back once the
// whole block has been processed, so splitting a signal into consecutive
// blocks gives the same output as one call. A block whose output
// overflows to a non-finite value fails with ErrInvalidParameter. On
// error state is untouched.
func Apply(c *Cascade, samples []float64, state *State) ([]float64, error) {
	if c == nil || len(c.sections) == 0 {
		return nil, fmt.Errorf("%w: nil or empty cascade", filter.ErrInvalidFilter)
	}

	if state != nil && state.Len() != len(c.sections) {
		return nil, fmt.Errorf("%w: state sized for %d sections, cascade has %d",
			filter.ErrInvalidParameter, state.Len(), len(c.sections))
	}

	for i, x := range samples {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: sample %d is %v", filter.ErrInvalidParameter, i, x)
		}
	}

	out := make([]float64, len(samples))
	copy(out, samples)

	if len(out) == 0 {
		return out, nil
	}

	var regs [][2]float64
	if state != nil {
		regs = make([][2]float64, len(state.regs))
		copy(regs, state.regs)
	}

	for i, coeffs := range c.sections {
		s := Section{Coefficients: coeffs}
		if regs != nil {
			s.SetState(regs[i])
		}

		s.ProcessBlock(out)

		if regs != nil {
			regs[i] = s.State()
		}
	}

	for i, y := range out {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("%w: output sample %d overflowed to %v", filter.ErrInvalidParameter, i, y)
		}
	}

	if state != nil {
		copy(state.regs, regs)
	}

	return out, nil
}

// ApplyZeroPhase filters samples forward, reverses the result, filters
// it again and reverses back. The effective response is |H|^2 with zero
// phase.
//
// The whole signal must be in memory and the result is non-causal, so
// there is no streaming form.
func ApplyZeroPhase(c *Cascade, samples []float64) ([]float64, error) {
	y, err := Apply(c, samples, nil)
	if err != nil {
		return nil, err
	}

	floats.Reverse(y)

	y, err = Apply(c, y, nil)
	if err != nil {
		return nil, err
	}

	floats.Reverse(y)

	return y, nil
}
