package fir

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

// State is the delay line of one FIR filter between blocks. The zero
// state corresponds to silence before the first sample. A State belongs
// to a single caller and is not safe for concurrent use.
type State struct {
	// delay holds every sample twice, at i and i+M, so that the last M
	// inputs are always one contiguous window.
	delay []float64
	pos   int

	// saved is the delay line at the start of the current block.
	saved []float64
}

// NewState returns a zeroed delay line for f.
func NewState(f *Filter) *State {
	return &State{
		delay: make([]float64, 2*len(f.taps)),
		saved: make([]float64, 2*len(f.taps)),
	}
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	return &State{
		delay: append([]float64(nil), s.delay...),
		pos:   s.pos,
		saved: make([]float64, len(s.saved)),
	}
}

// Len returns the number of taps the state was created for.
func (s *State) Len() int { return len(s.delay) / 2 }

// Reset clears the delay line.
func (s *State) Reset() {
	clear(s.delay)
	s.pos = 0
}

// processSample pushes x into the delay line and returns
//
//	y[n] = sum_{k=0}^{M-1} b[k] * x[n-k]
func (s *State) processSample(rev []float64, x float64) float64 {
	m := len(rev)

	s.delay[s.pos] = x
	s.delay[s.pos+m] = x

	y := f64.DotProduct(rev, s.delay[s.pos+1:s.pos+1+m])

	s.pos++
	if s.pos >= m {
		s.pos = 0
	}

	return y
}

// ApplyBlock filters the next block of a stream and returns a new slice.
// The output equals the matching slice of a causal [Apply] over all blocks
// seen since the state was created or reset. A block whose output
// overflows to a non-finite value fails with ErrInvalidParameter. The
// state is left unchanged when an error is returned.
func ApplyBlock(f *Filter, block []float64, state *State) ([]float64, error) {
	if f == nil || len(f.taps) == 0 {
		return nil, fmt.Errorf("%w: nil FIR filter", filter.ErrInvalidFilter)
	}

	if state == nil || state.Len() != len(f.taps) {
		return nil, fmt.Errorf("%w: state does not match a %d-tap filter", filter.ErrInvalidParameter, len(f.taps))
	}

	if err := checkFinite(block); err != nil {
		return nil, err
	}

	copy(state.saved, state.delay)
	pos := state.pos

	out := make([]float64, len(block))
	for i, x := range block {
		y := state.processSample(f.rev, x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			copy(state.delay, state.saved)
			state.pos = pos

			return nil, fmt.Errorf("%w: output sample %d overflowed to %v", filter.ErrInvalidParameter, i, y)
		}

		out[i] = y
	}

	return out, nil
}

// Stream adapts [ApplyBlock] to filter.Stream.
type Stream struct {
	filter *Filter
	state  *State
}

// Process filters the next block.
func (s *Stream) Process(block []float64) ([]float64, error) {
	return ApplyBlock(s.filter, block, s.state)
}

// Reset clears the delay line.
func (s *Stream) Reset() { s.state.Reset() }

// Clone returns a stream over the same filter with a copy of the delay
// line.
func (s *Stream) Clone() filter.Stream {
	return &Stream{filter: s.filter, state: s.state.Clone()}
}

func checkFinite(samples []float64) error {
	for i, x := range samples {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: sample %d is %v", filter.ErrInvalidParameter, i, x)
		}
	}

	return nil
}
