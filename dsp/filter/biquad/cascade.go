package biquad

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

// Cascade is an ordered, immutable series of second-order sections bound
// to a sample rate. It is used for higher-order filters (Butterworth,
// Chebyshev, etc.) where each section feeds into the next.
//
// A Cascade holds no running state; see [State] and [Apply]. It is safe
// to share between goroutines.
type Cascade struct {
	sections   []Coefficients
	sampleRate float64
}

var (
	_ filter.Filter   = (*Cascade)(nil)
	_ filter.Streamer = (*Cascade)(nil)
)

// NewCascade validates and copies coeffs into a new Cascade. It fails with
// ErrInvalidFilter when coeffs is empty, ErrInvalidParameter for a bad
// sample rate or non-finite coefficients, and ErrUnstableDesign when any
// section has a pole on or outside the unit circle.
func NewCascade(coeffs []Coefficients, sampleRate float64) (*Cascade, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("%w: cascade has no sections", filter.ErrInvalidFilter)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", filter.ErrInvalidParameter, sampleRate)
	}

	for i, c := range coeffs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
	}

	return &Cascade{
		sections:   append([]Coefficients(nil), coeffs...),
		sampleRate: sampleRate,
	}, nil
}

// SampleRate returns the design sample rate in Hz.
func (c *Cascade) SampleRate() float64 { return c.sampleRate }

// NumSections returns the number of biquad sections.
func (c *Cascade) NumSections() int { return len(c.sections) }

// Section returns the coefficients of the i-th section.
func (c *Cascade) Section(i int) Coefficients { return c.sections[i] }

// Sections returns a copy of all section coefficients in cascade order.
func (c *Cascade) Sections() []Coefficients {
	return append([]Coefficients(nil), c.sections...)
}

// Order returns the total filter order: two per section, one for
// first-order sections.
func (c *Cascade) Order() int {
	n := 0
	for _, s := range c.sections {
		if s.IsFirstOrder() {
			n++
		} else {
			n += 2
		}
	}

	return n
}

// Apply filters samples from zero state. It is the single-shot form of
// the package level [Apply].
func (c *Cascade) Apply(samples []float64) ([]float64, error) {
	return Apply(c, samples, nil)
}

// NewStream returns a block processor with its own zero state.
func (c *Cascade) NewStream() filter.Stream {
	return &Stream{cascade: c, state: NewState(c)}
}

// ImpulseResponse computes n samples of the cascade impulse response.
func (c *Cascade) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	ir := make([]float64, n)
	ir[0] = 1

	for _, coeffs := range c.sections {
		s := Section{Coefficients: coeffs}
		s.ProcessBlock(ir)
	}

	return ir
}

// Stream processes consecutive blocks through a cascade, keeping the
// delay registers between calls.
type Stream struct {
	cascade *Cascade
	state   *State
}

// Process filters the next block.
func (s *Stream) Process(block []float64) ([]float64, error) {
	return Apply(s.cascade, block, s.state)
}

// Reset clears the delay registers.
func (s *Stream) Reset() { s.state.Reset() }

// Clone returns a stream over the same cascade with a copy of the
// registers.
func (s *Stream) Clone() filter.Stream {
	return &Stream{cascade: s.cascade, state: s.state.Clone()}
}

// State exposes the stream's registers.
func (s *Stream) State() *State { return s.state }
