// Package chain composes designed filters into a serial processing chain.
//
// A [Chain] runs its stages in order. Stages may be FIR filters, biquad
// cascades or other chains; they must share one sample rate. Because
// every stage is linear and time invariant, the magnitude response of a
// chain does not depend on the stage order.
package chain

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

// Chain is an immutable ordered list of filters.
type Chain struct {
	stages     []filter.Filter
	sampleRate float64
}

var _ filter.Filter = (*Chain)(nil)

// Compose builds a chain from one or more stages.
func Compose(stages ...filter.Filter) (*Chain, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: chain has no stages", filter.ErrInvalidFilter)
	}

	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("%w: stage %d is nil", filter.ErrInvalidFilter, i)
		}
	}

	rate := stages[0].SampleRate()
	for i, s := range stages[1:] {
		if s.SampleRate() != rate {
			return nil, fmt.Errorf("%w: stage %d runs at %v Hz, stage 0 at %v Hz",
				filter.ErrSampleRateMismatch, i+1, s.SampleRate(), rate)
		}
	}

	return &Chain{
		stages:     append([]filter.Filter(nil), stages...),
		sampleRate: rate,
	}, nil
}

// SampleRate returns the shared sample rate in Hz.
func (c *Chain) SampleRate() float64 { return c.sampleRate }

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Stages returns a copy of the stage list.
func (c *Chain) Stages() []filter.Filter {
	return append([]filter.Filter(nil), c.stages...)
}

// Apply runs samples through every stage in order and returns a new
// slice.
func (c *Chain) Apply(samples []float64) ([]float64, error) {
	if len(c.stages) == 0 {
		return nil, fmt.Errorf("%w: chain has no stages", filter.ErrInvalidFilter)
	}

	out := samples
	for i, s := range c.stages {
		y, err := s.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}

		out = y
	}

	return out, nil
}

// ResponseAt returns the product of the stage responses at freqHz.
func (c *Chain) ResponseAt(freqHz float64) complex128 {
	h := complex(1, 0)
	for _, s := range c.stages {
		h *= s.ResponseAt(freqHz)
	}

	return h
}

// MagnitudeDB returns the chain magnitude response in dB at freqHz.
func (c *Chain) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.ResponseAt(freqHz)))
}

// GroupDelayAt returns the sum of the stage group delays at freqHz.
func (c *Chain) GroupDelayAt(freqHz float64) float64 {
	d := 0.0
	for _, s := range c.stages {
		d += s.GroupDelayAt(freqHz)
	}

	return d
}
