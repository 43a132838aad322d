package fir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/internal/polyresp"
)

// symmetryTol is the relative tap mismatch still treated as symmetric.
const symmetryTol = 1e-12

// PhaseType classifies the tap symmetry of a filter.
type PhaseType int

const (
	// Asymmetric taps have no linear-phase guarantee.
	Asymmetric PhaseType = iota

	// TypeI is an odd-length symmetric filter.
	TypeI

	// TypeII is an even-length symmetric filter. Its response is forced
	// to zero at Nyquist, so it cannot realize highpass or bandstop
	// designs.
	TypeII
)

func (p PhaseType) String() string {
	switch p {
	case TypeI:
		return "type I"
	case TypeII:
		return "type II"
	default:
		return "asymmetric"
	}
}

// Filter is an immutable FIR filter bound to a sample rate.
type Filter struct {
	taps       []float64
	rev        []float64 // taps reversed, for the streaming dot product
	sampleRate float64
	phase      PhaseType
}

var _ filter.Streamer = (*Filter)(nil)

// New creates a filter from the given taps. The taps are copied.
func New(taps []float64, sampleRate float64) (*Filter, error) {
	if len(taps) == 0 {
		return nil, fmt.Errorf("%w: no taps", filter.ErrInvalidFilter)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", filter.ErrInvalidParameter, sampleRate)
	}

	m := len(taps)
	f := &Filter{
		taps:       make([]float64, m),
		rev:        make([]float64, m),
		sampleRate: sampleRate,
	}

	for i, v := range taps {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: tap %d is %v", filter.ErrInvalidParameter, i, v)
		}

		f.taps[i] = v
		f.rev[m-1-i] = v
	}

	f.phase = classify(f.taps)

	return f, nil
}

func classify(taps []float64) PhaseType {
	peak := 0.0
	for _, v := range taps {
		peak = max(peak, math.Abs(v))
	}

	m := len(taps)
	for k := range m / 2 {
		if math.Abs(taps[k]-taps[m-1-k]) > symmetryTol*peak {
			return Asymmetric
		}
	}

	if m%2 == 0 {
		return TypeII
	}

	return TypeI
}

// Len returns the number of taps M. The filter order is M-1.
func (f *Filter) Len() int { return len(f.taps) }

// Taps returns a copy of the filter taps.
func (f *Filter) Taps() []float64 {
	return append([]float64(nil), f.taps...)
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// PhaseType reports the tap symmetry.
func (f *Filter) PhaseType() PhaseType { return f.phase }

// IsLinearPhase reports whether the taps are symmetric.
func (f *Filter) IsLinearPhase() bool { return f.phase != Asymmetric }

// GroupDelay returns the constant group delay (M-1)/2 of a linear-phase
// filter. For asymmetric taps it returns the group delay at DC.
func (f *Filter) GroupDelay() float64 {
	if f.IsLinearPhase() {
		return float64(len(f.taps)-1) / 2
	}

	return f.GroupDelayAt(0)
}

// Apply filters samples with causal alignment, the same output a
// [Stream] produces over the whole buffer. Chains use this form. See the
// package level [Apply] for the centered default and other options.
func (f *Filter) Apply(samples []float64) ([]float64, error) {
	return Apply(f, samples, WithAlignment(AlignCausal))
}

// ResponseAt returns the complex frequency response at freqHz:
//
//	H(e^jw) = sum_n b[n] e^(-jwn)
func (f *Filter) ResponseAt(freqHz float64) complex128 {
	return polyresp.Eval(f.taps, 2*math.Pi*freqHz/f.sampleRate)
}

// MagnitudeDB returns the magnitude response in dB at freqHz.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	h := f.ResponseAt(freqHz)
	return 10 * math.Log10(real(h)*real(h)+imag(h)*imag(h))
}

// GroupDelayAt returns the group delay in samples at freqHz. At zeros of
// the response, where the delay is undefined, it returns 0.
func (f *Filter) GroupDelayAt(freqHz float64) float64 {
	return polyresp.GroupDelay(f.taps, 2*math.Pi*freqHz/f.sampleRate)
}

// NewStream returns a block processor with a zeroed delay line.
func (f *Filter) NewStream() filter.Stream {
	return &Stream{filter: f, state: NewState(f)}
}
