package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

// Response bundles every characteristic of a filter over one frequency
// grid. All slices have the length of FreqsHz.
type Response struct {
	FreqsHz     []float64
	H           []complex128
	MagnitudeDB []float64
	Phase       []float64 // wrapped to [-pi, pi]
	Unwrapped   []float64
	GroupDelay  []float64 // samples, closed form
}

// Analyze evaluates f at freqsHz.
func Analyze(f filter.Filter, freqsHz []float64) (*Response, error) {
	h, err := FrequencyResponse(f, freqsHz)
	if err != nil {
		return nil, err
	}

	gd, err := GroupDelay(f, freqsHz)
	if err != nil {
		return nil, err
	}

	phase := Phase(h)

	return &Response{
		FreqsHz:     append([]float64(nil), freqsHz...),
		H:           h,
		MagnitudeDB: MagnitudeDB(h),
		Phase:       phase,
		Unwrapped:   Unwrap(phase),
		GroupDelay:  gd,
	}, nil
}

// FrequencyResponse returns H(e^jw) of f at every frequency in freqsHz.
func FrequencyResponse(f filter.Filter, freqsHz []float64) ([]complex128, error) {
	if err := checkGrid(f, freqsHz); err != nil {
		return nil, err
	}

	out := make([]complex128, len(freqsHz))
	for i, freq := range freqsHz {
		out[i] = f.ResponseAt(freq)
	}

	return out, nil
}

// GroupDelay returns the group delay of f in samples at every frequency in
// freqsHz, from the closed-form derivative of the phase. Frequencies where
// the response vanishes report 0.
func GroupDelay(f filter.Filter, freqsHz []float64) ([]float64, error) {
	if err := checkGrid(f, freqsHz); err != nil {
		return nil, err
	}

	out := make([]float64, len(freqsHz))
	for i, freq := range freqsHz {
		out[i] = f.GroupDelayAt(freq)
	}

	return out, nil
}

// MagnitudeDB returns 20*log10|h| per bin. Exact zeros map to -Inf.
func MagnitudeDB(h []complex128) []float64 {
	if len(h) == 0 {
		return nil
	}

	re := make([]float64, len(h))
	im := make([]float64, len(h))

	for i, c := range h {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(h))
	vecmath.Magnitude(out, re, im)

	for i, m := range out {
		out[i] = 20 * math.Log10(m)
	}

	return out
}

// Phase returns arg(h) per bin in radians, wrapped to [-pi, pi].
func Phase(h []complex128) []float64 {
	if len(h) == 0 {
		return nil
	}

	out := make([]float64, len(h))
	for i, c := range h {
		out[i] = cmplx.Phase(c)
	}

	return out
}

// Unwrap returns a new phase slice with +/-2*pi jumps between neighbors
// removed.
func Unwrap(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0

	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		offset -= 2 * math.Pi * math.Round(d/(2*math.Pi))
		out[i] = phase[i] + offset
	}

	return out
}

// GroupDelayFromPhase estimates the group delay in samples as -dphi/dw
// from an unwrapped phase sampled at increasing freqsHz. Interior points
// use centered differences and the end points one-sided differences.
func GroupDelayFromPhase(unwrapped, freqsHz []float64, sampleRate float64) ([]float64, error) {
	if len(unwrapped) < 2 || len(unwrapped) != len(freqsHz) {
		return nil, fmt.Errorf("%w: need at least 2 matching phase and frequency points, got %d and %d",
			filter.ErrInvalidParameter, len(unwrapped), len(freqsHz))
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", filter.ErrInvalidParameter, sampleRate)
	}

	for i := 1; i < len(freqsHz); i++ {
		if !(freqsHz[i] > freqsHz[i-1]) {
			return nil, fmt.Errorf("%w: frequencies must increase at index %d", filter.ErrInvalidParameter, i)
		}
	}

	w := func(i int) float64 { return 2 * math.Pi * freqsHz[i] / sampleRate }
	last := len(unwrapped) - 1

	out := make([]float64, len(unwrapped))
	for i := range out {
		lo, hi := max(i-1, 0), min(i+1, last)
		out[i] = -(unwrapped[hi] - unwrapped[lo]) / (w(hi) - w(lo))
	}

	return out, nil
}

func checkGrid(f filter.Filter, freqsHz []float64) error {
	if f == nil {
		return fmt.Errorf("%w: nil filter", filter.ErrInvalidFilter)
	}

	nyq := f.SampleRate() / 2
	for i, freq := range freqsHz {
		if !(freq >= 0 && freq <= nyq) {
			return fmt.Errorf("%w: frequency %d = %v Hz outside [0, %v]", filter.ErrInvalidParameter, i, freq, nyq)
		}
	}

	return nil
}
