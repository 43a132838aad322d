package fir

import (
	"fmt"

	"github.com/cwbudde/algo-filter/dsp/conv"
	"github.com/cwbudde/algo-filter/dsp/filter"
)

// Alignment selects which window of the full convolution Apply returns.
type Alignment int

const (
	// AlignCausal returns y[n] = sum_k b[k] x[n-k] for n < len(x). An
	// impulse at n = 0 reproduces the taps.
	AlignCausal Alignment = iota

	// AlignCentered shifts the output back by (M-1)/2 samples, the
	// "same" window of a full convolution. A symmetric filter then adds
	// no delay.
	AlignCentered
)

func (a Alignment) String() string {
	if a == AlignCentered {
		return "centered"
	}

	return "causal"
}

// Method selects the convolution algorithm of Apply.
type Method = conv.Method

// Convolution algorithms.
const (
	MethodAuto   = conv.MethodAuto
	MethodDirect = conv.MethodDirect
	MethodFFT    = conv.MethodFFT
)

type applyConfig struct {
	align  Alignment
	method Method
}

// ApplyOption configures Apply.
type ApplyOption func(*applyConfig)

// WithAlignment selects the output alignment. The default is
// AlignCentered.
func WithAlignment(a Alignment) ApplyOption {
	return func(cfg *applyConfig) { cfg.align = a }
}

// WithMethod selects direct or FFT overlap-add convolution. MethodAuto,
// the default, uses FFT above conv.DirectThreshold taps.
func WithMethod(m Method) ApplyOption {
	return func(cfg *applyConfig) { cfg.method = m }
}

// Apply filters a whole buffer by linear convolution and returns a new
// slice of len(samples). samples is not modified.
//
// By default the output is the centered ("same") window of the full
// convolution, so a linear-phase filter adds no delay. Streaming and
// [Filter.Apply] are causal; pass WithAlignment(AlignCausal) to match
// them.
func Apply(f *Filter, samples []float64, opts ...ApplyOption) ([]float64, error) {
	cfg := applyConfig{align: AlignCentered, method: MethodAuto}
	for _, o := range opts {
		o(&cfg)
	}

	if f == nil || len(f.taps) == 0 {
		return nil, fmt.Errorf("%w: nil FIR filter", filter.ErrInvalidFilter)
	}

	if err := checkFinite(samples); err != nil {
		return nil, err
	}

	if len(samples) == 0 {
		return []float64{}, nil
	}

	full, err := conv.ConvolveWith(samples, f.taps, cfg.method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", filter.ErrInvalidParameter, err)
	}

	mode := conv.ModeCausal
	if cfg.align == AlignCentered {
		mode = conv.ModeSame
	}

	return conv.Trim(full, len(samples), len(f.taps), mode), nil
}
