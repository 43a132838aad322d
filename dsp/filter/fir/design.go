package fir

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/window"
)

// Design defaults used when a Spec leaves the length or the window
// shape open.
const (
	DefaultNumTaps    = 129
	DefaultKaiserBeta = 8.0
)

type designConfig struct {
	window  window.Type
	beta    float64
	betaSet bool
}

// Option configures Design.
type Option func(*designConfig)

// WithWindow selects the window applied to the ideal impulse response.
// The default is window.TypeKaiser.
func WithWindow(t window.Type) Option {
	return func(cfg *designConfig) { cfg.window = t }
}

// WithKaiserBeta fixes the Kaiser shape parameter instead of deriving it
// from the stopband attenuation.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *designConfig) {
		cfg.beta = beta
		cfg.betaSet = true
	}
}

// Design builds a linear-phase windowed-sinc FIR filter.
//
// The length is s.NumTaps when set, otherwise it is estimated from
// s.TransitionHz and s.StopbandDB with the Kaiser formula (always odd),
// otherwise DefaultNumTaps. The Kaiser beta comes from s.StopbandDB, or
// is DefaultKaiserBeta when no attenuation is given.
//
// Lowpass taps are normalized to unit gain at DC. Highpass, bandpass and
// bandstop filters are built from lowpass prototypes by spectral
// inversion and subtraction. Notch is a bandstop over f0 -+ f0/(2Q).
// Highpass, bandstop and notch designs need an odd length.
func Design(s filter.Spec, opts ...Option) (*Filter, error) {
	cfg := designConfig{window: window.TypeKaiser}
	for _, o := range opts {
		o(&cfg)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	m, err := designLength(s)
	if err != nil {
		return nil, err
	}

	var wopts []window.Option

	if cfg.window == window.TypeKaiser {
		beta, err := kaiserBeta(s, cfg)
		if err != nil {
			return nil, err
		}

		wopts = append(wopts, window.WithBeta(beta))
	}

	lp := func(fc float64) ([]float64, error) {
		return windowedSinc(m, 2*math.Pi*fc/s.SampleRate, cfg.window, wopts)
	}

	needOdd := s.Kind == filter.Highpass || s.Kind == filter.Bandstop || s.Kind == filter.Notch
	if needOdd && m%2 == 0 {
		return nil, fmt.Errorf("%w: %s FIR needs an odd length, got %d", filter.ErrInvalidParameter, s.Kind, m)
	}

	var taps []float64

	switch s.Kind {
	case filter.Lowpass:
		taps, err = lp(s.Cutoff[0])
	case filter.Highpass:
		taps, err = lp(s.Cutoff[0])
		invert(taps)
	case filter.Bandpass:
		taps, err = bandpass(lp, s.Cutoff[0], s.Cutoff[1])
	case filter.Bandstop:
		taps, err = bandpass(lp, s.Cutoff[0], s.Cutoff[1])
		invert(taps)
	case filter.Notch:
		lo, hi, nerr := notchEdges(s)
		if nerr != nil {
			return nil, nerr
		}

		taps, err = bandpass(lp, lo, hi)
		invert(taps)
	default:
		return nil, fmt.Errorf("%w: %s has no FIR design", filter.ErrInvalidParameter, s.Kind)
	}

	if err != nil {
		return nil, err
	}

	return New(taps, s.SampleRate)
}

// KaiserLength returns the odd FIR length that reaches attenuationDB with
// a transition band of transitionHz at sampleRate.
func KaiserLength(transitionHz, sampleRate, attenuationDB float64) (int, error) {
	if err := filter.CheckFrequency(transitionHz, sampleRate); err != nil {
		return 0, err
	}

	return window.KaiserOrder(attenuationDB, 2*math.Pi*transitionHz/sampleRate, true)
}

func designLength(s filter.Spec) (int, error) {
	switch {
	case s.NumTaps < 0:
		return 0, fmt.Errorf("%w: %d taps", filter.ErrInvalidParameter, s.NumTaps)
	case s.NumTaps > 0:
		return s.NumTaps, nil
	case s.TransitionHz != 0:
		if !(s.StopbandDB > 0) {
			return 0, fmt.Errorf("%w: deriving the length needs a stopband attenuation, got %v dB",
				filter.ErrInvalidParameter, s.StopbandDB)
		}

		return KaiserLength(s.TransitionHz, s.SampleRate, s.StopbandDB)
	default:
		return DefaultNumTaps, nil
	}
}

func kaiserBeta(s filter.Spec, cfg designConfig) (float64, error) {
	switch {
	case cfg.betaSet:
		if !(cfg.beta >= 0) || math.IsInf(cfg.beta, 0) {
			return 0, fmt.Errorf("%w: Kaiser beta %v", filter.ErrInvalidParameter, cfg.beta)
		}

		return cfg.beta, nil
	case s.StopbandDB != 0:
		return window.KaiserBeta(s.StopbandDB)
	default:
		return DefaultKaiserBeta, nil
	}
}

func notchEdges(s filter.Spec) (float64, float64, error) {
	if !(s.Q > 0) || math.IsInf(s.Q, 0) {
		return 0, 0, fmt.Errorf("%w: Q %v", filter.ErrInvalidParameter, s.Q)
	}

	f0 := s.Cutoff[0]
	half := f0 / (2 * s.Q)
	lo, hi := f0-half, f0+half

	if lo <= 0 || hi >= s.Nyquist() {
		return 0, 0, fmt.Errorf("%w: notch band [%v, %v] Hz outside (0, %v)",
			filter.ErrInvalidParameter, lo, hi, s.Nyquist())
	}

	return lo, hi, nil
}

// windowedSinc returns the windowed ideal lowpass with cutoff wc rad per
// sample, scaled to unit DC gain:
//
//	h[n] = sin(wc (n-c)) / (pi (n-c)),  c = (m-1)/2
func windowedSinc(m int, wc float64, wt window.Type, wopts []window.Option) ([]float64, error) {
	h := make([]float64, m)
	center := float64(m-1) / 2

	for n := range h {
		x := float64(n) - center
		if x == 0 {
			h[n] = wc / math.Pi
			continue
		}

		h[n] = math.Sin(wc*x) / (math.Pi * x)
	}

	if err := window.Apply(wt, h, wopts...); err != nil {
		return nil, err
	}

	sum := f64.Sum(h)
	if sum == 0 {
		return nil, fmt.Errorf("%w: lowpass taps sum to zero", filter.ErrInvalidParameter)
	}

	f64.Scale(h, h, 1/sum)

	return h, nil
}

func bandpass(lp func(float64) ([]float64, error), lo, hi float64) ([]float64, error) {
	low, err := lp(lo)
	if err != nil {
		return nil, err
	}

	high, err := lp(hi)
	if err != nil {
		return nil, err
	}

	for i := range high {
		high[i] -= low[i]
	}

	return high, nil
}

// invert turns h into delta - h in place; len(h) must be odd.
func invert(h []float64) {
	for i := range h {
		h[i] = -h[i]
	}

	h[len(h)/2]++
}
