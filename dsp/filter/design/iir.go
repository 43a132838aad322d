package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/prototype"
)

// designRate is the sample rate the analog design runs at. Frequencies
// are rescaled to it so that root magnitudes stay near unity regardless
// of the real sample rate.
const designRate = 2.0

// DefaultQ is the Butterworth Q used where a Q is optional.
const DefaultQ = 1 / math.Sqrt2

type iirConfig struct {
	besselNorm prototype.BesselNorm
}

// Option configures IIR.
type Option func(*iirConfig)

// WithBesselNorm selects the Bessel frequency normalization. The default
// is prototype.BesselPhase.
func WithBesselNorm(n prototype.BesselNorm) Option {
	return func(cfg *iirConfig) { cfg.besselNorm = n }
}

// IIR designs a digital IIR filter as a cascade of second-order sections.
//
// Lowpass, Highpass, Bandpass and Bandstop kinds are designed from the
// analog prototype of s.Family at s.Order: the edges are pre-warped, the
// prototype is frequency transformed (band kinds double the order),
// mapped with the bilinear transform and factored into sections. Peaking,
// LowShelf, HighShelf and Notch kinds return a single cookbook section.
//
// Lowpass and bandstop designs are gain-corrected at DC and highpass
// designs at Nyquist. At cutoffs that are a tiny fraction of the sample
// rate the poles sit so close to the unit circle that the float64
// coefficients still distort the response shape near the cutoff; run
// such filters at a lower rate.
func IIR(s filter.Spec, opts ...Option) (*biquad.Cascade, error) {
	cfg := iirConfig{besselNorm: prototype.BesselPhase}
	for _, o := range opts {
		o(&cfg)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Kind {
	case filter.Peaking, filter.LowShelf, filter.HighShelf, filter.Notch:
		c, err := Cookbook(s)
		if err != nil {
			return nil, err
		}

		return biquad.NewCascade([]biquad.Coefficients{c}, s.SampleRate)
	}

	if !s.Family.Valid() {
		return nil, fmt.Errorf("%w: %v", filter.ErrUnsupportedFamily, s.Family)
	}

	proto, err := prototype.Analog(s.Family, s.Order, prototype.Params{
		RippleDB:   s.RippleDB,
		StopbandDB: s.StopbandDB,
		BesselNorm: cfg.besselNorm,
	})
	if err != nil {
		return nil, err
	}

	warp := func(f float64) float64 {
		return Prewarp(designRate*f/s.SampleRate, designRate)
	}

	var analog prototype.ZPK

	switch s.Kind {
	case filter.Lowpass:
		analog = LowpassToLowpass(proto, warp(s.Cutoff[0]))
	case filter.Highpass:
		analog, err = LowpassToHighpass(proto, warp(s.Cutoff[0]))
	case filter.Bandpass, filter.Bandstop:
		lo, hi := warp(s.Cutoff[0]), warp(s.Cutoff[1])
		wo, bw := math.Sqrt(lo*hi), hi-lo

		if s.Kind == filter.Bandpass {
			analog = LowpassToBandpass(proto, wo, bw)
		} else {
			analog, err = LowpassToBandstop(proto, wo, bw)
		}
	}

	if err != nil {
		return nil, err
	}

	digital, err := Bilinear(analog, designRate)
	if err != nil {
		return nil, err
	}

	sections, err := Sections(digital)
	if err != nil {
		return nil, err
	}

	// With poles crowding z = 1 or z = -1 the rounded coefficients drift
	// off the prototype gain. Rescale at the point prototype DC maps to.
	switch s.Kind {
	case filter.Lowpass, filter.Bandstop:
		normalizeGain(sections, 1, proto.MagnitudeAt(0))
	case filter.Highpass:
		normalizeGain(sections, -1, proto.MagnitudeAt(0))
	}

	return biquad.NewCascade(sections, s.SampleRate)
}

// normalizeGain scales the numerator of the first section so that the
// cascade magnitude at z (1 or -1) equals target.
func normalizeGain(sections []biquad.Coefficients, z, target float64) {
	h := 1.0
	for _, c := range sections {
		h *= (c.B2 + z*c.B1 + c.B0) / (c.A2 + z*c.A1 + 1)
	}

	h = math.Abs(h)
	if h == 0 || math.IsInf(h, 0) || math.IsNaN(h) || !(target > 0) {
		return
	}

	g := target / h
	sections[0].B0 *= g
	sections[0].B1 *= g
	sections[0].B2 *= g
}

// Cookbook returns the single-section design for the Peaking, LowShelf,
// HighShelf and Notch kinds. Shelves use the slope form when
// s.ShelfSlope is set.
func Cookbook(s filter.Spec) (biquad.Coefficients, error) {
	if err := s.Validate(); err != nil {
		return biquad.Coefficients{}, err
	}

	f0 := s.Cutoff[0]

	switch s.Kind {
	case filter.Peaking:
		return Peaking(f0, s.GainDB, s.Q, s.SampleRate)
	case filter.LowShelf:
		if s.ShelfSlope != 0 {
			return LowShelfSlope(f0, s.GainDB, s.ShelfSlope, s.SampleRate)
		}

		return LowShelf(f0, s.GainDB, s.Q, s.SampleRate)
	case filter.HighShelf:
		if s.ShelfSlope != 0 {
			return HighShelfSlope(f0, s.GainDB, s.ShelfSlope, s.SampleRate)
		}

		return HighShelf(f0, s.GainDB, s.Q, s.SampleRate)
	case filter.Notch:
		return Notch(f0, s.Q, s.SampleRate)
	default:
		return biquad.Coefficients{}, fmt.Errorf("%w: %s has no cookbook form", filter.ErrInvalidParameter, s.Kind)
	}
}

// BandstopNotch designs a Butterworth bandstop of the given order over
// [f0 - bw/2, f0 + bw/2], a wider and flatter notch than the single
// cookbook section.
func BandstopNotch(f0, bw float64, order int, sampleRate float64) (*biquad.Cascade, error) {
	if !(bw > 0) || math.IsInf(bw, 0) {
		return nil, fmt.Errorf("%w: notch bandwidth %v Hz", filter.ErrInvalidParameter, bw)
	}

	return IIR(filter.Spec{
		Kind:       filter.Bandstop,
		Cutoff:     []float64{f0 - bw/2, f0 + bw/2},
		SampleRate: sampleRate,
		Order:      order,
		Family:     filter.Butterworth,
	})
}
