package design

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/prototype"
)

const fs = 48000.0

func mustIIR(t *testing.T, s filter.Spec, opts ...Option) *biquad.Cascade {
	t.Helper()

	c, err := IIR(s, opts...)
	require.NoError(t, err)

	return c
}

func spec(kind filter.Kind, family filter.Family, order int, cutoff ...float64) filter.Spec {
	return filter.Spec{
		Kind:       kind,
		Family:     family,
		Order:      order,
		Cutoff:     cutoff,
		SampleRate: fs,
		RippleDB:   1,
		StopbandDB: 40,
	}
}

func TestIIRButterworthLowpass(t *testing.T) {
	c := mustIIR(t, spec(filter.Lowpass, filter.Butterworth, 4, 1000))

	assert.Equal(t, 2, c.NumSections())
	assert.Equal(t, 4, c.Order())
	assert.InDelta(t, 48000, c.SampleRate(), 0)

	assert.InDelta(t, 0, c.MagnitudeDB(100), 0.01)
	assert.InDelta(t, -3.0103, c.MagnitudeDB(1000), 1e-3)
	assert.InDelta(t, -85.48, c.MagnitudeDB(10000), 0.01)
	assert.InDelta(t, 1, cmplx.Abs(c.ResponseAt(0)), 1e-9)
}

func TestIIRAlwaysStable(t *testing.T) {
	families := []filter.Family{filter.Butterworth, filter.Chebyshev1, filter.Chebyshev2, filter.Elliptic, filter.Bessel}
	kinds := []struct {
		kind   filter.Kind
		cutoff []float64
	}{
		{filter.Lowpass, []float64{1000}},
		{filter.Highpass, []float64{1000}},
		{filter.Bandpass, []float64{500, 2000}},
		{filter.Bandstop, []float64{500, 2000}},
	}

	for _, fam := range families {
		for _, k := range kinds {
			for _, order := range []int{1, 2, 3, 5, 8} {
				s := spec(k.kind, fam, order, k.cutoff...)

				c, err := IIR(s)
				require.NoError(t, err, "%v %v order %d", fam, k.kind, order)

				want := order
				if k.kind.IsBand() {
					want *= 2
				}

				assert.Equal(t, want, c.Order(), "%v %v order %d", fam, k.kind, order)

				for i, sec := range c.Sections() {
					assert.True(t, sec.IsStable(), "%v %v order %d section %d", fam, k.kind, order, i)
				}
			}
		}
	}
}

func TestIIREdgeAttenuation(t *testing.T) {
	tests := []struct {
		family filter.Family
		edge   float64 // response at the cutoff in dB
		stop   float64 // upper bound 2 kHz above a 1 kHz cutoff
	}{
		{filter.Butterworth, -3.0103, -30.29},
		{filter.Chebyshev1, -1, -45.52},
		{filter.Chebyshev2, -40, -40},
		{filter.Elliptic, -1, -40},
	}

	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			lp := mustIIR(t, spec(filter.Lowpass, tt.family, 5, 1000))
			assert.InDelta(t, tt.edge, lp.MagnitudeDB(1000), 1e-3)
			assert.LessOrEqual(t, lp.MagnitudeDB(2000), tt.stop+0.01)

			bp := mustIIR(t, spec(filter.Bandpass, tt.family, 3, 500, 2000))
			assert.Equal(t, 3, bp.NumSections())
			assert.InDelta(t, tt.edge, bp.MagnitudeDB(500), 1e-3)
			assert.InDelta(t, tt.edge, bp.MagnitudeDB(2000), 1e-3)

			bs := mustIIR(t, spec(filter.Bandstop, tt.family, 3, 500, 2000))
			assert.InDelta(t, tt.edge, bs.MagnitudeDB(500), 1e-3)
			assert.InDelta(t, tt.edge, bs.MagnitudeDB(2000), 1e-3)
			assert.Less(t, bs.MagnitudeDB(1000), -70.0)
		})
	}
}

func TestIIRPassbandLevels(t *testing.T) {
	butterLP := mustIIR(t, spec(filter.Lowpass, filter.Butterworth, 5, 1000))
	assert.InDelta(t, -0.0042, butterLP.MagnitudeDB(500), 1e-3)
	assert.InDelta(t, -71.43, butterLP.MagnitudeDB(5000), 0.01)

	ellipLP := mustIIR(t, spec(filter.Lowpass, filter.Elliptic, 5, 1000))
	assert.InDelta(t, 0, ellipLP.MagnitudeDB(0.001), 1e-6)

	cheb2LP := mustIIR(t, spec(filter.Lowpass, filter.Chebyshev2, 5, 1000))
	assert.InDelta(t, 0, cheb2LP.MagnitudeDB(0.001), 1e-6)

	butterBP := mustIIR(t, spec(filter.Bandpass, filter.Butterworth, 3, 500, 2000))
	assert.InDelta(t, 0, butterBP.MagnitudeDB(1000), 1e-6)

	butterBS := mustIIR(t, spec(filter.Bandstop, filter.Butterworth, 3, 500, 2000))
	assert.InDelta(t, 0, butterBS.MagnitudeDB(100), 1e-3)
	assert.InDelta(t, 0, butterBS.MagnitudeDB(8000), 1e-3)
}

func TestIIRFirstOrderSectionForOddOrder(t *testing.T) {
	c := mustIIR(t, spec(filter.Lowpass, filter.Butterworth, 3, 1000))
	require.Equal(t, 2, c.NumSections())

	first := c.Section(0)
	assert.True(t, first.IsFirstOrder())
	assert.InDelta(t, 0.000247001, first.B0, 1e-8)
	assert.InDelta(t, first.B0, first.B1, 1e-15)
	assert.InDelta(t, -0.876976, first.A1, 1e-6)

	second := c.Section(1)
	assert.False(t, second.IsFirstOrder())
	assert.InDelta(t, 1, second.B0, 1e-12)
	assert.InDelta(t, 2, second.B1, 1e-9)
	assert.InDelta(t, 1, second.B2, 1e-9)
	assert.InDelta(t, -1.86141, second.A1, 1e-5)
	assert.InDelta(t, 0.87747, second.A2, 1e-5)
}

func TestIIRSectionsAscendingRadius(t *testing.T) {
	c := mustIIR(t, spec(filter.Lowpass, filter.Elliptic, 8, 3000))

	prev := 0.0
	for i, s := range c.Sections() {
		r := s.MaxPoleRadius()
		assert.GreaterOrEqual(t, r, prev, "section %d", i)
		prev = r
	}
}

func TestIIRButterworthComplementary(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 5, 6} {
		lp := mustIIR(t, spec(filter.Lowpass, filter.Butterworth, order, 2000))
		hp := mustIIR(t, spec(filter.Highpass, filter.Butterworth, order, 2000))

		for _, f := range []float64{10, 500, 1900, 2000, 2100, 8000, 20000} {
			hl, hh := lp.ResponseAt(f), hp.ResponseAt(f)

			power := real(hl*cmplx.Conj(hl)) + real(hh*cmplx.Conj(hh))
			assert.InDelta(t, 1, power, 1e-12, "order %d f %v", order, f)

			if order%2 == 1 {
				assert.InDelta(t, 1, cmplx.Abs(hl+hh), 1e-12, "order %d f %v", order, f)
			}
		}
	}
}

func TestIIRPassbandGainAtTinyCutoff(t *testing.T) {
	tests := []struct {
		name   string
		family filter.Family
		order  int
		cutoff float64
		dc     float64
	}{
		{"chebyshev2", filter.Chebyshev2, 7, 1e-3, 0},
		{"chebyshev1 even", filter.Chebyshev1, 4, 0.05, -1},
		{"butterworth", filter.Butterworth, 6, 0.01, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustIIR(t, spec(filter.Lowpass, tt.family, tt.order, tt.cutoff))
			assert.InDelta(t, tt.dc, c.MagnitudeDB(0), 1e-9)
		})
	}
}

func TestIIRHighOrderLowCutoff(t *testing.T) {
	tests := []struct {
		order  int
		cutoff float64
	}{
		{8, 100},
		{12, 20},
	}

	for _, tt := range tests {
		c := mustIIR(t, spec(filter.Lowpass, filter.Butterworth, tt.order, tt.cutoff))
		assert.InDelta(t, 0, c.MagnitudeDB(tt.cutoff/100), 1e-6)
		assert.InDelta(t, -3.0103, c.MagnitudeDB(tt.cutoff), 1e-3)

		for _, s := range c.Sections() {
			assert.True(t, s.IsStable())
		}
	}
}

func TestIIRBessel(t *testing.T) {
	phase := mustIIR(t, spec(filter.Lowpass, filter.Bessel, 4, 2000))
	assert.InDelta(t, 0, phase.MagnitudeDB(1), 1e-6)

	// Nearly constant group delay well inside the passband.
	d0, d1 := phase.GroupDelayAt(50), phase.GroupDelayAt(500)
	assert.InDelta(t, d0, d1, 0.01*d0)

	mag := mustIIR(t, spec(filter.Lowpass, filter.Bessel, 4, 2000), WithBesselNorm(prototype.BesselMagnitude))
	assert.InDelta(t, -3.0103, mag.MagnitudeDB(2000), 0.05)
	assert.Less(t, mag.MagnitudeDB(2000), phase.MagnitudeDB(2000))
}

func TestIIRCookbookKinds(t *testing.T) {
	s := filter.Spec{Kind: filter.Peaking, Cutoff: []float64{1000}, SampleRate: fs, Q: 2, GainDB: 6}

	c := mustIIR(t, s)
	require.Equal(t, 1, c.NumSections())
	assert.InDelta(t, 6, c.MagnitudeDB(1000), 1e-9)

	s.Kind = filter.Notch
	s.Cutoff = []float64{60}
	s.Q = 30
	n := mustIIR(t, s)
	assert.Less(t, n.MagnitudeDB(60), -20.0)
}

func TestIIRErrors(t *testing.T) {
	tests := []struct {
		name string
		spec filter.Spec
		want error
	}{
		{"zero order", spec(filter.Lowpass, filter.Butterworth, 0, 1000), filter.ErrInvalidParameter},
		{"cutoff at nyquist", spec(filter.Lowpass, filter.Butterworth, 2, 24000), filter.ErrInvalidParameter},
		{"negative cutoff", spec(filter.Highpass, filter.Butterworth, 2, -5), filter.ErrInvalidParameter},
		{"band edges reversed", spec(filter.Bandpass, filter.Butterworth, 2, 2000, 500), filter.ErrInvalidParameter},
		{"one band edge", spec(filter.Bandstop, filter.Butterworth, 2, 500), filter.ErrInvalidParameter},
		{"unknown family", spec(filter.Lowpass, filter.Family(42), 2, 1000), filter.ErrUnsupportedFamily},
		{"unknown kind", spec(filter.Kind(42), filter.Butterworth, 2, 1000), filter.ErrUnsupportedFamily},
		{"zero sample rate", filter.Spec{Kind: filter.Lowpass, Cutoff: []float64{1}, Order: 2}, filter.ErrInvalidParameter},
		{"bessel too high", spec(filter.Lowpass, filter.Bessel, prototype.MaxBesselOrder+1, 1000), filter.ErrInvalidParameter},
		{"no ripple", func() filter.Spec {
			s := spec(filter.Lowpass, filter.Chebyshev1, 4, 1000)
			s.RippleDB = 0
			return s
		}(), filter.ErrInvalidParameter},
		{"peaking zero Q", filter.Spec{Kind: filter.Peaking, Cutoff: []float64{1000}, SampleRate: fs, GainDB: 3}, filter.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IIR(tt.spec)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBandstopNotch(t *testing.T) {
	c, err := BandstopNotch(60, 10, 2, fs)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Order())
	assert.Less(t, c.MagnitudeDB(60), -50.0)
	assert.InDelta(t, 0, c.MagnitudeDB(1000), 0.01)
	assert.InDelta(t, -3.0103, c.MagnitudeDB(55), 1e-3)

	_, err = BandstopNotch(60, 0, 2, fs)
	require.ErrorIs(t, err, filter.ErrInvalidParameter)

	_, err = BandstopNotch(60, math.Inf(1), 2, fs)
	require.ErrorIs(t, err, filter.ErrInvalidParameter)
}
