package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/internal/polyresp"
)

func angular(freqHz, sampleRate float64) float64 {
	return 2 * math.Pi * freqHz / sampleRate
}

func (c Coefficients) num() []float64 { return []float64{c.B0, c.B1, c.B2} }
func (c Coefficients) den() []float64 { return []float64{1, c.A1, c.A2} }

// Response returns H(e^jw) at freqHz for a section run at sampleRate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := angular(freqHz, sampleRate)
	return polyresp.Eval(c.num(), w) / polyresp.Eval(c.den(), w)
}

// MagnitudeSquared returns |H(f)|^2 in closed form, with no complex
// arithmetic. With k = 2 cos w:
//
//	|B|^2 = (b0-b2)^2 + b1^2 + (b1 (b0+b2) + b0 b2 k) k
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	k := 2 * math.Cos(angular(freqHz, sampleRate))

	return quadNorm(c.B0, c.B1, c.B2, k) / quadNorm(1, c.A1, c.A2, k)
}

func quadNorm(p0, p1, p2, k float64) float64 {
	d := p0 - p2
	return d*d + p1*p1 + (p1*(p0+p2)+p0*p2*k)*k
}

// MagnitudeDB returns 10 log10 |H(f)|^2.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(f) in [-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// GroupDelay returns the section group delay in samples, the numerator
// delay minus the denominator delay.
func (c Coefficients) GroupDelay(freqHz, sampleRate float64) float64 {
	w := angular(freqHz, sampleRate)
	return polyresp.GroupDelay(c.num(), w) - polyresp.GroupDelay(c.den(), w)
}

// ResponseAt returns the cascade response, the product of the section
// responses.
func (c *Cascade) ResponseAt(freqHz float64) complex128 {
	h := complex(1, 0)
	for _, s := range c.sections {
		h *= s.Response(freqHz, c.sampleRate)
	}

	return h
}

// MagnitudeDB returns 20 log10 |H(f)| of the cascade.
func (c *Cascade) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.ResponseAt(freqHz)))
}

// GroupDelayAt returns the cascade group delay in samples, the sum of the
// section delays.
func (c *Cascade) GroupDelayAt(freqHz float64) float64 {
	var d float64
	for _, s := range c.sections {
		d += s.GroupDelay(freqHz, c.sampleRate)
	}

	return d
}
