package filter

import (
	"fmt"
	"math"
)

// Spec is the immutable description of a filter to design. Only the
// fields relevant to the chosen Kind and designer are consulted.
type Spec struct {
	Kind Kind

	// Cutoff holds one edge frequency in Hz, or two (low, high) for
	// Bandpass and Bandstop. For Peaking, shelves and Notch it holds the
	// center or corner frequency.
	Cutoff []float64

	SampleRate float64

	// IIR prototype order and family.
	Order  int
	Family Family

	RippleDB   float64 // passband ripple (Chebyshev I, elliptic)
	StopbandDB float64 // stopband attenuation (Chebyshev II, elliptic, Kaiser FIR)

	Q          float64 // quality factor (peaking, shelves, notch)
	GainDB     float64 // boost or cut (peaking, shelves)
	ShelfSlope float64 // optional shelf slope S; 0 selects the Q form

	// FIR length. When zero the length is derived from TransitionHz and
	// StopbandDB.
	NumTaps      int
	TransitionHz float64
}

// Nyquist returns half the sample rate.
func (s Spec) Nyquist() float64 { return s.SampleRate / 2 }

// Validate checks the sample rate and the cutoff frequencies. Designer
// specific fields (order, ripple, Q) are checked by the designers.
func (s Spec) Validate() error {
	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidParameter, s.SampleRate)
	}

	if s.Kind < Lowpass || s.Kind > Notch {
		return fmt.Errorf("%w: kind %v", ErrUnsupportedFamily, s.Kind)
	}

	want := 1
	if s.Kind.IsBand() {
		want = 2
	}

	if len(s.Cutoff) != want {
		return fmt.Errorf("%w: %s needs %d cutoff frequencies, got %d",
			ErrInvalidParameter, s.Kind, want, len(s.Cutoff))
	}

	nyq := s.Nyquist()
	for _, f := range s.Cutoff {
		if !(f > 0 && f < nyq) {
			return fmt.Errorf("%w: frequency %v Hz outside (0, %v)", ErrInvalidParameter, f, nyq)
		}
	}

	if want == 2 && s.Cutoff[0] >= s.Cutoff[1] {
		return fmt.Errorf("%w: band edges %v >= %v", ErrInvalidParameter, s.Cutoff[0], s.Cutoff[1])
	}

	return nil
}

// CheckFrequency reports ErrInvalidParameter unless 0 < f < fs/2.
func CheckFrequency(f, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidParameter, sampleRate)
	}

	if !(f > 0 && f < sampleRate/2) {
		return fmt.Errorf("%w: frequency %v Hz outside (0, %v)", ErrInvalidParameter, f, sampleRate/2)
	}

	return nil
}
