package filter

import (
	"fmt"
	"strings"
)

// Kind selects the response shape of a design.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
	Bandpass
	Bandstop
	Peaking
	LowShelf
	HighShelf
	Notch
)

func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	case Peaking:
		return "peaking"
	case LowShelf:
		return "lowshelf"
	case HighShelf:
		return "highshelf"
	case Notch:
		return "notch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsBand reports whether the kind is specified by two edge frequencies.
func (k Kind) IsBand() bool {
	return k == Bandpass || k == Bandstop
}

// ParseKind maps a textual kind tag to a Kind. Matching is case
// insensitive and accepts the common short aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "lp", "low":
		return Lowpass, nil
	case "highpass", "hp", "high":
		return Highpass, nil
	case "bandpass", "bp", "band":
		return Bandpass, nil
	case "bandstop", "bs", "stop":
		return Bandstop, nil
	case "peaking", "peak", "bell":
		return Peaking, nil
	case "lowshelf", "ls":
		return LowShelf, nil
	case "highshelf", "hs":
		return HighShelf, nil
	case "notch":
		return Notch, nil
	default:
		return 0, fmt.Errorf("%w: kind %q", ErrUnsupportedFamily, s)
	}
}

// Family selects the analog prototype of an IIR design.
type Family int

const (
	Butterworth Family = iota
	Chebyshev1
	Chebyshev2
	Elliptic
	Bessel
)

func (f Family) String() string {
	switch f {
	case Butterworth:
		return "butterworth"
	case Chebyshev1:
		return "chebyshev1"
	case Chebyshev2:
		return "chebyshev2"
	case Elliptic:
		return "elliptic"
	case Bessel:
		return "bessel"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Valid reports whether f is one of the defined families.
func (f Family) Valid() bool {
	return f >= Butterworth && f <= Bessel
}

// ParseFamily maps a textual family tag to a Family.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butterworth", "butter":
		return Butterworth, nil
	case "chebyshev1", "cheby1", "chebyshev":
		return Chebyshev1, nil
	case "chebyshev2", "cheby2":
		return Chebyshev2, nil
	case "elliptic", "ellip", "cauer":
		return Elliptic, nil
	case "bessel", "thomson":
		return Bessel, nil
	default:
		return 0, fmt.Errorf("%w: family %q", ErrUnsupportedFamily, s)
	}
}
