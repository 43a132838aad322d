package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeKaiser
)

// Types lists every supported window in declaration order.
var Types = []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeKaiser}

// Cosine-sum terms over x in [0, 1]: w(x) = sum c[k] cos(2 pi k x).
var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	case TypeKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Parse maps a window tag to a Type.
func Parse(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangular", "rect", "boxcar":
		return TypeRectangular, nil
	case "hann", "hanning":
		return TypeHann, nil
	case "hamming":
		return TypeHamming, nil
	case "blackman":
		return TypeBlackman, nil
	case "kaiser":
		return TypeKaiser, nil
	default:
		return 0, fmt.Errorf("%w: window %q", filter.ErrUnsupportedFamily, name)
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	beta     float64
	periodic bool
}

// WithBeta sets the Kaiser shape parameter. Other windows ignore it.
func WithBeta(beta float64) Option {
	return func(c *config) {
		c.beta = beta
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. Windows are
// symmetric unless WithPeriodic is given.
func Generate(t Type, length int, opts ...Option) ([]float64, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: window length %d", filter.ErrInvalidParameter, length)
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if t == TypeKaiser && (cfg.beta < 0 || math.IsNaN(cfg.beta) || math.IsInf(cfg.beta, 0)) {
		return nil, fmt.Errorf("%w: kaiser beta %v", filter.ErrInvalidParameter, cfg.beta)
	}

	var coeffs []float64

	switch t {
	case TypeRectangular:
	case TypeHann:
		coeffs = hannCoeffs
	case TypeHamming:
		coeffs = hammingCoeffs
	case TypeBlackman:
		coeffs = blackmanCoeffs
	case TypeKaiser:
	default:
		return nil, fmt.Errorf("%w: window %v", filter.ErrUnsupportedFamily, t)
	}

	out := make([]float64, length)
	i0Beta := BesselI0(cfg.beta)

	for i := range out {
		x := samplePosition(i, length, cfg.periodic)

		switch t {
		case TypeRectangular:
			out[i] = 1
		case TypeKaiser:
			out[i] = kaiserAt(x, cfg.beta, i0Beta)
		default:
			out[i] = cosineFromCoeffs(x, coeffs)
		}
	}

	return out, nil
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) error {
	if len(buf) == 0 {
		return nil
	}

	coeffs, err := Generate(t, len(buf), opts...)
	if err != nil {
		return err
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, fmt.Errorf("%w: empty window", filter.ErrInvalidParameter)
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, fmt.Errorf("%w: window coherent gain is zero", filter.ErrInvalidParameter)
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta, i0Beta float64) float64 {
	if beta == 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return BesselI0(beta*term) / i0Beta
}
