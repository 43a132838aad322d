package conv

import (
	"errors"

	"github.com/tphakala/simd/f64"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// DirectThreshold is the kernel length up to which Convolve uses direct
// convolution.
const DirectThreshold = 64

// Mode specifies the output window of a convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input,
	// centered on the full result.
	ModeSame

	// ModeCausal returns the first len(a) samples of the full result, the
	// output of a causal filter run over a.
	ModeCausal

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// Method selects the convolution algorithm.
type Method int

const (
	// MethodAuto picks direct convolution for kernels up to
	// DirectThreshold taps and overlap-add above.
	MethodAuto Method = iota
	MethodDirect
	MethodFFT
)

func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodFFT:
		return "fft"
	default:
		return "auto"
	}
}

// Direct performs direct time-domain linear convolution of signal a with
// kernel b. Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)

	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated
// destination of length len(a) + len(b) - 1.
//
// Each output sample is one dot product of the reversed kernel with a
// window of the zero-padded signal:
//
//	y[n] = sum_k b[k] * a[n-k]
func DirectTo(dst, a, b []float64) {
	m := len(b)

	rev := make([]float64, m)
	for i, v := range b {
		rev[m-1-i] = v
	}

	padded := make([]float64, len(a)+2*(m-1))
	copy(padded[m-1:], a)

	for n := range dst {
		dst[n] = f64.DotProduct(rev, padded[n:n+m])
	}
}

// Convolve performs linear convolution with automatic algorithm selection.
func Convolve(a, b []float64) ([]float64, error) {
	return ConvolveWith(a, b, MethodAuto)
}

// ConvolveWith performs linear convolution of signal a with kernel b
// using the requested method.
func ConvolveWith(a, b []float64, method Method) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	switch method {
	case MethodDirect:
		return Direct(a, b)
	case MethodFFT:
		return OverlapAddConvolve(a, b)
	default:
		if len(b) <= DirectThreshold {
			return Direct(a, b)
		}

		return OverlapAddConvolve(a, b)
	}
}

// ConvolveMode performs convolution with specified output mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	return Trim(full, len(a), len(b), mode), nil
}

// Trim extracts the requested window of a full convolution result of
// inputs with lengths lenA and lenB.
func Trim(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeCausal:
		return full[:lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}

		return full[lenA-1 : lenB]
	default:
		return full
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
