package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/fir"
)

// Grid returns n frequencies evenly spaced over [0, fs/2], both ends
// included.
func Grid(sampleRate float64, n int) ([]float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", filter.ErrInvalidParameter, sampleRate)
	}

	if n < 2 {
		return nil, fmt.Errorf("%w: grid needs at least 2 points, got %d", filter.ErrInvalidParameter, n)
	}

	return floats.Span(make([]float64, n), 0, sampleRate/2), nil
}

// FIRUniform evaluates the response of f on Grid(f.SampleRate(), n) with
// one real FFT of size 2(n-1). Taps longer than the FFT are folded modulo
// its size, which leaves the response at the grid points unchanged.
func FIRUniform(f *fir.Filter, n int) ([]float64, []complex128, error) {
	if f == nil {
		return nil, nil, fmt.Errorf("%w: nil FIR filter", filter.ErrInvalidFilter)
	}

	freqs, err := Grid(f.SampleRate(), n)
	if err != nil {
		return nil, nil, err
	}

	size := 2 * (n - 1)

	seq := make([]float64, size)
	for i, v := range f.Taps() {
		seq[i%size] += v
	}

	h := fourier.NewFFT(size).Coefficients(nil, seq)

	return freqs, h, nil
}
