package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// minBlockSize is the smallest automatic input block for overlap-add.
const minBlockSize = 256

// OverlapAdd implements FFT-based convolution using the overlap-add method.
// The input is cut into blocks, each block is convolved with the kernel by
// spectral multiplication and the block results are summed at their offsets.
type OverlapAdd struct {
	kernelFFT []complex128

	kernelLen int
	blockSize int
	fftSize   int // power of two >= blockSize + kernelLen - 1

	plan *algofft.Plan[complex128]

	scratch []complex128
}

// NewOverlapAdd creates a new overlap-add convolver for the given kernel.
// If blockSize is 0, a size is chosen from the kernel length.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	kernelLen := len(kernel)

	if blockSize <= 0 {
		blockSize = max(nextPowerOf2(kernelLen), minBlockSize)
	}

	fftSize := nextPowerOf2(blockSize + kernelLen - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: kernelLen,
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		scratch:   make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}

	if err := plan.Forward(oa.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return oa, nil
}

// BlockSize returns the input block size.
func (oa *OverlapAdd) BlockSize() int { return oa.blockSize }

// FFTSize returns the FFT size used internally.
func (oa *OverlapAdd) FFTSize() int { return oa.fftSize }

// KernelLen returns the kernel length.
func (oa *OverlapAdd) KernelLen() int { return oa.kernelLen }

// Process convolves the input signal with the kernel and returns the full
// linear convolution of length len(input) + KernelLen() - 1.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	output := make([]float64, len(input)+oa.kernelLen-1)
	if err := oa.ProcessTo(output, input); err != nil {
		return nil, err
	}

	return output, nil
}

// ProcessTo convolves input into output, which must have length
// len(input) + KernelLen() - 1.
func (oa *OverlapAdd) ProcessTo(output, input []float64) error {
	want := len(input) + oa.kernelLen - 1
	if len(output) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, len(output))
	}

	clear(output)

	for start := 0; start < len(input); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))

		clear(oa.scratch)

		for i, v := range input[start:end] {
			oa.scratch[i] = complex(v, 0)
		}

		if err := oa.plan.Forward(oa.scratch, oa.scratch); err != nil {
			return fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		for i := range oa.scratch {
			oa.scratch[i] *= oa.kernelFFT[i]
		}

		if err := oa.plan.Inverse(oa.scratch, oa.scratch); err != nil {
			return fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		n := end - start + oa.kernelLen - 1
		for i := 0; i < n && start+i < len(output); i++ {
			output[start+i] += real(oa.scratch[i])
		}
	}

	return nil
}

// OverlapAddConvolve performs one-shot overlap-add convolution.
func OverlapAddConvolve(signal, kernel []float64) ([]float64, error) {
	oa, err := NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, err
	}

	return oa.Process(signal)
}
