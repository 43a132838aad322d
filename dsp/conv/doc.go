// Package conv provides the linear convolution engines behind FIR
// filtering.
//
// Two strategies are offered:
//
//   - Direct convolution: O(N*M) time-domain dot products, best for short kernels
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//
// [Convolve] selects between them by kernel length; [ConvolveMode] trims
// the full result to one of the usual output windows.
//
//	full, err := conv.Convolve(signal, kernel)
//	same, err := conv.ConvolveMode(signal, kernel, conv.ModeSame)
//
// For repeated convolution with the same kernel, create a reusable
// convolver with [NewOverlapAdd] to avoid repeated FFT plan creation.
package conv
