// Package biquad provides the second-order section (biquad) runtime.
//
// [Coefficients] describe one section with a0 normalized to 1. A
// [Cascade] is an immutable, validated series of sections bound to a
// sample rate; every section is checked against the stability triangle
// when the cascade is built. Filtering uses Direct Form II Transposed.
//
// [Apply] filters a block, optionally threading a caller-owned [State]
// so that consecutive blocks produce the same output as one long block.
// [ApplyZeroPhase] runs the cascade forward and backward over a whole
// buffer.
//
// Coefficient design (Butterworth, Chebyshev, cookbook EQ, etc.) lives
// in dsp/filter/design.
package biquad
