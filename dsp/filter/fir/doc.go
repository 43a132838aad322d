// Package fir designs and applies finite impulse response filters.
//
// [Design] builds linear-phase windowed-sinc filters for the lowpass,
// highpass, bandpass, bandstop and notch kinds. [New] wraps caller
// supplied taps. A [Filter] is immutable and can be shared between
// goroutines.
//
// [Apply] filters a whole buffer by linear convolution, either directly
// or by FFT overlap-add for long filters. For block processing,
// [NewState] and [ApplyBlock] keep a circular delay line between calls and
// produce the same samples as a causal [Apply] over the concatenated
// input.
package fir
