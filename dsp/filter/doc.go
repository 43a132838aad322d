// Package filter holds the vocabulary shared by the filter designers and
// runtimes: the design [Spec], the [Kind] and [Family] enums, the
// [Filter] interface and the error kinds every operation wraps.
//
// Designers live in sub-packages:
//
//   - dsp/filter/fir: windowed-sinc FIR design and convolution
//   - dsp/filter/prototype: normalized analog prototypes
//   - dsp/filter/design: IIR design to biquad cascades and cookbook EQ
//   - dsp/filter/biquad: second-order section runtime
//   - dsp/filter/analysis: frequency, phase and group delay
//   - dsp/filter/chain: composition of filters in series
package filter
