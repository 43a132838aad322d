// Package design turns a [filter.Spec] into biquad coefficients.
//
// [IIR] follows the classical analog route: a normalized prototype from
// dsp/filter/prototype is frequency transformed ([LowpassToLowpass],
// [LowpassToHighpass], [LowpassToBandpass], [LowpassToBandstop]), mapped
// to the z-plane with [Bilinear] after [Prewarp] and factored by
// [Sections] into a stable, deterministically ordered cascade.
//
// The RBJ cookbook designers ([Peaking], [LowShelf], [HighShelf],
// [Notch] and the shelf slope forms) return single sections.
//
// Every designer validates its parameters and the stability of the
// result; nothing is clamped.
package design
