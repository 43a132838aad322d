// Package window generates the tapering windows used by windowed-sinc FIR
// design, together with the Kaiser design formulas (beta and length from
// a stopband attenuation target).
package window
