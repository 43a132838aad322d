// Package analysis evaluates the frequency-domain behavior of designed
// filters: complex response, magnitude in dB, wrapped and unwrapped phase
// and group delay.
//
// Every function accepts a filter.Filter, so FIR filters, biquad cascades
// and chains are analyzed the same way. Frequencies are in Hz and must lie
// in [0, fs/2].
package analysis
