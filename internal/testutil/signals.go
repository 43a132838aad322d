// Package testutil provides deterministic test signals, block splitting
// and tolerance assertions shared by the filter package tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine returns length samples of amplitude*sin(2 pi f n/fs).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	addSine(out, freqHz, sampleRate, amplitude)

	return out
}

// MultiTone sums unit amplitude sines at freqsHz.
func MultiTone(freqsHz []float64, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for _, f := range freqsHz {
		addSine(out, f, sampleRate, 1)
	}

	return out
}

func addSine(dst []float64, freqHz, sampleRate, amplitude float64) {
	w := 2 * math.Pi * freqHz / sampleRate
	for n := range dst {
		dst[n] += amplitude * math.Sin(w*float64(n))
	}
}

// DeterministicNoise returns uniform white noise in [-amplitude,
// amplitude). The same seed always yields the same sequence.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5eed))

	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit impulse at pos. An out of range pos yields all
// zeros.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var energy float64
	for _, v := range x {
		energy += v * v
	}

	return math.Sqrt(energy / float64(len(x)))
}
