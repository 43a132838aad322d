package biquad_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for _, x := range []float64{1, 0, 0, 0} {
		fmt.Printf("%.4f ", s.ProcessSample(x))
	}
	fmt.Println()
	// Output:
	// 0.2500 0.5500 0.3500 0.0480
}

func ExampleApply() {
	c, err := biquad.NewCascade([]biquad.Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}, 48000)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("order %d, %d sections\n", c.Order(), c.NumSections())

	// A step fed two samples at a time continues where the last block
	// stopped.
	state := biquad.NewState(c)
	for range 2 {
		y, _ := biquad.Apply(c, []float64{1, 1}, state)
		fmt.Printf("%.6f %.6f\n", y[0], y[1])
	}
	// Output:
	// order 4, 2 sections
	// 0.025000 0.142500
	// 0.368750 0.599925
}

func ExampleNewCascade_unstable() {
	_, err := biquad.NewCascade([]biquad.Coefficients{{B0: 1, A1: -1.5, A2: 1.1}}, 48000)
	fmt.Println(errors.Is(err, filter.ErrUnstableDesign))
	// Output:
	// true
}

func ExampleCoefficients_MagnitudeDB() {
	c := biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	}

	for _, freq := range []float64{100, 1000, 10000, 20000} {
		fmt.Printf("%6.0f Hz: %+.2f dB\n", freq, c.MagnitudeDB(freq, 48000))
	}
	// Output:
	//    100 Hz: +1.51 dB
	//   1000 Hz: +1.47 dB
	//  10000 Hz: -3.39 dB
	//  20000 Hz: -25.07 dB
}

func ExamplePoleZeroPairs() {
	coeffs := []biquad.Coefficients{
		{B0: 1, B1: -0.6, B2: 0.25, A1: -1.4, A2: 0.53},
		{B0: 1, B1: -0.2, A1: -0.8},
	}

	for i, pair := range biquad.PoleZeroPairs(coeffs) {
		fmt.Printf("section %d: poles %.2f %.2f, zeros %.2f %.2f\n",
			i, pair.Poles[0], pair.Poles[1], pair.Zeros[0], pair.Zeros[1])
	}
	// Output:
	// section 0: poles (0.70+0.20i) (0.70-0.20i), zeros (0.30+0.40i) (0.30-0.40i)
	// section 1: poles (0.80+0.00i) (0.00+0.00i), zeros (0.20+0.00i) (0.00+0.00i)
}

func ExampleApplyZeroPhase() {
	c, _ := biquad.NewCascade([]biquad.Coefficients{{B0: 0.5, B1: 0.5}}, 48000)

	// (1 + z^-1)/2 run forward and backward is the symmetric kernel
	// [0.25 0.5 0.25] centered on each sample.
	y, _ := biquad.ApplyZeroPhase(c, []float64{0, 0, 1, 0, 0})
	fmt.Println(y)
	// Output:
	// [0 0.25 0.5 0.25 0]
}
