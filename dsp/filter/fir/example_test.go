package fir_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/fir"
)

func ExampleApplyBlock() {
	// 3-tap moving average filter.
	f, err := fir.New([]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, 48000)
	if err != nil {
		panic(err)
	}

	state := fir.NewState(f)

	for _, block := range [][]float64{{0, 1, 2}, {3, 3, 3}} {
		y, _ := fir.ApplyBlock(f, block, state)
		fmt.Printf("%.4f\n", y)
	}
	// Output:
	// [0.0000 0.3333 1.0000]
	// [2.0000 2.6667 3.0000]
}

func ExampleDesign() {
	f, err := fir.Design(filter.Spec{
		Kind:         filter.Lowpass,
		Cutoff:       []float64{4000},
		SampleRate:   48000,
		StopbandDB:   60,
		TransitionHz: 500,
	})
	if err != nil {
		panic(err)
	}

	fmt.Println("taps:", f.Len(), f.PhaseType())
	fmt.Printf("delay: %.1f samples\n", f.GroupDelay())
	fmt.Printf("DC gain: %.6f\n", cmplx.Abs(f.ResponseAt(0)))
	// Output:
	// taps: 349 type I
	// delay: 174.0 samples
	// DC gain: 1.000000
}

func ExampleApply_centered() {
	f, _ := fir.New([]float64{0.25, 0.5, 0.25}, 48000)

	centered, _ := fir.Apply(f, []float64{0, 0, 1, 0, 0})
	causal, _ := fir.Apply(f, []float64{0, 0, 1, 0, 0}, fir.WithAlignment(fir.AlignCausal))

	fmt.Println(centered)
	fmt.Println(causal)
	// Output:
	// [0 0.25 0.5 0.25 0]
	// [0 0 0.25 0.5 0.25]
}
