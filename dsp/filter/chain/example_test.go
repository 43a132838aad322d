package chain_test

import (
	"fmt"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/chain"
	"github.com/cwbudde/algo-filter/dsp/filter/design"
)

func ExampleCompose() {
	const fs = 48000

	hum, _ := design.Notch(60, 30, fs)
	presence, _ := design.Peaking(3500, 3, 1.2, fs)

	notch, _ := biquad.NewCascade([]biquad.Coefficients{hum}, fs)
	peak, _ := biquad.NewCascade([]biquad.Coefficients{presence}, fs)

	lowpass, _ := design.IIR(filter.Spec{
		Kind: filter.Lowpass, Family: filter.Butterworth, Order: 2,
		Cutoff: []float64{18000}, SampleRate: fs,
	})

	c, err := chain.Compose(notch, peak, lowpass)
	if err != nil {
		panic(err)
	}

	fmt.Println("stages:", c.Len())
	fmt.Printf("60 Hz below -20 dB: %v\n", c.MagnitudeDB(60) < -20)
	// Output:
	// stages: 3
	// 60 Hz below -20 dB: true
}
