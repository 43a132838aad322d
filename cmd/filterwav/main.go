// Command filterwav runs a WAV file through a chain of filters.
//
// Usage:
//
//	filterwav [options] input.wav output.wav
//
// The default chain removes mains hum with a 60 Hz notch, adds a low
// shelf and a presence peak. Setting a stage's gain to zero (or the notch
// frequency to zero) drops that stage. -lowpass appends a linear-phase
// FIR lowpass.
//
// Examples:
//
//	filterwav voice.wav voice_clean.wav
//	filterwav -notch 50 -shelf-gain 0 in.wav out.wav
//	filterwav -lowpass 8000 -v in.wav out.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/chain"
	"github.com/cwbudde/algo-filter/dsp/filter/design"
	"github.com/cwbudde/algo-filter/dsp/filter/fir"
)

const (
	// Frames read and filtered per iteration.
	bufferSize = 16384

	minRequiredArgs = 2
)

// chainConfig describes the stages of the processing chain. Frequencies
// are in Hz, gains in dB.
type chainConfig struct {
	notchHz    float64
	notchQ     float64
	shelfHz    float64
	shelfGain  float64
	shelfSlope float64
	peakHz     float64
	peakGain   float64
	peakQ      float64
	lowpassHz  float64
	lowpassDB  float64
}

func defaultChainConfig() chainConfig {
	return chainConfig{
		notchHz:    60,
		notchQ:     30,
		shelfHz:    120,
		shelfGain:  3,
		shelfSlope: 1,
		peakHz:     3500,
		peakGain:   2.5,
		peakQ:      1.2,
		lowpassDB:  60,
	}
}

func main() {
	log.SetFlags(0)

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg := defaultChainConfig()

	fs := flag.NewFlagSet("filterwav", flag.ContinueOnError)
	fs.Float64Var(&cfg.notchHz, "notch", cfg.notchHz, "Notch frequency in Hz (0 disables)")
	fs.Float64Var(&cfg.notchQ, "notch-q", cfg.notchQ, "Notch quality factor")
	fs.Float64Var(&cfg.shelfHz, "shelf", cfg.shelfHz, "Low shelf corner in Hz")
	fs.Float64Var(&cfg.shelfGain, "shelf-gain", cfg.shelfGain, "Low shelf gain in dB (0 disables)")
	fs.Float64Var(&cfg.shelfSlope, "shelf-slope", cfg.shelfSlope, "Low shelf slope")
	fs.Float64Var(&cfg.peakHz, "peak", cfg.peakHz, "Presence peak center in Hz")
	fs.Float64Var(&cfg.peakGain, "peak-gain", cfg.peakGain, "Presence peak gain in dB (0 disables)")
	fs.Float64Var(&cfg.peakQ, "peak-q", cfg.peakQ, "Presence peak quality factor")
	fs.Float64Var(&cfg.lowpassHz, "lowpass", 0, "FIR lowpass cutoff in Hz (0 disables)")
	fs.Float64Var(&cfg.lowpassDB, "lowpass-atten", cfg.lowpassDB, "FIR lowpass stopband attenuation in dB")
	verbose := fs.Bool("v", false, "Verbose output")
	fs.Usage = func() {
		w := fs.Output()
		fmt.Fprintf(w, "Usage: filterwav [options] input.wav output.wav\n\n")
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  filterwav voice.wav voice_clean.wav\n")
		fmt.Fprintf(w, "  filterwav -notch 50 -shelf-gain 0 in.wav out.wav\n")
		fmt.Fprintf(w, "  filterwav -lowpass 8000 -v in.wav out.wav\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return errors.New("insufficient arguments")
	}

	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	input, err := openWAVInput(inputPath, *verbose)
	if err != nil {
		return err
	}
	defer func() { _ = input.Close() }()

	c, err := buildChain(cfg, float64(input.rate))
	if err != nil {
		return err
	}

	if *verbose {
		logChain(c)
	}

	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return err
	}

	start := time.Now()

	frames, err := process(input, output, c)
	if err != nil {
		_ = output.Close()
		return err
	}

	if err := output.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}

	fmt.Printf("Filtered %s -> %s (%d frames, %d channels, %d stages) in %v\n",
		inputPath, outputPath, frames, input.channels, c.Len(), time.Since(start).Round(time.Millisecond))

	return nil
}

// buildChain assembles the enabled stages in processing order.
func buildChain(cfg chainConfig, sampleRate float64) (*chain.Chain, error) {
	var stages []filter.Filter

	add := func(name string, build func() (biquad.Coefficients, error)) error {
		c, err := build()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		cascade, err := biquad.NewCascade([]biquad.Coefficients{c}, sampleRate)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		stages = append(stages, cascade)

		return nil
	}

	if cfg.notchHz != 0 {
		if err := add("notch", func() (biquad.Coefficients, error) {
			return design.Notch(cfg.notchHz, cfg.notchQ, sampleRate)
		}); err != nil {
			return nil, err
		}
	}

	if cfg.shelfGain != 0 {
		if err := add("low shelf", func() (biquad.Coefficients, error) {
			return design.LowShelfSlope(cfg.shelfHz, cfg.shelfGain, cfg.shelfSlope, sampleRate)
		}); err != nil {
			return nil, err
		}
	}

	if cfg.peakGain != 0 {
		if err := add("peak", func() (biquad.Coefficients, error) {
			return design.Peaking(cfg.peakHz, cfg.peakGain, cfg.peakQ, sampleRate)
		}); err != nil {
			return nil, err
		}
	}

	if cfg.lowpassHz != 0 {
		lp, err := fir.Design(filter.Spec{
			Kind:         filter.Lowpass,
			Cutoff:       []float64{cfg.lowpassHz},
			SampleRate:   sampleRate,
			StopbandDB:   cfg.lowpassDB,
			TransitionHz: cfg.lowpassHz / 10,
		})
		if err != nil {
			return nil, fmt.Errorf("lowpass: %w", err)
		}

		stages = append(stages, lp)
	}

	if len(stages) == 0 {
		return nil, errors.New("all stages disabled")
	}

	return chain.Compose(stages...)
}

func logChain(c *chain.Chain) {
	for i, s := range c.Stages() {
		switch st := s.(type) {
		case *biquad.Cascade:
			sec := st.Section(0)
			log.Printf("Stage %d: biquad b=[%.6g %.6g %.6g] a=[1 %.6g %.6g]", i, sec.B0, sec.B1, sec.B2, sec.A1, sec.A2)
		case *fir.Filter:
			log.Printf("Stage %d: FIR %d taps, %s", i, st.Len(), st.PhaseType())
		}
	}

	for _, f := range []float64{60, 120, 1000, 3500, 10000} {
		if f < c.SampleRate()/2 {
			log.Printf("Response at %5.0f Hz: %6.2f dB", f, c.MagnitudeDB(f))
		}
	}
}

// process filters the input block by block and returns the number of
// frames written. Each channel runs through its own chain stream.
func process(input *wavInputInfo, output *wavOutputWriter, c *chain.Chain) (int64, error) {
	streams, err := newChannelStreams(c, input.channels)
	if err != nil {
		return 0, err
	}

	buffers := newProcessBuffers(input.channels, input.bitDepth, input.format)

	var frames int64

	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return frames, fmt.Errorf("failed to read input: %w", err)
		}

		if n == 0 {
			break
		}

		numFrames := n / input.channels
		buffers.deinterleave(n)

		filtered, err := filterChannels(streams, buffers.channelBufs, numFrames)
		if err != nil {
			return frames, err
		}

		if err := output.WriteSamples(buffers.interleave(filtered, numFrames)); err != nil {
			return frames, fmt.Errorf("failed to write output: %w", err)
		}

		frames += int64(numFrames)
		input.progress.reportIfNeeded(frames)
	}

	return frames, nil
}
