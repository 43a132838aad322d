// Command filterinfo designs a filter and prints its frequency response.
//
// Usage:
//
//	filterinfo [flags]
//
// The table lists magnitude, wrapped phase and group delay on a uniform
// grid from DC to Nyquist, or at the frequencies given with -at.
//
// Examples:
//
//	filterinfo -kind lowpass -cutoff 1000
//	filterinfo -kind bandpass -cutoff 500,2000 -family ellip -order 4
//	filterinfo -kind notch -cutoff 60 -q 30 -at 50,60,70,1000
//	filterinfo -fir -kind lowpass -cutoff 4000 -transition 500 -stopband 60
//	filterinfo -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-filter/dsp/filter"
	"github.com/cwbudde/algo-filter/dsp/filter/analysis"
	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/design"
	"github.com/cwbudde/algo-filter/dsp/filter/fir"
	"github.com/cwbudde/algo-filter/dsp/window"
)

type options struct {
	kind       string
	family     string
	cutoff     string
	at         string
	win        string
	sampleRate float64
	order      int
	ripple     float64
	stopband   float64
	q          float64
	gain       float64
	slope      float64
	taps       int
	transition float64
	beta       float64
	points     int
	useFIR     bool
	list       bool
	verbose    bool
}

func main() {
	log.SetFlags(0)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if opts.list {
		return printList(out)
	}

	spec, err := buildSpec(opts)
	if err != nil {
		return err
	}

	f, err := designFilter(spec, opts)
	if err != nil {
		return err
	}

	freqs, err := frequencies(opts)
	if err != nil {
		return err
	}

	resp, err := analysis.Analyze(f, freqs)
	if err != nil {
		return err
	}

	return printResponse(out, f, resp)
}

func parseFlags(args []string) (options, error) {
	var o options

	fs := flag.NewFlagSet("filterinfo", flag.ContinueOnError)
	fs.StringVar(&o.kind, "kind", "lowpass", "response kind (see -list)")
	fs.StringVar(&o.family, "family", "butterworth", "IIR family (see -list)")
	fs.StringVar(&o.cutoff, "cutoff", "1000", "cutoff in Hz, or low,high for band kinds")
	fs.StringVar(&o.at, "at", "", "comma separated frequencies to evaluate instead of a grid")
	fs.StringVar(&o.win, "window", "kaiser", "FIR window (see -list)")
	fs.Float64Var(&o.sampleRate, "fs", 48000, "sample rate in Hz")
	fs.IntVar(&o.order, "order", 4, "IIR prototype order")
	fs.Float64Var(&o.ripple, "ripple", 1, "passband ripple in dB (chebyshev1, elliptic)")
	fs.Float64Var(&o.stopband, "stopband", 40, "stopband attenuation in dB (chebyshev2, elliptic, Kaiser FIR)")
	fs.Float64Var(&o.q, "q", design.DefaultQ, "quality factor (peaking, shelves, notch)")
	fs.Float64Var(&o.gain, "gain", 0, "gain in dB (peaking, shelves)")
	fs.Float64Var(&o.slope, "slope", 0, "shelf slope; 0 uses -q")
	fs.IntVar(&o.taps, "taps", 0, "FIR length; 0 derives it from -transition or uses the default")
	fs.Float64Var(&o.transition, "transition", 0, "FIR transition width in Hz")
	fs.Float64Var(&o.beta, "beta", math.NaN(), "Kaiser beta; unset derives it from -stopband")
	fs.IntVar(&o.points, "points", 17, "grid points from DC to Nyquist")
	fs.BoolVar(&o.useFIR, "fir", false, "design a windowed-sinc FIR instead of an IIR")
	fs.BoolVar(&o.list, "list", false, "list kinds, families and windows")
	fs.BoolVar(&o.verbose, "v", false, "print design details")
	fs.Usage = func() {
		w := fs.Output()
		fmt.Fprintf(w, "Usage: filterinfo [flags]\n\n")
		fmt.Fprintf(w, "Designs a filter and prints magnitude, phase and group delay.\n\n")
		fmt.Fprintf(w, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  filterinfo -kind lowpass -cutoff 1000\n")
		fmt.Fprintf(w, "  filterinfo -kind bandpass -cutoff 500,2000 -family ellip -order 4\n")
		fmt.Fprintf(w, "  filterinfo -kind notch -cutoff 60 -q 30 -at 50,60,70,1000\n")
		fmt.Fprintf(w, "  filterinfo -fir -cutoff 4000 -transition 500 -stopband 60\n")
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	return o, nil
}

func buildSpec(o options) (filter.Spec, error) {
	kind, err := filter.ParseKind(o.kind)
	if err != nil {
		return filter.Spec{}, err
	}

	cutoff, err := parseList(o.cutoff)
	if err != nil {
		return filter.Spec{}, fmt.Errorf("-cutoff: %w", err)
	}

	spec := filter.Spec{
		Kind:         kind,
		Cutoff:       cutoff,
		SampleRate:   o.sampleRate,
		Order:        o.order,
		RippleDB:     o.ripple,
		StopbandDB:   o.stopband,
		Q:            o.q,
		GainDB:       o.gain,
		ShelfSlope:   o.slope,
		NumTaps:      o.taps,
		TransitionHz: o.transition,
	}

	if !o.useFIR {
		spec.Family, err = filter.ParseFamily(o.family)
		if err != nil {
			return filter.Spec{}, err
		}
	}

	return spec, nil
}

func designFilter(spec filter.Spec, o options) (filter.Filter, error) {
	if !o.useFIR {
		c, err := design.IIR(spec)
		if err != nil {
			return nil, err
		}

		if o.verbose {
			logCascade(c)
		}

		return c, nil
	}

	wt, err := window.Parse(o.win)
	if err != nil {
		return nil, err
	}

	firOpts := []fir.Option{fir.WithWindow(wt)}
	if !math.IsNaN(o.beta) {
		firOpts = append(firOpts, fir.WithKaiserBeta(o.beta))
	}

	f, err := fir.Design(spec, firOpts...)
	if err != nil {
		return nil, err
	}

	if o.verbose {
		log.Printf("FIR: %d taps, %s, %s window, delay %.1f samples",
			f.Len(), f.PhaseType(), wt, f.GroupDelay())
	}

	return f, nil
}

func logCascade(c *biquad.Cascade) {
	log.Printf("IIR: order %d, %d sections", c.Order(), c.NumSections())

	for i, s := range c.Sections() {
		log.Printf("  section %d: b=[%.9g %.9g %.9g] a=[1 %.9g %.9g] r=%.6f",
			i, s.B0, s.B1, s.B2, s.A1, s.A2, s.MaxPoleRadius())
	}
}

func frequencies(o options) ([]float64, error) {
	if o.at == "" {
		return analysis.Grid(o.sampleRate, o.points)
	}

	freqs, err := parseList(o.at)
	if err != nil {
		return nil, fmt.Errorf("-at: %w", err)
	}

	return freqs, nil
}

func parseList(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", field)
		}

		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, errors.New("no values")
	}

	return out, nil
}

func printResponse(out io.Writer, f filter.Filter, r *analysis.Response) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tMagnitude [dB]\tPhase [rad]\tGroup delay [samples]\t\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, freq := range r.FreqsHz {
		if _, err := fmt.Fprintf(tw, "%.1f\t%s\t%.4f\t%.3f\t\n",
			freq, formatDB(r.MagnitudeDB[i]), r.Phase[i], r.GroupDelay[i]); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	_, err := fmt.Fprintf(out, "sample rate %.0f Hz\n", f.SampleRate())

	return err
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}

	return strconv.FormatFloat(v, 'f', 2, 64)
}

func printList(out io.Writer) error {
	kinds := []filter.Kind{
		filter.Lowpass, filter.Highpass, filter.Bandpass, filter.Bandstop,
		filter.Peaking, filter.LowShelf, filter.HighShelf, filter.Notch,
	}
	families := []filter.Family{
		filter.Butterworth, filter.Chebyshev1, filter.Chebyshev2, filter.Elliptic, filter.Bessel,
	}

	if err := printNames(out, "kinds", kinds); err != nil {
		return err
	}

	if err := printNames(out, "families", families); err != nil {
		return err
	}

	return printNames(out, "windows", window.Types)
}

func printNames[T fmt.Stringer](out io.Writer, title string, values []T) error {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}

	_, err := fmt.Fprintf(out, "%s: %s\n", title, strings.Join(names, ", "))

	return err
}
