package fir

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustNew(t *testing.T, taps []float64) *Filter {
	t.Helper()

	f, err := New(taps, 48000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return f
}

func TestNew(t *testing.T) {
	taps := []float64{0.25, 0.5, 0.25}
	f := mustNew(t, taps)

	if f.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", f.Len())
	}

	if f.SampleRate() != 48000 {
		t.Fatalf("SampleRate: got %v", f.SampleRate())
	}

	got := f.Taps()
	for i := range taps {
		if got[i] != taps[i] {
			t.Errorf("taps[%d]: got %v, want %v", i, got[i], taps[i])
		}
	}

	// Verify it's a copy in both directions.
	taps[0] = 999
	got[1] = 999

	if f.taps[0] == 999 || f.taps[1] == 999 {
		t.Error("New or Taps did not copy")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		taps []float64
		rate float64
		want error
	}{
		{"empty", nil, 48000, filter.ErrInvalidFilter},
		{"zero rate", []float64{1}, 0, filter.ErrInvalidParameter},
		{"NaN rate", []float64{1}, math.NaN(), filter.ErrInvalidParameter},
		{"NaN tap", []float64{1, math.NaN()}, 48000, filter.ErrInvalidParameter},
		{"Inf tap", []float64{math.Inf(-1)}, 48000, filter.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.taps, tt.rate); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPhaseType(t *testing.T) {
	tests := []struct {
		name  string
		taps  []float64
		want  PhaseType
		delay float64
	}{
		{"single tap", []float64{2}, TypeI, 0},
		{"odd symmetric", []float64{0.1, 0.5, 0.1}, TypeI, 1},
		{"even symmetric", []float64{0.2, 0.3, 0.3, 0.2}, TypeII, 1.5},
		{"asymmetric", []float64{1, 0.5}, Asymmetric, 0},
		{"nearly symmetric", []float64{0.1, 0.5, 0.1 + 1e-15}, TypeI, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustNew(t, tt.taps)
			if got := f.PhaseType(); got != tt.want {
				t.Fatalf("PhaseType: got %v, want %v", got, tt.want)
			}

			if f.IsLinearPhase() != (tt.want != Asymmetric) {
				t.Fatalf("IsLinearPhase disagrees with %v", tt.want)
			}

			if tt.want != Asymmetric && !almostEqual(f.GroupDelay(), tt.delay, eps) {
				t.Fatalf("GroupDelay: got %v, want %v", f.GroupDelay(), tt.delay)
			}
		})
	}
}

func TestGroupDelayAsymmetric(t *testing.T) {
	// h = [1, 0.5]: tau(0) = 0.5/1.5.
	f := mustNew(t, []float64{1, 0.5})
	if got := f.GroupDelay(); !almostEqual(got, 1.0/3, eps) {
		t.Fatalf("GroupDelay: got %v, want 1/3", got)
	}
}

func TestResponseAt(t *testing.T) {
	f := mustNew(t, []float64{0.25, 0.5, 0.25})

	if got := f.ResponseAt(0); !almostEqual(real(got), 1, eps) || !almostEqual(imag(got), 0, eps) {
		t.Errorf("DC: got %v, want 1", got)
	}

	if got := cmplx.Abs(f.ResponseAt(24000)); !almostEqual(got, 0, eps) {
		t.Errorf("Nyquist: got %v, want 0", got)
	}

	// |H(fs/4)| = 0.5 for the half-band smoother.
	if got := f.MagnitudeDB(12000); !almostEqual(got, 20*math.Log10(0.5), 1e-9) {
		t.Errorf("fs/4: got %v dB", got)
	}

	for _, freq := range []float64{100, 5000, 20000} {
		if got := f.GroupDelayAt(freq); !almostEqual(got, 1, 1e-9) {
			t.Errorf("GroupDelayAt(%v) = %v, want 1", freq, got)
		}
	}
}

func TestFilterSatisfiesStreamer(t *testing.T) {
	var s filter.Streamer = mustNew(t, []float64{1, 2, 3})

	y, err := s.Apply([]float64{1, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 2, 3, 0}
	for i := range want {
		if !almostEqual(y[i], want[i], eps) {
			t.Fatalf("y[%d] = %v, want %v", i, y[i], want[i])
		}
	}

	if s.NewStream() == nil {
		t.Fatal("NewStream returned nil")
	}
}
