package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/fir"
)

func writeTone(t *testing.T, path string, freq float64, frames, channels int) {
	t.Helper()

	const rate = 48000

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, 16, channels, pcmFormat)

	data := make([]int, frames*channels)
	for i := range frames {
		v := int(math.Round(0.5 * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/rate)))
		for ch := range channels {
			data[i*channels+ch] = v
		}
	}

	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func readSamples(t *testing.T, path string) *audio.IntBuffer {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)

	return buf
}

func rms(data []int, channels, channel, from int) float64 {
	var sum float64

	n := 0
	for i := from*channels + channel; i < len(data); i += channels {
		sum += float64(data[i]) * float64(data[i])
		n++
	}

	return math.Sqrt(sum / float64(n))
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	invalidFile := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(invalidFile, []byte("not a wav file"), 0o644))

	_, err := openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput("/nonexistent/dir/output.wav", 48000, 16, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestBuildChain_Default(t *testing.T) {
	c, err := buildChain(defaultChainConfig(), 48000)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	for _, s := range c.Stages() {
		assert.IsType(t, &biquad.Cascade{}, s)
	}

	assert.Less(t, c.MagnitudeDB(60), -30.0)
	assert.InDelta(t, 2.5, c.MagnitudeDB(3500), 0.5)
}

func TestBuildChain_Lowpass(t *testing.T) {
	cfg := defaultChainConfig()
	cfg.lowpassHz = 8000

	c, err := buildChain(cfg, 48000)
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())

	lp, ok := c.Stages()[3].(*fir.Filter)
	require.True(t, ok)
	assert.True(t, lp.IsLinearPhase())
	assert.Less(t, c.MagnitudeDB(12000), -50.0)
}

func TestBuildChain_Errors(t *testing.T) {
	cfg := chainConfig{}
	_, err := buildChain(cfg, 48000)
	require.Error(t, err)

	cfg = defaultChainConfig()
	cfg.notchHz = 30000
	_, err = buildChain(cfg, 48000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notch")
}

func TestToInt_Clips(t *testing.T) {
	assert.Equal(t, math.MaxInt16, toInt(2, math.MaxInt16))
	assert.Equal(t, math.MinInt16, toInt(-2, math.MaxInt16))
	assert.Equal(t, 16384, toInt(0.5, 32768))
}

func TestMaxValue(t *testing.T) {
	for _, depth := range []int{16, 24, 32} {
		v, err := maxValue(depth)
		require.NoError(t, err)
		assert.InDelta(t, math.Exp2(float64(depth-1))-1, v, 0)
	}

	_, err := maxValue(8)
	require.Error(t, err)
}

func TestRun_RemovesHum(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "hum.wav")
	out := filepath.Join(dir, "clean.wav")

	const frames = 2 * 48000

	writeTone(t, in, 60, frames, 2)

	require.NoError(t, run([]string{"-shelf-gain", "0", "-peak-gain", "0", in, out}))

	before := readSamples(t, in)
	after := readSamples(t, out)
	require.Len(t, after.Data, len(before.Data))
	assert.Equal(t, 2, after.Format.NumChannels)
	assert.Equal(t, 48000, after.Format.SampleRate)

	for ch := range 2 {
		ratio := rms(after.Data, 2, ch, frames*3/4) / rms(before.Data, 2, ch, frames*3/4)
		assert.Less(t, ratio, 0.01, "channel %d", ch)
	}
}

func TestRun_PassesMidband(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tone.wav")
	out := filepath.Join(dir, "out.wav")

	const frames = 48000

	writeTone(t, in, 1000, frames, 1)

	require.NoError(t, run([]string{"-shelf-gain", "0", "-peak-gain", "0", in, out}))

	ratio := rms(readSamples(t, out).Data, 1, 0, frames/2) / rms(readSamples(t, in).Data, 1, 0, frames/2)
	assert.InDelta(t, 1, ratio, 0.01)
}

func TestRun_Errors(t *testing.T) {
	require.Error(t, run(nil))
	require.Error(t, run([]string{"/nonexistent/in.wav", filepath.Join(t.TempDir(), "out.wav")}))
}
