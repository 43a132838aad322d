package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-filter/dsp/filter/chain"
)

const (
	pcmFormat        = 1
	progressInterval = 10 // percent
	percentScale     = 100
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
	progress *progressTracker
}

// openWAVInput opens and validates a WAV file.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if _, err := maxValue(bitDepth); err != nil {
		_ = inputFile.Close()
		return nil, err
	}

	if format.NumChannels < 1 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid channel count %d", format.NumChannels)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	var totalFrames int64
	if duration, err := decoder.Duration(); err == nil {
		totalFrames = int64(duration.Seconds() * float64(format.SampleRate))
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		format:   format,
		progress: &progressTracker{total: totalFrames, verbose: verbose},
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	format  *audio.Format
	depth   int
}

// createWAVOutput creates the output file and a PCM encoder for it.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, pcmFormat),
		format:  &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		depth:   bitDepth,
	}, nil
}

// WriteSamples writes interleaved samples.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	return w.encoder.Write(&audio.IntBuffer{
		Data:           samples,
		Format:         w.format,
		SourceBitDepth: w.depth,
	})
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}

	return w.file.Close()
}

// processBuffers holds the buffers reused across blocks.
type processBuffers struct {
	intBuffer   *audio.IntBuffer
	channelBufs [][]float64
	outputInts  []int
	maxVal      float64
	invMaxVal   float64
}

func newProcessBuffers(channels, bitDepth int, format *audio.Format) *processBuffers {
	channelBufs := make([][]float64, channels)
	for ch := range channels {
		channelBufs[ch] = make([]float64, bufferSize)
	}

	// bitDepth was checked in openWAVInput.
	maxVal, _ := maxValue(bitDepth)

	return &processBuffers{
		intBuffer: &audio.IntBuffer{
			Data:           make([]int, bufferSize*channels),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		channelBufs: channelBufs,
		outputInts:  make([]int, bufferSize*channels),
		maxVal:      maxVal,
		invMaxVal:   1 / maxVal,
	}
}

// deinterleave converts the first n decoded samples to per channel
// floats in [-1, 1].
func (b *processBuffers) deinterleave(n int) {
	channels := len(b.channelBufs)
	for i, v := range b.intBuffer.Data[:n] {
		b.channelBufs[i%channels][i/channels] = float64(v) * b.invMaxVal
	}
}

// interleave converts filtered channels back to clipped integer samples.
func (b *processBuffers) interleave(channels [][]float64, numFrames int) []int {
	out := b.outputInts[:numFrames*len(channels)]
	for ch, data := range channels {
		for i, v := range data[:numFrames] {
			out[i*len(channels)+ch] = toInt(v, b.maxVal)
		}
	}

	return out
}

func toInt(v, maxVal float64) int {
	s := math.Round(v * maxVal)
	if s > maxVal {
		return int(maxVal)
	}

	if s < -maxVal-1 {
		return int(-maxVal - 1)
	}

	return int(s)
}

// maxValue returns the positive full scale of a signed PCM bit depth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return math.MaxInt16, nil
	case 24:
		return 1<<23 - 1, nil
	case 32:
		return math.MaxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
}

// newChannelStreams creates one chain stream per channel.
func newChannelStreams(c *chain.Chain, channels int) ([]*chain.Stream, error) {
	streams := make([]*chain.Stream, channels)
	for ch := range channels {
		s, err := chain.NewStream(c)
		if err != nil {
			return nil, fmt.Errorf("failed to create stream for channel %d: %w", ch, err)
		}

		streams[ch] = s
	}

	return streams, nil
}

// filterChannels runs each channel's block through its stream. Channels
// are independent and processed concurrently.
func filterChannels(streams []*chain.Stream, channelBufs [][]float64, numFrames int) ([][]float64, error) {
	filtered := make([][]float64, len(streams))
	errs := make([]error, len(streams))

	var wg sync.WaitGroup
	for ch := range streams {
		wg.Add(1)

		go func(channel int) {
			defer wg.Done()

			out, err := streams[channel].Process(channelBufs[channel][:numFrames])
			if err != nil {
				errs[channel] = fmt.Errorf("filtering failed on channel %d: %w", channel, err)
				return
			}

			filtered[channel] = out
		}(ch)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return filtered, nil
}

// progressTracker logs progress in verbose mode.
type progressTracker struct {
	total   int64
	last    int
	verbose bool
}

func (p *progressTracker) reportIfNeeded(frames int64) {
	if !p.verbose || p.total == 0 {
		return
	}

	progress := int(float64(frames) / float64(p.total) * percentScale)
	if progress >= p.last+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.last = progress
	}
}
