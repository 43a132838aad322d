package filter

// Filter is a designed, immutable filter bound to a sample rate. FIR
// filters and biquad cascades both satisfy it, as do chains of them.
type Filter interface {
	// SampleRate returns the rate in Hz the filter was designed for.
	SampleRate() float64

	// Apply filters a whole buffer and returns a new slice of the same
	// length. The filter itself is not modified.
	Apply(samples []float64) ([]float64, error)

	// ResponseAt evaluates the complex frequency response at freqHz.
	ResponseAt(freqHz float64) complex128

	// GroupDelayAt returns the group delay in samples at freqHz.
	GroupDelayAt(freqHz float64) float64
}

// Stream carries the running state of one filter across blocks. A
// Stream is owned by a single caller and is not safe for concurrent use.
type Stream interface {
	// Process filters the next block. On error the stream state is left
	// exactly as it was before the call.
	Process(block []float64) ([]float64, error)

	// Reset returns the stream to its zero state.
	Reset()

	// Clone returns an independent stream carrying a copy of the current
	// state.
	Clone() Stream
}

// Streamer is a Filter that supports block-by-block processing.
type Streamer interface {
	Filter
	NewStream() Stream
}
