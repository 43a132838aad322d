package chain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filter/dsp/filter"
)

// Stream processes a chain block by block with one stream per stage.
// A Stream belongs to a single caller and is not safe for concurrent use.
type Stream struct {
	stages []filter.Stream
}

var _ filter.Stream = (*Stream)(nil)

// NewStream returns a zeroed stream for c. Every stage must implement
// filter.Streamer.
func NewStream(c *Chain) (*Stream, error) {
	if c == nil || len(c.stages) == 0 {
		return nil, fmt.Errorf("%w: empty chain", filter.ErrInvalidFilter)
	}

	s := &Stream{stages: make([]filter.Stream, len(c.stages))}

	for i, st := range c.stages {
		switch t := st.(type) {
		case filter.Streamer:
			s.stages[i] = t.NewStream()
		case *Chain:
			inner, err := NewStream(t)
			if err != nil {
				return nil, fmt.Errorf("stage %d: %w", i, err)
			}

			s.stages[i] = inner
		default:
			return nil, fmt.Errorf("%w: stage %d (%T) cannot stream", filter.ErrInvalidFilter, i, st)
		}
	}

	return s, nil
}

// Process filters the next block through every stage. Non-finite input
// is rejected before any stage runs. When a stage fails, the stages
// before it are restored so the whole stream is left as it was.
func (s *Stream) Process(block []float64) ([]float64, error) {
	for i, x := range block {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: sample %d is %v", filter.ErrInvalidParameter, i, x)
		}
	}

	// A failing stage keeps its own state, so the last one needs no copy.
	saved := make([]filter.Stream, len(s.stages)-1)
	for i := range saved {
		saved[i] = s.stages[i].Clone()
	}

	out := block
	for i, st := range s.stages {
		y, err := st.Process(out)
		if err != nil {
			copy(s.stages[:i], saved[:i])
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}

		out = y
	}

	return out, nil
}

// Clone returns an independent copy of the stream and every stage.
func (s *Stream) Clone() filter.Stream {
	c := &Stream{stages: make([]filter.Stream, len(s.stages))}
	for i, st := range s.stages {
		c.stages[i] = st.Clone()
	}

	return c
}

// Reset returns every stage to its zero state.
func (s *Stream) Reset() {
	for _, st := range s.stages {
		st.Reset()
	}
}
