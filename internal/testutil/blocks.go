package testutil

// SplitBlocks cuts x into consecutive blocks whose lengths cycle through
// sizes. A zero size yields an empty block. The last block may be short.
func SplitBlocks(x []float64, sizes ...int) [][]float64 {
	if len(sizes) == 0 {
		return [][]float64{x}
	}

	var blocks [][]float64

	pos := 0
	for i := 0; pos < len(x); i++ {
		n := min(sizes[i%len(sizes)], len(x)-pos)
		blocks = append(blocks, x[pos:pos+n])
		pos += n

		if i > 4*len(x)+len(sizes) {
			break // all sizes zero
		}
	}

	return blocks
}

// StreamBlocks feeds x through process block by block, with block
// lengths taken from SplitBlocks, and concatenates the results.
func StreamBlocks(process func([]float64) ([]float64, error), x []float64, sizes ...int) ([]float64, error) {
	out := make([]float64, 0, len(x))
	for _, b := range SplitBlocks(x, sizes...) {
		y, err := process(b)
		if err != nil {
			return nil, err
		}

		out = append(out, y...)
	}

	return out, nil
}
