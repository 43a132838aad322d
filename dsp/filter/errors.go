package filter

import "errors"

// Error kinds shared by every designer, runtime and analyzer in the
// filter packages. Callers match them with errors.Is; the wrapped message
// carries the offending value.
var (
	// ErrInvalidParameter reports a malformed or out-of-range input such
	// as a cutoff outside (0, fs/2), a non-positive order or a NaN.
	ErrInvalidParameter = errors.New("filter: invalid parameter")

	// ErrUnsupportedFamily reports an unknown filter kind, prototype
	// family or window tag.
	ErrUnsupportedFamily = errors.New("filter: unsupported family")

	// ErrUnstableDesign reports a designed or supplied IIR section with a
	// pole on or outside the unit circle.
	ErrUnstableDesign = errors.New("filter: unstable design")

	// ErrSampleRateMismatch reports chain stages designed for different
	// sample rates.
	ErrSampleRateMismatch = errors.New("filter: sample rate mismatch")

	// ErrInvalidFilter reports an empty or structurally malformed filter
	// handed to a runtime or analyzer.
	ErrInvalidFilter = errors.New("filter: invalid filter")
)
