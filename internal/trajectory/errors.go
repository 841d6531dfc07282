package trajectory

import "errors"

// Error classes for trajectory input. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	// ErrInvalidInput reports data that decodes fine but does not describe
	// a consistent set of trajectories (e.g. a sample count that is not a
	// multiple of objects times dimensions).
	ErrInvalidInput = errors.New("invalid trajectory input")

	// ErrMalformedFile reports a file that cannot be read or decoded, or
	// that lacks one of the required keys.
	ErrMalformedFile = errors.New("malformed trajectory file")

	// ErrDegenerateConfig reports zero objects or a non-positive dimension count.
	ErrDegenerateConfig = errors.New("degenerate trajectory configuration")
)
