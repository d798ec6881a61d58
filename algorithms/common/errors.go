package common

import "errors"

// Error kinds shared by all algorithm packages. Functions wrap these with
// fmt.Errorf("...: %w", ...) so callers can classify failures with errors.Is.
var (
	// ErrInvalidArgument marks parameters that cannot produce a meaningful
	// result: non-positive thresholds or time constants, empty data,
	// degenerate windows, unknown policy names.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLengthMismatch marks paired sequences of differing lengths,
	// e.g. data/threshold or data/time.
	ErrLengthMismatch = errors.New("length mismatch")
)
