package keyreduce

import "errors"

var (
	// ErrNoTargets is returned by [Reducer.Run] when it is handed an empty
	// batch.
	ErrNoTargets = errors.New("no targets to reduce")

	// ErrTooFewKeyframes is reported for targets whose lead curve has fewer
	// than two keyframes. Such targets are skipped and left untouched.
	ErrTooFewKeyframes = errors.New("target has fewer than two keyframes")

	// ErrKindMismatch is reported when a target's channels are neither pose
	// nor scalar channels.
	ErrKindMismatch = errors.New("unsupported channel set")

	// ErrInvalidConfig is returned for configurations with out of range
	// parameters or unknown keys.
	ErrInvalidConfig = errors.New("invalid configuration")
)
