package effect

import "errors"

var (
	// ErrInvalidConfig is returned when an effect would be degenerate:
	// zero-length direction, non-positive radius, duration or speed.
	ErrInvalidConfig = errors.New("invalid effect configuration")

	// ErrCasterMissing is returned by attached effects whose caster is not in
	// the frame snapshot.
	ErrCasterMissing = errors.New("caster missing from world snapshot")
)

// ErrNoSnapshot is returned when an effect updates without a world snapshot.
var ErrNoSnapshot = errors.New("no world snapshot")
