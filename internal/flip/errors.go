package flip

import "errors"

// Domain errors for animation configuration.
var (
	// ErrInvalidDuration indicates a non-positive flip duration.
	ErrInvalidDuration = errors.New("flip: duration must be positive")

	// ErrInvalidSnapTime indicates an easing knee outside the open unit interval.
	ErrInvalidSnapTime = errors.New("flip: snap time must lie strictly between 0 and 1")

	// ErrInvalidSnapTravel indicates an easing knee outside the open unit interval.
	ErrInvalidSnapTravel = errors.New("flip: snap travel must lie strictly between 0 and 1")

	// ErrInvalidPerspective indicates a negative depth coefficient.
	ErrInvalidPerspective = errors.New("flip: perspective coefficient must not be negative")

	// ErrUnknownAxis indicates an unrecognized rotation axis.
	ErrUnknownAxis = errors.New("flip: unknown rotation axis")

	// ErrUnknownOrientation indicates an unrecognized face name.
	ErrUnknownOrientation = errors.New("flip: unknown orientation")

	// ErrUnknownBackface indicates an unrecognized backface mode.
	ErrUnknownBackface = errors.New("flip: unknown backface mode")
)
