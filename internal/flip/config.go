package flip

import (
	"fmt"
	"time"
)

// Config is the immutable shape of one panel's flip animation. Validate it
// (or build a Controller, which validates for you) before use; a Config that
// passes Validate can never produce an invalid pose mid-animation.
type Config struct {
	// Duration is the wall-clock length of one flip.
	Duration time.Duration

	// Axis is the rotation axis the panel turns about.
	Axis Axis

	// Orientation is the face at rest before the first flip.
	Orientation Orientation

	// SnapTime and SnapTravel place the easing knee: the first SnapTime of
	// the duration covers SnapTravel of the rotation, and the remainder
	// settles through the rest. Both must lie strictly inside (0, 1).
	SnapTime   float64
	SnapTravel float64

	// Perspective is the depth coefficient written into the transform before
	// the rotation; 0 leaves the projection orthographic.
	Perspective float64

	// Backface chooses how the hidden face is posed.
	Backface BackfaceMode
}

// DefaultConfig is a half-second card turn about the vertical axis with a
// fast opening snap, starting front side up.
func DefaultConfig() Config {
	return Config{
		Duration:    500 * time.Millisecond,
		Axis:        Vertical,
		Orientation: Front,
		SnapTime:    0.2,
		SnapTravel:  0.75,
		Perspective: 0.002,
		Backface:    BackfaceTracking,
	}
}

// Validate rejects any parameter that could derail the animation later.
func (c Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidDuration, c.Duration)
	}
	if c.SnapTime <= 0 || c.SnapTime >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidSnapTime, c.SnapTime)
	}
	if c.SnapTravel <= 0 || c.SnapTravel >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidSnapTravel, c.SnapTravel)
	}
	if c.Perspective < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidPerspective, c.Perspective)
	}
	if c.Axis != Horizontal && c.Axis != Vertical {
		return fmt.Errorf("%w: %d", ErrUnknownAxis, int(c.Axis))
	}
	if c.Orientation != Front && c.Orientation != Back {
		return fmt.Errorf("%w: %d", ErrUnknownOrientation, int(c.Orientation))
	}
	if c.Backface != BackfaceTracking && c.Backface != BackfacePinned {
		return fmt.Errorf("%w: %d", ErrUnknownBackface, int(c.Backface))
	}
	return nil
}
