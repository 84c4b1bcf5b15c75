package flip

import (
	"fmt"

	"github.com/flipdeck/flipdeck/internal/geom"
)

// Orientation names a face of the panel. It doubles as the resting side of
// the state machine and as the visible side of a published frame.
type Orientation int

const (
	Front Orientation = iota
	Back
)

func (o Orientation) String() string {
	switch o {
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// Flipped returns the other face.
func (o Orientation) Flipped() Orientation {
	if o == Front {
		return Back
	}
	return Front
}

// ParseOrientation maps the config spelling of a face to its value.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "front":
		return Front, nil
	case "back":
		return Back, nil
	default:
		return Front, fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
	}
}

// Axis selects the rotation axis: Horizontal tips the panel top over bottom
// (about X), Vertical turns it left to right (about Y).
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// ParseAxis maps the config spelling of an axis to its value.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
	}
}

// BackfaceMode chooses how the hidden face is posed while the panel turns.
type BackfaceMode int

const (
	// BackfaceTracking keeps the opposite face half a turn ahead of the
	// current one, like the two sides of a rigid card.
	BackfaceTracking BackfaceMode = iota
	// BackfacePinned holds the opposite face at a fixed half turn.
	BackfacePinned
)

func (m BackfaceMode) String() string {
	switch m {
	case BackfaceTracking:
		return "tracking"
	case BackfacePinned:
		return "pinned"
	default:
		return fmt.Sprintf("backface(%d)", int(m))
	}
}

// ParseBackface maps the config spelling of a backface mode to its value.
func ParseBackface(s string) (BackfaceMode, error) {
	switch s {
	case "tracking":
		return BackfaceTracking, nil
	case "pinned":
		return BackfacePinned, nil
	default:
		return BackfaceTracking, fmt.Errorf("%w: %q", ErrUnknownBackface, s)
	}
}

// Frame is one published snapshot of the animation: the posed transforms for
// both faces, the face the viewer currently sees, and the progress and signed
// angle that produced them. Frames are values; hosts may keep them.
type Frame struct {
	Current  geom.Mat4
	Opposite geom.Mat4
	Face     Orientation
	Progress float64
	Angle    float64
}
