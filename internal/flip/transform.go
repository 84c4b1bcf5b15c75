package flip

import (
	"math"

	"github.com/flipdeck/flipdeck/internal/geom"
)

// Transforms poses both faces of the panel at the given rotation angle. The
// perspective entry is written before the rotation is applied, so a face
// foreshortens as it tips away from the viewer. The opposite face either
// tracks half a turn ahead of the current one or stays pinned at half a
// turn, depending on mode.
func Transforms(angle float64, axis Axis, mode BackfaceMode, perspective float64) (current, opposite geom.Mat4) {
	current = pose(angle, axis, perspective)
	if mode == BackfacePinned {
		opposite = pose(math.Pi, axis, perspective)
		return current, opposite
	}
	opposite = pose(angle+math.Pi, axis, perspective)
	return current, opposite
}

func pose(angle float64, axis Axis, perspective float64) geom.Mat4 {
	p := geom.Perspective(perspective)
	if axis == Horizontal {
		return p.Mul(geom.RotationX(angle))
	}
	return p.Mul(geom.RotationY(angle))
}
