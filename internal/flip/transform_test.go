package flip

import (
	"math"
	"testing"

	"github.com/flipdeck/flipdeck/internal/geom"
)

func TestTransformsAxes(t *testing.T) {
	angle := -0.375 * math.Pi

	cur, _ := Transforms(angle, Vertical, BackfaceTracking, 0.002)
	want := geom.Perspective(0.002).Mul(geom.RotationY(angle))
	if !cur.ApproxEqual(want, 1e-12) {
		t.Error("vertical axis should rotate about Y under the perspective")
	}

	cur, _ = Transforms(angle, Horizontal, BackfaceTracking, 0.002)
	want = geom.Perspective(0.002).Mul(geom.RotationX(angle))
	if !cur.ApproxEqual(want, 1e-12) {
		t.Error("horizontal axis should rotate about X under the perspective")
	}
}

func TestTransformsTrackingOpposite(t *testing.T) {
	angle := -0.3
	_, opp := Transforms(angle, Vertical, BackfaceTracking, 0.002)
	want := geom.Perspective(0.002).Mul(geom.RotationY(angle + math.Pi))
	if !opp.ApproxEqual(want, 1e-12) {
		t.Error("tracking backface should ride half a turn ahead")
	}
}

func TestTransformsPinnedOpposite(t *testing.T) {
	want := geom.Perspective(0.002).Mul(geom.RotationY(math.Pi))
	for _, angle := range []float64{0, -0.4, -math.Pi / 2, -math.Pi} {
		_, opp := Transforms(angle, Vertical, BackfacePinned, 0.002)
		if !opp.ApproxEqual(want, 1e-12) {
			t.Errorf("pinned backface moved at angle %v", angle)
		}
	}
}

func TestTransformsRestPoseIsPurePerspective(t *testing.T) {
	cur, _ := Transforms(0, Vertical, BackfaceTracking, 0.002)
	if !cur.ApproxEqual(geom.Perspective(0.002), 1e-15) {
		t.Error("rest pose should be the bare perspective matrix")
	}
}

func TestTransformsForeshortening(t *testing.T) {
	// under perspective the edge tipped toward the viewer projects larger
	// than the edge tipped away
	cur, _ := Transforms(-math.Pi/3, Vertical, BackfaceTracking, 0.002)
	l := cur.ApplyPoint(geom.Vec3{-1, 1, 0})
	r := cur.ApplyPoint(geom.Vec3{1, 1, 0})
	if math.Abs(l[1]) == math.Abs(r[1]) {
		t.Error("expected asymmetric projection under perspective")
	}
}
