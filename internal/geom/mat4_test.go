package geom

import (
	"math"
	"testing"
)

func TestRotationsMapAxes(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"rotX quarter turn sends y to z", RotationX(math.Pi / 2), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"rotX leaves x fixed", RotationX(math.Pi / 2), Vec3{1, 0, 0}, Vec3{1, 0, 0}},
		{"rotY quarter turn sends x to -z", RotationY(math.Pi / 2), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"rotY leaves y fixed", RotationY(1.234), Vec3{0, 1, 0}, Vec3{0, 1, 0}},
		{"rotX half turn negates y", RotationX(math.Pi), Vec3{0, 1, 0}, Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.ApplyPoint(tt.in)
			for i := 0; i < 3; i++ {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("component %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMulAppliesRightFirst(t *testing.T) {
	p := Perspective(0.002)
	r := RotationY(0.7)
	v := Vec3{0.5, -0.25, 0}

	composed := p.Mul(r).ApplyPoint(v)
	stepped := p.ApplyPoint(r.ApplyPoint(v))

	for i := 0; i < 3; i++ {
		if math.Abs(composed[i]-stepped[i]) > 1e-12 {
			t.Errorf("component %d: composed %v, stepped %v", i, composed[i], stepped[i])
		}
	}
}

func TestPerspectiveDivide(t *testing.T) {
	m := Perspective(0.002)
	got := m.ApplyPoint(Vec3{3, -6, 100})

	// w = 0.002*100 + 1 = 1.2
	want := Vec3{3 / 1.2, -6 / 1.2, 100 / 1.2}
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPerspectiveZeroIsOrthographic(t *testing.T) {
	if !Perspective(0).ApproxEqual(Identity(), 0) {
		t.Error("zero coefficient should leave the identity untouched")
	}
}

func TestFullTurnIsIdentity(t *testing.T) {
	if !RotationY(2 * math.Pi).ApproxEqual(Identity(), 1e-9) {
		t.Error("rotY full turn should be identity")
	}
	if !RotationX(2 * math.Pi).ApproxEqual(Identity(), 1e-9) {
		t.Error("rotX full turn should be identity")
	}
}

func TestVec3Ops(t *testing.T) {
	n := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if math.Abs(n[2]-1) > 1e-12 || math.Abs(n[0]) > 1e-12 || math.Abs(n[1]) > 1e-12 {
		t.Errorf("x cross y = %v, want z", n)
	}

	u := Vec3{3, 4, 0}.Normalize()
	if math.Abs(u.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", u.Len())
	}

	zero := Vec3{}.Normalize()
	if zero.Len() != 0 {
		t.Error("normalizing the zero vector should stay zero")
	}
}
