// Package geom provides the small fixed-size matrix and vector types used to
// pose and project the card faces.
package geom

import "math"

// Mat4 is a 4×4 matrix stored row-major, applied to column vectors.
type Mat4 [16]float64

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m × n, so m.Mul(n).ApplyPoint(v) applies n first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r*4+c] = m[r*4+0]*n[0*4+c] + m[r*4+1]*n[1*4+c] +
				m[r*4+2]*n[2*4+c] + m[r*4+3]*n[3*4+c]
		}
	}
	return out
}

// RotationX returns the rotation by a radians about the X axis.
func RotationX(a float64) Mat4 {
	s, c := math.Sin(a), math.Cos(a)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns the rotation by a radians about the Y axis.
func RotationY(a float64) Mat4 {
	s, c := math.Sin(a), math.Cos(a)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns the identity with the (3,2) entry set to coeff, which
// feeds depth into the homogeneous w so that ApplyPoint foreshortens geometry
// tilted away from the viewer. Coefficients around 0.002 give the shallow
// projection a flipping card wants; 0 leaves the projection orthographic.
func Perspective(coeff float64) Mat4 {
	m := Identity()
	m[14] = coeff
	return m
}

// ApplyPoint transforms a 3D point (w=1) and performs the perspective divide.
func (m Mat4) ApplyPoint(v Vec3) Vec3 {
	w := m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3{
		(m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]) / w,
		(m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]) / w,
		(m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]) / w,
	}
}

// ApproxEqual reports whether every entry of m and n is within tol.
func (m Mat4) ApproxEqual(n Mat4, tol float64) bool {
	for i := 0; i < 16; i++ {
		d := m[i] - n[i]
		if d > tol || d < -tol {
			return false
		}
	}
	return true
}
