// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
)

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var n M3
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	t := *n
	for i := range m {
		for j := range m {
			m[i][j] = t[j][i]
		}
	}
}

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
// m may alias l or r.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	t := *n
	for i := range m {
		for j := range m {
			m[i][j] = t[j][i]
		}
	}
}

// Invert sets m to contain the inverse of n.
func (m *M4) Invert(n *M4) {
	s0 := n[0][0]*n[1][1] - n[0][1]*n[1][0]
	s1 := n[0][0]*n[1][2] - n[0][2]*n[1][0]
	s2 := n[0][0]*n[1][3] - n[0][3]*n[1][0]
	s3 := n[0][1]*n[1][2] - n[0][2]*n[1][1]
	s4 := n[0][1]*n[1][3] - n[0][3]*n[1][1]
	s5 := n[0][2]*n[1][3] - n[0][3]*n[1][2]
	c0 := n[2][0]*n[3][1] - n[2][1]*n[3][0]
	c1 := n[2][0]*n[3][2] - n[2][2]*n[3][0]
	c2 := n[2][0]*n[3][3] - n[2][3]*n[3][0]
	c3 := n[2][1]*n[3][2] - n[2][2]*n[3][1]
	c4 := n[2][1]*n[3][3] - n[2][3]*n[3][1]
	c5 := n[2][2]*n[3][3] - n[2][3]*n[3][2]
	idet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)
	var t M4
	t[0][0] = (c5*n[1][1] - c4*n[1][2] + c3*n[1][3]) * idet
	t[0][1] = (-c5*n[0][1] + c4*n[0][2] - c3*n[0][3]) * idet
	t[0][2] = (s5*n[3][1] - s4*n[3][2] + s3*n[3][3]) * idet
	t[0][3] = (-s5*n[2][1] + s4*n[2][2] - s3*n[2][3]) * idet
	t[1][0] = (-c5*n[1][0] + c2*n[1][2] - c1*n[1][3]) * idet
	t[1][1] = (c5*n[0][0] - c2*n[0][2] + c1*n[0][3]) * idet
	t[1][2] = (-s5*n[3][0] + s2*n[3][2] - s1*n[3][3]) * idet
	t[1][3] = (s5*n[2][0] - s2*n[2][2] + s1*n[2][3]) * idet
	t[2][0] = (c4*n[1][0] - c2*n[1][1] + c0*n[1][3]) * idet
	t[2][1] = (-c4*n[0][0] + c2*n[0][1] - c0*n[0][3]) * idet
	t[2][2] = (s4*n[3][0] - s2*n[3][1] + s0*n[3][3]) * idet
	t[2][3] = (-s4*n[2][0] + s2*n[2][1] - s0*n[2][3]) * idet
	t[3][0] = (-c3*n[1][0] + c1*n[1][1] - c0*n[1][2]) * idet
	t[3][1] = (c3*n[0][0] - c1*n[0][1] + c0*n[0][2]) * idet
	t[3][2] = (-s3*n[3][0] + s1*n[3][1] - s0*n[3][2]) * idet
	t[3][3] = (s3*n[2][0] - s1*n[2][1] + s0*n[2][2]) * idet
	*m = t
}

// Translate makes m a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3] = V4{x, y, z, 1}
}

// Scale makes m a scale matrix.
func (m *M4) Scale(x, y, z float32) {
	*m = M4{{x}, {0, y}, {0, 0, z}, {0, 0, 0, 1}}
}

// Rotate makes m a rotation matrix from the unit
// quaternion q.
func (m *M4) Rotate(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// RotateY makes m a rotation of angle radians about
// the y axis.
func (m *M4) RotateY(angle float32) {
	s, c := math.Sincos(float64(angle))
	*m = M4{
		{float32(c), 0, float32(-s), 0},
		{0, 1, 0, 0},
		{float32(s), 0, float32(c), 0},
		{0, 0, 0, 1},
	}
}

// Perspective makes m a perspective projection.
// fovy is the vertical field of view in radians.
// Clip-space depth is in the [0, 1] interval.
func (m *M4) Perspective(fovy, aspect, znear, zfar float32) {
	ct := float32(1 / math.Tan(float64(fovy)/2))
	*m = M4{
		{ct / aspect},
		{0, ct},
		{0, 0, zfar / (znear - zfar), -1},
		{0, 0, znear * zfar / (znear - zfar), 0},
	}
}

// LookAt makes m a view matrix that transforms world
// coordinates into the space of an eye at position eye
// looking at center.
func (m *M4) LookAt(eye, center, up *V3) {
	var f, s, u V3
	f.Sub(center, eye)
	f.Norm(&f)
	s.Cross(&f, up)
	s.Norm(&s)
	u.Cross(&s, &f)
	*m = M4{
		{s[0], u[0], -f[0], 0},
		{s[1], u[1], -f[1], 0},
		{s[2], u[2], -f[2], 0},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}
