// seehuhn.de/go/vision - raster drawing and volumetric fusion
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package volume

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Identity returns the identity transformation.
func Identity() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns the transformation which moves points by (x, y, z).
func Translation(x, y, z float32) f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Rotation returns the rotation about the axis r, by |r| radians.
func Rotation(r f32.Vec3) f32.Mat4 {
	theta := math.Sqrt(float64(dot(r, r)))
	if theta < 1e-12 {
		return Identity()
	}
	x, y, z := float64(r[0])/theta, float64(r[1])/theta, float64(r[2])/theta
	c, s := math.Cos(theta), math.Sin(theta)
	c1 := 1 - c

	return f32.Mat4{
		float32(c + x*x*c1), float32(x*y*c1 - z*s), float32(x*z*c1 + y*s), 0,
		float32(y*x*c1 + z*s), float32(c + y*y*c1), float32(y*z*c1 - x*s), 0,
		float32(z*x*c1 - y*s), float32(z*y*c1 + x*s), float32(c + z*z*c1), 0,
		0, 0, 0, 1,
	}
}

// Mul returns the transformation which applies b first, then a.
func Mul(a, b f32.Mat4) f32.Mat4 {
	var res f32.Mat4
	for i := range 4 {
		for j := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[4*i+k] * b[4*k+j]
			}
			res[4*i+j] = sum
		}
	}
	return res
}

// TransformPoint applies the rigid transformation m to p.
func TransformPoint(m f32.Mat4, p f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3],
		m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7],
		m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11],
	}
}

// rotate applies the rotation part of m to v.
func rotate(m f32.Mat4, v f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}

// translation returns the translation part of m.
func translation(m f32.Mat4) f32.Vec3 {
	return f32.Vec3{m[3], m[7], m[11]}
}

// InvertRigid returns the inverse of a rigid transformation.
func InvertRigid(m f32.Mat4) f32.Mat4 {
	// The inverse of [R|t] is [Rᵀ|-Rᵀt].
	res := f32.Mat4{
		m[0], m[4], m[8], 0,
		m[1], m[5], m[9], 0,
		m[2], m[6], m[10], 0,
		0, 0, 0, 1,
	}
	t := rotate(res, translation(m))
	res[3], res[7], res[11] = -t[0], -t[1], -t[2]
	return res
}

// isRigid reports whether m is a rotation followed by a translation.
func isRigid(m f32.Mat4) bool {
	const eps = 1e-4
	if m[12] != 0 || m[13] != 0 || m[14] != 0 || m[15] != 1 {
		return false
	}
	for i := range 3 {
		for j := range 3 {
			var sum float32
			for k := range 3 {
				sum += m[4*i+k] * m[4*j+k]
			}
			want := float32(0)
			if i == j {
				want = 1
			}
			if abs32(sum-want) > eps {
				return false
			}
		}
	}
	return true
}
