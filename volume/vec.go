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

func add(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scale(a f32.Vec3, s float32) f32.Vec3 {
	return f32.Vec3{a[0] * s, a[1] * s, a[2] * s}
}

func dot(a, b f32.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func length(a f32.Vec3) float32 {
	return float32(math.Sqrt(float64(dot(a, a))))
}

// normalize returns a/|a|.  The second return value is false if a has zero
// length or is not finite.
func normalize(a f32.Vec3) (f32.Vec3, bool) {
	l := length(a)
	if !(l > 0) || math.IsInf(float64(l), 0) {
		return f32.Vec3{}, false
	}
	return scale(a, 1/l), true
}

func floor3(a f32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(a[0]))),
		int(math.Floor(float64(a[1]))),
		int(math.Floor(float64(a[2]))),
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func nan32() float32 {
	return float32(math.NaN())
}

func isNaN32(x float32) bool {
	return x != x
}

// box is an axis-aligned box.
type box struct {
	lo, hi f32.Vec3
}

// clip returns the parameter range [t0, t1] in which the ray orig + t*dir
// lies inside b, intersected with [t0, t1].  The range is empty if
// t0 > t1 on return.
func (b box) clip(orig, dir f32.Vec3, t0, t1 float32) (float32, float32) {
	for axis := range 3 {
		if dir[axis] == 0 {
			if orig[axis] < b.lo[axis] || orig[axis] > b.hi[axis] {
				return 1, 0
			}
			continue
		}
		inv := 1 / dir[axis]
		tNear := (b.lo[axis] - orig[axis]) * inv
		tFar := (b.hi[axis] - orig[axis]) * inv
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		t0 = max(t0, tNear)
		t1 = min(t1, tFar)
		if t0 > t1 {
			return t0, t1
		}
	}
	return t0, t1
}
