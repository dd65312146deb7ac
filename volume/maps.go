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

import "golang.org/x/image/math/f32"

// Map is a two-dimensional array of values, stored row by row.
type Map[T any] struct {
	Width, Height int
	Pix           []T
}

// NewMap allocates a zeroed map.
func NewMap[T any](width, height int) *Map[T] {
	return &Map[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, width*height),
	}
}

// At returns the value at column x and row y.
func (m *Map[T]) At(x, y int) T {
	return m.Pix[y*m.Width+x]
}

// Set changes the value at column x and row y.
func (m *Map[T]) Set(x, y int, v T) {
	m.Pix[y*m.Width+x] = v
}

// Fill sets all entries of the map to v.
func (m *Map[T]) Fill(v T) {
	for i := range m.Pix {
		m.Pix[i] = v
	}
}

// Depth is a depth frame in raw units.  Zero and NaN mark missing samples.
type Depth = Map[float32]

// ColorImage is a color frame with RGB components in the range 0 to 255.
type ColorImage = Map[f32.Vec3]

// Frame holds the result of a raycast.  Points and normals are in camera
// coordinates, with the fourth component set to zero.  All components of
// invalid entries are NaN.  Colors is nil for volumes without color.
type Frame struct {
	Points  *Map[f32.Vec4]
	Normals *Map[f32.Vec4]
	Colors  *Map[f32.Vec3]
}

func newFrame(width, height int, colors bool) *Frame {
	f := &Frame{
		Points:  NewMap[f32.Vec4](width, height),
		Normals: NewMap[f32.Vec4](width, height),
	}
	f.Points.Fill(invalid4)
	f.Normals.Fill(invalid4)
	if colors {
		f.Colors = NewMap[f32.Vec3](width, height)
		f.Colors.Fill(invalid3)
	}
	return f
}

// Valid reports whether v holds a point or normal, rather than the NaN
// marker for a missing value.
func Valid(v f32.Vec4) bool {
	return !isNaN32(v[0]) && !isNaN32(v[1]) && !isNaN32(v[2])
}

func vec4(v f32.Vec3) f32.Vec4 {
	return f32.Vec4{v[0], v[1], v[2], 0}
}

func vec3(v f32.Vec4) f32.Vec3 {
	return f32.Vec3{v[0], v[1], v[2]}
}

var (
	invalid4 = f32.Vec4{nan32(), nan32(), nan32(), nan32()}
	invalid3 = f32.Vec3{nan32(), nan32(), nan32()}
)
