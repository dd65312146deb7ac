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

package raster

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"
)

// BenchmarkFillPolyO fills an "O" shape, given as two polygonal contours.
func BenchmarkFillPolyO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		for _, lt := range []LineType{Line8, LineAA} {
			b.Run(fmt.Sprintf("%dx%d-%d", size, size, lt), func(b *testing.B) {
				s := NewSurface(size, size, 1)
				p := NewPainter(s)
				p.LineType = lt

				center := image.Pt(size/2, size/2)
				outer := Ellipse2Poly(center, image.Pt(size*45/100, size*45/100), 0, 0, 360, 5)
				inner := Ellipse2Poly(center, image.Pt(size*30/100, size*30/100), 0, 0, 360, 5)
				contours := [][]image.Point{outer, inner}
				c := Color{255}

				b.ReportAllocs()
				for b.Loop() {
					p.FillPoly(contours, c, image.Point{})
				}
			})
		}
	}
}

// BenchmarkVectorO draws the same shape with x/image/vector, for comparison.
func BenchmarkVectorO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, center, center, outerR, false)
				addCircleToVector(r, center, center, innerR, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkThickLine draws a fan of thick antialiased lines with round caps.
func BenchmarkThickLine(b *testing.B) {
	s := NewSurface(512, 512, 3)
	p := NewPainter(s)
	p.LineType = LineAA
	p.Thickness = 7
	c := Color{200, 100, 50}

	b.ReportAllocs()
	for b.Loop() {
		for i := range 32 {
			p.Line(image.Pt(256, 256), image.Pt(16*i, 0), c)
		}
	}
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic Bézier curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	if clockwise {
		r.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	r.ClosePath()
}
