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
	"image"

	"golang.org/x/image/math/fixed"
)

// point is a position in 16.16 fixed point, or in plain pixels where the
// surrounding code says so.
type point struct {
	x, y int64
}

// toFixed converts a point with shift fractional bits to 16.16 fixed point.
func toFixed(p image.Point, shift int) point {
	return point{int64(p.X) << (XYShift - shift), int64(p.Y) << (XYShift - shift)}
}

// round converts a 16.16 point to the nearest pixel.
func (p point) round() image.Point {
	return image.Point{
		X: int((p.x + XYOne/2) >> XYShift),
		Y: int((p.y + XYOne/2) >> XYShift),
	}
}

// trunc converts a 16.16 point to the pixel containing it.
func (p point) trunc() image.Point {
	return image.Point{X: int(p.x >> XYShift), Y: int(p.y >> XYShift)}
}

type integer interface {
	~int | ~int32 | ~int64
}

// ClipSegment clips the segment from (x1, y1) to (x2, y2) against the
// rectangle [0, width-1] × [0, height-1].
//
// The endpoints are updated in place.  The return value is false if no part
// of the segment lies inside the rectangle; in that case the endpoints are
// left in an unspecified state.  Zero-size bounds never contain anything.
//
// The same routine serves plain pixel coordinates and fixed-point
// coordinates; in the latter case width and height must be given in the
// same fixed-point scale.  Intermediate products are computed in floating
// point, so that int64 fixed-point values do not overflow.
func ClipSegment[T integer](width, height T, x1, y1, x2, y2 *T) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	right, bottom := int64(width)-1, int64(height)-1
	ax, ay := int64(*x1), int64(*y1)
	bx, by := int64(*x2), int64(*y2)

	c1 := outCode(ax, ay, right, bottom)
	c2 := outCode(bx, by, right, bottom)

	if c1&c2 == 0 && c1|c2 != 0 {
		if c1&12 != 0 {
			a := bottom
			if c1 < 8 {
				a = 0
			}
			ax += int64(float64(a-ay) * float64(bx-ax) / float64(by-ay))
			ay = a
			c1 = outCode(ax, 0, right, 0)
		}
		if c2&12 != 0 {
			a := bottom
			if c2 < 8 {
				a = 0
			}
			bx += int64(float64(a-by) * float64(bx-ax) / float64(by-ay))
			by = a
			c2 = outCode(bx, 0, right, 0)
		}
		if c1&c2 == 0 && c1|c2 != 0 {
			if c1 != 0 {
				a := right
				if c1 == 1 {
					a = 0
				}
				ay += int64(float64(a-ax) * float64(by-ay) / float64(bx-ax))
				ax = a
				c1 = 0
			}
			if c2 != 0 {
				a := right
				if c2 == 1 {
					a = 0
				}
				by += int64(float64(a-bx) * float64(by-ay) / float64(bx-ax))
				bx = a
				c2 = 0
			}
		}
	}

	*x1, *y1, *x2, *y2 = T(ax), T(ay), T(bx), T(by)
	return c1|c2 == 0
}

// outCode returns the Cohen-Sutherland region code of (x, y):
// bit 0 left, bit 1 right, bit 2 above, bit 3 below.
func outCode(x, y, right, bottom int64) int {
	c := 0
	if x < 0 {
		c |= 1
	} else if x > right {
		c |= 2
	}
	if y < 0 {
		c |= 4
	} else if y > bottom {
		c |= 8
	}
	return c
}

// ClipLine clips the segment p1-p2 against an image of the given size.
// See [ClipSegment].
func ClipLine(size image.Point, p1, p2 *image.Point) bool {
	return ClipSegment(size.X, size.Y, &p1.X, &p1.Y, &p2.X, &p2.Y)
}

// ClipLineRect clips the segment p1-p2 against r.
func ClipLineRect(r image.Rectangle, p1, p2 *image.Point) bool {
	a, b := p1.Sub(r.Min), p2.Sub(r.Min)
	visible := ClipLine(r.Size(), &a, &b)
	*p1, *p2 = a.Add(r.Min), b.Add(r.Min)
	return visible
}

// clipFixed clips a 16.16 segment against a surface of the given pixel size.
func clipFixed(size image.Point, p1, p2 *point) bool {
	w := int64(size.X) << XYShift
	h := int64(size.Y) << XYShift
	return ClipSegment(w, h, &p1.x, &p1.y, &p2.x, &p2.y)
}

// FromFixed26_6 converts a 26.6 fixed point position to a point with the
// given number of fractional bits, rounding to nearest when bits are
// dropped.
func FromFixed26_6(p fixed.Point26_6, shift int) image.Point {
	checkShift(shift)
	return image.Point{X: rescale(int64(p.X), 6, shift), Y: rescale(int64(p.Y), 6, shift)}
}

func rescale(v int64, from, to int) int {
	if to >= from {
		return int(v << (to - from))
	}
	d := from - to
	return int((v + 1<<(d-1)) >> d)
}

func checkShift(shift int) {
	if shift < 0 || shift > MaxShift {
		panic("raster: shift out of range")
	}
}

const (
	// XYShift is the number of fractional bits used internally.
	XYShift = 16

	// XYOne is 1.0 in internal fixed point.
	XYOne = 1 << XYShift

	// MaxShift is the largest number of fractional bits accepted for input
	// coordinates.
	MaxShift = XYShift

	// MaxThickness is the largest accepted line thickness.
	MaxThickness = 32767
)
