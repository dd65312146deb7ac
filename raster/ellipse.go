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
	"math"

	"seehuhn.de/go/geom/vec"
)

// Ellipse2Poly approximates an elliptic arc by a polygon.
//
// The ellipse has the given center and half-axes and is rotated by angle
// degrees.  The arc runs from arcStart to arcEnd (degrees, measured from
// the rotated x-axis), sampled every delta degrees.  Vertices are rounded
// to integer positions and consecutive duplicates are dropped.  A
// degenerate arc yields two copies of the center.
//
// Delta must be in the range 1 to 180.
func Ellipse2Poly(center, axes image.Point, angle, arcStart, arcEnd, delta int) []image.Point {
	offs := arcOffsets(nil, vec.Vec2{X: float64(axes.X), Y: float64(axes.Y)},
		angle, arcStart, arcEnd, delta)

	var res []image.Point
	prev := image.Point{X: math.MinInt, Y: math.MinInt}
	for _, o := range offs {
		pt := image.Point{
			X: int(math.RoundToEven(float64(center.X) + o.X)),
			Y: int(math.RoundToEven(float64(center.Y) + o.Y)),
		}
		if pt != prev {
			res = append(res, pt)
			prev = pt
		}
	}
	if len(res) == 1 {
		res = []image.Point{center, center}
	}
	return res
}

// arcKey identifies the polygon of an elliptic arc, up to translation.
type arcKey struct {
	axes                   vec.Vec2
	angle, start, end, stp int
}

// arcOffsets appends the vertices of an elliptic arc centered at the
// origin to dst.  If the arc consists of a single vertex, two copies of
// the origin are returned instead.
func arcOffsets(dst []vec.Vec2, axes vec.Vec2, angle, arcStart, arcEnd, delta int) []vec.Vec2 {
	if delta <= 0 || delta > 180 {
		panic("raster: arc step out of range")
	}

	for angle < 0 {
		angle += 360
	}
	for angle > 360 {
		angle -= 360
	}
	if arcStart > arcEnd {
		arcStart, arcEnd = arcEnd, arcStart
	}
	for arcStart < 0 {
		arcStart += 360
		arcEnd += 360
	}
	for arcEnd > 360 {
		arcEnd -= 360
		arcStart -= 360
	}
	if arcEnd-arcStart > 360 {
		arcStart, arcEnd = 0, 360
	}

	cos, sin := sinCos(angle)
	alpha, beta := float64(cos), float64(sin)
	n0 := len(dst)
	for i := arcStart; i < arcEnd+delta; i += delta {
		a := min(i, arcEnd)
		if a < 0 {
			a += 360
		}
		x := axes.X * float64(sinTable[450-a])
		y := axes.Y * float64(sinTable[a])
		dst = append(dst, vec.Vec2{X: x*alpha - y*beta, Y: x*beta + y*alpha})
	}
	if len(dst)-n0 == 1 {
		dst = append(dst[:n0], vec.Vec2{}, vec.Vec2{})
	}
	return dst
}

// arcPolygon returns the cached offsets of an arc polygon, computing them
// on a cache miss.  The returned slice must not be modified.
func (p *Painter) arcPolygon(axes vec.Vec2, angle, arcStart, arcEnd, delta int) []vec.Vec2 {
	key := arcKey{axes: axes, angle: angle, start: arcStart, end: arcEnd, stp: delta}
	if p.arcs != nil {
		if offs, ok := p.arcs.Get(key); ok {
			return offs
		}
	}
	offs := arcOffsets(nil, axes, angle, arcStart, arcEnd, delta)
	if p.arcs != nil {
		p.arcs.Add(key, offs)
	}
	return offs
}

// arcStep returns the angular sampling step, in degrees, for an ellipse
// whose larger 16.16 half-axis is r.
func arcStep(r int64) int {
	n := (r + XYOne>>1) >> XYShift
	switch {
	case n < 3:
		return 90
	case n < 10:
		return 30
	case n < 15:
		return 18
	default:
		return 5
	}
}

// ellipseEx draws an elliptic arc with 16.16 center and half-axes.
// A negative thickness fills the arc: a full ellipse is filled as a convex
// polygon, a partial one as the wedge between the arc and the center.
func (p *Painter) ellipseEx(center, axes point, angle, arcStart, arcEnd int, c Color, thickness int, lineType LineType) {
	axes.x, axes.y = abs64(axes.x), abs64(axes.y)
	delta := arcStep(max(axes.x, axes.y))

	offs := p.arcPolygon(vec.Vec2{X: float64(axes.x), Y: float64(axes.y)},
		angle, arcStart, arcEnd, delta)

	v := make([]point, 0, len(offs)+1)
	prev := point{-1, -1}
	cx, cy := float64(center.x), float64(center.y)
	for _, o := range offs {
		fx, fy := cx+o.X, cy+o.Y
		var pt point
		pt.x = int64(math.RoundToEven(fx/XYOne)) << XYShift
		pt.y = int64(math.RoundToEven(fy/XYOne)) << XYShift
		pt.x += int64(math.RoundToEven(fx - float64(pt.x)))
		pt.y += int64(math.RoundToEven(fy - float64(pt.y)))
		if pt != prev {
			v = append(v, pt)
			prev = pt
		}
	}
	if len(v) == 1 {
		v = append(v[:0], center, center)
	}

	switch {
	case thickness >= 0:
		p.polyLine(v, false, c, thickness, lineType, XYShift)
	case arcEnd-arcStart >= 360:
		p.fillConvexPoly(v, c, lineType, XYShift)
	default:
		v = append(v, center)
		p.collectPolyEdges(v, c, lineType, XYShift, point{})
		p.fillEdgeCollection(c)
	}
}

// RotatedRect is a rectangle of the given size, centered at Center and
// rotated by Angle degrees.
type RotatedRect struct {
	Center vec.Vec2
	Size   vec.Vec2 // width and height
	Angle  float64
}

// Points returns the four corners of the rectangle.
func (r RotatedRect) Points() [4]vec.Vec2 {
	rad := r.Angle * math.Pi / 180
	b := math.Cos(rad) * 0.5
	a := math.Sin(rad) * 0.5

	var pt [4]vec.Vec2
	pt[0] = vec.Vec2{
		X: r.Center.X - a*r.Size.Y - b*r.Size.X,
		Y: r.Center.Y + b*r.Size.Y - a*r.Size.X,
	}
	pt[1] = vec.Vec2{
		X: r.Center.X + a*r.Size.Y - b*r.Size.X,
		Y: r.Center.Y - b*r.Size.Y - a*r.Size.X,
	}
	pt[2] = r.Center.Mul(2).Sub(pt[0])
	pt[3] = r.Center.Mul(2).Sub(pt[1])
	return pt
}
