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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// DefaultFlatness is the curve flattening tolerance, in device pixels,
// used when no positive tolerance is given.
const DefaultFlatness = 0.25

// Subpath is a flattened subpath in device space.
type Subpath struct {
	Points []vec.Vec2
	Closed bool
}

// flattener converts paths into polygons.
type flattener struct {
	ctm      matrix.Matrix
	flatness float64

	res     []Subpath
	cur     []vec.Vec2
	started bool
}

// Flatten applies m to the path p and approximates all curves by line
// segments which deviate at most flatness device pixels from the curve.
// Subpaths without any drawing command are dropped.
func Flatten(p path.Path, m matrix.Matrix, flatness float64) []Subpath {
	if !(flatness > 0) {
		flatness = DefaultFlatness
	}
	f := &flattener{ctm: m, flatness: flatness}

	var current, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			f.finish(false)
			current, start = pts[0], pts[0]
			f.cur = append(f.cur[:0:0], f.transform(current))
			f.started = true
		case path.CmdLineTo:
			if !f.started {
				continue
			}
			f.lineTo(pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			if !f.started {
				continue
			}
			f.flattenQuadratic(current, pts[0], pts[1])
			current = pts[1]
		case path.CmdCubeTo:
			if !f.started {
				continue
			}
			f.flattenCubic(current, pts[0], pts[1], pts[2])
			current = pts[2]
		case path.CmdClose:
			f.finish(true)
			current = start
		}
	}
	f.finish(false)
	return f.res
}

func (f *flattener) finish(closed bool) {
	if f.started && len(f.cur) > 1 {
		f.res = append(f.res, Subpath{Points: f.cur, Closed: closed})
	}
	f.cur = nil
	f.started = false
}

func (f *flattener) transform(v vec.Vec2) vec.Vec2 {
	m := f.ctm
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// transformLinear applies only the 2×2 linear part of the CTM, for
// tolerance checks where translation is irrelevant.
func (f *flattener) transformLinear(v vec.Vec2) vec.Vec2 {
	m := f.ctm
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

func (f *flattener) lineTo(to vec.Vec2) {
	f.cur = append(f.cur, f.transform(to))
}

// flattenQuadratic flattens the quadratic Bézier curve with start point p0,
// control point p1 and end point p2.
func (f *flattener) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	// the largest deviation from the chord is |P0 - 2*P1 + P2| / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if errDev := f.transformLinear(e).Length(); errDev > f.flatness {
		n = int(math.Ceil(math.Sqrt(errDev / f.flatness)))
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		f.lineTo(pt)
	}
}

// flattenCubic flattens the cubic Bézier curve p0, p1, p2, p3.  The number
// of segments follows Wang's formula.
func (f *flattener) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := f.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := f.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * f.flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		f.lineTo(pt)
	}
}

// fixedContour rounds device space points to fixed point numbers with
// the given number of fractional bits.
func fixedContour(pts []vec.Vec2, shift int) []image.Point {
	s := float64(int64(1) << shift)
	res := make([]image.Point, len(pts))
	for i, v := range pts {
		res[i] = image.Point{X: int(math.Round(v.X * s)), Y: int(math.Round(v.Y * s))}
	}
	return res
}

// FillPath fills the area enclosed by the subpaths of pa, transformed by m,
// with the even-odd rule.  Open subpaths are closed implicitly.  Curves
// are flattened with [DefaultFlatness] and the vertices are rounded to the
// precision given by the Shift field.
func (p *Painter) FillPath(pa path.Path, m matrix.Matrix, c Color) {
	p.checkShift()
	sub := Flatten(pa, m, 0)
	contours := make([][]image.Point, len(sub))
	for i, s := range sub {
		contours[i] = fixedContour(s.Points, p.Shift)
	}
	p.FillPoly(contours, c, image.Point{})
}

// StrokePath draws the subpaths of pa, transformed by m, as polylines with
// the current line type and thickness.
func (p *Painter) StrokePath(pa path.Path, m matrix.Matrix, c Color) {
	p.checkShift()
	for _, s := range Flatten(pa, m, 0) {
		p.Polylines([][]image.Point{fixedContour(s.Points, p.Shift)}, s.Closed, c)
	}
}
