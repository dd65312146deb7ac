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
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// LineType selects how lines and polygon outlines are rasterized.
type LineType int

// These are the supported line types.
const (
	Line4  LineType = 4  // 4-connected aliased lines
	Line8  LineType = 8  // 8-connected aliased lines
	LineAA LineType = 16 // antialiased lines
)

// Filled can be used as Painter.Thickness to fill closed shapes.
const Filled = -1

// Painter draws shapes onto a surface.
//
// The fields control how shapes are drawn and may be changed between
// calls.  A Painter is not safe for concurrent use.
type Painter struct {
	// Dst is the surface to draw on.
	Dst *Surface

	// LineType selects aliased or antialiased drawing.  On surfaces with
	// more than 8 bits per channel, LineAA is treated as Line8.
	LineType LineType

	// Thickness is the line width in pixels.  For rectangles, circles and
	// ellipses a negative value (see [Filled]) fills the shape.
	Thickness int

	// Shift is the number of fractional bits in all point coordinates and
	// radii passed to the drawing methods, 0 to [MaxShift].
	Shift int

	// Cap selects the end caps of lines thicker than one pixel.
	// LineCapRound adds half-disks at both ends, LineCapSquare extends the
	// line by half the thickness, LineCapButt ends the line at the
	// endpoints.  Caps are also drawn at the vertices of polylines.
	Cap graphics.LineCapStyle

	edges []polyEdge
	arcs  *lru.Cache[arcKey, []vec.Vec2]
}

// NewPainter returns a painter drawing 1 pixel wide, 8-connected lines
// with round caps onto dst.
func NewPainter(dst *Surface) *Painter {
	arcs, err := lru.New[arcKey, []vec.Vec2](arcCacheSize)
	if err != nil {
		panic(err)
	}
	return &Painter{
		Dst:       dst,
		LineType:  Line8,
		Thickness: 1,
		Cap:       graphics.LineCapRound,
		arcs:      arcs,
	}
}

// lineType returns the line type to use on the destination surface.
func (p *Painter) lineType() LineType {
	switch p.LineType {
	case Line4, Line8:
		return p.LineType
	case LineAA:
		if p.Dst.Depth != 1 {
			return Line8
		}
		return LineAA
	default:
		panic(fmt.Sprintf("raster: invalid line type %d", p.LineType))
	}
}

func (p *Painter) checkShift() {
	checkShift(p.Shift)
}

func (p *Painter) checkThickness(allowFill bool) {
	t := p.Thickness
	if t > MaxThickness || (!allowFill && t <= 0) {
		panic(fmt.Sprintf("raster: thickness %d out of range", t))
	}
}

func fromImage(pt image.Point) point {
	return point{int64(pt.X), int64(pt.Y)}
}

// Line draws a line segment from p1 to p2.  Thickness must be positive.
func (p *Painter) Line(p1, p2 image.Point, c Color) {
	p.checkThickness(false)
	p.checkShift()
	p.Dst.checkColor(c)
	p.thickLine(fromImage(p1), fromImage(p2), c, p.Thickness, p.lineType(), 3, p.Shift)
}

// LineFixed draws a line segment between two 26.6 fixed point positions.
// Painter.Shift does not apply.  Thickness must be positive.
func (p *Painter) LineFixed(p1, p2 fixed.Point26_6, c Color) {
	p.checkThickness(false)
	p.Dst.checkColor(c)
	q1 := fromImage(FromFixed26_6(p1, XYShift))
	q2 := fromImage(FromFixed26_6(p2, XYShift))
	p.thickLine(q1, q2, c, p.Thickness, p.lineType(), 3, XYShift)
}

// ArrowedLine draws an arrow from p1 pointing to p2.  The two barbs at p2
// are tipLength times the length of the arrow, at 45 degrees to the shaft.
func (p *Painter) ArrowedLine(p1, p2 image.Point, c Color, tipLength float64) {
	tipSize := math.Hypot(float64(p1.X-p2.X), float64(p1.Y-p2.Y)) * tipLength

	p.Line(p1, p2, c)

	angle := math.Atan2(float64(p1.Y-p2.Y), float64(p1.X-p2.X))
	for _, barb := range []float64{angle + math.Pi/4, angle - math.Pi/4} {
		q := image.Point{
			X: int(math.RoundToEven(float64(p2.X) + tipSize*math.Cos(barb))),
			Y: int(math.RoundToEven(float64(p2.Y) + tipSize*math.Sin(barb))),
		}
		p.Line(q, p2, c)
	}
}

// Rectangle draws the axis-parallel rectangle with opposite corners p1 and
// p2, both included.
func (p *Painter) Rectangle(p1, p2 image.Point, c Color) {
	p.checkThickness(true)
	p.checkShift()
	p.Dst.checkColor(c)

	pts := []point{
		fromImage(p1),
		{int64(p2.X), int64(p1.Y)},
		fromImage(p2),
		{int64(p1.X), int64(p2.Y)},
	}
	if p.Thickness >= 0 {
		p.polyLine(pts, true, c, p.Thickness, p.lineType(), p.Shift)
	} else {
		p.fillConvexPoly(pts, c, p.lineType(), p.Shift)
	}
}

// RectangleRect draws r.  The maximum point of r is excluded, following
// the usual [image.Rectangle] convention.  Empty rectangles are ignored.
func (p *Painter) RectangleRect(r image.Rectangle, c Color) {
	if r.Empty() {
		return
	}
	p.checkShift()
	one := image.Point{X: 1 << p.Shift, Y: 1 << p.Shift}
	p.Rectangle(r.Min, r.Max.Sub(one), c)
}

// Circle draws a circle.  A negative thickness fills the disk.
func (p *Painter) Circle(center image.Point, radius int, c Color) {
	if radius < 0 {
		panic("raster: negative radius")
	}
	p.checkThickness(true)
	p.checkShift()
	p.Dst.checkColor(c)

	lt := p.lineType()
	if p.Thickness > 1 || lt != Line8 || p.Shift > 0 {
		ctr := toFixed(center, p.Shift)
		r := int64(radius) << (XYShift - p.Shift)
		p.ellipseEx(ctr, point{r, r}, 0, 0, 360, c, p.Thickness, lt)
		return
	}
	p.circle(center, radius, c, p.Thickness < 0)
}

// Ellipse draws an elliptic arc, or the filled wedge of the arc for a
// negative thickness.
//
// The ellipse has half-axes axes.X and axes.Y and is rotated by angle
// degrees; the arc runs from startAngle to endAngle degrees.  Angles are
// rounded to whole degrees.
func (p *Painter) Ellipse(center, axes image.Point, angle, startAngle, endAngle float64, c Color) {
	if axes.X < 0 || axes.Y < 0 {
		panic("raster: negative ellipse axes")
	}
	p.checkThickness(true)
	p.checkShift()
	p.Dst.checkColor(c)

	p.ellipseEx(toFixed(center, p.Shift), toFixed(axes, p.Shift),
		int(math.RoundToEven(angle)), int(math.RoundToEven(startAngle)),
		int(math.RoundToEven(endAngle)), c, p.Thickness, p.lineType())
}

// EllipseBox draws the ellipse inscribed in box.  Box coordinates are in
// pixels; Painter.Shift does not apply.
func (p *Painter) EllipseBox(box RotatedRect, c Color) {
	if box.Size.X < 0 || box.Size.Y < 0 {
		panic("raster: negative ellipse size")
	}
	p.checkThickness(true)
	p.Dst.checkColor(c)

	cx, cy := math.RoundToEven(box.Center.X), math.RoundToEven(box.Center.Y)
	center := point{
		x: int64(cx)<<XYShift + int64(math.RoundToEven((box.Center.X-cx)*XYOne)),
		y: int64(cy)<<XYShift + int64(math.RoundToEven((box.Center.Y-cy)*XYOne)),
	}
	w, h := math.RoundToEven(box.Size.X), math.RoundToEven(box.Size.Y)
	axes := point{
		x: int64(w)<<(XYShift-1) + int64(math.RoundToEven((box.Size.X-w)*(XYOne>>1))),
		y: int64(h)<<(XYShift-1) + int64(math.RoundToEven((box.Size.Y-h)*(XYOne>>1))),
	}
	angle := int(math.RoundToEven(box.Angle))
	p.ellipseEx(center, axes, angle, 0, 360, c, p.Thickness, p.lineType())
}

// FillConvexPoly fills a convex polygon.  Thickness is ignored.
// Non-convex input is drawn, but not necessarily filled correctly.
func (p *Painter) FillConvexPoly(pts []image.Point, c Color) {
	p.checkShift()
	p.Dst.checkColor(c)
	if len(pts) == 0 {
		return
	}

	v := make([]point, len(pts))
	for i, pt := range pts {
		v[i] = fromImage(pt)
	}
	p.fillConvexPoly(v, c, p.lineType(), p.Shift)
}

// FillPoly fills the area bounded by one or more contours, using the
// even-odd rule.  All vertices are translated by offset.
// Thickness is ignored.
func (p *Painter) FillPoly(contours [][]image.Point, c Color, offset image.Point) {
	p.checkShift()
	p.Dst.checkColor(c)

	lt := p.lineType()
	var v []point
	for _, contour := range contours {
		v = v[:0]
		for _, pt := range contour {
			v = append(v, fromImage(pt))
		}
		p.collectPolyEdges(v, c, lt, p.Shift, fromImage(offset))
	}
	p.fillEdgeCollection(c)
}

// Polylines draws one or more polygonal chains.  If closed is set, the last
// vertex of each chain is connected to the first.
func (p *Painter) Polylines(contours [][]image.Point, closed bool, c Color) {
	if p.Thickness < 0 {
		panic(fmt.Sprintf("raster: thickness %d out of range", p.Thickness))
	}
	p.checkThickness(true)
	p.checkShift()
	p.Dst.checkColor(c)

	lt := p.lineType()
	var v []point
	for _, contour := range contours {
		v = v[:0]
		for _, pt := range contour {
			v = append(v, fromImage(pt))
		}
		p.polyLine(v, closed, c, p.Thickness, lt, p.Shift)
	}
}

// DrawContours draws contour outlines, or fills the contours if
// Thickness is negative.  All vertices are translated by offset.
//
// If hierarchy is not nil, it has one entry per contour, holding the
// indices of the next and previous contour on the same level, of the
// first child and of the parent, or -1 where there is none.
//
// If idx is non-negative, contour idx is drawn together with its
// descendants up to maxLevel levels down.  If idx is negative and either
// hierarchy is nil or maxLevel is 0, all contours are drawn.  Otherwise
// contour 0 and the contours following it on the same level are drawn,
// together with their descendants down to level maxLevel-1; a negative
// maxLevel draws contour 0 only, with descendants -maxLevel levels down.
//
// Filled contours are combined using the even-odd rule, so that nested
// contours cut holes into their parents.
func (p *Painter) DrawContours(contours [][]image.Point, hierarchy [][4]int, idx, maxLevel int, offset image.Point, c Color) {
	n := len(contours)
	if idx >= n {
		panic(fmt.Sprintf("raster: contour index %d out of range", idx))
	}
	if hierarchy != nil && len(hierarchy) != n {
		panic("raster: hierarchy does not match contours")
	}
	p.checkThickness(true)
	p.checkShift()
	p.Dst.checkColor(c)
	if n == 0 {
		return
	}

	lt := p.lineType()
	fill := p.Thickness < 0
	off := fromImage(offset)
	seen := make([]bool, n)

	var v []point
	draw := func(i int) {
		if seen[i] {
			return
		}
		seen[i] = true
		v = v[:0]
		for _, pt := range contours[i] {
			v = append(v, point{int64(pt.X) + off.x, int64(pt.Y) + off.y})
		}
		if fill {
			p.collectPolyEdges(v, c, lt, p.Shift, point{})
		} else {
			p.polyLine(v, true, c, p.Thickness, lt, p.Shift)
		}
	}

	// visit draws contour i and its descendants up to depth levels down,
	// depth first.
	var visit func(i, depth int)
	visit = func(i, depth int) {
		draw(i)
		if depth <= 0 {
			return
		}
		for j := hierarchy[i][2]; j >= 0 && j < n && !seen[j]; j = hierarchy[j][0] {
			visit(j, depth-1)
		}
	}

	switch {
	case idx >= 0 && (hierarchy == nil || maxLevel <= 0):
		draw(idx)
	case idx >= 0:
		visit(idx, maxLevel)
	case hierarchy == nil || maxLevel == 0:
		for i := range n {
			draw(i)
		}
	case maxLevel < 0:
		visit(0, -maxLevel)
	default:
		for j := 0; j >= 0 && j < n && !seen[j]; j = hierarchy[j][0] {
			visit(j, maxLevel-1)
		}
	}

	if fill {
		p.fillEdgeCollection(c)
	}
}

// polyLine draws a polygonal chain with vertices carrying shift fractional
// bits.  Caps are requested at every vertex, and at the start of open
// chains.
func (p *Painter) polyLine(v []point, closed bool, c Color, thickness int, lineType LineType, shift int) {
	count := len(v)
	if count == 0 {
		return
	}
	if thickness < 0 {
		panic("raster: negative polyline thickness")
	}
	checkShift(shift)

	i, flags := 0, 3
	if closed {
		i, flags = count-1, 2
	}
	p0 := v[i]
	if !closed {
		i = 1
	} else {
		i = 0
	}
	for ; i < count; i++ {
		p.thickLine(p0, v[i], c, thickness, lineType, flags, shift)
		p0 = v[i]
		flags = 2
	}
}

// thickLine draws one segment with endpoints carrying shift fractional
// bits.  Bit 0 of flags requests a cap at p0, bit 1 a cap at p1.
func (p *Painter) thickLine(p0, p1 point, c Color, thickness int, lineType LineType, flags int, shift int) {
	s := p.Dst
	p0.x <<= XYShift - shift
	p0.y <<= XYShift - shift
	p1.x <<= XYShift - shift
	p1.y <<= XYShift - shift

	if thickness <= 1 {
		switch {
		case lineType >= LineAA:
			s.lineAA(p0, p1, c)
		case lineType == Line4 || shift == 0:
			s.line(p0.round(), p1.round(), c, int(lineType))
		default:
			s.line2(p0, p1, c)
		}
		return
	}

	dx := float64(p0.x-p1.x) / XYOne
	dy := float64(p1.y-p0.y) / XYOne
	r := dx*dx + dy*dy
	odd := thickness & 1
	half := int64(thickness) << (XYShift - 1)

	if math.Abs(r) > epsilon {
		length := math.Sqrt(r)
		r = (float64(half) + float64(odd)*XYOne*0.5) / length
		dp := point{
			x: int64(math.RoundToEven(dy * r)),
			y: int64(math.RoundToEven(dx * r)),
		}

		q0, q1 := p0, p1
		if p.Cap == graphics.LineCapSquare {
			// extend by half the thickness along the segment
			ux := -dx / length * float64(half)
			uy := dy / length * float64(half)
			ext := point{int64(math.RoundToEven(ux)), int64(math.RoundToEven(uy))}
			if flags&1 != 0 {
				q0.x -= ext.x
				q0.y -= ext.y
			}
			if flags&2 != 0 {
				q1.x += ext.x
				q1.y += ext.y
			}
		}

		pt := []point{
			{q0.x + dp.x, q0.y + dp.y},
			{q0.x - dp.x, q0.y - dp.y},
			{q1.x - dp.x, q1.y - dp.y},
			{q1.x + dp.x, q1.y + dp.y},
		}
		p.fillConvexPoly(pt, c, lineType, XYShift)
	}

	if p.Cap != graphics.LineCapRound {
		return
	}
	for i := range 2 {
		if flags&(i+1) != 0 {
			if lineType < LineAA {
				center := p0.round()
				p.circle(center, int((half+XYOne>>1)>>XYShift), c, true)
			} else {
				p.ellipseEx(p0, point{half, half}, 0, 0, 360, c, -1, lineType)
			}
		}
		p0 = p1
	}
}

// circle draws a circle with the midpoint algorithm, using 8-way symmetry.
// If the whole circle fits the surface, per-pixel clipping is skipped.
func (p *Painter) circle(center image.Point, radius int, c Color, fill bool) {
	s := p.Dst
	w, h := s.Width, s.Height
	err, dx, dy, plus, minus := 0, radius, 0, 1, (radius<<1)-1
	inside := center.X >= radius && center.X < w-radius &&
		center.Y >= radius && center.Y < h-radius

	for dx >= dy {
		y11, y12 := center.Y-dy, center.Y+dy
		y21, y22 := center.Y-dx, center.Y+dx
		x11, x12 := center.X-dx, center.X+dx
		x21, x22 := center.X-dy, center.X+dy

		if inside {
			if fill {
				s.hline(y11, x11, x12, c)
				s.hline(y12, x11, x12, c)
				s.hline(y21, x21, x22, c)
				s.hline(y22, x21, x22, c)
			} else {
				s.set(x11, y11, c)
				s.set(x11, y12, c)
				s.set(x12, y11, c)
				s.set(x12, y12, c)
				s.set(x21, y21, c)
				s.set(x21, y22, c)
				s.set(x22, y21, c)
				s.set(x22, y22, c)
			}
		} else if x11 < w && x12 >= 0 && y21 < h && y22 >= 0 {
			p.circleSpan(y11, x11, x12, c, fill)
			p.circleSpan(y12, x11, x12, c, fill)
			if x21 < w && x22 >= 0 {
				p.circleSpan(y21, x21, x22, c, fill)
				p.circleSpan(y22, x21, x22, c, fill)
			}
		}

		dy++
		err += plus
		plus += 2
		if err > 0 {
			err -= minus
			dx--
			minus -= 2
		}
	}
}

// circleSpan draws the two symmetric pixels x1, x2 of row y, or the span
// between them when filling, with clipping.
func (p *Painter) circleSpan(y, x1, x2 int, c Color, fill bool) {
	s := p.Dst
	if y < 0 || y >= s.Height {
		return
	}
	if fill {
		s.hline(y, max(x1, 0), min(x2, s.Width-1), c)
		return
	}
	if x1 >= 0 {
		s.set(x1, y, c)
	}
	if x2 < s.Width {
		s.set(x2, y, c)
	}
}

const (
	arcCacheSize = 64
	epsilon      = 2.220446049250313e-16
)
