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
	"cmp"
	"image"
	"slices"
)

// polyEdge is a non-horizontal polygon edge, oriented downwards.
type polyEdge struct {
	y0, y1 int   // first scanline and the scanline after the last one
	x      int64 // 16.16 x position at the current scanline
	dx     int64 // 16.16 x increment per scanline
	next   *polyEdge
}

// fillConvexPoly fills a convex polygon.  The vertices carry shift
// fractional bits.  The outline is drawn first with a line of the given
// type, then the interior is scanned with two active edges starting at the
// topmost vertex.
func (p *Painter) fillConvexPoly(v []point, c Color, lineType LineType, shift int) {
	s := p.Dst
	npts := len(v)
	if npts == 0 {
		return
	}

	delta := int64(1) << shift >> 1
	var delta1, delta2 int64
	if lineType < LineAA {
		delta1, delta2 = XYOne>>1, XYOne>>1
	} else {
		delta1, delta2 = XYOne-1, 0
	}

	p0 := v[npts-1]
	p0.x <<= XYShift - shift
	p0.y <<= XYShift - shift

	xmin, xmax := v[0].x, v[0].x
	ymin, ymax := v[0].y, v[0].y
	imin := 0
	for i, q := range v {
		if q.y < ymin {
			ymin = q.y
			imin = i
		}
		ymax = max(ymax, q.y)
		xmax = max(xmax, q.x)
		xmin = min(xmin, q.x)

		q.x <<= XYShift - shift
		q.y <<= XYShift - shift
		if lineType <= Line8 {
			if shift == 0 {
				s.line(p0.trunc(), q.trunc(), c, int(lineType))
			} else {
				s.line2(p0, q, c)
			}
		} else {
			s.lineAA(p0, q, c)
		}
		p0 = q
	}

	xmin = (xmin + delta) >> shift
	xmax = (xmax + delta) >> shift
	ymin = (ymin + delta) >> shift
	ymax = (ymax + delta) >> shift

	if npts < 3 || xmax < 0 || ymax < 0 || xmin >= int64(s.Width) || ymin >= int64(s.Height) {
		return
	}
	ymax = min(ymax, int64(s.Height-1))

	type chain struct {
		idx, di int
		x, dx   int64
		ye      int
	}
	var edge [2]chain
	edge[0].idx, edge[1].idx = imin, imin
	y := int(ymin)
	edge[0].ye, edge[1].ye = y, y
	edge[0].di, edge[1].di = 1, npts-1
	edge[0].x, edge[1].x = -XYOne, -XYOne

	edges := npts
	for {
		if lineType < LineAA || y < int(ymax) || y == int(ymin) {
			for i := range edge {
				if y < edge[i].ye {
					continue
				}
				idx0, di := edge[i].idx, edge[i].di
				idx := idx0 + di
				if idx >= npts {
					idx -= npts
				}
				for {
					more := edges > 0
					edges--
					if !more {
						break
					}
					ty := int((v[idx].y + delta) >> shift)
					if ty > y {
						xs := v[idx0].x << (XYShift - shift)
						xe := v[idx].x << (XYShift - shift)
						edge[i].ye = ty
						edge[i].dx = ((xe-xs)*2 + int64(ty-y)) / (2 * int64(ty-y))
						edge[i].x = xs
						edge[i].idx = idx
						break
					}
					idx0 = idx
					idx += di
					if idx >= npts {
						idx -= npts
					}
				}
			}
		}

		if edges < 0 {
			break
		}

		if y >= 0 {
			left, right := 0, 1
			if edge[0].x > edge[1].x {
				left, right = 1, 0
			}
			x1 := int((edge[left].x + delta1) >> XYShift)
			x2 := int((edge[right].x + delta2) >> XYShift)
			if x2 >= 0 && x1 < s.Width {
				s.hline(y, max(x1, 0), min(x2, s.Width-1), c)
			}
		}

		edge[0].x += edge[0].dx
		edge[1].x += edge[1].dx
		y++
		if y > int(ymax) {
			break
		}
	}
}

// collectPolyEdges draws the outline of one contour and appends its
// non-horizontal edges to p.edges.  The vertices carry shift fractional
// bits and are translated by offset (in the same units).
func (p *Painter) collectPolyEdges(v []point, c Color, lineType LineType, shift int, offset point) {
	s := p.Dst
	count := len(v)
	if count == 0 {
		return
	}
	delta := offset.y + (int64(1)<<shift)>>1

	pt0 := v[count-1]
	pt0.x = (pt0.x + offset.x) << (XYShift - shift)
	pt0.y = (pt0.y + delta) >> shift

	p.edges = slices.Grow(p.edges, count)
	for i := range count {
		pt1 := v[i]
		pt1.x = (pt1.x + offset.x) << (XYShift - shift)
		pt1.y = (pt1.y + delta) >> shift

		if lineType < LineAA {
			t0 := point{(pt0.x + XYOne>>1) >> XYShift, pt0.y}
			t1 := point{(pt1.x + XYOne>>1) >> XYShift, pt1.y}
			s.line(t0.pixel(), t1.pixel(), c, int(lineType))
		} else {
			t0 := point{pt0.x, pt0.y << XYShift}
			t1 := point{pt1.x, pt1.y << XYShift}
			s.lineAA(t0, t1, c)
		}

		if pt0.y != pt1.y {
			e := polyEdge{dx: (pt1.x - pt0.x) / (pt1.y - pt0.y)}
			if pt0.y < pt1.y {
				e.y0, e.y1, e.x = int(pt0.y), int(pt1.y), pt0.x
			} else {
				e.y0, e.y1, e.x = int(pt1.y), int(pt0.y), pt1.x
			}
			p.edges = append(p.edges, e)
		}
		pt0 = pt1
	}
}

// fillEdgeCollection fills the region enclosed by p.edges using the
// even-odd rule and clears the edge list.
func (p *Painter) fillEdgeCollection(c Color) {
	s := p.Dst
	edges := p.edges
	defer func() { p.edges = p.edges[:0] }()

	total := len(edges)
	if total < 2 {
		return
	}

	yMin, yMax := edges[0].y0, edges[0].y1
	xMin, xMax := edges[0].x, edges[0].x
	for i := range edges {
		e := &edges[i]
		x1 := e.x + int64(e.y1-e.y0)*e.dx
		yMin = min(yMin, e.y0)
		yMax = max(yMax, e.y1)
		xMin = min(xMin, e.x, x1)
		xMax = max(xMax, e.x, x1)
	}
	if yMax < 0 || yMin >= s.Height || xMax < 0 || xMin >= int64(s.Width)<<XYShift {
		return
	}

	slices.SortFunc(edges, func(a, b polyEdge) int {
		if a.y0 != b.y0 {
			return cmp.Compare(a.y0, b.y0)
		}
		if a.x != b.x {
			return cmp.Compare(a.x, b.x)
		}
		return cmp.Compare(a.dx, b.dx)
	})

	// head is the list sentinel; sentinel ends the sorted edge table.
	var head polyEdge
	sentinel := polyEdge{y0: maxInt}
	edgeAt := func(i int) *polyEdge {
		if i < total {
			return &edges[i]
		}
		return &sentinel
	}

	i := 0
	e := edgeAt(0)
	yMax = min(yMax, s.Height)

	for y := e.y0; y < yMax; y++ {
		draw := false
		clipped := y < 0

		prelast := &head
		last := head.next
		for last != nil || e.y0 == y {
			if last != nil && last.y1 == y {
				// the edge ends above this scanline
				prelast.next = last.next
				last = last.next
				continue
			}
			keep := prelast
			if last != nil && (e.y0 > y || last.x < e.x) {
				prelast = last
				last = last.next
			} else if i < total {
				// the next edge starts on this scanline
				prelast.next = e
				e.next = last
				prelast = e
				i++
				e = edgeAt(i)
			} else {
				break
			}

			if draw {
				if !clipped {
					var x1, x2 int
					if keep.x > prelast.x {
						x1 = int((prelast.x + XYOne - 1) >> XYShift)
						x2 = int(keep.x >> XYShift)
					} else {
						x1 = int((keep.x + XYOne - 1) >> XYShift)
						x2 = int(prelast.x >> XYShift)
					}
					if x1 < s.Width && x2 >= 0 {
						s.hline(y, max(x1, 0), min(x2, s.Width-1), c)
					}
				}
				keep.x += keep.dx
				prelast.x += prelast.dx
			}
			draw = !draw
		}

		sortActive(&head)
	}
}

// sortActive orders the active edge list by x, using bubble sort passes.
// The list is nearly sorted after each scanline, so this is cheap.
func sortActive(head *polyEdge) {
	var stop *polyEdge
	for {
		prelast := head
		last := head.next
		var lastExchange *polyEdge
		for last != stop && last.next != nil {
			te := last.next
			if last.x > te.x {
				prelast.next = te
				last.next = te.next
				te.next = last
				prelast = te
				lastExchange = prelast
			} else {
				prelast = last
				last = te
			}
		}
		if lastExchange == nil {
			return
		}
		stop = lastExchange
		if stop == head.next || stop == head {
			return
		}
	}
}

// pixel converts a point holding plain pixel coordinates.
func (p point) pixel() image.Point {
	return image.Point{X: int(p.x), Y: int(p.y)}
}

const maxInt = int(^uint(0) >> 1)
