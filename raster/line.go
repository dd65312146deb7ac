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

	"seehuhn.de/go/vision"
)

// LineIterator enumerates the pixels of a digital line segment.
//
// Typical use:
//
//	it := NewLineIterator(bounds, p1, p2, 8, false)
//	for range it.Count() {
//		visit(it.Pos())
//		it.Next()
//	}
type LineIterator struct {
	pos    image.Point
	offset int
	count  int

	err        int
	plusDelta  int
	minusDelta int

	// plus is added in addition to minus whenever the error term is
	// negative.
	plus, minus       image.Point
	plusOff, minusOff int
}

// NewLineIterator returns an iterator over the pixels of the segment p1-p2,
// clipped to r.  Connectivity must be 4 or 8.  If leftToRight is set, the
// endpoints are swapped where needed so that x never decreases along the
// line.  A segment outside r yields zero pixels.
func NewLineIterator(r image.Rectangle, p1, p2 image.Point, connectivity int, leftToRight bool) *LineIterator {
	it := &LineIterator{}
	it.init(r, 0, 0, p1, p2, connectivity, leftToRight)
	return it
}

// LineIterator returns an iterator over the pixels of the segment p1-p2
// on s.  In addition to the position, the iterator tracks the byte offset
// of the current pixel in s.Pix.
func (s *Surface) LineIterator(p1, p2 image.Point, connectivity int, leftToRight bool) *LineIterator {
	it := &LineIterator{}
	it.init(s.Bounds(), s.Stride, s.ElemSize(), p1, p2, connectivity, leftToRight)
	return it
}

func (it *LineIterator) init(r image.Rectangle, stride, elemSize int, p1, p2 image.Point, connectivity int, leftToRight bool) {
	if connectivity != 4 && connectivity != 8 {
		panic("raster: connectivity must be 4 or 8")
	}
	*it = LineIterator{}

	if !p1.In(r) || !p2.In(r) {
		if !ClipLineRect(r, &p1, &p2) {
			return
		}
	}

	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	stepX, stepY := 1, 1
	if dx < 0 {
		if leftToRight {
			dx, dy = -dx, -dy
			p1 = p2
		} else {
			dx = -dx
			stepX = -1
		}
	}
	if dy < 0 {
		dy = -dy
		stepY = -1
	}

	vert := dy > dx
	if vert {
		dx, dy = dy, dx
		stepX, stepY = stepY, stepX
	}

	it.minus = image.Point{X: stepX}
	if connectivity == 8 {
		it.err = dx - 2*dy
		it.plusDelta = 2 * dx
		it.minusDelta = -2 * dy
		it.plus = image.Point{Y: stepY}
		it.count = dx + 1
	} else {
		it.err = 0
		it.plusDelta = 2*dx + 2*dy
		it.minusDelta = -2 * dy
		it.plus = image.Point{X: -stepX, Y: stepY}
		it.count = dx + dy + 1
	}
	if vert {
		it.plus.X, it.plus.Y = it.plus.Y, it.plus.X
		it.minus.X, it.minus.Y = it.minus.Y, it.minus.X
	}

	it.pos = p1
	it.offset = (p1.Y-r.Min.Y)*stride + (p1.X-r.Min.X)*elemSize
	it.plusOff = it.plus.Y*stride + it.plus.X*elemSize
	it.minusOff = it.minus.Y*stride + it.minus.X*elemSize
}

// Count returns the total number of pixels on the line.
func (it *LineIterator) Count() int {
	return it.count
}

// Pos returns the current pixel.
func (it *LineIterator) Pos() image.Point {
	return it.pos
}

// Offset returns the byte offset of the current pixel, for iterators
// obtained from [Surface.LineIterator].
func (it *LineIterator) Offset() int {
	return it.offset
}

// Next advances to the next pixel.
func (it *LineIterator) Next() {
	if it.err < 0 {
		it.err += it.minusDelta + it.plusDelta
		it.pos = it.pos.Add(it.minus).Add(it.plus)
		it.offset += it.minusOff + it.plusOff
	} else {
		it.err += it.minusDelta
		it.pos = it.pos.Add(it.minus)
		it.offset += it.minusOff
	}
}

// line draws an aliased line between two pixel positions.
// Connectivity 0 and 1 are accepted as aliases for 8 and 4.
func (s *Surface) line(p1, p2 image.Point, c Color, connectivity int) {
	switch connectivity {
	case 0:
		connectivity = 8
	case 1:
		connectivity = 4
	}
	var it LineIterator
	it.init(s.Bounds(), s.Stride, s.ElemSize(), p1, p2, connectivity, true)
	n := len(c)
	for range it.count {
		copy(s.Pix[it.offset:it.offset+n], c)
		it.Next()
	}
}

// line2 draws an aliased line between two 16.16 fixed point positions,
// rounding to the nearest pixel center along both axes.
func (s *Surface) line2(p1, p2 point, c Color) {
	if !clipFixed(s.Size(), &p1, &p2) {
		return
	}

	dx, dy := p2.x-p1.x, p2.y-p1.y
	ax, ay := abs64(dx), abs64(dy)

	var xStep, yStep int64
	var ecount int
	if ax > ay {
		if dx < 0 {
			dy = -dy
			p1, p2 = p2, p1
		}
		xStep = XYOne
		yStep = (dy << XYShift) / (ax | 1)
		ecount = int((p2.x - p1.x) >> XYShift)
	} else {
		if dy < 0 {
			dx = -dx
			p1, p2 = p2, p1
		}
		xStep = (dx << XYShift) / (ay | 1)
		yStep = XYOne
		ecount = int((p2.y - p1.y) >> XYShift)
	}

	p1.x += XYOne >> 1
	p1.y += XYOne >> 1

	s.putPoint(int((p2.x+XYOne>>1)>>XYShift), int((p2.y+XYOne>>1)>>XYShift), c)

	if ax > ay {
		x := p1.x >> XYShift
		for ; ecount >= 0; ecount-- {
			s.putPoint(int(x), int(p1.y>>XYShift), c)
			x++
			p1.y += yStep
		}
	} else {
		y := p1.y >> XYShift
		for ; ecount >= 0; ecount-- {
			s.putPoint(int(p1.x>>XYShift), int(y), c)
			p1.x += xStep
			y++
		}
	}
}

// putPoint writes c at (x, y) if the pixel lies inside the surface.
func (s *Surface) putPoint(x, y int, c Color) {
	if x >= 0 && x < s.Width && y >= 0 && y < s.Height {
		s.set(x, y, c)
	}
}

// lineAA draws an antialiased line between two 16.16 fixed point
// positions.  Each step along the major axis blends three pixels across
// the line, with weights taken from filterTable and tapered at both ends.
//
// Surfaces without 8-bit depth or with 2 channels fall back to an aliased
// line through the truncated endpoints.
func (s *Surface) lineAA(p1, p2 point, c Color) {
	if !s.antialiased() {
		vision.Logger().Debug("antialiasing not supported, drawing aliased line",
			"channels", s.Channels, "depth", s.Depth)
		s.line(p1.trunc(), p2.trunc(), c, 8)
		return
	}

	if !clipFixed(s.Size(), &p1, &p2) {
		return
	}

	dx, dy := p2.x-p1.x, p2.y-p1.y
	ax, ay := abs64(dx), abs64(dy)

	var xStep, yStep int64
	var ecount int
	var slope int
	var i, j int64
	if ax > ay {
		if dx < 0 {
			dy = -dy
			p1, p2 = p2, p1
		}
		xStep = XYOne
		yStep = (dy << XYShift) / (ax | 1)
		p2.x += XYOne
		ecount = int((p2.x >> XYShift) - (p1.x >> XYShift))
		j = -(p1.x & (XYOne - 1))
		p1.y += ((yStep * j) >> XYShift) + (XYOne >> 1)
		slope = int((yStep >> (XYShift - 5)) & 0x3f)
		if yStep < 0 {
			slope ^= 0x3f
		}
		i = (p1.x >> (XYShift - 7)) & 0x78
		j = (p2.x >> (XYShift - 7)) & 0x78
	} else {
		if dy < 0 {
			dx = -dx
			p1, p2 = p2, p1
		}
		xStep = (dx << XYShift) / (ay | 1)
		yStep = XYOne
		p2.y += XYOne
		ecount = int((p2.y >> XYShift) - (p1.y >> XYShift))
		j = -(p1.y & (XYOne - 1))
		p1.x += ((xStep * j) >> XYShift) + (XYOne >> 1)
		slope = int((xStep >> (XYShift - 5)) & 0x3f)
		if xStep < 0 {
			slope ^= 0x3f
		}
		i = (p1.y >> (XYShift - 7)) & 0x78
		j = (p2.y >> (XYShift - 7)) & 0x78
	}

	if slope&0x20 != 0 {
		slope = 0x100
	} else {
		slope = slopeCorrTable[slope]
	}
	ep := endPointTable(slope, int(i), int(j))

	scount := 0
	if ax > ay {
		x := int(p1.x >> XYShift)
		for ; ecount >= 0; ecount-- {
			if x >= 0 && x < s.Width {
				y := int(p1.y>>XYShift) - 1
				corr := ep[epIndex(scount)*3+epIndex(ecount)]
				dist := int(p1.y>>(XYShift-5)) & 31
				s.blend(x, y, c, (corr*filterTable[dist+32]>>8)&0xff)
				s.blend(x, y+1, c, (corr*filterTable[dist]>>8)&0xff)
				s.blend(x, y+2, c, (corr*filterTable[63-dist]>>8)&0xff)
			}
			x++
			p1.y += yStep
			scount++
		}
	} else {
		y := int(p1.y >> XYShift)
		for ; ecount >= 0; ecount-- {
			if y >= 0 && y < s.Height {
				x := int(p1.x>>XYShift) - 1
				corr := ep[epIndex(scount)*3+epIndex(ecount)]
				dist := int(p1.x>>(XYShift-5)) & 31
				s.blend(x, y, c, (corr*filterTable[dist+32]>>8)&0xff)
				s.blend(x+1, y, c, (corr*filterTable[dist]>>8)&0xff)
				s.blend(x+2, y, c, (corr*filterTable[63-dist]>>8)&0xff)
			}
			y++
			p1.x += xStep
			scount++
		}
	}
}

// endPointTable computes the 3×3 end-point correction table of an
// antialiased line.  The row is selected by the distance from the start
// (0, 1, or 2 and more steps), the column by the distance to the end.
// i and j are the 4-bit sub-pixel positions of start and end, scaled by 8.
func endPointTable(slope, i, j int) [9]int {
	t0 := slope << 7
	t1 := ((0x78 - i) | 4) * slope
	t2 := (j | 4) * slope

	var ep [9]int
	ep[0] = 0
	ep[8] = slope
	ep[1] = ((((j - i) & 0x78) | 4) * slope >> 8) & 0x1ff
	ep[3] = ep[1]
	ep[2] = (t1 >> 8) & 0x1ff
	ep[4] = ((((j - i) + 0x80) | 4) * slope >> 8) & 0x1ff
	ep[5] = ((t1 + t0) >> 8) & 0x1ff
	ep[6] = (t2 >> 8) & 0x1ff
	ep[7] = ((t2 + t0) >> 8) & 0x1ff
	return ep
}

// epIndex maps a step count to 0, 1 or 2.
func epIndex(n int) int {
	if n >= 2 {
		return 2
	}
	return n
}

// blend moves pixel (x, y) towards c by a/256, twice.  The pixel is
// skipped if it lies outside the surface.  Only the 8-bit channels
// present in the surface are touched.
func (s *Surface) blend(x, y int, c Color, a int) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return
	}
	px := s.Pix[y*s.Stride+x*s.Channels:]
	for k := range s.Channels {
		v := int(px[k])
		t := int(c[k])
		v += ((t-v)*a + 127) >> 8
		v += ((t-v)*a + 127) >> 8
		px[k] = uint8(v)
	}
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
