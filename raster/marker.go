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

import "image"

// MarkerType selects the glyph drawn by [Painter.DrawMarker].
type MarkerType int

// These are the supported marker shapes.
const (
	MarkerCross MarkerType = iota
	MarkerTiltedCross
	MarkerStar
	MarkerDiamond
	MarkerSquare
	MarkerTriangleUp
	MarkerTriangleDown
)

func (m MarkerType) String() string {
	switch m {
	case MarkerCross:
		return "cross"
	case MarkerTiltedCross:
		return "tilted cross"
	case MarkerStar:
		return "star"
	case MarkerDiamond:
		return "diamond"
	case MarkerSquare:
		return "square"
	case MarkerTriangleUp:
		return "triangle up"
	case MarkerTriangleDown:
		return "triangle down"
	default:
		return "unknown"
	}
}

// DrawMarker draws a marker of the given size centered at pos, using the
// current line type and thickness.  Unknown marker types are drawn as a
// cross.  Marker coordinates are always whole pixels.
func (p *Painter) DrawMarker(pos image.Point, c Color, kind MarkerType, size int) {
	saved := p.Shift
	p.Shift = 0
	defer func() { p.Shift = saved }()

	h := size / 2
	at := func(dx, dy int) image.Point {
		return image.Point{X: pos.X + dx, Y: pos.Y + dy}
	}

	switch kind {
	case MarkerTiltedCross:
		p.Line(at(-h, -h), at(h, h), c)
		p.Line(at(h, -h), at(-h, h), c)

	case MarkerStar:
		p.Line(at(-h, 0), at(h, 0), c)
		p.Line(at(0, -h), at(0, h), c)
		p.Line(at(-h, -h), at(h, h), c)
		p.Line(at(h, -h), at(-h, h), c)

	case MarkerDiamond:
		p.Line(at(0, -h), at(h, 0), c)
		p.Line(at(h, 0), at(0, h), c)
		p.Line(at(0, h), at(-h, 0), c)
		p.Line(at(-h, 0), at(0, -h), c)

	case MarkerSquare:
		p.Line(at(-h, -h), at(h, -h), c)
		p.Line(at(h, -h), at(h, h), c)
		p.Line(at(h, h), at(-h, h), c)
		p.Line(at(-h, h), at(-h, -h), c)

	case MarkerTriangleUp:
		p.Line(at(-h, h), at(h, h), c)
		p.Line(at(h, h), at(0, -h), c)
		p.Line(at(0, -h), at(-h, h), c)

	case MarkerTriangleDown:
		p.Line(at(-h, -h), at(h, -h), c)
		p.Line(at(h, -h), at(0, h), c)
		p.Line(at(0, h), at(-h, -h), c)

	default:
		p.Line(at(-h, 0), at(h, 0), c)
		p.Line(at(0, -h), at(0, h), c)
	}
}
