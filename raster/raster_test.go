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
	"testing"

	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func TestClipSegment(t *testing.T) {
	p1, p2 := image.Pt(-10, 5), image.Pt(30, 5)
	if !ClipLine(image.Pt(20, 10), &p1, &p2) {
		t.Fatal("segment crossing the image was rejected")
	}
	if p1 != image.Pt(0, 5) || p2 != image.Pt(19, 5) {
		t.Errorf("got %v-%v, want (0,5)-(19,5)", p1, p2)
	}

	// clipping a clipped segment changes nothing
	q1, q2 := p1, p2
	if !ClipLine(image.Pt(20, 10), &q1, &q2) || q1 != p1 || q2 != p2 {
		t.Errorf("second clip changed %v-%v to %v-%v", p1, p2, q1, q2)
	}

	p1, p2 = image.Pt(-5, -5), image.Pt(-1, -1)
	if ClipLine(image.Pt(20, 10), &p1, &p2) {
		t.Error("segment outside the image was accepted")
	}

	p1, p2 = image.Pt(0, 0), image.Pt(0, 0)
	if ClipLine(image.Pt(0, 10), &p1, &p2) {
		t.Error("empty image contains a segment")
	}
}

func TestClipLineRect(t *testing.T) {
	r := image.Rect(10, 10, 20, 20)
	p1, p2 := image.Pt(0, 15), image.Pt(100, 15)
	if !ClipLineRect(r, &p1, &p2) {
		t.Fatal("segment rejected")
	}
	if !p1.In(r) || !p2.In(r) {
		t.Errorf("clipped segment %v-%v leaves %v", p1, p2, r)
	}
}

func TestLineIterator(t *testing.T) {
	type testCase struct {
		p1, p2       image.Point
		connectivity int
		count        int
	}
	cases := []testCase{
		{image.Pt(0, 0), image.Pt(9, 3), 8, 10},
		{image.Pt(0, 0), image.Pt(9, 3), 4, 13},
		{image.Pt(5, 5), image.Pt(2, 17), 8, 13},
		{image.Pt(5, 5), image.Pt(2, 17), 4, 16},
		{image.Pt(10, 2), image.Pt(1, 0), 8, 10},
		{image.Pt(0, 7), image.Pt(7, 0), 4, 15},
		{image.Pt(3, 3), image.Pt(3, 3), 8, 1},
	}
	bounds := image.Rect(0, 0, 20, 20)
	for _, tc := range cases {
		it := NewLineIterator(bounds, tc.p1, tc.p2, tc.connectivity, false)
		if it.Count() != tc.count {
			t.Errorf("%v-%v/%d: count %d, want %d",
				tc.p1, tc.p2, tc.connectivity, it.Count(), tc.count)
			continue
		}

		seen := make(map[image.Point]bool)
		prev := it.Pos()
		if prev != tc.p1 {
			t.Errorf("%v-%v/%d: starts at %v", tc.p1, tc.p2, tc.connectivity, prev)
		}
		for i := range it.Count() {
			pos := it.Pos()
			if seen[pos] {
				t.Errorf("%v-%v/%d: %v visited twice", tc.p1, tc.p2, tc.connectivity, pos)
			}
			seen[pos] = true
			if i > 0 {
				d := pos.Sub(prev)
				adx, ady := max(d.X, -d.X), max(d.Y, -d.Y)
				if tc.connectivity == 4 && adx+ady != 1 {
					t.Errorf("%v-%v/4: step %v", tc.p1, tc.p2, d)
				}
				if tc.connectivity == 8 && max(adx, ady) != 1 {
					t.Errorf("%v-%v/8: step %v", tc.p1, tc.p2, d)
				}
			}
			prev = pos
			if i < it.Count()-1 {
				it.Next()
			}
		}
		if prev != tc.p2 {
			t.Errorf("%v-%v/%d: ends at %v", tc.p1, tc.p2, tc.connectivity, prev)
		}
	}
}

func TestLineIteratorLeftToRight(t *testing.T) {
	it := NewLineIterator(image.Rect(0, 0, 20, 20), image.Pt(10, 2), image.Pt(1, 0), 8, true)
	if it.Pos() != image.Pt(1, 0) {
		t.Errorf("starts at %v, want (1,0)", it.Pos())
	}
}

func TestLineIteratorClipped(t *testing.T) {
	s := NewSurface(10, 10, 1)
	it := s.LineIterator(image.Pt(-5, -5), image.Pt(30, 30), 8, false)
	if it.Count() != 10 {
		t.Fatalf("count %d, want 10", it.Count())
	}
	for range it.Count() {
		pos := it.Pos()
		if !pos.In(s.Bounds()) {
			t.Errorf("%v outside the surface", pos)
		}
		if it.Offset() != pos.Y*s.Stride+pos.X {
			t.Errorf("offset %d does not match %v", it.Offset(), pos)
		}
		it.Next()
	}

	it = s.LineIterator(image.Pt(-5, 20), image.Pt(-1, 30), 8, false)
	if it.Count() != 0 {
		t.Errorf("invisible line has %d pixels", it.Count())
	}
}

func TestRectangleFill(t *testing.T) {
	s := NewSurface(100, 100, 1)
	p := NewPainter(s)
	p.Thickness = Filled
	p.RectangleRect(image.Rect(10, 10, 50, 40), Color{255})

	if n := countSet(s); n != 40*30 {
		t.Errorf("%d pixels set, want %d", n, 40*30)
	}
	if s.At(10, 10)[0] == 0 || s.At(49, 39)[0] == 0 {
		t.Error("corner pixels not set")
	}
	if s.At(50, 39)[0] != 0 || s.At(49, 40)[0] != 0 {
		t.Error("pixels outside the rectangle set")
	}
}

func TestRectangleOutline(t *testing.T) {
	s := NewSurface(100, 100, 1)
	p := NewPainter(s)
	p.Rectangle(image.Pt(10, 10), image.Pt(20, 20), Color{255})

	for _, pt := range []image.Point{{10, 10}, {20, 10}, {20, 20}, {10, 20}, {15, 10}, {10, 15}} {
		if s.At(pt.X, pt.Y)[0] == 0 {
			t.Errorf("outline pixel %v not set", pt)
		}
	}
	if s.At(15, 15)[0] != 0 {
		t.Error("interior pixel set")
	}
}

func TestFillPolyEvenOdd(t *testing.T) {
	s := NewSurface(100, 100, 1)
	p := NewPainter(s)
	outer := []image.Point{{10, 10}, {50, 10}, {50, 50}, {10, 50}}
	inner := []image.Point{{20, 20}, {40, 20}, {40, 40}, {20, 40}}
	p.FillPoly([][]image.Point{outer, inner}, Color{255}, image.Point{})

	if s.At(15, 15)[0] == 0 {
		t.Error("pixel between the contours not set")
	}
	if s.At(30, 30)[0] != 0 {
		t.Error("pixel inside the hole set")
	}
	if s.At(55, 55)[0] != 0 {
		t.Error("pixel outside the polygon set")
	}
	if len(p.edges) != 0 {
		t.Errorf("%d edges left over", len(p.edges))
	}
}

func TestFillPolyOffset(t *testing.T) {
	s := NewSurface(50, 50, 1)
	p := NewPainter(s)
	square := []image.Point{{0, 0}, {9, 0}, {9, 9}, {0, 9}}
	p.FillPoly([][]image.Point{square}, Color{255}, image.Pt(20, 20))

	if s.At(25, 25)[0] == 0 {
		t.Error("translated square not drawn")
	}
	if s.At(5, 5)[0] != 0 {
		t.Error("square drawn at the original position")
	}
}

func TestFillConvexPolyMatchesFillPoly(t *testing.T) {
	// For a rectangle both scan converters cover the same pixels.
	pts := []image.Point{{5, 7}, {40, 7}, {40, 30}, {5, 30}}

	a := NewSurface(64, 64, 1)
	NewPainter(a).FillConvexPoly(pts, Color{255})

	b := NewSurface(64, 64, 1)
	NewPainter(b).FillPoly([][]image.Point{pts}, Color{255}, image.Point{})

	for y := range 64 {
		for x := range 64 {
			if a.At(x, y)[0] != b.At(x, y)[0] {
				t.Fatalf("surfaces differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestFillOutside(t *testing.T) {
	s := NewSurface(20, 20, 1)
	p := NewPainter(s)
	p.FillConvexPoly([]image.Point{{-50, -50}, {-40, -50}, {-40, -40}}, Color{255})
	p.FillPoly([][]image.Point{{{100, 100}, {120, 100}, {110, 120}}}, Color{255}, image.Point{})
	if n := countSet(s); n != 0 {
		t.Errorf("%d pixels set by invisible polygons", n)
	}
}

func TestCircleFilled(t *testing.T) {
	s := NewSurface(101, 101, 1)
	p := NewPainter(s)
	p.Thickness = Filled
	p.Circle(image.Pt(50, 50), 10, Color{255})

	for _, pt := range []image.Point{{50, 50}, {50, 40}, {60, 50}, {40, 50}, {50, 60}} {
		if s.At(pt.X, pt.Y)[0] == 0 {
			t.Errorf("pixel %v not set", pt)
		}
	}
	for _, pt := range []image.Point{{50, 39}, {61, 50}, {39, 50}, {50, 61}} {
		if s.At(pt.X, pt.Y)[0] != 0 {
			t.Errorf("pixel %v set", pt)
		}
	}
	for y := range 101 {
		for x := range 101 {
			v := s.At(x, y)[0]
			if v != s.At(100-x, y)[0] || v != s.At(x, 100-y)[0] {
				t.Fatalf("disk not symmetric at (%d,%d)", x, y)
			}
		}
	}
}

func TestCircleOutline(t *testing.T) {
	s := NewSurface(101, 101, 1)
	p := NewPainter(s)
	p.Circle(image.Pt(50, 50), 10, Color{255})

	for _, pt := range []image.Point{{60, 50}, {40, 50}, {50, 60}, {50, 40}} {
		if s.At(pt.X, pt.Y)[0] == 0 {
			t.Errorf("pixel %v not set", pt)
		}
	}
	if s.At(50, 50)[0] != 0 {
		t.Error("center of the circle set")
	}
}

func TestCircleClipped(t *testing.T) {
	s := NewSurface(20, 20, 1)
	p := NewPainter(s)
	p.Thickness = Filled
	p.Circle(image.Pt(0, 0), 10, Color{255})
	if s.At(0, 0)[0] == 0 || s.At(5, 5)[0] == 0 {
		t.Error("visible part of the disk not drawn")
	}
	if s.At(15, 15)[0] != 0 {
		t.Error("pixel outside the disk set")
	}
}

func TestThickLineCaps(t *testing.T) {
	draw := func(capStyle func(p *Painter)) *Surface {
		s := NewSurface(100, 100, 1)
		p := NewPainter(s)
		p.Thickness = 10
		capStyle(p)
		p.Line(image.Pt(20, 50), image.Pt(80, 50), Color{255})
		return s
	}

	butt := draw(func(p *Painter) { p.Cap = graphics.LineCapButt })
	round := draw(func(p *Painter) {})
	square := draw(func(p *Painter) { p.Cap = graphics.LineCapSquare })

	for _, s := range []*Surface{butt, round, square} {
		if s.At(50, 45)[0] == 0 || s.At(50, 55)[0] == 0 {
			t.Error("line body too thin")
		}
		if s.At(50, 57)[0] != 0 || s.At(50, 43)[0] != 0 {
			t.Error("line body too thick")
		}
	}
	if butt.At(15, 50)[0] != 0 {
		t.Error("butt cap extends beyond the end point")
	}
	if round.At(15, 50)[0] == 0 || round.At(14, 50)[0] != 0 {
		t.Error("wrong round cap")
	}
	if square.At(15, 46)[0] == 0 || square.At(85, 54)[0] == 0 {
		t.Error("square cap missing")
	}
}

func TestLineAA(t *testing.T) {
	s := NewSurface(100, 40, 1)
	p := NewPainter(s)
	p.LineType = LineAA
	p.Line(image.Pt(10, 20), image.Pt(90, 20), Color{255})

	mid := s.At(50, 20)[0]
	if mid < 200 {
		t.Errorf("center pixel %d, want at least 200", mid)
	}
	for _, y := range []int{19, 21} {
		if v := s.At(50, y)[0]; v == 0 || v >= mid {
			t.Errorf("pixel (50,%d) = %d, want partial coverage", y, v)
		}
	}
	if s.At(50, 17)[0] != 0 || s.At(50, 23)[0] != 0 {
		t.Error("footprint wider than three pixels")
	}
	if s.At(10, 20)[0] >= mid || s.At(90, 20)[0] >= mid {
		t.Error("line ends are not tapered")
	}
}

func TestLineAAValues(t *testing.T) {
	s := NewSurface(100, 40, 1)
	p := NewPainter(s)
	p.LineType = LineAA
	p.Line(image.Pt(10, 20), image.Pt(90, 20), Color{255})

	// The sampling position is y = 20.5 in every column, so the filter
	// weights are 40, 254 and 45 for rows 19 to 21.  The end-point
	// corrections are 87, 178 at the start, 93, 2 at the end and 181 in
	// between.  Each weight is blended in twice.
	cases := []struct {
		x, y int
		want uint8
	}{
		{50, 18, 0},
		{50, 19, 53},
		{50, 20, 232},
		{50, 21, 58},
		{50, 22, 0},
		{9, 20, 0},
		{10, 19, 25},
		{10, 20, 143},
		{11, 20, 230},
		{12, 20, 232},
		{90, 20, 151},
		{91, 20, 2},
		{92, 20, 0},
	}
	for _, c := range cases {
		if got := s.At(c.x, c.y)[0]; got != c.want {
			t.Errorf("pixel (%d,%d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}

	for x := range s.Width {
		if v := s.At(x, 20)[0]; v > 232 {
			t.Errorf("column %d exceeds full coverage: %d", x, v)
		}
	}
}

func TestLineAAWeights(t *testing.T) {
	slopes := append([]int{0x100}, slopeCorrTable[:]...)
	for _, slope := range slopes {
		for i := 0; i <= 0x78; i += 8 {
			for j := 0; j <= 0x78; j += 8 {
				ep := endPointTable(slope, i, j)
				for k, corr := range ep {
					if corr < 0 || corr > 256 {
						t.Fatalf("slope %d, i=%d, j=%d: correction %d = %d", slope, i, j, k, corr)
					}
					for _, f := range filterTable {
						if a := corr * f >> 8; a > 255 {
							t.Fatalf("slope %d, i=%d, j=%d: weight %d overflows", slope, i, j, a)
						}
					}
				}
			}
		}
	}
}

func TestDrawContours(t *testing.T) {
	contours := [][]image.Point{
		{{10, 10}, {50, 10}, {50, 50}, {10, 50}},
		{{20, 20}, {40, 20}, {40, 40}, {20, 40}},
		{{27, 27}, {33, 27}, {33, 33}, {27, 33}},
		{{60, 60}, {90, 60}, {90, 90}, {60, 90}},
	}
	hierarchy := [][4]int{
		{3, -1, 1, -1},
		{-1, -1, 2, 0},
		{-1, -1, -1, 1},
		{-1, 0, -1, -1},
	}
	draw := func(h [][4]int, idx, maxLevel, thickness int, offset image.Point) *Surface {
		s := NewSurface(100, 100, 1)
		p := NewPainter(s)
		p.Thickness = thickness
		p.DrawContours(contours, h, idx, maxLevel, offset, Color{255})
		if len(p.edges) != 0 {
			t.Errorf("%d edges left over", len(p.edges))
		}
		return s
	}

	type check struct {
		x, y int
		set  bool
	}
	cases := []struct {
		name      string
		h         [][4]int
		idx       int
		maxLevel  int
		thickness int
		offset    image.Point
		pixels    []check
	}{
		{"outline only", hierarchy, 0, 0, 1, image.Point{},
			[]check{{10, 30, true}, {20, 30, false}, {15, 30, false}, {60, 75, false}}},
		{"outline with children", hierarchy, 0, 1, 1, image.Point{},
			[]check{{10, 30, true}, {20, 30, true}, {27, 30, false}}},
		{"filled only", hierarchy, 0, 0, Filled, image.Point{},
			[]check{{15, 30, true}, {24, 30, true}, {30, 30, true}, {75, 75, false}}},
		{"filled with hole", hierarchy, 0, 1, Filled, image.Point{},
			[]check{{15, 30, true}, {24, 30, false}, {30, 30, false}}},
		{"filled with island", hierarchy, 0, 2, Filled, image.Point{},
			[]check{{15, 30, true}, {24, 30, false}, {30, 30, true}, {75, 75, false}}},
		{"top level", hierarchy, -1, 1, Filled, image.Point{},
			[]check{{24, 30, true}, {30, 30, true}, {75, 75, true}}},
		{"top level with children", hierarchy, -1, 2, Filled, image.Point{},
			[]check{{24, 30, false}, {30, 30, false}, {75, 75, true}}},
		{"all contours", nil, -1, 0, Filled, image.Point{},
			[]check{{15, 30, true}, {24, 30, false}, {30, 30, true}, {75, 75, true}}},
		{"offset", hierarchy, 3, 0, Filled, image.Pt(-55, -55),
			[]check{{20, 20, true}, {75, 75, false}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := draw(c.h, c.idx, c.maxLevel, c.thickness, c.offset)
			for _, q := range c.pixels {
				if got := s.At(q.x, q.y)[0] != 0; got != q.set {
					t.Errorf("pixel (%d,%d) set = %t, want %t", q.x, q.y, got, q.set)
				}
			}
		})
	}
}

func TestLineAAFallback(t *testing.T) {
	s := FromGray16(image.NewGray16(image.Rect(0, 0, 50, 50)))
	p := NewPainter(s)
	p.LineType = LineAA
	c := s.Color(image.White.C)
	p.Line(image.Pt(3, 4), image.Pt(40, 31), c)

	for y := range 50 {
		for x := range 50 {
			v := s.At(x, y)
			if v[0] != 0 && v[0] != 0xff {
				t.Fatalf("partial coverage %v at (%d,%d)", v, x, y)
			}
		}
	}
	if s.At(3, 4)[0] != 0xff || s.At(40, 31)[0] != 0xff {
		t.Error("end points not set")
	}
}

func TestLineRGBA(t *testing.T) {
	s := FromRGBA(image.NewRGBA(image.Rect(0, 0, 30, 30)))
	p := NewPainter(s)
	c := Color{10, 20, 30, 255}
	p.Line(image.Pt(0, 0), image.Pt(29, 29), c)
	for i := range 30 {
		if got := s.At(i, i); string(got) != string(c) {
			t.Fatalf("pixel (%d,%d) = %v, want %v", i, i, got, c)
		}
	}
}

func TestEllipse2Poly(t *testing.T) {
	pts := Ellipse2Poly(image.Pt(50, 50), image.Pt(10, 10), 0, 0, 360, 90)
	want := []image.Point{{60, 50}, {50, 60}, {40, 50}, {50, 40}, {60, 50}}
	if len(pts) != len(want) {
		t.Fatalf("got %v, want %v", pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("vertex %d: got %v, want %v", i, pts[i], want[i])
		}
	}

	pts = Ellipse2Poly(image.Pt(7, 8), image.Point{}, 0, 0, 360, 5)
	if len(pts) != 2 || pts[0] != image.Pt(7, 8) || pts[1] != image.Pt(7, 8) {
		t.Errorf("degenerate ellipse gives %v", pts)
	}
}

func TestEllipseArcCache(t *testing.T) {
	s := NewSurface(100, 100, 1)
	p := NewPainter(s)
	p.Ellipse(image.Pt(50, 50), image.Pt(30, 20), 15, 0, 270, Color{255})
	n := p.arcs.Len()
	p.Ellipse(image.Pt(40, 40), image.Pt(30, 20), 15, 0, 270, Color{255})
	if p.arcs.Len() != n {
		t.Errorf("cache grew from %d to %d for a translated arc", n, p.arcs.Len())
	}
}

func TestEllipseFilledWedge(t *testing.T) {
	s := NewSurface(100, 100, 1)
	p := NewPainter(s)
	p.Thickness = Filled
	p.Ellipse(image.Pt(50, 50), image.Pt(30, 30), 0, 0, 90, Color{255})

	if s.At(60, 60)[0] == 0 {
		t.Error("inside of the wedge not filled")
	}
	if s.At(40, 40)[0] != 0 {
		t.Error("pixel outside the wedge set")
	}
}

func TestEllipseBox(t *testing.T) {
	s := NewSurface(100, 100, 1)
	p := NewPainter(s)
	p.Thickness = Filled
	box := RotatedRect{Size: vecOf(40, 20), Angle: 0}
	box.Center = vecOf(50, 50)
	p.EllipseBox(box, Color{255})

	if s.At(50, 50)[0] == 0 || s.At(69, 50)[0] == 0 {
		t.Error("ellipse not filled")
	}
	if s.At(50, 62)[0] != 0 || s.At(72, 50)[0] != 0 {
		t.Error("ellipse too large")
	}

	corners := box.Points()
	if corners[0] != vecOf(30, 60) || corners[2] != vecOf(70, 40) {
		t.Errorf("unexpected corners %v", corners)
	}
}

func TestMarkerFallback(t *testing.T) {
	a := NewSurface(40, 40, 1)
	NewPainter(a).DrawMarker(image.Pt(20, 20), Color{255}, MarkerType(99), 10)

	b := NewSurface(40, 40, 1)
	NewPainter(b).DrawMarker(image.Pt(20, 20), Color{255}, MarkerCross, 10)

	if string(a.Pix) != string(b.Pix) {
		t.Error("unknown marker type is not drawn as a cross")
	}
	if countSet(a) != 21 {
		t.Errorf("cross has %d pixels, want 21", countSet(a))
	}
	if MarkerType(99).String() != "unknown" {
		t.Error("wrong name for an unknown marker")
	}
}

func TestMarkers(t *testing.T) {
	for kind := MarkerCross; kind <= MarkerTriangleDown; kind++ {
		t.Run(kind.String(), func(t *testing.T) {
			s := NewSurface(40, 40, 1)
			p := NewPainter(s)
			p.Shift = 3
			p.DrawMarker(image.Pt(20, 20), Color{255}, kind, 12)
			if p.Shift != 3 {
				t.Error("marker changed the painter shift")
			}
			if countSet(s) == 0 {
				t.Error("nothing drawn")
			}
			if s.At(1, 1)[0] != 0 {
				t.Error("marker too large")
			}
		})
	}
}

func TestArrowedLine(t *testing.T) {
	s := NewSurface(100, 100, 1)
	p := NewPainter(s)
	p.ArrowedLine(image.Pt(10, 50), image.Pt(90, 50), Color{255}, 0.1)
	// barbs end at 90 - 8*cos(45°), 50 ± 8*sin(45°)
	if s.At(84, 44)[0] == 0 || s.At(84, 56)[0] == 0 {
		t.Error("arrow head missing")
	}
}

func TestPolylines(t *testing.T) {
	s := NewSurface(50, 50, 1)
	p := NewPainter(s)
	tri := []image.Point{{5, 5}, {40, 5}, {5, 40}}
	p.Polylines([][]image.Point{tri}, false, Color{255})
	if s.At(5, 20)[0] != 0 {
		t.Error("open polyline was closed")
	}
	p.Polylines([][]image.Point{tri}, true, Color{255})
	if s.At(5, 20)[0] == 0 {
		t.Error("closed polyline is open")
	}
}

func TestFromFixed26_6(t *testing.T) {
	if got := FromFixed26_6(fixed.P(3, 4), 0); got != image.Pt(3, 4) {
		t.Errorf("got %v, want (3,4)", got)
	}
	half := fixed.Point26_6{X: 96, Y: 32} // (1.5, 0.5)
	if got := FromFixed26_6(half, 0); got != image.Pt(2, 1) {
		t.Errorf("got %v, want (2,1)", got)
	}
	if got := FromFixed26_6(half, 8); got != image.Pt(384, 128) {
		t.Errorf("got %v, want (384,128)", got)
	}
}

func TestLineFixed(t *testing.T) {
	for _, lt := range []LineType{Line8, LineAA} {
		a := NewSurface(64, 64, 1)
		pa := NewPainter(a)
		pa.LineType = lt
		pa.LineFixed(fixed.Point26_6{X: 3<<6 + 32, Y: 5 << 6}, fixed.Point26_6{X: 50 << 6, Y: 41<<6 + 16}, Color{255})

		b := NewSurface(64, 64, 1)
		pb := NewPainter(b)
		pb.LineType = lt
		pb.Shift = 16
		pb.Line(image.Pt(3<<16+1<<15, 5<<16), image.Pt(50<<16, 41<<16+1<<14), Color{255})

		if countSet(a) == 0 {
			t.Fatalf("line type %d: nothing drawn", lt)
		}
		for y := range 64 {
			for x := range 64 {
				if a.At(x, y)[0] != b.At(x, y)[0] {
					t.Fatalf("line type %d: surfaces differ at (%d,%d)", lt, x, y)
				}
			}
		}
	}
}

func TestInvalidParameters(t *testing.T) {
	s := NewSurface(10, 10, 1)
	cases := map[string]func(p *Painter){
		"zero thickness": func(p *Painter) {
			p.Thickness = 0
			p.Line(image.Pt(0, 0), image.Pt(5, 5), Color{1})
		},
		"huge thickness": func(p *Painter) {
			p.Thickness = MaxThickness + 1
			p.Circle(image.Pt(5, 5), 3, Color{1})
		},
		"line type": func(p *Painter) {
			p.LineType = 3
			p.Line(image.Pt(0, 0), image.Pt(5, 5), Color{1})
		},
		"shift": func(p *Painter) {
			p.Shift = MaxShift + 1
			p.Line(image.Pt(0, 0), image.Pt(5, 5), Color{1})
		},
		"color": func(p *Painter) {
			p.Line(image.Pt(0, 0), image.Pt(5, 5), Color{1, 2, 3})
		},
		"radius": func(p *Painter) {
			p.Circle(image.Pt(5, 5), -1, Color{1})
		},
		"axes": func(p *Painter) {
			p.Ellipse(image.Pt(5, 5), image.Pt(-1, 2), 0, 0, 360, Color{1})
		},
		"polyline thickness": func(p *Painter) {
			p.Thickness = Filled
			p.Polylines([][]image.Point{{{0, 0}, {5, 5}}}, false, Color{1})
		},
		"empty convex polygon shift": func(p *Painter) {
			p.Shift = -1
			p.FillConvexPoly(nil, Color{1})
		},
		"contour index": func(p *Painter) {
			p.DrawContours([][]image.Point{{{0, 0}, {5, 5}}}, nil, 1, 0, image.Point{}, Color{1})
		},
		"contour hierarchy": func(p *Painter) {
			p.DrawContours([][]image.Point{{{0, 0}, {5, 5}}}, [][4]int{}, 0, 1, image.Point{}, Color{1})
		},
		"arc step": func(p *Painter) {
			Ellipse2Poly(image.Pt(5, 5), image.Pt(3, 3), 0, 0, 360, 0)
		},
		"connectivity": func(p *Painter) {
			NewLineIterator(s.Bounds(), image.Pt(0, 0), image.Pt(5, 5), 6, false)
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("no panic")
				}
			}()
			fn(NewPainter(s))
		})
	}
}

func TestSurfaceColor(t *testing.T) {
	gray := NewSurface(1, 1, 1)
	if c := gray.Color(image.White.C); len(c) != 1 || c[0] != 0xff {
		t.Errorf("gray white = %v", c)
	}
	g16 := FromGray16(image.NewGray16(image.Rect(0, 0, 1, 1)))
	if c := g16.Color(image.White.C); len(c) != 2 || c[0] != 0xff || c[1] != 0xff {
		t.Errorf("gray16 white = %v", c)
	}
}

func countSet(s *Surface) int {
	n := 0
	for y := range s.Height {
		for x := range s.Width {
			for _, b := range s.At(x, y) {
				if b != 0 {
					n++
					break
				}
			}
		}
	}
	return n
}

func vecOf(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
