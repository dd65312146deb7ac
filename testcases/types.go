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

package testcases

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/vision/raster"
)

// TestCase defines a single drawing test.
type TestCase struct {
	Name   string
	Width  int
	Height int
	Op     Operation
}

// Operation is one of [Fill], [Stroke], [Circle], [Ellipse], [Marker] or
// [Arrow].
type Operation interface {
	isOperation()
	draw(p *raster.Painter, c raster.Color)
}

// Fill fills the contours of a path with the even-odd rule.  If Convex is
// set, the first contour is drawn with the convex polygon filler instead.
type Fill struct {
	Contours path.Path
	Convex   bool
	LineType raster.LineType
}

// Stroke draws the subpaths of a path as polylines.
type Stroke struct {
	Path      path.Path
	Thickness int
	LineType  raster.LineType
	Closed    bool
}

// Circle draws a circle.  A negative thickness fills it.
type Circle struct {
	Center    image.Point
	Radius    int
	Thickness int
	LineType  raster.LineType
}

// Ellipse draws an elliptic arc, angles are in degrees.
type Ellipse struct {
	Center     image.Point
	Axes       image.Point
	Angle      float64
	Start, End float64
	Thickness  int
	LineType   raster.LineType
}

// Marker draws a marker symbol.
type Marker struct {
	Pos       image.Point
	Kind      raster.MarkerType
	Size      int
	Thickness int
	LineType  raster.LineType
}

// Arrow draws a line with an arrow head at the second point.
type Arrow struct {
	From, To  image.Point
	TipLength float64
	Thickness int
	LineType  raster.LineType
}

func (Fill) isOperation()    {}
func (Stroke) isOperation()  {}
func (Circle) isOperation()  {}
func (Ellipse) isOperation() {}
func (Marker) isOperation()  {}
func (Arrow) isOperation()   {}

func (op Fill) draw(p *raster.Painter, c raster.Color) {
	p.LineType = op.LineType
	contours := Contours(op.Contours)
	if op.Convex {
		if len(contours) > 0 {
			p.FillConvexPoly(contours[0], c)
		}
		return
	}
	p.FillPoly(contours, c, image.Point{})
}

func (op Stroke) draw(p *raster.Painter, c raster.Color) {
	p.LineType = op.LineType
	p.Thickness = op.Thickness
	p.Polylines(Contours(op.Path), op.Closed, c)
}

func (op Circle) draw(p *raster.Painter, c raster.Color) {
	p.LineType = op.LineType
	p.Thickness = op.Thickness
	p.Circle(op.Center, op.Radius, c)
}

func (op Ellipse) draw(p *raster.Painter, c raster.Color) {
	p.LineType = op.LineType
	p.Thickness = op.Thickness
	p.Ellipse(op.Center, op.Axes, op.Angle, op.Start, op.End, c)
}

func (op Marker) draw(p *raster.Painter, c raster.Color) {
	p.LineType = op.LineType
	p.Thickness = op.Thickness
	p.DrawMarker(op.Pos, c, op.Kind, op.Size)
}

func (op Arrow) draw(p *raster.Painter, c raster.Color) {
	p.LineType = op.LineType
	p.Thickness = op.Thickness
	p.ArrowedLine(op.From, op.To, c, op.TipLength)
}

// Draw paints the test case onto dst, using color c.
func (tc TestCase) Draw(dst *raster.Surface, c color.Color) {
	p := raster.NewPainter(dst)
	tc.Op.draw(p, dst.Color(c))
}

// Render draws the test case in white onto a black grayscale image.
func (tc TestCase) Render() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, tc.Width, tc.Height))
	tc.Draw(raster.FromGray(img), color.White)
	return img
}

// Contours converts a path into polygons with integer vertices.  Every
// subpath gives one contour, curves are flattened.
func Contours(p path.Path) [][]image.Point {
	var res [][]image.Point
	for _, sub := range raster.Flatten(p, matrix.Identity, 0) {
		c := make([]image.Point, len(sub.Points))
		for i, v := range sub.Points {
			c[i] = image.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
		}
		res = append(res, c)
	}
	return res
}
