package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vision/raster"
)

var fillCases = []TestCase{
	{
		Name:   "triangle",
		Width:  64,
		Height: 64,
		Op:     Fill{Contours: triangle(10, 50, 32, 10, 54, 50), LineType: raster.Line8},
	},
	{
		Name:   "triangle_convex",
		Width:  64,
		Height: 64,
		Op:     Fill{Contours: triangle(10, 50, 32, 10, 54, 50), Convex: true, LineType: raster.Line8},
	},
	{
		Name:   "triangle_aa",
		Width:  64,
		Height: 64,
		Op:     Fill{Contours: triangle(10, 50, 32, 10, 54, 50), Convex: true, LineType: raster.LineAA},
	},
	{
		Name:   "star",
		Width:  64,
		Height: 64,
		Op:     Fill{Contours: fivePointStar(32, 32, 25), LineType: raster.Line8},
	},
	{
		Name:   "star_aa",
		Width:  64,
		Height: 64,
		Op:     Fill{Contours: fivePointStar(32, 32, 25), LineType: raster.LineAA},
	},
	{
		Name:   "rectangle",
		Width:  64,
		Height: 64,
		Op:     Fill{Contours: rectangle(10, 10, 44, 44), Convex: true, LineType: raster.Line8},
	},
	{
		Name:   "frame",
		Width:  64,
		Height: 64,
		Op: Fill{
			Contours: concat(rectangle(8, 8, 56, 56), rectangle(20, 20, 44, 44)),
			LineType: raster.Line8,
		},
	},
	{
		Name:   "curve",
		Width:  64,
		Height: 64,
		Op:     Fill{Contours: lens(8, 32, 56, 32, 20), LineType: raster.LineAA},
	},
	{
		Name:   "clipped",
		Width:  64,
		Height: 64,
		Op:     Fill{Contours: triangle(-20, 70, 32, 20, 90, 40), LineType: raster.Line4},
	},
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: x1, Y: y1}}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{{X: x2, Y: y2}}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{{X: x3, Y: y3}}) {
			return
		}
		yield(path.CmdClose, nil)
	}
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		// five points, connecting every second point
		pts := make([]vec.Vec2, 5)
		for i := range 5 {
			angle := float64(i)*2*math.Pi/5 - math.Pi/2
			pts[i] = vec.Vec2{
				X: cx + r*math.Cos(angle),
				Y: cy + r*math.Sin(angle),
			}
		}

		// draw star: 0 -> 2 -> 4 -> 1 -> 3 -> 0
		order := []int{0, 2, 4, 1, 3}
		if !yield(path.CmdMoveTo, []vec.Vec2{pts[order[0]]}) {
			return
		}
		for _, i := range order[1:] {
			if !yield(path.CmdLineTo, []vec.Vec2{pts[i]}) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: x1, Y: y1}}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{{X: x2, Y: y1}}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{{X: x2, Y: y2}}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{{X: x1, Y: y2}}) {
			return
		}
		yield(path.CmdClose, nil)
	}
}

// lens builds a closed shape from two cubic curves between (x1, y1) and
// (x2, y2), bulging out by h on either side.
func lens(x1, y1, x2, y2, h float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		dx, dy := (x2-x1)/3, (y2-y1)/3
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: x1, Y: y1}}) {
			return
		}
		if !yield(path.CmdCubeTo, []vec.Vec2{
			{X: x1 + dx, Y: y1 + dy - h}, {X: x1 + 2*dx, Y: y1 + 2*dy - h}, {X: x2, Y: y2},
		}) {
			return
		}
		if !yield(path.CmdCubeTo, []vec.Vec2{
			{X: x1 + 2*dx, Y: y1 + 2*dy + h}, {X: x1 + dx, Y: y1 + dy + h}, {X: x1, Y: y1},
		}) {
			return
		}
		yield(path.CmdClose, nil)
	}
}

// concat joins several paths into one.
func concat(paths ...path.Path) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, p := range paths {
			for cmd, pts := range p {
				if !yield(cmd, pts) {
					return
				}
			}
		}
	}
}
