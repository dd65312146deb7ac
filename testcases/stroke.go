package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vision/raster"
)

var strokeCases = []TestCase{
	{
		Name:   "line_4",
		Width:  64,
		Height: 64,
		Op:     Stroke{Path: horizontalLine(10, 32, 54), Thickness: 1, LineType: raster.Line4},
	},
	{
		Name:   "diagonal_8",
		Width:  64,
		Height: 64,
		Op:     Stroke{Path: corner(5, 60, 30, 40, 60, 3), Thickness: 1, LineType: raster.Line8},
	},
	{
		Name:   "diagonal_aa",
		Width:  64,
		Height: 64,
		Op:     Stroke{Path: corner(5, 60, 30, 40, 60, 3), Thickness: 1, LineType: raster.LineAA},
	},
	{
		Name:   "line_thick",
		Width:  64,
		Height: 64,
		Op:     Stroke{Path: horizontalLine(10, 32, 54), Thickness: 8, LineType: raster.Line8},
	},
	{
		Name:   "corner_thick",
		Width:  64,
		Height: 64,
		Op:     Stroke{Path: corner(10, 50, 32, 14, 54, 50), Thickness: 6, LineType: raster.Line8},
	},
	{
		Name:   "corner_thick_aa",
		Width:  64,
		Height: 64,
		Op:     Stroke{Path: corner(10, 50, 32, 14, 54, 50), Thickness: 6, LineType: raster.LineAA},
	},
	{
		Name:   "star_closed",
		Width:  64,
		Height: 64,
		Op:     Stroke{Path: fivePointStar(32, 32, 25), Thickness: 2, LineType: raster.LineAA, Closed: true},
	},
	{
		Name:   "outside",
		Width:  64,
		Height: 64,
		Op:     Stroke{Path: corner(-30, -10, 32, 32, 100, 80), Thickness: 3, LineType: raster.Line8},
	},
}

// horizontalLine builds a horizontal line segment.
func horizontalLine(x1, y, x2 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: x1, Y: y}}) {
			return
		}
		yield(path.CmdLineTo, []vec.Vec2{{X: x2, Y: y}})
	}
}

// corner builds a path with two line segments meeting at a corner.
func corner(x1, y1, x2, y2, x3, y3 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: x1, Y: y1}}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{{X: x2, Y: y2}}) {
			return
		}
		yield(path.CmdLineTo, []vec.Vec2{{X: x3, Y: y3}})
	}
}
