package testcases

import (
	"image"

	"seehuhn.de/go/vision/raster"
)

var shapeCases = []TestCase{
	{
		Name:   "circle",
		Width:  64,
		Height: 64,
		Op:     Circle{Center: image.Pt(32, 32), Radius: 20, Thickness: 1, LineType: raster.Line8},
	},
	{
		Name:   "circle_filled",
		Width:  64,
		Height: 64,
		Op:     Circle{Center: image.Pt(32, 32), Radius: 20, Thickness: raster.Filled, LineType: raster.Line8},
	},
	{
		Name:   "circle_aa",
		Width:  64,
		Height: 64,
		Op:     Circle{Center: image.Pt(32, 32), Radius: 20, Thickness: 3, LineType: raster.LineAA},
	},
	{
		Name:   "circle_clipped",
		Width:  64,
		Height: 64,
		Op:     Circle{Center: image.Pt(60, 4), Radius: 25, Thickness: raster.Filled, LineType: raster.Line8},
	},
	{
		Name:   "ellipse_rotated",
		Width:  64,
		Height: 64,
		Op: Ellipse{
			Center: image.Pt(32, 32), Axes: image.Pt(26, 12), Angle: 30,
			Start: 0, End: 360, Thickness: 2, LineType: raster.LineAA,
		},
	},
	{
		Name:   "ellipse_arc",
		Width:  64,
		Height: 64,
		Op: Ellipse{
			Center: image.Pt(32, 32), Axes: image.Pt(24, 18), Angle: 0,
			Start: 45, End: 270, Thickness: 1, LineType: raster.Line8,
		},
	},
	{
		Name:   "ellipse_wedge",
		Width:  64,
		Height: 64,
		Op: Ellipse{
			Center: image.Pt(32, 32), Axes: image.Pt(24, 18), Angle: -15,
			Start: 0, End: 120, Thickness: raster.Filled, LineType: raster.Line8,
		},
	},
	{
		Name:   "arrow",
		Width:  64,
		Height: 64,
		Op:     Arrow{From: image.Pt(8, 56), To: image.Pt(56, 8), TipLength: 0.2, Thickness: 2, LineType: raster.LineAA},
	},
}

var markerCases = []TestCase{
	{
		Name:   "cross",
		Width:  32,
		Height: 32,
		Op:     Marker{Pos: image.Pt(16, 16), Kind: raster.MarkerCross, Size: 20, Thickness: 1, LineType: raster.Line8},
	},
	{
		Name:   "tilted_cross",
		Width:  32,
		Height: 32,
		Op:     Marker{Pos: image.Pt(16, 16), Kind: raster.MarkerTiltedCross, Size: 20, Thickness: 1, LineType: raster.Line8},
	},
	{
		Name:   "star",
		Width:  32,
		Height: 32,
		Op:     Marker{Pos: image.Pt(16, 16), Kind: raster.MarkerStar, Size: 20, Thickness: 1, LineType: raster.LineAA},
	},
	{
		Name:   "diamond",
		Width:  32,
		Height: 32,
		Op:     Marker{Pos: image.Pt(16, 16), Kind: raster.MarkerDiamond, Size: 20, Thickness: 2, LineType: raster.Line8},
	},
	{
		Name:   "square",
		Width:  32,
		Height: 32,
		Op:     Marker{Pos: image.Pt(16, 16), Kind: raster.MarkerSquare, Size: 20, Thickness: 1, LineType: raster.Line4},
	},
	{
		Name:   "triangle_up",
		Width:  32,
		Height: 32,
		Op:     Marker{Pos: image.Pt(16, 16), Kind: raster.MarkerTriangleUp, Size: 20, Thickness: 1, LineType: raster.Line8},
	},
	{
		Name:   "triangle_down",
		Width:  32,
		Height: 32,
		Op:     Marker{Pos: image.Pt(16, 16), Kind: raster.MarkerTriangleDown, Size: 20, Thickness: 1, LineType: raster.LineAA},
	},
}
