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

// Command genpdf generates reference images for the drawing test cases.
// It creates PDFs from test cases and renders them to PNGs using Ghostscript.
package main

import (
	"fmt"
	"image"
	"maps"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/vision/raster"
	"seehuhn.de/go/vision/testcases"
)

const refDir = "testdata/reference"

func main() {
	// Create output directory
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	// Process all test cases which have a vector equivalent
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			switch tc.Op.(type) {
			case testcases.Marker, testcases.Arrow:
				continue
			}

			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	// Page size in points (1 point = 1 pixel at 72 DPI)
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Paint black background first (PDF default is white, but we need
	// black background for coverage semantics: 0=no coverage, 255=full)
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, float64(tc.Width), float64(tc.Height))
	page.Fill()

	// PDF origin is bottom-left; test cases assume top-left.
	// Apply Y-axis flip, and move integer coordinates to pixel centers.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0.5, float64(tc.Height) - 0.5})

	page.SetFillColor(color.DeviceGray(1))
	page.SetStrokeColor(color.DeviceGray(1))
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	polygon := func(pts []image.Point, closed bool) {
		if len(pts) == 0 {
			return
		}
		page.MoveTo(float64(pts[0].X), float64(pts[0].Y))
		for _, p := range pts[1:] {
			page.LineTo(float64(p.X), float64(p.Y))
		}
		if closed {
			page.ClosePath()
		}
	}
	// negative thickness fills, like in the raster package
	paint := func(pts []image.Point, thickness int) {
		polygon(pts, true)
		if thickness < 0 {
			page.Fill()
			return
		}
		page.SetLineWidth(float64(thickness))
		page.Stroke()
	}

	switch op := tc.Op.(type) {
	case testcases.Fill:
		contours := testcases.Contours(op.Contours)
		if op.Convex && len(contours) > 1 {
			contours = contours[:1]
		}
		for _, c := range contours {
			polygon(c, true)
		}
		page.FillEvenOdd()

	case testcases.Stroke:
		page.SetLineWidth(float64(op.Thickness))
		for _, c := range testcases.Contours(op.Path) {
			polygon(c, op.Closed)
		}
		page.Stroke()

	case testcases.Circle:
		pts := raster.Ellipse2Poly(op.Center, image.Pt(op.Radius, op.Radius), 0, 0, 360, 1)
		paint(pts, op.Thickness)

	case testcases.Ellipse:
		pts := raster.Ellipse2Poly(op.Center, op.Axes,
			int(math.Round(op.Angle)), int(math.Round(op.Start)), int(math.Round(op.End)), 1)
		if op.Thickness < 0 && op.End-op.Start < 360 {
			pts = append(pts, op.Center)
		}
		paint(pts, op.Thickness)
	}

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// Render PDF to PNG using Ghostscript
	// -sDEVICE=pnggray: 8-bit grayscale (matches Cairo FORMAT_A8)
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
