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

// Package raster draws lines, polygons, ellipses and markers into pixel
// buffers.
//
// All drawing goes through a [Painter], which holds the destination
// [Surface] together with the line type, thickness and fixed-point shift
// used to interpret coordinates.  Points are given as [image.Point] values
// carrying Painter.Shift fractional bits, so that sub-pixel positions can
// be expressed without floating point.
//
// Lines come in three flavours: 4- or 8-connected aliased lines, aliased
// lines on fractional coordinates, and antialiased lines which blend a
// three pixel wide footprint into the destination.  Polygons are filled
// with a scanline algorithm, convex ones with two active edges and
// arbitrary ones (several contours, even-odd rule) with a sorted edge
// table and an active edge list.  [Painter.DrawContours] draws nested
// contour sets, selected through a contour hierarchy.
//
// Invalid parameters such as a negative radius, a thickness above
// [MaxThickness] or a shift outside [0, MaxShift] cause a panic.
// Degenerate geometry is silently ignored.
package raster
