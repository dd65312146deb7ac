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

// Package vision collects CPU implementations of two geometric engines.
//
// The [seehuhn.de/go/vision/raster] package scan-converts lines, polygons,
// ellipses and markers into caller-owned pixel buffers, using 16.16 fixed
// point coordinates and an antialiasing filter for smooth lines.
//
// The [seehuhn.de/go/vision/volume] package fuses depth frames into a
// truncated signed distance field (dense, hashed or colored) and raycasts
// the field into point, normal and color maps.
//
// This package only holds the logger shared by the sub-packages.
package vision
