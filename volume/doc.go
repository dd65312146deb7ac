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

// Package volume fuses depth frames into a truncated signed distance field
// (TSDF) and extracts surfaces from it by raycasting.
//
// A [Volume] is created from [Settings] and is backed by one of three
// storage strategies, selected by [Settings].Type:
//
//   - [TSDF]: a dense grid of Resolution voxels,
//   - [HashTSDF]: sparse cubic blocks of voxels, allocated on demand,
//   - [ColorTSDF]: a dense grid which also fuses color.
//
// All variants share the same operations.  Integrate projects voxels into a
// depth frame taken from a known camera pose and updates a running weighted
// average of the truncated distance to the observed surface.  Raycast
// marches rays from a camera pose through the field and reports surface
// points and normals, in camera coordinates, where the field changes sign.
// Invalid output entries are NaN.
//
// Poses are rigid transformations stored as row-major [f32.Mat4] values;
// camera poses map camera coordinates to world coordinates, the volume
// pose maps volume coordinates to world coordinates.
//
// A Volume is not safe for concurrent use.  Integration and raycasting
// spread their work over GOMAXPROCS goroutines and return when the work is
// complete.
package volume
