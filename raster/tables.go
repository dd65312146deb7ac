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

import "math"

// slopeCorrTable scales the coverage of antialiased lines by the slope, so
// that diagonal lines do not look thinner than axis-parallel ones.  Indexed
// by the top 5 fractional bits of the minor step.
var slopeCorrTable = [32]int{
	181, 181, 181, 182, 182, 183, 184, 185, 187, 188, 190, 192, 194, 196, 198, 201,
	203, 206, 209, 211, 214, 218, 221, 224, 227, 231, 235, 238, 242, 246, 250, 254,
}

// filterTable holds the coverage filter for antialiased lines, indexed by
// the distance of a pixel from the ideal line in 1/32 pixel units.  Entries
// 0-31 are for the center pixel, entries 32-63 for the pixels on either
// side.
var filterTable = [64]int{
	168, 177, 185, 194, 202, 210, 218, 224, 231, 236, 241, 246, 249, 252, 254, 254,
	254, 254, 252, 249, 246, 241, 236, 231, 224, 218, 210, 202, 194, 185, 177, 168,
	158, 149, 140, 131, 122, 114, 105, 97, 89, 82, 75, 68, 62, 56, 50, 45,
	40, 36, 32, 28, 25, 22, 19, 16, 14, 12, 11, 9, 8, 7, 5, 5,
}

// sinTable[k] is sin(k°) for k = 0, ..., 450, rounded to seven decimals.
// cos(k°) is sinTable[450-k].
var sinTable = func() [451]float32 {
	var t [451]float32
	for k := range t {
		s := math.Sin(float64(k) * math.Pi / 180)
		t[k] = float32(math.Round(s*1e7) / 1e7)
	}
	return t
}()

// sinCos returns cos and sin of an integer angle in degrees, -360 < deg <= 360.
func sinCos(deg int) (cos, sin float32) {
	if deg < 0 {
		deg += 360
	}
	return sinTable[450-deg], sinTable[deg]
}
