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
	"maps"
	"math"
	"slices"
	"testing"

	"golang.org/x/image/math/f32"

	"seehuhn.de/go/vision/raster"
	"seehuhn.de/go/vision/volume"
)

func TestCasesDrawSomething(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, tc := range All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				img := tc.Render()
				n := 0
				for _, v := range img.Pix {
					if v != 0 {
						n++
					}
				}
				if n == 0 {
					t.Fatal("nothing drawn")
				}
				if n == len(img.Pix) {
					t.Fatal("whole image covered")
				}
			})
		}
	}
}

// Drawing white onto RGBA must touch the same pixels, with the same
// coverage, as drawing onto a gray image.
func TestCasesGrayMatchesRGBA(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, tc := range All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				gray := tc.Render()
				rgba := image.NewRGBA(image.Rect(0, 0, tc.Width, tc.Height))
				tc.Draw(raster.FromRGBA(rgba), color.White)

				for y := range tc.Height {
					for x := range tc.Width {
						g := gray.GrayAt(x, y).Y
						c := rgba.RGBAAt(x, y)
						if c.R != g || c.G != g || c.B != g {
							t.Fatalf("pixel (%d,%d): gray %d, rgba %v", x, y, g, c)
						}
					}
				}
			})
		}
	}
}

func TestContours(t *testing.T) {
	got := Contours(concat(triangle(1, 2, 3, 4, 5, 6), rectangle(0, 0, 2.4, 2.6)))
	want := [][]image.Point{
		{{1, 2}, {3, 4}, {5, 6}},
		{{0, 0}, {2, 0}, {2, 3}, {0, 3}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d contours, want %d", len(got), len(want))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("contour %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func testScene(onlySemisphere bool) *SemisphereScene {
	return &SemisphereScene{
		Width:          160,
		Height:         120,
		Intrinsics:     volume.Intrinsics{Fx: 131.25, Fy: 131.25, Cx: 79.5, Cy: 59.5},
		DepthFactor:    5000,
		OnlySemisphere: onlySemisphere,
	}
}

func TestSceneSDF(t *testing.T) {
	s := testScene(false)
	cases := []struct {
		p    f32.Vec3
		want float32
	}{
		{f32.Vec3{0, 0.3, 1.1}, -0.5},
		{f32.Vec3{0, 0.3, 0.6}, 0},
		{f32.Vec3{2, -0.5, 0}, 0},
		{f32.Vec3{0.3, -0.1, -0.3}, -0.05},
	}
	for _, c := range cases {
		if got := s.SDF(c.p); math.Abs(float64(got-c.want)) > 1e-6 {
			t.Errorf("SDF(%v) = %g, want %g", c.p, got, c.want)
		}
	}

	s.OnlySemisphere = true
	if got := s.SDF(f32.Vec3{2, -0.5, 0}); got < 1 {
		t.Errorf("plane present in semisphere scene: %g", got)
	}
}

func TestScenePoses(t *testing.T) {
	s := testScene(false)
	poses := s.Poses()
	if len(poses) != 18 {
		t.Fatalf("got %d poses, want 18", len(poses))
	}
	if poses[0] != volume.Translation(0, 0.3, -2.1) {
		t.Errorf("unexpected first pose %v", poses[0])
	}

	// all cameras keep their height and look roughly at the sphere
	for i, pose := range poses {
		if pose[7] != 0.3 {
			t.Errorf("pose %d: height %g", i, pose[7])
		}
		pos := volume.TransformPoint(pose, f32.Vec3{})
		fwd := sub(volume.TransformPoint(pose, f32.Vec3{0, 0, 1}), pos)
		toSphere := normalize(sub(f32.Vec3{0, 0.3, 1.1}, pos))
		cos := fwd[0]*toSphere[0] + fwd[1]*toSphere[1] + fwd[2]*toSphere[2]
		if cos < 0.95 {
			t.Errorf("pose %d: sphere at angle %g", i, math.Acos(float64(cos)))
		}
	}
}

func TestSceneDepth(t *testing.T) {
	s := testScene(true)
	depth := s.Depth(s.Poses()[0])
	if depth.Width != 160 || depth.Height != 120 {
		t.Fatalf("wrong size %dx%d", depth.Width, depth.Height)
	}

	// the camera sees the front of the sphere, 2.7m ahead
	if d := depth.At(80, 60); math.Abs(float64(d-2.7*5000)) > 5 {
		t.Errorf("center depth %g", d)
	}
	if d := depth.At(0, 0); d != 0 {
		t.Errorf("corner depth %g", d)
	}
}

func TestSceneRGB(t *testing.T) {
	s := testScene(false)
	rgb := s.RGB(s.Poses()[3])
	depth := s.Depth(s.Poses()[3])
	for i, c := range rgb.Pix {
		for _, v := range c {
			if v != 0 && v != 128 && v != 256 {
				t.Fatalf("pixel %d: unexpected color %v", i, c)
			}
		}
		if depth.Pix[i] == 0 && c != (f32.Vec3{}) {
			t.Fatalf("pixel %d: color %v without depth", i, c)
		}
	}
}
