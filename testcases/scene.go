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
	"math"
	"runtime"

	"golang.org/x/image/math/f32"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/vision/volume"
)

// The camera trajectory of SemisphereScene.
const (
	framesPerCycle = 72
	cycles         = 0.25
)

// Sphere tracing limits.
const (
	maxDepth = 20
	maxSteps = 256
	hitEps   = 1e-6
)

// SemisphereScene is a synthetic scene for depth fusion tests: a sphere
// resting above a plane, together with a small second sphere.
// The camera circles around the large sphere.
type SemisphereScene struct {
	Width, Height int
	Intrinsics    volume.Intrinsics

	// DepthFactor is the number of raw depth units per meter.
	DepthFactor float32

	// OnlySemisphere removes the plane and the small sphere.
	OnlySemisphere bool
}

// SDF returns the signed distance from p to the surface of the scene.
func (s *SemisphereScene) SDF(p f32.Vec3) float32 {
	sphere := dist(p, f32.Vec3{0, 0.3, 1.1}) - 0.5
	if s.OnlySemisphere {
		return sphere
	}
	plane := p[1] + 0.5
	subSphere := dist(p, f32.Vec3{0.3, -0.1, -0.3}) - 0.05
	return min(sphere, subSphere, plane)
}

// Depth renders the depth frame seen from the camera pose.  Pixels which
// do not see the scene are set to zero.
func (s *SemisphereScene) Depth(pose f32.Mat4) *volume.Depth {
	frame := volume.NewMap[float32](s.Width, s.Height)
	s.render(pose, func(x, y int, t, xyt float32, _ f32.Vec3) {
		frame.Set(x, y, t*float32(math.Sqrt(float64(xyt)))*s.DepthFactor)
	})
	return frame
}

// RGB renders the color frame seen from the camera pose.  The surface
// carries a checkerboard pattern with 0.25m squares.  Pixels which do not
// see the scene are black.
func (s *SemisphereScene) RGB(pose f32.Mat4) *volume.ColorImage {
	frame := volume.NewMap[f32.Vec3](s.Width, s.Height)
	s.render(pose, func(x, y int, _, _ float32, p f32.Vec3) {
		frame.Set(x, y, checker(p))
	})
	return frame
}

// Poses returns the camera trajectory.  The camera starts at
// (0, 0.3, -2.1) looking along the z-axis and moves along an ellipse
// around the large sphere.
func (s *SemisphereScene) Poses() []f32.Mat4 {
	var poses []f32.Mat4
	for i := range int(framesPerCycle * cycles) {
		angle := 2 * math.Pi * float64(i) / framesPerCycle
		rot := volume.Rotation(f32.Vec3{0, float32(-0.5 * angle), 0})
		move := volume.Translation(
			float32(1.5*math.Sin(angle)), 0.3, float32(-2.1*math.Cos(angle)))
		poses = append(poses, volume.Mul(move, rot))
	}
	return poses
}

// render traces one ray per pixel and calls hit for the pixels where the
// ray meets the surface.  t is the distance along the ray, xyt converts
// squared distance to squared z-depth and p is the surface point.
func (s *SemisphereScene) render(pose f32.Mat4, hit func(x, y int, t, xyt float32, p f32.Vec3)) {
	orig := volume.TransformPoint(pose, f32.Vec3{})

	g := &errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := range s.Height {
		g.Go(func() error {
			for x := range s.Width {
				screen := s.Intrinsics.Reproject(float32(x), float32(y), 1)
				xyt := 1 / (screen[0]*screen[0] + screen[1]*screen[1] + 1)
				dir := normalize(sub(volume.TransformPoint(pose, screen), orig))

				var t float32
				for step := 0; step < maxSteps && t < maxDepth; step++ {
					p := f32.Vec3{orig[0] + dir[0]*t, orig[1] + dir[1]*t, orig[2] + dir[2]*t}
					d := s.SDF(p)
					if d < hitEps {
						hit(x, y, t, xyt, p)
						break
					}
					t += d
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

func checker(p f32.Vec3) f32.Vec3 {
	const m = 0.25
	var c [3]float32
	for i := range 3 {
		if math.Abs(math.Mod(float64(p[i]), m)) > m/2 {
			c[i] = 1
		}
	}
	return f32.Vec3{(c[0] + c[1]) * 128, (c[1] + c[2]) * 128, (c[0] + c[2]) * 128}
}

func sub(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dist(a, b f32.Vec3) float32 {
	d := sub(a, b)
	return float32(math.Sqrt(float64(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])))
}

func normalize(v f32.Vec3) f32.Vec3 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	return f32.Vec3{v[0] / l, v[1] / l, v[2] / l}
}
