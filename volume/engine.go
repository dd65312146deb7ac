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

package volume

import (
	"math"

	"golang.org/x/image/math/f32"
)

// voxel is one cell of the distance field.  TSDF is only meaningful while
// Weight is positive.
type voxel struct {
	tsdf   float32
	weight int32
}

// accessor gives access to the voxels of a volume by integer voxel
// coordinates.  Accessors may cache lookups and must not be shared
// between goroutines.
type accessor interface {
	// voxel returns nil for voxels outside the allocated storage.
	voxel(x, y, z int) *voxel

	// color returns nil if the volume does not store colors.
	color(x, y, z int) *f32.Vec3
}

// storage is the part of a volume implementation which the shared
// raycasting and extraction code needs.
type storage interface {
	accessor() accessor

	// bounds returns the region, in voxel coordinates, in which rays are
	// marched.  The second return value is false if the volume is empty.
	bounds() (box, bool)

	// blockSize is the edge length of the allocation blocks, or 0 if all
	// voxels inside the bounds exist.
	blockSize() int

	colored() bool

	// parts and visit enumerate all stored voxels, in a fixed order,
	// split into independent parts.
	parts() int
	visit(part int, fn func(x, y, z int, v *voxel))
}

// engine holds the state shared by all volume implementations.
type engine struct {
	s          Settings
	volToWorld f32.Mat4
	worldToVol f32.Mat4
	voxelInv   float32

	norms     []float32
	normsSize [2]int
	normsIn   Intrinsics
}

func newEngine(s Settings) engine {
	return engine{
		s:          s,
		volToWorld: s.Pose,
		worldToVol: InvertRigid(s.Pose),
		voxelInv:   1 / s.VoxelSize,
	}
}

// integrateIntrinsics returns the camera parameters for a depth frame of
// the given size.
func (e *engine) integrateIntrinsics(width, height int) Intrinsics {
	in := e.s.IntegrateIntrinsics
	if width != e.s.IntegrateWidth || height != e.s.IntegrateHeight {
		in = in.Scale(float32(width)/float32(e.s.IntegrateWidth),
			float32(height)/float32(e.s.IntegrateHeight))
	}
	return in
}

// pixNorms returns, for every pixel, the length of the ray direction
// through the pixel scaled to unit depth.
func (e *engine) pixNorms(width, height int, in Intrinsics) []float32 {
	if e.norms != nil && e.normsSize == [2]int{width, height} && e.normsIn == in {
		return e.norms
	}
	norms := make([]float32, width*height)
	for y := range height {
		ry := (float32(y) - in.Cy) / in.Fy
		for x := range width {
			rx := (float32(x) - in.Cx) / in.Fx
			norms[y*width+x] = float32(math.Sqrt(float64(rx*rx + ry*ry + 1)))
		}
	}
	e.norms, e.normsSize, e.normsIn = norms, [2]int{width, height}, in
	return norms
}

// integrator fuses one depth frame into voxels.  It is read-only after
// construction and may be shared between goroutines.
type integrator struct {
	depth    *Depth
	rgb      *ColorImage
	in       Intrinsics
	norms    []float32
	dfacInv  float32
	trunc    float32
	truncInv float32
	maxDepth float32
	maxW     int32

	// camFromVoxel maps integer voxel coordinates to camera coordinates.
	camFromVoxel f32.Mat4
}

func (e *engine) newIntegrator(depth *Depth, rgb *ColorImage, camPose f32.Mat4) *integrator {
	in := e.integrateIntrinsics(depth.Width, depth.Height)

	camFromVol := Mul(InvertRigid(camPose), e.volToWorld)
	camFromVoxel := camFromVol
	for row := range 3 {
		for col := range 3 {
			camFromVoxel[4*row+col] *= e.s.VoxelSize
		}
	}

	maxDepth := float32(math.Inf(1))
	if e.s.TruncateThreshold > 0 {
		maxDepth = e.s.TruncateThreshold
	}
	if rgb != nil && (rgb.Width != depth.Width || rgb.Height != depth.Height) {
		rgb = nil
	}

	return &integrator{
		depth:        depth,
		rgb:          rgb,
		in:           in,
		norms:        e.pixNorms(depth.Width, depth.Height, in),
		dfacInv:      1 / e.s.DepthFactor,
		trunc:        e.s.TruncateDistance,
		truncInv:     1 / e.s.TruncateDistance,
		maxDepth:     maxDepth,
		maxW:         int32(e.s.MaxWeight),
		camFromVoxel: camFromVoxel,
	}
}

// cam returns the camera coordinates of voxel (x, y, z).
func (it *integrator) cam(x, y, z int) f32.Vec3 {
	return TransformPoint(it.camFromVoxel, f32.Vec3{float32(x), float32(y), float32(z)})
}

// zStep is the change of camera coordinates per voxel along the z axis.
func (it *integrator) zStep() f32.Vec3 {
	m := &it.camFromVoxel
	return f32.Vec3{m[2], m[6], m[10]}
}

// fuse updates the voxel at camera position pc.  If col is not nil and
// the frame has color, the voxel color is updated too.
func (it *integrator) fuse(pc f32.Vec3, v *voxel, col *f32.Vec3) {
	if pc[2] <= 0 {
		return
	}
	u, w := it.in.Project(pc)
	d := it.depthAt(u, w)
	if d <= 0 || d > it.maxDepth {
		return
	}

	ui, vi := int(u), int(w)
	sdf := it.norms[vi*it.depth.Width+ui] * (d - pc[2])
	if sdf < -it.trunc {
		return
	}
	tsdf := min(1, sdf*it.truncInv)

	weight := float32(v.weight)
	v.tsdf = (v.tsdf*weight + tsdf) / (weight + 1)
	if col != nil && it.rgb != nil {
		c := it.rgb.At(min(int(u+0.5), it.rgb.Width-1), min(int(w+0.5), it.rgb.Height-1))
		*col = scale(add(scale(*col, weight), c), 1/(weight+1))
	}
	v.weight = min(v.weight+1, it.maxW)
}

// depthAt interpolates the depth frame at pixel position (u, v) and
// returns the depth in meters, or 0 if there is no valid sample nearby.
func (it *integrator) depthAt(u, v float32) float32 {
	m := it.depth
	if !(u >= 0 && v >= 0 && u < float32(m.Width-1) && v < float32(m.Height-1)) {
		return 0
	}
	xi, yi := int(u), int(v)
	tx, ty := u-float32(xi), v-float32(yi)

	i := yi*m.Width + xi
	samples := [4]float32{m.Pix[i], m.Pix[i+1], m.Pix[i+m.Width], m.Pix[i+m.Width+1]}
	weights := [4]float32{(1 - tx) * (1 - ty), tx * (1 - ty), (1 - tx) * ty, tx * ty}

	var sum, wsum float32
	for k, d := range samples {
		if d > 0 {
			sum += d * weights[k]
			wsum += weights[k]
		}
	}
	if wsum <= 0 {
		return 0
	}
	return sum / wsum * it.dfacInv
}
