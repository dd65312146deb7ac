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

// sampler interpolates the distance field between voxel centers.
// Positions are in voxel coordinates.
type sampler struct {
	acc accessor
}

// corners returns the eight voxels around p and the fractional position of
// p in the cube they span.
func (s sampler) corners(p f32.Vec3) (vs [8]*voxel, c [3]int, t f32.Vec3, ok bool) {
	c = floor3(p)
	t = f32.Vec3{p[0] - float32(c[0]), p[1] - float32(c[1]), p[2] - float32(c[2])}
	for i := range 8 {
		v := s.acc.voxel(c[0]+i>>2, c[1]+(i>>1)&1, c[2]+i&1)
		if v == nil {
			return vs, c, t, false
		}
		vs[i] = v
	}
	return vs, c, t, true
}

// tsdf returns the trilinear interpolation of the distance field at p.
// The second return value is false if a voxel nearby is not allocated.
func (s sampler) tsdf(p f32.Vec3) (float32, bool) {
	vs, _, t, ok := s.corners(p)
	if !ok {
		return 0, false
	}
	var vals [8]float32
	for i, v := range vs {
		vals[i] = v.tsdf
	}
	return trilinear(vals, t), true
}

// weight returns the weight of the voxel nearest to p.
func (s sampler) weight(p f32.Vec3) int32 {
	v := s.acc.voxel(
		int(math.Floor(float64(p[0])+0.5)),
		int(math.Floor(float64(p[1])+0.5)),
		int(math.Floor(float64(p[2])+0.5)))
	if v == nil {
		return 0
	}
	return v.weight
}

// normal returns the normalized gradient of the distance field at p,
// using central differences one voxel apart.
func (s sampler) normal(p f32.Vec3) (f32.Vec3, bool) {
	var g f32.Vec3
	for axis := range 3 {
		q0, q1 := p, p
		q0[axis]--
		q1[axis]++
		v0, ok0 := s.tsdf(q0)
		v1, ok1 := s.tsdf(q1)
		if !ok0 || !ok1 {
			return g, false
		}
		g[axis] = v1 - v0
	}
	return normalize(g)
}

// color returns the trilinear interpolation of the voxel colors at p.
func (s sampler) color(p f32.Vec3) (f32.Vec3, bool) {
	c := floor3(p)
	t := f32.Vec3{p[0] - float32(c[0]), p[1] - float32(c[1]), p[2] - float32(c[2])}
	var res f32.Vec3
	var ch [3][8]float32
	for i := range 8 {
		col := s.acc.color(c[0]+i>>2, c[1]+(i>>1)&1, c[2]+i&1)
		if col == nil {
			return res, false
		}
		for k := range 3 {
			ch[k][i] = col[k]
		}
	}
	for k := range 3 {
		res[k] = trilinear(ch[k], t)
	}
	return res, true
}

// trilinear interpolates between the corner values of a unit cube.  The
// corner (i>>2, (i>>1)&1, i&1) has value vals[i].
func trilinear(vals [8]float32, t f32.Vec3) float32 {
	var z [4]float32
	for i := range 4 {
		z[i] = vals[2*i] + (vals[2*i+1]-vals[2*i])*t[2]
	}
	y0 := z[0] + (z[1]-z[0])*t[1]
	y1 := z[2] + (z[3]-z[2])*t[1]
	return y0 + (y1-y0)*t[0]
}

// raycast renders the surface seen from camPose.  The second return value
// is the number of distinct allocation blocks sampled by the rays.
func (e *engine) raycast(st storage, camPose f32.Mat4, width, height int) (*Frame, int) {
	in := e.s.RaycastIntrinsics
	if width != e.s.RaycastWidth || height != e.s.RaycastHeight {
		in = in.Scale(float32(width)/float32(e.s.RaycastWidth),
			float32(height)/float32(e.s.RaycastHeight))
	}

	frame := newFrame(width, height, st.colored())
	bounds, ok := st.bounds()
	if !ok {
		return frame, 0
	}

	volFromCam := Mul(e.worldToVol, camPose)
	camFromVol := InvertRigid(volFromCam)
	orig := scale(translation(volFromCam), e.voxelInv)
	step := e.s.RaycastStepFactor * e.s.TruncateDistance * e.voxelInv
	blockSize := st.blockSize()

	maxDepth := float32(math.Inf(1))
	if blockSize > 0 && e.s.TruncateThreshold > 0 {
		maxDepth = e.s.TruncateThreshold * e.voxelInv
	}

	spans := split(height)
	blocks := make([]map[[3]int]struct{}, len(spans))
	forEach(spans, func(part int, s span) {
		r := marcher{
			smp:       sampler{acc: st.accessor()},
			step:      step,
			blockSize: blockSize,
		}
		if blockSize > 0 {
			r.blocks = make(map[[3]int]struct{})
		}
		for y := s.lo; y < s.hi; y++ {
			for x := range width {
				dirCam := in.Reproject(float32(x), float32(y), 1)
				dir, ok := normalize(rotate(volFromCam, dirCam))
				if !ok {
					continue
				}
				// depth along the optical axis is t / |dirCam|
				tMax := maxDepth * length(dirCam)
				t0, t1 := bounds.clip(orig, dir, 0, tMax)
				if t0 > t1 {
					continue
				}
				q, found := r.march(orig, dir, t0, t1)
				if !found {
					continue
				}
				n, ok := r.smp.normal(q)
				if !ok {
					continue
				}
				i := y*width + x
				frame.Points.Pix[i] = vec4(TransformPoint(camFromVol, scale(q, e.s.VoxelSize)))
				frame.Normals.Pix[i] = vec4(rotate(camFromVol, n))
				if frame.Colors != nil {
					if c, ok := r.smp.color(q); ok {
						frame.Colors.Pix[i] = c
					}
				}
			}
		}
		blocks[part] = r.blocks
	})

	if blockSize == 0 {
		return frame, 0
	}
	visible := make(map[[3]int]struct{})
	for _, b := range blocks {
		for idx := range b {
			visible[idx] = struct{}{}
		}
	}
	return frame, len(visible)
}

// marcher walks single rays through the distance field.
type marcher struct {
	smp       sampler
	step      float32
	blockSize int
	blocks    map[[3]int]struct{}
}

// march returns the first position on the ray orig + t*dir, t0 <= t <= t1,
// where the field changes from positive to non-positive.  Stretches of
// unallocated blocks are skipped.  The search ends without a result when
// the ray leaves a surface from behind.
func (r *marcher) march(orig, dir f32.Vec3, t0, t1 float32) (f32.Vec3, bool) {
	var prev, tPrev float32
	havePrev := false

	for t := t0; t <= t1; {
		p := add(orig, scale(dir, t))

		if r.blockSize > 0 {
			c := floor3(p)
			if r.smp.acc.voxel(c[0], c[1], c[2]) == nil {
				t = max(t+r.step, r.blockExit(p, dir, c)+t+1e-3)
				havePrev = false
				continue
			}
			b := [3]int{floorDiv(c[0], r.blockSize), floorDiv(c[1], r.blockSize), floorDiv(c[2], r.blockSize)}
			r.blocks[b] = struct{}{}
		}

		curr, ok := r.smp.tsdf(p)
		if !ok {
			havePrev = false
			t += r.step
			continue
		}

		if havePrev {
			if prev > 0 && curr <= 0 && r.smp.weight(p) > 0 {
				ts := tPrev - r.step*prev/(curr-prev)
				return add(orig, scale(dir, ts)), true
			}
			if prev < 0 && curr > 0 {
				return f32.Vec3{}, false
			}
		}

		prev, tPrev, havePrev = curr, t, true
		t += r.step
	}
	return f32.Vec3{}, false
}

// blockExit returns the ray parameter, relative to p, at which the ray
// leaves the block containing voxel c.
func (r *marcher) blockExit(p, dir f32.Vec3, c [3]int) float32 {
	n := r.blockSize
	tExit := float32(math.Inf(1))
	for axis := range 3 {
		lo := float32(floorDiv(c[axis], n) * n)
		var dist float32
		switch {
		case dir[axis] > 0:
			dist = (lo + float32(n) - p[axis]) / dir[axis]
		case dir[axis] < 0:
			dist = (lo - p[axis]) / dir[axis]
		default:
			continue
		}
		tExit = min(tExit, dist)
	}
	return tExit
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// fetchNormals computes surface normals at points given in world
// coordinates.  The normals are in world coordinates as well.
func (e *engine) fetchNormals(st storage, points []f32.Vec4) []f32.Vec4 {
	res := make([]f32.Vec4, len(points))
	forEach(split(len(points)), func(_ int, s span) {
		smp := sampler{acc: st.accessor()}
		for i := s.lo; i < s.hi; i++ {
			res[i] = invalid4
			if !Valid(points[i]) {
				continue
			}
			p := scale(TransformPoint(e.worldToVol, vec3(points[i])), e.voxelInv)
			if n, ok := smp.normal(p); ok {
				res[i] = vec4(rotate(e.volToWorld, n))
			}
		}
	})
	return res
}
