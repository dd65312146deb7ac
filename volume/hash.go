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
	"cmp"
	"maps"
	"slices"

	"golang.org/x/image/math/f32"
)

// blockIndex identifies a volume unit.  Voxel (x, y, z) belongs to the
// unit {x >> d, y >> d, z >> d}, where d is the unit degree.
type blockIndex struct {
	X, Y, Z int32
}

func compareBlocks(a, b blockIndex) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

// unit is a cube of voxels, indexed x-major.
type unit struct {
	vox []voxel
}

// hashVolume stores the distance field in units which are allocated when
// a depth sample first falls into their range.
type hashVolume struct {
	engine
	degree int
	res    int // voxels per unit edge
	units  map[blockIndex]*unit

	// order lists the keys of units in sorted order.
	order []blockIndex

	box     box
	visible int
}

func newHashVolume(s Settings) *hashVolume {
	return &hashVolume{
		engine: newEngine(s),
		degree: s.UnitDegree,
		res:    1 << s.UnitDegree,
		units:  make(map[blockIndex]*unit),
	}
}

func (h *hashVolume) block(x, y, z int) blockIndex {
	return blockIndex{int32(x >> h.degree), int32(y >> h.degree), int32(z >> h.degree)}
}

// integrate first collects the blocks within the truncation band of every
// depth sample, then allocates the new ones and finally fuses the frame
// into all collected units in parallel.
func (h *hashVolume) integrate(depth *Depth, _ *ColorImage, camPose f32.Mat4) error {
	it := h.newIntegrator(depth, nil, camPose)
	touched, err := h.allocate(it, camPose)
	if err != nil {
		return err
	}

	unitVoxels := h.res * h.res * h.res
	return parallel(split(len(touched)), func(_ int, s span) error {
		for _, idx := range touched[s.lo:s.hi] {
			u := h.units[idx]
			x0, y0, z0 := int(idx.X)<<h.degree, int(idx.Y)<<h.degree, int(idx.Z)<<h.degree
			dz := it.zStep()
			for i := 0; i < unitVoxels; i += h.res {
				x := x0 + i/(h.res*h.res)
				y := y0 + (i/h.res)%h.res
				pc := it.cam(x, y, z0)
				for k := range h.res {
					it.fuse(pc, &u.vox[i+k], nil)
					pc = add(pc, dz)
				}
			}
		}
		return nil
	})
}

// allocate returns the sorted indices of all units which intersect the
// truncation band of a valid depth sample, creating missing units.
func (h *hashVolume) allocate(it *integrator, camPose f32.Mat4) ([]blockIndex, error) {
	volFromCam := Mul(h.worldToVol, camPose)
	stride := float32(h.res) * h.s.VoxelSize / 2
	width := it.depth.Width

	spans := split(it.depth.Height)
	found := make([]map[blockIndex]struct{}, len(spans))
	err := parallel(spans, func(i int, s span) error {
		seen := make(map[blockIndex]struct{})
		for y := s.lo; y < s.hi; y++ {
			for x := range width {
				d := it.depth.Pix[y*width+x] * it.dfacInv
				if !(d > 0) || d > it.maxDepth {
					continue
				}
				// sample the band along the viewing ray
				z0, z1 := max(d-it.trunc, 0), d+it.trunc
				for z := z0; ; {
					pc := it.in.Reproject(float32(x), float32(y), z)
					pv := scale(TransformPoint(volFromCam, pc), h.voxelInv)
					c := floor3(pv)
					seen[h.block(c[0], c[1], c[2])] = struct{}{}
					next := min(z+stride, z1)
					if z >= z1 || next == z {
						break
					}
					z = next
				}
			}
		}
		found[i] = seen
		return nil
	})
	if err != nil {
		return nil, err
	}

	touched := make(map[blockIndex]struct{})
	for _, seen := range found {
		maps.Copy(touched, seen)
	}

	added := false
	unitVoxels := h.res * h.res * h.res
	for idx := range touched {
		if _, ok := h.units[idx]; !ok {
			h.units[idx] = &unit{vox: make([]voxel, unitVoxels)}
			added = true
		}
	}
	if added {
		h.order = slices.SortedFunc(maps.Keys(h.units), compareBlocks)
		h.updateBox()
	}

	return slices.SortedFunc(maps.Keys(touched), compareBlocks), nil
}

func (h *hashVolume) updateBox() {
	if len(h.order) == 0 {
		h.box = box{}
		return
	}
	lo := h.order[0]
	hi := lo
	for _, idx := range h.order {
		lo = blockIndex{min(lo.X, idx.X), min(lo.Y, idx.Y), min(lo.Z, idx.Z)}
		hi = blockIndex{max(hi.X, idx.X), max(hi.Y, idx.Y), max(hi.Z, idx.Z)}
	}
	r := float32(h.res)
	h.box = box{
		lo: f32.Vec3{float32(lo.X) * r, float32(lo.Y) * r, float32(lo.Z) * r},
		hi: f32.Vec3{float32(hi.X+1) * r, float32(hi.Y+1) * r, float32(hi.Z+1) * r},
	}
}

func (h *hashVolume) raycast(camPose f32.Mat4, width, height int) *Frame {
	frame, visible := h.engine.raycast(h, camPose, width, height)
	h.visible = visible
	return frame
}

func (h *hashVolume) fetchNormals(points []f32.Vec4) []f32.Vec4 {
	return h.engine.fetchNormals(h, points)
}

func (h *hashVolume) extract() ([]f32.Vec4, []f32.Vec4, []f32.Vec3) {
	return h.engine.extract(h)
}

func (h *hashVolume) reset() {
	clear(h.units)
	h.order = nil
	h.box = box{}
	h.visible = 0
}

func (h *hashVolume) visibleBlocks() int    { return h.visible }
func (h *hashVolume) totalVolumeUnits() int { return len(h.units) }
func (h *hashVolume) blockSize() int        { return h.res }
func (h *hashVolume) colored() bool         { return false }
func (h *hashVolume) parts() int            { return len(h.order) }

func (h *hashVolume) bounds() (box, bool) {
	return h.box, len(h.units) > 0
}

func (h *hashVolume) accessor() accessor {
	return &hashAccessor{h: h}
}

func (h *hashVolume) visit(part int, fn func(x, y, z int, v *voxel)) {
	idx := h.order[part]
	u := h.units[idx]
	x0, y0, z0 := int(idx.X)<<h.degree, int(idx.Y)<<h.degree, int(idx.Z)<<h.degree
	i := 0
	for x := range h.res {
		for y := range h.res {
			for z := range h.res {
				fn(x0+x, y0+y, z0+z, &u.vox[i])
				i++
			}
		}
	}
}

// hashAccessor remembers the most recently used unit, since consecutive
// lookups mostly hit the same one.
type hashAccessor struct {
	h       *hashVolume
	lastIdx blockIndex
	last    *unit
	valid   bool
}

func (a *hashAccessor) voxel(x, y, z int) *voxel {
	idx := a.h.block(x, y, z)
	if !a.valid || idx != a.lastIdx {
		a.last = a.h.units[idx]
		a.lastIdx = idx
		a.valid = true
	}
	if a.last == nil {
		return nil
	}
	mask := a.h.res - 1
	return &a.last.vox[((x&mask)*a.h.res+(y&mask))*a.h.res+(z&mask)]
}

func (a *hashAccessor) color(x, y, z int) *f32.Vec3 {
	return nil
}
