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

import "golang.org/x/image/math/f32"

// surface collects extracted surface samples in world coordinates.
type surface struct {
	points  []f32.Vec4
	normals []f32.Vec4
	colors  []f32.Vec3
}

// extract finds the zero crossings of the distance field between
// neighboring voxels along the three axes and returns them, in world
// coordinates, together with normals and, for colored volumes, colors.
// Only voxels which have been observed are considered.
func (e *engine) extract(st storage) ([]f32.Vec4, []f32.Vec4, []f32.Vec3) {
	spans := split(st.parts())
	results := make([]surface, len(spans))
	colored := st.colored()

	forEach(spans, func(i int, s span) {
		acc := st.accessor()
		smp := sampler{acc: acc}
		res := &results[i]
		for part := s.lo; part < s.hi; part++ {
			st.visit(part, func(x, y, z int, v *voxel) {
				if v.weight == 0 {
					return
				}
				v0 := v.tsdf
				for axis := range 3 {
					n := [3]int{x, y, z}
					n[axis]++
					nv := acc.voxel(n[0], n[1], n[2])
					if nv == nil || nv.weight == 0 {
						continue
					}
					v1 := nv.tsdf
					if (v0 > 0) == (v1 > 0) || v0 == v1 {
						continue
					}

					q := f32.Vec3{float32(x), float32(y), float32(z)}
					q[axis] += v0 / (v0 - v1)
					normal, ok := smp.normal(q)
					if !ok {
						continue
					}
					var col f32.Vec3
					if colored {
						if col, ok = smp.color(q); !ok {
							continue
						}
					}

					p := TransformPoint(e.volToWorld, scale(q, e.s.VoxelSize))
					res.points = append(res.points, vec4(p))
					res.normals = append(res.normals, vec4(rotate(e.volToWorld, normal)))
					if colored {
						res.colors = append(res.colors, col)
					}
				}
			})
		}
	})

	var out surface
	for _, r := range results {
		out.points = append(out.points, r.points...)
		out.normals = append(out.normals, r.normals...)
		out.colors = append(out.colors, r.colors...)
	}
	return out.points, out.normals, out.colors
}
