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
	"golang.org/x/image/math/f32"
)

// grid is a dense block of voxels, indexed x-major.
type grid struct {
	res [3]int
	vox []voxel
	rgb []f32.Vec3
}

func newGrid(res [3]int, colored bool) *grid {
	n := res[0] * res[1] * res[2]
	g := &grid{res: res, vox: make([]voxel, n)}
	if colored {
		g.rgb = make([]f32.Vec3, n)
	}
	return g
}

func (g *grid) index(x, y, z int) int {
	return (x*g.res[1]+y)*g.res[2] + z
}

func (g *grid) voxel(x, y, z int) *voxel {
	if uint(x) >= uint(g.res[0]) || uint(y) >= uint(g.res[1]) || uint(z) >= uint(g.res[2]) {
		return nil
	}
	return &g.vox[g.index(x, y, z)]
}

func (g *grid) color(x, y, z int) *f32.Vec3 {
	if g.rgb == nil || uint(x) >= uint(g.res[0]) || uint(y) >= uint(g.res[1]) || uint(z) >= uint(g.res[2]) {
		return nil
	}
	return &g.rgb[g.index(x, y, z)]
}

func (g *grid) reset() {
	clear(g.vox)
	clear(g.rgb)
}

// denseVolume stores the distance field in a single grid covering the
// whole volume.
type denseVolume struct {
	engine
	grid *grid
}

func newDenseVolume(s Settings, colored bool) *denseVolume {
	return &denseVolume{
		engine: newEngine(s),
		grid:   newGrid(s.Resolution, colored),
	}
}

func (d *denseVolume) integrate(depth *Depth, _ *ColorImage, camPose f32.Mat4) error {
	return d.fuse(depth, nil, camPose)
}

// fuse updates every voxel of the grid from the frame.  Voxels are
// processed in parallel slabs of constant x.
func (d *denseVolume) fuse(depth *Depth, rgb *ColorImage, camPose f32.Mat4) error {
	it := d.newIntegrator(depth, rgb, camPose)
	g := d.grid
	dz := it.zStep()

	return parallel(split(g.res[0]), func(_ int, s span) error {
		for x := s.lo; x < s.hi; x++ {
			for y := range g.res[1] {
				pc := it.cam(x, y, 0)
				base := g.index(x, y, 0)
				for z := range g.res[2] {
					var col *f32.Vec3
					if g.rgb != nil {
						col = &g.rgb[base+z]
					}
					it.fuse(pc, &g.vox[base+z], col)
					pc = add(pc, dz)
				}
			}
		}
		return nil
	})
}

func (d *denseVolume) raycast(camPose f32.Mat4, width, height int) *Frame {
	frame, _ := d.engine.raycast(d, camPose, width, height)
	return frame
}

func (d *denseVolume) fetchNormals(points []f32.Vec4) []f32.Vec4 {
	return d.engine.fetchNormals(d, points)
}

func (d *denseVolume) extract() ([]f32.Vec4, []f32.Vec4, []f32.Vec3) {
	return d.engine.extract(d)
}

func (d *denseVolume) reset()                { d.grid.reset() }
func (d *denseVolume) visibleBlocks() int    { return 1 }
func (d *denseVolume) totalVolumeUnits() int { return 1 }
func (d *denseVolume) accessor() accessor    { return d.grid }
func (d *denseVolume) blockSize() int        { return 0 }
func (d *denseVolume) colored() bool         { return d.grid.rgb != nil }
func (d *denseVolume) parts() int            { return d.grid.res[0] }
func (d *denseVolume) bounds() (box, bool) {
	// keep a margin of one voxel for interpolation and gradients
	r := d.grid.res
	return box{
		lo: f32.Vec3{1, 1, 1},
		hi: f32.Vec3{float32(r[0] - 2), float32(r[1] - 2), float32(r[2] - 2)},
	}, true
}

func (d *denseVolume) visit(x int, fn func(x, y, z int, v *voxel)) {
	g := d.grid
	for y := range g.res[1] {
		base := g.index(x, y, 0)
		for z := range g.res[2] {
			fn(x, y, z, &g.vox[base+z])
		}
	}
}

// colorVolume is a dense volume which also fuses color frames.
type colorVolume struct {
	*denseVolume
}

func newColorVolume(s Settings) colorVolume {
	return colorVolume{newDenseVolume(s, true)}
}

func (c colorVolume) integrate(depth *Depth, rgb *ColorImage, camPose f32.Mat4) error {
	return c.fuse(depth, rgb, camPose)
}
