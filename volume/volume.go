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
	"github.com/pkg/errors"
	"golang.org/x/image/math/f32"

	"seehuhn.de/go/vision"
)

// Volume is a truncated signed distance field, built up from depth
// frames.
type Volume struct {
	settings Settings
	impl     impl
	frames   int

	// last is the most recent raycast, until the next change of the
	// field.
	last     *Frame
	lastPose f32.Mat4
}

// impl is implemented by the storage strategies.
type impl interface {
	integrate(depth *Depth, rgb *ColorImage, camPose f32.Mat4) error
	raycast(camPose f32.Mat4, width, height int) *Frame
	fetchNormals(points []f32.Vec4) []f32.Vec4
	extract() (points, normals []f32.Vec4, colors []f32.Vec3)
	reset()
	visibleBlocks() int
	totalVolumeUnits() int
}

// New creates an empty volume.  An error is returned if the settings are
// invalid.
func New(s Settings) (*Volume, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid volume settings")
	}

	var im impl
	switch s.Type {
	case TSDF:
		im = newDenseVolume(s, false)
	case HashTSDF:
		im = newHashVolume(s)
	case ColorTSDF:
		im = newColorVolume(s)
	default:
		return nil, errors.Errorf("unknown volume type %d", int(s.Type))
	}

	vision.Logger().Info("volume created",
		"type", s.Type, "voxel_size", s.VoxelSize, "resolution", s.Resolution)
	return &Volume{settings: s, impl: im}, nil
}

// Settings returns the settings the volume was created with.
func (v *Volume) Settings() Settings {
	return v.settings
}

// Integrate fuses a depth frame, taken from the camera pose camPose, into
// the volume.  Depth values are in raw units, see [Settings].DepthFactor.
// For colored volumes only the distances are updated.  An empty frame is
// ignored; an error is returned if the frame is malformed.
func (v *Volume) Integrate(depth *Depth, camPose f32.Mat4) error {
	return v.IntegrateColor(depth, nil, camPose)
}

// IntegrateColor fuses a depth frame and the matching color frame into the
// volume.  Volumes without color ignore rgb.  A color frame whose size
// differs from the depth frame is ignored.
func (v *Volume) IntegrateColor(depth *Depth, rgb *ColorImage, camPose f32.Mat4) error {
	if depth == nil {
		return nil
	}
	if err := checkMap(depth); err != nil {
		return errors.Wrap(err, "depth frame")
	}
	if rgb != nil {
		if err := checkMap(rgb); err != nil {
			return errors.Wrap(err, "color frame")
		}
	}
	if depth.Width == 0 || depth.Height == 0 {
		return nil
	}

	if err := v.impl.integrate(depth, rgb, camPose); err != nil {
		return errors.Wrap(err, "integrating frame")
	}
	v.frames++
	v.last = nil

	vision.Logger().Debug("frame integrated",
		"type", v.settings.Type, "frame", v.frames, "units", v.impl.totalVolumeUnits())
	return nil
}

// checkMap verifies that the pixel slice of m matches its size.
func checkMap[T any](m *Map[T]) error {
	if m.Width < 0 || m.Height < 0 {
		return errors.Errorf("invalid size %dx%d", m.Width, m.Height)
	}
	if len(m.Pix) != m.Width*m.Height {
		return errors.Errorf("%d pixels for size %dx%d", len(m.Pix), m.Width, m.Height)
	}
	return nil
}

// Raycast renders the surface seen from camPose at the configured raycast
// resolution.
func (v *Volume) Raycast(camPose f32.Mat4) *Frame {
	return v.RaycastSize(camPose, v.settings.RaycastHeight, v.settings.RaycastWidth)
}

// RaycastSize renders the surface seen from camPose into frames of the
// given size.  The raycast intrinsics are scaled to match.
func (v *Volume) RaycastSize(camPose f32.Mat4, height, width int) *Frame {
	if width <= 0 || height <= 0 {
		return newFrame(0, 0, v.settings.Type == ColorTSDF)
	}
	frame := v.impl.raycast(camPose, width, height)
	v.last, v.lastPose = frame, camPose

	vision.Logger().Debug("raycast",
		"type", v.settings.Type, "width", width, "height", height,
		"visible_blocks", v.impl.visibleBlocks())
	return frame
}

// FetchNormals returns the surface normals at the given points.  Points and
// normals are in world coordinates.  Invalid points, and points where the
// field has no gradient, give invalid normals.
func (v *Volume) FetchNormals(points []f32.Vec4) []f32.Vec4 {
	return v.impl.fetchNormals(points)
}

// FetchPointsNormals returns surface points with their normals, in world
// coordinates.  If the field has not changed since the last raycast, the
// valid entries of that raycast are returned.  Otherwise the surface is
// extracted from the voxels directly.
func (v *Volume) FetchPointsNormals() (points, normals []f32.Vec4) {
	points, normals, _ = v.fetch(false)
	return points, normals
}

// FetchPointsNormalsColors is like [Volume.FetchPointsNormals], but also
// returns the surface colors.  For volumes without color, colors is nil.
func (v *Volume) FetchPointsNormalsColors() (points, normals []f32.Vec4, colors []f32.Vec3) {
	return v.fetch(true)
}

func (v *Volume) fetch(withColors bool) (points, normals []f32.Vec4, colors []f32.Vec3) {
	if v.last == nil {
		points, normals, colors = v.impl.extract()
		if !withColors {
			colors = nil
		}
		return points, normals, colors
	}

	f := v.last
	withColors = withColors && f.Colors != nil
	for i, p := range f.Points.Pix {
		if !Valid(p) {
			continue
		}
		points = append(points, vec4(TransformPoint(v.lastPose, vec3(p))))
		normals = append(normals, vec4(rotate(v.lastPose, vec3(f.Normals.Pix[i]))))
		if withColors {
			colors = append(colors, f.Colors.Pix[i])
		}
	}
	return points, normals, colors
}

// Reset removes all integrated data.  The settings are kept.
func (v *Volume) Reset() {
	v.impl.reset()
	v.frames = 0
	v.last = nil

	vision.Logger().Info("volume reset", "type", v.settings.Type)
}

// VisibleBlocks returns the number of allocation blocks sampled by the most
// recent raycast.  Dense volumes consist of a single block.
func (v *Volume) VisibleBlocks() int {
	return v.impl.visibleBlocks()
}

// TotalVolumeUnits returns the number of allocated blocks.  Dense volumes
// consist of a single block.
func (v *Volume) TotalVolumeUnits() int {
	return v.impl.totalVolumeUnits()
}

// IntegratedFrames returns the number of frames integrated since the volume
// was created or last reset.
func (v *Volume) IntegratedFrames() int {
	return v.frames
}
