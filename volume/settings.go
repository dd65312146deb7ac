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
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/math/f32"
	"gopkg.in/yaml.v3"
)

// Intrinsics are the parameters of a pinhole camera, in pixels.
type Intrinsics struct {
	Fx float32 `yaml:"fx"`
	Fy float32 `yaml:"fy"`
	Cx float32 `yaml:"cx"`
	Cy float32 `yaml:"cy"`
}

// Scale returns the intrinsics of the same camera for an image scaled by sx
// horizontally and sy vertically.
func (in Intrinsics) Scale(sx, sy float32) Intrinsics {
	return Intrinsics{
		Fx: in.Fx * sx,
		Fy: in.Fy * sy,
		Cx: (in.Cx+0.5)*sx - 0.5,
		Cy: (in.Cy+0.5)*sy - 0.5,
	}
}

// Project maps a point in camera coordinates to pixel coordinates.
func (in Intrinsics) Project(p f32.Vec3) (u, v float32) {
	return in.Fx*p[0]/p[2] + in.Cx, in.Fy*p[1]/p[2] + in.Cy
}

// Reproject returns the point at depth z which projects to pixel (u, v).
func (in Intrinsics) Reproject(u, v, z float32) f32.Vec3 {
	return f32.Vec3{z * (u - in.Cx) / in.Fx, z * (v - in.Cy) / in.Fy, z}
}

// Settings configure a [Volume].  Distances are in meters.
type Settings struct {
	Type Type `yaml:"type"`

	// VoxelSize is the edge length of a voxel.
	VoxelSize float32 `yaml:"voxel_size"`

	// TruncateDistance is the distance from the surface beyond which signed
	// distances are clamped.
	TruncateDistance float32 `yaml:"truncate_distance"`

	// MaxWeight caps the number of samples averaged into a voxel.
	MaxWeight int `yaml:"max_weight"`

	// RaycastStepFactor is the raycast step, as a fraction of
	// TruncateDistance.
	RaycastStepFactor float32 `yaml:"raycast_step_factor"`

	// DepthFactor converts raw depth values into meters:
	// meters = raw / DepthFactor.
	DepthFactor float32 `yaml:"depth_factor"`

	// TruncateThreshold, if positive, is the largest depth in meters which
	// is integrated.  Raycasts of hashed volumes also stop at this depth.
	TruncateThreshold float32 `yaml:"truncate_threshold"`

	// Resolution is the number of voxels along each axis of a dense volume.
	Resolution [3]int `yaml:"resolution,flow"`

	// UnitDegree is the binary logarithm of the edge length, in voxels, of
	// the blocks of a hashed volume.
	UnitDegree int `yaml:"unit_degree"`

	// Pose maps volume coordinates to world coordinates.  Row-major.
	Pose f32.Mat4 `yaml:"pose,flow"`

	IntegrateWidth      int        `yaml:"integrate_width"`
	IntegrateHeight     int        `yaml:"integrate_height"`
	RaycastWidth        int        `yaml:"raycast_width"`
	RaycastHeight       int        `yaml:"raycast_height"`
	IntegrateIntrinsics Intrinsics `yaml:"integrate_intrinsics"`
	RaycastIntrinsics   Intrinsics `yaml:"raycast_intrinsics"`
}

// DefaultSettings returns the default settings for the given volume type.
// Frames are 640×480 pixels, taken with a camera of focal length 525.
func DefaultSettings(t Type) Settings {
	camera := Intrinsics{Fx: 525, Fy: 525, Cx: 319.5, Cy: 239.5}
	s := Settings{
		Type:                t,
		DepthFactor:         5000,
		IntegrateWidth:      640,
		IntegrateHeight:     480,
		RaycastWidth:        640,
		RaycastHeight:       480,
		IntegrateIntrinsics: camera,
		RaycastIntrinsics:   camera,
	}

	switch t {
	case HashTSDF:
		s.VoxelSize = 3.0 / 512
		s.TruncateDistance = 7 * s.VoxelSize
		s.MaxWeight = 255
		s.RaycastStepFactor = 0.25
		s.TruncateThreshold = 4
		s.UnitDegree = 4
		s.Pose = Identity()
	default:
		s.VoxelSize = 3.0 / 128
		s.TruncateDistance = 2 * s.VoxelSize
		s.MaxWeight = 64
		s.RaycastStepFactor = 0.75
		s.Resolution = [3]int{128, 128, 128}
		s.Pose = Translation(-1.5, -1.5, 0.5)
	}
	return s
}

// LoadSettings reads settings in YAML format.  Fields missing from the
// input keep the defaults of the volume type given in the input.
func LoadSettings(r io.Reader) (Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Settings{}, errors.Wrap(err, "reading volume settings")
	}

	var head struct {
		Type Type `yaml:"type"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Settings{}, errors.Wrap(err, "decoding volume settings")
	}

	s := DefaultSettings(head.Type)
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, errors.Wrap(err, "decoding volume settings")
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that the settings describe a usable volume.
func (s *Settings) Validate() error {
	if _, ok := typeNames[s.Type]; !ok {
		return errors.Errorf("unknown volume type %d", int(s.Type))
	}
	if !(s.VoxelSize > 0) {
		return errors.Errorf("voxel size %g is not positive", s.VoxelSize)
	}
	if !(s.TruncateDistance > 0) {
		return errors.Errorf("truncate distance %g is not positive", s.TruncateDistance)
	}
	if s.MaxWeight < 1 {
		return errors.Errorf("max weight %d is less than 1", s.MaxWeight)
	}
	if !(s.RaycastStepFactor > 0) {
		return errors.Errorf("raycast step factor %g is not positive", s.RaycastStepFactor)
	}
	if !(s.DepthFactor > 0) {
		return errors.Errorf("depth factor %g is not positive", s.DepthFactor)
	}
	if s.TruncateThreshold < 0 {
		return errors.Errorf("truncate threshold %g is negative", s.TruncateThreshold)
	}
	if s.IntegrateWidth <= 0 || s.IntegrateHeight <= 0 {
		return errors.Errorf("invalid integration frame size %dx%d", s.IntegrateWidth, s.IntegrateHeight)
	}
	if s.RaycastWidth <= 0 || s.RaycastHeight <= 0 {
		return errors.Errorf("invalid raycast frame size %dx%d", s.RaycastWidth, s.RaycastHeight)
	}
	for name, in := range map[string]Intrinsics{
		"integrate": s.IntegrateIntrinsics,
		"raycast":   s.RaycastIntrinsics,
	} {
		if in.Fx == 0 || in.Fy == 0 {
			return errors.Errorf("%s intrinsics have zero focal length", name)
		}
	}

	switch s.Type {
	case HashTSDF:
		if s.UnitDegree < 1 || s.UnitDegree > 8 {
			return errors.Errorf("unit degree %d outside [1, 8]", s.UnitDegree)
		}
	default:
		for _, n := range s.Resolution {
			if n < 3 {
				return errors.Errorf("resolution %v is too small", s.Resolution)
			}
		}
	}

	if !isRigid(s.Pose) {
		return errors.New("volume pose is not a rigid transformation")
	}
	return nil
}
