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
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Type selects the storage strategy of a [Volume].
type Type int

// These are the supported volume types.
const (
	TSDF Type = iota
	HashTSDF
	ColorTSDF
)

var typeNames = map[Type]string{
	TSDF:      "tsdf",
	HashTSDF:  "hash_tsdf",
	ColorTSDF: "color_tsdf",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType converts a type name, as returned by [Type.String], back into a
// Type.  Case is ignored.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown volume type %q", s)
}

// MarshalYAML implements the [yaml.Marshaler] interface.
func (t Type) MarshalYAML() (any, error) {
	if _, ok := typeNames[t]; !ok {
		return nil, errors.Errorf("unknown volume type %d", int(t))
	}
	return t.String(), nil
}

// UnmarshalYAML implements the [yaml.Unmarshaler] interface.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*t = parsed
	return nil
}
