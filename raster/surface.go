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

package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Surface is a caller-owned pixel buffer in row-major order.
//
// Pixel (x, y) starts at byte offset y*Stride + x*ElemSize() in Pix.  Each
// pixel consists of Channels channels of Depth bytes each.  Multi-byte
// channels are stored big endian, like in [image.Gray16].
//
// The drawing code writes into Pix but never reallocates it.
type Surface struct {
	Pix    []byte
	Width  int
	Height int

	// Stride is the distance in bytes between two vertically adjacent
	// pixels.  Must be at least Width*ElemSize().
	Stride int

	// Channels is the number of channels per pixel, 1 to 4.
	Channels int

	// Depth is the number of bytes per channel, 1 or 2.
	Depth int
}

// NewSurface allocates a zeroed 8-bit surface.
func NewSurface(width, height, channels int) *Surface {
	if width < 0 || height < 0 || channels < 1 || channels > 4 {
		panic(fmt.Sprintf("raster: invalid surface %dx%dx%d", width, height, channels))
	}
	return &Surface{
		Pix:      make([]byte, width*height*channels),
		Width:    width,
		Height:   height,
		Stride:   width * channels,
		Channels: channels,
		Depth:    1,
	}
}

// FromGray returns a surface sharing the pixels of img.
func FromGray(img *image.Gray) *Surface {
	r := img.Rect
	return &Surface{
		Pix:      img.Pix[img.PixOffset(r.Min.X, r.Min.Y):],
		Width:    r.Dx(),
		Height:   r.Dy(),
		Stride:   img.Stride,
		Channels: 1,
		Depth:    1,
	}
}

// FromRGBA returns a surface sharing the pixels of img.
func FromRGBA(img *image.RGBA) *Surface {
	r := img.Rect
	return &Surface{
		Pix:      img.Pix[img.PixOffset(r.Min.X, r.Min.Y):],
		Width:    r.Dx(),
		Height:   r.Dy(),
		Stride:   img.Stride,
		Channels: 4,
		Depth:    1,
	}
}

// FromGray16 returns a surface sharing the pixels of img.
// Antialiased drawing is not available on 16-bit surfaces.
func FromGray16(img *image.Gray16) *Surface {
	r := img.Rect
	return &Surface{
		Pix:      img.Pix[img.PixOffset(r.Min.X, r.Min.Y):],
		Width:    r.Dx(),
		Height:   r.Dy(),
		Stride:   img.Stride,
		Channels: 1,
		Depth:    2,
	}
}

// ElemSize returns the number of bytes per pixel.
func (s *Surface) ElemSize() int {
	return s.Channels * s.Depth
}

// Size returns the width and height of the surface.
func (s *Surface) Size() image.Point {
	return image.Point{X: s.Width, Y: s.Height}
}

// Bounds returns the rectangle covered by the surface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rectangle{Max: s.Size()}
}

// At returns the raw bytes of pixel (x, y).  The returned slice aliases Pix.
func (s *Surface) At(x, y int) Color {
	i := y*s.Stride + x*s.ElemSize()
	return Color(s.Pix[i : i+s.ElemSize() : i+s.ElemSize()])
}

// antialiased reports whether the surface supports coverage blending.
func (s *Surface) antialiased() bool {
	return s.Depth == 1 && (s.Channels == 1 || s.Channels == 3 || s.Channels == 4)
}

// Color is a raw pixel value, exactly ElemSize() bytes long.
type Color []byte

// Color converts c into the pixel format of the surface.
//
// Gray surfaces receive the luminance of c, three channel surfaces receive
// R, G, B and four channel surfaces receive premultiplied R, G, B, A like
// [image.RGBA].
func (s *Surface) Color(c color.Color) Color {
	res := make(Color, s.ElemSize())
	var ch [4]uint32
	switch s.Channels {
	case 1:
		ch[0] = uint32(color.Gray16Model.Convert(c).(color.Gray16).Y)
	case 2:
		g := color.Gray16Model.Convert(c).(color.Gray16)
		_, _, _, a := c.RGBA()
		ch[0], ch[1] = uint32(g.Y), a
	default:
		ch[0], ch[1], ch[2], ch[3] = c.RGBA()
	}
	for i := range s.Channels {
		switch s.Depth {
		case 1:
			res[i] = uint8(ch[i] >> 8)
		case 2:
			res[2*i] = uint8(ch[i] >> 8)
			res[2*i+1] = uint8(ch[i])
		}
	}
	return res
}

// checkColor panics if c does not match the pixel format of s.
func (s *Surface) checkColor(c Color) {
	if len(c) != s.ElemSize() {
		panic(fmt.Sprintf("raster: color has %d bytes, surface needs %d", len(c), s.ElemSize()))
	}
}

// hline fills the pixels x1..x2 (inclusive) of row y.
// The caller guarantees 0 <= x1, x2 < Width and 0 <= y < Height.
func (s *Surface) hline(y, x1, x2 int, c Color) {
	if x1 > x2 {
		return
	}
	n := len(c)
	row := s.Pix[y*s.Stride+x1*n : y*s.Stride+(x2+1)*n]
	if n == 1 {
		for i := range row {
			row[i] = c[0]
		}
		return
	}
	copy(row, c)
	for done := n; done < len(row); done *= 2 {
		copy(row[done:], row[:done])
	}
}

// set writes c at pixel (x, y), which must lie inside the surface.
func (s *Surface) set(x, y int, c Color) {
	copy(s.Pix[y*s.Stride+x*len(c):], c)
}
