// seehuhn.de/go/scanline - a 2D rendering library
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

package pixel

import (
	"math"
)

// Wrap selects how texture coordinates outside [0,1] are treated.
type Wrap uint8

// These are the supported wrap modes.
const (
	Clamp Wrap = iota
	Repeat
	Mirror
)

// Texture is an immutable image used by texture and gradient programs.
// The pixel data is linear light.  Whether the alpha is premultiplied is
// recorded by the program which samples the texture.
type Texture struct {
	Width, Height int
	Pix           []Color
}

// NewTextureFromRgba8 creates a texture from gamma encoded RGBA bytes
// with straight alpha, stored row by row.  Missing bytes are treated as
// transparent black.
func NewTextureFromRgba8(width, height int, data []byte, gamma float64) *Texture {
	t := &Texture{Width: width, Height: height, Pix: make([]Color, width*height)}
	for i := range t.Pix {
		if 4*i+3 >= len(data) {
			break
		}
		c := Rgba8{data[4*i], data[4*i+1], data[4*i+2], data[4*i+3]}
		t.Pix[i] = LinearStraight(c, gamma)
	}
	return t
}

// WithRegion returns a copy of t where the rectangle with top-left corner
// (x, y) has been replaced by the given RGBA bytes.  The receiver is not
// modified.
func (t *Texture) WithRegion(x, y, w, h int, data []byte, gamma float64) *Texture {
	res := &Texture{Width: t.Width, Height: t.Height, Pix: make([]Color, len(t.Pix))}
	copy(res.Pix, t.Pix)
	for row := range h {
		ty := y + row
		if ty < 0 || ty >= t.Height {
			continue
		}
		for col := range w {
			tx := x + col
			i := 4 * (row*w + col)
			if tx < 0 || tx >= t.Width || i+3 >= len(data) {
				continue
			}
			c := Rgba8{data[i], data[i+1], data[i+2], data[i+3]}
			res.Pix[ty*t.Width+tx] = LinearStraight(c, gamma)
		}
	}
	return res
}

func wrapIndex(i, n int, mode Wrap) int {
	switch mode {
	case Repeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case Mirror:
		p := 2 * n
		i %= p
		if i < 0 {
			i += p
		}
		if i >= n {
			i = p - 1 - i
		}
		return i
	default:
		return max(0, min(i, n-1))
	}
}

// texel returns the pixel at integer coordinates, applying the wrap mode.
func (t *Texture) texel(x, y int, mode Wrap) Color {
	x = wrapIndex(x, t.Width, mode)
	y = wrapIndex(y, t.Height, mode)
	return t.Pix[y*t.Width+x]
}

// Sample returns the bilinearly interpolated texture value at the texture
// coordinates (u, v).  The texture covers the unit square.
func (t *Texture) Sample(u, v float64, mode Wrap) Color {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return Transparent
	}
	x := u*float64(t.Width) - 0.5
	y := v*float64(t.Height) - 0.5
	if mode == Clamp {
		x = max(-0.5, min(x, float64(t.Width)-0.5))
		y = max(-0.5, min(y, float64(t.Height)-0.5))
	}
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := float32(x-x0), float32(y-y0)
	ix, iy := int(x0), int(y0)

	c00 := t.texel(ix, iy, mode)
	c10 := t.texel(ix+1, iy, mode)
	c01 := t.texel(ix, iy+1, mode)
	c11 := t.texel(ix+1, iy+1, mode)

	top := c00.Scale(1 - fx).Add(c10.Scale(fx))
	bottom := c01.Scale(1 - fx).Add(c11.Scale(fx))
	return top.Scale(1 - fy).Add(bottom.Scale(fy))
}
