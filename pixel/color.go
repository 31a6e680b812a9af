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

// Package pixel implements the pixel programs which compute the colour of
// the pixels covered by a shape, together with the colour and texture
// types they operate on.
//
// All colours inside the renderer are linear and use premultiplied alpha.
// Conversion to and from 8-bit gamma encoded values happens at the edges.
package pixel

import (
	"math"
	"sort"
	"sync/atomic"
)

// DefaultGamma is the gamma value used to convert between 8-bit colour
// values and linear light.
const DefaultGamma = 2.2

// Color is a linear RGBA colour with premultiplied alpha.
type Color struct {
	R, G, B, A float32
}

// Transparent is the fully transparent colour.
var Transparent = Color{}

// Scale multiplies all components by f.
func (c Color) Scale(f float32) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A * f}
}

// Add returns the component-wise sum of c and o.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// IsOpaque reports whether c has full alpha.
func (c Color) IsOpaque() bool {
	return c.A >= 1
}

// Premultiply converts a colour with straight alpha into premultiplied
// form.
func (c Color) Premultiply() Color {
	return Color{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// Rgba8 is a colour with 8 bits per channel.  Unless stated otherwise,
// Rgba8 values use straight (non-premultiplied) alpha.
type Rgba8 [4]uint8

// gammaTable converts between gamma encoded 8-bit values and linear
// light for one gamma value.
type gammaTable struct {
	gamma  float64
	decode [256]float32
}

var lastTable atomic.Pointer[gammaTable]

func tableFor(gamma float64) *gammaTable {
	if t := lastTable.Load(); t != nil && t.gamma == gamma {
		return t
	}
	t := &gammaTable{gamma: gamma}
	for i := range t.decode {
		t.decode[i] = float32(math.Pow(float64(i)/255, gamma))
	}
	lastTable.Store(t)
	return t
}

// encodeValue returns the 8-bit value whose linear light value is
// closest to v.  Decoding and encoding again is the identity.
func (t *gammaTable) encodeValue(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	i := sort.Search(256, func(i int) bool { return t.decode[i] >= v })
	if i > 0 && v-t.decode[i-1] < t.decode[i]-v {
		i--
	}
	return uint8(i)
}

// FromRgba8 converts a gamma encoded colour with straight alpha into a
// linear premultiplied colour.
func FromRgba8(c Rgba8, gamma float64) Color {
	t := tableFor(gamma)
	a := float32(c[3]) / 255
	return Color{
		R: t.decode[c[0]] * a,
		G: t.decode[c[1]] * a,
		B: t.decode[c[2]] * a,
		A: a,
	}
}

// LinearStraight converts a gamma encoded colour into linear light
// without premultiplying.
func LinearStraight(c Rgba8, gamma float64) Color {
	t := tableFor(gamma)
	return Color{
		R: t.decode[c[0]],
		G: t.decode[c[1]],
		B: t.decode[c[2]],
		A: float32(c[3]) / 255,
	}
}

// ToGammaColorSpace converts linear premultiplied colours into gamma
// encoded 8-bit colours.  The output is premultiplied as well: the colour
// channels are divided by alpha, gamma encoded and multiplied by alpha
// again.  Only min(len(in), len(out)) pixels are converted.
func ToGammaColorSpace(in []Color, out []Rgba8, gamma float64) {
	t := tableFor(gamma)
	n := min(len(in), len(out))
	for i := range n {
		c := in[i]
		a := min(max(c.A, 0), 1)
		if a == 0 {
			out[i] = Rgba8{}
			continue
		}
		inv := 1 / a
		a8 := uint8(math.Round(float64(a) * 255))
		fa := float32(a8) / 255
		out[i] = Rgba8{
			uint8(float32(t.encodeValue(c.R*inv))*fa + 0.5),
			uint8(float32(t.encodeValue(c.G*inv))*fa + 0.5),
			uint8(float32(t.encodeValue(c.B*inv))*fa + 0.5),
			a8,
		}
	}
}

// Unpremultiply converts a premultiplied 8-bit colour to straight alpha.
func (c Rgba8) Unpremultiply() Rgba8 {
	a := c[3]
	if a == 0 || a == 255 {
		return c
	}
	div := func(v uint8) uint8 {
		return uint8(min(255, (int(v)*255+int(a)/2)/int(a)))
	}
	return Rgba8{div(c[0]), div(c[1]), div(c[2]), a}
}
