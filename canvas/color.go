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

package canvas

import (
	"image/color"
	"math"
)

// Color is a gamma encoded colour with straight alpha.  All components
// are in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA returns an opaque or translucent colour.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Some colours, for convenience.
var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

// WithAlpha returns c with the alpha value replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Rgba8 converts c to 8 bits per channel, clamping out-of-range values.
func (c Color) Rgba8() [4]uint8 {
	q := func(v float64) uint8 {
		return uint8(math.Round(max(0, min(v, 1)) * 255))
	}
	return [4]uint8{q(c.R), q(c.G), q(c.B), q(c.A)}
}

// FromColor converts a colour from the image/color package.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}
