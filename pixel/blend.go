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

import "seehuhn.de/go/scanline/action"

// Composite combines the premultiplied colours src and dst using the
// given blend mode.
func Composite(mode action.BlendMode, src, dst Color) Color {
	sa, da := src.A, dst.A
	switch mode {
	case action.SourceOver:
		return src.Add(dst.Scale(1 - sa))
	case action.DestinationOver:
		return src.Scale(1 - da).Add(dst)
	case action.SourceIn:
		return src.Scale(da)
	case action.DestinationIn:
		return dst.Scale(sa)
	case action.SourceOut:
		return src.Scale(1 - da)
	case action.DestinationOut:
		return dst.Scale(1 - sa)
	case action.SourceATop:
		return src.Scale(da).Add(dst.Scale(1 - sa))
	case action.DestinationATop:
		return src.Scale(1 - da).Add(dst.Scale(sa))
	case action.Screen:
		return Color{
			R: src.R + dst.R - src.R*dst.R,
			G: src.G + dst.G - src.G*dst.G,
			B: src.B + dst.B - src.B*dst.B,
			A: sa + da - sa*da,
		}
	case action.Multiply:
		mul := func(s, d float32) float32 { return s*d + s*(1-da) + d*(1-sa) }
		return Color{
			R: mul(src.R, dst.R),
			G: mul(src.G, dst.G),
			B: mul(src.B, dst.B),
			A: sa + da - sa*da,
		}
	case action.AllChannelAlphaSourceOver:
		over := func(s, d float32) float32 { return s + d*(1-s) }
		return Color{over(src.R, dst.R), over(src.G, dst.G), over(src.B, dst.B), over(sa, da)}
	case action.AllChannelAlphaDestinationOver:
		under := func(s, d float32) float32 { return s*(1-d) + d }
		return Color{under(src.R, dst.R), under(src.G, dst.G), under(src.B, dst.B), under(sa, da)}
	default:
		return src.Add(dst.Scale(1 - sa))
	}
}
