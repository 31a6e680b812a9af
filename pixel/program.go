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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/geometry"
)

// LayerID identifies a layer whose edge plan can be drawn by a sprite
// program.
type LayerID uint64

// Context gives pixel programs access to the resources of the frame being
// rendered.
type Context interface {
	// Texture returns the texture with the given id, or nil if there is
	// no such texture.
	Texture(id action.TextureID) *Texture

	// SampleLayer returns the colour of the given layer at the point p in
	// the layer's own coordinates.  The colour is averaged over the
	// horizontal segment of length width centred at p, which is the part
	// of the layer covered by the output pixel.  A width of zero samples
	// a single point.
	SampleLayer(layer LayerID, p vec.Vec2, width float64) Color
}

// Program computes the colour of a pixel inside a shape.
//
// Programs are immutable values.  Shade must not have side effects, so
// that pixels can be computed in any order and in parallel.
type Program interface {
	// Shade returns the premultiplied colour at the device space point
	// (x, y).  The argument dst is the colour produced by the shapes
	// below; programs for which ReadsDestination returns false ignore it.
	Shade(x, y float64, dst Color, ctx Context) Color

	// ReadsDestination reports whether the result of Shade depends on
	// dst.
	ReadsDestination() bool
}

// SolidColor paints a constant colour.
type SolidColor struct {
	Color Color
}

// Shade implements [Program].
func (p SolidColor) Shade(_, _ float64, _ Color, _ Context) Color {
	return p.Color
}

// ReadsDestination implements [Program].
func (p SolidColor) ReadsDestination() bool { return false }

// BasicTexture paints a texture.
type BasicTexture struct {
	Texture action.TextureID

	// Transform maps device space to texture coordinates, where the
	// texture covers the unit square.
	Transform geometry.Transform

	// Premultiplied records whether the texture data uses premultiplied
	// alpha.
	Premultiplied bool

	Wrap Wrap
}

// Shade implements [Program].
func (p BasicTexture) Shade(x, y float64, _ Color, ctx Context) Color {
	uv := p.Transform.Apply(vec.Vec2{X: x, Y: y})
	c := ctx.Texture(p.Texture).Sample(uv.X, uv.Y, p.Wrap)
	if !p.Premultiplied {
		c = c.Premultiply()
	}
	return c
}

// ReadsDestination implements [Program].
func (p BasicTexture) ReadsDestination() bool { return false }

// LinearGradient paints a colour gradient along a line.  The colours are
// taken from the first row of a texture with straight alpha.
type LinearGradient struct {
	Texture action.TextureID

	// P0 and P1 are the start and end of the gradient line, in the
	// coordinates obtained by applying Transform to device space.
	P0, P1    vec.Vec2
	Transform geometry.Transform
}

// Param returns the gradient parameter for the device space point (x, y),
// clamped to [0,1].
func (p LinearGradient) Param(x, y float64) float64 {
	q := p.Transform.Apply(vec.Vec2{X: x, Y: y})
	d := p.P1.Sub(p.P0)
	l2 := d.Dot(d)
	if l2 == 0 {
		return 0
	}
	t := q.Sub(p.P0).Dot(d) / l2
	return max(0, min(t, 1))
}

// Shade implements [Program].
func (p LinearGradient) Shade(x, y float64, _ Color, ctx Context) Color {
	tex := ctx.Texture(p.Texture)
	if tex == nil {
		return Transparent
	}
	return tex.Sample(p.Param(x, y), 0.5/float64(tex.Height), Clamp).Premultiply()
}

// ReadsDestination implements [Program].
func (p LinearGradient) ReadsDestination() bool { return false }

// BasicSprite paints another layer, shifted by Offset.
type BasicSprite struct {
	Layer  LayerID
	Offset vec.Vec2
}

// Shade implements [Program].
func (p BasicSprite) Shade(x, y float64, _ Color, ctx Context) Color {
	return ctx.SampleLayer(p.Layer, vec.Vec2{X: x - p.Offset.X, Y: y - p.Offset.Y}, 1)
}

// ReadsDestination implements [Program].
func (p BasicSprite) ReadsDestination() bool { return false }

// TransformedSprite paints another layer through an affine
// transformation.
type TransformedSprite struct {
	Layer LayerID

	// Transform maps device space to the coordinates of the layer.
	Transform geometry.Transform
}

// Shade implements [Program].
func (p TransformedSprite) Shade(x, y float64, _ Color, ctx Context) Color {
	// Only the horizontal extent of the pixel is used; the vertical
	// extent is covered by the sub-scanlines.
	width := math.Abs(p.Transform.ApplyVector(vec.Vec2{X: 1}).X)
	return ctx.SampleLayer(p.Layer, p.Transform.Apply(vec.Vec2{X: x, Y: y}), width)
}

// ReadsDestination implements [Program].
func (p TransformedSprite) ReadsDestination() bool { return false }

// Blend composites the output of Inner with the destination.
type Blend struct {
	Inner Program
	Mode  action.BlendMode
}

// Shade implements [Program].
func (p Blend) Shade(x, y float64, dst Color, ctx Context) Color {
	src := p.Inner.Shade(x, y, dst, ctx)
	return Composite(p.Mode, src, dst)
}

// ReadsDestination implements [Program].
func (p Blend) ReadsDestination() bool { return true }

// SourceOver paints the output of Inner over the destination.  This is
// the same as Blend with mode SourceOver.
type SourceOver struct {
	Inner Program
}

// Shade implements [Program].
func (p SourceOver) Shade(x, y float64, dst Color, ctx Context) Color {
	src := p.Inner.Shade(x, y, dst, ctx)
	if src.A >= 1 {
		return src
	}
	return src.Add(dst.Scale(1 - src.A))
}

// ReadsDestination implements [Program].
func (p SourceOver) ReadsDestination() bool {
	if s, ok := p.Inner.(SolidColor); ok {
		return !s.Color.IsOpaque()
	}
	return true
}

// WithBlendMode wraps prog so that it is composited using mode.
func WithBlendMode(prog Program, mode action.BlendMode) Program {
	if mode == action.SourceOver {
		return SourceOver{Inner: prog}
	}
	return Blend{Inner: prog, Mode: mode}
}

// Opacity scales the output of Inner by Alpha.
type Opacity struct {
	Inner Program
	Alpha float32
}

// Shade implements [Program].
func (p Opacity) Shade(x, y float64, dst Color, ctx Context) Color {
	return p.Inner.Shade(x, y, dst, ctx).Scale(p.Alpha)
}

// ReadsDestination implements [Program].
func (p Opacity) ReadsDestination() bool { return p.Inner.ReadsDestination() }
