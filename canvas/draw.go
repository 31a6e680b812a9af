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

// Package canvas defines the drawing commands accepted by a scene.
//
// A drawing is a sequence of [Draw] values.  Commands are plain values:
// apart from the handles they name, they do not refer to any external
// state, so that command streams can be stored, sent between goroutines
// and replayed.
package canvas

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/geometry"
)

// Draw is one drawing command.
type Draw interface {
	isDraw()
}

// LineJoin selects the shape of the corners of a stroked path.
type LineJoin = graphics.LineJoinStyle

// LineCap selects the shape of the ends of a stroked path.
type LineCap = graphics.LineCapStyle

// Line joins and caps.
const (
	JoinMiter = graphics.LineJoinMiter
	JoinRound = graphics.LineJoinRound
	JoinBevel = graphics.LineJoinBevel

	CapButt   = graphics.LineCapButt
	CapRound  = graphics.LineCapRound
	CapSquare = graphics.LineCapSquare
)

// WindingRule selects how the inside of a filled path is determined.
type WindingRule uint8

// These are the supported winding rules.
const (
	NonZero WindingRule = iota
	EvenOdd
)

func (r WindingRule) String() string {
	switch r {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return fmt.Sprintf("WindingRule(%d)", int(r))
	}
}

// Path construction.
type (
	// NewPath discards the current path.
	NewPath struct{}

	// Move starts a new subpath at (X, Y).
	Move struct{ X, Y float64 }

	// Line adds a straight line to (X, Y).
	Line struct{ X, Y float64 }

	// BezierCurve adds a cubic Bézier curve ending at End.
	BezierCurve struct{ CP1, CP2, End vec.Vec2 }

	// ClosePath closes the current subpath.
	ClosePath struct{}

	// Fill fills the current path using the fill state.
	Fill struct{}

	// Stroke strokes the current path using the stroke state.
	Stroke struct{}
)

// Fill and stroke state.
type (
	FillColor   struct{ Color Color }
	StrokeColor struct{ Color Color }

	// LineWidth sets the stroke width in canvas units.
	LineWidth struct{ Width float64 }

	// LineWidthPixels sets the stroke width in device pixels.
	LineWidthPixels struct{ Width float64 }

	LineJoinStyle struct{ Join LineJoin }
	LineCapStyle  struct{ Cap LineCap }
	MiterLimit    struct{ Limit float64 }

	// NewDashPattern clears the dash pattern.  Subsequent DashLength
	// commands add dash and gap lengths, alternately.
	NewDashPattern struct{}
	DashLength     struct{ Length float64 }
	DashOffset     struct{ Offset float64 }

	FillRule struct{ Rule WindingRule }

	// BlendMode sets the blend mode for subsequent fills and strokes.
	BlendMode struct{ Mode action.BlendMode }

	// FillTexture fills with a texture mapped onto the rectangle
	// (X1, Y1)-(X2, Y2) in canvas coordinates.
	FillTexture struct {
		Texture        TextureHandle
		X1, Y1, X2, Y2 float64
	}

	// FillGradient fills with a gradient running from (X1, Y1) to
	// (X2, Y2) in canvas coordinates.
	FillGradient struct {
		Gradient       GradientHandle
		X1, Y1, X2, Y2 float64
	}
)

// Transformations.  The canvas transformation maps canvas coordinates
// to device pixels.  New transformations are applied before the existing
// ones, so that the last command affects the coordinates given to path
// commands first.
type (
	// IdentityTransform maps the canvas onto the viewport with the
	// origin at the top left and one unit per pixel.
	IdentityTransform struct{}

	// CanvasHeight maps a canvas of the given height, centred at the
	// origin with y pointing up, onto the viewport.
	CanvasHeight struct{ Height float64 }

	MultiplyTransform struct{ Transform geometry.Transform }
	Translate         struct{ X, Y float64 }
	Scale             struct{ X, Y float64 }

	// Rotate rotates by the given angle in degrees.
	Rotate struct{ Degrees float64 }
)

// Drawing state.
type (
	// Clip intersects the clip region with the current path.
	Clip struct{}

	// Unclip removes the clip region.
	Unclip struct{}

	PushState struct{}
	PopState  struct{}

	// Store remembers the content of the current layer.
	Store struct{}

	// Restore returns the current layer to the content remembered by
	// the last Store.
	Restore struct{}

	// FreeStoredBuffer forgets the content remembered by Store.
	FreeStoredBuffer struct{}

	// ClearCanvas removes all layers, sprites, textures, gradients and
	// state, and sets the background colour.
	ClearCanvas struct{ Color Color }
)

// Layers and sprites.
type (
	// Layer selects the layer subsequent drawing goes to.
	Layer struct{ Layer LayerHandle }

	// LayerBlend sets the blend mode used to compose a layer.
	LayerBlend struct {
		Layer LayerHandle
		Mode  action.BlendMode
	}

	// LayerAlpha sets the opacity of a layer.
	LayerAlpha struct {
		Layer LayerHandle
		Alpha float64
	}

	ClearLayer     struct{}
	ClearAllLayers struct{}
	SwapLayers     struct{ A, B LayerHandle }

	// Sprite selects a sprite as the drawing target.  Use Layer to
	// return to a layer.
	Sprite      struct{ Sprite SpriteHandle }
	ClearSprite struct{}

	// SpriteTransform is applied to sprites drawn with DrawSprite, before
	// the canvas transformation.
	SpriteTransform         struct{ Transform geometry.Transform }
	IdentitySpriteTransform struct{}

	DrawSprite struct{ Sprite SpriteHandle }
)

// Resources.
type (
	// Namespace selects the namespace in which subsequent handles are
	// resolved.
	Namespace struct{ Namespace NamespaceID }

	CreateTexture struct {
		Texture       TextureHandle
		Width, Height int
	}

	// SetTextureBytes replaces a region of a texture with RGBA bytes
	// (straight alpha, gamma encoded), row by row.
	SetTextureBytes struct {
		Texture    TextureHandle
		X, Y, W, H int
		Bytes      []byte
	}

	FreeTexture struct{ Texture TextureHandle }

	// CreateDynamicTexture creates a texture showing a sprite.  The
	// region (X, Y)-(X+W, Y+H) of the sprite is drawn at the resolution
	// the texture would have when it covers CanvasWidth by CanvasHeight
	// canvas units.  The texture is re-rendered when the sprite or the
	// viewport changes.
	CreateDynamicTexture struct {
		Texture                   TextureHandle
		Sprite                    SpriteHandle
		X, Y, W, H                float64
		CanvasWidth, CanvasHeight float64
	}

	// NewGradient starts a gradient with the given colour at position 0.
	NewGradient struct {
		Gradient GradientHandle
		Color    Color
	}

	// GradientStop adds a colour stop at Pos in [0, 1].
	GradientStop struct {
		Gradient GradientHandle
		Pos      float64
		Color    Color
	}

	FreeGradient struct{ Gradient GradientHandle }
)

// Text.
type (
	// DefineFont loads a TrueType or OpenType font.
	DefineFont struct {
		Font FontHandle
		Data []byte
	}

	FontSize struct {
		Font FontHandle
		Size float64
	}

	// DrawText fills the glyphs of Text with the baseline starting at
	// (X, Y).
	DrawText struct {
		Font FontHandle
		Text string
		X, Y float64
	}

	// DrawGlyphs fills individual glyphs.
	DrawGlyphs struct {
		Font   FontHandle
		Glyphs []GlyphPosition
	}
)

// GlyphPosition places one glyph.  (X, Y) is the origin of the glyph on
// the baseline.
type GlyphPosition struct {
	ID   uint16
	X, Y float64
}

func (NewPath) isDraw()                 {}
func (Move) isDraw()                    {}
func (Line) isDraw()                    {}
func (BezierCurve) isDraw()             {}
func (ClosePath) isDraw()               {}
func (Fill) isDraw()                    {}
func (Stroke) isDraw()                  {}
func (FillColor) isDraw()               {}
func (StrokeColor) isDraw()             {}
func (LineWidth) isDraw()               {}
func (LineWidthPixels) isDraw()         {}
func (LineJoinStyle) isDraw()           {}
func (LineCapStyle) isDraw()            {}
func (MiterLimit) isDraw()              {}
func (NewDashPattern) isDraw()          {}
func (DashLength) isDraw()              {}
func (DashOffset) isDraw()              {}
func (FillRule) isDraw()                {}
func (BlendMode) isDraw()               {}
func (FillTexture) isDraw()             {}
func (FillGradient) isDraw()            {}
func (IdentityTransform) isDraw()       {}
func (CanvasHeight) isDraw()            {}
func (MultiplyTransform) isDraw()       {}
func (Translate) isDraw()               {}
func (Scale) isDraw()                   {}
func (Rotate) isDraw()                  {}
func (Clip) isDraw()                    {}
func (Unclip) isDraw()                  {}
func (PushState) isDraw()               {}
func (PopState) isDraw()                {}
func (Store) isDraw()                   {}
func (Restore) isDraw()                 {}
func (FreeStoredBuffer) isDraw()        {}
func (ClearCanvas) isDraw()             {}
func (Layer) isDraw()                   {}
func (LayerBlend) isDraw()              {}
func (LayerAlpha) isDraw()              {}
func (ClearLayer) isDraw()              {}
func (ClearAllLayers) isDraw()          {}
func (SwapLayers) isDraw()              {}
func (Sprite) isDraw()                  {}
func (ClearSprite) isDraw()             {}
func (SpriteTransform) isDraw()         {}
func (IdentitySpriteTransform) isDraw() {}
func (DrawSprite) isDraw()              {}
func (Namespace) isDraw()               {}
func (CreateTexture) isDraw()           {}
func (SetTextureBytes) isDraw()         {}
func (FreeTexture) isDraw()             {}
func (CreateDynamicTexture) isDraw()    {}
func (NewGradient) isDraw()             {}
func (GradientStop) isDraw()            {}
func (FreeGradient) isDraw()            {}
func (DefineFont) isDraw()              {}
func (FontSize) isDraw()                {}
func (DrawText) isDraw()                {}
func (DrawGlyphs) isDraw()              {}
