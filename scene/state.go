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

package scene

import (
	"slices"

	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/edges"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/subpath"
)

type fillKind uint8

const (
	fillSolid fillKind = iota
	fillTexture
	fillGradient
)

// fillState is the paint used by Fill.  Texture and gradient fills keep
// their rectangle or line in canvas coordinates; it is mapped to device
// space with the transformation in effect when the path is filled.
type fillState struct {
	kind     fillKind
	color    canvas.Color
	texture  canvas.TextureHandle
	gradient canvas.GradientHandle

	x1, y1, x2, y2 float64
}

type strokeState struct {
	color      canvas.Color
	width      float64
	pixels     bool // width is given in device pixels
	join       canvas.LineJoin
	cap        canvas.LineCap
	miterLimit float64
	dash       []float64
	dashOffset float64
}

// clipRegion is a clip path in device space.  Regions are shared between
// saved states and identified by pointer.
type clipRegion struct {
	subpaths []subpath.Subpath
	rule     edgeplan.FillRule
}

// target names the layer or sprite which receives new shapes.
type target struct {
	sprite bool
	layer  canvas.LayerHandle
	key    key[canvas.SpriteHandle]
}

// drawingState is the part of the scene state saved by PushState.
type drawingState struct {
	transform       geometry.Transform
	spriteTransform geometry.Transform
	clip            []*clipRegion
	fill            fillState
	stroke          strokeState
	rule            canvas.WindingRule
	blend           action.BlendMode
	target          target
	namespace       canvas.NamespaceID
}

func defaultState() drawingState {
	def := edges.DefaultStrokeStyle()
	return drawingState{
		transform:       geometry.Identity,
		spriteTransform: geometry.Identity,
		fill:            fillState{color: canvas.Black},
		stroke: strokeState{
			color:      canvas.Black,
			width:      def.Width,
			join:       def.Join,
			cap:        def.Cap,
			miterLimit: def.MiterLimit,
		},
		namespace: canvas.DefaultNamespace,
	}
}

// clone returns a copy which shares no mutable memory with s.
func (s drawingState) clone() drawingState {
	s.clip = slices.Clone(s.clip)
	s.stroke.dash = slices.Clone(s.stroke.dash)
	return s
}

// fillRule converts the canvas winding rule.
func (s *drawingState) fillRule() edgeplan.FillRule {
	if s.rule == canvas.EvenOdd {
		return edgeplan.EvenOdd
	}
	return edgeplan.NonZero
}

// strokeStyle returns the stroke parameters in canvas units.
func (s *drawingState) strokeStyle() edges.StrokeStyle {
	width := s.stroke.width
	if s.stroke.pixels {
		if f := s.transform.ScaleFactor(); f > 0 {
			width /= f
		}
	}
	return edges.StrokeStyle{
		Width:      width,
		Cap:        s.stroke.cap,
		Join:       s.stroke.join,
		MiterLimit: s.stroke.miterLimit,
		Dash:       slices.Clone(s.stroke.dash),
		DashPhase:  s.stroke.dashOffset,
	}
}
