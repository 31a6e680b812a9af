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

package render

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/pixel"
)

// Frame is everything needed to render one picture.  A frame is immutable
// once it has been handed to a [Renderer].
type Frame struct {
	// Plan holds the visible shapes.
	Plan *edgeplan.Snapshot

	// Layers holds the edge plans which sprite programs refer to.
	Layers map[pixel.LayerID]*edgeplan.Snapshot

	// Textures holds the textures used by texture and gradient programs.
	Textures map[action.TextureID]*pixel.Texture
}

// EmptyFrame returns a frame without any shapes.
func EmptyFrame() *Frame {
	return &Frame{Plan: edgeplan.Empty()}
}

// frameContext implements [pixel.Context] for one worker.
type frameContext struct {
	frame    *Frame
	layers   map[pixel.LayerID]*layerSampler
	visiting map[pixel.LayerID]bool
	warned   map[pixel.LayerID]bool
}

func newFrameContext(f *Frame) *frameContext {
	return &frameContext{
		frame:    f,
		layers:   make(map[pixel.LayerID]*layerSampler),
		visiting: make(map[pixel.LayerID]bool),
		warned:   make(map[pixel.LayerID]bool),
	}
}

// Texture implements [pixel.Context].
func (c *frameContext) Texture(id action.TextureID) *pixel.Texture {
	return c.frame.Textures[id]
}

// SampleLayer implements [pixel.Context].  A layer which is reached again
// while it is being sampled forms a cycle; it is drawn transparent.
func (c *frameContext) SampleLayer(layer pixel.LayerID, p vec.Vec2, width float64) pixel.Color {
	if c.visiting[layer] {
		if !c.warned[layer] {
			c.warned[layer] = true
			scanline.Logger().Warn("render: sprite cycle", "layer", uint64(layer))
		}
		return pixel.Transparent
	}

	s, ok := c.layers[layer]
	if !ok {
		snap := c.frame.Layers[layer]
		if snap != nil {
			s = newLayerSampler(snap)
		}
		c.layers[layer] = s
	}
	if s == nil {
		return pixel.Transparent
	}

	c.visiting[layer] = true
	defer delete(c.visiting, layer)
	return s.sample(p, width, c)
}

// seamTolerance is the distance by which a footprint may start left of
// the end of the previous one without restarting the sweep.
const seamTolerance = 1e-6

// layerSampler finds the colour of a layer over short horizontal
// segments.  Segments are usually requested from left to right along a
// scanline, so the sampler remembers the crossings of the last scanline
// and its sweep position.
type layerSampler struct {
	snap    *edgeplan.Snapshot
	scanner *edgeplan.Scanner
	cov     *edgeplan.Coverage

	y         float64
	valid     bool
	crossings []edgeplan.Crossing
	next      int
	lastX     float64
}

func newLayerSampler(snap *edgeplan.Snapshot) *layerSampler {
	return &layerSampler{
		snap:    snap,
		scanner: snap.NewScanner(),
		cov:     snap.NewCoverage(),
	}
}

// sample returns the colour of the layer averaged over the segment
// [p.X-width/2, p.X+width/2) at height p.Y.  Like the spans of the main
// sweep, every part of the segment is shaded at p and weighted by its
// length.
func (s *layerSampler) sample(p vec.Vec2, width float64, ctx pixel.Context) pixel.Color {
	width = max(width, 0)
	x0, x1 := p.X-width/2, p.X+width/2
	if !s.valid || p.Y != s.y {
		s.crossings = append(s.crossings[:0], s.scanner.Crossings(p.Y)...)
		s.y = p.Y
		s.valid = true
		s.rewind()
	} else if x0 < s.lastX-seamTolerance {
		s.rewind()
	}
	s.advance(x0)
	if width == 0 {
		s.lastX = x0
		return shadeStack(s.snap, s.cov.Visible(), p.X, p.Y, ctx)
	}

	res := pixel.Transparent
	pos := x0
	for {
		end := x1
		if s.next < len(s.crossings) {
			end = min(end, s.crossings[s.next].X)
		}
		if end > pos {
			if vis := s.cov.Visible(); len(vis) > 0 {
				c := shadeStack(s.snap, vis, p.X, p.Y, ctx)
				res = res.Add(c.Scale(float32((end - pos) / width)))
			}
			pos = end
		}
		if pos >= x1 {
			break
		}
		s.advance(pos)
	}
	s.lastX = x1
	return res
}

// advance applies all crossings at or left of x.
func (s *layerSampler) advance(x float64) {
	for s.next < len(s.crossings) && s.crossings[s.next].X <= x {
		s.cov.Apply(s.crossings[s.next])
		s.next++
	}
}

func (s *layerSampler) rewind() {
	s.cov.Reset()
	s.next = 0
}

// shadeStack computes the colour of a pixel covered by the shapes at the
// stacking positions vis, bottom first.  Evaluation starts at the topmost
// shape whose program ignores the colour below it.
func shadeStack(snap *edgeplan.Snapshot, vis []int, x, y float64, ctx pixel.Context) pixel.Color {
	start := 0
	for j := len(vis) - 1; j >= 0; j-- {
		if !snap.Program(vis[j]).ReadsDestination() {
			start = j
			break
		}
	}
	c := pixel.Transparent
	for _, z := range vis[start:] {
		c = snap.Program(z).Shade(x, y, c, ctx)
	}
	return c
}
