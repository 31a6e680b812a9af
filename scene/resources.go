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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/edges"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/pixel"
	"seehuhn.de/go/scanline/render"
)

// canvasTexture is a texture created by the canvas commands.
type canvasTexture struct {
	id            action.TextureID
	width, height int
	dynamic       *dynamicTexture
}

// dynamicTexture is a texture which shows the content of a sprite.
type dynamicTexture struct {
	sprite     key[canvas.SpriteHandle]
	x, y, w, h float64
	cw, ch     float64

	// last is the state at the last rendering, or nil.
	last *DynamicTextureState
}

// DynamicTextureState records what a dynamic texture was rendered from.
// The texture is rendered again when the state changes.
type DynamicTextureState struct {
	Viewport          [2]int
	ModificationCount uint64
}

// maxTextureSize limits the size of dynamic textures.
const maxTextureSize = 4096

func (c *core) createTexture(cmd canvas.CreateTexture) {
	k := key[canvas.TextureHandle]{c.state.namespace, cmd.Texture}
	if old, ok := c.canvasTextures[k]; ok {
		c.uses.retire(old.id)
	}
	w, h := max(cmd.Width, 0), max(cmd.Height, 0)
	t := &canvasTexture{id: c.textureIDs.alloc(), width: w, height: h}
	c.canvasTextures[k] = t
	c.setTexture(t.id, &pixel.Texture{Width: w, Height: h, Pix: make([]pixel.Color, w*h)})
}

func (c *core) setTextureBytes(cmd canvas.SetTextureBytes) error {
	t, ok := c.canvasTextures[key[canvas.TextureHandle]{c.state.namespace, cmd.Texture}]
	if !ok {
		return missing(cmd.Texture)
	}
	t.dynamic = nil
	c.setTexture(t.id, c.textures[t.id].WithRegion(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Bytes, c.opts.gamma))
	return nil
}

func (c *core) freeTexture(h canvas.TextureHandle) error {
	k := key[canvas.TextureHandle]{c.state.namespace, h}
	t, ok := c.canvasTextures[k]
	if !ok {
		return missing(h)
	}
	delete(c.canvasTextures, k)
	c.uses.retire(t.id)
	return nil
}

func (c *core) createDynamicTexture(cmd canvas.CreateDynamicTexture) error {
	sk := key[canvas.SpriteHandle]{c.state.namespace, cmd.Sprite}
	if _, ok := c.sprites[sk]; !ok {
		return missing(cmd.Sprite)
	}
	c.createTexture(canvas.CreateTexture{Texture: cmd.Texture})
	t := c.canvasTextures[key[canvas.TextureHandle]{c.state.namespace, cmd.Texture}]
	t.dynamic = &dynamicTexture{
		sprite: sk,
		x:      cmd.X, y: cmd.Y, w: cmd.W, h: cmd.H,
		cw: cmd.CanvasWidth, ch: cmd.CanvasHeight,
	}
	return nil
}

// updateDynamicTextures renders the dynamic textures whose sprite or
// viewport changed.
func (c *core) updateDynamicTextures(r *render.Renderer) {
	for _, t := range c.canvasTextures {
		d := t.dynamic
		if d == nil {
			continue
		}
		sp, ok := c.sprites[d.sprite]
		if !ok {
			continue
		}
		state := DynamicTextureState{
			Viewport:          [2]int{c.width, c.height},
			ModificationCount: sp.modCount,
		}
		if d.last != nil && *d.last == state {
			continue
		}
		d.last = &state

		w, h := d.pixelSize(c.width, c.height)
		t.width, t.height = w, h
		c.setTexture(t.id, c.renderSprite(r, sp, d, w, h))
		scanline.Logger().Debug("scene: dynamic texture rendered",
			"texture", t.id, "width", w, "height", h)
	}
}

// pixelSize returns the size of the texture for the given viewport.
func (d *dynamicTexture) pixelSize(vw, vh int) (int, int) {
	size := func(part, whole float64, n int) int {
		if !(whole > 0) {
			return 1
		}
		s := int(math.Ceil(math.Abs(part) / whole * float64(n)))
		return max(1, min(s, maxTextureSize))
	}
	return size(d.w, d.cw, vw), size(d.h, d.ch, vh)
}

// renderSprite renders the region of a sprite into a texture.
func (c *core) renderSprite(r *render.Renderer, sp *layer, d *dynamicTexture, w, h int) *pixel.Texture {
	// Texture pixel (u, v) shows canvas point (x + u*w/tw, y + v*h/th),
	// which is stored at sp.record of that point.
	toSprite := geometry.Scale(d.w/float64(w), d.h/float64(h)).
		Then(geometry.Translate(d.x, d.y)).
		Then(sp.record)

	plan := edgeplan.New()
	id := edgeplan.NewShapeID()
	plan.AddShape(id, edgeplan.ShapeDescriptor{
		Program: pixel.TransformedSprite{Layer: sp.id, Transform: toSprite},
	})
	box := geometry.BoundingBox{Max: vec.Vec2{X: float64(w), Y: float64(h)}}
	_ = plan.AddEdge(edges.NewRectangleEdge(id, box))

	f := &render.Frame{
		Plan:     plan.Snapshot(),
		Layers:   c.spriteSnapshots(),
		Textures: c.shareTextures(),
	}
	data := make([]byte, 4*w*h)
	r.Render(f, render.Rows(w, 0, h), func(i int, row []pixel.Rgba8) {
		for x, px := range row {
			px = px.Unpremultiply()
			copy(data[4*(i*w+x):], px[:])
		}
	})
	return pixel.NewTextureFromRgba8(w, h, data, c.opts.gamma)
}

// gradientStop is a colour stop of a gradient.
type gradientStop struct {
	pos   float64
	color canvas.Color
}

// gradient is a colour gradient.  It is Defined until it is used for the
// first time, and Ready afterwards, when its colours have been turned
// into a texture.
type gradient struct {
	stops   []gradientStop
	ready   bool
	texture action.TextureID
}

// gradientWidth is the number of texels of a gradient texture.
const gradientWidth = 256

func (c *core) newGradient(cmd canvas.NewGradient) {
	k := key[canvas.GradientHandle]{c.state.namespace, cmd.Gradient}
	if old, ok := c.gradients[k]; ok {
		c.retire(old)
	}
	c.gradients[k] = &gradient{stops: []gradientStop{{pos: 0, color: cmd.Color}}}
}

func (c *core) gradientStop(cmd canvas.GradientStop) error {
	g, ok := c.gradients[key[canvas.GradientHandle]{c.state.namespace, cmd.Gradient}]
	if !ok {
		return missing(cmd.Gradient)
	}
	// A Ready gradient is immutable.  Shapes drawn so far keep the old
	// texture, later fills get a new one.
	c.retire(g)
	g.stops = append(g.stops, gradientStop{pos: max(0, min(cmd.Pos, 1)), color: cmd.Color})
	slices.SortStableFunc(g.stops, func(a, b gradientStop) int {
		return cmp.Compare(a.pos, b.pos)
	})
	return nil
}

func (c *core) freeGradient(h canvas.GradientHandle) error {
	k := key[canvas.GradientHandle]{c.state.namespace, h}
	g, ok := c.gradients[k]
	if !ok {
		return missing(h)
	}
	c.retire(g)
	delete(c.gradients, k)
	return nil
}

// retire makes g Defined again.  Its texture is released once no shape
// uses it.
func (c *core) retire(g *gradient) {
	if g.ready {
		c.uses.retire(g.texture)
		g.ready = false
	}
}

// realize makes sure that g is Ready and returns its texture.
func (c *core) realize(g *gradient) action.TextureID {
	if g.ready {
		return g.texture
	}
	g.texture = c.textureIDs.alloc()
	g.ready = true
	c.setTexture(g.texture, g.texels(c.opts.gamma))
	return g.texture
}

// texels samples the gradient into a one-row texture.  Colours are
// interpolated between the stops; outside the stops the end colours are
// used.
func (g *gradient) texels(gamma float64) *pixel.Texture {
	data := make([]byte, 4*gradientWidth)
	for i := range gradientWidth {
		t := (float64(i) + 0.5) / gradientWidth
		col := g.at(t).Rgba8()
		copy(data[4*i:], col[:])
	}
	return pixel.NewTextureFromRgba8(gradientWidth, 1, data, gamma)
}

func (g *gradient) at(t float64) canvas.Color {
	stops := g.stops
	if t <= stops[0].pos {
		return stops[0].color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.pos {
			continue
		}
		if b.pos == a.pos {
			return b.color
		}
		s := (t - a.pos) / (b.pos - a.pos)
		return canvas.Color{
			R: a.color.R + s*(b.color.R-a.color.R),
			G: a.color.G + s*(b.color.G-a.color.G),
			B: a.color.B + s*(b.color.B-a.color.B),
			A: a.color.A + s*(b.color.A-a.color.A),
		}
	}
	return stops[len(stops)-1].color
}
