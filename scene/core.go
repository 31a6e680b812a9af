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
	"fmt"
	"maps"
	"math"
	"slices"

	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/pixel"
	"seehuhn.de/go/scanline/subpath"
)

// core is the state of a scene.  It is only accessed from the scene's
// queue.
type core struct {
	opts          options
	width, height int

	state drawingState
	stack []drawingState
	path  subpath.Builder

	background canvas.Color

	layers     map[canvas.LayerHandle]*layer
	layerOrder []canvas.LayerHandle
	sprites    map[key[canvas.SpriteHandle]]*layer
	layerIDs   idSequence[pixel.LayerID]

	textures       map[action.TextureID]*pixel.Texture
	texturesShared bool
	textureIDs     idSequence[action.TextureID]
	uses           *textureUses
	canvasTextures map[key[canvas.TextureHandle]]*canvasTexture
	gradients      map[key[canvas.GradientHandle]]*gradient
	fonts          map[key[canvas.FontHandle]]*fontFace
}

func newCore(width, height int, opts options) *core {
	c := &core{
		opts:   opts,
		width:  width,
		height: height,
	}
	c.reset()
	return c
}

// reset returns the scene to its initial state.  Fonts are kept.
func (c *core) reset() {
	c.state = defaultState()
	c.stack = nil
	c.path.Reset()
	c.background = canvas.Transparent

	c.layers = make(map[canvas.LayerHandle]*layer)
	c.layerOrder = nil
	c.sprites = make(map[key[canvas.SpriteHandle]]*layer)
	c.layerIDs = newIDSequence[pixel.LayerID](1)

	c.textures = make(map[action.TextureID]*pixel.Texture)
	c.texturesShared = false
	c.textureIDs = newIDSequence[action.TextureID](action.FirstFreeID)
	c.uses = newTextureUses(func(id action.TextureID) {
		c.setTexture(id, nil)
		c.textureIDs.release(id)
	})
	c.canvasTextures = make(map[key[canvas.TextureHandle]]*canvasTexture)
	c.gradients = make(map[key[canvas.GradientHandle]]*gradient)
	if c.fonts == nil {
		c.fonts = make(map[key[canvas.FontHandle]]*fontFace)
	}
}

// process applies one drawing command.
func (c *core) process(cmd canvas.Draw) error {
	st := &c.state
	switch cmd := cmd.(type) {
	case canvas.NewPath:
		c.path.Apply(subpath.NewPath{})
	case canvas.Move:
		c.path.Apply(subpath.Move{X: cmd.X, Y: cmd.Y})
	case canvas.Line:
		c.path.Apply(subpath.Line{X: cmd.X, Y: cmd.Y})
	case canvas.BezierCurve:
		c.path.Apply(subpath.BezierCurve{CP1: cmd.CP1, CP2: cmd.CP2, End: cmd.End})
	case canvas.ClosePath:
		c.path.Apply(subpath.ClosePath{})
	case canvas.Fill:
		return c.fill(c.path.Subpaths())
	case canvas.Stroke:
		return c.stroke()

	case canvas.FillColor:
		st.fill = fillState{kind: fillSolid, color: cmd.Color}
	case canvas.StrokeColor:
		st.stroke.color = cmd.Color
	case canvas.LineWidth:
		st.stroke.width = cmd.Width
		st.stroke.pixels = false
	case canvas.LineWidthPixels:
		st.stroke.width = cmd.Width
		st.stroke.pixels = true
	case canvas.LineJoinStyle:
		st.stroke.join = cmd.Join
	case canvas.LineCapStyle:
		st.stroke.cap = cmd.Cap
	case canvas.MiterLimit:
		st.stroke.miterLimit = cmd.Limit
	case canvas.NewDashPattern:
		st.stroke.dash = nil
	case canvas.DashLength:
		st.stroke.dash = append(st.stroke.dash, cmd.Length)
	case canvas.DashOffset:
		st.stroke.dashOffset = cmd.Offset
	case canvas.FillRule:
		st.rule = cmd.Rule
	case canvas.BlendMode:
		st.blend = cmd.Mode
	case canvas.FillTexture:
		k := key[canvas.TextureHandle]{st.namespace, cmd.Texture}
		if _, ok := c.canvasTextures[k]; !ok {
			return missing(cmd.Texture)
		}
		st.fill = fillState{kind: fillTexture, texture: cmd.Texture,
			x1: cmd.X1, y1: cmd.Y1, x2: cmd.X2, y2: cmd.Y2}
	case canvas.FillGradient:
		k := key[canvas.GradientHandle]{st.namespace, cmd.Gradient}
		if _, ok := c.gradients[k]; !ok {
			return missing(cmd.Gradient)
		}
		st.fill = fillState{kind: fillGradient, gradient: cmd.Gradient,
			x1: cmd.X1, y1: cmd.Y1, x2: cmd.X2, y2: cmd.Y2}

	case canvas.IdentityTransform:
		st.transform = geometry.Identity
	case canvas.CanvasHeight:
		if cmd.Height != 0 {
			s := float64(c.height) / cmd.Height
			st.transform = geometry.Scale(s, -s).
				Then(geometry.Translate(float64(c.width)/2, float64(c.height)/2))
		}
	case canvas.MultiplyTransform:
		st.transform = cmd.Transform.Then(st.transform)
	case canvas.Translate:
		st.transform = geometry.Translate(cmd.X, cmd.Y).Then(st.transform)
	case canvas.Scale:
		st.transform = geometry.Scale(cmd.X, cmd.Y).Then(st.transform)
	case canvas.Rotate:
		st.transform = geometry.Rotate(cmd.Degrees * math.Pi / 180).Then(st.transform)

	case canvas.Clip:
		c.clip()
	case canvas.Unclip:
		st.clip = nil
	case canvas.PushState:
		c.stack = append(c.stack, st.clone())
	case canvas.PopState:
		if n := len(c.stack); n > 0 {
			c.state = c.stack[n-1]
			c.stack = c.stack[:n-1]
		}
	case canvas.Store:
		if l := c.current(); l != nil {
			l.store()
		}
	case canvas.Restore:
		if l := c.current(); l != nil {
			l.restore(st.clip)
		}
	case canvas.FreeStoredBuffer:
		if l := c.current(); l != nil {
			l.restorePoint = -1
		}
	case canvas.ClearCanvas:
		c.reset()
		c.background = cmd.Color

	case canvas.Layer:
		c.layer(cmd.Layer)
		st.target = target{layer: cmd.Layer}
	case canvas.LayerBlend:
		c.layer(cmd.Layer).blend = cmd.Mode
	case canvas.LayerAlpha:
		c.layer(cmd.Layer).alpha = max(0, min(cmd.Alpha, 1))
	case canvas.ClearLayer:
		if l := c.current(); l != nil {
			l.clear()
		}
	case canvas.ClearSprite:
		if st.target.sprite {
			c.current().clear()
		}
	case canvas.ClearAllLayers:
		for _, l := range c.layers {
			l.clear()
		}
	case canvas.SwapLayers:
		c.layer(cmd.A)
		c.layer(cmd.B)
		i := slices.Index(c.layerOrder, cmd.A)
		j := slices.Index(c.layerOrder, cmd.B)
		c.layerOrder[i], c.layerOrder[j] = c.layerOrder[j], c.layerOrder[i]
	case canvas.Sprite:
		k := key[canvas.SpriteHandle]{st.namespace, cmd.Sprite}
		sp, ok := c.sprites[k]
		if !ok {
			sp = newLayer(c.layerIDs.alloc(), c.uses)
			c.sprites[k] = sp
		}
		sp.record = st.transform
		st.target = target{sprite: true, key: k}
	case canvas.SpriteTransform:
		st.spriteTransform = cmd.Transform.Then(st.spriteTransform)
	case canvas.IdentitySpriteTransform:
		st.spriteTransform = geometry.Identity
	case canvas.DrawSprite:
		return c.drawSprite(cmd.Sprite)

	case canvas.Namespace:
		st.namespace = cmd.Namespace
	case canvas.CreateTexture:
		c.createTexture(cmd)
	case canvas.SetTextureBytes:
		return c.setTextureBytes(cmd)
	case canvas.FreeTexture:
		return c.freeTexture(cmd.Texture)
	case canvas.CreateDynamicTexture:
		return c.createDynamicTexture(cmd)
	case canvas.NewGradient:
		c.newGradient(cmd)
	case canvas.GradientStop:
		return c.gradientStop(cmd)
	case canvas.FreeGradient:
		return c.freeGradient(cmd.Gradient)

	case canvas.DefineFont:
		return c.defineFont(cmd)
	case canvas.FontSize:
		f, err := c.font(cmd.Font)
		if err != nil {
			return err
		}
		f.size = cmd.Size
	case canvas.DrawText:
		return c.drawText(cmd)
	case canvas.DrawGlyphs:
		return c.drawGlyphs(cmd)

	default:
		return fmt.Errorf("scene: unsupported command %T", cmd)
	}
	return nil
}

func missing(handle any) error {
	return fmt.Errorf("%v: %w", handle, ErrResourceMissing)
}

// layer returns the layer with the given handle, creating it if needed.
// New layers are placed on top.
func (c *core) layer(h canvas.LayerHandle) *layer {
	l, ok := c.layers[h]
	if !ok {
		l = newLayer(c.layerIDs.alloc(), c.uses)
		c.layers[h] = l
		c.layerOrder = append(c.layerOrder, h)
	}
	return l
}

// current returns the layer or sprite which receives new shapes.
func (c *core) current() *layer {
	t := c.state.target
	if t.sprite {
		return c.sprites[t.key]
	}
	return c.layer(t.layer)
}

// shareTextures returns the texture table for use in a frame.  Later
// changes copy the table first.
func (c *core) shareTextures() map[action.TextureID]*pixel.Texture {
	c.texturesShared = true
	return c.textures
}

// setTexture stores a texture in the table.  A nil texture removes the
// entry.
func (c *core) setTexture(id action.TextureID, t *pixel.Texture) {
	if c.texturesShared {
		c.textures = maps.Clone(c.textures)
		c.texturesShared = false
	}
	if t == nil {
		delete(c.textures, id)
		return
	}
	c.textures[id] = t
}
