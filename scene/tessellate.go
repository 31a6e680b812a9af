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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/contour"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/edges"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/pixel"
	"seehuhn.de/go/scanline/subpath"
)

// viewport returns the device space rectangle of the output.
func (c *core) viewport() geometry.BoundingBox {
	return geometry.BoundingBox{
		Max: vec.Vec2{X: float64(c.width), Y: float64(c.height)},
	}
}

// fillEdges returns the edges of a fill with device space subpaths, using
// the configured edge mode.
func (c *core) fillEdges(id edgeplan.ShapeID, dev []subpath.Subpath, rule edgeplan.FillRule) []edgeplan.Edge {
	var res []edgeplan.Edge
	switch c.opts.edgeMode {
	case EdgeModeFlattened:
		for _, sp := range dev {
			res = append(res, edges.NewFlattenedSubpathEdge(id, sp, c.opts.flatness))
		}
	case EdgeModeContour:
		box := subpath.Bounds(dev)
		box.Min = box.Min.Sub(vec.Vec2{X: 1, Y: 1})
		box.Max = box.Max.Add(vec.Vec2{X: 1, Y: 1})
		box = box.Intersect(c.viewport())
		if box.IsEmpty() {
			return nil
		}
		field := contour.Rasterize(dev, rule, box.Rect())
		res = append(res, edges.NewContourEdge(id, field, 0.5))
	default:
		for _, sp := range dev {
			res = append(res, edges.NewBezierSubpathEdge(id, sp))
		}
	}
	return res
}

// clipShapes returns the shapes on l which represent the current clip
// regions, creating them where needed.
func (c *core) clipShapes(l *layer) []edgeplan.ShapeID {
	if len(c.state.clip) == 0 {
		return nil
	}
	res := make([]edgeplan.ShapeID, 0, len(c.state.clip))
	for _, r := range c.state.clip {
		id, ok := l.clipShapes[r]
		if !ok {
			id = l.addShape(edgeplan.ShapeDescriptor{Rule: r.rule},
				func(id edgeplan.ShapeID) []edgeplan.Edge {
					return c.fillEdges(id, r.subpaths, r.rule)
				})
			l.clipShapes[r] = id
		}
		res = append(res, id)
	}
	return res
}

// emit adds a painted shape to the current target.
func (c *core) emit(prog pixel.Program, rule edgeplan.FillRule, edgesFor func(edgeplan.ShapeID) []edgeplan.Edge) {
	l := c.current()
	desc := edgeplan.ShapeDescriptor{
		Program: pixel.WithBlendMode(prog, c.state.blend),
		Rule:    rule,
		Clip:    c.clipShapes(l),
	}
	l.addShape(desc, edgesFor)
}

// fill fills the subpaths, given in canvas coordinates.
func (c *core) fill(sps []subpath.Subpath) error {
	if len(sps) == 0 {
		return nil
	}
	prog, err := c.fillProgram()
	if err != nil {
		return err
	}
	dev := subpath.Transform(sps, c.state.transform)
	rule := c.state.fillRule()
	c.emit(prog, rule, func(id edgeplan.ShapeID) []edgeplan.Edge {
		return c.fillEdges(id, dev, rule)
	})
	return nil
}

// stroke strokes the current path.
func (c *core) stroke() error {
	sps := c.path.Subpaths()
	if len(sps) == 0 {
		return nil
	}
	style := c.state.strokeStyle()
	if !(style.Width > 0) {
		return nil
	}
	prog := pixel.Program(pixel.SolidColor{Color: c.color(c.state.stroke.color)})
	ctm := c.state.transform
	c.emit(prog, edgeplan.NonZero, func(id edgeplan.ShapeID) []edgeplan.Edge {
		e := edges.NewLineStrokeEdge(id, sps, style, ctm, c.opts.flatness)
		return []edgeplan.Edge{c.clipColumns(e)}
	})
	return nil
}

// clipColumns restricts a single-edge shape to the columns of the
// viewport, so that crossings outside the output are not sorted.  Sprite
// content can be moved into view later and is left alone.
func (c *core) clipColumns(e edgeplan.Edge) edgeplan.Edge {
	if c.state.target.sprite {
		return e
	}
	box := e.BoundingBox()
	w := float64(c.width)
	if box.IsEmpty() || (box.Min.X >= 0 && box.Max.X <= w) {
		return e
	}
	return edges.NewClippingEdge(e, 0, w)
}

// clip intersects the clip region with the current path.
func (c *core) clip() {
	sps := c.path.Subpaths()
	r := &clipRegion{
		subpaths: subpath.Transform(sps, c.state.transform),
		rule:     c.state.fillRule(),
	}
	c.state.clip = append(c.state.clip, r)
}

// color converts a canvas colour into the renderer's colour space.
func (c *core) color(col canvas.Color) pixel.Color {
	return pixel.FromRgba8(pixel.Rgba8(col.Rgba8()), c.opts.gamma)
}

// fillProgram returns the pixel program for the fill state.
func (c *core) fillProgram() (pixel.Program, error) {
	f := &c.state.fill
	// toCanvas maps device space back to canvas coordinates.
	toCanvas, ok := c.state.transform.Invert()
	if !ok && f.kind != fillSolid {
		return pixel.SolidColor{}, nil
	}

	switch f.kind {
	case fillTexture:
		t, ok := c.canvasTextures[key[canvas.TextureHandle]{c.state.namespace, f.texture}]
		if !ok {
			return nil, missing(f.texture)
		}
		return pixel.BasicTexture{
			Texture:   t.id,
			Transform: toCanvas.Then(unitSquare(f.x1, f.y1, f.x2, f.y2)),
			Wrap:      pixel.Repeat,
		}, nil

	case fillGradient:
		g, ok := c.gradients[key[canvas.GradientHandle]{c.state.namespace, f.gradient}]
		if !ok {
			return nil, missing(f.gradient)
		}
		return pixel.LinearGradient{
			Texture:   c.realize(g),
			P0:        vec.Vec2{X: f.x1, Y: f.y1},
			P1:        vec.Vec2{X: f.x2, Y: f.y2},
			Transform: toCanvas,
		}, nil

	default:
		return pixel.SolidColor{Color: c.color(f.color)}, nil
	}
}

// unitSquare maps the rectangle (x1, y1)-(x2, y2) onto the unit square.
func unitSquare(x1, y1, x2, y2 float64) geometry.Transform {
	if x2 == x1 {
		x2 = x1 + 1e-7
	}
	if y2 == y1 {
		y2 = y1 + 1e-7
	}
	return geometry.Translate(-x1, -y1).Then(geometry.Scale(1/(x2-x1), 1/(y2-y1)))
}

// drawSprite draws a sprite on the current target.
func (c *core) drawSprite(h canvas.SpriteHandle) error {
	sp, ok := c.sprites[key[canvas.SpriteHandle]{c.state.namespace, h}]
	if !ok {
		return missing(h)
	}

	// Sprite content at canvas point p lies at sp.record(p).  It is
	// shown at transform(spriteTransform(p)).
	undo, ok := sp.record.Invert()
	if !ok {
		return nil
	}
	toDevice := undo.Then(c.state.spriteTransform).Then(c.state.transform)
	toSprite, ok := toDevice.Invert()
	if !ok {
		return nil
	}

	var prog pixel.Program
	if toSprite.IsTranslation() {
		prog = pixel.BasicSprite{Layer: sp.id, Offset: vec.Vec2{X: -toSprite[4], Y: -toSprite[5]}}
	} else {
		prog = pixel.TransformedSprite{Layer: sp.id, Transform: toSprite}
	}
	box := c.viewport()
	c.emit(prog, edgeplan.NonZero, func(id edgeplan.ShapeID) []edgeplan.Edge {
		return []edgeplan.Edge{edges.NewRectangleEdge(id, box)}
	})
	return nil
}
