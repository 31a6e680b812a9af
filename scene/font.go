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
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/subpath"
)

// defaultFontSize is the font size, in canvas units, used before the
// first FontSize command.
const defaultFontSize = 12

type fontFace struct {
	f    *sfnt.Font
	size float64
	buf  sfnt.Buffer
}

func (c *core) defineFont(cmd canvas.DefineFont) error {
	f, err := sfnt.Parse(cmd.Data)
	if err != nil {
		return fmt.Errorf("%v: %w", cmd.Font, err)
	}
	k := key[canvas.FontHandle]{c.state.namespace, cmd.Font}
	c.fonts[k] = &fontFace{f: f, size: defaultFontSize}
	return nil
}

func (c *core) font(h canvas.FontHandle) (*fontFace, error) {
	f, ok := c.fonts[key[canvas.FontHandle]{c.state.namespace, h}]
	if !ok {
		return nil, missing(h)
	}
	return f, nil
}

// ppem returns the font size in 26.6 fixed point units.
func (f *fontFace) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size * 64)
}

// appendGlyph appends the outline of a glyph with its origin at (x, y)
// to ops.  The y-axis of glyph outlines points down, as in canvas
// coordinates.
func (f *fontFace) appendGlyph(ops []subpath.PathOp, gid sfnt.GlyphIndex, x, y float64) ([]subpath.PathOp, error) {
	segs, err := f.f.LoadGlyph(&f.buf, gid, f.ppem(), nil)
	if err != nil {
		return ops, err
	}
	pt := func(p fixed.Point26_6) vec.Vec2 {
		return vec.Vec2{X: x + float64(p.X)/64, Y: y + float64(p.Y)/64}
	}

	var current vec.Vec2
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				ops = append(ops, subpath.ClosePath{})
			}
			current = pt(seg.Args[0])
			ops = append(ops, subpath.Move{X: current.X, Y: current.Y})
			open = true
		case sfnt.SegmentOpLineTo:
			current = pt(seg.Args[0])
			ops = append(ops, subpath.Line{X: current.X, Y: current.Y})
		case sfnt.SegmentOpQuadTo:
			q, end := pt(seg.Args[0]), pt(seg.Args[1])
			ops = append(ops, subpath.BezierCurve{
				CP1: current.Add(q.Sub(current).Mul(2.0 / 3)),
				CP2: end.Add(q.Sub(end).Mul(2.0 / 3)),
				End: end,
			})
			current = end
		case sfnt.SegmentOpCubeTo:
			end := pt(seg.Args[2])
			ops = append(ops, subpath.BezierCurve{CP1: pt(seg.Args[0]), CP2: pt(seg.Args[1]), End: end})
			current = end
		}
	}
	if open {
		ops = append(ops, subpath.ClosePath{})
	}
	return ops, nil
}

// fillGlyphs fills glyph outlines with the fill state, as one shape.
func (c *core) fillGlyphs(ops []subpath.PathOp) error {
	saved := c.state.rule
	c.state.rule = canvas.NonZero
	err := c.fill(subpath.FromOps(ops...))
	c.state.rule = saved
	return err
}

func (c *core) drawText(cmd canvas.DrawText) error {
	f, err := c.font(cmd.Font)
	if err != nil {
		return err
	}

	var ops []subpath.PathOp
	x := cmd.X
	prev, havePrev := sfnt.GlyphIndex(0), false
	for _, r := range cmd.Text {
		gid, err := f.f.GlyphIndex(&f.buf, r)
		if err != nil {
			return err
		}
		if havePrev {
			k, err := f.f.Kern(&f.buf, prev, gid, f.ppem(), font.HintingNone)
			if err == nil {
				x += float64(k) / 64
			} else if !errors.Is(err, sfnt.ErrNotFound) {
				return err
			}
		}
		ops, err = f.appendGlyph(ops, gid, x, cmd.Y)
		if err != nil && !errors.Is(err, sfnt.ErrColoredGlyph) {
			return err
		}
		adv, err := f.f.GlyphAdvance(&f.buf, gid, f.ppem(), font.HintingNone)
		if err != nil {
			return err
		}
		x += float64(adv) / 64
		prev, havePrev = gid, true
	}
	return c.fillGlyphs(ops)
}

func (c *core) drawGlyphs(cmd canvas.DrawGlyphs) error {
	f, err := c.font(cmd.Font)
	if err != nil {
		return err
	}
	var ops []subpath.PathOp
	for _, g := range cmd.Glyphs {
		ops, err = f.appendGlyph(ops, sfnt.GlyphIndex(g.ID), g.X, g.Y)
		if err != nil && !errors.Is(err, sfnt.ErrColoredGlyph) {
			return err
		}
	}
	return c.fillGlyphs(ops)
}
