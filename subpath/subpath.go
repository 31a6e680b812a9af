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

package subpath

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/geometry"
)

// Subpath is a sequence of connected cubic Bézier segments.  The end
// point of each curve equals the start point of the next one.
//
// A subpath without curves describes a single point.  Such subpaths are
// ignored when filling, but produce dots when stroked with round or
// square caps.
type Subpath struct {
	Start  vec.Vec2
	Curves []geometry.Curve
	Closed bool
}

// End returns the current point at the end of the subpath.
func (s *Subpath) End() vec.Vec2 {
	if len(s.Curves) == 0 {
		return s.Start
	}
	return s.Curves[len(s.Curves)-1].P3
}

// Bounds returns a bounding box for the subpath.
func (s *Subpath) Bounds() geometry.BoundingBox {
	b := geometry.BoxOf(s.Start)
	for _, c := range s.Curves {
		b = b.Union(c.Bounds())
	}
	return b
}

// Transform returns the image of s under t.
func (s *Subpath) Transform(t geometry.Transform) Subpath {
	res := Subpath{
		Start:  t.Apply(s.Start),
		Curves: make([]geometry.Curve, len(s.Curves)),
		Closed: s.Closed,
	}
	for i, c := range s.Curves {
		res.Curves[i] = c.Transform(t)
	}
	return res
}

// Ops returns a path description which rebuilds s.
func (s *Subpath) Ops() []PathOp {
	ops := make([]PathOp, 0, len(s.Curves)+2)
	ops = append(ops, Move{X: s.Start.X, Y: s.Start.Y})
	for i, c := range s.Curves {
		if s.Closed && i == len(s.Curves)-1 && c.IsLine(geometry.SmallDistance) {
			break // re-created by ClosePath
		}
		ops = append(ops, BezierCurve{CP1: c.P1, CP2: c.P2, End: c.P3})
	}
	if s.Closed {
		ops = append(ops, ClosePath{})
	}
	return ops
}

// Builder collects path operations into subpaths.
// The zero value is an empty builder, ready to use.
type Builder struct {
	subpaths []Subpath
	open     int // 1 + index of the open subpath, 0 if none
	pos      vec.Vec2
}

// FromOps converts a path description into subpaths.
func FromOps(ops ...PathOp) []Subpath {
	b := &Builder{}
	for _, op := range ops {
		b.Apply(op)
	}
	return b.Subpaths()
}

// Apply adds one path operation.
//
// A [Line] or [BezierCurve] without a preceding [Move] behaves as if the
// path started with a move to the origin.  After a [ClosePath], drawing
// continues in a new subpath at the start point of the closed one.
func (b *Builder) Apply(op PathOp) {
	switch op := op.(type) {
	case NewPath:
		b.Reset()

	case Move:
		b.pos = vec.Vec2{X: op.X, Y: op.Y}
		b.subpaths = append(b.subpaths, Subpath{Start: b.pos})
		b.open = len(b.subpaths)

	case Line:
		to := vec.Vec2{X: op.X, Y: op.Y}
		b.add(geometry.LineToCurve(b.current(), to))

	case BezierCurve:
		b.add(geometry.Curve{P0: b.current(), P1: op.CP1, P2: op.CP2, P3: op.End})

	case ClosePath:
		if b.open == 0 {
			return
		}
		sp := &b.subpaths[b.open-1]
		if end := sp.End(); !geometry.Coincident(end, sp.Start) {
			sp.Curves = append(sp.Curves, geometry.LineToCurve(end, sp.Start))
		} else if n := len(sp.Curves); n > 0 {
			sp.Curves[n-1].P3 = sp.Start
		}
		sp.Closed = true
		b.pos = sp.Start
		b.open = 0
	}
}

// current returns the current point, starting a new subpath if necessary.
func (b *Builder) current() vec.Vec2 {
	if b.open == 0 {
		b.subpaths = append(b.subpaths, Subpath{Start: b.pos})
		b.open = len(b.subpaths)
	}
	return b.pos
}

func (b *Builder) add(c geometry.Curve) {
	sp := &b.subpaths[b.open-1]
	sp.Curves = append(sp.Curves, c)
	b.pos = c.P3
}

// Reset discards everything collected so far.
func (b *Builder) Reset() {
	b.subpaths = b.subpaths[:0]
	b.open = 0
	b.pos = vec.Vec2{}
}

// Subpaths returns the subpaths collected so far.  The result shares no
// memory with the builder.
func (b *Builder) Subpaths() []Subpath {
	res := make([]Subpath, len(b.subpaths))
	for i, sp := range b.subpaths {
		res[i] = Subpath{
			Start:  sp.Start,
			Curves: append([]geometry.Curve(nil), sp.Curves...),
			Closed: sp.Closed,
		}
	}
	return res
}

// IsEmpty reports whether no subpath has been started.
func (b *Builder) IsEmpty() bool {
	return len(b.subpaths) == 0
}

// FromData converts a path in the representation of the seehuhn.de/go/geom
// library.  Quadratic segments are raised to cubics.
func FromData(p *path.Data) []Subpath {
	b := &Builder{}
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			pt := p.Coords[coordIdx]
			b.Apply(Move{X: pt.X, Y: pt.Y})
			coordIdx++

		case path.CmdLineTo:
			pt := p.Coords[coordIdx]
			b.Apply(Line{X: pt.X, Y: pt.Y})
			coordIdx++

		case path.CmdQuadTo:
			c := geometry.QuadToCurve(b.current(), p.Coords[coordIdx], p.Coords[coordIdx+1])
			b.add(c)
			coordIdx += 2

		case path.CmdCubeTo:
			b.Apply(BezierCurve{
				CP1: p.Coords[coordIdx],
				CP2: p.Coords[coordIdx+1],
				End: p.Coords[coordIdx+2],
			})
			coordIdx += 3

		case path.CmdClose:
			b.Apply(ClosePath{})
		}
	}
	return b.Subpaths()
}

// Bounds returns the bounding box of a list of subpaths.
func Bounds(subpaths []Subpath) geometry.BoundingBox {
	b := geometry.EmptyBox
	for i := range subpaths {
		b = b.Union(subpaths[i].Bounds())
	}
	return b
}

// Transform applies t to every subpath in the list.
func Transform(subpaths []Subpath, t geometry.Transform) []Subpath {
	res := make([]Subpath, len(subpaths))
	for i := range subpaths {
		res[i] = subpaths[i].Transform(t)
	}
	return res
}
