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

package canvas

import (
	"iter"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// circleTolerance is the accuracy used to approximate circles and
// ellipses by Bézier curves, in canvas units.
const circleTolerance = 0.01

// Rect returns the commands which add the rectangle with corners
// (x0, y0) and (x1, y1) to the current path.
func Rect(x0, y0, x1, y1 float64) []Draw {
	return []Draw{
		Move{X: x0, Y: y0},
		Line{X: x1, Y: y0},
		Line{X: x1, Y: y1},
		Line{X: x0, Y: y1},
		ClosePath{},
	}
}

// Circle returns the commands which add a circle to the current path.
func Circle(cx, cy, r float64) []Draw {
	c := curve.Circle{Center: curve.Pt(cx, cy), Radius: r}
	return fromElements(c.PathElements(circleTolerance))
}

// Ellipse returns the commands which add an ellipse with radii rx and ry,
// rotated by rotation radians, to the current path.
func Ellipse(cx, cy, rx, ry, rotation float64) []Draw {
	e := curve.NewEllipse(curve.Pt(cx, cy), curve.Vec(rx, ry), rotation)
	return fromElements(e.PathElements(circleTolerance))
}

// fromElements converts a curve path into drawing commands.  Quadratic
// segments are raised to cubic ones.
func fromElements(els iter.Seq[curve.PathElement]) []Draw {
	var res []Draw
	var current vec.Vec2
	for el := range els {
		p0 := vec.Vec2{X: el.P0.X, Y: el.P0.Y}
		switch el.Kind {
		case curve.MoveToKind:
			res = append(res, Move{X: p0.X, Y: p0.Y})
			current = p0
		case curve.LineToKind:
			res = append(res, Line{X: p0.X, Y: p0.Y})
			current = p0
		case curve.QuadToKind:
			p1 := vec.Vec2{X: el.P1.X, Y: el.P1.Y}
			res = append(res, BezierCurve{
				CP1: current.Add(p0.Sub(current).Mul(2.0 / 3)),
				CP2: p1.Add(p0.Sub(p1).Mul(2.0 / 3)),
				End: p1,
			})
			current = p1
		case curve.CubicToKind:
			end := vec.Vec2{X: el.P2.X, Y: el.P2.Y}
			res = append(res, BezierCurve{
				CP1: p0,
				CP2: vec.Vec2{X: el.P1.X, Y: el.P1.Y},
				End: end,
			})
			current = end
		case curve.ClosePathKind:
			res = append(res, ClosePath{})
		}
	}
	if n := len(res); n > 0 {
		if _, closed := res[n-1].(ClosePath); !closed {
			res = append(res, ClosePath{})
		}
	}
	return res
}

// FromPath returns the commands which add p to the current path.
// Quadratic segments are raised to cubic ones.
func FromPath(p *path.Data) []Draw {
	var res []Draw
	var start, current vec.Vec2
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[i]
			start = current
			res = append(res, Move{X: current.X, Y: current.Y})
			i++
		case path.CmdLineTo:
			current = p.Coords[i]
			res = append(res, Line{X: current.X, Y: current.Y})
			i++
		case path.CmdQuadTo:
			c, end := p.Coords[i], p.Coords[i+1]
			res = append(res, BezierCurve{
				CP1: current.Add(c.Sub(current).Mul(2.0 / 3)),
				CP2: end.Add(c.Sub(end).Mul(2.0 / 3)),
				End: end,
			})
			current = end
			i += 2
		case path.CmdCubeTo:
			res = append(res, BezierCurve{CP1: p.Coords[i], CP2: p.Coords[i+1], End: p.Coords[i+2]})
			current = p.Coords[i+2]
			i += 3
		case path.CmdClose:
			res = append(res, ClosePath{})
			current = start
		}
	}
	return res
}
