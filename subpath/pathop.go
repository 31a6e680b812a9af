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

// Package subpath turns path descriptions into lists of Bézier subpaths.
//
// Paths are described by a stream of [PathOp] values.  Each [Move] starts
// a new subpath, [Line] and [BezierCurve] extend the current subpath and
// [ClosePath] closes it.  Straight lines are stored as cubic curves, so
// that all later stages only need to deal with one kind of segment.
package subpath

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// PathOp is one element of a path description.  The concrete types are
// [NewPath], [Move], [Line], [BezierCurve] and [ClosePath].
type PathOp interface {
	isPathOp()
}

// NewPath discards all subpaths built so far.
type NewPath struct{}

// Move starts a new subpath at (X, Y).
type Move struct {
	X, Y float64
}

// Line adds a straight line from the current point to (X, Y).
type Line struct {
	X, Y float64
}

// BezierCurve adds a cubic Bézier curve from the current point to End.
type BezierCurve struct {
	CP1, CP2, End vec.Vec2
}

// ClosePath connects the current point to the start of the subpath.
type ClosePath struct{}

func (NewPath) isPathOp()     {}
func (Move) isPathOp()        {}
func (Line) isPathOp()        {}
func (BezierCurve) isPathOp() {}
func (ClosePath) isPathOp()   {}

func (NewPath) String() string   { return "NewPath" }
func (m Move) String() string    { return fmt.Sprintf("Move(%g, %g)", m.X, m.Y) }
func (l Line) String() string    { return fmt.Sprintf("Line(%g, %g)", l.X, l.Y) }
func (ClosePath) String() string { return "ClosePath" }
func (c BezierCurve) String() string {
	return fmt.Sprintf("BezierCurve((%g, %g), (%g, %g), (%g, %g))",
		c.CP1.X, c.CP1.Y, c.CP2.X, c.CP2.Y, c.End.X, c.End.Y)
}
