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

// Package edgeplan holds the edge plan: an ordered set of edges labelled
// with shape ids, together with a table which assigns a pixel program and
// a fill rule to every shape.
//
// A scanline renderer asks the plan for all crossings of the edges with a
// horizontal line, sorted from left to right, and then sweeps over the
// crossings to find out which shapes cover which pixels.
package edgeplan

import (
	"math"
	"sync/atomic"

	"seehuhn.de/go/scanline/geometry"
)

// ShapeID identifies a shape in an edge plan.  Shape ids are unique within
// the process and are never reused.
type ShapeID uint64

var lastShapeID atomic.Uint64

// NewShapeID allocates a fresh shape id.
func NewShapeID() ShapeID {
	return ShapeID(lastShapeID.Add(1))
}

// Direction describes how an edge crosses a scanline.
type Direction int8

// These are the possible crossing directions.
const (
	// Down is a crossing where y increases along the edge.  It adds one to
	// the winding number of the shape.
	Down Direction = 1

	// Up is a crossing where y decreases along the edge.  It subtracts one
	// from the winding number of the shape.
	Up Direction = -1

	// Toggle is an unoriented crossing.  It flips the inside/outside state
	// of the shape, independently of the winding number.
	Toggle Direction = 0
)

// Intercept is a crossing of an edge with a scanline.
type Intercept struct {
	X         float64
	Direction Direction
}

// Edge is a piece of shape outline which can be intersected with
// horizontal lines.
//
// After PrepareToRender has been called, Intercepts must be safe for
// concurrent use.
type Edge interface {
	// Shape returns the shape the edge belongs to.
	Shape() ShapeID

	// BoundingBox returns a box which contains the edge.
	BoundingBox() geometry.BoundingBox

	// PrepareToRender precomputes data needed for scanlines in the given
	// y-range.  It may be called several times, also concurrently, and
	// must be cheap after the first call.
	PrepareToRender(yMin, yMax float64)

	// Intercepts appends the crossings of the edge with the line at
	// height y to buf and returns the extended slice.
	Intercepts(y float64, buf []Intercept) []Intercept
}

// interceptPrecision is the number of subdivisions of a pixel to which
// crossing positions are rounded before sorting.
const interceptPrecision = 256

// RoundX rounds an intercept position to 1/256 of a pixel.
func RoundX(x float64) float64 {
	return math.Round(x*interceptPrecision) / interceptPrecision
}

// FillRule selects how winding numbers are mapped to inside/outside.
type FillRule uint8

// These are the supported fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "FillRule(?)"
	}
}

// Inside reports whether a point with the given winding number and toggle
// parity lies inside a shape using rule r.
func (r FillRule) Inside(winding int32, toggled bool) bool {
	var in bool
	if r == EvenOdd {
		in = winding&1 != 0
	} else {
		in = winding != 0
	}
	return in != toggled
}
