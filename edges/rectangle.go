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

package edges

import (
	"seehuhn.de/go/scanline/contour"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
)

// RectangleEdge is an axis-aligned rectangle in device space.
type RectangleEdge struct {
	shape edgeplan.ShapeID
	box   geometry.BoundingBox
}

// NewRectangleEdge returns the edge of the rectangle box.
func NewRectangleEdge(shape edgeplan.ShapeID, box geometry.BoundingBox) *RectangleEdge {
	return &RectangleEdge{shape: shape, box: box}
}

// Shape implements [edgeplan.Edge].
func (e *RectangleEdge) Shape() edgeplan.ShapeID { return e.shape }

// BoundingBox implements [edgeplan.Edge].
func (e *RectangleEdge) BoundingBox() geometry.BoundingBox { return e.box }

// PrepareToRender implements [edgeplan.Edge].
func (e *RectangleEdge) PrepareToRender(yMin, yMax float64) {}

// Intercepts implements [edgeplan.Edge].  The rectangle covers the
// half-open range Min.Y <= y < Max.Y.
func (e *RectangleEdge) Intercepts(y float64, buf []edgeplan.Intercept) []edgeplan.Intercept {
	if y < e.box.Min.Y || y >= e.box.Max.Y || e.box.Width() <= 0 {
		return buf
	}
	return append(buf,
		edgeplan.Intercept{X: e.box.Min.X, Direction: edgeplan.Up},
		edgeplan.Intercept{X: e.box.Max.X, Direction: edgeplan.Down},
	)
}

// ContourEdge is the contour line of a sampled scalar field, for example a
// coverage mask or a distance field.
type ContourEdge struct {
	shape     edgeplan.ShapeID
	field     *contour.Field
	threshold float64
}

// NewContourEdge returns the edge of the region where field is at least
// threshold.  If threshold is not positive, 0.5 is used.
func NewContourEdge(shape edgeplan.ShapeID, field *contour.Field, threshold float64) *ContourEdge {
	if threshold <= 0 {
		threshold = 0.5
	}
	return &ContourEdge{shape: shape, field: field, threshold: threshold}
}

// Shape implements [edgeplan.Edge].
func (e *ContourEdge) Shape() edgeplan.ShapeID { return e.shape }

// BoundingBox implements [edgeplan.Edge].
func (e *ContourEdge) BoundingBox() geometry.BoundingBox { return e.field.Bounds() }

// PrepareToRender implements [edgeplan.Edge].
func (e *ContourEdge) PrepareToRender(yMin, yMax float64) {}

// Intercepts implements [edgeplan.Edge].
func (e *ContourEdge) Intercepts(y float64, buf []edgeplan.Intercept) []edgeplan.Intercept {
	return e.field.Crossings(y, e.threshold, buf)
}
