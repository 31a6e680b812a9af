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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/subpath"
)

// FlattenedSubpathEdge is a closed subpath which has been replaced by a
// polygon.  Scanline queries are cheaper than for [BezierSubpathEdge],
// at the cost of an error of up to the flattening tolerance.
type FlattenedSubpathEdge struct {
	shape edgeplan.ShapeID
	lines lineSet
}

// NewFlattenedSubpathEdge creates an edge from a subpath in device space.
// Curves are flattened so that the polygon deviates from the curve by at
// most tolerance pixels.  Open subpaths are closed by a straight line.
func NewFlattenedSubpathEdge(shape edgeplan.ShapeID, sp subpath.Subpath, tolerance float64) *FlattenedSubpathEdge {
	if tolerance <= 0 {
		tolerance = DefaultFlatness
	}
	e := &FlattenedSubpathEdge{shape: shape, lines: newLineSet()}
	e.lines.box = geometry.BoxOf(sp.Start)
	for _, c := range sp.Curves {
		if c.IsLine(tolerance) {
			e.lines.add(c.P0, c.P3)
			continue
		}
		c.Flatten(tolerance, e.lines.add)
	}
	if end := sp.End(); !geometry.Coincident(end, sp.Start) {
		e.lines.add(end, sp.Start)
	}
	e.lines.finish()
	return e
}

// NewPolygonEdge creates an edge from a closed polygon in device space.
func NewPolygonEdge(shape edgeplan.ShapeID, polys ...[]vec.Vec2) *FlattenedSubpathEdge {
	e := &FlattenedSubpathEdge{shape: shape, lines: newLineSet()}
	for _, poly := range polys {
		e.lines.addPolygon(poly)
	}
	e.lines.finish()
	return e
}

// Shape implements [edgeplan.Edge].
func (e *FlattenedSubpathEdge) Shape() edgeplan.ShapeID { return e.shape }

// BoundingBox implements [edgeplan.Edge].
func (e *FlattenedSubpathEdge) BoundingBox() geometry.BoundingBox { return e.lines.box }

// PrepareToRender implements [edgeplan.Edge].  The segments are sorted
// by the constructor.
func (e *FlattenedSubpathEdge) PrepareToRender(yMin, yMax float64) {}

// Intercepts implements [edgeplan.Edge].
func (e *FlattenedSubpathEdge) Intercepts(y float64, buf []edgeplan.Intercept) []edgeplan.Intercept {
	return e.lines.intercepts(y, buf)
}
