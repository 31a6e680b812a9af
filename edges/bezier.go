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
	"cmp"
	"slices"
	"sort"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/subpath"
)

// BezierSubpathEdge is a closed subpath whose crossings with a scanline
// are found by solving the curve equations directly.
type BezierSubpathEdge struct {
	shape     edgeplan.ShapeID
	curves    []geometry.Curve
	pieces    []monotonePiece
	maxHeight float64
	box       geometry.BoundingBox
}

// monotonePiece is a section of a curve on which y is strictly monotone.
type monotonePiece struct {
	curve    int
	t0, t1   float64
	yLo, yHi float64
	dir      edgeplan.Direction
}

// NewBezierSubpathEdge creates an edge from a subpath in device space.
// Open subpaths are closed by a straight line, as is usual for filling.
func NewBezierSubpathEdge(shape edgeplan.ShapeID, sp subpath.Subpath) *BezierSubpathEdge {
	e := &BezierSubpathEdge{shape: shape, box: geometry.BoxOf(sp.Start)}
	for _, c := range sp.Curves {
		if c.HullSize() < geometry.SmallTDistance {
			continue
		}
		e.curves = append(e.curves, c)
	}
	if end := sp.End(); !sp.Closed && !geometry.Coincident(end, sp.Start) {
		e.curves = append(e.curves, geometry.LineToCurve(end, sp.Start))
	}

	for i, c := range e.curves {
		e.box = e.box.Union(c.Bounds())

		ts := append([]float64{0}, c.YExtrema()...)
		ts = append(ts, 1)
		for j := 1; j < len(ts); j++ {
			t0, t1 := ts[j-1], ts[j]
			y0, y1 := c.Eval(t0).Y, c.Eval(t1).Y
			if y1-y0 > -horizontalEdgeThreshold && y1-y0 < horizontalEdgeThreshold {
				continue
			}
			p := monotonePiece{curve: i, t0: t0, t1: t1, yLo: y0, yHi: y1, dir: edgeplan.Down}
			if y1 < y0 {
				p.yLo, p.yHi = y1, y0
				p.dir = edgeplan.Up
			}
			e.pieces = append(e.pieces, p)
			e.maxHeight = max(e.maxHeight, p.yHi-p.yLo)
		}
	}
	slices.SortFunc(e.pieces, func(a, b monotonePiece) int {
		return cmp.Compare(a.yLo, b.yLo)
	})
	return e
}

// Shape implements [edgeplan.Edge].
func (e *BezierSubpathEdge) Shape() edgeplan.ShapeID { return e.shape }

// BoundingBox implements [edgeplan.Edge].
func (e *BezierSubpathEdge) BoundingBox() geometry.BoundingBox { return e.box }

// PrepareToRender implements [edgeplan.Edge].  All precomputation happens
// in the constructor.
func (e *BezierSubpathEdge) PrepareToRender(yMin, yMax float64) {}

// Intercepts implements [edgeplan.Edge].
//
// Each monotone piece covers the half-open range yLo <= y < yHi.  This
// counts a vertex where the path passes through once, and a vertex at a
// local extremum either twice or not at all.
func (e *BezierSubpathEdge) Intercepts(y float64, buf []edgeplan.Intercept) []edgeplan.Intercept {
	end := sort.Search(len(e.pieces), func(i int) bool { return e.pieces[i].yLo > y })
	start := sort.Search(end, func(i int) bool { return e.pieces[i].yLo >= y-e.maxHeight })
	for i := start; i < end; i++ {
		p := &e.pieces[i]
		if y >= p.yHi {
			continue
		}
		c := &e.curves[p.curve]
		t, ok := c.SolveY(y, p.t0, p.t1)
		if !ok {
			scanline.Logger().Warn("edges: curve root finding did not converge",
				"shape", e.shape, "y", y)
			continue
		}
		buf = append(buf, edgeplan.Intercept{X: c.Eval(t).X, Direction: p.dir})
	}
	return buf
}
