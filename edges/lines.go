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

// Package edges implements the edge types stored in an edge plan.
//
// All edges work in device space: coordinates are pixels, with y growing
// downwards.  The constructors take subpaths which have already been
// transformed to device space, except for stroke edges, which need the
// user space geometry to get the line width right.
package edges

import (
	"cmp"
	"slices"
	"sort"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
)

// Numerical tolerances for the edge code.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for a line
	// segment to produce crossings.
	horizontalEdgeThreshold = 1e-10

	// DefaultFlatness is the default tolerance, in device pixels, for
	// replacing curves by line segments.
	DefaultFlatness = 0.25
)

// line is a non-horizontal line segment, stored with y0 < y1.
type line struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
	dir    edgeplan.Direction
}

// lineSet is a set of line segments sorted by their upper end.  It is the
// common core of the polygon based edge types.
type lineSet struct {
	lines     []line
	maxHeight float64
	box       geometry.BoundingBox
}

func newLineSet() lineSet {
	return lineSet{box: geometry.EmptyBox}
}

// add adds the segment from a to b.  Horizontal segments never cross a
// scanline and are dropped.
func (s *lineSet) add(a, b vec.Vec2) {
	s.box = s.box.Extend(a).Extend(b)

	dy := b.Y - a.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	dir := edgeplan.Down
	if dy < 0 {
		a, b = b, a
		dir = edgeplan.Up
	}
	s.lines = append(s.lines, line{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / (b.Y - a.Y),
		dir:  dir,
	})
}

// addPolygon adds the edges of a closed polygon.
func (s *lineSet) addPolygon(poly []vec.Vec2) {
	if len(poly) < 2 {
		return
	}
	for j := 1; j < len(poly); j++ {
		s.add(poly[j-1], poly[j])
	}
	s.add(poly[len(poly)-1], poly[0])
}

// finish sorts the segments.  It must be called before intercepts.
func (s *lineSet) finish() {
	slices.SortFunc(s.lines, func(a, b line) int {
		return cmp.Compare(a.y0, b.y0)
	})
	s.maxHeight = 0
	for _, l := range s.lines {
		s.maxHeight = max(s.maxHeight, l.y1-l.y0)
	}
}

// intercepts appends the crossings at height y.  A segment covers the
// half-open range y0 <= y < y1, so that a vertex shared by two segments
// is counted exactly once when the path passes through it, and zero or
// two times at a local extremum.
func (s *lineSet) intercepts(y float64, buf []edgeplan.Intercept) []edgeplan.Intercept {
	end := sort.Search(len(s.lines), func(i int) bool { return s.lines[i].y0 > y })
	start := sort.Search(end, func(i int) bool { return s.lines[i].y0 >= y-s.maxHeight })
	for i := start; i < end; i++ {
		l := &s.lines[i]
		if y >= l.y1 {
			continue
		}
		buf = append(buf, edgeplan.Intercept{
			X:         l.x0 + l.dxdy*(y-l.y0),
			Direction: l.dir,
		})
	}
	return buf
}
