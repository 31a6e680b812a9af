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

package edgeplan

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/pixel"
)

// bucketHeight is the height of the horizontal bands used to find the
// edges which meet a scanline.
const bucketHeight = 4.0

// maxBuckets limits the size of the band index for very tall plans.
const maxBuckets = 1 << 14

// Snapshot is a read-only view of an [EdgePlan].  It is safe for
// concurrent use.
type Snapshot struct {
	shapes map[ShapeID]*ShapeDescriptor
	order  []ShapeID
	edges  []Edge

	once      sync.Once
	info      []shapeInfo
	refs      []edgeRef
	bounds    geometry.BoundingBox
	bandTop   float64
	bandSize  float64
	bands     [][]int32
	hasToggle bool
}

type shapeInfo struct {
	id      ShapeID
	program pixel.Program
	rule    FillRule
	clip    []int // stacking positions of the clip shapes
	noClip  bool  // a clip shape is missing, the shape is never visible
}

type edgeRef struct {
	edge  Edge
	box   geometry.BoundingBox
	shape int32
}

// Empty returns a snapshot without any shapes.
func Empty() *Snapshot {
	return New().Snapshot()
}

// prepare builds the lookup tables.  It runs once per snapshot, on first
// use.
func (s *Snapshot) prepare() {
	s.once.Do(func() {
		index := make(map[ShapeID]int, len(s.order))
		s.info = make([]shapeInfo, len(s.order))
		for i, id := range s.order {
			index[id] = i
		}
		for i, id := range s.order {
			d := s.shapes[id]
			info := shapeInfo{id: id, program: d.Program, rule: d.Rule}
			for _, c := range d.Clip {
				z, ok := index[c]
				if !ok {
					info.noClip = true
					continue
				}
				info.clip = append(info.clip, z)
			}
			s.info[i] = info
		}

		s.bounds = geometry.EmptyBox
		s.refs = make([]edgeRef, 0, len(s.edges))
		for _, e := range s.edges {
			z, ok := index[e.Shape()]
			if !ok {
				continue
			}
			box := e.BoundingBox()
			if box.IsEmpty() {
				continue
			}
			s.refs = append(s.refs, edgeRef{edge: e, box: box, shape: int32(z)})
			s.bounds = s.bounds.Union(box)
		}
		if len(s.refs) == 0 {
			return
		}

		for _, r := range s.refs {
			r.edge.PrepareToRender(s.bounds.Min.Y, s.bounds.Max.Y)
		}

		s.bandTop = s.bounds.Min.Y
		s.bandSize = bucketHeight
		if h := s.bounds.Height(); h/s.bandSize >= maxBuckets {
			s.bandSize = h / (maxBuckets - 1)
		}
		n := int(s.bounds.Height()/s.bandSize) + 1
		s.bands = make([][]int32, n)
		for i, r := range s.refs {
			b0, b1 := s.band(r.box.Min.Y), s.band(r.box.Max.Y)
			for b := b0; b <= b1; b++ {
				s.bands[b] = append(s.bands[b], int32(i))
			}
		}
	})
}

func (s *Snapshot) band(y float64) int {
	b := int(math.Floor((y - s.bandTop) / s.bandSize))
	return max(0, min(b, len(s.bands)-1))
}

// NumShapes returns the number of shapes in the snapshot.
func (s *Snapshot) NumShapes() int {
	return len(s.order)
}

// NumEdges returns the number of edges in the snapshot.
func (s *Snapshot) NumEdges() int {
	return len(s.edges)
}

// Shape returns the id and descriptor of the shape at stacking position
// z, where 0 is the bottom-most shape.
func (s *Snapshot) Shape(z int) (ShapeID, ShapeDescriptor) {
	id := s.order[z]
	return id, *s.shapes[id]
}

// Program returns the pixel program of the shape at stacking position z.
func (s *Snapshot) Program(z int) pixel.Program {
	s.prepare()
	return s.info[z].program
}

// Bounds returns the bounding box of all edges.
func (s *Snapshot) Bounds() geometry.BoundingBox {
	s.prepare()
	return s.bounds
}

// Crossing is the crossing of a scanline with an edge of the shape at
// stacking position Shape.
type Crossing struct {
	X         float64
	Shape     int
	Direction Direction
}

// compareCrossings orders crossings from left to right.  Crossings at the
// same position are ordered with oriented crossings (non-zero shapes)
// before toggles (even-odd shapes), then by stacking order, then entering
// (Down) before leaving (Up).  The order within one position does not
// change the coverage, since all crossings at the same x are applied
// before the next span is painted.  It only makes the result of Crossings
// deterministic.
func compareCrossings(a, b Crossing) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	aToggle, bToggle := a.Direction == Toggle, b.Direction == Toggle
	if aToggle != bToggle {
		if aToggle {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.Shape, b.Shape); c != 0 {
		return c
	}
	return cmp.Compare(b.Direction, a.Direction)
}

// Scanner finds the crossings of a snapshot with horizontal lines.  Each
// goroutine needs its own scanner.
type Scanner struct {
	snap      *Snapshot
	intercept []Intercept
	crossings []Crossing
}

// NewScanner returns a scanner for the snapshot.
func (s *Snapshot) NewScanner() *Scanner {
	s.prepare()
	return &Scanner{snap: s}
}

// Crossings returns all crossings of the line at height y, sorted from
// left to right.  X positions are rounded to 1/256 pixel.  The result is
// valid until the next call.
func (sc *Scanner) Crossings(y float64) []Crossing {
	s := sc.snap
	sc.crossings = sc.crossings[:0]
	if len(s.refs) == 0 || !s.bounds.OverlapsY(y) {
		return sc.crossings
	}

	for _, i := range s.bands[s.band(y)] {
		r := &s.refs[i]
		if !r.box.OverlapsY(y) {
			continue
		}
		sc.intercept = r.edge.Intercepts(y, sc.intercept[:0])
		for _, ic := range sc.intercept {
			sc.crossings = append(sc.crossings, Crossing{
				X:         RoundX(ic.X),
				Shape:     int(r.shape),
				Direction: ic.Direction,
			})
		}
	}
	slices.SortStableFunc(sc.crossings, compareCrossings)
	return sc.crossings
}

// ShapesAt returns the painted shapes at the point (x, y), bottom first.
func (s *Snapshot) ShapesAt(x, y float64) []ShapeID {
	sc := s.NewScanner()
	cov := s.NewCoverage()
	for _, c := range sc.Crossings(y) {
		if c.X > x {
			break
		}
		cov.Apply(c)
	}
	var res []ShapeID
	for _, z := range cov.Visible() {
		res = append(res, s.info[z].id)
	}
	return res
}

// Coverage tracks which shapes are inside during a left to right sweep
// over the crossings of one scanline.
type Coverage struct {
	snap    *Snapshot
	winding []int32
	toggled []bool
	in      []bool
	touched []int
	inside  []int // stacking positions of shapes which are inside, sorted
	visible []int
	dirty   bool
}

// NewCoverage returns a coverage tracker for the snapshot with no shape
// inside.
func (s *Snapshot) NewCoverage() *Coverage {
	s.prepare()
	n := len(s.info)
	return &Coverage{
		snap:    s,
		winding: make([]int32, n),
		toggled: make([]bool, n),
		in:      make([]bool, n),
	}
}

// Reset moves the tracker back to the left end of a scanline.
func (c *Coverage) Reset() {
	for _, z := range c.touched {
		c.winding[z] = 0
		c.toggled[z] = false
		c.in[z] = false
	}
	c.touched = c.touched[:0]
	c.inside = c.inside[:0]
	c.visible = c.visible[:0]
	c.dirty = false
}

// Apply moves the tracker across one crossing.  It reports whether the
// set of inside shapes changed.
func (c *Coverage) Apply(cr Crossing) bool {
	z := cr.Shape
	if c.winding[z] == 0 && !c.toggled[z] && !c.in[z] {
		c.touched = append(c.touched, z)
	}
	if cr.Direction == Toggle {
		c.toggled[z] = !c.toggled[z]
	} else {
		c.winding[z] += int32(cr.Direction)
	}

	now := c.snap.info[z].rule.Inside(c.winding[z], c.toggled[z])
	if now == c.in[z] {
		return false
	}
	c.in[z] = now
	pos, _ := slices.BinarySearch(c.inside, z)
	if now {
		c.inside = slices.Insert(c.inside, pos, z)
	} else {
		c.inside = slices.Delete(c.inside, pos, pos+1)
	}
	c.dirty = true
	return true
}

// Inside reports whether the shape at stacking position z is inside.
func (c *Coverage) Inside(z int) bool {
	return c.in[z]
}

// Visible returns the stacking positions of the shapes which are painted
// at the current position: shapes with a program, which are inside, and
// which are inside all their clip shapes.  The result is sorted bottom
// first and valid until the next call to Apply or Reset.
func (c *Coverage) Visible() []int {
	if !c.dirty {
		return c.visible
	}
	c.visible = c.visible[:0]
outer:
	for _, z := range c.inside {
		info := &c.snap.info[z]
		if info.program == nil || info.noClip {
			continue
		}
		for _, k := range info.clip {
			if !c.in[k] {
				continue outer
			}
		}
		c.visible = append(c.visible, z)
	}
	c.dirty = false
	return c.visible
}
