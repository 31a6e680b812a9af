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
	"errors"
	"maps"
	"slices"

	"seehuhn.de/go/scanline/pixel"
)

// ErrUnknownShape is returned when an edge refers to a shape which has not
// been added to the plan.
var ErrUnknownShape = errors.New("edgeplan: unknown shape")

// ShapeDescriptor describes how a shape is painted.
type ShapeDescriptor struct {
	// Program computes the colour of the pixels covered by the shape.  A
	// shape without a program is never painted.  Such shapes are used as
	// clip regions.
	Program pixel.Program

	// Rule is the fill rule for the shape's edges.
	Rule FillRule

	// Clip lists shapes which restrict the visible area of this shape.
	// The shape is only painted where it is inside all of these shapes.
	Clip []ShapeID
}

// EdgePlan is the mutable edge plan owned by a scene.
//
// The plan keeps the shapes in insertion order.  Shapes added later are
// painted on top of shapes added earlier.  Snapshots share memory with the
// plan; the plan copies its tables before modifying anything a snapshot
// can see.
//
// An EdgePlan is not safe for concurrent use.
type EdgePlan struct {
	shapes map[ShapeID]*ShapeDescriptor
	order  []ShapeID
	edges  []Edge

	// shared is set when a snapshot refers to the current tables.
	shared bool
}

// New returns an empty edge plan.
func New() *EdgePlan {
	return &EdgePlan{
		shapes: make(map[ShapeID]*ShapeDescriptor),
	}
}

// unshare makes sure that the tables are not visible to any snapshot.
func (p *EdgePlan) unshare() {
	if !p.shared {
		return
	}
	p.shapes = maps.Clone(p.shapes)
	p.order = slices.Clone(p.order)
	p.edges = slices.Clone(p.edges)
	p.shared = false
}

// AddShape adds a new shape on top of all existing shapes.  If the shape
// exists already, its descriptor is replaced and its position in the
// stacking order is kept.
func (p *EdgePlan) AddShape(id ShapeID, desc ShapeDescriptor) {
	p.unshare()
	if p.shapes == nil {
		p.shapes = make(map[ShapeID]*ShapeDescriptor)
	}
	if _, exists := p.shapes[id]; !exists {
		p.order = append(p.order, id)
	}
	desc.Clip = slices.Clone(desc.Clip)
	p.shapes[id] = &desc
}

// SetProgram replaces the program of an existing shape.
func (p *EdgePlan) SetProgram(id ShapeID, prog pixel.Program) error {
	old, ok := p.shapes[id]
	if !ok {
		return ErrUnknownShape
	}
	p.unshare()
	desc := *old
	desc.Program = prog
	p.shapes[id] = &desc
	return nil
}

// AddEdge adds an edge to the plan.  The shape of the edge must have been
// added before.
func (p *EdgePlan) AddEdge(e Edge) error {
	if _, ok := p.shapes[e.Shape()]; !ok {
		return ErrUnknownShape
	}
	// Appending never changes the part of the slice a snapshot can see,
	// because snapshots are cut to their length.
	p.edges = append(p.edges, e)
	return nil
}

// RemoveShape removes a shape together with all its edges.
func (p *EdgePlan) RemoveShape(id ShapeID) {
	if _, ok := p.shapes[id]; !ok {
		return
	}
	p.unshare()
	delete(p.shapes, id)
	p.order = slices.DeleteFunc(p.order, func(s ShapeID) bool { return s == id })
	p.edges = slices.DeleteFunc(p.edges, func(e Edge) bool { return e.Shape() == id })
}

// Clear removes all shapes and edges.
func (p *EdgePlan) Clear() {
	p.shapes = make(map[ShapeID]*ShapeDescriptor)
	p.order = nil
	p.edges = nil
	p.shared = false
}

// Shapes returns the shape ids in stacking order, bottom first.
func (p *EdgePlan) Shapes() []ShapeID {
	return slices.Clone(p.order)
}

// Descriptor returns the descriptor of a shape.
func (p *EdgePlan) Descriptor(id ShapeID) (ShapeDescriptor, bool) {
	d, ok := p.shapes[id]
	if !ok {
		return ShapeDescriptor{}, false
	}
	return *d, true
}

// NumShapes returns the number of shapes in the plan.
func (p *EdgePlan) NumShapes() int {
	return len(p.order)
}

// NumEdges returns the number of edges in the plan.
func (p *EdgePlan) NumEdges() int {
	return len(p.edges)
}

// Append copies all shapes and edges of s on top of the plan.
func (p *EdgePlan) Append(s *Snapshot) {
	for _, id := range s.order {
		p.AddShape(id, *s.shapes[id])
	}
	for _, e := range s.edges {
		p.edges = append(p.edges, e)
	}
}

// Snapshot returns a read-only view of the current plan.  Later changes to
// the plan do not affect the snapshot.
func (p *EdgePlan) Snapshot() *Snapshot {
	p.shared = true
	return &Snapshot{
		shapes: p.shapes,
		order:  p.order[:len(p.order):len(p.order)],
		edges:  p.edges[:len(p.edges):len(p.edges)],
	}
}
