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

package scene

import (
	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/pixel"
)

// layer holds the shapes of a layer or a sprite.
type layer struct {
	id   pixel.LayerID
	plan *edgeplan.EdgePlan

	blend action.BlendMode
	alpha float64

	// restorePoint is the number of shapes remembered by Store, or -1.
	restorePoint int

	// clipShapes maps the clip regions used on this layer to their
	// invisible shapes.
	clipShapes map[*clipRegion]edgeplan.ShapeID

	// modCount counts the changes to the layer.  Dynamic textures use it
	// to detect changes to their sprite.
	modCount uint64

	// uses counts the texture references of the shapes.
	uses *textureUses

	// record maps canvas coordinates to the coordinates of the sprite's
	// edges.  It is the canvas transformation in effect when the sprite
	// was last selected.
	record geometry.Transform
}

func newLayer(id pixel.LayerID, uses *textureUses) *layer {
	return &layer{
		id:           id,
		uses:         uses,
		plan:         edgeplan.New(),
		alpha:        1,
		restorePoint: -1,
		clipShapes:   make(map[*clipRegion]edgeplan.ShapeID),
		record:       geometry.Identity,
	}
}

// addShape adds a new shape with the given edges.
func (l *layer) addShape(desc edgeplan.ShapeDescriptor, edgesFor func(edgeplan.ShapeID) []edgeplan.Edge) edgeplan.ShapeID {
	id := edgeplan.NewShapeID()
	l.plan.AddShape(id, desc)
	l.uses.add(desc)
	for _, e := range edgesFor(id) {
		// The shape was added just before, so AddEdge cannot fail.
		_ = l.plan.AddEdge(e)
	}
	l.modCount++
	return id
}

// clear removes all shapes.  Blend mode and alpha are kept.
func (l *layer) clear() {
	for _, id := range l.plan.Shapes() {
		if desc, ok := l.plan.Descriptor(id); ok {
			l.uses.remove(desc)
		}
	}
	l.plan.Clear()
	l.restorePoint = -1
	clear(l.clipShapes)
	l.modCount++
}

// store remembers the current content.
func (l *layer) store() {
	l.restorePoint = l.plan.NumShapes()
}

// restore removes all shapes added since the last store, except for the
// clip shapes of regions which are still in use.
func (l *layer) restore(active []*clipRegion) {
	if l.restorePoint < 0 {
		return
	}
	keep := make(map[edgeplan.ShapeID]bool, len(active))
	for _, r := range active {
		if id, ok := l.clipShapes[r]; ok {
			keep[id] = true
		}
	}
	shapes := l.plan.Shapes()
	for _, id := range shapes[min(l.restorePoint, len(shapes)):] {
		if keep[id] {
			continue
		}
		l.removeShape(id)
	}
	for r, id := range l.clipShapes {
		if _, ok := l.plan.Descriptor(id); !ok {
			delete(l.clipShapes, r)
		}
	}
	l.modCount++
}

// removeShape removes a shape and drops its texture references.
func (l *layer) removeShape(id edgeplan.ShapeID) {
	desc, ok := l.plan.Descriptor(id)
	if !ok {
		return
	}
	l.plan.RemoveShape(id)
	l.uses.remove(desc)
}
