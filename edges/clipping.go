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

	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
)

// ClippingEdge restricts another edge to the vertical strip x0 <= x < x1.
//
// Crossings of the inner edge left of the strip are replaced by synthetic
// crossings at x0 which produce the same winding number and toggle state
// at x0.  At x1 the state is brought back to "outside".  The clipped edge
// must be the only edge of its shape.
type ClippingEdge struct {
	inner  edgeplan.Edge
	x0, x1 float64
}

// NewClippingEdge wraps inner so that its shape is only inside for
// x0 <= x < x1.
func NewClippingEdge(inner edgeplan.Edge, x0, x1 float64) *ClippingEdge {
	return &ClippingEdge{inner: inner, x0: x0, x1: x1}
}

// Shape implements [edgeplan.Edge].
func (e *ClippingEdge) Shape() edgeplan.ShapeID { return e.inner.Shape() }

// BoundingBox implements [edgeplan.Edge].
func (e *ClippingEdge) BoundingBox() geometry.BoundingBox {
	b := e.inner.BoundingBox()
	b.Min.X = max(b.Min.X, e.x0)
	b.Max.X = min(b.Max.X, e.x1)
	if b.Min.X > b.Max.X {
		return geometry.EmptyBox
	}
	return b
}

// PrepareToRender implements [edgeplan.Edge].
func (e *ClippingEdge) PrepareToRender(yMin, yMax float64) {
	e.inner.PrepareToRender(yMin, yMax)
}

// Intercepts implements [edgeplan.Edge].
func (e *ClippingEdge) Intercepts(y float64, buf []edgeplan.Intercept) []edgeplan.Intercept {
	if e.x1 <= e.x0 {
		return buf
	}
	start := len(buf)
	buf = e.inner.Intercepts(y, buf)
	raw := slices.Clone(buf[start:])
	buf = buf[:start]
	slices.SortStableFunc(raw, func(a, b edgeplan.Intercept) int {
		return cmp.Compare(a.X, b.X)
	})

	var winding int
	var toggled bool
	i := 0
	for ; i < len(raw) && raw[i].X < e.x0; i++ {
		winding, toggled = step(winding, toggled, raw[i].Direction)
	}
	buf = appendState(buf, e.x0, winding, toggled)
	for ; i < len(raw) && raw[i].X < e.x1; i++ {
		buf = append(buf, raw[i])
		winding, toggled = step(winding, toggled, raw[i].Direction)
	}
	return appendState(buf, e.x1, -winding, toggled)
}

func step(winding int, toggled bool, d edgeplan.Direction) (int, bool) {
	if d == edgeplan.Toggle {
		return winding, !toggled
	}
	return winding + int(d), toggled
}

// appendState appends crossings at x which change the winding number by
// w and flip the toggle state if toggle is set.
func appendState(buf []edgeplan.Intercept, x float64, w int, toggle bool) []edgeplan.Intercept {
	d := edgeplan.Down
	if w < 0 {
		d, w = edgeplan.Up, -w
	}
	for range w {
		buf = append(buf, edgeplan.Intercept{X: x, Direction: d})
	}
	if toggle {
		buf = append(buf, edgeplan.Intercept{X: x, Direction: edgeplan.Toggle})
	}
	return buf
}
