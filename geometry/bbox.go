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

package geometry

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// BoundingBox is an axis-aligned rectangle given by its minimum and
// maximum corner.  A box with Min.X > Max.X or Min.Y > Max.Y is empty.
// The zero value is the box containing only the origin; use [EmptyBox] for
// the empty set.
type BoundingBox struct {
	Min, Max vec.Vec2
}

// EmptyBox is the bounding box of the empty set.  It is the neutral
// element for [BoundingBox.Union].
var EmptyBox = BoundingBox{
	Min: vec.Vec2{X: math.Inf(1), Y: math.Inf(1)},
	Max: vec.Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
}

// BoxOf returns the smallest box containing all given points.
func BoxOf(pts ...vec.Vec2) BoundingBox {
	b := EmptyBox
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// BoxFromRect converts a [rect.Rect] into a bounding box.
func BoxFromRect(r rect.Rect) BoundingBox {
	return BoundingBox{
		Min: vec.Vec2{X: r.LLx, Y: r.LLy},
		Max: vec.Vec2{X: r.URx, Y: r.URy},
	}
}

// Rect converts b into a [rect.Rect].  The result for an empty box is the
// zero rectangle.
func (b BoundingBox) Rect() rect.Rect {
	if b.IsEmpty() {
		return rect.Rect{}
	}
	return rect.Rect{LLx: b.Min.X, LLy: b.Min.Y, URx: b.Max.X, URy: b.Max.Y}
}

// IsEmpty reports whether b contains no points.
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Extend returns the smallest box containing b and p.
func (b BoundingBox) Extend(p vec.Vec2) BoundingBox {
	return BoundingBox{
		Min: vec.Vec2{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y)},
		Max: vec.Vec2{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Intersect returns the intersection of b and o.
func (b BoundingBox) Intersect(o BoundingBox) BoundingBox {
	r := BoundingBox{
		Min: vec.Vec2{X: max(b.Min.X, o.Min.X), Y: max(b.Min.Y, o.Min.Y)},
		Max: vec.Vec2{X: min(b.Max.X, o.Max.X), Y: min(b.Max.Y, o.Max.Y)},
	}
	if r.IsEmpty() {
		return EmptyBox
	}
	return r
}

// Contains reports whether p lies inside b (boundary included).
func (b BoundingBox) Contains(p vec.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// OverlapsY reports whether the horizontal line at height y meets b.
func (b BoundingBox) OverlapsY(y float64) bool {
	return y >= b.Min.Y && y <= b.Max.Y
}

// Width returns the horizontal extent of b, or 0 for an empty box.
func (b BoundingBox) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent of b, or 0 for an empty box.
func (b BoundingBox) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}
