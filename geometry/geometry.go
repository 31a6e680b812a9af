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

// Package geometry provides the geometric primitives used by the rest of
// the module: points, affine transformations, bounding boxes and cubic
// Bézier curves.
//
// Points are represented as [vec.Vec2] values throughout.
package geometry

import "seehuhn.de/go/geom/vec"

// Numerical tolerances shared by the path model and the edge code.
const (
	// SmallDistance is the distance below which two points are
	// considered to be coincident.
	SmallDistance = 0.001

	// CloseDistance is the precision to which path coordinates are
	// rounded when comparing paths.
	CloseDistance = 0.01

	// SmallTDistance is the distance below which two curve parameters
	// are considered to be equal.
	SmallTDistance = 1e-6
)

// Distance returns the Euclidean distance between p and q.
func Distance(p, q vec.Vec2) float64 {
	return p.Sub(q).Length()
}

// Coincident reports whether p and q are closer than [SmallDistance].
func Coincident(p, q vec.Vec2) bool {
	return Distance(p, q) < SmallDistance
}

// Lerp returns the point at parameter t on the line from p to q.
func Lerp(p, q vec.Vec2, t float64) vec.Vec2 {
	return p.Add(q.Sub(p).Mul(t))
}
