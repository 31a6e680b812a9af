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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Transform is a 2D affine transformation.
//
// The six coefficients [a b c d e f] describe the 3×3 matrix
//
//	a b 0
//	c d 0
//	e f 1
//
// which acts on row vectors: a point (x, y) is mapped to
// (a*x + c*y + e, b*x + d*y + f).  This is the same layout as
// [matrix.Matrix].
type Transform matrix.Matrix

// Identity is the identity transformation.
var Identity = Transform(matrix.Identity)

// Translate returns a translation by (dx, dy).
func Translate(dx, dy float64) Transform {
	return Transform{1, 0, 0, 1, dx, dy}
}

// Scale returns a scaling by sx horizontally and sy vertically.
func Scale(sx, sy float64) Transform {
	return Transform(matrix.Scale(sx, sy))
}

// Rotate returns a rotation by theta radians.  With the y-axis pointing
// down, as in device space, positive angles turn clockwise on screen.
func Rotate(theta float64) Transform {
	s, c := math.Sincos(theta)
	return Transform{c, s, -s, c, 0, 0}
}

// RotateAbout returns a rotation by theta radians around the point p.
func RotateAbout(theta float64, p vec.Vec2) Transform {
	return Translate(-p.X, -p.Y).Then(Rotate(theta)).Then(Translate(p.X, p.Y))
}

// Matrix returns the transformation as a [matrix.Matrix].
func (t Transform) Matrix() matrix.Matrix {
	return matrix.Matrix(t)
}

// Rows returns the full 3×3 matrix in row-major order.
func (t Transform) Rows() [3][3]float64 {
	return [3][3]float64{
		{t[0], t[1], 0},
		{t[2], t[3], 0},
		{t[4], t[5], 1},
	}
}

// Then returns the transformation which first applies t and then o.
func (t Transform) Then(o Transform) Transform {
	return Transform{
		o[0]*t[0] + o[2]*t[1],
		o[1]*t[0] + o[3]*t[1],
		o[0]*t[2] + o[2]*t[3],
		o[1]*t[2] + o[3]*t[3],
		o[0]*t[4] + o[2]*t[5] + o[4],
		o[1]*t[4] + o[3]*t[5] + o[5],
	}
}

// Determinant returns the determinant of the linear part of t.
func (t Transform) Determinant() float64 {
	return t[0]*t[3] - t[1]*t[2]
}

// Invert returns the inverse transformation.  If t is singular, the
// identity is returned together with ok=false.
func (t Transform) Invert() (inv Transform, ok bool) {
	det := t.Determinant()
	if math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return Identity, false
	}
	a := t[3] / det
	b := -t[1] / det
	c := -t[2] / det
	d := t[0] / det
	return Transform{
		a, b, c, d,
		-(a*t[4] + c*t[5]),
		-(b*t[4] + d*t[5]),
	}, true
}

// Apply maps the point p.
func (t Transform) Apply(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: t[0]*p.X + t[2]*p.Y + t[4],
		Y: t[1]*p.X + t[3]*p.Y + t[5],
	}
}

// ApplyVector maps the direction v, ignoring the translation part.
func (t Transform) ApplyVector(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: t[0]*v.X + t[2]*v.Y,
		Y: t[1]*v.X + t[3]*v.Y,
	}
}

// ApplyBox returns the bounding box of the image of b.
func (t Transform) ApplyBox(b BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return b
	}
	return BoxOf(
		t.Apply(b.Min),
		t.Apply(vec.Vec2{X: b.Max.X, Y: b.Min.Y}),
		t.Apply(b.Max),
		t.Apply(vec.Vec2{X: b.Min.X, Y: b.Max.Y}),
	)
}

// IsTranslation reports whether the linear part of t is the identity.
func (t Transform) IsTranslation() bool {
	return t[0] == 1 && t[1] == 0 && t[2] == 0 && t[3] == 1
}

// IsAxisAligned reports whether t maps axis-aligned rectangles to
// axis-aligned rectangles.
func (t Transform) IsAxisAligned() bool {
	return t[1] == 0 && t[2] == 0 || t[0] == 0 && t[3] == 0
}

// ScaleFactor returns the largest factor by which t stretches a unit vector.
// It is used to convert tolerances between user space and device space.
func (t Transform) ScaleFactor() float64 {
	return max(
		t.ApplyVector(vec.Vec2{X: 1}).Length(),
		t.ApplyVector(vec.Vec2{Y: 1}).Length(),
	)
}

// Equal reports whether all coefficients of t and o differ by at most eps.
func (t Transform) Equal(o Transform, eps float64) bool {
	for i := range t {
		if math.Abs(t[i]-o[i]) > eps {
			return false
		}
	}
	return true
}
