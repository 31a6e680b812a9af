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

	"honnef.co/go/curve"
	"seehuhn.de/go/geom/vec"
)

// Basis evaluates the cubic Bernstein polynomial with weights w1, ..., w4
// at parameter t.
func Basis(t, w1, w2, w3, w4 float64) float64 {
	u := 1 - t
	return u*u*u*w1 + 3*u*u*t*w2 + 3*u*t*t*w3 + t*t*t*w4
}

// Derivative4 returns the weights of the quadratic Bézier which is the
// derivative of the cubic with weights w1, ..., w4.
func Derivative4(w1, w2, w3, w4 float64) (float64, float64, float64) {
	return 3 * (w2 - w1), 3 * (w3 - w2), 3 * (w4 - w3)
}

// QuadraticBasis evaluates the quadratic Bernstein polynomial with
// weights w1, w2, w3 at parameter t.
func QuadraticBasis(t, w1, w2, w3 float64) float64 {
	u := 1 - t
	return u*u*w1 + 2*u*t*w2 + t*t*w3
}

// DeCasteljau4 evaluates the cubic with weights w1, ..., w4 at t by
// repeated linear interpolation.  The result agrees with [Basis] up to
// rounding, but the evaluation is numerically more stable.
func DeCasteljau4(t, w1, w2, w3, w4 float64) float64 {
	lerp := func(a, b float64) float64 { return a + (b-a)*t }
	a, b, c := lerp(w1, w2), lerp(w2, w3), lerp(w3, w4)
	d, e := lerp(a, b), lerp(b, c)
	return lerp(d, e)
}

// Curve is a cubic Bézier curve.
type Curve struct {
	P0, P1, P2, P3 vec.Vec2
}

// LineToCurve returns the cubic which traces the straight line from a to
// b at constant speed.  The control points lie at 1/3 and 2/3 of the way.
func LineToCurve(a, b vec.Vec2) Curve {
	d := b.Sub(a)
	return Curve{
		P0: a,
		P1: a.Add(d.Mul(1.0 / 3)),
		P2: a.Add(d.Mul(2.0 / 3)),
		P3: b,
	}
}

// QuadToCurve raises the quadratic Bézier with control point q to a cubic.
func QuadToCurve(p0, q, p2 vec.Vec2) Curve {
	return Curve{
		P0: p0,
		P1: p0.Add(q.Sub(p0).Mul(2.0 / 3)),
		P2: p2.Add(q.Sub(p2).Mul(2.0 / 3)),
		P3: p2,
	}
}

// Eval returns the point at parameter t.
func (c Curve) Eval(t float64) vec.Vec2 {
	return vec.Vec2{
		X: Basis(t, c.P0.X, c.P1.X, c.P2.X, c.P3.X),
		Y: Basis(t, c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y),
	}
}

// Tangent returns the derivative of the curve at parameter t.
func (c Curve) Tangent(t float64) vec.Vec2 {
	x1, x2, x3 := Derivative4(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	y1, y2, y3 := Derivative4(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	return vec.Vec2{
		X: QuadraticBasis(t, x1, x2, x3),
		Y: QuadraticBasis(t, y1, y2, y3),
	}
}

// Split divides the curve at parameter t.
func (c Curve) Split(t float64) (Curve, Curve) {
	p01 := Lerp(c.P0, c.P1, t)
	p12 := Lerp(c.P1, c.P2, t)
	p23 := Lerp(c.P2, c.P3, t)
	p012 := Lerp(p01, p12, t)
	p123 := Lerp(p12, p23, t)
	m := Lerp(p012, p123, t)
	return Curve{c.P0, p01, p012, m}, Curve{m, p123, p23, c.P3}
}

// Section returns the part of the curve between the parameters t0 < t1.
func (c Curve) Section(t0, t1 float64) Curve {
	if t1 < 1 {
		c, _ = c.Split(t1)
	}
	if t0 > 0 && t1 > 0 {
		_, c = c.Split(t0 / t1)
	}
	return c
}

// Halves splits the curve at t=1/2.
func (c Curve) Halves() (Curve, Curve) {
	a, b := c.bez().Subdivide()
	return fromBez(a), fromBez(b)
}

func (c Curve) bez() curve.CubicBez {
	pt := func(p vec.Vec2) curve.Point { return curve.Pt(p.X, p.Y) }
	return curve.CubicBez{P0: pt(c.P0), P1: pt(c.P1), P2: pt(c.P2), P3: pt(c.P3)}
}

func fromBez(b curve.CubicBez) Curve {
	v := func(p curve.Point) vec.Vec2 { return vec.Vec2{X: p.X, Y: p.Y} }
	return Curve{v(b.P0), v(b.P1), v(b.P2), v(b.P3)}
}

// Reverse returns the same curve traversed in the opposite direction.
func (c Curve) Reverse() Curve {
	return Curve{c.P3, c.P2, c.P1, c.P0}
}

// Transform returns the image of the curve under t.
func (c Curve) Transform(t Transform) Curve {
	return Curve{t.Apply(c.P0), t.Apply(c.P1), t.Apply(c.P2), t.Apply(c.P3)}
}

// Bounds returns the bounding box of the control polygon, which contains
// the curve.
func (c Curve) Bounds() BoundingBox {
	return BoxOf(c.P0, c.P1, c.P2, c.P3)
}

// HullSize returns the largest distance from P0 to any other control
// point.  Curves with a hull size below [SmallTDistance] are treated as
// points.
func (c Curve) HullSize() float64 {
	return max(Distance(c.P0, c.P1), Distance(c.P0, c.P2), Distance(c.P0, c.P3))
}

// IsLine reports whether all control points lie within tol of the chord.
func (c Curve) IsLine(tol float64) bool {
	d := c.P3.Sub(c.P0)
	l := d.Length()
	if l < SmallDistance {
		return c.HullSize() < tol
	}
	dist := func(p vec.Vec2) float64 {
		q := p.Sub(c.P0)
		return math.Abs(q.X*d.Y-q.Y*d.X) / l
	}
	return dist(c.P1) <= tol && dist(c.P2) <= tol
}

// Flatten approximates the curve by straight line segments which deviate
// from the curve by at most tolerance, and calls emit for each segment.
//
// The number of segments is found using Wang's formula.
func (c Curve) Flatten(tolerance float64, emit func(from, to vec.Vec2)) {
	d1 := c.P0.Sub(c.P1.Mul(2)).Add(c.P2) // P0 - 2*P1 + P2
	d2 := c.P1.Sub(c.P2.Mul(2)).Add(c.P3) // P1 - 2*P2 + P3

	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		// n = ceil(sqrt(3 * m / (4 * ε)))
		nFloat := math.Sqrt(3 * m / (4 * tolerance))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := c.P0
	for i := 1; i <= n; i++ {
		pt := c.P3
		if i < n {
			pt = c.Eval(float64(i) / float64(n))
		}
		emit(prev, pt)
		prev = pt
	}
}
