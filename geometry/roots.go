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
	"slices"

	"honnef.co/go/curve"
)

// maxRootIterations bounds the number of bisection steps used to polish
// a root.  After this many halvings of [0,1] the bracket is far below
// [SmallTDistance].
const maxRootIterations = 64

// YExtrema returns the parameters in the open interval (0,1) at which the
// y-coordinate of the curve has a local extremum, in increasing order.
// Splitting the curve at these parameters gives y-monotone pieces.
func (c Curve) YExtrema() []float64 {
	d1, d2, d3 := Derivative4(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	// power basis of the derivative: d1 + 2(d2-d1) t + (d1-2d2+d3) t²
	roots, n := curve.SolveQuadratic(d1, 2*(d2-d1), d1-2*d2+d3)

	var res []float64
	for _, t := range roots[:n] {
		if t > SmallTDistance && t < 1-SmallTDistance {
			res = append(res, t)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// SolveY finds the parameter t in [t0, t1] where the curve reaches height
// y.  The curve must be y-monotone on [t0, t1] and y must lie between the
// heights at t0 and t1.  The result ok=false indicates that no root could
// be found, which only happens for non-finite input.
func (c Curve) SolveY(y, t0, t1 float64) (t float64, ok bool) {
	w0, w1, w2, w3 := c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y
	f := func(t float64) float64 { return DeCasteljau4(t, w0, w1, w2, w3) - y }

	// Try the closed form first.
	a := -w0 + 3*w1 - 3*w2 + w3
	b := 3*w0 - 6*w1 + 3*w2
	cc := -3*w0 + 3*w1
	roots, n := curve.SolveCubic(w0-y, cc, b, a)
	for _, r := range roots[:n] {
		if r >= t0-SmallTDistance && r <= t1+SmallTDistance && math.Abs(f(r)) < SmallDistance*SmallDistance {
			return min(max(r, t0), t1), true
		}
	}

	// Fall back to bisection on the monotone bracket.
	lo, hi := t0, t1
	flo := f(lo)
	if math.IsNaN(flo) || math.IsNaN(f(hi)) {
		return 0, false
	}
	for range maxRootIterations {
		mid := (lo + hi) / 2
		fm := f(mid)
		if fm == 0 || hi-lo < SmallTDistance*SmallTDistance {
			return mid, true
		}
		if (fm < 0) == (flo < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	t = (lo + hi) / 2
	return t, math.Abs(f(t)) < SmallDistance
}
