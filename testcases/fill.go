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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/scanline/canvas"
)

var fillCases = []TestCase{
	{
		Name:  "triangle_nonzero",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, triangle(10, 50, 32, 10, 54, 50)),
	},
	{
		Name:  "star_nonzero",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, fivePointStar(32, 32, 25)),
	},
	{
		Name:  "star_evenodd",
		Width: 64, Height: 64,
		Draw: fill(canvas.EvenOdd, fivePointStar(32, 32, 25)),
	},
	{
		Name:  "rectangle",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, rectangle(10, 10, 44, 44)),
	},
	{
		Name:  "rectangle_subpixel",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, rectangle(10.25, 10.5, 43.3, 20.9)),
	},
	{
		Name:  "ring_nonzero",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, ring(32, 32, 26, 14, false)),
	},
	{
		Name:  "ring_reversed_nonzero",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, ring(32, 32, 26, 14, true)),
	},
	{
		Name:  "ring_evenodd",
		Width: 64, Height: 64,
		Draw: fill(canvas.EvenOdd, ring(32, 32, 26, 14, false)),
	},
	{
		// Filling closes the subpath implicitly.
		Name:  "open_subpath",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, (&path.Data{}).
			MoveTo(pt(10, 10)).LineTo(pt(54, 10)).LineTo(pt(32, 54))),
	},
	{
		Name:  "many_slivers",
		Width: 128, Height: 64,
		Draw: fill(canvas.NonZero, slivers(40, 4, 124, 60)),
	},
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds a self-intersecting five-pointed star.
func fivePointStar(cx, cy, r float64) *path.Data {
	p := &path.Data{}
	for k := range 5 {
		phi := (-90 + 144*float64(k)) * math.Pi / 180
		q := pt(cx+r*math.Cos(phi), cy+r*math.Sin(phi))
		if k == 0 {
			p = p.MoveTo(q)
		} else {
			p = p.LineTo(q)
		}
	}
	return p.Close()
}

// rectangle builds a closed rectangle.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// ring builds two concentric squares.  If reversed is set, the inner
// square runs in the opposite direction and is a hole for both fill
// rules.
func ring(cx, cy, outer, inner float64, reversed bool) *path.Data {
	p := rectangle(cx-outer, cy-outer, cx+outer, cy+outer)
	if reversed {
		return p.MoveTo(pt(cx-inner, cy-inner)).
			LineTo(pt(cx-inner, cy+inner)).
			LineTo(pt(cx+inner, cy+inner)).
			LineTo(pt(cx+inner, cy-inner)).
			Close()
	}
	return p.MoveTo(pt(cx-inner, cy-inner)).
		LineTo(pt(cx+inner, cy-inner)).
		LineTo(pt(cx+inner, cy+inner)).
		LineTo(pt(cx-inner, cy+inner)).
		Close()
}

// slivers builds n thin triangles fanning out from (x0, 32).
func slivers(n int, x0, x1, y1 float64) *path.Data {
	p := &path.Data{}
	for i := range n {
		y := 4 + float64(i)*(y1-4)/float64(n)
		p = p.MoveTo(pt(x0, 32)).
			LineTo(pt(x1, y)).
			LineTo(pt(x1, y+0.6)).
			Close()
	}
	return p
}
