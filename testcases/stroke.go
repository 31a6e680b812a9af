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

var strokeCases = []TestCase{
	{
		Name:  "line_butt",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(8, canvas.CapButt, canvas.JoinMiter), horizontalLine(10, 32, 54)),
	},
	{
		Name:  "line_round",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(8, canvas.CapRound, canvas.JoinMiter), horizontalLine(10, 32, 54)),
	},
	{
		Name:  "line_square",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(8, canvas.CapSquare, canvas.JoinMiter), horizontalLine(10, 32, 54)),
	},
	{
		Name:  "corner_miter",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(6, canvas.CapButt, canvas.JoinMiter), corner(10, 50, 32, 14, 54, 50)),
	},
	{
		Name:  "corner_round",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(6, canvas.CapButt, canvas.JoinRound), corner(10, 50, 32, 14, 54, 50)),
	},
	{
		Name:  "corner_bevel",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(6, canvas.CapButt, canvas.JoinBevel), corner(10, 50, 32, 14, 54, 50)),
	},
	{
		// The miter of a sharp corner exceeds the limit and is bevelled.
		Name:  "sharp_corner_miter_limit",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(6, canvas.CapButt, canvas.JoinMiter), corner(10, 54, 32, 10, 36, 54)),
	},
	{
		Name:  "closed_square",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(5, canvas.CapButt, canvas.JoinMiter), rectangle(14, 14, 50, 50)),
	},
	{
		Name:  "zigzag_round",
		Width: 96, Height: 64,
		Draw: stroke(lineStyle(4, canvas.CapRound, canvas.JoinRound), zigzag(8, 32, 88, 18, 8)),
	},
	{
		Name:  "hairline",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(0.25, canvas.CapButt, canvas.JoinMiter), corner(4, 60, 32, 4, 60, 60)),
	},
	{
		// The line width is given in pixels and does not grow with the
		// scale factor.
		Name:  "pixel_width",
		Width: 64, Height: 64,
		Draw: seq(
			white,
			do(canvas.Scale{X: 4, Y: 4}, canvas.LineWidthPixels{Width: 2}),
			canvas.FromPath(corner(3, 12, 8, 3, 13, 12)),
			do(canvas.Stroke{}),
		),
	},
}

var dashCases = []TestCase{
	{
		Name:  "even_dashes",
		Width: 120, Height: 32,
		Draw: stroke(seq(lineStyle(4, canvas.CapButt, canvas.JoinMiter), dashes(0, 10, 10)),
			horizontalLine(10, 16, 110)),
	},
	{
		Name:  "uneven_dashes",
		Width: 120, Height: 32,
		Draw: stroke(seq(lineStyle(4, canvas.CapButt, canvas.JoinMiter), dashes(0, 12, 3, 3, 3)),
			horizontalLine(10, 16, 110)),
	},
	{
		Name:  "dash_offset",
		Width: 120, Height: 32,
		Draw: stroke(seq(lineStyle(4, canvas.CapButt, canvas.JoinMiter), dashes(5, 10, 10)),
			horizontalLine(10, 16, 110)),
	},
	{
		Name:  "round_dots",
		Width: 120, Height: 32,
		Draw: stroke(seq(lineStyle(6, canvas.CapRound, canvas.JoinMiter), dashes(0, 0, 12)),
			horizontalLine(10, 16, 110)),
	},
	{
		// Dashes continue around corners.
		Name:  "dashed_square",
		Width: 64, Height: 64,
		Draw: stroke(seq(lineStyle(3, canvas.CapButt, canvas.JoinMiter), dashes(0, 9, 5)),
			rectangle(12, 12, 52, 52)),
	},
	{
		Name:  "dashed_circle",
		Width: 64, Height: 64,
		Draw: seq(
			white,
			lineStyle(2, canvas.CapButt, canvas.JoinMiter),
			dashes(0, 6, 4),
			canvas.Circle(32, 32, 22),
			do(canvas.Stroke{}),
		),
	},
}

// horizontalLine builds a horizontal line segment.
func horizontalLine(x1, y, x2 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(x1, y)).LineTo(pt(x2, y))
}

// corner builds a path with two line segments meeting at a corner.
func corner(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3))
}

// zigzag builds a zigzag line along y = cy.
func zigzag(x1, cy, x2, amplitude float64, n int) *path.Data {
	p := (&path.Data{}).MoveTo(pt(x1, cy))
	for i := 1; i <= n; i++ {
		x := x1 + float64(i)*(x2-x1)/float64(n)
		y := cy + amplitude*math.Copysign(1, float64(i%2)-0.5)
		if i == n {
			y = cy
		}
		p = p.LineTo(pt(x, y))
	}
	return p
}
