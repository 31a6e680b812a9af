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
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/scanline/canvas"
)

var curveCases = []TestCase{
	{
		Name:  "quadratic",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, (&path.Data{}).
			MoveTo(pt(8, 56)).QuadTo(pt(32, -8), pt(56, 56)).Close()),
	},
	{
		Name:  "cubic",
		Width: 64, Height: 64,
		Draw: fill(canvas.NonZero, (&path.Data{}).
			MoveTo(pt(8, 56)).CubeTo(pt(8, 0), pt(56, 0), pt(56, 56)).Close()),
	},
	{
		// A cubic whose control polygon crosses itself has a loop.
		Name:  "cubic_loop_evenodd",
		Width: 64, Height: 64,
		Draw: fill(canvas.EvenOdd, (&path.Data{}).
			MoveTo(pt(8, 40)).CubeTo(pt(72, 0), pt(-8, 0), pt(56, 40)).Close()),
	},
	{
		Name:  "s_curve_stroke",
		Width: 64, Height: 64,
		Draw: stroke(lineStyle(3, canvas.CapRound, canvas.JoinRound), (&path.Data{}).
			MoveTo(pt(8, 32)).
			QuadTo(pt(20, 4), pt(32, 32)).
			QuadTo(pt(44, 60), pt(56, 32))),
	},
	{
		Name:  "circle",
		Width: 64, Height: 64,
		Draw: seq(white, canvas.Circle(32, 32, 24), do(canvas.Fill{})),
	},
	{
		Name:  "ellipse_rotated",
		Width: 64, Height: 64,
		Draw: seq(white, canvas.Ellipse(32, 32, 26, 10, 0.5), do(canvas.Fill{})),
	},
	{
		Name:  "tiny_circle",
		Width: 16, Height: 16,
		Draw: seq(white, canvas.Circle(8, 8, 1.5), do(canvas.Fill{})),
	},
	{
		Name:  "circle_outline",
		Width: 64, Height: 64,
		Draw: seq(white, lineStyle(4, canvas.CapButt, canvas.JoinMiter),
			canvas.Circle(32, 32, 22), do(canvas.Stroke{})),
	},
}
