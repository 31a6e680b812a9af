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
	"seehuhn.de/go/scanline/canvas"
)

var clipCases = []TestCase{
	{
		Name:  "circle_clip",
		Width: 64, Height: 64,
		Draw: seq(white,
			canvas.Circle(32, 32, 20), do(canvas.Clip{}, canvas.NewPath{}),
			stripes(64, 64, 6),
			do(canvas.Fill{})),
	},
	{
		Name:  "nested_clips",
		Width: 64, Height: 64,
		Draw: seq(white,
			canvas.FromPath(rectangle(8, 8, 44, 44)), do(canvas.Clip{}, canvas.NewPath{}),
			canvas.Circle(40, 40, 20), do(canvas.Clip{}, canvas.NewPath{}),
			canvas.FromPath(rectangle(0, 0, 64, 64)),
			do(canvas.Fill{})),
	},
	{
		Name:  "evenodd_clip",
		Width: 64, Height: 64,
		Draw: seq(white,
			do(canvas.FillRule{Rule: canvas.EvenOdd}),
			canvas.FromPath(fivePointStar(32, 32, 30)), do(canvas.Clip{}, canvas.NewPath{}),
			do(canvas.FillRule{Rule: canvas.NonZero}),
			stripes(64, 64, 4),
			do(canvas.Fill{})),
	},
	{
		// Clip regions are part of the state saved by PushState.
		Name:  "clip_pop",
		Width: 64, Height: 64,
		Draw: seq(white,
			do(canvas.PushState{}),
			canvas.FromPath(rectangle(0, 0, 32, 64)), do(canvas.Clip{}, canvas.NewPath{}),
			canvas.Circle(32, 20, 14), do(canvas.Fill{}, canvas.NewPath{}, canvas.PopState{}),
			canvas.Circle(32, 46, 14), do(canvas.Fill{})),
	},
	{
		Name:  "clipped_stroke",
		Width: 64, Height: 64,
		Draw: seq(white,
			canvas.FromPath(triangle(4, 60, 32, 4, 60, 60)), do(canvas.Clip{}, canvas.NewPath{}),
			lineStyle(10, canvas.CapRound, canvas.JoinRound),
			canvas.FromPath(horizontalLine(0, 40, 64)),
			do(canvas.Stroke{})),
	},
}

// stripes returns vertical bars covering a w by h area.
func stripes(w, h, period float64) []canvas.Draw {
	var res []canvas.Draw
	for x := 0.0; x < w; x += period {
		res = append(res, canvas.FromPath(rectangle(x, 0, x+period/2, h))...)
	}
	return res
}
