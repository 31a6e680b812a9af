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

	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/geometry"
)

var transformCases = []TestCase{
	{
		Name:  "scale_2x",
		Width: 128, Height: 128,
		Draw: seq(white,
			do(canvas.Translate{X: 24, Y: 24}, canvas.Scale{X: 2, Y: 2}),
			canvas.FromPath(rectangle(0, 0, 20, 20)),
			do(canvas.Fill{})),
	},
	{
		Name:  "rotate_45deg",
		Width: 64, Height: 64,
		Draw: seq(white,
			do(canvas.Translate{X: 32, Y: 32}, canvas.Rotate{Degrees: 45}),
			canvas.FromPath(rectangle(-10, -10, 10, 10)),
			do(canvas.Fill{})),
	},
	{
		Name:  "skew",
		Width: 64, Height: 64,
		Draw: seq(white,
			do(canvas.MultiplyTransform{Transform: geometry.Transform{1, 0, 0.5, 1, 8, 8}}),
			canvas.FromPath(rectangle(0, 0, 24, 44)),
			do(canvas.Fill{})),
	},
	{
		// Non-uniform scaling distorts the line width.
		Name:  "stroke_nonuniform",
		Width: 96, Height: 64,
		Draw: seq(white,
			do(canvas.Translate{X: 48, Y: 32}, canvas.Scale{X: 4, Y: 1}),
			lineStyle(2, canvas.CapButt, canvas.JoinMiter),
			canvas.Circle(0, 0, 10),
			do(canvas.Stroke{})),
	},
	{
		// Canvas coordinates with y pointing up and the origin in the
		// centre.
		Name:  "canvas_height",
		Width: 64, Height: 64,
		Draw: seq(white,
			do(canvas.CanvasHeight{Height: 2}),
			canvas.FromPath(triangle(0, 0, 0.8, 0, 0, 0.8)),
			do(canvas.Fill{})),
	},
	{
		Name:  "push_pop",
		Width: 64, Height: 64,
		Draw: seq(white, rotatedSquares()),
	},
}

// rotatedSquares draws squares rotated about the centre, restoring the
// transformation after each one.
func rotatedSquares() []canvas.Draw {
	var res []canvas.Draw
	for i := range 6 {
		res = append(res,
			canvas.PushState{},
			canvas.Translate{X: 32, Y: 32},
			canvas.Rotate{Degrees: float64(15 * i)},
			canvas.NewPath{},
		)
		s := 26 * math.Pow(0.8, float64(i))
		res = append(res, canvas.FromPath(rectangle(-s, -s, s, s))...)
		res = append(res, canvas.LineWidth{Width: 1}, canvas.Stroke{}, canvas.PopState{})
	}
	return res
}
