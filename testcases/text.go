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
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/scanline/canvas"
)

var textCases = []TestCase{
	{
		Name:  "hello",
		Width: 160, Height: 48,
		Draw: seq(white, do(
			canvas.DefineFont{Font: 1, Data: goregular.TTF},
			canvas.FontSize{Font: 1, Size: 24},
			canvas.DrawText{Font: 1, Text: "Hello, World", X: 6, Y: 32},
		)),
	},
	{
		Name:  "sizes",
		Width: 160, Height: 96,
		Draw: seq(white, do(
			canvas.DefineFont{Font: 1, Data: gobold.TTF},
			canvas.FontSize{Font: 1, Size: 6},
			canvas.DrawText{Font: 1, Text: "small text", X: 4, Y: 12},
			canvas.FontSize{Font: 1, Size: 12},
			canvas.DrawText{Font: 1, Text: "medium text", X: 4, Y: 36},
			canvas.FontSize{Font: 1, Size: 32},
			canvas.DrawText{Font: 1, Text: "Large", X: 4, Y: 80},
		)),
	},
	{
		Name:  "rotated",
		Width: 96, Height: 96,
		Draw: seq(white, do(
			canvas.DefineFont{Font: 1, Data: goregular.TTF},
			canvas.FontSize{Font: 1, Size: 16},
			canvas.Translate{X: 48, Y: 48},
			canvas.Rotate{Degrees: -30},
			canvas.DrawText{Font: 1, Text: "rotated", X: -30, Y: 6},
		)),
	},
}
