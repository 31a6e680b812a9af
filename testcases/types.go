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

// Package testcases defines drawings which exercise the renderer.
//
// Every test case is a self-contained stream of canvas commands.  The
// cases are rendered by the package tests and by the scanline-render
// command, which writes them to PNG files for visual inspection.
package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/canvas"
)

// TestCase defines a single drawing.
type TestCase struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Width  int    // canvas width in pixels
	Height int    // canvas height in pixels
	Draw   []canvas.Draw
}

// All contains all test cases, grouped by category.
// The category name is used as a prefix in output file names.
var All = map[string][]TestCase{
	"fill":      fillCases,
	"stroke":    strokeCases,
	"dash":      dashCases,
	"curve":     curveCases,
	"transform": transformCases,
	"clip":      clipCases,
	"compose":   composeCases,
	"text":      textCases,
}

// seq concatenates command lists.
func seq(parts ...[]canvas.Draw) []canvas.Draw {
	var res []canvas.Draw
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}

// do is a helper to write single commands as a list.
func do(cmds ...canvas.Draw) []canvas.Draw {
	return cmds
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// white sets up the coverage style used by most cases: white paint on a
// black background, so that the brightness of a pixel is its coverage.
var white = do(
	canvas.ClearCanvas{Color: canvas.Black},
	canvas.FillColor{Color: canvas.White},
	canvas.StrokeColor{Color: canvas.White},
)

// fill returns a coverage style fill of p.
func fill(rule canvas.WindingRule, p *path.Data) []canvas.Draw {
	return seq(white, do(canvas.FillRule{Rule: rule}), canvas.FromPath(p), do(canvas.Fill{}))
}

// stroke returns a coverage style stroke of p.
func stroke(style []canvas.Draw, p *path.Data) []canvas.Draw {
	return seq(white, style, canvas.FromPath(p), do(canvas.Stroke{}))
}

// lineStyle returns the commands which set up a solid line.
func lineStyle(width float64, c canvas.LineCap, j canvas.LineJoin) []canvas.Draw {
	return do(
		canvas.LineWidth{Width: width},
		canvas.LineCapStyle{Cap: c},
		canvas.LineJoinStyle{Join: j},
		canvas.MiterLimit{Limit: 10},
		canvas.NewDashPattern{},
	)
}

// dashes returns the commands which set a dash pattern.
func dashes(offset float64, lengths ...float64) []canvas.Draw {
	res := do(canvas.NewDashPattern{}, canvas.DashOffset{Offset: offset})
	for _, l := range lengths {
		res = append(res, canvas.DashLength{Length: l})
	}
	return res
}
