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

package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/testcases"
)

// recorder is a pdfPage which records the operator names.
type recorder struct {
	ops []string
}

func (r *recorder) add(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) Transform(m matrix.Matrix)                    { r.add("cm %v", m) }
func (r *recorder) SetFillColor(c color.Color)                   { r.add("fill colour") }
func (r *recorder) SetStrokeColor(c color.Color)                 { r.add("stroke colour") }
func (r *recorder) SetLineWidth(w float64)                       { r.add("w %g", w) }
func (r *recorder) SetLineCap(c graphics.LineCapStyle)           { r.add("J") }
func (r *recorder) SetLineJoin(j graphics.LineJoinStyle)         { r.add("j") }
func (r *recorder) SetMiterLimit(l float64)                      { r.add("M %g", l) }
func (r *recorder) SetLineDash(pattern []float64, phase float64) { r.add("d %v %g", pattern, phase) }
func (r *recorder) MoveTo(x, y float64)                          { r.add("m %g %g", x, y) }
func (r *recorder) LineTo(x, y float64)                          { r.add("l %g %g", x, y) }
func (r *recorder) CurveTo(x1, y1, x2, y2, x3, y3 float64)       { r.add("c") }
func (r *recorder) ClosePath()                                   { r.add("h") }
func (r *recorder) Rectangle(x, y, w, h float64)                 { r.add("re %g %g %g %g", x, y, w, h) }
func (r *recorder) Fill()                                        { r.add("f") }
func (r *recorder) FillEvenOdd()                                 { r.add("f*") }
func (r *recorder) Stroke()                                      { r.add("S") }

func TestPDFOps(t *testing.T) {
	tc := testcases.TestCase{
		Name:  "dashed",
		Width: 20, Height: 10,
		Draw: []canvas.Draw{
			canvas.Translate{X: 1, Y: 2},
			canvas.LineWidth{Width: 3},
			canvas.DashLength{Length: 4},
			canvas.Move{X: 0, Y: 0},
			canvas.Line{X: 10, Y: 0},
			canvas.Stroke{},
			canvas.FillRule{Rule: canvas.EvenOdd},
			canvas.Fill{},
		},
	}
	ops, err := pdfOps(tc)
	if err != nil {
		t.Fatal(err)
	}
	r := &recorder{}
	replay(r, ops)

	want := []string{
		"w 3",
		"cm [1 0 0 1 1 2]",
		"d [4] 0",
		"m 0 0", "l 10 0", "S",
		"m 0 0", "l 10 0", "f*",
	}
	if d := cmp.Diff(want, r.ops); d != "" {
		t.Errorf("operators mismatch (-want +got):\n%s", d)
	}
}

func TestPDFOpsNotGeometric(t *testing.T) {
	for _, cmds := range [][]canvas.Draw{
		{canvas.Clip{}},
		{canvas.Fill{}, canvas.Translate{X: 1}},
		{canvas.DrawSprite{Sprite: 1}},
	} {
		_, err := pdfOps(testcases.TestCase{Width: 1, Height: 1, Draw: cmds})
		if !errors.Is(err, errNotGeometric) {
			t.Errorf("%v: got %v", cmds, err)
		}
	}
}

func TestPDFOpsAllCases(t *testing.T) {
	n := 0
	for category, cases := range testcases.All {
		for _, tc := range cases {
			_, err := pdfOps(tc)
			if err == nil {
				n++
			} else if !errors.Is(err, errNotGeometric) {
				t.Errorf("%s_%s: %v", category, tc.Name, err)
			}
			if err == nil && strings.HasPrefix(category, "clip") {
				t.Errorf("%s_%s: clipping case translated to PDF", category, tc.Name)
			}
		}
	}
	if n == 0 {
		t.Error("no case can be written as PDF")
	}
}
