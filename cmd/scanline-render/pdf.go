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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/testcases"
)

// errNotGeometric is returned by generatePDF for drawings which use
// commands without a direct PDF equivalent.
var errNotGeometric = errors.New("drawing is not purely geometric")

// generatePDF writes a drawing as a single page PDF file.
//
// Only paths, fills, strokes and grey colours are supported.  The canvas
// transformation must be set up before the first painting command, since
// PDF applies the transformation while the path is constructed.
func generatePDF(tc testcases.TestCase, pdfPath string) error {
	ops, err := pdfOps(tc)
	if err != nil {
		return err
	}

	// Page size in points (1 point = 1 pixel at 72 DPI)
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; canvas device space has y pointing down.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(tc.Height)})
	replay(page, ops)
	return page.Close()
}

// pdfPage is the part of the PDF page API used to replay a drawing.
type pdfPage interface {
	Transform(m matrix.Matrix)
	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCap(c graphics.LineCapStyle)
	SetLineJoin(j graphics.LineJoinStyle)
	SetMiterLimit(l float64)
	SetLineDash(pattern []float64, phase float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
	Rectangle(x, y, w, h float64)
	Fill()
	FillEvenOdd()
	Stroke()
}

func replay(page pdfPage, ops []func(pdfPage)) {
	for _, op := range ops {
		op(page)
	}
}

// pdfOps translates the drawing into a list of page operations.
func pdfOps(tc testcases.TestCase) ([]func(pdfPage), error) {
	var ops []func(pdfPage)
	var path []canvas.Draw
	var dash []float64
	var dashOffset float64
	transform := geometry.Identity
	painted := false
	rule := canvas.NonZero

	emitPath := func() {
		p := path
		ops = append(ops, func(page pdfPage) {
			for _, cmd := range p {
				switch cmd := cmd.(type) {
				case canvas.Move:
					page.MoveTo(cmd.X, cmd.Y)
				case canvas.Line:
					page.LineTo(cmd.X, cmd.Y)
				case canvas.BezierCurve:
					page.CurveTo(cmd.CP1.X, cmd.CP1.Y, cmd.CP2.X, cmd.CP2.Y, cmd.End.X, cmd.End.Y)
				case canvas.ClosePath:
					page.ClosePath()
				}
			}
		})
	}
	setTransform := func(t geometry.Transform) error {
		if painted {
			return errNotGeometric
		}
		transform = t
		return nil
	}
	applyTransform := func() {
		if painted {
			return
		}
		painted = true
		if !transform.Equal(geometry.Identity, 0) {
			m := transform.Matrix()
			ops = append(ops, func(page pdfPage) { page.Transform(m) })
		}
	}

	for _, cmd := range tc.Draw {
		var err error
		switch cmd := cmd.(type) {
		case canvas.NewPath:
			path = nil
		case canvas.Move, canvas.Line, canvas.BezierCurve, canvas.ClosePath:
			path = append(path, cmd)

		case canvas.ClearCanvas:
			if painted {
				return nil, errNotGeometric
			}
			g := grey(cmd.Color)
			w, h := float64(tc.Width), float64(tc.Height)
			ops = append(ops, func(page pdfPage) {
				page.SetFillColor(g)
				page.Rectangle(0, 0, w, h)
				page.Fill()
			})
		case canvas.FillColor:
			g := grey(cmd.Color)
			ops = append(ops, func(page pdfPage) { page.SetFillColor(g) })
		case canvas.StrokeColor:
			g := grey(cmd.Color)
			ops = append(ops, func(page pdfPage) { page.SetStrokeColor(g) })
		case canvas.LineWidth:
			ops = append(ops, func(page pdfPage) { page.SetLineWidth(cmd.Width) })
		case canvas.LineCapStyle:
			ops = append(ops, func(page pdfPage) { page.SetLineCap(cmd.Cap) })
		case canvas.LineJoinStyle:
			ops = append(ops, func(page pdfPage) { page.SetLineJoin(cmd.Join) })
		case canvas.MiterLimit:
			ops = append(ops, func(page pdfPage) { page.SetMiterLimit(cmd.Limit) })
		case canvas.NewDashPattern:
			dash = nil
		case canvas.DashLength:
			dash = append(dash, cmd.Length)
		case canvas.DashOffset:
			dashOffset = cmd.Offset
		case canvas.FillRule:
			rule = cmd.Rule

		case canvas.IdentityTransform:
			err = setTransform(geometry.Identity)
		case canvas.MultiplyTransform:
			err = setTransform(cmd.Transform.Then(transform))
		case canvas.Translate:
			err = setTransform(geometry.Translate(cmd.X, cmd.Y).Then(transform))
		case canvas.Scale:
			err = setTransform(geometry.Scale(cmd.X, cmd.Y).Then(transform))
		case canvas.CanvasHeight:
			s := float64(tc.Height) / cmd.Height
			err = setTransform(geometry.Scale(s, -s).
				Then(geometry.Translate(float64(tc.Width)/2, float64(tc.Height)/2)))

		case canvas.Fill:
			applyTransform()
			emitPath()
			if rule == canvas.EvenOdd {
				ops = append(ops, func(page pdfPage) { page.FillEvenOdd() })
			} else {
				ops = append(ops, func(page pdfPage) { page.Fill() })
			}
		case canvas.Stroke:
			applyTransform()
			if len(dash) > 0 {
				d, phase := dash, dashOffset
				ops = append(ops, func(page pdfPage) { page.SetLineDash(d, phase) })
			}
			emitPath()
			ops = append(ops, func(page pdfPage) { page.Stroke() })

		default:
			err = errNotGeometric
		}
		if err != nil {
			return nil, err
		}
	}
	return ops, nil
}

// grey converts a colour into a PDF grey value, using the Rec. 709
// luma weights.
func grey(c canvas.Color) color.Color {
	return color.DeviceGray(0.2126*c.R + 0.7152*c.G + 0.0722*c.B)
}
