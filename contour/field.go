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

package contour

import (
	"math"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/subpath"
)

// Field is a scalar field sampled on a regular grid.  Sample (i, j) sits at
// the centre of cell (i, j), which covers the device space square
// [X0 + i*Scale, X0 + (i+1)*Scale) × [Y0 + j*Scale, Y0 + (j+1)*Scale).
// Outside the grid the field is zero.
type Field struct {
	X0, Y0        float64
	Width, Height int
	Scale         float64
	Values        []float32 // row-major, Width*Height entries
}

// NewField returns a zero field of the given size, with cells of size 1
// and the top-left corner at (x0, y0).
func NewField(x0, y0 float64, width, height int) *Field {
	return &Field{
		X0:     x0,
		Y0:     y0,
		Width:  width,
		Height: height,
		Scale:  1,
		Values: make([]float32, width*height),
	}
}

// Sample fills a field by evaluating fn at the cell centres.
func Sample(x0, y0 float64, width, height int, scale float64, fn func(x, y float64) float32) *Field {
	f := NewField(x0, y0, width, height)
	f.Scale = scale
	for j := range height {
		y := y0 + (float64(j)+0.5)*scale
		for i := range width {
			f.Values[j*width+i] = fn(x0+(float64(i)+0.5)*scale, y)
		}
	}
	return f
}

// Rasterize returns the coverage field of device space subpaths, clipped
// to the integer rectangle clip.
func Rasterize(sps []subpath.Subpath, rule edgeplan.FillRule, clip rect.Rect) *Field {
	x0, y0 := math.Floor(clip.LLx), math.Floor(clip.LLy)
	w := int(math.Ceil(clip.URx) - x0)
	h := int(math.Ceil(clip.URy) - y0)
	f := NewField(x0, y0, max(w, 0), max(h, 0))
	if w <= 0 || h <= 0 {
		return f
	}

	r := NewRasterizer(rect.Rect{LLx: x0, LLy: y0, URx: x0 + float64(w), URy: y0 + float64(h)})
	r.Fill(sps, rule, func(y, xMin int, coverage []float32) {
		row := f.Values[(y-int(y0))*w:]
		copy(row[xMin-int(x0):], coverage)
	})
	return f
}

// At returns sample (i, j), or zero outside the grid.
func (f *Field) At(i, j int) float32 {
	if i < 0 || j < 0 || i >= f.Width || j >= f.Height {
		return 0
	}
	return f.Values[j*f.Width+i]
}

// Bounds returns the region where the contour of the field can lie.
func (f *Field) Bounds() geometry.BoundingBox {
	if f.Width == 0 || f.Height == 0 {
		return geometry.EmptyBox
	}
	s := f.scale()
	b := geometry.EmptyBox
	b.Min.X = f.X0 - s/2
	b.Min.Y = f.Y0 - s/2
	b.Max.X = f.X0 + (float64(f.Width)+0.5)*s
	b.Max.Y = f.Y0 + (float64(f.Height)+0.5)*s
	return b
}

func (f *Field) scale() float64 {
	if f.Scale <= 0 {
		return 1
	}
	return f.Scale
}

// Crossings appends the points where the line at height y crosses the
// contour line {field = threshold} to buf.
//
// The field is interpolated bilinearly between the four samples
// surrounding each point, so this is the intersection of the scanline
// with the contour found by marching squares.  A crossing is reported as
// a [edgeplan.Toggle], since the contour has no orientation.  Because the
// field is zero outside the grid, the crossings come in pairs as long as
// threshold is positive.
func (f *Field) Crossings(y, threshold float64, buf []edgeplan.Intercept) []edgeplan.Intercept {
	if threshold <= 0 || f.Width == 0 || f.Height == 0 {
		return buf
	}
	s := f.scale()
	v := (y-f.Y0)/s - 0.5
	j := int(math.Floor(v))
	if j < -1 || j >= f.Height {
		return buf
	}
	fy := v - float64(j)

	val := func(i int) float64 {
		a := float64(f.At(i, j))
		b := float64(f.At(i, j+1))
		return a + (b-a)*fy
	}

	th := threshold
	prev := val(-1)
	for i := -1; i < f.Width; i++ {
		next := val(i + 1)
		if (prev >= th) != (next >= th) {
			t := (th - prev) / (next - prev)
			buf = append(buf, edgeplan.Intercept{
				X:         f.X0 + (float64(i)+0.5+t)*s,
				Direction: edgeplan.Toggle,
			})
		}
		prev = next
	}
	return buf
}
