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

package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/edges"
	"seehuhn.de/go/scanline/pixel"
	"seehuhn.de/go/scanline/subpath"
)

func vecOf(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// circleOps returns a circle made of four cubic Bézier curves.
func circleOps(cx, cy, r float64, clockwise bool) []subpath.PathOp {
	const k = 0.5522847498
	kr := k * r
	ops := []subpath.PathOp{subpath.Move{X: cx, Y: cy - r}}
	if clockwise {
		ops = append(ops,
			subpath.BezierCurve{CP1: vecOf(cx-kr, cy-r), CP2: vecOf(cx-r, cy-kr), End: vecOf(cx-r, cy)},
			subpath.BezierCurve{CP1: vecOf(cx-r, cy+kr), CP2: vecOf(cx-kr, cy+r), End: vecOf(cx, cy+r)},
			subpath.BezierCurve{CP1: vecOf(cx+kr, cy+r), CP2: vecOf(cx+r, cy+kr), End: vecOf(cx+r, cy)},
			subpath.BezierCurve{CP1: vecOf(cx+r, cy-kr), CP2: vecOf(cx+kr, cy-r), End: vecOf(cx, cy-r)},
		)
	} else {
		ops = append(ops,
			subpath.BezierCurve{CP1: vecOf(cx+kr, cy-r), CP2: vecOf(cx+r, cy-kr), End: vecOf(cx+r, cy)},
			subpath.BezierCurve{CP1: vecOf(cx+r, cy+kr), CP2: vecOf(cx+kr, cy+r), End: vecOf(cx, cy+r)},
			subpath.BezierCurve{CP1: vecOf(cx-kr, cy+r), CP2: vecOf(cx-r, cy+kr), End: vecOf(cx-r, cy)},
			subpath.BezierCurve{CP1: vecOf(cx-r, cy-kr), CP2: vecOf(cx-kr, cy-r), End: vecOf(cx, cy-r)},
		)
	}
	return append(ops, subpath.ClosePath{})
}

// oFrame returns a frame showing the letter "O": an outer circle and an
// inner circle of opposite orientation.
func oFrame(size int) *Frame {
	c := float64(size) / 2
	ops := circleOps(c, c, float64(size)*0.45, false)
	ops = append(ops, circleOps(c, c, float64(size)*0.30, true)...)

	p := edgeplan.New()
	id := edgeplan.NewShapeID()
	p.AddShape(id, edgeplan.ShapeDescriptor{Program: solid(white)})
	for _, sp := range subpath.FromOps(ops...) {
		_ = p.AddEdge(edges.NewBezierSubpathEdge(id, sp))
	}
	return &Frame{Plan: p.Snapshot()}
}

// addCircleToVector adds a circle to a vector.Rasterizer.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	if clockwise {
		r.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	r.ClosePath()
}

func vectorO(size int) *image.Alpha {
	r := vector.NewRasterizer(size, size)
	c := float32(size) / 2
	addCircleToVector(r, c, c, float32(size)*0.45, false)
	addCircleToVector(r, c, c, float32(size)*0.30, true)
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	r.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{255}), image.Point{})
	return dst
}

// TestAgainstVector compares the alpha channel of the renderer with the
// coverage computed by golang.org/x/image/vector.
func TestAgainstVector(t *testing.T) {
	const size = 200
	r := New()
	defer r.Close()

	expected := vectorO(size).Pix
	actual := make([]byte, size*size)
	r.Render(oFrame(size), Rows(size, 0, size), func(y int, row []pixel.Rgba8) {
		for x, c := range row {
			actual[y*size+x] = c[3]
		}
	})

	if err := compareImages(expected, actual); err != nil {
		t.Error(err)
	}
}

// compareImages checks that most pixels agree and that the remaining
// differences are small.
func compareImages(expected, actual []byte) error {
	total := len(expected)
	diffs := make([]int, total)
	for i := range total {
		d := int(expected[i]) - int(actual[i])
		if d < 0 {
			d = -d
		}
		diffs[i] = d
	}
	sort.Ints(diffs)

	p80 := diffs[int(math.Round(0.80*float64(total-1)))]
	p95 := diffs[int(math.Round(0.95*float64(total-1)))]
	p99 := diffs[int(math.Round(0.99*float64(total-1)))]

	var failures []string
	if p80 > 0 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want 0)", p80))
	}
	if p95 >= 64 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <64)", p95))
	}
	if p99 >= 128 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <128)", p99))
	}
	if len(failures) > 0 {
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}

func BenchmarkRendererO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := New()
			defer r.Close()
			f := oFrame(size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			slice := Rows(size, 0, size)

			b.ResetTimer()
			b.ReportAllocs()
			for b.Loop() {
				r.Render(f, slice, func(y int, row []pixel.Rgba8) {
					line := dst.Pix[y*dst.Stride:]
					for x, c := range row {
						line[x] = c[3]
					}
				})
			}
		})
	}
}

func BenchmarkVectorO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})
			c := float32(size) / 2

			b.ResetTimer()
			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, c, c, float32(size)*0.45, false)
				addCircleToVector(r, c, c, float32(size)*0.30, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}
