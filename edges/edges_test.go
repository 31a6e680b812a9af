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

package edges

import (
	"cmp"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/scanline/contour"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/subpath"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func sorted(xs []edgeplan.Intercept) []edgeplan.Intercept {
	slices.SortStableFunc(xs, func(a, b edgeplan.Intercept) int {
		return cmp.Compare(a.X, b.X)
	})
	return xs
}

func circle(cx, cy, r float64) subpath.Subpath {
	const k = 0.5522847498
	kr := k * r
	sps := subpath.FromOps(
		subpath.Move{X: cx, Y: cy - r},
		subpath.BezierCurve{CP1: pt(cx+kr, cy-r), CP2: pt(cx+r, cy-kr), End: pt(cx+r, cy)},
		subpath.BezierCurve{CP1: pt(cx+r, cy+kr), CP2: pt(cx+kr, cy+r), End: pt(cx, cy+r)},
		subpath.BezierCurve{CP1: pt(cx-kr, cy+r), CP2: pt(cx-r, cy+kr), End: pt(cx-r, cy)},
		subpath.BezierCurve{CP1: pt(cx-r, cy-kr), CP2: pt(cx-kr, cy-r), End: pt(cx, cy-r)},
		subpath.ClosePath{},
	)
	return sps[0]
}

func TestBezierMatchesFlattened(t *testing.T) {
	id := edgeplan.NewShapeID()
	sp := circle(50, 50, 40)
	bez := NewBezierSubpathEdge(id, sp)
	flat := NewFlattenedSubpathEdge(id, sp, 0.1)

	for y := 20.5; y < 80; y += 1 {
		a := sorted(bez.Intercepts(y, nil))
		b := sorted(flat.Intercepts(y, nil))
		if len(a) != 2 || len(b) != 2 {
			t.Fatalf("y=%g: %d and %d intercepts", y, len(a), len(b))
		}
		for i := range a {
			if math.Abs(a[i].X-b[i].X) > 0.5 {
				t.Errorf("y=%g: x=%g vs %g", y, a[i].X, b[i].X)
			}
			if a[i].Direction != b[i].Direction {
				t.Errorf("y=%g: direction %d vs %d", y, a[i].Direction, b[i].Direction)
			}
		}
	}

	if got := bez.Intercepts(5, nil); len(got) != 0 {
		t.Errorf("intercepts above the circle: %v", got)
	}
}

func TestWindingDoubleLoop(t *testing.T) {
	id := edgeplan.NewShapeID()
	sps := subpath.FromOps(
		subpath.Move{X: 0, Y: 0},
		subpath.Line{X: 10, Y: 0},
		subpath.Line{X: 10, Y: 10},
		subpath.Line{X: 0, Y: 10},
		subpath.Line{X: 0, Y: 0},
		subpath.Line{X: 10, Y: 0},
		subpath.Line{X: 10, Y: 10},
		subpath.Line{X: 0, Y: 10},
		subpath.ClosePath{},
	)
	for _, e := range []edgeplan.Edge{
		NewBezierSubpathEdge(id, sps[0]),
		NewFlattenedSubpathEdge(id, sps[0], 0),
	} {
		xs := sorted(e.Intercepts(5, nil))
		if len(xs) != 4 {
			t.Fatalf("%T: got %d intercepts, want 4", e, len(xs))
		}
		winding := 0
		for _, x := range xs[:2] {
			winding += int(x.Direction)
		}
		if winding != -2 {
			t.Errorf("%T: winding %d inside the square, want -2", e, winding)
		}
	}
}

func TestVertexCountedOnce(t *testing.T) {
	id := edgeplan.NewShapeID()
	sps := subpath.FromOps(
		subpath.Move{X: 0, Y: 0},
		subpath.Line{X: 10, Y: 10},
		subpath.Line{X: 0, Y: 20},
		subpath.ClosePath{},
	)
	e := NewFlattenedSubpathEdge(id, sps[0], 0)
	for _, y := range []float64{0, 10, 19.5} {
		if n := len(e.Intercepts(y, nil)); n != 2 {
			t.Errorf("y=%g: %d intercepts, want 2", y, n)
		}
	}
	if n := len(e.Intercepts(20, nil)); n != 0 {
		t.Errorf("y=20: %d intercepts, want 0", n)
	}
}

func TestRectangleEdge(t *testing.T) {
	box := geometry.BoundingBox{Min: pt(10, 20), Max: pt(30, 40)}
	e := NewRectangleEdge(edgeplan.NewShapeID(), box)

	got := e.Intercepts(20, nil)
	want := []edgeplan.Intercept{{X: 10, Direction: edgeplan.Up}, {X: 30, Direction: edgeplan.Down}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := e.Intercepts(40, nil); len(got) != 0 {
		t.Errorf("bottom row is inside: %v", got)
	}
}

func TestClippingEdge(t *testing.T) {
	box := geometry.BoundingBox{Min: pt(0, 0), Max: pt(100, 10)}
	inner := NewRectangleEdge(edgeplan.NewShapeID(), box)

	e := NewClippingEdge(inner, 20, 50)
	got := e.Intercepts(5, nil)
	want := []edgeplan.Intercept{{X: 20, Direction: edgeplan.Up}, {X: 50, Direction: edgeplan.Down}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if b := e.BoundingBox(); b.Min.X != 20 || b.Max.X != 50 {
		t.Errorf("bounding box %v", b)
	}

	// a strip which contains the whole shape passes crossings through
	e = NewClippingEdge(inner, -10, 200)
	got = e.Intercepts(5, nil)
	want = []edgeplan.Intercept{{X: 0, Direction: edgeplan.Up}, {X: 100, Direction: edgeplan.Down}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// a strip left of the shape has no crossings
	e = NewClippingEdge(inner, -50, -10)
	if got := e.Intercepts(5, nil); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestContourEdge(t *testing.T) {
	sps := subpath.FromOps(
		subpath.Move{X: 10, Y: 10},
		subpath.Line{X: 30, Y: 10},
		subpath.Line{X: 30, Y: 20},
		subpath.Line{X: 10, Y: 20},
		subpath.ClosePath{},
	)
	field := contour.Rasterize(sps, edgeplan.NonZero, rect.Rect{URx: 40, URy: 40})
	e := NewContourEdge(edgeplan.NewShapeID(), field, 0.5)

	got := e.Intercepts(15, nil)
	if len(got) != 2 || got[0].X != 10 || got[1].X != 30 {
		t.Errorf("got %v", got)
	}
}

func TestStrokeCaps(t *testing.T) {
	sps := subpath.FromOps(subpath.Move{X: 0, Y: 50}, subpath.Line{X: 100, Y: 50})
	cases := []struct {
		cap        graphics.LineCapStyle
		xMin, xMax float64
		tol        float64
	}{
		{graphics.LineCapButt, 0, 100, 1e-6},
		{graphics.LineCapSquare, -2, 102, 1e-6},
		{graphics.LineCapRound, -2, 102, 0.02},
	}
	for _, tc := range cases {
		style := DefaultStrokeStyle()
		style.Width = 4
		style.Cap = tc.cap
		e := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0.01)

		xs := sorted(e.Intercepts(50, nil))
		if len(xs) != 2 {
			t.Fatalf("%s: %d intercepts", tc.cap, len(xs))
		}
		if math.Abs(xs[0].X-tc.xMin) > tc.tol || math.Abs(xs[1].X-tc.xMax) > tc.tol {
			t.Errorf("%s: stroke covers [%g, %g], want [%g, %g]",
				tc.cap, xs[0].X, xs[1].X, tc.xMin, tc.xMax)
		}
		b := e.BoundingBox()
		if math.Abs(b.Min.Y-48) > 1e-6 || math.Abs(b.Max.Y-52) > 1e-6 {
			t.Errorf("%s: vertical extent [%g, %g]", tc.cap, b.Min.Y, b.Max.Y)
		}
	}
}

func TestStrokeTransform(t *testing.T) {
	// the line width is given in user space
	sps := subpath.FromOps(subpath.Move{X: 0, Y: 10}, subpath.Line{X: 10, Y: 10})
	style := DefaultStrokeStyle()
	style.Width = 2
	e := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Scale(3, 3), 0)

	b := e.BoundingBox()
	if math.Abs(b.Height()-6) > 1e-9 || math.Abs(b.Width()-30) > 1e-9 {
		t.Errorf("unexpected device box %v", b)
	}
}

func TestDashedLine(t *testing.T) {
	sps := subpath.FromOps(subpath.Move{X: 0, Y: 0}, subpath.Line{X: 100, Y: 0})
	style := DefaultStrokeStyle()
	style.Width = 2
	style.Dash = []float64{10, 10}
	e := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0)

	outlines := e.Outlines()
	if len(outlines) != 5 {
		t.Fatalf("got %d dashes, want 5", len(outlines))
	}
	for i, poly := range outlines {
		b := geometry.BoxOf(poly...)
		if math.Abs(b.Width()-10) > 1e-9 {
			t.Errorf("dash %d has length %g", i, b.Width())
		}
		if math.Abs(b.Min.X-float64(20*i)) > 1e-9 {
			t.Errorf("dash %d starts at %g", i, b.Min.X)
		}
	}
}

func TestDashPhase(t *testing.T) {
	sps := subpath.FromOps(subpath.Move{X: 0, Y: 0}, subpath.Line{X: 100, Y: 0})
	style := DefaultStrokeStyle()
	style.Dash = []float64{10, 10}
	style.DashPhase = 5
	e := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0)

	// dashes [0,5], [15,25], ..., [95,100]
	outlines := e.Outlines()
	if len(outlines) != 6 {
		t.Fatalf("got %d dashes, want 6", len(outlines))
	}
	if b := geometry.BoxOf(outlines[0]...); math.Abs(b.Width()-5) > 1e-9 {
		t.Errorf("first dash has length %g, want 5", b.Width())
	}
}

func TestClosedDashJoins(t *testing.T) {
	// on a closed square the dash across the starting corner is merged
	sps := subpath.FromOps(
		subpath.Move{X: 0, Y: 0},
		subpath.Line{X: 40, Y: 0},
		subpath.Line{X: 40, Y: 40},
		subpath.Line{X: 0, Y: 40},
		subpath.ClosePath{},
	)
	style := DefaultStrokeStyle()
	style.Dash = []float64{20, 20}
	style.DashPhase = 10
	e := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0)

	if n := len(e.Outlines()); n != 4 {
		t.Errorf("got %d dashes, want 4", n)
	}
}

func TestMiterLimit(t *testing.T) {
	// a sharp corner: the miter is cut off unless the limit is large
	sps := subpath.FromOps(
		subpath.Move{X: 0, Y: 0},
		subpath.Line{X: 100, Y: 5},
		subpath.Line{X: 0, Y: 10},
	)
	style := DefaultStrokeStyle()
	style.Width = 2

	bevel := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0)
	style.MiterLimit = 100
	miter := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0)

	if bevel.BoundingBox().Max.X >= miter.BoundingBox().Max.X {
		t.Errorf("miter %g does not extend beyond bevel %g",
			miter.BoundingBox().Max.X, bevel.BoundingBox().Max.X)
	}
}

func TestPolygonEdgeMatchesStroke(t *testing.T) {
	sps := subpath.FromOps(
		subpath.Move{X: 10, Y: 10},
		subpath.Line{X: 60, Y: 30},
		subpath.Line{X: 20, Y: 50},
	)
	style := DefaultStrokeStyle()
	style.Width = 3
	stroke := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0)
	poly := NewPolygonEdge(stroke.Shape(), stroke.Outlines()...)

	for y := 5.5; y < 60; y++ {
		got := sorted(poly.Intercepts(y, nil))
		want := sorted(stroke.Intercepts(y, nil))
		if !slices.Equal(got, want) {
			t.Errorf("y=%g: polygon %v, stroke %v", y, got, want)
		}
	}
}

func TestStrokeCurveOffset(t *testing.T) {
	// both sides of a stroked circle are circles again
	sps := []subpath.Subpath{circle(50, 50, 30)}
	style := DefaultStrokeStyle()
	style.Width = 6
	e := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0.01)

	outlines := e.Outlines()
	if len(outlines) != 2 {
		t.Fatalf("got %d outlines, want 2", len(outlines))
	}
	for i, poly := range outlines {
		for _, p := range poly {
			r := geometry.Distance(p, pt(50, 50))
			if math.Abs(r-27) > 0.05 && math.Abs(r-33) > 0.05 {
				t.Errorf("outline %d: vertex %v at radius %g", i, p, r)
			}
		}
	}

	y := 50.5
	xs := sorted(e.Intercepts(y, nil))
	if len(xs) != 4 {
		t.Fatalf("%d intercepts", len(xs))
	}
	want := []float64{
		50 - math.Sqrt(33*33-0.25), 50 - math.Sqrt(27*27-0.25),
		50 + math.Sqrt(27*27-0.25), 50 + math.Sqrt(33*33-0.25),
	}
	for i, x := range xs {
		if math.Abs(x.X-want[i]) > 0.05 {
			t.Errorf("intercept %d at %g, want %g", i, x.X, want[i])
		}
	}
}

func TestRoundJoinArc(t *testing.T) {
	sps := subpath.FromOps(
		subpath.Move{X: 0, Y: 0},
		subpath.Line{X: 50, Y: 0},
		subpath.Line{X: 50, Y: 50},
	)
	style := DefaultStrokeStyle()
	style.Width = 10
	style.Join = graphics.LineJoinRound
	e := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0.01)

	// the outer corner is a quarter circle around (50, 0)
	n := 0
	for _, p := range e.Outlines()[0] {
		if p.X <= 50 || p.Y >= 0 {
			continue
		}
		n++
		if r := geometry.Distance(p, pt(50, 0)); math.Abs(r-5) > 0.01 {
			t.Errorf("join vertex %v at distance %g", p, r)
		}
	}
	if n < 3 {
		t.Errorf("round join has %d vertices", n)
	}
	if b := e.BoundingBox(); math.Abs(b.Max.X-55) > 1e-6 || math.Abs(b.Min.Y+5) > 1e-6 {
		t.Errorf("unexpected bounding box %v", b)
	}
}

func TestDashedCurve(t *testing.T) {
	// dash lengths are measured along the half circle of length 50π
	const k = 0.5522847498
	sps := subpath.FromOps(
		subpath.Move{X: 100, Y: 50},
		subpath.BezierCurve{CP1: pt(100, 50+50*k), CP2: pt(50+50*k, 100), End: pt(50, 100)},
		subpath.BezierCurve{CP1: pt(50-50*k, 100), CP2: pt(0, 50+50*k), End: pt(0, 50)},
	)
	style := DefaultStrokeStyle()
	style.Width = 2
	style.Dash = []float64{10, 10}
	e := NewLineStrokeEdge(edgeplan.NewShapeID(), sps, style, geometry.Identity, 0.01)

	if n := len(e.Outlines()); n != 8 {
		t.Errorf("got %d dashes, want 8", n)
	}
}
