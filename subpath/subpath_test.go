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

package subpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/geometry"
)

func TestFromOps(t *testing.T) {
	type testCase struct {
		name   string
		ops    []PathOp
		starts []vec.Vec2
		counts []int
		closed []bool
	}
	cases := []testCase{
		{
			name:   "triangle",
			ops:    []PathOp{NewPath{}, Move{0, 0}, Line{10, 0}, Line{0, 10}, ClosePath{}},
			starts: []vec.Vec2{{X: 0, Y: 0}},
			counts: []int{3},
			closed: []bool{true},
		},
		{
			name:   "two_subpaths",
			ops:    []PathOp{Move{0, 0}, Line{10, 0}, Move{5, 5}, Line{6, 6}, Line{7, 5}},
			starts: []vec.Vec2{{X: 0, Y: 0}, {X: 5, Y: 5}},
			counts: []int{1, 2},
			closed: []bool{false, false},
		},
		{
			name:   "line_without_move",
			ops:    []PathOp{Line{10, 10}},
			starts: []vec.Vec2{{X: 0, Y: 0}},
			counts: []int{1},
			closed: []bool{false},
		},
		{
			name:   "new_path_discards",
			ops:    []PathOp{Move{0, 0}, Line{10, 0}, NewPath{}, Move{1, 1}, Line{2, 2}},
			starts: []vec.Vec2{{X: 1, Y: 1}},
			counts: []int{1},
			closed: []bool{false},
		},
		{
			name:   "close_on_start_point",
			ops:    []PathOp{Move{0, 0}, Line{10, 0}, Line{10, 10}, Line{0, 0}, ClosePath{}},
			starts: []vec.Vec2{{X: 0, Y: 0}},
			counts: []int{3},
			closed: []bool{true},
		},
		{
			name:   "draw_after_close",
			ops:    []PathOp{Move{3, 4}, Line{10, 0}, Line{10, 10}, ClosePath{}, Line{20, 20}},
			starts: []vec.Vec2{{X: 3, Y: 4}, {X: 3, Y: 4}},
			counts: []int{3, 1},
			closed: []bool{true, false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sp := FromOps(tc.ops...)
			if len(sp) != len(tc.starts) {
				t.Fatalf("got %d subpaths, want %d", len(sp), len(tc.starts))
			}
			for i := range sp {
				if sp[i].Start != tc.starts[i] {
					t.Errorf("subpath %d starts at %v, want %v", i, sp[i].Start, tc.starts[i])
				}
				if len(sp[i].Curves) != tc.counts[i] {
					t.Errorf("subpath %d has %d curves, want %d", i, len(sp[i].Curves), tc.counts[i])
				}
				if sp[i].Closed != tc.closed[i] {
					t.Errorf("subpath %d closed=%t", i, sp[i].Closed)
				}
				checkConnected(t, &sp[i])
			}
		})
	}
}

func checkConnected(t *testing.T, sp *Subpath) {
	t.Helper()
	pos := sp.Start
	for i, c := range sp.Curves {
		if c.P0 != pos {
			t.Errorf("curve %d starts at %v, want %v", i, c.P0, pos)
		}
		pos = c.P3
	}
	if sp.Closed && pos != sp.Start {
		t.Errorf("closed subpath ends at %v, not at %v", pos, sp.Start)
	}
}

func TestLineIsLinearCurve(t *testing.T) {
	sp := FromOps(Move{10, 20}, Line{40, 30})
	want := geometry.LineToCurve(vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 40, Y: 30})
	if d := cmp.Diff(want, sp[0].Curves[0]); d != "" {
		t.Errorf("unexpected curve (-want +got):\n%s", d)
	}
}

func TestOpsRoundTrip(t *testing.T) {
	orig := FromOps(
		Move{0, 0},
		BezierCurve{CP1: vec.Vec2{X: 0, Y: 10}, CP2: vec.Vec2{X: 10, Y: 10}, End: vec.Vec2{X: 10, Y: 0}},
		Line{5, -5},
		ClosePath{},
	)
	again := FromOps(orig[0].Ops()...)
	if d := cmp.Diff(orig, again, cmpopts.EquateApprox(0, geometry.CloseDistance)); d != "" {
		t.Errorf("round trip changed the path (-orig +again):\n%s", d)
	}
}

func TestFromData(t *testing.T) {
	p := (&path.Data{}).MoveTo(vec.Vec2{X: 0, Y: 0}).LineTo(vec.Vec2{X: 10, Y: 0}).LineTo(vec.Vec2{X: 10, Y: 10}).Close()
	sp := FromData(p)
	if len(sp) != 1 || !sp[0].Closed || len(sp[0].Curves) != 3 {
		t.Fatalf("unexpected subpaths %+v", sp)
	}
	checkConnected(t, &sp[0])

	b := Bounds(sp)
	want := geometry.BoundingBox{Max: vec.Vec2{X: 10, Y: 10}}
	if b != want {
		t.Errorf("bounds %v, want %v", b, want)
	}
}

func TestTransform(t *testing.T) {
	sp := FromOps(Move{1, 1}, Line{2, 1})
	moved := Transform(sp, geometry.Translate(10, 0))
	if moved[0].Start != (vec.Vec2{X: 11, Y: 1}) || moved[0].End() != (vec.Vec2{X: 12, Y: 1}) {
		t.Errorf("unexpected transformed subpath %+v", moved[0])
	}
	if sp[0].Start != (vec.Vec2{X: 1, Y: 1}) {
		t.Error("Transform modified its input")
	}
}
