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

package canvas

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestCircle(t *testing.T) {
	cmds := Circle(10, 20, 5)
	if len(cmds) < 3 {
		t.Fatalf("got %d commands", len(cmds))
	}
	start, ok := cmds[0].(Move)
	if !ok {
		t.Fatalf("first command is %T, want Move", cmds[0])
	}
	if _, ok := cmds[len(cmds)-1].(ClosePath); !ok {
		t.Errorf("last command is %T, want ClosePath", cmds[len(cmds)-1])
	}

	for _, cmd := range cmds[1 : len(cmds)-1] {
		c, ok := cmd.(BezierCurve)
		if !ok {
			t.Fatalf("unexpected command %T", cmd)
		}
		r := math.Hypot(c.End.X-10, c.End.Y-20)
		if math.Abs(r-5) > 1e-9 {
			t.Errorf("end point %v has radius %g", c.End, r)
		}
	}
	if math.Abs(math.Hypot(start.X-10, start.Y-20)-5) > 1e-9 {
		t.Errorf("start point %v is not on the circle", start)
	}
}

func TestEllipse(t *testing.T) {
	cmds := Ellipse(0, 0, 4, 2, 0)
	for _, cmd := range cmds {
		var x, y float64
		switch c := cmd.(type) {
		case Move:
			x, y = c.X, c.Y
		case BezierCurve:
			x, y = c.End.X, c.End.Y
		default:
			continue
		}
		if d := x*x/16 + y*y/4; math.Abs(d-1) > 1e-6 {
			t.Errorf("point (%g, %g) is not on the ellipse", x, y)
		}
	}
}

func TestRect(t *testing.T) {
	want := []Draw{
		Move{X: 1, Y: 2},
		Line{X: 3, Y: 2},
		Line{X: 3, Y: 4},
		Line{X: 1, Y: 4},
		ClosePath{},
	}
	if d := cmp.Diff(want, Rect(1, 2, 3, 4)); d != "" {
		t.Error(d)
	}
}

func TestColor(t *testing.T) {
	c := RGBA(1, 0.5, -1, 2)
	if got, want := c.Rgba8(), [4]uint8{255, 128, 0, 255}; got != want {
		t.Errorf("Rgba8() = %v, want %v", got, want)
	}

	n := FromColor(color.NRGBA{R: 255, G: 0, B: 51, A: 102})
	if d := cmp.Diff(RGBA(1, 0, 0.2, 0.4), n); d != "" {
		t.Error(d)
	}
}

func TestNamespaces(t *testing.T) {
	a, b := NewNamespaceID(), NewNamespaceID()
	if a == b || a == DefaultNamespace {
		t.Error("namespace ids are not unique")
	}
	if DefaultNamespace.String() != "default" {
		t.Errorf("DefaultNamespace.String() = %q", DefaultNamespace.String())
	}
}

func TestFromPath(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		QuadTo(vec.Vec2{X: 3, Y: 3}, vec.Vec2{X: 6, Y: 0}).
		Close()
	got := FromPath(p)
	want := []Draw{
		Move{X: 0, Y: 0},
		BezierCurve{CP1: vec.Vec2{X: 2, Y: 2}, CP2: vec.Vec2{X: 4, Y: 2}, End: vec.Vec2{X: 6, Y: 0}},
		ClosePath{},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("FromPath mismatch (-want +got):\n%s", d)
	}
}
