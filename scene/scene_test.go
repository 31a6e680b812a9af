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

package scene

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/binding"
	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/scheduler"
)

var red = canvas.RGBA(1, 0, 0, 1)

func newTestScene(t *testing.T, w, h int, opts ...Option) *Scene {
	t.Helper()
	opts = append([]Option{WithScheduler(scheduler.New())}, opts...)
	s := New(w, h, opts...)
	t.Cleanup(s.Shutdown)
	return s
}

func draw(t *testing.T, s *Scene, cmds ...[]canvas.Draw) *image.RGBA {
	t.Helper()
	var all []canvas.Draw
	for _, c := range cmds {
		all = append(all, c...)
	}
	if err := s.Draw(all...); err != nil {
		t.Fatal(err)
	}
	return s.RenderImage()
}

func cmds(c ...canvas.Draw) []canvas.Draw { return c }

func alphaAt(img *image.RGBA, x, y int) uint8 {
	return img.RGBAAt(x, y).A
}

func TestFillRect(t *testing.T) {
	s := newTestScene(t, 10, 10)
	img := draw(t, s,
		cmds(canvas.FillColor{Color: red}),
		canvas.Rect(2, 2, 8, 8),
		cmds(canvas.Fill{}))

	if c := img.RGBAAt(5, 5); c.R != 255 || c.G != 0 || c.A != 255 {
		t.Errorf("inside: got %v", c)
	}
	if a := alphaAt(img, 0, 0); a != 0 {
		t.Errorf("outside: alpha %d", a)
	}
	if a := alphaAt(img, 8, 5); a != 0 {
		t.Errorf("right of rectangle: alpha %d", a)
	}
}

func star(cx, cy, r float64) []canvas.Draw {
	var res []canvas.Draw
	for k := range 5 {
		phi := (-90 + 144*float64(k)) * math.Pi / 180
		x, y := cx+r*math.Cos(phi), cy+r*math.Sin(phi)
		if k == 0 {
			res = append(res, canvas.Move{X: x, Y: y})
		} else {
			res = append(res, canvas.Line{X: x, Y: y})
		}
	}
	return append(res, canvas.ClosePath{})
}

func TestStarFillRules(t *testing.T) {
	for _, tc := range []struct {
		rule       canvas.WindingRule
		centreFill bool
	}{
		{canvas.NonZero, true},
		{canvas.EvenOdd, false},
	} {
		s := newTestScene(t, 100, 100)
		img := draw(t, s,
			cmds(canvas.FillRule{Rule: tc.rule}),
			star(50, 50, 45),
			cmds(canvas.Fill{}))

		if got := alphaAt(img, 50, 50) == 255; got != tc.centreFill {
			t.Errorf("rule %d: centre filled=%t", tc.rule, got)
		}
		if a := alphaAt(img, 50, 12); a != 255 {
			t.Errorf("rule %d: tip alpha %d", tc.rule, a)
		}
	}
}

func TestDashedLine(t *testing.T) {
	s := newTestScene(t, 100, 20)
	img := draw(t, s, cmds(
		canvas.LineWidth{Width: 4},
		canvas.LineCapStyle{Cap: canvas.CapButt},
		canvas.NewDashPattern{},
		canvas.DashLength{Length: 10},
		canvas.DashLength{Length: 10},
		canvas.Move{X: 0, Y: 10},
		canvas.Line{X: 100, Y: 10},
		canvas.Stroke{},
	))

	var runs []int
	inRun := false
	for x := range 100 {
		on := alphaAt(img, x, 10) > 127
		switch {
		case on && !inRun:
			runs = append(runs, 1)
		case on:
			runs[len(runs)-1]++
		}
		inRun = on
	}
	if len(runs) != 5 {
		t.Fatalf("got %d dashes %v, want 5", len(runs), runs)
	}
	for i, w := range runs {
		if w != 10 {
			t.Errorf("dash %d has width %d", i, w)
		}
	}
}

func TestStrokeBeyondViewport(t *testing.T) {
	s := newTestScene(t, 100, 20)
	img := draw(t, s, cmds(
		canvas.LineWidth{Width: 4},
		canvas.LineCapStyle{Cap: canvas.CapButt},
		canvas.Move{X: -50, Y: 10},
		canvas.Line{X: 150, Y: 10},
		canvas.Stroke{},
	))
	for x := range 100 {
		if a := alphaAt(img, x, 10); a != 255 {
			t.Fatalf("column %d: alpha %d", x, a)
		}
	}
	if a := alphaAt(img, 50, 2); a != 0 {
		t.Errorf("above the line: alpha %d", a)
	}
}

func TestClipIntersection(t *testing.T) {
	fillAll := cmds(canvas.NewPath{}, canvas.FillColor{Color: red})
	fillAll = append(fillAll, canvas.Rect(0, 0, 100, 100)...)
	fillAll = append(fillAll, canvas.Fill{})

	a := newTestScene(t, 100, 100)
	imgA := draw(t, a,
		canvas.Rect(10, 10, 60, 60), cmds(canvas.Clip{}, canvas.NewPath{}),
		canvas.Rect(30, 30, 90, 90), cmds(canvas.Clip{}),
		fillAll)

	b := newTestScene(t, 100, 100)
	imgB := draw(t, b,
		canvas.Rect(30, 30, 60, 60), cmds(canvas.Clip{}),
		fillAll)

	if !bytes.Equal(imgA.Pix, imgB.Pix) {
		t.Error("clipping twice differs from clipping to the intersection")
	}
	if alphaAt(imgA, 45, 45) != 255 || alphaAt(imgA, 20, 20) != 0 || alphaAt(imgA, 70, 70) != 0 {
		t.Error("unexpected clip region")
	}
}

func TestUnclip(t *testing.T) {
	s := newTestScene(t, 20, 20)
	img := draw(t, s,
		canvas.Rect(0, 0, 5, 5), cmds(canvas.Clip{}, canvas.Unclip{}, canvas.NewPath{}),
		canvas.Rect(0, 0, 20, 20), cmds(canvas.Fill{}))
	if a := alphaAt(img, 15, 15); a != 255 {
		t.Errorf("alpha %d after Unclip", a)
	}
}

func TestTransformComposition(t *testing.T) {
	shape := append(canvas.Rect(0, 0, 10, 10), canvas.Fill{})

	a := newTestScene(t, 50, 50)
	imgA := draw(t, a,
		cmds(canvas.Translate{X: 10, Y: 5}, canvas.Rotate{Degrees: 30}, canvas.Scale{X: 2, Y: 1.5}),
		shape)

	m := geometry.Scale(2, 1.5).
		Then(geometry.Rotate(30 * math.Pi / 180)).
		Then(geometry.Translate(10, 5))
	b := newTestScene(t, 50, 50)
	imgB := draw(t, b, cmds(canvas.MultiplyTransform{Transform: m}), shape)

	for i := range imgA.Pix {
		d := int(imgA.Pix[i]) - int(imgB.Pix[i])
		if d < -1 || d > 1 {
			t.Fatalf("byte %d: %d vs %d", i, imgA.Pix[i], imgB.Pix[i])
		}
	}
}

func TestCanvasHeight(t *testing.T) {
	s := newTestScene(t, 100, 100)
	// With a canvas height of 2, y points up and (0, 0) is the centre.
	img := draw(t, s,
		cmds(canvas.CanvasHeight{Height: 2}),
		canvas.Rect(0, 0, 1, 1),
		cmds(canvas.Fill{}))
	if a := alphaAt(img, 75, 25); a != 255 {
		t.Errorf("upper right quadrant: alpha %d", a)
	}
	if a := alphaAt(img, 75, 75); a != 0 {
		t.Errorf("lower right quadrant: alpha %d", a)
	}
}

func complexScene() []canvas.Draw {
	res := cmds(canvas.ClearCanvas{Color: canvas.White}, canvas.FillColor{Color: canvas.RGBA(0, 0.5, 1, 0.7)})
	res = append(res, canvas.Circle(40, 40, 30)...)
	res = append(res, canvas.Fill{}, canvas.NewPath{}, canvas.FillColor{Color: canvas.RGBA(1, 0.2, 0, 0.5)})
	res = append(res, canvas.Ellipse(60, 50, 35, 15, 0.4)...)
	res = append(res, canvas.Fill{}, canvas.StrokeColor{Color: canvas.Black}, canvas.LineWidth{Width: 3},
		canvas.LineJoinStyle{Join: canvas.JoinRound}, canvas.Stroke{})
	return res
}

func TestDeterministic(t *testing.T) {
	a := newTestScene(t, 100, 100)
	b := newTestScene(t, 100, 100)
	imgA := draw(t, a, complexScene())
	imgB := draw(t, b, complexScene())
	if !bytes.Equal(imgA.Pix, imgB.Pix) {
		t.Error("rendering is not deterministic")
	}
	if again := a.RenderImage(); !bytes.Equal(again.Pix, imgA.Pix) {
		t.Error("rendering the same frame twice differs")
	}
}

func TestOpaqueFillIdempotent(t *testing.T) {
	shape := append(canvas.Circle(25, 25, 17), canvas.Fill{})

	once := newTestScene(t, 50, 50)
	imgOnce := draw(t, once, cmds(canvas.FillColor{Color: red}), shape)

	twice := newTestScene(t, 50, 50)
	imgTwice := draw(t, twice, cmds(canvas.FillColor{Color: red}), shape, shape)

	// Antialiased edges accumulate, so only compare fully covered pixels.
	for y := range 50 {
		for x := range 50 {
			if alphaAt(imgOnce, x, y) == 255 && imgOnce.RGBAAt(x, y) != imgTwice.RGBAAt(x, y) {
				t.Fatalf("pixel (%d, %d) changed", x, y)
			}
		}
	}
}

func TestGradientReadyOnFirstUse(t *testing.T) {
	s := newTestScene(t, 20, 20)
	const g canvas.GradientHandle = 1
	err := s.Draw(
		canvas.NewGradient{Gradient: g, Color: canvas.Black},
		canvas.GradientStop{Gradient: g, Pos: 1, Color: canvas.White},
	)
	if err != nil {
		t.Fatal(err)
	}
	gr := s.core.gradients[key[canvas.GradientHandle]{canvas.DefaultNamespace, g}]
	if gr.ready {
		t.Fatal("gradient is Ready before use")
	}

	img := draw(t, s,
		cmds(canvas.FillGradient{Gradient: g, X1: 0, Y1: 0, X2: 20, Y2: 0}),
		canvas.Rect(0, 0, 20, 20),
		cmds(canvas.Fill{}))
	if !gr.ready {
		t.Fatal("gradient is not Ready after use")
	}
	if gr.texture < action.FirstFreeID {
		t.Errorf("gradient uses reserved texture id %d", gr.texture)
	}
	if s.Frame().Textures[gr.texture] == nil {
		t.Error("gradient texture missing from frame")
	}
	left, right := img.RGBAAt(1, 10), img.RGBAAt(18, 10)
	if !(left.R < 40 && right.R > 215) {
		t.Errorf("unexpected gradient colours %v ... %v", left, right)
	}

	// Adding a stop makes the gradient Defined again.
	if err := s.Draw(canvas.GradientStop{Gradient: g, Pos: 0.5, Color: red}); err != nil {
		t.Fatal(err)
	}
	if gr.ready {
		t.Error("gradient stays Ready after a new stop")
	}
}

func TestTexture(t *testing.T) {
	s := newTestScene(t, 20, 20)
	const tex canvas.TextureHandle = 3
	data := bytes.Repeat([]byte{0, 0, 255, 255}, 4)
	img := draw(t, s,
		cmds(
			canvas.CreateTexture{Texture: tex, Width: 2, Height: 2},
			canvas.SetTextureBytes{Texture: tex, W: 2, H: 2, Bytes: data},
			canvas.FillTexture{Texture: tex, X1: 0, Y1: 0, X2: 20, Y2: 20},
		),
		canvas.Rect(0, 0, 20, 20),
		cmds(canvas.Fill{}))
	if c := img.RGBAAt(10, 10); c.B != 255 || c.R != 0 || c.A != 255 {
		t.Errorf("got %v, want blue", c)
	}
}

func TestSprite(t *testing.T) {
	s := newTestScene(t, 50, 50)
	img := draw(t, s,
		cmds(canvas.Sprite{Sprite: 1}, canvas.FillColor{Color: red}),
		canvas.Rect(0, 0, 10, 10),
		cmds(
			canvas.Fill{},
			canvas.Layer{Layer: 0},
			canvas.SpriteTransform{Transform: geometry.Translate(20, 20)},
			canvas.DrawSprite{Sprite: 1},
		))

	if c := img.RGBAAt(25, 25); c.R != 255 || c.A != 255 {
		t.Errorf("sprite not drawn: %v", c)
	}
	if a := alphaAt(img, 5, 5); a != 0 {
		t.Errorf("sprite drawn at the origin: alpha %d", a)
	}
}

func TestSpriteCycle(t *testing.T) {
	buf := &bytes.Buffer{}
	scanline.SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	defer scanline.SetLogger(nil)

	s := newTestScene(t, 20, 20, WithRenderOptions())
	img := draw(t, s, cmds(
		canvas.Sprite{Sprite: 1},
		canvas.Sprite{Sprite: 2},
		canvas.DrawSprite{Sprite: 1},
		canvas.Sprite{Sprite: 1},
		canvas.DrawSprite{Sprite: 2},
		canvas.Layer{Layer: 0},
		canvas.DrawSprite{Sprite: 1},
	))

	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("sprite cycle produced visible pixels")
		}
	}
	if !strings.Contains(buf.String(), "sprite cycle") {
		t.Errorf("no warning logged: %q", buf.String())
	}
}

func TestDynamicTexture(t *testing.T) {
	s := newTestScene(t, 20, 20)
	const tex canvas.TextureHandle = 1
	paint := func(c canvas.Color) []canvas.Draw {
		res := cmds(canvas.Sprite{Sprite: 7}, canvas.ClearSprite{}, canvas.NewPath{}, canvas.FillColor{Color: c})
		res = append(res, canvas.Rect(0, 0, 10, 10)...)
		return append(res, canvas.Fill{}, canvas.Layer{Layer: 0})
	}
	useTexture := append(cmds(
		canvas.NewPath{},
		canvas.FillTexture{Texture: tex, X1: 0, Y1: 0, X2: 20, Y2: 20},
	), canvas.Rect(0, 0, 20, 20)...)
	useTexture = append(useTexture, canvas.Fill{})

	img := draw(t, s, paint(red), cmds(canvas.CreateDynamicTexture{
		Texture: tex, Sprite: 7, W: 10, H: 10, CanvasWidth: 20, CanvasHeight: 20,
	}), useTexture)
	if c := img.RGBAAt(10, 10); c.R != 255 || c.A != 255 {
		t.Errorf("got %v, want red", c)
	}

	d := s.core.canvasTextures[key[canvas.TextureHandle]{canvas.DefaultNamespace, tex}].dynamic
	before := *d.last
	if before.Viewport != [2]int{20, 20} {
		t.Errorf("recorded viewport %v", before.Viewport)
	}

	img = draw(t, s, paint(canvas.RGBA(0, 0, 1, 1)))
	if *d.last == before {
		t.Error("texture was not rendered again after the sprite changed")
	}
	if c := img.RGBAAt(10, 10); c.B != 255 || c.R != 0 {
		t.Errorf("got %v, want blue", c)
	}
}

func TestStoreRestore(t *testing.T) {
	s := newTestScene(t, 20, 20)
	draw(t, s, canvas.Rect(0, 0, 5, 5), cmds(canvas.Fill{}, canvas.Store{}))
	l := s.core.layers[0]
	n := l.plan.NumShapes()

	img := draw(t, s, cmds(canvas.NewPath{}), canvas.Rect(10, 10, 20, 20), cmds(canvas.Fill{}))
	if alphaAt(img, 15, 15) != 255 {
		t.Fatal("second rectangle not drawn")
	}

	img = draw(t, s, cmds(canvas.Restore{}))
	if got := l.plan.NumShapes(); got != n {
		t.Errorf("%d shapes after Restore, want %d", got, n)
	}
	if alphaAt(img, 15, 15) != 0 || alphaAt(img, 2, 2) != 255 {
		t.Error("Restore did not return to the stored content")
	}
}

func TestPushPopState(t *testing.T) {
	s := newTestScene(t, 20, 20)
	err := s.Draw(
		canvas.FillColor{Color: red},
		canvas.PushState{},
		canvas.FillColor{Color: canvas.White},
		canvas.Translate{X: 5, Y: 5},
		canvas.PopState{},
	)
	if err != nil {
		t.Fatal(err)
	}
	st := s.core.state
	if st.fill.color != red {
		t.Errorf("fill colour %v after PopState", st.fill.color)
	}
	if !st.transform.Equal(geometry.Identity, 1e-12) {
		t.Errorf("transform %v after PopState", st.transform)
	}
}

func TestNamespaces(t *testing.T) {
	s := newTestScene(t, 20, 20)
	ns := canvas.NewNamespaceID()
	err := s.Draw(
		canvas.Namespace{Namespace: ns},
		canvas.CreateTexture{Texture: 1, Width: 1, Height: 1},
		canvas.Namespace{Namespace: canvas.DefaultNamespace},
		canvas.FillColor{Color: red},
	)
	if err != nil {
		t.Fatal(err)
	}

	err = s.Draw(canvas.FillTexture{Texture: 1, X2: 1, Y2: 1})
	if !errors.Is(err, ErrResourceMissing) {
		t.Fatalf("got %v, want ErrResourceMissing", err)
	}
	if st := s.core.state; st.fill.kind != fillSolid || st.fill.color != red {
		t.Error("failed command changed the fill state")
	}

	err = s.Draw(canvas.Namespace{Namespace: ns}, canvas.FillTexture{Texture: 1, X2: 1, Y2: 1})
	if err != nil {
		t.Errorf("texture not found in its own namespace: %v", err)
	}
}

func TestMissingResources(t *testing.T) {
	s := newTestScene(t, 20, 20)
	for _, cmd := range []canvas.Draw{
		canvas.DrawSprite{Sprite: 9},
		canvas.FillGradient{Gradient: 9},
		canvas.GradientStop{Gradient: 9, Pos: 0.5},
		canvas.FreeTexture{Texture: 9},
		canvas.SetTextureBytes{Texture: 9},
		canvas.FontSize{Font: 9, Size: 10},
		canvas.CreateDynamicTexture{Texture: 1, Sprite: 9},
	} {
		if err := s.Draw(cmd); !errors.Is(err, ErrResourceMissing) {
			t.Errorf("%T: got %v", cmd, err)
		}
	}
}

func TestText(t *testing.T) {
	s := newTestScene(t, 80, 40)
	img := draw(t, s, cmds(
		canvas.DefineFont{Font: 1, Data: goregular.TTF},
		canvas.FontSize{Font: 1, Size: 20},
		canvas.DrawText{Font: 1, Text: "Hi", X: 5, Y: 30},
	))

	covered := 0
	for y := range 40 {
		for x := range 80 {
			if alphaAt(img, x, y) > 127 {
				covered++
				if y > 31 {
					t.Fatalf("ink below the baseline at (%d, %d)", x, y)
				}
			}
		}
	}
	if covered < 20 {
		t.Errorf("only %d pixels covered", covered)
	}
}

func TestLayerAlpha(t *testing.T) {
	s := newTestScene(t, 10, 10)
	img := draw(t, s,
		cmds(canvas.LayerAlpha{Layer: 0, Alpha: 0.5}, canvas.FillColor{Color: red}),
		canvas.Rect(0, 0, 10, 10),
		cmds(canvas.Fill{}))
	if a := alphaAt(img, 5, 5); a < 125 || a > 131 {
		t.Errorf("alpha %d, want about 128", a)
	}
}

func TestSwapLayers(t *testing.T) {
	s := newTestScene(t, 10, 10)
	img := draw(t, s,
		cmds(canvas.Layer{Layer: 1}, canvas.FillColor{Color: red}), canvas.Rect(0, 0, 10, 10), cmds(canvas.Fill{}),
		cmds(canvas.Layer{Layer: 2}, canvas.FillColor{Color: canvas.White}), canvas.Rect(0, 0, 10, 10), cmds(canvas.Fill{}),
		cmds(canvas.SwapLayers{A: 1, B: 2}))
	if c := img.RGBAAt(5, 5); c.G != 0 {
		t.Errorf("got %v, want red on top", c)
	}
}

func TestEdgeModesAgree(t *testing.T) {
	modes := []EdgeMode{EdgeModeBezier, EdgeModeFlattened, EdgeModeContour}
	var imgs []*image.RGBA
	for _, mode := range modes {
		s := newTestScene(t, 60, 60, WithEdgeMode(mode))
		imgs = append(imgs, draw(t, s, canvas.Circle(30, 30, 20), cmds(canvas.Fill{})))
	}
	for i := 1; i < len(imgs); i++ {
		bad := 0
		for y := range 60 {
			for x := range 60 {
				d := int(alphaAt(imgs[0], x, y)) - int(alphaAt(imgs[i], x, y))
				if d < -128 || d > 128 {
					bad++
				}
			}
		}
		if bad > 40 {
			t.Errorf("edge mode %v: %d pixels differ", modes[i], bad)
		}
	}
}

func TestSubmit(t *testing.T) {
	s := newTestScene(t, 10, 10)
	frames, err := binding.Lookup[uint64](s.Properties(), PropertyFrame)
	if err != nil {
		t.Fatal(err)
	}
	before := frames.Get()

	err = s.Submit(append(canvas.Rect(0, 0, 10, 10), canvas.Fill{}, canvas.DrawSprite{Sprite: 5})...)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Sync(); err != nil {
		t.Fatal(err)
	}
	if frames.Get() != before+1 {
		t.Errorf("frame counter %d, want %d", frames.Get(), before+1)
	}
	if a := alphaAt(s.RenderImage(), 5, 5); a != 255 {
		t.Errorf("alpha %d after Submit", a)
	}
}

func TestViewport(t *testing.T) {
	s := newTestScene(t, 10, 10)
	size, err := binding.Lookup[[2]int](s.Properties(), PropertySize)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetViewport(30, 20); err != nil {
		t.Fatal(err)
	}
	if got := size.Get(); got != [2]int{30, 20} {
		t.Errorf("size %v", got)
	}
	if b := s.RenderImage().Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("image bounds %v", b)
	}
}

func TestTrySync(t *testing.T) {
	s := newTestScene(t, 10, 10)
	block := make(chan struct{})
	if err := s.queue.Desync(func() { <-block }); err != nil {
		t.Fatal(err)
	}
	if err := s.TrySync(canvas.Fill{}); !errors.Is(err, scheduler.ErrWouldBlock) {
		t.Errorf("got %v, want ErrWouldBlock", err)
	}
	close(block)
	if err := s.Sync(); err != nil {
		t.Fatal(err)
	}
	if err := s.TrySync(canvas.NewPath{}); err != nil {
		t.Errorf("TrySync on an idle scene: %v", err)
	}
}

func TestShutdown(t *testing.T) {
	s := New(10, 10, WithScheduler(scheduler.New()))
	if err := s.Draw(canvas.Rect(0, 0, 10, 10)...); err != nil {
		t.Fatal(err)
	}
	follow := binding.Follow[uint64](s.Properties(), "not-yet-published")

	s.Shutdown()
	s.Shutdown()

	if err := s.Draw(canvas.Fill{}); !errors.Is(err, ErrSceneClosed) {
		t.Errorf("Draw: got %v", err)
	}
	if err := s.Submit(canvas.Fill{}); !errors.Is(err, ErrSceneClosed) {
		t.Errorf("Submit: got %v", err)
	}
	if err := s.Sync(); !errors.Is(err, ErrSceneClosed) {
		t.Errorf("Sync: got %v", err)
	}
	if _, err := follow.TryGet(); !errors.Is(err, binding.ErrBindingAbandoned) {
		t.Errorf("pending property: got %v", err)
	}
}

func TestPanicInCommand(t *testing.T) {
	s := newTestScene(t, 10, 10)
	err := s.queue.Sync(func() { panic("boom") })
	if !errors.Is(err, scheduler.ErrPanicked) {
		t.Fatalf("got %v, want ErrPanicked", err)
	}
	if err := s.Draw(canvas.Fill{}); !errors.Is(err, scheduler.ErrPanicked) {
		t.Errorf("Draw after panic: got %v", err)
	}
}

func TestIDSequence(t *testing.T) {
	seq := newIDSequence[action.TextureID](action.FirstFreeID)
	a, b := seq.alloc(), seq.alloc()
	if a != action.FirstFreeID || b != action.FirstFreeID+1 {
		t.Fatalf("got %d, %d", a, b)
	}
	seq.release(a)
	if c := seq.alloc(); c != a {
		t.Errorf("released id not reused: %d", c)
	}
}

var blue = canvas.RGBA(0, 0, 1, 1)

func solidTexture(h canvas.TextureHandle, col canvas.Color) []canvas.Draw {
	c := col.Rgba8()
	return cmds(
		canvas.CreateTexture{Texture: h, Width: 2, Height: 2},
		canvas.SetTextureBytes{Texture: h, W: 2, H: 2, Bytes: bytes.Repeat(c[:], 4)},
	)
}

func TestFreedTextureKeepsShapes(t *testing.T) {
	s := newTestScene(t, 20, 20)
	draw(t, s,
		solidTexture(1, red),
		cmds(canvas.FillTexture{Texture: 1, X2: 20, Y2: 20}),
		canvas.Rect(0, 0, 10, 20),
		cmds(canvas.Fill{}))
	old := s.core.canvasTextures[key[canvas.TextureHandle]{canvas.DefaultNamespace, 1}].id

	img := draw(t, s,
		cmds(canvas.FreeTexture{Texture: 1}),
		solidTexture(2, blue),
		cmds(canvas.FillTexture{Texture: 2, X2: 20, Y2: 20}, canvas.NewPath{}),
		canvas.Rect(10, 0, 20, 20),
		cmds(canvas.Fill{}))
	if c := img.RGBAAt(5, 10); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("shape with freed texture: got %v, want red", c)
	}
	if c := img.RGBAAt(15, 10); c != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("shape with new texture: got %v, want blue", c)
	}
	if id := s.core.canvasTextures[key[canvas.TextureHandle]{canvas.DefaultNamespace, 2}].id; id == old {
		t.Errorf("texture id %d reused while still in use", id)
	}

	// Once the last shape is gone, the freed texture is dropped.
	draw(t, s, cmds(canvas.ClearLayer{}))
	if s.core.uses.inUse(old) {
		t.Errorf("texture %d still in use after ClearLayer", old)
	}
	if s.Frame().Textures[old] != nil {
		t.Errorf("texture %d still in the frame after ClearLayer", old)
	}
}

func TestRedefinedGradientKeepsShapes(t *testing.T) {
	s := newTestScene(t, 30, 10)
	const g canvas.GradientHandle = 1
	img := draw(t, s,
		cmds(
			canvas.NewGradient{Gradient: g, Color: red},
			canvas.GradientStop{Gradient: g, Pos: 1, Color: red},
			canvas.FillGradient{Gradient: g, X2: 30},
		),
		canvas.Rect(0, 0, 10, 10),
		cmds(
			canvas.Fill{},
			// a new stop makes the gradient Defined again
			canvas.GradientStop{Gradient: g, Pos: 0.5, Color: canvas.Black},
			canvas.NewGradient{Gradient: g, Color: blue},
			canvas.GradientStop{Gradient: g, Pos: 1, Color: blue},
			canvas.FillGradient{Gradient: g, X2: 30},
			canvas.NewPath{},
		),
		canvas.Rect(10, 0, 20, 10),
		cmds(
			canvas.Fill{},
			canvas.NewGradient{Gradient: 2, Color: blue},
			canvas.FillGradient{Gradient: 2, X2: 30},
			canvas.NewPath{},
		),
		canvas.Rect(20, 0, 30, 10),
		cmds(canvas.Fill{}))

	for _, tc := range []struct {
		x    int
		want color.RGBA
	}{
		{5, color.RGBA{255, 0, 0, 255}},
		{15, color.RGBA{0, 0, 255, 255}},
		{25, color.RGBA{0, 0, 255, 255}},
	} {
		if c := img.RGBAAt(tc.x, 5); c != tc.want {
			t.Errorf("x=%d: got %v, want %v", tc.x, c, tc.want)
		}
	}
}

func TestSpriteStrokeOutsideViewport(t *testing.T) {
	s := newTestScene(t, 50, 50)
	img := draw(t, s, cmds(
		canvas.Sprite{Sprite: 1},
		canvas.LineWidth{Width: 4},
		canvas.Move{X: 60, Y: 5},
		canvas.Line{X: 90, Y: 5},
		canvas.Stroke{},
		canvas.Layer{Layer: 0},
		canvas.SpriteTransform{Transform: geometry.Translate(-50, 20)},
		canvas.DrawSprite{Sprite: 1},
	))
	if a := alphaAt(img, 25, 25); a != 255 {
		t.Errorf("stroke from sprite: alpha %d, want 255", a)
	}
}

func TestSpriteAndLayerEdges(t *testing.T) {
	edge := func(img *image.RGBA) uint8 { return alphaAt(img, 5, 5) }

	direct := newTestScene(t, 20, 10)
	want := edge(draw(t, direct, canvas.Rect(5.5, 0, 20, 10), cmds(canvas.Fill{})))
	if want < 126 || want > 129 {
		t.Fatalf("direct edge alpha %d, want about 128", want)
	}

	sprite := newTestScene(t, 20, 10)
	got := edge(draw(t, sprite,
		cmds(canvas.Sprite{Sprite: 1}),
		canvas.Rect(5.5, 0, 20, 10),
		cmds(canvas.Fill{}, canvas.Layer{Layer: 0}, canvas.DrawSprite{Sprite: 1})))
	if d := int(got) - int(want); d < -1 || d > 1 {
		t.Errorf("sprite edge alpha %d, want %d", got, want)
	}

	layer := newTestScene(t, 20, 10)
	got = edge(draw(t, layer,
		cmds(canvas.LayerAlpha{Layer: 0, Alpha: 0.999}),
		canvas.Rect(5.5, 0, 20, 10),
		cmds(canvas.Fill{})))
	if d := int(got) - int(want); d < -1 || d > 1 {
		t.Errorf("translucent layer edge alpha %d, want about %d", got, want)
	}
}
