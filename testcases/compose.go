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
	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/geometry"
)

var (
	red   = canvas.RGBA(0.9, 0.1, 0.1, 1)
	green = canvas.RGBA(0.1, 0.7, 0.2, 1)
	blue  = canvas.RGBA(0.1, 0.2, 0.9, 1)
)

var composeCases = []TestCase{
	{
		Name:  "translucent_circles",
		Width: 96, Height: 96,
		Draw: seq(
			do(canvas.ClearCanvas{Color: canvas.White}),
			circle(red.WithAlpha(0.6), 36, 36, 24),
			circle(green.WithAlpha(0.6), 60, 36, 24),
			circle(blue.WithAlpha(0.6), 48, 58, 24),
		),
	},
	blendCase("blend_multiply", action.Multiply),
	blendCase("blend_screen", action.Screen),
	blendCase("blend_destination_out", action.DestinationOut),
	blendCase("blend_source_atop", action.SourceATop),
	{
		Name:  "layer_alpha",
		Width: 96, Height: 96,
		Draw: seq(
			do(canvas.ClearCanvas{Color: canvas.White}),
			circle(red, 36, 48, 28),
			do(canvas.Layer{Layer: 1}, canvas.LayerAlpha{Layer: 1, Alpha: 0.5}),
			// The overlap of the two blue circles is not darker, because
			// the opacity applies to the layer as a whole.
			circle(blue, 56, 36, 20),
			circle(blue, 56, 60, 20),
		),
	},
	{
		Name:  "layer_blend",
		Width: 96, Height: 96,
		Draw: seq(
			do(canvas.ClearCanvas{Color: canvas.White}),
			circle(red, 48, 48, 36),
			do(canvas.Layer{Layer: 1}, canvas.LayerBlend{Layer: 1, Mode: action.Multiply}),
			circle(green, 48, 48, 20),
		),
	},
	{
		Name:  "linear_gradient",
		Width: 128, Height: 48,
		Draw: seq(
			do(
				canvas.NewGradient{Gradient: 1, Color: red},
				canvas.GradientStop{Gradient: 1, Pos: 0.5, Color: canvas.White},
				canvas.GradientStop{Gradient: 1, Pos: 1, Color: blue},
				canvas.FillGradient{Gradient: 1, X1: 8, Y1: 0, X2: 120, Y2: 0},
			),
			canvas.Rect(0, 0, 128, 48),
			do(canvas.Fill{}),
		),
	},
	{
		Name:  "texture",
		Width: 64, Height: 64,
		Draw: seq(
			do(
				canvas.CreateTexture{Texture: 1, Width: 2, Height: 2},
				canvas.SetTextureBytes{Texture: 1, W: 2, H: 2, Bytes: []byte{
					255, 255, 255, 255, 0, 0, 0, 255,
					0, 0, 0, 255, 255, 255, 255, 255,
				}},
				canvas.FillTexture{Texture: 1, X1: 0, Y1: 0, X2: 16, Y2: 16},
			),
			canvas.Circle(32, 32, 28),
			do(canvas.Fill{}),
		),
	},
	{
		Name:  "sprites",
		Width: 96, Height: 96,
		Draw: seq(
			do(canvas.ClearCanvas{Color: canvas.White}, canvas.Sprite{Sprite: 1}),
			circle(blue, 0, 0, 8),
			do(canvas.NewPath{}, canvas.FillColor{Color: red}),
			canvas.Rect(-3, -3, 3, 3),
			do(canvas.Fill{}, canvas.Layer{Layer: 0}),
			spriteGrid(1, 4),
		),
	},
	{
		Name:  "dynamic_texture",
		Width: 96, Height: 96,
		Draw: seq(
			do(canvas.ClearCanvas{Color: canvas.White}, canvas.Sprite{Sprite: 2}),
			circle(green, 8, 8, 6),
			do(canvas.Layer{Layer: 0},
				canvas.CreateDynamicTexture{
					Texture: 5, Sprite: 2,
					W: 16, H: 16, CanvasWidth: 96, CanvasHeight: 96,
				},
				canvas.NewPath{},
				canvas.FillTexture{Texture: 5, X1: 0, Y1: 0, X2: 16, Y2: 16},
			),
			canvas.Rect(8, 8, 88, 88),
			do(canvas.Fill{}),
		),
	},
}

// circle returns the commands which fill a circle with a solid colour.
func circle(c canvas.Color, cx, cy, r float64) []canvas.Draw {
	return seq(
		do(canvas.NewPath{}, canvas.FillColor{Color: c}),
		canvas.Circle(cx, cy, r),
		do(canvas.Fill{}),
	)
}

// blendCase draws a green square over red and blue circles using the
// given blend mode.
func blendCase(name string, mode action.BlendMode) TestCase {
	return TestCase{
		Name:  name,
		Width: 96, Height: 96,
		Draw: seq(
			circle(red, 36, 48, 28),
			circle(blue, 60, 48, 28),
			do(canvas.NewPath{}, canvas.BlendMode{Mode: mode}, canvas.FillColor{Color: green.WithAlpha(0.8)}),
			canvas.Rect(24, 24, 72, 72),
			do(canvas.Fill{}),
		),
	}
}

// spriteGrid draws a sprite n by n times with different sprite
// transformations.
func spriteGrid(sprite canvas.SpriteHandle, n int) []canvas.Draw {
	var res []canvas.Draw
	step := 96 / float64(n)
	for i := range n {
		for j := range n {
			t := geometry.Rotate(float64(i*n+j) * 0.2).
				Then(geometry.Scale(1+0.15*float64(j), 1+0.15*float64(j))).
				Then(geometry.Translate((float64(i)+0.5)*step, (float64(j)+0.5)*step))
			res = append(res,
				canvas.SpriteTransform{Transform: t},
				canvas.DrawSprite{Sprite: sprite},
				canvas.IdentitySpriteTransform{},
			)
		}
	}
	return res
}
