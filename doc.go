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

// Package scanline is a 2D vector graphics stack built around a software
// edge-plan rasterizer.
//
// Drawing commands (package canvas) are submitted to a scene (package
// scene), which keeps the drawing state and translates fills and strokes
// into labelled edges (package edges) collected in an edge plan (package
// edgeplan). The scanline renderer (package render) walks the edge plan
// one sub-scanline at a time, resolves the fill rules and runs the pixel
// programs (package pixel) of the visible shapes.
//
// This package only holds the logger shared by all sub-packages.
package scanline
