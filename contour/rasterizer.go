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

// Package contour computes exact pixel coverage for device space paths and
// turns sampled scalar fields into scanline crossings.
//
// The coverage rasterizer accumulates, for every pixel, the signed
// vertical extent of all edges crossing the pixel (cover) and the part of
// that extent to the right of the edge (area).  A running sum along each
// row then gives the fraction of every pixel inside the path.
package contour

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/subpath"
)

const (
	// horizontalThreshold is the minimum vertical extent for a segment
	// to contribute to coverage.
	horizontalThreshold = 1e-10

	// smallPathThreshold is the maximum bounding box area, in pixels, for
	// which whole-path 2D buffers are used.  Larger paths are processed
	// one row at a time with an active segment list.
	smallPathThreshold = 65536

	defaultFlatness = 0.25
)

// segment is a line segment in device coordinates.
type segment struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// Rasterizer computes the fraction of each pixel covered by a path.
// Internal buffers grow as needed and are reused between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip limits the output to this rectangle.  The coordinates must be
	// integers.
	Clip rect.Rect

	// Flatness is the tolerance for approximating curves, in pixels.
	Flatness float64

	smallPathThreshold int

	cover       []float32
	area        []float32
	segs        []segment
	active      []int
	rowHasEdges []bool
	box         rect.Rect
	haveBox     bool
}

// NewRasterizer returns a Rasterizer for the given clip rectangle.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Clip:               clip,
		Flatness:           defaultFlatness,
		smallPathThreshold: smallPathThreshold,
	}
}

// Reset prepares the rasterizer for a new clip rectangle.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.Clip = clip
	r.segs = r.segs[:0]
	r.haveBox = false
}

// Fill computes the coverage of the subpaths, which are given in device
// coordinates.  Open subpaths are closed implicitly.  The emit callback
// receives the coverage row by row; its slice argument is only valid
// during the call.
func (r *Rasterizer) Fill(sps []subpath.Subpath, rule edgeplan.FillRule, emit func(y, xMin int, coverage []float32)) {
	r.segs = r.segs[:0]
	r.haveBox = false
	flatness := r.Flatness
	if flatness <= 0 {
		flatness = defaultFlatness
	}
	for i := range sps {
		sp := &sps[i]
		for _, c := range sp.Curves {
			c.Flatten(flatness, r.addSegment)
		}
		if end := sp.End(); end != sp.Start {
			r.addSegment(end, sp.Start)
		}
	}
	r.run(rule, emit)
}

// FillPolygons computes the coverage of closed polygons in device
// coordinates.
func (r *Rasterizer) FillPolygons(polys [][]vec.Vec2, rule edgeplan.FillRule, emit func(y, xMin int, coverage []float32)) {
	r.segs = r.segs[:0]
	r.haveBox = false
	for _, poly := range polys {
		for j := range poly {
			r.addSegment(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.run(rule, emit)
}

func (r *Rasterizer) addSegment(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalThreshold && dy < horizontalThreshold {
		return
	}
	r.segs = append(r.segs, segment{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	lo := vec.Vec2{X: min(p0.X, p1.X), Y: min(p0.Y, p1.Y)}
	hi := vec.Vec2{X: max(p0.X, p1.X), Y: max(p0.Y, p1.Y)}
	if !r.haveBox {
		r.box = rect.Rect{LLx: lo.X, LLy: lo.Y, URx: hi.X, URy: hi.Y}
		r.haveBox = true
		return
	}
	r.box.LLx = min(r.box.LLx, lo.X)
	r.box.LLy = min(r.box.LLy, lo.Y)
	r.box.URx = max(r.box.URx, hi.X)
	r.box.URy = max(r.box.URy, hi.Y)
}

// run rasterizes the collected segments.
func (r *Rasterizer) run(rule edgeplan.FillRule, emit func(y, xMin int, coverage []float32)) {
	if len(r.segs) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.box.LLx)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.box.URx))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.box.LLy)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.box.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// accumulate adds the contribution of one segment within the pixel row
// [y, y+1) to cover and area.  Both buffers are indexed by x - xMin.
// Contributions left of the buffer are folded into the first pixel.
func accumulate(e *segment, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	switch {
	case pixRight < xMin:
		v := sign * float32(yBot-yTop)
		cover[0] += v
		area[0] += v
		return
	case pixLeft >= xMax:
		return
	case pixLeft == pixRight:
		accumulateColumn(e, yTop, yBot, sign, pixLeft, cover, area, xMin, xMax)
		return
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		accumulateColumn(e, lo, hi, sign, pix, cover, area, xMin, xMax)
	}
}

// accumulateColumn handles the part of a segment inside one pixel column.
func accumulateColumn(e *segment, yTop, yBot float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	v := sign * float32(yBot-yTop)
	if pix < xMin {
		cover[0] += v
		area[0] += v
		return
	}
	if pix >= xMax {
		return
	}
	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	frac := xMid - float64(pix)
	idx := pix - xMin
	cover[idx] += v
	area[idx] += v * float32(1-frac)
}

// integrate turns accumulated cover and area values into coverage.  The
// result replaces the contents of cover.
func integrate(cover, area []float32, rule edgeplan.FillRule) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == edgeplan.EvenOdd {
			mod := raw - 2*float32(int(raw/2))
			d := 1 - mod
			if d < 0 {
				d = -d
			}
			cover[i] = 1 - d
		} else {
			cover[i] = min(raw, 1)
		}
	}
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// fillSmall rasterizes the whole path into 2D buffers.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, rule edgeplan.FillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin
	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.segs {
		e := &r.segs[i]
		y0 := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		y1 := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * width
			accumulate(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrate(coverage, r.area[off:off+width], rule)
		if trimmed, k := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+k, trimmed)
		}
	}
}

// fillLarge rasterizes one row at a time, using an active segment list.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, rule edgeplan.FillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.segs, func(a, b segment) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.segs) && min(r.segs[next].y0, r.segs[next].y1) < yf+1 {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.segs[r.active[i]]
			if max(e.y0, e.y1) <= yf {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, rule)
		if trimmed, k := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+k, trimmed)
		}
	}
}
