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

// Package render turns edge plan snapshots into rows of pixels.
//
// For every output row the renderer intersects the edge plan with k
// sub-scanlines at heights y + (i+0.5)/k.  Along each sub-scanline the
// crossings split the line into spans on which the set of visible shapes
// is constant.  Every span adds the colour of its shape stack to the
// pixels it overlaps, weighted by the overlap length.  The averaged
// linear colours are finally gamma encoded.
package render

import (
	"math"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/pixel"
)

// Slice describes a set of output rows.  Row i covers the device space
// strip YPositions[i] <= y < YPositions[i]+1 and the columns 0 <= x <
// Width.
type Slice struct {
	Width      int
	YPositions []float64
}

// Rows returns the slice for the rows y0, y0+1, ..., y1-1.
func Rows(width, y0, y1 int) Slice {
	s := Slice{Width: width}
	for y := y0; y < y1; y++ {
		s.YPositions = append(s.YPositions, float64(y))
	}
	return s
}

// RowSink receives rendered rows.  Row i of the slice is delivered as
// the i-th call.  The pixels are gamma encoded and use premultiplied
// alpha.  The row buffer is only valid during the call.
type RowSink func(i int, row []pixel.Rgba8)

// Renderer renders frames.  It owns a pool of worker goroutines, which
// are released by Close.
//
// A Renderer is safe for concurrent use.
type Renderer struct {
	opts options
	pool *workerPool
}

// New returns a renderer.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		opts: o,
		pool: newWorkerPool(o.workers),
	}
}

// Close stops the worker goroutines.  The renderer falls back to
// rendering on the calling goroutine afterwards.
func (r *Renderer) Close() {
	r.pool.close()
}

// Subsamples returns the number of sub-scanlines per row.
func (r *Renderer) Subsamples() int {
	return r.opts.subsamples
}

// minChunkRows is the smallest number of rows handed to one job.
const minChunkRows = 8

// Render renders the rows of s and passes them to sink, in order.  Rows
// are computed in parallel, in chunks of consecutive rows; sink is
// always called from the calling goroutine.
func (r *Renderer) Render(f *Frame, s Slice, sink RowSink) {
	n := len(s.YPositions)
	if n == 0 {
		return
	}
	if f == nil || f.Plan == nil {
		f = EmptyFrame()
	}
	scanline.Logger().Debug("render: frame",
		"shapes", f.Plan.NumShapes(),
		"edges", f.Plan.NumEdges(),
		"rows", n,
		"width", s.Width)

	workers := r.pool.workers
	chunk := max(minChunkRows, (n+4*workers-1)/(4*workers))
	numChunks := (n + chunk - 1) / chunk

	rows := make([][]pixel.Rgba8, n)
	done := make([]chan struct{}, numChunks)
	scratch := make([]*rowRenderer, workers)
	jobs := make([]func(int), numChunks)
	for c := range numChunks {
		lo, hi := c*chunk, min((c+1)*chunk, n)
		done[c] = make(chan struct{})
		jobs[c] = func(worker int) {
			defer close(done[c])
			var rr *rowRenderer
			if worker >= 0 {
				rr = scratch[worker]
			}
			if rr == nil {
				rr = newRowRenderer(f, s.Width, r.opts)
				if worker >= 0 {
					scratch[worker] = rr
				}
			}
			for i := lo; i < hi; i++ {
				rows[i] = make([]pixel.Rgba8, s.Width)
				rr.renderRow(s.YPositions[i], rows[i])
			}
		}
	}

	// Jobs which could not be queued, because the pool is closed, run
	// on the calling goroutine.
	for _, job := range jobs[r.pool.submit(jobs):] {
		job(-1)
	}

	for c := range numChunks {
		<-done[c]
		lo, hi := c*chunk, min((c+1)*chunk, n)
		for i := lo; i < hi; i++ {
			sink(i, rows[i])
		}
	}
}

// RenderRow renders a single row on the calling goroutine.
func (r *Renderer) RenderRow(f *Frame, y float64, row []pixel.Rgba8) {
	if f == nil || f.Plan == nil {
		f = EmptyFrame()
	}
	newRowRenderer(f, len(row), r.opts).renderRow(y, row)
}

// rowRenderer holds the scratch space of one worker.
type rowRenderer struct {
	frame   *Frame
	k       int
	gamma   float64
	scanner *edgeplan.Scanner
	cov     *edgeplan.Coverage
	ctx     *frameContext
	acc     []pixel.Color
}

func newRowRenderer(f *Frame, width int, o options) *rowRenderer {
	return &rowRenderer{
		frame:   f,
		k:       o.subsamples,
		gamma:   o.gamma,
		scanner: f.Plan.NewScanner(),
		cov:     f.Plan.NewCoverage(),
		ctx:     newFrameContext(f),
		acc:     make([]pixel.Color, width),
	}
}

// renderRow renders the output row whose top edge is at height y.
func (rr *rowRenderer) renderRow(y float64, out []pixel.Rgba8) {
	width := len(out)
	if len(rr.acc) < width {
		rr.acc = make([]pixel.Color, width)
	}
	acc := rr.acc[:width]
	clear(acc)

	weight := 1 / float32(rr.k)
	for i := range rr.k {
		sy := y + (float64(i)+0.5)/float64(rr.k)
		rr.sweep(sy, weight, acc)
	}
	pixel.ToGammaColorSpace(acc, out, rr.gamma)
}

// sweep adds the contribution of the sub-scanline at height y to acc.
func (rr *rowRenderer) sweep(y float64, weight float32, acc []pixel.Color) {
	crossings := rr.scanner.Crossings(y)
	if len(crossings) == 0 {
		return
	}
	rr.cov.Reset()
	width := float64(len(acc))

	i := 0
	for i < len(crossings) {
		x := crossings[i].X
		for i < len(crossings) && crossings[i].X == x {
			rr.cov.Apply(crossings[i])
			i++
		}
		if x >= width {
			return
		}
		end := width
		if i < len(crossings) {
			end = min(crossings[i].X, width)
		}
		vis := rr.cov.Visible()
		if len(vis) == 0 {
			continue
		}
		rr.paintSpan(max(x, 0), end, y, vis, weight, acc)
	}
}

// paintSpan adds the colour of the shape stack vis to the pixels
// overlapping [x0, x1).  Each pixel is shaded at its horizontal centre.
func (rr *rowRenderer) paintSpan(x0, x1, y float64, vis []int, weight float32, acc []pixel.Color) {
	if x1 <= x0 {
		return
	}
	snap := rr.frame.Plan
	for px := int(math.Floor(x0)); float64(px) < x1 && px < len(acc); px++ {
		lo := max(x0, float64(px))
		hi := min(x1, float64(px+1))
		w := float32(hi-lo) * weight
		if w <= 0 {
			continue
		}
		c := shadeStack(snap, vis, float64(px)+0.5, y, rr.ctx)
		acc[px] = acc[px].Add(c.Scale(w))
	}
}
