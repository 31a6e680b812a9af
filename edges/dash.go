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
	"math"
	"sort"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline/geometry"
)

// dashLength returns the length of one period of the dash pattern.  Odd
// length patterns are repeated twice, so that on and off alternate.
func dashLength(dash []float64) float64 {
	total := 0.0
	for _, d := range dash {
		if d < 0 {
			return 0
		}
		total += d
	}
	if len(dash)%2 == 1 {
		total *= 2
	}
	return total
}

// dashCursor tracks the position within the dash pattern.
type dashCursor struct {
	pattern   []float64
	idx       int
	remaining float64
}

func (c *dashCursor) on() bool {
	return c.idx%2 == 0
}

func (c *dashCursor) advance() {
	c.idx++
	c.remaining = c.pattern[c.idx%len(c.pattern)]
}

// newDashCursor places the cursor at the given phase.
func newDashCursor(pattern []float64, phase float64) *dashCursor {
	period := dashLength(pattern)
	phase = math.Mod(phase, period)
	if phase < 0 {
		phase += period
	}
	c := &dashCursor{pattern: pattern}
	for phase >= pattern[c.idx%len(pattern)] && pattern[c.idx%len(pattern)] > 0 {
		phase -= pattern[c.idx%len(pattern)]
		c.idx++
	}
	c.remaining = pattern[c.idx%len(pattern)] - phase
	return c
}

// arcSamples is the number of chords used to measure arc length.
const arcSamples = 32

// measuredCurve maps arc length to curve parameters.
type measuredCurve struct {
	c  geometry.Curve
	ss []float64 // arc length at t = i/arcSamples
}

func measure(c geometry.Curve) *measuredCurve {
	m := &measuredCurve{c: c, ss: make([]float64, arcSamples+1)}
	prev := c.P0
	for i := 1; i <= arcSamples; i++ {
		pt := c.Eval(float64(i) / arcSamples)
		m.ss[i] = m.ss[i-1] + pt.Sub(prev).Length()
		prev = pt
	}
	return m
}

func (m *measuredCurve) length() float64 {
	return m.ss[arcSamples]
}

// param returns the curve parameter at arc length s.
func (m *measuredCurve) param(s float64) float64 {
	if s <= 0 {
		return 0
	}
	if s >= m.length() {
		return 1
	}
	i := sort.SearchFloat64s(m.ss, s)
	s0, s1 := m.ss[i-1], m.ss[i]
	return (float64(i-1) + (s-s0)/(s1-s0)) / arcSamples
}

// direction returns the unit tangent at parameter t.
func (m *measuredCurve) direction(t float64) vec.Vec2 {
	if d := m.c.Tangent(t); d.Length() >= zeroLengthThreshold {
		return d.Normalize()
	}
	return startTangent(m.c)
}

// applyDashPattern cuts the runs into dashes, measuring distances along
// the curves.  Zero-length dashes are returned separately and are drawn
// as dots if the line cap allows.  On closed runs the last dash is joined
// to the first one when the pattern is "on" at the closing point.
func (s *stroker) applyDashPattern(runs []strokeRun) ([]strokeRun, []strokeDot) {
	var dashes []strokeRun
	var dots []strokeDot

	for _, run := range runs {
		c := newDashCursor(s.style.Dash, s.style.DashPhase)

		if c.on() && c.remaining == 0 {
			first := run.pieces[0]
			dots = append(dots, strokeDot{at: first.P0, dir: startTangent(first)})
			c.advance()
		}

		startedOn := c.on()
		firstDash := -1
		firstDone := false
		var cur []geometry.Curve

		for _, piece := range run.pieces {
			m := measure(piece)
			pos := 0.0
			for {
				left := m.length() - pos
				if c.remaining >= left {
					if c.on() && left > 0 {
						cur = append(cur, piece.Section(m.param(pos), 1))
					}
					c.remaining -= left
					break
				}

				end := pos + c.remaining
				if c.on() {
					t0, t1 := m.param(pos), m.param(end)
					if end-pos > zeroLengthThreshold {
						cur = append(cur, piece.Section(t0, t1))
					}
					if len(cur) > 0 {
						if !firstDone {
							firstDash = len(dashes)
						}
						dashes = append(dashes, strokeRun{pieces: cur})
						cur = nil
					} else {
						dots = append(dots, strokeDot{at: piece.Eval(t0), dir: m.direction(t0)})
					}
					firstDone = true
				}
				pos = end
				c.advance()
			}
		}

		if len(cur) == 0 {
			continue
		}
		if run.closed && startedOn && c.on() && firstDash >= 0 {
			cur = append(cur, dashes[firstDash].pieces...)
			dashes = append(dashes[:firstDash], dashes[firstDash+1:]...)
		}
		dashes = append(dashes, strokeRun{pieces: cur})
	}
	return dashes, dots
}
