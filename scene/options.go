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
	"fmt"

	"seehuhn.de/go/scanline/edges"
	"seehuhn.de/go/scanline/pixel"
	"seehuhn.de/go/scanline/render"
	"seehuhn.de/go/scanline/scheduler"
)

// EdgeMode selects the edge type used for filled paths.
type EdgeMode uint8

// These are the supported edge modes.
const (
	// EdgeModeBezier intersects scanlines with the curves directly.
	EdgeModeBezier EdgeMode = iota

	// EdgeModeFlattened replaces curves by polygons.
	EdgeModeFlattened

	// EdgeModeContour samples the coverage of the fill on the pixel grid
	// and uses the contour at coverage 1/2.
	EdgeModeContour
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeModeBezier:
		return "bezier"
	case EdgeModeFlattened:
		return "flattened"
	case EdgeModeContour:
		return "contour"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// Option configures a [Scene].
type Option func(*options)

type options struct {
	flatness float64
	edgeMode EdgeMode
	sched    *scheduler.Scheduler
	gamma    float64
	render   []render.Option
}

func defaultOptions() options {
	return options{
		flatness: edges.DefaultFlatness,
		edgeMode: EdgeModeBezier,
		gamma:    pixel.DefaultGamma,
	}
}

// WithFlatness sets the tolerance, in device pixels, for replacing curves
// by line segments.
func WithFlatness(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.flatness = tol
		}
	}
}

// WithEdgeMode sets the edge type used for fills.
func WithEdgeMode(m EdgeMode) Option {
	return func(o *options) {
		o.edgeMode = m
	}
}

// WithScheduler sets the scheduler which runs the command queue of the
// scene.  The default is [scheduler.Default].
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(o *options) {
		o.sched = s
	}
}

// WithGamma sets the gamma value used for colours and textures.
func WithGamma(gamma float64) Option {
	return func(o *options) {
		if gamma > 0 {
			o.gamma = gamma
		}
	}
}

// WithRenderOptions passes options to the renderer of the scene.
func WithRenderOptions(opts ...render.Option) Option {
	return func(o *options) {
		o.render = append(o.render, opts...)
	}
}
