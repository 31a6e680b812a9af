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

package render

import "seehuhn.de/go/scanline/pixel"

// DefaultSubsamples is the default number of sub-scanlines per output
// row.
const DefaultSubsamples = 4

// Option configures a [Renderer].
type Option func(*options)

type options struct {
	subsamples int
	workers    int
	gamma      float64
}

func defaultOptions() options {
	return options{
		subsamples: DefaultSubsamples,
		gamma:      pixel.DefaultGamma,
	}
}

// WithSubsamples sets the number of sub-scanlines which are averaged for
// every output row.  Values below 1 are ignored.
func WithSubsamples(k int) Option {
	return func(o *options) {
		if k >= 1 {
			o.subsamples = k
		}
	}
}

// WithWorkers sets the number of goroutines used for rendering.  The
// default, 0, uses GOMAXPROCS goroutines.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithGamma sets the gamma value used to encode the output.
func WithGamma(gamma float64) Option {
	return func(o *options) {
		if gamma > 0 {
			o.gamma = gamma
		}
	}
}
