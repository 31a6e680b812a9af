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

package binding

import (
	"fmt"
	"sync"
)

// FloatingState is the state of a [Floating] binding.
type FloatingState int

const (
	// Waiting means that the binding has not been resolved yet.
	Waiting FloatingState = iota

	// Bound means that the binding has been published.
	Bound

	// Missing means that the owner reported that the binding does not
	// exist.
	Missing

	// Abandoned means that the owner went away without resolving the
	// binding.
	Abandoned
)

func (s FloatingState) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Bound:
		return "bound"
	case Missing:
		return "missing"
	case Abandoned:
		return "abandoned"
	default:
		return fmt.Sprintf("FloatingState(%d)", int(s))
	}
}

// Floating is a binding which is resolved later through its [Target].
type Floating[T any] struct {
	mu      sync.Mutex
	state   FloatingState
	binding *Binding[T]
	w       watchers
}

// Target is the producer side of a [Floating] binding.
type Target[T any] struct {
	f *Floating[T]
}

// NewFloating returns an unresolved binding together with the target used
// to resolve it.
func NewFloating[T any]() (*Floating[T], *Target[T]) {
	f := &Floating[T]{}
	return f, &Target[T]{f: f}
}

// State returns the current state.
func (f *Floating[T]) State() FloatingState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// TryGet returns the published binding.  While the binding is still
// waiting, TryGet returns nil and no error.
func (f *Floating[T]) TryGet() (*Binding[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case Bound:
		return f.binding, nil
	case Missing:
		return nil, ErrBindingMissing
	case Abandoned:
		return nil, ErrBindingAbandoned
	default:
		return nil, nil
	}
}

// WhenChanged registers fn to be called when the state changes.
func (f *Floating[T]) WhenChanged(fn func()) (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w.add(&f.mu, fn)
}

// resolve moves the binding out of the Waiting state.  Later calls have
// no effect.
func (f *Floating[T]) resolve(state FloatingState, b *Binding[T]) {
	f.mu.Lock()
	if f.state != Waiting {
		f.mu.Unlock()
		return
	}
	f.state = state
	f.binding = b
	fns := f.w.list()
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Finish publishes b.
func (t *Target[T]) Finish(b *Binding[T]) {
	t.f.resolve(Bound, b)
}

// Missing reports that the binding does not exist.
func (t *Target[T]) Missing() {
	t.f.resolve(Missing, nil)
}

// Abandon reports that the binding will never be resolved.
func (t *Target[T]) Abandon() {
	t.f.resolve(Abandoned, nil)
}
