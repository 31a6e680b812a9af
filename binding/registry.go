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

// Registry maps property names to bindings.
type Registry struct {
	mu        sync.Mutex
	props     map[string]any
	pending   map[string][]func(any, error)
	abandoned bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		props:   make(map[string]any),
		pending: make(map[string][]func(any, error)),
	}
}

// Publish makes b available under name.  Floating bindings waiting for
// the name are resolved.
func Publish[T any](r *Registry, name string, b *Binding[T]) {
	r.mu.Lock()
	if r.abandoned {
		r.mu.Unlock()
		return
	}
	r.props[name] = b
	waiting := r.pending[name]
	delete(r.pending, name)
	r.mu.Unlock()

	for _, fn := range waiting {
		fn(b, nil)
	}
}

// Lookup returns the binding published under name.  The error is
// [ErrBindingAbandoned] after [Registry.Abandon], and [ErrBindingMissing]
// if there is no property with the given name and type.
func Lookup[T any](r *Registry, name string) (*Binding[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.abandoned {
		return nil, ErrBindingAbandoned
	}
	p, ok := r.props[name]
	if !ok {
		return nil, fmt.Errorf("property %q: %w", name, ErrBindingMissing)
	}
	b, ok := p.(*Binding[T])
	if !ok {
		return nil, fmt.Errorf("property %q has type %T: %w", name, p, ErrBindingMissing)
	}
	return b, nil
}

// Follow returns a floating binding for name.  It is resolved as soon as
// the property is published, or immediately if it exists already.
func Follow[T any](r *Registry, name string) *Floating[T] {
	f, target := NewFloating[T]()
	resolve := func(p any, err error) {
		switch {
		case err != nil:
			target.Abandon()
		default:
			if b, ok := p.(*Binding[T]); ok {
				target.Finish(b)
			} else {
				target.Missing()
			}
		}
	}

	r.mu.Lock()
	if r.abandoned {
		r.mu.Unlock()
		target.Abandon()
		return f
	}
	if p, ok := r.props[name]; ok {
		r.mu.Unlock()
		resolve(p, nil)
		return f
	}
	r.pending[name] = append(r.pending[name], resolve)
	r.mu.Unlock()
	return f
}

// Abandon removes all properties.  Floating bindings which are still
// waiting become [Abandoned], and later lookups fail.
func (r *Registry) Abandon() {
	r.mu.Lock()
	if r.abandoned {
		r.mu.Unlock()
		return
	}
	r.abandoned = true
	r.props = nil
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, fns := range pending {
		for _, fn := range fns {
			fn(nil, ErrBindingAbandoned)
		}
	}
}
