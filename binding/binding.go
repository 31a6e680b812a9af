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

// Package binding implements observable values.
//
// A [Binding] holds a value and notifies watchers when it changes.  A
// [Floating] binding is a placeholder for a binding which is published
// later, for example a property of a scene which has not been created
// yet.  A [Registry] maps property names to bindings.
package binding

import (
	"errors"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrBindingMissing is returned when a property does not exist.
	ErrBindingMissing = errors.New("binding: missing")

	// ErrBindingAbandoned is returned when the owner of a property went
	// away before publishing it.
	ErrBindingAbandoned = errors.New("binding: abandoned")
)

// watchers is a set of change notification callbacks.
type watchers struct {
	next int
	fns  map[int]func()
}

func (w *watchers) add(mu *sync.Mutex, fn func()) (release func()) {
	if w.fns == nil {
		w.fns = make(map[int]func())
	}
	id := w.next
	w.next++
	w.fns[id] = fn
	return func() {
		mu.Lock()
		delete(w.fns, id)
		mu.Unlock()
	}
}

// list returns the callbacks in registration order.
func (w *watchers) list() []func() {
	ids := slices.Sorted(maps.Keys(w.fns))
	fns := make([]func(), len(ids))
	for i, id := range ids {
		fns[i] = w.fns[id]
	}
	return fns
}

// Binding is a value which can be watched for changes.  A Binding is safe
// for concurrent use.
type Binding[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	w       watchers
}

// New returns a binding holding v.
func New[T any](v T) *Binding[T] {
	return &Binding[T]{value: v}
}

// Get returns the current value.
func (b *Binding[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Version returns the number of times the value has been set.
func (b *Binding[T]) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// Set replaces the value and calls all watchers.  Watchers run on the
// calling goroutine, after the new value is visible.
func (b *Binding[T]) Set(v T) {
	b.mu.Lock()
	b.value = v
	b.version++
	fns := b.w.list()
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Update applies fn to the value atomically and notifies the watchers.
func (b *Binding[T]) Update(fn func(T) T) {
	b.mu.Lock()
	b.value = fn(b.value)
	b.version++
	fns := b.w.list()
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// WhenChanged registers fn to be called after every change.  The returned
// function removes the registration.
func (b *Binding[T]) WhenChanged(fn func()) (release func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.w.add(&b.mu, fn)
}
