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
	"slices"

	"golang.org/x/exp/constraints"

	"seehuhn.de/go/scanline/canvas"
)

// idSequence allocates integer ids.  Released ids are handed out again,
// smallest first.
type idSequence[T constraints.Integer] struct {
	next T
	free []T
}

func newIDSequence[T constraints.Integer](first T) idSequence[T] {
	return idSequence[T]{next: first}
}

func (s *idSequence[T]) alloc() T {
	if len(s.free) > 0 {
		id := s.free[0]
		s.free = s.free[1:]
		return id
	}
	id := s.next
	s.next++
	return id
}

func (s *idSequence[T]) release(id T) {
	if id >= s.next {
		return
	}
	pos, found := slices.BinarySearch(s.free, id)
	if !found {
		s.free = slices.Insert(s.free, pos, id)
	}
}

// key identifies a resource within a namespace.
type key[H comparable] struct {
	ns canvas.NamespaceID
	h  H
}
