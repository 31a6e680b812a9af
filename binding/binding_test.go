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
	"errors"
	"testing"
)

func TestBindingWatch(t *testing.T) {
	b := New(1)
	calls := 0
	release := b.WhenChanged(func() { calls++ })

	b.Set(2)
	b.Update(func(v int) int { return v * 10 })
	if got := b.Get(); got != 20 {
		t.Errorf("Get() = %d, want 20", got)
	}
	if calls != 2 {
		t.Errorf("%d notifications, want 2", calls)
	}

	release()
	b.Set(3)
	if calls != 2 {
		t.Error("released watcher was called")
	}
	if v := b.Version(); v != 3 {
		t.Errorf("Version() = %d, want 3", v)
	}
}

func TestFloating(t *testing.T) {
	t.Run("waiting", func(t *testing.T) {
		f, _ := NewFloating[uint32]()
		if f.State() != Waiting {
			t.Errorf("state = %v", f.State())
		}
		b, err := f.TryGet()
		if b != nil || err != nil {
			t.Errorf("TryGet() = %v, %v", b, err)
		}
	})

	t.Run("bound", func(t *testing.T) {
		f, target := NewFloating[uint32]()
		notified := false
		f.WhenChanged(func() { notified = true })

		target.Finish(New[uint32](1))
		if !notified {
			t.Error("no notification")
		}
		b, err := f.TryGet()
		if err != nil || b == nil || b.Get() != 1 {
			t.Errorf("TryGet() = %v, %v", b, err)
		}
	})

	t.Run("abandoned", func(t *testing.T) {
		f, target := NewFloating[uint32]()
		target.Abandon()
		if f.State() != Abandoned {
			t.Errorf("state = %v", f.State())
		}
		if _, err := f.TryGet(); !errors.Is(err, ErrBindingAbandoned) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		f, target := NewFloating[uint32]()
		target.Missing()
		target.Finish(New[uint32](1))
		if f.State() != Missing {
			t.Errorf("state = %v", f.State())
		}
		if _, err := f.TryGet(); !errors.Is(err, ErrBindingMissing) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	early := Follow[int](r, "frame")
	if early.State() != Waiting {
		t.Fatalf("state = %v", early.State())
	}

	frame := New(0)
	Publish(r, "frame", frame)
	if early.State() != Bound {
		t.Errorf("state after Publish = %v", early.State())
	}

	b, err := Lookup[int](r, "frame")
	if err != nil || b != frame {
		t.Errorf("Lookup = %v, %v", b, err)
	}
	if _, err := Lookup[int](r, "size"); !errors.Is(err, ErrBindingMissing) {
		t.Errorf("unknown name: %v", err)
	}
	if _, err := Lookup[string](r, "frame"); !errors.Is(err, ErrBindingMissing) {
		t.Errorf("wrong type: %v", err)
	}
	if f := Follow[string](r, "frame"); f.State() != Missing {
		t.Errorf("Follow with wrong type: %v", f.State())
	}

	late := Follow[int](r, "size")
	r.Abandon()
	if late.State() != Abandoned {
		t.Errorf("state after Abandon = %v", late.State())
	}
	if _, err := Lookup[int](r, "frame"); !errors.Is(err, ErrBindingAbandoned) {
		t.Errorf("Lookup after Abandon: %v", err)
	}
}
