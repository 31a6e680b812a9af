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

// Package scene turns streams of canvas drawing commands into frames for
// the scanline renderer.
//
// A [Scene] owns the drawing state, the layers, sprites, textures,
// gradients and fonts of a drawing.  Commands are processed on the
// scene's queue, one after another.  After every batch of commands the
// scene publishes a new immutable frame, which can be rendered
// concurrently with the processing of further commands.
package scene

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"honnef.co/go/safeish"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/binding"
	"seehuhn.de/go/scanline/canvas"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/edges"
	"seehuhn.de/go/scanline/pixel"
	"seehuhn.de/go/scanline/render"
	"seehuhn.de/go/scanline/scheduler"
)

// Property names published by a scene.
const (
	// PropertyFrame is a binding.Binding[uint64] counting the published
	// frames.
	PropertyFrame = "frame"

	// PropertySize is a binding.Binding[[2]int] holding the viewport
	// size.
	PropertySize = "size"
)

// Scene processes drawing commands and publishes frames.  All methods
// are safe for concurrent use.
type Scene struct {
	id       canvas.EntityID
	queue    *scheduler.Queue
	renderer *render.Renderer
	core     *core

	// submit is held for reading while commands are queued, and for
	// writing by Shutdown.
	submit sync.RWMutex
	closed bool

	frame  atomic.Pointer[render.Frame]
	frames *binding.Binding[uint64]
	size   *binding.Binding[[2]int]
	props  *binding.Registry
}

// New creates a scene with a viewport of the given size in pixels.
func New(width, height int, opts ...Option) *Scene {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.sched == nil {
		o.sched = scheduler.Default()
	}
	ropts := append([]render.Option{render.WithGamma(o.gamma)}, o.render...)

	s := &Scene{
		id:       canvas.NewEntityID(),
		queue:    o.sched.Queue(),
		renderer: render.New(ropts...),
		core:     newCore(max(width, 0), max(height, 0), o),
		frames:   binding.New[uint64](0),
		size:     binding.New([2]int{width, height}),
		props:    binding.NewRegistry(),
	}
	s.frame.Store(render.EmptyFrame())
	binding.Publish(s.props, PropertyFrame, s.frames)
	binding.Publish(s.props, PropertySize, s.size)
	return s
}

// Draw processes commands and waits until the resulting frame is
// published.  Commands which fail are skipped; their errors are joined.
func (s *Scene) Draw(cmds ...canvas.Draw) error {
	var errs []error
	err := s.sync(func() {
		errs = s.core.processAll(cmds)
		s.publish()
	})
	if err != nil {
		return err
	}
	return errors.Join(errs...)
}

// Submit queues commands for processing and returns immediately.
// Errors of individual commands are logged.
func (s *Scene) Submit(cmds ...canvas.Draw) error {
	s.submit.RLock()
	defer s.submit.RUnlock()
	if s.closed {
		return ErrSceneClosed
	}
	return s.queue.Desync(func() {
		for _, err := range s.core.processAll(cmds) {
			scanline.Logger().Warn("scene: command failed", "scene", s.id, "error", err)
		}
		s.publish()
	})
}

// TrySync processes commands only if the scene's queue is idle.  If the
// queue is busy, nothing is done and the error is
// [scheduler.ErrWouldBlock].
func (s *Scene) TrySync(cmds ...canvas.Draw) error {
	s.submit.RLock()
	defer s.submit.RUnlock()
	if s.closed {
		return ErrSceneClosed
	}
	var errs []error
	err := s.queue.TrySync(func() {
		errs = s.core.processAll(cmds)
		s.publish()
	})
	if err != nil {
		return err
	}
	return errors.Join(errs...)
}

// Sync waits until all submitted commands have been processed.
func (s *Scene) Sync() error {
	return s.sync(func() {})
}

// SetViewport changes the size of the output.
func (s *Scene) SetViewport(width, height int) error {
	return s.sync(func() {
		s.core.width, s.core.height = max(width, 0), max(height, 0)
		s.size.Set([2]int{width, height})
		s.publish()
	})
}

func (s *Scene) sync(fn func()) error {
	s.submit.RLock()
	defer s.submit.RUnlock()
	if s.closed {
		return ErrSceneClosed
	}
	return s.queue.Sync(fn)
}

// ID returns the entity id of the scene.
func (s *Scene) ID() canvas.EntityID {
	return s.id
}

// Properties returns the registry of the scene's published properties.
func (s *Scene) Properties() *binding.Registry {
	return s.props
}

// Frame returns the last published frame.
func (s *Scene) Frame() *render.Frame {
	return s.frame.Load()
}

// Size returns the viewport size.
func (s *Scene) Size() (width, height int) {
	v := s.size.Get()
	return v[0], v[1]
}

// Render renders rows of the last published frame.
func (s *Scene) Render(slice render.Slice, sink render.RowSink) {
	s.renderer.Render(s.Frame(), slice, sink)
}

// RenderImage renders the whole viewport of the last published frame.
// The image uses premultiplied alpha, as image.RGBA requires.
func (s *Scene) RenderImage() *image.RGBA {
	w, h := s.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	s.Render(render.Rows(w, 0, h), func(i int, row []pixel.Rgba8) {
		copy(img.Pix[i*img.Stride:], safeish.SliceCast[[]byte](row))
	})
	return img
}

// Shutdown waits for the queued commands, rejects all further
// submissions with [ErrSceneClosed] and releases the renderer's
// goroutines.  The last frame can still be rendered.  Shutdown can be
// called several times.
func (s *Scene) Shutdown() {
	s.submit.Lock()
	if s.closed {
		s.submit.Unlock()
		return
	}
	s.closed = true
	s.submit.Unlock()

	// A panicked queue has no more commands to drain.
	_ = s.queue.Sync(func() {})
	s.props.Abandon()
	s.renderer.Close()
}

// processAll applies commands in order and collects their errors.
func (c *core) processAll(cmds []canvas.Draw) []error {
	var errs []error
	for _, cmd := range cmds {
		if err := c.process(cmd); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// publish builds a frame from the current state and makes it visible to
// readers.  It must be called on the scene's queue.
func (s *Scene) publish() {
	c := s.core
	c.updateDynamicTextures(s.renderer)

	plan := edgeplan.New()
	box := c.viewport()
	if c.background.A > 0 {
		id := edgeplan.NewShapeID()
		plan.AddShape(id, edgeplan.ShapeDescriptor{
			Program: pixel.SolidColor{Color: c.color(c.background)},
		})
		_ = plan.AddEdge(edges.NewRectangleEdge(id, box))
	}

	layers := c.spriteSnapshots()
	for _, h := range c.layerOrder {
		l := c.layers[h]
		snap := l.plan.Snapshot()
		if l.blend == action.SourceOver && l.alpha >= 1 {
			plan.Append(snap)
			continue
		}
		layers[l.id] = snap
		var prog pixel.Program = pixel.BasicSprite{Layer: l.id}
		if l.alpha < 1 {
			prog = pixel.Opacity{Inner: prog, Alpha: float32(l.alpha)}
		}
		id := edgeplan.NewShapeID()
		plan.AddShape(id, edgeplan.ShapeDescriptor{Program: pixel.WithBlendMode(prog, l.blend)})
		_ = plan.AddEdge(edges.NewRectangleEdge(id, box))
	}

	f := &render.Frame{
		Plan:     plan.Snapshot(),
		Layers:   layers,
		Textures: c.shareTextures(),
	}
	s.frame.Store(f)
	s.frames.Update(func(n uint64) uint64 { return n + 1 })
	scanline.Logger().Debug("scene: frame published", "scene", s.id,
		"shapes", f.Plan.NumShapes(), "layers", len(layers))
}

// spriteSnapshots returns snapshots of all sprites, by layer id.
func (c *core) spriteSnapshots() map[pixel.LayerID]*edgeplan.Snapshot {
	res := make(map[pixel.LayerID]*edgeplan.Snapshot, len(c.sprites))
	for _, sp := range c.sprites {
		res[sp.id] = sp.plan.Snapshot()
	}
	return res
}
