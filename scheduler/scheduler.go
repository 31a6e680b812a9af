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

// Package scheduler runs jobs on serial queues backed by a pool of
// goroutines.
//
// Jobs submitted to the same [Queue] run one after another, in submission
// order, and never overlap.  Different queues run in parallel, on as many
// goroutines as the [Scheduler] allows.
package scheduler

import (
	"errors"
	"runtime"
	"slices"
	"sync"
)

var (
	// ErrWouldBlock is returned by [Queue.TrySync] if the queue is busy.
	ErrWouldBlock = errors.New("scheduler: queue is busy")

	// ErrPanicked is returned for submissions to a queue on which a job
	// has panicked.
	ErrPanicked = errors.New("scheduler: queue panicked")
)

// Scheduler owns the goroutines which run queued jobs.
type Scheduler struct {
	mu sync.Mutex

	// work is signalled when a queue becomes runnable or when the
	// thread limit is lowered.
	work *sync.Cond

	// exited is signalled when a thread ends.
	exited *sync.Cond

	runnable   []*Queue
	maxThreads int
	threads    int
	idle       int
}

// New creates a scheduler which uses up to GOMAXPROCS threads.  Threads
// are started on demand.
func New() *Scheduler {
	s := &Scheduler{maxThreads: runtime.GOMAXPROCS(0)}
	s.work = sync.NewCond(&s.mu)
	s.exited = sync.NewCond(&s.mu)
	return s
}

var defaultScheduler = sync.OnceValue(New)

// Default returns the process-wide scheduler.
func Default() *Scheduler {
	return defaultScheduler()
}

// SetMaxThreads sets the maximum number of threads.  Existing threads
// above the new limit end once their current queue is drained.  With a
// limit of zero, jobs only run when a caller waits for them in
// [Queue.Sync].
func (s *Scheduler) SetMaxThreads(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxThreads = max(n, 0)
	s.work.Broadcast()
}

// MaxThreads returns the current thread limit.
func (s *Scheduler) MaxThreads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxThreads
}

// SpawnThread starts a new thread, even if this exceeds the limit.  Use
// [Scheduler.DespawnThreadsIfOverloaded] to get back below the limit.
func (s *Scheduler) SpawnThread() {
	s.mu.Lock()
	s.threads++
	s.mu.Unlock()
	go s.thread()
}

// ThreadCount returns the number of live threads.
func (s *Scheduler) ThreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threads
}

// DespawnThreadsIfOverloaded asks the threads above the limit to end and
// waits until they have done so.
func (s *Scheduler) DespawnThreadsIfOverloaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.work.Broadcast()
	for s.threads > s.maxThreads {
		s.exited.Wait()
	}
}

// thread runs queues until there are more threads than allowed.
func (s *Scheduler) thread() {
	s.mu.Lock()
	for {
		for len(s.runnable) == 0 && s.threads <= s.maxThreads {
			s.idle++
			s.work.Wait()
			s.idle--
		}
		if s.threads > s.maxThreads {
			s.threads--
			s.exited.Broadcast()
			s.mu.Unlock()
			return
		}
		q := s.runnable[0]
		s.runnable = slices.Delete(s.runnable, 0, 1)
		s.mu.Unlock()

		q.mu.Lock()
		q.state = stateRunning
		q.mu.Unlock()
		q.drain(nil)

		s.mu.Lock()
	}
}

// schedule adds q to the list of runnable queues and makes sure a thread
// will pick it up if the limit permits.
func (s *Scheduler) schedule(q *Queue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runnable = append(s.runnable, q)
	if s.idle == 0 && s.threads < s.maxThreads {
		s.threads++
		go s.thread()
		return
	}
	s.work.Signal()
}

// unschedule removes q from the runnable list.  It reports whether q was
// found, in which case the caller owns the queue.
func (s *Scheduler) unschedule(q *Queue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.runnable, q)
	if i < 0 {
		return false
	}
	s.runnable = slices.Delete(s.runnable, i, i+1)
	return true
}
