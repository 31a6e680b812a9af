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

package scheduler

import (
	"fmt"
	"slices"
	"sync"

	"seehuhn.de/go/scanline"
)

type queueState int

const (
	// stateIdle: no jobs are waiting and nobody runs the queue.
	stateIdle queueState = iota

	// stateWaiting: the queue is in the scheduler's runnable list.
	stateWaiting

	// stateRunning: a thread or a waiting caller is draining the queue.
	stateRunning

	// stateSuspended: a [Queue.Suspend] point was reached and the
	// matching [Resumer] has not been called yet.
	stateSuspended

	// statePanicked: a job has panicked.  This state is terminal.
	statePanicked
)

func (s queueState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateWaiting:
		return "waiting"
	case stateRunning:
		return "running"
	case stateSuspended:
		return "suspended"
	case statePanicked:
		return "panicked"
	default:
		return fmt.Sprintf("queueState(%d)", int(s))
	}
}

type job struct {
	fn func()

	// done receives the outcome of the job.  It is nil for jobs
	// submitted with Desync.
	done chan error

	// suspend is set for the marker jobs added by Suspend.
	suspend *Resumer
}

// Queue is a serial job queue.  The zero value is not usable; create
// queues with [Scheduler.Queue].
type Queue struct {
	sched *Scheduler

	mu      sync.Mutex
	jobs    []job
	state   queueState
	resumer *Resumer
	err     error
}

// Queue creates a new, empty queue.
func (s *Scheduler) Queue() *Queue {
	return &Queue{sched: s}
}

// Desync schedules fn to run on the queue and returns immediately.
func (q *Queue) Desync(fn func()) error {
	return q.push(job{fn: fn})
}

// Sync runs fn on the queue and waits for it to finish.  If the queue is
// not busy, fn runs on the calling goroutine.  If fn or an earlier job
// panics, the error wraps [ErrPanicked].
func (q *Queue) Sync(fn func()) error {
	done := make(chan error, 1)

	q.mu.Lock()
	if q.state == statePanicked {
		err := q.err
		q.mu.Unlock()
		return err
	}
	q.jobs = append(q.jobs, job{fn: fn, done: done})
	own := false
	switch q.state {
	case stateIdle:
		own = true
	case stateWaiting:
		own = q.sched.unschedule(q)
	}
	if own {
		q.state = stateRunning
	}
	q.mu.Unlock()

	if own {
		q.drain(done)
	}
	return <-done
}

// TrySync runs fn on the calling goroutine if the queue is idle, and
// returns [ErrWouldBlock] otherwise.
func (q *Queue) TrySync(fn func()) error {
	q.mu.Lock()
	switch q.state {
	case statePanicked:
		err := q.err
		q.mu.Unlock()
		return err
	case stateIdle:
		q.state = stateRunning
	default:
		q.mu.Unlock()
		return ErrWouldBlock
	}
	q.mu.Unlock()

	if err := q.run(fn); err != nil {
		return err
	}
	q.release()
	return nil
}

// Suspend adds a suspension point to the queue.  Jobs submitted after
// Suspend do not run until Resume is called on the returned value.
func (q *Queue) Suspend() (*Resumer, error) {
	r := &Resumer{q: q}
	if err := q.push(job{suspend: r}); err != nil {
		return nil, err
	}
	return r, nil
}

// Panicked reports whether a job on the queue has panicked.
func (q *Queue) Panicked() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state == statePanicked
}

func (q *Queue) push(j job) error {
	q.mu.Lock()
	if q.state == statePanicked {
		err := q.err
		q.mu.Unlock()
		return err
	}
	q.jobs = append(q.jobs, j)
	schedule := q.state == stateIdle
	if schedule {
		q.state = stateWaiting
	}
	q.mu.Unlock()

	if schedule {
		q.sched.schedule(q)
	}
	return nil
}

// drain runs the jobs of a queue owned by the caller.  If until is not
// nil, drain returns once the job reporting to until has run, and hands
// the remaining jobs back to the scheduler.
func (q *Queue) drain(until chan error) {
	for {
		q.mu.Lock()
		if len(q.jobs) == 0 {
			q.state = stateIdle
			q.mu.Unlock()
			return
		}
		j := q.jobs[0]
		q.jobs = slices.Delete(q.jobs, 0, 1)

		if r := j.suspend; r != nil {
			if r.resumed {
				q.mu.Unlock()
				continue
			}
			q.state = stateSuspended
			q.resumer = r
			q.mu.Unlock()
			return
		}
		q.mu.Unlock()

		err := q.run(j.fn)
		if j.done != nil {
			j.done <- err
		}
		if err != nil {
			return
		}
		if until != nil && j.done == until {
			q.release()
			return
		}
	}
}

// release gives up ownership of a running queue.
func (q *Queue) release() {
	q.mu.Lock()
	if q.state != stateRunning {
		q.mu.Unlock()
		return
	}
	if len(q.jobs) == 0 {
		q.state = stateIdle
		q.mu.Unlock()
		return
	}
	q.state = stateWaiting
	q.mu.Unlock()
	q.sched.schedule(q)
}

// run calls fn.  If fn does not return normally, the queue is marked as
// panicked, all waiting jobs are failed and the error is returned.
func (q *Queue) run(fn func()) (err error) {
	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		err = fmt.Errorf("%w: %v", ErrPanicked, r)
		q.markPanicked(err)
		scanline.Logger().Warn("scheduler: job panicked", "panic", r)
	}()
	fn()
	completed = true
	return nil
}

func (q *Queue) markPanicked(err error) {
	q.mu.Lock()
	pending := q.jobs
	q.jobs = nil
	q.state = statePanicked
	q.err = err
	q.mu.Unlock()

	for _, j := range pending {
		if j.done != nil {
			j.done <- err
		}
	}
}

// Resumer resumes a queue after a suspension point.
type Resumer struct {
	q       *Queue
	resumed bool
}

// Resume lets the queue continue past the suspension point.  Calling
// Resume before the point is reached makes the point a no-op.
func (r *Resumer) Resume() {
	q := r.q
	q.mu.Lock()
	if r.resumed {
		q.mu.Unlock()
		return
	}
	r.resumed = true
	if q.state != stateSuspended || q.resumer != r {
		q.mu.Unlock()
		return
	}
	q.resumer = nil
	if len(q.jobs) == 0 {
		q.state = stateIdle
		q.mu.Unlock()
		return
	}
	q.state = stateWaiting
	q.mu.Unlock()
	q.sched.schedule(q)
}
