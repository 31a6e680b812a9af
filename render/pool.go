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

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// workerPool runs render jobs on a fixed set of goroutines.  Every worker
// has its own queue and steals from the other queues when its own queue
// is empty.
//
// A workerPool is safe for concurrent use.
type workerPool struct {
	workers int
	queues  []chan func(worker int)
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu is held for reading while jobs are queued, so that close cannot
	// strand a job in a queue nobody drains.
	mu sync.RWMutex
}

// newWorkerPool starts a pool with the given number of workers.  If n is
// not positive, GOMAXPROCS workers are used.
func newWorkerPool(n int) *workerPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	queueSize := max(n*4, 8)

	p := &workerPool{
		workers: n,
		queues:  make([]chan func(int), n),
		done:    make(chan struct{}),
	}
	for i := range n {
		p.queues[i] = make(chan func(int), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(n)
	for i := range n {
		go p.worker(i)
	}
	return p
}

func (p *workerPool) worker(id int) {
	defer p.wg.Done()
	mine := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(id)
			return
		case job := <-mine:
			job(id)
		default:
			if job := p.steal(id); job != nil {
				job(id)
				continue
			}
			select {
			case <-p.done:
				p.drain(id)
				return
			case job := <-mine:
				job(id)
			}
		}
	}
}

func (p *workerPool) drain(id int) {
	for {
		select {
		case job := <-p.queues[id]:
			job(id)
		default:
			return
		}
	}
}

func (p *workerPool) steal(id int) func(int) {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// submit queues jobs round-robin and returns the number of jobs queued.
// This is less than len(jobs) only if the pool has been closed.  Each job
// receives the index of the worker which runs it, so that jobs can use
// per-worker scratch space.
func (p *workerPool) submit(jobs []func(worker int)) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return 0
	}
	for i, job := range jobs {
		p.queues[i%p.workers] <- job
	}
	return len(jobs)
}

// close stops the workers after the queued jobs have run.  It is safe to
// call close several times.
func (p *workerPool) close() {
	p.mu.Lock()
	closing := p.running.CompareAndSwap(true, false)
	p.mu.Unlock()
	if !closing {
		return
	}
	close(p.done)
	p.wg.Wait()
}
