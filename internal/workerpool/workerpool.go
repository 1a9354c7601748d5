// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package workerpool provides the sharded goroutine pool used to run mailbox
// turns. Goroutines are reused between tasks and retired after staying idle
// for the passivation period.
package workerpool

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

const maxShards = 128

// WorkerPool runs submitted tasks on reusable goroutines spread across shards
type WorkerPool struct {
	passivateAfter time.Duration
	numShards      int
	shards         []*shard
	mutex          sync.RWMutex
	started        atomic.Bool
	stopped        atomic.Bool
	spawnedWorkers atomic.Int64
	stopCleanup    chan struct{}
	cleanupDone    chan struct{}
}

type worker struct {
	tasks    chan func()
	lastUsed atomic.Int64
}

// shard keeps its idle workers as a stack: the most recently used worker is
// reused first so that the oldest ones can be passivated.
type shard struct {
	pool    *WorkerPool
	mu      sync.Mutex
	idle    []*worker
	stopped bool
}

// New creates a new worker pool with the given options.
func New(opts ...Option) *WorkerPool {
	wp := &WorkerPool{
		passivateAfter: time.Second,
		numShards:      1,
	}

	for _, opt := range opts {
		opt.Apply(wp)
	}

	if wp.numShards < 1 {
		wp.numShards = 1
	} else if wp.numShards > maxShards {
		wp.numShards = maxShards
	}
	return wp
}

// SpawnedWorkers returns the number of live worker goroutines.
func (wp *WorkerPool) SpawnedWorkers() int {
	return int(wp.spawnedWorkers.Load())
}

// Start initializes the shards and the passivation loop.
// It's safe to call Start multiple times.
func (wp *WorkerPool) Start() {
	wp.mutex.Lock()
	defer wp.mutex.Unlock()
	if wp.started.Load() {
		return
	}

	wp.shards = make([]*shard, wp.numShards)
	for i := range wp.shards {
		wp.shards[i] = &shard{pool: wp, idle: make([]*worker, 0, 64)}
	}

	wp.stopCleanup = make(chan struct{})
	wp.cleanupDone = make(chan struct{})
	wp.started.Store(true)
	go wp.cleanup()
}

// Stop retires every idle worker and rejects further submissions. Tasks
// already running complete, after which their worker exits.
func (wp *WorkerPool) Stop() {
	wp.mutex.Lock()
	if !wp.started.Load() || wp.stopped.Swap(true) {
		wp.mutex.Unlock()
		return
	}

	for _, s := range wp.shards {
		s.mu.Lock()
		s.stopped = true
		for i, w := range s.idle {
			close(w.tasks)
			s.idle[i] = nil
		}
		s.idle = s.idle[:0]
		s.mu.Unlock()
	}
	wp.mutex.Unlock()

	close(wp.stopCleanup)
	<-wp.cleanupDone
}

// SubmitWork runs task on an idle worker or on a new one. It returns false
// when the pool is not running, in which case the task is dropped.
func (wp *WorkerPool) SubmitWork(task func()) bool {
	wp.mutex.RLock()
	if !wp.started.Load() || wp.stopped.Load() {
		wp.mutex.RUnlock()
		return false
	}
	s := wp.shards[rand.IntN(wp.numShards)]
	wp.mutex.RUnlock()

	return s.dispatch(task)
}

func (s *shard) dispatch(task func()) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}

	if n := len(s.idle); n > 0 {
		w := s.idle[n-1]
		s.idle[n-1] = nil
		s.idle = s.idle[:n-1]
		s.mu.Unlock()
		w.tasks <- task
		return true
	}
	s.mu.Unlock()

	w := &worker{tasks: make(chan func(), 1)}
	w.tasks <- task
	s.pool.spawnedWorkers.Add(1)
	go s.run(w)
	return true
}

func (s *shard) run(w *worker) {
	defer s.pool.spawnedWorkers.Add(-1)
	for task := range w.tasks {
		task()
		if !s.release(w) {
			return
		}
	}
}

// release puts the worker back on the idle stack.
// It returns false when the shard is stopped and the worker must exit.
func (s *shard) release(w *worker) bool {
	w.lastUsed.Store(time.Now().UnixNano())
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.idle = append(s.idle, w)
	return true
}

// passivate closes the idle workers last used before cutoff
func (s *shard) passivate(cutoff int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	// the stack is ordered from least to most recently used
	keep := 0
	for keep < len(s.idle) && s.idle[keep].lastUsed.Load() < cutoff {
		keep++
	}
	if keep == 0 {
		return
	}

	for i := 0; i < keep; i++ {
		close(s.idle[i].tasks)
	}
	remaining := copy(s.idle, s.idle[keep:])
	for i := remaining; i < len(s.idle); i++ {
		s.idle[i] = nil
	}
	s.idle = s.idle[:remaining]
}

func (wp *WorkerPool) cleanup() {
	defer close(wp.cleanupDone)
	ticker := time.NewTicker(wp.passivateAfter)
	defer ticker.Stop()

	for {
		select {
		case <-wp.stopCleanup:
			return
		case now := <-ticker.C:
			cutoff := now.Add(-wp.passivateAfter).UnixNano()
			for _, s := range wp.shards {
				s.passivate(cutoff)
			}
		}
	}
}
