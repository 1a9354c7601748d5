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

package actor

import (
	"github.com/goaktkit/kernel/internal/workerpool"
)

// Dispatcher executes the turns of the mailboxes. Throughput bounds the
// number of messages processed by one turn.
type Dispatcher interface {
	Schedule(fn func())
	Throughput() int
}

type goroutineDispatcher int

var _ Dispatcher = goroutineDispatcher(0)

// NewDefaultDispatcher runs every mailbox turn on a new goroutine
func NewDefaultDispatcher(throughput int) Dispatcher {
	return goroutineDispatcher(throughput)
}

func (d goroutineDispatcher) Schedule(fn func()) {
	go fn()
}

func (d goroutineDispatcher) Throughput() int {
	return int(d)
}

type synchronizedDispatcher int

var _ Dispatcher = synchronizedDispatcher(0)

// NewSynchronizedDispatcher runs every mailbox turn on the goroutine posting
// the message. A message posted from within a turn of the same mailbox is
// processed by that turn. It is meant for tests and deterministic pipelines.
func NewSynchronizedDispatcher(throughput int) Dispatcher {
	return synchronizedDispatcher(throughput)
}

func (d synchronizedDispatcher) Schedule(fn func()) {
	fn()
}

func (d synchronizedDispatcher) Throughput() int {
	return int(d)
}

// WorkerPoolDispatcher runs the mailbox turns on a sharded pool of reusable
// goroutines. Turns submitted after Stop run on their own goroutine.
type WorkerPoolDispatcher struct {
	pool       *workerpool.WorkerPool
	throughput int
}

var _ Dispatcher = (*WorkerPoolDispatcher)(nil)

// NewWorkerPoolDispatcher creates and starts a worker pool dispatcher
func NewWorkerPoolDispatcher(throughput, shards int) *WorkerPoolDispatcher {
	pool := workerpool.New(workerpool.WithNumShards(shards))
	pool.Start()
	return &WorkerPoolDispatcher{
		pool:       pool,
		throughput: throughput,
	}
}

// Schedule implements Dispatcher
func (d *WorkerPoolDispatcher) Schedule(fn func()) {
	if !d.pool.SubmitWork(fn) {
		go fn()
	}
}

// Throughput implements Dispatcher
func (d *WorkerPoolDispatcher) Throughput() int {
	return d.throughput
}

// Stop releases the pooled goroutines
func (d *WorkerPoolDispatcher) Stop() {
	d.pool.Stop()
}
