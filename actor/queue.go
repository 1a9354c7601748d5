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
	"time"

	"github.com/Workiva/go-datastructures/queue"

	iqueue "github.com/goaktkit/kernel/internal/queue"
)

// MessageQueue is the user message queue of a mailbox. Push may be called by
// many goroutines while Pop is only called by the mailbox run loop.
type MessageQueue interface {
	Push(message any)
	Pop() (any, bool)
	Len() int
}

// unboundedQueue is a lock-free queue without capacity limit
type unboundedQueue struct {
	queue *iqueue.Mpsc[any]
}

func newUnboundedQueue() MessageQueue {
	return &unboundedQueue{queue: iqueue.NewMpsc[any]()}
}

func (q *unboundedQueue) Push(message any) {
	q.queue.Push(message)
}

func (q *unboundedQueue) Pop() (any, bool) {
	return q.queue.Pop()
}

func (q *unboundedQueue) Len() int {
	return int(q.queue.Len())
}

// boundedQueue is a fixed capacity ring buffer. The capacity is rounded up
// to the next power of two.
type boundedQueue struct {
	buffer   *queue.RingBuffer
	dropping bool
}

func newBoundedQueue(size int, dropping bool) MessageQueue {
	return &boundedQueue{
		buffer:   queue.NewRingBuffer(uint64(size)),
		dropping: dropping,
	}
}

// Push blocks while the buffer is full, unless the queue drops its oldest
// message to make room for the new one.
func (q *boundedQueue) Push(message any) {
	if !q.dropping {
		_ = q.buffer.Put(message)
		return
	}

	for {
		ok, err := q.buffer.Offer(message)
		if err != nil || ok {
			return
		}
		// drop the oldest message, the consumer may have emptied the buffer meanwhile
		_, _ = q.buffer.Poll(time.Millisecond)
	}
}

func (q *boundedQueue) Pop() (any, bool) {
	if q.buffer.Len() == 0 {
		return nil, false
	}
	message, err := q.buffer.Get()
	if err != nil {
		return nil, false
	}
	return message, true
}

func (q *boundedQueue) Len() int {
	return int(q.buffer.Len())
}
