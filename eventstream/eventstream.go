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

// Package eventstream provides the synchronous publish/subscribe bus owned by
// an actor system. Dead letters, supervision decisions and any other event
// published on it are delivered to every active subscription on the
// publisher's goroutine.
package eventstream

import (
	"fmt"
	"slices"
	"sync"

	"github.com/goaktkit/kernel/log"
)

// Handler receives the events published on a Stream
type Handler func(event any)

// Predicate filters the events delivered to a subscription
type Predicate func(event any) bool

// Stream is the event stream broker.
// It is safe for concurrent use.
type Stream struct {
	mu            sync.RWMutex
	subscriptions []*Subscription
	logger        log.Logger
}

// New creates an instance of Stream. Handler panics are reported on logger.
func New(logger log.Logger) *Stream {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &Stream{
		subscriptions: make([]*Subscription, 0),
		logger:        logger,
	}
}

// Subscribe registers handler for every event published from now on
func (s *Stream) Subscribe(handler Handler) *Subscription {
	return s.subscribe(handler, nil)
}

// SubscribeWithPredicate registers handler for the events accepted by predicate
func (s *Stream) SubscribeWithPredicate(handler Handler, predicate Predicate) *Subscription {
	return s.subscribe(handler, predicate)
}

func (s *Stream) subscribe(handler Handler, predicate Predicate) *Subscription {
	sub := newSubscription(handler, predicate)

	s.mu.Lock()
	// copy on write so that Publish can iterate a snapshot without holding the lock
	next := make([]*Subscription, len(s.subscriptions), len(s.subscriptions)+1)
	copy(next, s.subscriptions)
	s.subscriptions = append(next, sub)
	s.mu.Unlock()
	return sub
}

// Unsubscribe deactivates sub and removes it from the stream.
// Calling it more than once, or with a subscription from another stream, is a no-op.
func (s *Stream) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	sub.Deactivate()

	s.mu.Lock()
	defer s.mu.Unlock()
	index := slices.Index(s.subscriptions, sub)
	if index < 0 {
		return
	}
	s.subscriptions = slices.Concat(s.subscriptions[:index], s.subscriptions[index+1:])
}

// Publish delivers event to every active subscription in subscription order.
// A panicking predicate or handler is logged and does not prevent delivery
// to the others.
func (s *Stream) Publish(event any) {
	s.mu.RLock()
	snapshot := s.subscriptions
	s.mu.RUnlock()

	for _, sub := range snapshot {
		if !sub.Active() {
			continue
		}
		s.deliver(sub, event)
	}
}

// Length returns the number of subscriptions
func (s *Stream) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscriptions)
}

// Close removes every subscription
func (s *Stream) Close() {
	s.mu.Lock()
	for _, sub := range s.subscriptions {
		sub.Deactivate()
	}
	s.subscriptions = make([]*Subscription, 0)
	s.mu.Unlock()
}

func (s *Stream) deliver(sub *Subscription, event any) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("event stream subscription=(%s) panicked handling %T: %v", sub.ID(), event, r)
		}
	}()
	if sub.accepts(event) {
		sub.handler(event)
	}
}

// String returns a short description used in log entries
func (s *Stream) String() string {
	return fmt.Sprintf("eventstream(subscriptions=%d)", s.Length())
}
