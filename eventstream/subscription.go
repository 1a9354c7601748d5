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

package eventstream

import (
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Subscription is the handle returned by Subscribe
type Subscription struct {
	id        string
	handler   Handler
	predicate Predicate
	active    *atomic.Bool
}

func newSubscription(handler Handler, predicate Predicate) *Subscription {
	return &Subscription{
		id:        uuid.NewString(),
		handler:   handler,
		predicate: predicate,
		active:    atomic.NewBool(true),
	}
}

// ID returns the subscription unique identifier
func (x *Subscription) ID() string {
	return x.id
}

// Active reports whether the subscription still receives events
func (x *Subscription) Active() bool {
	return x.active.Load()
}

// Deactivate stops delivery without removing the subscription from its stream
func (x *Subscription) Deactivate() {
	x.active.Store(false)
}

func (x *Subscription) accepts(event any) bool {
	return x.predicate == nil || x.predicate(event)
}
