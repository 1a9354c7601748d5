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

// Package actor implements a local actor runtime: addressing and the process
// registry, mailboxes and dispatchers, the actor context lifecycle,
// supervision, dead letters and request/response futures.
package actor

import "context"

// Actor is the behavior of an actor. Receive is never called concurrently
// for the same actor.
type Actor interface {
	Receive(c Context)
}

// ReceiveFunc adapts a function into an Actor
type ReceiveFunc func(c Context)

var _ Actor = ReceiveFunc(nil)

// Receive implements Actor
func (f ReceiveFunc) Receive(c Context) {
	f(c)
}

// Producer creates a new actor instance. It is called on spawn and on every restart.
type Producer func() Actor

// ProducerWithActorSystem creates a new actor instance bound to the actor system
type ProducerWithActorSystem func(system *ActorSystem) Actor

// PreStarter is implemented by actors that initialize resources before
// they receive Started. A failing PreStart is retried, then reported to the
// supervisor as an initialization failure.
type PreStarter interface {
	PreStart(ctx context.Context) error
}
