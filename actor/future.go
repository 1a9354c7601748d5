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
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/goaktkit/kernel/errors"
)

// Future is the eventual response of a request. It is backed by a
// temporary process registered until the future completes. A future
// completes exactly once: by the first response, a timeout or a cancellation.
type Future struct {
	pid       *PID
	system    *ActorSystem
	completed atomic.Bool
	done      chan struct{}

	mu          sync.Mutex
	result      any
	err         error
	timer       *time.Timer
	stopContext func() bool
	pipes       []*PID
	completions []func(res any, err error)

	// accept filters the responses, nil accepts all. The first rejected
	// payload is kept in skipped.
	accept  func(payload any) bool
	skipped any
}

// futureProcess is the Process answering on behalf of a Future
type futureProcess struct {
	future *Future
}

var _ Process = (*futureProcess)(nil)

// NewFuture creates a Future completing with ErrRequestTimeout after the
// timeout. A non-positive timeout never expires.
func NewFuture(system *ActorSystem, timeout time.Duration) *Future {
	future := newFuture(system)
	if timeout > 0 {
		future.mu.Lock()
		future.timer = time.AfterFunc(timeout, func() {
			future.complete(nil, errors.ErrRequestTimeout)
		})
		future.mu.Unlock()
	}
	return future
}

// NewFutureWithContext creates a Future completing when ctx is done:
// with ErrRequestTimeout on deadline and ErrRequestCanceled otherwise.
func NewFutureWithContext(ctx context.Context, system *ActorSystem) *Future {
	future := newFuture(system)
	future.mu.Lock()
	future.stopContext = context.AfterFunc(ctx, func() {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			future.complete(nil, errors.ErrRequestTimeout)
			return
		}
		future.complete(nil, errors.ErrRequestCanceled)
	})
	future.mu.Unlock()
	return future
}

func newFuture(system *ActorSystem) *Future {
	future := &Future{
		system: system,
		done:   make(chan struct{}),
	}

	id := "future" + system.ProcessRegistry.NextID()
	pid, ok := system.ProcessRegistry.Add(&futureProcess{future: future}, id)
	if !ok {
		// identifiers produced by NextID are unique
		system.logger.Errorf("failed to register future %s", id)
		pid = system.NewLocalPID(id)
	}
	future.pid = pid
	return future
}

// PID returns the PID of the process answering on behalf of the future
func (f *Future) PID() *PID {
	return f.pid
}

// Done returns a channel closed once the future completed
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the future completes and returns its outcome
func (f *Future) Result() (any, error) {
	<-f.done
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.err
}

// Wait blocks until the future completes and returns its error
func (f *Future) Wait() error {
	_, err := f.Result()
	return err
}

// Cancel completes the future with ErrRequestCanceled
func (f *Future) Cancel() {
	f.complete(nil, errors.ErrRequestCanceled)
}

// PipeTo sends the outcome of the future to every pid once it completes:
// the result, or the error when the future failed.
func (f *Future) PipeTo(pids ...*PID) {
	f.mu.Lock()
	if !f.isDone() {
		f.pipes = append(f.pipes, pids...)
		f.mu.Unlock()
		return
	}
	result, err := f.result, f.err
	f.mu.Unlock()

	f.sendPipes(pids, result, err)
}

func (f *Future) continueWith(continuation func(res any, err error)) {
	f.mu.Lock()
	if !f.isDone() {
		f.completions = append(f.completions, continuation)
		f.mu.Unlock()
		return
	}
	result, err := f.result, f.err
	f.mu.Unlock()

	continuation(result, err)
}

// complete resolves the future and reports whether this call did so.
// Later calls are no-ops.
func (f *Future) complete(result any, err error) bool {
	if !f.completed.CompareAndSwap(false, true) {
		return false
	}

	f.system.ProcessRegistry.Remove(f.pid)

	f.mu.Lock()
	f.result, f.err = result, err
	if f.timer != nil {
		f.timer.Stop()
	}
	if f.stopContext != nil {
		f.stopContext()
	}
	pipes, completions := f.pipes, f.completions
	f.pipes, f.completions = nil, nil
	close(f.done)
	f.mu.Unlock()

	f.sendPipes(pipes, result, err)
	for _, completion := range completions {
		completion(result, err)
	}
	return true
}

// isDone must be called with the lock held
func (f *Future) isDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future) sendPipes(pids []*PID, result any, err error) {
	var message = result
	if err != nil {
		message = err
	}
	for _, pid := range pids {
		pid.sendUserMessage(f.system, message)
	}
}

func (p *futureProcess) SendUserMessage(_ *PID, message any) {
	payload := UnwrapEnvelopeMessage(message)
	if _, ok := payload.(*DeadLetterResponse); ok {
		p.future.complete(nil, errors.ErrDeadLetter)
		return
	}

	if p.future.accept != nil && !p.future.accept(payload) {
		p.future.skip(payload)
		return
	}
	p.future.complete(payload, nil)
}

func (f *Future) skip(payload any) {
	f.mu.Lock()
	if f.skipped == nil {
		f.skipped = payload
	}
	f.mu.Unlock()
	f.system.logger.Debugf("future %s skipped response %T", f.pid, payload)
}

// SendSystemMessage completes the future with the message. Futures watching
// an actor complete with its Terminated notice.
func (p *futureProcess) SendSystemMessage(_ *PID, message any) {
	p.future.complete(message, nil)
}

func (p *futureProcess) Stop(_ *PID) {
	p.future.Cancel()
}

// Ask sends message to pid and waits for a response of type T. Responses of
// another type are skipped. Without deadline on ctx the actor system ask
// timeout applies.
func Ask[T any](ctx context.Context, sender SenderContext, pid *PID, message any) (T, error) {
	var zero T
	system := sender.ActorSystem()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, system.config.AskTimeout)
		defer cancel()
	}

	future := NewFutureWithContext(ctx, system)
	future.accept = func(payload any) bool {
		_, ok := payload.(T)
		return ok
	}
	sender.RequestWithCustomSender(pid, message, future.PID())

	result, err := future.Result()
	if err != nil {
		future.mu.Lock()
		skipped := future.skipped
		future.mu.Unlock()
		if skipped != nil {
			return zero, fmt.Errorf("%w: expected %T, got %T: %w", errors.ErrUnexpectedReply, zero, skipped, err)
		}
		return zero, err
	}

	reply, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %T, got %T", errors.ErrUnexpectedReply, zero, result)
	}
	return reply, nil
}

// watchedFuture returns a future completing once pid terminated, then runs stop
func watchedFuture(system *ActorSystem, pid *PID, stop func()) *Future {
	future := NewFuture(system, system.config.ShutdownTimeout)
	pid.sendSystemMessage(system, &Watch{Watcher: future.PID()})
	stop()
	return future
}
