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
	"go.uber.org/atomic"

	"github.com/goaktkit/kernel/errors"
	iqueue "github.com/goaktkit/kernel/internal/queue"
)

const (
	idle int32 = iota
	running
)

// MessageInvoker consumes the messages taken out of a mailbox
type MessageInvoker interface {
	InvokeSystemMessage(message any)
	InvokeUserMessage(message any)
	EscalateFailure(reason error, message any)
}

// MailboxMiddleware observes the activity of a mailbox
type MailboxMiddleware interface {
	MailboxStarted()
	MessagePosted(message any)
	MessageReceived(message any)
	MailboxEmpty()
}

// Mailbox holds the pending messages of one actor and drives its run loop
type Mailbox interface {
	PostUserMessage(message any)
	PostSystemMessage(message any)
	RegisterHandlers(invoker MessageInvoker, dispatcher Dispatcher)
	Start()
	UserMessageCount() int
}

// MailboxProducer creates the mailbox of a new actor
type MailboxProducer func() Mailbox

// NewUnboundedMailbox returns a producer of mailboxes without capacity limit
func NewUnboundedMailbox(middlewares ...MailboxMiddleware) MailboxProducer {
	return func() Mailbox {
		return newMailbox(newUnboundedQueue(), middlewares...)
	}
}

// NewBoundedMailbox returns a producer of mailboxes holding at most size user
// messages. Senders block while the mailbox is full.
func NewBoundedMailbox(size int, middlewares ...MailboxMiddleware) MailboxProducer {
	return func() Mailbox {
		return newMailbox(newBoundedQueue(size, false), middlewares...)
	}
}

// NewBoundedDroppingMailbox returns a producer of mailboxes holding at most
// size user messages. The oldest message is dropped when the mailbox is full.
func NewBoundedDroppingMailbox(size int, middlewares ...MailboxMiddleware) MailboxProducer {
	return func() Mailbox {
		return newMailbox(newBoundedQueue(size, true), middlewares...)
	}
}

type defaultMailbox struct {
	userMailbox     MessageQueue
	systemMailbox   *iqueue.Mpsc[any]
	schedulerStatus atomic.Int32
	suspended       atomic.Bool
	started         atomic.Bool
	invoker         MessageInvoker
	dispatcher      Dispatcher
	middlewares     []MailboxMiddleware
}

var _ Mailbox = (*defaultMailbox)(nil)

func newMailbox(userMailbox MessageQueue, middlewares ...MailboxMiddleware) *defaultMailbox {
	return &defaultMailbox{
		userMailbox:   userMailbox,
		systemMailbox: iqueue.NewMpsc[any](),
		middlewares:   middlewares,
	}
}

// PostUserMessage enqueues a user message and schedules the run loop
func (m *defaultMailbox) PostUserMessage(message any) {
	for _, middleware := range m.middlewares {
		middleware.MessagePosted(message)
	}
	m.userMailbox.Push(message)
	m.schedule()
}

// PostSystemMessage enqueues a system message and schedules the run loop
func (m *defaultMailbox) PostSystemMessage(message any) {
	for _, middleware := range m.middlewares {
		middleware.MessagePosted(message)
	}
	m.systemMailbox.Push(message)
	m.schedule()
}

// RegisterHandlers sets the consumer of the messages and the executor of the run loop
func (m *defaultMailbox) RegisterHandlers(invoker MessageInvoker, dispatcher Dispatcher) {
	m.invoker = invoker
	m.dispatcher = dispatcher
}

// Start enables scheduling. Messages posted before Start are processed by
// the first turn.
func (m *defaultMailbox) Start() {
	m.started.Store(true)
	for _, middleware := range m.middlewares {
		middleware.MailboxStarted()
	}
	m.schedule()
}

// UserMessageCount returns the number of pending user messages
func (m *defaultMailbox) UserMessageCount() int {
	return m.userMailbox.Len()
}

func (m *defaultMailbox) addMiddleware(middleware MailboxMiddleware) {
	m.middlewares = append(m.middlewares, middleware)
}

// schedule hands a turn to the dispatcher. Only the caller flipping the
// status from idle to running does so.
func (m *defaultMailbox) schedule() {
	if !m.started.Load() {
		return
	}
	if m.schedulerStatus.CompareAndSwap(idle, running) {
		m.dispatcher.Schedule(m.processMessages)
	}
}

func (m *defaultMailbox) processMessages() {
process:
	exhausted := m.run()

	m.schedulerStatus.Store(idle)

	// messages may have arrived after the last pop and before the status flip
	if m.hasPending() && m.schedulerStatus.CompareAndSwap(idle, running) {
		if exhausted {
			m.dispatcher.Schedule(m.processMessages)
			return
		}
		goto process
	}

	for _, middleware := range m.middlewares {
		middleware.MailboxEmpty()
	}
}

// hasPending is called after the status flip, when another turn may already
// be consuming: it only reads the atomic counters of the queues.
func (m *defaultMailbox) hasPending() bool {
	if m.systemMailbox.Len() > 0 {
		return true
	}
	return !m.suspended.Load() && m.userMailbox.Len() > 0
}

// run processes up to throughput messages and reports whether the budget
// was spent before the queues ran dry.
func (m *defaultMailbox) run() (exhausted bool) {
	var (
		message any
		ok      bool
	)

	defer func() {
		if r := recover(); r != nil {
			m.invoker.EscalateFailure(errors.AsError(r), message)
			exhausted = false
		}
	}()

	throughput := m.dispatcher.Throughput()
	for range throughput {
		if message, ok = m.systemMailbox.Pop(); ok {
			switch message.(type) {
			case *SuspendMailbox:
				m.suspended.Store(true)
			case *ResumeMailbox:
				m.suspended.Store(false)
			default:
				m.invoker.InvokeSystemMessage(message)
			}
			continue
		}

		if m.suspended.Load() {
			return false
		}

		if message, ok = m.userMailbox.Pop(); !ok {
			return false
		}

		m.invoker.InvokeUserMessage(message)
		for _, middleware := range m.middlewares {
			middleware.MessageReceived(message)
		}
	}
	return true
}
