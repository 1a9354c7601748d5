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

	"github.com/goaktkit/kernel/log"
)

// Context is handed to the actor for every message it receives. It must
// only be used from within Receive.
type Context interface {
	infoPart
	basePart
	messagePart
	senderPart
	receiverPart
	spawnerPart
	stopperPart
}

// SenderContext is the part of a context able to send messages
type SenderContext interface {
	infoPart
	senderPart
	messagePart
}

// ReceiverContext is the part of a context able to receive messages
type ReceiverContext interface {
	infoPart
	receiverPart
	messagePart
}

// SpawnerContext is the part of a context able to spawn actors
type SpawnerContext interface {
	infoPart
	spawnerPart
}

type infoPart interface {
	// Parent returns the PID of the parent, nil for the root context
	Parent() *PID
	// Self returns the PID of the actor
	Self() *PID
	// Actor returns the current actor instance
	Actor() Actor
	// ActorSystem returns the actor system hosting the actor
	ActorSystem() *ActorSystem
	// Logger returns the logger scoped to the actor
	Logger() log.Logger
}

type basePart interface {
	// ReceiveTimeout returns the current receive timeout
	ReceiveTimeout() time.Duration
	// Children returns the PIDs of the children
	Children() []*PID
	// Respond sends a response to the sender of the current message.
	// Without sender the response goes to the dead letters.
	Respond(response any)
	// Stash keeps the current message aside. Stashed messages are replayed
	// in order after the actor restarts.
	Stash() error
	// StashSize returns the number of stashed messages
	StashSize() int
	// Watch registers the actor for the termination notice of pid
	Watch(pid *PID)
	// Unwatch cancels a previous Watch
	Unwatch(pid *PID)
	// SetReceiveTimeout arms a repeating timer delivering ReceiveTimeout
	// when no message arrived within d. Every message resets the timer
	// unless it implements NotInfluenceReceiveTimeout.
	SetReceiveTimeout(d time.Duration) error
	// CancelReceiveTimeout disarms the receive timeout
	CancelReceiveTimeout()
	// Forward sends the current message to pid, keeping its sender and headers
	Forward(pid *PID)
	// ReenterAfter runs continuation within a turn of the actor once the
	// future completes. The current message is restored for the call.
	ReenterAfter(future *Future, continuation func(res any, err error))
	// Become replaces the behavior of the actor
	Become(receive ReceiveFunc)
	// BecomeStacked pushes a behavior on top of the current one
	BecomeStacked(receive ReceiveFunc)
	// UnbecomeStacked reverts to the previous behavior
	UnbecomeStacked()
	// EscalateFailure suspends the actor and reports the failure to its supervisor
	EscalateFailure(reason error, message any)
}

type messagePart interface {
	// Message returns the payload of the current message
	Message() any
	// MessageHeader returns the headers of the current message
	MessageHeader() ReadonlyMessageHeader
}

type senderPart interface {
	// Sender returns the sender of the current message
	Sender() *PID
	// Send sends a message without sender
	Send(pid *PID, message any)
	// Request sends a message with the current actor as sender
	Request(pid *PID, message any)
	// RequestWithCustomSender sends a message with the given sender
	RequestWithCustomSender(pid *PID, message any, sender *PID)
	// RequestFuture sends a message and returns a Future of the response
	RequestFuture(pid *PID, message any, timeout time.Duration) *Future
}

type receiverPart interface {
	Receive(envelope *MessageEnvelope)
}

type spawnerPart interface {
	// Spawn starts an actor under a generated name. Failures are logged and
	// yield a nil PID.
	Spawn(props *Props) *PID
	// SpawnPrefix starts an actor under a generated name with the given prefix
	SpawnPrefix(props *Props, prefix string) *PID
	// SpawnNamed starts an actor under the given name
	SpawnNamed(props *Props, name string) (*PID, error)
}

type stopperPart interface {
	// Stop stops pid immediately
	Stop(pid *PID)
	// StopFuture stops pid and returns a Future completing on its termination
	StopFuture(pid *PID) *Future
	// Poison stops pid once it processed the messages already in its mailbox
	Poison(pid *PID)
	// PoisonFuture poisons pid and returns a Future completing on its termination
	PoisonFuture(pid *PID) *Future
}
