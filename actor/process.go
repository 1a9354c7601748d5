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
)

// Process is the delivery target behind a PID. Implementations must be safe
// for concurrent use: any goroutine may send to a Process at any time.
type Process interface {
	SendUserMessage(pid *PID, message any)
	SendSystemMessage(pid *PID, message any)
	Stop(pid *PID)
}

// ActorProcess is the Process of a spawned actor. It only feeds the mailbox.
type ActorProcess struct {
	mailbox Mailbox
	dead    atomic.Bool
}

var _ Process = (*ActorProcess)(nil)

// NewActorProcess creates an ActorProcess delivering to the given mailbox
func NewActorProcess(mailbox Mailbox) *ActorProcess {
	return &ActorProcess{mailbox: mailbox}
}

// SendUserMessage posts the message to the user queue of the mailbox
func (ref *ActorProcess) SendUserMessage(_ *PID, message any) {
	ref.mailbox.PostUserMessage(message)
}

// SendSystemMessage posts the message to the system queue of the mailbox
func (ref *ActorProcess) SendSystemMessage(_ *PID, message any) {
	ref.mailbox.PostSystemMessage(message)
}

// Stop asks the actor to stop
func (ref *ActorProcess) Stop(pid *PID) {
	ref.SendSystemMessage(pid, stopMessage)
}

// isDead reports whether the process has been removed from the registry
func (ref *ActorProcess) isDead() bool {
	return ref.dead.Load()
}
