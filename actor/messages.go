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
	"github.com/goaktkit/kernel/supervisor"
)

// SystemMessage marks messages delivered through the system queue of a mailbox.
// They bypass suspension and are handled by the actor context itself.
type SystemMessage interface {
	SystemMessage()
}

// AutoReceiveMessage marks the lifecycle notices the runtime delivers to
// the actor behavior on its own.
type AutoReceiveMessage interface {
	AutoReceiveMessage()
}

// NotInfluenceReceiveTimeout marks user messages that do not reset the
// receive timeout of the target actor.
type NotInfluenceReceiveTimeout interface {
	NotInfluenceReceiveTimeout()
}

// AutoRespond is implemented by messages whose response is computed by the
// message itself. The runtime sends it back to the sender after the actor
// handled the message.
type AutoRespond interface {
	GetAutoResponse(ctx Context) any
}

// Started is delivered to the behavior of every new actor incarnation
type Started struct{}

// Stopping is delivered when the actor begins to stop
type Stopping struct{}

// Stopped is delivered once all children of a stopping actor have terminated
type Stopped struct{}

// Restarting is delivered to the old incarnation before it is replaced
type Restarting struct{}

// ReceiveTimeout is delivered when no message reached the actor within the
// configured receive timeout
type ReceiveTimeout struct{}

// PoisonPill stops the actor once the messages enqueued before it are processed
type PoisonPill struct{}

// Stop asks the actor to stop immediately
type Stop struct{}

// Restart asks the actor to restart
type Restart struct{}

// Watch asks the actor to notify the Watcher when it terminates
type Watch struct {
	Watcher *PID
}

// Unwatch cancels a previous Watch
type Unwatch struct {
	Watcher *PID
}

// Terminated notifies that the actor Who has stopped
type Terminated struct {
	Who *PID
}

// Failure reports a failed child to its supervisor
type Failure struct {
	Who          *PID
	Reason       error
	RestartStats *supervisor.RestartStatistics
	Message      any
}

// SuspendMailbox stops the delivery of user messages
type SuspendMailbox struct{}

// ResumeMailbox resumes the delivery of user messages
type ResumeMailbox struct{}

// DeadLetterResponse is sent back to the sender of a message that reached
// the dead letter process
type DeadLetterResponse struct {
	Target *PID
}

// continuation resumes an actor after a future it waits on completed
type continuation struct {
	message any
	f       func()
}

// receiveTimeoutSignal is posted by the receive timeout timer. Signals armed
// before the last reset are ignored.
type receiveTimeoutSignal struct {
	generation uint64
}

func (*Started) AutoReceiveMessage()    {}
func (*Stopping) AutoReceiveMessage()   {}
func (*Stopped) AutoReceiveMessage()    {}
func (*Restarting) AutoReceiveMessage() {}
func (*PoisonPill) AutoReceiveMessage() {}

func (*Started) SystemMessage()        {}
func (*Stop) SystemMessage()           {}
func (*Restart) SystemMessage()        {}
func (*Watch) SystemMessage()          {}
func (*Unwatch) SystemMessage()        {}
func (*Terminated) SystemMessage()     {}
func (*Failure) SystemMessage()        {}
func (*SuspendMailbox) SystemMessage() {}
func (*ResumeMailbox) SystemMessage()  {}
func (*continuation) SystemMessage()   {}

func (*ReceiveTimeout) NotInfluenceReceiveTimeout()       {}
func (*receiveTimeoutSignal) NotInfluenceReceiveTimeout() {}

var (
	startedMessage        = &Started{}
	stoppingMessage       = &Stopping{}
	stoppedMessage        = &Stopped{}
	restartingMessage     = &Restarting{}
	receiveTimeoutMessage = &ReceiveTimeout{}
	poisonPillMessage     = &PoisonPill{}
	stopMessage           = &Stop{}
	restartMessage        = &Restart{}
	suspendMailboxMessage = &SuspendMailbox{}
	resumeMailboxMessage  = &ResumeMailbox{}
)
