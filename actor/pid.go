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

	"github.com/goaktkit/kernel/address"
)

// PID references a Process through its address. The resolved Process is
// cached and dropped again once the actor behind it has been removed.
type PID struct {
	address address.Address
	cache   atomic.Pointer[cachedProcess]
}

type cachedProcess struct {
	process Process
}

// NewPID creates a PID for the given address
func NewPID(addr address.Address) *PID {
	return &PID{address: addr}
}

// Address returns the address of the PID
func (pid *PID) Address() address.Address {
	return pid.address
}

// ID returns the local identifier of the PID
func (pid *PID) ID() string {
	return pid.address.ID()
}

// String returns the string representation of the PID address
func (pid *PID) String() string {
	if pid == nil {
		return "nil"
	}
	return pid.address.String()
}

// Equal reports whether both PIDs reference the same address
func (pid *PID) Equal(other *PID) bool {
	if pid == nil || other == nil {
		return pid == other
	}
	return pid.address.Equals(other.address)
}

func (pid *PID) ref(system *ActorSystem) Process {
	if cached := pid.cache.Load(); cached != nil {
		if actor, ok := cached.process.(*ActorProcess); !ok || !actor.isDead() {
			return cached.process
		}
		pid.cache.Store(nil)
	}

	process, ok := system.ProcessRegistry.Get(pid)
	if ok {
		pid.cache.Store(&cachedProcess{process: process})
	}
	return process
}

func (pid *PID) sendUserMessage(system *ActorSystem, message any) {
	pid.ref(system).SendUserMessage(pid, message)
}

func (pid *PID) sendSystemMessage(system *ActorSystem, message any) {
	pid.ref(system).SendSystemMessage(pid, message)
}
