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

	"github.com/goaktkit/kernel/address"
	"github.com/goaktkit/kernel/errors"
	"github.com/goaktkit/kernel/log"
	"github.com/goaktkit/kernel/supervisor"
)

// RootContext sends messages and spawns actors from outside of any actor.
// Its configuration methods mutate the receiver, use Copy to derive a new one.
type RootContext struct {
	system           *ActorSystem
	senderMiddleware SenderFunc
	spawnMiddleware  SpawnFunc
	headers          MessageHeader
	guardianStrategy supervisor.Strategy
}

var (
	_ SenderContext  = (*RootContext)(nil)
	_ SpawnerContext = (*RootContext)(nil)
)

// NewRootContext creates a RootContext sending the given headers with every message
func NewRootContext(system *ActorSystem, header map[string]string, middlewares ...SenderMiddleware) *RootContext {
	if header == nil {
		header = make(map[string]string)
	}
	return &RootContext{
		system:           system,
		senderMiddleware: makeSenderMiddlewareChain(middlewares, rootSender),
		headers:          MessageHeader(header),
	}
}

func rootSender(ctx SenderContext, target *PID, envelope *MessageEnvelope) {
	target.sendUserMessage(ctx.ActorSystem(), envelope)
}

// Copy returns a copy of the RootContext
func (rc *RootContext) Copy() *RootContext {
	clone := *rc
	return &clone
}

// WithHeaders sets the headers sent with every message
func (rc *RootContext) WithHeaders(headers map[string]string) *RootContext {
	rc.headers = headers
	return rc
}

// WithSenderMiddleware sets the middlewares around the outbound messages
func (rc *RootContext) WithSenderMiddleware(middlewares ...SenderMiddleware) *RootContext {
	rc.senderMiddleware = makeSenderMiddlewareChain(middlewares, rootSender)
	return rc
}

// WithSpawnMiddleware sets the middlewares around spawning
func (rc *RootContext) WithSpawnMiddleware(middlewares ...SpawnMiddleware) *RootContext {
	rc.spawnMiddleware = makeSpawnMiddlewareChain(middlewares, func(system *ActorSystem, id string, props *Props, parent SpawnerContext) (*PID, error) {
		return props.spawn(system, id, parent)
	})
	return rc
}

// WithGuardian makes a guardian applying strategy the parent of the spawned actors
func (rc *RootContext) WithGuardian(strategy supervisor.Strategy) *RootContext {
	rc.guardianStrategy = strategy
	return rc
}

//
// Interface: info
//

func (rc *RootContext) Parent() *PID {
	return nil
}

// Self returns the guardian PID when a guardian is set, nil otherwise
func (rc *RootContext) Self() *PID {
	if rc.guardianStrategy != nil {
		return rc.system.guardians.getGuardianPID(rc.guardianStrategy)
	}
	return nil
}

func (rc *RootContext) Actor() Actor {
	return nil
}

func (rc *RootContext) ActorSystem() *ActorSystem {
	return rc.system
}

func (rc *RootContext) Logger() log.Logger {
	return rc.system.logger
}

//
// Interface: message
//

func (rc *RootContext) Message() any {
	return nil
}

func (rc *RootContext) MessageHeader() ReadonlyMessageHeader {
	return rc.headers
}

//
// Interface: sender
//

func (rc *RootContext) Sender() *PID {
	return nil
}

func (rc *RootContext) Send(pid *PID, message any) {
	rc.sendUserMessage(pid, message)
}

// Request sends the message without sender, the root context cannot be answered
func (rc *RootContext) Request(pid *PID, message any) {
	rc.sendUserMessage(pid, message)
}

func (rc *RootContext) RequestWithCustomSender(pid *PID, message any, sender *PID) {
	rc.sendUserMessage(pid, &MessageEnvelope{Message: message, Sender: sender})
}

func (rc *RootContext) RequestFuture(pid *PID, message any, timeout time.Duration) *Future {
	future := NewFuture(rc.system, timeout)
	rc.sendUserMessage(pid, &MessageEnvelope{Message: message, Sender: future.PID()})
	return future
}

func (rc *RootContext) sendUserMessage(pid *PID, message any) {
	if rc.senderMiddleware != nil {
		rc.senderMiddleware(rc, pid, rc.envelope(message))
		return
	}

	if len(rc.headers) > 0 {
		message = rc.envelope(message)
	}
	pid.sendUserMessage(rc.system, message)
}

func (rc *RootContext) envelope(message any) *MessageEnvelope {
	envelope := WrapEnvelope(message)
	if envelope.Header == nil && len(rc.headers) > 0 {
		envelope.Header = rc.headers
	}
	return envelope
}

//
// Interface: spawner
//

// Spawn starts a top-level actor under a generated name
func (rc *RootContext) Spawn(props *Props) *PID {
	pid, err := rc.SpawnNamed(props, rc.system.ProcessRegistry.NextID())
	if err != nil {
		rc.system.logger.Errorf("failed to spawn actor: %v", err)
	}
	return pid
}

// SpawnPrefix starts a top-level actor under a generated name with the given prefix
func (rc *RootContext) SpawnPrefix(props *Props, prefix string) *PID {
	pid, err := rc.SpawnNamed(props, prefix+rc.system.ProcessRegistry.NextID())
	if err != nil {
		rc.system.logger.Errorf("failed to spawn actor: %v", err)
	}
	return pid
}

// SpawnNamed starts a top-level actor under the given name
func (rc *RootContext) SpawnNamed(props *Props, name string) (*PID, error) {
	if rc.system.IsStopped() {
		return nil, errors.ErrActorSystemStopped
	}

	root := rc
	if props.guardianStrategy != nil {
		root = rc.Copy().WithGuardian(props.guardianStrategy)
	}

	// registered before spawning, the actor may terminate before SpawnNamed returns
	addr := address.Local(name)
	tracked := rc.system.addTopLevel(addr)
	var guardian *guardianProcess
	if root.guardianStrategy != nil {
		guardian = rc.system.guardians.getGuardian(root.guardianStrategy)
		guardian.children.Add(addr)
	}

	var (
		pid *PID
		err error
	)
	if root.spawnMiddleware != nil {
		pid, err = root.spawnMiddleware(rc.system, name, props, root)
	} else {
		pid, err = props.spawn(rc.system, name, root)
	}

	if err != nil {
		if tracked {
			rc.system.topLevel.Delete(name)
			if guardian != nil {
				guardian.children.Remove(addr)
			}
		}
		return nil, err
	}
	return pid, nil
}

//
// Interface: stopper
//

// Stop stops pid immediately
func (rc *RootContext) Stop(pid *PID) {
	pid.ref(rc.system).Stop(pid)
}

// StopFuture stops pid and returns a Future completing on its termination
func (rc *RootContext) StopFuture(pid *PID) *Future {
	return watchedFuture(rc.system, pid, func() { rc.Stop(pid) })
}

// Poison stops pid once it processed the messages already in its mailbox
func (rc *RootContext) Poison(pid *PID) {
	pid.sendUserMessage(rc.system, poisonPillMessage)
}

// PoisonFuture poisons pid and returns a Future completing on its termination
func (rc *RootContext) PoisonFuture(pid *PID) *Future {
	return watchedFuture(rc.system, pid, func() { rc.Poison(pid) })
}
