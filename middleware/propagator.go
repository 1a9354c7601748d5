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

package middleware

import (
	"github.com/goaktkit/kernel/actor"
)

// Propagator is a spawn middleware adding its middlewares to the Props of
// every actor spawned through it. With WithItselfForwarded the Propagator is
// installed on the spawned actors too, so the whole subtree inherits them.
type Propagator struct {
	itselfForwarded    bool
	spawnMiddleware    []actor.SpawnMiddleware
	senderMiddleware   []actor.SenderMiddleware
	receiverMiddleware []actor.ReceiverMiddleware
	contextDecorators  []actor.ContextDecorator
}

// NewPropagator creates an empty Propagator
func NewPropagator() *Propagator {
	return &Propagator{}
}

// WithItselfForwarded installs the Propagator on the spawned actors
func (p *Propagator) WithItselfForwarded() *Propagator {
	p.itselfForwarded = true
	return p
}

// WithSpawnMiddleware adds spawn middlewares to propagate
func (p *Propagator) WithSpawnMiddleware(middlewares ...actor.SpawnMiddleware) *Propagator {
	p.spawnMiddleware = append(p.spawnMiddleware, middlewares...)
	return p
}

// WithSenderMiddleware adds sender middlewares to propagate
func (p *Propagator) WithSenderMiddleware(middlewares ...actor.SenderMiddleware) *Propagator {
	p.senderMiddleware = append(p.senderMiddleware, middlewares...)
	return p
}

// WithReceiverMiddleware adds receiver middlewares to propagate
func (p *Propagator) WithReceiverMiddleware(middlewares ...actor.ReceiverMiddleware) *Propagator {
	p.receiverMiddleware = append(p.receiverMiddleware, middlewares...)
	return p
}

// WithContextDecorator adds context decorators to propagate
func (p *Propagator) WithContextDecorator(decorators ...actor.ContextDecorator) *Propagator {
	p.contextDecorators = append(p.contextDecorators, decorators...)
	return p
}

// SpawnMiddleware returns the spawn middleware applying the Propagator.
// The Props handed by the caller are cloned, never mutated.
func (p *Propagator) SpawnMiddleware(next actor.SpawnFunc) actor.SpawnFunc {
	return func(system *actor.ActorSystem, id string, props *actor.Props, parent actor.SpawnerContext) (*actor.PID, error) {
		opts := make([]actor.PropsOption, 0, 5)
		if p.itselfForwarded {
			opts = append(opts, actor.WithSpawnMiddleware(p.SpawnMiddleware))
		}
		if len(p.spawnMiddleware) > 0 {
			opts = append(opts, actor.WithSpawnMiddleware(p.spawnMiddleware...))
		}
		if len(p.senderMiddleware) > 0 {
			opts = append(opts, actor.WithSenderMiddleware(p.senderMiddleware...))
		}
		if len(p.receiverMiddleware) > 0 {
			opts = append(opts, actor.WithReceiverMiddleware(p.receiverMiddleware...))
		}
		if len(p.contextDecorators) > 0 {
			opts = append(opts, actor.WithContextDecorator(p.contextDecorators...))
		}
		return next(system, id, props.Clone(opts...), parent)
	}
}
