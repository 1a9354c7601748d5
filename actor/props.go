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
	"fmt"
	"slices"
	"time"

	"github.com/goaktkit/kernel/errors"
	"github.com/goaktkit/kernel/supervisor"
)

// Props describes how to create and run an actor
type Props struct {
	spawner                 SpawnFunc
	producer                ProducerWithActorSystem
	mailboxProducer         MailboxProducer
	guardianStrategy        supervisor.Strategy
	supervisionStrategy     supervisor.Strategy
	dispatcher              Dispatcher
	receiverMiddleware      []ReceiverMiddleware
	senderMiddleware        []SenderMiddleware
	spawnMiddleware         []SpawnMiddleware
	receiverMiddlewareChain ReceiverFunc
	senderMiddlewareChain   SenderFunc
	spawnMiddlewareChain    SpawnFunc
	contextDecorator        []ContextDecorator
	contextDecoratorChain   ContextDecoratorFunc
	onInit                  []func(ctx Context)
	initMaxRetries          int
	initTimeout             time.Duration
}

// PropsFromProducer creates Props spawning the actors created by producer
func PropsFromProducer(producer Producer, opts ...PropsOption) *Props {
	p := &Props{
		producer: func(*ActorSystem) Actor {
			return producer()
		},
	}
	return p.Configure(opts...)
}

// PropsFromProducerWithActorSystem creates Props spawning the actors created by producer
func PropsFromProducerWithActorSystem(producer ProducerWithActorSystem, opts ...PropsOption) *Props {
	p := &Props{producer: producer}
	return p.Configure(opts...)
}

// PropsFromFunc creates Props spawning an actor running the given function
func PropsFromFunc(f ReceiveFunc, opts ...PropsOption) *Props {
	return PropsFromProducer(func() Actor { return f }, opts...)
}

// Configure applies the options and returns the Props
func (props *Props) Configure(opts ...PropsOption) *Props {
	for _, opt := range opts {
		opt(props)
	}
	return props
}

// Clone returns a copy of the Props with the options applied
func (props *Props) Clone(opts ...PropsOption) *Props {
	clone := *props
	clone.receiverMiddleware = append([]ReceiverMiddleware(nil), props.receiverMiddleware...)
	clone.senderMiddleware = append([]SenderMiddleware(nil), props.senderMiddleware...)
	clone.spawnMiddleware = append([]SpawnMiddleware(nil), props.spawnMiddleware...)
	clone.contextDecorator = append([]ContextDecorator(nil), props.contextDecorator...)
	clone.onInit = slices.Clone(props.onInit)
	return clone.Configure(opts...)
}

func (props *Props) getSpawner() SpawnFunc {
	if props.spawner == nil {
		return defaultSpawner
	}
	return props.spawner
}

func (props *Props) getDispatcher(system *ActorSystem) Dispatcher {
	if props.dispatcher == nil {
		return system.dispatcher
	}
	return props.dispatcher
}

func (props *Props) getSupervisor() supervisor.Strategy {
	if props.supervisionStrategy == nil {
		return supervisor.DefaultStrategy()
	}
	return props.supervisionStrategy
}

func (props *Props) produceMailbox() Mailbox {
	if props.mailboxProducer == nil {
		return NewUnboundedMailbox()()
	}
	return props.mailboxProducer()
}

func (props *Props) getInitRetries(system *ActorSystem) (int, time.Duration) {
	retries, timeout := props.initMaxRetries, props.initTimeout
	if retries <= 0 {
		retries = system.config.InitMaxRetries
	}
	if timeout <= 0 {
		timeout = system.config.InitTimeout
	}
	return retries, timeout
}

func (props *Props) spawn(system *ActorSystem, id string, parent SpawnerContext) (*PID, error) {
	return props.getSpawner()(system, id, props, parent)
}

// defaultSpawner registers the process, produces the actor, runs the init
// callbacks then starts the mailbox
func defaultSpawner(system *ActorSystem, id string, props *Props, parent SpawnerContext) (*PID, error) {
	mailbox := props.produceMailbox()
	if instrumented, ok := mailbox.(interface{ addMiddleware(MailboxMiddleware) }); ok && system.metrics != nil {
		instrumented.addMiddleware(system.metrics)
	}

	process := NewActorProcess(mailbox)
	pid, absent := system.ProcessRegistry.Add(process, id)
	if !absent {
		return nil, fmt.Errorf("%w: %s", errors.ErrNameExists, id)
	}

	// the actor is only produced once the name is taken; posts made meanwhile
	// wait in the mailbox until Start
	ctx := newActorContext(system, props, parent.Self())
	ctx.self = pid
	ctx.logger = system.logger.With("actor", pid.String())
	for _, init := range props.onInit {
		init(ctx)
	}

	mailbox.RegisterHandlers(ctx, props.getDispatcher(system))
	mailbox.PostSystemMessage(startedMessage)
	mailbox.Start()

	return pid, nil
}
