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

	"github.com/goaktkit/kernel/supervisor"
)

// PropsOption configures Props
type PropsOption func(props *Props)

// WithProducer sets the producer of the actor instances
func WithProducer(producer Producer) PropsOption {
	return func(props *Props) {
		props.producer = func(*ActorSystem) Actor { return producer() }
	}
}

// WithMailbox sets the mailbox of the actor
func WithMailbox(mailbox MailboxProducer) PropsOption {
	return func(props *Props) {
		props.mailboxProducer = mailbox
	}
}

// WithDispatcher sets the dispatcher running the actor turns
func WithDispatcher(dispatcher Dispatcher) PropsOption {
	return func(props *Props) {
		props.dispatcher = dispatcher
	}
}

// WithSupervisor sets the strategy supervising the children of the actor
func WithSupervisor(strategy supervisor.Strategy) PropsOption {
	return func(props *Props) {
		props.supervisionStrategy = strategy
	}
}

// WithGuardian makes a guardian applying strategy the parent of the actor.
// Only actors spawned from the root context can have a guardian.
func WithGuardian(strategy supervisor.Strategy) PropsOption {
	return func(props *Props) {
		props.guardianStrategy = strategy
	}
}

// WithReceiverMiddleware appends middlewares around the inbound messages
func WithReceiverMiddleware(middlewares ...ReceiverMiddleware) PropsOption {
	return func(props *Props) {
		props.receiverMiddleware = append(props.receiverMiddleware, middlewares...)
		props.receiverMiddlewareChain = makeReceiverMiddlewareChain(props.receiverMiddleware, func(ctx ReceiverContext, envelope *MessageEnvelope) {
			ctx.Receive(envelope)
		})
	}
}

// WithSenderMiddleware appends middlewares around the outbound messages
func WithSenderMiddleware(middlewares ...SenderMiddleware) PropsOption {
	return func(props *Props) {
		props.senderMiddleware = append(props.senderMiddleware, middlewares...)
		props.senderMiddlewareChain = makeSenderMiddlewareChain(props.senderMiddleware, func(ctx SenderContext, target *PID, envelope *MessageEnvelope) {
			target.sendUserMessage(ctx.ActorSystem(), envelope)
		})
	}
}

// WithSpawnMiddleware appends middlewares around the spawning of children
func WithSpawnMiddleware(middlewares ...SpawnMiddleware) PropsOption {
	return func(props *Props) {
		props.spawnMiddleware = append(props.spawnMiddleware, middlewares...)
		props.spawnMiddlewareChain = makeSpawnMiddlewareChain(props.spawnMiddleware, func(system *ActorSystem, id string, p *Props, parent SpawnerContext) (*PID, error) {
			return p.spawn(system, id, parent)
		})
	}
}

// WithContextDecorator appends decorators of the context handed to the actor
func WithContextDecorator(decorators ...ContextDecorator) PropsOption {
	return func(props *Props) {
		props.contextDecorator = append(props.contextDecorator, decorators...)
		props.contextDecoratorChain = makeContextDecoratorChain(props.contextDecorator, func(ctx Context) Context {
			return ctx
		})
	}
}

// WithOnInit appends callbacks run once the actor is registered and before
// its mailbox starts
func WithOnInit(init ...func(ctx Context)) PropsOption {
	return func(props *Props) {
		props.onInit = append(props.onInit, init...)
	}
}

// WithSpawnFunc overrides how the actor is spawned
func WithSpawnFunc(spawn SpawnFunc) PropsOption {
	return func(props *Props) {
		props.spawner = spawn
	}
}

// WithInitRetries sets the attempts and the overall timeout of the PreStart hook
func WithInitRetries(maxRetries int, timeout time.Duration) PropsOption {
	return func(props *Props) {
		props.initMaxRetries = maxRetries
		props.initTimeout = timeout
	}
}
