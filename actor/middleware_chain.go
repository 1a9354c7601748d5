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

// SenderFunc delivers an envelope to its target
type SenderFunc func(ctx SenderContext, target *PID, envelope *MessageEnvelope)

// SenderMiddleware intercepts outbound messages
type SenderMiddleware func(next SenderFunc) SenderFunc

// ReceiverFunc hands an envelope to the actor
type ReceiverFunc func(ctx ReceiverContext, envelope *MessageEnvelope)

// ReceiverMiddleware intercepts inbound messages
type ReceiverMiddleware func(next ReceiverFunc) ReceiverFunc

// ContextDecoratorFunc decorates the context handed to the actor
type ContextDecoratorFunc func(ctx Context) Context

// ContextDecorator wraps a ContextDecoratorFunc
type ContextDecorator func(next ContextDecoratorFunc) ContextDecoratorFunc

// SpawnFunc spawns an actor under the given id
type SpawnFunc func(system *ActorSystem, id string, props *Props, parent SpawnerContext) (*PID, error)

// SpawnMiddleware intercepts spawning
type SpawnMiddleware func(next SpawnFunc) SpawnFunc

// The chains are composed right to left: the first middleware observes the
// message first and the last one calls the terminal function.

func makeReceiverMiddlewareChain(middlewares []ReceiverMiddleware, last ReceiverFunc) ReceiverFunc {
	if len(middlewares) == 0 {
		return nil
	}

	h := middlewares[len(middlewares)-1](last)
	for i := len(middlewares) - 2; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func makeSenderMiddlewareChain(middlewares []SenderMiddleware, last SenderFunc) SenderFunc {
	if len(middlewares) == 0 {
		return nil
	}

	h := middlewares[len(middlewares)-1](last)
	for i := len(middlewares) - 2; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func makeContextDecoratorChain(decorators []ContextDecorator, last ContextDecoratorFunc) ContextDecoratorFunc {
	if len(decorators) == 0 {
		return nil
	}

	h := decorators[len(decorators)-1](last)
	for i := len(decorators) - 2; i >= 0; i-- {
		h = decorators[i](h)
	}
	return h
}

func makeSpawnMiddlewareChain(middlewares []SpawnMiddleware, last SpawnFunc) SpawnFunc {
	if len(middlewares) == 0 {
		return nil
	}

	h := middlewares[len(middlewares)-1](last)
	for i := len(middlewares) - 2; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
