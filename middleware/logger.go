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

// Package middleware provides ready-made actor middlewares: debug logging of
// inbound and outbound messages, and propagation of middlewares down an
// actor hierarchy.
package middleware

import (
	"github.com/goaktkit/kernel/actor"
	"github.com/goaktkit/kernel/log"
)

// ReceiveLogger logs every message an actor receives at debug level
func ReceiveLogger(logger log.Logger) actor.ReceiverMiddleware {
	return func(next actor.ReceiverFunc) actor.ReceiverFunc {
		return func(ctx actor.ReceiverContext, envelope *actor.MessageEnvelope) {
			if logger.Enabled(log.DebugLevel) {
				logger.With(
					"actor", ctx.Self().String(),
					"sender", envelope.Sender.String(),
				).Debugf("received message %T", envelope.Message)
			}
			next(ctx, envelope)
		}
	}
}

// SendLogger logs every message an actor sends at debug level
func SendLogger(logger log.Logger) actor.SenderMiddleware {
	return func(next actor.SenderFunc) actor.SenderFunc {
		return func(ctx actor.SenderContext, target *actor.PID, envelope *actor.MessageEnvelope) {
			if logger.Enabled(log.DebugLevel) {
				logger.With(
					"actor", ctx.Self().String(),
					"target", target.String(),
				).Debugf("sending message %T", envelope.Message)
			}
			next(ctx, target, envelope)
		}
	}
}
