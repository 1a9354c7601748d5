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
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaktkit/kernel/actor"
	"github.com/goaktkit/kernel/log"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type testMessage struct{}

// syncBuffer is written by actor goroutines and read by the test
type syncBuffer struct {
	mu     sync.Mutex
	buffer bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.String()
}

func newSystem(t *testing.T) *actor.ActorSystem {
	t.Helper()
	system, err := actor.NewActorSystem(actor.WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = system.Shutdown(context.Background())
	})
	return system
}

func TestLoggers(t *testing.T) {
	t.Run("With ReceiveLogger", func(t *testing.T) {
		system := newSystem(t)
		output := new(syncBuffer)
		logger := log.NewZap(log.DebugLevel, output)

		received := make(chan struct{}, 1)
		pid := system.Root.Spawn(actor.PropsFromFunc(func(ctx actor.Context) {
			if _, ok := ctx.Message().(*testMessage); ok {
				received <- struct{}{}
			}
		}, actor.WithReceiverMiddleware(ReceiveLogger(logger))))

		system.Root.Send(pid, new(testMessage))
		<-received

		require.Eventually(t, func() bool {
			return strings.Contains(output.String(), "received message *middleware.testMessage")
		}, waitFor, tick)
		assert.Contains(t, output.String(), pid.String())
	})
	t.Run("With ReceiveLogger above debug level", func(t *testing.T) {
		system := newSystem(t)
		output := new(syncBuffer)
		logger := log.NewZap(log.InfoLevel, output)

		received := make(chan struct{}, 1)
		pid := system.Root.Spawn(actor.PropsFromFunc(func(ctx actor.Context) {
			if _, ok := ctx.Message().(*testMessage); ok {
				received <- struct{}{}
			}
		}, actor.WithReceiverMiddleware(ReceiveLogger(logger))))

		system.Root.Send(pid, new(testMessage))
		<-received
		assert.Empty(t, output.String())
	})
	t.Run("With SendLogger", func(t *testing.T) {
		system := newSystem(t)
		output := new(syncBuffer)
		logger := log.NewZap(log.DebugLevel, output)

		received := make(chan struct{}, 1)
		target := system.Root.Spawn(actor.PropsFromFunc(func(ctx actor.Context) {
			if _, ok := ctx.Message().(*testMessage); ok {
				received <- struct{}{}
			}
		}))
		relay := system.Root.Spawn(actor.PropsFromFunc(func(ctx actor.Context) {
			if _, ok := ctx.Message().(string); ok {
				ctx.Send(target, new(testMessage))
			}
		}, actor.WithSenderMiddleware(SendLogger(logger))))

		system.Root.Send(relay, "go")
		<-received

		out := output.String()
		assert.Contains(t, out, "sending message *middleware.testMessage")
		assert.Contains(t, out, target.String())
	})
}

func TestPropagator(t *testing.T) {
	// spawnTree spawns a parent which spawns one child on start. It returns
	// the parent and a channel yielding the child.
	spawnTree := func(t *testing.T, propagator *Propagator) (*actor.PID, chan *actor.PID) {
		system := newSystem(t)
		children := make(chan *actor.PID, 1)
		root := system.Root.Copy().WithSpawnMiddleware(propagator.SpawnMiddleware)
		parent, err := root.SpawnNamed(actor.PropsFromFunc(func(ctx actor.Context) {
			if _, ok := ctx.Message().(*actor.Started); ok {
				children <- ctx.Spawn(actor.PropsFromFunc(func(actor.Context) {}))
			}
		}), "parent")
		require.NoError(t, err)
		return parent, children
	}

	observe := func(seen mapset.Set[string]) actor.ReceiverMiddleware {
		return func(next actor.ReceiverFunc) actor.ReceiverFunc {
			return func(ctx actor.ReceiverContext, envelope *actor.MessageEnvelope) {
				seen.Add(ctx.Self().ID())
				next(ctx, envelope)
			}
		}
	}

	t.Run("With itself forwarded", func(t *testing.T) {
		seen := mapset.NewSet[string]()
		propagator := NewPropagator().WithItselfForwarded().WithReceiverMiddleware(observe(seen))
		parent, children := spawnTree(t, propagator)

		child := <-children
		require.NotNil(t, child)
		require.Eventually(t, func() bool {
			return seen.Contains(parent.ID()) && seen.Contains(child.ID())
		}, waitFor, tick)
	})
	t.Run("Without itself forwarded", func(t *testing.T) {
		seen := mapset.NewSet[string]()
		propagator := NewPropagator().WithReceiverMiddleware(observe(seen))
		parent, children := spawnTree(t, propagator)

		child := <-children
		require.NotNil(t, child)
		require.Eventually(t, func() bool { return seen.Contains(parent.ID()) }, waitFor, tick)

		// the child received Started without the middleware
		time.Sleep(50 * time.Millisecond)
		assert.False(t, seen.Contains(child.ID()))
	})
	t.Run("With sender middleware and context decorator", func(t *testing.T) {
		system := newSystem(t)
		decorated := mapset.NewSet[string]()
		tagged := make(chan string, 1)

		propagator := NewPropagator().
			WithItselfForwarded().
			WithSenderMiddleware(func(next actor.SenderFunc) actor.SenderFunc {
				return func(ctx actor.SenderContext, target *actor.PID, envelope *actor.MessageEnvelope) {
					envelope.SetHeader("origin", ctx.Self().ID())
					next(ctx, target, envelope)
				}
			}).
			WithContextDecorator(func(next actor.ContextDecoratorFunc) actor.ContextDecoratorFunc {
				return func(ctx actor.Context) actor.Context {
					decorated.Add(ctx.Self().ID())
					return next(ctx)
				}
			}).
			WithSpawnMiddleware(func(next actor.SpawnFunc) actor.SpawnFunc {
				return next
			})

		sink := system.Root.Spawn(actor.PropsFromFunc(func(ctx actor.Context) {
			if _, ok := ctx.Message().(*testMessage); ok {
				tagged <- ctx.MessageHeader().Get("origin")
			}
		}))

		root := system.Root.Copy().WithSpawnMiddleware(propagator.SpawnMiddleware)
		pid, err := root.SpawnNamed(actor.PropsFromFunc(func(ctx actor.Context) {
			if _, ok := ctx.Message().(string); ok {
				ctx.Send(sink, new(testMessage))
			}
		}), "emitter")
		require.NoError(t, err)

		system.Root.Send(pid, "emit")
		assert.Equal(t, "emitter", <-tagged)
		assert.True(t, decorated.Contains("emitter"))
		assert.False(t, decorated.Contains(sink.ID()))
	})
	t.Run("With props left untouched", func(t *testing.T) {
		system := newSystem(t)
		seen := mapset.NewSet[string]()
		propagator := NewPropagator().WithReceiverMiddleware(observe(seen))

		props := actor.PropsFromFunc(func(actor.Context) {})
		root := system.Root.Copy().WithSpawnMiddleware(propagator.SpawnMiddleware)
		_, err := root.SpawnNamed(props, "through-propagator")
		require.NoError(t, err)
		plain, err := system.Root.SpawnNamed(props, "plain")
		require.NoError(t, err)

		require.Eventually(t, func() bool { return seen.Contains("through-propagator") }, waitFor, tick)
		time.Sleep(50 * time.Millisecond)
		assert.False(t, seen.Contains(plain.ID()))
	})
}
