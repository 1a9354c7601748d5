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

package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaktkit/kernel/actor"
	"github.com/goaktkit/kernel/log"
)

type ping struct {
	Seq int
}

type pong struct {
	Seq int
}

// pinger answers every ping with a pong
func pinger() *actor.Props {
	return actor.PropsFromFunc(func(ctx actor.Context) {
		if msg, ok := ctx.Message().(*ping); ok {
			ctx.Respond(&pong{Seq: msg.Seq})
		}
	})
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

func TestProbe(t *testing.T) {
	t.Run("With Request", func(t *testing.T) {
		system := newSystem(t)
		probe := New(t, system)
		pid := system.Root.Spawn(pinger())

		probe.Request(pid, &ping{Seq: 1})
		probe.ExpectMessage(&pong{Seq: 1})
		// responses are sent without sender
		assert.Nil(t, probe.Sender())
		assert.Equal(t, &pong{Seq: 1}, probe.LastMessage())
		probe.ExpectNoMessageWithin(50 * time.Millisecond)
	})
	t.Run("With messages sent to the probe", func(t *testing.T) {
		system := newSystem(t)
		probe := New(t, system, WithTimeout(time.Second))
		relay := system.Root.Spawn(actor.PropsFromFunc(func(ctx actor.Context) {
			if msg, ok := ctx.Message().(*ping); ok {
				ctx.Send(probe.PID(), &pong{Seq: msg.Seq * 10})
			}
		}))

		probe.Send(relay, &ping{Seq: 2})
		probe.Send(relay, &ping{Seq: 3})

		received := probe.ExpectMessageOfType(new(pong))
		assert.Equal(t, 20, received.(*pong).Seq)
		assert.Nil(t, probe.Sender())
		assert.Equal(t, &pong{Seq: 30}, probe.ExpectAnyMessage())
	})
	t.Run("With ExpectTerminated", func(t *testing.T) {
		system := newSystem(t)
		probe := New(t, system)
		pid := system.Root.Spawn(pinger())

		probe.Watch(pid)
		system.Root.Stop(pid)
		probe.ExpectTerminated(pid)
	})
	t.Run("With a named probe", func(t *testing.T) {
		system := newSystem(t)
		probe := New(t, system, WithName("observer"))
		assert.Equal(t, "observer", probe.PID().ID())

		probe.Stop()
		_, ok := system.ProcessRegistry.GetLocal("observer")
		assert.False(t, ok)
	})
	t.Run("With a generated name", func(t *testing.T) {
		system := newSystem(t)
		first := New(t, system)
		second := New(t, system)
		assert.NotEqual(t, first.PID().ID(), second.PID().ID())
		assert.Contains(t, first.PID().ID(), "probe")
	})
}
