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

// Package testkit helps writing tests against actors. A Probe is an actor
// recording the messages it receives so that tests can assert on them.
package testkit

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goaktkit/kernel/actor"
)

const (
	// MessagesQueueMax is the number of messages a Probe buffers
	MessagesQueueMax int = 1000
	// DefaultTimeout is the default wait of the expectations
	DefaultTimeout time.Duration = 3 * time.Second
)

type message struct {
	sender  *actor.PID
	payload any
}

// watch asks the probe actor to watch target
type watch struct {
	target *actor.PID
	done   chan struct{}
}

type probeActor struct {
	messages chan message
}

var _ actor.Actor = (*probeActor)(nil)

func (x *probeActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	// skip lifecycle messages
	case *actor.Started,
		*actor.Stopping,
		*actor.Stopped,
		*actor.Restarting:
	case *watch:
		ctx.Watch(msg.target)
		close(msg.done)
	default:
		x.messages <- message{
			sender:  ctx.Sender(),
			payload: msg,
		}
	}
}

// Probe is a test actor recording the messages sent to it
type Probe struct {
	tb             testing.TB
	system         *actor.ActorSystem
	pid            *actor.PID
	name           string
	messages       chan message
	lastMessage    any
	lastSender     *actor.PID
	defaultTimeout time.Duration
}

// New spawns a Probe in system. The probe actor is stopped when the test ends.
func New(tb testing.TB, system *actor.ActorSystem, opts ...Option) *Probe {
	tb.Helper()
	probe := &Probe{
		tb:             tb,
		system:         system,
		messages:       make(chan message, MessagesQueueMax),
		defaultTimeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt.Apply(probe)
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return &probeActor{messages: probe.messages}
	})

	if probe.name != "" {
		pid, err := system.Root.SpawnNamed(props, probe.name)
		require.NoError(tb, err)
		probe.pid = pid
	} else {
		probe.pid = system.Root.SpawnPrefix(props, "probe")
		require.NotNil(tb, probe.pid, "failed to spawn the probe")
	}

	tb.Cleanup(func() {
		if !system.IsStopped() {
			_ = system.Root.StopFuture(probe.pid).Wait()
		}
	})
	return probe
}

// PID returns the pid of the probe actor
func (x *Probe) PID() *actor.PID {
	return x.pid
}

// Sender returns the sender of the last received message
func (x *Probe) Sender() *actor.PID {
	return x.lastSender
}

// LastMessage returns the last received message
func (x *Probe) LastMessage() any {
	return x.lastMessage
}

// Send sends message to pid without sender
func (x *Probe) Send(pid *actor.PID, message any) {
	x.system.Root.Send(pid, message)
}

// Request sends message to pid with the probe as sender, so that the
// response lands in the probe
func (x *Probe) Request(pid *actor.PID, message any) {
	x.system.Root.RequestWithCustomSender(pid, message, x.pid)
}

// Watch makes the probe watch pid. It returns once the watch is registered.
func (x *Probe) Watch(pid *actor.PID) {
	x.tb.Helper()
	done := make(chan struct{})
	x.system.Root.Send(x.pid, &watch{target: pid, done: done})

	timer := time.NewTimer(x.defaultTimeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		require.FailNow(x.tb, fmt.Sprintf("timeout (%v) while watching %v", x.defaultTimeout, pid))
	}
}

// ExpectMessage asserts that the next message equals expected
func (x *Probe) ExpectMessage(expected any) {
	x.ExpectMessageWithin(x.defaultTimeout, expected)
}

// ExpectMessageWithin asserts that the next message, received within
// duration, equals expected
func (x *Probe) ExpectMessageWithin(duration time.Duration, expected any) {
	x.tb.Helper()
	received, ok := x.receiveOne(duration)
	require.True(x.tb, ok, fmt.Sprintf("timeout (%v) during ExpectMessage while waiting for %v", duration, expected))
	require.Equal(x.tb, expected, received, fmt.Sprintf("expected %v, found %v", expected, received))
}

// ExpectMessageOfType asserts that the next message has the type of
// prototype and returns it
func (x *Probe) ExpectMessageOfType(prototype any) any {
	return x.ExpectMessageOfTypeWithin(x.defaultTimeout, prototype)
}

// ExpectMessageOfTypeWithin is ExpectMessageOfType bounded by duration
func (x *Probe) ExpectMessageOfTypeWithin(duration time.Duration, prototype any) any {
	x.tb.Helper()
	received, ok := x.receiveOne(duration)
	require.True(x.tb, ok, fmt.Sprintf("timeout (%v) during ExpectMessageOfType while waiting for %T", duration, prototype))

	expectedType := reflect.TypeOf(prototype)
	require.Equal(x.tb, expectedType, reflect.TypeOf(received), fmt.Sprintf("expected %v, found %T", expectedType, received))
	return received
}

// ExpectAnyMessage asserts that a message arrives and returns it
func (x *Probe) ExpectAnyMessage() any {
	return x.ExpectAnyMessageWithin(x.defaultTimeout)
}

// ExpectAnyMessageWithin is ExpectAnyMessage bounded by duration
func (x *Probe) ExpectAnyMessageWithin(duration time.Duration) any {
	x.tb.Helper()
	received, ok := x.receiveOne(duration)
	require.True(x.tb, ok, fmt.Sprintf("timeout (%v) during ExpectAnyMessage", duration))
	return received
}

// ExpectNoMessage asserts that no message arrives within the default timeout
func (x *Probe) ExpectNoMessage() {
	x.ExpectNoMessageWithin(x.defaultTimeout)
}

// ExpectNoMessageWithin asserts that no message arrives within duration
func (x *Probe) ExpectNoMessageWithin(duration time.Duration) {
	x.tb.Helper()
	received, ok := x.receiveOne(duration)
	require.False(x.tb, ok, fmt.Sprintf("received unexpected message %v", received))
}

// ExpectTerminated asserts that the next message is the termination notice
// of pid. The probe must watch pid.
func (x *Probe) ExpectTerminated(pid *actor.PID) {
	x.tb.Helper()
	received := x.ExpectMessageOfType(new(actor.Terminated))
	who := received.(*actor.Terminated).Who
	require.True(x.tb, who.Equal(pid), fmt.Sprintf("expected termination of %v, found %v", pid, who))
}

// Stop stops the probe actor and waits for its termination
func (x *Probe) Stop() {
	x.tb.Helper()
	require.NoError(x.tb, x.system.Root.StopFuture(x.pid).Wait())
}

func (x *Probe) receiveOne(duration time.Duration) (any, bool) {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case m := <-x.messages:
		x.lastMessage = m.payload
		x.lastSender = m.sender
		return m.payload, true
	case <-timer.C:
		return nil, false
	}
}
