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
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goaktkit/kernel/log"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type testMessage struct {
	ID int
}

type testPanic struct{}

type testAsk struct{}

type testReply struct {
	Value string
}

// recorder keeps the messages observed by test actors in arrival order
type recorder struct {
	mu       sync.Mutex
	messages []any
}

func (r *recorder) record(message any) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.messages...)
}

func (r *recorder) count(match func(any) bool) int {
	count := 0
	for _, message := range r.snapshot() {
		if match(message) {
			count++
		}
	}
	return count
}

func isType[T any](message any) bool {
	_, ok := message.(T)
	return ok
}

// recordingActor records every message it receives, answers testAsk and
// panics on testPanic
type recordingActor struct {
	recorder *recorder
}

var _ Actor = (*recordingActor)(nil)

func (x *recordingActor) Receive(ctx Context) {
	message := ctx.Message()
	x.recorder.record(message)
	switch message.(type) {
	case *testAsk:
		ctx.Respond(&testReply{Value: "reply"})
	case *testPanic:
		panic("test panic")
	}
}

func recordingProps(rec *recorder, opts ...PropsOption) *Props {
	return PropsFromProducer(func() Actor { return &recordingActor{recorder: rec} }, opts...)
}

func newTestSystem(t *testing.T, opts ...Option) *ActorSystem {
	t.Helper()
	opts = append([]Option{WithLogger(log.DiscardLogger)}, opts...)
	system, err := NewActorSystem(opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = system.Shutdown(context.Background())
	})
	return system
}

// subscribe collects the events of type T published on the system event stream
func subscribe[T any](system *ActorSystem) *recorder {
	rec := new(recorder)
	system.EventStream.SubscribeWithPredicate(rec.record, isType[T])
	return rec
}
