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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/goaktkit/kernel/errors"
)

func TestFuture(t *testing.T) {
	t.Run("With response", func(t *testing.T) {
		system := newTestSystem(t)
		future := NewFuture(system, time.Second)
		_, ok := system.ProcessRegistry.Get(future.PID())
		require.True(t, ok)

		system.Root.Send(future.PID(), "value")
		result, err := future.Result()
		require.NoError(t, err)
		assert.Equal(t, "value", result)

		// the backing process is gone once completed
		_, ok = system.ProcessRegistry.Get(future.PID())
		assert.False(t, ok)
	})
	t.Run("With timeout", func(t *testing.T) {
		system := newTestSystem(t)
		future := NewFuture(system, 20*time.Millisecond)
		assert.ErrorIs(t, future.Wait(), errors.ErrRequestTimeout)

		// a late reply is dropped
		system.Root.Send(future.PID(), "late")
		result, err := future.Result()
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errors.ErrRequestTimeout)
	})
	t.Run("With no deadline", func(t *testing.T) {
		system := newTestSystem(t)
		future := NewFuture(system, 0)
		select {
		case <-future.Done():
			t.Fatal("future completed without response")
		case <-time.After(50 * time.Millisecond):
		}
		future.Cancel()
		assert.ErrorIs(t, future.Wait(), errors.ErrRequestCanceled)
	})
	t.Run("With completion happening exactly once", func(t *testing.T) {
		system := newTestSystem(t)
		future := NewFuture(system, time.Second)

		var (
			wg      sync.WaitGroup
			winners atomic.Int32
		)
		for i := range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if future.complete(i, nil) {
					winners.Inc()
				}
			}()
		}
		wg.Wait()
		future.Cancel()

		assert.EqualValues(t, 1, winners.Load())
		result, err := future.Result()
		require.NoError(t, err)
		assert.IsType(t, 0, result)
	})
	t.Run("With context canceled", func(t *testing.T) {
		system := newTestSystem(t)
		ctx, cancel := context.WithCancel(context.Background())
		future := NewFutureWithContext(ctx, system)
		cancel()
		assert.ErrorIs(t, future.Wait(), errors.ErrRequestCanceled)
	})
	t.Run("With context deadline", func(t *testing.T) {
		system := newTestSystem(t)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		future := NewFutureWithContext(ctx, system)
		assert.ErrorIs(t, future.Wait(), errors.ErrRequestTimeout)
	})
	t.Run("With stop of the backing process", func(t *testing.T) {
		system := newTestSystem(t)
		future := NewFuture(system, time.Second)
		system.Root.Stop(future.PID())
		assert.ErrorIs(t, future.Wait(), errors.ErrRequestCanceled)
	})
	t.Run("With pipe to actors", func(t *testing.T) {
		system := newTestSystem(t)
		before, after := new(recorder), new(recorder)
		first := system.Root.Spawn(recordingProps(before))
		second := system.Root.Spawn(recordingProps(after))

		future := NewFuture(system, time.Second)
		future.PipeTo(first)
		system.Root.Send(future.PID(), "piped")
		require.NoError(t, future.Wait())
		// piping a completed future sends right away
		future.PipeTo(second)

		isPiped := func(message any) bool { return message == "piped" }
		require.Eventually(t, func() bool { return before.count(isPiped) == 1 }, waitFor, tick)
		require.Eventually(t, func() bool { return after.count(isPiped) == 1 }, waitFor, tick)
	})
	t.Run("With pipe of a failure", func(t *testing.T) {
		system := newTestSystem(t)
		rec := new(recorder)
		pid := system.Root.Spawn(recordingProps(rec))

		future := NewFuture(system, 10*time.Millisecond)
		future.PipeTo(pid)
		require.Eventually(t, func() bool {
			return rec.count(func(message any) bool { return message == errors.ErrRequestTimeout }) == 1
		}, waitFor, tick)
	})
	t.Run("With watch completing on termination", func(t *testing.T) {
		system := newTestSystem(t)
		pid := system.Root.Spawn(recordingProps(new(recorder)))
		result, err := system.Root.StopFuture(pid).Result()
		require.NoError(t, err)
		terminated, ok := result.(*Terminated)
		require.True(t, ok)
		assert.True(t, pid.Equal(terminated.Who))
	})
}
