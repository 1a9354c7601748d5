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

package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		pool := New(WithNumShards(8), WithPassivateAfter(50*time.Millisecond))
		pool.Start()
		require.Zero(t, pool.SpawnedWorkers())

		const workCount = 1000
		var executed atomic.Int64
		var wg sync.WaitGroup
		wg.Add(workCount)
		for range workCount {
			require.True(t, pool.SubmitWork(func() {
				defer wg.Done()
				executed.Add(1)
			}))
		}

		wg.Wait()
		require.EqualValues(t, workCount, executed.Load())
		require.NotZero(t, pool.SpawnedWorkers())

		// idle workers are retired after the passivation period
		require.Eventually(t, func() bool {
			return pool.SpawnedWorkers() == 0
		}, 2*time.Second, 10*time.Millisecond)

		pool.Stop()
		pool.Stop()
		assert.False(t, pool.SubmitWork(func() {}))
	})
	t.Run("With workers reused", func(t *testing.T) {
		pool := New(WithPassivateAfter(time.Minute))
		pool.Start()
		defer pool.Stop()

		for range 10 {
			done := make(chan struct{})
			require.True(t, pool.SubmitWork(func() { close(done) }))
			<-done
			require.Eventually(t, func() bool {
				return idleWorkers(pool) == 1
			}, time.Second, time.Millisecond)
			require.Equal(t, 1, pool.SpawnedWorkers())
		}
	})
	t.Run("With stop while running", func(t *testing.T) {
		pool := New(WithNumShards(2))
		pool.Start()

		release := make(chan struct{})
		require.True(t, pool.SubmitWork(func() { <-release }))
		pool.Stop()
		close(release)

		require.Eventually(t, func() bool {
			return pool.SpawnedWorkers() == 0
		}, time.Second, 10*time.Millisecond)
	})
	t.Run("When not started", func(t *testing.T) {
		pool := New(WithNumShards(1000))
		require.Equal(t, maxShards, pool.numShards)
		require.False(t, pool.SubmitWork(func() {}))
		pool.Stop()
		require.False(t, pool.stopped.Load())
	})
}

func idleWorkers(pool *WorkerPool) int {
	count := 0
	for _, s := range pool.shards {
		s.mu.Lock()
		count += len(s.idle)
		s.mu.Unlock()
	}
	return count
}
