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

package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMpsc(t *testing.T) {
	t.Run("With Push/Pop", func(t *testing.T) {
		q := NewMpsc[int]()
		require.True(t, q.IsEmpty())
		_, ok := q.Pop()
		require.False(t, ok)

		for i := 0; i < 100; i++ {
			q.Push(i)
		}
		require.EqualValues(t, 100, q.Len())
		require.False(t, q.IsEmpty())

		for i := 0; i < 100; i++ {
			value, ok := q.Pop()
			require.True(t, ok)
			require.Equal(t, i, value)
		}
		assert.True(t, q.IsEmpty())
		assert.Zero(t, q.Len())
	})
	t.Run("With interleaved Push/Pop", func(t *testing.T) {
		q := NewMpsc[int]()
		pushed, popped := 0, 0
		for j := 0; j < 100; j++ {
			for i := 0; i < 4; i++ {
				q.Push(pushed)
				pushed++
			}
			for i := 0; i < 2; i++ {
				value, ok := q.Pop()
				require.True(t, ok)
				require.Equal(t, popped, value)
				popped++
			}
		}
		assert.EqualValues(t, 200, q.Len())
	})
	t.Run("With concurrent producers", func(t *testing.T) {
		const producers = 8
		const perProducer = 1000
		q := NewMpsc[[2]int]()

		var wg sync.WaitGroup
		wg.Add(producers)
		for p := 0; p < producers; p++ {
			go func(p int) {
				defer wg.Done()
				for i := 0; i < perProducer; i++ {
					q.Push([2]int{p, i})
				}
			}(p)
		}
		wg.Wait()

		last := make([]int, producers)
		for i := range last {
			last[i] = -1
		}

		count := 0
		for {
			value, ok := q.Pop()
			if !ok {
				break
			}
			// each producer's values come out in push order
			require.Greater(t, value[1], last[value[0]])
			last[value[0]] = value[1]
			count++
		}
		assert.Equal(t, producers*perProducer, count)
	})
}
