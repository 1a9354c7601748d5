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

package xsync

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("With Set/Get/Delete", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("a", 1)
		value, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, value)

		m.Delete("a")
		m.Delete("a")
		_, ok = m.Get("a")
		assert.False(t, ok)
		assert.Zero(t, m.Len())
	})
	t.Run("With SetIfAbsent", func(t *testing.T) {
		m := NewMap[string, int]()
		value, stored := m.SetIfAbsent("a", 1)
		assert.True(t, stored)
		assert.Equal(t, 1, value)

		value, stored = m.SetIfAbsent("a", 2)
		assert.False(t, stored)
		assert.Equal(t, 1, value)
	})
	t.Run("With Range/Values/Reset", func(t *testing.T) {
		m := NewMap[int, string]()
		for i := 0; i < 10; i++ {
			m.Set(i, strconv.Itoa(i))
		}
		assert.Len(t, m.Values(), 10)

		visited := 0
		m.Range(func(int, string) bool {
			visited++
			return visited < 3
		})
		assert.Equal(t, 3, visited)

		m.Reset()
		assert.Zero(t, m.Len())
	})
	t.Run("With concurrent SetIfAbsent", func(t *testing.T) {
		m := NewMap[string, int]()
		var wg sync.WaitGroup
		winners := make(chan int, 16)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, stored := m.SetIfAbsent("key", i); stored {
					winners <- i
				}
			}(i)
		}
		wg.Wait()
		close(winners)
		assert.Len(t, winners, 1)
	})
}
