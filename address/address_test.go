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

package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaktkit/kernel/errors"
)

func TestAddress(t *testing.T) {
	t.Run("With local address", func(t *testing.T) {
		addr := Local("$1")
		assert.True(t, addr.IsLocal())
		assert.False(t, addr.IsZero())
		assert.Equal(t, LocalOrigin, addr.Origin())
		assert.Equal(t, "$1", addr.ID())
		assert.Equal(t, "local/$1", addr.String())
		require.NoError(t, addr.Validate())
	})
	t.Run("With structural equality", func(t *testing.T) {
		a := New("node-1:4000", "orders")
		b := New("node-1:4000", "orders")
		c := New("node-2:4000", "orders")
		assert.True(t, a.Equals(b))
		assert.True(t, a == b)
		assert.False(t, a.Equals(c))

		seen := map[Address]int{a: 1}
		assert.Equal(t, 1, seen[b])
	})
	t.Run("With no sender", func(t *testing.T) {
		addr := NoSender()
		assert.True(t, addr.IsZero())
		assert.False(t, addr.IsLocal())
		assert.Empty(t, addr.String())
		require.NoError(t, addr.Validate())
	})
	t.Run("With invalid address", func(t *testing.T) {
		require.ErrorIs(t, New("local", "").Validate(), errors.ErrInvalidAddress)
		require.ErrorIs(t, New("", "id").Validate(), errors.ErrInvalidAddress)
		require.ErrorIs(t, New("-bad", "id").Validate(), errors.ErrInvalidAddress)
	})
	t.Run("With parse", func(t *testing.T) {
		addr, err := Parse("local/parent/$2")
		require.NoError(t, err)
		assert.Equal(t, Local("parent/$2"), addr)

		_, err = Parse("missing-separator")
		require.ErrorIs(t, err, errors.ErrInvalidAddress)

		_, err = Parse("local/")
		require.ErrorIs(t, err, errors.ErrInvalidAddress)
	})
}
