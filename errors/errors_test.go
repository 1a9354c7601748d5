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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	t.Run("With init failure", func(t *testing.T) {
		err := errors.New("database unreachable")
		initErr := NewErrInitFailure(err)
		require.ErrorIs(t, initErr, ErrInitFailure)
		require.ErrorIs(t, initErr, err)
	})
	t.Run("With invalid config", func(t *testing.T) {
		err := NewErrInvalidConfig(errors.New("throughput must be positive"))
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "throughput")
	})
	t.Run("With panic error wrapping an error", func(t *testing.T) {
		cause := errors.New("boom")
		panicErr := NewPanicError(cause)
		require.EqualError(t, panicErr, "panic: boom")
		require.ErrorIs(t, panicErr, cause)
		assert.NotEmpty(t, panicErr.Stack())
		assert.Equal(t, cause, panicErr.Value())
	})
	t.Run("With panic error wrapping a value", func(t *testing.T) {
		panicErr := NewPanicError("bad state")
		require.EqualError(t, panicErr, "panic: bad state")
		assert.NoError(t, panicErr.Unwrap())
	})
	t.Run("With AsError", func(t *testing.T) {
		original := NewPanicError(42)
		assert.Same(t, original, AsError(original))

		var target *PanicError
		require.ErrorAs(t, AsError("text"), &target)
		assert.Equal(t, "text", target.Value())

		cause := errors.New("cause")
		require.ErrorIs(t, AsError(cause), cause)
	})
	t.Run("With any error", func(t *testing.T) {
		anyError := &AnyError{}
		require.Equal(t, "*", anyError.Error())
	})
}
