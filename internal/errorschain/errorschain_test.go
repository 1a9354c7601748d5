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

package errorschain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestErrorsChain(t *testing.T) {
	e1 := errors.New("err1")
	e2 := errors.New("err2")
	e3 := errors.New("err3")

	t.Run("With ReturnFirst", func(t *testing.T) {
		chain := New(ReturnFirst()).AddError(nil).AddErrors(e1, e2)
		assert.ErrorIs(t, chain.Error(), e1)
		assert.NotErrorIs(t, chain.Error(), e2)
	})
	t.Run("With ReturnAll", func(t *testing.T) {
		chain := New(ReturnAll()).AddError(e1).AddError(nil).AddErrors(e2, e3)
		err := chain.Error()
		require.Error(t, err)
		assert.Equal(t, []error{e1, e2, e3}, multierr.Errors(err))
	})
	t.Run("With no errors", func(t *testing.T) {
		assert.NoError(t, New().AddError(nil).Error())
	})
	t.Run("With AddErrorFn", func(t *testing.T) {
		called := 0
		fn := func(err error) func() error {
			return func() error {
				called++
				return err
			}
		}
		chain := New(ReturnFirst()).AddErrorFn(fn(nil)).AddErrorFn(fn(e1)).AddErrorFn(fn(e2))
		assert.ErrorIs(t, chain.Error(), e1)
		assert.Equal(t, 2, called)

		called = 0
		chain = New().AddErrorFn(fn(e1)).AddErrorFn(fn(e2))
		assert.Len(t, multierr.Errors(chain.Error()), 2)
		assert.Equal(t, 2, called)
	})
}
