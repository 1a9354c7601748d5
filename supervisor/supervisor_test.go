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

package supervisor

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaktkit/kernel/address"
	gerrors "github.com/goaktkit/kernel/errors"
)

type valueError struct{}

func (valueError) Error() string { return "value error" }

type recorder struct {
	mu        sync.Mutex
	children  []address.Address
	restarted []address.Address
	stopped   []address.Address
	resumed   []address.Address
	escalated []error
}

var _ Supervisor = (*recorder)(nil)

func (r *recorder) Children() []address.Address {
	return r.children
}

func (r *recorder) EscalateFailure(reason error, _ any) {
	r.mu.Lock()
	r.escalated = append(r.escalated, reason)
	r.mu.Unlock()
}

func (r *recorder) RestartChildren(children ...address.Address) {
	r.mu.Lock()
	r.restarted = append(r.restarted, children...)
	r.mu.Unlock()
}

func (r *recorder) StopChildren(children ...address.Address) {
	r.mu.Lock()
	r.stopped = append(r.stopped, children...)
	r.mu.Unlock()
}

func (r *recorder) ResumeChildren(children ...address.Address) {
	r.mu.Lock()
	r.resumed = append(r.resumed, children...)
	r.mu.Unlock()
}

func (r *recorder) restartCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.restarted)
}

func TestDirectiveString(t *testing.T) {
	require.Equal(t, "Stop", StopDirective.String())
	require.Equal(t, "Resume", ResumeDirective.String())
	require.Equal(t, "Restart", RestartDirective.String())
	require.Equal(t, "Escalate", EscalateDirective.String())
	require.Equal(t, "", Directive(42).String())
}

func TestDecider(t *testing.T) {
	sentinel := errors.New("sentinel")

	t.Run("With default decider", func(t *testing.T) {
		assert.Equal(t, RestartDirective, DefaultDecider(errors.New("any")))
	})
	t.Run("With type rule", func(t *testing.T) {
		decider := NewDecider(WithDirective(valueError{}, ResumeDirective))
		assert.Equal(t, ResumeDirective, decider(valueError{}))
		assert.Equal(t, ResumeDirective, decider(fmt.Errorf("wrapped: %w", valueError{})))
		assert.Equal(t, ResumeDirective, decider(errors.Join(sentinel, valueError{})))
		assert.Equal(t, RestartDirective, decider(sentinel))
	})
	t.Run("With identity rule", func(t *testing.T) {
		decider := NewDecider(
			WithErrorIs(gerrors.ErrInitFailure, StopDirective),
			WithDirective(valueError{}, ResumeDirective))
		assert.Equal(t, StopDirective, decider(gerrors.NewErrInitFailure(valueError{})))
		assert.Equal(t, ResumeDirective, decider(valueError{}))
	})
	t.Run("With any error fallback", func(t *testing.T) {
		decider := NewDecider(WithAnyErrorDirective(EscalateDirective))
		assert.Equal(t, EscalateDirective, decider(sentinel))
	})
	t.Run("With panic decider", func(t *testing.T) {
		assert.Equal(t, StopDirective, PanicDecider(gerrors.NewPanicError("boom")))
		assert.Equal(t, RestartDirective, PanicDecider(sentinel))
	})
}

func TestRestartStatistics(t *testing.T) {
	t.Run("With fail and reset", func(t *testing.T) {
		stats := NewRestartStatistics()
		require.Zero(t, stats.FailureCount())
		require.True(t, stats.LastFailureTime().IsZero())

		stats.Fail()
		stats.Fail()
		require.Equal(t, 2, stats.FailureCount())
		require.False(t, stats.LastFailureTime().IsZero())

		stats.Reset()
		require.Zero(t, stats.FailureCount())
	})
	t.Run("With window expiry", func(t *testing.T) {
		stats := NewRestartStatistics()
		require.Equal(t, 1, stats.Record(50*time.Millisecond))
		require.Equal(t, 2, stats.Record(50*time.Millisecond))
		time.Sleep(100 * time.Millisecond)
		require.Equal(t, 1, stats.Record(50*time.Millisecond))
	})
	t.Run("With unbounded window", func(t *testing.T) {
		stats := NewRestartStatistics()
		for i := 1; i <= 5; i++ {
			require.Equal(t, i, stats.Record(0))
		}
	})
}

func TestOneForOneStrategy(t *testing.T) {
	child := address.Local("$1")
	reason := errors.New("boom")

	t.Run("With one retry then stop", func(t *testing.T) {
		sup := &recorder{}
		strategy := NewOneForOneStrategy(1, time.Minute, DefaultDecider)
		stats := NewRestartStatistics()

		require.Equal(t, RestartDirective, strategy.HandleFailure(sup, child, stats, reason, "m1"))
		require.Equal(t, StopDirective, strategy.HandleFailure(sup, child, stats, reason, "m2"))
		assert.Equal(t, []address.Address{child}, sup.restarted)
		assert.Equal(t, []address.Address{child}, sup.stopped)
	})
	t.Run("With zero retries", func(t *testing.T) {
		sup := &recorder{}
		strategy := NewOneForOneStrategy(0, time.Minute, nil)
		require.Equal(t, StopDirective, strategy.HandleFailure(sup, child, NewRestartStatistics(), reason, nil))
		assert.Empty(t, sup.restarted)
	})
	t.Run("With restart budget refilled after window", func(t *testing.T) {
		sup := &recorder{}
		strategy := NewOneForOneStrategy(1, 50*time.Millisecond, DefaultDecider)
		stats := NewRestartStatistics()
		require.Equal(t, RestartDirective, strategy.HandleFailure(sup, child, stats, reason, nil))
		time.Sleep(100 * time.Millisecond)
		require.Equal(t, RestartDirective, strategy.HandleFailure(sup, child, stats, reason, nil))
	})
	t.Run("With resume stop and escalate", func(t *testing.T) {
		sup := &recorder{}
		decider := func(err error) Directive {
			switch err.Error() {
			case "resume":
				return ResumeDirective
			case "stop":
				return StopDirective
			default:
				return EscalateDirective
			}
		}
		strategy := NewOneForOneStrategy(3, time.Second, decider)
		stats := NewRestartStatistics()
		assert.Equal(t, ResumeDirective, strategy.HandleFailure(sup, child, stats, errors.New("resume"), nil))
		assert.Equal(t, StopDirective, strategy.HandleFailure(sup, child, stats, errors.New("stop"), nil))
		assert.Equal(t, EscalateDirective, strategy.HandleFailure(sup, child, stats, errors.New("up"), nil))
		assert.Equal(t, []address.Address{child}, sup.resumed)
		assert.Equal(t, []address.Address{child}, sup.stopped)
		require.Len(t, sup.escalated, 1)
		assert.EqualError(t, sup.escalated[0], "up")
	})
}

func TestAllForOneStrategy(t *testing.T) {
	first := address.Local("$1")
	second := address.Local("$2")

	t.Run("With restart applied to every child", func(t *testing.T) {
		sup := &recorder{children: []address.Address{first, second}}
		strategy := NewAllForOneStrategy(2, time.Minute, DefaultDecider)
		require.Equal(t, RestartDirective, strategy.HandleFailure(sup, first, NewRestartStatistics(), errors.New("boom"), nil))
		assert.ElementsMatch(t, []address.Address{first, second}, sup.restarted)
	})
	t.Run("With stop applied to every child", func(t *testing.T) {
		sup := &recorder{children: []address.Address{first, second}}
		strategy := NewAllForOneStrategy(0, time.Minute, DefaultDecider)
		require.Equal(t, StopDirective, strategy.HandleFailure(sup, first, NewRestartStatistics(), errors.New("boom"), nil))
		assert.ElementsMatch(t, []address.Address{first, second}, sup.stopped)
	})
	t.Run("With resume applied to the failing child", func(t *testing.T) {
		sup := &recorder{children: []address.Address{first, second}}
		strategy := NewAllForOneStrategy(2, time.Minute, func(error) Directive { return ResumeDirective })
		strategy.HandleFailure(sup, second, NewRestartStatistics(), errors.New("boom"), nil)
		assert.Equal(t, []address.Address{second}, sup.resumed)
	})
}

func TestRestartingStrategy(t *testing.T) {
	sup := &recorder{}
	child := address.Local("$1")
	strategy := NewRestartingStrategy()
	for range 20 {
		require.Equal(t, RestartDirective, strategy.HandleFailure(sup, child, NewRestartStatistics(), errors.New("boom"), nil))
	}
	assert.Len(t, sup.restarted, 20)
}

func TestExponentialBackoffStrategy(t *testing.T) {
	child := address.Local("$1")

	t.Run("With growing delays", func(t *testing.T) {
		var delays []time.Duration
		strategy := NewExponentialBackoffStrategy(time.Minute, 100*time.Millisecond, WithMaxJitter(0)).(*exponentialBackoff)
		strategy.afterFunc = func(d time.Duration, f func()) {
			delays = append(delays, d)
			f()
		}

		sup := &recorder{}
		stats := NewRestartStatistics()
		for range 3 {
			require.Equal(t, RestartDirective, strategy.HandleFailure(sup, child, stats, errors.New("boom"), nil))
		}
		assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, delays)
		assert.Len(t, sup.restarted, 3)
	})
	t.Run("With jitter", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(time.Minute, 100*time.Millisecond).(*exponentialBackoff)
		for range 50 {
			delay := strategy.delay(2)
			require.GreaterOrEqual(t, delay, 200*time.Millisecond)
			require.Less(t, delay, 210*time.Millisecond)
		}
	})
	t.Run("With deferred restart", func(t *testing.T) {
		sup := &recorder{}
		strategy := NewExponentialBackoffStrategy(time.Minute, 20*time.Millisecond)
		strategy.HandleFailure(sup, child, NewRestartStatistics(), errors.New("boom"), nil)
		require.Zero(t, sup.restartCount())
		require.Eventually(t, func() bool { return sup.restartCount() == 1 }, time.Second, 5*time.Millisecond)
	})
}

func TestDefaultStrategy(t *testing.T) {
	sup := &recorder{}
	child := address.Local("$1")
	stats := NewRestartStatistics()
	strategy := DefaultStrategy()
	for range DefaultMaxRetries {
		require.Equal(t, RestartDirective, strategy.HandleFailure(sup, child, stats, errors.New("boom"), nil))
	}
	require.Equal(t, StopDirective, strategy.HandleFailure(sup, child, stats, errors.New("boom"), nil))
}
