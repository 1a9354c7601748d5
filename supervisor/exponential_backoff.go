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
	"math/rand/v2"
	"time"

	"github.com/goaktkit/kernel/address"
)

// BackoffOption configures the exponential backoff strategy
type BackoffOption func(*exponentialBackoff)

// WithMaxJitter bounds the random delay added to every backoff
func WithMaxJitter(jitter time.Duration) BackoffOption {
	return func(s *exponentialBackoff) {
		s.maxJitter = jitter
	}
}

type exponentialBackoff struct {
	backoffWindow  time.Duration
	initialBackoff time.Duration
	maxJitter      time.Duration
	afterFunc      func(time.Duration, func())
}

var _ Strategy = (*exponentialBackoff)(nil)

// NewExponentialBackoffStrategy restarts the failing child after a delay of
// initialBackoff multiplied by the number of failures counted within
// backoffWindow, plus a random jitter. The count restarts when the previous
// failure is older than the window.
func NewExponentialBackoffStrategy(backoffWindow, initialBackoff time.Duration, opts ...BackoffOption) Strategy {
	s := &exponentialBackoff{
		backoffWindow:  backoffWindow,
		initialBackoff: initialBackoff,
		maxJitter:      initialBackoff / 10,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleFailure implements Strategy. The restart is deferred, the returned
// directive is always RestartDirective.
func (s *exponentialBackoff) HandleFailure(supervisor Supervisor, child address.Address, stats *RestartStatistics, _ error, _ any) Directive {
	count := stats.Record(s.backoffWindow)
	s.afterFunc(s.delay(count), func() {
		supervisor.RestartChildren(child)
	})
	return RestartDirective
}

func (s *exponentialBackoff) delay(failureCount int) time.Duration {
	backoff := time.Duration(failureCount) * s.initialBackoff
	if s.maxJitter > 0 {
		backoff += rand.N(s.maxJitter)
	}
	return backoff
}
