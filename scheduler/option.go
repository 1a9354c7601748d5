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

package scheduler

import (
	"time"

	"github.com/goaktkit/kernel/log"
)

// Option configures a Scheduler
type Option interface {
	// Apply sets the Option value on the Scheduler
	Apply(scheduler *Scheduler)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(scheduler *Scheduler)

// Apply implements Option
func (f OptionFunc) Apply(scheduler *Scheduler) {
	f(scheduler)
}

// WithLogger sets the scheduler logger. It defaults to the actor system logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(scheduler *Scheduler) {
		scheduler.logger = logger
	})
}

// WithStopTimeout bounds the wait for running jobs on Stop
func WithStopTimeout(timeout time.Duration) Option {
	return OptionFunc(func(scheduler *Scheduler) {
		scheduler.stopTimeout = timeout
	})
}
