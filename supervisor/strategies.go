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
	"time"

	"github.com/goaktkit/kernel/address"
)

type oneForOne struct {
	maxRetries int
	within     time.Duration
	decider    Decider
}

var _ Strategy = (*oneForOne)(nil)

// NewOneForOneStrategy applies the decided directive to the failing child only.
// A child restarted more than maxRetries times within the window is stopped.
func NewOneForOneStrategy(maxRetries int, within time.Duration, decider Decider) Strategy {
	if decider == nil {
		decider = DefaultDecider
	}
	return &oneForOne{maxRetries: maxRetries, within: within, decider: decider}
}

// HandleFailure implements Strategy
func (s *oneForOne) HandleFailure(supervisor Supervisor, child address.Address, stats *RestartStatistics, reason error, message any) Directive {
	directive := s.decider(reason)
	switch directive {
	case ResumeDirective:
		supervisor.ResumeChildren(child)
	case RestartDirective:
		if exceedsRetries(stats, s.maxRetries, s.within) {
			supervisor.StopChildren(child)
			return StopDirective
		}
		supervisor.RestartChildren(child)
	case StopDirective:
		supervisor.StopChildren(child)
	case EscalateDirective:
		supervisor.EscalateFailure(reason, message)
	}
	return directive
}

type allForOne struct {
	maxRetries int
	within     time.Duration
	decider    Decider
}

var _ Strategy = (*allForOne)(nil)

// NewAllForOneStrategy applies the decided directive to every child of the
// supervisor. The restart budget is tracked on the failing child.
func NewAllForOneStrategy(maxRetries int, within time.Duration, decider Decider) Strategy {
	if decider == nil {
		decider = DefaultDecider
	}
	return &allForOne{maxRetries: maxRetries, within: within, decider: decider}
}

// HandleFailure implements Strategy
func (s *allForOne) HandleFailure(supervisor Supervisor, child address.Address, stats *RestartStatistics, reason error, message any) Directive {
	directive := s.decider(reason)
	switch directive {
	case ResumeDirective:
		// resuming only concerns the suspended child
		supervisor.ResumeChildren(child)
	case RestartDirective:
		children := supervisor.Children()
		if exceedsRetries(stats, s.maxRetries, s.within) {
			supervisor.StopChildren(children...)
			return StopDirective
		}
		supervisor.RestartChildren(children...)
	case StopDirective:
		supervisor.StopChildren(supervisor.Children()...)
	case EscalateDirective:
		supervisor.EscalateFailure(reason, message)
	}
	return directive
}

type restarting struct{}

var _ Strategy = restarting{}

// NewRestartingStrategy restarts the failing child on every failure, without any limit
func NewRestartingStrategy() Strategy {
	return restarting{}
}

// HandleFailure implements Strategy
func (restarting) HandleFailure(supervisor Supervisor, child address.Address, _ *RestartStatistics, _ error, _ any) Directive {
	supervisor.RestartChildren(child)
	return RestartDirective
}
