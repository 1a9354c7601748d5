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

// Package supervisor turns the failure of a child actor into a Directive and
// applies it through the Supervisor interface implemented by the parent.
package supervisor

import (
	"time"

	"github.com/goaktkit/kernel/address"
)

const (
	// DefaultMaxRetries is the restart budget of DefaultStrategy
	DefaultMaxRetries = 10
	// DefaultWithinDuration is the restart window of DefaultStrategy
	DefaultWithinDuration = 10 * time.Second
)

// Supervisor is implemented by whatever owns children: an actor context or
// the system guardians. Every method is fire-and-forget.
type Supervisor interface {
	// Children returns the addresses of the supervised children
	Children() []address.Address
	// EscalateFailure forwards a failure to the supervisor's own parent
	EscalateFailure(reason error, message any)
	// RestartChildren asks each child to restart
	RestartChildren(children ...address.Address)
	// StopChildren asks each child to stop
	StopChildren(children ...address.Address)
	// ResumeChildren resumes the suspended mailbox of each child
	ResumeChildren(children ...address.Address)
}

// Strategy decides and applies the reaction to a child failure.
// HandleFailure returns the directive it applied.
type Strategy interface {
	HandleFailure(supervisor Supervisor, child address.Address, stats *RestartStatistics, reason error, message any) Directive
}

// Event describes a decision taken by a strategy
type Event struct {
	Child     address.Address
	Reason    error
	Directive Directive
}

var defaultStrategy = NewOneForOneStrategy(DefaultMaxRetries, DefaultWithinDuration, DefaultDecider)

// DefaultStrategy returns the strategy used when none is configured and when
// a failure escalates past the top of the hierarchy: one-for-one, restarting
// at most DefaultMaxRetries times within DefaultWithinDuration.
func DefaultStrategy() Strategy {
	return defaultStrategy
}

// exceedsRetries records the failure and reports whether the restart budget is spent.
// A zero budget never allows a restart.
func exceedsRetries(stats *RestartStatistics, maxRetries int, within time.Duration) bool {
	if maxRetries <= 0 {
		return true
	}
	if stats.Record(within) > maxRetries {
		stats.Reset()
		return true
	}
	return false
}
