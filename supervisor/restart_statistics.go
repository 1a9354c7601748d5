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
	"sync"
	"time"
)

// RestartStatistics is the rolling failure bookkeeping kept for each child.
// It is safe for concurrent use.
type RestartStatistics struct {
	mu              sync.Mutex
	failureCount    int
	lastFailureTime time.Time
}

// NewRestartStatistics creates an empty RestartStatistics
func NewRestartStatistics() *RestartStatistics {
	return &RestartStatistics{}
}

// FailureCount returns the number of failures counted in the current window
func (rs *RestartStatistics) FailureCount() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.failureCount
}

// LastFailureTime returns the time of the last recorded failure, or the zero
// time when none was recorded.
func (rs *RestartStatistics) LastFailureTime() time.Time {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.lastFailureTime
}

// Fail records a failure at the current time without applying any window.
func (rs *RestartStatistics) Fail() {
	rs.mu.Lock()
	rs.failureCount++
	rs.lastFailureTime = time.Now()
	rs.mu.Unlock()
}

// Record records a failure and returns the count inside the window.
// The count restarts from zero when the previous failure is older than within.
// A non-positive window never expires.
func (rs *RestartStatistics) Record(within time.Duration) int {
	now := time.Now()
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if within > 0 && !rs.lastFailureTime.IsZero() && now.Sub(rs.lastFailureTime) > within {
		rs.failureCount = 0
	}
	rs.failureCount++
	rs.lastFailureTime = now
	return rs.failureCount
}

// Reset clears the failure count and time
func (rs *RestartStatistics) Reset() {
	rs.mu.Lock()
	rs.failureCount = 0
	rs.lastFailureTime = time.Time{}
	rs.mu.Unlock()
}
