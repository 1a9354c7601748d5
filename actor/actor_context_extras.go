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

package actor

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goaktkit/kernel/address"
	"github.com/goaktkit/kernel/supervisor"
)

// actorContextExtras holds the state most actors never need. It is created
// on first use.
type actorContextExtras struct {
	children            mapset.Set[address.Address]
	watchers            mapset.Set[address.Address]
	receiveTimeoutTimer *time.Timer
	timeoutGeneration   uint64
	restartStats        *supervisor.RestartStatistics
	stash               []any
	context             Context
}

func newActorContextExtras(context Context) *actorContextExtras {
	return &actorContextExtras{
		children: mapset.NewSet[address.Address](),
		watchers: mapset.NewSet[address.Address](),
		context:  context,
	}
}

func (e *actorContextExtras) restartStatistics() *supervisor.RestartStatistics {
	if e.restartStats == nil {
		e.restartStats = supervisor.NewRestartStatistics()
	}
	return e.restartStats
}

// resetReceiveTimeout stops the timer and invalidates any signal it already posted
func (e *actorContextExtras) resetReceiveTimeout() {
	if e.receiveTimeoutTimer != nil {
		e.receiveTimeoutTimer.Stop()
		e.receiveTimeoutTimer = nil
	}
	e.timeoutGeneration++
}

func (e *actorContextExtras) addChild(pid *PID) {
	e.children.Add(pid.Address())
}

func (e *actorContextExtras) removeChild(pid *PID) {
	e.children.Remove(pid.Address())
}

func (e *actorContextExtras) watch(watcher *PID) {
	e.watchers.Add(watcher.Address())
}

func (e *actorContextExtras) unwatch(watcher *PID) {
	e.watchers.Remove(watcher.Address())
}

func (e *actorContextExtras) pushStash(message any) {
	e.stash = append(e.stash, message)
}

// drainStash returns the stashed messages in arrival order and empties the stash
func (e *actorContextExtras) drainStash() []any {
	stash := e.stash
	e.stash = nil
	return stash
}
