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

	"go.uber.org/atomic"
	"golang.org/x/time/rate"

	"github.com/goaktkit/kernel/eventstream"
)

// DeadLetterEvent is published on the event stream for every message that
// could not be delivered
type DeadLetterEvent struct {
	// PID is the unreachable target
	PID *PID
	// Message is the undelivered payload
	Message any
	// Sender is the sender of the message, if any
	Sender *PID
}

// deadLetterProcess receives the messages sent to unknown or stopped
// processes. It is never removed from the registry.
type deadLetterProcess struct {
	system       *ActorSystem
	count        atomic.Int64
	suppressed   atomic.Int64
	limiter      *rate.Limiter
	subscription *eventstream.Subscription
}

var _ Process = (*deadLetterProcess)(nil)

func newDeadLetter(system *ActorSystem) *deadLetterProcess {
	dp := &deadLetterProcess{system: system}

	cfg := system.config
	if cfg.DeadLetterThrottleCount > 0 {
		every := cfg.DeadLetterThrottleInterval / time.Duration(cfg.DeadLetterThrottleCount)
		dp.limiter = rate.NewLimiter(rate.Every(every), int(cfg.DeadLetterThrottleCount))
	}

	dp.subscription = system.EventStream.Subscribe(dp.handle)
	return dp
}

func (dp *deadLetterProcess) SendUserMessage(pid *PID, message any) {
	dp.publish(pid, message)
}

// SendSystemMessage answers watch requests with Terminated right away
func (dp *deadLetterProcess) SendSystemMessage(pid *PID, message any) {
	if watch, ok := message.(*Watch); ok {
		watch.Watcher.sendSystemMessage(dp.system, &Terminated{Who: pid})
		return
	}
	dp.publish(pid, message)
}

func (dp *deadLetterProcess) Stop(pid *PID) {
	dp.SendSystemMessage(pid, stopMessage)
}

func (dp *deadLetterProcess) publish(pid *PID, message any) {
	dp.count.Inc()
	_, payload, sender := UnwrapEnvelope(message)
	dp.system.EventStream.Publish(&DeadLetterEvent{
		PID:     pid,
		Message: payload,
		Sender:  sender,
	})
}

// handle replies DeadLetterResponse to the senders of dead letters and
// logs them within the throttle budget
func (dp *deadLetterProcess) handle(event any) {
	deadLetter, ok := event.(*DeadLetterEvent)
	if !ok {
		return
	}

	if deadLetter.Sender != nil {
		if _, poison := deadLetter.Message.(*PoisonPill); !poison {
			deadLetter.Sender.sendUserMessage(dp.system, &DeadLetterResponse{Target: deadLetter.PID})
		}
	}

	if dp.limiter == nil {
		return
	}

	if deadLetter.Sender != nil && !dp.system.config.DeadLetterRequestLogging {
		return
	}

	if !dp.limiter.Allow() {
		dp.suppressed.Inc()
		return
	}

	dp.system.logger.
		With("target", deadLetter.PID.String(), "sender", deadLetter.Sender.String(), "suppressed", dp.suppressed.Swap(0)).
		Infof("dead letter %T", deadLetter.Message)
}

func (dp *deadLetterProcess) close() {
	dp.system.EventStream.Unsubscribe(dp.subscription)
}
