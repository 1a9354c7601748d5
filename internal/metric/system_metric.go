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

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// SystemMetric groups the instruments describing an actor system.
//
// Observable instruments are reported through a callback registered by the
// actor system:
//   - kernel.deadletters.count
//   - kernel.processes.count
//   - kernel.uptime (seconds)
//
// Synchronous counters are incremented on the hot path:
//   - kernel.mailbox.posted
//   - kernel.mailbox.received
//   - kernel.supervision.decisions
type SystemMetric struct {
	deadLetters      metric.Int64ObservableCounter
	processes        metric.Int64ObservableGauge
	uptime           metric.Int64ObservableCounter
	messagesPosted   metric.Int64Counter
	messagesReceived metric.Int64Counter
	decisions        metric.Int64Counter
}

// NewSystemMetric creates the instruments using the provided Meter
func NewSystemMetric(meter metric.Meter) (*SystemMetric, error) {
	var instruments SystemMetric
	var err error

	if instruments.deadLetters, err = meter.Int64ObservableCounter(
		"kernel.deadletters.count",
		metric.WithDescription("Total number of messages delivered to dead letters"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deadLetters instrument, %w", err)
	}

	if instruments.processes, err = meter.Int64ObservableGauge(
		"kernel.processes.count",
		metric.WithDescription("Number of processes registered in the process registry"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processes instrument, %w", err)
	}

	if instruments.uptime, err = meter.Int64ObservableCounter(
		"kernel.uptime",
		metric.WithDescription("Uptime of the actor system in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create uptime instrument, %w", err)
	}

	if instruments.messagesPosted, err = meter.Int64Counter(
		"kernel.mailbox.posted",
		metric.WithDescription("Total number of messages posted to mailboxes"),
	); err != nil {
		return nil, fmt.Errorf("failed to create messagesPosted instrument, %w", err)
	}

	if instruments.messagesReceived, err = meter.Int64Counter(
		"kernel.mailbox.received",
		metric.WithDescription("Total number of messages taken out of mailboxes"),
	); err != nil {
		return nil, fmt.Errorf("failed to create messagesReceived instrument, %w", err)
	}

	if instruments.decisions, err = meter.Int64Counter(
		"kernel.supervision.decisions",
		metric.WithDescription("Total number of supervision directives applied"),
	); err != nil {
		return nil, fmt.Errorf("failed to create decisions instrument, %w", err)
	}

	return &instruments, nil
}

// DeadLetters returns the dead letters counter
func (x *SystemMetric) DeadLetters() metric.Int64ObservableCounter {
	return x.deadLetters
}

// Processes returns the registered processes gauge
func (x *SystemMetric) Processes() metric.Int64ObservableGauge {
	return x.processes
}

// Uptime returns the uptime counter
func (x *SystemMetric) Uptime() metric.Int64ObservableCounter {
	return x.uptime
}

// MessagesPosted returns the posted messages counter
func (x *SystemMetric) MessagesPosted() metric.Int64Counter {
	return x.messagesPosted
}

// MessagesReceived returns the received messages counter
func (x *SystemMetric) MessagesReceived() metric.Int64Counter {
	return x.messagesReceived
}

// Decisions returns the supervision decisions counter
func (x *SystemMetric) Decisions() metric.Int64Counter {
	return x.decisions
}

// Observables returns the instruments that must be reported by a callback
func (x *SystemMetric) Observables() []metric.Observable {
	return []metric.Observable{x.deadLetters, x.processes, x.uptime}
}
