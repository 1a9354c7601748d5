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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/goaktkit/kernel/internal/metric"
	"github.com/goaktkit/kernel/supervisor"
)

// systemMetrics records the activity of the actor system. It observes every
// mailbox as a MailboxMiddleware.
type systemMetrics struct {
	instruments  *metric.SystemMetric
	registration otelmetric.Registration
}

var _ MailboxMiddleware = (*systemMetrics)(nil)

func (system *ActorSystem) registerMetrics() error {
	meter := metric.NewProvider(system.meterProvider).Meter()
	instruments, err := metric.NewSystemMetric(meter)
	if err != nil {
		return err
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		observer.ObserveInt64(instruments.DeadLetters(), system.DeadLetterCount())
		observer.ObserveInt64(instruments.Processes(), int64(system.ProcessRegistry.Count()))
		observer.ObserveInt64(instruments.Uptime(), int64(time.Since(system.startedAt).Seconds()))
		return nil
	}, instruments.Observables()...)
	if err != nil {
		return err
	}

	system.metrics = &systemMetrics{
		instruments:  instruments,
		registration: registration,
	}
	return nil
}

func (m *systemMetrics) MailboxStarted() {}

func (m *systemMetrics) MessagePosted(any) {
	m.instruments.MessagesPosted().Add(context.Background(), 1)
}

func (m *systemMetrics) MessageReceived(any) {
	m.instruments.MessagesReceived().Add(context.Background(), 1)
}

func (m *systemMetrics) MailboxEmpty() {}

func (m *systemMetrics) recordDecision(directive supervisor.Directive) {
	m.instruments.Decisions().Add(context.Background(), 1,
		otelmetric.WithAttributes(attribute.String("directive", directive.String())))
}

func (m *systemMetrics) unregister() error {
	return m.registration.Unregister()
}
