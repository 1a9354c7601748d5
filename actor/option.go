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

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/goaktkit/kernel/config"
	"github.com/goaktkit/kernel/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(system *ActorSystem)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(system *ActorSystem)

// Apply applies the option to the actor system
func (f OptionFunc) Apply(system *ActorSystem) {
	f(system)
}

// WithConfig replaces the whole configuration. Options given after it
// refine the copy it installs.
func WithConfig(cfg *config.Config) Option {
	return OptionFunc(func(system *ActorSystem) {
		clone := *cfg
		system.config = &clone
	})
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.logger = logger
	})
}

// WithThroughput sets the maximum number of messages processed per mailbox turn
func WithThroughput(throughput int) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.Throughput = throughput
	})
}

// WithDefaultDispatcher selects the default dispatcher of the actors
func WithDefaultDispatcher(kind config.DispatcherKind) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.Dispatcher = kind
	})
}

// WithWorkerPool runs the mailbox turns on a worker pool with the given number of shards
func WithWorkerPool(shards int) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.Dispatcher = config.WorkerPoolDispatcher
		system.config.WorkerPoolShards = shards
	})
}

// WithDeadLetterThrottle logs at most count dead letters per interval.
// A zero count disables dead letter logging.
func WithDeadLetterThrottle(interval time.Duration, count int32) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.DeadLetterThrottleInterval = interval
		system.config.DeadLetterThrottleCount = count
	})
}

// WithDeadLetterRequestLogging toggles the logging of dead letters carrying a sender
func WithDeadLetterRequestLogging(enabled bool) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.DeadLetterRequestLogging = enabled
	})
}

// WithDeveloperSupervisionLogging logs every supervision decision at info level
func WithDeveloperSupervisionLogging(enabled bool) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.DeveloperSupervisionLogging = enabled
	})
}

// WithAskTimeout sets the timeout of requests made without deadline
func WithAskTimeout(timeout time.Duration) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.AskTimeout = timeout
	})
}

// WithShutdownTimeout sets the time given to the actors to stop on shutdown
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.ShutdownTimeout = timeout
	})
}

// WithDefaultInitRetries sets the default attempts and timeout of the PreStart hooks
func WithDefaultInitRetries(maxRetries int, timeout time.Duration) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.InitMaxRetries = maxRetries
		system.config.InitTimeout = timeout
	})
}

// WithMetrics enables OpenTelemetry metrics. A nil provider uses the global one.
func WithMetrics(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.config.MetricsEnabled = true
		system.meterProvider = provider
	})
}
