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
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/goaktkit/kernel/address"
	"github.com/goaktkit/kernel/config"
	"github.com/goaktkit/kernel/eventstream"
	"github.com/goaktkit/kernel/internal/errorschain"
	"github.com/goaktkit/kernel/internal/xsync"
	"github.com/goaktkit/kernel/log"
	"github.com/goaktkit/kernel/supervisor"
)

const (
	deadLetterID  = "deadletter"
	eventStreamID = "eventstream"
)

// ActorSystem owns the process registry, the event stream, the dead letters
// and the dispatcher shared by the actors it hosts.
type ActorSystem struct {
	// ProcessRegistry resolves the PIDs of the system
	ProcessRegistry *ProcessRegistry
	// Root sends messages and spawns actors from outside of any actor
	Root *RootContext
	// EventStream carries dead letters, supervision events and user notices
	EventStream *eventstream.Stream
	// DeadLetter is the PID of the dead letter process
	DeadLetter *PID

	deadLetter    *deadLetterProcess
	guardians     *guardians
	config        *config.Config
	logger        log.Logger
	id            string
	dispatcher    Dispatcher
	topLevel      *xsync.Map[string, address.Address]
	stopped       atomic.Bool
	startedAt     time.Time
	meterProvider otelmetric.MeterProvider
	metrics       *systemMetrics
}

// NewActorSystem creates and starts an actor system
func NewActorSystem(opts ...Option) (*ActorSystem, error) {
	system := &ActorSystem{
		id:        uuid.NewString(),
		config:    config.Default(),
		topLevel:  xsync.NewMap[string, address.Address](),
		startedAt: time.Now(),
	}

	for _, opt := range opts {
		opt.Apply(system)
	}

	if err := system.config.Validate(); err != nil {
		return nil, err
	}

	if system.logger == nil {
		system.logger = log.NewZap(system.config.LogLevel, os.Stdout)
	}

	system.dispatcher = newDispatcher(system.config)
	system.ProcessRegistry = NewProcessRegistry(system)
	system.EventStream = eventstream.New(system.logger)
	system.deadLetter = newDeadLetter(system)
	system.DeadLetter, _ = system.ProcessRegistry.Add(system.deadLetter, deadLetterID)
	system.ProcessRegistry.Add(NewEventStreamProcess(system), eventStreamID)
	system.guardians = newGuardians(system)
	system.Root = NewRootContext(system, nil)

	if system.config.MetricsEnabled {
		if err := system.registerMetrics(); err != nil {
			system.stopDispatcher()
			return nil, err
		}
	}

	system.logger.Debugf("actor system %s started", system.id)
	return system, nil
}

// ID returns the unique identifier of the actor system
func (system *ActorSystem) ID() string {
	return system.id
}

// Address returns the origin of the local PIDs
func (system *ActorSystem) Address() string {
	return address.LocalOrigin
}

// Logger returns the logger of the actor system
func (system *ActorSystem) Logger() log.Logger {
	return system.logger
}

// Config returns a copy of the configuration in use
func (system *ActorSystem) Config() config.Config {
	return *system.config
}

// NewLocalPID returns a PID for a local id
func (system *ActorSystem) NewLocalPID(id string) *PID {
	return NewPID(address.Local(id))
}

// IsStopped reports whether Shutdown was called
func (system *ActorSystem) IsStopped() bool {
	return system.stopped.Load()
}

// DeadLetterCount returns the number of messages delivered to the dead letters
func (system *ActorSystem) DeadLetterCount() int64 {
	return system.deadLetter.count.Load()
}

// Shutdown stops every top-level actor, and transitively their children,
// within the configured shutdown timeout. It is a no-op once called.
func (system *ActorSystem) Shutdown(ctx context.Context) error {
	if !system.stopped.CompareAndSwap(false, true) {
		return nil
	}

	system.logger.Debugf("shutting down actor system %s", system.id)

	ctx, cancel := context.WithTimeout(ctx, system.config.ShutdownTimeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
	)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, addr := range system.topLevel.Values() {
		pid := NewPID(addr)
		eg.Go(func() error {
			future := system.Root.StopFuture(pid)
			var err error
			select {
			case <-future.Done():
				err = future.Wait()
			case <-egCtx.Done():
				future.Cancel()
				err = egCtx.Err()
			}

			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("failed to stop actor %s: %w", pid, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	chain := errorschain.New(errorschain.ReturnAll()).AddErrors(errs...)
	if system.metrics != nil {
		chain.AddError(system.metrics.unregister())
	}

	system.stopDispatcher()
	system.deadLetter.close()
	system.EventStream.Close()

	return chain.AddError(system.logger.Flush()).Error()
}

func (system *ActorSystem) stopDispatcher() {
	if pool, ok := system.dispatcher.(*WorkerPoolDispatcher); ok {
		pool.Stop()
	}
}

// addTopLevel tracks an actor spawned from the root context. It returns
// false when the id is already tracked.
func (system *ActorSystem) addTopLevel(addr address.Address) bool {
	_, stored := system.topLevel.SetIfAbsent(addr.ID(), addr)
	return stored
}

func (system *ActorSystem) removeTopLevel(pid *PID) {
	system.topLevel.Delete(pid.ID())
}

// applyStrategy runs the strategy on a failure then publishes and logs the decision
func (system *ActorSystem) applyStrategy(strategy supervisor.Strategy, sup supervisor.Supervisor, failure *Failure) {
	if failure.RestartStats == nil {
		failure.RestartStats = supervisor.NewRestartStatistics()
	}

	directive := strategy.HandleFailure(sup, failure.Who.Address(), failure.RestartStats, failure.Reason, failure.Message)

	system.EventStream.Publish(&supervisor.Event{
		Child:     failure.Who.Address(),
		Reason:    failure.Reason,
		Directive: directive,
	})

	if system.config.DeveloperSupervisionLogging {
		system.logger.Infof("supervision of %s: %s after %v", failure.Who, directive, failure.Reason)
	} else {
		system.logger.Debugf("supervision of %s: %s after %v", failure.Who, directive, failure.Reason)
	}

	if system.metrics != nil {
		system.metrics.recordDecision(directive)
	}
}

func newDispatcher(cfg *config.Config) Dispatcher {
	switch cfg.Dispatcher {
	case config.WorkerPoolDispatcher:
		return NewWorkerPoolDispatcher(cfg.Throughput, cfg.WorkerPoolShards)
	case config.SynchronizedDispatcher:
		return NewSynchronizedDispatcher(cfg.Throughput)
	default:
		return NewDefaultDispatcher(cfg.Throughput)
	}
}
