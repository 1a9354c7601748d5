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

// Package config holds the tunables of an actor system and loads them from YAML.
package config

import (
	"fmt"
	"time"

	"github.com/goaktkit/kernel/errors"
	"github.com/goaktkit/kernel/internal/validation"
	"github.com/goaktkit/kernel/log"
)

// DispatcherKind names the executor running mailbox turns
type DispatcherKind string

const (
	// GoroutineDispatcher starts a goroutine for every mailbox turn
	GoroutineDispatcher DispatcherKind = "goroutine"
	// WorkerPoolDispatcher runs mailbox turns on a shared pool of reusable goroutines
	WorkerPoolDispatcher DispatcherKind = "workerpool"
	// SynchronizedDispatcher runs mailbox turns on the posting goroutine
	SynchronizedDispatcher DispatcherKind = "synchronized"
)

const (
	DefaultThroughput                 = 300
	DefaultWorkerPoolShards           = 16
	DefaultDeadLetterThrottleInterval = time.Second
	DefaultDeadLetterThrottleCount    = 10
	DefaultAskTimeout                 = 5 * time.Second
	DefaultShutdownTimeout            = 30 * time.Second
	DefaultInitMaxRetries             = 5
	DefaultInitTimeout                = 5 * time.Second
)

// Config defines the actor system settings
type Config struct {
	// Throughput is the maximum number of messages processed in one mailbox turn
	Throughput int `yaml:"throughput"`
	// Dispatcher selects the default executor of mailbox turns
	Dispatcher DispatcherKind `yaml:"dispatcher"`
	// WorkerPoolShards is the number of shards of the worker pool dispatcher
	WorkerPoolShards int `yaml:"workerPoolShards"`
	// DeadLetterThrottleInterval is the window over which dead letter logs are counted
	DeadLetterThrottleInterval time.Duration `yaml:"deadLetterThrottleInterval"`
	// DeadLetterThrottleCount is the number of dead letters logged per window.
	// Zero disables dead letter logging.
	DeadLetterThrottleCount int32 `yaml:"deadLetterThrottleCount"`
	// DeadLetterRequestLogging logs dead letters carrying a sender
	DeadLetterRequestLogging bool `yaml:"deadLetterRequestLogging"`
	// DeveloperSupervisionLogging logs every supervision decision at info level
	DeveloperSupervisionLogging bool `yaml:"developerSupervisionLogging"`
	// LogLevel is the level of the default logger
	LogLevel log.Level `yaml:"logLevel"`
	// AskTimeout is the deadline applied by requests issued without one
	AskTimeout time.Duration `yaml:"askTimeout"`
	// ShutdownTimeout bounds the graceful stop of top-level actors
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	// InitMaxRetries is the number of attempts given to an actor PreStart hook
	InitMaxRetries int `yaml:"initMaxRetries"`
	// InitTimeout bounds all the attempts of an actor PreStart hook
	InitTimeout time.Duration `yaml:"initTimeout"`
	// MetricsEnabled turns on OpenTelemetry instrumentation
	MetricsEnabled bool `yaml:"metricsEnabled"`
}

var _ validation.Validator = (*Config)(nil)

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Throughput:                 DefaultThroughput,
		Dispatcher:                 GoroutineDispatcher,
		WorkerPoolShards:           DefaultWorkerPoolShards,
		DeadLetterThrottleInterval: DefaultDeadLetterThrottleInterval,
		DeadLetterThrottleCount:    DefaultDeadLetterThrottleCount,
		DeadLetterRequestLogging:   true,
		LogLevel:                   log.InfoLevel,
		AskTimeout:                 DefaultAskTimeout,
		ShutdownTimeout:            DefaultShutdownTimeout,
		InitMaxRetries:             DefaultInitMaxRetries,
		InitTimeout:                DefaultInitTimeout,
	}
}

// Validate checks every setting and reports all violations at once
func (c *Config) Validate() error {
	err := validation.New(validation.AllErrors()).
		AddAssertion(c.Throughput > 0, fmt.Sprintf("throughput must be greater than zero, got %d", c.Throughput)).
		AddAssertion(c.Dispatcher.valid(), fmt.Sprintf("unknown dispatcher %q", c.Dispatcher)).
		AddAssertion(c.Dispatcher != WorkerPoolDispatcher || c.WorkerPoolShards > 0, "workerPoolShards must be greater than zero").
		AddAssertion(c.DeadLetterThrottleCount >= 0, "deadLetterThrottleCount must not be negative").
		AddAssertion(c.DeadLetterThrottleCount == 0 || c.DeadLetterThrottleInterval > 0, "deadLetterThrottleInterval must be greater than zero").
		AddAssertion(c.LogLevel != log.InvalidLevel, "invalid logLevel").
		AddValidator(validation.NewPositiveDurationValidator("askTimeout", c.AskTimeout)).
		AddValidator(validation.NewPositiveDurationValidator("shutdownTimeout", c.ShutdownTimeout)).
		AddAssertion(c.InitMaxRetries > 0, "initMaxRetries must be greater than zero").
		AddValidator(validation.NewPositiveDurationValidator("initTimeout", c.InitTimeout)).
		Validate()
	if err != nil {
		return errors.NewErrInvalidConfig(err)
	}
	return nil
}

func (k DispatcherKind) valid() bool {
	switch k {
	case GoroutineDispatcher, WorkerPoolDispatcher, SynchronizedDispatcher:
		return true
	default:
		return false
	}
}
