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

// Package scheduler delivers messages to actors after a delay or at a fixed
// interval. Jobs run on a go-quartz scheduler and send through an actor
// sender context, so sender middleware and headers apply to scheduled messages.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/goaktkit/kernel/actor"
	"github.com/goaktkit/kernel/errors"
	"github.com/goaktkit/kernel/log"
)

// DefaultStopTimeout bounds the wait for running jobs on Stop
const DefaultStopTimeout = 5 * time.Second

// Scheduler schedules messages on behalf of a sender context. The sender is
// used from the scheduler goroutines: bind it to a root context, or to an
// actor context only when the actor does not use sender middleware.
type Scheduler struct {
	mu              sync.Mutex
	quartzScheduler quartz.Scheduler
	started         atomic.Bool
	sender          actor.SenderContext
	logger          log.Logger
	stopTimeout     time.Duration
}

// New creates a Scheduler sending through sender. It must be started before
// jobs can be scheduled.
func New(sender actor.SenderContext, opts ...Option) (*Scheduler, error) {
	quartzScheduler, err := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	if err != nil {
		return nil, fmt.Errorf("failed to create messages scheduler: %w", err)
	}

	scheduler := &Scheduler{
		quartzScheduler: quartzScheduler,
		sender:          sender,
		logger:          sender.ActorSystem().Logger(),
		stopTimeout:     DefaultStopTimeout,
	}

	for _, opt := range opts {
		opt.Apply(scheduler)
	}
	return scheduler, nil
}

// Start starts the scheduler
func (x *Scheduler) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.started.Load() {
		return
	}

	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Debug("messages scheduler started")
}

// Stop removes every job and waits for the running ones within the stop timeout
func (x *Scheduler) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.quartzScheduler.Clear(); err != nil {
		x.logger.Warnf("failed to clear scheduled jobs: %v", err)
	}
	x.quartzScheduler.Stop()
	x.started.Store(false)

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)
	x.logger.Debug("messages scheduler stopped")
}

// SendOnce sends message to pid once after delay. It returns the key of the job.
func (x *Scheduler) SendOnce(pid *actor.PID, message any, delay time.Duration) (string, error) {
	return x.schedule(quartz.NewRunOnceTrigger(delay), func() {
		x.sender.Send(pid, message)
	})
}

// SendRepeatedly sends message to pid every interval until the job is canceled
func (x *Scheduler) SendRepeatedly(pid *actor.PID, message any, interval time.Duration) (string, error) {
	return x.schedule(quartz.NewSimpleTrigger(interval), func() {
		x.sender.Send(pid, message)
	})
}

// RequestOnce sends message to pid once after delay with the sender context
// as the sender, so that pid can answer
func (x *Scheduler) RequestOnce(pid *actor.PID, message any, delay time.Duration) (string, error) {
	return x.schedule(quartz.NewRunOnceTrigger(delay), func() {
		x.sender.Request(pid, message)
	})
}

// RequestRepeatedly sends message to pid every interval with the sender
// context as the sender
func (x *Scheduler) RequestRepeatedly(pid *actor.PID, message any, interval time.Duration) (string, error) {
	return x.schedule(quartz.NewSimpleTrigger(interval), func() {
		x.sender.Request(pid, message)
	})
}

// SendCron sends message to pid on every fire time of the cron expression,
// evaluated in the local time zone
func (x *Scheduler) SendCron(pid *actor.PID, message any, cronExpression string) (string, error) {
	trigger, err := quartz.NewCronTriggerWithLoc(cronExpression, time.Now().Location())
	if err != nil {
		x.logger.Errorf("failed to parse cron expression %q: %v", cronExpression, err)
		return "", err
	}
	return x.schedule(trigger, func() {
		x.sender.Send(pid, message)
	})
}

// Cancel removes the job with the given key
func (x *Scheduler) Cancel(key string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return errors.ErrSchedulerNotStarted
	}
	return x.quartzScheduler.DeleteJob(quartz.NewJobKey(key))
}

// CancelAll removes every scheduled job
func (x *Scheduler) CancelAll() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return errors.ErrSchedulerNotStarted
	}
	return x.quartzScheduler.Clear()
}

// Jobs returns the keys of the scheduled jobs
func (x *Scheduler) Jobs() []string {
	x.mu.Lock()
	defer x.mu.Unlock()

	keys, err := x.quartzScheduler.GetJobKeys()
	if err != nil {
		x.logger.Warnf("failed to list scheduled jobs: %v", err)
		return nil
	}

	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.Name()
	}
	return names
}

func (x *Scheduler) schedule(trigger quartz.Trigger, deliver func()) (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return "", errors.ErrSchedulerNotStarted
	}

	if x.sender.ActorSystem().IsStopped() {
		return "", errors.ErrActorSystemStopped
	}

	functionJob := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		deliver()
		return true, nil
	})

	key := uuid.NewString()
	detail := quartz.NewJobDetail(functionJob, quartz.NewJobKey(key))
	if err := x.quartzScheduler.ScheduleJob(detail, trigger); err != nil {
		x.logger.Errorf("failed to schedule message: %v", err)
		return "", err
	}
	return key, nil
}
