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
	"io"
	"time"

	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"

	"github.com/goaktkit/kernel/address"
	"github.com/goaktkit/kernel/errors"
	"github.com/goaktkit/kernel/log"
	"github.com/goaktkit/kernel/supervisor"
)

const (
	stateAlive int32 = iota
	stateRestarting
	stateStopping
	stateStopped
)

// actorContext owns one actor instance and drives its lifecycle. All its
// fields except state are only touched from within a mailbox turn.
type actorContext struct {
	actor             Actor
	system            *ActorSystem
	extras            *actorContextExtras
	props             *Props
	parent            *PID
	self              *PID
	logger            log.Logger
	receiveTimeout    time.Duration
	messageOrEnvelope any
	behavior          []ReceiveFunc
	state             atomic.Int32
}

var (
	_ Context         = (*actorContext)(nil)
	_ SenderContext   = (*actorContext)(nil)
	_ ReceiverContext = (*actorContext)(nil)
	_ SpawnerContext  = (*actorContext)(nil)
	_ MessageInvoker  = (*actorContext)(nil)
)

func newActorContext(system *ActorSystem, props *Props, parent *PID) *actorContext {
	ctx := &actorContext{
		system: system,
		props:  props,
		parent: parent,
	}
	ctx.incarnateActor()
	return ctx
}

func (ctx *actorContext) ensureExtras() *actorContextExtras {
	if ctx.extras == nil {
		var decorated Context = ctx
		if ctx.props.contextDecoratorChain != nil {
			decorated = ctx.props.contextDecoratorChain(ctx)
		}
		ctx.extras = newActorContextExtras(decorated)
	}
	return ctx.extras
}

//
// Interface: info
//

func (ctx *actorContext) Parent() *PID {
	return ctx.parent
}

func (ctx *actorContext) Self() *PID {
	return ctx.self
}

func (ctx *actorContext) Actor() Actor {
	return ctx.actor
}

func (ctx *actorContext) ActorSystem() *ActorSystem {
	return ctx.system
}

func (ctx *actorContext) Logger() log.Logger {
	if ctx.logger == nil {
		return ctx.system.logger
	}
	return ctx.logger
}

//
// Interface: base
//

func (ctx *actorContext) ReceiveTimeout() time.Duration {
	return ctx.receiveTimeout
}

func (ctx *actorContext) Children() []*PID {
	if ctx.extras == nil {
		return nil
	}

	children := ctx.extras.children.ToSlice()
	pids := make([]*PID, len(children))
	for i, child := range children {
		pids[i] = NewPID(child)
	}
	return pids
}

func (ctx *actorContext) Respond(response any) {
	sender := ctx.Sender()
	if sender == nil {
		ctx.sendUserMessage(ctx.system.DeadLetter, response)
		return
	}
	ctx.sendUserMessage(sender, response)
}

func (ctx *actorContext) Stash() error {
	if ctx.messageOrEnvelope == nil {
		return errors.ErrStashOutsideMessage
	}
	ctx.ensureExtras().pushStash(ctx.messageOrEnvelope)
	return nil
}

func (ctx *actorContext) StashSize() int {
	if ctx.extras == nil {
		return 0
	}
	return len(ctx.extras.stash)
}

func (ctx *actorContext) Watch(pid *PID) {
	pid.sendSystemMessage(ctx.system, &Watch{Watcher: ctx.self})
}

func (ctx *actorContext) Unwatch(pid *PID) {
	pid.sendSystemMessage(ctx.system, &Unwatch{Watcher: ctx.self})
}

func (ctx *actorContext) SetReceiveTimeout(d time.Duration) error {
	if d <= 0 {
		return errors.ErrInvalidTimeout
	}
	ctx.receiveTimeout = d
	ctx.armReceiveTimeout()
	return nil
}

func (ctx *actorContext) CancelReceiveTimeout() {
	ctx.receiveTimeout = 0
	if ctx.extras != nil {
		ctx.extras.resetReceiveTimeout()
	}
}

// armReceiveTimeout (re)starts the receive timeout timer. Signals of the
// previous timer are invalidated by the generation bump.
func (ctx *actorContext) armReceiveTimeout() {
	if ctx.receiveTimeout <= 0 {
		return
	}

	extras := ctx.ensureExtras()
	extras.resetReceiveTimeout()

	signal := &receiveTimeoutSignal{generation: extras.timeoutGeneration}
	self, system := ctx.self, ctx.system
	extras.receiveTimeoutTimer = time.AfterFunc(ctx.receiveTimeout, func() {
		self.sendUserMessage(system, signal)
	})
}

func (ctx *actorContext) Forward(pid *PID) {
	if message, ok := ctx.Message().(SystemMessage); ok {
		ctx.Logger().Errorf("system message %T cannot be forwarded", message)
		return
	}
	ctx.sendUserMessage(pid, ctx.messageOrEnvelope)
}

func (ctx *actorContext) ReenterAfter(future *Future, cont func(res any, err error)) {
	message := ctx.messageOrEnvelope
	self, system := ctx.self, ctx.system
	future.continueWith(func(res any, err error) {
		self.sendSystemMessage(system, &continuation{
			message: message,
			f: func() {
				cont(res, err)
			},
		})
	})
}

func (ctx *actorContext) Become(receive ReceiveFunc) {
	ctx.behavior = append(ctx.behavior[:0], receive)
}

func (ctx *actorContext) BecomeStacked(receive ReceiveFunc) {
	ctx.behavior = append(ctx.behavior, receive)
}

func (ctx *actorContext) UnbecomeStacked() {
	if len(ctx.behavior) > 0 {
		ctx.behavior[len(ctx.behavior)-1] = nil
		ctx.behavior = ctx.behavior[:len(ctx.behavior)-1]
	}
}

//
// Interface: message
//

func (ctx *actorContext) Message() any {
	return UnwrapEnvelopeMessage(ctx.messageOrEnvelope)
}

func (ctx *actorContext) MessageHeader() ReadonlyMessageHeader {
	return UnwrapEnvelopeHeader(ctx.messageOrEnvelope)
}

//
// Interface: sender
//

func (ctx *actorContext) Sender() *PID {
	return UnwrapEnvelopeSender(ctx.messageOrEnvelope)
}

func (ctx *actorContext) Send(pid *PID, message any) {
	ctx.sendUserMessage(pid, message)
}

func (ctx *actorContext) Request(pid *PID, message any) {
	ctx.sendUserMessage(pid, &MessageEnvelope{Message: message, Sender: ctx.self})
}

func (ctx *actorContext) RequestWithCustomSender(pid *PID, message any, sender *PID) {
	ctx.sendUserMessage(pid, &MessageEnvelope{Message: message, Sender: sender})
}

func (ctx *actorContext) RequestFuture(pid *PID, message any, timeout time.Duration) *Future {
	future := NewFuture(ctx.system, timeout)
	ctx.sendUserMessage(pid, &MessageEnvelope{Message: message, Sender: future.PID()})
	return future
}

func (ctx *actorContext) sendUserMessage(pid *PID, message any) {
	if ctx.props.senderMiddlewareChain != nil {
		ctx.props.senderMiddlewareChain(ctx.ensureExtras().context, pid, WrapEnvelope(message))
		return
	}
	pid.sendUserMessage(ctx.system, message)
}

//
// Interface: receiver
//

func (ctx *actorContext) Receive(envelope *MessageEnvelope) {
	ctx.messageOrEnvelope = envelope
	ctx.defaultReceive()
	ctx.messageOrEnvelope = nil
}

func (ctx *actorContext) processMessage(message any) {
	if ctx.props.receiverMiddlewareChain != nil {
		ctx.props.receiverMiddlewareChain(ctx.ensureExtras().context, WrapEnvelope(message))
		return
	}

	if ctx.props.contextDecoratorChain != nil {
		ctx.ensureExtras().context.Receive(WrapEnvelope(message))
		return
	}

	ctx.messageOrEnvelope = message
	ctx.defaultReceive()
	ctx.messageOrEnvelope = nil
}

func (ctx *actorContext) defaultReceive() {
	switch message := ctx.Message().(type) {
	case *PoisonPill:
		ctx.Stop(ctx.self)
	case AutoRespond:
		ctx.deliver()
		ctx.Respond(message.GetAutoResponse(ctx))
	default:
		ctx.deliver()
	}
}

func (ctx *actorContext) deliver() {
	var c Context = ctx
	if ctx.props.contextDecoratorChain != nil {
		c = ctx.ensureExtras().context
	}

	if n := len(ctx.behavior); n > 0 {
		ctx.behavior[n-1](c)
		return
	}
	ctx.actor.Receive(c)
}

//
// Interface: spawner
//

func (ctx *actorContext) Spawn(props *Props) *PID {
	pid, err := ctx.SpawnNamed(props, ctx.system.ProcessRegistry.NextID())
	if err != nil {
		ctx.Logger().Errorf("failed to spawn child: %v", err)
	}
	return pid
}

func (ctx *actorContext) SpawnPrefix(props *Props, prefix string) *PID {
	pid, err := ctx.SpawnNamed(props, prefix+ctx.system.ProcessRegistry.NextID())
	if err != nil {
		ctx.Logger().Errorf("failed to spawn child: %v", err)
	}
	return pid
}

func (ctx *actorContext) SpawnNamed(props *Props, name string) (*PID, error) {
	if props.guardianStrategy != nil {
		return nil, errors.ErrGuardianAtNonRoot
	}

	var (
		id  = ctx.self.ID() + "/" + name
		pid *PID
		err error
	)

	if ctx.props.spawnMiddlewareChain != nil {
		pid, err = ctx.props.spawnMiddlewareChain(ctx.system, id, props, ctx)
	} else {
		pid, err = props.spawn(ctx.system, id, ctx)
	}
	if err != nil {
		return nil, err
	}

	ctx.ensureExtras().addChild(pid)
	return pid, nil
}

//
// Interface: stopper
//

func (ctx *actorContext) Stop(pid *PID) {
	pid.ref(ctx.system).Stop(pid)
}

func (ctx *actorContext) StopFuture(pid *PID) *Future {
	return watchedFuture(ctx.system, pid, func() { ctx.Stop(pid) })
}

func (ctx *actorContext) Poison(pid *PID) {
	pid.sendUserMessage(ctx.system, poisonPillMessage)
}

func (ctx *actorContext) PoisonFuture(pid *PID) *Future {
	return watchedFuture(ctx.system, pid, func() { ctx.Poison(pid) })
}

//
// Interface: message invoker
//

func (ctx *actorContext) InvokeUserMessage(message any) {
	if ctx.state.Load() == stateStopped {
		return
	}

	if signal, ok := message.(*receiveTimeoutSignal); ok {
		if ctx.receiveTimeout <= 0 || signal.generation != ctx.extras.timeoutGeneration {
			return
		}
		ctx.processMessage(receiveTimeoutMessage)
		ctx.armReceiveTimeout()
		return
	}

	influence := ctx.receiveTimeout > 0
	if influence {
		if _, ok := UnwrapEnvelopeMessage(message).(NotInfluenceReceiveTimeout); ok {
			influence = false
		}
	}

	if influence {
		ctx.extras.resetReceiveTimeout()
	}

	ctx.processMessage(message)

	if influence {
		ctx.armReceiveTimeout()
	}
}

func (ctx *actorContext) InvokeSystemMessage(message any) {
	switch msg := message.(type) {
	case *continuation:
		if ctx.state.Load() == stateStopped {
			return
		}
		ctx.messageOrEnvelope = msg.message
		msg.f()
		ctx.messageOrEnvelope = nil
	case *Started:
		ctx.handleStarted()
	case *Watch:
		ctx.handleWatch(msg)
	case *Unwatch:
		ctx.handleUnwatch(msg)
	case *Stop:
		ctx.handleStop()
	case *Terminated:
		ctx.handleTerminated(msg)
	case *Failure:
		ctx.handleFailure(msg)
	case *Restart:
		ctx.handleRestart()
	default:
		ctx.Logger().Warnf("unknown system message %T", msg)
	}
}

func (ctx *actorContext) EscalateFailure(reason error, message any) {
	ctx.Logger().Errorf("actor %s failed: %v", ctx.self, reason)

	failure := &Failure{
		Who:          ctx.self,
		Reason:       reason,
		RestartStats: ctx.ensureExtras().restartStatistics(),
		Message:      message,
	}

	ctx.self.sendSystemMessage(ctx.system, suspendMailboxMessage)

	if ctx.parent == nil {
		ctx.handleRootFailure(failure)
		return
	}
	ctx.parent.sendSystemMessage(ctx.system, failure)
}

//
// Lifecycle
//

// handleStarted runs the PreStart hook then delivers Started. It reports
// whether the actor initialized.
func (ctx *actorContext) handleStarted() bool {
	if err := ctx.preStart(); err != nil {
		ctx.EscalateFailure(errors.NewErrInitFailure(err), startedMessage)
		return false
	}
	ctx.InvokeUserMessage(startedMessage)
	return true
}

func (ctx *actorContext) preStart() error {
	starter, ok := ctx.actor.(PreStarter)
	if !ok {
		return nil
	}

	maxRetries, timeout := ctx.props.getInitRetries(ctx.system)
	initCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	retrier := retry.NewRetrier(maxRetries, time.Millisecond, timeout)
	return retrier.RunContext(initCtx, func(runCtx context.Context) error {
		return starter.PreStart(runCtx)
	})
}

func (ctx *actorContext) handleWatch(msg *Watch) {
	if ctx.state.Load() >= stateStopping {
		msg.Watcher.sendSystemMessage(ctx.system, &Terminated{Who: ctx.self})
		return
	}
	ctx.ensureExtras().watch(msg.Watcher)
}

func (ctx *actorContext) handleUnwatch(msg *Unwatch) {
	if ctx.extras == nil {
		return
	}
	ctx.extras.unwatch(msg.Watcher)
}

func (ctx *actorContext) handleStop() {
	if ctx.state.Load() >= stateStopping {
		return
	}

	ctx.state.Store(stateStopping)
	ctx.CancelReceiveTimeout()
	ctx.invokeLifecycleNotice(stoppingMessage)
	ctx.stopAllChildren()
	ctx.tryRestartOrTerminate()
}

func (ctx *actorContext) handleRestart() {
	if ctx.state.Load() != stateAlive {
		return
	}

	ctx.state.Store(stateRestarting)
	ctx.CancelReceiveTimeout()
	ctx.invokeLifecycleNotice(restartingMessage)
	ctx.stopAllChildren()
	ctx.tryRestartOrTerminate()
}

func (ctx *actorContext) handleTerminated(msg *Terminated) {
	if ctx.extras != nil {
		ctx.extras.removeChild(msg.Who)
	}

	if ctx.state.Load() == stateAlive {
		ctx.InvokeUserMessage(msg)
	} else {
		ctx.invokeLifecycleNotice(msg)
	}
	ctx.tryRestartOrTerminate()
}

// invokeLifecycleNotice delivers a notice while the actor is stopping or
// restarting. Supervision no longer applies at that point, so a panic is
// logged and the transition goes on.
func (ctx *actorContext) invokeLifecycleNotice(message any) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Logger().Errorf("actor %s panicked on %T: %v", ctx.self, message, errors.AsError(r))
		}
	}()
	ctx.InvokeUserMessage(message)
}

func (ctx *actorContext) handleFailure(failure *Failure) {
	strategy := ctx.props.getSupervisor()
	if own, ok := ctx.actor.(supervisor.Strategy); ok {
		strategy = own
	}
	ctx.system.applyStrategy(strategy, (*actorSupervisor)(ctx), failure)
}

func (ctx *actorContext) handleRootFailure(failure *Failure) {
	ctx.system.applyStrategy(supervisor.DefaultStrategy(), &rootSupervisor{system: ctx.system, who: failure.Who}, failure)
}

func (ctx *actorContext) stopAllChildren() {
	if ctx.extras == nil {
		return
	}
	for _, child := range ctx.extras.children.ToSlice() {
		NewPID(child).sendSystemMessage(ctx.system, stopMessage)
	}
}

// tryRestartOrTerminate completes a pending restart or stop once every child terminated
func (ctx *actorContext) tryRestartOrTerminate() {
	if ctx.extras != nil && ctx.extras.children.Cardinality() > 0 {
		return
	}

	switch ctx.state.Load() {
	case stateRestarting:
		ctx.restart()
	case stateStopping:
		ctx.finalizeStop()
	}
}

func (ctx *actorContext) restart() {
	ctx.disposeActor()
	ctx.incarnateActor()
	ctx.self.sendSystemMessage(ctx.system, resumeMailboxMessage)

	if !ctx.handleStarted() {
		return
	}

	if ctx.extras != nil {
		for _, message := range ctx.extras.drainStash() {
			ctx.InvokeUserMessage(message)
		}
	}
}

func (ctx *actorContext) finalizeStop() {
	ctx.system.ProcessRegistry.Remove(ctx.self)
	ctx.invokeLifecycleNotice(stoppedMessage)
	ctx.disposeActor()

	terminated := &Terminated{Who: ctx.self}
	parentNotified := false
	if ctx.extras != nil {
		for _, watcher := range ctx.extras.watchers.ToSlice() {
			if ctx.parent != nil && watcher.Equals(ctx.parent.Address()) {
				parentNotified = true
			}
			NewPID(watcher).sendSystemMessage(ctx.system, terminated)
		}
	}

	if ctx.parent != nil && !parentNotified {
		ctx.parent.sendSystemMessage(ctx.system, terminated)
	}

	ctx.system.removeTopLevel(ctx.self)
	ctx.state.Store(stateStopped)
}

func (ctx *actorContext) incarnateActor() {
	ctx.state.Store(stateAlive)
	ctx.behavior = nil
	ctx.actor = ctx.props.producer(ctx.system)
}

func (ctx *actorContext) disposeActor() {
	closer, ok := ctx.actor.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		ctx.Logger().Warnf("failed to dispose actor %s: %v", ctx.self, err)
	}
}

// actorSupervisor exposes an actor context to the supervision strategies
type actorSupervisor actorContext

var _ supervisor.Supervisor = (*actorSupervisor)(nil)

func (s *actorSupervisor) Children() []address.Address {
	if s.extras == nil {
		return nil
	}
	return s.extras.children.ToSlice()
}

func (s *actorSupervisor) EscalateFailure(reason error, message any) {
	(*actorContext)(s).EscalateFailure(reason, message)
}

func (s *actorSupervisor) RestartChildren(children ...address.Address) {
	sendSystemMessageToAll(s.system, children, restartMessage)
}

func (s *actorSupervisor) StopChildren(children ...address.Address) {
	sendSystemMessageToAll(s.system, children, stopMessage)
}

func (s *actorSupervisor) ResumeChildren(children ...address.Address) {
	sendSystemMessageToAll(s.system, children, resumeMailboxMessage)
}

// rootSupervisor handles the failures of actors without parent
type rootSupervisor struct {
	system *ActorSystem
	who    *PID
}

var _ supervisor.Supervisor = (*rootSupervisor)(nil)

func (s *rootSupervisor) Children() []address.Address {
	return []address.Address{s.who.Address()}
}

// EscalateFailure stops the failing actor, nothing sits above the root
func (s *rootSupervisor) EscalateFailure(reason error, _ any) {
	s.system.logger.Errorf("failure of %s escalated past the root, stopping it: %v", s.who, reason)
	s.who.sendSystemMessage(s.system, stopMessage)
}

func (s *rootSupervisor) RestartChildren(children ...address.Address) {
	sendSystemMessageToAll(s.system, children, restartMessage)
}

func (s *rootSupervisor) StopChildren(children ...address.Address) {
	sendSystemMessageToAll(s.system, children, stopMessage)
}

func (s *rootSupervisor) ResumeChildren(children ...address.Address) {
	sendSystemMessageToAll(s.system, children, resumeMailboxMessage)
}

func sendSystemMessageToAll(system *ActorSystem, children []address.Address, message any) {
	for _, child := range children {
		NewPID(child).sendSystemMessage(system, message)
	}
}
