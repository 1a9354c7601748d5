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
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goaktkit/kernel/address"
	"github.com/goaktkit/kernel/supervisor"
)

// guardians keeps one guardian process per strategy
type guardians struct {
	system    *ActorSystem
	mu        sync.Mutex
	guardians map[supervisor.Strategy]*guardianProcess
}

func newGuardians(system *ActorSystem) *guardians {
	return &guardians{
		system:    system,
		guardians: make(map[supervisor.Strategy]*guardianProcess),
	}
}

func (gs *guardians) getGuardian(strategy supervisor.Strategy) *guardianProcess {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if guardian, ok := gs.guardians[strategy]; ok {
		return guardian
	}

	guardian := &guardianProcess{
		system:   gs.system,
		strategy: strategy,
		children: mapset.NewSet[address.Address](),
	}

	id := "guardian" + gs.system.ProcessRegistry.NextID()
	pid, ok := gs.system.ProcessRegistry.Add(guardian, id)
	if !ok {
		gs.system.logger.Errorf("failed to register guardian %s", id)
		pid = gs.system.NewLocalPID(id)
	}
	guardian.pid = pid
	gs.guardians[strategy] = guardian
	return guardian
}

func (gs *guardians) getGuardianPID(strategy supervisor.Strategy) *PID {
	return gs.getGuardian(strategy).pid
}

// guardianProcess supervises top-level actors with a custom strategy
type guardianProcess struct {
	system   *ActorSystem
	pid      *PID
	strategy supervisor.Strategy
	children mapset.Set[address.Address]
}

var _ Process = (*guardianProcess)(nil)

func (g *guardianProcess) SendUserMessage(pid *PID, message any) {
	g.system.logger.Errorf("guardian %s does not accept user message %T", pid, UnwrapEnvelopeMessage(message))
}

func (g *guardianProcess) SendSystemMessage(_ *PID, message any) {
	switch msg := message.(type) {
	case *Failure:
		g.system.applyStrategy(g.strategy, &guardianSupervisor{guardian: g, failure: msg}, msg)
	case *Terminated:
		g.children.Remove(msg.Who.Address())
	}
}

func (g *guardianProcess) Stop(*PID) {}

// guardianSupervisor applies the decision on one failure of a guardian child
type guardianSupervisor struct {
	guardian *guardianProcess
	failure  *Failure
}

var _ supervisor.Supervisor = (*guardianSupervisor)(nil)

func (s *guardianSupervisor) Children() []address.Address {
	return s.guardian.children.ToSlice()
}

// EscalateFailure hands the failure to the default strategy, guardians have no parent
func (s *guardianSupervisor) EscalateFailure(_ error, _ any) {
	system := s.guardian.system
	system.applyStrategy(supervisor.DefaultStrategy(), &rootSupervisor{system: system, who: s.failure.Who}, s.failure)
}

func (s *guardianSupervisor) RestartChildren(children ...address.Address) {
	sendSystemMessageToAll(s.guardian.system, children, restartMessage)
}

func (s *guardianSupervisor) StopChildren(children ...address.Address) {
	sendSystemMessageToAll(s.guardian.system, children, stopMessage)
}

func (s *guardianSupervisor) ResumeChildren(children ...address.Address) {
	sendSystemMessageToAll(s.guardian.system, children, resumeMailboxMessage)
}
