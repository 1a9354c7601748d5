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
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
	"go.uber.org/atomic"

	"github.com/goaktkit/kernel/address"
	"github.com/goaktkit/kernel/internal/xsync"
)

const (
	registryShards = 32
	// anonymousPrefix marks the identifiers generated by NextID
	anonymousPrefix = "$"
)

// AddressResolver resolves the Process behind a non-local address.
// It returns false when the address is unknown to the resolver.
type AddressResolver func(addr address.Address) (Process, bool)

// ProcessRegistry is the directory of every Process registered by an actor system.
// Local processes are spread over hash-partitioned shards.
type ProcessRegistry struct {
	sequence  atomic.Uint64
	shards    []*xsync.Map[string, Process]
	mu        sync.RWMutex
	resolvers []AddressResolver
	system    *ActorSystem
}

// NewProcessRegistry creates the registry of the given actor system
func NewProcessRegistry(system *ActorSystem) *ProcessRegistry {
	shards := make([]*xsync.Map[string, Process], registryShards)
	for i := range shards {
		shards[i] = xsync.NewMap[string, Process]()
	}
	return &ProcessRegistry{
		shards: shards,
		system: system,
	}
}

// RegisterAddressResolver adds a resolver consulted for non-local addresses.
// Resolvers are tried in registration order.
func (pr *ProcessRegistry) RegisterAddressResolver(resolver AddressResolver) {
	pr.mu.Lock()
	pr.resolvers = append(pr.resolvers, resolver)
	pr.mu.Unlock()
}

// NextID returns a new process-wide unique identifier for anonymous actors
func (pr *ProcessRegistry) NextID() string {
	return anonymousPrefix + strconv.FormatUint(pr.sequence.Inc(), 36)
}

// Add registers the process under the given id. It returns false and leaves
// the registry untouched when the id is already in use.
func (pr *ProcessRegistry) Add(process Process, id string) (*PID, bool) {
	if _, stored := pr.shard(id).SetIfAbsent(id, process); !stored {
		return nil, false
	}
	return NewPID(address.Local(id)), true
}

// Remove unregisters the process of the PID. Removing an unknown PID is a no-op.
func (pr *ProcessRegistry) Remove(pid *PID) {
	if pid == nil || !pid.address.IsLocal() {
		return
	}

	shard := pr.shard(pid.ID())
	if process, ok := shard.Get(pid.ID()); ok {
		if actor, ok := process.(*ActorProcess); ok {
			actor.dead.Store(true)
		}
	}
	shard.Delete(pid.ID())
}

// Get returns the Process of the PID. Unknown, removed or unresolvable
// addresses yield the dead letter process together with false.
func (pr *ProcessRegistry) Get(pid *PID) (Process, bool) {
	if pid == nil {
		return pr.system.deadLetter, false
	}

	if !pid.address.IsLocal() {
		pr.mu.RLock()
		resolvers := pr.resolvers
		pr.mu.RUnlock()
		for _, resolve := range resolvers {
			if process, ok := resolve(pid.address); ok {
				return process, true
			}
		}
		return pr.system.deadLetter, false
	}

	if process, ok := pr.shard(pid.ID()).Get(pid.ID()); ok {
		return process, true
	}
	return pr.system.deadLetter, false
}

// GetLocal returns the Process registered under the given id
func (pr *ProcessRegistry) GetLocal(id string) (Process, bool) {
	return pr.shard(id).Get(id)
}

// Count returns the number of registered processes
func (pr *ProcessRegistry) Count() int {
	count := 0
	for _, shard := range pr.shards {
		count += shard.Len()
	}
	return count
}

// Range calls f for every registered process until f returns false
func (pr *ProcessRegistry) Range(f func(id string, process Process) bool) {
	for _, shard := range pr.shards {
		proceed := true
		shard.Range(func(id string, process Process) bool {
			proceed = f(id, process)
			return proceed
		})
		if !proceed {
			return
		}
	}
}

func (pr *ProcessRegistry) shard(id string) *xsync.Map[string, Process] {
	return pr.shards[xxh3.HashString(id)%registryShards]
}
