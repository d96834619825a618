// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_alloc_static.c (fixed-size slot
// table) and original_source/core/pubnub_alloc_stdlib.c (heap allocation
// with an optional debug registry of live allocations).

package pubnub

import "sync"

// Pool allocates and tracks [*Context] values sharing one [Config].
//
// The original offers two allocators behind the same interface: a
// fixed-size static table (pubnub_alloc_static.c, for targets without a
// heap) and a heap-backed allocator with a debug live-list
// (pubnub_alloc_stdlib.c). Go has no static/dynamic allocator distinction
// worth preserving, but the bookkeeping purpose of the static table's
// slot cap survives as Pool's optional MaxContexts limit, and the debug
// registry survives as the always-present Live() introspection.
type Pool struct {
	cfg *Config

	mu          sync.Mutex
	live        map[*Context]struct{}
	maxContexts int
}

// NewPool creates a [*Pool] bound to cfg. maxContexts <= 0 means
// unbounded, matching the heap allocator's behavior; a positive value
// reproduces the static allocator's fixed slot count.
func NewPool(cfg *Config, maxContexts int) *Pool {
	return &Pool{
		cfg:         cfg,
		live:        make(map[*Context]struct{}),
		maxContexts: maxContexts,
	}
}

// Alloc returns a new [*Context], or nil if the pool's MaxContexts cap
// (when set) is already reached — mirroring pubnub_alloc_static.c
// returning NULL once its slot table is full.
func (p *Pool) Alloc() *Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxContexts > 0 && len(p.live) >= p.maxContexts {
		return nil
	}
	ctx := NewContext(p.cfg)
	p.live[ctx] = struct{}{}
	return ctx
}

// Release frees ctx back to the pool, refusing (like [Context.Free]) if a
// transaction is still running.
func (p *Pool) Release(ctx *Context) error {
	if err := ctx.Free(); err != nil {
		return err
	}
	p.mu.Lock()
	delete(p.live, ctx)
	p.mu.Unlock()
	return nil
}

// Live returns the number of contexts currently allocated from this pool,
// the introspection the original's debug heap registry exists to provide.
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}
