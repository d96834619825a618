// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_heartbeat_api.c (period clamp,
// deferral while a subscribe is in flight, state carried across
// re-subscribes).

package pubnub

import (
	"context"
	"sync"
	"time"
)

// Heartbeater runs an auto-heartbeat loop for one [*Context], reusing a
// shared [*Watcher]'s timer list to reschedule itself instead of spawning
// a dedicated ticker goroutine per context.
type Heartbeater struct {
	ctx     *Context
	watcher *Watcher
	period  time.Duration

	mu       sync.Mutex
	channels []string
	groups   []string
	state    map[string]any
	token    TimerToken
	armed    bool
	stopped  bool
}

// NewHeartbeater creates a [*Heartbeater] that beats every period, or every
// [Config.HeartbeatDefaultPeriod] when period is zero or negative, clamped
// to at least [Config.HeartbeatMinPeriod] (§4.C11's 20s floor).
func NewHeartbeater(ctx *Context, watcher *Watcher, period time.Duration) *Heartbeater {
	if period <= 0 {
		period = ctx.cfg.HeartbeatDefaultPeriod
	}
	if period < ctx.cfg.HeartbeatMinPeriod {
		period = ctx.cfg.HeartbeatMinPeriod
	}
	return &Heartbeater{ctx: ctx, watcher: watcher, period: period}
}

// SetChannels updates the channel/group/state set sent on the next beat,
// preserved across re-subscribes per spec.md.
func (h *Heartbeater) SetChannels(channels, groups []string, state map[string]any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channels = channels
	h.groups = groups
	h.state = state
}

// Start arms the first heartbeat tick.
func (h *Heartbeater) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = false
	h.arm()
}

// Stop cancels any pending heartbeat tick.
func (h *Heartbeater) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	if h.armed {
		h.watcher.CancelTimer(h.token)
		h.armed = false
	}
}

// arm must be called with h.mu held.
func (h *Heartbeater) arm() {
	h.token = h.watcher.ArmHeartbeat(time.Now().Add(h.period), h.fire)
	h.armed = true
}

func (h *Heartbeater) fire() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	// Deferred while a subscribe (or any transaction) is already running on
	// this context: re-arm for one more period instead of contending for
	// the context's FSM slot.
	if h.ctx.State() != StateIdle {
		h.arm()
		h.mu.Unlock()
		return
	}
	channels, groups, state := h.channels, h.groups, h.state
	h.mu.Unlock()

	method, url, body, err := buildHeartbeat(h.ctx.cfg, channels, groups, int(h.period.Seconds()), state)
	if err == nil {
		h.watcher.Start(context.Background(), h.ctx, TransactionHeartbeat, EndpointGroupPresence, method, url, body)
	}

	h.mu.Lock()
	if !h.stopped {
		h.arm()
	}
	h.mu.Unlock()
}
