// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_ntf_callback.c (the watcher
// thread owning a queue of contexts plus a timer list, invoking user
// callbacks outside any context's own lock).

package pubnub

import (
	"context"
	"sync"
	"time"
)

// OutcomeFunc receives the terminal [Outcome] of one transaction, along
// with the [*Context] it ran on, matching §4.C10's "transaction kind,
// result, and user pointer" callback signature.
type OutcomeFunc func(c *Context, outcome Outcome)

// Watcher is the callback notification backend (§4.C10): it starts
// transactions on background goroutines, arms/fires the retry and
// heartbeat timers through a [*TimerList], and invokes each context's
// registered [OutcomeFunc] once its transaction finishes, always from a
// goroutine other than the one that called [Watcher.Start] — the "outside
// the context mutex" guarantee the original gets by running callbacks from
// its single watcher thread after releasing the context's lock.
type Watcher struct {
	timers *TimerList

	mu        sync.Mutex
	callbacks map[*Context]OutcomeFunc

	tick   *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher creates a [*Watcher] and starts its poll-tick worker, which
// fires due timers roughly every 200ms — the original's
// pubnub_ntf_callback poll period.
func NewWatcher(timeNow func() time.Time) *Watcher {
	w := &Watcher{
		timers:    NewTimerList(timeNow),
		callbacks: make(map[*Context]OutcomeFunc),
		tick:      time.NewTicker(200 * time.Millisecond),
		stopCh:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.pollLoop()
	return w
}

func (w *Watcher) pollLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.tick.C:
			w.timers.FireDue()
		case <-w.stopCh:
			return
		}
	}
}

// Stop halts the poll-tick worker. Contexts already in flight still
// deliver their outcome via the registered [OutcomeFunc].
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.tick.Stop()
	w.wg.Wait()
}

// Register associates fn with c: fn is invoked once per transaction
// started via [Watcher.Start], after the transaction reaches a terminal
// state.
func (w *Watcher) Register(c *Context, fn OutcomeFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks[c] = fn
}

// Unregister removes c's callback; subsequent transactions on c started
// through this [*Watcher] are run but their outcome is discarded.
func (w *Watcher) Unregister(c *Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.callbacks, c)
}

// Start launches one transaction on c in a new goroutine and returns
// immediately (§4.C11 step 4's "callback backend: transition FSM, do not
// block"). The registered [OutcomeFunc], if any, runs once the
// transaction completes.
//
// If the transaction is for subscribe and succeeds, decoded messages are
// additionally published on c's [dispatchBus] so per-channel subscribers
// registered via [dispatchBus.Subscribe] observe them, independent of
// whether an [OutcomeFunc] is registered.
func (w *Watcher) Start(ctx context.Context, c *Context, kind TransactionKind, group EndpointGroup, method, url string, body []byte) {
	go func() {
		outcome := c.runTransaction(ctx, kind, group, method, url, body)
		if kind == TransactionSubscribe && outcome.Result == ResultOK {
			w.fanOutSubscribe(c, outcome)
		}
		w.mu.Lock()
		fn := w.callbacks[c]
		w.mu.Unlock()
		if fn != nil {
			fn(c, outcome)
		}
	}()
}

func (w *Watcher) fanOutSubscribe(c *Context, outcome Outcome) {
	dec, result, err := NewSubscribeDecoder(outcome.Body)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.timetoken = result.Timetoken
	c.region = result.Region
	c.mu.Unlock()
	for {
		msg, ok, err := dec.Next()
		if err != nil || !ok {
			return
		}
		_ = c.bus.Publish(msg)
	}
}

// ArmHeartbeat schedules fire to run when deadline elapses, returning a
// token [Watcher.CancelTimer] accepts. Used by heartbeat.go to reschedule
// the periodic heartbeat without spawning a goroutine per tick.
func (w *Watcher) ArmHeartbeat(deadline time.Time, fire func()) TimerToken {
	return w.timers.Arm(deadline, fire)
}

// CancelTimer cancels a previously armed timer; returns false if it
// already fired or was never armed.
func (w *Watcher) CancelTimer(token TimerToken) bool {
	return w.timers.Cancel(token)
}
