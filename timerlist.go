// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pbpal_ntf_callback_handle_timers.c
// (callback-backend list of outstanding timers ordered by nearest deadline).

package pubnub

import (
	"container/list"
	"sync"
	"time"
)

// TimerList keeps every armed transaction timer ordered by remaining
// deadline (§4.C6), nearest deadline first, so the callback-backend event
// loop only ever needs to inspect the head of the list to know when to
// next wake up.
//
// Built on [container/list]: the operations this type needs (arm in
// sorted position, cancel by token, pop the next-due entry) are exactly a
// doubly-linked list's strengths, and no timer-wheel library appears
// anywhere in the example pack, so there is nothing to wire a third-party
// dependency into here.
type TimerList struct {
	mu   sync.Mutex
	l    *list.List
	now  func() time.Time
	next uint64
}

// TimerToken identifies an armed timer for later cancellation.
type TimerToken uint64

type timerEntry struct {
	token    TimerToken
	deadline time.Time
	fire     func()
}

// NewTimerList returns an empty [*TimerList].
func NewTimerList(now func() time.Time) *TimerList {
	if now == nil {
		now = time.Now
	}
	return &TimerList{l: list.New(), now: now}
}

// Arm inserts a new timer due at deadline, keeping the list sorted nearest
// deadline first, and returns a token to cancel it.
func (t *TimerList) Arm(deadline time.Time, fire func()) TimerToken {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	entry := &timerEntry{token: TimerToken(t.next), deadline: deadline, fire: fire}
	for e := t.l.Front(); e != nil; e = e.Next() {
		if deadline.Before(e.Value.(*timerEntry).deadline) {
			t.l.InsertBefore(entry, e)
			return entry.token
		}
	}
	t.l.PushBack(entry)
	return entry.token
}

// Cancel removes a previously armed timer. Returns false if the token is
// unknown (already fired or already cancelled).
func (t *TimerList) Cancel(token TimerToken) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for e := t.l.Front(); e != nil; e = e.Next() {
		if e.Value.(*timerEntry).token == token {
			t.l.Remove(e)
			return true
		}
	}
	return false
}

// NextDeadline returns the nearest armed deadline and true, or the zero
// time and false if no timer is armed.
func (t *TimerList) NextDeadline() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if front := t.l.Front(); front != nil {
		return front.Value.(*timerEntry).deadline, true
	}
	return time.Time{}, false
}

// FireDue pops and invokes every timer whose deadline has passed, in
// deadline order. Callbacks run with the list unlocked, so a callback may
// safely Arm or Cancel another timer.
func (t *TimerList) FireDue() {
	now := t.now()
	for {
		t.mu.Lock()
		front := t.l.Front()
		if front == nil {
			t.mu.Unlock()
			return
		}
		entry := front.Value.(*timerEntry)
		if entry.deadline.After(now) {
			t.mu.Unlock()
			return
		}
		t.l.Remove(front)
		t.mu.Unlock()
		entry.fire()
	}
}

// Len reports how many timers are currently armed.
func (t *TimerList) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.l.Len()
}
