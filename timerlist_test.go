// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"testing"
	"time"
)

func TestTimerListOrdersByDeadline(t *testing.T) {
	base := time.Unix(1000, 0)
	tl := NewTimerList(func() time.Time { return base })

	var order []int
	tl.Arm(base.Add(3*time.Second), func() { order = append(order, 3) })
	tl.Arm(base.Add(1*time.Second), func() { order = append(order, 1) })
	tl.Arm(base.Add(2*time.Second), func() { order = append(order, 2) })

	next, ok := tl.NextDeadline()
	if !ok || !next.Equal(base.Add(1*time.Second)) {
		t.Fatalf("got %v", next)
	}

	tl.now = func() time.Time { return base.Add(5 * time.Second) }
	tl.FireDue()
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("got order %v", order)
	}
}

func TestTimerListCancel(t *testing.T) {
	tl := NewTimerList(nil)
	fired := false
	token := tl.Arm(time.Now(), func() { fired = true })
	if !tl.Cancel(token) {
		t.Fatal("expected cancel to succeed")
	}
	if tl.Cancel(token) {
		t.Fatal("expected second cancel to fail")
	}
	tl.FireDue()
	if fired {
		t.Fatal("cancelled timer must not fire")
	}
}
