// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWatcherStartInvokesRegisteredCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1,"Sent","1"]`))
	}))
	defer srv.Close()

	cfg := NewConfig("pk", "sk")
	cfg.Origin = srv.URL
	c := NewContext(cfg)

	w := NewWatcher(time.Now)
	defer w.Stop()

	done := make(chan Outcome, 1)
	w.Register(c, func(ctx *Context, outcome Outcome) { done <- outcome })

	w.Start(context.Background(), c, TransactionPublish, EndpointGroupPublish, "GET", srv.URL+"/publish/pk/sk/0/room1/0/%22x%22", nil)

	select {
	case outcome := <-done:
		if outcome.Result != ResultOK {
			t.Fatalf("got %v, err %v", outcome.Result, outcome.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestTimerListIntegrationFiresOnTick(t *testing.T) {
	w := NewWatcher(time.Now)
	defer w.Stop()

	fired := make(chan struct{}, 1)
	w.ArmHeartbeat(time.Now().Add(10*time.Millisecond), func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for armed timer to fire")
	}
}

func TestWatcherCancelTimerPreventsFire(t *testing.T) {
	w := NewWatcher(time.Now)
	defer w.Stop()

	fired := make(chan struct{}, 1)
	token := w.ArmHeartbeat(time.Now().Add(500*time.Millisecond), func() { fired <- struct{}{} })
	if !w.CancelTimer(token) {
		t.Fatal("expected cancel to succeed before the timer fires")
	}

	select {
	case <-fired:
		t.Fatal("timer fired despite being cancelled")
	case <-time.After(700 * time.Millisecond):
	}
}
