// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestContextPublishRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1,"Sent","15628792082779285"]`))
	}))
	defer srv.Close()

	cfg := NewConfig("demo-pub", "demo-sub")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false

	c := NewContext(cfg)
	outcome := c.Publish(context.Background(), "room1", map[string]string{"text": "hi"}, PublishPOST, nil)
	if outcome.Result != ResultOK {
		t.Fatalf("got result %v err %v", outcome.Result, outcome.Err)
	}
	if c.State() != StateIdle {
		t.Fatalf("expected context back to IDLE, got %v", c.State())
	}
}

func TestContextPublishReportsServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[0,"Message Too Large"]`))
	}))
	defer srv.Close()

	cfg := NewConfig("demo-pub", "demo-sub")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false

	c := NewContext(cfg)
	outcome := c.Publish(context.Background(), "room1", "x", PublishGET, nil)
	if outcome.Result != ResultPublishFailed {
		t.Fatalf("expected ResultPublishFailed, got %v", outcome.Result)
	}
	if string(c.LastPublishResult()) != `[0,"Message Too Large"]` {
		t.Fatalf("unexpected LastPublishResult: %q", c.LastPublishResult())
	}
}

func TestContextPublishRejectsInvalidChannel(t *testing.T) {
	cfg := NewConfig("demo-pub", "demo-sub")
	c := NewContext(cfg)
	outcome := c.Publish(context.Background(), "bad/channel", "x", PublishGET, nil)
	if outcome.Result != ResultInvalidChannel {
		t.Fatalf("expected ResultInvalidChannel, got %v", outcome.Result)
	}
}

func TestContextSubscribeDecodesMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleEnvelope))
	}))
	defer srv.Close()

	cfg := NewConfig("demo-pub", "demo-sub")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false

	c := NewContext(cfg)
	outcome, messages := c.Subscribe(context.Background(), []string{"room1"}, nil, 0)
	if outcome.Result != ResultOK {
		t.Fatalf("got result %v err %v", outcome.Result, outcome.Err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	c.mu.Lock()
	tt := c.timetoken
	c.mu.Unlock()
	if tt != "15628792082779285" {
		t.Fatalf("expected cursor advanced, got %q", tt)
	}
}

func TestContextSubscribeLegacyDecodesMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"text":"hi"},{"text":"there"}],"15628792082779285"]`))
	}))
	defer srv.Close()

	cfg := NewConfig("demo-pub", "demo-sub")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false

	c := NewContext(cfg)
	outcome, result := c.SubscribeLegacy(context.Background(), []string{"room1"}, nil, 0)
	if outcome.Result != ResultOK {
		t.Fatalf("got result %v err %v", outcome.Result, outcome.Err)
	}
	if len(result.Messages) != 2 || result.Timetoken != "15628792082779285" {
		t.Fatalf("got %+v", result)
	}
	c.mu.Lock()
	tt := c.timetoken
	c.mu.Unlock()
	if tt != "15628792082779285" {
		t.Fatalf("expected cursor advanced, got %q", tt)
	}
}

func TestContextCancelAndFree(t *testing.T) {
	cfg := NewConfig("demo-pub", "demo-sub")
	c := NewContext(cfg)
	c.Cancel()
	if err := c.Free(); err != nil {
		t.Fatalf("expected idle context to free cleanly, got %v", err)
	}
}

func TestContextFreeRefusesWhileInFlight(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
		w.Write([]byte(`[1,"Sent","1"]`))
	}))
	defer srv.Close()

	cfg := NewConfig("demo-pub", "demo-sub")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false
	cfg.TransactionTimeout = time.Second

	c := NewContext(cfg)
	done := make(chan Outcome, 1)
	go func() { done <- c.Publish(context.Background(), "room1", "x", PublishGET, nil) }()

	// Give the transaction time to leave IDLE before checking Free's refusal.
	time.Sleep(20 * time.Millisecond)
	if err := c.Free(); err == nil {
		t.Fatal("expected Free to refuse while a transaction is in flight")
	}
	close(block)
	<-done
}
