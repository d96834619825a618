// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAwaitRunsOnCallerGoroutine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1,"Sent","1"]`))
	}))
	defer srv.Close()

	cfg := NewConfig("pk", "sk")
	cfg.Origin = srv.URL
	c := NewContext(cfg)

	outcome := Await(context.Background(), c, TransactionPublish, EndpointGroupPublish, "GET", srv.URL+"/publish/pk/sk/0/room1/0/%22x%22", nil)
	if outcome.Result != ResultOK {
		t.Fatalf("got %v, err %v", outcome.Result, outcome.Err)
	}
	if c.State() != StateIdle {
		t.Fatalf("expected IDLE after Await returns, got %v", c.State())
	}
}
