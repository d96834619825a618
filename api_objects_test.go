// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestContextGetUUIDMetadataRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/objects/demo-sub/uuids/alice" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":200,"data":{"id":"alice","name":"Alice"}}`))
	}))
	defer srv.Close()

	cfg := NewConfig("demo-pub", "demo-sub")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false

	c := NewContext(cfg)
	outcome := c.GetUUIDMetadata(context.Background(), "alice", nil)
	if outcome.Result != ResultOK {
		t.Fatalf("got result %v err %v", outcome.Result, outcome.Err)
	}
	data, err := ParseObjectsObject(outcome.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":"alice","name":"Alice"}` {
		t.Fatalf("unexpected data: %s", data)
	}
}

func TestContextAddMessageActionRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Write([]byte(`{"status":200,"data":{"type":"reaction","value":"thumbsup"}}`))
	}))
	defer srv.Close()

	cfg := NewConfig("demo-pub", "demo-sub")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false

	c := NewContext(cfg)
	outcome := c.AddMessageAction(context.Background(), "room1", "1234", MessageAction{Type: "reaction", Value: "thumbsup"})
	if outcome.Result != ResultOK {
		t.Fatalf("got result %v err %v", outcome.Result, outcome.Err)
	}
}

func TestContextListChannelsInGroupRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"payload":{"group":"team","channels":["room1","room2"]}}`))
	}))
	defer srv.Close()

	cfg := NewConfig("demo-pub", "demo-sub")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false

	c := NewContext(cfg)
	outcome := c.ListChannelsInGroup(context.Background(), "team")
	if outcome.Result != ResultOK {
		t.Fatalf("got result %v err %v", outcome.Result, outcome.Err)
	}
	channels, err := ParseChannelGroupList(outcome.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}
}
