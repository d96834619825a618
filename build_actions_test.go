// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"strings"
	"testing"
)

func TestBuildAddMessageActionComposesBody(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	method, url, body, err := buildAddMessageAction(cfg, "room1", "1234", MessageAction{Type: "reaction", Value: "thumbsup"})
	if err != nil {
		t.Fatal(err)
	}
	if method != "POST" {
		t.Fatalf("expected POST, got %s", method)
	}
	if !strings.Contains(url, "/v1/message-actions/sk/channel/room1/message/1234") {
		t.Fatalf("unexpected URL: %s", url)
	}
	if !strings.Contains(string(body), `"type":"reaction"`) || !strings.Contains(string(body), `"value":"thumbsup"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestBuildRemoveMessageActionUsesDeleteMethod(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	method, url, _, err := buildRemoveMessageAction(cfg, "room1", "1234", "5678")
	if err != nil {
		t.Fatal(err)
	}
	if method != "DELETE" {
		t.Fatalf("expected DELETE, got %s", method)
	}
	if !strings.Contains(url, "/message/1234/action/5678") {
		t.Fatalf("unexpected URL: %s", url)
	}
}

func TestBuildGetMessageActionsRejectsInvalidChannel(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	if _, _, _, err := buildGetMessageActions(cfg, "bad,channel", "", "", 0); err == nil {
		t.Fatal("expected error for invalid channel name")
	}
}
