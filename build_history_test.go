// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"strings"
	"testing"
)

func TestBuildHistoryComposesCountAndRange(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	_, url, _, err := buildHistory(cfg, "room1", 25, true, "1000", "2000")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(url, "count=25") || !strings.Contains(url, "reverse=true") {
		t.Fatalf("missing expected query parameters: %s", url)
	}
}

func TestBuildFetchHistoryMultiChannel(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	_, url, _, err := buildFetchHistory(cfg, []string{"room1", "room2"}, 10, true, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(url, "/v3/history/sub-key/sk/channel/room1,room2") {
		t.Fatalf("unexpected URL: %s", url)
	}
}

func TestBuildDeleteMessagesUsesDeleteMethod(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	method, _, _, err := buildDeleteMessages(cfg, "room1", "1000", "2000")
	if err != nil {
		t.Fatal(err)
	}
	if method != "DELETE" {
		t.Fatalf("expected DELETE, got %s", method)
	}
}

func TestBuildMessageCountsRejectsInvalidChannel(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	if _, _, _, err := buildMessageCounts(cfg, []string{"bad,channel"}, "0"); err == nil {
		t.Fatal("expected error for invalid channel name")
	}
}
