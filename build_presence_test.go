// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"strings"
	"testing"
)

func TestBuildHeartbeatIncludesStateAndPeriod(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	_, url, _, err := buildHeartbeat(cfg, []string{"room1"}, nil, 30, map[string]any{"mood": "ok"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(url, "heartbeat=30") || !strings.Contains(url, "state=") {
		t.Fatalf("missing expected query parameters: %s", url)
	}
}

func TestBuildLeaveRejectsEmptyChannels(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	if _, _, _, err := buildLeave(cfg, nil, nil); err == nil {
		t.Fatal("expected error for empty channel list")
	}
}

func TestBuildHereNowOmitsChannelSegmentWhenGlobal(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	_, url, _, err := buildHereNow(cfg, nil, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(url, "/channel/") {
		t.Fatalf("expected global here-now URL to omit /channel/, got %s", url)
	}
}

func TestBuildGetStateDefaultsToConfigUserID(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	_, url, _, err := buildGetState(cfg, []string{"room1"}, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(url, "/uuid/"+cfg.UserID) {
		t.Fatalf("expected URL to default to config UserID, got %s", url)
	}
}
