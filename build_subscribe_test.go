// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestBuildSubscribeComposesPathAndCursor(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	method, url, body, err := buildSubscribe(cfg, []string{"room1", "room2"}, nil, "15628792082779285", 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if method != "GET" {
		t.Fatalf("expected GET, got %s", method)
	}
	if body != nil {
		t.Fatalf("expected no body, got %q", body)
	}
	want := cfg.Origin + "/v2/subscribe/sk/room1,room2/0"
	if len(url) < len(want) || url[:len(want)] != want {
		t.Fatalf("unexpected URL prefix: %s", url)
	}
}

func TestBuildSubscribeRejectsEmptyChannelList(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	if _, _, _, err := buildSubscribe(cfg, nil, nil, "0", 0, 0); err == nil {
		t.Fatal("expected error for empty channel list")
	}
}

func TestBuildSubscribeLegacyComposesPathAndTimetoken(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	method, url, body, err := buildSubscribeLegacy(cfg, []string{"room1", "room2"}, nil, "15628792082779285", 0)
	if err != nil {
		t.Fatal(err)
	}
	if method != "GET" {
		t.Fatalf("expected GET, got %s", method)
	}
	if body != nil {
		t.Fatalf("expected no body, got %q", body)
	}
	want := cfg.Origin + "/subscribe/sk/room1,room2/0/15628792082779285"
	if len(url) < len(want) || url[:len(want)] != want {
		t.Fatalf("unexpected URL prefix: %s", url)
	}
}

func TestBuildSubscribeLegacyDefaultsTimetokenToZero(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	_, url, _, err := buildSubscribeLegacy(cfg, []string{"room1"}, nil, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := cfg.Origin + "/subscribe/sk/room1/0/0"
	if len(url) < len(want) || url[:len(want)] != want {
		t.Fatalf("unexpected URL prefix: %s", url)
	}
}
