// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestParseSubscribeLegacyDecodesSingleChannel(t *testing.T) {
	buf := []byte(`[[{"text":"hi"},{"text":"there"}],"15628792082779285"]`)
	result, err := ParseSubscribeLegacy(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Messages) != 2 || result.Timetoken != "15628792082779285" {
		t.Fatalf("got %+v", result)
	}
}

func TestParseSubscribeLegacyDecodesMultiChannel(t *testing.T) {
	buf := []byte(`[[{"text":"hi"},{"text":"there"}],"15628792082779285","room1,room2"]`)
	result, err := ParseSubscribeLegacy(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Channels) != 2 || result.Channels[0] != "room1" || result.Channels[1] != "room2" {
		t.Fatalf("got %+v", result)
	}
}

func TestParseSubscribeLegacyDecodesGroupsAndChannels(t *testing.T) {
	buf := []byte(`[[{"text":"hi"}],"15628792082779285","group1","room1"]`)
	result, err := ParseSubscribeLegacy(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Groups) != 1 || result.Groups[0] != "group1" {
		t.Fatalf("got %+v", result)
	}
	if len(result.Channels) != 1 || result.Channels[0] != "room1" {
		t.Fatalf("got %+v", result)
	}
}

func TestParseSubscribeLegacyRejectsOversizedTimetoken(t *testing.T) {
	buf := []byte(`[[],"123456789012345678901"]`)
	if _, err := ParseSubscribeLegacy(buf); err == nil {
		t.Fatal("expected error for oversized timetoken")
	} else if opErr, ok := err.(*OperationError); !ok || opErr.Kind != ResultSubscribeTimetokenFormatError {
		t.Fatalf("expected ResultSubscribeTimetokenFormatError, got %+v", err)
	}
}

func TestParseSubscribeLegacyReportsAccessDenied(t *testing.T) {
	buf := []byte(`{"status":"403","message":"Forbidden"}`)
	if _, err := ParseSubscribeLegacy(buf); err == nil {
		t.Fatal("expected error for 403 response")
	} else if opErr, ok := err.(*OperationError); !ok || opErr.Kind != ResultAccessDenied {
		t.Fatalf("expected ResultAccessDenied, got %+v", err)
	}
}
