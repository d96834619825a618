// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestParseHistoryDecodesMessagesAndRange(t *testing.T) {
	buf := []byte(`[[{"message":"hi"},{"message":"there"}],"1000","2000"]`)
	page, err := ParseHistory(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(page.Messages))
	}
	if page.StartTimetoken != "1000" || page.EndTimetoken != "2000" {
		t.Fatalf("unexpected cursor: %+v", page)
	}
}

func TestParseFetchHistoryDecodesPerChannelLists(t *testing.T) {
	buf := []byte(`{"status":200,"channels":{"room1":[{"message":"a"}],"room2":[{"message":"b"},{"message":"c"}]}}`)
	channels, err := ParseFetchHistory(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(channels["room1"]) != 1 || len(channels["room2"]) != 2 {
		t.Fatalf("unexpected channel map: %+v", channels)
	}
}

func TestParseHistoryReportsAccessDenied(t *testing.T) {
	buf := []byte(`{"status":"403","message":"Forbidden"}`)
	if _, err := ParseHistory(buf); err == nil {
		t.Fatal("expected error for 403 response")
	} else if opErr, ok := err.(*OperationError); !ok || opErr.Kind != ResultAccessDenied {
		t.Fatalf("expected ResultAccessDenied, got %+v", err)
	}
}

func TestParseFetchHistoryReportsAccessDenied(t *testing.T) {
	buf := []byte(`{"status":"403","message":"Forbidden"}`)
	if _, err := ParseFetchHistory(buf); err == nil {
		t.Fatal("expected error for 403 response")
	} else if opErr, ok := err.(*OperationError); !ok || opErr.Kind != ResultAccessDenied {
		t.Fatalf("expected ResultAccessDenied, got %+v", err)
	}
}

func TestParseMessageCountsDecodesIntegers(t *testing.T) {
	buf := []byte(`{"status":200,"channels":{"room1":5,"room2":0}}`)
	counts, err := ParseMessageCounts(buf)
	if err != nil {
		t.Fatal(err)
	}
	if counts["room1"] != 5 || counts["room2"] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
