// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestParseHereNowDecodesOccupancyPerChannel(t *testing.T) {
	buf := []byte(`{"status":200,"payload":{"total_channels":1,"total_occupancy":2,"channels":{"room1":{"uuids":["alice","bob"],"occupancy":2}}}}`)
	result, err := ParseHereNow(buf)
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalChannels != 1 || result.TotalOccupancy != 2 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	occ, ok := result.Channels["room1"]
	if !ok {
		t.Fatalf("expected room1 in result, got %+v", result.Channels)
	}
	if occ.Occupancy != 2 || len(occ.UUIDs) != 2 {
		t.Fatalf("unexpected occupancy: %+v", occ)
	}
}

func TestParseHereNowReportsAccessDenied(t *testing.T) {
	buf := []byte(`{"status":"403","message":"Forbidden"}`)
	if _, err := ParseHereNow(buf); err == nil {
		t.Fatal("expected error for 403 response")
	} else if opErr, ok := err.(*OperationError); !ok || opErr.Kind != ResultAccessDenied {
		t.Fatalf("expected ResultAccessDenied, got %+v", err)
	}
}

func TestParseHereNowReportsPresenceAPIError(t *testing.T) {
	buf := []byte(`{"error":{"message":"channel group is empty"}}`)
	if _, err := ParseHereNow(buf); err == nil {
		t.Fatal("expected error for presence API error response")
	} else if opErr, ok := err.(*OperationError); !ok || opErr.Kind != ResultPresenceAPIError {
		t.Fatalf("expected ResultPresenceAPIError, got %+v", err)
	}
}
