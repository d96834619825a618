// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestParseEnvelopeDecodesDataAndPagination(t *testing.T) {
	buf := []byte(`{"data":[{"id":"a"},{"id":"b"}],"totalCount":2,"next":"cursor1","prev":"cursor0"}`)
	env, err := parseEnvelope(buf, ResultObjectsAPIError)
	if err != nil {
		t.Fatal(err)
	}
	if env.TotalCount != 2 || env.Next != "cursor1" || env.Prev != "cursor0" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	items := decodeRawArray(env.Data)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestParseEnvelopeReportsServerError(t *testing.T) {
	buf := []byte(`{"error":{"message":"channel not found"}}`)
	_, err := parseEnvelope(buf, ResultObjectsAPIError)
	apiErr, ok := err.(*ErrAPIError)
	if !ok {
		t.Fatalf("expected *ErrAPIError, got %T: %v", err, err)
	}
	if apiErr.Kind != ResultObjectsAPIError || apiErr.Message != "channel not found" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestParseEnvelopeRejectsUnknownShape(t *testing.T) {
	if _, err := parseEnvelope([]byte(`{"status":200}`), ResultObjectsAPIError); err == nil {
		t.Fatal("expected error when neither data nor error key is present")
	}
}
