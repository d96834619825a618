// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestParseObjectsObjectDecodesSingleRecord(t *testing.T) {
	buf := []byte(`{"status":200,"data":{"id":"alice","name":"Alice"}}`)
	data, err := ParseObjectsObject(buf)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":"alice","name":"Alice"}` {
		t.Fatalf("unexpected data: %s", data)
	}
}

func TestParseObjectsPageDecodesListAndCursor(t *testing.T) {
	buf := []byte(`{"status":200,"data":[{"id":"alice"},{"id":"bob"}],"totalCount":2,"next":"c1"}`)
	page, err := ParseObjectsPage(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 2 || page.TotalCount != 2 || page.Next != "c1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestParseObjectsObjectReportsAPIError(t *testing.T) {
	buf := []byte(`{"status":404,"error":{"message":"not found"}}`)
	if _, err := ParseObjectsObject(buf); err == nil {
		t.Fatal("expected error")
	}
}
