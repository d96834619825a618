// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestParsePublishDecodesSuccess(t *testing.T) {
	result, err := ParsePublish([]byte(`[1,"Sent","15628792082779285"]`))
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK || result.Timetoken != "15628792082779285" {
		t.Fatalf("got %+v", result)
	}
}

func TestParsePublishReportsFailure(t *testing.T) {
	_, err := ParsePublish([]byte(`[0,"Message Too Large"]`))
	if err == nil {
		t.Fatal("expected error for rejected publish")
	}
	opErr, ok := err.(*OperationError)
	if !ok || opErr.Kind != ResultPublishFailed {
		t.Fatalf("expected ResultPublishFailed, got %+v", err)
	}
}
