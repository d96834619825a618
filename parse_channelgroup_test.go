// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestParseChannelGroupListDecodesChannels(t *testing.T) {
	buf := []byte(`{"status":200,"payload":{"group":"team","channels":["room1","room2"]},"service":"channel-registry"}`)
	channels, err := ParseChannelGroupList(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 2 || channels[0] != "room1" || channels[1] != "room2" {
		t.Fatalf("unexpected channels: %v", channels)
	}
}

func TestParseChannelGroupListRejectsMissingPayload(t *testing.T) {
	if _, err := ParseChannelGroupList([]byte(`{"status":400}`)); err == nil {
		t.Fatal("expected error for missing payload")
	}
}
