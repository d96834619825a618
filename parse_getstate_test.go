// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "testing"

func TestParseGetStateDecodesPerChannelState(t *testing.T) {
	buf := []byte(`{"status":200,"payload":{"room1":{"mood":"happy"}},"service":"Presence"}`)
	states, err := ParseGetState(buf)
	if err != nil {
		t.Fatal(err)
	}
	state, ok := states["room1"]
	if !ok {
		t.Fatalf("expected room1 in result, got %+v", states)
	}
	if string(state) != `{"mood":"happy"}` {
		t.Fatalf("unexpected state: %s", state)
	}
}
