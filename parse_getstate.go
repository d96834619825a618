// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "fmt"

// ParseGetState decodes a /v2/presence get-state response into each
// channel's raw state object.
func ParseGetState(buf []byte) (map[string][]byte, error) {
	pStart, pEnd, err := jsonGetObjectValue(buf, 0, len(buf), "payload")
	if err != nil {
		return nil, fmt.Errorf("pubnub: get-state response missing \"payload\": %w", err)
	}
	if pStart >= pEnd || buf[pStart] != '{' {
		return nil, fmt.Errorf("pubnub: get-state \"payload\" is not an object")
	}

	raw, err := decodeChannelObjectMap(buf, pStart, pEnd, func(v []byte) []byte { return v })
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(raw))
	for ch, vals := range raw {
		if len(vals) > 0 {
			out[ch] = vals[0]
		}
	}
	return out, nil
}
