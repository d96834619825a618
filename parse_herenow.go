// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "fmt"

// ChannelOccupancy is one channel's occupant list and count from a
// here-now reply.
type ChannelOccupancy struct {
	UUIDs     []string
	Occupancy int
}

// HereNowResult is a decoded multi-channel here-now reply's "payload".
type HereNowResult struct {
	Channels       map[string]ChannelOccupancy
	TotalChannels  int
	TotalOccupancy int
}

// scanPresenceError reports whether buf carries a top-level "error" field,
// the shape the presence API uses for failures that aren't plain 403s
// (§4.C3: PRESENCE_API_ERROR), returning its "message" text when present.
func scanPresenceError(buf []byte) (string, bool) {
	eStart, eEnd, err := jsonGetObjectValue(buf, 0, len(buf), "error")
	if err != nil {
		return "", false
	}
	if mStart, mEnd, merr := jsonGetObjectValue(buf, eStart, eEnd, "message"); merr == nil {
		return unquoteJSONString(buf, mStart, mEnd), true
	}
	return unquoteJSONString(buf, eStart, eEnd), true
}

// ParseHereNow decodes a /v2/presence here-now response.
func ParseHereNow(buf []byte) (HereNowResult, error) {
	if scanAccessDenied(buf) {
		return HereNowResult{}, &OperationError{Kind: ResultAccessDenied, Cause: fmt.Errorf("pubnub: here-now request denied")}
	}
	if msg, ok := scanPresenceError(buf); ok {
		return HereNowResult{}, &OperationError{Kind: ResultPresenceAPIError, Cause: fmt.Errorf("pubnub: %s", msg)}
	}

	pStart, pEnd, err := jsonGetObjectValue(buf, 0, len(buf), "payload")
	if err != nil {
		return HereNowResult{}, fmt.Errorf("pubnub: here-now response missing \"payload\": %w", err)
	}

	result := HereNowResult{Channels: map[string]ChannelOccupancy{}}
	if v, vEnd, e := jsonGetObjectValue(buf, pStart, pEnd, "total_channels"); e == nil {
		fmt.Sscanf(string(buf[v:vEnd]), "%d", &result.TotalChannels)
	}
	if v, vEnd, e := jsonGetObjectValue(buf, pStart, pEnd, "total_occupancy"); e == nil {
		fmt.Sscanf(string(buf[v:vEnd]), "%d", &result.TotalOccupancy)
	}

	cStart, cEnd, err := jsonGetObjectValue(buf, pStart, pEnd, "channels")
	if err != nil {
		return result, nil
	}
	raw, err := decodeChannelObjectMap(buf, cStart, cEnd, func(v []byte) []byte { return v })
	if err != nil {
		return result, err
	}
	for ch, vals := range raw {
		if len(vals) == 0 {
			continue
		}
		occ := ChannelOccupancy{}
		chanBuf := vals[0]
		if v, vEnd, e := jsonGetObjectValue(chanBuf, 0, len(chanBuf), "occupancy"); e == nil {
			fmt.Sscanf(string(chanBuf[v:vEnd]), "%d", &occ.Occupancy)
		}
		if v, vEnd, e := jsonGetObjectValue(chanBuf, 0, len(chanBuf), "uuids"); e == nil {
			for _, item := range decodeRawArray(chanBuf[v:vEnd]) {
				occ.UUIDs = append(occ.UUIDs, unquoteJSONString(item, 0, len(item)))
			}
		}
		result.Channels[ch] = occ
	}
	return result, nil
}
