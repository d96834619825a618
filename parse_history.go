// SPDX-License-Identifier: GPL-3.0-or-later
//
// No original_source history parser survives the distillation (history's C
// counterpart parses in place via pbcc_parse_presence_response-style
// helpers that were dropped along with the rest of pubnub_ccore_pubsub.c's
// non-subscribe response handling); shape here follows the documented v2/v3
// wire format, scanned the same pointer+length way subscribev2.go decodes
// the subscribe envelope.

package pubnub

import "fmt"

// HistoryPage is legacy (v2) history's three-element reply:
// [[messages...], startTimetoken, endTimetoken].
type HistoryPage struct {
	Messages       [][]byte
	StartTimetoken string
	EndTimetoken   string
}

// ParseHistory decodes a v2 /history response.
func ParseHistory(buf []byte) (HistoryPage, error) {
	if scanAccessDenied(buf) {
		return HistoryPage{}, &OperationError{Kind: ResultAccessDenied, Cause: fmt.Errorf("pubnub: history request denied")}
	}
	if len(buf) == 0 || buf[0] != '[' {
		return HistoryPage{}, fmt.Errorf("pubnub: history response is not an array")
	}
	elems := decodeRawArray(buf)
	if len(elems) != 3 {
		return HistoryPage{}, fmt.Errorf("pubnub: history response has %d elements, want 3", len(elems))
	}
	return HistoryPage{
		Messages:       decodeRawArray(elems[0]),
		StartTimetoken: unquoteJSONString(elems[1], 0, len(elems[1])),
		EndTimetoken:   unquoteJSONString(elems[2], 0, len(elems[2])),
	}, nil
}

// ParseFetchHistory decodes a v3 /history response's per-channel message
// lists.
func ParseFetchHistory(buf []byte) (map[string][][]byte, error) {
	if scanAccessDenied(buf) {
		return nil, &OperationError{Kind: ResultAccessDenied, Cause: fmt.Errorf("pubnub: fetch-history request denied")}
	}
	cStart, cEnd, err := jsonGetObjectValue(buf, 0, len(buf), "channels")
	if err != nil {
		return nil, fmt.Errorf("pubnub: fetch-history response missing \"channels\": %w", err)
	}
	return decodeChannelObjectMap(buf, cStart, cEnd, func(raw []byte) []byte { return raw })
}

// ParseMessageCounts decodes a v3 message-counts response's per-channel
// unread counts.
func ParseMessageCounts(buf []byte) (map[string]int, error) {
	if scanAccessDenied(buf) {
		return nil, &OperationError{Kind: ResultAccessDenied, Cause: fmt.Errorf("pubnub: message-counts request denied")}
	}
	cStart, cEnd, err := jsonGetObjectValue(buf, 0, len(buf), "channels")
	if err != nil {
		return nil, fmt.Errorf("pubnub: message-counts response missing \"channels\": %w", err)
	}
	raw, err := decodeChannelObjectMap(buf, cStart, cEnd, func(raw []byte) []byte { return raw })
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(raw))
	for ch, v := range raw {
		if len(v) == 0 {
			continue
		}
		var n int
		fmt.Sscanf(string(v[0]), "%d", &n)
		counts[ch] = n
	}
	return counts, nil
}

// decodeChannelObjectMap walks a {"channel": <value>, ...} object (as
// jsonscan.go never builds a DOM, each value is returned as its raw byte
// range rather than unmarshalled).
func decodeChannelObjectMap(buf []byte, pos, end int, transform func([]byte) []byte) (map[string][][]byte, error) {
	if pos >= end || buf[pos] != '{' {
		return nil, &JSONParseError{Kind: JSONNoStartCurly, Pos: pos}
	}
	out := make(map[string][][]byte)
	i := jsonSkipWhitespace(buf, pos+1, end)
	for i < end && buf[i] != '}' {
		if buf[i] != '"' {
			return nil, &JSONParseError{Kind: JSONKeyNotString, Pos: i}
		}
		keyEnd := jsonFindEndString(buf, i+1, end)
		key := string(buf[i+1 : keyEnd])
		i = jsonSkipWhitespace(buf, keyEnd+1, end)
		if i >= end || buf[i] != ':' {
			return nil, &JSONParseError{Kind: JSONMissingColon, Pos: i}
		}
		i = jsonSkipWhitespace(buf, i+1, end)
		valStop := jsonFindEndElement(buf, i, end)
		val := buf[i : valStop+1]
		if len(val) > 0 && val[0] == '[' {
			out[key] = decodeRawArray(val)
		} else {
			out[key] = [][]byte{transform(val)}
		}
		i = jsonSkipWhitespace(buf, valStop+1, end)
		if i < end && buf[i] == ',' {
			i = jsonSkipWhitespace(buf, i+1, end)
			continue
		}
	}
	return out, nil
}
