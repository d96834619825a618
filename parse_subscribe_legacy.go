// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_ccore_pubsub.c's
// pbcc_parse_subscribe_response (right-to-left extraction: an optional
// trailing channel list, an optional group list ahead of it, then the
// timetoken, with the message array always first) and
// pubnub_ccore_pubsub.h's `char timetoken[20]` buffer, which bounds a
// legacy timetoken to 19 digits.

package pubnub

import "fmt"

// maxLegacyTimetokenLength is the largest timetoken the legacy wire format
// can carry, per pubnub_ccore_pubsub.h's 20-byte (19 usable + NUL) buffer.
const maxLegacyTimetokenLength = 19

// LegacySubscribeResult is a decoded pre-v2 subscribe reply:
// [[messages...], timetoken] with optional trailing group/channel lists
// when more than one channel or group was subscribed to.
type LegacySubscribeResult struct {
	Messages  [][]byte
	Timetoken string
	Groups    []string
	Channels  []string
}

// ParseSubscribeLegacy decodes a pre-v2 /subscribe response.
func ParseSubscribeLegacy(buf []byte) (LegacySubscribeResult, error) {
	if scanAccessDenied(buf) {
		return LegacySubscribeResult{}, &OperationError{Kind: ResultAccessDenied, Cause: fmt.Errorf("pubnub: subscribe request denied")}
	}
	if len(buf) == 0 || buf[0] != '[' {
		return LegacySubscribeResult{}, &OperationError{Kind: ResultSubscribeTimetokenFormatError,
			Cause: fmt.Errorf("pubnub: subscribe response is not an array")}
	}
	elems := decodeRawArray(buf)
	if len(elems) < 2 {
		return LegacySubscribeResult{}, &OperationError{Kind: ResultNoTimetoken,
			Cause: fmt.Errorf("pubnub: subscribe response has %d elements, want at least 2", len(elems))}
	}

	result := LegacySubscribeResult{Messages: decodeRawArray(elems[0])}

	ttElem := elems[1]
	switch len(elems) {
	case 3:
		result.Channels = splitComma(unquoteJSONString(elems[2], 0, len(elems[2])))
	case 4:
		result.Groups = splitComma(unquoteJSONString(elems[2], 0, len(elems[2])))
		result.Channels = splitComma(unquoteJSONString(elems[3], 0, len(elems[3])))
	}

	timetoken := unquoteJSONString(ttElem, 0, len(ttElem))
	if timetoken == "" {
		return LegacySubscribeResult{}, &OperationError{Kind: ResultNoTimetoken,
			Cause: fmt.Errorf("pubnub: subscribe response has empty timetoken")}
	}
	if len(timetoken) > maxLegacyTimetokenLength {
		return LegacySubscribeResult{}, &OperationError{Kind: ResultSubscribeTimetokenFormatError,
			Cause: fmt.Errorf("pubnub: subscribe response timetoken %q exceeds %d digits", timetoken, maxLegacyTimetokenLength)}
	}
	for _, b := range []byte(timetoken) {
		if b < '0' || b > '9' {
			return LegacySubscribeResult{}, &OperationError{Kind: ResultSubscribeTimetokenFormatError,
				Cause: fmt.Errorf("pubnub: subscribe response timetoken %q is not numeric", timetoken)}
		}
	}
	result.Timetoken = timetoken
	return result, nil
}
