// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_ccore_pubsub.c's publish-response
// handling: the reply is a JSON array whose first element is an integer
// (1 on success, 0 on failure); `1 != strtol(reply+1, NULL, 10)` is what
// decides PNR_PUBLISH_FAILED.

package pubnub

import (
	"fmt"
	"strconv"
)

// PublishResult is a decoded publish reply: [1,"Sent","<timetoken>"] on
// success, [0,"<reason>", ...] on failure.
type PublishResult struct {
	OK        bool
	Timetoken string
	Reason    string
}

// ParsePublish decodes a publish response's leading status integer,
// returning [*OperationError] with [ResultPublishFailed] when the server
// rejected the message.
func ParsePublish(buf []byte) (PublishResult, error) {
	if len(buf) == 0 || buf[0] != '[' {
		return PublishResult{}, fmt.Errorf("pubnub: publish response is not an array")
	}
	elems := decodeRawArray(buf)
	if len(elems) < 2 {
		return PublishResult{}, fmt.Errorf("pubnub: publish response has %d elements, want at least 2", len(elems))
	}
	status, err := strconv.Atoi(string(elems[0]))
	if err != nil {
		return PublishResult{}, fmt.Errorf("pubnub: publish response has non-integer status: %w", err)
	}
	reason := unquoteJSONString(elems[1], 0, len(elems[1]))
	if status != 1 {
		return PublishResult{Reason: reason}, &OperationError{
			Kind:  ResultPublishFailed,
			Cause: fmt.Errorf("pubnub: publish failed: %s", reason),
		}
	}
	result := PublishResult{OK: true, Reason: reason}
	if len(elems) >= 3 {
		result.Timetoken = unquoteJSONString(elems[2], 0, len(elems[2]))
	}
	return result, nil
}
