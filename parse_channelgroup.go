// SPDX-License-Identifier: GPL-3.0-or-later
//
// The channel-group registry wraps its result in "payload" rather than
// "data"/"error" like Objects/Actions, so it gets its own small parser
// instead of reusing [parseEnvelope].

package pubnub

// ParseChannelGroupList decodes a list-channels-in-group response's
// "payload.channels" array into raw channel-name JSON strings.
func ParseChannelGroupList(buf []byte) ([]string, error) {
	pStart, pEnd, err := jsonGetObjectValue(buf, 0, len(buf), "payload")
	if err != nil {
		return nil, &OperationError{Kind: ResultChannelRegistryError, Cause: err}
	}
	cStart, cEnd, err := jsonGetObjectValue(buf, pStart, pEnd, "channels")
	if err != nil {
		return nil, &OperationError{Kind: ResultChannelRegistryError, Cause: err}
	}
	var channels []string
	for _, raw := range decodeRawArray(buf[cStart:cEnd]) {
		channels = append(channels, unquoteJSONString(raw, 0, len(raw)))
	}
	return channels, nil
}
