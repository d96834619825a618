// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pbcc_objects_api.h's
// pbcc_parse_objects_api_response (one shape for every Objects endpoint:
// "data" holds either a single object or an array, "error" reports failure).

package pubnub

// ObjectsPage is a decoded list response: Items holds each element's raw
// JSON (as [SubscribeMessage] does for "d"), for the caller to unmarshal.
type ObjectsPage struct {
	Items      [][]byte
	TotalCount int
	Next       string
	Prev       string
}

// ParseObjectsObject decodes a single-object Objects API response (get/set
// UUID or channel metadata).
func ParseObjectsObject(buf []byte) ([]byte, error) {
	env, err := parseEnvelope(buf, ResultObjectsAPIError)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ParseObjectsPage decodes a list-shaped Objects API response (get-all
// metadata, memberships, channel members).
func ParseObjectsPage(buf []byte) (ObjectsPage, error) {
	env, err := parseEnvelope(buf, ResultObjectsAPIError)
	if err != nil {
		return ObjectsPage{}, err
	}
	return ObjectsPage{
		Items:      decodeRawArray(env.Data),
		TotalCount: env.TotalCount,
		Next:       env.Next,
		Prev:       env.Prev,
	}, nil
}
