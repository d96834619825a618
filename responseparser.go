// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pbcc_objects_api.h's
// pbcc_parse_objects_api_response: every Objects/Actions reply is either
// {"data": ...} or {"error": ...}; anything else is a format error. C3
// reuses jsonscan.go's pointer+length scanning instead of building a DOM,
// the same way subscribev2.go decodes the subscribe envelope.

package pubnub

import "fmt"

// Envelope is a scanned (not copied) {"data"/"error", pagination} reply
// shared by the Objects and Actions endpoints.
type Envelope struct {
	Data       []byte
	TotalCount int
	Next       string
	Prev       string
}

// ErrAPIError reports a non-2xx payload's "error" field, its message taken
// verbatim from the server's JSON.
type ErrAPIError struct {
	Kind    ResultKind
	Message string
}

func (e *ErrAPIError) Error() string {
	return fmt.Sprintf("pubnub: %s: %s", resultKindNames[e.Kind], e.Message)
}

// parseEnvelope scans buf for "data" or "error", returning [*ErrAPIError]
// (classified as errKind) for the latter and [*JSONParseError] wrapped in
// a generic format error when neither key is present.
func parseEnvelope(buf []byte, errKind ResultKind) (Envelope, error) {
	if dStart, dEnd, err := jsonGetObjectValue(buf, 0, len(buf), "data"); err == nil {
		env := Envelope{Data: buf[dStart:dEnd]}
		if tStart, tEnd, terr := jsonGetObjectValue(buf, 0, len(buf), "totalCount"); terr == nil {
			fmt.Sscanf(string(buf[tStart:tEnd]), "%d", &env.TotalCount)
		}
		if nStart, nEnd, nerr := jsonGetObjectValue(buf, 0, len(buf), "next"); nerr == nil {
			env.Next = unquoteJSONString(buf, nStart, nEnd)
		}
		if pStart, pEnd, perr := jsonGetObjectValue(buf, 0, len(buf), "prev"); perr == nil {
			env.Prev = unquoteJSONString(buf, pStart, pEnd)
		}
		return env, nil
	}

	if eStart, eEnd, err := jsonGetObjectValue(buf, 0, len(buf), "error"); err == nil {
		msg := string(buf[eStart:eEnd])
		if mStart, mEnd, merr := jsonGetObjectValue(buf, eStart, eEnd, "message"); merr == nil {
			msg = unquoteJSONString(buf, mStart, mEnd)
		}
		return Envelope{}, &ErrAPIError{Kind: errKind, Message: msg}
	}

	return Envelope{}, fmt.Errorf("pubnub: response has neither \"data\" nor \"error\": %w",
		&JSONParseError{Kind: JSONKeyNotFound, Pos: 0})
}

// scanAccessDenied reports whether buf is an object carrying a top-level
// "status":"403" field, the shape the server sends on PAM access denial
// ahead of any other validation (§4.C3, §7: "never masked by format
// errors"). A non-object buffer (the ordinary array-shaped success
// response for simple-array endpoints) fails closed and returns false.
func scanAccessDenied(buf []byte) bool {
	start, end, err := jsonGetObjectValue(buf, 0, len(buf), "status")
	if err != nil {
		return false
	}
	return unquoteJSONString(buf, start, end) == "403"
}

// decodeRawArray iterates a raw JSON array (as sliced out of an [Envelope]'s
// Data field) one element at a time without building a DOM, the same
// pattern [SubscribeDecoder.Next] uses for the "m" array.
func decodeRawArray(buf []byte) [][]byte {
	if len(buf) == 0 || buf[0] != '[' {
		return nil
	}
	var items [][]byte
	pos, end := 1, len(buf)
	for {
		elemStart, elemEnd, next, ok := jsonNextArrayElement(buf, pos, end)
		if !ok {
			break
		}
		items = append(items, buf[elemStart:elemEnd])
		pos = next
	}
	return items
}
