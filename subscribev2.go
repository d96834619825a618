// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_subscribe_v2_message.c (per-field
// envelope extraction: c, b, d, u, p.t, p.u, f, e, cmt).

package pubnub

import (
	"errors"
	"fmt"
)

// errNoTimetoken and errNoRegion distinguish a cursor whose "t"/"r" key is
// entirely absent from one whose value is present but malformed, so
// [classifySubscribeDecodeError] can report [ResultNoTimetoken]/
// [ResultNoRegion] instead of collapsing every decode failure into
// [ResultSubscribeTimetokenFormatError].
var (
	errNoTimetoken = errors.New("subscribe cursor missing \"t\"")
	errNoRegion    = errors.New("subscribe cursor missing \"r\"")
)

// MessageType is the subscribe-v2 envelope's "e" field (§4.C8).
type MessageType int

const (
	MessageTypeUnknown   MessageType = 0
	MessageTypeSignal    MessageType = 1
	MessageTypePublished MessageType = 2
	MessageTypeAction    MessageType = 3
	MessageTypeObjects   MessageType = 4
	MessageTypeFiles     MessageType = 5
)

// SubscribeMessage is one decoded envelope element.
//
// Payload and Metadata are returned as the raw JSON bytes for that field
// (no copy beyond the slice header, as §4.C8 specifies "pointers+lengths
// into the reply buffer"); callers that need structured access unmarshal
// them separately.
type SubscribeMessage struct {
	Channel           string      `json:"c"`
	Subscription      string      `json:"b,omitempty"`
	Payload           []byte      `json:"d"`
	Metadata          []byte      `json:"u,omitempty"`
	PublishTimetoken  string      `json:"timetoken"`
	Publisher         string      `json:"publisher,omitempty"`
	Flags             int         `json:"f,omitempty"`
	Type              MessageType `json:"e,omitempty"`
	CustomMessageType string      `json:"cmt,omitempty"`
}

// SubscribeResult is the fully decoded outer envelope: the cursor position
// to resume the next long-poll from, and region stickiness.
type SubscribeResult struct {
	Timetoken string
	Region    int
}

// SubscribeDecoder lazily iterates the "m" array of a subscribe-v2 reply
// without building a DOM, producing one [SubscribeMessage] per call to
// [SubscribeDecoder.Next].
type SubscribeDecoder struct {
	buf       []byte
	pos       int
	arrayEnd  int
	exhausted bool
}

// NewSubscribeDecoder parses the outer envelope `{"t":{...},"m":[...]}`
// and returns a cursor over "m" plus the decoded timetoken/region.
func NewSubscribeDecoder(buf []byte) (*SubscribeDecoder, *SubscribeResult, error) {
	tStart, tEnd, err := jsonGetObjectValue(buf, 0, len(buf), "t")
	if err != nil {
		return nil, nil, fmt.Errorf("subscribe envelope missing \"t\": %w", err)
	}
	region, err := decodeSubscribeCursor(buf, tStart, tEnd)
	if err != nil {
		return nil, nil, err
	}

	mStart, mEnd, err := jsonGetObjectValue(buf, 0, len(buf), "m")
	if err != nil {
		return nil, nil, fmt.Errorf("subscribe envelope missing \"m\": %w", err)
	}
	if mStart >= len(buf) || buf[mStart] != '[' {
		return nil, nil, fmt.Errorf("subscribe envelope \"m\" is not an array")
	}

	dec := &SubscribeDecoder{buf: buf, pos: mStart + 1, arrayEnd: mEnd}
	return dec, region, nil
}

func decodeSubscribeCursor(buf []byte, start, end int) (*SubscribeResult, error) {
	ttStart, ttEnd, err := jsonGetObjectValue(buf, start, end, "t")
	if err != nil {
		return nil, errNoTimetoken
	}
	timetoken := unquoteJSONString(buf, ttStart, ttEnd)
	if timetoken == "" {
		return nil, fmt.Errorf("subscribe cursor has empty timetoken")
	}

	rStart, rEnd, rerr := jsonGetObjectValue(buf, start, end, "r")
	if rerr != nil {
		return nil, errNoRegion
	}
	var region int
	if _, serr := fmt.Sscanf(string(buf[rStart:rEnd]), "%d", &region); serr != nil {
		return nil, fmt.Errorf("subscribe cursor has malformed region: %w", serr)
	}
	return &SubscribeResult{Timetoken: timetoken, Region: region}, nil
}

// classifySubscribeDecodeError maps a [NewSubscribeDecoder] failure to a
// distinct [ResultKind], so a missing cursor key is reported differently
// from a malformed one instead of collapsing into one failure kind.
func classifySubscribeDecodeError(err error) ResultKind {
	switch {
	case errors.Is(err, errNoTimetoken):
		return ResultNoTimetoken
	case errors.Is(err, errNoRegion):
		return ResultNoRegion
	default:
		return ResultSubscribeTimetokenFormatError
	}
}

func unquoteJSONString(buf []byte, start, end int) string {
	if end-start >= 2 && buf[start] == '"' && buf[end-1] == '"' {
		return string(buf[start+1 : end-1])
	}
	return string(buf[start:end])
}

// Next returns the next decoded message, or ok=false at end of stream
// (matching §4.C8's "an empty record marks end of stream").
func (d *SubscribeDecoder) Next() (msg SubscribeMessage, ok bool, err error) {
	if d.exhausted {
		return SubscribeMessage{}, false, nil
	}
	elemStart, elemEnd, next, found := jsonNextArrayElement(d.buf, d.pos, d.arrayEnd)
	d.pos = next
	if !found {
		d.exhausted = true
		return SubscribeMessage{}, false, nil
	}

	rec := SubscribeMessage{}
	if v, vEnd, e := jsonGetObjectValue(d.buf, elemStart, elemEnd, "c"); e == nil {
		rec.Channel = unquoteJSONString(d.buf, v, vEnd)
	}
	if v, vEnd, e := jsonGetObjectValue(d.buf, elemStart, elemEnd, "b"); e == nil {
		rec.Subscription = unquoteJSONString(d.buf, v, vEnd)
	} else {
		rec.Subscription = rec.Channel
	}
	if v, vEnd, e := jsonGetObjectValue(d.buf, elemStart, elemEnd, "d"); e == nil {
		rec.Payload = d.buf[v:vEnd]
	}
	if v, vEnd, e := jsonGetObjectValue(d.buf, elemStart, elemEnd, "u"); e == nil {
		rec.Metadata = d.buf[v:vEnd]
	}
	if pStart, pEnd, e := jsonGetObjectValue(d.buf, elemStart, elemEnd, "p"); e == nil {
		if v, vEnd, e2 := jsonGetObjectValue(d.buf, pStart, pEnd, "t"); e2 == nil {
			rec.PublishTimetoken = unquoteJSONString(d.buf, v, vEnd)
		}
		if v, vEnd, e2 := jsonGetObjectValue(d.buf, pStart, pEnd, "u"); e2 == nil {
			rec.Publisher = unquoteJSONString(d.buf, v, vEnd)
		}
	}
	if v, vEnd, e := jsonGetObjectValue(d.buf, elemStart, elemEnd, "f"); e == nil {
		fmt.Sscanf(string(d.buf[v:vEnd]), "%d", &rec.Flags)
	}
	if v, vEnd, e := jsonGetObjectValue(d.buf, elemStart, elemEnd, "e"); e == nil {
		var t int
		fmt.Sscanf(string(d.buf[v:vEnd]), "%d", &t)
		rec.Type = MessageType(t)
	} else {
		rec.Type = MessageTypePublished
	}
	if v, vEnd, e := jsonGetObjectValue(d.buf, elemStart, elemEnd, "cmt"); e == nil {
		rec.CustomMessageType = unquoteJSONString(d.buf, v, vEnd)
	}
	return rec, true, nil
}
