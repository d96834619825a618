// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

// ActionsPage is a decoded list of message actions ("data" array) plus the
// paging cursor the server returns when more actions exist than fit in one
// reply.
type ActionsPage struct {
	Items [][]byte
	More  string
}

// ParseActionsPage decodes a get-message-actions response.
func ParseActionsPage(buf []byte) (ActionsPage, error) {
	env, err := parseEnvelope(buf, ResultActionsAPIError)
	if err != nil {
		return ActionsPage{}, err
	}
	more := ""
	if mStart, mEnd, merr := jsonGetObjectValue(buf, 0, len(buf), "more"); merr == nil {
		if uStart, uEnd, uerr := jsonGetObjectValue(buf, mStart, mEnd, "url"); uerr == nil {
			more = unquoteJSONString(buf, uStart, uEnd)
		}
	}
	return ActionsPage{Items: decodeRawArray(env.Data), More: more}, nil
}

// ParseActionObject decodes a single add-message-action response.
func ParseActionObject(buf []byte) ([]byte, error) {
	env, err := parseEnvelope(buf, ResultActionsAPIError)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
