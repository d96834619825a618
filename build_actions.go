// SPDX-License-Identifier: GPL-3.0-or-later
//
// Message actions has no dedicated original_source header (the pubnub-c
// lineage predates it); shape follows the same sub-key/channel path
// convention every other build_*.go file here uses, with message-actions'
// own /v1/message-actions prefix.

package pubnub

import "encoding/json"

const actionsBufferSize = 2 * 1024

func actionsBuilder(cfg *Config, method, channel string) *requestBuilder {
	b := newRequestBuilder(cfg, method, actionsBufferSize)
	b.Path("v1").Path("message-actions").Path(cfg.SubscribeKey).Path("channel").PathEncoded(channel)
	return b
}

// MessageAction is one reaction attached to a published message.
type MessageAction struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// buildAddMessageAction composes POST /v1/message-actions/{sk}/channel/{channel}/message/{timetoken}.
func buildAddMessageAction(cfg *Config, channel, messageTimetoken string, action MessageAction) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	encoded, err := json.Marshal(action)
	if err != nil {
		return "", "", nil, err
	}
	b := actionsBuilder(cfg, "POST", channel)
	b.Path("message").PathEncoded(messageTimetoken)
	b.Query("auth", cfg.AuthToken)
	b.Body(encoded)
	return b.Build(cfg.TimeNow())
}

// buildRemoveMessageAction composes DELETE
// /v1/message-actions/{sk}/channel/{channel}/message/{timetoken}/action/{actionTimetoken}.
func buildRemoveMessageAction(cfg *Config, channel, messageTimetoken, actionTimetoken string) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := actionsBuilder(cfg, "DELETE", channel)
	b.Path("message").PathEncoded(messageTimetoken).Path("action").PathEncoded(actionTimetoken)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildGetMessageActions composes GET /v1/message-actions/{sk}/channel/{channel}.
func buildGetMessageActions(cfg *Config, channel, start, end string, limit int) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := actionsBuilder(cfg, "GET", channel)
	b.Query("start", start)
	b.Query("end", end)
	b.QueryInt("limit", limit)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}
