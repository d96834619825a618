// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "encoding/json"

const presenceBufferSize = 2 * 1024

// buildHeartbeat composes /v2/presence/sub-key/{sk}/channel/{channels}/heartbeat.
func buildHeartbeat(cfg *Config, channels []string, groups []string, period int, state map[string]any) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, subscribeParams{Channels: channels}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := newRequestBuilder(cfg, "GET", presenceBufferSize)
	b.Path("v2").Path("presence").Path("sub-key").Path(cfg.SubscribeKey).
		Path("channel").PathEncoded(joinComma(channels)).Path("heartbeat")
	if len(groups) > 0 {
		b.Query("channel-group", joinComma(groups))
	}
	b.QueryInt("heartbeat", period)
	if state != nil {
		if encoded, err := json.Marshal(state); err == nil {
			b.Query("state", string(encoded))
		}
	}
	b.Query("uuid", cfg.UserID).Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildLeave composes /v2/presence/sub-key/{sk}/channel/{channels}/leave.
func buildLeave(cfg *Config, channels []string, groups []string) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, subscribeParams{Channels: channels}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := newRequestBuilder(cfg, "GET", presenceBufferSize)
	b.Path("v2").Path("presence").Path("sub-key").Path(cfg.SubscribeKey).
		Path("channel").PathEncoded(joinComma(channels)).Path("leave")
	if len(groups) > 0 {
		b.Query("channel-group", joinComma(groups))
	}
	b.Query("uuid", cfg.UserID).Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildHereNow composes /v2/presence/sub-key/{sk}/channel/{channels}.
func buildHereNow(cfg *Config, channels []string, includeUUIDs, includeState bool) (string, string, []byte, error) {
	b := newRequestBuilder(cfg, "GET", presenceBufferSize)
	b.Path("v2").Path("presence").Path("sub-key").Path(cfg.SubscribeKey)
	if len(channels) > 0 {
		b.Path("channel").PathEncoded(joinComma(channels))
	}
	b.QueryBool("disable_uuids", !includeUUIDs)
	b.QueryBool("state", includeState)
	b.Query("uuid", cfg.UserID).Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildSetState composes /v2/presence/sub-key/{sk}/channel/{channels}/uuid/{uuid}/data.
func buildSetState(cfg *Config, channels []string, groups []string, state map[string]any) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, subscribeParams{Channels: channels}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	encoded, err := json.Marshal(state)
	if err != nil {
		return "", "", nil, err
	}
	b := newRequestBuilder(cfg, "GET", presenceBufferSize)
	b.Path("v2").Path("presence").Path("sub-key").Path(cfg.SubscribeKey).
		Path("channel").PathEncoded(joinComma(channels)).Path("uuid").PathEncoded(cfg.UserID).Path("data")
	if len(groups) > 0 {
		b.Query("channel-group", joinComma(groups))
	}
	b.Query("state", string(encoded))
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildGetState composes /v2/presence/sub-key/{sk}/channel/{channels}/uuid/{uuid}.
func buildGetState(cfg *Config, channels []string, groups []string, uuid string) (string, string, []byte, error) {
	if uuid == "" {
		uuid = cfg.UserID
	}
	b := newRequestBuilder(cfg, "GET", presenceBufferSize)
	b.Path("v2").Path("presence").Path("sub-key").Path(cfg.SubscribeKey).
		Path("channel").PathEncoded(joinComma(channels)).Path("uuid").PathEncoded(uuid)
	if len(groups) > 0 {
		b.Query("channel-group", joinComma(groups))
	}
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}
