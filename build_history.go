// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

const historyBufferSize = 4 * 1024

// buildHistory composes /v2/history/sub-key/{sk}/channel/{channel}.
func buildHistory(cfg *Config, channel string, count int, reverse bool, start, end string) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := newRequestBuilder(cfg, "GET", historyBufferSize)
	b.Path("v2").Path("history").Path("sub-key").Path(cfg.SubscribeKey).Path("channel").PathEncoded(channel)
	b.QueryInt("count", count)
	b.QueryBool("reverse", reverse)
	b.Query("start", start)
	b.Query("end", end)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildFetchHistory composes /v3/history/sub-key/{sk}/channel/{channels}.
func buildFetchHistory(cfg *Config, channels []string, count int, includeMeta bool, start, end string) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, subscribeParams{Channels: channels}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := newRequestBuilder(cfg, "GET", historyBufferSize)
	b.Path("v3").Path("history").Path("sub-key").Path(cfg.SubscribeKey).Path("channel").PathEncoded(joinComma(channels))
	b.QueryInt("max", count)
	b.QueryBool("include_meta", includeMeta)
	b.Query("start", start)
	b.Query("end", end)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildMessageCounts composes /v3/history/sub-key/{sk}/message-counts/{channels}.
func buildMessageCounts(cfg *Config, channels []string, timetoken string) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, subscribeParams{Channels: channels}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := newRequestBuilder(cfg, "GET", historyBufferSize)
	b.Path("v3").Path("history").Path("sub-key").Path(cfg.SubscribeKey).Path("message-counts").PathEncoded(joinComma(channels))
	b.Query("timetoken", timetoken)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildDeleteMessages composes DELETE /v3/history/sub-key/{sk}/channel/{channel}.
func buildDeleteMessages(cfg *Config, channel, start, end string) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := newRequestBuilder(cfg, "DELETE", historyBufferSize)
	b.Path("v3").Path("history").Path("sub-key").Path(cfg.SubscribeKey).Path("channel").PathEncoded(channel)
	b.Query("start", start)
	b.Query("end", end)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}
