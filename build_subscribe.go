// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

const subscribeBufferSize = 16 * 1024

// buildSubscribe composes a subscribe-v2 long-poll request:
// /v2/subscribe/{sk}/{comma-separated channels}/0?tt={timetoken}&tr={region}
func buildSubscribe(cfg *Config, channels []string, groups []string, timetoken string, region int, heartbeat int) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, subscribeParams{Channels: channels}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}

	b := newRequestBuilder(cfg, "GET", subscribeBufferSize)
	b.Path("v2").Path("subscribe").Path(cfg.SubscribeKey).PathEncoded(joinComma(channels)).Path("0")
	b.Query("tt", timetoken)
	b.QueryInt("tr", region)
	if len(groups) > 0 {
		b.Query("channel-group", joinComma(groups))
	}
	b.QueryInt("heartbeat", heartbeat)
	b.Query("uuid", cfg.UserID).Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildSubscribeLegacy composes a pre-v2 subscribe long-poll request,
// grounded on original_source/core/pubnub_ccore_pubsub.c's
// pbcc_subscribe_prep:
// /subscribe/{sk}/{comma-separated channels}/0/{timetoken}
func buildSubscribeLegacy(cfg *Config, channels []string, groups []string, timetoken string, heartbeat int) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, subscribeParams{Channels: channels}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	if timetoken == "" {
		timetoken = "0"
	}

	b := newRequestBuilder(cfg, "GET", subscribeBufferSize)
	b.Path("subscribe").Path(cfg.SubscribeKey).PathEncoded(joinComma(channels)).Path("0").PathEncoded(timetoken)
	if len(groups) > 0 {
		b.Query("channel-group", joinComma(groups))
	}
	b.QueryInt("heartbeat", heartbeat)
	b.Query("uuid", cfg.UserID).Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}
