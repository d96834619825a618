// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pbcc_objects_api.h's get/create/update/
// delete quartet (get_users/create_user/update_user/delete_user and their
// get_spaces/... counterparts), renamed here to the current wire API's
// uuid/channel metadata terminology.

package pubnub

const objectsBufferSize = 4 * 1024

func objectsBuilder(cfg *Config, method string) *requestBuilder {
	b := newRequestBuilder(cfg, method, objectsBufferSize)
	b.Path("v2").Path("objects").Path(cfg.SubscribeKey)
	return b
}

func applyObjectsListParams(b *requestBuilder, include []string, limit int, start, end string, count bool) {
	if len(include) > 0 {
		b.Query("include", joinComma(include))
	}
	b.QueryInt("limit", limit)
	b.Query("start", start)
	b.Query("end", end)
	b.QueryBool("count", count)
}

// buildGetAllUUIDMetadata composes GET /v2/objects/{sk}/uuids.
func buildGetAllUUIDMetadata(cfg *Config, include []string, limit int, start, end string, count bool) (string, string, []byte, error) {
	b := objectsBuilder(cfg, "GET")
	b.Path("uuids")
	applyObjectsListParams(b, include, limit, start, end, count)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildSetUUIDMetadata composes PATCH /v2/objects/{sk}/uuids/{uuid}.
func buildSetUUIDMetadata(cfg *Config, uuid string, include []string, metadata []byte) (string, string, []byte, error) {
	if uuid == "" {
		uuid = cfg.UserID
	}
	b := objectsBuilder(cfg, "PATCH")
	b.Path("uuids").PathEncoded(uuid)
	if len(include) > 0 {
		b.Query("include", joinComma(include))
	}
	b.Query("auth", cfg.AuthToken)
	b.Body(metadata)
	return b.Build(cfg.TimeNow())
}

// buildGetUUIDMetadata composes GET /v2/objects/{sk}/uuids/{uuid}.
func buildGetUUIDMetadata(cfg *Config, uuid string, include []string) (string, string, []byte, error) {
	if uuid == "" {
		uuid = cfg.UserID
	}
	b := objectsBuilder(cfg, "GET")
	b.Path("uuids").PathEncoded(uuid)
	if len(include) > 0 {
		b.Query("include", joinComma(include))
	}
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildRemoveUUIDMetadata composes DELETE /v2/objects/{sk}/uuids/{uuid}.
func buildRemoveUUIDMetadata(cfg *Config, uuid string) (string, string, []byte, error) {
	if uuid == "" {
		uuid = cfg.UserID
	}
	b := objectsBuilder(cfg, "DELETE")
	b.Path("uuids").PathEncoded(uuid)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildGetAllChannelMetadata composes GET /v2/objects/{sk}/channels.
func buildGetAllChannelMetadata(cfg *Config, include []string, limit int, start, end string, count bool) (string, string, []byte, error) {
	b := objectsBuilder(cfg, "GET")
	b.Path("channels")
	applyObjectsListParams(b, include, limit, start, end, count)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildSetChannelMetadata composes PATCH /v2/objects/{sk}/channels/{channel}.
func buildSetChannelMetadata(cfg *Config, channel string, include []string, metadata []byte) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := objectsBuilder(cfg, "PATCH")
	b.Path("channels").PathEncoded(channel)
	if len(include) > 0 {
		b.Query("include", joinComma(include))
	}
	b.Query("auth", cfg.AuthToken)
	b.Body(metadata)
	return b.Build(cfg.TimeNow())
}

// buildGetChannelMetadata composes GET /v2/objects/{sk}/channels/{channel}.
func buildGetChannelMetadata(cfg *Config, channel string, include []string) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := objectsBuilder(cfg, "GET")
	b.Path("channels").PathEncoded(channel)
	if len(include) > 0 {
		b.Query("include", joinComma(include))
	}
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildRemoveChannelMetadata composes DELETE /v2/objects/{sk}/channels/{channel}.
func buildRemoveChannelMetadata(cfg *Config, channel string) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := objectsBuilder(cfg, "DELETE")
	b.Path("channels").PathEncoded(channel)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildGetMemberships composes GET /v2/objects/{sk}/uuids/{uuid}/channels,
// mirroring pbcc_get_memberships_prep.
func buildGetMemberships(cfg *Config, uuid string, include []string, limit int, start, end string, count bool) (string, string, []byte, error) {
	if uuid == "" {
		uuid = cfg.UserID
	}
	b := objectsBuilder(cfg, "GET")
	b.Path("uuids").PathEncoded(uuid).Path("channels")
	applyObjectsListParams(b, include, limit, start, end, count)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildSetMemberships composes PATCH /v2/objects/{sk}/uuids/{uuid}/channels
// with updateObj carrying the add/update/remove sets, mirroring
// pbcc_update_memberships_prep.
func buildSetMemberships(cfg *Config, uuid string, include []string, updateObj []byte) (string, string, []byte, error) {
	if uuid == "" {
		uuid = cfg.UserID
	}
	b := objectsBuilder(cfg, "PATCH")
	b.Path("uuids").PathEncoded(uuid).Path("channels")
	if len(include) > 0 {
		b.Query("include", joinComma(include))
	}
	b.Query("auth", cfg.AuthToken)
	b.Body(updateObj)
	return b.Build(cfg.TimeNow())
}

// buildGetChannelMembers composes GET /v2/objects/{sk}/channels/{channel}/uuids,
// mirroring pbcc_get_members_prep.
func buildGetChannelMembers(cfg *Config, channel string, include []string, limit int, start, end string, count bool) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := objectsBuilder(cfg, "GET")
	b.Path("channels").PathEncoded(channel).Path("uuids")
	applyObjectsListParams(b, include, limit, start, end, count)
	b.Query("auth", cfg.AuthToken)
	return b.Build(cfg.TimeNow())
}

// buildSetChannelMembers composes PATCH /v2/objects/{sk}/channels/{channel}/uuids,
// mirroring pbcc_update_members_prep.
func buildSetChannelMembers(cfg *Config, channel string, include []string, updateObj []byte) (string, string, []byte, error) {
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: []byte("x")}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}
	b := objectsBuilder(cfg, "PATCH")
	b.Path("channels").PathEncoded(channel).Path("uuids")
	if len(include) > 0 {
		b.Query("include", joinComma(include))
	}
	b.Query("auth", cfg.AuthToken)
	b.Body(updateObj)
	return b.Build(cfg.TimeNow())
}
