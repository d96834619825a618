// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_coreapi.c and
// original_source/core/pubnub_ccore_pubsub.c (the five-step pattern every
// operation entry point follows: lock, check can_start_transaction, build,
// transition, unlock).

package pubnub

import (
	"context"
	"time"
)

// Publish sends message on channel and blocks until the transaction
// completes (sync backend).
func (c *Context) Publish(ctx context.Context, channel string, message any, method PublishMethod, meta map[string]string) Outcome {
	m, url, body, err := buildPublish(c.cfg, 0, channel, message, method, meta)
	if err != nil {
		return c.failBuild(TransactionPublish, err)
	}
	outcome := Await(ctx, c, TransactionPublish, EndpointGroupPublish, m, url, body)
	if outcome.Result != ResultOK {
		return outcome
	}

	c.mu.Lock()
	c.lastPublishResult = outcome.Body
	c.mu.Unlock()

	if _, perr := ParsePublish(outcome.Body); perr != nil {
		if opErr, ok := perr.(*OperationError); ok {
			outcome.Result = opErr.Kind
		} else {
			outcome.Result = ResultFormatError
		}
		outcome.Err = perr
	}
	return outcome
}

// Subscribe issues one long-poll subscribe request for the given channels
// and channel groups, starting from c's current timetoken cursor.
//
// On success the context's cursor is advanced and, when c was constructed
// via [NewContext], every decoded message is also published on c's
// internal dispatch bus; subscribers obtained from
// [Context.SubscribeChannel] observe it independent of Subscribe's own
// return value.
func (c *Context) Subscribe(ctx context.Context, channels, groups []string, heartbeat int) (Outcome, []SubscribeMessage) {
	c.mu.Lock()
	timetoken, region := c.timetoken, c.region
	c.channels = channels
	c.mu.Unlock()

	m, url, body, err := buildSubscribe(c.cfg, channels, groups, timetoken, region, heartbeat)
	if err != nil {
		return c.failBuild(TransactionSubscribe, err), nil
	}

	subCtx := ctx
	outcome := Await(subCtx, c, TransactionSubscribe, EndpointGroupSubscribe, m, url, body)
	if outcome.Result != ResultOK {
		return outcome, nil
	}

	dec, result, derr := NewSubscribeDecoder(outcome.Body)
	if derr != nil {
		c.mu.Lock()
		c.timetoken = "0"
		c.mu.Unlock()
		outcome.Result = classifySubscribeDecodeError(derr)
		outcome.Err = derr
		return outcome, nil
	}
	c.mu.Lock()
	c.timetoken = result.Timetoken
	c.region = result.Region
	c.mu.Unlock()

	var messages []SubscribeMessage
	for {
		msg, ok, derr := dec.Next()
		if derr != nil {
			break
		}
		if !ok {
			break
		}
		messages = append(messages, msg)
		_ = c.bus.Publish(msg)
	}
	return outcome, messages
}

// SubscribeLegacy issues one long-poll request against the pre-v2
// subscribe endpoint, for deployments that still speak the array-shaped
// wire format. Like [Context.Subscribe], messages are also published on
// c's internal dispatch bus, but the legacy envelope carries no per-message
// metadata beyond the channel name (and only that when more than one
// channel was subscribed to).
func (c *Context) SubscribeLegacy(ctx context.Context, channels, groups []string, heartbeat int) (Outcome, LegacySubscribeResult) {
	c.mu.Lock()
	timetoken := c.timetoken
	c.channels = channels
	c.mu.Unlock()

	m, url, body, err := buildSubscribeLegacy(c.cfg, channels, groups, timetoken, heartbeat)
	if err != nil {
		return c.failBuild(TransactionSubscribe, err), LegacySubscribeResult{}
	}

	outcome := Await(ctx, c, TransactionSubscribe, EndpointGroupSubscribe, m, url, body)
	if outcome.Result != ResultOK {
		return outcome, LegacySubscribeResult{}
	}

	result, perr := ParseSubscribeLegacy(outcome.Body)
	if perr != nil {
		c.mu.Lock()
		c.timetoken = "0"
		c.mu.Unlock()
		if opErr, ok := perr.(*OperationError); ok {
			outcome.Result = opErr.Kind
		} else {
			outcome.Result = ResultSubscribeTimetokenFormatError
		}
		outcome.Err = perr
		return outcome, LegacySubscribeResult{}
	}

	c.mu.Lock()
	c.timetoken = result.Timetoken
	c.mu.Unlock()

	for i, payload := range result.Messages {
		channel := ""
		if i < len(result.Channels) {
			channel = result.Channels[i]
		} else if len(channels) == 1 {
			channel = channels[0]
		}
		_ = c.bus.Publish(SubscribeMessage{Channel: channel, Subscription: channel, Payload: payload, Type: MessageTypePublished})
	}
	return outcome, result
}

// SubscribeChannel returns a channel of decoded [SubscribeMessage] values
// for name, fed by every call to [Context.Subscribe] (sync) or by the
// callback backend's [*Watcher] (async) as long as ctx stays alive.
func (c *Context) SubscribeChannel(ctx context.Context, name string) (<-chan SubscribeMessage, error) {
	return c.bus.Subscribe(ctx, name)
}

// Heartbeat announces presence on channels/groups without affecting the
// subscribe loop's timetoken cursor.
func (c *Context) Heartbeat(ctx context.Context, channels, groups []string, period int, state map[string]any) Outcome {
	m, url, body, err := buildHeartbeat(c.cfg, channels, groups, period, state)
	if err != nil {
		return c.failBuild(TransactionHeartbeat, err)
	}
	return Await(ctx, c, TransactionHeartbeat, EndpointGroupPresence, m, url, body)
}

// Leave announces departure from channels/groups (§4.C11).
func (c *Context) Leave(ctx context.Context, channels, groups []string) Outcome {
	m, url, body, err := buildLeave(c.cfg, channels, groups)
	if err != nil {
		return c.failBuild(TransactionLeave, err)
	}
	return Await(ctx, c, TransactionLeave, EndpointGroupPresence, m, url, body)
}

// HereNow reports current occupancy of channels.
func (c *Context) HereNow(ctx context.Context, channels []string, includeUUIDs, includeState bool) Outcome {
	m, url, body, err := buildHereNow(c.cfg, channels, includeUUIDs, includeState)
	if err != nil {
		return c.failBuild(TransactionHereNow, err)
	}
	return Await(ctx, c, TransactionHereNow, EndpointGroupPresence, m, url, body)
}

// SetState sets this client's per-channel presence state.
func (c *Context) SetState(ctx context.Context, channels, groups []string, state map[string]any) Outcome {
	m, url, body, err := buildSetState(c.cfg, channels, groups, state)
	if err != nil {
		return c.failBuild(TransactionSetState, err)
	}
	return Await(ctx, c, TransactionSetState, EndpointGroupPresence, m, url, body)
}

// GetState reads a client's per-channel presence state; uuid defaults to
// this context's own [Config.UserID] when empty.
func (c *Context) GetState(ctx context.Context, channels, groups []string, uuid string) Outcome {
	m, url, body, err := buildGetState(c.cfg, channels, groups, uuid)
	if err != nil {
		return c.failBuild(TransactionGetState, err)
	}
	return Await(ctx, c, TransactionGetState, EndpointGroupPresence, m, url, body)
}

// History fetches legacy single-channel history.
func (c *Context) History(ctx context.Context, channel string, count int, reverse bool, start, end string) Outcome {
	m, url, body, err := buildHistory(c.cfg, channel, count, reverse, start, end)
	if err != nil {
		return c.failBuild(TransactionHistory, err)
	}
	return Await(ctx, c, TransactionHistory, EndpointGroupOther, m, url, body)
}

// FetchHistory fetches multi-channel history with optional metadata.
func (c *Context) FetchHistory(ctx context.Context, channels []string, count int, includeMeta bool, start, end string) Outcome {
	m, url, body, err := buildFetchHistory(c.cfg, channels, count, includeMeta, start, end)
	if err != nil {
		return c.failBuild(TransactionHistory, err)
	}
	return Await(ctx, c, TransactionHistory, EndpointGroupOther, m, url, body)
}

// MessageCounts reports per-channel unread message counts since timetoken.
func (c *Context) MessageCounts(ctx context.Context, channels []string, timetoken string) Outcome {
	m, url, body, err := buildMessageCounts(c.cfg, channels, timetoken)
	if err != nil {
		return c.failBuild(TransactionHistory, err)
	}
	return Await(ctx, c, TransactionHistory, EndpointGroupOther, m, url, body)
}

// DeleteMessages deletes a range of stored messages on channel.
func (c *Context) DeleteMessages(ctx context.Context, channel, start, end string) Outcome {
	m, url, body, err := buildDeleteMessages(c.cfg, channel, start, end)
	if err != nil {
		return c.failBuild(TransactionHistory, err)
	}
	return Await(ctx, c, TransactionHistory, EndpointGroupOther, m, url, body)
}

// SetUUIDMetadata creates or updates uuid's Objects metadata; uuid defaults
// to this context's own [Config.UserID] when empty.
func (c *Context) SetUUIDMetadata(ctx context.Context, uuid string, include []string, metadata []byte) Outcome {
	m, url, body, err := buildSetUUIDMetadata(c.cfg, uuid, include, metadata)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// GetUUIDMetadata reads uuid's Objects metadata.
func (c *Context) GetUUIDMetadata(ctx context.Context, uuid string, include []string) Outcome {
	m, url, body, err := buildGetUUIDMetadata(c.cfg, uuid, include)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// RemoveUUIDMetadata deletes uuid's Objects metadata.
func (c *Context) RemoveUUIDMetadata(ctx context.Context, uuid string) Outcome {
	m, url, body, err := buildRemoveUUIDMetadata(c.cfg, uuid)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// GetAllUUIDMetadata lists uuid metadata across the sub-key.
func (c *Context) GetAllUUIDMetadata(ctx context.Context, include []string, limit int, start, end string, count bool) Outcome {
	m, url, body, err := buildGetAllUUIDMetadata(c.cfg, include, limit, start, end, count)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// SetChannelMetadata creates or updates channel's Objects metadata.
func (c *Context) SetChannelMetadata(ctx context.Context, channel string, include []string, metadata []byte) Outcome {
	m, url, body, err := buildSetChannelMetadata(c.cfg, channel, include, metadata)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// GetChannelMetadata reads channel's Objects metadata.
func (c *Context) GetChannelMetadata(ctx context.Context, channel string, include []string) Outcome {
	m, url, body, err := buildGetChannelMetadata(c.cfg, channel, include)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// RemoveChannelMetadata deletes channel's Objects metadata.
func (c *Context) RemoveChannelMetadata(ctx context.Context, channel string) Outcome {
	m, url, body, err := buildRemoveChannelMetadata(c.cfg, channel)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// GetAllChannelMetadata lists channel metadata across the sub-key.
func (c *Context) GetAllChannelMetadata(ctx context.Context, include []string, limit int, start, end string, count bool) Outcome {
	m, url, body, err := buildGetAllChannelMetadata(c.cfg, include, limit, start, end, count)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// GetMemberships lists the channels uuid belongs to.
func (c *Context) GetMemberships(ctx context.Context, uuid string, include []string, limit int, start, end string, count bool) Outcome {
	m, url, body, err := buildGetMemberships(c.cfg, uuid, include, limit, start, end, count)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// SetMemberships adds, updates, or removes uuid's channel memberships;
// updateObj carries the server's add/update/remove sets as raw JSON.
func (c *Context) SetMemberships(ctx context.Context, uuid string, include []string, updateObj []byte) Outcome {
	m, url, body, err := buildSetMemberships(c.cfg, uuid, include, updateObj)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// GetChannelMembers lists the uuids that belong to channel.
func (c *Context) GetChannelMembers(ctx context.Context, channel string, include []string, limit int, start, end string, count bool) Outcome {
	m, url, body, err := buildGetChannelMembers(c.cfg, channel, include, limit, start, end, count)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// SetChannelMembers adds, updates, or removes channel's uuid members.
func (c *Context) SetChannelMembers(ctx context.Context, channel string, include []string, updateObj []byte) Outcome {
	m, url, body, err := buildSetChannelMembers(c.cfg, channel, include, updateObj)
	if err != nil {
		return c.failBuild(TransactionObjects, err)
	}
	return Await(ctx, c, TransactionObjects, EndpointGroupObjects, m, url, body)
}

// AddMessageAction attaches a reaction to a previously published message.
func (c *Context) AddMessageAction(ctx context.Context, channel, messageTimetoken string, action MessageAction) Outcome {
	m, url, body, err := buildAddMessageAction(c.cfg, channel, messageTimetoken, action)
	if err != nil {
		return c.failBuild(TransactionActions, err)
	}
	return Await(ctx, c, TransactionActions, EndpointGroupObjects, m, url, body)
}

// RemoveMessageAction detaches a previously added reaction.
func (c *Context) RemoveMessageAction(ctx context.Context, channel, messageTimetoken, actionTimetoken string) Outcome {
	m, url, body, err := buildRemoveMessageAction(c.cfg, channel, messageTimetoken, actionTimetoken)
	if err != nil {
		return c.failBuild(TransactionActions, err)
	}
	return Await(ctx, c, TransactionActions, EndpointGroupObjects, m, url, body)
}

// GetMessageActions lists reactions attached to channel's messages.
func (c *Context) GetMessageActions(ctx context.Context, channel, start, end string, limit int) Outcome {
	m, url, body, err := buildGetMessageActions(c.cfg, channel, start, end, limit)
	if err != nil {
		return c.failBuild(TransactionActions, err)
	}
	return Await(ctx, c, TransactionActions, EndpointGroupObjects, m, url, body)
}

// AddChannelsToGroup registers channels under group in the channel-group
// registry.
func (c *Context) AddChannelsToGroup(ctx context.Context, group string, channels []string) Outcome {
	m, url, body, err := buildAddChannelsToGroup(c.cfg, group, channels)
	if err != nil {
		return c.failBuild(TransactionChannelGroup, err)
	}
	return Await(ctx, c, TransactionChannelGroup, EndpointGroupObjects, m, url, body)
}

// RemoveChannelsFromGroup deregisters channels from group.
func (c *Context) RemoveChannelsFromGroup(ctx context.Context, group string, channels []string) Outcome {
	m, url, body, err := buildRemoveChannelsFromGroup(c.cfg, group, channels)
	if err != nil {
		return c.failBuild(TransactionChannelGroup, err)
	}
	return Await(ctx, c, TransactionChannelGroup, EndpointGroupObjects, m, url, body)
}

// ListChannelsInGroup lists group's registered channels.
func (c *Context) ListChannelsInGroup(ctx context.Context, group string) Outcome {
	m, url, body, err := buildListChannelsInGroup(c.cfg, group)
	if err != nil {
		return c.failBuild(TransactionChannelGroup, err)
	}
	return Await(ctx, c, TransactionChannelGroup, EndpointGroupObjects, m, url, body)
}

// DeleteChannelGroup removes group and every channel registered under it.
func (c *Context) DeleteChannelGroup(ctx context.Context, group string) Outcome {
	m, url, body, err := buildDeleteChannelGroup(c.cfg, group)
	if err != nil {
		return c.failBuild(TransactionChannelGroup, err)
	}
	return Await(ctx, c, TransactionChannelGroup, EndpointGroupObjects, m, url, body)
}

// GrantToken issues a signed PAM access token scoped to channels, groups,
// and uuids for ttl, without involving the FSM (token issuance is local
// computation, not a network transaction, per the JWT redesign recorded
// in SPEC_FULL.md's Open Questions).
func (c *Context) GrantToken(channels, groups, uuids []ResourcePermissions, ttl time.Duration, authorizedUUID string) (string, error) {
	return GrantToken(c.cfg, channels, groups, uuids, ttl, authorizedUUID)
}

// RevokeToken invalidates a previously granted token by re-issuing it
// with an immediate expiry.
func (c *Context) RevokeToken(tokenString string) (string, error) {
	return RevokeToken(c.cfg, tokenString)
}

// failBuild converts a build-time error (validation, buffer sizing) into
// the Outcome shape every operation returns, without ever starting the
// FSM — matching the original's "build failures short-circuit before
// state NULL->IDLE" behavior.
func (c *Context) failBuild(kind TransactionKind, err error) Outcome {
	if opErr, ok := err.(*OperationError); ok {
		return Outcome{Kind: kind, Result: opErr.Kind, Err: opErr}
	}
	return Outcome{Kind: kind, Result: ResultFormatError, Err: err}
}
