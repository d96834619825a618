// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_sync_subscribe_loop.c and
// original_source/core/pubnub_ntf_sync.c (blocking await with a
// stopwatch-driven forced timeout).

package pubnub

import "context"

// Await runs the given transaction on c and blocks the calling goroutine
// until it reaches a terminal state, or until [Config.TransactionTimeout]
// (310s for a subscribe) elapses, whichever comes first (§4.C10 sync
// backend).
//
// This is the sync notification backend: it runs [Context.runTransaction]
// directly on the caller's goroutine rather than handing the context to a
// [Watcher], matching the original's pubnub_await — one thread drives the
// FSM to completion with no separate polling task.
func Await(ctx context.Context, c *Context, kind TransactionKind, group EndpointGroup, method, url string, body []byte) Outcome {
	return c.runTransaction(ctx, kind, group, method, url, body)
}
