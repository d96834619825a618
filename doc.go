// SPDX-License-Identifier: GPL-3.0-or-later

// Package pubnub implements a transaction engine for a hosted publish/subscribe
// messaging service: a per-context finite-state machine that formats one
// outbound HTTP request per operation, drives DNS resolution, TCP/TLS connect,
// send, and chunked response receive through a pluggable transport, parses the
// response into operation-typed results, and surfaces the outcome through
// either blocking-await or callback notification semantics.
//
// # Core Abstraction
//
// Every network operation (publish, subscribe, presence, history, object
// metadata, message actions, channel-group administration) is driven by the
// same state machine ([*Context], see fsm.go): one context runs at most one
// in-flight transaction at a time. Access-token grant/revoke ([GrantToken],
// [RevokeToken]) are local JWT operations outside the state machine.
//
// # Available Components
//
// Request/response:
//   - [requestBuilder]: per-operation URL/query assembly, bounded by an
//     optional size budget (C2)
//   - response parsers: per-operation validators over the reply buffer (C3)
//   - [jsonGetObjectValue]/[jsonSkipWhitespace]/[jsonElemEqualsString]:
//     hand-rolled JSON field location without building a DOM (C1)
//
// Transport and resolution:
//   - [Transport]: one blocking RoundTrip per request attempt (C4), default
//     implementation built on [*net.Dialer] and [crypto/tls], following the
//     same [Dialer]/[TLSEngine] abstraction shape as the teacher's
//     connect.go/tls.go
//   - [Resolver]: pluggable name resolution (C5's production consumer);
//     [dnscodec] implements the wire codec and compression-pointer defense by hand
//   - [TimerList] (C6): deadline-ordered list of timers for the callback watcher
//   - [RetryPolicy] (C7): linear/exponential backoff, composed with a
//     [github.com/sony/gobreaker/v2.CircuitBreaker] per endpoint group
//   - subscribe-v2 decoder (C8): lazy iterator over a received envelope array
//
// Notification:
//   - [Await] (sync, C10): runs the transaction on the caller's goroutine
//     until completion
//   - [Watcher] (callback, C10): runs each started transaction on its own
//     goroutine and fires timers from one polling goroutine; decoded
//     messages are dispatched through an internal watermill dispatch bus
//
// # Observability
//
// All components log via [SLogger] (compatible with [log/slog]), following
// the teacher's span-event convention (*Start/*Done pairs carrying localAddr,
// remoteAddr, protocol, t, t0, err, errClass). By default logging is disabled.
//
// # Design Boundaries
//
// This package does not implement a server, a general-purpose HTTP client, or
// a JSON library; transport security (TLS), cryptography (HMAC signing aside),
// and platform GUI/CLI front-ends are out of scope. See SPEC_FULL.md for the
// full component inventory and DESIGN.md for grounding of every part in the
// reference corpus.
package pubnub
