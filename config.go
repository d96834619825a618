// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"crypto/tls"
	"net"
	"net/netip"
	"time"

	validatorpkg "github.com/go-playground/validator/v10"
)

// Config holds the common, per-client configuration for pubnub operations.
//
// Pass this to [NewContext] and [NewPool] to pre-wire dependencies. All
// fields have sensible defaults set by [NewConfig]; fields are safe to
// override after construction but before the first operation is started.
//
// This mirrors the teacher's [Config]/[NewConfig] shape (collaborators with
// defaults, overridable by the caller) generalized to the full set of
// per-client knobs spec.md §3 and §6 enumerate.
type Config struct {
	// PublishKey and SubscribeKey are the account credentials used to
	// compose every request path (§4.C2).
	PublishKey   string
	SubscribeKey string

	// SecretKey, when non-empty, enables request signing: query parameters
	// are sorted, a timestamp is added, and an HMAC signature replaces the
	// auth parameter (§4.C2).
	SecretKey string

	// AuthToken is sent as the "auth" query parameter when SecretKey is empty.
	AuthToken string

	// UserID identifies the client to presence and objects operations.
	//
	// Set by [NewConfig] to a random UUID (via [NewTransactionID]) if left empty.
	UserID string

	// Origin is the protocol+host of the server, e.g. "https://ps.pndsn.com".
	//
	// Set by [NewConfig] to the production origin.
	Origin string

	// Dialer is used by the default [Transport] implementation.
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// Resolver resolves hostnames to addresses ahead of connect (C5's
	// consumer). Set by [NewConfig] to [NewSystemResolver].
	Resolver Resolver

	// StaticEndpoint, when set, bypasses Resolver entirely via
	// [NewEndpointFunc]: every dial uses this address instead of resolving
	// Origin's host. Useful for pinning to a private ingress or a test
	// server's loopback address.
	StaticEndpoint *netip.AddrPort

	// TLSEnable records whether TLS is wanted. The default transport does
	// not read it: it uses TLS exactly when the request URL (from Origin)
	// is https.
	TLSEnable bool

	// TLSFallbackOnError records whether a plaintext retry after a failed
	// TLS handshake is allowed. The default transport does not read it and
	// never falls back to plaintext.
	TLSFallbackOnError bool

	// TLSReuseSession records whether TLS session reuse is wanted. The
	// default transport does not read it; session reuse follows
	// TLSConfig.ClientSessionCache.
	TLSReuseSession bool

	// TLSConfig is the base TLS configuration for the default transport.
	TLSConfig *tls.Config

	// TransactionTimeout bounds an entire operation, end to end.
	//
	// Set by [NewConfig] to 10s for most operations; [*Context] overrides
	// this to 310s when starting a subscribe (§5 Timeouts).
	TransactionTimeout time.Duration

	// WaitConnectTimeout bounds the TCP connect phase specifically.
	WaitConnectTimeout time.Duration

	// Retry is the retry policy (C7). Set by [NewConfig] to [NewRetryPolicy]
	// with the spec's exponential defaults.
	Retry *RetryPolicy

	// HeartbeatDefaultPeriod is the auto-heartbeat period used when the
	// caller does not specify one. Per spec.md's Open Question, this is a
	// separate knob from [Config.HeartbeatMinPeriod].
	HeartbeatDefaultPeriod time.Duration

	// HeartbeatMinPeriod is the server-contract floor; periods below this
	// are clamped up (§4.C11).
	HeartbeatMinPeriod time.Duration

	// KeepAlive indicates whether connections may be reused across
	// transactions by the default [Transport].
	KeepAlive bool

	// ErrClassifier maps low-level errors to short labels for structured
	// logging.
	//
	// Set by [NewConfig] to [NewErrorClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewConfig] to [DefaultSLogger].
	Logger SLogger

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time

	// Validate validates per-operation parameters (channel name shape, key
	// presence) before a request is built (C2).
	//
	// Set by [NewConfig] to a shared [*validatorpkg.Validate] instance.
	Validate *validatorpkg.Validate

	// PAMSigningKey signs and verifies grant/revoke access tokens (see pamtoken.go).
	//
	// Defaults to []byte(SecretKey) if left nil when first used.
	PAMSigningKey []byte

	// UserAgent and SDKName are joined as "UserAgent/SDKName" into the
	// User-Agent header sent by the default transport.
	UserAgent string
	SDKName   string

	// Assert is the pluggable assertion handler for fatal internal-invariant
	// violations (§7). Set by [NewConfig] to [AssertAbort].
	Assert AssertHandler

	// Metrics, when non-nil, receives Prometheus observations (metrics.go).
	Metrics *Metrics
}

// NewConfig creates a [*Config] with sensible defaults for the given keys.
func NewConfig(publishKey, subscribeKey string) *Config {
	v := validatorpkg.New()
	registerChannelNameValidation(v)
	return &Config{
		PublishKey:             publishKey,
		SubscribeKey:           subscribeKey,
		UserID:                 NewTransactionID(),
		Origin:                 "https://ps.pndsn.com",
		Dialer:                 &net.Dialer{},
		Resolver:               NewSystemResolver(),
		TLSEnable:              true,
		TLSFallbackOnError:     false,
		TLSReuseSession:        true,
		TLSConfig:              &tls.Config{MinVersion: tls.VersionTLS12},
		TransactionTimeout:     10 * time.Second,
		WaitConnectTimeout:     5 * time.Second,
		Retry:                  NewRetryPolicy(RetryExponential),
		HeartbeatDefaultPeriod: 300 * time.Second,
		HeartbeatMinPeriod:     20 * time.Second,
		KeepAlive:              true,
		ErrClassifier:          NewErrorClassifier(),
		Logger:                 DefaultSLogger(),
		TimeNow:                time.Now,
		Validate:               v,
		UserAgent:              "pubnub-go-core",
		SDKName:                "go-core",
		Assert:                 AssertAbort,
	}
}
