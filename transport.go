// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: connect.go, tls.go, observeconn.go, cancelwatch.go (the
// resolve/connect/handshake/observe pipeline), composed here into one
// HTTP round-tripper.

package pubnub

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"time"
)

// transactionPhase identifies which leg of a transaction an error occurred
// in, for [classifyResult].
type transactionPhase int

const (
	phaseResolve transactionPhase = iota
	phaseConnect
	phaseTLS
	phaseSend
	phaseReceive
)

// phaseError tags an error with the dial leg it occurred in, so
// [classifyResult] can tell a failed connect from a failed send instead of
// treating every transport-level error the same way.
type phaseError struct {
	phase transactionPhase
	err   error
}

func (e *phaseError) Error() string { return e.err.Error() }
func (e *phaseError) Unwrap() error { return e.err }

// errPhase extracts the [transactionPhase] a [*phaseError] was tagged with,
// unwrapping through whatever net/http wrapped it in (e.g. *url.Error).
func errPhase(err error) (transactionPhase, bool) {
	var pe *phaseError
	if errors.As(err, &pe) {
		return pe.phase, true
	}
	return 0, false
}

// Transport performs one request/response round trip (C4).
//
// The non-blocking PAL the original C library implements as explicit
// start/check state pairs (resolve-start/check, connect-start/check,
// send/send-status, ...) is expressed here as a single blocking call that
// an [Context]'s goroutine drives — Go's runtime already multiplexes
// goroutines onto a small number of OS threads via its own non-blocking
// network poller, so a literal re-implementation of start/check polling
// would only duplicate what `net`/`net/http` already provide. The
// non-blocking *behavior* the FSM relies on (many transactions in flight
// without one blocking another) comes from one goroutine per transaction,
// not from hand-rolled polling.
type Transport interface {
	RoundTrip(ctx context.Context, method, url string, body []byte) (status int, respBody []byte, retryAfter time.Duration, err error)
}

// NewTransport builds the default [Transport]: an [*http.Client] whose
// dial path runs cfg.Resolver (or [NewEndpointFunc] when
// cfg.StaticEndpoint is set), [*ConnectFunc], [*ObserveConnFunc], and
// [*CancelWatchFunc] in sequence, followed by [*TLSHandshakeFunc] for TLS
// dials.
func NewTransport(cfg *Config, logger SLogger) Transport {
	dial := &resolvingDialer{cfg: cfg, logger: logger}
	httpTransport := &http.Transport{
		DialContext:         dial.dialContext,
		DialTLSContext:      dial.dialTLSContext,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   !cfg.KeepAlive,
	}
	return &httpTransportAdapter{
		client: &http.Client{Transport: httpTransport, Timeout: 0},
		cfg:    cfg,
		logger: logger,
	}
}

type httpTransportAdapter struct {
	client *http.Client
	cfg    *Config
	logger SLogger
}

func (t *httpTransportAdapter) RoundTrip(ctx context.Context, method, url string, body []byte) (int, []byte, time.Duration, error) {
	var reqBody io.Reader
	if len(body) > 0 {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("User-Agent", t.cfg.UserAgent+"/"+t.cfg.SDKName)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	wrapped := httpBodyWrap(resp.Body, t.cfg.ErrClassifier, "", t.logger, "tcp", req.URL.Host, t.cfg.TimeNow)
	defer wrapped.Close()

	respBody, err := io.ReadAll(wrapped)
	if err != nil {
		return resp.StatusCode, nil, 0, err
	}
	retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"), t.cfg.TimeNow)
	return resp.StatusCode, respBody, retryAfter, nil
}

// parseRetryAfter decodes a Retry-After header, which the server sends
// either as a delta in seconds or as an HTTP-date (§4.C6/§4.C7: "a
// Retry-After header on 429 supersedes the computed delay").
func parseRetryAfter(v string, now func() time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now()); d > 0 {
			return d
		}
	}
	return 0
}

// resolvingDialer wires [Config.Resolver] into net/http's connection pool:
// it resolves the host itself (via dnscodec) instead of letting the OS
// resolver run, so the DNS codec is always exercised on the production
// path, not only in its own tests.
type resolvingDialer struct {
	cfg    *Config
	logger SLogger
}

func (d *resolvingDialer) resolve(ctx context.Context, addr string) (netip.AddrPort, error) {
	if d.cfg.StaticEndpoint != nil {
		return NewEndpointFunc(*d.cfg.StaticEndpoint).Call(ctx, Unit{})
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return netip.AddrPort{}, &phaseError{phase: phaseResolve, err: err}
	}
	var port uint16
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return netip.AddrPort{}, &phaseError{phase: phaseResolve, err: err}
	}

	pool, err := d.cfg.Resolver.Resolve(ctx, host)
	if err != nil {
		return netip.AddrPort{}, &phaseError{phase: phaseResolve, err: err}
	}
	if len(pool.IPv4) > 0 {
		ip, ok := netip.AddrFromSlice(pool.IPv4[0].IP.To4())
		if ok {
			return netip.AddrPortFrom(ip, port), nil
		}
	}
	if len(pool.IPv6) > 0 {
		ip, ok := netip.AddrFromSlice(pool.IPv6[0].IP.To16())
		if ok {
			return netip.AddrPortFrom(ip, port), nil
		}
	}
	return netip.AddrPort{}, &phaseError{phase: phaseResolve, err: fmt.Errorf("dnscodec: no usable address for %q", host)}
}

func (d *resolvingDialer) dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	endpoint, err := d.resolve(ctx, addr)
	if err != nil {
		return nil, err
	}
	connectCtx := ctx
	if d.cfg.WaitConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, d.cfg.WaitConnectTimeout)
		defer cancel()
	}
	connectFn := NewConnectFunc(d.cfg, network, d.logger)
	conn, err := connectFn.Call(connectCtx, endpoint)
	if err != nil {
		return nil, &phaseError{phase: phaseConnect, err: err}
	}
	observed, _ := NewObserveConnFunc(d.cfg, d.logger).Call(ctx, conn)
	watched, _ := NewCancelWatchFunc().Call(ctx, observed)
	return watched, nil
}

func (d *resolvingDialer) dialTLSContext(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := d.dialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)
	tlsConfig := d.cfg.TLSConfig.Clone()
	if tlsConfig.ServerName == "" {
		tlsConfig.ServerName = host
	}
	tlsConn, err := NewTLSHandshakeFunc(d.cfg, tlsConfig, d.logger).Call(ctx, conn)
	if err != nil {
		return nil, &phaseError{phase: phaseTLS, err: err}
	}
	return tlsConn.(net.Conn), nil
}
