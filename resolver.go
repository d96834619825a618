// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: dnsexchange.go (DNSExchangeLogContext logging shape)

package pubnub

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/pubnub-oss/go-pubnub-core/dnscodec"
)

// Resolver turns a hostname into zero or more addresses (C5's consumer).
//
// Set by [NewConfig] to [NewSystemResolver]; tests substitute a
// [ResolverFunc] that returns canned [*dnscodec.Pool] results to exercise
// retry and error-classification paths without a network.
type Resolver interface {
	Resolve(ctx context.Context, host string) (*dnscodec.Pool, error)
}

// ResolverFunc adapts a plain function to [Resolver].
type ResolverFunc func(ctx context.Context, host string) (*dnscodec.Pool, error)

func (f ResolverFunc) Resolve(ctx context.Context, host string) (*dnscodec.Pool, error) {
	return f(ctx, host)
}

// systemResolver resolves hostnames by sending a hand-encoded DNS-over-UDP
// query (dnscodec.BuildQuery / dnscodec.Decode) to the first nameserver
// that servers returns, asking for A and then AAAA records and merging both
// answers into one pool.
type systemResolver struct {
	servers       func() ([]string, error)
	logger        SLogger
	errClassifier ErrClassifier
	timeNow       func() time.Time
}

// NewSystemResolver returns the default [Resolver], querying the host's
// configured nameservers directly over UDP using [dnscodec].
func NewSystemResolver() Resolver {
	return &systemResolver{
		servers:       systemNameservers,
		logger:        DefaultSLogger(),
		errClassifier: NewErrorClassifier(),
		timeNow:       time.Now,
	}
}

const dnsQueryBufferSize = 512
const dnsResponseBufferSize = 4096

func (r *systemResolver) Resolve(ctx context.Context, host string) (*dnscodec.Pool, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		if ip.Is4() {
			return &dnscodec.Pool{IPv4: []dnscodec.Address{{IP: ip.AsSlice()}}}, nil
		}
		return &dnscodec.Pool{IPv6: []dnscodec.Address{{IP: ip.AsSlice()}}}, nil
	}

	servers, err := r.servers()
	if err != nil || len(servers) == 0 {
		return nil, fmt.Errorf("dnscodec: no nameservers configured: %w", err)
	}

	pool := &dnscodec.Pool{}
	var lastErr error
	for _, qtype := range []dnscodec.QueryType{dnscodec.QueryTypeA, dnscodec.QueryTypeAAAA} {
		p, err := r.exchange(ctx, servers[0], host, qtype)
		if err != nil {
			lastErr = err
			continue
		}
		pool.IPv4 = append(pool.IPv4, p.IPv4...)
		pool.IPv6 = append(pool.IPv6, p.IPv6...)
	}
	if pool.Empty() {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("dnscodec: no addresses found for %q", host)
	}
	return pool, nil
}

func (r *systemResolver) exchange(ctx context.Context, server, host string, qtype dnscodec.QueryType) (*dnscodec.Pool, error) {
	t0 := r.timeNow()
	query := make([]byte, dnsQueryBufferSize)
	n, err := dnscodec.BuildQuery(query, host, qtype)
	if err != nil {
		return nil, err
	}
	query = query[:n]

	logCtx := &DNSExchangeLogContext{
		ErrClassifier:  r.errClassifier,
		Logger:         r.logger,
		Protocol:       "udp",
		RemoteAddr:     server,
		ServerProtocol: "udp",
		TimeNow:        r.timeNow,
	}
	deadline, _ := ctx.Deadline()
	logCtx.LogStart(t0, deadline)

	var rawQuery []byte
	observeQuery := logCtx.MakeQueryObserver(t0, &rawQuery)
	observeResponse := logCtx.MakeResponseObserver(t0, &rawQuery)

	conn, err := (&net.Dialer{}).DialContext(ctx, "udp", server)
	if err != nil {
		logCtx.LogDone(t0, deadline, err)
		return nil, err
	}
	defer conn.Close()

	if !deadline.IsZero() {
		conn.SetDeadline(deadline)
	}
	observeQuery(query)
	if _, err := conn.Write(query); err != nil {
		logCtx.LogDone(t0, deadline, err)
		return nil, err
	}

	resp := make([]byte, dnsResponseBufferSize)
	n, err = conn.Read(resp)
	if err != nil {
		logCtx.LogDone(t0, deadline, err)
		return nil, err
	}
	observeResponse(resp[:n])

	pool, err := dnscodec.Decode(resp[:n])
	logCtx.LogDone(t0, deadline, err)
	return pool, err
}

// systemNameservers reads /etc/resolv.conf for "nameserver" lines, falling
// back to the well-known public resolvers when the file is absent (e.g. on
// platforms without a resolv.conf).
func systemNameservers() ([]string, error) {
	f, err := os.Open("/etc/resolv.conf")
	if err != nil {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}, nil
	}
	defer f.Close()

	var servers []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "nameserver" {
			servers = append(servers, net.JoinHostPort(fields[1], "53"))
		}
	}
	if len(servers) == 0 {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}, nil
	}
	return servers, nil
}
