// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/pubnub-oss/go-pubnub-core/dnscodec"
)

type recordingSLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *recordingSLogger) Debug(msg string, args ...any) {}

func (l *recordingSLogger) Info(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingSLogger) seen(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.infos {
		if m == msg {
			return true
		}
	}
	return false
}

func TestHTTPTransportAdapterLogsBodyStreamEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	cfg := NewConfig("pk", "sk")
	cfg.Origin = srv.URL
	cfg.TLSEnable = false
	logger := &recordingSLogger{}

	transport := NewTransport(cfg, logger)
	status, body, _, err := transport.RoundTrip(context.Background(), "GET", srv.URL+"/x", nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != 200 || string(body) != `{"ok":true}` {
		t.Fatalf("unexpected response: %d %s", status, body)
	}
	if !logger.seen("httpBodyStreamStart") || !logger.seen("httpBodyStreamDone") {
		t.Fatalf("expected httpBodyStreamStart/Done to be logged, got %v", logger.infos)
	}
}

func TestParseRetryAfterHandlesDeltaSecondsAndDates(t *testing.T) {
	fixedNow := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	if got := parseRetryAfter("", fixedNow); got != 0 {
		t.Fatalf("expected 0 for empty header, got %v", got)
	}
	if got := parseRetryAfter("120", fixedNow); got != 120*time.Second {
		t.Fatalf("expected 120s, got %v", got)
	}
	if got := parseRetryAfter("0", fixedNow); got != 0 {
		t.Fatalf("expected 0 for non-positive delta, got %v", got)
	}
	future := fixedNow().Add(30 * time.Second).Format(http.TimeFormat)
	if got := parseRetryAfter(future, fixedNow); got <= 0 {
		t.Fatalf("expected positive duration for future HTTP-date, got %v", got)
	}
	past := fixedNow().Add(-30 * time.Second).Format(http.TimeFormat)
	if got := parseRetryAfter(past, fixedNow); got != 0 {
		t.Fatalf("expected 0 for past HTTP-date, got %v", got)
	}
}

func TestErrPhaseRecoversTaggedPhase(t *testing.T) {
	wrapped := &phaseError{phase: phaseConnect, err: errors.New("refused")}
	if phase, ok := errPhase(wrapped); !ok || phase != phaseConnect {
		t.Fatalf("expected phaseConnect, got %v ok=%v", phase, ok)
	}
	if _, ok := errPhase(errors.New("plain")); ok {
		t.Fatal("expected no phase for an untagged error")
	}
}

var errResolveShouldNotBeCalled = errors.New("resolver should not be called when StaticEndpoint is set")

func TestResolvingDialerPrefersStaticEndpoint(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	cfg.Resolver = ResolverFunc(func(ctx context.Context, host string) (*dnscodec.Pool, error) {
		return nil, errResolveShouldNotBeCalled
	})
	endpoint := netip.MustParseAddrPort("127.0.0.1:9999")
	cfg.StaticEndpoint = &endpoint

	dialer := &resolvingDialer{cfg: cfg, logger: DefaultSLogger()}
	got, err := dialer.resolve(context.Background(), "example.com:443")
	if err != nil {
		t.Fatal(err)
	}
	if got != endpoint {
		t.Fatalf("expected %v, got %v", endpoint, got)
	}
}
