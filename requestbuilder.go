// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrTxBufferTooSmall is returned by [*requestBuilder.Build] when the
// composed request exceeds the scratch buffer (§4.C2).
type ErrTxBufferTooSmall struct {
	Needed, Have int
}

func (e *ErrTxBufferTooSmall) Error() string {
	return fmt.Sprintf("tx buffer too small: need at least %d bytes, have %d", e.Needed, e.Have)
}

// queryParam is one query-string parameter in insertion order.
type queryParam struct {
	Key, Value string
}

// requestBuilder composes one outbound HTTP request (method, path, query,
// optional body) into a bounded scratch buffer, matching spec.md §4.C2: a
// fixed-size destination, percent-encoding, and optional request signing.
//
// The zero value is not ready to use; construct with [newRequestBuilder].
type requestBuilder struct {
	cfg        *Config
	method     string
	pathParts  []string
	params     []queryParam
	body       []byte
	gzipBody   bool
	bufferSize int
}

func newRequestBuilder(cfg *Config, method string, bufferSize int) *requestBuilder {
	return &requestBuilder{cfg: cfg, method: method, bufferSize: bufferSize}
}

// Path appends a raw (already percent-encode-safe or to-be-encoded)
// component to the URL path.
func (b *requestBuilder) Path(component string) *requestBuilder {
	b.pathParts = append(b.pathParts, component)
	return b
}

// PathEncoded appends a component, percent-encoding it first.
func (b *requestBuilder) PathEncoded(component string) *requestBuilder {
	b.pathParts = append(b.pathParts, percentEncodeString(component))
	return b
}

// Query appends a query parameter in insertion order; empty values are
// dropped (an omitted query parameter, not an empty one).
func (b *requestBuilder) Query(key, value string) *requestBuilder {
	if value == "" {
		return b
	}
	b.params = append(b.params, queryParam{key, value})
	return b
}

// QueryBool appends "key=true" when value is true and nothing otherwise.
func (b *requestBuilder) QueryBool(key string, value bool) *requestBuilder {
	if !value {
		return b
	}
	return b.Query(key, "true")
}

// QueryInt appends a query parameter from an int, skipping the zero value.
func (b *requestBuilder) QueryInt(key string, value int) *requestBuilder {
	if value == 0 {
		return b
	}
	return b.Query(key, strconv.Itoa(value))
}

// Body sets a raw request body (used by POST publish / objects / PAM).
func (b *requestBuilder) Body(body []byte) *requestBuilder {
	b.body = body
	return b
}

// Build assembles the method, URL (with auth/signature resolved), and body.
//
// Returns empty results and [*ErrTxBufferTooSmall] if the composed URL and
// body together exceed b.bufferSize; a bufferSize of 0 disables the check.
func (b *requestBuilder) Build(now time.Time) (method, url string, body []byte, err error) {
	path := "/" + strings.Join(b.pathParts, "/")

	params := append([]queryParam(nil), b.params...)
	signed := b.cfg.SecretKey != ""
	if signed {
		params = append(params, queryParam{"timestamp", strconv.FormatInt(now.Unix(), 10)})
		if b.cfg.AuthToken != "" {
			params = removeParam(params, "auth")
		}
		sort.Slice(params, func(i, j int) bool { return params[i].Key < params[j].Key })
		sig := signRequest(b.cfg.SecretKey, b.method, b.cfg.SubscribeKey, path, params)
		params = append(params, queryParam{"signature", sig})
	} else if b.cfg.AuthToken != "" {
		params = setParam(params, "auth", b.cfg.AuthToken)
	}

	var sb strings.Builder
	sb.WriteString(b.cfg.Origin)
	sb.WriteString(path)
	if len(params) > 0 {
		sb.WriteByte('?')
		for i, p := range params {
			if i > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(p.Key)
			sb.WriteByte('=')
			sb.WriteString(percentEncodeString(p.Value))
		}
	}
	url = sb.String()

	needed := len(url) + len(b.body)
	if b.bufferSize > 0 && needed > b.bufferSize {
		return "", "", nil, &ErrTxBufferTooSmall{Needed: needed, Have: b.bufferSize}
	}
	return b.method, url, b.body, nil
}

func removeParam(params []queryParam, key string) []queryParam {
	out := params[:0:0]
	for _, p := range params {
		if p.Key != key {
			out = append(out, p)
		}
	}
	return out
}

func setParam(params []queryParam, key, value string) []queryParam {
	for i, p := range params {
		if p.Key == key {
			params[i].Value = value
			return params
		}
	}
	return append(params, queryParam{key, value})
}

// signRequest computes the PubNub-style canonical-string HMAC signature:
// sub-key, path, and the sorted, percent-encoded query string are joined by
// newlines and signed with SHA-256 HMAC over the secret key.
func signRequest(secretKey, method, subKey, path string, params []queryParam) string {
	var qs strings.Builder
	for i, p := range params {
		if i > 0 {
			qs.WriteByte('&')
		}
		qs.WriteString(p.Key)
		qs.WriteByte('=')
		qs.WriteString(percentEncodeString(p.Value))
	}
	canonical := strings.Join([]string{subKey, path, qs.String()}, "\n")
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(canonical))
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(mac.Sum(nil))
}
