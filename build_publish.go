// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "encoding/json"

// PublishMethod selects the HTTP verb/encoding used for a publish (§4.C2).
type PublishMethod int

const (
	PublishGET PublishMethod = iota
	PublishPOST
	PublishPOSTGzip
)

// buildPublish composes a publish request.
//
// GET: /publish/{pk}/{sk}/0/{channel}/0/{url-encoded message}
// POST/POST+gzip: /publish/{pk}/{sk}/0/{channel}/0 with the message in the body.
func buildPublish(cfg *Config, bufferSize int, channel string, message any, method PublishMethod, meta map[string]string) (string, string, []byte, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return "", "", nil, err
	}
	if kind, verr := validateParams(cfg, publishParams{Channel: channel, Message: payload}); verr != nil {
		return "", "", nil, &OperationError{Kind: kind, Cause: verr}
	}

	b := newRequestBuilder(cfg, "GET", bufferSize)
	b.Path("publish").Path(cfg.PublishKey).Path(cfg.SubscribeKey).Path("0").PathEncoded(channel).Path("0")

	switch method {
	case PublishGET:
		b.PathEncoded(string(payload))
	case PublishPOST, PublishPOSTGzip:
		b.method = "POST"
		body := payload
		if method == PublishPOSTGzip {
			if gz, ok := maybeGzip(payload); ok {
				body = gz
			}
		}
		b.Body(body)
	}
	b.Query("uuid", cfg.UserID).Query("auth", cfg.AuthToken)
	if meta != nil {
		if encoded, merr := json.Marshal(meta); merr == nil {
			b.Query("meta", string(encoded))
		}
	}
	return b.Build(cfg.TimeNow())
}

// OperationError wraps a [ResultKind] that was determined before a request
// was ever sent (validation failures, buffer-too-small, ...).
type OperationError struct {
	Kind  ResultKind
	Cause error
}

func (e *OperationError) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Cause.Error()
	}
	return e.Kind.String()
}

func (e *OperationError) Unwrap() error { return e.Cause }
