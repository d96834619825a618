// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/tomtom215-cartographus's koanf env+file provider
// stack (knadh/koanf/v2, providers/env, providers/file, parsers/yaml).

package pubnub

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileSettings is the subset of [Config] that [LoadConfig] can populate
// from a YAML file or environment variables; credentials and tuning
// knobs only, never pluggable collaborators (those are always set in
// code, per the teacher's `Config`/`NewConfig` split between
// data and behavior).
type FileSettings struct {
	PublishKey             string        `koanf:"publish_key"`
	SubscribeKey           string        `koanf:"subscribe_key"`
	SecretKey              string        `koanf:"secret_key"`
	AuthToken              string        `koanf:"auth_token"`
	UserID                 string        `koanf:"user_id"`
	Origin                 string        `koanf:"origin"`
	TLSEnable              bool          `koanf:"tls_enable"`
	TransactionTimeout     time.Duration `koanf:"transaction_timeout"`
	HeartbeatDefaultPeriod time.Duration `koanf:"heartbeat_default_period"`
	HeartbeatMinPeriod     time.Duration `koanf:"heartbeat_min_period"`
}

// LoadConfig layers a YAML file (if path is non-empty) and then
// PUBNUB_-prefixed environment variables on top of [NewConfig]'s
// defaults, returning a ready-to-use [*Config].
//
// Environment variables take precedence over the file, matching the
// layered-provider order `tomtom215-cartographus` uses for its own
// koanf-based configuration.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("pubnub: loading config file %q: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("PUBNUB_", ".", envKeyTransform), nil); err != nil {
		return nil, fmt.Errorf("pubnub: loading environment: %w", err)
	}

	var settings FileSettings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, fmt.Errorf("pubnub: unmarshalling config: %w", err)
	}

	cfg := NewConfig(settings.PublishKey, settings.SubscribeKey)
	if settings.SecretKey != "" {
		cfg.SecretKey = settings.SecretKey
	}
	if settings.AuthToken != "" {
		cfg.AuthToken = settings.AuthToken
	}
	if settings.UserID != "" {
		cfg.UserID = settings.UserID
	}
	if settings.Origin != "" {
		cfg.Origin = settings.Origin
	}
	if k.Exists("tls_enable") {
		cfg.TLSEnable = settings.TLSEnable
	}
	if settings.TransactionTimeout > 0 {
		cfg.TransactionTimeout = settings.TransactionTimeout
	}
	if settings.HeartbeatDefaultPeriod > 0 {
		cfg.HeartbeatDefaultPeriod = settings.HeartbeatDefaultPeriod
	}
	if settings.HeartbeatMinPeriod > 0 {
		cfg.HeartbeatMinPeriod = settings.HeartbeatMinPeriod
	}
	return cfg, nil
}

// envKeyTransform turns PUBNUB_SUBSCRIBE_KEY into "subscribe_key", the
// koanf tag shape [FileSettings] declares.
func envKeyTransform(s string) string {
	out := make([]byte, 0, len(s))
	for i := len("PUBNUB_"); i < len(s); i++ {
		b := s[i]
		if b >= 'A' && b <= 'Z' {
			b = b - 'A' + 'a'
		}
		out = append(out, b)
	}
	return string(out)
}
