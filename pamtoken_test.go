// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"testing"
	"time"
)

func TestGrantTokenRoundTrips(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	cfg.PAMSigningKey = []byte("test-signing-key")

	channels := []ResourcePermissions{{Resource: "room1", Permissions: PermissionRead | PermissionWrite}}
	tok, err := GrantToken(cfg, channels, nil, nil, time.Hour, "alice")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(cfg, tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %s", claims.Subject)
	}
	if len(claims.Channels) != 1 || claims.Channels[0].Resource != "room1" {
		t.Fatalf("got %+v", claims.Channels)
	}
	if claims.Channels[0].Permissions&PermissionRead == 0 || claims.Channels[0].Permissions&PermissionWrite == 0 {
		t.Fatalf("expected read+write permissions, got %v", claims.Channels[0].Permissions)
	}
}

func TestParseTokenRejectsTamperedSignature(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	cfg.PAMSigningKey = []byte("test-signing-key")
	tok, err := GrantToken(cfg, nil, nil, nil, time.Hour, "alice")
	if err != nil {
		t.Fatal(err)
	}

	otherCfg := NewConfig("pk", "sk")
	otherCfg.PAMSigningKey = []byte("different-key")
	if _, err := ParseToken(otherCfg, tok); err == nil {
		t.Fatal("expected signature verification to fail with a different key")
	}
}

func TestGrantTokenRejectsMissingSigningKey(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	if _, err := GrantToken(cfg, nil, nil, nil, time.Hour, "alice"); err == nil {
		t.Fatal("expected error with no PAM signing key configured")
	}
}

func TestRevokeTokenExpiresImmediately(t *testing.T) {
	cfg := NewConfig("pk", "sk")
	cfg.PAMSigningKey = []byte("test-signing-key")
	tok, err := GrantToken(cfg, nil, nil, nil, time.Hour, "alice")
	if err != nil {
		t.Fatal(err)
	}
	revoked, err := RevokeToken(cfg, tok)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(cfg, revoked); err == nil {
		t.Fatal("expected revoked token to fail verification as expired")
	}
}
