// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/core/pubnub_pam.c (grant/revoke permission
// bitmasks, resource TTL) and the SPEC_FULL.md Open Question decision to
// redesign the original's opaque CBOR/base64 token into a self-describing
// JWT.

package pubnub

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Permission is a single bit of the PAM permission bitmask (§4.C2's
// grant/revoke operations), matching the original's read/write/manage/
// delete/get/update/join permission set.
type Permission uint8

const (
	PermissionRead Permission = 1 << iota
	PermissionWrite
	PermissionManage
	PermissionDelete
	PermissionGet
	PermissionUpdate
	PermissionJoin
)

// ResourcePermissions grants a [Permission] bitmask to one named
// channel, channel group, or UUID resource.
type ResourcePermissions struct {
	Resource    string
	Permissions Permission
}

// accessClaims is the JWT payload carrying PAM grants, embedding the
// standard registered claims (exp, iat, sub) alongside the
// resource-permission lists.
type accessClaims struct {
	jwt.RegisteredClaims
	Channels      []ResourcePermissions `json:"chan,omitempty"`
	ChannelGroups []ResourcePermissions `json:"grp,omitempty"`
	UUIDs         []ResourcePermissions `json:"uuid,omitempty"`
}

// GrantToken issues a signed access token scoped to the given resources,
// valid for ttl, signed with [Config.PAMSigningKey] (falling back to
// []byte(Config.SecretKey) when unset).
func GrantToken(cfg *Config, channels, groups, uuids []ResourcePermissions, ttl time.Duration, authorizedUUID string) (string, error) {
	key := pamKey(cfg)
	if len(key) == 0 {
		return "", &OperationError{Kind: ResultGrantTokenError, Cause: errors.New("pubnub: no PAM signing key configured")}
	}
	now := cfg.TimeNow()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authorizedUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    cfg.SubscribeKey,
		},
		Channels:      channels,
		ChannelGroups: groups,
		UUIDs:         uuids,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", &OperationError{Kind: ResultGrantTokenError, Cause: err}
	}
	return signed, nil
}

// ParseToken verifies and decodes a token issued by [GrantToken],
// returning [ResultAccessDenied] if the signature or expiry check fails.
func ParseToken(cfg *Config, tokenString string) (*accessClaims, error) {
	key := pamKey(cfg)
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("pubnub: unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, &OperationError{Kind: ResultAccessDenied, Cause: err}
	}
	return claims, nil
}

// RevokeToken marks tokenString revoked by re-issuing it with zero TTL,
// matching the original's revoke-by-reissue semantics for self-contained
// tokens (there is no server-side blacklist to call out to from this
// client-side encoder).
func RevokeToken(cfg *Config, tokenString string) (string, error) {
	claims, err := ParseToken(cfg, tokenString)
	if err != nil {
		return "", err
	}
	claims.ExpiresAt = jwt.NewNumericDate(cfg.TimeNow())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(pamKey(cfg))
	if err != nil {
		return "", &OperationError{Kind: ResultRevokeTokenError, Cause: err}
	}
	return signed, nil
}

func pamKey(cfg *Config) []byte {
	if len(cfg.PAMSigningKey) > 0 {
		return cfg.PAMSigningKey
	}
	return []byte(cfg.SecretKey)
}
