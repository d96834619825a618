// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import "strings"

// percentEncodeSafe are the bytes the request builder never encodes,
// per spec.md §4.C2: "A–Za–z0–9-_.~,=:;@[]".
const percentEncodeSafe = "-_.~,=:;@[]"

func isPercentEncodeSafe(b byte) bool {
	if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') {
		return true
	}
	return strings.IndexByte(percentEncodeSafe, b) >= 0
}

const hexDigits = "0123456789ABCDEF"

// percentEncode appends the percent-encoded form of s to dst and returns the
// extended slice. Every byte outside [percentEncodeSafe] is encoded as
// "%XX" using uppercase hex digits, per spec.md §4.C2/§6.
func percentEncode(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isPercentEncodeSafe(b) {
			dst = append(dst, b)
			continue
		}
		dst = append(dst, '%', hexDigits[b>>4], hexDigits[b&0x0F])
	}
	return dst
}

// percentEncodeString is a convenience wrapper returning a new string.
func percentEncodeString(s string) string {
	return string(percentEncode(make([]byte, 0, len(s)), s))
}

// percentDecode reverses [percentEncode]; nothing in the package calls it.
func percentDecode(s string) (string, bool) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			out = append(out, s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", false
		}
		hi, ok1 := hexVal(s[i+1])
		lo, ok2 := hexVal(s[i+2])
		if !ok1 || !ok2 {
			return "", false
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	return string(out), true
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
}

// joinComma joins an ordered sequence of strings with commas, deferring the
// "String parameter lists with commas" design note (§9): callers pass slices,
// only the request builder knows about the wire's comma-joined representation.
func joinComma(items []string) string {
	return strings.Join(items, ",")
}

// splitComma is joinComma's inverse, used to decode the comma-joined
// channel/group lists a legacy subscribe reply echoes back. An empty
// string yields no items, not one empty item.
func splitComma(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
