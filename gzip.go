// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"bytes"
	"compress/gzip"
)

// minCompressionRatio is the gzip minimum-compression heuristic (§6):
// a compressed body is only sent when it is at least this much smaller than
// the original, expressed as "compressed / original" — below this ratio the
// CPU cost of compressing is not worth the bandwidth saved.
const minCompressionRatio = 0.90

// maybeGzip compresses body using the standard 10-byte GZIP header / DEFLATE
// payload / 8-byte CRC32+length footer ([compress/gzip], stdlib — this is a
// generic byte-transform with no domain semantics, so no third-party
// compression library from the corpus is a better fit than the standard
// library's RFC-1952 implementation).
//
// Returns the original body and false when compression does not clear
// [minCompressionRatio].
func maybeGzip(body []byte) (out []byte, compressed bool) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(body); err != nil {
		return body, false
	}
	if err := w.Close(); err != nil {
		return body, false
	}
	if len(body) == 0 || float64(buf.Len())/float64(len(body)) > minCompressionRatio {
		return body, false
	}
	return buf.Bytes(), true
}
