// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/lib/pubnub_dns_codec.c: dns_qname_encode,
// pbdns_prepare_dns_request.

// Package dnscodec implements the run-length-encoded DNS wire format (§4.C5):
// hostname QNAME encoding, header construction, and label decoding with
// bounded pointer-compression following, hand-rolled instead of pulled from
// an off-the-shelf resolver library because the bounded-pass defense against
// compression-pointer cycles is itself one of the testable properties
// (property 6 / scenario 6).
package dnscodec

import "fmt"

// QueryType is the DNS RR type requested (A or AAAA).
type QueryType uint16

const (
	QueryTypeA    QueryType = 1
	QueryTypeAAAA QueryType = 28
)

const (
	headerSize           = 12
	headerIDOffset       = 0
	headerOptionsOffset  = 2
	headerQueryCountOff  = 4
	headerAnswerCountOff = 6
	headerAuthCountOff   = 8
	headerAddCountOff    = 10
	questionDataSize     = 4

	// maxLabelStretch is the longest run between dots a QNAME label may
	// have (6-bit length prefix ceiling).
	maxLabelStretch = 63

	dnsClassInternet = 1

	// queryID is a fixed transaction ID; a single question is sent per
	// message and responses are matched by socket, not by ID, so any
	// constant value works (the original C library uses 33 "in lack of a
	// better ID").
	queryID = 33

	optRecursionDesired = 0x0100
)

// ErrLabelTooLong reports a QNAME stretch exceeding 63 bytes between dots.
type ErrLabelTooLong struct {
	Label  string
	Length int
}

func (e *ErrLabelTooLong) Error() string {
	return fmt.Sprintf("dnscodec: label %q too long (%d > %d)", e.Label, e.Length, maxLabelStretch)
}

// ErrBufferTooSmall reports that buf cannot hold the encoded request.
type ErrBufferTooSmall struct {
	Needed, Have int
}

func (e *ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("dnscodec: buffer too small: need %d bytes, have %d", e.Needed, e.Have)
}

// EncodeQName run-length-encodes host into the PubNub DNS QNAME form:
// "www.google.com" becomes the byte sequence \3www\6google\3com\0.
func EncodeQName(host string) ([]byte, error) {
	out := make([]byte, 0, len(host)+2)
	out = append(out, 0) // placeholder length for the first label
	lposOut := 0
	start := 0
	for i := 0; i <= len(host); i++ {
		if i == len(host) || host[i] == '.' {
			n := i - start
			if n == 0 || n > maxLabelStretch {
				return nil, &ErrLabelTooLong{Label: host, Length: n}
			}
			out[lposOut] = byte(n)
			out = append(out, host[start:i]...)
			lposOut = len(out)
			out = append(out, 0) // placeholder for the next label's length
			start = i + 1
		}
	}
	// The loop always appends one trailing placeholder byte; it is the
	// terminating zero-length label (root).
	return out, nil
}

// BuildQuery composes a complete DNS request message for host into buf,
// returning the number of bytes written. Mirrors
// pbdns_prepare_dns_request's fixed 12-byte header plus a single QUESTION
// section.
func BuildQuery(buf []byte, host string, qtype QueryType) (int, error) {
	qname, err := EncodeQName(host)
	if err != nil {
		return 0, err
	}
	needed := headerSize + len(qname) + questionDataSize
	if len(buf) < needed {
		return 0, &ErrBufferTooSmall{Needed: needed, Have: len(buf)}
	}

	buf[headerIDOffset] = 0
	buf[headerIDOffset+1] = queryID
	buf[headerOptionsOffset] = optRecursionDesired >> 8
	buf[headerOptionsOffset+1] = optRecursionDesired & 0xFF
	buf[headerQueryCountOff] = 0
	buf[headerQueryCountOff+1] = 1
	for i := headerAnswerCountOff; i < headerSize; i++ {
		buf[i] = 0
	}

	n := headerSize
	n += copy(buf[n:], qname)
	buf[n] = 0
	buf[n+1] = byte(qtype)
	buf[n+2] = 0
	buf[n+3] = dnsClassInternet
	n += questionDataSize
	return n, nil
}
