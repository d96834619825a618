// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on original_source/lib/pubnub_dns_codec.c: handle_offset,
// forced_skip, dns_label_decode, read_header, skip_questions,
// find_the_answer, check_answer.

package dnscodec

import (
	"fmt"
	"net"
)

// maxLoopPasses bounds the number of compression-pointer jumps a single
// label decode may take, defending against cyclic or self-referential
// offsets in a hostile or corrupted response (property 6).
const maxLoopPasses = 10

const (
	resourceDataSize       = 10
	resourceTypeOffset     = -10
	resourceTTLOffset      = -6
	resourceDataLenOffset  = -2
	optQRmask              = 0x8000
	optRCODEmask           = 0x000F
	maxDecodedLabelLen     = 256
	maxIPv4AddressesInPool = 8
	maxIPv6AddressesInPool = 8
)

// ErrMalformed reports a structurally invalid or hostile DNS response.
type ErrMalformed struct {
	Reason string
}

func (e *ErrMalformed) Error() string { return "dnscodec: malformed response: " + e.Reason }

// Address is one resolved A/AAAA record with its advertised TTL.
//
// TTL is clamped to 16 bits: a transaction using these addresses never
// outlives 65535 seconds, well past the longest transaction timeout in
// the protocol (subscribe's 310s), so capping a larger 32-bit TTL at
// 0xFFFF loses no information that matters to a caller.
type Address struct {
	IP  net.IP
	TTL uint16
}

// Pool is the decoded result of a DNS response: every A/AAAA answer found,
// preserving response order so the first address is preferred exactly as
// the original single-address code path selects it.
type Pool struct {
	IPv4 []Address
	IPv6 []Address
}

// Empty reports whether the pool resolved no address at all.
func (p *Pool) Empty() bool { return len(p.IPv4) == 0 && len(p.IPv6) == 0 }

func clampTTL(ttl uint32) uint16 {
	if ttl >= 65536 {
		return 0xFFFF
	}
	return uint16(ttl)
}

// Decode parses a complete DNS response message, returning the A/AAAA
// addresses it carries in response order, keeping at most 8 per family.
func Decode(buf []byte) (*Pool, error) {
	qCount, ansCount, err := readHeader(buf)
	if err != nil {
		return nil, err
	}
	reader := headerSize
	for i := 0; i < qCount; i++ {
		if reader+questionDataSize > len(buf) {
			return nil, &ErrMalformed{Reason: "response erroneous or incomplete (question)"}
		}
		_, toSkip, derr := decodeLabel(buf, reader)
		if derr != nil && toSkip == 0 {
			return nil, derr
		}
		reader += toSkip + questionDataSize
	}

	pool := &Pool{}
	for i := 0; i < ansCount; i++ {
		_, toSkip, derr := decodeLabel(buf, reader)
		if derr != nil && toSkip == 0 {
			return nil, derr
		}
		reader += toSkip + resourceDataSize
		if reader > len(buf) {
			return nil, &ErrMalformed{Reason: "response erroneous or incomplete (answer)"}
		}
		rDataLen := int(buf[reader+resourceDataLenOffset])*256 + int(buf[reader+resourceDataLenOffset+1])
		if reader+rDataLen > len(buf) {
			return nil, &ErrMalformed{Reason: fmt.Sprintf("r_data_len=%d exceeds message", rDataLen)}
		}
		rDataType := int(buf[reader+resourceTypeOffset])*256 + int(buf[reader+resourceTypeOffset+1])
		ttl := uint32(buf[reader+resourceTTLOffset])<<24 |
			uint32(buf[reader+resourceTTLOffset+1])<<16 |
			uint32(buf[reader+resourceTTLOffset+2])<<8 |
			uint32(buf[reader+resourceTTLOffset+3])

		switch {
		case rDataType == int(QueryTypeA) && rDataLen == 4:
			ip := net.IPv4(buf[reader], buf[reader+1], buf[reader+2], buf[reader+3])
			if len(pool.IPv4) < maxIPv4AddressesInPool {
				pool.IPv4 = append(pool.IPv4, Address{IP: ip, TTL: clampTTL(ttl)})
			}
		case rDataType == int(QueryTypeAAAA) && rDataLen == 16:
			ip := make(net.IP, 16)
			copy(ip, buf[reader:reader+16])
			if len(pool.IPv6) < maxIPv6AddressesInPool {
				pool.IPv6 = append(pool.IPv6, Address{IP: ip, TTL: clampTTL(ttl)})
			}
		}
		reader += rDataLen
	}
	return pool, nil
}

func readHeader(buf []byte) (qCount, ansCount int, err error) {
	if len(buf) < headerSize {
		return 0, 0, &ErrMalformed{Reason: "response shorter than header"}
	}
	options := uint16(buf[headerOptionsOffset])<<8 | uint16(buf[headerOptionsOffset+1])
	if options&optQRmask == 0 {
		return 0, 0, &ErrMalformed{Reason: "QR flag not set"}
	}
	if options&optRCODEmask != 0 {
		return 0, 0, &ErrMalformed{Reason: fmt.Sprintf("server reports rcode %d", options&optRCODEmask)}
	}
	qCount = int(buf[headerQueryCountOff])*256 + int(buf[headerQueryCountOff+1])
	ansCount = int(buf[headerAnswerCountOff])*256 + int(buf[headerAnswerCountOff+1])
	return qCount, ansCount, nil
}

// decodeLabel decodes the (possibly pointer-compressed) label starting at
// buf[pos], returning the decoded name, the number of bytes to advance pos
// by to reach the data following the label in its ORIGINAL position (not
// the position the label decoding may have jumped to), and an error.
//
// toSkip may be valid (nonzero) even when err != nil: forcedSkip lets the
// caller keep scanning past a label it could not fully render.
func decodeLabel(buf []byte, pos int) (name string, toSkip int, err error) {
	var out []byte
	reader := pos
	pass := 0
	for {
		if reader >= len(buf) {
			return "", 0, &ErrMalformed{Reason: "label pointer outside message"}
		}
		b := buf[reader]
		switch {
		case b&0xC0 == 0xC0:
			if toSkip == 0 {
				toSkip = reader - pos + 2
			}
			pass++
			if pass > maxLoopPasses {
				return "", 0, &ErrMalformed{Reason: "too many compression-pointer jumps"}
			}
			if reader+1 >= len(buf) {
				return "", 0, &ErrMalformed{Reason: "pointer truncated at end of message"}
			}
			offset := int(buf[reader]&0x3F)*256 + int(buf[reader+1])
			if offset < headerSize || offset >= len(buf) {
				return "", 0, &ErrMalformed{Reason: "compression offset out of range"}
			}
			reader = offset
		case b == 0:
			if toSkip == 0 {
				toSkip = reader - pos + 1
			}
			return string(out), toSkip, nil
		case b&0xC0 == 0:
			if reader+int(b)+1 > len(buf) {
				return "", 0, &ErrMalformed{Reason: "label runs past end of message"}
			}
			if len(out) > 0 {
				out = append(out, '.')
			}
			if len(out)+int(b) > maxDecodedLabelLen {
				if toSkip == 0 {
					if s, ferr := forcedSkip(buf, pass, reader); ferr == nil {
						toSkip = s - pos
					}
				}
				return "", toSkip, &ErrMalformed{Reason: "decoded label exceeds buffer"}
			}
			out = append(out, buf[reader+1:reader+1+int(b)]...)
			reader += int(b) + 1
		default:
			return "", 0, &ErrMalformed{Reason: "bad label length octet"}
		}
	}
}

// forcedSkip advances past a label sequence without decoding it, used when
// the decode target is too small to hold the rendered name but the caller
// still needs to know where the next record begins.
func forcedSkip(buf []byte, pass int, pos int) (int, error) {
	reader := pos
	for {
		if reader >= len(buf) {
			return 0, &ErrMalformed{Reason: "forced skip ran past end of message"}
		}
		b := buf[reader]
		switch {
		case b&0xC0 == 0xC0:
			return reader + 2, nil
		case b == 0:
			return reader + 1, nil
		case b&0xC0 == 0:
			if reader+int(b)+1 > len(buf) {
				return 0, &ErrMalformed{Reason: "label runs past end of message"}
			}
			reader += int(b) + 1
		default:
			return 0, &ErrMalformed{Reason: "bad label length octet"}
		}
	}
}
