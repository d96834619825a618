// SPDX-License-Identifier: GPL-3.0-or-later
//
// Scenarios grounded on original_source/lib/pubnub_dns_codec_unit_test.c's
// hand-built label fixtures (encoded_domain_name, offset-cycle fixtures).

package dnscodec

import (
	"net"
	"testing"
)

func header(qCount, ansCount int) []byte {
	buf := make([]byte, headerSize)
	buf[headerOptionsOffset] = optQRmask >> 8
	buf[headerQueryCountOff] = byte(qCount >> 8)
	buf[headerQueryCountOff+1] = byte(qCount)
	buf[headerAnswerCountOff] = byte(ansCount >> 8)
	buf[headerAnswerCountOff+1] = byte(ansCount)
	return buf
}

func TestEncodeQName(t *testing.T) {
	got, err := EncodeQName("www.google.com")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte("\x03www\x06google\x03com\x00")
	if string(got) != string(want) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEncodeQNameLabelTooLong(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	_, err := EncodeQName(string(long))
	var tooLong *ErrLabelTooLong
	if err == nil {
		t.Fatal("expected error")
	}
	if !asErrLabelTooLong(err, &tooLong) {
		t.Fatalf("wrong error type: %v", err)
	}
}

func asErrLabelTooLong(err error, target **ErrLabelTooLong) bool {
	e, ok := err.(*ErrLabelTooLong)
	if ok {
		*target = e
	}
	return ok
}

func TestBuildQueryBufferTooSmall(t *testing.T) {
	buf := make([]byte, 4)
	_, err := BuildQuery(buf, "example.com", QueryTypeA)
	if _, ok := err.(*ErrBufferTooSmall); !ok {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
}

func TestBuildQueryThenDecodeQuestionRoundTrips(t *testing.T) {
	buf := make([]byte, 512)
	n, err := BuildQuery(buf, "example.com", QueryTypeA)
	if err != nil {
		t.Fatal(err)
	}
	// Flip QR + craft zero answers to exercise readHeader only.
	msg := append([]byte(nil), buf[:n]...)
	msg[headerOptionsOffset] |= optQRmask >> 8
	qCount, ansCount, err := readHeader(msg)
	if err != nil {
		t.Fatal(err)
	}
	if qCount != 1 || ansCount != 0 {
		t.Fatalf("qCount=%d ansCount=%d", qCount, ansCount)
	}
}

func TestDecodeSingleA(t *testing.T) {
	msg := header(1, 1)
	qname, _ := EncodeQName("example.com")
	msg = append(msg, qname...)
	msg = append(msg, 0, byte(QueryTypeA), 0, dnsClassInternet)

	msg = append(msg, qname...)
	msg = append(msg, 0, byte(QueryTypeA), 0, dnsClassInternet)
	msg = append(msg, 0, 0, 0, 60) // ttl
	msg = append(msg, 0, 4)        // rdlength
	msg = append(msg, 93, 184, 216, 34)

	pool, err := Decode(msg)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool.IPv4) != 1 {
		t.Fatalf("expected 1 IPv4 address, got %d", len(pool.IPv4))
	}
	if !pool.IPv4[0].IP.Equal(net.IPv4(93, 184, 216, 34)) {
		t.Fatalf("got %v", pool.IPv4[0].IP)
	}
	if pool.IPv4[0].TTL != 60 {
		t.Fatalf("got ttl %d", pool.IPv4[0].TTL)
	}
}

func TestDecodeTTLClampedTo16Bits(t *testing.T) {
	msg := header(0, 1)
	qname, _ := EncodeQName("x")
	msg = append(msg, qname...)
	msg = append(msg, 0, byte(QueryTypeA), 0, dnsClassInternet)
	msg = append(msg, 0, 1, 0, 0) // ttl = 0x00010000 > 65535
	msg = append(msg, 0, 4)
	msg = append(msg, 1, 2, 3, 4)

	pool, err := Decode(msg)
	if err != nil {
		t.Fatal(err)
	}
	if pool.IPv4[0].TTL != 0xFFFF {
		t.Fatalf("expected clamp to 0xFFFF, got %d", pool.IPv4[0].TTL)
	}
}

// TestDecodeCompressionPointerCycle builds an answer whose name is a
// pointer to itself, the classic hostile-cycle case the pass budget exists
// to catch (property 6).
func TestDecodeCompressionPointerCycle(t *testing.T) {
	msg := header(0, 1)
	selfOffset := len(msg)
	msg = append(msg, 0xC0|byte(selfOffset>>8), byte(selfOffset))
	msg = append(msg, 0, byte(QueryTypeA), 0, dnsClassInternet)
	msg = append(msg, 0, 0, 0, 60)
	msg = append(msg, 0, 4)
	msg = append(msg, 1, 1, 1, 1)

	_, err := Decode(msg)
	if err == nil {
		t.Fatal("expected malformed-response error from cyclic pointer")
	}
}

func TestDecodeRejectsMissingQRFlag(t *testing.T) {
	msg := make([]byte, headerSize)
	_, err := Decode(msg)
	if err == nil {
		t.Fatal("expected error for missing QR flag")
	}
}

func TestDecodeRejectsErrorRcode(t *testing.T) {
	msg := make([]byte, headerSize)
	msg[headerOptionsOffset] = byte(optQRmask >> 8)
	msg[headerOptionsOffset+1] = 3 // NXDOMAIN
	_, err := Decode(msg)
	if err == nil {
		t.Fatal("expected error for nonzero rcode")
	}
}
