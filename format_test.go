// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwsz

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kr/pretty"
	"github.com/ulikunitz/bwsz/huffman"
)

func TestHeader(t *testing.T) {
	h := header{
		flags:   fCRC32,
		size:    1000,
		primary: 999,
		freqs:   huffman.Count([]byte("a3b300c1\\1")),
		bits:    4711,
	}
	p := h.appendBinary(nil)
	if !ValidHeader(p) {
		t.Fatalf("ValidHeader returned false")
	}
	var g header
	n, err := g.parse(p)
	if err != nil {
		t.Fatalf("parse error %s", err)
	}
	if n != len(p) {
		t.Fatalf("parse returned %d; want %d", n, len(p))
	}
	if g != h {
		t.Fatalf("parse mismatch: %v", pretty.Diff(g, h))
	}
	if k := g.payloadLen(); k != 589 {
		t.Fatalf("payloadLen returned %d; want %d", k, 589)
	}
}

func TestHeaderEmpty(t *testing.T) {
	h := header{flags: fCRC32}
	p := h.appendBinary(nil)
	if len(p) != HeaderLen {
		t.Fatalf("len(p) = %d; want %d", len(p), HeaderLen)
	}
	var g header
	n, err := g.parse(p)
	if err != nil {
		t.Fatalf("parse error %s", err)
	}
	if n != HeaderLen {
		t.Fatalf("parse returned %d; want %d", n, HeaderLen)
	}
	if g.payloadLen() != 0 {
		t.Fatalf("payloadLen returned %d; want 0", g.payloadLen())
	}
}

func TestHeaderTruncated(t *testing.T) {
	h := header{
		size:    3,
		primary: 2,
		freqs:   huffman.Count([]byte("x1y2")),
		bits:    9,
	}
	p := h.appendBinary(nil)
	for k := 0; k < len(p); k++ {
		var g header
		_, err := g.parse(p[:k])
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("parse of %d bytes returned error %v; want %v",
				k, err, ErrFormat)
		}
	}
}

func TestValidHeader(t *testing.T) {
	tests := []struct {
		p    []byte
		want bool
	}{
		{nil, false},
		{[]byte{0xfe, 'B', 'W', 'S', 'Z', 0, 0}, false},
		{[]byte{0xfe, 'B', 'W', 'S', 'Z', 0, 0, 0}, true},
		{[]byte{0xfe, 'B', 'W', 'S', 'Z', 0, 1, 0}, true},
		{[]byte{0xfe, 'B', 'W', 'S', 'Z', 0, 2, 0}, false},
		{[]byte{0xfd, '7', 'z', 'X', 'Z', 0, 0, 0}, false},
		{[]byte{0x78, 0xda, 1, 2, 3, 4, 5, 6}, false},
	}
	for _, c := range tests {
		if g := ValidHeader(c.p); g != c.want {
			t.Errorf("ValidHeader(%x) returned %t; want %t",
				c.p, g, c.want)
		}
	}
}

func TestUint32LE(t *testing.T) {
	var b [4]byte
	putUint32LE(b[:], 0x01020304)
	if b != [4]byte{4, 3, 2, 1} {
		t.Fatalf("putUint32LE wrote %x", b)
	}
	if x := uint32LE(b[:]); x != 0x01020304 {
		t.Fatalf("uint32LE returned %#08x; want %#08x", x, 0x01020304)
	}
}

func TestMarshalContainer(t *testing.T) {
	for _, flags := range []byte{0, fCRC32} {
		h := header{flags: flags}
		c, err := marshalContainer(&h, nil, nil)
		if err != nil {
			t.Fatalf("marshalContainer(flags %#x) error %s", flags, err)
		}
		want := HeaderLen
		if flags&fCRC32 != 0 {
			want += crcLen
		}
		if len(c) != want {
			t.Fatalf("len(c) = %d; want %d", len(c), want)
		}

		data := []byte("a")
		h = header{
			flags: flags,
			size:  1,
			freqs: huffman.Count([]byte("a1")),
			bits:  2,
		}
		c, err = marshalContainer(&h, []byte{0x01}, data)
		if err != nil {
			t.Fatalf("marshalContainer(flags %#x) error %s", flags, err)
		}
		hdr := h.appendBinary(nil)
		if !bytes.Equal(c[:len(hdr)], hdr) {
			t.Fatalf("container doesn't start with header")
		}
		if c[len(hdr)] != 0x01 {
			t.Fatalf("payload byte %#02x; want %#02x", c[len(hdr)], 0x01)
		}
		if g := len(c) - len(hdr) - 1; g != want-HeaderLen {
			t.Fatalf("tail has %d bytes; want %d", g, want-HeaderLen)
		}
	}
}
