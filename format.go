// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwsz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/noxer/bytewriter"
	"github.com/ulikunitz/bwsz/huffman"
)

/*** Container ***/

// The container has the following layout. Numbers are encoded as uvarints.
//
//	magic     6 bytes
//	flags     1 byte
//	size      original size n
//	primary   primary index of the block transform  (n > 0)
//	table     Huffman frequency table               (n > 0)
//	bits      number of encoded bits                (n > 0)
//	payload   (bits+7)/8 bytes                      (n > 0)
//	crc32     little-endian CRC32 of the data       (flag fCRC32)

// headerMagic stores the magic bytes for the header
var headerMagic = []byte{0xfe, 'B', 'W', 'S', 'Z', 0x00}

// HeaderLen provides the minimum length of a container.
const HeaderLen = 8

// Flags of the container.
const (
	fCRC32 byte = 0x1

	fMask = fCRC32
)

// ErrFormat indicates a malformed container.
var ErrFormat = errors.New("bwsz: malformed container")

// formatError returns an error wrapping ErrFormat.
func formatError(msg string) error {
	return fmt.Errorf("%w: %s", ErrFormat, msg)
}

// header describes the container fields preceding the payload.
type header struct {
	flags   byte
	size    int
	primary int
	freqs   huffman.Frequencies
	bits    int
}

// appendBinary appends the encoded header to p.
func (h *header) appendBinary(p []byte) []byte {
	p = append(p, headerMagic...)
	p = append(p, h.flags)
	p = binary.AppendUvarint(p, uint64(h.size))
	if h.size == 0 {
		return p
	}
	p = binary.AppendUvarint(p, uint64(h.primary))
	p = h.freqs.AppendBinary(p)
	p = binary.AppendUvarint(p, uint64(h.bits))
	return p
}

// uvarint reads an uvarint from p that must fit into an int.
func uvarint(p []byte, field string) (x int, n int, err error) {
	u, n := binary.Uvarint(p)
	if n == 0 {
		return 0, 0, formatError(field + " truncated")
	}
	if n < 0 || u > math.MaxInt {
		return 0, 0, formatError(field + " overflow")
	}
	return int(u), n, nil
}

// parseHeader parses the header at the start of p and returns the number of
// bytes consumed.
func (h *header) parse(p []byte) (n int, err error) {
	if len(p) < HeaderLen {
		return 0, formatError("truncated header")
	}
	if !bytes.Equal(p[:len(headerMagic)], headerMagic) {
		return 0, formatError("invalid header magic")
	}
	n = len(headerMagic)
	h.flags = p[n]
	n++
	if h.flags&^fMask != 0 {
		return n, formatError("invalid flags")
	}

	var k int
	if h.size, k, err = uvarint(p[n:], "size"); err != nil {
		return n, err
	}
	n += k
	if h.size == 0 {
		return n, nil
	}

	if h.primary, k, err = uvarint(p[n:], "primary index"); err != nil {
		return n, err
	}
	n += k
	if h.primary >= h.size {
		return n, formatError("primary index out of range")
	}

	if h.freqs, k, err = huffman.ParseFrequencies(p[n:]); err != nil {
		return n, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	n += k

	if h.bits, k, err = uvarint(p[n:], "bit count"); err != nil {
		return n, err
	}
	n += k
	if h.bits == 0 {
		return n, formatError("bit count is zero")
	}
	return n, nil
}

// payloadLen returns the number of payload bytes.
func (h *header) payloadLen() int {
	if h.size == 0 {
		return 0
	}
	return h.bits/8 + btoi(h.bits%8 != 0)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// marshalContainer writes header, payload and the optional checksum into a
// single buffer.
func marshalContainer(h *header, payload, data []byte) ([]byte, error) {
	hdr := h.appendBinary(make([]byte, 0, 64))
	if len(payload) != h.payloadLen() {
		panic("bwsz: payload length doesn't match bit count")
	}
	var tail []byte
	if h.flags&fCRC32 != 0 {
		tail = appendCRC32(tail, data)
	}
	out := make([]byte, len(hdr)+len(payload)+len(tail))
	w := bytewriter.New(out)
	for _, p := range [][]byte{hdr, payload, tail} {
		if len(p) == 0 {
			continue
		}
		if _, err := w.Write(p); err != nil {
			return nil, err
		}
	}
	if n := w.Written(); n != len(out) {
		return nil, fmt.Errorf("%w: container has %d bytes; want %d",
			ErrInternal, n, len(out))
	}
	return out, nil
}

// ValidHeader checks whether p starts with a container header that has the
// correct magic and valid flags.
func ValidHeader(p []byte) bool {
	if len(p) < HeaderLen {
		return false
	}
	return bytes.Equal(p[:len(headerMagic)], headerMagic) &&
		p[len(headerMagic)]&^fMask == 0
}
