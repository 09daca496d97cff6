// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package huffman

import (
	"errors"
	"fmt"

	bitmap "github.com/boljen/go-bitmap"
)

// ErrBitCount indicates a bit count that doesn't fit the stored bytes.
var ErrBitCount = errors.New("huffman: bit count exceeds available bits")

// Bits is a sequence of bits. Bit i is stored in byte i/8. N gives the
// number of valid bits; the remaining bits of the last byte are padding.
type Bits struct {
	Map bitmap.Bitmap
	N   int
}

// NewBits allocates a zeroed sequence of n bits.
func NewBits(n int) Bits {
	return Bits{Map: bitmap.New(n), N: n}
}

// BitsFromBytes interprets the first n bits of p as bit sequence. The
// slice p is not copied.
func BitsFromBytes(p []byte, n int) (Bits, error) {
	if n < 0 || (n+7)/8 > len(p) {
		return Bits{}, fmt.Errorf("%w: %d bits in %d bytes",
			ErrBitCount, n, len(p))
	}
	return Bits{Map: bitmap.Bitmap(p[:(n+7)/8]), N: n}, nil
}

// Bytes returns the packed bits. The length of the slice is the number of
// bytes required for N bits.
func (b Bits) Bytes() []byte {
	return []byte(b.Map)[:(b.N+7)/8]
}

// String represents the bits as sequence of '0' and '1' characters.
func (b Bits) String() string {
	s := make([]byte, b.N)
	for i := range s {
		if b.Map.Get(i) {
			s[i] = '1'
		} else {
			s[i] = '0'
		}
	}
	return string(s)
}
