// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package huffman

import (
	"encoding/binary"
	"errors"
)

// Frequencies stores the number of occurrences for every byte value.
type Frequencies [256]uint64

// Count returns the byte frequencies of p.
func Count(p []byte) Frequencies {
	var f Frequencies
	for _, c := range p {
		f[c]++
	}
	return f
}

// Symbols returns the number of byte values with a non-zero frequency.
func (f *Frequencies) Symbols() int {
	n := 0
	for _, k := range f {
		if k > 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all frequencies. The value ok is false if the sum
// overflows.
func (f *Frequencies) Total() (total uint64, ok bool) {
	for _, k := range f {
		s := total + k
		if s < total {
			return 0, false
		}
		total = s
	}
	return total, true
}

// errors returned by ParseFrequencies
var (
	errTableShort   = errors.New("huffman: frequency table truncated")
	errTableEmpty   = errors.New("huffman: frequency table has no entries")
	errTableSymbols = errors.New("huffman: frequency table has more than 256 entries")
	errTableOrder   = errors.New("huffman: frequency table symbols not in ascending order")
	errTableZero    = errors.New("huffman: frequency table contains zero frequency")
)

// AppendBinary appends the table to p. The table is encoded as the number
// of symbols followed by the symbol byte and its frequency for every symbol
// in ascending order. Numbers are encoded as uvarints.
func (f *Frequencies) AppendBinary(p []byte) []byte {
	p = binary.AppendUvarint(p, uint64(f.Symbols()))
	for c, k := range f {
		if k == 0 {
			continue
		}
		p = append(p, byte(c))
		p = binary.AppendUvarint(p, k)
	}
	return p
}

// MarshalBinary encodes the table. The table must contain at least one
// symbol.
func (f *Frequencies) MarshalBinary() (data []byte, err error) {
	if f.Symbols() == 0 {
		return nil, ErrNoSymbols
	}
	return f.AppendBinary(nil), nil
}

// ParseFrequencies decodes a table created by AppendBinary from the start of
// p and returns the number of bytes consumed. Tables without entries are
// rejected.
func ParseFrequencies(p []byte) (f Frequencies, n int, err error) {
	u, k := binary.Uvarint(p)
	if k <= 0 {
		return f, 0, errTableShort
	}
	n += k
	switch {
	case u == 0:
		return f, n, errTableEmpty
	case u > 256:
		return f, n, errTableSymbols
	}
	last := -1
	for i := 0; i < int(u); i++ {
		if n >= len(p) {
			return f, n, errTableShort
		}
		c := int(p[n])
		n++
		if c <= last {
			return f, n, errTableOrder
		}
		last = c
		freq, k := binary.Uvarint(p[n:])
		if k <= 0 {
			return f, n, errTableShort
		}
		n += k
		if freq == 0 {
			return f, n, errTableZero
		}
		f[c] = freq
	}
	return f, n, nil
}

// UnmarshalBinary decodes the table from data, which must contain exactly one
// encoded table.
func (f *Frequencies) UnmarshalBinary(data []byte) error {
	g, n, err := ParseFrequencies(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return errors.New("huffman: trailing data after frequency table")
	}
	*f = g
	return nil
}
