// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rle implements the textual run-length encoding of the bwsz
// pipeline. Every maximal run of identical bytes is written as the byte
// followed by the decimal run length, so "aaabbbccd" becomes "a3b3c2d1".
//
// A data byte that is itself a decimal digit cannot be told apart from a
// run length. Such bytes and the escape byte '\' are therefore preceded by
// the escape byte. Text without digits and backslashes is encoded without
// any escapes.
package rle

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ulikunitz/bwsz/basics/i64"
)

// Escape is the byte that marks the following byte as data.
const Escape = '\\'

// Errors returned by the decoding functions.
var (
	ErrDigit  = errors.New("rle: unescaped digit where a data byte is expected")
	ErrEscape = errors.New("rle: escape byte at end of input")
	ErrCount  = errors.New("rle: run length overflow")
	ErrLimit  = errors.New("rle: decoded data exceeds limit")
)

// Run describes a maximal run of a single byte value.
type Run struct {
	// Byte is the value repeated in the run.
	Byte byte
	// Len is the number of times the byte occurs. It is at least 1 for
	// all runs returned by a Grouper.
	Len int
}

// Grouper splits a byte slice into runs.
type Grouper struct {
	p   []byte
	off int
}

// NewGrouper returns a grouper for p.
func NewGrouper(p []byte) *Grouper {
	return &Grouper{p: p}
}

// Next returns the next run. The value ok is false if all runs have been
// returned.
func (g *Grouper) Next() (r Run, ok bool) {
	if g.off >= len(g.p) {
		return Run{}, false
	}
	c := g.p[g.off]
	k := g.off + 1
	for k < len(g.p) && g.p[k] == c {
		k++
	}
	r = Run{Byte: c, Len: k - g.off}
	g.off = k
	return r, true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// escaped reports whether the byte must be preceded by Escape.
func escaped(c byte) bool { return isDigit(c) || c == Escape }

// AppendRun appends the encoding of r to dst.
func AppendRun(dst []byte, r Run) []byte {
	if escaped(r.Byte) {
		dst = append(dst, Escape)
	}
	dst = append(dst, r.Byte)
	return strconv.AppendInt(dst, int64(r.Len), 10)
}

// Encode returns the run-length encoding of p.
func Encode(p []byte) []byte {
	out := make([]byte, 0, len(p)/2+16)
	g := NewGrouper(p)
	for {
		r, ok := g.Next()
		if !ok {
			break
		}
		out = AppendRun(out, r)
	}
	return out
}

// Decode decodes the run-length encoding p.
func Decode(p []byte) ([]byte, error) {
	return DecodeLimit(p, -1)
}

// DecodeLimit decodes p like Decode but returns ErrLimit if the decoded
// data would be larger than limit bytes. A negative limit disables the
// check.
func DecodeLimit(p []byte, limit int) ([]byte, error) {
	n := len(p)
	if 0 <= limit && limit < n {
		n = limit
	}
	out := make([]byte, 0, n)
	for i := 0; i < len(p); {
		c := p[i]
		i++
		switch {
		case c == Escape:
			if i >= len(p) {
				return nil, ErrEscape
			}
			c = p[i]
			i++
		case isDigit(c):
			return nil, fmt.Errorf("%w (offset %d)", ErrDigit, i-1)
		}

		count := int64(1)
		if i < len(p) && isDigit(p[i]) {
			var overflow bool
			count = 0
			for ; i < len(p) && isDigit(p[i]); i++ {
				count, overflow = i64.MulAdd(count, 10,
					int64(p[i]-'0'))
				if overflow {
					return nil, ErrCount
				}
			}
		}
		if count > int64(math.MaxInt-len(out)) {
			return nil, ErrCount
		}
		if limit >= 0 && int64(len(out))+count > int64(limit) {
			return nil, ErrLimit
		}
		for k := int64(0); k < count; k++ {
			out = append(out, c)
		}
	}
	return out, nil
}
