// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package huffman

import (
	"errors"
	"fmt"
	"math"
)

// Errors reported by Encode and Decode.
var (
	// ErrNoCode indicates a byte without code. It signals an
	// inconsistency between the data and the table, since tables are
	// built from the frequencies of the data to encode.
	ErrNoCode = errors.New("huffman: byte has no code")
	// ErrIncomplete indicates that the bits end inside a code.
	ErrIncomplete = errors.New("huffman: bits end inside a code")
	// ErrCorrupt indicates bits that don't lead to a symbol of the tree.
	ErrCorrupt = errors.New("huffman: bits don't match tree")
	// ErrSymbolCount indicates that the number of decoded symbols
	// differs from the total frequency of the tree.
	ErrSymbolCount = errors.New("huffman: wrong number of symbols")
)

// Encode encodes p using the code table.
func Encode(p []byte, tab *Table) (Bits, error) {
	n := 0
	for i, c := range p {
		k := len(tab[c])
		if k == 0 {
			return Bits{}, fmt.Errorf("%w: byte %#02x at offset %d",
				ErrNoCode, c, i)
		}
		if n > math.MaxInt-k {
			return Bits{}, errors.New("huffman: too many bits")
		}
		n += k
	}
	b := NewBits(n)
	i := 0
	for _, c := range p {
		code := tab[c]
		for k := 0; k < len(code); k++ {
			if code[k] == '1' {
				b.Map.Set(i, true)
			}
			i++
		}
	}
	return b, nil
}

// Decode decodes the bits using the tree. It expects exactly as many
// symbols as the total frequency of the tree.
func (t *Tree) Decode(b Bits) ([]byte, error) {
	if t == nil || len(t.nodes) == 0 {
		return nil, ErrNoSymbols
	}
	if b.N < 0 || b.N > 8*len(b.Map) {
		return nil, ErrBitCount
	}
	total := t.Total()
	if total > uint64(b.N) {
		// every symbol requires at least one bit
		return nil, ErrSymbolCount
	}
	p := make([]byte, 0, total)
	r := t.root()

	if t.nodes[r].leaf() {
		sym := t.nodes[r].sym
		for i := 0; i < b.N; i++ {
			if b.Map.Get(i) {
				return nil, fmt.Errorf("%w: bit %d", ErrCorrupt, i)
			}
			p = append(p, sym)
		}
		if uint64(len(p)) != total {
			return nil, ErrSymbolCount
		}
		return p, nil
	}

	i := r
	for k := 0; k < b.N; k++ {
		n := &t.nodes[i]
		if b.Map.Get(k) {
			i = n.right
		} else {
			i = n.left
		}
		n = &t.nodes[i]
		if !n.leaf() {
			continue
		}
		if uint64(len(p)) == total {
			return nil, ErrSymbolCount
		}
		p = append(p, n.sym)
		i = r
	}
	if i != r {
		return nil, ErrIncomplete
	}
	if uint64(len(p)) != total {
		return nil, ErrSymbolCount
	}
	return p, nil
}
