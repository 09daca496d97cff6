// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package huffman

import (
	"container/heap"
	"errors"
	"math"
	"math/bits"
	"strings"
)

// Errors returned by the tree functions.
var (
	ErrNoSymbols = errors.New("huffman: no symbols")
	ErrOverflow  = errors.New("huffman: frequency sum overflows")
)

// node is an entry of the tree arena. Leaves have left and right set to -1.
type node struct {
	freq  uint64
	left  int
	right int
	sym   byte
}

func (n *node) leaf() bool { return n.left < 0 }

// Tree is a Huffman tree. The nodes are stored in an arena and are
// referenced by their index. The leaves are stored first in ascending byte
// order, followed by the internal nodes in the order of their creation. The
// root is the last node.
type Tree struct {
	nodes []node
}

// nodeHeap orders node indexes by frequency. Nodes with equal frequency are
// ordered by index.
type nodeHeap struct {
	idx   []int
	nodes []node
}

func (h *nodeHeap) Len() int { return len(h.idx) }

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.idx[i], h.idx[j]
	fa, fb := h.nodes[a].freq, h.nodes[b].freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

func (h *nodeHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }

func (h *nodeHeap) Push(x any) { h.idx = append(h.idx, x.(int)) }

func (h *nodeHeap) Pop() any {
	n := len(h.idx) - 1
	x := h.idx[n]
	h.idx = h.idx[:n]
	return x
}

// NewTree builds the Huffman tree for the given frequencies. The two nodes
// with the lowest frequency are combined repeatedly; the first extracted node
// becomes the left child.
func NewTree(f *Frequencies) (*Tree, error) {
	k := f.Symbols()
	if k == 0 {
		return nil, ErrNoSymbols
	}
	h := &nodeHeap{
		idx:   make([]int, 0, k),
		nodes: make([]node, 0, 2*k-1),
	}
	for c, freq := range f {
		if freq == 0 {
			continue
		}
		h.idx = append(h.idx, len(h.nodes))
		h.nodes = append(h.nodes,
			node{freq: freq, left: -1, right: -1, sym: byte(c)})
	}
	heap.Init(h)
	for h.Len() > 1 {
		a := heap.Pop(h).(int)
		b := heap.Pop(h).(int)
		sum, carry := bits.Add64(h.nodes[a].freq, h.nodes[b].freq, 0)
		if carry != 0 {
			return nil, ErrOverflow
		}
		h.nodes = append(h.nodes, node{freq: sum, left: a, right: b})
		heap.Push(h, len(h.nodes)-1)
	}
	return &Tree{nodes: h.nodes}, nil
}

// root returns the index of the root node.
func (t *Tree) root() int { return len(t.nodes) - 1 }

// Leaves returns the number of leaves of the tree.
func (t *Tree) Leaves() int { return (len(t.nodes) + 1) / 2 }

// Total returns the frequency of the root, which is the number of symbols
// encoded with the tree.
func (t *Tree) Total() uint64 { return t.nodes[t.root()].freq }

// Code is the bit path of a symbol given as a string of '0' and '1'
// characters. The zero value indicates that the symbol has no code.
type Code string

// Table maps every byte value to its code.
type Table [256]Code

// Table computes the code table of the tree.
func (t *Tree) Table() *Table {
	tab := new(Table)
	r := t.root()
	if t.nodes[r].leaf() {
		tab[t.nodes[r].sym] = "0"
		return tab
	}
	var walk func(i int, path []byte)
	walk = func(i int, path []byte) {
		n := &t.nodes[i]
		if n.leaf() {
			tab[n.sym] = Code(path)
			return
		}
		walk(n.left, append(path, '0'))
		walk(n.right, append(path[:len(path):len(path)], '1'))
	}
	walk(r, make([]byte, 0, 32))
	return tab
}

// Lengths returns the code length for every byte value. Values without code
// have length 0.
func (tab *Table) Lengths() [256]int {
	var l [256]int
	for c, code := range tab {
		l[c] = len(code)
	}
	return l
}

// PrefixFree checks whether no code of the table is a prefix of another
// code.
func (tab *Table) PrefixFree() bool {
	for a, x := range tab {
		if x == "" {
			continue
		}
		for b, y := range tab {
			if a == b || y == "" {
				continue
			}
			if strings.HasPrefix(string(y), string(x)) {
				return false
			}
		}
	}
	return true
}

// Kraft computes the sum of 2^-l over all code lengths l of the table. The
// sum is 1 for the table of a tree with at least two leaves.
func Kraft(tab *Table) float64 {
	var sum float64
	for _, code := range tab {
		if code != "" {
			sum += math.Ldexp(1, -len(code))
		}
	}
	return sum
}
