// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sa builds the cyclic suffix array of a byte slice. Entry i of the
// array is the start index of the i-th smallest rotation of the slice.
// Rotations are compared cyclically: the comparison wraps to the start of
// the slice after the last byte. Equal rotations, which exist for periodic
// input like "abab" or "\x00\x00\x00", are ordered by ascending index.
package sa

import (
	"errors"
	"fmt"
)

// Cyclic computes the cyclic suffix array for p. The implementation doubles
// the length of the compared prefixes in every round and uses counting sorts,
// so it runs in O(n log n) time.
func Cyclic(p []byte) []int {
	n := len(p)
	s := make([]int, n)
	if n == 0 {
		return s
	}

	// sort by the first byte; the counting sort keeps index order
	var start [256]int
	for _, c := range p {
		start[c]++
	}
	sum := 0
	for c, k := range start {
		start[c] = sum
		sum += k
	}
	for i, c := range p {
		s[start[c]] = i
		start[c]++
	}

	class := make([]int, n)
	classes := 1
	for k := 1; k < n; k++ {
		if p[s[k]] != p[s[k-1]] {
			classes++
		}
		class[s[k]] = classes - 1
	}

	shifted := make([]int, n)
	next := make([]int, n)
	count := make([]int, n)
	for h := 1; h < n && classes < n; h <<= 1 {
		// s is sorted by the first h bytes, so shifting every
		// entry back by h sorts by the second half of the 2h prefix.
		for k, i := range s {
			j := i - h
			if j < 0 {
				j += n
			}
			shifted[k] = j
		}
		countingSort(s, shifted, class, count[:classes])

		classes = 1
		next[s[0]] = 0
		for k := 1; k < n; k++ {
			a, b := s[k-1], s[k]
			if class[a] != class[b] ||
				class[(a+h)%n] != class[(b+h)%n] {
				classes++
			}
			next[b] = classes - 1
		}
		class, next = next, class
	}

	if classes < n {
		// periodic input: order equal rotations by index
		for i := range shifted {
			shifted[i] = i
		}
		countingSort(s, shifted, class, count[:classes])
	}
	return s
}

// countingSort writes the entries of src into dst ordered by their class.
// Entries of the same class keep their order in src.
func countingSort(dst, src, class, count []int) {
	for i := range count {
		count[i] = 0
	}
	for _, i := range src {
		count[class[i]]++
	}
	sum := 0
	for c, k := range count {
		count[c] = sum
		sum += k
	}
	for _, i := range src {
		c := class[i]
		dst[count[c]] = i
		count[c]++
	}
}

// Compare compares the rotations of p starting at i and j. It returns -1 if
// rotation i is smaller, +1 if it is larger and 0 if both rotations are
// equal.
func Compare(p []byte, i, j int) int {
	n := len(p)
	for k := 0; k < n; k++ {
		a, b := p[(i+k)%n], p[(j+k)%n]
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// errNoPermutation indicates that a suffix array is not a permutation of the
// indexes of the input.
var errNoPermutation = errors.New("sa: suffix array is not a permutation")

// Verify checks that s is the cyclic suffix array of p. The check compares
// all adjacent rotations and may be quadratic for highly repetitive input.
func Verify(p []byte, s []int) error {
	n := len(p)
	if len(s) != n {
		return fmt.Errorf("sa: suffix array has length %d; want %d",
			len(s), n)
	}
	seen := make([]bool, n)
	for _, i := range s {
		if !(0 <= i && i < n) || seen[i] {
			return errNoPermutation
		}
		seen[i] = true
	}
	for k := 1; k < n; k++ {
		a, b := s[k-1], s[k]
		c := Compare(p, a, b)
		if c > 0 || (c == 0 && a > b) {
			return fmt.Errorf(
				"sa: rotations %d and %d at position %d are"+
					" out of order", a, b, k)
		}
	}
	return nil
}
