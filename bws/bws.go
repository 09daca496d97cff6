// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bws implements the block sorting transform used by the bwsz
// pipeline. The transform permutes the bytes of a buffer so that bytes
// preceding equal contexts are grouped together.
//
// The forward transform returns the transformed buffer and the primary
// index, the row of the sorted rotation matrix that holds the original
// buffer. The inverse transform needs both.
package bws

import (
	"fmt"

	"github.com/ulikunitz/bwsz/sa"
)

// ErrPrimary indicates a primary index that is outside the buffer.
type ErrPrimary struct {
	Primary int
	Len     int
}

func (e *ErrPrimary) Error() string {
	return fmt.Sprintf("bws: primary index %d out of range for length %d",
		e.Primary, e.Len)
}

// TransformSA computes the transformed buffer for p using the cyclic suffix
// array s of p. Byte i of the result is the byte preceding rotation s[i].
func TransformSA(p []byte, s []int) []byte {
	n := len(p)
	if len(s) != n {
		panic("bws: suffix array length doesn't match buffer length")
	}
	t := make([]byte, n)
	for i, j := range s {
		if j > 0 {
			t[i] = p[j-1]
		} else {
			t[i] = p[n-1]
		}
	}
	return t
}

// Primary returns the row of the suffix array that contains rotation 0.
// It returns 0 for an empty array.
func Primary(s []int) int {
	for i, j := range s {
		if j == 0 {
			return i
		}
	}
	return 0
}

// Transform applies the block sorting transform to p. The input is not
// modified.
func Transform(p []byte) (t []byte, primary int) {
	s := sa.Cyclic(p)
	return TransformSA(p, s), Primary(s)
}

// Inverse reconstructs the original buffer from the transformed buffer t and
// the primary index.
func Inverse(t []byte, primary int) ([]byte, error) {
	n := len(t)
	if n == 0 {
		if primary != 0 {
			return nil, &ErrPrimary{Primary: primary, Len: n}
		}
		return []byte{}, nil
	}
	if !(0 <= primary && primary < n) {
		return nil, &ErrPrimary{Primary: primary, Len: n}
	}

	// Sorting the (byte, position) pairs of t stably gives the first
	// column of the rotation matrix. next links each row to the row
	// holding the rotation that starts one byte later.
	var start [256]int
	for _, c := range t {
		start[c]++
	}
	sum := 0
	for c, k := range start {
		start[c] = sum
		sum += k
	}
	next := make([]int, n)
	for i, c := range t {
		next[start[c]] = i
		start[c]++
	}

	p := make([]byte, n)
	k := next[primary]
	for i := range p {
		p[i] = t[k]
		k = next[k]
	}
	return p, nil
}
