// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package i64 provides basic functions supporting the int64 type. The
// functions detect overflow, which is required to parse counts and sizes
// from untrusted input.
package i64

// Minimum and maximum value for the int64 type.
const (
	Min = -1 << 63
	Max = 1<<63 - 1
)

// Add adds x and y and detects overflow.
func Add(x, y int64) (z int64, overflow bool) {
	z = x + y
	return z, (z^x)&(z^y)&Min != 0
}

// Sub computes x-y and detects overflow.
func Sub(x, y int64) (z int64, overflow bool) {
	z = x - y
	return z, (z^x) & ^(z^y) & Min != 0
}

// Mul computes x*y and detects overflow.
func Mul(x, y int64) (z int64, overflow bool) {
	if x == 0 || y == 0 {
		return 0, false
	}
	z = x * y
	if (x == -1 && y == Min) || (y == -1 && x == Min) {
		return z, true
	}
	return z, z/y != x
}

// MulAdd computes x*y+a as used by decimal parsers and reports overflow
// of either step.
func MulAdd(x, y, a int64) (z int64, overflow bool) {
	z, overflow = Mul(x, y)
	if overflow {
		return z, true
	}
	return Add(z, a)
}
