// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwsz

import "hash/crc32"

// uint32LE reads an uint32 integer from a byte slice
func uint32LE(b []byte) uint32 {
	x := uint32(b[3]) << 24
	x |= uint32(b[2]) << 16
	x |= uint32(b[1]) << 8
	x |= uint32(b[0])
	return x
}

// putUint32LE puts an uint32 integer into a byte slice that must have at least
// a length of 4 bytes.
func putUint32LE(b []byte, x uint32) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
}

// crcLen is the length of the checksum field.
const crcLen = 4

// appendCRC32 appends the IEEE CRC32 of data to p in little-endian order.
func appendCRC32(p []byte, data []byte) []byte {
	var b [crcLen]byte
	putUint32LE(b[:], crc32.ChecksumIEEE(data))
	return append(p, b[:]...)
}
