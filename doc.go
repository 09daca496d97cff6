// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bwsz compresses byte slices with a pipeline of three stages: the
// block sorting transform of package bws, the run-length encoding of package
// rle and the Huffman coder of package huffman. Decompression applies the
// inverse stages in reverse order.
//
// The compressed data is a self-contained container. It stores the original
// size, the primary index of the block sorting transform, the Huffman
// frequency table, the exact number of encoded bits and optionally a CRC32
// checksum of the original data.
//
// All functions operate on whole buffers. The Writer and Reader types
// buffer the complete data in memory; they exist to support io.Writer and
// io.Reader based code like command line tools.
package bwsz
